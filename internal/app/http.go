package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"kakao-auth-service/internal/auth/handler"
	"kakao-auth-service/internal/auth/provider"
	"kakao-auth-service/internal/auth/provider/kakao"
	"kakao-auth-service/internal/auth/resolver"
	"kakao-auth-service/internal/config"
	"kakao-auth-service/internal/metrics"
	"kakao-auth-service/internal/middleware"
	"kakao-auth-service/internal/session"
	"kakao-auth-service/internal/token"
	"kakao-auth-service/internal/user"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	codec, err := token.NewCodec(
		cfg.JWTSecret,
		time.Duration(cfg.AccessTokenTTLSeconds)*time.Second,
		time.Duration(cfg.RefreshTokenTTLSeconds)*time.Second,
	)
	if err != nil {
		return nil, nil, err
	}

	kakaoProvider, err := kakao.New(kakao.Config{
		ClientID:     cfg.KakaoClientID,
		ClientSecret: cfg.KakaoClientSecret,
		RedirectURL:  cfg.KakaoRedirectURL,
		AuthorizeURL: cfg.KakaoAuthorizeURL,
		TokenURL:     cfg.KakaoTokenURL,
		UserInfoURL:  cfg.KakaoUserInfoURL,
	})
	if err != nil {
		return nil, nil, err
	}

	providers := provider.NewRegistry(kakaoProvider)

	userStore := user.NewPostgresStore(infra.DB)
	identityResolver := resolver.NewStoreResolver(userStore)

	cookieWriter := session.NewCookieWriter(!cfg.IsPlaintextHTTP())

	authHandler := handler.NewHandler(
		providers,
		identityResolver,
		codec,
		cookieWriter,
		userStore,
		collector,
	)

	authMiddleware := middleware.NewAuthMiddleware(codec, collector)
	loginLimiter := middleware.NewLoginRateLimiter(60)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.GinAuthenticate(authMiddleware))
	router.Use(middleware.GinRequestLog())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authGroup := router.Group("/auth", loginLimiter.Gin())
	authHandler.RegisterRoutes(authGroup)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	router.Static("/static", "./web")
	router.StaticFile("/home.html", "./web/home.html")
	router.StaticFile("/main.html", "./web/main.html")
	router.GET("/", func(c *gin.Context) {
		c.File("./web/main.html")
	})

	// ----------------------------
	// API Routes
	// ----------------------------

	api := router.Group("/api")
	authHandler.RegisterAPIRoutes(api)

	cleanup := func() error {
		loginLimiter.Stop()
		return infra.DB.Close()
	}

	return router, cleanup, nil
}
