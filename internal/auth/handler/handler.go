// Package handler ties the provider exchange, identity resolution,
// token issuance and cookie writing into the HTTP login flow.
package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"kakao-auth-service/internal/auth/provider"
	"kakao-auth-service/internal/auth/resolver"
	"kakao-auth-service/internal/logger"
	"kakao-auth-service/internal/metrics"
	"kakao-auth-service/internal/middleware"
	"kakao-auth-service/internal/session"
	"kakao-auth-service/internal/token"
	"kakao-auth-service/internal/user"
)

// successURL is where the browser lands after a completed login.
const successURL = "/home.html"

type Handler struct {
	providers *provider.Registry
	resolver  resolver.Resolver
	codec     *token.Codec
	cookies   *session.CookieWriter
	users     user.Store
	metrics   *metrics.Collector
}

func NewHandler(
	registry *provider.Registry,
	resolver resolver.Resolver,
	codec *token.Codec,
	cookies *session.CookieWriter,
	users user.Store,
	collector *metrics.Collector,
) *Handler {
	return &Handler{
		providers: registry,
		resolver:  resolver,
		codec:     codec,
		cookies:   cookies,
		users:     users,
		metrics:   collector,
	}
}

// RegisterRoutes registers the login flow under the given group,
// typically mounted at /auth.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/:provider/login-url", h.loginURL)
	r.GET("/:provider/callback", h.callback)
	r.POST("/:provider/logout", h.logout)
}

// RegisterAPIRoutes registers the authenticated API surface.
func (h *Handler) RegisterAPIRoutes(api *gin.RouterGroup) {
	api.GET("/check-auth", h.checkAuth)

	me := api.Group("/users/me")
	me.Use(middleware.GinRequirePrincipal())
	me.GET("/info", h.userInfo)
	me.DELETE("/withdraw", h.withdraw)
}

func (h *Handler) loginURL(c *gin.Context) {
	p, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown oauth provider"})
		return
	}

	c.String(http.StatusOK, p.AuthCodeURL())
}

// callback drives one login attempt end to end. Any failure in any
// step terminates the attempt and redirects the browser to the error
// landing page with a classified code; nothing is retried.
func (h *Handler) callback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown oauth provider"})
		return
	}

	// The provider reports consent/config failures as an error query
	// parameter instead of a code.
	if providerErr := c.Query("error"); providerErr != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    providerErr,
			"desc":     c.Query("error_description"),
			"ip":       c.ClientIP(),
		})
		code, message := classifyProviderError(providerErr)
		h.failLogin(c, code, message)
		return
	}

	ctx := c.Request.Context()

	providerToken, err := p.ExchangeCode(ctx, c.Query("code"))
	if err != nil {
		h.failLoginErr(c, providerName, "code exchange failed", err)
		return
	}

	profile, err := p.FetchProfile(ctx, providerToken)
	if err != nil {
		h.failLoginErr(c, providerName, "profile fetch failed", err)
		return
	}

	userID, err := h.resolver.Resolve(ctx, profile)
	if err != nil {
		h.failLoginErr(c, providerName, "identity resolution failed", err)
		return
	}

	accessToken, err := h.codec.IssueAccess(userID)
	if err != nil {
		h.failLoginErr(c, providerName, "access token issuance failed", err)
		return
	}
	refreshToken, err := h.codec.IssueRefresh(userID)
	if err != nil {
		h.failLoginErr(c, providerName, "refresh token issuance failed", err)
		return
	}

	h.cookies.Set(c.Writer, session.AccessCookieName, accessToken, h.codec.AccessTTL())
	h.cookies.Set(c.Writer, session.RefreshCookieName, refreshToken, h.codec.RefreshTTL())

	h.metrics.RecordLoginSuccess()
	logger.Info("login successful", map[string]any{
		"provider": providerName,
		"user_id":  userID,
	})

	c.Redirect(http.StatusFound, successURL)
}

func (h *Handler) failLoginErr(c *gin.Context, providerName, step string, err error) {
	logger.Warn("login failed", map[string]any{
		"provider": providerName,
		"step":     step,
		"error":    err.Error(),
		"ip":       c.ClientIP(),
	})
	code, message := classifyFlowError(err)
	h.failLogin(c, code, message)
}

func (h *Handler) failLogin(c *gin.Context, code, message string) {
	h.metrics.RecordLoginFailure(code)

	query := url.Values{}
	query.Set("error", code)
	query.Set("message", message)
	c.Redirect(http.StatusFound, failureURL+"?"+query.Encode())
}

func (h *Handler) logout(c *gin.Context) {
	h.cookies.Clear(c.Writer, session.AccessCookieName)
	h.cookies.Clear(c.Writer, session.RefreshCookieName)
	c.String(http.StatusOK, "Logout successful")
}

func (h *Handler) checkAuth(c *gin.Context) {
	if _, ok := middleware.PrincipalFromContext(c.Request.Context()); !ok {
		c.String(http.StatusUnauthorized, "Not authenticated")
		return
	}
	c.String(http.StatusOK, "Authenticated")
}

func (h *Handler) userInfo(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c.Request.Context())

	u, err := h.users.FindByID(c.Request.Context(), principal.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"nickname": u.Nickname})
}

// withdraw deletes the account. The kakao_id → user_id mapping is
// append-only, so a later login with the same Kakao account creates a
// fresh user id rather than reviving this one.
func (h *Handler) withdraw(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c.Request.Context())

	if err := h.users.Delete(c.Request.Context(), principal.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to withdraw user"})
		return
	}

	h.cookies.Clear(c.Writer, session.AccessCookieName)
	h.cookies.Clear(c.Writer, session.RefreshCookieName)

	logger.Info("user withdrawn", map[string]any{"user_id": principal.UserID})
	c.String(http.StatusOK, "Withdrawal successful")
}
