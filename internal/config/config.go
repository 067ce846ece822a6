package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	defaultAuthorizeURL = "https://kauth.kakao.com/oauth/authorize"
	defaultTokenURL     = "https://kauth.kakao.com/oauth/token"
	defaultUserInfoURL  = "https://kapi.kakao.com/v2/user/me"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	// Env selects the deployment environment: local, dev or prod.
	// local runs on plaintext HTTP, so session cookies drop the
	// Secure attribute there.
	Env string `env:"APP_ENV" envDefault:"local"`

	KakaoClientID     string `env:"KAKAO_CLIENT_ID"`
	KakaoClientSecret string `env:"KAKAO_CLIENT_SECRET"`
	KakaoRedirectURL  string `env:"KAKAO_REDIRECT_URL"`
	KakaoAuthorizeURL string `env:"KAKAO_AUTHORIZE_URL"`
	KakaoTokenURL     string `env:"KAKAO_TOKEN_URL"`
	KakaoUserInfoURL  string `env:"KAKAO_USER_INFO_URL"`

	JWTSecret string `env:"JWT_SECRET"`

	// Token lifetimes in seconds. The cookie Max-Age for each token
	// matches its lifetime so cookie and token expire together.
	AccessTokenTTLSeconds  int64 `env:"ACCESS_TOKEN_TTL_SECONDS" envDefault:"3600"`
	RefreshTokenTTLSeconds int64 `env:"REFRESH_TOKEN_TTL_SECONDS" envDefault:"604800"`

	DatabaseDSN string `env:"DATABASE_DSN"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	if cfg.KakaoAuthorizeURL == "" {
		cfg.KakaoAuthorizeURL = defaultAuthorizeURL
	}
	if cfg.KakaoTokenURL == "" {
		cfg.KakaoTokenURL = defaultTokenURL
	}
	if cfg.KakaoUserInfoURL == "" {
		cfg.KakaoUserInfoURL = defaultUserInfoURL
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.JWTSecret) < 32 {
		return errors.New("config: JWT_SECRET must be at least 256 bits (32 bytes)")
	}
	if c.AccessTokenTTLSeconds <= 0 || c.RefreshTokenTTLSeconds <= 0 {
		return errors.New("config: token TTLs must be positive")
	}
	if c.KakaoClientID == "" || c.KakaoClientSecret == "" || c.KakaoRedirectURL == "" {
		return errors.New("config: kakao oauth config missing required fields")
	}
	if c.DatabaseDSN == "" {
		return errors.New("config: DATABASE_DSN is required")
	}
	return nil
}

// IsLocal reports whether the service runs under the local profile.
func (c Config) IsLocal() bool {
	return c.Env == "local"
}

// IsPlaintextHTTP reports whether the deployment serves plaintext HTTP.
// Only the local profile does; dev and prod sit behind HTTPS.
func (c Config) IsPlaintextHTTP() bool {
	return c.IsLocal()
}
