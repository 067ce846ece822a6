// Package kakao implements the OAuthProvider contract against the
// Kakao OAuth2 API. Kakao is plain OAuth2, not OIDC: there is no
// id_token, the profile comes from a separate user-info endpoint.
package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"kakao-auth-service/internal/auth"
	"kakao-auth-service/internal/auth/provider"
	"kakao-auth-service/internal/logger"
)

const providerName = "kakao"

// scope is fixed: the authorize URL always requests the same profile
// fields the local user record stores.
const scope = "profile_nickname profile_image account_email"

// requestTimeout bounds each provider call. The callback makes two
// sequential calls, so worst-case external latency is twice this.
const requestTimeout = 5 * time.Second

// Config holds the registered client and endpoint URLs. Endpoint URLs
// are overridable so tests can point the provider at a local server.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	AuthorizeURL string
	TokenURL     string
	UserInfoURL  string

	// Timeout overrides the per-call deadline. Zero means the default.
	Timeout time.Duration
}

type Provider struct {
	oauthConfig *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

func New(cfg Config) (*Provider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, errors.New("kakao oauth config missing required fields")
	}
	if cfg.AuthorizeURL == "" || cfg.TokenURL == "" || cfg.UserInfoURL == "" {
		return nil, errors.New("kakao oauth config missing endpoint URLs")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = requestTimeout
	}

	return &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthorizeURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: strings.Fields(scope),
		},
		userInfoURL: cfg.UserInfoURL,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// compile-time check
var _ provider.OAuthProvider = (*Provider)(nil)

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the authorization URL with client id, redirect
// URI, response_type=code and the fixed scope string.
func (p *Provider) AuthCodeURL() string {
	return p.oauthConfig.AuthCodeURL("")
}

// ExchangeCode posts the one-time code to the token endpoint as
// form-url-encoded grant_type=authorization_code. A blank code fails
// immediately without touching the network. Every transport failure,
// timeout or non-2xx response collapses into auth.ErrExternalService;
// raw provider error text goes to the server log only.
func (p *Provider) ExchangeCode(ctx context.Context, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("%w: authorization code is required", auth.ErrInvalidRequest)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	tok, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		logFields := map[string]any{"error": err.Error()}
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			logFields["status"] = retrieveErr.Response.StatusCode
			logFields["body"] = string(retrieveErr.Body)
		}
		logger.Error("kakao token exchange failed", logFields)
		return "", fmt.Errorf("%w: token exchange", auth.ErrExternalService)
	}

	if tok.AccessToken == "" {
		logger.Error("kakao token response missing access_token", nil)
		return "", fmt.Errorf("%w: empty access token", auth.ErrExternalService)
	}
	return tok.AccessToken, nil
}

// kakaoUserInfo is the typed shape of the user-info response. Absent
// fields decode to zero values; only the id is mandatory.
type kakaoUserInfo struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname        string `json:"nickname"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

// FetchProfile gets the user profile from the user-info endpoint with
// the provider access token. Same timeout and error-mapping policy as
// ExchangeCode.
func (p *Provider) FetchProfile(ctx context.Context, accessToken string) (*auth.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build user info request", auth.ErrExternalService)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		logger.Error("kakao user info request failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: user info request", auth.ErrExternalService)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("kakao user info read failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: user info response", auth.ErrExternalService)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error("kakao user info returned non-2xx", map[string]any{
			"status": resp.StatusCode,
			"body":   string(body),
		})
		return nil, fmt.Errorf("%w: user info status %d", auth.ErrExternalService, resp.StatusCode)
	}

	var info kakaoUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		logger.Error("kakao user info decode failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: malformed user info", auth.ErrExternalService)
	}
	if info.ID == 0 {
		logger.Error("kakao user info missing id", nil)
		return nil, fmt.Errorf("%w: user info missing id", auth.ErrExternalService)
	}

	return &auth.Profile{
		ExternalID: info.ID,
		Email:      info.KakaoAccount.Email,
		Nickname:   info.KakaoAccount.Profile.Nickname,
		AvatarURL:  info.KakaoAccount.Profile.ProfileImageURL,
	}, nil
}
