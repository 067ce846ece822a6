package middleware

import (
	"context"
	"net/http"
	"strings"

	"kakao-auth-service/internal/auth"
	"kakao-auth-service/internal/metrics"
	"kakao-auth-service/internal/session"
	"kakao-auth-service/internal/token"
)

// unexported, collision-proof context key
type principalContextKeyType struct{}

var principalKey = principalContextKeyType{}

// PrincipalFromContext extracts the authenticated principal from context.
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(auth.Principal)
	return p, ok
}

// TokenValidator validates a session token string.
type TokenValidator interface {
	Validate(tokenString string) (*token.Claims, error)
}

// AuthMiddleware turns an inbound token into a request-scoped
// principal. It is permissive: an absent or invalid token means the
// request proceeds without a principal, and downstream authorization
// decides. It never rejects a request itself.
type AuthMiddleware struct {
	Validator TokenValidator
	Metrics   *metrics.Collector
}

func NewAuthMiddleware(validator TokenValidator, collector *metrics.Collector) *AuthMiddleware {
	return &AuthMiddleware{Validator: validator, Metrics: collector}
}

func (a *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := resolveToken(r)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.Validator.Validate(tokenString)
		a.Metrics.RecordTokenValidation(err == nil)
		if err != nil {
			// A presented-but-invalid token is not an error here;
			// the request just stays unauthenticated.
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, auth.Principal{
			UserID: claims.Subject,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveToken reads the access-token cookie first, then the
// Authorization header. First non-empty source wins.
func resolveToken(r *http.Request) string {
	if cookie, err := r.Cookie(session.AccessCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	bearer := r.Header.Get("Authorization")
	if strings.HasPrefix(bearer, "Bearer ") {
		return strings.TrimPrefix(bearer, "Bearer ")
	}
	return ""
}
