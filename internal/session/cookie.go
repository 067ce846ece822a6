// Package session serializes issued tokens into response cookies.
package session

import (
	"net/http"
	"time"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// CookieWriter issues and clears token cookies. Whether cookies carry
// the Secure attribute is an environment decision made once at wiring
// time: plaintext-HTTP deployments (local) must not set it or browsers
// drop the cookie.
type CookieWriter struct {
	secure bool
}

func NewCookieWriter(secure bool) *CookieWriter {
	return &CookieWriter{secure: secure}
}

// Set issues a token cookie. HttpOnly, Path=/ and SameSite=Lax are
// unconditional; Lax rather than Strict so the cookie survives the
// provider redirect back into the site.
func (cw *CookieWriter) Set(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   cw.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires a token cookie immediately on the client.
func (cw *CookieWriter) Clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // serializes as Max-Age=0
		HttpOnly: true,
		Secure:   cw.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
