package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSet_CookieAttributes(t *testing.T) {
	w := httptest.NewRecorder()
	cw := NewCookieWriter(true)

	cw.Set(w, AccessCookieName, "token-value", time.Hour)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}

	c := cookies[0]
	if c.Name != AccessCookieName {
		t.Errorf("name = %q, want %q", c.Name, AccessCookieName)
	}
	if c.Value != "token-value" {
		t.Errorf("value = %q", c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie is not HttpOnly")
	}
	if c.Path != "/" {
		t.Errorf("path = %q, want /", c.Path)
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("sameSite = %v, want Lax", c.SameSite)
	}
	if !c.Secure {
		t.Error("cookie is not Secure")
	}
	if c.MaxAge != 3600 {
		t.Errorf("maxAge = %d, want 3600", c.MaxAge)
	}
}

func TestSet_PlaintextHTTPDropsSecure(t *testing.T) {
	w := httptest.NewRecorder()
	cw := NewCookieWriter(false)

	cw.Set(w, RefreshCookieName, "v", time.Minute)

	if w.Result().Cookies()[0].Secure {
		t.Error("cookie is Secure in a plaintext-HTTP deployment")
	}
}

func TestClear_ExpiresImmediately(t *testing.T) {
	w := httptest.NewRecorder()
	cw := NewCookieWriter(true)

	cw.Clear(w, AccessCookieName)
	cw.Clear(w, RefreshCookieName)

	headers := w.Result().Header.Values("Set-Cookie")
	if len(headers) != 2 {
		t.Fatalf("got %d Set-Cookie headers, want 2", len(headers))
	}
	for _, h := range headers {
		if !strings.Contains(h, "Max-Age=0") {
			t.Errorf("header %q missing Max-Age=0", h)
		}
	}

	for i, c := range w.Result().Cookies() {
		if c.Value != "" {
			t.Errorf("cookie %d value = %q, want empty", i, c.Value)
		}
	}
}
