// Package cookie provides cookie helpers so every storefront cookie is
// written with the same domain, path and security attributes.
package cookie

import (
	"net/http"
	"time"
)

// Config holds cookie configuration for domain-aware cookie operations.
type Config struct {
	// BaseDomain scopes cookies to a parent domain (e.g. "maremansa.com.br"
	// to share with www). Empty means host-only cookies.
	BaseDomain string

	// Secure determines whether cookies require HTTPS.
	// Should be true in production, false in development.
	Secure bool
}

// NewConfig creates a new cookie configuration.
//
// Example:
//
//	cfg := cookie.NewConfig("maremansa.com.br", true) // production
//	cfg := cookie.NewConfig("", false)                // development
func NewConfig(baseDomain string, secure bool) *Config {
	return &Config{
		BaseDomain: baseDomain,
		Secure:     secure,
	}
}

// Domain returns the Domain attribute for cookies, "" for host-only.
func (c *Config) Domain() string {
	if c.BaseDomain == "" {
		return ""
	}
	return "." + c.BaseDomain
}

// SetSession sets an HttpOnly, SameSite=Lax cookie on path "/".
func (c *Config) SetSession(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, c.build(name, value, maxAge))
}

// ClearSession removes a cookie previously written by SetSession.
func (c *Config) ClearSession(w http.ResponseWriter, name string) {
	http.SetCookie(w, c.build(name, "", -1))
}

// SetSessionWithExpiry is SetSession with an absolute expiry instead of MaxAge.
func (c *Config) SetSessionWithExpiry(w http.ResponseWriter, name, value string, expires time.Time) {
	ck := c.build(name, value, 0)
	ck.Expires = expires
	http.SetCookie(w, ck)
}

func (c *Config) build(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Domain:   c.Domain(),
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Get retrieves a cookie value from the request.
// Returns empty string if cookie not found.
func Get(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Cookie names used by the storefront.
const (
	// QuoteCookieName identifies the browser's quote sessions.
	QuoteCookieName = "maremansa_quote"

	// CSRFCookieName stores the CSRF token for form protection.
	CSRFCookieName = "maremansa_csrf"
)
