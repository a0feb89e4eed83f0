package storefront

import (
	"net/http"
	"time"

	"github.com/dukerupert/maremansa/internal/cookie"
	"github.com/dukerupert/maremansa/internal/service"
)

// GetQuoteSessionID retrieves the quote session id from its cookie.
// Returns empty string if cookie is not present.
func GetQuoteSessionID(r *http.Request) string {
	return cookie.Get(r, cookie.QuoteCookieName)
}

// EnsureQuoteSession returns the request's quote session id, issuing a new
// cookie when the browser has none.
func EnsureQuoteSession(w http.ResponseWriter, r *http.Request, cookieConfig *cookie.Config, ttl time.Duration) (string, error) {
	if sid := GetQuoteSessionID(r); sid != "" {
		return sid, nil
	}

	sid, err := service.GenerateSessionID()
	if err != nil {
		return "", err
	}
	cookieConfig.SetSession(w, cookie.QuoteCookieName, sid, int(ttl.Seconds()))
	return sid, nil
}
