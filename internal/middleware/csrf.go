package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/dukerupert/maremansa/internal/cookie"
)

const (
	// CSRFTokenLength is the length of the CSRF token in bytes
	CSRFTokenLength = 32

	// CSRFCookieName is the name of the CSRF cookie
	CSRFCookieName = cookie.CSRFCookieName

	// CSRFHeaderName is the header name for CSRF token
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFFormFieldName is the form field name for CSRF token
	CSRFFormFieldName = "csrf_token"

	// CSRFContextKey is the context key for the CSRF token
	CSRFContextKey contextKey = "csrf_token"
)

// CSRFConfig configures CSRF protection
type CSRFConfig struct {
	// CookieConfig is the cookie configuration for domain-scoped cookies
	CookieConfig *cookie.Config

	// CookieName is the name of the CSRF cookie
	// Default: "csrf_token"
	CookieName string

	// CookieMaxAge is the max age of the CSRF cookie in seconds
	// Default: 86400 (24 hours)
	CookieMaxAge int

	// SkipPaths are paths that should skip CSRF validation
	// The JSON API is cookie-less and skips it
	SkipPaths []string

	// ErrorHandler is called when CSRF validation fails
	// Default: returns 403 Forbidden
	ErrorHandler func(w http.ResponseWriter, r *http.Request)
}

// DefaultCSRFConfig returns sensible defaults.
// Requires a cookie.Config to be provided for domain scoping.
func DefaultCSRFConfig(cookieConfig *cookie.Config) CSRFConfig {
	return CSRFConfig{
		CookieConfig: cookieConfig,
		CookieName:   CSRFCookieName,
		CookieMaxAge: 86400, // 24 hours
		SkipPaths:    []string{"/api/"},
		ErrorHandler: nil,
	}
}

// CSRF provides CSRF protection middleware.
// Requires CSRFConfig with a valid cookie.Config.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	// Validate required config
	if cfg.CookieConfig == nil {
		panic("csrf: CookieConfig is required")
	}

	// Fill in missing values with defaults
	if cfg.CookieName == "" {
		cfg.CookieName = CSRFCookieName
	}
	if cfg.CookieMaxAge == 0 {
		cfg.CookieMaxAge = 86400 // 24 hours
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Boundary matching: /api/ must not match /api-evil/
			for _, skipPath := range cfg.SkipPaths {
				if matchesPathPrefix(r.URL.Path, skipPath) {
					next.ServeHTTP(w, r)
					return
				}
			}

			// Get or create CSRF token
			token := getCSRFTokenFromCookie(r, cfg.CookieName)
			if token == "" {
				var err error
				token, err = generateCSRFToken()
				if err != nil {
					respondInternalError(w, r, err)
					return
				}
				setCSRFCookie(w, token, cfg)
			}

			// Add token to context for templates
			ctx := context.WithValue(r.Context(), CSRFContextKey, token)
			r = r.WithContext(ctx)

			// For safe methods, just continue
			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			// For unsafe methods, validate the token
			submittedToken := getSubmittedCSRFToken(r)
			if !validateCSRFToken(token, submittedToken) {
				if cfg.ErrorHandler != nil {
					cfg.ErrorHandler(w, r)
				} else {
					respondForbidden(w, r)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetCSRFToken retrieves the CSRF token from the request context
// Templates render it as <input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
func GetCSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(CSRFContextKey).(string); ok {
		return token
	}
	return ""
}

// generateCSRFToken creates a new random CSRF token.
func generateCSRFToken() (string, error) {
	b := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// getCSRFTokenFromCookie retrieves the CSRF token from the cookie
func getCSRFTokenFromCookie(r *http.Request, cookieName string) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setCSRFCookie sets the CSRF token cookie. It is not HttpOnly so scripts
// can echo it in the X-CSRF-Token header.
func setCSRFCookie(w http.ResponseWriter, token string, config CSRFConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieName,
		Value:    token,
		Domain:   config.CookieConfig.Domain(),
		Path:     "/",
		MaxAge:   config.CookieMaxAge,
		Secure:   config.CookieConfig.Secure,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}

// getSubmittedCSRFToken retrieves the submitted CSRF token from the
// X-CSRF-Token header or a url-encoded form field. Storefront forms are never
// multipart, so a multipart body is not parsed.
func getSubmittedCSRFToken(r *http.Request) string {
	if token := r.Header.Get(CSRFHeaderName); token != "" {
		return token
	}

	if err := r.ParseForm(); err != nil {
		return ""
	}
	return r.PostForm.Get(CSRFFormFieldName)
}

// validateCSRFToken validates the submitted token against the cookie token
func validateCSRFToken(cookieToken, submittedToken string) bool {
	if cookieToken == "" || submittedToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submittedToken)) == 1
}

// isSafeMethod returns true for HTTP methods that don't change state
func isSafeMethod(method string) bool {
	return method == http.MethodGet ||
		method == http.MethodHead ||
		method == http.MethodOptions ||
		method == http.MethodTrace
}

// matchesPathPrefix reports whether requestPath is skipPath or lies below it
// on a path boundary.
func matchesPathPrefix(requestPath, skipPath string) bool {
	if !strings.HasPrefix(requestPath, skipPath) {
		return false
	}

	// If skipPath ends with /, it already has a proper boundary
	if strings.HasSuffix(skipPath, "/") {
		return true
	}

	// For paths without trailing slash, check boundary
	// requestPath must be exactly skipPath, or have / after it
	if len(requestPath) == len(skipPath) {
		return true // Exact match
	}

	// Check that the character after skipPath is a path separator
	return requestPath[len(skipPath)] == '/'
}
