package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
)

func maxBodySizeWithLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.ContentLength > maxBytes {
				respondTooLarge(w, r)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// MaxBodySizeFunc limits each request body to the size limit picks for it.
// A declared Content-Length above the limit is rejected with 413. Run it
// before any middleware that reads the body, such as CSRF.
func MaxBodySizeFunc(limit func(*http.Request) int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			maxBodySizeWithLimit(limit(r))(next).ServeHTTP(w, r)
		})
	}
}

// StorefrontBodyLimit returns SmallMaxBodySize for quote form posts and the
// JSON API, DefaultMaxBodySize for everything else.
func StorefrontBodyLimit(r *http.Request) int64 {
	if matchesPathPrefix(r.URL.Path, "/api/") || isQuotePath(r.URL.Path) {
		return SmallMaxBodySize
	}
	return DefaultMaxBodySize
}

// isQuotePath matches /products/{id}/quote and everything below it.
func isQuotePath(path string) bool {
	rest, ok := strings.CutPrefix(path, "/products/")
	if !ok {
		return false
	}
	_, sub, ok := strings.Cut(rest, "/")
	return ok && matchesPathPrefix("/"+sub, "/quote")
}

// Common size limits
const (
	KB = 1024
	MB = 1024 * KB

	// DefaultMaxBodySize applies to any route without a smaller limit (1MB)
	DefaultMaxBodySize = 1 * MB

	// SmallMaxBodySize applies to quote form posts and API bodies (64KB)
	SmallMaxBodySize = 64 * KB
)

// Timeout adds a timeout to request processing.
// If no duration is provided, DefaultTimeout (15s) is used.
// If the handler has not written anything when the deadline passes, the
// client gets 504.
func Timeout(timeout ...time.Duration) func(http.Handler) http.Handler {
	var duration time.Duration
	if len(timeout) > 0 {
		duration = timeout[0]
	} else {
		duration = DefaultTimeout
	}

	return timeoutWithDuration(duration)
}

func timeoutWithDuration(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			tw := &timeoutWriter{ResponseWriter: w}

			go func() {
				defer close(done)
				next.ServeHTTP(tw, r.WithContext(ctx))
			}()

			select {
			case <-done:
				return
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()

				tw.timedOut = true
				if !tw.wroteHeader {
					tw.wroteHeader = true
					respondTimeout(w, r)
				}
				// A handler that already started writing leaves a truncated response.
			}
		})
	}
}

// Common timeout values
const (
	// DefaultTimeout bounds a page render including the content source round trip
	DefaultTimeout = 15 * time.Second

	// ShortTimeout is for JSON API calls
	ShortTimeout = 5 * time.Second
)

// timeoutWriter drops writes once the deadline has passed.
type timeoutWriter struct {
	http.ResponseWriter
	mu          sync.Mutex
	wroteHeader bool
	timedOut    bool
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.wroteHeader || tw.timedOut {
		return
	}
	tw.wroteHeader = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.wroteHeader = true
		tw.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return tw.ResponseWriter.Write(b)
}
