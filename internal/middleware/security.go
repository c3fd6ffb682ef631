package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/templui/habitkit/internal/ctxkeys"
)

const htmxOrigin = "https://cdn.jsdelivr.net"

// SecurityHeaders sets CSP and the usual hardening headers. Inline scripts
// only run with the per-request nonce, so NonceMiddleware must come first.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce := GetNonce(r.Context())

		scriptSrc := []string{"'self'", htmxOrigin}
		if nonce != "" {
			scriptSrc = append(scriptSrc, fmt.Sprintf("'nonce-%s'", nonce))
		}

		imgSrc := []string{"'self'", "data:"}
		if cfg := ctxkeys.Config(r.Context()); cfg != nil && cfg.S3Endpoint != "" {
			imgSrc = append(imgSrc, cfg.S3Endpoint)
		}

		csp := strings.Join([]string{
			"default-src 'self'",
			"script-src " + strings.Join(scriptSrc, " "),
			"style-src 'self' 'unsafe-inline'",
			"img-src " + strings.Join(imgSrc, " "),
			"connect-src 'self'",
			"frame-ancestors 'none'",
			"base-uri 'self'",
			"form-action 'self'",
		}, "; ")

		h := w.Header()
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		if cfg := ctxkeys.Config(r.Context()); cfg != nil && cfg.IsProduction() {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
