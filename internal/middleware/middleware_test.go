package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/model"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimitLogs(t *testing.T) {
	handler := RateLimitLogs(2, time.Minute)(okHandler)

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/app/habits/x/logs", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		handler(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := send("10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d, want 200", i+1, rec.Code)
		}
	}

	rec := send("10.0.0.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: status %d, want 429", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if !strings.Contains(rec.Body.String(), "rate limit") {
		t.Errorf("body = %q", rec.Body.String())
	}

	if rec := send("10.0.0.2"); rec.Code != http.StatusOK {
		t.Errorf("other client: status %d, want 200", rec.Code)
	}
}

func TestRateLimitAuth(t *testing.T) {
	handler := RateLimitAuth(1, time.Minute)(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/auth/magic-link", nil)
	req.RemoteAddr = "192.0.2.7:5555"

	first := httptest.NewRecorder()
	handler(first, req)
	second := httptest.NewRecorder()
	handler(second, req)

	if first.Code != http.StatusOK || second.Code != http.StatusTooManyRequests {
		t.Errorf("statuses = %d, %d; want 200, 429", first.Code, second.Code)
	}
}

func TestRequireAuthAPI(t *testing.T) {
	handler := RequireAuthAPI(okHandler)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/app/habits/x/logs", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/app/habits/x/logs", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "u1"}))
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("signed in: status %d, want 200", rec.Code)
	}
}

func TestRequireAuthRedirects(t *testing.T) {
	handler := RequireAuth(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/app/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Header().Get("HX-Redirect") != "/auth" {
		t.Errorf("HX-Redirect = %q, want /auth", rec.Header().Get("HX-Redirect"))
	}

	req = httptest.NewRequest(http.MethodGet, "/app/dashboard", nil)
	ctx := ctxkeys.WithUser(req.Context(), &model.User{ID: "u1"})
	ctx = ctxkeys.WithProfile(ctx, &model.Profile{UserID: "u1"})
	rec = httptest.NewRecorder()
	handler(rec, req.WithContext(ctx))
	if loc := rec.Header().Get("Location"); loc != "/auth/onboarding" {
		t.Errorf("Location = %q, want /auth/onboarding", loc)
	}
}

func TestCSRFProtection(t *testing.T) {
	handler := CSRFProtection(http.HandlerFunc(okHandler))

	get := httptest.NewRecorder()
	handler.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := get.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected csrf cookie on GET")
	}
	token := cookies[0].Value

	missing := httptest.NewRequest(http.MethodPost, "/app/habits/x/logs", strings.NewReader(`{}`))
	missing.Header.Set("Content-Type", "application/json")
	missing.AddCookie(cookies[0])
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, missing)
	if rec.Code != http.StatusForbidden {
		t.Errorf("missing token: status %d, want 403", rec.Code)
	}

	withHeader := httptest.NewRequest(http.MethodPost, "/app/habits/x/logs", strings.NewReader(`{}`))
	withHeader.Header.Set("Content-Type", "application/json")
	withHeader.Header.Set(csrfHeader, token)
	withHeader.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, withHeader)
	if rec.Code != http.StatusOK {
		t.Errorf("header token: status %d, want 200", rec.Code)
	}

	form := httptest.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader("csrf_token="+token))
	form.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	form.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, form)
	if rec.Code != http.StatusOK {
		t.Errorf("form token: status %d, want 200", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler := NonceMiddleware(SecurityHeaders(http.HandlerFunc(okHandler)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "'nonce-") {
		t.Errorf("CSP missing nonce: %q", csp)
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "10.0.0.1:80", "203.0.113.5"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.2 "}, "10.0.0.1:80", "198.51.100.2"},
		{"remote addr", nil, "192.0.2.1:1234", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
