package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/service"
	"github.com/templui/habitkit/internal/ui"
	"github.com/templui/habitkit/internal/ui/components/toast"
	"github.com/templui/habitkit/internal/ui/pages"
	"github.com/templui/habitkit/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) AuthPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Auth(""))
}

func (h *AuthHandler) SendMagicLink(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))

	if email == "" {
		ui.Render(w, r, pages.Auth("Email is required"))
		return
	}

	err := validation.ValidateEmail(email)
	if err != nil {
		ui.Render(w, r, pages.Auth("Please provide a valid email address"))
		return
	}

	err = h.authService.SendMagicLink(r.Context(), email)
	if err != nil {
		// the page is the same either way so addresses cannot be probed
		slog.Warn("magic link send failed", "error", err, "email", email)
	}

	if r.URL.Query().Get("resend") == "true" {
		renderToast(w, r, toast.VariantSuccess, "Magic link sent", "Check your email for a new magic link")
		return
	}

	ui.Render(w, r, pages.MagicLinkSent(email))
}

func (h *AuthHandler) VerifyMagicLink(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	user, err := h.authService.VerifyMagicLink(token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMagicLink) {
			slog.Warn("magic link verification failed", "error", err)
		} else {
			slog.Error("magic link verification failed", "error", err)
		}
		w.WriteHeader(http.StatusUnauthorized)
		ui.Render(w, r, pages.Auth("Invalid or expired magic link. Please try again."))
		return
	}

	jwtToken, expiresAt, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate JWT", "error", err, "user_id", user.ID)
		ui.Render(w, r, pages.Auth("An error occurred. Please try again."))
		return
	}

	h.authService.SetJWTCookie(w, jwtToken, expiresAt)

	needsOnboarding, err := h.authService.NeedsOnboarding(user.ID)
	if err != nil {
		slog.Warn("failed to check onboarding status", "error", err, "user_id", user.ID)
	}

	if needsOnboarding {
		slog.Info("new user needs onboarding", "user_id", user.ID)
		http.Redirect(w, r, "/auth/onboarding", http.StatusSeeOther)
		return
	}

	slog.Info("user logged in via magic link", "user_id", user.ID)
	http.Redirect(w, r, "/app/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) OnboardingPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Onboarding(""))
}

func (h *AuthHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.authService.CompleteOnboarding(r.Context(), user.ID, r.FormValue("name"))
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			ui.Render(w, r, pages.Onboarding(verr.Error()))
			return
		}
		slog.Error("onboarding failed", "error", err, "user_id", user.ID)
		ui.Render(w, r, pages.Onboarding("Something went wrong. Please try again."))
		return
	}

	http.Redirect(w, r, "/app/dashboard", http.StatusSeeOther)
}
