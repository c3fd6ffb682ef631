package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/service"
)

type AccountHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAccountHandler(authService *service.AuthService, userService *service.UserService) *AccountHandler {
	return &AccountHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.DeleteAccount(r.Context(), user.ID)
	if err != nil {
		slog.Error("account deletion failed", "error", err, "user_id", user.ID)
		toastError(w, r, "Failed to delete account. Please try again.")
		return
	}

	h.authService.ClearJWTCookie(w)

	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}
