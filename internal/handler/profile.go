package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/service"
	"github.com/templui/habitkit/internal/ui"
	"github.com/templui/habitkit/internal/ui/layouts"
	"github.com/templui/habitkit/internal/validation"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.profileService.UpdateName(user.ID, r.FormValue("name"))
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			toastError(w, r, verr.Error())
			return
		}
		slog.Error("failed to update name", "error", err, "user_id", user.ID)
		toastError(w, r, "Failed to update name")
		return
	}

	profile, err := h.profileService.ByUserID(user.ID)
	if err != nil {
		slog.Error("failed to load profile", "error", err, "user_id", user.ID)
	}

	toastSuccess(w, r, "Name updated successfully")

	if profile != nil {
		ui.Render(w, r, layouts.AppSidebarDropdown(user, profile))
	}
}
