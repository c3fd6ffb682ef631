package handler

import (
	"net/http"

	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/ui"
	"github.com/templui/habitkit/internal/ui/pages"
)

type SettingsHandler struct{}

func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{}
}

func (h *SettingsHandler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Settings(ctxkeys.User(r.Context()), ctxkeys.Profile(r.Context())))
}
