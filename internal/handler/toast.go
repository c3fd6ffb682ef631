package handler

import (
	"net/http"

	"github.com/templui/habitkit/internal/ui"
	"github.com/templui/habitkit/internal/ui/components/toast"
)

func renderToast(w http.ResponseWriter, r *http.Request, variant toast.Variant, title, description string) {
	ui.RenderOOB(w, r, toast.Toast(toast.Props{
		Title:       title,
		Description: description,
		Variant:     variant,
		Icon:        true,
		Dismissible: true,
		Duration:    5000,
	}), "beforeend:#toast-container")
}

func toastError(w http.ResponseWriter, r *http.Request, description string) {
	renderToast(w, r, toast.VariantError, "Error", description)
}

func toastSuccess(w http.ResponseWriter, r *http.Request, description string) {
	renderToast(w, r, toast.VariantSuccess, "Success", description)
}
