package toast

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

type Props struct {
	ID          string
	Title       string
	Description string
	Variant     Variant
	Icon        bool
	Dismissible bool
	// Duration in milliseconds before the toast hides itself. 0 keeps it.
	Duration int
}

var icons = map[Variant]string{
	VariantSuccess: "✓",
	VariantError:   "!",
	VariantWarning: "!",
	VariantInfo:    "i",
}

func Toast(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		variant := p.Variant
		if variant == "" {
			variant = VariantDefault
		}

		var b strings.Builder
		fmt.Fprintf(&b, `<div class="toast toast-%s" role="status" data-duration="%d"`, templ.EscapeString(string(variant)), p.Duration)
		if p.ID != "" {
			fmt.Fprintf(&b, ` id="%s"`, templ.EscapeString(p.ID))
		}
		b.WriteString(">")

		if icon, ok := icons[variant]; ok && p.Icon {
			fmt.Fprintf(&b, `<span class="toast-icon">%s</span>`, icon)
		}

		fmt.Fprintf(&b, `<div class="toast-body"><strong>%s</strong>`, templ.EscapeString(p.Title))
		if p.Description != "" {
			fmt.Fprintf(&b, `<p>%s</p>`, templ.EscapeString(p.Description))
		}
		b.WriteString("</div>")

		if p.Dismissible {
			b.WriteString(`<button type="button" class="toast-close" aria-label="Dismiss" data-dismiss="toast">×</button>`)
		}
		b.WriteString("</div>")

		_, err := io.WriteString(w, b.String())
		return err
	})
}
