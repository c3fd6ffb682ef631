package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/ui/layouts"
)

// page wraps a body written into a builder in the base layout.
func page(title string, body func(ctx context.Context, b *strings.Builder)) templ.Component {
	return layouts.Base(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		body(ctx, &b)
		_, err := io.WriteString(w, b.String())
		return err
	}))
}

func esc(s string) string {
	return templ.EscapeString(s)
}

func csrfField(ctx context.Context) string {
	return fmt.Sprintf(`<input type="hidden" name="csrf_token" value="%s">`, esc(ctxkeys.CSRFToken(ctx)))
}

func errorMessage(b *strings.Builder, msg string) {
	if msg != "" {
		fmt.Fprintf(b, `<p class="error" role="alert">%s</p>`, esc(msg))
	}
}
