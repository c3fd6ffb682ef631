package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/templui/habitkit/internal/ctxkeys"
)

func Home() templ.Component {
	return page("", func(ctx context.Context, b *strings.Builder) {
		tagline := ""
		if cfg := ctxkeys.Config(ctx); cfg != nil {
			tagline = cfg.AppTagline
		}
		fmt.Fprintf(b, `<section class="card"><h1>%s</h1>`, esc(tagline))
		b.WriteString(`<p>Track the habits you care about one day at a time. Mark each day done, skipped or failed and watch your streaks grow.</p>`)
		if ctxkeys.User(ctx) != nil {
			b.WriteString(`<a href="/app/dashboard">Open your dashboard</a>`)
		} else {
			b.WriteString(`<a href="/auth">Get started</a>`)
		}
		b.WriteString(`</section>`)
	})
}

func NotFound() templ.Component {
	return page("Not found", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="card"><h1>Page not found</h1><p>The page you are looking for does not exist.</p><a href="/">Go home</a></section>`)
	})
}
