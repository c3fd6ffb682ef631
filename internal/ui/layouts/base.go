package layouts

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/templui/habitkit/internal/ctxkeys"
	"github.com/templui/habitkit/internal/model"
)

const htmxSrc = "https://cdn.jsdelivr.net/npm/htmx.org@2.0.4/dist/htmx.min.js"

// toastScript hides toasts after their data-duration and wires dismiss buttons.
const toastScript = `document.addEventListener("click",function(e){var b=e.target.closest("[data-dismiss=toast]");if(b){b.closest(".toast").remove()}});` +
	`document.addEventListener("htmx:load",function(e){e.detail.elt.querySelectorAll&&e.detail.elt.querySelectorAll(".toast[data-duration]").forEach(function(t){var d=+t.dataset.duration;if(d>0){setTimeout(function(){t.remove()},d)}})});`

const styles = `body{font-family:system-ui,sans-serif;margin:0;color:#111;background:#fafafa}` +
	`main{max-width:56rem;margin:0 auto;padding:1.5rem}nav{display:flex;gap:1rem;align-items:center;padding:.75rem 1.5rem;border-bottom:1px solid #e5e5e5;background:#fff}` +
	`nav .spacer{flex:1}.card{background:#fff;border:1px solid #e5e5e5;border-radius:.5rem;padding:1rem;margin-bottom:1rem}` +
	`.grid{display:grid;grid-template-columns:repeat(15,1fr);gap:.25rem}.cell{aspect-ratio:1;border-radius:.2rem;background:#eee}.cell.done{background:#16a34a}` +
	`.toast{background:#fff;border:1px solid #ddd;border-radius:.5rem;padding:.75rem;margin:.5rem;display:flex;gap:.5rem}.toast-error{border-color:#dc2626}.toast-success{border-color:#16a34a}` +
	`#toast-container{position:fixed;bottom:1rem;right:1rem;z-index:50}.status-done{color:#16a34a}.status-fail{color:#dc2626}.status-skip{color:#737373}`

// Base is the HTML document shell. The CSRF token rides on every HTMX
// request through hx-headers.
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		appName := "Habitkit"
		if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
			appName = cfg.AppName
		}
		if title != "" {
			title = title + " · " + appName
		} else {
			title = appName
		}

		nonce := templ.EscapeString(templ.GetNonce(ctx))
		csrf := templ.EscapeString(ctxkeys.CSRFToken(ctx))

		var b strings.Builder
		b.WriteString(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		fmt.Fprintf(&b, `<title>%s</title>`, templ.EscapeString(title))
		fmt.Fprintf(&b, `<meta name="csrf-token" content="%s">`, csrf)
		fmt.Fprintf(&b, `<style>%s</style>`, styles)
		fmt.Fprintf(&b, `<script src="%s" nonce="%s"></script>`, htmxSrc, nonce)
		fmt.Fprintf(&b, `<script nonce="%s">%s</script>`, nonce, toastScript)
		fmt.Fprintf(&b, `</head><body hx-headers='{"X-CSRF-Token": "%s"}'>`, csrf)
		b.WriteString(nav(ctx, appName))
		b.WriteString(`<main>`)

		err := body.Render(ctx, &b)
		if err != nil {
			return err
		}

		b.WriteString(`</main><div id="toast-container"></div></body></html>`)
		_, err = io.WriteString(w, b.String())
		return err
	})
}

func nav(ctx context.Context, appName string) string {
	var b strings.Builder
	b.WriteString(`<nav>`)
	user := ctxkeys.User(ctx)
	if user == nil {
		fmt.Fprintf(&b, `<a href="/"><strong>%s</strong></a><span class="spacer"></span><a href="/auth">Sign in</a>`, templ.EscapeString(appName))
		b.WriteString(`</nav>`)
		return b.String()
	}

	fmt.Fprintf(&b, `<a href="/app/dashboard"><strong>%s</strong></a>`, templ.EscapeString(appName))
	for _, link := range []struct{ href, label string }{
		{"/app/dashboard", "Today"},
		{"/app/habits", "Habits"},
		{"/app/settings", "Settings"},
	} {
		class := ""
		if strings.HasPrefix(ctxkeys.URLPath(ctx), link.href) {
			class = ` class="active"`
		}
		fmt.Fprintf(&b, `<a href="%s"%s>%s</a>`, link.href, class, link.label)
	}
	b.WriteString(`<span class="spacer"></span>`)
	b.WriteString(userMenu(user, ctxkeys.Profile(ctx), false))
	b.WriteString(`<form method="post" action="/auth/logout">`)
	fmt.Fprintf(&b, `<input type="hidden" name="csrf_token" value="%s">`, templ.EscapeString(ctxkeys.CSRFToken(ctx)))
	b.WriteString(`<button type="submit">Sign out</button></form></nav>`)
	return b.String()
}

// AppSidebarDropdown re-renders the signed-in user's menu out of band, e.g.
// after the display name changed.
func AppSidebarDropdown(user *model.User, profile *model.Profile) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, userMenu(user, profile, true))
		return err
	})
}

func userMenu(user *model.User, profile *model.Profile, oob bool) string {
	label := user.Email
	if profile != nil && profile.Name != "" {
		label = profile.Name
	}
	swap := ""
	if oob {
		swap = ` hx-swap-oob="true"`
	}
	return fmt.Sprintf(`<span id="user-menu"%s title="%s">%s</span>`, swap, templ.EscapeString(user.Email), templ.EscapeString(label))
}
