package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/templui/habitkit/internal/model"
)

func Settings(user *model.User, profile *model.Profile) templ.Component {
	return page("Settings", func(ctx context.Context, b *strings.Builder) {
		name := ""
		if profile != nil {
			name = profile.Name
		}

		b.WriteString(`<h1>Settings</h1>`)

		b.WriteString(`<section class="card"><h2>Profile</h2><form hx-patch="/app/profile/name" hx-swap="none">`)
		fmt.Fprintf(b, `<label for="name">Name</label><input id="name" name="name" required maxlength="100" value="%s">`, esc(name))
		b.WriteString(`<button type="submit">Save</button></form>`)
		fmt.Fprintf(b, `<p>Signed in as %s</p></section>`, esc(user.Email))

		b.WriteString(`<section class="card"><h2>Your data</h2><p>Download every habit and log as JSON.</p><a href="/app/habits/export">Export</a></section>`)

		b.WriteString(`<section class="card"><h2>Delete account</h2><p>This removes your account, habits and logs permanently.</p>`)
		b.WriteString(`<button type="button" hx-delete="/app/account" hx-confirm="Delete your account permanently?" hx-swap="none">Delete account</button></section>`)
	})
}
