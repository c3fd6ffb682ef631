package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

func Auth(errMsg string) templ.Component {
	return page("Sign in", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="card"><h1>Sign in</h1><p>Enter your email and we will send you a sign-in link. New here? The same link creates your account.</p>`)
		errorMessage(b, errMsg)
		b.WriteString(`<form method="post" action="/auth/magic-link">`)
		b.WriteString(csrfField(ctx))
		b.WriteString(`<label for="email">Email</label><input id="email" type="email" name="email" required autocomplete="email">`)
		b.WriteString(`<button type="submit">Send magic link</button></form></section>`)
	})
}

func MagicLinkSent(email string) templ.Component {
	return page("Check your email", func(ctx context.Context, b *strings.Builder) {
		fmt.Fprintf(b, `<section class="card"><h1>Check your email</h1><p>We sent a sign-in link to <strong>%s</strong>. It expires shortly and works once.</p>`, esc(email))
		b.WriteString(`<form hx-post="/auth/magic-link?resend=true" hx-swap="none">`)
		fmt.Fprintf(b, `<input type="hidden" name="email" value="%s">`, esc(email))
		b.WriteString(`<button type="submit">Resend link</button></form></section>`)
	})
}

func Onboarding(errMsg string) templ.Component {
	return page("Welcome", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="card"><h1>Welcome</h1><p>What should we call you?</p>`)
		errorMessage(b, errMsg)
		b.WriteString(`<form method="post" action="/auth/onboarding">`)
		b.WriteString(csrfField(ctx))
		b.WriteString(`<label for="name">Name</label><input id="name" name="name" required maxlength="100" autocomplete="name">`)
		b.WriteString(`<button type="submit">Continue</button></form></section>`)
	})
}
