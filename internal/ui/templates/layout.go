// Package templates holds the ui components. They are written directly against the templ runtime
// (templ.ComponentFunc) so the package builds without the templ code generator.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/tienda-online/storefront/internal/notify"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

const styles = `
body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
section { margin-bottom: 1.5rem; }
form { display: inline-flex; gap: .5rem; margin: .25rem 0; }
#toast-box { position: fixed; top: 1rem; right: 1rem; display: flex; flex-direction: column; gap: .5rem; z-index: 10; }
.toast { background: #2d6a4f; color: #fff; padding: .6rem 1rem; border-radius: 4px; animation: fadeout 3.4s forwards; }
.toast.error { background: #b00020; }
@keyframes fadeout { 0%, 80% { opacity: 1; } 100% { opacity: 0; } }
`

// Layout is the storefront page. It owns the toast container (id "toast-box"), refreshed from /ui-api/toasts.
func Layout(environment, apiBaseURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sw := &stickyWriter{w: w}

		sw.write(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Storefront</title>`)
		sw.write(`<script src="` + htmxSrc + `"></script>`)
		sw.write(`<style>` + styles + `</style></head><body>`)

		sw.write(`<div id="` + notify.ContainerID + `" hx-get="/ui-api/toasts" hx-trigger="load, every 1s, toast from:body"></div>`)
		sw.write(`<div id="alerts"></div>`)

		sw.write(`<header><h1>Storefront</h1><p>backend: <code>` + templ.EscapeString(apiBaseURL) + `</code>`)
		if environment != "prod" {
			sw.write(` <small>(` + templ.EscapeString(environment) + `)</small>`)
		}
		sw.write(`</p></header>`)

		sw.write(`<section><h2>Account</h2>`)
		sw.write(actionForm("/ui-api/login", "Log in",
			`<input name="email" type="email" placeholder="email" required>`,
			`<input name="password" type="password" placeholder="password" required>`))
		sw.write(actionForm("/ui-api/register", "Register",
			`<input name="username" placeholder="username" required>`,
			`<input name="password" type="password" placeholder="password" required>`))
		sw.write(actionForm("/ui-api/logout", "Log out"))
		sw.write(`</section>`)

		sw.write(`<section><h2>Cart</h2>`)
		sw.write(actionForm("/ui-api/cart", "Add to cart",
			`<input name="product_id" placeholder="product id" required>`,
			`<input name="qty" type="number" placeholder="qty (1)">`))
		sw.write(actionForm("/ui-api/cart/remove", "Remove",
			`<input name="product_id" placeholder="product id" required>`))
		sw.write(actionForm("/ui-api/checkout", "Checkout"))
		sw.write(`</section>`)

		sw.write(`<section><h2>Admin</h2>`)
		sw.write(actionForm("/ui-api/products", "Create product",
			`<input name="name" placeholder="name" required>`,
			`<input name="price" type="number" step="0.01" placeholder="price" required>`,
			`<input name="stock" type="number" placeholder="stock" required>`))
		sw.write(actionForm("/ui-api/products/delete", "Delete product",
			`<input name="product_id" placeholder="product id" required>`))
		sw.write(actionForm("/ui-api/users/delete", "Delete user",
			`<input name="user_id" placeholder="user id" required>`))
		sw.write(`</section>`)

		sw.write(`<section><h2>Data</h2>`)
		for _, resource := range []string{"me", "products", "cart", "orders", "users"} {
			sw.write(`<button hx-get="/ui-api/payload/` + resource + `" hx-target="#payload">` + resource + `</button> `)
		}
		sw.write(`<div id="payload"></div></section>`)

		sw.write(`</body></html>`)
		return sw.err
	})
}

// actionForm posts with htmx; alerts returned by the handler are swapped into #alerts
func actionForm(action, label string, inputs ...string) string {
	s := `<form hx-post="` + action + `" hx-target="#alerts" hx-swap="innerHTML">`
	for _, in := range inputs {
		s += in
	}
	return s + `<button type="submit">` + templ.EscapeString(label) + `</button></form>`
}

// stickyWriter keeps the first write error so components can write unconditionally
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) write(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}
