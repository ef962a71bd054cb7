package templates

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"

	"github.com/tienda-online/storefront/internal/notify"
)

// Toasts renders the contents of the toast container. Each toast keeps its id between polls and is marked
// hx-preserve, so htmx leaves an existing toast (and its fade-out animation) in place until the server drops it.
func Toasts(elements []notify.Element) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sw := &stickyWriter{w: w}
		for _, el := range elements {
			sw.write(`<div id="toast-` + templ.EscapeString(el.ID) + `" hx-preserve="true" class="` + templ.EscapeString(el.Class) + `">`)
			sw.write(templ.EscapeString(el.Text))
			sw.write(`</div>`)
		}
		return sw.err
	})
}

// Alert renders a blocking browser alert. Used when the session has no toast container.
func Alert(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		// json.Marshal escapes <, > and & so the text cannot close the script element
		quoted, err := json.Marshal(text)
		if err != nil {
			return err
		}
		sw := &stickyWriter{w: w}
		sw.write(`<script>alert(` + string(quoted) + `);</script>`)
		return sw.err
	})
}
