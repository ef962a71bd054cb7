package templates

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"

	"github.com/tienda-online/storefront/internal/render"
)

// Payload shows a backend response, highlighted
func Payload(resource string, payload json.RawMessage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var highlighted bytes.Buffer
		if err := render.JSON(&highlighted, payload, render.HTML); err != nil {
			return err
		}

		sw := &stickyWriter{w: w}
		sw.write(`<h3>` + templ.EscapeString(resource) + `</h3>`)
		sw.write(highlighted.String())
		return sw.err
	})
}

// PayloadError replaces the payload panel when the backend could not be reached
func PayloadError(resource, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sw := &stickyWriter{w: w}
		sw.write(`<h3>` + templ.EscapeString(resource) + `</h3><p class="error">` + templ.EscapeString(message) + `</p>`)
		return sw.err
	})
}
