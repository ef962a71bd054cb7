// Package render pretty-prints backend payloads for the cli and the ui.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

type Format int

const (
	Plain Format = iota
	Terminal
	HTML
)

const (
	terminalStyle = "monokai"
	htmlStyle     = "github"
)

// Indent returns the payload indented with two spaces
func Indent(payload json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return nil, fmt.Errorf("could not indent payload: %w", err)
	}
	return buf.Bytes(), nil
}

// JSON writes the indented payload to w, highlighted for the requested format.
func JSON(w io.Writer, payload json.RawMessage, format Format) error {
	src, err := Indent(payload)
	if err != nil {
		return err
	}

	var formatter chroma.Formatter
	var style *chroma.Style
	switch format {
	case Terminal:
		formatter = formatters.TTY256
		style = styles.Get(terminalStyle)
	case HTML:
		formatter = html.New(html.WithClasses(false), html.TabWidth(2))
		style = styles.Get(htmlStyle)
	default:
		if _, err := w.Write(append(src, '\n')); err != nil {
			return fmt.Errorf("could not write payload: %w", err)
		}
		return nil
	}

	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iterator, err := lexer.Tokenise(nil, string(src)+"\n")
	if err != nil {
		return fmt.Errorf("could not tokenise payload: %w", err)
	}

	if err := formatter.Format(w, style, iterator); err != nil {
		return fmt.Errorf("could not format payload: %w", err)
	}
	return nil
}
