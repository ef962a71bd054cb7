package notify

import (
	"fmt"
	"io"
	"sync"
)

// WriterPage has no toast container, so every notification becomes an alert written to w (the cli uses stderr).
type WriterPage struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterPage(w io.Writer) *WriterPage {
	return &WriterPage{w: w}
}

func (p *WriterPage) Container(string) (Container, bool) {
	return nil, false
}

func (p *WriterPage) Alert(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, text)
}
