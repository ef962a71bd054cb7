// Package notify shows short-lived messages to the user.
//
// A Notifier looks up the toast container on its Page. When the page has one, the message is appended to it and
// removed again after Lifetime. When it doesn't, the page's Alert is used instead and nothing is appended.
package notify

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/tienda-online/storefront/internal/metrics"
)

const (
	// ContainerID is the id of the element that hosts toasts
	ContainerID = "toast-box"

	// Lifetime is how long a toast stays in its container (matches the css fade-out animation)
	Lifetime = 3400 * time.Millisecond

	ClassToast = "toast"
	ClassError = "error"
)

// Element is one rendered toast
type Element struct {
	ID    string
	Text  string
	Class string
}

// IsError reports whether the element was created with the error flag
func (e Element) IsError() bool {
	return e.Class == ClassToast+" "+ClassError
}

// Container hosts toast elements
type Container interface {
	Append(el Element)
	Remove(id string)
}

// Page is whatever the notifier renders into: it may or may not contain the toast container.
type Page interface {
	// Container returns the element with the given id, if the page has one
	Container(id string) (Container, bool)

	// Alert shows text synchronously. Used when the page has no toast container.
	Alert(text string)
}

type Notifier struct {
	page    Page
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Notifier)

// WithClock replaces the real clock, used by tests to control when toasts are removed
func WithClock(clock clockwork.Clock) Option {
	return func(n *Notifier) {
		n.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Notifier) {
		n.metrics = m
	}
}

func New(page Page, opts ...Option) *Notifier {
	n := &Notifier{
		page:   page,
		clock:  clockwork.NewRealClock(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Info shows a normal toast
func (n *Notifier) Info(text string) {
	n.Toast(text, false)
}

// Error shows a toast with the error class
func (n *Notifier) Error(text string) {
	n.Toast(text, true)
}

// Toast shows text in the page's toast container and schedules its removal after Lifetime.
// If the page has no container the text is passed to the page's Alert instead.
func (n *Notifier) Toast(text string, isError bool) {
	box, ok := n.page.Container(ContainerID)
	if !ok {
		n.logger.Debug("toast container not found, falling back to alert", slog.String("text", text))
		n.metrics.ObserveNotification("alert")
		n.page.Alert(text)
		return
	}

	el := Element{
		ID:    uuid.NewString(),
		Text:  text,
		Class: ClassToast,
	}
	kind := "toast"
	if isError {
		el.Class = ClassToast + " " + ClassError
		kind = "error_toast"
	}

	box.Append(el)
	n.metrics.ObserveNotification(kind)

	n.clock.AfterFunc(Lifetime, func() {
		box.Remove(el.ID)
	})
}
