package notify

import "sync"

// Box is an in-memory toast container. It is safe for concurrent use: removals run on timer goroutines.
type Box struct {
	mu       sync.Mutex
	elements []Element
}

func NewBox() *Box {
	return &Box{}
}

func (b *Box) Append(el Element) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.elements = append(b.elements, el)
}

// Remove deletes the element with the given id. Removing an unknown id is a no-op.
func (b *Box) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, el := range b.elements {
		if el.ID == id {
			b.elements = append(b.elements[:i], b.elements[i+1:]...)
			return
		}
	}
}

// Elements returns a copy of the current toasts, oldest first
func (b *Box) Elements() []Element {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Element, len(b.elements))
	copy(out, b.elements)
	return out
}

func (b *Box) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.elements)
}
