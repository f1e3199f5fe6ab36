package relist

import "slices"

// Observer receives one notification per applied edit.
type Observer interface {
	Notify(Edit)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Edit)

func (f ObserverFunc) Notify(e Edit) { f(e) }

// Recorder is an Observer that keeps every notification it receives.
type Recorder struct {
	Edits []Edit
}

func (r *Recorder) Notify(e Edit) {
	r.Edits = append(r.Edits, e)
}

// Reset drops the recorded notifications.
func (r *Recorder) Reset() {
	r.Edits = nil
}

type subscription struct {
	o Observer
}

// Collection is the ordered store a view renders from. It is owned by a
// single goroutine; only Apply mutates it.
type Collection[T any] struct {
	items []T
	subs  []*subscription
}

// NewCollection returns a collection holding a copy of items.
func NewCollection[T any](items []T) *Collection[T] {
	return &Collection[T]{items: slices.Clone(items)}
}

func (c *Collection[T]) Len() int {
	return len(c.items)
}

func (c *Collection[T]) At(i int) T {
	return c.items[i]
}

// Items returns a copy of the current items.
func (c *Collection[T]) Items() []T {
	return slices.Clone(c.items)
}

// Observe registers o and returns a function that unregisters it.
func (c *Collection[T]) Observe(o Observer) func() {
	sub := &subscription{o: o}
	c.subs = append(c.subs, sub)
	return func() {
		c.subs = slices.DeleteFunc(c.subs, func(s *subscription) bool {
			return s == sub
		})
	}
}

func (c *Collection[T]) notify(e Edit) {
	for _, sub := range c.subs {
		sub.o.Notify(e)
	}
}
