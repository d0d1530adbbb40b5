package mvc

import (
	"gopkg.in/yaml.v3"
)

// ChangeFunc is called after a Trackable's value changes.
type ChangeFunc[T any] func(oldValue, newValue T)

// Subscription identifies a listener registered on a Trackable.
// The zero Subscription is never issued.
type Subscription uint64

type listener[T any] struct {
	id     Subscription
	fn     ChangeFunc[T]
	active bool
}

// Trackable holds a value and notifies listeners after it changes.
//
// Listeners run synchronously on the goroutine calling Set, in the order
// they subscribed. Setting a value equal to the current one notifies nobody.
// Like Registry, a Trackable belongs to one goroutine.
type Trackable[T comparable] struct {
	value     T
	listeners []*listener[T]
	lastID    Subscription
}

// NewTrackable returns a Trackable holding initial.
func NewTrackable[T comparable](initial T) *Trackable[T] {
	return &Trackable[T]{value: initial}
}

// Value returns the current value.
func (t *Trackable[T]) Value() T { return t.value }

// Set stores v and notifies every subscribed listener with (old, v).
// It reports whether the value changed.
func (t *Trackable[T]) Set(v T) bool {
	if v == t.value {
		return false
	}
	old := t.value
	t.value = v

	// Listeners added during this round wait for the next change.
	round := make([]*listener[T], len(t.listeners))
	copy(round, t.listeners)
	for _, l := range round {
		if l.active {
			l.fn(old, v)
		}
	}
	return true
}

// Subscribe registers fn and returns its handle. A nil fn registers nothing
// and returns the zero Subscription.
func (t *Trackable[T]) Subscribe(fn ChangeFunc[T]) Subscription {
	if fn == nil {
		return 0
	}
	t.lastID++
	t.listeners = append(t.listeners, &listener[T]{id: t.lastID, fn: fn, active: true})
	return t.lastID
}

// Unsubscribe removes the listener registered under s.
// It reports whether one was found; unknown handles are a no-op.
func (t *Trackable[T]) Unsubscribe(s Subscription) bool {
	if s == 0 {
		return false
	}
	for i, l := range t.listeners {
		if l.id == s {
			l.active = false
			t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of subscribed listeners.
func (t *Trackable[T]) Len() int { return len(t.listeners) }

// MarshalYAML renders the bare value.
func (t *Trackable[T]) MarshalYAML() (any, error) {
	return t.value, nil
}

// UnmarshalYAML decodes a value and stores it through Set, so listeners see
// edits made from the inspector.
func (t *Trackable[T]) UnmarshalYAML(node *yaml.Node) error {
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	t.Set(v)
	return nil
}
