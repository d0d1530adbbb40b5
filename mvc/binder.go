package mvc

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Display is the capability a display element needs to mirror a value.
type Display[T any] interface {
	SetContent(value T)
}

// Disposable is implemented by display elements that can be destroyed
// outside the binder's control. The default liveness check uses it.
type Disposable interface {
	Disposed() bool
}

// binding is the recorded association of one handle.
type binding struct {
	source      any
	unsubscribe func()
}

// Binder associates display handles with the Trackable they mirror.
//
// Each handle has at most one binding. Handles destroyed without Unbind are
// purged lazily the next time the bindings are enumerated.
// A Binder belongs to one goroutine.
type Binder struct {
	bindings map[any]binding
	alive    func(handle any) bool
	log      *slog.Logger
}

// BinderOption configures a Binder.
type BinderOption func(*Binder)

// WithLiveness replaces the predicate deciding whether a handle is still
// alive. A nil predicate is ignored.
func WithLiveness(alive func(handle any) bool) BinderOption {
	return func(b *Binder) {
		if alive != nil {
			b.alive = alive
		}
	}
}

// WithBinderLogger sets the logger used for debug events.
func WithBinderLogger(l *slog.Logger) BinderOption {
	return func(b *Binder) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBinder constructs an empty Binder.
func NewBinder(opts ...BinderOption) *Binder {
	b := &Binder{
		bindings: make(map[any]binding),
		alive:    isAlive,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func isAlive(handle any) bool {
	if d, ok := handle.(Disposable); ok {
		return !d.Disposed()
	}
	return true
}

// Bind subscribes h to src so every later change of src is pushed into h.
//
// The current value is not pushed; callers wanting an initial sync call
// h.SetContent(src.Value()) themselves. Bind fails with ErrInvalidArgument
// when h or src is nil and with *AlreadyBoundError when h is already bound.
// h must be comparable, which every pointer-based display element is.
func Bind[T comparable](b *Binder, h Display[T], src *Trackable[T]) error {
	if b == nil {
		return invalidArgument("binder", "is nil")
	}
	if isNil(h) {
		return invalidArgument("display handle", "is nil")
	}
	if src == nil {
		return invalidArgument("trackable", "is nil")
	}
	if !hashable(h) {
		return invalidArgument("display handle", "is not comparable")
	}
	if _, exists := b.bindings[h]; exists {
		return &AlreadyBoundError{Handle: h}
	}

	alive := b.alive
	sub := src.Subscribe(func(_, newValue T) {
		if alive(h) {
			h.SetContent(newValue)
		}
	})
	b.bindings[h] = binding{
		source:      src,
		unsubscribe: func() { src.Unsubscribe(sub) },
	}
	b.log.Debug("display bound", "handle", handleName(h))
	return nil
}

// Unbind removes h's binding and unsubscribes its listener.
// It reports whether a binding was found.
func (b *Binder) Unbind(h any) bool {
	if isNil(h) || !hashable(h) {
		return false
	}
	bd, ok := b.bindings[h]
	if !ok {
		return false
	}
	delete(b.bindings, h)
	bd.unsubscribe()
	b.log.Debug("display unbound", "handle", handleName(h))
	return true
}

// UnbindSource removes every binding whose source is src and returns how
// many were removed. Models call it from OnRelease so their trackables
// leave no listeners behind.
func (b *Binder) UnbindSource(src any) int {
	if isNil(src) || !hashable(src) {
		return 0
	}
	n := 0
	for h, bd := range b.bindings {
		if bd.source == src {
			delete(b.bindings, h)
			bd.unsubscribe()
			n++
		}
	}
	if n > 0 {
		b.log.Debug("source unbound", "source", fmt.Sprintf("%T", src), "bindings", n)
	}
	return n
}

// Bound reports whether h currently has a live binding.
func (b *Binder) Bound(h any) bool {
	b.Purge()
	if isNil(h) || !hashable(h) {
		return false
	}
	_, ok := b.bindings[h]
	return ok
}

// Len returns the number of live bindings.
func (b *Binder) Len() int {
	b.Purge()
	return len(b.bindings)
}

// Handles returns a snapshot of the bound live handles (order unspecified).
func (b *Binder) Handles() []any {
	b.Purge()
	out := make([]any, 0, len(b.bindings))
	for h := range b.bindings {
		out = append(out, h)
	}
	return out
}

// Purge drops bindings whose handle fails the liveness check and returns how
// many were dropped. Only the dead handles' listeners are unsubscribed.
func (b *Binder) Purge() int {
	var dead []any
	for h := range b.bindings {
		if !b.alive(h) {
			dead = append(dead, h)
		}
	}
	for _, h := range dead {
		bd := b.bindings[h]
		delete(b.bindings, h)
		bd.unsubscribe()
	}
	if len(dead) > 0 {
		b.log.Debug("stale bindings purged", "count", len(dead))
	}
	return len(dead)
}

// isNil reports whether v is nil or a nil pointer/map/slice/func/chan/interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func handleName(h any) string {
	if s, ok := h.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", h)
}
