package mvc

// Model is a uniquely keyed unit of application state managed by a Registry.
//
// Concrete models embed Base, which supplies Key and a no-op OnCreate.
// The unexported assignKey method means only types embedding Base satisfy
// Model; the registry is the only caller that assigns keys.
type Model interface {
	// Key returns the key the registry assigned at creation.
	Key() Key

	// OnCreate is called exactly once by Create, synchronously, after the
	// model has been inserted and its key assigned. Returning an error
	// aborts the creation and removes the model from the registry again.
	OnCreate(key Key, r *Registry) error

	assignKey(key Key)
}

// Releaser is implemented by models that need teardown.
//
// OnRelease runs once, after the model has been removed from its registry,
// either by Release or by Reset.
type Releaser interface {
	OnRelease()
}

// ModelPtr constrains a type parameter to a pointer to T that is a Model.
type ModelPtr[T any] interface {
	*T
	Model
}

// Base is embedded by every concrete model.
type Base struct {
	key Key
}

// Key implements Model.
func (b *Base) Key() Key { return b.key }

// OnCreate implements Model. It does nothing.
func (b *Base) OnCreate(Key, *Registry) error { return nil }

// assignKey sets the key once; later calls are ignored.
func (b *Base) assignKey(key Key) {
	if b.key.IsZero() {
		b.key = key
	}
}
