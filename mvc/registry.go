package mvc

import (
	"cmp"
	"iter"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// Registry owns every model it creates, keyed by (Type, discriminator).
//
// At most one live model exists per Key. Creating under an occupied key is
// rejected and never overwrites the live entry.
//
// A Registry is owned by a single goroutine (the host's update loop) and is
// not safe for concurrent use. OnCreate hooks may call back into the
// registry; creating their own key again is rejected as a duplicate.
type Registry struct {
	id      string
	models  map[Key]Model
	created map[Key]uint64 // creation sequence, for teardown order
	seq     uint64
	lazyGet bool
	log     *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug events. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithLazyGet makes Get create a missing model instead of failing.
func WithLazyGet(enabled bool) Option {
	return func(r *Registry) { r.lazyGet = enabled }
}

// NewRegistry constructs an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		id:     uuid.NewString(),
		models:  make(map[Key]Model),
		created: make(map[Key]uint64),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// ID returns the registry's unique identifier, used to correlate log lines.
func (r *Registry) ID() string { return r.id }

// LazyGet reports whether Get creates missing models.
func (r *Registry) LazyGet() bool { return r.lazyGet }

// SetLazyGet toggles lazy creation on Get.
func (r *Registry) SetLazyGet(enabled bool) { r.lazyGet = enabled }

// Count returns the number of live models.
func (r *Registry) Count() int { return len(r.models) }

// Lookup returns the live model stored under key.
func (r *Registry) Lookup(key Key) (Model, bool) {
	m, ok := r.models[key]
	return m, ok
}

// Contains reports whether m is the live model stored under its own key.
// A released model, or a model from another registry, is not contained.
func (r *Registry) Contains(m Model) bool {
	if m == nil {
		return false
	}
	cur, ok := r.models[m.Key()]
	return ok && cur == m
}

// Keys returns a sorted snapshot of the live keys.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.models))
	for k := range r.models {
		keys = append(keys, k)
	}
	slices.SortStableFunc(keys, func(a, b Key) int {
		return cmp.Compare(a.String(), b.String())
	})
	return keys
}

// All returns a sequence over a snapshot of the live models, ordered by key.
//
// The snapshot is taken when All is called; the sequence can be ranged over
// any number of times and is unaffected by later registry mutations.
func (r *Registry) All() iter.Seq[Model] {
	keys := r.Keys()
	snapshot := make([]Model, 0, len(keys))
	for _, k := range keys {
		snapshot = append(snapshot, r.models[k])
	}
	return func(yield func(Model) bool) {
		for _, m := range snapshot {
			if !yield(m) {
				return
			}
		}
	}
}

// ReleaseKey removes the model stored under key and runs its teardown.
// It reports whether an entry was found.
func (r *Registry) ReleaseKey(key Key) bool {
	m, ok := r.models[key]
	if !ok {
		return false
	}
	delete(r.models, key)
	delete(r.created, key)
	r.log.Debug("model released", "registry", r.id, "key", key.String())
	release(m)
	return true
}

// Reset destroys every live model and clears the registry.
//
// The map is swapped out before any teardown runs, so OnRelease hooks and
// any later call observe an empty registry. Models are released in reverse
// creation order, dependents before the siblings they found in OnCreate.
// Calling Reset on an empty registry is a no-op.
func (r *Registry) Reset() {
	if len(r.models) == 0 {
		return
	}
	old, created := r.models, r.created
	r.models = make(map[Key]Model)
	r.created = make(map[Key]uint64)

	keys := make([]Key, 0, len(old))
	for k := range old {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		return cmp.Compare(created[b], created[a])
	})

	r.log.Debug("registry reset", "registry", r.id, "released", len(old))
	for _, k := range keys {
		release(old[k])
	}
}

// insert stores m under key, assigns the key and runs OnCreate.
func (r *Registry) insert(key Key, m Model) error {
	if _, exists := r.models[key]; exists {
		return &DuplicateKeyError{Key: key}
	}
	r.models[key] = m
	r.seq++
	r.created[key] = r.seq
	m.assignKey(key)

	if err := m.OnCreate(key, r); err != nil {
		// Only undo our own entry; the hook may have reset the registry.
		if cur, ok := r.models[key]; ok && cur == m {
			delete(r.models, key)
			delete(r.created, key)
		}
		r.log.Debug("model create aborted", "registry", r.id, "key", key.String(), "err", err)
		return &CreateError{Key: key, Err: err}
	}
	r.log.Debug("model created", "registry", r.id, "key", key.String())
	return nil
}

func release(m Model) {
	if rel, ok := m.(Releaser); ok {
		rel.OnRelease()
	}
}

//
// -----------------------------------------------------------------------------
// Typed access
// -----------------------------------------------------------------------------

// Create constructs a new model of kind T under (T, disc), inserts it and
// runs its OnCreate hook.
//
// It fails with *DuplicateKeyError when the key is occupied (the registry is
// left unchanged), with ErrInvalidArgument for a nil registry or an unusable
// discriminator, and with *CreateError when OnCreate fails.
func Create[T any, PT ModelPtr[T]](r *Registry, disc any) (PT, error) {
	if r == nil {
		return nil, invalidArgument("registry", "is nil")
	}
	key, err := KeyFor[T](disc)
	if err != nil {
		return nil, err
	}
	if _, exists := r.models[key]; exists {
		return nil, &DuplicateKeyError{Key: key}
	}
	m := PT(new(T))
	if err := r.insert(key, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns the live model of kind T under disc.
//
// It fails with *NotFoundError when there is none, unless the registry has
// lazy get enabled, in which case the model is created.
func Get[T any, PT ModelPtr[T]](r *Registry, disc any) (PT, error) {
	if r == nil {
		return nil, invalidArgument("registry", "is nil")
	}
	key, err := KeyFor[T](disc)
	if err != nil {
		return nil, err
	}
	if m, ok := r.models[key].(PT); ok {
		return m, nil
	}
	if r.lazyGet {
		return Create[T, PT](r, disc)
	}
	return nil, &NotFoundError{Key: key}
}

// TryGet is the non-failing variant of Get. It never creates models.
func TryGet[T any, PT ModelPtr[T]](r *Registry, disc any) (PT, bool) {
	if r == nil {
		return nil, false
	}
	key, err := KeyFor[T](disc)
	if err != nil {
		return nil, false
	}
	m, ok := r.models[key].(PT)
	return m, ok
}

// MustGet returns the live model of kind T under disc or panics.
// Useful in composition roots and tests where a missing model is a bug.
func MustGet[T any, PT ModelPtr[T]](r *Registry, disc any) PT {
	m, err := Get[T, PT](r, disc)
	if err != nil {
		panic(err)
	}
	return m
}

// Release destroys the model of kind T under disc if present.
//
// It reports whether an entry was removed. Releasing an absent key is not an
// error; the error result is only set for a nil registry or an unusable
// discriminator.
func Release[T any, PT ModelPtr[T]](r *Registry, disc any) (bool, error) {
	if r == nil {
		return false, invalidArgument("registry", "is nil")
	}
	key, err := KeyFor[T](disc)
	if err != nil {
		return false, err
	}
	return r.ReleaseKey(key), nil
}
