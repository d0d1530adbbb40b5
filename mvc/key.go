package mvc

import (
	"reflect"
)

// Default is the discriminator of the sole instance of a model type.
const Default = ""

// Type identifies a concrete model kind.
//
// Two Types are equal only when they describe the same named Go type, so a
// model of kind A and a model of kind B never share an entry even when their
// discriminators are equal.
type Type struct {
	rt reflect.Type
}

// TypeFor returns the Type of model kind T.
//
// Pointer types are unwrapped, so TypeFor[Session]() == TypeFor[*Session]().
func TypeFor[T any]() Type {
	rt := reflect.TypeFor[T]()
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return Type{rt: rt}
}

// IsZero reports whether t is the zero Type.
func (t Type) IsZero() bool { return t.rt == nil }

// Name returns a human-readable name such as "arena.Session".
func (t Type) Name() string {
	if t.rt == nil {
		return "<nil>"
	}
	return t.rt.String()
}

// String implements fmt.Stringer.
func (t Type) String() string { return t.Name() }

// Key is the composite identity of a model: its Type plus a discriminator.
//
// Key values are immutable and comparable; equality is structural.
type Key struct {
	typ  Type
	disc any
}

// NewKey builds a Key.
//
// It fails with ErrInvalidArgument when t is the zero Type, when disc is nil,
// or when disc is not a comparable value (it could not be used as a map key).
func NewKey(t Type, disc any) (Key, error) {
	if t.IsZero() {
		return Key{}, invalidArgument("type", "is zero")
	}
	if disc == nil {
		return Key{}, invalidArgument("discriminator", "is nil")
	}
	if !hashable(disc) {
		return Key{}, invalidArgument("discriminator", "is not comparable")
	}
	return Key{typ: t, disc: disc}, nil
}

// KeyFor builds the Key of model kind T with discriminator disc.
func KeyFor[T any](disc any) (Key, error) {
	return NewKey(TypeFor[T](), disc)
}

// Type returns the model kind.
func (k Key) Type() Type { return k.typ }

// Discriminator returns the discriminator value.
func (k Key) Discriminator() any { return k.disc }

// IsZero reports whether k was never assigned.
func (k Key) IsZero() bool { return k.typ.IsZero() }

// String renders the key as Type[discriminator].
func (k Key) String() string {
	return k.typ.Name() + "[" + quoteDisc(k.disc) + "]"
}

// hashable reports whether v can be used as a map key without panicking.
// A struct or array type can be comparable while holding an interface whose
// dynamic value is a slice, map or func, so the value itself is walked.
func hashable(v any) bool {
	if v == nil || !reflect.TypeOf(v).Comparable() {
		return false
	}
	return hashableValue(reflect.ValueOf(v))
}

func hashableValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		return false
	case reflect.Interface:
		if v.IsNil() {
			return true
		}
		return hashableValue(v.Elem())
	case reflect.Struct:
		for i := range v.NumField() {
			if !hashableValue(v.Field(i)) {
				return false
			}
		}
	case reflect.Array:
		for i := range v.Len() {
			if !hashableValue(v.Index(i)) {
				return false
			}
		}
	}
	return true
}
