// Package mvc provides a keyed model registry and a small value-binding layer.
//
// It has two pieces:
//
//   - Registry: creates, looks up and destroys models keyed by
//     (model type, discriminator). The discriminator defaults to Default ("")
//     meaning "the sole instance of this type"; any other comparable value
//     creates an additional, independently addressable instance.
//
//   - Trackable + Binder: a Trackable[T] notifies listeners after its value
//     changes; a Binder mirrors a Trackable into a display element (anything
//     with SetContent(T)) and tears the subscription down symmetrically.
//
// There is no global registry. The host application constructs one at startup
// and passes it explicitly; models receive it in OnCreate so they can find
// their siblings.
//
// Example
//
//	type Session struct {
//		mvc.Base `yaml:"-"`
//		Status *mvc.Trackable[string] `yaml:"status"`
//	}
//
//	func (s *Session) OnCreate(key mvc.Key, r *mvc.Registry) error {
//		s.Status = mvc.NewTrackable("idle")
//		return nil
//	}
//
//	reg := mvc.NewRegistry()
//	session, err := mvc.Create[Session](reg, mvc.Default)
//	...
//	binder := mvc.NewBinder()
//	err = mvc.Bind(binder, label, session.Status)
//
// Errors
//
// Failures are returned, never swallowed: ErrInvalidArgument, and the typed
// *DuplicateKeyError, *NotFoundError, *AlreadyBoundError (match them with
// errors.Is against ErrDuplicateKey, ErrNotFound, ErrAlreadyBound).
//
// Concurrency
//
// Registry, Trackable and Binder are owned by one goroutine, typically the
// host's update loop. None of them lock.
package mvc
