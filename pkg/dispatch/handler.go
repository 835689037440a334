package dispatch

import (
	"errors"
	"fmt"

	"faultline/pkg/errx"
)

// Handler reacts to a dispatched error. A returned error (or a panic) is
// logged by the Dispatcher and never reaches the caller of Dispatch.
type Handler interface {
	Handle(err error) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(err error) error

// Handle calls f(err).
func (f HandlerFunc) Handle(err error) error {
	return f(err)
}

// TypeID returns the identifier used to look up handlers for err.
//
// The first error in the chain with a non-empty TypeID() wins; otherwise the
// dynamic type of err itself is used. A nil error has no identifier. A
// TypeID method that panics also yields the dynamic type.
func TypeID(err error) string {
	id, _ := identify(err)
	return id
}

// identify is TypeID that also reports a panicking TypeID method.
func identify(err error) (id string, perr error) {
	if err == nil {
		return "", nil
	}
	fallback := fmt.Sprintf("%T", err)
	defer func() {
		if p := recover(); p != nil {
			id = fallback
			perr = errx.Dispatch(fmt.Sprintf("TypeID of %s panicked: %v", fallback, p)).
				WithContext("type", fallback)
		}
	}()
	var typed interface{ TypeID() string }
	if errors.As(err, &typed) {
		if id := typed.TypeID(); id != "" {
			return id, nil
		}
	}
	return fallback, nil
}
