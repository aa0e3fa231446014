// Package zkauth holds the error taxonomy shared by every layer of the
// authentication service: the group/crypto packages raise Internal errors
// on arithmetic failure, authserver raises NotFound/Unauthenticated/
// InvalidArgument, and the wire codec carries the same four buckets across
// the network.
package zkauth

import (
	"errors"
	"fmt"
)

// Kind classifies an Error into one of the four buckets spec'd for this
// service. Kind is small and stable so it can cross the wire as a single
// byte (see package wire).
type Kind uint8

const (
	// KindInvalidArgument marks malformed wire fields or an unknown
	// algorithm tag.
	KindInvalidArgument Kind = iota
	// KindNotFound marks a user that is not registered.
	KindNotFound
	// KindUnauthenticated marks an unknown auth_id or a failed
	// verification. authserver returns both with this Kind and no wrapped
	// Err, so callers cannot tell them apart.
	KindUnauthenticated
	// KindInternal marks arithmetic, concurrency, or transport failure.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the error type returned by authclient, authserver, dispatcher,
// and the wire response codec; the group and params packages and the wire
// framing return plain errors, which KindOf reports as KindInternal. Op
// names the failing operation (e.g. "authserver.Register");
// Err, when present, is the underlying cause and is reachable via Unwrap.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// E constructs an Error. err may be nil for errors with no underlying
// cause (e.g. a plain lookup miss).
func E(op string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for any
// error that did not originate in this module.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
