package wire

import (
	"errors"

	"github.com/tomsons-zkauth/zkauth"
)

var (
	// ErrMessageTooShort is returned when a frame's length prefix implies
	// more bytes than were actually read before EOF.
	ErrMessageTooShort = errors.New("wire: message too short")
	// ErrInvalidLengthPrefix is returned for a zero-length frame.
	ErrInvalidLengthPrefix = errors.New("wire: invalid length prefix")
	// ErrMessageTooLong is returned when a frame's length prefix exceeds
	// MaxMessageSize.
	ErrMessageTooLong = errors.New("wire: message too long")
	// ErrUnknownMethod is returned when a request frame's method tag does
	// not match any of the three RPCs.
	ErrUnknownMethod = errors.New("wire: unknown method tag")
)

// MaxMessageSize bounds a single frame; registration/challenge/answer
// payloads are all small (at most a handful of 33-byte EC points or
// 128-byte residues of the canonical 1024-bit DL modulus plus a UUID
// string), so anything past a few KiB is
// a malformed or hostile frame.
const MaxMessageSize = 64 * 1024

// codeFromKind maps a zkauth.Kind to its wire representation.
func codeFromKind(k zkauth.Kind) ErrorCode {
	switch k {
	case zkauth.KindInvalidArgument:
		return ErrCodeInvalidArgument
	case zkauth.KindNotFound:
		return ErrCodeNotFound
	case zkauth.KindUnauthenticated:
		return ErrCodeUnauthenticated
	default:
		return ErrCodeInternal
	}
}

// kindFromCode maps a wire ErrorCode back to a zkauth.Kind.
func kindFromCode(c ErrorCode) zkauth.Kind {
	switch c {
	case ErrCodeInvalidArgument:
		return zkauth.KindInvalidArgument
	case ErrCodeNotFound:
		return zkauth.KindNotFound
	case ErrCodeUnauthenticated:
		return zkauth.KindUnauthenticated
	default:
		return zkauth.KindInternal
	}
}
