package wire

import (
	"errors"

	"github.com/tomsons-zkauth/zkauth"
)

// responseFrame builds a response frame for a handler result: a single
// ErrorCode byte followed by either the gob-encoded response (success) or
// a gob-encoded error message (failure).
func responseFrame(resp any, err error) []byte {
	if err != nil {
		return errorFrame(codeFromKind(zkauth.KindOf(err)), err.Error())
	}
	payload, encErr := encode(resp)
	if encErr != nil {
		return errorFrame(ErrCodeInternal, encErr.Error())
	}
	return append([]byte{byte(ErrCodeNone)}, payload...)
}

func errorFrame(code ErrorCode, msg string) []byte {
	payload, err := encode(msg)
	if err != nil {
		// encoding a plain string cannot fail.
		panic(err)
	}
	return append([]byte{byte(code)}, payload...)
}

// decodeResponse splits a response frame into its ErrorCode and, on
// success, decodes the trailing payload into resp. On failure it returns
// a *zkauth.Error built from the wire ErrorCode and carried message.
func decodeResponse(frame []byte, op string, resp any) error {
	if len(frame) < 1 {
		return zkauth.E(op, zkauth.KindInternal, ErrMessageTooShort)
	}
	code := ErrorCode(frame[0])
	if code == ErrCodeNone {
		if err := decode(frame[1:], resp); err != nil {
			return zkauth.E(op, zkauth.KindInternal, err)
		}
		return nil
	}

	var msg string
	if err := decode(frame[1:], &msg); err != nil {
		return zkauth.E(op, zkauth.KindInternal, err)
	}
	return zkauth.E(op, kindFromCode(code), errors.New(msg))
}
