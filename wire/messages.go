// Package wire defines the three-RPC request/response shapes for the
// authentication service and the length-prefixed framing that carries
// them over a net.Conn. It deliberately does not fabricate a
// protoc-generated gRPC surface (see DESIGN.md); encoding/gob plays that
// role here, framed exactly the way
// backkem-matter/pkg/message.StreamReader/StreamWriter frames Matter
// messages.
package wire

import "github.com/tomsons-zkauth/zkauth/params"

// Algo is the wire-stable algorithm tag from spec.md §6: a single byte,
// {DL=0, EC=1}.
type Algo = params.Algorithm

const (
	AlgoDL = params.AlgoDL
	AlgoEC = params.AlgoEC
)

// RegisterRequest carries a user's freshly derived public keys.
type RegisterRequest struct {
	User   string
	Y1, Y2 []byte
	Algo   Algo
}

// RegisterResponse is empty on success; failures are reported out-of-band
// via the response envelope's error code.
type RegisterResponse struct{}

// AuthChallengeRequest carries a user's commitment to a fresh nonce.
type AuthChallengeRequest struct {
	User   string
	R1, R2 []byte
	Algo   Algo
}

// AuthChallengeResponse carries the server-chosen auth_id and challenge.
type AuthChallengeResponse struct {
	AuthID string
	C      []byte
}

// AuthAnswerRequest carries the prover's response to an outstanding
// challenge.
type AuthAnswerRequest struct {
	AuthID string
	S      []byte
	Algo   Algo
}

// AuthAnswerResponse carries the minted session id on success.
type AuthAnswerResponse struct {
	SessionID string
}

// method identifies which of the three RPCs a request frame carries.
type method byte

const (
	methodRegister method = iota
	methodCreateAuthenticationChallenge
	methodVerifyAuthentication
)

// ErrorCode is the wire representation of a zkauth.Kind: one byte,
// carried in every response frame so the client can reconstruct a
// *zkauth.Error without a shared type registry.
type ErrorCode byte

const (
	ErrCodeNone ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeNotFound
	ErrCodeUnauthenticated
	ErrCodeInternal
)
