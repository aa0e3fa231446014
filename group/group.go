// Package group abstracts the algebraic group operations the
// Chaum-Pedersen prover and verifier need, so that crypto/prover,
// crypto/verifier, and authserver can be written once against the
// capability set below and instantiated against either of the two
// realizations in this module: group/dl (a safe-prime modular subgroup)
// and group/ec (the SECP256K1 curve group).
//
// Callers decode wire bytes into a Scalar/Element at the boundary and
// operate on the typed value from then on; nothing in this package or its
// callers treats a group element as an untyped byte string internally.
package group

import "math/big"

// Scalar is an exponent / curve scalar, reduced modulo the group's order.
type Scalar interface {
	// Bytes returns the big-endian encoding of the scalar: minimal-length
	// for DL, a fixed 32 bytes for EC.
	Bytes() []byte
	Equal(Scalar) bool
}

// Element is a group element: a residue in the order-q subgroup for DL,
// or a curve point for EC.
type Element interface {
	// Encode returns the wire encoding of the element (big-endian
	// unsigned for DL, SEC1 compressed for EC).
	Encode() []byte
	Equal(Element) bool
}

// Group is the capability set spec'd for GroupOps. Every method that can
// fail only fails on genuine internal arithmetic or decoding error; a
// malformed Scalar/Element from the network surfaces as an error from
// ScalarFromBytes/DecodeElement, never as a panic.
type Group interface {
	// RandomScalar samples uniformly from [0, order).
	RandomScalar() (Scalar, error)

	// ScalarFromBytes decodes a big-endian unsigned scalar and reduces it
	// modulo the group order.
	ScalarFromBytes([]byte) (Scalar, error)

	// ExpBase raises base to the power s (DL) or computes [s]base (EC).
	ExpBase(base Element, s Scalar) Element

	// Compose is the group operation: multiplication mod p for DL, point
	// addition for EC.
	Compose(a, b Element) Element

	// DecodeElement parses the wire encoding of an element produced by
	// Encode.
	DecodeElement([]byte) (Element, error)

	// ModSub returns ((a - b) mod order + order) mod order: always
	// nonnegative.
	ModSub(a, b Scalar) Scalar

	// Order returns the group's order (q for DL, n for EC).
	Order() *big.Int
}
