// Package ec implements the elliptic-curve realization of group.Group:
// scalar multiplication on SECP256K1 via
// github.com/decred/dcrec/secp256k1/v4, the same curve implementation
// underlying github.com/btcsuite/btcd/btcec/v2 (a direct dependency of the
// ethereum-go-ethereum manifest in this project's retrieval pack). Elements
// are encoded SEC1-compressed, matching spec.md's 33-byte wire format.
package ec

import (
	"crypto/rand"
	"math/big"

	"github.com/decred/dcrec/secp256k1/v4"

	"github.com/tomsons-zkauth/zkauth/group"
)

// compressedSize is the SEC1 compressed point size for SECP256K1.
const compressedSize = 33

// Scalar is a value reduced modulo the SECP256K1 group order n.
type Scalar struct {
	v secp256k1.ModNScalar
}

// Bytes returns the 32-byte big-endian encoding of the scalar.
func (s Scalar) Bytes() []byte {
	b := s.v.Bytes()
	return b[:]
}

// Equal reports whether o is an ec.Scalar with the same value.
func (s Scalar) Equal(o group.Scalar) bool {
	os, ok := o.(Scalar)
	if !ok {
		return false
	}
	return s.v.Equals(&os.v)
}

// ModN returns the underlying decred ModNScalar. Callers must not mutate it.
func (s Scalar) ModN() *secp256k1.ModNScalar { return &s.v }

// Element is a SECP256K1 curve point.
type Element struct {
	p secp256k1.JacobianPoint
}

// Encode returns the 33-byte SEC1 compressed encoding of the point.
func (e Element) Encode() []byte {
	affine := e.p
	affine.ToAffine()
	pub := secp256k1.NewPublicKey(&affine.X, &affine.Y)
	return pub.SerializeCompressed()
}

// Equal reports whether o is an ec.Element representing the same point.
func (e Element) Equal(o group.Element) bool {
	oe, ok := o.(Element)
	if !ok {
		return false
	}
	a, b := e.p, oe.p
	a.ToAffine()
	b.ToAffine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y)
}

// Point returns the underlying Jacobian point. Callers must not mutate it.
func (e Element) Point() secp256k1.JacobianPoint { return e.p }

// NewElement wraps an already-computed Jacobian point.
func NewElement(p secp256k1.JacobianPoint) Element { return Element{p: p} }

// Identity returns the point at infinity. The zero value of JacobianPoint
// has Z == 0, which is the Jacobian-coordinate representation of infinity.
func Identity() Element { return Element{} }

// Group is the EC realization of group.Group. It carries no state of its
// own beyond the fixed curve order: g and h live in params.Params, not
// here, matching the DL realization's shape.
type Group struct{}

// New returns the (stateless) SECP256K1 group.
func New() *Group { return &Group{} }

// Order returns n, the SECP256K1 group order.
func (g *Group) Order() *big.Int {
	return new(big.Int).Set(secp256k1.S256().N)
}

// RandomScalar samples a scalar uniformly from [0, n) by rejection-free
// reduction of 32 random bytes modulo n (the resulting bias is
// cryptographically negligible, the same approach decred/dcrec and
// btcec take internally for nonce generation).
func (g *Group) RandomScalar() (group.Scalar, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, err
	}
	var s secp256k1.ModNScalar
	s.SetBytes(&buf)
	return Scalar{v: s}, nil
}

// ScalarFromBytes decodes a big-endian unsigned integer and reduces it
// modulo n.
func (g *Group) ScalarFromBytes(b []byte) (group.Scalar, error) {
	var padded [32]byte
	if len(b) > 32 {
		return nil, errScalarTooLong
	}
	copy(padded[32-len(b):], b)
	var s secp256k1.ModNScalar
	s.SetBytes(&padded)
	return Scalar{v: s}, nil
}

// ExpBase computes [s]base.
func (g *Group) ExpBase(base group.Element, s group.Scalar) group.Element {
	be := base.(Element)
	sc := s.(Scalar)
	var result secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&sc.v, &be.p, &result)
	return Element{p: result}
}

// Compose adds two curve points.
func (g *Group) Compose(a, b group.Element) group.Element {
	ae := a.(Element)
	be := b.(Element)
	var result secp256k1.JacobianPoint
	secp256k1.AddNonConst(&ae.p, &be.p, &result)
	return Element{p: result}
}

// DecodeElement parses a 33-byte SEC1 compressed point. Every point
// ParsePubKey accepts lies on the curve and, since SECP256K1 has prime
// order with cofactor 1, is automatically a member of the order-n group.
func (g *Group) DecodeElement(b []byte) (group.Element, error) {
	if len(b) != compressedSize {
		return nil, errInvalidEncoding
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, errInvalidEncoding
	}
	var p secp256k1.JacobianPoint
	pub.AsJacobian(&p)
	return Element{p: p}, nil
}

// ModSub returns ((a - b) mod n + n) mod n. ModNScalar arithmetic is
// already defined modulo n and never produces a negative representation,
// so this is simply subtraction in the scalar field.
func (g *Group) ModSub(a, b group.Scalar) group.Scalar {
	av := a.(Scalar).v
	bv := b.(Scalar).v
	var neg secp256k1.ModNScalar
	neg.Set(&bv).Negate()
	av.Add(&neg)
	return Scalar{v: av}
}

// BasePoint returns the canonical SECP256K1 generator as a Jacobian point.
func BasePoint() secp256k1.JacobianPoint {
	one := new(secp256k1.ModNScalar).SetInt(1)
	var g secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(one, &g)
	return g
}

// IsIdentity reports whether e is the point at infinity. In Jacobian
// coordinates this is the case exactly when the Z coordinate is zero.
func IsIdentity(e Element) bool {
	return e.p.Z.IsZero()
}

// ScalarBaseMult computes [s]G for the canonical base point G.
func ScalarBaseMult(s group.Scalar) group.Element {
	sc := s.(Scalar)
	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&sc.v, &result)
	return Element{p: result}
}
