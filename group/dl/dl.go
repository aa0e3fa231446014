// Package dl implements the discrete-log realization of group.Group: the
// multiplicative group of integers modulo a safe prime p, restricted to
// its order-q subgroup (p = 2q+1). This mirrors the big.Int modular
// exponentiation style _examples/Tomsons-go-srp uses for SRP-6a, generalized
// to the two-generator Chaum-Pedersen setting.
package dl

import (
	"crypto/rand"
	"math/big"

	"github.com/tomsons-zkauth/zkauth/group"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Scalar is an exponent in [0, q).
type Scalar struct {
	v *big.Int
}

// Bytes returns the minimal-length big-endian encoding of the scalar.
func (s Scalar) Bytes() []byte { return s.v.Bytes() }

// Equal reports whether o is a dl.Scalar with the same value.
func (s Scalar) Equal(o group.Scalar) bool {
	os, ok := o.(Scalar)
	if !ok {
		return false
	}
	return s.v.Cmp(os.v) == 0
}

// Int returns the scalar's underlying value. Callers must not mutate it.
func (s Scalar) Int() *big.Int { return s.v }

// Element is a residue in the order-q subgroup of Z_p^*.
type Element struct {
	v *big.Int
}

// Encode returns the minimal-length big-endian encoding of the residue.
func (e Element) Encode() []byte { return e.v.Bytes() }

// Equal reports whether o is a dl.Element with the same residue.
func (e Element) Equal(o group.Element) bool {
	oe, ok := o.(Element)
	if !ok {
		return false
	}
	return e.v.Cmp(oe.v) == 0
}

// Int returns the element's underlying residue. Callers must not mutate it.
func (e Element) Int() *big.Int { return e.v }

// NewElement wraps an already-validated residue v as an Element.
func NewElement(v *big.Int) Element { return Element{v: new(big.Int).Set(v)} }

// Identity returns the order-q subgroup's identity element, 1.
func Identity() Element { return Element{v: big.NewInt(1)} }

// Group is the DL realization of group.Group, parameterized by the safe
// prime p and subgroup order q = (p-1)/2.
type Group struct {
	P *big.Int
	Q *big.Int
}

// New returns a Group for the given safe prime p and its subgroup order q.
// params.GenerateDL and params.LoadDL build their Group through it.
func New(p, q *big.Int) *Group {
	return &Group{P: p, Q: q}
}

// Order returns q.
func (g *Group) Order() *big.Int { return new(big.Int).Set(g.Q) }

// RandomScalar samples uniformly from [0, q).
func (g *Group) RandomScalar() (group.Scalar, error) {
	v, err := rand.Int(rand.Reader, g.Q)
	if err != nil {
		return nil, err
	}
	return Scalar{v: v}, nil
}

// ScalarFromBytes decodes a big-endian unsigned integer and reduces it
// modulo q.
func (g *Group) ScalarFromBytes(b []byte) (group.Scalar, error) {
	v := new(big.Int).SetBytes(b)
	v.Mod(v, g.Q)
	return Scalar{v: v}, nil
}

// ExpBase computes base^s mod p.
func (g *Group) ExpBase(base group.Element, s group.Scalar) group.Element {
	b := base.(Element)
	sc := s.(Scalar)
	return Element{v: new(big.Int).Exp(b.v, sc.v, g.P)}
}

// Compose computes a*b mod p.
func (g *Group) Compose(a, b group.Element) group.Element {
	ae := a.(Element)
	be := b.(Element)
	r := new(big.Int).Mul(ae.v, be.v)
	r.Mod(r, g.P)
	return Element{v: r}
}

// DecodeElement parses a big-endian unsigned residue and validates it lies
// in [0, p) and in the order-q subgroup (y^q == 1 mod p).
func (g *Group) DecodeElement(b []byte) (group.Element, error) {
	v := new(big.Int).SetBytes(b)
	if v.Sign() < 0 || v.Cmp(g.P) >= 0 {
		return nil, errInvalidElement
	}
	if !InSubgroup(v, g.Q, g.P) {
		return nil, errNotInSubgroup
	}
	return Element{v: v}, nil
}

// ModSub returns ((a - b) mod q + q) mod q.
func (g *Group) ModSub(a, b group.Scalar) group.Scalar {
	av := a.(Scalar).v
	bv := b.(Scalar).v
	r := new(big.Int).Sub(av, bv)
	r.Mod(r, g.Q)
	if r.Sign() < 0 {
		r.Add(r, g.Q)
	}
	return Scalar{v: r}
}

// InSubgroup reports whether y lies in the order-q subgroup of Z_p^*,
// i.e. 0 < y < p and y^q == 1 (mod p). The identity element (y == 1)
// satisfies this but is never a valid generator.
func InSubgroup(y, q, p *big.Int) bool {
	if y.Sign() <= 0 || y.Cmp(p) >= 0 {
		return false
	}
	r := new(big.Int).Exp(y, q, p)
	return r.Cmp(one) == 0
}

// IsGenerator reports whether y is a nontrivial element of the order-q
// subgroup of Z_p^*: y != 1 and y^q == 1 (mod p).
func IsGenerator(y, q, p *big.Int) bool {
	if y.Cmp(one) == 0 {
		return false
	}
	return InSubgroup(y, q, p)
}
