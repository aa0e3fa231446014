// Package verifier implements the Chaum-Pedersen verifier side: sampling
// the challenge and checking the prover's response against the commitment
// and the registered public keys.
package verifier

import (
	"github.com/tomsons-zkauth/zkauth/group"
	"github.com/tomsons-zkauth/zkauth/params"
)

// Verifier is symmetric to prover.Prover: stateless, holding only the
// group and generators it was built with.
type Verifier struct {
	grp  group.Group
	g, h group.Element
}

// New builds a Verifier for the given params.
func New(p *params.Params) *Verifier {
	return &Verifier{grp: p.Group, g: p.G, h: p.H}
}

// Random samples a uniform challenge c in [0, order).
func (v *Verifier) Random() (group.Scalar, error) {
	return v.grp.RandomScalar()
}

// Check reports whether (y1, y2, r1, r2, c, s) forms a valid Chaum-Pedersen
// proof: compose(g^s, y1^c) == r1 and compose(h^s, y2^c) == r2.
func (v *Verifier) Check(y1, y2, r1, r2 group.Element, c, s group.Scalar) bool {
	lhs1 := v.grp.Compose(v.grp.ExpBase(v.g, s), v.grp.ExpBase(y1, c))
	lhs2 := v.grp.Compose(v.grp.ExpBase(v.h, s), v.grp.ExpBase(y2, c))
	return lhs1.Equal(r1) && lhs2.Equal(r2)
}
