// Package params constructs and validates the public parameters for one
// Chaum-Pedersen instantiation: the two generators g, h and the subgroup
// order, over either the DL or EC realization of group.Group. Params is
// algorithm-agnostic by design (spec.md §9 "Polymorphism over two
// algebraic groups") so that crypto/prover, crypto/verifier, authclient,
// and authserver need only depend on group.Group, never on dl or ec
// directly.
package params

import (
	"github.com/tomsons-zkauth/zkauth/group"
	"github.com/tomsons-zkauth/zkauth/group/dl"
	"github.com/tomsons-zkauth/zkauth/group/ec"
)

// Params holds the public parameters shared by the Prover and Verifier:
// the group itself and two independent generators g, h.
type Params struct {
	Group group.Group
	G, H  group.Element
}

// validate enforces the invariant spec.md §3 and §9 require of any Params,
// generated or loaded: g != h, and neither is the group identity.
func validate(grp group.Group, g, h, identity group.Element, degenerate error) (*Params, error) {
	if g.Equal(identity) || h.Equal(identity) || g.Equal(h) {
		return nil, degenerate
	}
	return &Params{Group: grp, G: g, H: h}, nil
}

// GenerateDL draws a fresh safe prime of bitLength+1 bits and two
// independent generators of its order-q subgroup, per spec.md §4.2.
func GenerateDL(bitLength int) (*Params, error) {
	p, q, err := dl.GenerateSafePrime(bitLength)
	if err != nil {
		return nil, err
	}
	grp := dl.New(p, q)

	gv, err := dl.GenerateGenerator(p, q)
	if err != nil {
		return nil, err
	}
	hv, err := dl.GenerateGenerator(p, q)
	if err != nil {
		return nil, err
	}
	for hv.Cmp(gv) == 0 {
		if hv, err = dl.GenerateGenerator(p, q); err != nil {
			return nil, err
		}
	}

	return validate(grp, dl.NewElement(gv), dl.NewElement(hv), dl.Identity(), dl.ErrDegenerateParams)
}

// GenerateEC draws two independent nonzero scalar multiples of the
// canonical SECP256K1 base point, per spec.md §4.2's EC generation
// algorithm.
func GenerateEC() (*Params, error) {
	grp := ec.New()

	g, err := randomGenerator(grp)
	if err != nil {
		return nil, err
	}
	h, err := randomGenerator(grp)
	if err != nil {
		return nil, err
	}
	for h.Equal(g) {
		if h, err = randomGenerator(grp); err != nil {
			return nil, err
		}
	}

	return validate(grp, g, h, ec.Identity(), ec.ErrDegenerateParams)
}

func randomGenerator(grp *ec.Group) (group.Element, error) {
	for {
		s, err := grp.RandomScalar()
		if err != nil {
			return nil, err
		}
		e := ec.ScalarBaseMult(s)
		if !ec.IsIdentity(e.(ec.Element)) {
			return e, nil
		}
	}
}
