// Package prover implements the Chaum-Pedersen prover side: sampling the
// secret x's public keys, committing to a random nonce, and computing the
// response once the verifier's challenge is known.
package prover

import (
	"math/big"

	"github.com/tomsons-zkauth/zkauth/group"
	"github.com/tomsons-zkauth/zkauth/params"
)

// Prover is stateless besides the group and generators it was built with;
// its scratch arithmetic context is simply the group.Group value it holds,
// never shared across goroutines.
type Prover struct {
	grp  group.Group
	g, h group.Element
}

// New builds a Prover for the given params.
func New(p *params.Params) *Prover {
	return &Prover{grp: p.Group, g: p.G, h: p.H}
}

// Random samples a uniform nonce k in [0, order).
func (pr *Prover) Random() (group.Scalar, error) {
	return pr.grp.RandomScalar()
}

// PublicKeys derives (y1, y2) = (g^x, h^x) for the secret x.
func (pr *Prover) PublicKeys(x group.Scalar) (y1, y2 group.Element) {
	return pr.grp.ExpBase(pr.g, x), pr.grp.ExpBase(pr.h, x)
}

// Commit derives the commitment (r1, r2) = (g^k, h^k) for the nonce k.
func (pr *Prover) Commit(k group.Scalar) (r1, r2 group.Element) {
	return pr.grp.ExpBase(pr.g, k), pr.grp.ExpBase(pr.h, k)
}

// ChallengeResponse computes s = (k - c*x) mod order, given the nonce k,
// the verifier's challenge c, and the secret x.
func (pr *Prover) ChallengeResponse(k, c, x group.Scalar) group.Scalar {
	order := pr.grp.Order()
	cv := new(big.Int).SetBytes(c.Bytes())
	xv := new(big.Int).SetBytes(x.Bytes())
	cx := new(big.Int).Mul(cv, xv)
	cx.Mod(cx, order)

	// cx is already reduced modulo order, so ScalarFromBytes cannot fail.
	cxScalar, _ := pr.grp.ScalarFromBytes(cx.Bytes())
	return pr.grp.ModSub(k, cxScalar)
}
