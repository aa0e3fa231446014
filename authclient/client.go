// Package authclient implements the per-algorithm client side of the
// protocol: per-user registration state, per-auth_id in-flight state, and
// the three operations that drive a wire.Client through the protocol.
package authclient

import (
	"context"
	"sync"

	"github.com/tomsons-zkauth/zkauth"
	"github.com/tomsons-zkauth/zkauth/crypto/prover"
	"github.com/tomsons-zkauth/zkauth/group"
	"github.com/tomsons-zkauth/zkauth/params"
	"github.com/tomsons-zkauth/zkauth/wire"
)

// registration is the client-side record of one user's secret and public
// keys, created at Register and never mutated.
type registration struct {
	X      group.Scalar
	Y1, Y2 group.Element
}

// authState is the client-side record of one in-flight challenge: the
// nonce and commitment the client formed, the server's challenge, and
// the secret needed to answer it.
type authState struct {
	R1, R2 group.Element
	C, K   group.Scalar
	X      group.Scalar
}

// Client drives one algorithm's three operations over an injected
// wire.Client. Its two maps are guarded independently, grounded on
// backkem-matter/pkg/session.Table's per-table sync.RWMutex.
type Client struct {
	grp    group.Group
	prover *prover.Prover
	algo   wire.Algo
	wire   *wire.Client

	mu            sync.RWMutex
	registrations map[string]registration

	inFlightMu sync.RWMutex
	inFlight   map[string]authState
}

// New builds a Client for the given algorithm's params, driving RPCs over
// wc.
func New(p *params.Params, algo wire.Algo, wc *wire.Client) *Client {
	return &Client{
		grp:           p.Group,
		prover:        prover.New(p),
		algo:          algo,
		wire:          wc,
		registrations: make(map[string]registration),
		inFlight:      make(map[string]authState),
	}
}

// Register samples a fresh secret x for user, derives (y1, y2), and
// registers them with the server. On transport success the registration
// is stored locally under user, overwriting any prior entry.
func (c *Client) Register(ctx context.Context, user string) error {
	const op = "authclient.Register"
	if err := ctx.Err(); err != nil {
		return zkauth.E(op, zkauth.KindInternal, err)
	}

	x, err := c.prover.Random()
	if err != nil {
		return zkauth.E(op, zkauth.KindInternal, err)
	}
	y1, y2 := c.prover.PublicKeys(x)

	_, err = c.wire.Register(&wire.RegisterRequest{
		User: user,
		Y1:   y1.Encode(),
		Y2:   y2.Encode(),
		Algo: c.algo,
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.registrations[user] = registration{X: x, Y1: y1, Y2: y2}
	c.mu.Unlock()
	return nil
}

// CreateAuthenticationChallenge requires a local registration for user,
// forms a fresh commitment, and submits it to the server. The returned
// auth_id is server-chosen; the local in-flight state is keyed by it.
func (c *Client) CreateAuthenticationChallenge(ctx context.Context, user string) (authID string, err error) {
	const op = "authclient.CreateAuthenticationChallenge"
	if err := ctx.Err(); err != nil {
		return "", zkauth.E(op, zkauth.KindInternal, err)
	}

	c.mu.RLock()
	reg, ok := c.registrations[user]
	c.mu.RUnlock()
	if !ok {
		return "", zkauth.E(op, zkauth.KindNotFound, nil)
	}

	k, err := c.prover.Random()
	if err != nil {
		return "", zkauth.E(op, zkauth.KindInternal, err)
	}
	r1, r2 := c.prover.Commit(k)

	resp, err := c.wire.CreateAuthenticationChallenge(&wire.AuthChallengeRequest{
		User: user,
		R1:   r1.Encode(),
		R2:   r2.Encode(),
		Algo: c.algo,
	})
	if err != nil {
		return "", err
	}

	cScalar, err := c.grp.ScalarFromBytes(resp.C)
	if err != nil {
		return "", zkauth.E(op, zkauth.KindInvalidArgument, err)
	}

	c.inFlightMu.Lock()
	c.inFlight[resp.AuthID] = authState{R1: r1, R2: r2, C: cScalar, K: k, X: reg.X}
	c.inFlightMu.Unlock()

	return resp.AuthID, nil
}

// VerifyAuthentication computes the response for the in-flight state
// keyed by authID and submits it. The in-flight entry is removed
// regardless of the outcome, so a second call with the same authID fails
// with UnknownAuthId (surfaced here as NotFound: there is nothing local
// left to answer with).
func (c *Client) VerifyAuthentication(ctx context.Context, authID string) (sessionID string, err error) {
	const op = "authclient.VerifyAuthentication"
	if err := ctx.Err(); err != nil {
		return "", zkauth.E(op, zkauth.KindInternal, err)
	}

	c.inFlightMu.Lock()
	state, ok := c.inFlight[authID]
	if ok {
		delete(c.inFlight, authID)
	}
	c.inFlightMu.Unlock()
	if !ok {
		return "", zkauth.E(op, zkauth.KindNotFound, nil)
	}

	s := c.prover.ChallengeResponse(state.K, state.C, state.X)

	resp, err := c.wire.VerifyAuthentication(&wire.AuthAnswerRequest{
		AuthID: authID,
		S:      s.Bytes(),
		Algo:   c.algo,
	})
	if err != nil {
		return "", err
	}
	return resp.SessionID, nil
}
