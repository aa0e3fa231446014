// Package authserver implements the per-algorithm server side of the
// protocol: the registrations and in-flight authentication-state maps,
// and the three RPC endpoints that mutate them.
package authserver

import (
	"context"

	"github.com/google/uuid"
	"github.com/pion/logging"

	"github.com/tomsons-zkauth/zkauth"
	"github.com/tomsons-zkauth/zkauth/crypto/verifier"
	"github.com/tomsons-zkauth/zkauth/group"
	"github.com/tomsons-zkauth/zkauth/params"
)

// registration is the server-side record for one user: their public
// keys, inserted at Register and never mutated.
type registration struct {
	Y1, Y2 group.Element
}

// authState is the server-side record for one in-flight challenge:
// the prover's commitment, the server's challenge, and the user it was
// issued for.
type authState struct {
	R1, R2 group.Element
	C      group.Scalar
	User   string
}

// Server holds one algorithm's registrations and in-flight authentication
// state and implements the three endpoints of spec.md §4.7.
type Server struct {
	grp      group.Group
	verifier *verifier.Verifier
	log      logging.LeveledLogger

	registrations *lockedMap[string, registration]
	authStates    *lockedMap[string, authState]
}

// New builds a Server for the given algorithm's params. loggerFactory may
// be nil, in which case the Server logs nothing, matching
// backkem-matter's nil-checked LoggerFactory convention.
func New(p *params.Params, loggerFactory logging.LoggerFactory) *Server {
	s := &Server{
		grp:           p.Group,
		verifier:      verifier.New(p),
		registrations: newLockedMap[string, registration](),
		authStates:    newLockedMap[string, authState](),
	}
	if loggerFactory != nil {
		s.log = loggerFactory.NewLogger("authserver")
	}
	return s
}

// Register decodes y1, y2 and inserts them under user, overwriting any
// existing registration.
func (s *Server) Register(ctx context.Context, user string, y1, y2 []byte) error {
	if err := ctx.Err(); err != nil {
		return zkauth.E("authserver.Register", zkauth.KindInternal, err)
	}

	dy1, err := s.grp.DecodeElement(y1)
	if err != nil {
		if s.log != nil {
			s.log.Debugf("register %s: invalid y1: %v", user, err)
		}
		return zkauth.E("authserver.Register", zkauth.KindInvalidArgument, err)
	}
	dy2, err := s.grp.DecodeElement(y2)
	if err != nil {
		if s.log != nil {
			s.log.Debugf("register %s: invalid y2: %v", user, err)
		}
		return zkauth.E("authserver.Register", zkauth.KindInvalidArgument, err)
	}

	s.registrations.Insert(user, registration{Y1: dy1, Y2: dy2})
	if s.log != nil {
		s.log.Debugf("registered %s", user)
	}
	return nil
}

// CreateAuthenticationChallenge decodes r1, r2, requires user to be
// registered, and issues a fresh challenge under a fresh auth_id. The
// server never checks whether user already has in-flight challenges;
// concurrent challenges for the same user each get their own auth_id.
func (s *Server) CreateAuthenticationChallenge(ctx context.Context, user string, r1, r2 []byte) (authID string, c []byte, err error) {
	const op = "authserver.CreateAuthenticationChallenge"
	if err := ctx.Err(); err != nil {
		return "", nil, zkauth.E(op, zkauth.KindInternal, err)
	}

	dr1, err := s.grp.DecodeElement(r1)
	if err != nil {
		if s.log != nil {
			s.log.Debugf("challenge %s: invalid r1: %v", user, err)
		}
		return "", nil, zkauth.E(op, zkauth.KindInvalidArgument, err)
	}
	dr2, err := s.grp.DecodeElement(r2)
	if err != nil {
		if s.log != nil {
			s.log.Debugf("challenge %s: invalid r2: %v", user, err)
		}
		return "", nil, zkauth.E(op, zkauth.KindInvalidArgument, err)
	}

	if _, ok := s.registrations.Get(user); !ok {
		if s.log != nil {
			s.log.Debugf("challenge %s: not registered", user)
		}
		return "", nil, zkauth.E(op, zkauth.KindNotFound, nil)
	}

	challenge, err := s.verifier.Random()
	if err != nil {
		if s.log != nil {
			s.log.Errorf("challenge %s: sample challenge: %v", user, err)
		}
		return "", nil, zkauth.E(op, zkauth.KindInternal, err)
	}

	id, err := uuid.NewRandom()
	if err != nil {
		if s.log != nil {
			s.log.Errorf("challenge %s: generate auth_id: %v", user, err)
		}
		return "", nil, zkauth.E(op, zkauth.KindInternal, err)
	}

	s.authStates.Insert(id.String(), authState{R1: dr1, R2: dr2, C: challenge, User: user})
	if s.log != nil {
		s.log.Debugf("issued challenge %s for %s", id, user)
	}
	return id.String(), challenge.Bytes(), nil
}

// VerifyAuthentication decodes s, consumes the auth_id's state
// unconditionally (success or failure), and mints a session id iff the
// verification equation holds.
func (s *Server) VerifyAuthentication(ctx context.Context, authID string, sBytes []byte) (sessionID string, err error) {
	const op = "authserver.VerifyAuthentication"
	if err := ctx.Err(); err != nil {
		return "", zkauth.E(op, zkauth.KindInternal, err)
	}

	sScalar, err := s.grp.ScalarFromBytes(sBytes)
	if err != nil {
		if s.log != nil {
			s.log.Debugf("verify %s: invalid s: %v", authID, err)
		}
		return "", zkauth.E(op, zkauth.KindInvalidArgument, err)
	}

	state, ok := s.authStates.CompareAndRemove(authID, func(authState) bool { return true })
	if !ok {
		if s.log != nil {
			s.log.Debugf("verify %s: unknown auth_id", authID)
		}
		return "", zkauth.E(op, zkauth.KindUnauthenticated, nil)
	}

	reg, ok := s.registrations.Get(state.User)
	if !ok {
		if s.log != nil {
			s.log.Debugf("verify %s: user %s no longer registered", authID, state.User)
		}
		return "", zkauth.E(op, zkauth.KindUnauthenticated, nil)
	}

	if !s.verifier.Check(reg.Y1, reg.Y2, state.R1, state.R2, state.C, sScalar) {
		if s.log != nil {
			s.log.Debugf("verify %s: check failed for %s", authID, state.User)
		}
		return "", zkauth.E(op, zkauth.KindUnauthenticated, nil)
	}

	id, err := uuid.NewRandom()
	if err != nil {
		if s.log != nil {
			s.log.Errorf("verify %s: generate session_id: %v", authID, err)
		}
		return "", zkauth.E(op, zkauth.KindInternal, err)
	}
	if s.log != nil {
		s.log.Debugf("verify %s: authenticated %s, minted session %s", authID, state.User, id)
	}
	return id.String(), nil
}
