// Package dispatcher implements wire.Handler by routing each RPC to one
// of two authserver.Server instances by the request's algorithm tag,
// grounded on backkem-matter/pkg/transport.Manager's single-façade-over-
// two-backends shape.
package dispatcher

import (
	"context"

	"github.com/pion/logging"

	"github.com/tomsons-zkauth/zkauth"
	"github.com/tomsons-zkauth/zkauth/authserver"
	"github.com/tomsons-zkauth/zkauth/params"
	"github.com/tomsons-zkauth/zkauth/wire"
)

// Dispatcher holds one authserver.Server per algorithm and implements
// wire.Handler.
type Dispatcher struct {
	dl  *authserver.Server
	ec  *authserver.Server
	log logging.LeveledLogger
}

// New builds a Dispatcher from a canonical or generated Params pair, one
// per algorithm. loggerFactory may be nil, in which case the Dispatcher
// and the authserver.Server it builds log nothing.
func New(dlParams, ecParams *params.Params, loggerFactory logging.LoggerFactory) *Dispatcher {
	d := &Dispatcher{
		dl: authserver.New(dlParams, loggerFactory),
		ec: authserver.New(ecParams, loggerFactory),
	}
	if loggerFactory != nil {
		d.log = loggerFactory.NewLogger("dispatcher")
	}
	return d
}

func (d *Dispatcher) serverFor(algo params.Algorithm) (*authserver.Server, error) {
	switch algo {
	case params.AlgoDL:
		return d.dl, nil
	case params.AlgoEC:
		return d.ec, nil
	default:
		if d.log != nil {
			d.log.Debugf("unknown algorithm tag %v", algo)
		}
		return nil, zkauth.E("dispatcher", zkauth.KindInvalidArgument, nil)
	}
}

// Register implements wire.Handler.
func (d *Dispatcher) Register(ctx context.Context, req *wire.RegisterRequest) (*wire.RegisterResponse, error) {
	srv, err := d.serverFor(req.Algo)
	if err != nil {
		return nil, err
	}
	if err := srv.Register(ctx, req.User, req.Y1, req.Y2); err != nil {
		return nil, err
	}
	return &wire.RegisterResponse{}, nil
}

// CreateAuthenticationChallenge implements wire.Handler.
func (d *Dispatcher) CreateAuthenticationChallenge(ctx context.Context, req *wire.AuthChallengeRequest) (*wire.AuthChallengeResponse, error) {
	srv, err := d.serverFor(req.Algo)
	if err != nil {
		return nil, err
	}
	authID, c, err := srv.CreateAuthenticationChallenge(ctx, req.User, req.R1, req.R2)
	if err != nil {
		return nil, err
	}
	return &wire.AuthChallengeResponse{AuthID: authID, C: c}, nil
}

// VerifyAuthentication implements wire.Handler.
//
// The tag selects which algorithm server's in-flight state is consulted:
// each server keeps its own auth_id map, so an auth_id answered with a
// different tag than the one it was issued under is unknown there and
// fails with Unauthenticated. An unknown tag fails with InvalidArgument.
func (d *Dispatcher) VerifyAuthentication(ctx context.Context, req *wire.AuthAnswerRequest) (*wire.AuthAnswerResponse, error) {
	srv, err := d.serverFor(req.Algo)
	if err != nil {
		return nil, err
	}
	sessionID, err := srv.VerifyAuthentication(ctx, req.AuthID, req.S)
	if err != nil {
		return nil, err
	}
	return &wire.AuthAnswerResponse{SessionID: sessionID}, nil
}
