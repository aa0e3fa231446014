package wire

import (
	"context"
	"net"
	"sync"

	"github.com/pion/logging"
)

// Handler implements the three authentication RPCs. dispatcher.Dispatcher
// is the only production implementation; it routes by the request's Algo
// field to a DL or EC authserver.Server.
type Handler interface {
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
	CreateAuthenticationChallenge(ctx context.Context, req *AuthChallengeRequest) (*AuthChallengeResponse, error)
	VerifyAuthentication(ctx context.Context, req *AuthAnswerRequest) (*AuthAnswerResponse, error)
}

// Server accepts connections on a net.Listener and serves Handler over
// the length-prefixed gob framing in codec.go. One goroutine per accepted
// connection, matching backkem-matter/pkg/transport.TCP's accept loop.
type Server struct {
	listener net.Listener
	handler  Handler
	log      logging.LeveledLogger

	wg      sync.WaitGroup
	closeCh chan struct{}
}

// ServerConfig configures a Server.
type ServerConfig struct {
	Listener net.Listener
	Handler  Handler
	// LoggerFactory creates the server's logger. If nil, logging is
	// disabled.
	LoggerFactory logging.LoggerFactory
}

// NewServer builds a Server. The caller must call Serve to begin
// accepting connections.
func NewServer(cfg ServerConfig) *Server {
	s := &Server{
		listener: cfg.Listener,
		handler:  cfg.Handler,
		closeCh:  make(chan struct{}),
	}
	if cfg.LoggerFactory != nil {
		s.log = cfg.LoggerFactory.NewLogger("wire-server")
	}
	return s
}

// Serve accepts connections until the listener is closed or Stop is
// called. It blocks the calling goroutine; callers typically run it in
// its own goroutine.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return nil
			default:
				return err
			}
		}
		s.wg.Add(1)
		go s.serveConn(conn)
	}
}

// Stop closes the listener and waits until every connection being served
// has ended. It does not close open connections itself, so it returns only
// once their peers have disconnected (or a frame error ended them).
func (s *Server) Stop() error {
	close(s.closeCh)
	err := s.listener.Close()
	s.wg.Wait()
	return err
}

// ServeConn serves a single already-established connection (e.g. a
// net.Pipe endpoint in tests, or a connection handed off by some other
// acceptor) until the peer closes it or a frame error occurs. Unlike
// Serve, it blocks only for the lifetime of conn.
func (s *Server) ServeConn(conn net.Conn) {
	s.wg.Add(1)
	s.serveConn(conn)
}

func (s *Server) serveConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	r := newStreamReader(conn)
	w := newStreamWriter(conn)

	for {
		frame, err := r.read()
		if err != nil {
			if s.log != nil && err != nil {
				s.log.Debugf("connection closed: %v", err)
			}
			return
		}
		if len(frame) < 1 {
			return
		}

		respFrame := s.dispatch(context.Background(), method(frame[0]), frame[1:])
		if err := w.write(respFrame); err != nil {
			if s.log != nil {
				s.log.Debugf("write failed: %v", err)
			}
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, m method, payload []byte) []byte {
	switch m {
	case methodRegister:
		var req RegisterRequest
		if err := decode(payload, &req); err != nil {
			return errorFrame(ErrCodeInvalidArgument, err.Error())
		}
		resp, err := s.handler.Register(ctx, &req)
		return responseFrame(resp, err)

	case methodCreateAuthenticationChallenge:
		var req AuthChallengeRequest
		if err := decode(payload, &req); err != nil {
			return errorFrame(ErrCodeInvalidArgument, err.Error())
		}
		resp, err := s.handler.CreateAuthenticationChallenge(ctx, &req)
		return responseFrame(resp, err)

	case methodVerifyAuthentication:
		var req AuthAnswerRequest
		if err := decode(payload, &req); err != nil {
			return errorFrame(ErrCodeInvalidArgument, err.Error())
		}
		resp, err := s.handler.VerifyAuthentication(ctx, &req)
		return responseFrame(resp, err)

	default:
		return errorFrame(ErrCodeInvalidArgument, ErrUnknownMethod.Error())
	}
}
