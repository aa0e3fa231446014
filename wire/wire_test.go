package wire

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/tomsons-zkauth/zkauth"
)

type fakeHandler struct {
	registered map[string]bool
}

func (f *fakeHandler) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	if len(req.Y1) == 0 {
		return nil, zkauth.E("fake.Register", zkauth.KindInvalidArgument, nil)
	}
	f.registered[req.User] = true
	return &RegisterResponse{}, nil
}

func (f *fakeHandler) CreateAuthenticationChallenge(ctx context.Context, req *AuthChallengeRequest) (*AuthChallengeResponse, error) {
	if !f.registered[req.User] {
		return nil, zkauth.E("fake.CreateAuthenticationChallenge", zkauth.KindNotFound, nil)
	}
	return &AuthChallengeResponse{AuthID: "auth-1", C: []byte{9}}, nil
}

func (f *fakeHandler) VerifyAuthentication(ctx context.Context, req *AuthAnswerRequest) (*AuthAnswerResponse, error) {
	if req.AuthID != "auth-1" {
		return nil, zkauth.E("fake.VerifyAuthentication", zkauth.KindUnauthenticated, nil)
	}
	return &AuthAnswerResponse{SessionID: "session-1"}, nil
}

func pipeServerClient(t *testing.T, h Handler) (*Client, func()) {
	t.Helper()
	serverConn, clientConn := net.Pipe()

	s := &Server{handler: h, closeCh: make(chan struct{})}
	go s.ServeConn(serverConn)

	return NewClient(clientConn), func() { clientConn.Close() }
}

func TestRegisterRoundTrip(t *testing.T) {
	h := &fakeHandler{registered: make(map[string]bool)}
	c, closeFn := pipeServerClient(t, h)
	defer closeFn()

	_, err := c.Register(&RegisterRequest{User: "alice", Y1: []byte{1}, Y2: []byte{2}, Algo: AlgoDL})
	if err != nil {
		t.Fatal(err)
	}
	if !h.registered["alice"] {
		t.Fatal("handler did not observe registration")
	}
}

func TestRegisterInvalidArgumentPropagates(t *testing.T) {
	h := &fakeHandler{registered: make(map[string]bool)}
	c, closeFn := pipeServerClient(t, h)
	defer closeFn()

	_, err := c.Register(&RegisterRequest{User: "alice", Algo: AlgoDL})
	if zkauth.KindOf(err) != zkauth.KindInvalidArgument {
		t.Fatalf("got kind %v, want InvalidArgument", zkauth.KindOf(err))
	}
}

func TestCreateAuthenticationChallengeNotFound(t *testing.T) {
	h := &fakeHandler{registered: make(map[string]bool)}
	c, closeFn := pipeServerClient(t, h)
	defer closeFn()

	_, err := c.CreateAuthenticationChallenge(&AuthChallengeRequest{User: "bob", Algo: AlgoEC})
	if zkauth.KindOf(err) != zkauth.KindNotFound {
		t.Fatalf("got kind %v, want NotFound", zkauth.KindOf(err))
	}
}

func TestFullRPCSequence(t *testing.T) {
	h := &fakeHandler{registered: make(map[string]bool)}
	c, closeFn := pipeServerClient(t, h)
	defer closeFn()

	if _, err := c.Register(&RegisterRequest{User: "alice", Y1: []byte{1}, Y2: []byte{2}, Algo: AlgoDL}); err != nil {
		t.Fatal(err)
	}
	challenge, err := c.CreateAuthenticationChallenge(&AuthChallengeRequest{User: "alice", R1: []byte{3}, R2: []byte{4}, Algo: AlgoDL})
	if err != nil {
		t.Fatal(err)
	}
	answer, err := c.VerifyAuthentication(&AuthAnswerRequest{AuthID: challenge.AuthID, S: []byte{5}, Algo: AlgoDL})
	if err != nil {
		t.Fatal(err)
	}
	if answer.SessionID != "session-1" {
		t.Fatalf("got session id %q", answer.SessionID)
	}
}

func TestVerifyAuthenticationUnknownAuthID(t *testing.T) {
	h := &fakeHandler{registered: make(map[string]bool)}
	c, closeFn := pipeServerClient(t, h)
	defer closeFn()

	_, err := c.VerifyAuthentication(&AuthAnswerRequest{AuthID: "nope", S: []byte{1}, Algo: AlgoDL})
	if zkauth.KindOf(err) != zkauth.KindUnauthenticated {
		t.Fatalf("got kind %v, want Unauthenticated", zkauth.KindOf(err))
	}
}

func TestClientCallsAreSerialized(t *testing.T) {
	h := &fakeHandler{registered: make(map[string]bool)}
	c, closeFn := pipeServerClient(t, h)
	defer closeFn()

	done := make(chan struct{}, 2)
	for _, user := range []string{"a", "b"} {
		go func(user string) {
			c.Register(&RegisterRequest{User: user, Y1: []byte{1}, Y2: []byte{2}, Algo: AlgoDL})
			done <- struct{}{}
		}(user)
	}

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("concurrent Register calls deadlocked")
		}
	}
	if !h.registered["a"] || !h.registered["b"] {
		t.Fatal("handler did not observe both concurrent registrations")
	}
}
