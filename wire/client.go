package wire

import (
	"net"
	"sync"
)

// Client drives the three RPCs over a single net.Conn. Calls are
// serialized with a per-connection mutex: one in-flight call at a time
// per connection, any number of connections per client process.
type Client struct {
	mu sync.Mutex
	r  *streamReader
	w  *streamWriter
}

// NewClient wraps conn for RPC use.
func NewClient(conn net.Conn) *Client {
	return &Client{
		r: newStreamReader(conn),
		w: newStreamWriter(conn),
	}
}

func (c *Client) call(op string, m method, req any, resp any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload, err := encode(req)
	if err != nil {
		return err
	}
	frame := append([]byte{byte(m)}, payload...)
	if err := c.w.write(frame); err != nil {
		return err
	}

	respFrame, err := c.r.read()
	if err != nil {
		return err
	}
	return decodeResponse(respFrame, op, resp)
}

// Register registers req.User's public keys.
func (c *Client) Register(req *RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.call("wire.Register", methodRegister, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateAuthenticationChallenge submits req's commitment and receives the
// server's auth_id and challenge.
func (c *Client) CreateAuthenticationChallenge(req *AuthChallengeRequest) (*AuthChallengeResponse, error) {
	var resp AuthChallengeResponse
	if err := c.call("wire.CreateAuthenticationChallenge", methodCreateAuthenticationChallenge, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyAuthentication submits req's response and receives a session id
// on success.
func (c *Client) VerifyAuthentication(req *AuthAnswerRequest) (*AuthAnswerResponse, error) {
	var resp AuthAnswerResponse
	if err := c.call("wire.VerifyAuthentication", methodVerifyAuthentication, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
