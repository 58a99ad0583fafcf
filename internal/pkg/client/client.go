package client

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"bankrpc/internal/pkg/log"
	"bankrpc/internal/pkg/wire"
)

// DefaultTimeout is the per-attempt reply wait used when no timeout is
// configured.
const DefaultTimeout = 2 * time.Second

// DefaultRetries is the number of send attempts made when no retry count is
// configured.
const DefaultRetries = 3

// Client invokes operations against a banking server over UDP.
type Client struct {
	conn       *net.UDPConn
	atMostOnce bool
	timeout    time.Duration
	retries    int
	logger     logrus.FieldLogger
}

// Cfg configures a Client.
type Cfg func(*Client) error

// WithServer dials serverAddr ("host:port") as the client's fixed peer.
func WithServer(serverAddr string) Cfg {
	return func(c *Client) error {
		raddr, err := net.ResolveUDPAddr("udp", serverAddr)
		if err != nil {
			return errors.Wrapf(err, "resolve %s failed", serverAddr)
		}
		conn, err := net.DialUDP("udp", nil, raddr)
		if err != nil {
			return errors.Wrapf(err, "dial %s failed", serverAddr)
		}
		c.conn = conn
		return nil
	}
}

// WithAtMostOnce selects at-most-once invocation semantics; the default is
// at-least-once.
func WithAtMostOnce(enabled bool) Cfg {
	return func(c *Client) error {
		c.atMostOnce = enabled
		return nil
	}
}

// WithTimeout sets the per-attempt reply wait.
func WithTimeout(d time.Duration) Cfg {
	return func(c *Client) error {
		c.timeout = d
		return nil
	}
}

// WithRetries sets the total number of send attempts made for a Call before
// it gives up and returns ErrCommunication.
func WithRetries(n int) Cfg {
	return func(c *Client) error {
		c.retries = n
		return nil
	}
}

// NewClient creates a Client with the given configuration.
func NewClient(cfgs ...Cfg) (*Client, error) {
	c := &Client{
		timeout: DefaultTimeout,
		retries: DefaultRetries,
		logger:  log.Logger(),
	}
	for _, cfg := range cfgs {
		if err := cfg(c); err != nil {
			return nil, errors.Wrap(err, "apply Client cfg failed")
		}
	}
	if c.conn == nil {
		return nil, errors.New("client requires WithServer")
	}
	return c, nil
}

// Close closes the underlying socket.
func (c *Client) Close() error {
	return c.conn.Close()
}

func newRequestID() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "generate request id failed")
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// Call sends a request for op with body and returns the matching reply,
// making up to the configured number of attempts (each using the same
// request ID) before giving up and returning ErrCommunication.
func (c *Client) Call(ctx context.Context, op wire.OpCode, body []byte) (*wire.Message, error) {
	requestID, err := newRequestID()
	if err != nil {
		return nil, err
	}

	var flags wire.Flags
	if c.atMostOnce {
		flags = wire.FlagAtMostOnce
	}
	req := wire.NewRequest(op, flags, requestID, body)
	encoded := wire.Encode(req)

	buf := make([]byte, 2048)
	for attempt := 1; attempt <= c.retries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if _, err := c.conn.Write(encoded); err != nil {
			return nil, errors.Wrap(err, "send request failed")
		}

		deadline := time.Now().Add(c.timeout)
		for {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				break
			}
			if err := c.conn.SetReadDeadline(deadline); err != nil {
				return nil, errors.Wrap(err, "set read deadline failed")
			}
			n, err := c.conn.Read(buf)
			if err != nil {
				break // timeout: fall through to retry
			}
			reply, err := wire.Decode(buf[:n])
			if err != nil {
				continue
			}
			if reply.MsgType != wire.MsgReply || reply.RequestID != requestID || reply.OpCode != op {
				continue // stale reply or callback sharing the socket
			}
			return reply, nil
		}
		c.logger.WithField("requestId", requestID).WithField("attempt", attempt).Warn("timed out waiting for reply, retrying")
	}
	return nil, ErrCommunication
}

// Monitor registers for callback notifications for the given duration and
// invokes handler for every CALLBACK_UPDATE datagram received until seconds
// have elapsed or ctx is cancelled, whichever comes first. On exit it
// restores the socket's normal (unbounded) read deadline. handler is called
// synchronously from the receive loop; it must not block.
func (c *Client) Monitor(ctx context.Context, seconds uint16, handler func(wire.CallbackUpdate)) error {
	reply, err := c.Call(ctx, wire.OpMonitorRegister, wire.MonitorRegisterRequest{Seconds: seconds}.Encode())
	if err != nil {
		return errors.Wrap(err, "register monitor failed")
	}
	if reply.Status != wire.StatusOK {
		return errors.Wrapf(ErrUnexpectedReplyStatus, "status=%s", reply.Status)
	}

	defer func() { _ = c.conn.SetReadDeadline(time.Time{}) }()

	deadline := time.Now().Add(time.Duration(seconds) * time.Second)
	buf := make([]byte, 2048)
	for {
		if ctx.Err() != nil {
			return nil
		}
		now := time.Now()
		if !now.Before(deadline) {
			return nil
		}
		readDeadline := now.Add(time.Second)
		if deadline.Before(readDeadline) {
			readDeadline = deadline
		}
		if err := c.conn.SetReadDeadline(readDeadline); err != nil {
			return errors.Wrap(err, "set read deadline failed")
		}
		n, err := c.conn.Read(buf)
		if err != nil {
			continue
		}
		msg, err := wire.Decode(buf[:n])
		if err != nil || msg.MsgType != wire.MsgCallback || msg.OpCode != wire.OpCallbackUpdate {
			continue
		}
		update, err := wire.DecodeCallbackUpdate(msg.Body)
		if err != nil {
			c.logger.Warn("failed to decode callback body")
			continue
		}
		handler(update)
	}
}
