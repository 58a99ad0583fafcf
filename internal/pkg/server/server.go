package server

import (
	"context"
	"math/rand"
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"bankrpc/internal/pkg/bank"
	"bankrpc/internal/pkg/dedup"
	"bankrpc/internal/pkg/log"
	"bankrpc/internal/pkg/monitor"
	"bankrpc/internal/pkg/wire"
)

// Server is a UDP server implementing the banking protocol, including
// simulated packet loss and at-most-once deduplication.
type Server struct {
	conn *net.UDPConn

	bank    bank.Store
	dedup   dedup.Store
	monitor monitor.Store

	lossReq float64
	lossRep float64
	rng     *rand.Rand

	logger logrus.FieldLogger
}

// Cfg configures a Server.
type Cfg func(*Server) error

// WithBank sets the bank backing the server.
func WithBank(b bank.Store) Cfg {
	return func(s *Server) error {
		s.bank = b
		return nil
	}
}

// WithDedupStore sets the dedup cache backing the server.
func WithDedupStore(d dedup.Store) Cfg {
	return func(s *Server) error {
		s.dedup = d
		return nil
	}
}

// WithMonitorStore sets the monitor registry backing the server.
func WithMonitorStore(m monitor.Store) Cfg {
	return func(s *Server) error {
		s.monitor = m
		return nil
	}
}

// WithLoss sets the simulated request and reply loss probabilities, each in
// [0, 1].
func WithLoss(lossReq, lossRep float64) Cfg {
	return func(s *Server) error {
		s.lossReq = lossReq
		s.lossRep = lossRep
		return nil
	}
}

// NewServer creates a Server listening on port with the given
// configuration.
func NewServer(port int, cfgs ...Cfg) (*Server, error) {
	addr := &net.UDPAddr{Port: port}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen on port %d failed", port)
	}

	s := &Server{
		conn:   conn,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), // nolint:gosec // loss simulation, not security sensitive
		logger: log.Logger(),
	}
	for _, cfg := range cfgs {
		if err := cfg(s); err != nil {
			return nil, errors.Wrap(err, "apply Server cfg failed")
		}
	}
	if s.bank == nil {
		s.bank = bank.NewMemoryBank()
	}
	if s.dedup == nil {
		s.dedup = dedup.NewMemoryStore(dedup.DefaultTTL)
	}
	if s.monitor == nil {
		s.monitor = monitor.NewMemoryStore()
	}
	return s, nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr {
	return s.conn.LocalAddr()
}

// Close closes the underlying socket.
func (s *Server) Close() error {
	return s.conn.Close()
}

// Run drives the receive loop until ctx is cancelled or the socket errors
// fatally.
func (s *Server) Run(ctx context.Context) error {
	buf := make([]byte, 2048)

	go func() {
		<-ctx.Done()
		_ = s.conn.Close()
	}()

	for {
		now := time.Now()
		s.dedup.Sweep(now)
		s.monitor.Sweep(now)

		n, clientAddr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "read from socket failed")
		}
		raw := make([]byte, n)
		copy(raw, buf[:n])
		s.handleDatagram(raw, clientAddr)
	}
}

func (s *Server) handleDatagram(raw []byte, clientAddr *net.UDPAddr) {
	key := clientAddr.String()
	logger := s.logger.WithField("cid", log.NewCorrelationID())

	if s.rng.Float64() < s.lossReq {
		logger.WithField("client", key).Debug("dropped request (simulated loss)")
		return
	}

	req, err := wire.Decode(raw)
	if err != nil || req.Version != wire.Version || req.MsgType != wire.MsgRequest {
		logger.WithField("client", key).Warn("discarding malformed datagram")
		return
	}

	atMostOnce := req.Flags.AtMostOnce()
	dedupKey := dedup.Key{ClientAddr: key, RequestID: req.RequestID}

	if atMostOnce {
		if cached, ok := s.dedup.Get(dedupKey); ok {
			logger.WithFields(log.MessageFields(key, req)).Info("replaying cached reply for duplicate request")
			if s.rng.Float64() < s.lossRep {
				return
			}
			_, _ = s.conn.WriteToUDP(cached, clientAddr)
			return
		}
	}

	logger.WithFields(log.MessageFields(key, req)).Info("received request")

	reply := s.process(req, key)
	replyBytes := wire.Encode(reply)

	if atMostOnce {
		s.dedup.Put(dedupKey, replyBytes)
	}

	if s.rng.Float64() < s.lossRep {
		logger.WithField("client", key).Debug("dropped reply (simulated loss)")
		return
	}
	_, _ = s.conn.WriteToUDP(replyBytes, clientAddr)
}
