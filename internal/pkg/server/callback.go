package server

import (
	"net"
	"strconv"
	"time"

	"bankrpc/internal/pkg/monitor"
	"bankrpc/internal/pkg/wire"
)

func itoa(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

func (s *Server) registerMonitor(clientAddr string, seconds uint16) {
	s.monitor.Register(clientAddr, time.Duration(seconds)*time.Second)
	s.logger.WithField("client", clientAddr).WithField("seconds", seconds).Info("registered monitor")
}

// fanOutUpdate sends a CALLBACK_UPDATE datagram to every active monitor.
// A send failure against one monitor is logged and does not stop the
// fan-out to the rest.
func (s *Server) fanOutUpdate(updateType wire.OpCode, accountNo int32, currency wire.Currency, balance float64, info string) {
	active := s.monitor.Active(time.Now())
	if len(active) == 0 {
		return
	}

	body := wire.CallbackUpdate{
		UpdateType: updateType,
		AccountNo:  accountNo,
		Currency:   currency,
		NewBalance: balance,
		Info:       info,
	}.Encode()
	cb := wire.NewCallback(body)
	cbBytes := wire.Encode(cb)

	for _, entry := range active {
		s.sendCallback(entry, cbBytes)
	}
}

func (s *Server) sendCallback(entry monitor.Entry, cbBytes []byte) {
	addr, err := net.ResolveUDPAddr("udp", entry.ClientAddr)
	if err != nil {
		s.logger.WithField("client", entry.ClientAddr).Warn("failed to resolve monitor address")
		return
	}
	if _, err := s.conn.WriteToUDP(cbBytes, addr); err != nil {
		s.logger.WithField("client", entry.ClientAddr).Warn("failed to send callback")
	}
}
