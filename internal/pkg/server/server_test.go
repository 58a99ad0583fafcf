package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bankrpc/internal/pkg/wire"
)

func startTestServer(t *testing.T) (*Server, func()) {
	s, err := NewServer(0)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = s.Run(ctx) }()
	return s, func() {
		cancel()
		_ = s.Close()
	}
}

func dialServer(t *testing.T, s *Server) *net.UDPConn {
	conn, err := net.DialUDP("udp", nil, s.Addr().(*net.UDPAddr))
	require.NoError(t, err)
	return conn
}

func roundTrip(t *testing.T, conn *net.UDPConn, req *wire.Message) *wire.Message {
	_, err := conn.Write(wire.Encode(req))
	require.NoError(t, err)
	buf := make([]byte, 2048)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, err := conn.Read(buf)
	require.NoError(t, err)
	reply, err := wire.Decode(buf[:n])
	require.NoError(t, err)
	return reply
}

func TestOpenAccountSucceeds(t *testing.T) {
	s, stop := startTestServer(t)
	defer stop()
	conn := dialServer(t, s)
	defer conn.Close()

	body := wire.OpenRequest{Name: "alice", Password: "pw123456", Currency: wire.CurrencyCNY, Initial: 100}.Encode()
	req := wire.NewRequest(wire.OpOpen, 0, 1, body)
	reply := roundTrip(t, conn, req)

	require.Equal(t, wire.StatusOK, reply.Status)
	require.Equal(t, uint64(1), reply.RequestID)
	openReply, err := wire.DecodeOpenReply(reply.Body)
	require.NoError(t, err)
	require.Equal(t, 100.0, openReply.Balance)
}

func TestAtMostOnceDuplicateReplaysCachedBytes(t *testing.T) {
	s, stop := startTestServer(t)
	defer stop()
	conn := dialServer(t, s)
	defer conn.Close()

	openBody := wire.OpenRequest{Name: "bob", Password: "pw123456", Currency: wire.CurrencyCNY, Initial: 50}.Encode()
	openReq := wire.NewRequest(wire.OpOpen, wire.FlagAtMostOnce, 10, openBody)
	openReply := roundTrip(t, conn, openReq)
	openResult, err := wire.DecodeOpenReply(openReply.Body)
	require.NoError(t, err)

	depositBody := wire.DepositRequest{
		Name: "bob", AccountNo: openResult.AccountNo, Password: "pw123456",
		Currency: wire.CurrencyCNY, Amount: 5,
	}.Encode()
	depositReq := wire.NewRequest(wire.OpDeposit, wire.FlagAtMostOnce, 11, depositBody)

	first := roundTrip(t, conn, depositReq)
	second := roundTrip(t, conn, depositReq)

	firstBal, err := wire.DecodeBalanceReply(first.Body)
	require.NoError(t, err)
	secondBal, err := wire.DecodeBalanceReply(second.Body)
	require.NoError(t, err)
	require.Equal(t, firstBal.NewBalance, secondBal.NewBalance)
	require.Equal(t, 55.0, secondBal.NewBalance)
}

func TestMonitorReceivesCallbackOnOpen(t *testing.T) {
	s, stop := startTestServer(t)
	defer stop()
	conn := dialServer(t, s)
	defer conn.Close()

	monitorReq := wire.NewRequest(wire.OpMonitorRegister, 0, 1, wire.MonitorRegisterRequest{Seconds: 10}.Encode())
	_ = roundTrip(t, conn, monitorReq)

	openBody := wire.OpenRequest{Name: "carol", Password: "pw123456", Currency: wire.CurrencyCNY, Initial: 0}.Encode()
	openReply := roundTrip(t, conn, wire.NewRequest(wire.OpOpen, 0, 2, openBody))
	openResult, err := wire.DecodeOpenReply(openReply.Body)
	require.NoError(t, err)

	// The OPEN callback should already be waiting on the socket.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 2048)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	cb, err := wire.Decode(buf[:n])
	require.NoError(t, err)
	require.Equal(t, wire.MsgCallback, cb.MsgType)
	require.Equal(t, uint64(0), cb.RequestID)

	update, err := wire.DecodeCallbackUpdate(cb.Body)
	require.NoError(t, err)
	require.Equal(t, openResult.AccountNo, update.AccountNo)
	require.Equal(t, wire.OpOpen, update.UpdateType)
}

func TestTransferProducesTwoCallbacksFromAccountFirst(t *testing.T) {
	s, stop := startTestServer(t)
	defer stop()
	conn := dialServer(t, s)
	defer conn.Close()

	_ = roundTrip(t, conn, wire.NewRequest(wire.OpMonitorRegister, 0, 1, wire.MonitorRegisterRequest{Seconds: 10}.Encode()))

	fromReply := roundTrip(t, conn, wire.NewRequest(wire.OpOpen, 0, 2,
		wire.OpenRequest{Name: "dave", Password: "pw123456", Currency: wire.CurrencyCNY, Initial: 100}.Encode()))
	from, err := wire.DecodeOpenReply(fromReply.Body)
	require.NoError(t, err)
	drainCallback(t, conn)

	toReply := roundTrip(t, conn, wire.NewRequest(wire.OpOpen, 0, 3,
		wire.OpenRequest{Name: "erin", Password: "pw123456", Currency: wire.CurrencyCNY, Initial: 0}.Encode()))
	to, err := wire.DecodeOpenReply(toReply.Body)
	require.NoError(t, err)
	drainCallback(t, conn)

	transferReq := wire.NewRequest(wire.OpTransfer, 0, 4, wire.TransferRequest{
		Name: "dave", FromAcc: from.AccountNo, Password: "pw123456",
		ToAcc: to.AccountNo, Currency: wire.CurrencyCNY, Amount: 30,
	}.Encode())
	_ = roundTrip(t, conn, transferReq)

	cb1 := drainCallback(t, conn)
	cb2 := drainCallback(t, conn)

	u1, err := wire.DecodeCallbackUpdate(cb1.Body)
	require.NoError(t, err)
	u2, err := wire.DecodeCallbackUpdate(cb2.Body)
	require.NoError(t, err)

	require.Equal(t, from.AccountNo, u1.AccountNo)
	require.Equal(t, to.AccountNo, u2.AccountNo)
}

// TestAtLeastOnceDuplicateRequestReexecutesAndInflatesBalance demonstrates
// the documented difference from the at-most-once path: without the
// AT_MOST_ONCE flag, the server never consults the dedup cache, so the same
// request (as a client would resend it after never seeing a reply) is
// applied once per send rather than once per logical call.
func TestAtLeastOnceDuplicateRequestReexecutesAndInflatesBalance(t *testing.T) {
	s, stop := startTestServer(t)
	defer stop()
	conn := dialServer(t, s)
	defer conn.Close()

	openBody := wire.OpenRequest{Name: "frank", Password: "pw123456", Currency: wire.CurrencyCNY, Initial: 0}.Encode()
	openReply := roundTrip(t, conn, wire.NewRequest(wire.OpOpen, 0, 1, openBody))
	openResult, err := wire.DecodeOpenReply(openReply.Body)
	require.NoError(t, err)

	depositBody := wire.DepositRequest{
		Name: "frank", AccountNo: openResult.AccountNo, Password: "pw123456",
		Currency: wire.CurrencyCNY, Amount: 10,
	}.Encode()
	depositReq := wire.NewRequest(wire.OpDeposit, 0, 2, depositBody)

	const resends = 3
	var last *wire.Message
	for i := 0; i < resends; i++ {
		last = roundTrip(t, conn, depositReq)
	}
	bal, err := wire.DecodeBalanceReply(last.Body)
	require.NoError(t, err)
	require.Equal(t, float64(resends)*10, bal.NewBalance)
}

// TestOpenRejectsEmptyPasswordWithStatusPasswordFormat exercises the
// ERR_PASSWORD_FORMAT status end-to-end over the wire. The shipped client
// never sends a malformed password (it validates before encoding, and
// wire.Writer.Password16 panics rather than encode one), so this builds the
// OPEN request body by hand to put an all-zero password field on the wire
// the way a non-conforming client could.
func TestOpenRejectsEmptyPasswordWithStatusPasswordFormat(t *testing.T) {
	s, stop := startTestServer(t)
	defer stop()
	conn := dialServer(t, s)
	defer conn.Close()

	body := wire.NewWriter().String("mallory").Bytes()
	body = append(body, make([]byte, 16)...) // empty password field
	body = append(body, wire.NewWriter().U16(uint16(wire.CurrencyCNY)).Double(100).Bytes()...)

	reply := roundTrip(t, conn, wire.NewRequest(wire.OpOpen, 0, 1, body))
	require.Equal(t, wire.StatusPasswordFormat, reply.Status)
}

func drainCallback(t *testing.T, conn *net.UDPConn) *wire.Message {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 2048)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	cb, err := wire.Decode(buf[:n])
	require.NoError(t, err)
	require.Equal(t, wire.MsgCallback, cb.MsgType)
	return cb
}
