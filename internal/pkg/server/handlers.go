package server

import (
	"bankrpc/internal/pkg/bank"
	"bankrpc/internal/pkg/wire"
)

func statusForError(err error) wire.Status {
	switch err {
	case bank.ErrNotFound:
		return wire.StatusNotFound
	case bank.ErrAuth:
		return wire.StatusAuth
	case bank.ErrCurrency:
		return wire.StatusCurrency
	case bank.ErrInsufficientFunds:
		return wire.StatusInsufficientFunds
	case bank.ErrPasswordFormat:
		return wire.StatusPasswordFormat
	case bank.ErrBadRequest:
		return wire.StatusBadRequest
	default:
		return wire.StatusBadRequest
	}
}

// process dispatches a decoded request to the bank and builds the reply
// message. It never returns an error: any failure becomes a Status-coded
// reply, matching the wire contract that every request receives exactly
// one reply.
func (s *Server) process(req *wire.Message, clientAddr string) *wire.Message {
	switch req.OpCode {
	case wire.OpOpen:
		return s.handleOpen(req)
	case wire.OpClose:
		return s.handleClose(req)
	case wire.OpDeposit:
		return s.handleDeposit(req)
	case wire.OpWithdraw:
		return s.handleWithdraw(req)
	case wire.OpQueryBalance:
		return s.handleQueryBalance(req)
	case wire.OpTransfer:
		return s.handleTransfer(req)
	case wire.OpMonitorRegister:
		return s.handleMonitorRegister(req, clientAddr)
	default:
		return wire.ReplyTo(req, wire.StatusBadRequest, nil)
	}
}

func (s *Server) handleOpen(req *wire.Message) *wire.Message {
	body, err := wire.DecodeOpenRequest(req.Body)
	if err != nil {
		return wire.ReplyTo(req, wire.StatusBadRequest, nil)
	}
	acc, err := s.bank.Open(body.Name, body.Password, body.Currency, body.Initial)
	if err != nil {
		return wire.ReplyTo(req, statusForError(err), nil)
	}

	s.fanOutUpdate(wire.OpOpen, acc.AccountNo, acc.Currency, acc.Balance, "OPEN by "+body.Name)

	return wire.ReplyTo(req, wire.StatusOK, wire.OpenReply{AccountNo: acc.AccountNo, Balance: acc.Balance}.Encode())
}

func (s *Server) handleClose(req *wire.Message) *wire.Message {
	body, err := wire.DecodeCloseRequest(req.Body)
	if err != nil {
		return wire.ReplyTo(req, wire.StatusBadRequest, nil)
	}

	// Snapshot taken before the mutation so a successful close still reports
	// the balance and currency the account held at closing time.
	before, hadAccount := s.bank.Account(body.AccountNo)

	acc, err := s.bank.Close(body.Name, body.AccountNo, body.Password)
	if err != nil {
		return wire.ReplyTo(req, statusForError(err), nil)
	}

	currency, balance := acc.Currency, acc.Balance
	if hadAccount {
		currency, balance = before.Currency, before.Balance
	}
	s.fanOutUpdate(wire.OpClose, acc.AccountNo, currency, balance, "CLOSE by "+body.Name)

	return wire.ReplyTo(req, wire.StatusOK, wire.CloseReply{Info: "account closed"}.Encode())
}

func (s *Server) handleDeposit(req *wire.Message) *wire.Message {
	body, err := wire.DecodeDepositRequest(req.Body)
	if err != nil {
		return wire.ReplyTo(req, wire.StatusBadRequest, nil)
	}
	newBalance, err := s.bank.Deposit(body.Name, body.AccountNo, body.Password, body.Currency, body.Amount)
	if err != nil {
		return wire.ReplyTo(req, statusForError(err), nil)
	}

	s.fanOutUpdate(wire.OpDeposit, body.AccountNo, body.Currency, newBalance, "DEPOSIT by "+body.Name)

	return wire.ReplyTo(req, wire.StatusOK, wire.BalanceReply{NewBalance: newBalance}.Encode())
}

func (s *Server) handleWithdraw(req *wire.Message) *wire.Message {
	body, err := wire.DecodeWithdrawRequest(req.Body)
	if err != nil {
		return wire.ReplyTo(req, wire.StatusBadRequest, nil)
	}
	newBalance, err := s.bank.Withdraw(body.Name, body.AccountNo, body.Password, body.Currency, body.Amount)
	if err != nil {
		return wire.ReplyTo(req, statusForError(err), nil)
	}

	s.fanOutUpdate(wire.OpWithdraw, body.AccountNo, body.Currency, newBalance, "WITHDRAW by "+body.Name)

	return wire.ReplyTo(req, wire.StatusOK, wire.BalanceReply{NewBalance: newBalance}.Encode())
}

func (s *Server) handleQueryBalance(req *wire.Message) *wire.Message {
	body, err := wire.DecodeQueryBalanceRequest(req.Body)
	if err != nil {
		return wire.ReplyTo(req, wire.StatusBadRequest, nil)
	}
	currency, balance, err := s.bank.QueryBalance(body.Name, body.AccountNo, body.Password)
	if err != nil {
		return wire.ReplyTo(req, statusForError(err), nil)
	}
	return wire.ReplyTo(req, wire.StatusOK, wire.QueryBalanceReply{Currency: currency, Balance: balance}.Encode())
}

func (s *Server) handleTransfer(req *wire.Message) *wire.Message {
	body, err := wire.DecodeTransferRequest(req.Body)
	if err != nil {
		return wire.ReplyTo(req, wire.StatusBadRequest, nil)
	}
	fromBalance, toBalance, err := s.bank.Transfer(body.Name, body.FromAcc, body.Password, body.ToAcc, body.Currency, body.Amount)
	if err != nil {
		return wire.ReplyTo(req, statusForError(err), nil)
	}

	// Two callbacks, from-account first, matching the two halves of the
	// transfer in the order they were applied.
	s.fanOutUpdate(wire.OpTransfer, body.FromAcc, body.Currency, fromBalance, "TRANSFER out to "+itoa(body.ToAcc)+" by "+body.Name)
	s.fanOutUpdate(wire.OpTransfer, body.ToAcc, body.Currency, toBalance, "TRANSFER in from "+itoa(body.FromAcc))

	return wire.ReplyTo(req, wire.StatusOK, wire.TransferReply{FromNewBalance: fromBalance, ToNewBalance: toBalance}.Encode())
}

func (s *Server) handleMonitorRegister(req *wire.Message, clientAddr string) *wire.Message {
	body, err := wire.DecodeMonitorRegisterRequest(req.Body)
	if err != nil {
		return wire.ReplyTo(req, wire.StatusBadRequest, nil)
	}
	if body.Seconds == 0 {
		return wire.ReplyTo(req, wire.StatusBadRequest, nil)
	}

	s.registerMonitor(clientAddr, body.Seconds)

	return wire.ReplyTo(req, wire.StatusOK, wire.MonitorRegisterReply{Info: "monitor registered"}.Encode())
}
