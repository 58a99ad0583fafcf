package wire

// This file defines the request/reply body shapes for each opcode. Each
// type knows how to encode itself, and a matching Decode* function parses
// it back from a raw body byte slice.

// OpenRequest is the OPEN request body.
type OpenRequest struct {
	Name     string
	Password string
	Currency Currency
	Initial  float64
}

func (r OpenRequest) Encode() []byte {
	return NewWriter().String(r.Name).Password16(r.Password).U16(uint16(r.Currency)).Double(r.Initial).Bytes()
}

func DecodeOpenRequest(body []byte) (OpenRequest, error) {
	r := NewReader(body)
	var req OpenRequest
	var err error
	if req.Name, err = r.String(); err != nil {
		return req, err
	}
	if req.Password, err = r.Password16(); err != nil {
		return req, err
	}
	cur, err := r.U16()
	if err != nil {
		return req, err
	}
	req.Currency = Currency(cur)
	if req.Initial, err = r.Double(); err != nil {
		return req, err
	}
	return req, nil
}

// OpenReply is the OPEN success reply body.
type OpenReply struct {
	AccountNo int32
	Balance   float64
}

func (r OpenReply) Encode() []byte {
	return NewWriter().I32(r.AccountNo).Double(r.Balance).Bytes()
}

func DecodeOpenReply(body []byte) (OpenReply, error) {
	r := NewReader(body)
	var rep OpenReply
	var err error
	if rep.AccountNo, err = r.I32(); err != nil {
		return rep, err
	}
	if rep.Balance, err = r.Double(); err != nil {
		return rep, err
	}
	return rep, nil
}

// CloseRequest is the CLOSE request body.
type CloseRequest struct {
	Name      string
	AccountNo int32
	Password  string
}

func (r CloseRequest) Encode() []byte {
	return NewWriter().String(r.Name).I32(r.AccountNo).Password16(r.Password).Bytes()
}

func DecodeCloseRequest(body []byte) (CloseRequest, error) {
	r := NewReader(body)
	var req CloseRequest
	var err error
	if req.Name, err = r.String(); err != nil {
		return req, err
	}
	if req.AccountNo, err = r.I32(); err != nil {
		return req, err
	}
	if req.Password, err = r.Password16(); err != nil {
		return req, err
	}
	return req, nil
}

// CloseReply is the CLOSE success reply body.
type CloseReply struct {
	Info string
}

func (r CloseReply) Encode() []byte {
	return NewWriter().String(r.Info).Bytes()
}

func DecodeCloseReply(body []byte) (CloseReply, error) {
	r := NewReader(body)
	var rep CloseReply
	var err error
	if rep.Info, err = r.String(); err != nil {
		return rep, err
	}
	return rep, nil
}

// DepositRequest is the DEPOSIT/WITHDRAW request body (identical shape).
type DepositRequest struct {
	Name      string
	AccountNo int32
	Password  string
	Currency  Currency
	Amount    float64
}

func (r DepositRequest) Encode() []byte {
	return NewWriter().String(r.Name).I32(r.AccountNo).Password16(r.Password).U16(uint16(r.Currency)).Double(r.Amount).Bytes()
}

func DecodeDepositRequest(body []byte) (DepositRequest, error) {
	r := NewReader(body)
	var req DepositRequest
	var err error
	if req.Name, err = r.String(); err != nil {
		return req, err
	}
	if req.AccountNo, err = r.I32(); err != nil {
		return req, err
	}
	if req.Password, err = r.Password16(); err != nil {
		return req, err
	}
	cur, err := r.U16()
	if err != nil {
		return req, err
	}
	req.Currency = Currency(cur)
	if req.Amount, err = r.Double(); err != nil {
		return req, err
	}
	return req, nil
}

// WithdrawRequest is an alias for DepositRequest; the two opcodes share a
// wire shape.
type WithdrawRequest = DepositRequest

var DecodeWithdrawRequest = DecodeDepositRequest

// BalanceReply is the DEPOSIT/WITHDRAW success reply body.
type BalanceReply struct {
	NewBalance float64
}

func (r BalanceReply) Encode() []byte {
	return NewWriter().Double(r.NewBalance).Bytes()
}

func DecodeBalanceReply(body []byte) (BalanceReply, error) {
	r := NewReader(body)
	var rep BalanceReply
	var err error
	if rep.NewBalance, err = r.Double(); err != nil {
		return rep, err
	}
	return rep, nil
}

// QueryBalanceRequest is the QUERY_BALANCE request body.
type QueryBalanceRequest struct {
	Name      string
	AccountNo int32
	Password  string
}

func (r QueryBalanceRequest) Encode() []byte {
	return NewWriter().String(r.Name).I32(r.AccountNo).Password16(r.Password).Bytes()
}

func DecodeQueryBalanceRequest(body []byte) (QueryBalanceRequest, error) {
	r := NewReader(body)
	var req QueryBalanceRequest
	var err error
	if req.Name, err = r.String(); err != nil {
		return req, err
	}
	if req.AccountNo, err = r.I32(); err != nil {
		return req, err
	}
	if req.Password, err = r.Password16(); err != nil {
		return req, err
	}
	return req, nil
}

// QueryBalanceReply is the QUERY_BALANCE success reply body.
type QueryBalanceReply struct {
	Currency Currency
	Balance  float64
}

func (r QueryBalanceReply) Encode() []byte {
	return NewWriter().U16(uint16(r.Currency)).Double(r.Balance).Bytes()
}

func DecodeQueryBalanceReply(body []byte) (QueryBalanceReply, error) {
	r := NewReader(body)
	var rep QueryBalanceReply
	cur, err := r.U16()
	if err != nil {
		return rep, err
	}
	rep.Currency = Currency(cur)
	if rep.Balance, err = r.Double(); err != nil {
		return rep, err
	}
	return rep, nil
}

// TransferRequest is the TRANSFER request body.
type TransferRequest struct {
	Name      string
	FromAcc   int32
	Password  string
	ToAcc     int32
	Currency  Currency
	Amount    float64
}

func (r TransferRequest) Encode() []byte {
	return NewWriter().String(r.Name).I32(r.FromAcc).Password16(r.Password).I32(r.ToAcc).U16(uint16(r.Currency)).Double(r.Amount).Bytes()
}

func DecodeTransferRequest(body []byte) (TransferRequest, error) {
	r := NewReader(body)
	var req TransferRequest
	var err error
	if req.Name, err = r.String(); err != nil {
		return req, err
	}
	if req.FromAcc, err = r.I32(); err != nil {
		return req, err
	}
	if req.Password, err = r.Password16(); err != nil {
		return req, err
	}
	if req.ToAcc, err = r.I32(); err != nil {
		return req, err
	}
	cur, err := r.U16()
	if err != nil {
		return req, err
	}
	req.Currency = Currency(cur)
	if req.Amount, err = r.Double(); err != nil {
		return req, err
	}
	return req, nil
}

// TransferReply is the TRANSFER success reply body.
type TransferReply struct {
	FromNewBalance float64
	ToNewBalance   float64
}

func (r TransferReply) Encode() []byte {
	return NewWriter().Double(r.FromNewBalance).Double(r.ToNewBalance).Bytes()
}

func DecodeTransferReply(body []byte) (TransferReply, error) {
	r := NewReader(body)
	var rep TransferReply
	var err error
	if rep.FromNewBalance, err = r.Double(); err != nil {
		return rep, err
	}
	if rep.ToNewBalance, err = r.Double(); err != nil {
		return rep, err
	}
	return rep, nil
}

// MonitorRegisterRequest is the MONITOR_REGISTER request body.
type MonitorRegisterRequest struct {
	Seconds uint16
}

func (r MonitorRegisterRequest) Encode() []byte {
	return NewWriter().U16(r.Seconds).Bytes()
}

func DecodeMonitorRegisterRequest(body []byte) (MonitorRegisterRequest, error) {
	r := NewReader(body)
	var req MonitorRegisterRequest
	var err error
	if req.Seconds, err = r.U16(); err != nil {
		return req, err
	}
	return req, nil
}

// MonitorRegisterReply is the MONITOR_REGISTER success reply body.
type MonitorRegisterReply struct {
	Info string
}

func (r MonitorRegisterReply) Encode() []byte {
	return NewWriter().String(r.Info).Bytes()
}

func DecodeMonitorRegisterReply(body []byte) (MonitorRegisterReply, error) {
	r := NewReader(body)
	var rep MonitorRegisterReply
	var err error
	if rep.Info, err = r.String(); err != nil {
		return rep, err
	}
	return rep, nil
}

// CallbackUpdate is the body of every CALLBACK_UPDATE datagram.
type CallbackUpdate struct {
	UpdateType OpCode
	AccountNo  int32
	Currency   Currency
	NewBalance float64
	Info       string
}

func (c CallbackUpdate) Encode() []byte {
	return NewWriter().U16(uint16(c.UpdateType)).I32(c.AccountNo).U16(uint16(c.Currency)).Double(c.NewBalance).String(c.Info).Bytes()
}

func DecodeCallbackUpdate(body []byte) (CallbackUpdate, error) {
	r := NewReader(body)
	var c CallbackUpdate
	updateType, err := r.U16()
	if err != nil {
		return c, err
	}
	c.UpdateType = OpCode(updateType)
	if c.AccountNo, err = r.I32(); err != nil {
		return c, err
	}
	cur, err := r.U16()
	if err != nil {
		return c, err
	}
	c.Currency = Currency(cur)
	if c.NewBalance, err = r.Double(); err != nil {
		return c, err
	}
	if c.Info, err = r.String(); err != nil {
		return c, err
	}
	return c, nil
}
