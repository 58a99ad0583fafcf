package wire

// MsgType identifies whether a Message is a request, a reply, or a
// server-initiated callback.
type MsgType uint8

const (
	MsgRequest  MsgType = 1
	MsgReply    MsgType = 2
	MsgCallback MsgType = 3
)

func (t MsgType) String() string {
	switch t {
	case MsgRequest:
		return "REQUEST"
	case MsgReply:
		return "REPLY"
	case MsgCallback:
		return "CALLBACK"
	default:
		return "UNKNOWN"
	}
}

// OpCode identifies the banking operation (or, for Callback messages, the
// single CALLBACK_UPDATE opcode).
type OpCode uint16

const (
	OpOpen             OpCode = 1
	OpClose            OpCode = 2
	OpDeposit          OpCode = 3
	OpWithdraw         OpCode = 4
	OpMonitorRegister  OpCode = 5
	OpQueryBalance     OpCode = 6
	OpTransfer         OpCode = 7
	OpCallbackUpdate   OpCode = 100
)

func (o OpCode) String() string {
	switch o {
	case OpOpen:
		return "OPEN"
	case OpClose:
		return "CLOSE"
	case OpDeposit:
		return "DEPOSIT"
	case OpWithdraw:
		return "WITHDRAW"
	case OpMonitorRegister:
		return "MONITOR_REGISTER"
	case OpQueryBalance:
		return "QUERY_BALANCE"
	case OpTransfer:
		return "TRANSFER"
	case OpCallbackUpdate:
		return "CALLBACK_UPDATE"
	default:
		return "UNKNOWN"
	}
}

// Flags is the 16-bit request flag bitfield. Only bit 0 is defined.
type Flags uint16

const FlagAtMostOnce Flags = 1 << 0

func (f Flags) AtMostOnce() bool {
	return f&FlagAtMostOnce != 0
}

// Status is the 16-bit reply result code.
type Status uint16

const (
	StatusOK                   Status = 0
	StatusBadRequest           Status = 1
	StatusAuth                 Status = 2
	StatusNotFound             Status = 3
	StatusCurrency             Status = 4
	StatusInsufficientFunds    Status = 5
	StatusPasswordFormat       Status = 6
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusBadRequest:
		return "ERR_BAD_REQUEST"
	case StatusAuth:
		return "ERR_AUTH"
	case StatusNotFound:
		return "ERR_NOT_FOUND"
	case StatusCurrency:
		return "ERR_CURRENCY"
	case StatusInsufficientFunds:
		return "ERR_INSUFFICIENT_FUNDS"
	case StatusPasswordFormat:
		return "ERR_PASSWORD_FORMAT"
	default:
		return "ERR_UNKNOWN"
	}
}

// Currency is the 16-bit account currency code.
type Currency uint16

const (
	CurrencyCNY Currency = 0
	CurrencySGD Currency = 1
)

func (c Currency) String() string {
	switch c {
	case CurrencyCNY:
		return "CNY"
	case CurrencySGD:
		return "SGD"
	default:
		return "UNKNOWN"
	}
}

// Magic and Version are the fixed header tag and current protocol version.
const (
	Magic      uint32 = 0x42414E4B
	Version    uint8  = 1
	HeaderSize        = 24
)

// Message is the decoded form of one datagram. Body holds the raw,
// op-code-specific payload bytes; use the Encode*/Decode* helpers in
// bodies.go to interpret it.
type Message struct {
	Version   uint8
	MsgType   MsgType
	OpCode    OpCode
	Flags     Flags
	Status    Status
	RequestID uint64
	Body      []byte
}

// NewRequest builds a Request message with the given opcode, flags,
// request ID, and body.
func NewRequest(op OpCode, flags Flags, requestID uint64, body []byte) *Message {
	return &Message{
		Version:   Version,
		MsgType:   MsgRequest,
		OpCode:    op,
		Flags:     flags,
		Status:    StatusOK,
		RequestID: requestID,
		Body:      body,
	}
}

// ReplyTo builds a Reply to req carrying the given status and body. Per the
// wire invariant, a Reply copies opCode, requestId, and flags from its
// Request.
func ReplyTo(req *Message, status Status, body []byte) *Message {
	return &Message{
		Version:   Version,
		MsgType:   MsgReply,
		OpCode:    req.OpCode,
		Flags:     req.Flags,
		Status:    status,
		RequestID: req.RequestID,
		Body:      body,
	}
}

// NewCallback builds a CALLBACK_UPDATE message. Callbacks always carry
// RequestID 0, Status 0, and Flags 0.
func NewCallback(body []byte) *Message {
	return &Message{
		Version:   Version,
		MsgType:   MsgCallback,
		OpCode:    OpCallbackUpdate,
		Flags:     0,
		Status:    0,
		RequestID: 0,
		Body:      body,
	}
}
