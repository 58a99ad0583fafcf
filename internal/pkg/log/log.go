// Package log configures the process-wide structured logger.
package log

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bankrpc/internal/pkg/wire"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLevel configures the default logger's verbosity and output format.
func SetLevel(level string) {
	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = time.RFC3339
	customFormatter.FullTimestamp = true
	logrus.SetFormatter(customFormatter)
	switch strings.ToLower(level) {
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// Logger returns the process-wide logger.
func Logger() logrus.FieldLogger {
	return logger
}

// NewCorrelationID generates a correlation ID to tag the processing of a
// single datagram across log lines, independent of the protocol's own
// request ID (which is absent on dropped or malformed datagrams).
func NewCorrelationID() string {
	return uuid.NewString()
}

// MessageFields renders the fields common to every log line about a
// received or sent protocol message.
func MessageFields(clientAddr string, m *wire.Message) logrus.Fields {
	return logrus.Fields{
		"client":    clientAddr,
		"msgType":   m.MsgType.String(),
		"opCode":    m.OpCode.String(),
		"requestId": m.RequestID,
		"atMostOnce": m.Flags.AtMostOnce(),
	}
}
