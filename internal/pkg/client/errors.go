package client

import "github.com/pkg/errors"

// ErrCommunication is returned when a call exhausts its retry budget
// without receiving a matching reply.
var ErrCommunication = errors.New("client: no reply received after retries")

// ErrUnexpectedReplyStatus is returned by call-site helpers when the server
// replies with a non-OK status the helper does not know how to interpret.
var ErrUnexpectedReplyStatus = errors.New("client: unexpected reply status")
