package bank

import "errors"

// ErrNotFound indicates the account does not exist or has already been closed.
var ErrNotFound = errors.New("bank: account not found or closed")

// ErrAuth indicates the supplied name/password does not match the account.
var ErrAuth = errors.New("bank: authentication failed")

// ErrCurrency indicates the request currency does not match the account currency.
var ErrCurrency = errors.New("bank: currency mismatch")

// ErrBadRequest indicates a structurally invalid request: a non-positive
// amount, a negative initial balance, or a transfer naming the same account
// on both sides.
var ErrBadRequest = errors.New("bank: bad request")

// ErrInsufficientFunds indicates a withdrawal or transfer would overdraw the
// source account.
var ErrInsufficientFunds = errors.New("bank: insufficient funds")

// ErrPasswordFormat indicates a password outside the 1..16 byte range.
var ErrPasswordFormat = errors.New("bank: password must be 1..16 bytes")
