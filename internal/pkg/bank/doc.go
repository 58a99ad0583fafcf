// Package bank implements the account ledger at the centre of the banking
// system: opening and closing accounts, deposits, withdrawals, balance
// queries and transfers, each guarded by name/password authentication and
// currency agreement.
//
// Every check a Bank performs runs in a fixed order, and callers (the
// server package in particular) must not depend on any other ordering:
// existence before authentication, authentication before currency, currency
// before amount sanity, amount sanity before funds sufficiency. Transfer is
// the one operation with a check that runs before any lookup at all: a
// transfer naming the same account on both sides is rejected outright.
package bank
