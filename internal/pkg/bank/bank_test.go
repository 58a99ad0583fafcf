package bank

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bankrpc/internal/pkg/wire"
)

func openTestAccount(t *testing.T, b *MemoryBank, name string, balance float64) *Account {
	acc, err := b.Open(name, "pw12345", wire.CurrencyCNY, balance)
	require.NoError(t, err)
	return acc
}

func TestOpenRejectsBadPasswordBeforeBadBalance(t *testing.T) {
	b := NewMemoryBank()
	_, err := b.Open("alice", "", wire.CurrencyCNY, -5)
	require.ErrorIs(t, err, ErrPasswordFormat)
}

func TestOpenRejectsNegativeInitialBalance(t *testing.T) {
	b := NewMemoryBank()
	_, err := b.Open("alice", "pw", wire.CurrencyCNY, -5)
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestOpenAssignsIncreasingAccountNumbers(t *testing.T) {
	b := NewMemoryBank()
	a1 := openTestAccount(t, b, "alice", 0)
	a2 := openTestAccount(t, b, "bob", 0)
	require.Equal(t, a1.AccountNo+1, a2.AccountNo)
}

func TestDepositChecksExistenceBeforeAuth(t *testing.T) {
	b := NewMemoryBank()
	_, err := b.Deposit("nobody", 99999, "wrong", wire.CurrencyCNY, 10)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDepositChecksAuthBeforeCurrency(t *testing.T) {
	b := NewMemoryBank()
	acc := openTestAccount(t, b, "alice", 100)
	_, err := b.Deposit("alice", acc.AccountNo, "wrong-password", wire.CurrencySGD, 10)
	require.ErrorIs(t, err, ErrAuth)
}

func TestDepositChecksCurrencyBeforeAmount(t *testing.T) {
	b := NewMemoryBank()
	acc := openTestAccount(t, b, "alice", 100)
	_, err := b.Deposit("alice", acc.AccountNo, "pw12345", wire.CurrencySGD, -10)
	require.ErrorIs(t, err, ErrCurrency)
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	b := NewMemoryBank()
	acc := openTestAccount(t, b, "alice", 100)
	_, err := b.Deposit("alice", acc.AccountNo, "pw12345", wire.CurrencyCNY, 0)
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestWithdrawChecksAmountBeforeFunds(t *testing.T) {
	b := NewMemoryBank()
	acc := openTestAccount(t, b, "alice", 5)
	_, err := b.Withdraw("alice", acc.AccountNo, "pw12345", wire.CurrencyCNY, -1)
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestWithdrawRejectsInsufficientFunds(t *testing.T) {
	b := NewMemoryBank()
	acc := openTestAccount(t, b, "alice", 5)
	_, err := b.Withdraw("alice", acc.AccountNo, "pw12345", wire.CurrencyCNY, 10)
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestWithdrawSucceedsAndDebits(t *testing.T) {
	b := NewMemoryBank()
	acc := openTestAccount(t, b, "alice", 5)
	newBal, err := b.Withdraw("alice", acc.AccountNo, "pw12345", wire.CurrencyCNY, 5)
	require.NoError(t, err)
	require.Equal(t, 0.0, newBal)
}

func TestCloseChecksExistenceBeforeAuth(t *testing.T) {
	b := NewMemoryBank()
	_, err := b.Close("nobody", 12345, "wrong")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCloseThenOperationsReportNotFound(t *testing.T) {
	b := NewMemoryBank()
	acc := openTestAccount(t, b, "alice", 10)
	_, err := b.Close("alice", acc.AccountNo, "pw12345")
	require.NoError(t, err)
	_, err = b.Deposit("alice", acc.AccountNo, "pw12345", wire.CurrencyCNY, 5)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTransferRejectsSameAccountBeforeAnyLookup(t *testing.T) {
	b := NewMemoryBank()
	_, _, err := b.Transfer("alice", 99999, "wrong", 99999, wire.CurrencyCNY, 10)
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestTransferChecksFromExistenceBeforeToExistence(t *testing.T) {
	b := NewMemoryBank()
	from := openTestAccount(t, b, "alice", 100)
	_, _, err := b.Transfer("alice", from.AccountNo, "pw12345", 99999, wire.CurrencyCNY, 10)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTransferAuthenticatesAgainstFromAccountOnly(t *testing.T) {
	b := NewMemoryBank()
	from := openTestAccount(t, b, "alice", 100)
	to := openTestAccount(t, b, "bob", 0)
	// Using bob's correct credentials against the from-account must fail auth,
	// even though bob is a perfectly valid account.
	_, _, err := b.Transfer("bob", from.AccountNo, "pw12345", to.AccountNo, wire.CurrencyCNY, 10)
	require.ErrorIs(t, err, ErrAuth)
}

func TestTransferChecksCurrencyOnBothSides(t *testing.T) {
	b := NewMemoryBank()
	from := openTestAccount(t, b, "alice", 100)
	to, err := b.Open("bob", "pw12345", wire.CurrencySGD, 0)
	require.NoError(t, err)
	_, _, err = b.Transfer("alice", from.AccountNo, "pw12345", to.AccountNo, wire.CurrencyCNY, 10)
	require.ErrorIs(t, err, ErrCurrency)
}

func TestTransferSucceedsAndMovesFunds(t *testing.T) {
	b := NewMemoryBank()
	from := openTestAccount(t, b, "alice", 100)
	to := openTestAccount(t, b, "bob", 0)
	fromBal, toBal, err := b.Transfer("alice", from.AccountNo, "pw12345", to.AccountNo, wire.CurrencyCNY, 40)
	require.NoError(t, err)
	require.Equal(t, 60.0, fromBal)
	require.Equal(t, 40.0, toBal)
}

func TestTransferFailureLeavesBothBalancesUnchanged(t *testing.T) {
	b := NewMemoryBank()
	from := openTestAccount(t, b, "alice", 100)
	to := openTestAccount(t, b, "bob", 0)

	_, _, err := b.Transfer("alice", from.AccountNo, "pw12345", to.AccountNo, wire.CurrencyCNY, 1000)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	_, fromBal, err := b.QueryBalance("alice", from.AccountNo, "pw12345")
	require.NoError(t, err)
	require.Equal(t, 100.0, fromBal)

	_, toBal, err := b.QueryBalance("bob", to.AccountNo, "pw12345")
	require.NoError(t, err)
	require.Equal(t, 0.0, toBal)
}

func TestQueryBalanceDoesNotMutateState(t *testing.T) {
	b := NewMemoryBank()
	acc := openTestAccount(t, b, "alice", 42)
	cur, bal, err := b.QueryBalance("alice", acc.AccountNo, "pw12345")
	require.NoError(t, err)
	require.Equal(t, wire.CurrencyCNY, cur)
	require.Equal(t, 42.0, bal)
}
