package bank

import (
	"sync"
	"sync/atomic"

	"bankrpc/internal/pkg/wire"
)

// firstAccountNo is the account number assigned to the first account ever
// opened. Account numbers increase monotonically from there.
const firstAccountNo int32 = 10001

// Account is a single ledger entry.
type Account struct {
	AccountNo int32
	Name      string
	Password  string
	Currency  wire.Currency
	Balance   float64
	Closed    bool
}

// Store is the interface a Bank presents to its callers: it owns account
// state and enforces every invariant of the operations below. MemoryBank is
// the only implementation; the interface exists so the server package can
// be tested against a fake.
type Store interface {
	Open(name, password string, currency wire.Currency, initial float64) (*Account, error)
	Close(name string, accountNo int32, password string) (*Account, error)
	Deposit(name string, accountNo int32, password string, currency wire.Currency, amount float64) (float64, error)
	Withdraw(name string, accountNo int32, password string, currency wire.Currency, amount float64) (float64, error)
	QueryBalance(name string, accountNo int32, password string) (wire.Currency, float64, error)
	Transfer(name string, fromAcc int32, password string, toAcc int32, currency wire.Currency, amount float64) (fromBalance, toBalance float64, err error)
	Account(accountNo int32) (Account, bool)
}

// MemoryBank is an in-memory Store. It is safe for concurrent use.
type MemoryBank struct {
	mu            sync.RWMutex
	accounts      map[int32]*Account
	nextAccountNo int32
}

// NewMemoryBank creates an empty MemoryBank.
func NewMemoryBank() *MemoryBank {
	return &MemoryBank{
		accounts:      make(map[int32]*Account),
		nextAccountNo: firstAccountNo,
	}
}

func validatePassword(password string) error {
	if len(password) == 0 || len(password) > 16 {
		return ErrPasswordFormat
	}
	return nil
}

func authenticate(acc *Account, name, password string) bool {
	return acc.Name == name && acc.Password == password
}

// Open creates a new account. Password format is checked before the
// initial balance, mirroring the authority ordering every other operation
// follows: validate the credential first.
func (b *MemoryBank) Open(name, password string, currency wire.Currency, initial float64) (*Account, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if initial < 0 {
		return nil, ErrBadRequest
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	accountNo := atomic.AddInt32(&b.nextAccountNo, 1) - 1
	acc := &Account{
		AccountNo: accountNo,
		Name:      name,
		Password:  password,
		Currency:  currency,
		Balance:   initial,
	}
	b.accounts[accountNo] = acc
	cpy := *acc
	return &cpy, nil
}

func (b *MemoryBank) lookup(accountNo int32) (*Account, error) {
	acc, ok := b.accounts[accountNo]
	if !ok || acc.Closed {
		return nil, ErrNotFound
	}
	return acc, nil
}

// Close closes an account after authenticating the caller.
func (b *MemoryBank) Close(name string, accountNo int32, password string) (*Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, err := b.lookup(accountNo)
	if err != nil {
		return nil, err
	}
	if !authenticate(acc, name, password) {
		return nil, ErrAuth
	}
	acc.Closed = true
	cpy := *acc
	return &cpy, nil
}

// Deposit credits amount to an account, checking existence, authentication,
// currency agreement and amount sanity in that order.
func (b *MemoryBank) Deposit(name string, accountNo int32, password string, currency wire.Currency, amount float64) (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, err := b.lookup(accountNo)
	if err != nil {
		return 0, err
	}
	if !authenticate(acc, name, password) {
		return 0, ErrAuth
	}
	if acc.Currency != currency {
		return 0, ErrCurrency
	}
	if amount <= 0 {
		return 0, ErrBadRequest
	}
	acc.Balance += amount
	return acc.Balance, nil
}

// Withdraw debits amount from an account, checking existence,
// authentication, currency agreement, amount sanity and finally sufficient
// funds, in that order.
func (b *MemoryBank) Withdraw(name string, accountNo int32, password string, currency wire.Currency, amount float64) (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, err := b.lookup(accountNo)
	if err != nil {
		return 0, err
	}
	if !authenticate(acc, name, password) {
		return 0, ErrAuth
	}
	if acc.Currency != currency {
		return 0, ErrCurrency
	}
	if amount <= 0 {
		return 0, ErrBadRequest
	}
	if acc.Balance < amount {
		return 0, ErrInsufficientFunds
	}
	acc.Balance -= amount
	return acc.Balance, nil
}

// QueryBalance returns the currency and balance of an account after
// authenticating the caller. It mutates nothing and is safe to retry.
func (b *MemoryBank) QueryBalance(name string, accountNo int32, password string) (wire.Currency, float64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	acc, err := b.lookup(accountNo)
	if err != nil {
		return 0, 0, err
	}
	if !authenticate(acc, name, password) {
		return 0, 0, ErrAuth
	}
	return acc.Currency, acc.Balance, nil
}

// Transfer moves amount from one account to another. The same-account check
// runs before any lookup; existence of the source account is checked before
// the destination; authentication runs against the source account only;
// then currency agreement on both sides, then amount sanity, then funds
// sufficiency on the source account.
func (b *MemoryBank) Transfer(name string, fromAcc int32, password string, toAcc int32, currency wire.Currency, amount float64) (float64, float64, error) {
	if fromAcc == toAcc {
		return 0, 0, ErrBadRequest
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	from, err := b.lookup(fromAcc)
	if err != nil {
		return 0, 0, err
	}
	to, err := b.lookup(toAcc)
	if err != nil {
		return 0, 0, err
	}
	if !authenticate(from, name, password) {
		return 0, 0, ErrAuth
	}
	if from.Currency != currency || to.Currency != currency {
		return 0, 0, ErrCurrency
	}
	if amount <= 0 {
		return 0, 0, ErrBadRequest
	}
	if from.Balance < amount {
		return 0, 0, ErrInsufficientFunds
	}
	from.Balance -= amount
	to.Balance += amount
	return from.Balance, to.Balance, nil
}

// Account returns a snapshot of an account regardless of auth, for building
// callback notifications that need a currency/balance at a point in time.
func (b *MemoryBank) Account(accountNo int32) (Account, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	acc, ok := b.accounts[accountNo]
	if !ok {
		return Account{}, false
	}
	return *acc, true
}
