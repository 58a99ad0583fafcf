package apps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"bankrpc/internal/pkg/client"
	"bankrpc/internal/pkg/log"
	"bankrpc/internal/pkg/validate"
	"bankrpc/internal/pkg/wire"
)

// ClientAppCfg configures a ClientApp.
type ClientAppCfg interface {
	ApplyClientApp(*ClientApp) error
}

// ClientApp is the banking client CLI application: a single one-shot
// invocation of one operation against a running server.
type ClientApp struct {
	ServerAddr string `validate:"required"`
	AtMostOnce bool
	Timeout    time.Duration `validate:"gte=0"`
	Retries    int           `validate:"gte=0"`
	LogLevel   string

	Op string `validate:"required,oneof=open close deposit withdraw query transfer monitor"`

	Name      string
	Password  string
	AccountNo int32
	ToAcc     int32
	Currency  string
	Amount    float64
	Seconds   uint16
}

// NewClientApp creates a new ClientApp.
func NewClientApp(cfgs ...ClientAppCfg) (*ClientApp, error) {
	app := &ClientApp{
		Timeout:  client.DefaultTimeout,
		Retries:  client.DefaultRetries,
		LogLevel: "info",
	}
	for _, cfg := range cfgs {
		if err := cfg.ApplyClientApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ClientApp cfg failed")
		}
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ClientApp failed")
	}
	return app, nil
}

// validatePassword enforces the same 1..16 byte bound the bank package
// enforces at the OPEN boundary, client-side: wire.Password16 panics on a
// password outside that range, so every credentialed operation must reject
// a bad password before it ever reaches .Encode().
func validatePassword(password string) error {
	if len(password) == 0 || len(password) > 16 {
		return fmt.Errorf("password must be 1..16 bytes, got %d", len(password))
	}
	return nil
}

func parseCurrency(s string) (wire.Currency, error) {
	switch strings.ToUpper(s) {
	case "CNY":
		return wire.CurrencyCNY, nil
	case "SGD":
		return wire.CurrencySGD, nil
	default:
		return 0, fmt.Errorf("unknown currency %q", s)
	}
}

// Run dials the server, performs the configured operation, prints the
// result, and returns.
func (app *ClientApp) Run(ctx context.Context, _ []string) error {
	log.SetLevel(app.LogLevel)

	if app.Op != "monitor" {
		if err := validatePassword(app.Password); err != nil {
			return err
		}
	}

	c, err := client.NewClient(
		client.WithServer(app.ServerAddr),
		client.WithAtMostOnce(app.AtMostOnce),
		client.WithTimeout(app.Timeout),
		client.WithRetries(app.Retries),
	)
	if err != nil {
		return errors.Wrap(err, "create client failed")
	}
	defer c.Close()

	switch app.Op {
	case "open":
		return app.runOpen(ctx, c)
	case "close":
		return app.runClose(ctx, c)
	case "deposit":
		return app.runDeposit(ctx, c)
	case "withdraw":
		return app.runWithdraw(ctx, c)
	case "query":
		return app.runQuery(ctx, c)
	case "transfer":
		return app.runTransfer(ctx, c)
	case "monitor":
		return app.runMonitor(ctx, c)
	default:
		return fmt.Errorf("unknown operation %q", app.Op)
	}
}

func replyErr(status wire.Status) error {
	return fmt.Errorf("server returned status %s", status)
}

func (app *ClientApp) runOpen(ctx context.Context, c *client.Client) error {
	currency, err := parseCurrency(app.Currency)
	if err != nil {
		return err
	}
	reply, err := c.Call(ctx, wire.OpOpen, wire.OpenRequest{
		Name: app.Name, Password: app.Password, Currency: currency, Initial: app.Amount,
	}.Encode())
	if err != nil {
		return errors.Wrap(err, "open call failed")
	}
	if reply.Status != wire.StatusOK {
		return replyErr(reply.Status)
	}
	body, err := wire.DecodeOpenReply(reply.Body)
	if err != nil {
		return errors.Wrap(err, "decode open reply failed")
	}
	fmt.Printf("opened account %d with balance %.2f\n", body.AccountNo, body.Balance)
	return nil
}

func (app *ClientApp) runClose(ctx context.Context, c *client.Client) error {
	reply, err := c.Call(ctx, wire.OpClose, wire.CloseRequest{
		Name: app.Name, AccountNo: app.AccountNo, Password: app.Password,
	}.Encode())
	if err != nil {
		return errors.Wrap(err, "close call failed")
	}
	if reply.Status != wire.StatusOK {
		return replyErr(reply.Status)
	}
	fmt.Printf("closed account %d\n", app.AccountNo)
	return nil
}

func (app *ClientApp) runDeposit(ctx context.Context, c *client.Client) error {
	currency, err := parseCurrency(app.Currency)
	if err != nil {
		return err
	}
	reply, err := c.Call(ctx, wire.OpDeposit, wire.DepositRequest{
		Name: app.Name, AccountNo: app.AccountNo, Password: app.Password,
		Currency: currency, Amount: app.Amount,
	}.Encode())
	if err != nil {
		return errors.Wrap(err, "deposit call failed")
	}
	if reply.Status != wire.StatusOK {
		return replyErr(reply.Status)
	}
	body, err := wire.DecodeBalanceReply(reply.Body)
	if err != nil {
		return errors.Wrap(err, "decode deposit reply failed")
	}
	fmt.Printf("new balance: %.2f\n", body.NewBalance)
	return nil
}

func (app *ClientApp) runWithdraw(ctx context.Context, c *client.Client) error {
	currency, err := parseCurrency(app.Currency)
	if err != nil {
		return err
	}
	reply, err := c.Call(ctx, wire.OpWithdraw, wire.WithdrawRequest{
		Name: app.Name, AccountNo: app.AccountNo, Password: app.Password,
		Currency: currency, Amount: app.Amount,
	}.Encode())
	if err != nil {
		return errors.Wrap(err, "withdraw call failed")
	}
	if reply.Status != wire.StatusOK {
		return replyErr(reply.Status)
	}
	body, err := wire.DecodeBalanceReply(reply.Body)
	if err != nil {
		return errors.Wrap(err, "decode withdraw reply failed")
	}
	fmt.Printf("new balance: %.2f\n", body.NewBalance)
	return nil
}

func (app *ClientApp) runQuery(ctx context.Context, c *client.Client) error {
	reply, err := c.Call(ctx, wire.OpQueryBalance, wire.QueryBalanceRequest{
		Name: app.Name, AccountNo: app.AccountNo, Password: app.Password,
	}.Encode())
	if err != nil {
		return errors.Wrap(err, "query call failed")
	}
	if reply.Status != wire.StatusOK {
		return replyErr(reply.Status)
	}
	body, err := wire.DecodeQueryBalanceReply(reply.Body)
	if err != nil {
		return errors.Wrap(err, "decode query reply failed")
	}
	fmt.Printf("balance: %.2f %s\n", body.Balance, body.Currency)
	return nil
}

func (app *ClientApp) runTransfer(ctx context.Context, c *client.Client) error {
	currency, err := parseCurrency(app.Currency)
	if err != nil {
		return err
	}
	reply, err := c.Call(ctx, wire.OpTransfer, wire.TransferRequest{
		Name: app.Name, FromAcc: app.AccountNo, Password: app.Password,
		ToAcc: app.ToAcc, Currency: currency, Amount: app.Amount,
	}.Encode())
	if err != nil {
		return errors.Wrap(err, "transfer call failed")
	}
	if reply.Status != wire.StatusOK {
		return replyErr(reply.Status)
	}
	body, err := wire.DecodeTransferReply(reply.Body)
	if err != nil {
		return errors.Wrap(err, "decode transfer reply failed")
	}
	fmt.Printf("from balance: %.2f, to balance: %.2f\n", body.FromNewBalance, body.ToNewBalance)
	return nil
}

func (app *ClientApp) runMonitor(ctx context.Context, c *client.Client) error {
	return c.Monitor(ctx, app.Seconds, func(update wire.CallbackUpdate) {
		fmt.Printf("update: op=%s account=%d currency=%s balance=%.2f info=%q\n",
			update.UpdateType, update.AccountNo, update.Currency, update.NewBalance, update.Info)
	})
}
