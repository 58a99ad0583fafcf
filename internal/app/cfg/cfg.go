// Package cfg implements configuration appliers for the apps package.
// Each type here needs only implement the ApplyX method for the app it
// configures; a config object can configure more than one app type.
package cfg

import (
	"time"

	"bankrpc/internal/app/apps"
)

// ServerCfg configures a ServerApp's network and loss-simulation settings.
type ServerCfg struct {
	Port     int
	LossReq  float64
	LossRep  float64
	DedupTTL time.Duration
	LogLevel string
}

// ApplyServerApp applies ServerCfg to a ServerApp.
func (c ServerCfg) ApplyServerApp(app *apps.ServerApp) error {
	app.Port = c.Port
	app.LossReq = c.LossReq
	app.LossRep = c.LossRep
	if c.DedupTTL > 0 {
		app.DedupTTL = c.DedupTTL
	}
	if c.LogLevel != "" {
		app.LogLevel = c.LogLevel
	}
	return nil
}

// ClientConnCfg configures a ClientApp's connection to the server.
type ClientConnCfg struct {
	ServerAddr string
	AtMostOnce bool
	Timeout    time.Duration
	Retries    int
	LogLevel   string
}

// ApplyClientApp applies ClientConnCfg to a ClientApp.
func (c ClientConnCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.ServerAddr = c.ServerAddr
	app.AtMostOnce = c.AtMostOnce
	if c.Timeout > 0 {
		app.Timeout = c.Timeout
	}
	if c.Retries > 0 {
		app.Retries = c.Retries
	}
	if c.LogLevel != "" {
		app.LogLevel = c.LogLevel
	}
	return nil
}

// OperationCfg configures the operation a ClientApp performs and its
// arguments. Unused fields for a given operation are simply ignored.
type OperationCfg struct {
	Op        string
	Name      string
	Password  string
	AccountNo int32
	ToAcc     int32
	Currency  string
	Amount    float64
	Seconds   uint16
}

// ApplyClientApp applies OperationCfg to a ClientApp.
func (c OperationCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.Op = c.Op
	app.Name = c.Name
	app.Password = c.Password
	app.AccountNo = c.AccountNo
	app.ToAcc = c.ToAcc
	app.Currency = c.Currency
	app.Amount = c.Amount
	app.Seconds = c.Seconds
	return nil
}
