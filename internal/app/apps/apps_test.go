package apps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewServerAppDefaultsAreValid(t *testing.T) {
	app, err := NewServerApp()
	require.NoError(t, err)
	require.Equal(t, "info", app.LogLevel)
}

func TestNewServerAppRejectsOutOfRangeLoss(t *testing.T) {
	_, err := NewServerApp(cfgServerLoss{lossReq: 1.5})
	require.Error(t, err)
}

type cfgServerLoss struct{ lossReq float64 }

func (c cfgServerLoss) ApplyServerApp(app *ServerApp) error {
	app.LossReq = c.lossReq
	return nil
}

func TestNewClientAppRequiresServerAddr(t *testing.T) {
	_, err := NewClientApp(cfgOp{op: "query"})
	require.Error(t, err)
}

func TestNewClientAppRejectsUnknownOp(t *testing.T) {
	_, err := NewClientApp(cfgAddr{addr: "127.0.0.1:9000"}, cfgOp{op: "frobnicate"})
	require.Error(t, err)
}

func TestRunRejectsMissingPasswordWithoutPanicking(t *testing.T) {
	app, err := NewClientApp(
		cfgAddr{addr: "127.0.0.1:1"},
		cfgOp{op: "deposit"},
	)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		err = app.Run(context.Background(), nil)
	})
	require.Error(t, err)
}

func TestRunRejectsOversizedPasswordWithoutPanicking(t *testing.T) {
	app, err := NewClientApp(
		cfgAddr{addr: "127.0.0.1:1"},
		cfgOp{op: "deposit"},
		cfgPassword{password: "this-password-is-way-too-long-for-the-wire-field"},
	)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		err = app.Run(context.Background(), nil)
	})
	require.Error(t, err)
}

type cfgPassword struct{ password string }

func (c cfgPassword) ApplyClientApp(app *ClientApp) error {
	app.Password = c.password
	return nil
}

type cfgAddr struct{ addr string }

func (c cfgAddr) ApplyClientApp(app *ClientApp) error {
	app.ServerAddr = c.addr
	return nil
}

type cfgOp struct{ op string }

func (c cfgOp) ApplyClientApp(app *ClientApp) error {
	app.Op = c.op
	return nil
}
