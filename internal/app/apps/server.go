package apps

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"bankrpc/internal/pkg/bank"
	"bankrpc/internal/pkg/dedup"
	"bankrpc/internal/pkg/log"
	"bankrpc/internal/pkg/monitor"
	"bankrpc/internal/pkg/server"
	"bankrpc/internal/pkg/validate"
)

// ServerAppCfg configures a ServerApp.
type ServerAppCfg interface {
	ApplyServerApp(*ServerApp) error
}

// ServerApp is the banking server CLI application.
type ServerApp struct {
	Port     int           `validate:"gte=0,lte=65535"`
	LossReq  float64       `validate:"gte=0,lte=1"`
	LossRep  float64       `validate:"gte=0,lte=1"`
	DedupTTL time.Duration `validate:"gte=0"`
	LogLevel string
}

// NewServerApp creates a new ServerApp.
func NewServerApp(cfgs ...ServerAppCfg) (*ServerApp, error) {
	app := &ServerApp{DedupTTL: dedup.DefaultTTL, LogLevel: "info"}
	for _, cfg := range cfgs {
		if err := cfg.ApplyServerApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ServerApp cfg failed")
		}
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ServerApp failed")
	}
	return app, nil
}

// Run starts the banking server and blocks until ctx is cancelled.
func (app *ServerApp) Run(ctx context.Context, _ []string) error {
	log.SetLevel(app.LogLevel)

	srv, err := server.NewServer(app.Port,
		server.WithBank(bank.NewMemoryBank()),
		server.WithDedupStore(dedup.NewMemoryStore(app.DedupTTL)),
		server.WithMonitorStore(monitor.NewMemoryStore()),
		server.WithLoss(app.LossReq, app.LossRep),
	)
	if err != nil {
		return errors.Wrap(err, "create server failed")
	}
	defer srv.Close()

	log.Logger().WithField("addr", srv.Addr().String()).Info("server listening")
	return errors.Wrap(srv.Run(ctx), "run server failed")
}
