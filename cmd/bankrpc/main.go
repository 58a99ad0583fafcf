// Package main is the banking protocol CLI entrypoint.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bankrpc/internal/app/apps"
	"bankrpc/internal/app/cfg"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

var (
	logLevel string

	serverPort     int
	serverLossReq  float64
	serverLossRep  float64
	serverDedupTTL time.Duration

	clientServer  string
	clientPort    int
	clientSem     string
	clientTimeout time.Duration
	clientRetry   int

	opName      string
	opPassword  string
	opAccountNo int32
	opToAcc     int32
	opCurrency  string
	opAmount    float64
	opSeconds   uint16
)

var rootCmd = &cobra.Command{
	Use:   "bankrpc",
	Short: "UDP-based remote invocation client and server for a toy banking system.",
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the banking server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := apps.NewServerApp(cfg.ServerCfg{
			Port:     serverPort,
			LossReq:  serverLossReq,
			LossRep:  serverLossRep,
			DedupTTL: serverDedupTTL,
			LogLevel: logLevel,
		})
		if err != nil {
			return errors.Wrap(err, "new server app failed")
		}
		return errors.Wrap(app.Run(cmd.Context(), args), "run server app failed")
	},
}

func newOpCommand(use, short, op string, setup func(*cobra.Command)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			atMostOnce := isAtMostOnce(clientSem)
			app, err := apps.NewClientApp(
				cfg.ClientConnCfg{
					ServerAddr: fmt.Sprintf("%s:%d", clientServer, clientPort),
					AtMostOnce: atMostOnce,
					Timeout:    clientTimeout,
					Retries:    clientRetry,
					LogLevel:   logLevel,
				},
				cfg.OperationCfg{
					Op: op, Name: opName, Password: opPassword,
					AccountNo: opAccountNo, ToAcc: opToAcc,
					Currency: opCurrency, Amount: opAmount, Seconds: opSeconds,
				},
			)
			if err != nil {
				return errors.Wrap(err, "new client app failed")
			}
			return errors.Wrap(app.Run(cmd.Context(), args), "run client app failed")
		},
	}
	setup(cmd)
	return cmd
}

// isAtMostOnce implements the §6.2 semantics mapping: only "atmost" and its
// synonym "at-most-once" select at-most-once; anything else (including an
// unset flag) selects at-least-once.
func isAtMostOnce(sem string) bool {
	switch strings.ToLower(sem) {
	case "atmost", "at-most-once":
		return true
	default:
		return false
	}
}

func addCredentialFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&opName, "name", "", "account holder name")
	cmd.Flags().StringVar(&opPassword, "password", "", "account password (1..16 bytes)")
}

func addCurrencyAmountFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&opCurrency, "currency", "CNY", "currency code (CNY or SGD)")
	cmd.Flags().Float64Var(&opAmount, "amount", 0, "amount")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "logLevel", "info", "log level: trace|debug|info|warn|error")

	serverCmd.Flags().IntVar(&serverPort, "port", 9000, "server UDP port")
	serverCmd.Flags().Float64Var(&serverLossReq, "lossReq", 0, "simulated request loss probability, 0..1")
	serverCmd.Flags().Float64Var(&serverLossRep, "lossRep", 0, "simulated reply loss probability, 0..1")
	serverCmd.Flags().DurationVar(&serverDedupTTL, "dedupTTL", 0, "at-most-once dedup cache TTL (default 60s)")

	clientCmd := &cobra.Command{
		Use:   "client",
		Short: "Invokes one banking operation against a running server.",
	}
	clientCmd.PersistentFlags().StringVar(&clientServer, "server", "127.0.0.1", "server address")
	clientCmd.PersistentFlags().IntVar(&clientPort, "port", 9000, "server UDP port")
	clientCmd.PersistentFlags().StringVar(&clientSem, "sem", "atleast", "invocation semantics: atmost|atleast")
	clientCmd.PersistentFlags().DurationVar(&clientTimeout, "timeout", 0, "per-attempt reply timeout (default 2s)")
	clientCmd.PersistentFlags().IntVar(&clientRetry, "retry", 0, "send attempt count (default 3)")

	openCmd := newOpCommand("open", "Opens a new account.", "open", func(c *cobra.Command) {
		addCredentialFlags(c)
		addCurrencyAmountFlags(c)
	})

	closeCmd := newOpCommand("close", "Closes an account.", "close", func(c *cobra.Command) {
		addCredentialFlags(c)
		c.Flags().Int32Var(&opAccountNo, "account", 0, "account number")
	})

	depositCmd := newOpCommand("deposit", "Deposits into an account.", "deposit", func(c *cobra.Command) {
		addCredentialFlags(c)
		addCurrencyAmountFlags(c)
		c.Flags().Int32Var(&opAccountNo, "account", 0, "account number")
	})

	withdrawCmd := newOpCommand("withdraw", "Withdraws from an account.", "withdraw", func(c *cobra.Command) {
		addCredentialFlags(c)
		addCurrencyAmountFlags(c)
		c.Flags().Int32Var(&opAccountNo, "account", 0, "account number")
	})

	queryCmd := newOpCommand("query", "Queries an account balance.", "query", func(c *cobra.Command) {
		addCredentialFlags(c)
		c.Flags().Int32Var(&opAccountNo, "account", 0, "account number")
	})

	transferCmd := newOpCommand("transfer", "Transfers between two accounts.", "transfer", func(c *cobra.Command) {
		addCredentialFlags(c)
		addCurrencyAmountFlags(c)
		c.Flags().Int32Var(&opAccountNo, "from", 0, "source account number")
		c.Flags().Int32Var(&opToAcc, "to", 0, "destination account number")
	})

	monitorCmd := newOpCommand("monitor", "Subscribes to account update callbacks.", "monitor", func(c *cobra.Command) {
		c.Flags().Uint16Var(&opSeconds, "seconds", 30, "monitor duration in seconds")
	})

	clientCmd.AddCommand(openCmd, closeCmd, depositCmd, withdrawCmd, queryCmd, transferCmd, monitorCmd)
	rootCmd.AddCommand(serverCmd, clientCmd)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
