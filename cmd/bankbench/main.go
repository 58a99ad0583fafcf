// Package main runs a synthetic latency and correctness comparison between
// at-most-once and at-least-once invocation semantics against a banking
// server, recording round-trip latency with an HDR histogram and the
// observed balance drift each semantic produces under simulated loss.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/pkg/errors"

	"bankrpc/internal/pkg/bank"
	"bankrpc/internal/pkg/dedup"
	"bankrpc/internal/pkg/monitor"
	"bankrpc/internal/pkg/server"

	"bankrpc/internal/pkg/client"
	"bankrpc/internal/pkg/wire"
)

func main() {
	n := flag.Int("n", 200, "number of deposit calls per semantic")
	lossRep := flag.Float64("lossRep", 0.2, "simulated reply loss probability, 0..1")
	flag.Parse()

	if err := run(*n, *lossRep); err != nil {
		fmt.Println("bankbench failed:", err)
	}
}

func run(n int, lossRep float64) error {
	for _, atMostOnce := range []bool{false, true} {
		result, err := benchmark(n, lossRep, atMostOnce)
		if err != nil {
			return errors.Wrap(err, "benchmark run failed")
		}
		label := "AT_LEAST_ONCE"
		if atMostOnce {
			label = "AT_MOST_ONCE"
		}
		fmt.Printf("=== %s (n=%d, lossRep=%.2f) ===\n", label, n, lossRep)
		fmt.Printf("  p50=%dus p90=%dus p99=%dus max=%dus\n",
			result.hist.ValueAtQuantile(50), result.hist.ValueAtQuantile(90),
			result.hist.ValueAtQuantile(99), result.hist.Max())
		fmt.Printf("  expected balance=%.2f observed balance=%.2f drift=%.2f\n",
			result.expectedBalance, result.observedBalance, result.observedBalance-result.expectedBalance)
	}
	return nil
}

type benchResult struct {
	hist            *hdrhistogram.Histogram
	expectedBalance float64
	observedBalance float64
}

// benchmark opens one account and issues n deposits of 1.0 each against a
// fresh server instance configured with lossRep, then compares the bank's
// true final balance against n (the balance a lossless run would produce):
// under AT_LEAST_ONCE, a dropped reply causes the client to retry and the
// bank to apply the deposit twice, so a non-zero drift is expected there
// and not under AT_MOST_ONCE.
func benchmark(n int, lossRep float64, atMostOnce bool) (*benchResult, error) {
	srv, err := server.NewServer(0,
		server.WithBank(bank.NewMemoryBank()),
		server.WithDedupStore(dedup.NewMemoryStore(dedup.DefaultTTL)),
		server.WithMonitorStore(monitor.NewMemoryStore()),
		server.WithLoss(0, lossRep),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create server failed")
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)

	c, err := client.NewClient(
		client.WithServer(srv.Addr().String()),
		client.WithAtMostOnce(atMostOnce),
		client.WithTimeout(200*time.Millisecond),
		client.WithRetries(5),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create client failed")
	}
	defer c.Close()

	openReply, err := c.Call(ctx, wire.OpOpen, wire.OpenRequest{
		Name: "bench", Password: "pw123456", Currency: wire.CurrencyCNY, Initial: 0,
	}.Encode())
	if err != nil {
		return nil, errors.Wrap(err, "open call failed")
	}
	openBody, err := wire.DecodeOpenReply(openReply.Body)
	if err != nil {
		return nil, errors.Wrap(err, "decode open reply failed")
	}

	hist := hdrhistogram.New(1, 1_000_000, 3)
	for i := 0; i < n; i++ {
		start := time.Now()
		_, err := c.Call(ctx, wire.OpDeposit, wire.DepositRequest{
			Name: "bench", AccountNo: openBody.AccountNo, Password: "pw123456",
			Currency: wire.CurrencyCNY, Amount: 1,
		}.Encode())
		if err != nil {
			return nil, errors.Wrap(err, "deposit call failed")
		}
		if err := hist.RecordValue(time.Since(start).Microseconds()); err != nil {
			return nil, errors.Wrap(err, "record latency failed")
		}
	}

	queryReply, err := c.Call(ctx, wire.OpQueryBalance, wire.QueryBalanceRequest{
		Name: "bench", AccountNo: openBody.AccountNo, Password: "pw123456",
	}.Encode())
	if err != nil {
		return nil, errors.Wrap(err, "query call failed")
	}
	queryBody, err := wire.DecodeQueryBalanceReply(queryReply.Body)
	if err != nil {
		return nil, errors.Wrap(err, "decode query reply failed")
	}

	return &benchResult{
		hist:            hist,
		expectedBalance: float64(n),
		observedBalance: queryBody.Balance,
	}, nil
}
