// Command ippand drives a single-process consensus round loop against a
// fixed, locally generated validator set. It exists to exercise the
// pipeline end to end outside of tests, the way cmd/sim drives the
// teacher's protocol package from the command line; it does not gossip
// or listen on the network (spec.md's Non-goals explicitly exclude
// networking from this module — collab.Transport is the seam a real
// node would wire here).
package main

import (
	"flag"
	"fmt"
	"math/big"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dmrl789/IPPAN-sub004/config"
	"github.com/dmrl789/IPPAN-sub004/dag"
	"github.com/dmrl789/IPPAN-sub004/fixedpoint"
	"github.com/dmrl789/IPPAN-sub004/hashtimer"
	"github.com/dmrl789/IPPAN-sub004/ids"
	"github.com/dmrl789/IPPAN-sub004/logging"
	"github.com/dmrl789/IPPAN-sub004/metrics"
	"github.com/dmrl789/IPPAN-sub004/round"
	"github.com/dmrl789/IPPAN-sub004/selection"
)

func main() {
	network := flag.String("network", "local", "Config preset: mainnet, testnet, or local")
	validators := flag.Int("validators", 4, "Number of locally generated validator identities")
	rounds := flag.Int("rounds", 10, "Number of rounds to drive before exiting")
	logMode := flag.String("log", "development", "Logger: development, production, or none")
	metricsAddr := flag.String("metrics-addr", "", "If set, serve Prometheus metrics on this address (e.g. :9090) for the run's duration")
	flag.Parse()

	cfg, err := presetFor(*network)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *validators > 0 {
		cfg.ValidatorsPerRound = min(cfg.ValidatorsPerRound, *validators)
	}
	if err := cfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid config:", err)
		os.Exit(1)
	}

	logger := loggerFor(*logMode)
	defer logger.Sync()

	reg := metrics.New(nil)
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Warn("ippand: metrics server stopped", zap.Error(err))
			}
		}()
		logger.Info("ippand: serving metrics", zap.String("addr", *metricsAddr))
	}

	ctx := &round.Context{Log: logger, Metrics: reg, Config: &cfg}
	driver := round.NewDriver(ctx, big.NewInt(0))

	genesis := &dag.Block{ParentIDs: []ids.ID{ids.Empty}, ProposerID: ids.GenerateTestID('G')}
	driver.Store().Insert(genesis)

	candidates := localCandidates(*validators)
	runRounds(driver, candidates, *rounds, logger)
}

func presetFor(network string) (config.Config, error) {
	switch network {
	case "mainnet":
		return config.MainnetConfig, nil
	case "testnet":
		return config.TestnetConfig, nil
	case "local":
		return config.LocalConfig, nil
	default:
		return config.Config{}, fmt.Errorf("ippand: unknown network preset %q", network)
	}
}

func loggerFor(mode string) *zap.Logger {
	switch mode {
	case "production":
		return logging.Production()
	case "none":
		return logging.NoOp()
	default:
		return logging.Development()
	}
}

// localCandidates generates n deterministic validator identities with
// equal selection weight, standing in for a real bond/reputation-scored
// candidate set (spec.md §4.5's scoring happens upstream of selection;
// this binary has no bond ledger to score against).
func localCandidates(n int) []selection.Candidate {
	out := make([]selection.Candidate, n)
	for i := 0; i < n; i++ {
		out[i] = selection.Candidate{NodeID: ids.GenerateTestID(byte('A' + i)), Score: fixedpoint.FromInt(1)}
	}
	return out
}

// runRounds drives the five-phase pipeline n times, building a minimal,
// empty-transaction block each round so the happy path — not just the
// missed-duty path — runs under observation.
func runRounds(d *round.Driver, candidates []selection.Candidate, n int, logger *zap.Logger) {
	clockUs := int64(0)
	for i := 0; i < n; i++ {
		clockUs += 1_000
		samples := make([]hashtimer.Sample, len(candidates))
		for j, c := range candidates {
			samples[j] = hashtimer.Sample{NodeID: c.NodeID, LocalTimeUs: clockUs}
		}

		form, err := d.Form(samples)
		if err != nil {
			logger.Error("ippand: form failed", zap.Error(err))
			return
		}

		preview, err := selection.Select(candidates, form.Seed, len(candidates))
		if err != nil {
			logger.Warn("ippand: selection failed", zap.Error(err))
			d.Close()
			continue
		}

		tips := d.Store().Tips()
		parents := make([]ids.ID, len(tips))
		for ti, t := range tips {
			parents[ti] = ids.ID(t)
		}
		sigs := make(map[ids.ID][]byte, len(preview.Shadows))
		for _, s := range preview.Shadows {
			sigs[s] = []byte("local-sim-signature")
		}
		block := &dag.Block{
			ParentIDs:          parents,
			HashTimer:          hashtimer.Timer{Round: d.Round(), IppanTimeUs: form.MedianUs},
			ProposerID:         preview.Primary,
			VerifierSignatures: sigs,
		}

		if _, err := d.Admit(candidates, form.Seed, form.MedianUs, block, nil); err != nil {
			logger.Warn("ippand: admit failed", zap.Error(err))
		}
		if err := d.Verify(); err != nil {
			logger.Error("ippand: verify failed", zap.Error(err))
			return
		}

		verifiedBy := append([]ids.ID{preview.Primary}, preview.Shadows...)
		if _, err := d.Finalize([32]byte{}, form.MedianUs, verifiedBy); err != nil {
			logger.Error("ippand: finalize failed", zap.Error(err))
			return
		}
		d.Close()
	}
}
