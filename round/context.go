package round

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/dmrl789/IPPAN-sub004/bonds"
	"github.com/dmrl789/IPPAN-sub004/collab"
	"github.com/dmrl789/IPPAN-sub004/config"
	"github.com/dmrl789/IPPAN-sub004/dag"
	"github.com/dmrl789/IPPAN-sub004/emission"
	"github.com/dmrl789/IPPAN-sub004/fees"
	"github.com/dmrl789/IPPAN-sub004/gbdt"
	"github.com/dmrl789/IPPAN-sub004/metrics"
)

// Context carries the ambient dependencies a Driver needs but doesn't
// own the lifecycle of: logging, metrics, and the static configuration.
// Grounded on the teacher's nova.Context (Log/Registerer/BlockAcceptor).
type Context struct {
	Log     *zap.Logger
	Metrics *metrics.Registry
	Config  *config.Config

	// Crypto verifies verifier signatures at admission (spec.md §6); nil
	// falls back to counting signatures present, for tests and local dev
	// that don't wire a concrete adapter.
	Crypto collab.Crypto
}

// Driver is the single-writer-per-round state machine of spec.md §4.7.
// It exclusively owns the DAG, the bond/reputation ledger, the emission
// schedule's running supply, and the fee collector — every other access
// path is a snapshot read or a message into the driver, per spec.md §5.
type Driver struct {
	ctx *Context

	store     *dag.Store
	ledger    *bonds.Ledger
	fees      *fees.Collector
	schedule  emission.Schedule

	currentRound  uint64
	state         State
	currentSupply *big.Int

	// model is the active D-GBDT model, swapped only at round boundaries
	// (spec.md §5: "a swap triggers recomputation of model hash").
	model *gbdt.Model

	misses map[uint64][]MissRecord
}

// MissRecord is one validator's missed duty in a round, recorded when a
// timeout elapses without progress (spec.md §4.7).
type MissRecord struct {
	Round  uint64
	NodeID string
	Reason string
}

// NewDriver constructs a Driver at round 0, state Forming, with an empty
// DAG and ledger wired from cfg.
func NewDriver(ctx *Context, initialSupply *big.Int) *Driver {
	return &Driver{
		ctx:           ctx,
		store:         dag.NewStore(),
		ledger:        bonds.NewLedger(ctx.Config.ReputationDeltas, ctx.Config.SlashingBps, ctx.Config.MinValidatorBond),
		fees:          fees.NewCollector(ctx.Config),
		schedule: emission.Schedule{
			InitialReward:   ctx.Config.InitialReward,
			HalvingInterval: ctx.Config.HalvingInterval,
			SupplyCap:       ctx.Config.SupplyCap,
		},
		currentRound:  0,
		state:         StateForming,
		currentSupply: initialSupply,
		misses:        make(map[uint64][]MissRecord),
	}
}

// State returns the driver's current pipeline state.
func (d *Driver) State() State { return d.state }

// Round returns the round number currently being processed.
func (d *Driver) Round() uint64 { return d.currentRound }

// Store exposes the DAG store for snapshot reads.
func (d *Driver) Store() *dag.Store { return d.store }

// Ledger exposes the bond/reputation ledger for snapshot reads.
func (d *Driver) Ledger() *bonds.Ledger { return d.ledger }

// LoadModel swaps the active model. Per spec.md §5 this must only be
// called at a round boundary (State == StateClosed or StateForming);
// callers are responsible for enforcing that timing — the driver itself
// has no background hot-reload task in this codebase.
func (d *Driver) LoadModel(m *gbdt.Model) {
	d.model = m
}

// Model returns the currently active model, or nil if none is loaded
// (the legacy PoA fallback scorer applies in that case, per spec.md §4.5).
func (d *Driver) Model() *gbdt.Model { return d.model }

func (d *Driver) recordMiss(round uint64, nodeID, reason string) {
	d.misses[round] = append(d.misses[round], MissRecord{Round: round, NodeID: nodeID, Reason: reason})
	if d.ctx.Log != nil {
		d.ctx.Log.Warn("round: recorded miss",
			zap.Uint64("round", round),
			zap.String("node", nodeID),
			zap.String("reason", reason),
		)
	}
}

// Misses returns every recorded miss for round.
func (d *Driver) Misses(round uint64) []MissRecord {
	return d.misses[round]
}
