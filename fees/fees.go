// Package fees implements the fee cap table and periodic recycling
// accumulator of spec.md §4.10. Grounded on the config.Config fee cap
// table this package is built against, and on the amount package's
// saturating arithmetic for the atomic-unit accumulator.
package fees

import (
	"math/big"

	"github.com/dmrl789/IPPAN-sub004/amount"
	"github.com/dmrl789/IPPAN-sub004/config"
)

// Collector accrues collected fees and periodically recycles a
// basis-point fraction of the accumulator into the reward pool.
type Collector struct {
	Caps               map[config.TxKind]*big.Int
	RecycleIntervalRounds uint64
	RecycleBps         uint16

	accumulated    *big.Int
	totalCollected *big.Int
	totalRecycled  *big.Int
	lastRecycleRound uint64
}

// NewCollector returns a Collector configured from cfg.
func NewCollector(cfg *config.Config) *Collector {
	return &Collector{
		Caps:                  cfg.FeeCaps,
		RecycleIntervalRounds: cfg.FeeRecycleIntervalRounds,
		RecycleBps:            cfg.FeeRecycleBps,
		accumulated:           big.NewInt(0),
		totalCollected:        big.NewInt(0),
		totalRecycled:         big.NewInt(0),
	}
}

// Cap returns the fee cap for kind.
func (c *Collector) Cap(kind config.TxKind) (*big.Int, bool) {
	v, ok := c.Caps[kind]
	return v, ok
}

// Accepts reports whether fee is admissible for kind: fee in (0, cap].
func (c *Collector) Accepts(kind config.TxKind, fee *big.Int) bool {
	feeCap, ok := c.Cap(kind)
	if !ok || fee == nil || fee.Sign() <= 0 {
		return false
	}
	return fee.Cmp(feeCap) <= 0
}

// Collect records fee as collected, adding it to the accumulator and to
// total_collected.
func (c *Collector) Collect(fee *big.Int) {
	c.accumulated = amount.SaturatingAdd(c.accumulated, fee)
	c.totalCollected = amount.SaturatingAdd(c.totalCollected, fee)
}

// Accumulated returns the current (not yet recycled) accumulator value.
func (c *Collector) Accumulated() *big.Int { return new(big.Int).Set(c.accumulated) }

// TotalCollected returns the lifetime sum of every Collect call.
func (c *Collector) TotalCollected() *big.Int { return new(big.Int).Set(c.totalCollected) }

// TotalRecycled returns the lifetime sum of every amount moved to the
// reward pool.
func (c *Collector) TotalRecycled() *big.Int { return new(big.Int).Set(c.totalRecycled) }

// MaybeRecycle runs the recycling check at a round boundary: if
// round >= lastRecycleRound + RecycleIntervalRounds, moves
// RecycleBps/10000 of the accumulator into the returned value, updates
// the accumulator and totals, and advances lastRecycleRound to round.
// Returns zero (and performs no state change) if the interval has not
// elapsed — recycling is only performed at round boundaries, never
// mid-round, per spec.md §4.10.
func (c *Collector) MaybeRecycle(round uint64) *big.Int {
	if round < c.lastRecycleRound+c.RecycleIntervalRounds {
		return big.NewInt(0)
	}
	recycled := amount.MulDivBps(c.accumulated, uint32(c.RecycleBps))
	c.accumulated = amount.SaturatingSub(c.accumulated, recycled)
	c.totalRecycled = amount.SaturatingAdd(c.totalRecycled, recycled)
	c.lastRecycleRound = round
	return recycled
}

// ClassifyTopic is a heuristic mapping from a transaction's free-form
// topic string to the TxKind whose cap should govern it, for payload
// shapes that don't carry an explicit kind tag (e.g. a legacy gossip
// message reconstructed from topics alone). Unrecognized topics default
// to Transfer.
func ClassifyTopic(topic string) config.TxKind {
	switch topic {
	case "ai", "ai_call", "inference":
		return config.TxAiCall
	case "deploy", "contract_deploy":
		return config.TxContractDeploy
	case "call", "contract_call":
		return config.TxContractCall
	case "governance", "proposal", "vote":
		return config.TxGovernance
	case "validator", "stake", "unstake":
		return config.TxValidatorAction
	default:
		return config.TxTransfer
	}
}
