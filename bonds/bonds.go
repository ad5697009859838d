// Package bonds implements the validator bond lifecycle and reputation
// ledger of spec.md §4.8: the feedback signal consumed by selection and
// the round pipeline. Grounded on the teacher's validators.Manager/Set
// shape (GetWeight/TotalWeight, SetCallbackListener), re-expressed here
// as a single-owner ledger whose weight is a bond amount rather than a
// subnet-scoped stake and whose "light" concept becomes reputation.
package bonds

import (
	"errors"
	"math/big"

	"github.com/dmrl789/IPPAN-sub004/amount"
	"github.com/dmrl789/IPPAN-sub004/config"
	"github.com/dmrl789/IPPAN-sub004/ids"
)

// Status is a closed sum type for a bond's lifecycle state (spec.md §9:
// "tagged variants ... replace inheritance / duck-typed dispatch").
type Status int

const (
	StatusActive Status = iota
	StatusUnstaking
	StatusReleased
	StatusSlashed
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusUnstaking:
		return "unstaking"
	case StatusReleased:
		return "released"
	case StatusSlashed:
		return "slashed"
	default:
		return "unknown"
	}
}

// Bond is one validator's posted stake and its lifecycle state.
type Bond struct {
	NodeID      ids.ID
	Amount      *big.Int
	Status      Status
	UnlockRound uint64 // valid only while Status == StatusUnstaking
}

const (
	ReputationMax = 10_000
	ReputationInit = 10_000
)

// Reputation is a validator's clamped [0, ReputationMax] score.
type Reputation int32

// Ledger owns every bond and reputation score: the round driver's
// exclusive, single-writer view per spec.md §5.
type Ledger struct {
	bonds       map[ids.ID]*Bond
	reputation  map[ids.ID]Reputation
	slashedKeys map[slashKey]struct{} // idempotency guard, invariant 8
	deltas      config.ReputationDeltas
	slashBps    config.SlashingBps
	minBond     *big.Int
}

type slashKey struct {
	node   ids.ID
	round  uint64
	reason string
}

// NewLedger returns an empty ledger configured with the given reputation
// deltas, slashing basis points, and minimum bond (config.Config's
// ReputationDeltas, SlashingBps, and MinValidatorBond).
func NewLedger(deltas config.ReputationDeltas, slashBps config.SlashingBps, minBond *big.Int) *Ledger {
	if minBond == nil {
		minBond = big.NewInt(0)
	}
	return &Ledger{
		bonds:       make(map[ids.ID]*Bond),
		reputation:  make(map[ids.ID]Reputation),
		slashedKeys: make(map[slashKey]struct{}),
		deltas:      deltas,
		slashBps:    slashBps,
		minBond:     minBond,
	}
}

// ErrAlreadyBonded is returned by Post for a node with an existing bond.
var ErrAlreadyBonded = errors.New("bonds: node already has a bond")

// ErrBondBelowMinimum is returned by Post when amt is below the ledger's
// configured MIN_VALIDATOR_BOND (spec.md §4.8: a bond is "created on
// registration (amount >= MIN_VALIDATOR_BOND)").
var ErrBondBelowMinimum = errors.New("bonds: amount is below the minimum validator bond")

// Post records a new bond at StatusActive with reputation initialized to
// ReputationInit.
func (l *Ledger) Post(node ids.ID, amt *big.Int) error {
	if _, exists := l.bonds[node]; exists {
		return ErrAlreadyBonded
	}
	if amt == nil || amt.Cmp(l.minBond) < 0 {
		return ErrBondBelowMinimum
	}
	l.bonds[node] = &Bond{NodeID: node, Amount: new(big.Int).Set(amt), Status: StatusActive}
	l.reputation[node] = ReputationInit
	return nil
}

// Bond returns the current bond record for node, if any.
func (l *Ledger) Bond(node ids.ID) (Bond, bool) {
	b, ok := l.bonds[node]
	if !ok {
		return Bond{}, false
	}
	return *b, true
}

// Reputation returns the current reputation score for node (zero if
// never bonded).
func (l *Ledger) Reputation(node ids.ID) Reputation {
	return l.reputation[node]
}

// ErrNotActive is returned when an operation requires an Active bond.
var ErrNotActive = errors.New("bonds: node's bond is not Active")

// BeginUnstaking transitions an Active bond to Unstaking, locked until
// unlockRound (spec.md §4.8: "Unstaking funds are not spendable until
// unlock_round is finalized").
func (l *Ledger) BeginUnstaking(node ids.ID, unlockRound uint64) error {
	b, ok := l.bonds[node]
	if !ok || b.Status != StatusActive {
		return ErrNotActive
	}
	b.Status = StatusUnstaking
	b.UnlockRound = unlockRound
	return nil
}

// ErrStillLocked is returned by Release before the unlock round.
var ErrStillLocked = errors.New("bonds: unstaking lock has not elapsed")

// Release finalizes an Unstaking bond once currentRound >= UnlockRound.
func (l *Ledger) Release(node ids.ID, currentRound uint64) error {
	b, ok := l.bonds[node]
	if !ok || b.Status != StatusUnstaking {
		return ErrNotActive
	}
	if currentRound < b.UnlockRound {
		return ErrStillLocked
	}
	b.Status = StatusReleased
	return nil
}

// SlashReason names one of the table entries of spec.md §4.8.
type SlashReason string

const (
	ReasonDoubleSign      SlashReason = "double_sign"
	ReasonInvalidBlock    SlashReason = "invalid_block"
	ReasonExtendedOffline SlashReason = "extended_offline"
)

func (l *Ledger) bpsFor(reason SlashReason) uint32 {
	switch reason {
	case ReasonDoubleSign:
		return l.slashBps.DoubleSign
	case ReasonInvalidBlock:
		return l.slashBps.InvalidBlock
	case ReasonExtendedOffline:
		return l.slashBps.ExtendedOffline
	default:
		return 0
	}
}

// Slash applies the slashing-table basis points for reason to node's bond
// at round, idempotently per (node, round, reason) — invariant 8. A
// repeated call with the same key is a silent no-op, not an error,
// matching "idempotent" rather than "rejected on retry".
func (l *Ledger) Slash(node ids.ID, round uint64, reason SlashReason) error {
	key := slashKey{node: node, round: round, reason: string(reason)}
	if _, already := l.slashedKeys[key]; already {
		return nil
	}
	b, ok := l.bonds[node]
	if !ok {
		return ErrNotActive
	}
	bps := l.bpsFor(reason)
	slashed := amount.MulDivBps(b.Amount, bps)
	b.Amount = amount.SaturatingSub(b.Amount, slashed)
	b.Status = StatusSlashed
	l.slashedKeys[key] = struct{}{}
	return nil
}

// ApplyReputationDelta adjusts node's reputation by delta, clamped to
// [0, ReputationMax] — invariant 5.
func (l *Ledger) ApplyReputationDelta(node ids.ID, delta int32) {
	cur := int64(l.reputation[node]) + int64(delta)
	if cur < 0 {
		cur = 0
	}
	if cur > ReputationMax {
		cur = ReputationMax
	}
	l.reputation[node] = Reputation(cur)
}

// OnAdmittedBlock applies +Δ_propose.
func (l *Ledger) OnAdmittedBlock(node ids.ID) { l.ApplyReputationDelta(node, l.deltas.Propose) }

// OnQuorumParticipation applies +Δ_verify.
func (l *Ledger) OnQuorumParticipation(node ids.ID) { l.ApplyReputationDelta(node, l.deltas.Verify) }

// OnMissedPrimaryDuty applies −Δ_miss_prop.
func (l *Ledger) OnMissedPrimaryDuty(node ids.ID) { l.ApplyReputationDelta(node, -l.deltas.MissProp) }

// OnMissedVerifierDuty applies −Δ_miss_ver.
func (l *Ledger) OnMissedVerifierDuty(node ids.ID) { l.ApplyReputationDelta(node, -l.deltas.MissVer) }

// OnInvalidBlock applies −Δ_invalid.
func (l *Ledger) OnInvalidBlock(node ids.ID) { l.ApplyReputationDelta(node, -l.deltas.Invalid) }

// OnSkewedTelemetry applies −Δ_skew.
func (l *Ledger) OnSkewedTelemetry(node ids.ID) { l.ApplyReputationDelta(node, -l.deltas.Skew) }

// EligibleCandidates returns every node with Status == Active and
// reputation >= minReputation: the candidate set C of spec.md §4.5.
func (l *Ledger) EligibleCandidates(minReputation int32) []ids.ID {
	var out []ids.ID
	for node, b := range l.bonds {
		if b.Status == StatusActive && int32(l.reputation[node]) >= minReputation {
			out = append(out, node)
		}
	}
	return out
}

// TotalBonded returns the sum of every bond's current amount, regardless
// of status, for checking "total bonded <= current_supply".
func (l *Ledger) TotalBonded() *big.Int {
	total := new(big.Int)
	for _, b := range l.bonds {
		total.Add(total, b.Amount)
	}
	return total
}
