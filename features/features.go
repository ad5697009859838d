// Package features turns raw validator telemetry into the normalized
// fixed-point feature vector the GBDT scorer consumes, per spec.md §3/§4.3.
// Grounded on the teacher's general shape of a narrow, pure transform
// package (utils/math helpers feeding protocol/nova), adapted here to a
// telemetry-to-feature pipeline.
package features

import (
	"math/big"

	"github.com/dmrl789/IPPAN-sub004/fixedpoint"
)

// Telemetry is one validator's raw telemetry sample (spec.md §3).
type Telemetry struct {
	NodeIDHex          string
	BlocksProposed     uint64
	BlocksVerified     uint64
	RoundsActive       uint64
	AvgResponseLatency int64 // microseconds
	UptimePct          fixedpoint.Scalar // fixed-point, 0..100·Scale
	SlashCount         uint32
	RecentPerformance  fixedpoint.Scalar // fixed-point, 0..1·Scale
	NetworkContrib     fixedpoint.Scalar // fixed-point, 0..1·Scale
	Stake              *big.Int          // atomic units
	AgeRounds          uint64
	LastActiveRound    uint64
}

// Order is the canonical, fixed feature order spec.md §3 mandates:
// [uptime, latency-inverse, slash-penalty, stake, recent-performance,
// network-contribution, age]. This order is part of the model contract —
// every loaded model's internal nodes index into a vector built with
// exactly this ordering.
const (
	FeatureUptime = iota
	FeatureLatencyInverse
	FeatureSlashPenalty
	FeatureStake
	FeatureRecentPerformance
	FeatureNetworkContribution
	FeatureAge
	Arity
)

// referenceStake normalizes stake against a reference magnitude so the
// stake feature stays in a comparable fixed-point range to the other
// [0,1]-ish features rather than spanning the full atomic-unit domain.
// 1,000 whole IPN (1e27 atomic units) is the mainnet minimum validator
// stake (config.MainnetConfig.MinValidatorStake); using it as the
// normalization reference keeps a minimally-staked validator's feature
// near fixedpoint.Scale (1.0).
var referenceStake = new(big.Int).Mul(big.NewInt(1_000), new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil))

// maxLatencyUs caps latency normalization; telemetry above this is treated
// as maximally bad (latency-inverse saturates to zero).
const maxLatencyUs = 5_000_000 // 5 seconds

// maxAgeRounds caps the age feature's normalization horizon.
const maxAgeRounds = 100_000

// Extract builds the canonical 7-element feature vector from a telemetry
// sample. Every output is clamped into [0, fixedpoint.Scale] so the GBDT
// thresholds trained against the normalized domain stay meaningful
// regardless of a particular validator's raw magnitudes.
func Extract(t Telemetry) []fixedpoint.Scalar {
	out := make([]fixedpoint.Scalar, Arity)

	out[FeatureUptime] = fixedpoint.Clamp(t.UptimePct, 0, fixedpoint.FromInt(100))
	out[FeatureUptime] = fixedpoint.DivFixed(out[FeatureUptime], fixedpoint.FromInt(100))

	out[FeatureLatencyInverse] = latencyInverse(t.AvgResponseLatency)

	out[FeatureSlashPenalty] = slashPenalty(t.SlashCount)

	out[FeatureStake] = normalizeStake(t.Stake)

	out[FeatureRecentPerformance] = fixedpoint.Clamp(t.RecentPerformance, 0, fixedpoint.One)

	out[FeatureNetworkContribution] = fixedpoint.Clamp(t.NetworkContrib, 0, fixedpoint.One)

	out[FeatureAge] = ageFeature(t.AgeRounds)

	return out
}

func latencyInverse(latencyUs int64) fixedpoint.Scalar {
	if latencyUs <= 0 {
		return fixedpoint.One
	}
	if latencyUs >= maxLatencyUs {
		return 0
	}
	// (maxLatencyUs - latency) / maxLatencyUs, in fixed point.
	remaining := fixedpoint.FromInt(maxLatencyUs - latencyUs)
	total := fixedpoint.FromInt(maxLatencyUs)
	return fixedpoint.DivFixed(remaining, total)
}

func slashPenalty(slashCount uint32) fixedpoint.Scalar {
	// Each slash strips 20% of the score, floored at zero.
	penalty := fixedpoint.One
	step := fixedpoint.DivFixed(fixedpoint.FromInt(1), fixedpoint.FromInt(5))
	for i := uint32(0); i < slashCount; i++ {
		penalty = fixedpoint.Sub(penalty, step)
		if penalty < 0 {
			return 0
		}
	}
	return penalty
}

func normalizeStake(stake *big.Int) fixedpoint.Scalar {
	if stake == nil || stake.Sign() <= 0 {
		return 0
	}
	ratio := new(big.Int).Mul(stake, big.NewInt(int64(fixedpoint.Scale)))
	ratio.Quo(ratio, referenceStake)
	if !ratio.IsInt64() {
		return fixedpoint.One
	}
	return fixedpoint.Clamp(fixedpoint.Scalar(ratio.Int64()), 0, fixedpoint.One)
}

func ageFeature(ageRounds uint64) fixedpoint.Scalar {
	if ageRounds >= maxAgeRounds {
		return fixedpoint.One
	}
	return fixedpoint.DivFixed(fixedpoint.FromInt(int64(ageRounds)), fixedpoint.FromInt(maxAgeRounds))
}
