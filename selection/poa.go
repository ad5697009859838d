package selection

import (
	"github.com/dmrl789/IPPAN-sub004/features"
	"github.com/dmrl789/IPPAN-sub004/fixedpoint"
)

// PoAWeights are the fixed integer weights of the legacy fallback score,
// summing to fixedpoint.Scale as spec.md §4.8 requires. Used only when no
// D-GBDT model is loaded for the round.
type PoAWeights struct {
	Reputation   fixedpoint.Scalar
	Stake        fixedpoint.Scalar
	Uptime       fixedpoint.Scalar
	InvLatency   fixedpoint.Scalar
	SlashPenalty fixedpoint.Scalar
}

// DefaultPoAWeights weights reputation heaviest, then stake, with uptime
// and latency weighted equally and lightest, and the slash term applied as a subtraction
// rather than counted toward the SCALE-sum (it penalizes rather than
// contributes, per spec.md §4.8's "− w_slash·slash_count").
var DefaultPoAWeights = PoAWeights{
	Reputation: fixedpoint.FromInt(1) / 2, // 0.5
	Stake:      fixedpoint.FromInt(1) / 4, // 0.25
	Uptime:     fixedpoint.FromInt(1) / 8, // 0.125
	InvLatency: fixedpoint.FromInt(1) / 8, // 0.125
	SlashPenalty: fixedpoint.FromInt(1) / 10,
}

// PoAScore computes the legacy fallback score:
// w_rep·reputation + w_stake·norm(stake) + w_up·uptime + w_lat·inv_latency
// − w_slash·slash_count, clamped to [0, 10000] per spec.md §4.8.
//
// reputation is expected already normalized to [0, fixedpoint.One]
// (reputation score / 10000, the domain bonds.Reputation uses).
func PoAScore(weights PoAWeights, reputationNorm fixedpoint.Scalar, vec []fixedpoint.Scalar, slashCount uint32) fixedpoint.Scalar {
	if len(vec) != features.Arity {
		return 0
	}
	score := fixedpoint.MulFixed(weights.Reputation, reputationNorm)
	score = fixedpoint.Add(score, fixedpoint.MulFixed(weights.Stake, vec[features.FeatureStake]))
	score = fixedpoint.Add(score, fixedpoint.MulFixed(weights.Uptime, vec[features.FeatureUptime]))
	score = fixedpoint.Add(score, fixedpoint.MulFixed(weights.InvLatency, vec[features.FeatureLatencyInverse]))

	penalty := fixedpoint.MulFixed(weights.SlashPenalty, fixedpoint.FromInt(int64(slashCount)))
	score = fixedpoint.Sub(score, penalty)

	return fixedpoint.Clamp(score, 0, fixedpoint.FromInt(10_000))
}
