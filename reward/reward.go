// Package reward implements the per-block reward distribution split of
// spec.md §4.9: proposer/verifier-pool/treasury basis points, with
// integer remainder routed to treasury so the three payouts always sum
// to exactly the input reward. Grounded on the amount package's
// basis-point helpers, since the distribution operates on the same
// atomic-unit domain as emission and bonds.
package reward

import (
	"math/big"

	"github.com/dmrl789/IPPAN-sub004/amount"
	"github.com/dmrl789/IPPAN-sub004/fixedpoint"
	"github.com/dmrl789/IPPAN-sub004/ids"
)

// Split is the result of distributing one block's reward: invariant 7
// requires Proposer + Σ Verifiers + Treasury == the input reward exactly.
type Split struct {
	Proposer  *big.Int
	Verifiers map[ids.ID]*big.Int
	Treasury  *big.Int
}

// Distribute splits reward among proposer, the verifiers who signed
// (verifiedBy), and the treasury per proposerBps/verifierBps/treasuryBps
// (which must sum to 10000; config.Config.Valid() enforces this upstream).
// The verifier pool share is split evenly among verifiedBy; any integer
// remainder from flooring basis-point math, plus any remainder left over
// from splitting the verifier pool evenly, is routed to treasury so the
// exact-sum invariant holds regardless of rounding.
func Distribute(rewardAmt *big.Int, proposerBps, verifierBps, treasuryBps uint16, verifiedBy []ids.ID) Split {
	proposerShare := amount.MulDivBps(rewardAmt, uint32(proposerBps))
	verifierPool := amount.MulDivBps(rewardAmt, uint32(verifierBps))

	verifiers := make(map[ids.ID]*big.Int, len(verifiedBy))
	distributed := new(big.Int)
	if n := len(verifiedBy); n > 0 {
		each := new(big.Int).Quo(verifierPool, big.NewInt(int64(n)))
		for _, v := range verifiedBy {
			verifiers[v] = new(big.Int).Set(each)
			distributed.Add(distributed, each)
		}
	}

	spent := new(big.Int).Add(proposerShare, distributed)
	treasuryShare := new(big.Int).Sub(rewardAmt, spent)
	if treasuryShare.Sign() < 0 {
		// Defensive: basis-point math never produces this, but a
		// negative treasury share would violate the exact-sum
		// invariant silently if left unchecked.
		treasuryShare = big.NewInt(0)
	}

	return Split{Proposer: proposerShare, Verifiers: verifiers, Treasury: treasuryShare}
}

// Sum returns Proposer + Σ Verifiers + Treasury, for asserting the
// exact-sum invariant against the original reward.
func (s Split) Sum() *big.Int {
	total := new(big.Int).Add(s.Proposer, s.Treasury)
	for _, v := range s.Verifiers {
		total.Add(total, v)
	}
	return total
}

// ContributionMultiplier scales a base score by a validator's recent
// contribution, a fixed-point [0,1]-ish multiplier (spec.md's telemetry
// field "network contribution"), used by reward policy extensions that
// weight payouts by contribution rather than splitting the verifier pool
// strictly evenly. Not applied by Distribute itself — Distribute follows
// spec.md §4.9's literal even split — but exposed for round drivers that
// layer a contribution-weighted bonus on top of the base split.
func ContributionMultiplier(base fixedpoint.Scalar, contribution fixedpoint.Scalar) fixedpoint.Scalar {
	return fixedpoint.MulFixed(base, fixedpoint.Clamp(contribution, 0, fixedpoint.One))
}
