// Package emission implements the halving reward schedule and supply
// cap enforcement of spec.md §4.9. Grounded on the fixed-point saturation
// idiom used throughout this module (fixedpoint, amount), since the
// original crate's emission schedule operates on the same u128 atomic
// units the amount package models.
package emission

import (
	"math/big"

	"github.com/dmrl789/IPPAN-sub004/amount"
)

// Schedule holds the emission parameters of spec.md §4.9.
type Schedule struct {
	InitialReward   *big.Int
	HalvingInterval uint64
	SupplyCap       *big.Int
}

// RewardAt computes R(r) = initial_reward >> (r / halving_interval),
// per spec.md §4.9. A halving_interval of zero is treated as "never
// halve" defensively, though config.Valid() rejects such a schedule
// before it reaches here.
func (s Schedule) RewardAt(round uint64) *big.Int {
	if s.HalvingInterval == 0 {
		return new(big.Int).Set(s.InitialReward)
	}
	shift := round / s.HalvingInterval
	reward := new(big.Int).Rsh(s.InitialReward, uint(shift))
	return reward
}

// EmitAt computes how much is actually emitted at round, given
// currentSupply already issued: the lesser of RewardAt(round) and the
// remaining headroom (cap - current_supply), never negative — invariant 3
// (current_supply(r) <= supply_cap always holds after applying the
// result).
func (s Schedule) EmitAt(round uint64, currentSupply *big.Int) *big.Int {
	headroom := new(big.Int).Sub(s.SupplyCap, currentSupply)
	if headroom.Sign() <= 0 {
		return big.NewInt(0)
	}
	reward := s.RewardAt(round)
	if reward.Cmp(headroom) > 0 {
		return headroom
	}
	return reward
}

// Apply advances currentSupply by EmitAt(round, currentSupply) and
// returns the new supply alongside the amount actually emitted, using
// saturating addition so a pathological overflow still honors the cap
// rather than wrapping.
func (s Schedule) Apply(round uint64, currentSupply *big.Int) (newSupply, emitted *big.Int) {
	emitted = s.EmitAt(round, currentSupply)
	newSupply = amount.SaturatingAdd(currentSupply, emitted)
	return newSupply, emitted
}
