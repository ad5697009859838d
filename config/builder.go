package config

import (
	"math/big"
	"time"
)

// Builder provides a fluent interface for constructing a Config, in the
// style of the teacher's config.Builder.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder seeded with sensible defaults matching
// LocalConfig.
func NewBuilder() *Builder {
	cfg := LocalConfig
	return &Builder{cfg: cfg}
}

// FromPreset resets the builder to one of the named presets.
func (b *Builder) FromPreset(preset Config) *Builder {
	b.cfg = preset
	return b
}

// WithValidatorsPerRound sets K (primary + shadows).
func (b *Builder) WithValidatorsPerRound(k int) *Builder {
	b.cfg.ValidatorsPerRound = k
	return b
}

// WithStakeRequirements sets the minimum bond and minimum reputation for
// selection eligibility. Amounts are atomic units (spec.md §3).
func (b *Builder) WithStakeRequirements(minStake, minBond int64, minReputation int32) *Builder {
	b.cfg.MinValidatorStake = big.NewInt(minStake)
	b.cfg.MinValidatorBond = big.NewInt(minBond)
	b.cfg.MinReputation = minReputation
	return b
}

// WithFeeCap sets the cap for one TxKind, in atomic units.
func (b *Builder) WithFeeCap(kind TxKind, cap int64) *Builder {
	if b.cfg.FeeCaps == nil {
		b.cfg.FeeCaps = make(map[TxKind]*big.Int, len(AllTxKinds))
	}
	b.cfg.FeeCaps[kind] = big.NewInt(cap)
	return b
}

// WithRecycling sets the fee recycling interval and basis-point fraction.
func (b *Builder) WithRecycling(intervalRounds uint64, bps uint16) *Builder {
	b.cfg.FeeRecycleIntervalRounds = intervalRounds
	b.cfg.FeeRecycleBps = bps
	return b
}

// WithEmission sets the emission schedule. Amounts are atomic units.
func (b *Builder) WithEmission(initialReward int64, halvingInterval uint64, supplyCap int64) *Builder {
	b.cfg.InitialReward = big.NewInt(initialReward)
	b.cfg.HalvingInterval = halvingInterval
	b.cfg.SupplyCap = big.NewInt(supplyCap)
	return b
}

// WithDistribution sets the proposer/verifier/treasury basis-point split.
func (b *Builder) WithDistribution(proposerBps, verifierBps, treasuryBps uint16) *Builder {
	b.cfg.ProposerBps = proposerBps
	b.cfg.VerifierBps = verifierBps
	b.cfg.TreasuryBps = treasuryBps
	return b
}

// WithTimeouts sets the round-pipeline timeouts.
func (b *Builder) WithTimeouts(tAdmit, tVerify time.Duration, maxSkewUs int64, minSamples int) *Builder {
	b.cfg.TAdmit = tAdmit
	b.cfg.TVerify = tVerify
	b.cfg.MaxClockSkewUs = maxSkewUs
	b.cfg.MinTimeSamples = minSamples
	return b
}

// Build returns the constructed Config, or an error if it fails Valid().
func (b *Builder) Build() (*Config, error) {
	cfg := b.cfg
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
