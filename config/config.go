// Package config holds the enumerated consensus configuration (spec.md §6)
// as a flat, JSON-tagged struct, in the style of the teacher's config.Config
// and parameters.params: a plain value object plus a fluent Builder and a
// Valid() error check.
package config

import (
	"errors"
	"fmt"
	"math/big"
	"time"
)

// Sentinel validation errors, in the style of parameters.go's ErrInvalidK.
var (
	ErrInvalidValidatorsPerRound = errors.New("config: validators_per_round must be positive")
	ErrInvalidStakeOrReputation  = errors.New("config: min_validator_stake and min_reputation must be non-negative")
	ErrInvalidUnstakingLock      = errors.New("config: unstaking_lock_rounds must be positive")
	ErrInvalidFeeCap             = errors.New("config: every TxKind must have a positive fee cap")
	ErrInvalidRecycle            = errors.New("config: fee_recycle_interval_rounds must be positive and fee_recycle_bps in [0,10000]")
	ErrInvalidEmission           = errors.New("config: initial_reward, halving_interval, and supply_cap must be positive")
	ErrInvalidDistributionBps    = errors.New("config: p_bps + v_bps + t_bps must equal 10000")
	ErrInvalidTimeouts           = errors.New("config: T_admit, T_verify, max_clock_skew_µs, and min_time_samples must be positive")
)

// TxKind enumerates the transaction kinds the fee cap table is keyed by.
type TxKind string

const (
	TxTransfer        TxKind = "transfer"
	TxAiCall          TxKind = "ai_call"
	TxContractDeploy  TxKind = "contract_deploy"
	TxContractCall    TxKind = "contract_call"
	TxGovernance      TxKind = "governance"
	TxValidatorAction TxKind = "validator"
)

// AllTxKinds lists every TxKind, for validating a fee cap table is complete.
var AllTxKinds = []TxKind{TxTransfer, TxAiCall, TxContractDeploy, TxContractCall, TxGovernance, TxValidatorAction}

// ReputationDeltas holds the Δ constants of spec.md §4.8.
type ReputationDeltas struct {
	Propose  int32 `json:"propose"`
	Verify   int32 `json:"verify"`
	MissProp int32 `json:"missProp"`
	MissVer  int32 `json:"missVer"`
	Invalid  int32 `json:"invalid"`
	Skew     int32 `json:"skew"`
}

// SlashingBps holds the slashing basis-point table of spec.md §4.8.
type SlashingBps struct {
	DoubleSign      uint32 `json:"doubleSign"`
	InvalidBlock    uint32 `json:"invalidBlock"`
	ExtendedOffline uint32 `json:"extendedOffline"`
}

// Config holds every configuration item enumerated in spec.md §6.
type Config struct {
	// Selection.
	ValidatorsPerRound  int      `json:"validatorsPerRound"`
	MinValidatorStake   *big.Int `json:"minValidatorStake"`
	MinReputation       int32    `json:"minReputation"`
	UnstakingLockRounds uint64   `json:"unstakingLockRounds"`
	MinValidatorBond    *big.Int `json:"minValidatorBond"`
	EnableSlashing      bool     `json:"enableSlashing"`

	// Fees.
	FeeCaps                  map[TxKind]*big.Int `json:"feeCaps"`
	FeeRecycleIntervalRounds uint64              `json:"feeRecycleIntervalRounds"`
	FeeRecycleBps            uint16              `json:"feeRecycleBps"`

	// Emission.
	InitialReward   *big.Int `json:"initialReward"`
	HalvingInterval uint64   `json:"halvingInterval"`
	SupplyCap       *big.Int `json:"supplyCap"`

	// Distribution.
	ProposerBps uint16 `json:"proposerBps"`
	VerifierBps uint16 `json:"verifierBps"`
	TreasuryBps uint16 `json:"treasuryBps"`

	// Timeouts.
	TAdmit        time.Duration `json:"tAdmit"`
	TVerify       time.Duration `json:"tVerify"`
	MaxClockSkewUs int64        `json:"maxClockSkewUs"`
	MinTimeSamples int          `json:"minTimeSamples"`

	// Reputation.
	ReputationDeltas ReputationDeltas `json:"reputationDeltas"`
	SlashingBps      SlashingBps      `json:"slashingBps"`

	// Model hot-reload.
	ValidatorModelPath string        `json:"validatorModelPath,omitempty"`
	FeeModelPath       string        `json:"feeModelPath,omitempty"`
	HealthModelPath    string        `json:"healthModelPath,omitempty"`
	OrderingModelPath  string        `json:"orderingModelPath,omitempty"`
	ModelReloadPoll    time.Duration `json:"modelReloadPoll,omitempty"`
}

// Valid checks every invariant the components built on top of Config
// assume; it never mutates Config and never panics.
func (c *Config) Valid() error {
	if c.ValidatorsPerRound <= 0 {
		return ErrInvalidValidatorsPerRound
	}
	if c.MinValidatorStake == nil || c.MinValidatorStake.Sign() < 0 || c.MinReputation < 0 {
		return ErrInvalidStakeOrReputation
	}
	if c.UnstakingLockRounds == 0 {
		return ErrInvalidUnstakingLock
	}
	if len(c.FeeCaps) < len(AllTxKinds) {
		return ErrInvalidFeeCap
	}
	for _, k := range AllTxKinds {
		cap, ok := c.FeeCaps[k]
		if !ok || cap == nil || cap.Sign() <= 0 {
			return fmt.Errorf("%w: missing or non-positive cap for %s", ErrInvalidFeeCap, k)
		}
	}
	if c.FeeRecycleIntervalRounds == 0 || c.FeeRecycleBps > 10_000 {
		return ErrInvalidRecycle
	}
	if c.InitialReward == nil || c.InitialReward.Sign() <= 0 || c.HalvingInterval == 0 ||
		c.SupplyCap == nil || c.SupplyCap.Sign() <= 0 {
		return ErrInvalidEmission
	}
	if uint32(c.ProposerBps)+uint32(c.VerifierBps)+uint32(c.TreasuryBps) != 10_000 {
		return ErrInvalidDistributionBps
	}
	if c.TAdmit <= 0 || c.TVerify <= 0 || c.MaxClockSkewUs <= 0 || c.MinTimeSamples <= 0 {
		return ErrInvalidTimeouts
	}
	return nil
}
