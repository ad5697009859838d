package config

import (
	"math/big"
	"time"
)

func atomic(whole int64) *big.Int {
	// 1 IPN = 1e24 atomic units.
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil)
	return new(big.Int).Mul(big.NewInt(whole), scale)
}

func microIPN(units int64) *big.Int {
	// µIPN = 1e-6 IPN = 1e18 atomic units; fee caps are denominated in µIPN
	// in the original source (crates/consensus/src/fees.rs).
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	return new(big.Int).Mul(big.NewInt(units), scale)
}

func defaultFeeCaps() map[TxKind]*big.Int {
	return map[TxKind]*big.Int{
		TxTransfer:        microIPN(1_000),
		TxAiCall:          microIPN(100),
		TxContractDeploy:  microIPN(100_000),
		TxContractCall:    microIPN(10_000),
		TxGovernance:      microIPN(10_000),
		TxValidatorAction: microIPN(10_000),
	}
}

func defaultReputationDeltas() ReputationDeltas {
	return ReputationDeltas{
		Propose:  50,
		Verify:   10,
		MissProp: 100,
		MissVer:  20,
		Invalid:  500,
		Skew:     5,
	}
}

func defaultSlashingBps() SlashingBps {
	return SlashingBps{
		DoubleSign:      5_000,
		InvalidBlock:    1_000,
		ExtendedOffline: 100,
	}
}

// SupplyCap21M is 21,000,000 whole IPN expressed in atomic units
// (1 IPN = 1e24 atomic units), the hard cap from spec.md §3.
var SupplyCap21M = atomic(21_000_000)

// MainnetConfig is the production preset.
var MainnetConfig = Config{
	ValidatorsPerRound:       21,
	MinValidatorStake:        atomic(1_000),
	MinReputation:            2_000,
	UnstakingLockRounds:      20_160, // ~2 weeks at 1 round/min
	MinValidatorBond:         atomic(10_000),
	EnableSlashing:           true,
	FeeCaps:                  defaultFeeCaps(),
	FeeRecycleIntervalRounds: 1_440, // ~daily
	FeeRecycleBps:            5_000, // 50%
	InitialReward:            atomic(50),
	HalvingInterval:          2_102_400, // ~4 years at 1 round/min
	SupplyCap:                SupplyCap21M,
	ProposerBps:              4_000,
	VerifierBps:              4_500,
	TreasuryBps:              1_500,
	TAdmit:                   2 * time.Second,
	TVerify:                  3 * time.Second,
	MaxClockSkewUs:           5_000,
	MinTimeSamples:           3,
	ReputationDeltas:         defaultReputationDeltas(),
	SlashingBps:              defaultSlashingBps(),
	ModelReloadPoll:          30 * time.Second,
}

// TestnetConfig loosens stake/lock requirements for public test networks.
var TestnetConfig = Config{
	ValidatorsPerRound:       11,
	MinValidatorStake:        atomic(10),
	MinReputation:            1_000,
	UnstakingLockRounds:      1_440,
	MinValidatorBond:         atomic(100),
	EnableSlashing:           true,
	FeeCaps:                  defaultFeeCaps(),
	FeeRecycleIntervalRounds: 100,
	FeeRecycleBps:            5_000,
	InitialReward:            atomic(50),
	HalvingInterval:          100_000,
	SupplyCap:                SupplyCap21M,
	ProposerBps:              4_000,
	VerifierBps:              4_500,
	TreasuryBps:              1_500,
	TAdmit:                   2 * time.Second,
	TVerify:                  3 * time.Second,
	MaxClockSkewUs:           10_000,
	MinTimeSamples:           2,
	ReputationDeltas:         defaultReputationDeltas(),
	SlashingBps:              defaultSlashingBps(),
	ModelReloadPoll:          10 * time.Second,
}

// LocalConfig is tuned for fast single-process development loops.
var LocalConfig = Config{
	ValidatorsPerRound:       4,
	MinValidatorStake:        big.NewInt(0),
	MinReputation:            0,
	UnstakingLockRounds:      5,
	MinValidatorBond:         atomic(1),
	EnableSlashing:           false,
	FeeCaps:                  defaultFeeCaps(),
	FeeRecycleIntervalRounds: 10,
	FeeRecycleBps:            10_000,
	InitialReward:            atomic(50),
	HalvingInterval:          1_000,
	SupplyCap:                SupplyCap21M,
	ProposerBps:              4_000,
	VerifierBps:              4_500,
	TreasuryBps:              1_500,
	TAdmit:                   200 * time.Millisecond,
	TVerify:                  200 * time.Millisecond,
	MaxClockSkewUs:           50_000,
	MinTimeSamples:           1,
	ReputationDeltas:         defaultReputationDeltas(),
	SlashingBps:              defaultSlashingBps(),
	ModelReloadPoll:          time.Second,
}
