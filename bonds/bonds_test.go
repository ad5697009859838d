package bonds

import (
	"math/big"
	"testing"

	"github.com/dmrl789/IPPAN-sub004/config"
	"github.com/dmrl789/IPPAN-sub004/ids"
	"github.com/stretchr/testify/require"
)

func testLedger() *Ledger {
	return NewLedger(config.ReputationDeltas{
		Propose: 50, Verify: 10, MissProp: 100, MissVer: 20, Invalid: 500, Skew: 5,
	}, config.SlashingBps{DoubleSign: 5_000, InvalidBlock: 1_000, ExtendedOffline: 100}, big.NewInt(1))
}

func TestPostRejectsBondBelowMinimum(t *testing.T) {
	l := testLedger()
	v := ids.GenerateTestID('V')
	require.ErrorIs(t, l.Post(v, big.NewInt(0)), ErrBondBelowMinimum)
	_, ok := l.Bond(v)
	require.False(t, ok)
}

// S7 — Slashing and bond lifecycle.
func TestDoubleSignSlashHalvesBondAndExcludesFromSelection(t *testing.T) {
	l := testLedger()
	v := ids.GenerateTestID('V')
	bondAmt := big.NewInt(1_000)
	require.NoError(t, l.Post(v, bondAmt))

	require.NoError(t, l.Slash(v, 10, ReasonDoubleSign))

	b, ok := l.Bond(v)
	require.True(t, ok)
	require.Equal(t, StatusSlashed, b.Status)
	require.Equal(t, big.NewInt(500), b.Amount)

	candidates := l.EligibleCandidates(0)
	require.NotContains(t, candidates, v)
}

func TestSlashIsIdempotentPerNodeRoundReason(t *testing.T) {
	l := testLedger()
	v := ids.GenerateTestID('V')
	require.NoError(t, l.Post(v, big.NewInt(1_000)))

	require.NoError(t, l.Slash(v, 10, ReasonDoubleSign))
	first, _ := l.Bond(v)

	require.NoError(t, l.Slash(v, 10, ReasonDoubleSign))
	second, _ := l.Bond(v)
	require.Equal(t, first.Amount, second.Amount)
}

func TestSlashNeverProducesNegativeAmount(t *testing.T) {
	l := testLedger()
	v := ids.GenerateTestID('V')
	require.NoError(t, l.Post(v, big.NewInt(1)))
	require.NoError(t, l.Slash(v, 1, ReasonDoubleSign))
	b, _ := l.Bond(v)
	require.True(t, b.Amount.Sign() >= 0)
}

func TestReputationClampedToRange(t *testing.T) {
	l := testLedger()
	v := ids.GenerateTestID('V')
	require.NoError(t, l.Post(v, big.NewInt(1)))

	for i := 0; i < 1_000; i++ {
		l.OnAdmittedBlock(v)
	}
	require.Equal(t, Reputation(ReputationMax), l.Reputation(v))

	for i := 0; i < 1_000; i++ {
		l.OnInvalidBlock(v)
	}
	require.Equal(t, Reputation(0), l.Reputation(v))
}

func TestUnstakingLockEnforced(t *testing.T) {
	l := testLedger()
	v := ids.GenerateTestID('V')
	require.NoError(t, l.Post(v, big.NewInt(100)))
	require.NoError(t, l.BeginUnstaking(v, 20))

	require.ErrorIs(t, l.Release(v, 19), ErrStillLocked)
	require.NoError(t, l.Release(v, 20))

	b, _ := l.Bond(v)
	require.Equal(t, StatusReleased, b.Status)
}

func TestEligibleCandidatesExcludesBelowMinReputation(t *testing.T) {
	l := testLedger()
	v := ids.GenerateTestID('V')
	require.NoError(t, l.Post(v, big.NewInt(100)))
	for i := 0; i < 200; i++ {
		l.OnInvalidBlock(v)
	}
	require.NotContains(t, l.EligibleCandidates(5_000), v)
}
