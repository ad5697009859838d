package emission

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// S6 — Emission halving and cap.
func TestHalvingScheduleMatchesScenario(t *testing.T) {
	s := Schedule{
		InitialReward:   big.NewInt(10_000),
		HalvingInterval: 4,
		SupplyCap:       big.NewInt(100_000),
	}
	supply := big.NewInt(0)
	want := []int64{10_000, 10_000, 10_000, 10_000, 5_000, 5_000, 5_000, 5_000}
	cumulative := big.NewInt(0)
	for round := uint64(0); round < 8; round++ {
		var emitted *big.Int
		supply, emitted = s.Apply(round, supply)
		require.Equal(t, big.NewInt(want[round]), emitted, "round %d", round)
		cumulative.Add(cumulative, emitted)
	}
	require.Equal(t, big.NewInt(60_000), cumulative)
}

func TestSupplyNeverExceedsCap(t *testing.T) {
	s := Schedule{
		InitialReward:   big.NewInt(10_000),
		HalvingInterval: 4,
		SupplyCap:       big.NewInt(100_000),
	}
	supply := big.NewInt(0)
	for round := uint64(0); round < 40; round++ {
		supply, _ = s.Apply(round, supply)
		require.True(t, supply.Cmp(s.SupplyCap) <= 0)
	}
	require.Equal(t, s.SupplyCap, supply)

	// Once at the cap, further emission is zero.
	_, emitted := s.Apply(40, supply)
	require.Equal(t, big.NewInt(0), emitted)
}

func TestEmitAtClampsToHeadroom(t *testing.T) {
	s := Schedule{InitialReward: big.NewInt(10_000), HalvingInterval: 1_000_000, SupplyCap: big.NewInt(100_000)}
	emitted := s.EmitAt(0, big.NewInt(95_000))
	require.Equal(t, big.NewInt(5_000), emitted)
}
