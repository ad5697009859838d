package features

import (
	"math/big"
	"testing"

	"github.com/dmrl789/IPPAN-sub004/fixedpoint"
	"github.com/stretchr/testify/require"
)

func TestExtractProducesCanonicalArity(t *testing.T) {
	vec := Extract(Telemetry{})
	require.Len(t, vec, Arity)
	require.Equal(t, 7, Arity)
}

func TestExtractClampsIntoUnitRange(t *testing.T) {
	t2 := Telemetry{
		UptimePct:         fixedpoint.FromInt(500), // absurd input, must clamp
		RecentPerformance: fixedpoint.FromInt(5),
		NetworkContrib:    fixedpoint.FromInt(-5),
		Stake:             big.NewInt(-1),
	}
	vec := Extract(t2)
	require.Equal(t, fixedpoint.One, vec[FeatureUptime])
	require.Equal(t, fixedpoint.One, vec[FeatureRecentPerformance])
	require.Equal(t, fixedpoint.Scalar(0), vec[FeatureNetworkContribution])
	require.Equal(t, fixedpoint.Scalar(0), vec[FeatureStake])
}

func TestLatencyInverseMonotonic(t *testing.T) {
	fast := latencyInverse(1_000)
	slow := latencyInverse(1_000_000)
	require.True(t, fast > slow)
	require.Equal(t, fixedpoint.Scalar(0), latencyInverse(maxLatencyUs))
}

func TestSlashPenaltyDecaysAndFloors(t *testing.T) {
	require.Equal(t, fixedpoint.One, slashPenalty(0))
	require.True(t, slashPenalty(1) < slashPenalty(0))
	require.Equal(t, fixedpoint.Scalar(0), slashPenalty(10))
}

func TestFeatureOrderMatchesSpec(t *testing.T) {
	require.Equal(t, 0, FeatureUptime)
	require.Equal(t, 1, FeatureLatencyInverse)
	require.Equal(t, 2, FeatureSlashPenalty)
	require.Equal(t, 3, FeatureStake)
	require.Equal(t, 4, FeatureRecentPerformance)
	require.Equal(t, 5, FeatureNetworkContribution)
	require.Equal(t, 6, FeatureAge)
}
