package fees

import (
	"math/big"
	"testing"

	"github.com/dmrl789/IPPAN-sub004/config"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.LocalConfig
	cfg.FeeCaps = map[config.TxKind]*big.Int{
		config.TxTransfer:        big.NewInt(1_000),
		config.TxAiCall:          big.NewInt(100),
		config.TxContractDeploy:  big.NewInt(100_000),
		config.TxContractCall:    big.NewInt(10_000),
		config.TxGovernance:      big.NewInt(10_000),
		config.TxValidatorAction: big.NewInt(10_000),
	}
	cfg.FeeRecycleIntervalRounds = 50
	cfg.FeeRecycleBps = 10_000
	return &cfg
}

// S5 — Fee cap and recycling.
func TestTransferFeeOverCapRejected(t *testing.T) {
	c := NewCollector(testConfig())
	require.True(t, c.Accepts(config.TxTransfer, big.NewInt(1_000)))
	require.False(t, c.Accepts(config.TxTransfer, big.NewInt(1_001)))
	require.False(t, c.Accepts(config.TxAiCall, big.NewInt(101)))
}

func TestRecycleMovesExactFractionAtBoundary(t *testing.T) {
	c := NewCollector(testConfig())
	c.Collect(big.NewInt(7_500))

	require.Equal(t, big.NewInt(0), c.MaybeRecycle(49))
	require.Equal(t, big.NewInt(7_500), c.Accumulated())

	recycled := c.MaybeRecycle(50)
	require.Equal(t, big.NewInt(7_500), recycled)
	require.Equal(t, big.NewInt(0), c.Accumulated())
	require.Equal(t, big.NewInt(7_500), c.TotalRecycled())
}

func TestTotalCollectedAlwaysAtLeastTotalRecycled(t *testing.T) {
	c := NewCollector(testConfig())
	c.Collect(big.NewInt(100))
	c.Collect(big.NewInt(200))
	c.MaybeRecycle(50)
	require.True(t, c.TotalCollected().Cmp(c.TotalRecycled()) >= 0)
}

func TestClassifyTopicDefaultsToTransfer(t *testing.T) {
	require.Equal(t, config.TxAiCall, ClassifyTopic("inference"))
	require.Equal(t, config.TxTransfer, ClassifyTopic("unknown-topic"))
}
