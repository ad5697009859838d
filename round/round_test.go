package round

import (
	"math/big"
	"testing"

	"github.com/dmrl789/IPPAN-sub004/config"
	"github.com/dmrl789/IPPAN-sub004/dag"
	"github.com/dmrl789/IPPAN-sub004/fixedpoint"
	"github.com/dmrl789/IPPAN-sub004/hashtimer"
	"github.com/dmrl789/IPPAN-sub004/ids"
	"github.com/dmrl789/IPPAN-sub004/selection"
	"github.com/stretchr/testify/require"
)

func testDriver(t *testing.T) *Driver {
	t.Helper()
	cfg, err := config.NewBuilder().WithValidatorsPerRound(1).Build()
	require.NoError(t, err)
	return NewDriver(&Context{Config: cfg}, big.NewInt(0))
}

func seedGenesis(t *testing.T, d *Driver) [32]byte {
	t.Helper()
	g := &dag.Block{
		ParentIDs:  []ids.ID{ids.Empty},
		HashTimer:  hashtimer.Timer{Round: 0},
		ProposerID: ids.GenerateTestID('G'),
	}
	return d.Store().Insert(g)
}

// TestRoundPipelineHappyPath drives Form -> Admit -> Verify -> Finalize ->
// Close for a single-validator round and checks every state transition and
// that the emitted reward lands in CurrentSupply.
func TestRoundPipelineHappyPath(t *testing.T) {
	d := testDriver(t)
	genesis := seedGenesis(t, d)
	require.Equal(t, StateForming, d.State())

	primary := ids.GenerateTestID('A')
	samples := []hashtimer.Sample{{NodeID: primary, LocalTimeUs: 1_000}}

	form, err := d.Form(samples)
	require.NoError(t, err)
	require.Equal(t, StateAdmitting, d.State())
	require.Empty(t, form.Flagged)

	block := &dag.Block{
		ParentIDs:  []ids.ID{ids.ID(genesis)},
		HashTimer:  hashtimer.Timer{Round: d.Round(), IppanTimeUs: form.MedianUs},
		ProposerID: primary,
	}
	candidates := []selection.Candidate{{NodeID: primary, Score: fixedpoint.One}}
	res, err := d.Admit(candidates, form.Seed, form.MedianUs, block, nil)
	require.NoError(t, err)
	require.Equal(t, primary, res.Primary)
	require.Equal(t, StateVerifying, d.State())

	require.NoError(t, d.Verify())
	require.Equal(t, StateFinalizing, d.State())

	before := d.CurrentSupply()
	finalRes, err := d.Finalize([32]byte{0xAA}, form.MedianUs, nil)
	require.NoError(t, err)
	require.Equal(t, StateClosed, d.State())
	require.Equal(t, -1, before.Cmp(d.CurrentSupply()))
	require.Equal(t, 0, finalRes.Emitted.Cmp(finalRes.Split.Sum()))

	next := d.Close()
	require.Equal(t, uint64(1), next)
	require.Equal(t, StateForming, d.State())
}

func TestRoundRejectsCallOutOfTurn(t *testing.T) {
	d := testDriver(t)
	_, err := d.Admit(nil, [32]byte{}, 0, nil, nil)
	require.ErrorIs(t, err, ErrWrongState)
	require.ErrorIs(t, d.Verify(), ErrWrongState)
	require.Equal(t, StateForming, d.State())
}

func TestRoundRecordsMissedPrimaryDuty(t *testing.T) {
	d := testDriver(t)
	seedGenesis(t, d)
	primary := ids.GenerateTestID('A')
	form, err := d.Form([]hashtimer.Sample{{NodeID: primary, LocalTimeUs: 1_000}})
	require.NoError(t, err)

	candidates := []selection.Candidate{{NodeID: primary, Score: fixedpoint.One}}
	res, err := d.Admit(candidates, form.Seed, form.MedianUs, nil, nil)
	require.NoError(t, err)
	require.Equal(t, primary, res.Primary)
	require.Equal(t, StateVerifying, d.State())

	misses := d.Misses(d.Round())
	require.Len(t, misses, 1)
	require.Equal(t, "missed_primary_duty", misses[0].Reason)
}

func TestRoundRecordsInvalidBlockMiss(t *testing.T) {
	d := testDriver(t)
	genesis := seedGenesis(t, d)
	primary := ids.GenerateTestID('A')
	form, err := d.Form([]hashtimer.Sample{{NodeID: primary, LocalTimeUs: 1_000}})
	require.NoError(t, err)

	badBlock := &dag.Block{
		ParentIDs:  []ids.ID{ids.ID(genesis)},
		HashTimer:  hashtimer.Timer{Round: d.Round(), IppanTimeUs: form.MedianUs},
		ProposerID: ids.GenerateTestID('X'), // not the selected primary
	}
	candidates := []selection.Candidate{{NodeID: primary, Score: fixedpoint.One}}
	res, err := d.Admit(candidates, form.Seed, form.MedianUs, badBlock, nil)
	require.ErrorIs(t, err, dag.ErrWrongProposer)
	require.Equal(t, primary, res.Primary)
	require.Equal(t, StateVerifying, d.State())

	misses := d.Misses(d.Round())
	require.Len(t, misses, 1)
	require.Equal(t, "invalid_block", misses[0].Reason)
}

func TestRoundFormRecordsSkewMiss(t *testing.T) {
	d := testDriver(t)
	a := ids.GenerateTestID('A')
	b := ids.GenerateTestID('B')
	samples := []hashtimer.Sample{
		{NodeID: a, LocalTimeUs: 1_000},
		{NodeID: b, LocalTimeUs: 1_000_000},
	}
	form, err := d.Form(samples)
	require.NoError(t, err)
	require.NotEmpty(t, form.Flagged)

	misses := d.Misses(d.Round())
	require.NotEmpty(t, misses)
}
