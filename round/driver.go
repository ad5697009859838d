package round

import (
	"errors"
	"math/big"

	"go.uber.org/zap"

	"github.com/dmrl789/IPPAN-sub004/dag"
	"github.com/dmrl789/IPPAN-sub004/hashtimer"
	"github.com/dmrl789/IPPAN-sub004/ids"
	"github.com/dmrl789/IPPAN-sub004/reward"
	"github.com/dmrl789/IPPAN-sub004/selection"
)

// ErrWrongState is returned when a phase method is called out of turn.
var ErrWrongState = errors.New("round: method called in the wrong pipeline state")

// FormResult is what the Forming phase produces: the round's seed and
// median time, plus the flagged (skew-violating) samples.
type FormResult struct {
	Seed      [32]byte
	MedianUs  int64
	Flagged   []ids.ID
}

// Form runs the Forming phase of spec.md §4.7: aggregate time samples
// into τ(r), derive σ(r), and record a skew miss against every flagged
// validator.
func (d *Driver) Form(samples []hashtimer.Sample) (FormResult, error) {
	if d.state != StateForming {
		return FormResult{}, ErrWrongState
	}
	med, err := hashtimer.Median(samples, d.ctx.Config.MinTimeSamples, d.ctx.Config.MaxClockSkewUs)
	if err != nil {
		d.state = d.state.next()
		d.recordMiss(d.currentRound, "", "insufficient_time_samples")
		return FormResult{}, err
	}
	for _, v := range med.Flagged {
		d.ledger.OnSkewedTelemetry(v)
		d.recordMiss(d.currentRound, v.String(), "telemetry_skew")
	}
	seed := hashtimer.DeriveSeed(d.currentRound)
	d.state = d.state.next()
	return FormResult{Seed: seed, MedianUs: med.MedianUs, Flagged: med.Flagged}, nil
}

// Admit runs the Admitting phase: select the verifier set from
// candidates (already-scored, per spec.md §4.5), and admit a proposed
// block if the primary produced one. If block is nil (the primary
// timed out), a miss is recorded against the primary and the pipeline
// still advances — spec.md §4.7: "record a miss ... transition forward".
func (d *Driver) Admit(candidates []selection.Candidate, seed [32]byte, medianUs int64, block *dag.Block, lastNonce map[ids.ID]uint64) (selection.Result, error) {
	if d.state != StateAdmitting {
		return selection.Result{}, ErrWrongState
	}
	res, err := selection.Select(candidates, seed, d.ctx.Config.ValidatorsPerRound)
	if err != nil {
		d.state = StateClosed
		return selection.Result{}, err
	}

	if block == nil {
		d.ledger.OnMissedPrimaryDuty(res.Primary)
		d.recordMiss(d.currentRound, res.Primary.String(), "missed_primary_duty")
		if d.ctx.Metrics != nil {
			d.ctx.Metrics.SelectionMisses.Inc()
		}
		d.state = d.state.next()
		return res, nil
	}

	ctx := dag.AdmissionContext{
		Round:        d.currentRound,
		Primary:      res.Primary,
		Shadows:      res.Shadows,
		MedianTimeUs: medianUs,
		SkewUs:       d.ctx.Config.MaxClockSkewUs,
		FeeCaps:      d.fees.Caps,
		Quorum:       dag.Quorum(len(res.Shadows)),
		Verifier:     d.ctx.Crypto,
	}
	if err := d.store.Admit(block, ctx, lastNonce); err != nil {
		d.ledger.OnInvalidBlock(res.Primary)
		d.recordMiss(d.currentRound, res.Primary.String(), "invalid_block")
		d.state = d.state.next()
		return res, err
	}

	for _, tx := range block.Transactions {
		d.fees.Collect(tx.Fee)
	}
	d.store.Insert(block)
	d.ledger.OnAdmittedBlock(res.Primary)
	for signer := range block.VerifierSignatures {
		d.ledger.OnQuorumParticipation(signer)
	}
	if d.ctx.Metrics != nil {
		d.ctx.Metrics.BlocksAdmitted.Inc()
	}
	d.state = d.state.next()
	return res, nil
}

// Verify runs the Verifying phase. In this codebase verifier signature
// collection and quorum checking already happened as part of Admit (the
// Block passed to Admit carries its full VerifierSignatures set); Verify
// exists as its own pipeline state per spec.md §4.7 and runs after Admit,
// so it neither collects nor counts signatures. It is a pass-through that
// advances the state machine.
func (d *Driver) Verify() error {
	if d.state != StateVerifying {
		return ErrWrongState
	}
	d.state = d.state.next()
	return nil
}

// FinalizeResult is what the Finalizing phase produces.
type FinalizeResult struct {
	Record dag.FinalizationRecord
	Split  reward.Split
	Emitted *big.Int
}

// Finalize runs the Finalizing phase: collect admitted blocks into a
// total order, emit the round's reward, distribute it, and recycle fees
// if the interval has elapsed. Who earns the proposer share of the split
// is identified by the caller via res.Primary from the round's Admit
// call — spec.md's Non-goals exclude wallet/balance crediting, so
// Finalize itself has no use for the proposer's identity.
func (d *Driver) Finalize(cert [32]byte, medianUs int64, verifiedBy []ids.ID) (FinalizeResult, error) {
	if d.state != StateFinalizing {
		return FinalizeResult{}, ErrWrongState
	}
	record := d.store.Finalize(d.currentRound, cert, medianUs)

	newSupply, emitted := d.schedule.Apply(d.currentRound, d.currentSupply)
	d.currentSupply = newSupply

	split := reward.Distribute(emitted, d.ctx.Config.ProposerBps, d.ctx.Config.VerifierBps, d.ctx.Config.TreasuryBps, verifiedBy)
	recycled := d.fees.MaybeRecycle(d.currentRound)

	if d.ctx.Log != nil {
		d.ctx.Log.Info("round: finalized",
			zap.Uint64("round", d.currentRound),
			zap.Int("blocks", len(record.OrderedIDs)),
		)
	}
	if d.ctx.Metrics != nil {
		d.ctx.Metrics.BlocksFinalized.Add(float64(len(record.OrderedIDs)))
		if recycled.Sign() > 0 {
			d.ctx.Metrics.FeesRecycled.Add(bigIntToFloat(recycled))
		}
	}

	d.state = d.state.next()
	return FinalizeResult{Record: record, Split: split, Emitted: emitted}, nil
}

// Close advances the pipeline to the next round, resetting state to
// Forming for the new round number.
func (d *Driver) Close() uint64 {
	d.currentRound++
	d.state = StateForming
	return d.currentRound
}

// CurrentSupply returns the emission supply issued so far.
func (d *Driver) CurrentSupply() *big.Int {
	return new(big.Int).Set(d.currentSupply)
}

// bigIntToFloat converts an atomic-unit amount to a float64 for metrics
// export only; prometheus counters are float64-valued and this is never
// used on a path that feeds back into consensus state.
func bigIntToFloat(v *big.Int) float64 {
	f := new(big.Float).SetInt(v)
	out, _ := f.Float64()
	return out
}
