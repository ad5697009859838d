package dag

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/dmrl789/IPPAN-sub004/collab"
	"github.com/dmrl789/IPPAN-sub004/config"
	"github.com/dmrl789/IPPAN-sub004/ids"
)

// Admission errors, per spec.md §4.6's bulleted check list.
var (
	ErrWrongProposer               = errors.New("dag: proposer does not match selected primary")
	ErrUnknownParent               = errors.New("dag: parent block is not known to the DAG")
	ErrParentRoundTooHigh          = errors.New("dag: parent round exceeds block round")
	ErrParentCount                 = errors.New("dag: parent count out of [1, MaxParents] range")
	ErrRoundMismatch               = errors.New("dag: hashtimer round does not match the admitting round")
	ErrOutsideSkew                 = errors.New("dag: hashtimer time is outside the round's skew window")
	ErrFeeOutOfRange               = errors.New("dag: transaction fee is zero or exceeds its kind's cap")
	ErrNonceNotIncreasing          = errors.New("dag: transaction nonce is not strictly increasing for its sender")
	ErrQuorumNotMet                = errors.New("dag: verifier signature count does not meet quorum")
	ErrConfidentialBindingMismatch = errors.New("dag: confidential proof's public inputs do not bind the transaction digest and commitments")
)

// AdmissionContext carries the per-round facts Admit checks a candidate
// block against (spec.md §4.6).
type AdmissionContext struct {
	Round        uint64
	Primary      ids.ID
	Shadows      []ids.ID
	MedianTimeUs int64
	SkewUs       int64
	FeeCaps      map[config.TxKind]*big.Int
	Quorum       int // q = ceil(2(k-1)/3)

	// Verifier checks each verifier_signature against the block's own
	// id before it counts toward Quorum; a node id doubles as its
	// public key (spec.md §6.13, §6's Crypto.verify_signature). Nil
	// skips verification and falls back to counting signatures present,
	// for callers (tests, local dev) that don't wire a Crypto adapter.
	Verifier collab.Crypto
}

// Quorum computes q = ceil(2(k-1)/3) for k = 1 primary + (k-1) shadows,
// per spec.md §4.6.
func Quorum(shadowCount int) int {
	return (2*shadowCount + 2) / 3
}

// Admit runs every check spec.md §4.6 lists, against the caller-tracked
// latest nonce per sender (lastNonce), and returns the first violated
// invariant as an error. It does not mutate the store; call Store.Insert
// once Admit succeeds.
func (s *Store) Admit(b *Block, ctx AdmissionContext, lastNonce map[ids.ID]uint64) error {
	if b.ProposerID != ctx.Primary {
		return ErrWrongProposer
	}
	if len(b.ParentIDs) < 1 || len(b.ParentIDs) > MaxParents {
		return ErrParentCount
	}
	for _, p := range b.ParentIDs {
		parent, ok := s.Get([32]byte(p))
		if !ok {
			return fmt.Errorf("%w: %x", ErrUnknownParent, p)
		}
		if parent.HashTimer.Round > ctx.Round {
			return ErrParentRoundTooHigh
		}
	}
	if b.HashTimer.Round != ctx.Round {
		return ErrRoundMismatch
	}
	lo := ctx.MedianTimeUs - ctx.SkewUs
	hi := ctx.MedianTimeUs + ctx.SkewUs
	if b.HashTimer.IppanTimeUs < lo || b.HashTimer.IppanTimeUs > hi {
		return ErrOutsideSkew
	}
	if err := validateTransactions(b.Transactions, ctx.FeeCaps, lastNonce); err != nil {
		return err
	}
	valid := countValidSignatures(b, ctx.Verifier)
	if valid < ctx.Quorum {
		return fmt.Errorf("%w: have %d, need %d", ErrQuorumNotMet, valid, ctx.Quorum)
	}
	return nil
}

// countValidSignatures returns how many entries in b.VerifierSignatures
// verify against the block's own id under the signer's node id as public
// key. With no Crypto adapter wired, every present signature counts,
// matching spec.md §6's abstract dependency on generic crypto primitives.
func countValidSignatures(b *Block, verifier collab.Crypto) int {
	if verifier == nil {
		return len(b.VerifierSignatures)
	}
	msg := b.ID()
	valid := 0
	for signer, sig := range b.VerifierSignatures {
		if verifier.VerifySignature(signer[:], msg[:], sig) {
			valid++
		}
	}
	return valid
}

func validateTransactions(txs []Transaction, caps map[config.TxKind]*big.Int, lastNonce map[ids.ID]uint64) error {
	seen := make(map[ids.ID]uint64, len(lastNonce))
	for k, v := range lastNonce {
		seen[k] = v
	}
	for _, tx := range txs {
		feeCap, ok := caps[tx.Kind]
		if !ok || tx.Fee == nil || tx.Fee.Sign() <= 0 || tx.Fee.Cmp(feeCap) > 0 {
			return ErrFeeOutOfRange
		}
		prev, known := seen[tx.From]
		if known && tx.Nonce <= prev {
			return ErrNonceNotIncreasing
		}
		seen[tx.From] = tx.Nonce

		if tx.ConfidentialProof != nil && tx.ExpectedPublicInputsHash() != tx.ConfidentialProof.PublicInputsHash {
			return ErrConfidentialBindingMismatch
		}
	}
	return nil
}
