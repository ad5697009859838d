// Package dag implements the append-only BlockDAG of spec.md §4.6: blocks
// keyed by content-addressed id, multi-parent references, a maintained tip
// set, admission rules, and HashTimer-ordered finalization. Grounded on
// the reachability/antichain helpers of the teacher's core/dag package
// (horizon.go, flare.go), specialized from a generic VID type parameter to
// the concrete ids.ID this module uses everywhere.
package dag

import (
	"math/big"

	"github.com/dmrl789/IPPAN-sub004/canonical"
	"github.com/dmrl789/IPPAN-sub004/config"
	"github.com/dmrl789/IPPAN-sub004/hashtimer"
	"github.com/dmrl789/IPPAN-sub004/ids"
)

// MaxParents bounds a block's parent_ids per spec.md §3/§4.6.
const MaxParents = 8

// Transaction is the consensus-relevant view of spec.md §3: fee and nonce
// invariants are enforced at admission, payload content beyond that is
// opaque to consensus. Amount and Fee are atomic units (*big.Int), the
// same domain config.Config's fee caps and emission amounts use.
type Transaction struct {
	From              ids.ID
	To                ids.ID
	Amount            *big.Int
	Nonce             uint64
	Kind              config.TxKind
	Topics            []string
	Fee               *big.Int
	ConfidentialProof *ConfidentialProof `canonical:"confidentialProof,omitempty"`
}

// ConfidentialProof carries a ZK-proof-bearing payload's public inputs,
// bound into the transaction digest; its content is opaque to consensus
// (spec.md's Non-goals: "consensus-level confidentiality").
type ConfidentialProof struct {
	PublicInputsHash   [32]byte
	SenderCommitment   [32]byte
	ReceiverCommitment [32]byte
}

// Block is {parent_ids, hashtimer, payload_digest, proposer_id,
// verifier_signatures, id} per spec.md §3.
type Block struct {
	ParentIDs           []ids.ID
	HashTimer           hashtimer.Timer
	PayloadDigest       [32]byte
	ProposerID          ids.ID
	Transactions        []Transaction
	VerifierSignatures  map[ids.ID][]byte
}

// ID returns H(canonical(block)): the content-addressed block id. The id
// is derived, never stored on the struct itself, so a block can never
// disagree with its own digest.
func (b *Block) ID() [32]byte {
	return canonical.Hash(b)
}

// PayloadDigestFor computes payload_digest = Blake3(canonical(txs)),
// binding every transaction (confidential ones via their declared public
// inputs) into the block.
func PayloadDigestFor(txs []Transaction) [32]byte {
	return canonical.Hash(txs)
}

// Digest returns the transaction's own content-addressed digest, with its
// ConfidentialProof cleared: a proof binds to the transaction it rides on,
// so it cannot be part of the digest it binds to.
func (tx Transaction) Digest() [32]byte {
	clone := tx
	clone.ConfidentialProof = nil
	return canonical.Hash(clone)
}

// confidentialPublicInputs is the canonical value a ConfidentialProof's
// PublicInputsHash must equal: the binding of the transaction's own digest
// to its declared sender/receiver commitments (spec.md §3: "public inputs
// binding tx id, sender/receiver commitments").
type confidentialPublicInputs struct {
	TxDigest           [32]byte
	SenderCommitment   [32]byte
	ReceiverCommitment [32]byte
}

// ExpectedPublicInputsHash computes the public-inputs hash a
// ConfidentialProof attached to tx must declare, from tx's own digest and
// the proof's commitments.
func (tx Transaction) ExpectedPublicInputsHash() [32]byte {
	p := tx.ConfidentialProof
	return canonical.Hash(confidentialPublicInputs{
		TxDigest:           tx.Digest(),
		SenderCommitment:   p.SenderCommitment,
		ReceiverCommitment: p.ReceiverCommitment,
	})
}
