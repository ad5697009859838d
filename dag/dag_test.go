package dag

import (
	"math/big"
	"testing"

	"github.com/dmrl789/IPPAN-sub004/config"
	"github.com/dmrl789/IPPAN-sub004/hashtimer"
	"github.com/dmrl789/IPPAN-sub004/ids"
	"github.com/stretchr/testify/require"
)

func genesisBlock(t *testing.T, store *Store) [32]byte {
	t.Helper()
	g := &Block{
		ParentIDs:  []ids.ID{ids.Empty},
		HashTimer:  hashtimer.Timer{Round: 0},
		ProposerID: ids.GenerateTestID('G'),
	}
	return store.Insert(g)
}

// S4 — DAG finalization order.
func TestFinalizeOrdersByTimeThenHashThenProposer(t *testing.T) {
	store := NewStore()
	genesis := genesisBlock(t, store)

	h0 := [32]byte{0x00}
	h1 := [32]byte{0x01}
	h2 := [32]byte{0x02}

	b1 := &Block{ParentIDs: []ids.ID{ids.ID(genesis)}, HashTimer: hashtimer.Timer{Round: 1, IppanTimeUs: 100, ContentHash: h1}, ProposerID: ids.GenerateTestID('A')}
	b0 := &Block{ParentIDs: []ids.ID{ids.ID(genesis)}, HashTimer: hashtimer.Timer{Round: 1, IppanTimeUs: 100, ContentHash: h0}, ProposerID: ids.GenerateTestID('B')}
	b2 := &Block{ParentIDs: []ids.ID{ids.ID(genesis)}, HashTimer: hashtimer.Timer{Round: 1, IppanTimeUs: 101, ContentHash: h2}, ProposerID: ids.GenerateTestID('C')}

	id1 := store.Insert(b1)
	id0 := store.Insert(b0)
	id2 := store.Insert(b2)

	rec := store.Finalize(1, [32]byte{0xAA}, 100)
	require.Equal(t, [][32]byte{id0, id1, id2}, rec.OrderedIDs)
}

func TestAdmitRejectsWrongProposer(t *testing.T) {
	store := NewStore()
	genesis := genesisBlock(t, store)
	primary := ids.GenerateTestID('P')
	other := ids.GenerateTestID('X')

	b := &Block{
		ParentIDs:  []ids.ID{ids.ID(genesis)},
		HashTimer:  hashtimer.Timer{Round: 1, IppanTimeUs: 100},
		ProposerID: other,
	}
	ctx := AdmissionContext{Round: 1, Primary: primary, MedianTimeUs: 100, SkewUs: 10, FeeCaps: map[config.TxKind]*big.Int{}, Quorum: 0}
	require.ErrorIs(t, store.Admit(b, ctx, nil), ErrWrongProposer)
}

func TestAdmitRejectsUnknownParent(t *testing.T) {
	store := NewStore()
	primary := ids.GenerateTestID('P')
	b := &Block{
		ParentIDs:  []ids.ID{ids.GenerateTestID('?')},
		HashTimer:  hashtimer.Timer{Round: 1, IppanTimeUs: 100},
		ProposerID: primary,
	}
	ctx := AdmissionContext{Round: 1, Primary: primary, MedianTimeUs: 100, SkewUs: 10, Quorum: 0}
	require.ErrorIs(t, store.Admit(b, ctx, nil), ErrUnknownParent)
}

func TestAdmitRejectsOutsideSkewAndBadFeesAndQuorum(t *testing.T) {
	store := NewStore()
	genesis := genesisBlock(t, store)
	primary := ids.GenerateTestID('P')

	base := Block{
		ParentIDs:  []ids.ID{ids.ID(genesis)},
		ProposerID: primary,
	}
	ctx := AdmissionContext{
		Round: 1, Primary: primary, MedianTimeUs: 1_000, SkewUs: 100,
		FeeCaps: map[config.TxKind]*big.Int{config.TxTransfer: big.NewInt(10)},
		Quorum:  1,
	}

	skewed := base
	skewed.HashTimer = hashtimer.Timer{Round: 1, IppanTimeUs: 5_000}
	require.ErrorIs(t, store.Admit(&skewed, ctx, nil), ErrOutsideSkew)

	badFee := base
	badFee.HashTimer = hashtimer.Timer{Round: 1, IppanTimeUs: 1_000}
	badFee.Transactions = []Transaction{{From: ids.GenerateTestID('S'), Nonce: 1, Kind: config.TxTransfer, Fee: big.NewInt(1_000)}}
	require.ErrorIs(t, store.Admit(&badFee, ctx, nil), ErrFeeOutOfRange)

	noQuorum := base
	noQuorum.HashTimer = hashtimer.Timer{Round: 1, IppanTimeUs: 1_000}
	require.ErrorIs(t, store.Admit(&noQuorum, ctx, nil), ErrQuorumNotMet)
}

// rejectAllCrypto is a collab.Crypto double that fails every signature,
// for exercising Admit's verified-quorum path.
type rejectAllCrypto struct{}

func (rejectAllCrypto) Blake3(data []byte) [32]byte              { return [32]byte{} }
func (rejectAllCrypto) VerifySignature(_, _, _ []byte) bool      { return false }
func (rejectAllCrypto) HashSHA256(data []byte) [32]byte          { return [32]byte{} }

func TestAdmitCountsOnlyCryptoVerifiedSignatures(t *testing.T) {
	store := NewStore()
	genesis := genesisBlock(t, store)
	primary := ids.GenerateTestID('P')
	verifier := ids.GenerateTestID('V')

	b := &Block{
		ParentIDs:          []ids.ID{ids.ID(genesis)},
		HashTimer:          hashtimer.Timer{Round: 1, IppanTimeUs: 1_000},
		ProposerID:         primary,
		VerifierSignatures: map[ids.ID][]byte{verifier: []byte("sig")},
	}
	ctx := AdmissionContext{
		Round: 1, Primary: primary, MedianTimeUs: 1_000, SkewUs: 100,
		Quorum: 1, Verifier: rejectAllCrypto{},
	}
	require.ErrorIs(t, store.Admit(b, ctx, nil), ErrQuorumNotMet)

	ctx.Verifier = nil
	require.NoError(t, store.Admit(b, ctx, nil))
}

func TestAdmitRejectsConfidentialProofWithMismatchedPublicInputs(t *testing.T) {
	store := NewStore()
	genesis := genesisBlock(t, store)
	primary := ids.GenerateTestID('P')

	tx := Transaction{
		From: ids.GenerateTestID('S'), Nonce: 1, Kind: config.TxTransfer, Fee: big.NewInt(1),
		ConfidentialProof: &ConfidentialProof{
			SenderCommitment:   [32]byte{0x01},
			ReceiverCommitment: [32]byte{0x02},
			PublicInputsHash:   [32]byte{0xFF}, // wrong on purpose
		},
	}
	b := &Block{
		ParentIDs:    []ids.ID{ids.ID(genesis)},
		HashTimer:    hashtimer.Timer{Round: 1, IppanTimeUs: 1_000},
		ProposerID:   primary,
		Transactions: []Transaction{tx},
	}
	ctx := AdmissionContext{
		Round: 1, Primary: primary, MedianTimeUs: 1_000, SkewUs: 100,
		FeeCaps: map[config.TxKind]*big.Int{config.TxTransfer: big.NewInt(10)},
		Quorum:  0,
	}
	require.ErrorIs(t, store.Admit(b, ctx, nil), ErrConfidentialBindingMismatch)

	tx.ConfidentialProof.PublicInputsHash = tx.ExpectedPublicInputsHash()
	b.Transactions = []Transaction{tx}
	require.NoError(t, store.Admit(b, ctx, nil))
}

func TestQuorumFormula(t *testing.T) {
	require.Equal(t, 1, Quorum(1))
	require.Equal(t, 2, Quorum(2))
	require.Equal(t, 4, Quorum(5))
}

func TestTipSetUpdatesOnInsert(t *testing.T) {
	store := NewStore()
	genesis := genesisBlock(t, store)
	require.Equal(t, [][32]byte{genesis}, store.Tips())

	child := &Block{ParentIDs: []ids.ID{ids.ID(genesis)}, HashTimer: hashtimer.Timer{Round: 1}, ProposerID: ids.GenerateTestID('A')}
	childID := store.Insert(child)
	require.Equal(t, [][32]byte{childID}, store.Tips())
}

func TestAntichainExcludesAncestors(t *testing.T) {
	store := NewStore()
	genesis := genesisBlock(t, store)
	child := &Block{ParentIDs: []ids.ID{ids.ID(genesis)}, HashTimer: hashtimer.Timer{Round: 1}, ProposerID: ids.GenerateTestID('A')}
	childID := store.Insert(child)

	result := store.Antichain([][32]byte{genesis, childID})
	require.Empty(t, result)
}
