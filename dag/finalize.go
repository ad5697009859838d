package dag

import (
	"sort"

	"github.com/dmrl789/IPPAN-sub004/hashtimer"
)

// FinalizationRecord is the artifact emitted at the close of a round
// (spec.md §4.6): the ordered block ids, the round's model certificate,
// and its median time.
type FinalizationRecord struct {
	Round       uint64
	OrderedIDs  [][32]byte
	Certificate [32]byte
	MedianUs    int64
}

// Finalize collects every quorum-signed block with hashtimer.round <= r,
// sorts by (ippan_time_µs, content_hash, proposer_id) — scenario S4 of
// spec.md §8 — and returns the total order. Quorum checking happened at
// admission time, so every block already in the store is eligible;
// Finalize only needs to filter by round and sort.
func (s *Store) Finalize(round uint64, cert [32]byte, medianUs int64) FinalizationRecord {
	type entry struct {
		id    [32]byte
		timer hashtimer.Timer
	}
	var entries []entry
	for id, b := range s.blocks {
		if b.HashTimer.Round <= round {
			entries = append(entries, entry{id: id, timer: b.HashTimer})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.timer.IppanTimeUs != b.timer.IppanTimeUs {
			return a.timer.IppanTimeUs < b.timer.IppanTimeUs
		}
		if a.timer.ContentHash != b.timer.ContentHash {
			return lessBytes(a.timer.ContentHash[:], b.timer.ContentHash[:])
		}
		return lessBytes(s.blocks[a.id].ProposerID[:], s.blocks[b.id].ProposerID[:])
	})

	ordered := make([][32]byte, len(entries))
	for i, e := range entries {
		ordered[i] = e.id
	}
	return FinalizationRecord{Round: round, OrderedIDs: ordered, Certificate: cert, MedianUs: medianUs}
}

func lessBytes(a, b []byte) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
