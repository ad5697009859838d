package selection

import (
	"encoding/binary"
	"errors"
	"sort"

	"github.com/dmrl789/IPPAN-sub004/fixedpoint"
	"github.com/dmrl789/IPPAN-sub004/ids"
)

// Candidate is a scored, eligible validator: member of the candidate set C
// of spec.md §4.5, weighted by its D-GBDT or legacy PoA score.
type Candidate struct {
	NodeID ids.ID
	Score  fixedpoint.Scalar
}

// ErrEmptyCandidateSet is returned when C has no members at all; spec.md
// §4.5: "if empty, the round is declared empty". A non-empty C whose
// weights are all zero is not an error (see Select).
var ErrEmptyCandidateSet = errors.New("selection: candidate set is empty")

// Result is {primary, shadows[], scores[], σ(r)} per spec.md §4.5 step 5.
type Result struct {
	Primary ids.ID
	Shadows []ids.ID
	Seed    [32]byte
}

// Select draws k distinct candidates from C by weighted sampling without
// replacement, seeded by σ(r), per spec.md §4.5 steps 3-5:
//
//	negative/zero scores are floored to zero weight; a zero-total-weight
//	tie-break falls back to the lexicographically-first candidate ID
//	(an Open Question this codebase resolves that way, see DESIGN.md).
//	For i = 0..k-1: h_i = Blake3(σ ‖ be_u64(i)); draw = u64(h_i[:8]) mod
//	total_weight(remaining); pick the first candidate whose cumulative
//	weight >= draw; remove it; repeat. Index 0 is the primary.
//
// If |C| < k, shadows are truncated rather than erroring.
func Select(candidates []Candidate, seed [32]byte, k int) (Result, error) {
	remaining := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		w := c.Score
		if w < 0 {
			w = 0
		}
		remaining = append(remaining, Candidate{NodeID: c.NodeID, Score: w})
	}
	// Deterministic starting order independent of caller-supplied order.
	sort.Slice(remaining, func(i, j int) bool { return ids.Less(remaining[i].NodeID, remaining[j].NodeID) })

	if totalWeight(remaining) == 0 && len(remaining) == 0 {
		return Result{}, ErrEmptyCandidateSet
	}

	draws := k
	if draws > len(remaining) {
		draws = len(remaining)
	}

	picked := make([]ids.ID, 0, draws)
	for i := 0; i < draws; i++ {
		idx, err := drawOne(remaining, seed, uint64(i))
		if err != nil {
			return Result{}, err
		}
		picked = append(picked, remaining[idx].NodeID)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	if len(picked) == 0 {
		return Result{}, ErrEmptyCandidateSet
	}

	return Result{Primary: picked[0], Shadows: picked[1:], Seed: seed}, nil
}

func totalWeight(candidates []Candidate) uint64 {
	var total uint64
	for _, c := range candidates {
		total += uint64(c.Score)
	}
	return total
}

// drawOne performs one weighted draw-without-replacement step against the
// current remaining set, returning the index within remaining that was
// selected. A zero total weight falls back to index 0 (the
// lexicographically-first remaining candidate, since remaining stays
// sorted by NodeID across removals).
func drawOne(remaining []Candidate, seed [32]byte, i uint64) (int, error) {
	if len(remaining) == 0 {
		return 0, ErrEmptyCandidateSet
	}
	total := totalWeight(remaining)
	if total == 0 {
		return 0, nil
	}

	h := DrawHash(seed, i)
	draw := binary.BigEndian.Uint64(h[:8]) % total

	var cumulative uint64
	for idx, c := range remaining {
		cumulative += uint64(c.Score)
		if draw < cumulative {
			return idx, nil
		}
	}
	// Unreachable given draw < total by construction; guards against a
	// floating boundary bug rather than a real runtime condition.
	return len(remaining) - 1, nil
}
