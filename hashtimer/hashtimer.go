// Package hashtimer implements IPPAN Time (the network-median microsecond
// clock) and the HashTimer ordering primitive that anchors every block and
// round, per spec.md §4.2.
package hashtimer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sort"

	"github.com/dmrl789/IPPAN-sub004/ids"
	"github.com/zeebo/blake3"
)

// SeedDomain is the domain-separation tag for round seed derivation.
const SeedDomain = "DLC_VERIFIER_SELECTION"

// Sample is one validator's local clock reading submitted for a round.
type Sample struct {
	NodeID      ids.ID
	LocalTimeUs int64
}

// MedianResult is the outcome of aggregating a round's time samples.
type MedianResult struct {
	MedianUs  int64
	MadUs     int64
	Flagged   []ids.ID // samples outside max skew
}

// ErrInsufficientSamples is returned when fewer than minSamples are given.
var ErrInsufficientSamples = errors.New("hashtimer: insufficient time samples")

// Median computes τ(r): the median of the sample local times, the median
// absolute deviation, and the set of validators whose sample deviated from
// the median by more than maxSkewUs. Requires at least minSamples entries.
func Median(samples []Sample, minSamples int, maxSkewUs int64) (MedianResult, error) {
	if len(samples) < minSamples {
		return MedianResult{}, ErrInsufficientSamples
	}
	times := make([]int64, len(samples))
	for i, s := range samples {
		times[i] = s.LocalTimeUs
	}
	median := medianOf(times)

	devs := make([]int64, len(samples))
	for i, t := range times {
		devs[i] = absInt64(t - median)
	}
	mad := medianOf(devs)

	var flagged []ids.ID
	for _, s := range samples {
		if absInt64(s.LocalTimeUs-median) > maxSkewUs {
			flagged = append(flagged, s.NodeID)
		}
	}
	sort.Slice(flagged, func(i, j int) bool { return ids.Less(flagged[i], flagged[j]) })

	return MedianResult{MedianUs: median, MadUs: mad, Flagged: flagged}, nil
}

func medianOf(values []int64) int64 {
	sorted := append([]int64(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	// Even count: floor-average of the two middle values, integer only.
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// DeriveSeed returns σ(r) = Blake3(SeedDomain ‖ be_u64(r)). Deterministic in
// r alone so selection stays replayable from round number + model +
// telemetry snapshot, independent of τ(r).
func DeriveSeed(round uint64) [32]byte {
	buf := make([]byte, len(SeedDomain)+8)
	copy(buf, SeedDomain)
	binary.BigEndian.PutUint64(buf[len(SeedDomain):], round)
	return blake3.Sum256(buf)
}

// Timer is {round, ippan_time_µs, content_hash, node_id}, ordering
// identically to lexicographic (ippan_time, content_hash, node_id).
type Timer struct {
	Round       uint64
	IppanTimeUs int64
	ContentHash [32]byte
	NodeID      ids.ID
}

// Compare returns -1, 0, or 1 comparing a to b by (ippan_time, content_hash,
// node_id), ignoring Round (finalization order is defined purely by this
// triple within a round per spec.md §4.6).
func Compare(a, b Timer) int {
	if a.IppanTimeUs != b.IppanTimeUs {
		if a.IppanTimeUs < b.IppanTimeUs {
			return -1
		}
		return 1
	}
	if c := bytes.Compare(a.ContentHash[:], b.ContentHash[:]); c != 0 {
		return c
	}
	return bytes.Compare(a.NodeID[:], b.NodeID[:])
}

// Less reports whether a orders strictly before b.
func Less(a, b Timer) bool {
	return Compare(a, b) < 0
}
