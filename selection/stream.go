// Package selection implements D-GBDT-scored, seed-deterministic verifier
// set construction: primary + k-1 shadows, drawn by weighted sampling
// without replacement. Grounded on the teacher's utils/sampler package
// (Source/Weighted/Uniform interfaces), generalized from a math/rand.Source
// to a pure Blake3 counter-mode stream so selection is bit-identical across
// nodes and across Go versions, per spec.md §4.5's determinism requirement.
package selection

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// DrawHash returns Blake3(seed ‖ be_u64(i)), the h_i of spec.md §4.5 step
// 4: the counter-mode digest drawOne truncates to its first 8 bytes for
// each weighted draw.
func DrawHash(seed [32]byte, i uint64) [32]byte {
	var buf [40]byte
	copy(buf[:32], seed[:])
	binary.BigEndian.PutUint64(buf[32:], i)
	return blake3.Sum256(buf[:])
}
