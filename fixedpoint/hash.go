package fixedpoint

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// HashSlice returns Blake3 over the little-endian concatenation of the
// int64 components of vec, in list order. Used to fingerprint feature
// vectors and score vectors without going through canonical JSON.
func HashSlice(vec []Scalar) [32]byte {
	buf := make([]byte, 8*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
	}
	return blake3.Sum256(buf)
}
