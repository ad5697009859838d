// Package ids provides the validator identity type used throughout the
// consensus core: a 32-byte public key with a checksum-encoded string
// addressing form, grounded on the CB58-style encoding the teacher's
// utils/formatting package enumerates but leaves unimplemented.
package ids

import (
	"encoding/base32"
	"errors"

	"github.com/zeebo/blake3"
)

// Len is the byte length of a validator identity (a public key).
const Len = 32

// ID is a 32-byte validator identity.
type ID [Len]byte

// Empty is the zero identity.
var Empty ID

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// String renders the checksum-encoded address form: base32(id) followed by
// base32(first 4 bytes of Blake3(id)), matching the "checksum-encoded
// string" addressing form required by the data model.
func (id ID) String() string {
	sum := blake3.Sum256(id[:])
	return encoding.EncodeToString(id[:]) + encoding.EncodeToString(sum[:4])
}

// ErrBadChecksum is returned by Parse when the trailing checksum does not
// match the decoded payload.
var ErrBadChecksum = errors.New("ids: bad checksum")

// Parse decodes a string produced by String back into an ID, verifying the
// checksum.
func Parse(s string) (ID, error) {
	if len(s) < 8 {
		return Empty, errors.New("ids: string too short")
	}
	payloadLen := encoding.EncodedLen(Len)
	if len(s) != payloadLen+encoding.EncodedLen(4) {
		return Empty, errors.New("ids: invalid length")
	}
	body, err := encoding.DecodeString(s[:payloadLen])
	if err != nil || len(body) != Len {
		return Empty, errors.New("ids: invalid payload encoding")
	}
	check, err := encoding.DecodeString(s[payloadLen:])
	if err != nil || len(check) != 4 {
		return Empty, errors.New("ids: invalid checksum encoding")
	}
	var id ID
	copy(id[:], body)
	sum := blake3.Sum256(id[:])
	for i := 0; i < 4; i++ {
		if sum[i] != check[i] {
			return Empty, ErrBadChecksum
		}
	}
	return id, nil
}

// Less provides the stable lexicographic tie-break order used by selection
// and tip-management when weights or scores are equal.
func Less(a, b ID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// GenerateTestID derives a deterministic test identity from a seed byte,
// for use in tests only (never on a consensus path).
func GenerateTestID(seed byte) ID {
	var id ID
	id[0] = seed
	sum := blake3.Sum256([]byte{seed})
	copy(id[1:], sum[:Len-1])
	return id
}
