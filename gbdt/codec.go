package gbdt

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dmrl789/IPPAN-sub004/canonical"
	"github.com/dmrl789/IPPAN-sub004/fixedpoint"
)

// EncodeJSON returns the canonical JSON serialization of the model, the
// form Hash and Certificate are computed over.
func (m *Model) EncodeJSON() []byte {
	return canonical.Marshal(m)
}

// binaryMagic tags the compact codec so a misrouted byte stream is
// rejected instead of silently misparsed.
var binaryMagic = [4]byte{'G', 'B', 'D', 'T'}

// ErrBadBinary is returned by DecodeBinary on any malformed input.
var ErrBadBinary = fmt.Errorf("gbdt: malformed binary model")

// EncodeBinary serializes the model to a compact fixed-width binary form,
// an ambient convenience alongside the canonical JSON codec: operators
// shipping models over a narrowband channel or storing many models don't
// pay JSON's token overhead. Hash/Certificate are always computed from
// EncodeJSON, never from this form, so the two codecs can never disagree
// about model identity.
func (m *Model) EncodeBinary() []byte {
	var buf bytes.Buffer
	buf.Write(binaryMagic[:])
	writeI64(&buf, m.Version)
	writeI64(&buf, m.Scale)
	writeI64(&buf, int64(m.Bias))
	writeI64(&buf, m.PostScale)
	writeI64(&buf, int64(len(m.Trees)))
	for _, tree := range m.Trees {
		writeI64(&buf, int64(tree.Weight))
		writeI64(&buf, int64(len(tree.Nodes)))
		for _, n := range tree.Nodes {
			if n.IsLeaf {
				buf.WriteByte(1)
			} else {
				buf.WriteByte(0)
			}
			writeI64(&buf, int64(n.Feature))
			writeI64(&buf, int64(n.Threshold))
			writeI64(&buf, int64(n.Left))
			writeI64(&buf, int64(n.Right))
			writeI64(&buf, int64(n.Value))
		}
	}
	return buf.Bytes()
}

// DecodeBinary parses the form EncodeBinary produces.
func DecodeBinary(data []byte) (*Model, error) {
	r := bytes.NewReader(data)
	var magic [4]byte
	if _, err := r.Read(magic[:]); err != nil || magic != binaryMagic {
		return nil, ErrBadBinary
	}
	version, err := readI64(r)
	if err != nil {
		return nil, err
	}
	scale, err := readI64(r)
	if err != nil {
		return nil, err
	}
	bias, err := readI64(r)
	if err != nil {
		return nil, err
	}
	postScale, err := readI64(r)
	if err != nil {
		return nil, err
	}
	treeCount, err := readI64(r)
	if err != nil || treeCount < 0 {
		return nil, ErrBadBinary
	}

	trees := make([]Tree, 0, treeCount)
	for i := int64(0); i < treeCount; i++ {
		weight, err := readI64(r)
		if err != nil {
			return nil, err
		}
		nodeCount, err := readI64(r)
		if err != nil || nodeCount < 0 {
			return nil, ErrBadBinary
		}
		nodes := make([]Node, 0, nodeCount)
		for j := int64(0); j < nodeCount; j++ {
			var flag [1]byte
			if _, err := r.Read(flag[:]); err != nil {
				return nil, ErrBadBinary
			}
			feature, err := readI64(r)
			if err != nil {
				return nil, err
			}
			threshold, err := readI64(r)
			if err != nil {
				return nil, err
			}
			left, err := readI64(r)
			if err != nil {
				return nil, err
			}
			right, err := readI64(r)
			if err != nil {
				return nil, err
			}
			value, err := readI64(r)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Node{
				IsLeaf:    flag[0] == 1,
				Feature:   int(feature),
				Threshold: fixedpoint.Scalar(threshold),
				Left:      int(left),
				Right:     int(right),
				Value:     fixedpoint.Scalar(value),
			})
		}
		trees = append(trees, Tree{Nodes: nodes, Weight: fixedpoint.Scalar(weight)})
	}

	return &Model{
		Version:   version,
		Scale:     scale,
		Trees:     trees,
		Bias:      fixedpoint.Scalar(bias),
		PostScale: postScale,
	}, nil
}

func writeI64(buf *bytes.Buffer, v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	buf.Write(b[:])
}

func readI64(r *bytes.Reader) (int64, error) {
	var b [8]byte
	if _, err := r.Read(b[:]); err != nil {
		return 0, ErrBadBinary
	}
	return int64(binary.BigEndian.Uint64(b[:])), nil
}
