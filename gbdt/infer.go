package gbdt

import (
	"fmt"
	"math/big"

	"github.com/dmrl789/IPPAN-sub004/fixedpoint"
)

// ErrFeatureArity is returned when a feature vector's length doesn't match
// what the model's internal nodes require.
var ErrFeatureArity = fmt.Errorf("gbdt: feature vector arity mismatch")

// Score evaluates the model against a feature vector per spec.md §4.3:
// sum ← bias; for each tree, walk root-to-leaf comparing
// features[node.Feature] against node.Threshold (<=: left, else: right),
// then add sat(leaf.Value * tree.Weight / model.Scale) to the sum.
//
// A structural violation discovered at traversal time (an index the
// acyclic check at load time could not have caught — e.g. Validate was
// skipped) poisons the model and returns an error; callers MUST treat a
// poisoned model as permanently unusable (spec.md §4.3).
func (m *Model) Score(features []fixedpoint.Scalar) (fixedpoint.Scalar, error) {
	if m.poisoned {
		return 0, ErrPoisoned
	}
	need := m.FeatureArity()
	if len(features) != need {
		m.poisoned = true
		return 0, fmt.Errorf("%w: model needs %d features, got %d", ErrFeatureArity, need, len(features))
	}

	sum := m.Bias
	for ti, tree := range m.Trees {
		leaf, err := traverse(tree, features)
		if err != nil {
			m.poisoned = true
			return 0, fmt.Errorf("tree %d: %w", ti, err)
		}
		sum = fixedpoint.Add(sum, m.weightedLeaf(leaf, tree.Weight))
	}
	return sum, nil
}

// weightedLeaf returns sat((leaf*weight)/m.Scale) using a big.Int
// intermediate, honoring the model's own declared scale rather than the
// package-global fixedpoint.Scale constant (the two coincide in every
// model this engine is expected to load, but the model's scale field is
// authoritative per spec.md §3).
func (m *Model) weightedLeaf(leaf, weight fixedpoint.Scalar) fixedpoint.Scalar {
	prod := new(big.Int).Mul(big.NewInt(int64(leaf)), big.NewInt(int64(weight)))
	prod.Quo(prod, big.NewInt(m.Scale))
	if prod.Cmp(maxScalar) > 0 {
		return fixedpoint.Scalar(1<<63 - 1)
	}
	if prod.Cmp(minScalar) < 0 {
		return fixedpoint.Scalar(-1 << 63)
	}
	return fixedpoint.Scalar(prod.Int64())
}

var (
	maxScalar = big.NewInt(1<<63 - 1)
	minScalar = big.NewInt(-1 << 63)
)

func traverse(tree Tree, features []fixedpoint.Scalar) (fixedpoint.Scalar, error) {
	idx := 0
	for {
		if idx < 0 || idx >= len(tree.Nodes) {
			return 0, fmt.Errorf("%w: %d", ErrChildOutOfRange, idx)
		}
		node := tree.Nodes[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		if node.Feature < 0 || node.Feature >= len(features) {
			return 0, fmt.Errorf("%w: node references feature %d", ErrFeatureArity, node.Feature)
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}
