// Package gbdt implements the deterministic Gradient-Boosted Decision Tree
// scoring engine of spec.md §4.3: fixed-point only, canonically serialized,
// hash-certified per round. Grounded on the fixed-point redesign of
// _examples/original_source/crates/ai_core/src/deterministic_gbdt.rs,
// which the spec's Design Notes call out for the ambient float math this
// module replaces.
package gbdt

import (
	"errors"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/dmrl789/IPPAN-sub004/canonical"
	"github.com/dmrl789/IPPAN-sub004/fixedpoint"
)

// CurrentVersion is the only model version this engine accepts.
const CurrentVersion int64 = 1

// Node is a single decision node: an internal split or a leaf. Internal
// nodes carry Feature/Threshold/Left/Right; leaf nodes carry Value and have
// Left == Right == 0 with IsLeaf set (index 0 is reserved as a valid leaf
// slot, so IsLeaf distinguishes the two rather than a sentinel child index).
type Node struct {
	IsLeaf    bool              `canonical:"isLeaf"`
	Feature   int               `canonical:"feature"`
	Threshold fixedpoint.Scalar `canonical:"threshold"`
	Left      int               `canonical:"left"`
	Right     int               `canonical:"right"`
	Value     fixedpoint.Scalar `canonical:"value"`
}

// Tree is one decision tree plus its ensemble weight.
type Tree struct {
	Nodes  []Node            `canonical:"nodes"`
	Weight fixedpoint.Scalar `canonical:"weight"`
}

// Model is {version, scale, trees, bias, post_scale} per spec.md §3.
type Model struct {
	Version   int64             `canonical:"version"`
	Scale     int64             `canonical:"scale"`
	Trees     []Tree            `canonical:"trees"`
	Bias      fixedpoint.Scalar `canonical:"bias"`
	PostScale int64             `canonical:"postScale"`

	poisoned bool
}

// Structural validation errors (spec.md §3: "A model that fails structural
// validation ... is rejected before use").
var (
	ErrStaleVersion    = errors.New("gbdt: unsupported model version")
	ErrBadScale        = errors.New("gbdt: scale must be positive")
	ErrBadPostScale    = errors.New("gbdt: post_scale must be positive")
	ErrNoTrees         = errors.New("gbdt: model has no trees")
	ErrEmptyTree       = errors.New("gbdt: tree has no nodes")
	ErrChildOutOfRange = errors.New("gbdt: node references an out-of-range child")
	ErrCycle           = errors.New("gbdt: tree contains a cycle")
	ErrPoisoned        = errors.New("gbdt: model is poisoned and rejected for further use")
)

// Validate checks every structural invariant spec.md §3/§4.3 requires
// before a model may be used: version, scale, non-empty trees, in-range
// and acyclic child references, and a single entry root (node 0).
func (m *Model) Validate() error {
	if m.Version != CurrentVersion {
		return fmt.Errorf("%w: %d", ErrStaleVersion, m.Version)
	}
	if m.Scale <= 0 {
		return ErrBadScale
	}
	if m.PostScale <= 0 {
		return ErrBadPostScale
	}
	if len(m.Trees) == 0 {
		return ErrNoTrees
	}
	for ti, tree := range m.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("%w: tree %d", ErrEmptyTree, ti)
		}
		if err := validateTreeAcyclic(tree); err != nil {
			return fmt.Errorf("tree %d: %w", ti, err)
		}
	}
	return nil
}

func validateTreeAcyclic(tree Tree) error {
	n := len(tree.Nodes)
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int8, n)

	var visit func(i int) error
	visit = func(i int) error {
		if i < 0 || i >= n {
			return fmt.Errorf("%w: %d", ErrChildOutOfRange, i)
		}
		switch color[i] {
		case gray:
			return fmt.Errorf("%w: at node %d", ErrCycle, i)
		case black:
			return nil
		}
		color[i] = gray
		node := tree.Nodes[i]
		if !node.IsLeaf {
			if err := visit(node.Left); err != nil {
				return err
			}
			if err := visit(node.Right); err != nil {
				return err
			}
		}
		color[i] = black
		return nil
	}
	return visit(0)
}

// Poisoned reports whether a runtime structural violation latched this
// model as unusable (spec.md §4.3: "flags the model as poisoned").
func (m *Model) Poisoned() bool {
	return m.poisoned
}

// Hash returns Blake3(canonical JSON form of the model) — the model_hash
// of spec.md §3/§6. Re-serializing a loaded model must reproduce the same
// hash (universal invariant 9).
func (m *Model) Hash() [32]byte {
	return canonical.Hash(m)
}

// Certificate returns cert(r) = Blake3(model_hash ‖ σ(r)), the per-round
// model certificate of spec.md §4.3. This hashes the raw 64-byte
// concatenation directly, the same way hashtimer.DeriveSeed does — routing
// through canonical.Hash would hex-encode and JSON-quote the bytes first,
// producing a different (and non-conformant) certificate.
func (m *Model) Certificate(seed [32]byte) [32]byte {
	hash := m.Hash()
	buf := make([]byte, 0, len(hash)+len(seed))
	buf = append(buf, hash[:]...)
	buf = append(buf, seed[:]...)
	return blake3.Sum256(buf)
}

// FeatureArity returns one more than the highest feature index any of the
// model's internal nodes references. Score requires the feature vector the
// caller supplies to have exactly this length. A model with no internal
// nodes has arity zero.
func (m *Model) FeatureArity() int {
	max := -1
	for _, tree := range m.Trees {
		for _, node := range tree.Nodes {
			if !node.IsLeaf && node.Feature > max {
				max = node.Feature
			}
		}
	}
	return max + 1
}
