package gbdt

import (
	"sort"

	"github.com/dmrl789/IPPAN-sub004/fixedpoint"
	"github.com/dmrl789/IPPAN-sub004/ids"
)

// ScoredValidator pairs a validator identity with its model-derived score.
type ScoredValidator struct {
	NodeID ids.ID
	Score  fixedpoint.Scalar
}

// Scoreboard scores a whole validator set against one model in a single
// pass and returns the model certificate for the round alongside the
// scores, so a caller never has to re-derive the certificate per
// validator. This is a convenience the distilled spec leaves implicit in
// "score every eligible validator" (spec.md §4.4) — grounded on the
// batch-scoring shape of the teacher's sampler helpers (utils/sampler),
// generalized from weight lookups to model inference.
type Scoreboard struct {
	Model       *Model
	Seed        [32]byte
	Certificate [32]byte
	Scores      []ScoredValidator
}

// Score evaluates model against every (nodeID, features) pair and sorts
// the result by NodeID for deterministic replay.
// Returns an error (and poisons the model) if any validator's feature
// vector is malformed.
func Score(model *Model, round uint64, seed [32]byte, entries map[ids.ID][]fixedpoint.Scalar) (*Scoreboard, error) {
	scores := make([]ScoredValidator, 0, len(entries))
	for id, features := range entries {
		s, err := model.Score(features)
		if err != nil {
			return nil, err
		}
		scores = append(scores, ScoredValidator{NodeID: id, Score: s})
	}
	sort.Slice(scores, func(i, j int) bool { return ids.Less(scores[i].NodeID, scores[j].NodeID) })

	return &Scoreboard{
		Model:       model,
		Seed:        seed,
		Certificate: model.Certificate(seed),
		Scores:      scores,
	}, nil
}
