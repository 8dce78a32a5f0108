package entity

import (
	"sort"

	"github.com/ppiankov/lexis/internal/model"
)

// Merge reconciles candidates from every source into a non-overlapping set.
// Candidates are ordered by start offset, higher confidence first on ties,
// and swept once: a candidate that starts at or after the end of the last
// accepted entity is kept; an overlapping one replaces the last accepted
// entity only when strictly more confident.
func Merge(candidates []model.EntityCandidate) []model.Entity {
	sorted := make([]model.EntityCandidate, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Confidence > sorted[j].Confidence
	})

	merged := make([]model.Entity, 0, len(sorted))
	for _, c := range sorted {
		candidate := model.Entity(c)
		if len(merged) == 0 {
			merged = append(merged, candidate)
			continue
		}

		last := &merged[len(merged)-1]
		if candidate.Start >= last.End {
			merged = append(merged, candidate)
		} else if candidate.Confidence > last.Confidence {
			*last = candidate
		}
	}

	return merged
}

// Group collects entity texts by label, keeping document order
func Group(entities []model.Entity) model.EntityGroups {
	groups := make(model.EntityGroups)
	for _, e := range entities {
		groups[e.Label] = append(groups[e.Label], e.Text)
	}
	return groups
}

// Candidates converts entities back into candidates, e.g. to merge a
// previous result with new detections
func Candidates(entities []model.Entity) []model.EntityCandidate {
	out := make([]model.EntityCandidate, len(entities))
	for i, e := range entities {
		out[i] = model.EntityCandidate(e)
	}
	return out
}
