package oracle

import "sort"

// RankScores orders a label→score mapping by descending score. Ties keep
// the order of labels, and labels missing from scores rank last with 0.
func RankScores(labels []string, scores map[string]float64) ZeroShotResult {
	type pair struct {
		label string
		score float64
	}

	pairs := make([]pair, 0, len(labels))
	for _, label := range labels {
		pairs = append(pairs, pair{label: label, score: scores[label]})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	result := ZeroShotResult{
		Labels: make([]string, len(pairs)),
		Scores: make([]float64, len(pairs)),
	}
	for i, p := range pairs {
		result.Labels[i] = p.label
		result.Scores[i] = p.score
	}
	return result
}

// ClauseFromScores picks the highest-scoring clause label
func ClauseFromScores(labels []string, scores map[string]float64) ClauseResult {
	ranked := RankScores(labels, scores)
	label, confidence, _ := ranked.Top()

	all := make(map[string]float64, len(labels))
	for _, l := range labels {
		all[l] = scores[l]
	}

	return ClauseResult{
		Label:      label,
		Confidence: confidence,
		Scores:     all,
	}
}
