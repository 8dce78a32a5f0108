// Package oracle defines the capabilities the engine consumes from
// external models. Every port may fail; callers degrade instead of
// propagating the error.
package oracle

import (
	"context"
	"errors"

	"github.com/ppiankov/lexis/internal/syntax"
)

// ErrUnavailable is returned by adapters that are not configured or whose
// backend cannot be reached
var ErrUnavailable = errors.New("oracle unavailable")

// TokenEntity is one span reported by a token-classification model.
// Start and End are offsets local to the text passed in.
type TokenEntity struct {
	Label string  `json:"label"`
	Text  string  `json:"text"`
	Start int     `json:"start"`
	End   int     `json:"end"`
	Score float64 `json:"score"`
}

// TokenClassifier detects named entities in one model window
type TokenClassifier interface {
	ClassifyTokens(ctx context.Context, chunk string) ([]TokenEntity, error)
}

// ZeroShotResult holds label scores sorted by descending score
type ZeroShotResult struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Top returns the best label and its score
func (r ZeroShotResult) Top() (string, float64, bool) {
	if len(r.Labels) == 0 || len(r.Labels) != len(r.Scores) {
		return "", 0, false
	}
	return r.Labels[0], r.Scores[0], true
}

// ZeroShotClassifier scores a sentence against arbitrary labels
type ZeroShotClassifier interface {
	ZeroShot(ctx context.Context, sentence string, labels []string) (ZeroShotResult, error)
}

// Parser produces a dependency tree for one sentence
type Parser interface {
	Parse(ctx context.Context, sentence string) (*syntax.Tree, error)
}

// ClauseResult is the clause-type verdict for a section
type ClauseResult struct {
	Label      string             `json:"predicted_label"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"all_scores"`
}

// ClauseClassifier labels a section with a clause category
type ClauseClassifier interface {
	ClassifyClause(ctx context.Context, content string) (ClauseResult, error)
}

// ClauseLabels are the categories the clause oracles choose from
var ClauseLabels = []string{"liability", "privacy", "payment", "termination", "rights"}

// SentenceLabels are the zero-shot candidates used by the cascade
var SentenceLabels = []string{"obligation", "right", "neither"}
