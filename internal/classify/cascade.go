// Package classify labels contract sentences as obligations, rights or
// neither.
package classify

import (
	"context"
	"strings"

	"github.com/ppiankov/lexis/internal/model"
	"github.com/ppiankov/lexis/internal/oracle"
	"github.com/ppiankov/lexis/internal/patterns"
	"github.com/ppiankov/lexis/internal/util"
)

// DefaultThreshold is the zero-shot score a label must exceed
const DefaultThreshold = 0.70

// Cascade classifies a sentence with the cheapest stage that decides it:
// obligation cues, then right cues, then the zero-shot oracle
type Cascade struct {
	oracle    oracle.ZeroShotClassifier
	threshold float64
	warnings  *util.Warnings
}

// NewCascade creates a cascade. zs may be nil; warnings may be nil.
func NewCascade(zs oracle.ZeroShotClassifier, threshold float64, warnings *util.Warnings) *Cascade {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultThreshold
	}
	return &Cascade{
		oracle:    zs,
		threshold: threshold,
		warnings:  warnings,
	}
}

// Classify returns the verdict for one sentence. Oracle failures yield OTHER.
func (c *Cascade) Classify(ctx context.Context, sentence string) model.Classification {
	if strings.TrimSpace(sentence) == "" {
		return other()
	}

	if patterns.Obligations.Matches(sentence) {
		return model.Classification{Kind: model.KindObligation, Provenance: model.ProvenanceRule}
	}
	if patterns.Rights.Matches(sentence) {
		return model.Classification{Kind: model.KindRight, Provenance: model.ProvenanceRule}
	}

	if c.oracle == nil {
		return other()
	}

	result, err := c.oracle.ZeroShot(ctx, sentence, oracle.SentenceLabels)
	if err != nil {
		c.warnings.Addf("zero-shot classification failed: %v", err)
		return other()
	}

	label, score, ok := result.Top()
	if !ok || label == "neither" || score <= c.threshold {
		return other()
	}

	switch label {
	case string(model.KindObligation):
		return model.Classification{Kind: model.KindObligation, Provenance: model.ProvenanceModel, Score: score}
	case string(model.KindRight):
		return model.Classification{Kind: model.KindRight, Provenance: model.ProvenanceModel, Score: score}
	default:
		return other()
	}
}

func other() model.Classification {
	return model.Classification{Kind: model.KindOther, Provenance: model.ProvenanceRule}
}
