// Package entity detects named spans in contract text and reconciles
// detections from the model and rule sources into one non-overlapping set.
package entity

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/lexis/internal/model"
	"github.com/ppiankov/lexis/internal/oracle"
	"github.com/ppiankov/lexis/internal/patterns"
	"github.com/ppiankov/lexis/internal/worker"
)

// Recognizer runs the token-classification oracle over overlapping chunks
// and the rule detectors over the whole text
type Recognizer struct {
	model   oracle.TokenClassifier
	length  int
	stride  int
	workers int
}

// NewRecognizer creates a recognizer. tc may be nil, in which case only the
// rule detectors run.
func NewRecognizer(tc oracle.TokenClassifier, cfg model.RecognitionConfig, workers int) *Recognizer {
	return &Recognizer{
		model:   tc,
		length:  cfg.ChunkLength,
		stride:  cfg.ChunkStride,
		workers: workers,
	}
}

// Recognize returns unreconciled candidates from both sources plus
// warnings for every chunk the model could not process
func (r *Recognizer) Recognize(ctx context.Context, text string) ([]model.EntityCandidate, []string) {
	if strings.TrimSpace(text) == "" {
		return []model.EntityCandidate{}, nil
	}

	var warnings []string
	var candidates []model.EntityCandidate

	if r.model == nil {
		warnings = append(warnings, "entity model unavailable, using rule detectors only")
	} else {
		chunks := Chunks(text, r.length, r.stride)
		jobs := make([]worker.Job, len(chunks))
		for i, c := range chunks {
			jobs[i] = &chunkJob{chunk: c, model: r.model}
		}

		results := worker.Run(ctx, r.workers, jobs)
		done := make(map[int]bool, len(results))
		for _, res := range results {
			cr := res.(*chunkResult)
			done[cr.index] = true
			if cr.err != nil {
				warnings = append(warnings, fmt.Sprintf("entity model failed on chunk %d: %v", cr.index, cr.err))
				continue
			}
			candidates = append(candidates, cr.candidates...)
		}
		for _, c := range chunks {
			if !done[c.Index] {
				warnings = append(warnings, fmt.Sprintf("entity model skipped chunk %d: %v", c.Index, context.Cause(ctx)))
			}
		}
	}

	candidates = append(candidates, patterns.RuleCandidates(text)...)
	return candidates, warnings
}

type chunkJob struct {
	chunk Chunk
	model oracle.TokenClassifier
}

func (j *chunkJob) Execute(ctx context.Context) worker.Result {
	spans, err := j.model.ClassifyTokens(ctx, j.chunk.Text)
	if err != nil {
		return &chunkResult{index: j.chunk.Index, err: err}
	}

	out := make([]model.EntityCandidate, 0, len(spans))
	for _, span := range spans {
		if span.Start < 0 || span.End > len(j.chunk.Text) || span.End <= span.Start {
			continue
		}
		out = append(out, model.EntityCandidate{
			Label:      NormalizeLabel(span.Label),
			Text:       j.chunk.Text[span.Start:span.End],
			Start:      j.chunk.Start + span.Start,
			End:        j.chunk.Start + span.End,
			Confidence: clamp01(span.Score),
			Source:     model.SourceModel,
		})
	}
	return &chunkResult{index: j.chunk.Index, candidates: out}
}

type chunkResult struct {
	index      int
	candidates []model.EntityCandidate
	err        error
}

func (r *chunkResult) GetError() error { return r.err }
func (r *chunkResult) Seq() int        { return r.index }

// NormalizeLabel maps model tag sets (CoNLL, OntoNotes, BIO prefixes) onto
// entity labels
func NormalizeLabel(label string) model.EntityLabel {
	upper := strings.ToUpper(strings.TrimSpace(label))
	upper = strings.TrimPrefix(upper, "B-")
	upper = strings.TrimPrefix(upper, "I-")

	switch upper {
	case "PER", "PERSON":
		return model.LabelPerson
	case "LOC", "GPE", "LOCATION":
		return model.LabelLocation
	case "ORG", "ORGANIZATION", "PARTY":
		return model.LabelParty
	case "DATE", "TIME":
		return model.LabelDate
	case "MONEY", "AMOUNT":
		return model.LabelAmount
	case "LAW", "REGULATION":
		return model.LabelRegulation
	case "COURT":
		return model.LabelCourt
	case "TERM":
		return model.LabelTerm
	default:
		return model.LabelMisc
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
