package clause

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/lexis/internal/model"
	"github.com/ppiankov/lexis/internal/oracle"
	"github.com/ppiankov/lexis/internal/util"
	"github.com/ppiankov/lexis/internal/worker"
)

const previewLength = 100

// Classifier labels sections with the clause oracle, falling back to the
// keyword rules when the oracle is missing or fails
type Classifier struct {
	oracle   oracle.ClauseClassifier
	fallback Keywords
	warnings *util.Warnings
	workers  int
}

// NewClassifier creates a section classifier. o may be nil.
func NewClassifier(o oracle.ClauseClassifier, warnings *util.Warnings, workers int) *Classifier {
	return &Classifier{
		oracle:   o,
		warnings: warnings,
		workers:  workers,
	}
}

// ClassifySections returns one classification per section, in order
func (c *Classifier) ClassifySections(ctx context.Context, sections []model.Section) []model.SectionClassification {
	jobs := make([]worker.Job, len(sections))
	for i, section := range sections {
		jobs[i] = &sectionJob{index: i, section: section, classifier: c}
	}

	out := make([]model.SectionClassification, len(sections))
	done := make([]bool, len(sections))
	for _, res := range worker.Run(ctx, c.workers, jobs) {
		r := res.(*sectionResult)
		out[r.index] = r.info
		done[r.index] = true
	}
	for i, ok := range done {
		if !ok {
			out[i] = c.classify(ctx, sections[i])
		}
	}
	return out
}

func (c *Classifier) classify(ctx context.Context, section model.Section) model.SectionClassification {
	info := model.SectionClassification{
		SectionTitle: section.Title,
		Preview:      Preview(section.Content),
	}

	if c.oracle != nil {
		result, err := c.oracle.ClassifyClause(ctx, section.Content)
		if err == nil && result.Label != "" {
			info.Label = result.Label
			info.Confidence = result.Confidence
			info.Scores = result.Scores
			info.Source = string(model.SourceModel)
			return info
		}
		if err != nil {
			c.warnings.Addf("clause classification failed for %q, using keywords: %v", section.Title, err)
		}
	}

	result, _ := c.fallback.ClassifyClause(ctx, section.Content)
	info.Label = result.Label
	info.Confidence = result.Confidence
	info.Scores = result.Scores
	info.Source = string(model.SourceRule)
	return info
}

// Preview returns the first hundred characters of content followed by "..."
func Preview(content string) string {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= previewLength {
		return content + "..."
	}
	runes := []rune(content)
	return string(runes[:previewLength]) + "..."
}

type sectionJob struct {
	index      int
	section    model.Section
	classifier *Classifier
}

func (j *sectionJob) Execute(ctx context.Context) worker.Result {
	return &sectionResult{index: j.index, info: j.classifier.classify(ctx, j.section)}
}

type sectionResult struct {
	index int
	info  model.SectionClassification
}

func (r *sectionResult) GetError() error { return nil }
func (r *sectionResult) Seq() int        { return r.index }
