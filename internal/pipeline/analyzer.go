// Package pipeline runs the full contract analysis: intake, entity
// recognition and reconciliation, clause classification, per-sentence
// extraction and personalization, gathered into one report.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/lexis/internal/classify"
	"github.com/ppiankov/lexis/internal/clause"
	"github.com/ppiankov/lexis/internal/document"
	"github.com/ppiankov/lexis/internal/entity"
	"github.com/ppiankov/lexis/internal/extract"
	"github.com/ppiankov/lexis/internal/model"
	"github.com/ppiankov/lexis/internal/personalize"
	"github.com/ppiankov/lexis/internal/util"
	"github.com/ppiankov/lexis/internal/worker"
)

// Analyzer orchestrates the analysis of one document at a time. It is
// safe for concurrent use; per-document state lives in each call.
type Analyzer struct {
	config  *model.Config
	oracles Oracles
	loader  *document.Loader
	warnOut io.Writer
	now     func() time.Time
}

// NewAnalyzer creates an analyzer over explicit oracles. Warnings are
// echoed to warnOut (os.Stderr when nil) and recorded on each report.
func NewAnalyzer(cfg *model.Config, oracles Oracles, warnOut io.Writer) *Analyzer {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if warnOut == nil {
		warnOut = os.Stderr
	}

	return &Analyzer{
		config:  cfg,
		oracles: oracles,
		loader:  document.NewLoader(cfg.HTTP, worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)),
		warnOut: warnOut,
		now:     time.Now,
	}
}

// NewAnalyzerFromConfig creates an analyzer with the oracles cfg enables
func NewAnalyzerFromConfig(cfg *model.Config, warnOut io.Writer) *Analyzer {
	if warnOut == nil {
		warnOut = os.Stderr
	}
	return NewAnalyzer(cfg, BuildOracles(cfg, warnOut), warnOut)
}

// Oracles returns the oracles the analyzer consults
func (a *Analyzer) Oracles() Oracles {
	return a.oracles
}

// AnalyzeSource loads a file, URL or stdin ("-") and analyzes it. Only
// intake failures are returned as errors.
func (a *Analyzer) AnalyzeSource(ctx context.Context, source string, profile *model.ReaderProfile) (*model.Report, error) {
	doc, err := a.loader.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return a.AnalyzeDocument(ctx, doc, profile), nil
}

// AnalyzeText cleans, segments and analyzes raw text
func (a *Analyzer) AnalyzeText(ctx context.Context, source, text string, profile *model.ReaderProfile) *model.Report {
	cleaned := document.Clean(text)
	return a.AnalyzeDocument(ctx, &document.Document{
		Source:   source,
		Text:     cleaned,
		Sections: document.Segment(cleaned),
	}, profile)
}

// AnalyzeDocument runs every stage over a loaded document
func (a *Analyzer) AnalyzeDocument(ctx context.Context, doc *document.Document, profile *model.ReaderProfile) *model.Report {
	warnings := util.NewWarnings(a.warnOut)
	warnings.Add(doc.Warnings...)
	workers := a.config.Concurrency.Workers

	report := &model.Report{
		ID:         uuid.NewString(),
		Source:     doc.Source,
		AnalyzedAt: a.now().UTC(),
	}

	recognizer := entity.NewRecognizer(a.oracles.Tokens, a.config.Recognition, workers)
	candidates, recWarnings := recognizer.Recognize(ctx, doc.Text)
	warnings.Add(recWarnings...)
	report.Entities = entity.Merge(candidates)
	report.GroupedEntities = entity.Group(report.Entities)

	classifications := clause.NewClassifier(a.oracles.Clause, warnings, workers).ClassifySections(ctx, doc.Sections)

	cascade := classify.NewCascade(a.oracles.ZeroShot, a.config.Classification.ZeroShotThreshold, warnings)
	facts := extract.NewFactExtractor(a.oracles.Parser, warnings)
	extractions := extract.NewSectionExtractor(cascade, facts, workers).ExtractSections(ctx, doc.Sections)

	report.Sections = make([]model.SectionReport, len(doc.Sections))
	for i := range doc.Sections {
		report.Sections[i] = model.SectionReport{
			Info:        classifications[i],
			Extractions: extractions[i],
		}
	}

	report.Insights = personalize.Personalize(classifications, extractions, profile)
	report.Warnings = warnings.List()
	report.Tally()

	return report
}
