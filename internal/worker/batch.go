package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/lexis/internal/model"
)

// Analyzer defines the interface for analyzing one document source
type Analyzer interface {
	AnalyzeSource(ctx context.Context, source string, profile *model.ReaderProfile) (*model.Report, error)
}

// AnalyzeJob represents one document analysis
type AnalyzeJob struct {
	Index    int
	Source   string
	Profile  *model.ReaderProfile
	Analyzer Analyzer
}

// Execute executes the analysis job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.AnalyzeSource(ctx, j.Source, j.Profile)
	return &AnalyzeResult{
		index:  j.Index,
		Source: j.Source,
		Report: report,
		Error:  err,
	}
}

// AnalyzeResult represents the result of an analysis job
type AnalyzeResult struct {
	index  int
	Source string
	Report *model.Report
	Error  error
}

// GetError returns the error from the analysis
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// Seq returns the position of the source in the batch
func (r *AnalyzeResult) Seq() int {
	return r.index
}

// BatchProcessor analyzes multiple documents concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessSources analyzes sources concurrently, returning results in input order
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string, profile *model.ReaderProfile) []*AnalyzeResult {
	if len(sources) == 0 {
		return []*AnalyzeResult{}
	}

	jobs := make([]Job, len(sources))
	for i, source := range sources {
		jobs[i] = &AnalyzeJob{
			Index:    i,
			Source:   source,
			Profile:  profile,
			Analyzer: b.analyzer,
		}
	}

	results := Run(ctx, b.concurrency, jobs)

	// Sources never started (cancelled batch) are reported as failures
	out := make([]*AnalyzeResult, len(sources))
	for _, result := range results {
		r := result.(*AnalyzeResult)
		out[r.index] = r
	}
	for i, r := range out {
		if r == nil {
			out[i] = &AnalyzeResult{index: i, Source: sources[i], Error: fmt.Errorf("not started: %w", context.Cause(ctx))}
		}
	}

	return out
}

// ProcessFile reads sources from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, profile *model.ReaderProfile) ([]*AnalyzeResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.ProcessSources(ctx, sources, profile), nil
}

// ReadSourcesFromFile reads file paths or URLs from a file (one per line)
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
