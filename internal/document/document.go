// Package document loads contracts from files and URLs and prepares their
// text for analysis: adapter-based text extraction, cleaning and section
// segmentation.
package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/lexis/internal/model"
	"github.com/ppiankov/lexis/internal/worker"
)

// Document is a loaded source ready for analysis
type Document struct {
	Source   string          // File path, URL or "-" for stdin
	Title    string          // From the source when available, else derived from its name
	Adapter  string          // Adapter that produced Text
	Text     string          // Cleaned text
	Sections []model.Section // Segmented Text
	Warnings []string        // Non-fatal intake issues
}

// Loader resolves sources to documents
type Loader struct {
	registry *Registry
	fetcher  *Fetcher
	maxBytes int64
	stdin    io.Reader
}

// NewLoader creates a loader. limiter paces URL fetches per host and may be nil.
func NewLoader(cfg model.HTTPConfig, limiter *worker.Limiter) *Loader {
	fetcher := NewFetcher(cfg, limiter)
	return &Loader{
		registry: NewRegistry(),
		fetcher:  fetcher,
		maxBytes: fetcher.maxBytes,
		stdin:    os.Stdin,
	}
}

// IsURL reports whether source should be fetched over HTTP
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load reads, extracts, cleans and segments source
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	var (
		data        []byte
		contentType string
		name        = source
		warnings    []string
		err         error
	)

	switch {
	case IsURL(source):
		result, ferr := l.fetcher.FetchWithRetry(ctx, source)
		if ferr != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, ferr)
		}
		data, contentType, name = result.Body, result.ContentType, result.FinalURL
		if result.Truncated {
			warnings = append(warnings, fmt.Sprintf("document truncated to %d bytes", l.maxBytes))
		}

	case source == "-":
		data, err = io.ReadAll(io.LimitReader(l.stdin, l.maxBytes))
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

	default:
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
	}

	return l.FromBytes(source, name, contentType, data, warnings)
}

// FromBytes builds a document from already-loaded content. name selects
// the adapter by extension when contentType is empty.
func (l *Loader) FromBytes(source, name, contentType string, data []byte, warnings []string) (*Document, error) {
	adapter := l.registry.FindAdapter(name, contentType)
	text, title, err := adapter.Extract(data)
	if err != nil {
		return nil, fmt.Errorf("extract %s text: %w", adapter.Name(), err)
	}

	cleaned := Clean(text)
	if cleaned == "" {
		warnings = append(warnings, "document contains no text")
	}

	if title == "" {
		title = titleFromName(name)
	}

	return &Document{
		Source:   source,
		Title:    title,
		Adapter:  adapter.Name(),
		Text:     cleaned,
		Sections: Segment(cleaned),
		Warnings: warnings,
	}, nil
}

func titleFromName(name string) string {
	switch {
	case name == "-":
		return "stdin"
	case IsURL(name):
		return subjectFromURL(name)
	default:
		base := filepath.Base(name)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
}
