// Package ner provides a local token classifier built on prose.
package ner

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/ppiankov/lexis/internal/oracle"
)

// DefaultScore is reported for every prose entity; the model exposes no
// per-entity probability
const DefaultScore = 0.85

// Prose implements oracle.TokenClassifier with prose's averaged perceptron
// NER model. Labels are prose's own (PERSON, GPE, ORG).
type Prose struct {
	score float64
}

// NewProse creates a prose-backed token classifier
func NewProse() *Prose {
	return &Prose{score: DefaultScore}
}

// ClassifyTokens implements oracle.TokenClassifier
func (p *Prose) ClassifyTokens(ctx context.Context, chunk string) ([]oracle.TokenEntity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(chunk) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(chunk, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}

	ents := doc.Entities()
	hits := make([]found, 0, len(ents))
	for _, ent := range ents {
		hits = append(hits, found{text: ent.Text, label: ent.Label})
	}
	return locate(chunk, hits, p.score), nil
}

type found struct {
	text  string
	label string
}

// locate assigns offsets to entities reported in text order by searching
// forward from the end of the previous match. Entities whose text cannot
// be found verbatim are skipped.
func locate(text string, entities []found, score float64) []oracle.TokenEntity {
	var out []oracle.TokenEntity
	cursor := 0
	for _, ent := range entities {
		if ent.text == "" {
			continue
		}
		i := strings.Index(text[cursor:], ent.text)
		if i < 0 {
			// prose may report entities out of order; retry from the start
			if i = strings.Index(text, ent.text); i < 0 {
				continue
			}
		} else {
			i += cursor
		}

		end := i + len(ent.text)
		out = append(out, oracle.TokenEntity{
			Label: ent.label,
			Text:  ent.text,
			Start: i,
			End:   end,
			Score: score,
		})
		if end > cursor {
			cursor = end
		}
	}
	return out
}
