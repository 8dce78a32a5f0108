// Package extract splits section text into sentences and derives the
// responsible party, action and conditions of each obligation or right.
package extract

import (
	"context"

	"github.com/ppiankov/lexis/internal/model"
	"github.com/ppiankov/lexis/internal/oracle"
	"github.com/ppiankov/lexis/internal/patterns"
	"github.com/ppiankov/lexis/internal/util"
)

// FactExtractor derives party, action and conditions with syntax-first,
// lexical-second strategy chains
type FactExtractor struct {
	parser   oracle.Parser
	warnings *util.Warnings

	party      chain[string]
	action     chain[string]
	conditions chain[[]string]
}

// NewFactExtractor creates an extractor. parser may be nil, which leaves
// only the lexical strategies.
func NewFactExtractor(parser oracle.Parser, warnings *util.Warnings) *FactExtractor {
	return &FactExtractor{
		parser:   parser,
		warnings: warnings,
		party: chain[string]{
			lexicalParty,
			syntacticParty,
		},
		action: chain[string]{
			syntacticAction,
			lexicalAction,
		},
		conditions: chain[[]string]{
			syntacticConditions,
			lexicalConditions,
		},
	}
}

// Extract builds the item for an obligation or right sentence
func (e *FactExtractor) Extract(ctx context.Context, sentence model.Sentence, cls model.Classification) model.ExtractionItem {
	s := &sentenceContext{
		ctx:      ctx,
		text:     sentence.Text,
		kind:     cls.Kind,
		parser:   e.parser,
		warnings: e.warnings,
	}

	return model.ExtractionItem{
		Sentence:   sentence,
		Kind:       cls.Kind,
		Party:      e.party.resolve(s, model.UnspecifiedParty),
		Action:     e.action.resolve(s, model.UnspecifiedAction),
		Conditions: e.conditions.resolve(s, []string{}),
		Provenance: cls.Provenance,
	}
}

func lexicalParty(s *sentenceContext) (string, bool) {
	return patterns.MatchParty(s.text)
}

// lexicalAction takes the text after a cue of the sentence's own kind,
// then after a cue of the other kind
func lexicalAction(s *sentenceContext) (string, bool) {
	first, second := patterns.Obligations, patterns.Rights
	if s.kind == model.KindRight {
		first, second = second, first
	}
	if action, ok := first.ActionAfter(s.text); ok {
		return action, true
	}
	return second.ActionAfter(s.text)
}

func lexicalConditions(s *sentenceContext) ([]string, bool) {
	spans := patterns.FindConditions(s.text)
	if len(spans) == 0 {
		return nil, false
	}
	out := make([]string, len(spans))
	for i, span := range spans {
		out[i] = span.Text
	}
	return out, true
}
