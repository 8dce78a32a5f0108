package extract

import (
	"context"

	"github.com/ppiankov/lexis/internal/model"
	"github.com/ppiankov/lexis/internal/oracle"
	"github.com/ppiankov/lexis/internal/syntax"
	"github.com/ppiankov/lexis/internal/util"
)

// strategy derives one fact from a sentence, reporting false when it has
// nothing to offer
type strategy[T any] func(s *sentenceContext) (T, bool)

// chain tries strategies in order and keeps the first result
type chain[T any] []strategy[T]

func (c chain[T]) resolve(s *sentenceContext, fallback T) T {
	for _, st := range c {
		if v, ok := st(s); ok {
			return v
		}
	}
	return fallback
}

// sentenceContext carries one sentence through the chains and parses it
// at most once
type sentenceContext struct {
	ctx      context.Context
	text     string
	kind     model.Kind
	parser   oracle.Parser
	warnings *util.Warnings

	parsed bool
	tree   *syntax.Tree
}

// Tree returns the dependency parse, or nil when no parser is configured
// or parsing failed
func (s *sentenceContext) Tree() *syntax.Tree {
	if s.parsed {
		return s.tree
	}
	s.parsed = true

	if s.parser == nil {
		return nil
	}
	tree, err := s.parser.Parse(s.ctx, s.text)
	if err != nil {
		s.warnings.Addf("dependency parse failed: %v", err)
		return nil
	}
	s.tree = tree
	return s.tree
}
