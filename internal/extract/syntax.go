package extract

import (
	"strings"

	"github.com/ppiankov/lexis/internal/patterns"
	"github.com/ppiankov/lexis/internal/syntax"
)

var (
	subjectDeps  = []string{"nsubj", "nsubjpass"}
	objectDeps   = []string{"dobj", "obj", "pobj", "attr"}
	modifierDeps = []string{"amod", "compound", "det", "nummod"}
	nounDeps     = []string{"compound", "amod", "det"}
)

// syntacticParty finds the subject of a modal or auxiliary predicate
func syntacticParty(s *sentenceContext) (string, bool) {
	tree := s.Tree()
	if tree == nil {
		return "", false
	}

	for i, tok := range tree.Tokens() {
		if !tree.HasDep(i, subjectDeps...) || tok.Head == i {
			continue
		}
		if !isDeonticPredicate(tree, tok.Head) {
			continue
		}

		left := i
		for _, child := range tree.Children(i) {
			if child < left && tree.HasDep(child, nounDeps...) {
				left = child
			}
		}
		if party := strings.TrimSpace(tree.SpanText(left, i)); party != "" {
			return party, true
		}
	}
	return "", false
}

// isDeonticPredicate reports whether token i is an auxiliary, governs an
// auxiliary or modal, or is itself a cue word
func isDeonticPredicate(tree *syntax.Tree, i int) bool {
	pred := tree.Token(i)
	if pred.POS == "AUX" || patterns.IsCue(pred.Text) {
		return true
	}
	for _, child := range tree.Children(i) {
		tok := tree.Token(child)
		if tree.HasDep(child, "aux", "auxpass") || tok.Tag == "MD" || patterns.IsCue(tok.Text) {
			return true
		}
	}
	return false
}

// syntacticAction assembles "adverbs verb objects" around the main verb
func syntacticAction(s *sentenceContext) (string, bool) {
	tree := s.Tree()
	if tree == nil {
		return "", false
	}

	verb, ok := tree.Root()
	if !ok {
		return "", false
	}
	switch tree.Token(verb).POS {
	case "VERB":
	case "AUX":
		found := false
		for _, child := range tree.Children(verb) {
			if tree.Token(child).POS == "VERB" {
				verb, found = child, true
				break
			}
		}
		if !found {
			return "", false
		}
	default:
		// Headings and fragments rooted on a noun have no action
		return "", false
	}

	var words []string
	for _, child := range tree.Children(verb) {
		if tree.HasDep(child, "advmod") {
			words = append(words, tree.Token(child).Text)
		}
	}
	words = append(words, tree.Token(verb).Text)
	for _, child := range tree.Children(verb) {
		if tree.HasDep(child, objectDeps...) {
			words = append(words, phrase(tree, child)...)
		}
	}

	action := strings.TrimSpace(strings.Join(words, " "))
	return action, action != ""
}

// phrase expands a noun with its left modifiers and trailing prepositional
// phrases
func phrase(tree *syntax.Tree, i int) []string {
	var words []string
	for _, child := range tree.Children(i) {
		if child < i && tree.HasDep(child, modifierDeps...) {
			words = append(words, tree.Token(child).Text)
		}
	}
	words = append(words, tree.Token(i).Text)

	for _, child := range tree.Children(i) {
		if child <= i || !tree.HasDep(child, "prep") {
			continue
		}
		words = append(words, tree.Token(child).Text)
		for _, obj := range tree.Children(child) {
			if tree.HasDep(obj, "pobj") {
				words = append(words, phrase(tree, obj)...)
			}
		}
	}
	return words
}

// syntacticConditions returns the clause governed by each condition marker
func syntacticConditions(s *sentenceContext) ([]string, bool) {
	tree := s.Tree()
	if tree == nil {
		return nil, false
	}

	var conditions []string
	for i, tok := range tree.Tokens() {
		if !tree.HasDep(i, "mark") || !patterns.IsConditionMarker(tok.Text) {
			continue
		}
		head := tok.Head
		clause := strings.TrimSpace(tree.SpanText(tree.LeftEdge(head), tree.RightEdge(head)))
		if clause != "" {
			conditions = append(conditions, clause)
		}
	}
	return conditions, len(conditions) > 0
}
