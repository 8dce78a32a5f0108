// Package syntax models dependency parses of single sentences.
package syntax

import (
	"fmt"
	"sort"
	"strings"
)

// Token is one node of a dependency tree
type Token struct {
	Index  int    `json:"i"`
	Text   string `json:"text"`
	Offset int    `json:"idx"`  // Byte offset of the token in the sentence
	POS    string `json:"pos"`  // Coarse part of speech (VERB, AUX, NOUN...)
	Tag    string `json:"tag"`  // Fine-grained tag (MD for modals)
	Dep    string `json:"dep"`  // Relation to head (nsubj, dobj, ROOT...)
	Head   int    `json:"head"` // Index of the head token; the root points at itself
}

// Tree is a dependency parse of one sentence
type Tree struct {
	text     string
	tokens   []Token
	children [][]int
}

// NewTree validates tokens and indexes their children
func NewTree(text string, tokens []Token) (*Tree, error) {
	tree := &Tree{
		text:     text,
		tokens:   make([]Token, len(tokens)),
		children: make([][]int, len(tokens)),
	}

	for i, tok := range tokens {
		if tok.Head < 0 || tok.Head >= len(tokens) {
			return nil, fmt.Errorf("token %d (%q): head %d out of range", i, tok.Text, tok.Head)
		}
		tok.Index = i
		tree.tokens[i] = tok
	}

	for i, tok := range tree.tokens {
		if tok.Head != i {
			tree.children[tok.Head] = append(tree.children[tok.Head], i)
		}
	}
	for _, kids := range tree.children {
		sort.Ints(kids)
	}

	return tree, nil
}

// Len returns the number of tokens
func (t *Tree) Len() int {
	return len(t.tokens)
}

// Token returns the token at index i
func (t *Tree) Token(i int) Token {
	return t.tokens[i]
}

// Tokens returns all tokens in sentence order
func (t *Tree) Tokens() []Token {
	return t.tokens
}

// Children returns the dependents of token i in sentence order
func (t *Tree) Children(i int) []int {
	return t.children[i]
}

// Head returns the head token of token i
func (t *Tree) Head(i int) Token {
	return t.tokens[t.tokens[i].Head]
}

// Root returns the index of the sentence root
func (t *Tree) Root() (int, bool) {
	for i, tok := range t.tokens {
		if strings.EqualFold(tok.Dep, "ROOT") || tok.Head == i {
			return i, true
		}
	}
	return 0, false
}

// LeftEdge returns the leftmost token index of the subtree rooted at i
func (t *Tree) LeftEdge(i int) int {
	left := i
	for _, child := range t.children[i] {
		if edge := t.LeftEdge(child); edge < left {
			left = edge
		}
	}
	return left
}

// RightEdge returns the rightmost token index of the subtree rooted at i
func (t *Tree) RightEdge(i int) int {
	right := i
	for _, child := range t.children[i] {
		if edge := t.RightEdge(child); edge > right {
			right = edge
		}
	}
	return right
}

// SpanText returns the sentence text covering tokens from..to inclusive.
// Original spacing is kept when token offsets line up with the sentence;
// otherwise token texts are joined with single spaces.
func (t *Tree) SpanText(from, to int) string {
	if from < 0 || to >= len(t.tokens) || from > to {
		return ""
	}

	first, last := t.tokens[from], t.tokens[to]
	end := last.Offset + len(last.Text)
	if first.Offset >= 0 && end <= len(t.text) && first.Offset <= end &&
		strings.HasPrefix(t.text[first.Offset:], first.Text) &&
		strings.HasSuffix(t.text[:end], last.Text) {
		return t.text[first.Offset:end]
	}

	words := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		words = append(words, t.tokens[i].Text)
	}
	return strings.Join(words, " ")
}

// HasDep reports whether token i carries one of the given relations
func (t *Tree) HasDep(i int, deps ...string) bool {
	for _, dep := range deps {
		if t.tokens[i].Dep == dep {
			return true
		}
	}
	return false
}
