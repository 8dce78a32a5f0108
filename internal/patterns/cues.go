// Package patterns holds the static lexical detectors shared by the
// classifier cascade, the fact extractor and the entity recognizer.
package patterns

import (
	"regexp"
	"strings"
)

// CueSet is an ordered group of regular expressions signalling one
// deontic category
type CueSet struct {
	name     string
	cues     []*regexp.Regexp
	captures []*regexp.Regexp // cue followed by the text up to the next clause boundary
}

func newCueSet(name string, sources ...string) *CueSet {
	set := &CueSet{name: name}
	for _, src := range sources {
		set.cues = append(set.cues, regexp.MustCompile(`(?i)`+src))
		set.captures = append(set.captures, regexp.MustCompile(`(?i)`+src+`\s+(.*?)(?:[.,;:]|$)`))
	}
	return set
}

// Obligations signal a duty
var Obligations = newCueSet("obligation",
	`\b(?:shall|must|required to|obligated to|has a duty to|is obliged to|will|agrees to)\b`,
	`\b(?:responsible for|liable for|bound to|committed to)\b`,
	`\b(?:is required|are required|be required)\b`,
)

// Rights signal an entitlement or permission
var Rights = newCueSet("right",
	`\b(?:may|can|is entitled to|has the right to|is authorized to)\b`,
	`\b(?:is permitted to|are permitted to|has the option to|reserves the right)\b`,
	`\b(?:is allowed to|are allowed to|has liberty to|has freedom to)\b`,
)

// Name returns the category name
func (c *CueSet) Name() string {
	return c.name
}

// Match returns the first cue found in text, checking patterns in order
func (c *CueSet) Match(text string) (string, bool) {
	for _, re := range c.cues {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}

// Matches reports whether any cue occurs in text
func (c *CueSet) Matches(text string) bool {
	_, ok := c.Match(text)
	return ok
}

// ActionAfter returns the text following the first cue that is followed by
// anything, up to the next period, comma, semicolon or colon
func (c *CueSet) ActionAfter(text string) (string, bool) {
	for _, re := range c.captures {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if action := strings.TrimSpace(m[1]); action != "" {
			return action, true
		}
	}
	return "", false
}

// IsCue reports whether a single word matches an obligation or right cue
func IsCue(word string) bool {
	return Obligations.Matches(word) || Rights.Matches(word)
}
