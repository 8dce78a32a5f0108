package document

import (
	"regexp"
	"strings"

	"github.com/ppiankov/lexis/internal/model"
)

// EntireDocument titles the single section of a document without headers
const EntireDocument = "Entire Document"

// Preamble titles text that precedes the first header
const Preamble = "Preamble"

var (
	horizontalSpace = regexp.MustCompile(`[^\S\n]+`)
	blankLines      = regexp.MustCompile(`\n{2,}`)
	disallowedChars = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s.,;:()\[\]{}\-"'?$§%/&]`)

	// Headers start a line: "ARTICLE IV. Termination" or "3.1 Payment Terms"
	sectionHeader = regexp.MustCompile(`(?m)^[ \t]*(ARTICLE[ \t]+[IVXLCDM]+\.?[ \t]*[A-Z][A-Za-z \t]*|[0-9]+\.[0-9]+[ \t]+[A-Z][A-Za-z \t]*)`)
)

// Clean normalizes whitespace and strips characters outside word
// characters, whitespace and common legal punctuation. Line breaks are kept
// so Segment can find headers; blank lines collapse to one break.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = disallowedChars.ReplaceAllString(text, "")
	text = horizontalSpace.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n")

	return strings.TrimSpace(text)
}

// Segment splits cleaned text into titled sections. Each header's content
// runs to the next header; the header line itself is the title. Text before
// the first header becomes a Preamble section. Without headers the whole
// text is one "Entire Document" section. Blank input yields no sections.
func Segment(text string) []model.Section {
	if strings.TrimSpace(text) == "" {
		return []model.Section{}
	}

	matches := sectionHeader.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []model.Section{{Title: EntireDocument, Content: strings.TrimSpace(text)}}
	}

	sections := make([]model.Section, 0, len(matches)+1)
	if preamble := strings.TrimSpace(text[:matches[0][0]]); preamble != "" {
		sections = append(sections, model.Section{Title: Preamble, Content: preamble})
	}

	for i, m := range matches {
		titleStart, titleEnd := m[2], m[3]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		content := strings.TrimLeft(text[titleEnd:end], " \t.:-")
		sections = append(sections, model.Section{
			Title:   strings.TrimSpace(text[titleStart:titleEnd]),
			Content: strings.TrimSpace(content),
		})
	}

	return sections
}
