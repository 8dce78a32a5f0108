package extract

import (
	"strings"

	"github.com/ppiankov/lexis/internal/model"
)

// abbreviations never end a sentence
var abbreviations = map[string]bool{
	"inc.": true, "co.": true, "corp.": true, "ltd.": true, "llc.": true,
	"no.": true, "nos.": true, "sec.": true, "art.": true, "para.": true,
	"e.g.": true, "i.e.": true, "vs.": true, "v.": true,
	"mr.": true, "mrs.": true, "ms.": true, "dr.": true, "st.": true,
	"u.s.": true, "approx.": true, "cf.": true,
}

// SplitSentences splits text at '.', '!' and '?' followed by whitespace or
// the end of text. Abbreviations and leading list numbers ("1.") do not
// split. Offsets refer to text and sentence text is trimmed.
func SplitSentences(text string) []model.Sentence {
	var sentences []model.Sentence
	start := 0

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}

		// Absorb repeated terminators and closing quotes or brackets
		end := i + 1
		for end < len(text) && strings.IndexByte(`.!?"')]`, text[end]) >= 0 {
			end++
		}
		if end < len(text) && !isSpace(text[end]) {
			continue
		}
		if c == '.' && !endsSentence(text[start:end]) {
			continue
		}

		sentences = appendSentence(sentences, text, start, end)
		start = end
		i = end - 1
	}

	return appendSentence(sentences, text, start, len(text))
}

// endsSentence reports whether the period closing segment is a full stop
func endsSentence(segment string) bool {
	fields := strings.Fields(segment)
	if len(fields) == 0 {
		return false
	}
	last := strings.ToLower(fields[len(fields)-1])
	if abbreviations[last] {
		return false
	}
	// "1." or "12." opening a list item
	if len(fields) == 1 && isEnumerator(last) {
		return false
	}
	return true
}

func isEnumerator(word string) bool {
	digits := strings.TrimSuffix(word, ".")
	if digits == "" || len(digits) > 2 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func appendSentence(sentences []model.Sentence, text string, start, end int) []model.Sentence {
	for start < end && isSpace(text[start]) {
		start++
	}
	for end > start && isSpace(text[end-1]) {
		end--
	}
	if start == end {
		return sentences
	}
	return append(sentences, model.Sentence{Text: text[start:end], Start: start, End: end})
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
