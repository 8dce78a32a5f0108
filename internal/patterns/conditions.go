package patterns

import (
	"regexp"
	"sort"
	"strings"
)

// ConditionMarkers introduce a governing condition
var ConditionMarkers = []string{
	"if", "when", "provided that", "so long as", "in the event",
	"subject to", "unless", "except if", "on condition that", "in case",
}

var (
	markerSet     = make(map[string]bool, len(ConditionMarkers))
	markerPattern []*regexp.Regexp
)

func init() {
	for _, marker := range ConditionMarkers {
		markerSet[marker] = true
		words := strings.Join(strings.Fields(marker), `\s+`)
		markerPattern = append(markerPattern, regexp.MustCompile(`(?i)\b`+words+`\s+[^.,;]*`))
	}
}

// IsConditionMarker reports whether a lowercased word is a condition marker
func IsConditionMarker(word string) bool {
	return markerSet[strings.ToLower(word)]
}

// Span is a half-open byte range of matched text
type Span struct {
	Start int
	End   int
	Text  string
}

// FindConditions returns every marker clause in text, ordered by position.
// A match nested inside an earlier, longer match ("if" inside "except if")
// is dropped.
func FindConditions(text string) []Span {
	var spans []Span
	for _, re := range markerPattern {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			clause := strings.TrimRight(text[loc[0]:loc[1]], " \t\n")
			if clause == "" {
				continue
			}
			spans = append(spans, Span{Start: loc[0], End: loc[0] + len(clause), Text: clause})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})

	var kept []Span
	for _, span := range spans {
		if n := len(kept); n > 0 && span.End <= kept[n-1].End {
			continue
		}
		kept = append(kept, span)
	}
	return kept
}
