package patterns

import (
	"regexp"

	"github.com/ppiankov/lexis/internal/model"
)

// EntityRule is a rule-based entity detector
type EntityRule struct {
	Label   model.EntityLabel
	Pattern *regexp.Regexp
}

// EntityRules run over whole documents. Order is only relevant for
// reporting; the merger decides between overlapping matches.
var EntityRules = []EntityRule{
	{
		Label: model.LabelDate,
		Pattern: regexp.MustCompile(`(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}` +
			`|\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2}`),
	},
	{
		Label:   model.LabelAmount,
		Pattern: regexp.MustCompile(`\$\s*\d+(?:,\d{3})*(?:\.\d{2})?|\d+(?:,\d{3})*(?:\.\d{2})?\s*(?:dollars|USD)`),
	},
	{
		Label: model.LabelParty,
		// Names never span lines, so headings stay out of party names
		Pattern: regexp.MustCompile(`(?:Plaintiff|Defendant|Petitioner|Respondent|Claimant)(?:[ \t][A-Z][a-z]+)+` +
			`|(?:[A-Z][a-z]*\.?[ \t])*(?:[A-Z][a-z]+)(?:[ \t](?:LLC|Inc\.|Corporation|Corp\.|Ltd\.|Limited|Company|Co\.))`),
	},
	{
		Label:   model.LabelCourt,
		Pattern: regexp.MustCompile(`(?:Supreme|District|Circuit|Federal|State|County|Municipal)\s+Court(?:\s+of\s+[A-Z][a-z]+)*`),
	},
	{
		Label:   model.LabelRegulation,
		Pattern: regexp.MustCompile(`(?:Section|§)\s+\d+(?:\.\d+)*(?:\([a-z]\))*\s+of\s+(?:the\s+)?(?:[A-Z][a-z]+\s+)+(?:Act|Code|Statute|Regulation)`),
	},
	{
		// Defined terms: (the "Effective Date"), (hereinafter "Licensee")
		Label:   model.LabelTerm,
		Pattern: regexp.MustCompile(`\((?:the\s+|hereinafter\s+)?["“][A-Z][A-Za-z ]{1,40}["”]\)`),
	},
}

// RuleCandidates runs every entity rule over text
func RuleCandidates(text string) []model.EntityCandidate {
	var candidates []model.EntityCandidate
	for _, rule := range EntityRules {
		for _, loc := range rule.Pattern.FindAllStringIndex(text, -1) {
			candidates = append(candidates, model.EntityCandidate{
				Label:      rule.Label,
				Text:       text[loc[0]:loc[1]],
				Start:      loc[0],
				End:        loc[1],
				Confidence: 1.0,
				Source:     model.SourceRule,
			})
		}
	}
	return candidates
}
