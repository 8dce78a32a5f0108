// Package clause labels whole sections with a clause category.
package clause

import (
	"context"
	"regexp"

	"github.com/ppiankov/lexis/internal/oracle"
)

// LabelOther is returned when no keyword matches
const LabelOther = "other"

type keywordRule struct {
	label   string
	pattern *regexp.Regexp
}

// keywordRules are checked in order; earlier labels win ties
var keywordRules = []keywordRule{
	{"liability", regexp.MustCompile(`(?i)\b(?:liable|liability|damages|indemnif|warrant|disclaim)`)},
	{"privacy", regexp.MustCompile(`(?i)\b(?:privacy|personal data|personal information|data protection|confidential)`)},
	{"payment", regexp.MustCompile(`(?i)\b(?:payment|pay|fee|cost|expense|price|compensation|invoice)`)},
	{"termination", regexp.MustCompile(`(?i)\b(?:terminat|cancellation|expiration|end of term)`)},
	{"rights", regexp.MustCompile(`(?i)\b(?:entitled to|right to|may|permitted to|option to)\b`)},
	{"obligation", regexp.MustCompile(`(?i)\b(?:shall|must|required to|obligated|duty to)\b`)},
}

// Labels lists the categories the keyword classifier can return
func Labels() []string {
	labels := make([]string, len(keywordRules))
	for i, rule := range keywordRules {
		labels[i] = rule.label
	}
	return labels
}

// Keywords is a rule-based ClauseClassifier scoring each label by its
// share of keyword hits. It never fails.
type Keywords struct{}

// ClassifyClause implements oracle.ClauseClassifier
func (Keywords) ClassifyClause(ctx context.Context, content string) (oracle.ClauseResult, error) {
	counts := make(map[string]float64, len(keywordRules))
	total := 0.0
	for _, rule := range keywordRules {
		n := float64(len(rule.pattern.FindAllStringIndex(content, -1)))
		counts[rule.label] = n
		total += n
	}

	if total == 0 {
		return oracle.ClauseResult{Label: LabelOther, Confidence: 0, Scores: map[string]float64{}}, nil
	}

	for label := range counts {
		counts[label] /= total
	}
	return oracle.ClauseFromScores(Labels(), counts), nil
}
