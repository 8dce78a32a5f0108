// Package personalize matches extracted facts against a reader profile.
package personalize

import (
	"strings"

	"github.com/ppiankov/lexis/internal/model"
)

// Personalize derives insights for profile. Concern matches come first, in
// concern order then section order, followed by obligations whose party
// contains the reader's role. A nil profile yields no insights.
func Personalize(classifications []model.SectionClassification, extractions []model.SectionExtraction, profile *model.ReaderProfile) []model.Insight {
	insights := []model.Insight{}
	if profile == nil {
		return insights
	}

	for _, concern := range profile.Concerns {
		for _, section := range classifications {
			if section.Label == concern {
				insights = append(insights, model.Insight{
					Kind:         model.InsightConcernMatch,
					SectionTitle: section.SectionTitle,
					Payload:      concern,
					Importance:   model.ImportanceHigh,
				})
			}
		}
	}

	role := strings.ToLower(profile.Role)
	if role == "" {
		return insights
	}

	for _, ext := range extractions {
		for _, obligation := range ext.Obligations {
			if strings.Contains(strings.ToLower(obligation.Party), role) {
				insights = append(insights, model.Insight{
					Kind:         model.InsightRoleObligation,
					SectionTitle: ext.SectionTitle,
					Payload:      obligation.Action,
					Importance:   model.ImportanceHigh,
				})
			}
		}
	}

	return insights
}
