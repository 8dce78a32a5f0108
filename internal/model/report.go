package model

import "time"

// Report represents the complete Lexis analysis of one document
type Report struct {
	ID         string    `json:"id"`          // Unique run identifier
	Source     string    `json:"source"`      // File path or URL that was analyzed
	AnalyzedAt time.Time `json:"analyzed_at"` // When the analysis ran

	Entities        []Entity     `json:"detailed_entities"` // Merged, non-overlapping entities
	GroupedEntities EntityGroups `json:"grouped_entities"`  // Entity texts by label

	Sections []SectionReport `json:"sections"`

	// Insights is empty when no reader profile was supplied
	Insights []Insight `json:"personalized_insights"`

	Stats    Stats    `json:"stats"`
	Warnings []string `json:"warnings,omitempty"` // Oracle degradations and other non-fatal issues
}

// SectionReport pairs a section's clause classification with its extraction
type SectionReport struct {
	Info        SectionClassification `json:"section_info"`
	Extractions SectionExtraction     `json:"extractions"`
}

// Stats summarizes what was found
type Stats struct {
	Sections          int `json:"sections"`
	Sentences         int `json:"sentences"`
	Entities          int `json:"entities"`
	Obligations       int `json:"obligations"`
	Rights            int `json:"rights"`
	UnspecifiedParty  int `json:"unspecified_party"`  // Items whose party fell back to the sentinel
	UnspecifiedAction int `json:"unspecified_action"` // Items whose action fell back to the sentinel
	ModelClassified   int `json:"model_classified"`   // Sentences labeled by the zero-shot oracle
	Insights          int `json:"insights"`
}

// Tally computes statistics for a report's sections and entities
func (r *Report) Tally() {
	stats := Stats{
		Sections: len(r.Sections),
		Entities: len(r.Entities),
		Insights: len(r.Insights),
	}

	for _, section := range r.Sections {
		ext := section.Extractions
		stats.Obligations += len(ext.Obligations)
		stats.Rights += len(ext.Rights)
		stats.Sentences += len(ext.Obligations) + len(ext.Rights) + len(ext.Other)

		for _, items := range [][]ExtractionItem{ext.Obligations, ext.Rights} {
			for _, item := range items {
				if item.Party == UnspecifiedParty {
					stats.UnspecifiedParty++
				}
				if item.Action == UnspecifiedAction {
					stats.UnspecifiedAction++
				}
				if item.Provenance == ProvenanceModel {
					stats.ModelClassified++
				}
			}
		}
	}

	r.Stats = stats
}
