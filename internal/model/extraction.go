package model

// Sentinels returned when no strategy finds a value
const (
	UnspecifiedParty  = "Unspecified Party"
	UnspecifiedAction = "Unspecified Action"
)

// Section is a titled span of document text produced by the segmenter
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ExtractionItem holds the facts derived from one obligation or right sentence
type ExtractionItem struct {
	Sentence   Sentence   `json:"sentence"`
	Kind       Kind       `json:"kind"`
	Party      string     `json:"party"`
	Action     string     `json:"action"`
	Conditions []string   `json:"conditions"`
	Provenance Provenance `json:"provenance"` // How the sentence was classified
}

// SectionExtraction buckets every sentence of one section
type SectionExtraction struct {
	SectionTitle string           `json:"section_title"`
	Obligations  []ExtractionItem `json:"obligations"`
	Rights       []ExtractionItem `json:"rights"`
	Other        []Sentence       `json:"other"`
}

// NewSectionExtraction returns an extraction with non-nil buckets
func NewSectionExtraction(title string) SectionExtraction {
	return SectionExtraction{
		SectionTitle: title,
		Obligations:  []ExtractionItem{},
		Rights:       []ExtractionItem{},
		Other:        []Sentence{},
	}
}

// SectionClassification is the clause-type verdict for one section
type SectionClassification struct {
	SectionTitle string             `json:"section_title"`
	Preview      string             `json:"section_preview"`
	Label        string             `json:"classification"`
	Confidence   float64            `json:"confidence"`
	Scores       map[string]float64 `json:"all_labels,omitempty"`
	Source       string             `json:"source"` // "model" or "rule"
}
