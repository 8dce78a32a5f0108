package model

// EntityLabel classifies a named span
type EntityLabel string

const (
	LabelDate       EntityLabel = "DATE"
	LabelAmount     EntityLabel = "AMOUNT"
	LabelParty      EntityLabel = "PARTY"
	LabelCourt      EntityLabel = "COURT"
	LabelRegulation EntityLabel = "REGULATION"
	LabelPerson     EntityLabel = "PERSON"
	LabelLocation   EntityLabel = "LOCATION"
	LabelTerm       EntityLabel = "TERM"
	LabelMisc       EntityLabel = "MISC"
)

// EntitySource records which detector produced a candidate
type EntitySource string

const (
	SourceModel EntitySource = "model" // Token-classification oracle
	SourceRule  EntitySource = "rule"  // Pattern library detector
)

// EntityCandidate is an unreconciled detection from one source.
// Start and End are half-open byte offsets into the analyzed text.
type EntityCandidate struct {
	Label      EntityLabel  `json:"label"`
	Text       string       `json:"text"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Confidence float64      `json:"confidence"`
	Source     EntitySource `json:"source"`
}

// Entity is a candidate that survived merging. No two entities in one
// result set overlap.
type Entity EntityCandidate

// Overlaps reports whether two spans share at least one byte
func (e Entity) Overlaps(other Entity) bool {
	return !(e.End <= other.Start || other.End <= e.Start)
}

// EntityGroups maps a label to entity texts in document order
type EntityGroups map[EntityLabel][]string
