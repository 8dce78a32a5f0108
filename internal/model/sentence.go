package model

// Sentence is a span of section text. Start and End are byte offsets
// within the originating section content.
type Sentence struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Kind is the deontic category of a sentence
type Kind string

const (
	KindObligation Kind = "obligation"
	KindRight      Kind = "right"
	KindOther      Kind = "other"
)

// Provenance records which cascade stage produced a classification
type Provenance string

const (
	ProvenanceRule  Provenance = "rule"
	ProvenanceModel Provenance = "model"
)

// Classification is the cascade verdict for one sentence.
// Score is only meaningful when Provenance is ProvenanceModel.
type Classification struct {
	Kind       Kind       `json:"kind"`
	Provenance Provenance `json:"provenance"`
	Score      float64    `json:"score,omitempty"`
}

// IsActionable reports whether the sentence carries an obligation or a right
func (c Classification) IsActionable() bool {
	return c.Kind == KindObligation || c.Kind == KindRight
}
