package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/ppiankov/lexis/internal/model"
	"github.com/ppiankov/lexis/internal/oracle"
	"github.com/ppiankov/lexis/internal/util"
)

// mockZeroShot returns fixed scores and counts calls
type mockZeroShot struct {
	scores map[string]float64
	err    error
	calls  int
}

func (m *mockZeroShot) ZeroShot(ctx context.Context, sentence string, labels []string) (oracle.ZeroShotResult, error) {
	m.calls++
	if m.err != nil {
		return oracle.ZeroShotResult{}, m.err
	}
	return oracle.RankScores(labels, m.scores), nil
}

func TestCascade_RuleStages(t *testing.T) {
	zs := &mockZeroShot{scores: map[string]float64{"neither": 0.99}}
	c := NewCascade(zs, 0.70, nil)

	tests := []struct {
		sentence string
		want     model.Kind
	}{
		{"The Tenant shall pay rent monthly.", model.KindObligation},
		{"The Buyer is required to inspect the goods.", model.KindObligation},
		{"The Licensee MUST keep records.", model.KindObligation},
		{"The Tenant may terminate this lease.", model.KindRight},
		{"Licensor reserves the right to audit.", model.KindRight},
		// Obligation cues win over right cues in the same sentence
		{"The Seller shall deliver and may invoice.", model.KindObligation},
	}

	for _, tt := range tests {
		got := c.Classify(context.Background(), tt.sentence)
		if got.Kind != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.sentence, got.Kind, tt.want)
		}
		if got.Provenance != model.ProvenanceRule {
			t.Errorf("Classify(%q) provenance = %s, want rule", tt.sentence, got.Provenance)
		}
	}

	if zs.calls != 0 {
		t.Errorf("oracle consulted %d times for cue sentences", zs.calls)
	}
}

func TestCascade_ZeroShot(t *testing.T) {
	tests := []struct {
		name     string
		scores   map[string]float64
		wantKind model.Kind
		wantProv model.Provenance
	}{
		{"obligation above threshold", map[string]float64{"obligation": 0.85, "right": 0.1, "neither": 0.05}, model.KindObligation, model.ProvenanceModel},
		{"right above threshold", map[string]float64{"obligation": 0.1, "right": 0.75, "neither": 0.15}, model.KindRight, model.ProvenanceModel},
		{"at threshold is other", map[string]float64{"obligation": 0.70, "right": 0.2, "neither": 0.1}, model.KindOther, model.ProvenanceRule},
		{"neither wins", map[string]float64{"obligation": 0.05, "right": 0.05, "neither": 0.9}, model.KindOther, model.ProvenanceRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zs := &mockZeroShot{scores: tt.scores}
			c := NewCascade(zs, 0.70, nil)

			got := c.Classify(context.Background(), "Rent is payable on the first day of each month.")
			if got.Kind != tt.wantKind || got.Provenance != tt.wantProv {
				t.Errorf("got %+v, want kind %s provenance %s", got, tt.wantKind, tt.wantProv)
			}
			if zs.calls != 1 {
				t.Errorf("expected one oracle call, got %d", zs.calls)
			}
			if got.Provenance == model.ProvenanceModel && got.Score != tt.scores[string(got.Kind)] {
				t.Errorf("expected score %v, got %v", tt.scores[string(got.Kind)], got.Score)
			}
		})
	}
}

func TestCascade_EmptySentence(t *testing.T) {
	zs := &mockZeroShot{scores: map[string]float64{"obligation": 1}}
	c := NewCascade(zs, 0.70, nil)

	for _, s := range []string{"", "   \n\t"} {
		if got := c.Classify(context.Background(), s); got.Kind != model.KindOther {
			t.Errorf("Classify(%q) = %s, want other", s, got.Kind)
		}
	}
	if zs.calls != 0 {
		t.Error("oracle should not be called for empty sentences")
	}
}

func TestCascade_OracleFailure(t *testing.T) {
	warnings := util.NewWarnings(nil)
	zs := &mockZeroShot{err: errors.New("connection refused")}
	c := NewCascade(zs, 0.70, warnings)

	got := c.Classify(context.Background(), "Rent is payable monthly.")
	if got.Kind != model.KindOther {
		t.Errorf("expected other on oracle failure, got %s", got.Kind)
	}
	if len(warnings.List()) != 1 {
		t.Errorf("expected a warning, got %v", warnings.List())
	}
}

func TestCascade_NilOracle(t *testing.T) {
	c := NewCascade(nil, 0, nil)
	if got := c.Classify(context.Background(), "Rent is payable monthly."); got.Kind != model.KindOther {
		t.Errorf("expected other without oracle, got %s", got.Kind)
	}
	if c.threshold != DefaultThreshold {
		t.Errorf("expected default threshold, got %v", c.threshold)
	}
}
