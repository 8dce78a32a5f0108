package personalize

import (
	"testing"

	"github.com/ppiankov/lexis/internal/model"
)

func fixtures() ([]model.SectionClassification, []model.SectionExtraction) {
	classifications := []model.SectionClassification{
		{SectionTitle: "4. Data", Label: "privacy"},
		{SectionTitle: "5. Fees", Label: "payment"},
		{SectionTitle: "6. Records", Label: "privacy"},
	}

	fees := model.NewSectionExtraction("5. Fees")
	fees.Obligations = []model.ExtractionItem{
		{Party: "The Buyer", Action: "pay the invoice"},
		{Party: "Seller", Action: "issue receipts"},
		{Party: "buyer's agent", Action: "countersign"},
	}
	fees.Rights = []model.ExtractionItem{
		{Party: "Buyer", Action: "dispute charges"},
	}

	return classifications, []model.SectionExtraction{model.NewSectionExtraction("4. Data"), fees}
}

func TestPersonalize_NilProfile(t *testing.T) {
	classifications, extractions := fixtures()

	got := Personalize(classifications, extractions, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty insights, got %v", got)
	}
}

func TestPersonalize_ConcernMatch(t *testing.T) {
	classifications, extractions := fixtures()
	profile := &model.ReaderProfile{Concerns: []string{"privacy"}}

	got := Personalize(classifications, extractions, profile)
	if len(got) != 2 {
		t.Fatalf("expected 2 insights, got %+v", got)
	}
	for i, want := range []string{"4. Data", "6. Records"} {
		if got[i].Kind != model.InsightConcernMatch || got[i].SectionTitle != want || got[i].Payload != "privacy" {
			t.Errorf("insight %d: unexpected %+v", i, got[i])
		}
		if got[i].Importance != model.ImportanceHigh {
			t.Errorf("insight %d: expected high importance", i)
		}
	}
}

func TestPersonalize_ConcernIsCaseSensitive(t *testing.T) {
	classifications, extractions := fixtures()
	profile := &model.ReaderProfile{Concerns: []string{"Privacy"}}

	if got := Personalize(classifications, extractions, profile); len(got) != 0 {
		t.Errorf("expected no insights for differently cased concern, got %+v", got)
	}
}

func TestPersonalize_RoleObligation(t *testing.T) {
	classifications, extractions := fixtures()
	profile := &model.ReaderProfile{Concerns: []string{"payment"}, Role: "BUYER"}

	got := Personalize(classifications, extractions, profile)

	want := []model.Insight{
		{Kind: model.InsightConcernMatch, SectionTitle: "5. Fees", Payload: "payment", Importance: model.ImportanceHigh},
		{Kind: model.InsightRoleObligation, SectionTitle: "5. Fees", Payload: "pay the invoice", Importance: model.ImportanceHigh},
		{Kind: model.InsightRoleObligation, SectionTitle: "5. Fees", Payload: "countersign", Importance: model.ImportanceHigh},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d insights, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("insight %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestPersonalize_NoDeduplication(t *testing.T) {
	classifications, extractions := fixtures()
	profile := &model.ReaderProfile{Concerns: []string{"privacy", "privacy"}}

	if got := Personalize(classifications, extractions, profile); len(got) != 4 {
		t.Errorf("expected duplicated concern insights, got %d", len(got))
	}
}

func TestPersonalize_EmptyRoleSkipsObligations(t *testing.T) {
	classifications, extractions := fixtures()
	profile := &model.ReaderProfile{Role: ""}

	if got := Personalize(classifications, extractions, profile); len(got) != 0 {
		t.Errorf("expected no insights for empty role, got %+v", got)
	}
}
