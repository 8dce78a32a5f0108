package document

import (
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "whitespace",
			in:   "3.1   Payment\tTerms\r\n\r\n\r\n  The Buyer shall pay.  ",
			want: "3.1 Payment Terms\nThe Buyer shall pay.",
		},
		{
			name: "special characters",
			in:   "Fee: €100 — payable!",
			want: "Fee: 100 payable",
		},
		{
			name: "kept punctuation",
			in:   `See § 4(a) [Schedule] {1}; fees are $500/month & 5% "late" charges? Yes-no.`,
			want: `See § 4(a) [Schedule] {1}; fees are $500/month & 5% "late" charges? Yes-no.`,
		},
		{
			name: "unicode letters",
			in:   "Société Générale·S.A.",
			want: "Société GénéraleS.A.",
		},
		{name: "blank", in: " \n\t ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSegment_NumberedHeaders(t *testing.T) {
	text := Clean("3.1 Payment Terms\nThe Buyer shall pay the Seller $500 within 30 days.\n3.2 Termination\nEither party may terminate this Agreement.")

	sections := Segment(text)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d: %+v", len(sections), sections)
	}

	if sections[0].Title != "3.1 Payment Terms" {
		t.Errorf("unexpected title %q", sections[0].Title)
	}
	if sections[0].Content != "The Buyer shall pay the Seller $500 within 30 days." {
		t.Errorf("unexpected content %q", sections[0].Content)
	}
	if sections[1].Title != "3.2 Termination" || sections[1].Content != "Either party may terminate this Agreement." {
		t.Errorf("unexpected second section %+v", sections[1])
	}
}

func TestSegment_ArticleHeaders(t *testing.T) {
	text := "ARTICLE IV. Termination\nThis Agreement may be terminated.\nARTICLE V Governing Law\nThe laws of Delaware apply."

	sections := Segment(text)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d: %+v", len(sections), sections)
	}
	if sections[0].Title != "ARTICLE IV. Termination" {
		t.Errorf("unexpected title %q", sections[0].Title)
	}
	if sections[1].Title != "ARTICLE V Governing Law" || sections[1].Content != "The laws of Delaware apply." {
		t.Errorf("unexpected second section %+v", sections[1])
	}
}

func TestSegment_Preamble(t *testing.T) {
	text := "This Agreement is made between Acme Corp and Beta LLC.\n1.1 Definitions\nTerms have the meanings below."

	sections := Segment(text)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != Preamble || sections[0].Content != "This Agreement is made between Acme Corp and Beta LLC." {
		t.Errorf("unexpected preamble %+v", sections[0])
	}
	if sections[1].Title != "1.1 Definitions" {
		t.Errorf("unexpected title %q", sections[1].Title)
	}
}

func TestSegment_HeaderWithInlineBody(t *testing.T) {
	sections := Segment("2.4 Notices. All notices shall be in writing.")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "2.4 Notices" || sections[0].Content != "All notices shall be in writing." {
		t.Errorf("unexpected section %+v", sections[0])
	}
}

func TestSegment_NoHeaders(t *testing.T) {
	sections := Segment("The Tenant shall keep the premises clean.")
	if len(sections) != 1 || sections[0].Title != EntireDocument {
		t.Fatalf("expected a single %q section, got %+v", EntireDocument, sections)
	}
	if sections[0].Content != "The Tenant shall keep the premises clean." {
		t.Errorf("unexpected content %q", sections[0].Content)
	}
}

func TestSegment_Empty(t *testing.T) {
	if sections := Segment("  "); sections == nil || len(sections) != 0 {
		t.Errorf("expected empty non-nil sections, got %#v", sections)
	}
}

func TestSegment_MidLineNumberIsNotHeader(t *testing.T) {
	sections := Segment("The fee increases by 2.5 Percent each year.")
	if len(sections) != 1 || sections[0].Title != EntireDocument {
		t.Errorf("expected no headers, got %+v", sections)
	}
}
