package syntax

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// "The Buyer shall pay rent."
func sampleTokens() []Token {
	return []Token{
		{Text: "The", Offset: 0, POS: "DET", Dep: "det", Head: 1},
		{Text: "Buyer", Offset: 4, POS: "PROPN", Dep: "nsubj", Head: 3},
		{Text: "shall", Offset: 10, POS: "AUX", Tag: "MD", Dep: "aux", Head: 3},
		{Text: "pay", Offset: 16, POS: "VERB", Dep: "ROOT", Head: 3},
		{Text: "rent", Offset: 20, POS: "NOUN", Dep: "dobj", Head: 3},
		{Text: ".", Offset: 24, POS: "PUNCT", Dep: "punct", Head: 3},
	}
}

func TestNewTree_Structure(t *testing.T) {
	tree, err := NewTree("The Buyer shall pay rent.", sampleTokens())
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}

	root, ok := tree.Root()
	if !ok || tree.Token(root).Text != "pay" {
		t.Fatalf("expected root 'pay', got %d (ok=%v)", root, ok)
	}

	kids := tree.Children(root)
	if len(kids) != 4 {
		t.Errorf("expected 4 children of root, got %v", kids)
	}
	if tree.Head(0).Text != "Buyer" {
		t.Errorf("expected head of 'The' to be 'Buyer', got %q", tree.Head(0).Text)
	}

	if left := tree.LeftEdge(root); left != 0 {
		t.Errorf("expected left edge 0, got %d", left)
	}
	if right := tree.RightEdge(1); right != 1 {
		t.Errorf("expected subject right edge 1, got %d", right)
	}
	if left := tree.LeftEdge(1); left != 0 {
		t.Errorf("expected subject left edge 0, got %d", left)
	}
}

func TestNewTree_InvalidHead(t *testing.T) {
	tokens := sampleTokens()
	tokens[2].Head = 42

	if _, err := NewTree("The Buyer shall pay rent.", tokens); err == nil {
		t.Error("expected error for out-of-range head")
	}
}

func TestTree_SpanText(t *testing.T) {
	tree, _ := NewTree("The Buyer shall pay rent.", sampleTokens())

	if got := tree.SpanText(0, 1); got != "The Buyer" {
		t.Errorf("expected 'The Buyer', got %q", got)
	}
	if got := tree.SpanText(3, 4); got != "pay rent" {
		t.Errorf("expected 'pay rent', got %q", got)
	}
	if got := tree.SpanText(4, 3); got != "" {
		t.Errorf("expected empty span for reversed range, got %q", got)
	}
}

func TestTree_SpanTextWithoutOffsets(t *testing.T) {
	tokens := sampleTokens()
	for i := range tokens {
		tokens[i].Offset = 0
	}
	tree, _ := NewTree("The Buyer shall pay rent.", tokens)

	if got := tree.SpanText(2, 4); got != "shall pay rent" {
		t.Errorf("expected joined tokens, got %q", got)
	}
}

func TestClient_Parse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parse" {
			t.Errorf("expected path /parse, got %s", r.URL.Path)
		}
		var req parseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Text != "The Buyer shall pay rent." {
			t.Errorf("unexpected text %q", req.Text)
		}
		_ = json.NewEncoder(w).Encode(parseResponse{Tokens: sampleTokens()})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", 0)
	tree, err := client.Parse(context.Background(), "The Buyer shall pay rent.")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tree.Len() != 6 {
		t.Errorf("expected 6 tokens, got %d", tree.Len())
	}
}

func TestClient_ParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "model not loaded"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.Parse(context.Background(), "Anything.")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "model not loaded") {
		t.Errorf("expected service error message, got %v", err)
	}
}
