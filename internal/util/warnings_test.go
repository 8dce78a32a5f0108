package util

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestWarnings_AddfDeduplicates(t *testing.T) {
	var buf bytes.Buffer
	w := NewWarnings(&buf)

	w.Addf("zero-shot oracle failed: %v", "timeout")
	w.Addf("zero-shot oracle failed: %v", "timeout")
	w.Add("parser unavailable")

	got := w.List()
	if len(got) != 2 {
		t.Fatalf("expected 2 warnings, got %v", got)
	}
	if got[0] != "zero-shot oracle failed: timeout" {
		t.Errorf("unexpected first warning %q", got[0])
	}
	if strings.Count(buf.String(), "Warning: ") != 2 {
		t.Errorf("expected 2 echoed warnings, got %q", buf.String())
	}
}

func TestWarnings_Nil(t *testing.T) {
	var w *Warnings
	w.Addf("ignored %d", 1)
	if w.List() != nil {
		t.Error("nil collector should list nothing")
	}
}

func TestWarnings_Concurrent(t *testing.T) {
	w := NewWarnings(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w.Addf("warning %d", i%10)
		}(i)
	}
	wg.Wait()

	if n := len(w.List()); n != 10 {
		t.Errorf("expected 10 distinct warnings, got %d", n)
	}
}
