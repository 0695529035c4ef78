package reconcile

import (
	"fmt"
	"strings"
	"testing"
)

func TestTruncateIdentity(t *testing.T) {
	inputs := []string{"", "short", strings.Repeat("x", 8000), "line one\nline two"}
	for _, in := range inputs {
		if got := Truncate(in, 8000); got != in {
			t.Errorf("text within limit must be returned unchanged, len=%d", len(in))
		}
	}
}

func TestTruncateDisabledLimit(t *testing.T) {
	long := strings.Repeat("y", 10000)
	if got := Truncate(long, 0); got != long {
		t.Error("maxLength <= 0 should disable truncation")
	}
}

func TestTruncateBound(t *testing.T) {
	cases := []struct {
		text string
		max  int
	}{
		{strings.Repeat("a", 8500), 8000},
		{strings.Repeat("line of text\n", 1000), 8000},
		{strings.Repeat("z", 500), 101},
		{strings.Repeat("w\n", 300), 150},
	}
	for i, c := range cases {
		got := Truncate(c.text, c.max)
		if len(got) > c.max {
			t.Errorf("case %d: len(Truncate) = %d, want <= %d", i, len(got), c.max)
		}
	}
}

func TestTruncateCutsAtLineBoundary(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&b, "item number %d in a long list\n", i)
	}
	got := Truncate(b.String(), 2000)

	body, _, found := strings.Cut(got, "\n\n[...")
	if !found {
		t.Fatal("expected omission suffix")
	}
	if !strings.HasSuffix(body, "in a long list") {
		t.Errorf("cut should land on a line boundary, got tail %q", body[len(body)-30:])
	}
}

func TestTruncateSuffixAccuracy(t *testing.T) {
	text := strings.Repeat("0123456789\n", 773)[:8500] // 8500 chars with line breaks
	got := Truncate(text, 8000)

	body, suffix, found := strings.Cut(got, "\n\n")
	if !found {
		t.Fatal("expected suffix separator")
	}
	kept := len(body)
	wantSuffix := fmt.Sprintf("[... %d more characters in full content ...]", 8500-kept)
	if suffix != wantSuffix {
		t.Errorf("suffix = %q, want %q", suffix, wantSuffix)
	}
	if kept+len("\n\n")+len(suffix) > 8000 {
		t.Errorf("kept %d + suffix %d exceeds limit", kept, len(suffix))
	}
}

func TestTruncateSingleLineFallback(t *testing.T) {
	text := strings.Repeat("a", 9000) // no line breaks at all
	got := Truncate(text, 8000)
	if len(got) > 8000 {
		t.Errorf("len = %d, want <= 8000", len(got))
	}
	if !strings.HasPrefix(got, "aaaa") {
		t.Error("fallback should keep the raw character budget")
	}
	if !strings.Contains(got, "more characters in full content") {
		t.Error("expected omission suffix")
	}
}
