package reconcile

import (
	"strings"
	"testing"
)

const snippetFixture = `<?php

class Cart
{
    public function total($items)
    {
        $total = 0;
        foreach ($items as $item) {
            $total += $item->price;
        }
        return $total;
    }
}`

func TestExtractSnippetExpandsToDeclaration(t *testing.T) {
	s := ExtractSnippet(snippetFixture, 9, 1)
	if s == nil {
		t.Fatal("expected snippet, got nil")
	}
	if s.StartLine != 5 {
		t.Errorf("StartLine = %d, want 5 (enclosing function declaration)", s.StartLine)
	}
	if s.TargetLine != 9 {
		t.Errorf("TargetLine = %d, want 9", s.TargetLine)
	}
	if len(s.Lines) != s.EndLine-s.StartLine+1 {
		t.Errorf("Lines count %d does not match window [%d,%d]", len(s.Lines), s.StartLine, s.EndLine)
	}
	if !strings.Contains(s.Lines[0], "public function total") {
		t.Errorf("first line = %q, want the declaration", s.Lines[0])
	}
}

func TestExtractSnippetExpandsPastClosingBrace(t *testing.T) {
	// Target is the foreach opener; the window should extend one line past
	// its matching close.
	s := ExtractSnippet(snippetFixture, 8, 1)
	if s == nil {
		t.Fatal("expected snippet, got nil")
	}
	if s.EndLine != 11 {
		t.Errorf("EndLine = %d, want 11 (one past the foreach close)", s.EndLine)
	}
}

func TestExtractSnippetSameLineBracePairKeepsRadius(t *testing.T) {
	// The target opens and closes a brace on the same line; the brace
	// heuristic must not shrink the window below target+radius.
	text := "a();\nb();\nc();\nif (x) { y(); }\nd();\ne();\nf();"
	s := ExtractSnippet(text, 4, 3)
	if s == nil {
		t.Fatal("expected snippet")
	}
	if s.StartLine != 1 || s.EndLine != 7 {
		t.Errorf("window [%d,%d], want [1,7]", s.StartLine, s.EndLine)
	}
}

func TestExtractSnippetOutOfBounds(t *testing.T) {
	tests := []struct {
		name   string
		target int
	}{
		{"zero", 0},
		{"negative", -3},
		{"past end", 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s := ExtractSnippet(snippetFixture, tt.target, 2); s != nil {
				t.Errorf("expected nil for target %d, got %+v", tt.target, s)
			}
		})
	}
}

func TestExtractSnippetClampsToFileBounds(t *testing.T) {
	s := ExtractSnippet("one\ntwo\nthree", 1, 5)
	if s == nil {
		t.Fatal("expected snippet")
	}
	if s.StartLine != 1 || s.EndLine != 3 {
		t.Errorf("window [%d,%d], want [1,3]", s.StartLine, s.EndLine)
	}
}
