package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCorrectionMethodString(t *testing.T) {
	tests := []struct {
		method CorrectionMethod
		want   string
	}{
		{CorrectionExact, "exact_match"},
		{CorrectionFuzzy, "fuzzy_match"},
		{CorrectionKeyword, "keyword_match"},
		{CorrectionOriginalKept, "original_line_kept"},
		{CorrectionNone, "none"},
	}

	for _, tt := range tests {
		if got := tt.method.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCommentJSONCarriesCorrectionMethod(t *testing.T) {
	c := Comment{File: "a.go", Line: 7, Body: "x", OriginalLine: 3, Correction: CorrectionFuzzy, Confidence: 0.9}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"correction_method":"fuzzy_match"`) {
		t.Errorf("marshaled comment missing provenance: %s", data)
	}

	var decoded Comment
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Correction != CorrectionFuzzy {
		t.Errorf("Correction = %v, want fuzzy_match", decoded.Correction)
	}
}

func TestCommentJSONOmitsUnsetCorrection(t *testing.T) {
	data, err := json.Marshal(Comment{File: "a.go", Line: 1, Body: "x"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "correction_method") {
		t.Errorf("unreconciled comment must omit correction_method: %s", data)
	}
}

func TestReviewHasComments(t *testing.T) {
	r := &Review{Summary: "ok"}
	if r.HasComments() {
		t.Error("empty review should have no comments")
	}
	r.Comments = append(r.Comments, Comment{File: "a.go", Line: 1, Body: "x"})
	if !r.HasComments() {
		t.Error("expected HasComments after append")
	}
}

func TestCommentsByFile(t *testing.T) {
	r := &Review{
		Comments: []Comment{
			{File: "b.go", Line: 3},
			{File: "a.go", Line: 1},
			{File: "b.go", Line: 9},
		},
	}

	order, byFile := r.CommentsByFile()
	if len(order) != 2 {
		t.Fatalf("expected 2 files, got %d", len(order))
	}
	if order[0] != "b.go" || order[1] != "a.go" {
		t.Errorf("file order = %v, want [b.go a.go]", order)
	}
	if len(byFile["b.go"]) != 2 {
		t.Errorf("expected 2 comments for b.go, got %d", len(byFile["b.go"]))
	}
	if byFile["b.go"][0].Line != 3 || byFile["b.go"][1].Line != 9 {
		t.Errorf("comment order not preserved: %+v", byFile["b.go"])
	}
}
