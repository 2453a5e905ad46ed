package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mikestreety/ai-code-review/internal/domain"
	"github.com/mikestreety/ai-code-review/internal/reconcile"
	"github.com/mikestreety/ai-code-review/internal/terminal"
)

func sampleReview() *domain.Review {
	return &domain.Review{
		Summary: "The change adds retry handling but never resets the counter.",
		Comments: []domain.Comment{
			{
				File:         "app.js",
				Line:         42,
				Body:         "Retry limit never resets after a successful call.",
				OriginalLine: 40,
				Correction:   domain.CorrectionExact,
				Confidence:   1.0,
			},
			{
				File:        "lib/util.py",
				Line:        7,
				Body:        "Division by zero when the list is empty.",
				Confidence:  0.5,
				LineWarning: true,
			},
		},
	}
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"console", false},
		{"html", false},
		{"json", false},
		{"yaml", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			_, err := NewRenderer(tt.format, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRenderer(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestConsoleRenderer(t *testing.T) {
	terminal.WithColorsDisabled(func() {
		var buf bytes.Buffer
		if err := (&ConsoleRenderer{}).Render(&buf, sampleReview()); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		got := buf.String()

		wants := []string{
			"Summary",
			"never resets the counter",
			"app.js:42:",
			"(moved from line 40)",
			"lib/util.py:7:",
			"[50%]",
			"line unverified",
			"2 comment(s)",
		}
		for _, want := range wants {
			if !strings.Contains(got, want) {
				t.Errorf("console output missing %q in:\n%s", want, got)
			}
		}
	})
}

func TestConsoleRenderer_NoComments(t *testing.T) {
	terminal.WithColorsDisabled(func() {
		var buf bytes.Buffer
		review := &domain.Review{Summary: "All clean."}
		if err := (&ConsoleRenderer{}).Render(&buf, review); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(buf.String(), "No issues found") {
			t.Errorf("console output missing success line:\n%s", buf.String())
		}
	})
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONRenderer{}).Render(&buf, sampleReview()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var decoded domain.Review
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Comments) != 2 {
		t.Errorf("decoded %d comments, want 2", len(decoded.Comments))
	}
	if decoded.Comments[0].OriginalLine != 40 {
		t.Errorf("OriginalLine = %d, want 40", decoded.Comments[0].OriginalLine)
	}
}

func TestHTMLRenderer(t *testing.T) {
	files := reconcile.NewFileSet()
	files.Add("app.js", "function f() {\n  let retries = 0;\n  retries++;\n  if (retries == 3) {\n    stop();\n  }\n}\n")

	review := &domain.Review{
		Summary: "Summary text.",
		Comments: []domain.Comment{
			{File: "app.js", Line: 4, Body: "Retry limit never resets.", Confidence: 0.8},
		},
	}

	var buf bytes.Buffer
	if err := (&HTMLRenderer{Files: files}).Render(&buf, review); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := buf.String()

	wants := []string{
		"<h2>app.js</h2>",
		"line 4",
		"retries == 3",
		"line-target",
		"80%",
		"Summary text.",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("HTML output missing %q", want)
		}
	}
}

func TestHTMLRenderer_EscapesCommentBody(t *testing.T) {
	review := &domain.Review{
		Comments: []domain.Comment{
			{File: "app.js", Line: 1, Body: "<script>alert(1)</script>"},
		},
	}

	var buf bytes.Buffer
	if err := (&HTMLRenderer{}).Render(&buf, review); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Error("comment body must be HTML-escaped")
	}
}
