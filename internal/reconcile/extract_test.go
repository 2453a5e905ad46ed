package reconcile

import (
	"errors"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		provider     string
		wantSummary  string
		wantComments int
		wantErr      bool
	}{
		{
			name:        "bare JSON object",
			raw:         `{"summary":"ok","comments":[]}`,
			provider:    "claude",
			wantSummary: "ok",
		},
		{
			name:        "fenced json block with no envelope",
			raw:         " ```json\n{\"summary\":\"ok\",\"comments\":[]}\n``` ",
			provider:    "claude",
			wantSummary: "ok",
		},
		{
			name:        "envelope unwrap round-trip",
			raw:         `{"result": "` + "```json\\n{\\\"summary\\\":\\\"s\\\",\\\"comments\\\":[]}\\n```" + `"}`,
			provider:    "claude",
			wantSummary: "s",
		},
		{
			name:         "JSON surrounded by prose",
			raw:          "Here is my review:\n{\"summary\":\"found issues\",\"comments\":[{\"file\":\"a.go\",\"line\":3,\"comment\":\"bug\"}]}\nDone.",
			provider:     "gemini",
			wantSummary:  "found issues",
			wantComments: 1,
		},
		{
			name:        "envelope for non-enveloping provider is parsed as-is",
			raw:         `{"result": "nope", "summary": "direct", "comments": []}`,
			provider:    "gemini",
			wantSummary: "direct",
		},
		{
			name:     "no JSON at all",
			raw:      "The code looks fine to me.",
			provider: "claude",
			wantErr:  true,
		},
		{
			name:     "unbalanced garbage",
			raw:      "{{{ not json",
			provider: "claude",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review, err := Extract(tt.raw, tt.provider)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var malformed *MalformedResponseError
				if !errors.As(err, &malformed) {
					t.Fatalf("expected MalformedResponseError, got %T", err)
				}
				if malformed.Raw != tt.raw {
					t.Error("error should carry the original raw text")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if review.Summary != tt.wantSummary {
				t.Errorf("summary = %q, want %q", review.Summary, tt.wantSummary)
			}
			if len(review.Comments) != tt.wantComments {
				t.Errorf("comments = %d, want %d", len(review.Comments), tt.wantComments)
			}
		})
	}
}

func TestExtractCommentFields(t *testing.T) {
	raw := `{"summary":"s","comments":[{"file":"app/models/user.php","line":12,"comment":"missing null check"}]}`

	review, err := Extract(raw, "claude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(review.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(review.Comments))
	}
	c := review.Comments[0]
	if c.File != "app/models/user.php" || c.Line != 12 || c.Body != "missing null check" {
		t.Errorf("unexpected comment: %+v", c)
	}
}

func TestMalformedResponseErrorTruncatesRaw(t *testing.T) {
	_, err := Extract(strings.Repeat("x", 1000), "claude")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Error()) > 400 {
		t.Errorf("error message should truncate raw text, got %d chars", len(err.Error()))
	}
}
