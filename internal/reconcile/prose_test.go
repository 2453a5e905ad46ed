package reconcile

import (
	"strings"
	"testing"
)

func TestExtractProse(t *testing.T) {
	raw := `Summary: the change mostly looks fine but has two problems.

app/cart.php line 33 the discount is applied twice for bundled items
helpers.js: missing semicolon handling in the tokenizer loop`

	review := ExtractProse(raw, []string{"app/cart.php", "helpers.js"})

	if !strings.Contains(review.Summary, "mostly looks fine") {
		t.Errorf("summary = %q", review.Summary)
	}
	if len(review.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d: %+v", len(review.Comments), review.Comments)
	}

	first := review.Comments[0]
	if first.File != "app/cart.php" || first.Line != 33 {
		t.Errorf("first comment = %s:%d, want app/cart.php:33", first.File, first.Line)
	}
	if !strings.Contains(first.Body, "discount is applied twice") {
		t.Errorf("first body = %q", first.Body)
	}

	second := review.Comments[1]
	if second.File != "helpers.js" || second.Line != 1 {
		t.Errorf("second comment = %s:%d, want helpers.js:1", second.File, second.Line)
	}
}

func TestExtractProseShortRemainderPullsNextLine(t *testing.T) {
	raw := "app.js line 5 bad name\nthe variable shadows a builtin and confuses readers"

	review := ExtractProse(raw, []string{"app.js"})
	if len(review.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(review.Comments))
	}
	if !strings.Contains(review.Comments[0].Body, "shadows a builtin") {
		t.Errorf("body = %q, want continuation merged", review.Comments[0].Body)
	}
}

func TestExtractProseCatchAll(t *testing.T) {
	raw := "Overall this change is risky and needs a second look before merging."

	review := ExtractProse(raw, []string{"first.go", "second.go"})
	if len(review.Comments) != 1 {
		t.Fatalf("expected catch-all comment, got %d", len(review.Comments))
	}
	c := review.Comments[0]
	if c.File != "first.go" || c.Line != 1 {
		t.Errorf("catch-all = %s:%d, want first.go:1", c.File, c.Line)
	}
}

func TestExtractProseLongExcerptTruncated(t *testing.T) {
	raw := strings.Repeat("no filenames here at all ", 40)

	review := ExtractProse(raw, []string{"only.go"})
	if len(review.Comments) != 1 {
		t.Fatalf("expected catch-all comment, got %d", len(review.Comments))
	}
	if len(review.Comments[0].Body) > proseExcerptLimit+3 {
		t.Errorf("excerpt not truncated: %d chars", len(review.Comments[0].Body))
	}
}

func TestExtractProseEmptyInput(t *testing.T) {
	review := ExtractProse("", nil)
	if review.Summary != "" || review.HasComments() {
		t.Errorf("expected empty review, got %+v", review)
	}
}
