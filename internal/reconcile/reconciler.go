package reconcile

import (
	"fmt"

	"github.com/mikestreety/ai-code-review/internal/domain"
)

// Drop reasons reported in diagnostics.
const (
	ReasonFileNotInContext = "file not found in context"
	ReasonUnresolvable     = "could not locate code for comment"
)

// Diagnostic records why a comment was dropped during reconciliation.
// Diagnostics are advisory: drops never fail the overall run.
type Diagnostic struct {
	Comment domain.Comment
	Reason  string
}

// String renders the diagnostic for logging.
func (d Diagnostic) String() string {
	return fmt.Sprintf("dropped comment on %s:%d: %s", d.Comment.File, d.Comment.Line, d.Reason)
}

// Reconciler runs the full extraction and line-correction pipeline over raw
// LLM output. It is a pure, synchronous, single-pass transform.
type Reconciler struct {
	matcher *Matcher
}

// NewReconciler creates a Reconciler with the given matcher thresholds.
func NewReconciler(cfg MatcherConfig) *Reconciler {
	return &Reconciler{matcher: NewMatcher(cfg)}
}

// Reconcile extracts a review from raw LLM output and corrects every
// comment's line number against the file set. Comments referencing unknown
// files or whose line cannot be verified by any strategy are dropped and
// reported as diagnostics.
//
// Only a totally malformed response is an error; once extraction succeeds,
// reconciliation always returns a review, possibly with no comments.
func (r *Reconciler) Reconcile(raw, provider string, files *FileSet) (*domain.Review, []Diagnostic, error) {
	review, err := Extract(raw, provider)
	if err != nil {
		if !proseProviders[provider] {
			return nil, nil, err
		}
		review = ExtractProse(raw, files.Paths())
		if review.Summary == "" && !review.HasComments() {
			return nil, nil, err
		}
	}

	var diags []Diagnostic
	kept := make([]domain.Comment, 0, len(review.Comments))
	indexes := make(map[string]*CodeIndex, files.Len())

	for _, c := range review.Comments {
		text, ok := files.Content(c.File)
		if !ok {
			diags = append(diags, Diagnostic{Comment: c, Reason: ReasonFileNotInContext})
			continue
		}

		idx, cached := indexes[c.File]
		if !cached {
			idx = NewCodeIndex(c.File, text)
			indexes[c.File] = idx
		}

		resolved := r.matcher.Resolve(c, idx)
		if resolved == nil {
			diags = append(diags, Diagnostic{Comment: c, Reason: ReasonUnresolvable})
			continue
		}
		kept = append(kept, *resolved)
	}

	return &domain.Review{Summary: review.Summary, Comments: kept}, diags, nil
}
