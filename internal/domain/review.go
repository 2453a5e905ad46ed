// Package domain provides core types for the code reviewer.
package domain

import "encoding/json"

// CorrectionMethod describes which matching strategy resolved a comment's line.
type CorrectionMethod int

const (
	// CorrectionNone is the zero value; the comment has not been reconciled.
	CorrectionNone CorrectionMethod = iota
	// CorrectionExact means a code snippet from the comment matched a line verbatim.
	CorrectionExact
	// CorrectionFuzzy means a snippet matched a line by similarity scoring.
	CorrectionFuzzy
	// CorrectionKeyword means the line was located by keyword overlap.
	CorrectionKeyword
	// CorrectionOriginalKept means no snippet matched and the originally
	// claimed line was kept as a low-confidence fallback.
	CorrectionOriginalKept
)

// String returns the wire name of the correction method.
func (m CorrectionMethod) String() string {
	switch m {
	case CorrectionExact:
		return "exact_match"
	case CorrectionFuzzy:
		return "fuzzy_match"
	case CorrectionKeyword:
		return "keyword_match"
	case CorrectionOriginalKept:
		return "original_line_kept"
	default:
		return "none"
	}
}

// MarshalJSON encodes the method as its wire name.
func (m CorrectionMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a wire name back into the enum. Unknown names decode
// to CorrectionNone.
func (m *CorrectionMethod) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, cand := range []CorrectionMethod{CorrectionExact, CorrectionFuzzy, CorrectionKeyword, CorrectionOriginalKept} {
		if cand.String() == name {
			*m = cand
			return nil
		}
	}
	*m = CorrectionNone
	return nil
}

// Comment is a single review comment, as claimed by the LLM and later
// corrected by reconciliation.
type Comment struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Body string `json:"comment"`

	// Provenance fields set by the line matcher.
	OriginalLine int              `json:"original_line,omitempty"`
	Correction   CorrectionMethod `json:"correction_method,omitempty"`
	Confidence   float64          `json:"confidence,omitempty"`
	LineWarning  bool             `json:"line_warning,omitempty"`
}

// Review is the structured output of one review run: a prose summary plus
// the ordered comments that survived reconciliation.
type Review struct {
	Summary  string    `json:"summary"`
	Comments []Comment `json:"comments"`
}

// HasComments returns true if any comments survived.
func (r *Review) HasComments() bool {
	return len(r.Comments) > 0
}

// CommentsByFile groups comments by file, preserving first-seen file order.
func (r *Review) CommentsByFile() ([]string, map[string][]Comment) {
	order := make([]string, 0)
	byFile := make(map[string][]Comment)
	for _, c := range r.Comments {
		if _, ok := byFile[c.File]; !ok {
			order = append(order, c.File)
		}
		byFile[c.File] = append(byFile[c.File], c)
	}
	return order, byFile
}
