// Package reconcile turns raw LLM review output into verified, line-accurate
// review comments against actual file content.
package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mikestreety/ai-code-review/internal/domain"
)

// MalformedResponseError indicates that no usable JSON object could be
// isolated from the LLM output. The original raw text is attached for
// diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	excerpt := e.Raw
	if len(excerpt) > 200 {
		excerpt = excerpt[:200] + "..."
	}
	return fmt.Sprintf("malformed LLM response: %v (raw: %q)", e.Err, excerpt)
}

// Unwrap returns the underlying parse error.
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// envelopeProviders are CLIs that wrap their reply in a JSON envelope with a
// "result" field (claude's --output-format json does this).
var envelopeProviders = map[string]bool{
	"claude": true,
}

// proseProviders are CLIs known to ignore the JSON contract and answer in
// prose; for these the prose fallback heuristic is attempted after a JSON
// parse failure.
var proseProviders = map[string]bool{
	"gemini": true,
}

// resultEnvelope matches the wrapper object emitted by enveloping CLIs.
type resultEnvelope struct {
	Result string `json:"result"`
}

// rawComment is the wire shape of one comment in the LLM's JSON reply.
type rawComment struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Comment string `json:"comment"`
}

// rawReview is the wire shape of the LLM's JSON reply.
type rawReview struct {
	Summary  string       `json:"summary"`
	Comments []rawComment `json:"comments"`
}

// Extract parses raw LLM output into a Review. It tries, in order: provider
// envelope unwrapping, fenced ```json block slicing, and greedy first-{ to
// last-} slicing, then decodes the result as JSON.
// Returns *MalformedResponseError when no valid JSON object can be isolated.
func Extract(raw, provider string) (*domain.Review, error) {
	text := strings.TrimSpace(raw)

	// Unwrap one envelope level for providers known to wrap replies.
	if envelopeProviders[provider] && strings.HasPrefix(text, "{") && strings.Contains(text, `"result"`) {
		var env resultEnvelope
		if err := json.Unmarshal([]byte(text), &env); err == nil && env.Result != "" {
			text = strings.TrimSpace(env.Result)
		}
	}

	body, ok := sliceJSON(text)
	if !ok {
		return nil, &MalformedResponseError{Raw: raw, Err: fmt.Errorf("no JSON object found in response")}
	}

	var parsed rawReview
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	review := &domain.Review{
		Summary:  parsed.Summary,
		Comments: make([]domain.Comment, 0, len(parsed.Comments)),
	}
	for _, c := range parsed.Comments {
		review.Comments = append(review.Comments, domain.Comment{
			File: c.File,
			Line: c.Line,
			Body: c.Comment,
		})
	}
	return review, nil
}

// sliceJSON isolates the JSON payload from text that may surround it with a
// markdown fence or prose. Returns false when no object can be located.
func sliceJSON(text string) (string, bool) {
	// Fenced block: ```json ... ```
	if start := strings.Index(text, "```json"); start >= 0 {
		rest := text[start+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end]), true
		}
	}

	// Greedy brace slice. Not a full parser: pathological inputs with stray
	// braces in surrounding prose may still fail to decode.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1], true
	}

	return "", false
}
