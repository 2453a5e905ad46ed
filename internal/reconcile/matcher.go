package reconcile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mikestreety/ai-code-review/internal/domain"
)

// MatcherConfig holds the tuning thresholds for line matching. The zero
// value is not usable; start from DefaultMatcherConfig.
type MatcherConfig struct {
	// FuzzyThreshold is the minimum similarity score (exclusive) for a
	// fuzzy match to be accepted.
	FuzzyThreshold float64
	// KeywordThreshold is the minimum normalized keyword-overlap score
	// (exclusive) for a keyword match to be accepted.
	KeywordThreshold float64
	// KeywordCap limits how many keywords are extracted from comment prose.
	KeywordCap int
	// MinKeywordLen is the minimum length of a usable keyword.
	MinKeywordLen int
	// FallbackConfidence is assigned when the originally claimed line is
	// kept as a last resort.
	FallbackConfidence float64
}

// DefaultMatcherConfig returns the standard thresholds.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		FuzzyThreshold:     0.8,
		KeywordThreshold:   0.5,
		KeywordCap:         10,
		MinKeywordLen:      4,
		FallbackConfidence: 0.5,
	}
}

// Matcher re-derives the true line number of a review comment by searching
// the target file for the code the comment is talking about. LLM-reported
// line numbers drift (hunk headers, off-by-one counting), so the comment's
// prose is treated as the source of truth.
type Matcher struct {
	cfg MatcherConfig
}

// NewMatcher creates a Matcher with the given thresholds.
func NewMatcher(cfg MatcherConfig) *Matcher {
	return &Matcher{cfg: cfg}
}

// matchCandidate is the ephemeral result of one matching strategy.
type matchCandidate struct {
	lineNumber int
	confidence float64
	reason     string
}

// Resolve corrects the line number of a comment against the indexed file.
// Strategies are tried in order: exact snippet match, fuzzy similarity,
// original-line fallback, keyword overlap. Returns nil when no strategy
// succeeds; the caller must drop the comment (a comment on the wrong line
// is worse than a missing comment).
func (m *Matcher) Resolve(c domain.Comment, idx *CodeIndex) *domain.Comment {
	snippets := extractSnippets(c.Body)

	if cand := m.exactMatch(snippets, idx); cand != nil {
		return corrected(c, cand.lineNumber, domain.CorrectionExact, cand.confidence, false)
	}

	if cand := m.fuzzyMatch(snippets, idx); cand != nil {
		return corrected(c, cand.lineNumber, domain.CorrectionFuzzy, cand.confidence, false)
	}

	if line, ok := idx.Line(c.Line); ok && strings.TrimSpace(line) != "" {
		return corrected(c, c.Line, domain.CorrectionOriginalKept, m.cfg.FallbackConfidence, true)
	}

	if cand := m.keywordMatch(c.Body, idx); cand != nil {
		return corrected(c, cand.lineNumber, domain.CorrectionKeyword, cand.confidence, false)
	}

	return nil
}

// corrected returns a copy of c with the resolved line and provenance set.
func corrected(c domain.Comment, line int, method domain.CorrectionMethod, confidence float64, warn bool) *domain.Comment {
	c.OriginalLine = c.Line
	c.Line = line
	c.Correction = method
	c.Confidence = confidence
	c.LineWarning = warn
	return &c
}

// Snippet extraction -------------------------------------------------------

var (
	backtickRe   = regexp.MustCompile("`([^`]+)`")
	callSiteRe   = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\(`)
	sigilVarRe   = regexp.MustCompile(`[$@][A-Za-z_][A-Za-z0-9_]*`)
	assignmentRe = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\s*=[^=]`)
	bareNumberRe = regexp.MustCompile(`\b\d{2,3}\b|\(\s*\d+\s*\)`)
	cmpNumberRe  = regexp.MustCompile(`(?:==|!=|<=|>=|<|>)\s*\d+|\d+\s*(?:==|!=|<=|>=|<|>)`)
)

// extractSnippets pulls candidate code fragments from comment prose using
// five independent extractors. Candidates are pooled in extraction order,
// de-duplicated, and anything shorter than 2 characters is discarded.
func extractSnippets(body string) []string {
	var pool []string

	for _, m := range backtickRe.FindAllStringSubmatch(body, -1) {
		pool = append(pool, strings.TrimSpace(m[1]))
	}
	pool = append(pool, callSiteRe.FindAllString(body, -1)...)
	pool = append(pool, sigilVarRe.FindAllString(body, -1)...)
	for _, m := range assignmentRe.FindAllString(body, -1) {
		pool = append(pool, strings.TrimSpace(strings.TrimRight(m, " \t")))
	}
	for _, m := range bareNumberRe.FindAllString(body, -1) {
		pool = append(pool, strings.Trim(m, "() \t"))
	}
	for _, m := range cmpNumberRe.FindAllString(body, -1) {
		pool = append(pool, strings.TrimSpace(m))
	}

	seen := make(map[string]bool, len(pool))
	out := make([]string, 0, len(pool))
	for _, s := range pool {
		// Single characters are noise, except single-digit constants, which
		// the exact matcher guards with an adjacency check.
		if (len(s) < 2 && !pureIntRe.MatchString(s)) || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Exact match --------------------------------------------------------------

var pureIntRe = regexp.MustCompile(`^\d+$`)

// exactMatch scans file lines for a verbatim snippet occurrence. Bare
// integers only count when adjacent to a comparison operator or an
// enclosing paren/bracket, so incidental digits elsewhere in the file do
// not produce false positives. First hit in file order wins; the first
// snippet that matches anywhere returns immediately.
func (m *Matcher) exactMatch(snippets []string, idx *CodeIndex) *matchCandidate {
	for _, snippet := range snippets {
		var numRe *regexp.Regexp
		if pureIntRe.MatchString(snippet) {
			q := regexp.QuoteMeta(snippet)
			numRe = regexp.MustCompile(
				`(?:==|!=|<=|>=|<|>|\(|\[)\s*` + q + `\b|\b` + q + `\s*(?:==|!=|<=|>=|<|>|\)|\])`)
		}

		for n := 1; n <= idx.Len(); n++ {
			line, _ := idx.Line(n)
			if numRe != nil {
				if numRe.MatchString(line) {
					return &matchCandidate{lineNumber: n, confidence: 1.0, reason: fmt.Sprintf("exact match for %q", snippet)}
				}
				continue
			}
			if strings.Contains(line, snippet) {
				return &matchCandidate{lineNumber: n, confidence: 1.0, reason: fmt.Sprintf("exact match for %q", snippet)}
			}
		}
	}
	return nil
}

// Fuzzy match --------------------------------------------------------------

// fuzzyMatch scores every snippet against every significant line and keeps
// the single best-scoring line across all snippets, accepted only above the
// configured threshold. Comment-only lines are skipped so a commented-out
// copy of the code cannot outrank the live one.
func (m *Matcher) fuzzyMatch(snippets []string, idx *CodeIndex) *matchCandidate {
	var best *matchCandidate

	for _, snippet := range snippets {
		for n := 1; n <= idx.Len(); n++ {
			if !idx.Significant(n) {
				continue
			}
			line, _ := idx.Line(n)
			score := similarity(snippet, strings.TrimSpace(line))
			if best == nil || score > best.confidence {
				best = &matchCandidate{lineNumber: n, confidence: score, reason: fmt.Sprintf("fuzzy match for %q", snippet)}
			}
		}
	}

	if best == nil || best.confidence <= m.cfg.FuzzyThreshold {
		return nil
	}
	return best
}

// similarity scores two strings in [0,1]: containment ratio when one
// contains the other, otherwise Jaccard similarity over character sets.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		shorter, longer := len(a), len(b)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer)
	}

	setA := make(map[rune]bool)
	for _, r := range a {
		setA[r] = true
	}
	setB := make(map[rune]bool)
	for _, r := range b {
		setB[r] = true
	}

	intersection := 0
	for r := range setA {
		if setB[r] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Keyword match ------------------------------------------------------------

var wordRe = regexp.MustCompile(`[a-z0-9]+`)

// keywordStopwords are common prose words that carry no signal for locating
// code. The list is a tuning constant, not a contract.
var keywordStopwords = map[string]bool{
	"the": true, "and": true, "this": true, "that": true, "with": true,
	"should": true, "could": true, "would": true, "have": true, "been": true,
	"will": true, "from": true, "for": true, "not": true, "are": true,
	"was": true, "were": true, "when": true, "where": true, "which": true,
	"than": true, "then": true, "them": true, "they": true, "there": true,
	"here": true, "also": true, "into": true, "over": true, "under": true,
	"before": true, "after": true,
	"more": true, "most": true, "some": true, "such": true, "only": true,
	"very": true, "must": true, "might": true, "consider": true,
	"instead": true, "because": true, "line": true, "code": true,
	"file": true, "function": true, "value": true, "using": true,
}

// keywordMatch tokenizes the comment prose into keywords and scores every
// significant line by the fraction of keywords it contains. Last-resort
// strategy: the confidence is capped below what a fuzzy match can report.
// Prose inside comments scores keywords too easily, so insignificant lines
// are skipped.
func (m *Matcher) keywordMatch(body string, idx *CodeIndex) *matchCandidate {
	keywords := extractKeywords(body, m.cfg.MinKeywordLen, m.cfg.KeywordCap)
	if len(keywords) == 0 {
		return nil
	}

	var best *matchCandidate
	for n := 1; n <= idx.Len(); n++ {
		if !idx.Significant(n) {
			continue
		}
		line, _ := idx.Line(n)
		lower := strings.ToLower(line)
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		score := float64(hits) / float64(len(keywords))
		if best == nil || score > best.confidence {
			best = &matchCandidate{lineNumber: n, confidence: score, reason: fmt.Sprintf("%d/%d keywords", hits, len(keywords))}
		}
	}

	if best == nil || best.confidence <= m.cfg.KeywordThreshold {
		return nil
	}
	best.confidence = min(0.8, best.confidence)
	return best
}

// extractKeywords lowercases and tokenizes prose, dropping stopwords and
// short words, capped at limit keywords.
func extractKeywords(body string, minLen, limit int) []string {
	words := wordRe.FindAllString(strings.ToLower(body), -1)
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, limit)
	for _, w := range words {
		if len(w) < minLen || keywordStopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) >= limit {
			break
		}
	}
	return out
}
