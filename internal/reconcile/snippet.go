package reconcile

import (
	"regexp"
	"strings"
)

// DefaultSnippetRadius is the default context radius around a target line.
const DefaultSnippetRadius = 3

// Lookback/lookahead bounds for smart window expansion.
const (
	declLookback   = 10
	stmtLookback   = 5
	braceLookahead = 10
)

// Snippet is a context window around a resolved line, expanded to logical
// block boundaries for display.
type Snippet struct {
	StartLine  int
	EndLine    int
	TargetLine int
	Lines      []string
}

// declRe matches function/method declaration-like lines: a visibility
// keyword or function/def/func followed by an identifier.
var declRe = regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|export|async)\s+)*(?:function|def|func)\s+\w+|^\s*(?:public|private|protected)\s+\w+`)

// stmtRe matches statement-opening lines: an assignment or a control
// keyword followed by an opening paren.
var stmtRe = regexp.MustCompile(`^\s*[\w$.\[\]]+\s*=[^=]|^\s*(?:if|for|while|switch|foreach|catch|elseif)\s*\(`)

// ExtractSnippet computes a context window [target-radius, target+radius]
// clamped to file bounds, then expands it backward to an enclosing
// declaration or statement opener and forward to a closing brace or
// statement end. Returns nil when target is out of bounds.
//
// This is a heuristic, not a parser; languages without brace/keyword syntax
// get the plain clamped window.
func ExtractSnippet(text string, target, radius int) *Snippet {
	lines := splitLines(text)
	if target < 1 || target > len(lines) {
		return nil
	}
	if radius < 0 {
		radius = 0
	}

	start := max(1, target-radius)
	end := min(len(lines), target+radius)

	start = expandBackward(lines, start)
	end = expandForward(lines, target, end)

	return &Snippet{
		StartLine:  start,
		EndLine:    end,
		TargetLine: target,
		Lines:      lines[start-1 : end],
	}
}

// expandBackward pulls the window start up to an enclosing declaration
// (bounded lookback), or failing that a statement-opening line.
func expandBackward(lines []string, start int) int {
	for n := start; n >= max(1, start-declLookback); n-- {
		if declRe.MatchString(lines[n-1]) {
			return n
		}
	}
	for n := start; n >= max(1, start-stmtLookback); n-- {
		if stmtRe.MatchString(lines[n-1]) {
			return n
		}
	}
	return start
}

// expandForward scans down from target tracking brace depth; once an opened
// brace's matching close brings depth back to zero, the window extends one
// line past the close. With no brace pair, it extends to the first line at
// or after end that finishes a statement. Expansion only grows the window;
// the result is never below end.
func expandForward(lines []string, target, end int) int {
	depth := 0
	sawOpen := false
	limit := min(len(lines), target+braceLookahead)

	for n := target; n <= limit; n++ {
		line := lines[n-1]
		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")
		if opens > 0 {
			sawOpen = true
		}
		depth += opens - closes
		if sawOpen && depth <= 0 {
			return min(len(lines), max(end, n+1))
		}
	}

	for n := end; n <= limit; n++ {
		trimmed := strings.TrimSpace(lines[n-1])
		if strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}") {
			return n
		}
	}

	return end
}
