package reconcile

import (
	"regexp"
	"strings"

	"github.com/mikestreety/ai-code-review/internal/domain"
)

// proseFileRe matches filename-like tokens (name.ext) in a prose line.
var proseFileRe = regexp.MustCompile(`\b[\w./-]*\w+\.\w+\b`)

// proseLineRe pulls an explicit "line N" reference out of a prose line.
var proseLineRe = regexp.MustCompile(`(?i)\bline\s+(\d+)`)

// summaryMarkerRe matches headings that introduce the summary section.
var summaryMarkerRe = regexp.MustCompile(`(?i)^#*\s*(summary|overview)\b[:\s]*`)

// proseExcerptLimit caps the catch-all comment excerpt length.
const proseExcerptLimit = 300

// ExtractProse heuristically converts an unstructured prose review into a
// Review. Lines containing a filename-like token become comments on that
// file (at an explicit "line N" when present, otherwise line 1); text before
// the first such line becomes the summary.
//
// When no filename is found anywhere, a single catch-all comment is created
// on the first known file so the pipeline still produces structured output.
func ExtractProse(raw string, knownFiles []string) *domain.Review {
	lines := strings.Split(raw, "\n")

	var summaryParts []string
	var comments []domain.Comment

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		file := proseFileRe.FindString(line)
		if file == "" {
			// Before the first issue-like line, prose accumulates into the
			// summary. Heading markers themselves are stripped.
			if len(comments) == 0 {
				summaryParts = append(summaryParts, summaryMarkerRe.ReplaceAllString(line, ""))
			}
			continue
		}

		lineNum := 1
		if m := proseLineRe.FindStringSubmatch(line); m != nil {
			lineNum = atoiOr(m[1], 1)
		}

		body := strings.TrimSpace(strings.TrimPrefix(line, file))
		body = strings.TrimLeft(body, ":-— \t")
		// Short remainders usually mean the explanation continues on the
		// next line.
		if len(body) < 20 && i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next != "" && proseFileRe.FindString(next) == "" {
				body = strings.TrimSpace(body + " " + next)
				i++
			}
		}
		if body == "" {
			continue
		}

		comments = append(comments, domain.Comment{File: file, Line: lineNum, Body: body})
	}

	summary := strings.TrimSpace(strings.Join(summaryParts, " "))

	if len(comments) == 0 && len(knownFiles) > 0 {
		excerpt := strings.TrimSpace(raw)
		if len(excerpt) > proseExcerptLimit {
			excerpt = excerpt[:proseExcerptLimit] + "..."
		}
		if excerpt != "" {
			comments = append(comments, domain.Comment{
				File: knownFiles[0],
				Line: 1,
				Body: excerpt,
			})
		}
	}

	return &domain.Review{Summary: summary, Comments: comments}
}

// atoiOr parses a decimal string, returning fallback on failure.
func atoiOr(s string, fallback int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return fallback
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return fallback
	}
	return n
}
