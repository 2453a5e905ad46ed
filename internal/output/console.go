package output

import (
	"fmt"
	"io"

	"github.com/mikestreety/ai-code-review/internal/domain"
	"github.com/mikestreety/ai-code-review/internal/terminal"
)

// ConsoleRenderer writes a linter-style report: a summary paragraph followed
// by file:line comments grouped by file.
type ConsoleRenderer struct{}

// Render implements Renderer.
func (r *ConsoleRenderer) Render(w io.Writer, review *domain.Review) error {
	width := terminal.ReportWidth()

	if review.Summary != "" {
		fmt.Fprintf(w, "%sSummary%s\n", terminal.Color(terminal.Bold), terminal.Color(terminal.Reset))
		fmt.Fprintln(w, terminal.WrapText(review.Summary, width, "  "))
		fmt.Fprintln(w)
	}

	if !review.HasComments() {
		fmt.Fprintf(w, "%s✓ No issues found%s\n", terminal.Color(terminal.Green), terminal.Color(terminal.Reset))
		return nil
	}

	order, byFile := review.CommentsByFile()
	for _, file := range order {
		fmt.Fprintln(w, terminal.Ruler(width, "─"))
		fmt.Fprintf(w, "%s%s%s\n", terminal.Color(terminal.Bold), file, terminal.Color(terminal.Reset))

		for _, c := range byFile[file] {
			fmt.Fprintf(w, "%s%s:%d:%s%s\n",
				terminal.Color(terminal.Cyan), c.File, c.Line, terminal.Color(terminal.Reset),
				annotations(c))
			fmt.Fprintln(w, terminal.WrapText(c.Body, width, "    "))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%d comment(s)\n", len(review.Comments))
	return nil
}

// annotations renders the confidence and line-match caveats for a comment.
func annotations(c domain.Comment) string {
	var s string
	if c.Confidence > 0 && c.Confidence < 1 {
		s += fmt.Sprintf(" %s[%.0f%%]%s", terminal.Color(terminal.Dim), c.Confidence*100, terminal.Color(terminal.Reset))
	}
	if c.OriginalLine != 0 && c.OriginalLine != c.Line {
		s += fmt.Sprintf(" %s(moved from line %d)%s", terminal.Color(terminal.Dim), c.OriginalLine, terminal.Color(terminal.Reset))
	}
	if c.LineWarning {
		s += fmt.Sprintf(" %s⚠ line unverified%s", terminal.Color(terminal.Yellow), terminal.Color(terminal.Reset))
	}
	return s
}
