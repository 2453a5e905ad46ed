package output

import (
	"fmt"
	"html/template"
	"io"

	"github.com/mikestreety/ai-code-review/internal/domain"
	"github.com/mikestreety/ai-code-review/internal/reconcile"
)


// HTMLRenderer writes a single-page report with the summary, comments grouped
// by file, and a code snippet around each comment line.
type HTMLRenderer struct {
	// Files supplies file contents for snippet context. May be nil, in which
	// case comments render without snippets.
	Files *reconcile.FileSet
}

type htmlSnippetLine struct {
	Number int
	Text   string
	Target bool
}

type htmlComment struct {
	Line         int
	OriginalLine int
	Moved        bool
	Confidence   int
	LineWarning  bool
	Body         string
	Snippet      []htmlSnippetLine
}

type htmlFileGroup struct {
	Path     string
	Comments []htmlComment
}

type htmlReport struct {
	Summary      string
	CommentCount int
	Files        []htmlFileGroup
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Code Review Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 60rem; color: #1f2328; }
h1 { font-size: 1.4rem; }
h2 { font-size: 1.1rem; font-family: ui-monospace, monospace; border-bottom: 1px solid #d0d7de; padding-bottom: .3rem; }
.summary { background: #f6f8fa; border: 1px solid #d0d7de; border-radius: 6px; padding: 1rem; }
.comment { margin: 1rem 0; border: 1px solid #d0d7de; border-radius: 6px; }
.comment-header { padding: .4rem .8rem; background: #f6f8fa; font-family: ui-monospace, monospace; font-size: .85rem; }
.comment-body { padding: .8rem; }
.badge { display: inline-block; margin-left: .5rem; padding: 0 .4rem; border-radius: 6px; font-size: .75rem; background: #ddf4ff; }
.badge.warn { background: #fff8c5; }
pre { margin: 0; background: #f6f8fa; padding: .5rem .8rem; overflow-x: auto; font-size: .8rem; }
.line-target { background: #fff8c5; display: block; }
.line-num { color: #59636e; user-select: none; }
</style>
</head>
<body>
<h1>Code Review Report</h1>
{{if .Summary}}<div class="summary">{{.Summary}}</div>{{end}}
<p>{{.CommentCount}} comment(s)</p>
{{range .Files}}
<h2>{{.Path}}</h2>
{{range .Comments}}
<div class="comment">
<div class="comment-header">line {{.Line}}{{if .Moved}}<span class="badge">moved from {{.OriginalLine}}</span>{{end}}{{if .Confidence}}<span class="badge">{{.Confidence}}%</span>{{end}}{{if .LineWarning}}<span class="badge warn">line unverified</span>{{end}}</div>
{{if .Snippet}}<pre>{{range .Snippet}}<span{{if .Target}} class="line-target"{{end}}><span class="line-num">{{printf "%4d" .Number}}</span>  {{.Text}}
</span>{{end}}</pre>{{end}}
<div class="comment-body">{{.Body}}</div>
</div>
{{end}}
{{end}}
</body>
</html>
`))

// Render implements Renderer.
func (r *HTMLRenderer) Render(w io.Writer, review *domain.Review) error {
	report := htmlReport{
		Summary:      review.Summary,
		CommentCount: len(review.Comments),
	}

	order, byFile := review.CommentsByFile()
	for _, path := range order {
		group := htmlFileGroup{Path: path}
		for _, c := range byFile[path] {
			hc := htmlComment{
				Line:         c.Line,
				OriginalLine: c.OriginalLine,
				Moved:        c.OriginalLine != 0 && c.OriginalLine != c.Line,
				LineWarning:  c.LineWarning,
				Body:         c.Body,
			}
			if c.Confidence > 0 && c.Confidence < 1 {
				hc.Confidence = int(c.Confidence * 100)
			}
			hc.Snippet = r.snippetFor(path, c.Line)
			group.Comments = append(group.Comments, hc)
		}
		report.Files = append(report.Files, group)
	}

	if err := reportTemplate.Execute(w, report); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

// snippetFor extracts the context lines around a comment, or nil when the
// file is not in the context set.
func (r *HTMLRenderer) snippetFor(path string, line int) []htmlSnippetLine {
	if r.Files == nil {
		return nil
	}
	content, ok := r.Files.Content(path)
	if !ok {
		return nil
	}

	snip := reconcile.ExtractSnippet(content, line, reconcile.DefaultSnippetRadius)
	if snip == nil {
		return nil
	}

	lines := make([]htmlSnippetLine, 0, len(snip.Lines))
	for i, text := range snip.Lines {
		n := snip.StartLine + i
		lines = append(lines, htmlSnippetLine{
			Number: n,
			Text:   text,
			Target: n == line,
		})
	}
	return lines
}
