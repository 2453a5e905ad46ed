// Package output renders a reconciled review as console text, HTML, or JSON.
package output

import (
	"fmt"
	"io"

	"github.com/mikestreety/ai-code-review/internal/domain"
	"github.com/mikestreety/ai-code-review/internal/reconcile"
)

// Renderer writes a review report to w.
type Renderer interface {
	Render(w io.Writer, review *domain.Review) error
}

// NewRenderer creates a renderer for the given format. The file set is used
// by the HTML renderer to show snippet context around each comment; the other
// formats ignore it.
func NewRenderer(format string, files *reconcile.FileSet) (Renderer, error) {
	switch format {
	case "console":
		return &ConsoleRenderer{}, nil
	case "html":
		return &HTMLRenderer{Files: files}, nil
	case "json":
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q, supported: console, html, json", format)
	}
}
