package output

import (
	"encoding/json"
	"io"

	"github.com/mikestreety/ai-code-review/internal/domain"
)

// JSONRenderer writes the review as indented JSON for machine consumption.
type JSONRenderer struct{}

// Render implements Renderer.
func (r *JSONRenderer) Render(w io.Writer, review *domain.Review) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(review)
}
