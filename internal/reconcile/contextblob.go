package reconcile

import (
	"regexp"
	"strings"
)

// FileSet maps file paths to full file text, preserving insertion order
// (the order files appeared in the context blob). Read-only for the
// duration of a review once built.
type FileSet struct {
	order    []string
	contents map[string]string
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{contents: make(map[string]string)}
}

// Add records a file's content. Re-adding a path overwrites its content
// without changing its position.
func (fs *FileSet) Add(path, content string) {
	if _, ok := fs.contents[path]; !ok {
		fs.order = append(fs.order, path)
	}
	fs.contents[path] = content
}

// Content returns a file's text and whether the path is known.
func (fs *FileSet) Content(path string) (string, bool) {
	text, ok := fs.contents[path]
	return text, ok
}

// Paths returns file paths in insertion order.
func (fs *FileSet) Paths() []string {
	return fs.order
}

// Len returns the number of files.
func (fs *FileSet) Len() int {
	return len(fs.order)
}

// sectionHeaderRe matches the context blob delimiter line: --- <path> ---
var sectionHeaderRe = regexp.MustCompile(`^--- (.+?) ---$`)

// ParseContextBlob splits a concatenated context blob into a FileSet. Each
// file's content is preceded by a header line of the form "--- <path> ---".
// Leading and trailing blank lines are trimmed per section; sections with
// empty bodies are skipped.
func ParseContextBlob(blob string) *FileSet {
	fs := NewFileSet()

	var path string
	var body []string
	flush := func() {
		if path == "" {
			return
		}
		content := strings.Join(trimBlankEdges(body), "\n")
		if content != "" {
			fs.Add(path, content)
		}
	}

	for _, line := range strings.Split(blob, "\n") {
		if m := sectionHeaderRe.FindStringSubmatch(strings.TrimRight(line, "\r")); m != nil {
			flush()
			path = m[1]
			body = body[:0]
			continue
		}
		body = append(body, line)
	}
	flush()

	return fs
}

// BuildContextBlob renders a FileSet back into the delimiter format, in
// insertion order.
func BuildContextBlob(fs *FileSet) string {
	var b strings.Builder
	for _, path := range fs.Paths() {
		content, _ := fs.Content(path)
		b.WriteString("--- ")
		b.WriteString(path)
		b.WriteString(" ---\n")
		b.WriteString(content)
		b.WriteString("\n\n")
	}
	return b.String()
}

// trimBlankEdges removes leading and trailing blank lines.
func trimBlankEdges(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
