package reconcile

import "strings"

// CodeIndex splits a file's text into 1-based addressable lines and answers
// significance queries. Read-only after construction.
type CodeIndex struct {
	lines []string
	lang  Language
}

// NewCodeIndex builds an index over the given file text.
// The path is used for language detection only; it may be empty.
func NewCodeIndex(path, text string) *CodeIndex {
	lines := splitLines(text)
	sample := lines
	if len(sample) > 50 {
		sample = sample[:50]
	}
	return &CodeIndex{
		lines: lines,
		lang:  DetectLanguage(path, sample),
	}
}

// splitLines splits text on newlines, tolerating CRLF endings.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Len returns the number of lines in the file.
func (x *CodeIndex) Len() int {
	return len(x.lines)
}

// Language returns the detected language of the indexed file.
func (x *CodeIndex) Language() Language {
	return x.lang
}

// Line returns the 1-based line n, or false if n is out of range.
func (x *CodeIndex) Line(n int) (string, bool) {
	if n < 1 || n > len(x.lines) {
		return "", false
	}
	return x.lines[n-1], true
}

// InRange reports whether n is a valid 1-based line number for the file.
func (x *CodeIndex) InRange(n int) bool {
	return n >= 1 && n <= len(x.lines)
}

// Lines returns the underlying line slice. Callers must not mutate it.
func (x *CodeIndex) Lines() []string {
	return x.lines
}

// Comment openers per language. A "#" line is a comment in shell or python
// but real code elsewhere; "--" only comments SQL-like syntaxes, which are
// folded into the unknown set. LangUnknown gets the union so files we cannot
// classify still have comment noise filtered out.
var cLikePrefixes = []string{"//", "/*", "*/", "*"}

var commentPrefixesByLang = map[Language][]string{
	LangGo:         cLikePrefixes,
	LangJavaScript: cLikePrefixes,
	LangTypeScript: cLikePrefixes,
	LangPHP:        {"//", "#", "/*", "*/", "*"},
	LangPython:     {"#"},
	LangRuby:       {"#", "=begin", "=end"},
	LangShell:      {"#"},
	LangCSS:        {"/*", "*/", "*"},
	LangMarkup:     {"<!--", "-->"},
	LangUnknown:    {"//", "#", "/*", "*/", "*", "<!--", "-->", "--"},
}

// IsSignificant reports whether a line contains real code in the given
// language: not blank, not comment-only, not a documentation tag, and not
// pure block punctuation.
func IsSignificant(line string, lang Language) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	prefixes, ok := commentPrefixesByLang[lang]
	if !ok {
		prefixes = commentPrefixesByLang[LangUnknown]
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return false
		}
	}

	// Documentation tags (@param, @return, phpdoc/jsdoc style). CSS at-rules
	// like @media are real code.
	if lang != LangCSS && strings.HasPrefix(trimmed, "@") {
		return false
	}

	if isOnly(trimmed, "})];") || isOnly(trimmed, "{(,") {
		return false
	}

	return true
}

// Significant reports whether 1-based line n holds real code, judged by the
// file's detected language. Out-of-range lines are not significant.
func (x *CodeIndex) Significant(n int) bool {
	line, ok := x.Line(n)
	return ok && IsSignificant(line, x.lang)
}

// isOnly reports whether every rune of s is in set.
func isOnly(s, set string) bool {
	for _, r := range s {
		if !strings.ContainsRune(set, r) {
			return false
		}
	}
	return true
}
