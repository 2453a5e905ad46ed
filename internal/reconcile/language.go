package reconcile

import (
	"path/filepath"
	"strings"
)

// Language identifies the detected source language of a file. It is a closed
// enum so that unhandled-language fallthrough is explicit.
type Language int

const (
	LangUnknown Language = iota
	LangGo
	LangJavaScript
	LangTypeScript
	LangPython
	LangPHP
	LangRuby
	LangShell
	LangCSS
	LangMarkup
)

// String returns a short name for the language.
func (l Language) String() string {
	switch l {
	case LangGo:
		return "go"
	case LangJavaScript:
		return "javascript"
	case LangTypeScript:
		return "typescript"
	case LangPython:
		return "python"
	case LangPHP:
		return "php"
	case LangRuby:
		return "ruby"
	case LangShell:
		return "shell"
	case LangCSS:
		return "css"
	case LangMarkup:
		return "markup"
	default:
		return "unknown"
	}
}

// extByLanguage maps file extensions to languages. Extension lookup is the
// primary detection strategy; content sniffing is the fallback.
var extByLanguage = map[string]Language{
	".go":     LangGo,
	".js":     LangJavaScript,
	".jsx":    LangJavaScript,
	".mjs":    LangJavaScript,
	".cjs":    LangJavaScript,
	".ts":     LangTypeScript,
	".tsx":    LangTypeScript,
	".py":     LangPython,
	".php":    LangPHP,
	".rb":     LangRuby,
	".sh":     LangShell,
	".bash":   LangShell,
	".zsh":    LangShell,
	".css":    LangCSS,
	".scss":   LangCSS,
	".less":   LangCSS,
	".html":   LangMarkup,
	".htm":    LangMarkup,
	".xml":    LangMarkup,
	".vue":    LangMarkup,
	".twig":   LangMarkup,
	".svelte": LangMarkup,
}

// sniffOrder fixes the iteration order for keyword scoring so ties between
// equally-scoring languages resolve the same way on every run.
var sniffOrder = []Language{
	LangGo,
	LangJavaScript,
	LangTypeScript,
	LangPython,
	LangPHP,
	LangRuby,
	LangShell,
	LangCSS,
	LangMarkup,
}

// langKeywords holds per-language keyword lists used for content sniffing
// when the extension is missing or unknown. Built once; never mutated.
var langKeywords = map[Language][]string{
	LangGo:         {"func ", "package ", ":=", "chan ", "go func"},
	LangJavaScript: {"const ", "let ", "=>", "function ", "require("},
	LangTypeScript: {"interface ", ": string", ": number", "export type", "readonly "},
	LangPython:     {"def ", "import ", "self.", "elif ", "lambda "},
	LangPHP:        {"<?php", "$this->", "->", "public function", "namespace "},
	LangRuby:       {"def ", "end", "require ", "puts ", "attr_"},
	LangShell:      {"#!/bin", "fi", "esac", "echo ", "${"},
	LangCSS:        {"{", "};", ":", "px", "@media"},
	LangMarkup:     {"</", "/>", "<div", "<?xml", "<!DOCTYPE"},
}

// DetectLanguage determines a file's language from its path, falling back to
// keyword-frequency scoring over the supplied sample lines. Pure function;
// sampleLines may be nil when only the extension is available.
func DetectLanguage(path string, sampleLines []string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extByLanguage[ext]; ok {
		return lang
	}

	if len(sampleLines) == 0 {
		return LangUnknown
	}

	sample := strings.Join(sampleLines, "\n")
	best := LangUnknown
	bestScore := 0
	for _, lang := range sniffOrder {
		score := 0
		for _, kw := range langKeywords[lang] {
			score += strings.Count(sample, kw)
		}
		if score > bestScore {
			best = lang
			bestScore = score
		}
	}

	// A single stray keyword is not enough evidence.
	if bestScore < 2 {
		return LangUnknown
	}
	return best
}
