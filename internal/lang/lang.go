// Package lang provides a language registry mapping file extensions to the
// lexical syntax used by the heuristic extractor and the tree-sitter grammar
// used by the exact backend.
package lang

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Syntax holds the keywords and punctuation the heuristic extractor relies on.
// Values are fixed at registration time and never mutated.
type Syntax struct {
	ClassKeyword       string
	MethodKeyword      string
	AsyncKeyword       string
	HeaderTerminator   byte
	ReturnArrow        string
	AnnotationDelim    byte
	DefaultDelim       byte
	ParamSeparator     rune
	CommentMarker      byte
	DocstringMarkers   []string
	ReceiverNames      []string
	PositionalMarkers  []string
	DeclarationFormats []string // printf formats taking the class name
}

// IsReceiver reports whether name is a self/cls style receiver parameter.
func (s Syntax) IsReceiver(name string) bool {
	for _, r := range s.ReceiverNames {
		if r == name {
			return true
		}
	}
	return false
}

// IsPositionalMarker reports whether a parameter segment is a bare marker
// such as "*" or "/" rather than a named parameter.
func (s Syntax) IsPositionalMarker(segment string) bool {
	for _, m := range s.PositionalMarkers {
		if m == segment {
			return true
		}
	}
	return false
}

// Language holds configuration for a supported language.
type Language struct {
	Name       string
	Extensions []string
	Syntax     Syntax
	lang       *sitter.Language
}

// GetLanguage returns the tree-sitter Language pointer.
func (l *Language) GetLanguage() *sitter.Language {
	return l.lang
}

// NewParser creates a fresh tree-sitter parser for this language.
// Parsers are not safe for concurrent use.
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// HasExtension reports whether ext (with leading dot) belongs to l.
func (l *Language) HasExtension(ext string) bool {
	for _, e := range l.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// Python returns the registered Python language.
func Python() *Language {
	return Languages["python"]
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// CollapseWhitespace replaces runs of whitespace with a single space and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
