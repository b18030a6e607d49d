package lang

import (
	"github.com/smacker/go-tree-sitter/python"
)

// PythonSyntax is the lexical vocabulary of Python class and method headers.
var PythonSyntax = Syntax{
	ClassKeyword:       "class",
	MethodKeyword:      "def",
	AsyncKeyword:       "async",
	HeaderTerminator:   ':',
	ReturnArrow:        "->",
	AnnotationDelim:    ':',
	DefaultDelim:       '=',
	ParamSeparator:     ',',
	CommentMarker:      '#',
	DocstringMarkers:   []string{`"""`, `'''`},
	ReceiverNames:      []string{"self", "cls"},
	PositionalMarkers:  []string{"*", "/"},
	DeclarationFormats: []string{"class %s(", "class %s:"},
}

func init() {
	Languages["python"] = &Language{
		Name:       "python",
		Extensions: []string{".py"},
		Syntax:     PythonSyntax,
		lang:       python.GetLanguage(),
	}
}
