// Package parse implements the exact class extraction backend on top of a
// tree-sitter syntax tree. It produces the same summaries as the heuristic
// extractor, without its lexical shortcuts.
package parse

import (
	"context"
	"log/slog"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/jones/internal/lang"
	"github.com/phobologic/jones/internal/model"
)

// Backend extracts classes from tree-sitter parse trees.
// A Backend owns a single parser and is not safe for concurrent use.
type Backend struct {
	language *lang.Language
	parser   *sitter.Parser
	logger   *slog.Logger
}

// NewBackend returns an exact backend for l.
func NewBackend(l *lang.Language, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{language: l, parser: l.NewParser(), logger: logger}
}

// Name implements search.Backend.
func (b *Backend) Name() string { return "ast" }

// ExtractClass implements search.Backend. The first class named className in
// document order wins, including nested classes.
func (b *Backend) ExtractClass(path string, source []byte, className string) (*model.ClassSummary, bool) {
	var summary *model.ClassSummary
	b.walkClasses(path, source, func(node *sitter.Node) bool {
		if className != classNameOf(node, source) {
			return true
		}
		summary = b.summarize(node, source)
		summary.File = path
		return false
	})
	return summary, summary != nil
}

// ListClasses implements search.Backend.
func (b *Backend) ListClasses(path string, source []byte, match func(name string) bool) []model.ClassLocation {
	lines := strings.Split(string(source), "\n")
	var found []model.ClassLocation
	b.walkClasses(path, source, func(node *sitter.Node) bool {
		if name := classNameOf(node, source); name == "" || !match(name) {
			return true
		}
		row := int(node.StartPoint().Row)
		found = append(found, model.ClassLocation{
			Declaration: strings.TrimSpace(lines[row]),
			File:        path,
			Line:        row + 1,
		})
		return true
	})
	return found
}

// walkClasses visits every class_definition in document order until visit
// returns false.
func (b *Backend) walkClasses(path string, source []byte, visit func(*sitter.Node) bool) {
	if len(source) == 0 {
		return
	}

	tree, err := b.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		b.logger.Warn("failed to parse", slog.String("file", path), slog.Any("error", err))
		return
	}
	defer tree.Close()

	var walk func(node *sitter.Node) bool
	walk = func(node *sitter.Node) bool {
		if node.Type() == "class_definition" && !visit(node) {
			return false
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if !walk(node.NamedChild(i)) {
				return false
			}
		}
		return true
	}
	walk(tree.RootNode())
}

func (b *Backend) summarize(node *sitter.Node, source []byte) *model.ClassSummary {
	summary := &model.ClassSummary{
		Name:    classNameOf(node, source),
		Bases:   superclasses(node, source),
		Methods: make([]model.Method, 0),
		Line:    int(node.StartPoint().Row) + 1,
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return summary
	}
	summary.Docstring = docstring(body, source)

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "decorated_definition" {
			child = child.ChildByFieldName("definition")
		}
		if child == nil || child.Type() != "function_definition" {
			continue
		}
		summary.Methods = append(summary.Methods, b.method(child, source))
	}
	return summary
}

func (b *Backend) method(node *sitter.Node, source []byte) model.Method {
	m := model.Method{
		Parameters: make([]model.Parameter, 0),
		ReturnType: model.UnspecifiedType,
	}
	if name := node.ChildByFieldName("name"); name != nil {
		m.Name = lang.NodeText(name, source)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		m.ReturnType = lang.CollapseWhitespace(lang.NodeText(ret, source))
	}

	params := node.ChildByFieldName("parameters")
	if params == nil {
		return m
	}
	syn := b.language.Syntax
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p, ok := parameter(params.NamedChild(i), source)
		if !ok {
			continue
		}
		if syn.IsReceiver(p.Name) {
			p.Type = model.ReceiverType
		}
		m.Parameters = append(m.Parameters, p)
	}
	return m
}

func parameter(node *sitter.Node, source []byte) (model.Parameter, bool) {
	p := model.Parameter{Type: model.UnspecifiedType}

	switch node.Type() {
	case "identifier", "list_splat_pattern", "dictionary_splat_pattern":
		p.Name = lang.NodeText(node, source)
	case "default_parameter":
		if name := node.ChildByFieldName("name"); name != nil {
			p.Name = lang.NodeText(name, source)
		}
	case "typed_parameter":
		if node.NamedChildCount() > 0 {
			p.Name = lang.NodeText(node.NamedChild(0), source)
		}
		if typ := node.ChildByFieldName("type"); typ != nil {
			p.Type = lang.CollapseWhitespace(lang.NodeText(typ, source))
		}
	case "typed_default_parameter":
		if name := node.ChildByFieldName("name"); name != nil {
			p.Name = lang.NodeText(name, source)
		}
		if typ := node.ChildByFieldName("type"); typ != nil {
			p.Type = lang.CollapseWhitespace(lang.NodeText(typ, source))
		}
	default:
		// positional_separator, keyword_separator and anything unexpected.
		return p, false
	}

	return p, p.Name != ""
}

func classNameOf(node *sitter.Node, source []byte) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return lang.NodeText(name, source)
	}
	return ""
}

func superclasses(node *sitter.Node, source []byte) []string {
	bases := make([]string, 0)
	args := node.ChildByFieldName("superclasses")
	if args == nil {
		return bases
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		bases = append(bases, lang.CollapseWhitespace(lang.NodeText(child, source)))
	}
	return bases
}

// docstring returns the string literal that opens a class body, if any.
func docstring(body *sitter.Node, source []byte) *string {
	if body.NamedChildCount() == 0 {
		return nil
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return nil
	}
	str := first.NamedChild(0)
	if str.Type() != "string" {
		return nil
	}

	text := strings.TrimLeft(lang.NodeText(str, source), "rRuU")
	for _, quote := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(text, quote) && strings.HasSuffix(text, quote) && len(text) >= 2*len(quote) {
			text = text[len(quote) : len(text)-len(quote)]
			break
		}
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	doc := strings.TrimSpace(strings.Join(lines, "\n"))
	return &doc
}
