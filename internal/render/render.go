// Package render writes class summaries and grep matches to an output stream
// in one of the supported formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/phobologic/jones/internal/model"
	"github.com/phobologic/jones/internal/toon"
)

// NotFoundMessage is printed in text mode when a search has no result.
const NotFoundMessage = "Searched class was not found in project"

// ANSI palette indices.
var (
	cyan   = lipgloss.Color("6")
	yellow = lipgloss.Color("3")
	green  = lipgloss.Color("2")
	purple = lipgloss.Color("5")
)

// Renderer writes results to w.
type Renderer struct {
	w      io.Writer
	format Format
	color  bool

	name, value, base, typ, path lipgloss.Style
}

// New returns a Renderer. Colors are used only in text format, when noColor
// is false and w is a terminal.
func New(w io.Writer, format Format, noColor bool) *Renderer {
	r := &Renderer{
		w:      w,
		format: format,
		color:  format == FormatText && !noColor && IsTerminal(w),
	}
	r.name = lipgloss.NewStyle().Foreground(cyan)
	r.value = lipgloss.NewStyle().Foreground(yellow)
	r.base = lipgloss.NewStyle().Foreground(green)
	r.typ = lipgloss.NewStyle().Foreground(green)
	r.path = lipgloss.NewStyle().Foreground(purple)
	return r
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Renderer) paint(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Summary writes a class summary. A nil summary is reported as not found.
func (r *Renderer) Summary(s *model.ClassSummary) error {
	switch r.format {
	case FormatJSON:
		return r.json(s)
	case FormatYAML:
		return r.yaml(s)
	case FormatTOON:
		if s == nil {
			return r.line("null")
		}
		return r.line(toon.EncodeSummary(s))
	}

	if s == nil {
		return r.NotFound()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Name [%s]\n--------\n", r.paint(r.name, s.Name))
	if s.File != "" {
		fmt.Fprintf(&b, "* file: %s\n", r.paint(r.path, fmt.Sprintf("%s:%d", s.File, s.Line)))
	}
	docstring := ""
	if s.Docstring != nil {
		docstring = *s.Docstring
	}
	fmt.Fprintf(&b, "* docstring: %s\n", r.paint(r.value, docstring))
	fmt.Fprintf(&b, "* inherits -> %s\n", r.paint(r.base, strings.Join(s.Bases, ", ")))
	b.WriteString("\n# Methods\n-------\n")
	for _, m := range s.Methods {
		fmt.Fprintf(&b, ":: [%s] -> %s\n", r.paint(r.value, m.Name), r.paint(r.name, m.ReturnType))
		for _, p := range m.Parameters {
			fmt.Fprintf(&b, "  * %s: %s\n", r.paint(r.path, p.Name), r.paint(r.typ, p.Type))
		}
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Matches writes grep results. An empty list is reported as not found.
func (r *Renderer) Matches(matches []model.ClassLocation) error {
	if matches == nil {
		matches = []model.ClassLocation{}
	}
	switch r.format {
	case FormatJSON:
		return r.json(matches)
	case FormatYAML:
		return r.yaml(matches)
	case FormatTOON:
		return r.line(toon.EncodeMatches(matches))
	}

	if len(matches) == 0 {
		return r.NotFound()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "> [%s]\n", r.paint(r.name, "FOUND MATCHES"))
	for _, m := range matches {
		fmt.Fprintf(&b, ":: %s -> %s\n",
			r.paint(r.value, strings.ReplaceAll(m.Declaration, "\r", "")),
			r.paint(r.path, fmt.Sprintf("%s:%d", m.File, m.Line)))
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// NotFound writes the not-found message.
func (r *Renderer) NotFound() error {
	return r.line(fmt.Sprintf("%s: %s", r.paint(r.base, "Output"), r.paint(r.value, NotFoundMessage)))
}

func (r *Renderer) line(s string) error {
	_, err := fmt.Fprintln(r.w, s)
	return err
}

func (r *Renderer) json(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func (r *Renderer) yaml(v any) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
