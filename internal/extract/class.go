package extract

import (
	"log/slog"
	"strings"

	"github.com/phobologic/jones/internal/lang"
	"github.com/phobologic/jones/internal/model"
)

// docstringPrefixes are string prefixes that may precede a docstring marker.
var docstringPrefixes = []string{"r", "R", "u", "U"}

// Class isolates className in lines and assembles its summary.
func Class(lines []string, className string, syn lang.Syntax, logger *slog.Logger) (*model.ClassSummary, bool) {
	block, ok := IsolateBlock(lines, className, syn)
	if !ok {
		return nil, false
	}
	return &model.ClassSummary{
		Name:      className,
		Bases:     Bases(block.Declaration, syn),
		Docstring: Docstring(block.Lines, syn),
		Methods:   Methods(block.Lines, syn, logger),
		Line:      block.Line,
	}, true
}

// Bases returns the base classes listed in a class declaration, in declared
// order. A declaration without parentheses has no bases.
func Bases(declaration string, syn lang.Syntax) []string {
	bases := make([]string, 0)

	open := strings.IndexByte(declaration, '(')
	if open < 0 {
		return bases
	}

	var interior string
	if closeIdx := matchingClose(declaration, open); closeIdx >= 0 {
		interior = declaration[open+1 : closeIdx]
	} else {
		interior = strings.TrimSpace(declaration[open+1:])
		interior = strings.TrimSuffix(interior, string(syn.HeaderTerminator))
		interior = strings.TrimSuffix(interior, ")")
	}

	for _, segment := range SplitTopLevel(interior, syn.ParamSeparator) {
		if segment = strings.TrimSpace(segment); segment != "" {
			bases = append(bases, segment)
		}
	}
	return bases
}

// Docstring returns the first triple-quoted block found anywhere in the class
// block, or nil when the block has no marker at all. A class without its own
// docstring therefore reports the first method docstring instead.
func Docstring(block []string, syn lang.Syntax) *string {
	var (
		marker    string
		collected []string
	)

	for _, line := range block {
		if marker == "" {
			if marker = firstMarker(line, syn.DocstringMarkers); marker == "" {
				continue
			}
			collected = append(collected, stripMarker(line, marker))
			if strings.Count(line, marker) >= 2 {
				break
			}
			continue
		}

		collected = append(collected, stripMarker(line, marker))
		if strings.Contains(line, marker) {
			break
		}
	}

	if marker == "" {
		return nil
	}
	doc := strings.TrimSpace(strings.Join(collected, "\n"))
	return &doc
}

// firstMarker returns the marker that occurs earliest in line, or "".
func firstMarker(line string, markers []string) string {
	best, bestIdx := "", -1
	for _, m := range markers {
		if i := strings.Index(line, m); i >= 0 && (bestIdx < 0 || i < bestIdx) {
			best, bestIdx = m, i
		}
	}
	return best
}

func stripMarker(line, marker string) string {
	line = strings.TrimSpace(line)
	for _, p := range docstringPrefixes {
		if strings.HasPrefix(line, p+marker) {
			line = line[len(p):]
			break
		}
	}
	return strings.TrimSpace(strings.ReplaceAll(line, marker, ""))
}
