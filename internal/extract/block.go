package extract

import (
	"fmt"
	"strings"

	"github.com/phobologic/jones/internal/lang"
)

// Block is the contiguous run of lines belonging to one class.
type Block struct {
	Declaration string
	Line        int // 1-based line number of the declaration
	Lines       []string
}

// DeclarationPatterns returns the literal substrings that mark the
// declaration of className, with and without a base-class list.
func DeclarationPatterns(className string, syn lang.Syntax) []string {
	patterns := make([]string, len(syn.DeclarationFormats))
	for i, format := range syn.DeclarationFormats {
		patterns[i] = fmt.Sprintf(format, className)
	}
	return patterns
}

// ContainsDeclaration reports whether source declares className anywhere.
// It is the cheap pre-filter run before full block isolation.
func ContainsDeclaration(source, className string, syn lang.Syntax) bool {
	return containsAny(source, DeclarationPatterns(className, syn))
}

// IsolateBlock finds the first declaration of className in lines and returns
// the block that starts there. The block ends at the first pair of
// consecutive blank lines; a class body that itself contains two blank lines
// in a row is therefore truncated at that point.
func IsolateBlock(lines []string, className string, syn lang.Syntax) (Block, bool) {
	patterns := DeclarationPatterns(className, syn)

	start := -1
	for i, line := range lines {
		if containsAny(line, patterns) {
			start = i
			break
		}
	}
	if start < 0 {
		return Block{}, false
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if isBlank(lines[i]) && isBlank(lines[i-1]) {
			end = i - 1
			break
		}
	}

	return Block{
		Declaration: lines[start],
		Line:        start + 1,
		Lines:       append([]string(nil), lines[start:end]...),
	}, true
}

// SplitLines splits source text into lines, dropping carriage returns.
func SplitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	return strings.Split(source, "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
