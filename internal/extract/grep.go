package extract

import (
	"strings"
	"unicode"

	"github.com/phobologic/jones/internal/lang"
	"github.com/phobologic/jones/internal/model"
)

// GrepClasses returns every class declaration in lines whose name satisfies
// match. File is left empty for the caller to fill in.
func GrepClasses(lines []string, match func(name string) bool, syn lang.Syntax) []model.ClassLocation {
	var found []model.ClassLocation
	for i, line := range lines {
		name, ok := DeclaredClass(line, syn)
		if !ok || !match(name) {
			continue
		}
		found = append(found, model.ClassLocation{
			Declaration: strings.TrimSpace(line),
			Line:        i + 1,
		})
	}
	return found
}

// DeclaredClass returns the class name declared on line, if the line starts
// with the class keyword.
func DeclaredClass(line string, syn lang.Syntax) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), syn.ClassKeyword)
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	rest = strings.TrimLeft(rest, " \t")
	end := strings.IndexFunc(rest, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	if end < 0 {
		end = len(rest)
	}
	if end == 0 {
		return "", false
	}
	return rest[:end], true
}
