package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/phobologic/jones/internal/lang"
)

// ErrNotAMethodHeader is returned when a line does not start with the method keyword.
var ErrNotAMethodHeader = errors.New("not a method header")

// nonWordRe splits on anything that cannot appear in an identifier.
var nonWordRe = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_]+`)

// Header is the raw decomposition of one logical method header line.
type Header struct {
	Name       string
	Params     string
	ReturnType string
	HasReturn  bool
}

// ParseHeader extracts the method name, raw parameter list and return
// annotation from a single (already joined) header line such as
//
//	def method_name(self, arg1: int, arg2: str) -> None:
func ParseHeader(line string, syn lang.Syntax) (Header, error) {
	trimmed := strings.TrimSpace(line)
	tokens := nonWordRe.Split(trimmed, -1)
	if len(tokens) > 0 && tokens[0] == syn.AsyncKeyword {
		tokens = tokens[1:]
	}
	if len(tokens) < 2 || tokens[0] != syn.MethodKeyword || tokens[1] == "" {
		return Header{}, ErrNotAMethodHeader
	}

	h := Header{Name: tokens[1]}

	rest := trimmed
	if open := strings.IndexByte(trimmed, '('); open >= 0 {
		if closeIdx := matchingClose(trimmed, open); closeIdx >= 0 {
			h.Params = trimmed[open+1 : closeIdx]
			rest = trimmed[closeIdx+1:]
		} else {
			h.Params = strings.TrimSuffix(strings.TrimSpace(trimmed[open+1:]), string(syn.HeaderTerminator))
			rest = ""
		}
	}

	if i := strings.Index(rest, syn.ReturnArrow); i >= 0 {
		ret := rest[i+len(syn.ReturnArrow):]
		if end := indexTopLevel(ret, syn.HeaderTerminator); end >= 0 {
			ret = ret[:end]
		}
		h.ReturnType = strings.TrimSpace(ret)
		h.HasReturn = h.ReturnType != ""
	}

	return h, nil
}

// headerComplete reports whether a (possibly partial) header has reached its
// terminator. Once a parameter list is opened, only a terminator after its
// closing parenthesis counts, so a line break after an annotation colon does
// not end the header early.
func headerComplete(header string, syn lang.Syntax) bool {
	open := strings.IndexByte(header, '(')
	if open < 0 {
		return strings.HasSuffix(header, string(syn.HeaderTerminator))
	}
	closeIdx := matchingClose(header, open)
	if closeIdx < 0 {
		return false
	}
	return indexTopLevel(header[closeIdx+1:], syn.HeaderTerminator) >= 0
}

// isHeaderStart reports whether line opens a method header.
func isHeaderStart(line string, syn lang.Syntax) bool {
	fields := strings.Fields(line)
	if len(fields) > 1 && fields[0] == syn.AsyncKeyword {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return false
	}
	return fields[0] == syn.MethodKeyword
}
