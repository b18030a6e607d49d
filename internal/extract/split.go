package extract

import "strings"

// escapedSeparator stands in for separators that sit inside brackets while a
// list is being split. It cannot occur in decoded source text.
const escapedSeparator = '\x00'

func isOpener(r rune) bool {
	return r == '[' || r == '(' || r == '{'
}

func isCloser(r rune) bool {
	return r == ']' || r == ')' || r == '}'
}

// EscapeNested returns s with every sep that appears inside a bracketed
// sub-expression replaced by an escape rune, so that a plain split on sep only
// breaks at top level. An unbalanced opener leaves the remainder of s nested;
// stray closers are ignored.
func EscapeNested(s string, sep rune) string {
	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	for _, r := range s {
		switch {
		case isOpener(r):
			depth++
		case isCloser(r):
			if depth > 0 {
				depth--
			}
		case r == sep && depth > 0:
			b.WriteRune(escapedSeparator)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SplitTopLevel splits s on sep, ignoring separators nested inside brackets.
// Nested separators are restored in the returned segments.
func SplitTopLevel(s string, sep rune) []string {
	parts := strings.Split(EscapeNested(s, sep), string(sep))
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, string(escapedSeparator), string(sep))
	}
	return parts
}

// matchingClose returns the byte index of the bracket closing the opener at
// s[open], or -1 when the brackets never balance.
func matchingClose(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch c := rune(s[i]); {
		case isOpener(c):
			depth++
		case isCloser(c):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// indexTopLevel returns the byte index of the first c in s outside any
// brackets, or -1.
func indexTopLevel(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch r := rune(s[i]); {
		case isOpener(r):
			depth++
		case isCloser(r):
			if depth > 0 {
				depth--
			}
		case s[i] == c && depth == 0:
			return i
		}
	}
	return -1
}
