// Package toon implements TOON (Token-Oriented Object Notation) encoding.
package toon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phobologic/jones/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// EncodeSummary converts a ClassSummary into TOON format. Parameters are
// flattened into one table keyed by the position of their method, since a
// class may define the same method name more than once.
func EncodeSummary(s *model.ClassSummary) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("name: %s", encodeValue(s.Name)))
	if s.File != "" {
		parts = append(parts, fmt.Sprintf("file: %s", encodeValue(s.File)))
		parts = append(parts, fmt.Sprintf("line: %d", s.Line))
	}
	if s.Docstring != nil {
		parts = append(parts, fmt.Sprintf("docstring: %s", encodeValue(*s.Docstring)))
	} else {
		parts = append(parts, "docstring: null")
	}
	parts = append(parts, formatList("bases", s.Bases))

	var methodRows, paramRows [][]string
	for i := range s.Methods {
		m := &s.Methods[i]
		index := strconv.Itoa(i)
		methodRows = append(methodRows, []string{index, m.Name, m.ReturnType})
		for _, p := range m.Parameters {
			paramRows = append(paramRows, []string{index, m.Name, p.Name, p.Type})
		}
	}
	parts = append(parts, formatTabular("methods", []string{"index", "name", "return_type"}, methodRows))
	parts = append(parts, formatTabular("parameters", []string{"method_index", "method", "name", "type"}, paramRows))

	return strings.Join(parts, "\n")
}

// EncodeMatches converts grep results into a TOON table.
func EncodeMatches(matches []model.ClassLocation) string {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{m.File, strconv.Itoa(m.Line), m.Declaration})
	}
	return formatTabular("matches", []string{"file", "line", "declaration"}, rows)
}

func formatList(name string, values []string) string {
	encoded := make([]string, len(values))
	for i, v := range values {
		encoded[i] = encodeValue(v)
	}
	if len(encoded) == 0 {
		return fmt.Sprintf("%s[0]:", name)
	}
	return fmt.Sprintf("%s[%d]: %s", name, len(values), strings.Join(encoded, ","))
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
