package extract

import (
	"log/slog"
	"strings"

	"github.com/phobologic/jones/internal/lang"
	"github.com/phobologic/jones/internal/model"
)

// Methods scans the lines of a class block and returns its methods in source
// order. Headers that wrap over several physical lines are joined before
// parsing. Nested functions (headers indented deeper than the first method)
// are ignored, and a header that never reaches its terminator is dropped.
func Methods(lines []string, syn lang.Syntax, logger *slog.Logger) []model.Method {
	logger = orDiscard(logger)

	var (
		methods      = make([]model.Method, 0)
		fragments    []string
		methodIndent = -1
	)

	for _, line := range lines {
		if isHeaderStart(line, syn) {
			indent := indentWidth(line)
			if methodIndent < 0 {
				methodIndent = indent
			}
			if indent > methodIndent {
				continue
			}
			if len(fragments) > 0 {
				logger.Debug("discarding unterminated method header",
					slog.String("header", joinFragments(fragments)))
			}
			fragments = fragments[:0]
		} else if len(fragments) == 0 {
			continue
		}

		fragment := strings.TrimSpace(stripComment(line, syn.CommentMarker))
		if fragment == "" {
			continue
		}
		fragments = append(fragments, fragment)

		header := joinFragments(fragments)
		if !headerComplete(header, syn) {
			continue
		}
		fragments = fragments[:0]

		m, err := buildMethod(header, syn, logger)
		if err != nil {
			logger.Debug("skipping header", slog.String("header", header), slog.Any("error", err))
			continue
		}
		methods = append(methods, m)
	}

	if len(fragments) > 0 {
		logger.Debug("discarding unterminated method header",
			slog.String("header", joinFragments(fragments)))
	}
	return methods
}

// joinFragments joins the physical lines of a wrapped header with a single
// space, except right after an opening bracket or right before a closing one,
// so the result matches the header written on one line.
func joinFragments(fragments []string) string {
	var b strings.Builder
	for i, fragment := range fragments {
		if i > 0 {
			prev := fragments[i-1]
			if !isOpener(rune(prev[len(prev)-1])) && !isCloser(rune(fragment[0])) {
				b.WriteByte(' ')
			}
		}
		b.WriteString(fragment)
	}
	return b.String()
}

func buildMethod(header string, syn lang.Syntax, logger *slog.Logger) (model.Method, error) {
	h, err := ParseHeader(header, syn)
	if err != nil {
		return model.Method{}, err
	}
	ret := model.UnspecifiedType
	if h.HasReturn {
		ret = h.ReturnType
	}
	return model.Method{
		Name:       h.Name,
		Parameters: ClassifyParams(h.Params, syn, logger),
		ReturnType: ret,
	}, nil
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// stripComment removes a trailing comment, ignoring markers inside quotes.
func stripComment(line string, marker byte) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == marker:
			return line[:i]
		}
	}
	return line
}
