package extract

import (
	"log/slog"
	"strings"

	"github.com/phobologic/jones/internal/lang"
	"github.com/phobologic/jones/internal/model"
)

// ClassifyParams turns a raw parameter list into typed parameters in
// declaration order. Segments that cannot be classified are skipped with a
// debug diagnostic; they never fail the whole list.
func ClassifyParams(raw string, syn lang.Syntax, logger *slog.Logger) []model.Parameter {
	logger = orDiscard(logger)

	params := make([]model.Parameter, 0)
	for _, segment := range SplitTopLevel(raw, syn.ParamSeparator) {
		segment = strings.TrimSpace(segment)
		if segment == "" || syn.IsPositionalMarker(segment) {
			continue
		}
		p, ok := classifyParam(segment, syn)
		if !ok {
			logger.Debug("skipping unclassifiable parameter", slog.String("segment", segment))
			continue
		}
		params = append(params, p)
	}
	return params
}

func classifyParam(segment string, syn lang.Syntax) (model.Parameter, bool) {
	// Default values never carry type information.
	decl := SplitTopLevel(segment, rune(syn.DefaultDelim))[0]

	parts := SplitTopLevel(decl, rune(syn.AnnotationDelim))
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return model.Parameter{}, false
	}

	var typ string
	switch len(parts) {
	case 1:
		typ = model.UnspecifiedType
	case 2:
		typ = strings.TrimSpace(parts[1])
		if typ == "" {
			typ = model.UnspecifiedType
		}
	default:
		return model.Parameter{}, false
	}

	if syn.IsReceiver(name) {
		typ = model.ReceiverType
	}
	return model.Parameter{Name: name, Type: typ}, true
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
