// Package extract implements the heuristic structural extractor: it recovers
// class summaries from raw source lines with lexical rules instead of a
// grammar.
package extract

import (
	"log/slog"

	"github.com/phobologic/jones/internal/lang"
	"github.com/phobologic/jones/internal/model"
)

// Backend is the default, heuristic class extraction backend.
type Backend struct {
	syntax lang.Syntax
	logger *slog.Logger
}

// NewBackend returns a heuristic backend for the given syntax.
func NewBackend(syn lang.Syntax, logger *slog.Logger) *Backend {
	return &Backend{syntax: syn, logger: orDiscard(logger)}
}

// Name implements search.Backend.
func (b *Backend) Name() string { return "heuristic" }

// ExtractClass implements search.Backend.
func (b *Backend) ExtractClass(path string, source []byte, className string) (*model.ClassSummary, bool) {
	summary, ok := Class(SplitLines(string(source)), className, b.syntax, b.logger.With(slog.String("file", path)))
	if !ok {
		return nil, false
	}
	summary.File = path
	return summary, true
}

// ListClasses implements search.Backend.
func (b *Backend) ListClasses(path string, source []byte, match func(name string) bool) []model.ClassLocation {
	found := GrepClasses(SplitLines(string(source)), match, b.syntax)
	for i := range found {
		found[i].File = path
	}
	return found
}
