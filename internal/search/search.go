// Package search walks a project tree and applies a class extraction backend
// to its source files, either stopping at the first file that declares a
// class or collecting every matching declaration.
package search

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/phobologic/jones/internal/discover"
	"github.com/phobologic/jones/internal/extract"
	"github.com/phobologic/jones/internal/lang"
	"github.com/phobologic/jones/internal/model"
)

// ErrInvalidSearchRoot is returned when the search root cannot be resolved or read.
var ErrInvalidSearchRoot = errors.New("invalid search root")

// DefaultMaxFileSize is the largest file inspected unless overridden.
const DefaultMaxFileSize = 1_000_000 // 1 MB

// Backend recovers class information from the contents of one source file.
type Backend interface {
	Name() string
	ExtractClass(path string, source []byte, className string) (*model.ClassSummary, bool)
	ListClasses(path string, source []byte, match func(name string) bool) []model.ClassLocation
}

// Option configures an Engine.
type Option func(*Engine)

// WithBackend sets the extraction backend. The default is the heuristic extractor.
func WithBackend(b Backend) Option {
	return func(e *Engine) {
		if b != nil {
			e.backend = b
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithFilterOptions sets ignore and exclude rules for the walk.
func WithFilterOptions(opts discover.Options) Option {
	return func(e *Engine) {
		e.filterOpts = opts
	}
}

// WithMaxFileSize skips files larger than n bytes. Zero or less disables the limit.
func WithMaxFileSize(n int64) Option {
	return func(e *Engine) {
		e.maxFileSize = n
	}
}

// WithIgnoreCase makes grep matching case-insensitive.
func WithIgnoreCase(ignoreCase bool) Option {
	return func(e *Engine) {
		e.ignoreCase = ignoreCase
	}
}

// Engine searches a project for classes. It is single-threaded and holds no
// state between calls.
type Engine struct {
	language    *lang.Language
	backend     Backend
	logger      *slog.Logger
	filterOpts  discover.Options
	maxFileSize int64
	ignoreCase  bool
}

// New returns an Engine for Python sources.
func New(opts ...Option) *Engine {
	e := &Engine{
		language:    lang.Python(),
		logger:      slog.New(slog.DiscardHandler),
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.backend == nil {
		e.backend = extract.NewBackend(e.language.Syntax, e.logger)
	}
	return e
}

// Backend returns the extraction backend in use.
func (e *Engine) Backend() Backend {
	return e.backend
}

// FindClass returns the summary of the first declaration of className found
// in a depth-first walk of root. It returns nil, nil when no file declares
// the class.
func (e *Engine) FindClass(root, className string) (*model.ClassSummary, error) {
	w, err := e.newWalk(root)
	if err != nil {
		return nil, err
	}

	var found *model.ClassSummary
	w.run(func(path string, source []byte) bool {
		if !extract.ContainsDeclaration(string(source), className, e.language.Syntax) {
			return true
		}
		summary, ok := e.backend.ExtractClass(path, source, className)
		if !ok {
			e.logger.Debug("declaration matched but extraction failed",
				slog.String("file", path), slog.String("backend", e.backend.Name()))
			return true
		}
		found = summary
		return false
	})
	return found, nil
}

// GrepClasses returns every class declaration under root whose name contains
// query, in traversal order. It returns nil when nothing matches.
func (e *Engine) GrepClasses(root, query string) ([]model.ClassLocation, error) {
	w, err := e.newWalk(root)
	if err != nil {
		return nil, err
	}

	match := func(name string) bool { return strings.Contains(name, query) }
	if e.ignoreCase {
		lowered := strings.ToLower(query)
		match = func(name string) bool { return strings.Contains(strings.ToLower(name), lowered) }
	}

	var found []model.ClassLocation
	w.run(func(path string, source []byte) bool {
		found = append(found, e.backend.ListClasses(path, source, match)...)
		return true
	})
	return found, nil
}

// walk is one depth-first traversal of a resolved root.
type walk struct {
	engine *Engine
	root   string // absolute
	base   string // as given by the caller, used for reported paths
	filter *discover.Filter
}

func (e *Engine) newWalk(root string) (*walk, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving %s: %w", ErrInvalidSearchRoot, root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSearchRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s: not a directory", ErrInvalidSearchRoot, abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSearchRoot, err)
	}

	filter, err := discover.NewFilter(abs, e.language, e.filterOpts)
	if err != nil {
		return nil, err
	}
	return &walk{engine: e, root: abs, base: filepath.Clean(root), filter: filter}, nil
}

// run calls visit for every eligible file, in directory listing order with
// subdirectories searched where they appear, until visit returns false.
// visit receives the file path joined onto the root as given by the caller.
func (w *walk) run(visit func(path string, source []byte) bool) {
	w.dir("", visit)
}

func (w *walk) dir(rel string, visit func(string, []byte) bool) bool {
	logger := w.engine.logger
	abs := filepath.Join(w.root, filepath.FromSlash(rel))

	entries, err := os.ReadDir(abs)
	if err != nil {
		logger.Warn("failed to read directory", slog.String("dir", abs), slog.Any("error", err))
		return true
	}

	for _, entry := range entries {
		entryRel := filepath.ToSlash(filepath.Join(rel, entry.Name()))

		if entry.IsDir() {
			if w.filter.SkipDir(entryRel, entry) {
				continue
			}
			if !w.dir(entryRel, visit) {
				return false
			}
			continue
		}

		if !w.filter.AcceptFile(entryRel, entry) {
			continue
		}
		path := filepath.Join(w.base, filepath.FromSlash(entryRel))
		source, ok := w.read(path, entry)
		if !ok {
			continue
		}
		if !visit(path, source) {
			return false
		}
	}
	return true
}

func (w *walk) read(path string, entry os.DirEntry) ([]byte, bool) {
	logger := w.engine.logger

	if limit := w.engine.maxFileSize; limit > 0 {
		info, err := entry.Info()
		if err == nil && info.Size() > limit {
			logger.Warn("skipping large file", slog.String("file", path), slog.Int64("size", info.Size()), slog.Int64("limit", limit))
			return nil, false
		}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("failed to read file", slog.String("file", path), slog.Any("error", err))
		return nil, false
	}
	if !utf8.Valid(source) {
		logger.Warn("skipping file that is not valid UTF-8", slog.String("file", path))
		return nil, false
	}
	return source, true
}
