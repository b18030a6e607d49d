// Package discover decides which directory entries of a project are eligible
// for a class search.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/phobologic/jones/internal/lang"
)

var skipDirs = map[string]struct{}{
	"__pycache__":   {},
	"node_modules":  {},
	".git":          {},
	".hg":           {},
	".svn":          {},
	"venv":          {},
	".venv":         {},
	"env":           {},
	".env":          {},
	"build":         {},
	"dist":          {},
	".tox":          {},
	".mypy_cache":   {},
	".ruff_cache":   {},
	".pytest_cache": {},
	"egg-info":      {},
}

// Options controls which entries a Filter rejects.
type Options struct {
	// NoIgnore disables skip directories, hidden entries and .gitignore rules.
	NoIgnore bool
	// Excludes are glob patterns matched against slash-separated paths
	// relative to the root. They apply even with NoIgnore.
	Excludes []string
}

// Filter accepts or rejects entries found while walking a project root.
type Filter struct {
	language *lang.Language
	noIgnore bool
	gi       *ignore.GitIgnore
	excludes []glob.Glob
}

// NewFilter builds a Filter for files of language l under root.
func NewFilter(root string, l *lang.Language, opts Options) (*Filter, error) {
	f := &Filter{language: l, noIgnore: opts.NoIgnore}

	for _, pattern := range opts.Excludes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		f.excludes = append(f.excludes, g)
	}

	if !opts.NoIgnore {
		f.gi = loadGitignore(root)
	}
	return f, nil
}

// SkipDir reports whether the directory at rel (relative to the root) should
// not be descended into.
func (f *Filter) SkipDir(rel string, d fs.DirEntry) bool {
	// Symlinked directories can form cycles.
	if d.Type()&fs.ModeSymlink != 0 {
		return true
	}
	if f.excluded(rel) || f.excluded(rel+"/") {
		return true
	}
	if f.noIgnore {
		return false
	}

	name := d.Name()
	if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".egg-info") {
		return true
	}
	return f.gi != nil && (f.gi.MatchesPath(rel) || f.gi.MatchesPath(rel+"/"))
}

// AcceptFile reports whether the file at rel (relative to the root) should be
// inspected.
func (f *Filter) AcceptFile(rel string, d fs.DirEntry) bool {
	name := d.Name()

	if d.Type()&fs.ModeSymlink != 0 {
		return false
	}
	if f.language == nil || !f.language.HasExtension(filepath.Ext(name)) {
		return false
	}
	if f.excluded(rel) {
		return false
	}
	if f.noIgnore {
		return true
	}
	if strings.HasPrefix(name, ".") {
		return false
	}
	return f.gi == nil || !f.gi.MatchesPath(rel)
}

func (f *Filter) excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, g := range f.excludes {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
