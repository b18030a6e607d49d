package search

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/jones/internal/discover"
	"github.com/phobologic/jones/internal/lang"
	"github.com/phobologic/jones/internal/model"
	"github.com/phobologic/jones/internal/parse"
)

const pythonCode = `
class God:
    """DocString"""
    def __init__(self, name: int):
        self.name == name

    def hi(self) -> None:
        print(f'My name is {self.name}')

`

const randomCode = `
class TestClass:

    def __init__(self, age: gig):
        self.age == age

    def hi(self):
        print(f'My name is {self.age}')
`

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindClass(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "app/models.py", pythonCode)
	writeFile(t, dir, "app/other.py", randomCode)

	got, err := New().FindClass(dir, "God")
	require.NoError(t, err)
	require.NotNil(t, got)

	doc := "DocString"
	want := &model.ClassSummary{
		Name:      "God",
		Bases:     []string{},
		Docstring: &doc,
		Methods: []model.Method{
			{
				Name:       "__init__",
				Parameters: []model.Parameter{{Name: "self", Type: "Self"}, {Name: "name", Type: "int"}},
				ReturnType: "None",
			},
			{
				Name:       "hi",
				Parameters: []model.Parameter{{Name: "self", Type: "Self"}},
				ReturnType: "None",
			},
		},
		File: filepath.Join(dir, "app", "models.py"),
		Line: 2,
	}
	assert.Equal(t, want, got)
}

func TestFindClassNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "test.py", pythonCode)
	writeFile(t, dir, "test.rs", randomCode)

	got, err := New().FindClass(dir, "TestCode")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindClassOnlyInspectsPythonFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "test.py", pythonCode)
	writeFile(t, dir, "test.rs", randomCode)
	writeFile(t, dir, "test.pyi.txt", randomCode)

	got, err := New().FindClass(dir, "TestClass")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindClassFirstMatchWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// Listing order is a/, b.py, c/: the subdirectory a/ is searched first.
	writeFile(t, dir, "a/deep/first.py", "class God(First):\n    pass\n")
	writeFile(t, dir, "b.py", "class God(Second):\n    pass\n")
	writeFile(t, dir, "c/third.py", "class God(Third):\n    pass\n")

	got, err := New().FindClass(dir, "God")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"First"}, got.Bases)
	assert.Equal(t, filepath.Join(dir, "a", "deep", "first.py"), got.File)
}

func TestFindClassSkipsPrefilterMisses(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.py", "class GodMode:\n    pass\n")
	writeFile(t, dir, "b.py", "class God:\n    pass\n")

	got, err := New().FindClass(dir, "God")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, filepath.Join(dir, "b.py"), got.File)
}

func TestFindClassIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "pkg/god.py", pythonCode)

	e := New()
	first, err := e.FindClass(dir, "God")
	require.NoError(t, err)
	second, err := e.FindClass(dir, "God")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFindClassWithASTBackend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "god.py", pythonCode)

	heuristic, err := New().FindClass(dir, "God")
	require.NoError(t, err)

	e := New(WithBackend(parse.NewBackend(lang.Python(), nil)))
	assert.Equal(t, "ast", e.Backend().Name())
	exact, err := e.FindClass(dir, "God")
	require.NoError(t, err)
	assert.Equal(t, heuristic, exact)
}

func TestFindClassInvalidRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "file.py", pythonCode)

	_, err := New().FindClass(filepath.Join(dir, "missing"), "God")
	assert.ErrorIs(t, err, ErrInvalidSearchRoot)

	_, err = New().GrepClasses(filepath.Join(dir, "file.py"), "God")
	assert.ErrorIs(t, err, ErrInvalidSearchRoot)
}

func TestFindClassInvalidExclude(t *testing.T) {
	t.Parallel()

	e := New(WithFilterOptions(discover.Options{Excludes: []string{"[oops"}}))
	_, err := e.FindClass(t.TempDir(), "God")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSearchRoot)
}

func TestFindClassSkipsUnreadableEntries(t *testing.T) {
	t.Parallel()
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	dir := t.TempDir()
	writeFile(t, dir, "a/locked/god.py", "class God(Locked):\n    pass\n")
	writeFile(t, dir, "b/unreadable.py", "class God(Unreadable):\n    pass\n")
	writeFile(t, dir, "c/god.py", "class God(Open):\n    pass\n")
	require.NoError(t, os.Chmod(filepath.Join(dir, "a", "locked"), 0o000))
	require.NoError(t, os.Chmod(filepath.Join(dir, "b", "unreadable.py"), 0o000))
	t.Cleanup(func() {
		_ = os.Chmod(filepath.Join(dir, "a", "locked"), 0o755)
	})

	var logs bytes.Buffer
	e := New(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	got, err := e.FindClass(dir, "God")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"Open"}, got.Bases)
	assert.Contains(t, logs.String(), "failed to read directory")
	assert.Contains(t, logs.String(), "failed to read file")
}

func TestFindClassSkipsLargeAndBinaryFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a_big.py", "class God(Big):\n    pass\n# padding padding padding\n")
	writeFile(t, dir, "b_binary.py", "class God(Binary):\n\xff\xfe\n")
	writeFile(t, dir, "c_small.py", "class God(Small):\n")

	var logs bytes.Buffer
	e := New(
		WithMaxFileSize(40),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)
	got, err := e.FindClass(dir, "God")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"Small"}, got.Bases)
	assert.Contains(t, logs.String(), "skipping large file")
	assert.Contains(t, logs.String(), "not valid UTF-8")
}

func TestGrepClasses(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.py", "class God:\n    pass\n")
	writeFile(t, dir, "b/mode.py", "import os\n\nclass GodMode(God):\n    pass\n")
	writeFile(t, dir, "c.py", "class Human:\n    pass\n")
	writeFile(t, dir, "d.txt", "class GodText:\n")

	got, err := New().GrepClasses(dir, "God")
	require.NoError(t, err)
	assert.Equal(t, []model.ClassLocation{
		{Declaration: "class God:", File: filepath.Join(dir, "a.py"), Line: 1},
		{Declaration: "class GodMode(God):", File: filepath.Join(dir, "b", "mode.py"), Line: 3},
	}, got)
}

func TestGrepClassesNoMatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.py", "class God:\n    pass\n")

	got, err := New().GrepClasses(dir, "Titan")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGrepClassesIgnoreCase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.py", "class God:\n    pass\nclass demigod:\n    pass\n")

	got, err := New().GrepClasses(dir, "god")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "class demigod:", got[0].Declaration)

	got, err = New(WithIgnoreCase(true)).GrepClasses(dir, "god")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGrepClassesRespectsFilterOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "app.py", "class God:\n")
	writeFile(t, dir, "venv/lib.py", "class GodVendored:\n")
	writeFile(t, dir, "tests/test_god.py", "class GodTest:\n")

	got, err := New(WithFilterOptions(discover.Options{Excludes: []string{"tests"}})).GrepClasses(dir, "God")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "class God:", got[0].Declaration)

	got, err = New(WithFilterOptions(discover.Options{NoIgnore: true})).GrepClasses(dir, "God")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
