package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/jones/internal/model"
)

func TestBases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		decl string
		want []string
	}{
		{"class God:", []string{}},
		{"class God():", []string{}},
		{"class Child(Base1, Base2):", []string{"Base1", "Base2"}},
		{"    class Child(pkg.Base):", []string{"pkg.Base"}},
		{"class Box(Generic[K, V], Mapping[K, V]):", []string{"Generic[K, V]", "Mapping[K, V]"}},
		{"class Meta(Base, metaclass=ABCMeta):", []string{"Base", "metaclass=ABCMeta"}},
		{"class Open(Base1, Base2", []string{"Base1", "Base2"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.decl, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Bases(tt.decl, py))
		})
	}
}

func TestDocstringSingleLine(t *testing.T) {
	t.Parallel()

	doc := Docstring([]string{
		"class God:",
		`    """DocString"""`,
		"",
		"    def __init__(self, name: int):",
		"        self.name = name",
	}, py)
	require.NotNil(t, doc)
	assert.Equal(t, "DocString", *doc)
}

func TestDocstringMultiLine(t *testing.T) {
	t.Parallel()

	doc := Docstring([]string{
		"class God:",
		`    """`,
		"     DocString",
		"     Some more test",
		`    """`,
		"",
		"    def __init__(self, name: int):",
	}, py)
	require.NotNil(t, doc)
	assert.Equal(t, "DocString\nSome more test", *doc)
}

func TestDocstringOpeningLineText(t *testing.T) {
	t.Parallel()

	doc := Docstring([]string{
		"class God:",
		`    r'''Summary line.`,
		"",
		`    Details.'''`,
	}, py)
	require.NotNil(t, doc)
	assert.Equal(t, "Summary line.\n\nDetails.", *doc)
}

func TestDocstringAbsent(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Docstring([]string{"class God:", "    pass", ""}, py))
}

func TestDocstringScansWholeBlock(t *testing.T) {
	t.Parallel()

	got := Docstring([]string{
		"class God:",
		"    def hi(self):",
		`        """Say hi."""`,
		"        pass",
	}, py)
	require.NotNil(t, got)
	assert.Equal(t, "Say hi.", *got)
}

func TestDocstringPrefersClassDocstring(t *testing.T) {
	t.Parallel()

	got := Docstring([]string{
		"class God:",
		`    """The one."""`,
		"    def hi(self):",
		`        """Say hi."""`,
	}, py)
	require.NotNil(t, got)
	assert.Equal(t, "The one.", *got)
}

func TestClass(t *testing.T) {
	t.Parallel()

	lines := SplitLines(`
class God(Deity, Immortal):
    """The one."""

    def __init__(self, name: int):
        self.name = name

    def hi(self) -> None:
        print(f'My name is {self.name}')

`)

	got, ok := Class(lines, "God", py, nil)
	require.True(t, ok)

	doc := "The one."
	want := &model.ClassSummary{
		Name:      "God",
		Bases:     []string{"Deity", "Immortal"},
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
		Line: 2,
	}
	assert.Equal(t, want, got)
}

func TestClassNotFound(t *testing.T) {
	t.Parallel()

	got, ok := Class(SplitLines("class TestClass:\n    pass\n"), "TestCode", py, nil)
	assert.False(t, ok)
	assert.Nil(t, got)
}
