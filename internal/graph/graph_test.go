package graph

import (
	"errors"
	"testing"

	"github.com/jsbundle/esmbundle/internal/ast"
	"github.com/jsbundle/esmbundle/internal/bundlererr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver resolves "./x" relative to any referrer to "x.js".
type fakeResolver struct{}

func (fakeResolver) Resolve(specifier, referrerDir string) (string, error) {
	switch specifier {
	case "./a":
		return "a.js", nil
	case "./b":
		return "b.js", nil
	case "./c":
		return "c.js", nil
	case "./missing":
		return "", errors.New("not found")
	}
	return "", errors.New("unknown specifier " + specifier)
}

// fakeLoader and fakeParser work off a fixed table of module sources and a
// hand-rolled miniature parser so graph tests don't depend on jsparser.
type fakeLoader map[string]string

func (l fakeLoader) Load(location string) (string, error) {
	src, ok := l[location]
	if !ok {
		return "", errors.New("no such file " + location)
	}
	return src, nil
}

// fakeParser turns every non-empty line of the source into an ast.Import
// whose specifier is the line's text, letting tests build small graphs
// without real ES module syntax.
type fakeParser struct{}

func (fakeParser) Parse(source string) (*ast.Module, error) {
	m := &ast.Module{}
	if source == "" {
		return m, nil
	}
	for _, spec := range splitLines(source) {
		if spec == "" {
			continue
		}
		m.Items = append(m.Items, &ast.Import{Specifier: spec})
	}
	return m, nil
}

func splitLines(s string) []string {
	var out []string
	cur := ""
	for _, c := range s {
		if c == '\n' {
			out = append(out, cur)
			cur = ""
			continue
		}
		cur += string(c)
	}
	return append(out, cur)
}

func TestLoadDiamondDependencyVisitsEachModuleOnce(t *testing.T) {
	loader := fakeLoader{
		"a.js": "./c",
		"b.js": "./c",
		"c.js": "",
	}
	g, err := Load("entry.js", "./a\n./b", fakeParser{}, fakeResolver{}, loader)
	require.NoError(t, err)

	assert.Equal(t, []string{"entry.js", "a.js", "b.js", "c.js"}, g.Order)
	assert.Len(t, g.Records, 4)
}

func TestLoadPropagatesLoadError(t *testing.T) {
	_, err := Load("entry.js", "./a", fakeParser{}, fakeResolver{}, fakeLoader{})

	require.Error(t, err)
	var be *bundlererr.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, bundlererr.Load, be.Kind)
}

func TestLoadPropagatesResolveError(t *testing.T) {
	_, err := Load("entry.js", "./missing", fakeParser{}, fakeResolver{}, fakeLoader{})

	require.Error(t, err)
	var be *bundlererr.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, bundlererr.Resolve, be.Kind)
}

func TestAssignIdsIsStableAndOneBased(t *testing.T) {
	g := &Graph{Order: []string{"entry.js", "a.js", "b.js"}}
	ids := AssignIds(g)
	assert.Equal(t, "1", ids["entry.js"])
	assert.Equal(t, "2", ids["a.js"])
	assert.Equal(t, "3", ids["b.js"])
}

func TestRewriteIdsReplacesLocationsWithIds(t *testing.T) {
	loader := fakeLoader{"a.js": ""}
	g, err := Load("entry.js", "./a", fakeParser{}, fakeResolver{}, loader)
	require.NoError(t, err)

	ids := AssignIds(g)
	RewriteIds(g, ids)

	entry := g.Records["entry.js"]
	imp := entry.AST.Items[0].(*ast.Import)
	assert.Equal(t, ids["a.js"], imp.Specifier)
}

func TestDirHandlesSlashSeparatedLocations(t *testing.T) {
	assert.Equal(t, "src", dir("src/a.js"))
	assert.Equal(t, ".", dir("a.js"))
}
