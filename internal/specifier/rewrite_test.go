package specifier

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsbundle/esmbundle/internal/ast"
	"github.com/stretchr/testify/assert"
)

func upper(s string) string { return s + "!" }

func TestRewriteTouchesOnlySpecifierBearingNodes(t *testing.T) {
	m := &ast.Module{
		Directives: []string{`"use strict"`},
		Items: []ast.Item{
			&ast.Import{Specifier: "a", DefaultName: "A"},
			&ast.ImportNamespace{Specifier: "b", Alias: "ns"},
			&ast.ExportClause{Items: []ast.Rename{{From: "x", To: "y"}}},
			&ast.ExportFrom{Specifier: "c", Items: []ast.Rename{{From: "p", To: "q"}}},
			&ast.ExportAllFrom{Specifier: "d"},
			&ast.Raw{Source: "const z = 1;"},
		},
	}

	out := Rewrite(m, upper)

	want := &ast.Module{
		Directives: []string{`"use strict"`},
		Items: []ast.Item{
			&ast.Import{Specifier: "a!", DefaultName: "A"},
			&ast.ImportNamespace{Specifier: "b!", Alias: "ns"},
			&ast.ExportClause{Items: []ast.Rename{{From: "x", To: "y"}}},
			&ast.ExportFrom{Specifier: "c!", Items: []ast.Rename{{From: "p", To: "q"}}},
			&ast.ExportAllFrom{Specifier: "d!"},
			&ast.Raw{Source: "const z = 1;"},
		},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("Rewrite() mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriteDoesNotMutateInput(t *testing.T) {
	orig := &ast.Import{Specifier: "a"}
	m := &ast.Module{Items: []ast.Item{orig}}

	Rewrite(m, upper)

	assert.Equal(t, "a", orig.Specifier, "Rewrite must not mutate the input module's nodes")
}

func TestRewriteExportClauseUntouched(t *testing.T) {
	clause := &ast.ExportClause{Items: []ast.Rename{{From: "a", To: "b"}}}
	m := &ast.Module{Items: []ast.Item{clause}}

	out := Rewrite(m, upper)

	assert.Same(t, clause, out.Items[0], "ExportClause has no specifier, so Rewrite should reuse the node")
}
