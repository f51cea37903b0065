// Package lower implements C5: rewriting a module's import/export forms
// into ordinary statements against the ambient require/module/exports
// triad described in spec.md §4.5.
package lower

import (
	"fmt"

	"github.com/jsbundle/esmbundle/internal/ast"
	"github.com/jsbundle/esmbundle/internal/helpers"
)

// Lowered is the body of the function a module compiles to:
//
//	function (module, exports, __dirname, __filename) { ... }
//
// Directives are emitted first (directive prologue), then Body in order.
// After lowering, no import/export form remains anywhere in either slice.
type Lowered struct {
	Directives []string
	Body       []string
}

// Module lowers m. m's specifiers are assumed to already be ModuleIds
// (i.e. C4 has run).
func Module(m *ast.Module) *Lowered {
	lw := &Lowered{Directives: append([]string{}, m.Directives...)}

	counters := map[string]int{}
	next := func(prefix string) string {
		name := fmt.Sprintf("%s%d", prefix, counters[prefix])
		counters[prefix]++
		return name
	}

	var hoisted, rest []string
	for _, item := range m.Items {
		switch it := item.(type) {
		case *ast.Import:
			hoisted = append(hoisted, lowerImport(it, next)...)
		case *ast.ImportNamespace:
			hoisted = append(hoisted, lowerImportNamespace(it)...)
		case *ast.ExportDefault:
			rest = append(rest, lowerExportDefault(it)...)
		case *ast.ExportDecl:
			rest = append(rest, lowerExportDecl(it)...)
		case *ast.ExportClause:
			rest = append(rest, lowerExportClause(it)...)
		case *ast.ExportFrom:
			rest = append(rest, lowerExportFrom(it, next)...)
		case *ast.ExportAllFrom:
			rest = append(rest, lowerExportAllFrom(it, next)...)
		case *ast.Raw:
			rest = append(rest, it.Source)
		}
	}

	lw.Body = append(lw.Body, hoisted...)
	lw.Body = append(lw.Body, rest...)
	return lw
}

func quote(s string) string {
	return string(helpers.QuoteForJSON(s, true))
}

func requireCall(moduleID string) string {
	return fmt.Sprintf("require(%s, module)", quote(moduleID))
}

func lowerImport(it *ast.Import, next func(string) string) []string {
	call := requireCall(it.Specifier)
	total := len(it.Named)
	if it.DefaultName != "" {
		total++
	}

	switch {
	case total == 0:
		return []string{call + ";"}

	case total == 1 && it.DefaultName != "":
		return []string{fmt.Sprintf("var %s = %s.default;", it.DefaultName, call)}

	case total == 1:
		b := it.Named[0]
		return []string{fmt.Sprintf("var %s = %s.%s;", b.To, call, b.From)}

	default:
		tmp := next("__imp")
		lines := []string{fmt.Sprintf("var %s = %s;", tmp, call)}
		if it.DefaultName != "" {
			lines = append(lines, fmt.Sprintf("var %s = %s.default;", it.DefaultName, tmp))
		}
		for _, b := range it.Named {
			lines = append(lines, fmt.Sprintf("var %s = %s.%s;", b.To, tmp, b.From))
		}
		return lines
	}
}

func lowerImportNamespace(it *ast.ImportNamespace) []string {
	return []string{fmt.Sprintf("var %s = %s;", it.Alias, requireCall(it.Specifier))}
}

func lowerExportDefault(it *ast.ExportDefault) []string {
	if it.Declared != "" {
		return []string{it.Expr + ";", fmt.Sprintf("exports.default = %s;", it.Declared)}
	}
	return []string{fmt.Sprintf("exports.default = (%s);", it.Expr)}
}

func lowerExportDecl(it *ast.ExportDecl) []string {
	lines := []string{it.Source}
	for _, name := range it.Names {
		lines = append(lines, fmt.Sprintf("exports.%s = %s;", name, name))
	}
	return lines
}

func lowerExportClause(it *ast.ExportClause) []string {
	lines := make([]string, 0, len(it.Items))
	for _, b := range it.Items {
		lines = append(lines, fmt.Sprintf("exports.%s = %s;", b.To, b.From))
	}
	return lines
}

func lowerExportFrom(it *ast.ExportFrom, next func(string) string) []string {
	tmp := next("__rexp")
	lines := []string{fmt.Sprintf("var %s = %s;", tmp, requireCall(it.Specifier))}
	for _, b := range it.Items {
		lines = append(lines, fmt.Sprintf("exports.%s = %s.%s;", b.To, tmp, b.From))
	}
	return lines
}

func lowerExportAllFrom(it *ast.ExportAllFrom, next func(string) string) []string {
	tmp := next("__star")
	lines := []string{fmt.Sprintf("var %s = %s;", tmp, requireCall(it.Specifier))}
	if it.Alias != "" {
		lines = append(lines, fmt.Sprintf("exports.%s = %s;", it.Alias, tmp))
		return lines
	}
	key := next("__key")
	lines = append(lines, fmt.Sprintf(
		`for (var %s in %s) { if (%s !== "default" && {}.hasOwnProperty.call(%s, %s)) exports[%s] = %s[%s]; }`,
		key, tmp, key, tmp, key, key, tmp, key,
	))
	return lines
}
