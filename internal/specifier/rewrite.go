// Package specifier implements C1: substitution of the module-specifier
// string on every AST node that carries one, producing a new module and
// leaving the input unmodified.
package specifier

import "github.com/jsbundle/esmbundle/internal/ast"

// Rewrite returns a module in which every Import, ImportNamespace,
// ExportFrom, and ExportAllFrom node has had its specifier replaced by
// rename(original). All other items are carried over unchanged; items
// with no specifier field are reused referentially rather than copied,
// since they are never mutated by this pass.
func Rewrite(m *ast.Module, rename func(string) string) *ast.Module {
	items := make([]ast.Item, len(m.Items))
	for i, item := range m.Items {
		switch it := item.(type) {
		case *ast.Import:
			cp := *it
			cp.Specifier = rename(it.Specifier)
			items[i] = &cp
		case *ast.ImportNamespace:
			cp := *it
			cp.Specifier = rename(it.Specifier)
			items[i] = &cp
		case *ast.ExportFrom:
			cp := *it
			cp.Specifier = rename(it.Specifier)
			items[i] = &cp
		case *ast.ExportAllFrom:
			cp := *it
			cp.Specifier = rename(it.Specifier)
			items[i] = &cp
		default:
			items[i] = item
		}
	}
	return &ast.Module{Directives: m.Directives, Items: items}
}
