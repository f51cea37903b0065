// Package ast holds the module-level representation the bundler core
// operates on. Unlike a full ECMAScript AST, only the import/export
// surface is modeled structurally; everything else top-level is an
// opaque source span (Raw). This matches the scope of the core: the
// general parser and printer are external collaborators, not this
// package's concern.
package ast

// ModuleSpecifier is the literal operand of an import/export-from clause.
// It starts life as written in source, is rewritten to a CanonicalLocation
// by the resolver pass, and finally rewritten to a ModuleId by the gensym
// pass. All three stages share this same string-valued field.
type ModuleSpecifier = string

// Rename pairs a source-side name with the name it is known as on the
// other side of a binding. For an import, From is the name exported by
// the dependency and To is the name bound locally. For a local export
// clause, From is the local binding and To is the name seen by importers.
// For a re-export ("export … from"), From is the dependency's exported
// name and To is the name seen by this module's importers.
type Rename struct {
	From string
	To   string
}

// Item is one top-level construct of a module, in source order.
type Item interface{ isItem() }

// Import covers every import form that isn't a bare namespace import:
//
//	import "id"                      (Specifier only)
//	import x from "id"                (DefaultName only)
//	import { a, b as c } from "id"    (Named only)
//	import x, { a, b as c } from "id" (both)
type Import struct {
	Specifier   ModuleSpecifier
	DefaultName string
	Named       []Rename
}

func (*Import) isItem() {}

// ImportNamespace is "import * as N from 'id'". Kept as its own node
// kind (rather than a field on Import) because the rewriter and the
// lowerer both need to special-case it independently of Import.
type ImportNamespace struct {
	Specifier ModuleSpecifier
	Alias     string
}

func (*ImportNamespace) isItem() {}

// ExportDefault is "export default E". If the default export is a named
// function or class declaration, Declared holds the introduced name and
// Expr holds the declaration's own source text (including the keyword);
// otherwise Declared is empty and Expr holds the exported expression's
// source text with no trailing statement terminator.
type ExportDefault struct {
	Expr     string
	Declared string
}

func (*ExportDefault) isItem() {}

// ExportDecl is "export var/let/const x = E", "export function f(){}",
// or "export class C {}". Source holds the declaration's own text
// (without the leading "export " keyword); Names holds every binding it
// introduces that must be re-exported.
type ExportDecl struct {
	Source string
	Names  []string
}

func (*ExportDecl) isItem() {}

// ExportClause is "export { a, b as c }" with no "from" clause — it
// contributes no dependency.
type ExportClause struct {
	Items []Rename
}

func (*ExportClause) isItem() {}

// ExportFrom is "export { a, b as c } from 'id'".
type ExportFrom struct {
	Specifier ModuleSpecifier
	Items     []Rename
}

func (*ExportFrom) isItem() {}

// ExportAllFrom is "export * from 'id'", or, as a supplement to spec.md's
// table, "export * as ns from 'id'" when Alias is non-empty.
type ExportAllFrom struct {
	Specifier ModuleSpecifier
	Alias     string
}

func (*ExportAllFrom) isItem() {}

// Raw is any top-level construct the core has no structural interest in:
// ordinary statements, expressions, function/class declarations that
// aren't the target of an export, directives that aren't part of the
// leading prologue, etc. Source is preserved byte-for-byte.
type Raw struct {
	Source string
}

func (*Raw) isItem() {}

// Module is one parsed, (progressively rewritten) ECMAScript module.
type Module struct {
	// Directives holds the exact text (including quotes) of each leading
	// directive prologue entry, e.g. `"use strict"`, in source order.
	Directives []string
	Items      []Item
}

// Specifiers reports every specifier referenced by nodes C1 rewrites:
// Import, ImportNamespace, ExportFrom, ExportAllFrom — in source order.
// ExportClause never contributes since it has no "from" clause.
func (m *Module) Specifiers() []ModuleSpecifier {
	var specs []ModuleSpecifier
	for _, item := range m.Items {
		switch it := item.(type) {
		case *Import:
			specs = append(specs, it.Specifier)
		case *ImportNamespace:
			specs = append(specs, it.Specifier)
		case *ExportFrom:
			specs = append(specs, it.Specifier)
		case *ExportAllFrom:
			specs = append(specs, it.Specifier)
		}
	}
	return specs
}
