// Package jsparser is the default Parser used by pkg/bundler. It
// recovers exactly the structure C1–C5 need (import/export declarations)
// and otherwise treats the module as opaque source text. See
// SPEC_FULL.md's DOMAIN STACK section for why this, rather than a full
// ECMAScript parser, is the right scope for this repository's default.
package jsparser

import (
	"fmt"
	"strings"

	"github.com/jsbundle/esmbundle/internal/ast"
)

// Parse builds a module AST from source.
func Parse(source string) (*ast.Module, error) {
	m := &ast.Module{}
	i := 0

	i = parseDirectivePrologue(source, i, m)

	for {
		i = skipTrivia(source, i)
		if i >= len(source) {
			break
		}

		switch {
		case keywordAt(source, i, "import") && !followedByParenOrDot(source, i+len("import")):
			item, next, err := parseImport(source, i)
			if err != nil {
				return nil, err
			}
			m.Items = append(m.Items, item...)
			i = next

		case keywordAt(source, i, "export"):
			item, next, err := parseExport(source, i)
			if err != nil {
				return nil, err
			}
			m.Items = append(m.Items, item...)
			i = next

		default:
			text, next := scanStatement(source, i)
			if text != "" {
				m.Items = append(m.Items, &ast.Raw{Source: text})
			}
			i = next
		}
	}

	return m, nil
}

// followedByParenOrDot reports whether, after skipping trivia from i, the
// next character starts "(" (a dynamic import() call) or "." (import.meta).
// Both are expressions, not declarations, and are out of this core's
// scope (spec.md Non-goals); they're passed through as Raw text.
func followedByParenOrDot(src string, i int) bool {
	j := skipTrivia(src, i)
	return j < len(src) && (src[j] == '(' || src[j] == '.')
}

func parseDirectivePrologue(src string, i int, m *ast.Module) int {
	for {
		j := skipTrivia(src, i)
		if j >= len(src) || (src[j] != '\'' && src[j] != '"') {
			return i
		}
		end := scanQuoted(src, j, src[j])
		literal := src[j:end]
		k := skipTrivia(src, end)
		if k < len(src) && src[k] == ';' {
			k++
		} else if k < len(src) && src[k] != '}' && k != len(src) {
			// Not a directive after all (e.g. "str".length) — the string
			// is actually the start of a larger expression statement.
			return i
		}
		m.Directives = append(m.Directives, literal)
		i = k
	}
}

func parseImport(src string, i int) ([]ast.Item, int, error) {
	i += len("import")
	i = skipTrivia(src, i)

	if i < len(src) && (src[i] == '\'' || src[i] == '"') {
		spec, next, err := parseStringLiteral(src, i)
		if err != nil {
			return nil, 0, err
		}
		i = skipTrivia(src, next)
		i = skipSemicolon(src, i)
		return []ast.Item{&ast.Import{Specifier: spec}}, i, nil
	}

	var defaultName string
	var named []ast.Rename
	var namespaceAlias string

	for {
		i = skipTrivia(src, i)
		if i >= len(src) {
			return nil, 0, fmt.Errorf("unexpected end of input in import clause")
		}
		switch {
		case src[i] == '*':
			i++
			i = skipTrivia(src, i)
			if !keywordAt(src, i, "as") {
				return nil, 0, fmt.Errorf("expected 'as' after '*' in import clause")
			}
			i += len("as")
			i = skipTrivia(src, i)
			name, next := scanIdentifier(src, i)
			namespaceAlias = name
			i = next
		case src[i] == '{':
			items, next, err := parseBindingList(src, i)
			if err != nil {
				return nil, 0, err
			}
			named = append(named, items...)
			i = next
		default:
			name, next := scanIdentifier(src, i)
			if name == "" {
				return nil, 0, fmt.Errorf("expected identifier in import clause")
			}
			defaultName = name
			i = next
		}
		i = skipTrivia(src, i)
		if i < len(src) && src[i] == ',' {
			i++
			continue
		}
		break
	}

	i = skipTrivia(src, i)
	if !keywordAt(src, i, "from") {
		return nil, 0, fmt.Errorf("expected 'from' in import clause")
	}
	i += len("from")
	i = skipTrivia(src, i)
	spec, next, err := parseStringLiteral(src, i)
	if err != nil {
		return nil, 0, err
	}
	i = skipTrivia(src, next)
	i = skipSemicolon(src, i)

	// Namespace and regular (default/named) bindings are distinct node
	// kinds (see ast.ImportNamespace's doc comment), so a clause combining
	// both ("import d, * as ns from 'id'") produces two items against the
	// same specifier — a documented supplement, see SPEC_FULL.md.
	var items []ast.Item
	if namespaceAlias != "" {
		items = append(items, &ast.ImportNamespace{Specifier: spec, Alias: namespaceAlias})
	}
	if namespaceAlias == "" || defaultName != "" || len(named) > 0 {
		items = append(items, &ast.Import{Specifier: spec, DefaultName: defaultName, Named: named})
	}
	return items, i, nil
}

func parseExport(src string, i int) ([]ast.Item, int, error) {
	i += len("export")
	i = skipTrivia(src, i)

	switch {
	case keywordAt(src, i, "default"):
		return parseExportDefault(src, i+len("default"))

	case keywordAt(src, i, "var") || keywordAt(src, i, "let") || keywordAt(src, i, "const"):
		text, next := scanStatement(src, i)
		names := declaredNames(text)
		return []ast.Item{&ast.ExportDecl{Source: text, Names: names}}, next, nil

	case keywordAt(src, i, "function") || keywordAt(src, i, "class") ||
		(keywordAt(src, i, "async") && keywordAt(src, skipTrivia(src, i+len("async")), "function")):
		text, next := scanStatement(src, i)
		name := declarationName(text)
		return []ast.Item{&ast.ExportDecl{Source: text, Names: []string{name}}}, next, nil

	case i < len(src) && src[i] == '{':
		itemsList, next, err := parseBindingList(src, i)
		if err != nil {
			return nil, 0, err
		}
		j := skipTrivia(src, next)
		if keywordAt(src, j, "from") {
			j += len("from")
			j = skipTrivia(src, j)
			spec, afterSpec, err := parseStringLiteral(src, j)
			if err != nil {
				return nil, 0, err
			}
			j = skipTrivia(src, afterSpec)
			j = skipSemicolon(src, j)
			return []ast.Item{&ast.ExportFrom{Specifier: spec, Items: itemsList}}, j, nil
		}
		next = skipSemicolon(src, skipTrivia(src, next))
		return []ast.Item{&ast.ExportClause{Items: itemsList}}, next, nil

	case i < len(src) && src[i] == '*':
		j := i + 1
		j = skipTrivia(src, j)
		var alias string
		if keywordAt(src, j, "as") {
			j += len("as")
			j = skipTrivia(src, j)
			name, next := scanIdentifier(src, j)
			alias = name
			j = next
			j = skipTrivia(src, j)
		}
		if !keywordAt(src, j, "from") {
			return nil, 0, fmt.Errorf("expected 'from' after 'export *'")
		}
		j += len("from")
		j = skipTrivia(src, j)
		spec, afterSpec, err := parseStringLiteral(src, j)
		if err != nil {
			return nil, 0, err
		}
		j = skipTrivia(src, afterSpec)
		j = skipSemicolon(src, j)
		return []ast.Item{&ast.ExportAllFrom{Specifier: spec, Alias: alias}}, j, nil

	default:
		// An export form this parser doesn't model structurally (e.g. a
		// TypeScript-only construct). Preserve it verbatim as Raw text
		// rather than failing: the core only needs to act on the forms
		// it understands.
		text, next := scanStatement(src, i)
		return []ast.Item{&ast.Raw{Source: "export " + text}}, next, nil
	}
}

func parseExportDefault(src string, i int) ([]ast.Item, int, error) {
	i = skipTrivia(src, i)
	isFn := keywordAt(src, i, "function")
	isAsyncFn := keywordAt(src, i, "async") && keywordAt(src, skipTrivia(src, i+len("async")), "function")
	isClass := keywordAt(src, i, "class")

	if isFn || isAsyncFn || isClass {
		text, next := scanStatement(src, i)
		name := declarationName(text)
		return []ast.Item{&ast.ExportDefault{Expr: text, Declared: name}}, next, nil
	}

	text, next := scanStatement(src, i)
	expr := strings.TrimSuffix(strings.TrimSpace(text), ";")
	return []ast.Item{&ast.ExportDefault{Expr: strings.TrimSpace(expr)}}, next, nil
}

func parseStringLiteral(src string, i int) (string, int, error) {
	if i >= len(src) || (src[i] != '\'' && src[i] != '"') {
		return "", 0, fmt.Errorf("expected string literal at byte %d", i)
	}
	end := scanQuoted(src, i, src[i])
	return src[i+1 : end-1], end, nil
}

func skipSemicolon(src string, i int) int {
	if i < len(src) && src[i] == ';' {
		return i + 1
	}
	return i
}

// parseBindingList parses "{ a, b as c, ... }" starting at the '{'.
func parseBindingList(src string, i int) ([]ast.Rename, int, error) {
	i++ // consume '{'
	var items []ast.Rename
	for {
		i = skipTrivia(src, i)
		if i >= len(src) {
			return nil, 0, fmt.Errorf("unterminated binding list")
		}
		if src[i] == '}' {
			i++
			break
		}
		if src[i] == ',' {
			i++
			continue
		}
		name, next := scanIdentifier(src, i)
		if name == "" {
			return nil, 0, fmt.Errorf("expected identifier in binding list at byte %d", i)
		}
		i = next
		alias := name
		j := skipTrivia(src, i)
		if keywordAt(src, j, "as") {
			j += len("as")
			j = skipTrivia(src, j)
			aliasName, next2 := scanIdentifier(src, j)
			alias = aliasName
			i = next2
		}
		items = append(items, ast.Rename{From: name, To: alias})
	}
	return items, i, nil
}

// declarationName extracts the name of a function/class declaration's
// own text, e.g. "function foo(...)" -> "foo". Returns "" for anonymous
// declarations (only valid in "export default" position).
func declarationName(text string) string {
	i := 0
	if keywordAt(text, i, "async") {
		i = skipTrivia(text, i+len("async"))
	}
	if keywordAt(text, i, "function") {
		i += len("function")
	} else if keywordAt(text, i, "class") {
		i += len("class")
	} else {
		return ""
	}
	i = skipTrivia(text, i)
	if i < len(text) && text[i] == '*' {
		i = skipTrivia(text, i+1)
	}
	if i >= len(text) || !isIdentStart(text[i]) {
		return ""
	}
	name, _ := scanIdentifier(text, i)
	return name
}

// declaredNames extracts the bound identifiers of a "var/let/const ..."
// declaration's own text. Only simple identifier bindings are supported;
// destructuring patterns are a documented limitation.
func declaredNames(text string) []string {
	i := 0
	for _, kw := range []string{"var", "let", "const"} {
		if keywordAt(text, i, kw) {
			i += len(kw)
			break
		}
	}
	body := strings.TrimSuffix(strings.TrimSpace(text[skipTrivia(text, i):]), ";")

	var names []string
	for _, decl := range splitTopLevel(body, ',') {
		decl = strings.TrimSpace(decl)
		namePart := decl
		if eq := topLevelIndexOf(decl, '='); eq >= 0 {
			namePart = decl[:eq]
		}
		namePart = strings.TrimSpace(namePart)
		if namePart != "" && isIdentStart(namePart[0]) && isSimpleIdentifier(namePart) {
			names = append(names, namePart)
		}
	}
	return names
}

func isSimpleIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

// splitTopLevel splits s on sep, ignoring occurrences inside brackets,
// strings, templates, and comments.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	i := 0
	for i < len(s) {
		if k := skipSpanAt(s, i); k != i {
			i = k
			continue
		}
		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
		i++
	}
	parts = append(parts, s[start:])
	return parts
}

// topLevelIndexOf returns the index of the first occurrence of ch in s
// at bracket depth 0, or -1 if none, ignoring occurrences inside
// brackets, strings, templates, and comments.
func topLevelIndexOf(s string, ch byte) int {
	depth := 0
	i := 0
	for i < len(s) {
		if k := skipSpanAt(s, i); k != i {
			i = k
			continue
		}
		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case ch:
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}
