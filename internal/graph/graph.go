// Package graph implements C3 (the dependency loader) and C4 (gensym and
// id rewrite): a breadth-first, monotone traversal that loads, parses,
// and resolves every transitively reachable module, then assigns each a
// short opaque id.
package graph

import (
	"path"
	"strconv"

	"github.com/jsbundle/esmbundle/internal/ast"
	"github.com/jsbundle/esmbundle/internal/bundlererr"
	"github.com/jsbundle/esmbundle/internal/resolve"
	"github.com/jsbundle/esmbundle/internal/specifier"
)

// SourceLoader reads the source text of the module at a CanonicalLocation.
type SourceLoader interface {
	Load(location string) (string, error)
}

// Parser turns source text into a module AST.
type Parser interface {
	Parse(source string) (*ast.Module, error)
}

// Record is one reached module: its canonical location and its AST, the
// latter progressively rewritten in place as the graph is built (C2's
// specifier-to-location rewrite happens before the record is stored; C4's
// location-to-id rewrite happens after the whole graph is built).
type Record struct {
	Location string
	AST      *ast.Module
}

// Graph is the full reachable module set. Order records BFS discovery
// order, which is also the order used for id assignment and the order
// ModuleRecords are emitted in by the harness.
type Graph struct {
	Records map[string]*Record
	Order   []string
}

// Load performs the BFS traversal described in spec.md §4.3. entryLocation
// is assumed already canonical; entrySource is its text, supplied by the
// caller rather than fetched through loader (the caller already has it in
// hand in every public entry point). Dependencies discovered while walking
// are fetched via loader, parsed via parser, and resolved via resolver
// before being added to the graph.
func Load(entryLocation, entrySource string, parser Parser, resolver resolve.Resolver, loader SourceLoader) (*Graph, error) {
	g := &Graph{Records: map[string]*Record{}}

	entryAST, err := parser.Parse(entrySource)
	if err != nil {
		return nil, &bundlererr.Error{Kind: bundlererr.Parse, Location: entryLocation, Cause: err}
	}
	entryAST, err = resolve.Pass(entryAST, dir(entryLocation), resolver)
	if err != nil {
		return nil, err
	}
	g.Records[entryLocation] = &Record{Location: entryLocation, AST: entryAST}
	g.Order = append(g.Order, entryLocation)

	queue := []string{entryLocation}
	for len(queue) > 0 {
		loc := queue[0]
		queue = queue[1:]

		for _, dep := range g.Records[loc].AST.Specifiers() {
			if _, ok := g.Records[dep]; ok {
				continue
			}
			src, err := loader.Load(dep)
			if err != nil {
				return nil, &bundlererr.Error{Kind: bundlererr.Load, Location: dep, Cause: err}
			}
			depAST, err := parser.Parse(src)
			if err != nil {
				return nil, &bundlererr.Error{Kind: bundlererr.Parse, Location: dep, Cause: err}
			}
			depAST, err = resolve.Pass(depAST, dir(dep), resolver)
			if err != nil {
				return nil, err
			}
			g.Records[dep] = &Record{Location: dep, AST: depAST}
			g.Order = append(g.Order, dep)
			queue = append(queue, dep)
		}
	}

	return g, nil
}

// AssignIds gives every CanonicalLocation in the graph a ModuleId drawn
// from the natural numbers rendered as decimal strings, in graph order,
// starting at "1".
func AssignIds(g *Graph) map[string]string {
	ids := make(map[string]string, len(g.Order))
	for i, loc := range g.Order {
		ids[loc] = strconv.Itoa(i + 1)
	}
	return ids
}

// RewriteIds reruns C1 on every module in the graph, replacing each
// specifier (already a CanonicalLocation from the resolve pass) with its
// ModuleId from ids.
func RewriteIds(g *Graph, ids map[string]string) {
	for _, rec := range g.Records {
		rec.AST = specifier.Rewrite(rec.AST, func(loc string) string { return ids[loc] })
	}
}

// dir returns the directory portion of a '/'-separated CanonicalLocation.
// Canonical locations are opaque strings as far as the core is concerned,
// but relative-specifier resolution needs a referrer directory, and the
// convention (matching the teacher's emitted __dirname logic) is that
// locations are '/'-separated paths.
func dir(location string) string {
	return path.Dir(location)
}
