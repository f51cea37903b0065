// Package bundler is the public entry point described in spec.md §6: it
// wires the dependency loader (internal/graph), the lowerer
// (internal/lower), and the harness emitter (internal/harness) into the
// three bundle operations. Bundle uses the default filesystem-backed
// resolver and loader (pkg/nodefs); every operation parses with the
// default parser (internal/jsparser).
package bundler

import (
	"github.com/jsbundle/esmbundle/internal/ast"
	"github.com/jsbundle/esmbundle/internal/bundlererr"
	"github.com/jsbundle/esmbundle/internal/graph"
	"github.com/jsbundle/esmbundle/internal/harness"
	"github.com/jsbundle/esmbundle/internal/jsparser"
	"github.com/jsbundle/esmbundle/internal/lower"
	"github.com/jsbundle/esmbundle/internal/resolve"
	"github.com/jsbundle/esmbundle/pkg/nodefs"
)

// Resolver maps a specifier and referrer directory to a CanonicalLocation.
type Resolver = resolve.Resolver

// SourceLoader reads the source text at a CanonicalLocation.
type SourceLoader = graph.SourceLoader

// Parser turns source text into a module AST. None of the bundle
// operations accepts one; they all parse with the jsparser implementation.
type Parser = graph.Parser

// Script is the bundle's emitted source text.
type Script struct {
	Text string
}

// Bundle bundles the module at entryPath using the default filesystem
// resolver and loader.
func Bundle(entryPath string) (*Script, error) {
	r := nodefs.NewResolver()
	l := nodefs.NewLoader()
	source, err := l.Load(entryPath)
	if err != nil {
		return nil, &bundlererr.Error{Kind: bundlererr.Load, Location: entryPath, Cause: err}
	}
	return bundleCore(entryPath, source, r, l)
}

// BundleWithIO bundles the module at entryPath using the supplied
// resolver and loader.
func BundleWithIO(entryPath string, resolver Resolver, loader SourceLoader) (*Script, error) {
	source, err := loader.Load(entryPath)
	if err != nil {
		return nil, &bundlererr.Error{Kind: bundlererr.Load, Location: entryPath, Cause: err}
	}
	return bundleCore(entryPath, source, resolver, loader)
}

// BundleString bundles source directly as the module at entryPath,
// fetching any further dependencies through resolver and loader.
func BundleString(source, entryPath string, resolver Resolver, loader SourceLoader) (*Script, error) {
	return bundleCore(entryPath, source, resolver, loader)
}

func bundleCore(entryLocation, entrySource string, resolver Resolver, loader SourceLoader) (*Script, error) {
	g, err := graph.Load(entryLocation, entrySource, defaultParser{}, resolver, loader)
	if err != nil {
		return nil, err
	}

	ids := graph.AssignIds(g)
	graph.RewriteIds(g, ids)

	lowered := make(map[string]*lower.Lowered, len(g.Order))
	order := make([]string, len(g.Order))
	for i, loc := range g.Order {
		id := ids[loc]
		order[i] = id
		lowered[id] = lower.Module(g.Records[loc].AST)
	}

	script := harness.Emit(order, lowered, ids[entryLocation])
	return &Script{Text: script.Text}, nil
}

type defaultParser struct{}

func (defaultParser) Parse(source string) (*ast.Module, error) {
	return jsparser.Parse(source)
}
