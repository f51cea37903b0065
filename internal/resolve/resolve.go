// Package resolve implements C2: turning every ModuleSpecifier in a
// module into a CanonicalLocation via an injected Resolver.
package resolve

import (
	"github.com/jsbundle/esmbundle/internal/ast"
	"github.com/jsbundle/esmbundle/internal/bundlererr"
	"github.com/jsbundle/esmbundle/internal/specifier"
)

// Resolver maps a textual specifier, relative to the directory containing
// the module that references it, to a CanonicalLocation. It is pure with
// respect to a snapshot of the filesystem and must be deterministic for
// equal inputs.
type Resolver interface {
	Resolve(specifier, referrerDir string) (string, error)
}

// Pass resolves every specifier in m via resolver, with relative
// specifiers interpreted against referrerDir. The first resolution
// failure aborts the pass and is returned as a *bundlererr.Error with
// Kind Resolve; no partial rewrite is returned in that case.
func Pass(m *ast.Module, referrerDir string, resolver Resolver) (*ast.Module, error) {
	var firstErr error
	rewritten := specifier.Rewrite(m, func(spec string) string {
		if firstErr != nil {
			return spec
		}
		loc, err := resolver.Resolve(spec, referrerDir)
		if err != nil {
			firstErr = &bundlererr.Error{Kind: bundlererr.Resolve, Location: spec, Referrer: referrerDir, Cause: err}
			return spec
		}
		return loc
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return rewritten, nil
}
