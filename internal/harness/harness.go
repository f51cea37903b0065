// Package harness implements C6: assembling the closed script that
// carries the require/define/resolve/cache scaffold and the entry-point
// invocation, per spec.md §4.6.
package harness

import (
	"fmt"

	"github.com/jsbundle/esmbundle/internal/helpers"
	"github.com/jsbundle/esmbundle/internal/lower"
)

// Script is the emitted bundle's source text.
type Script struct {
	Text string
}

// requireScaffold is spec.md §4.6 items 1–5, emitted verbatim. The use of
// {}.hasOwnProperty.call(...) rather than "in" or direct property access
// is deliberate: it defends the bundle against a module that shadows
// Object.prototype.hasOwnProperty on its exports or on require.cache.
const requireScaffold = `function require(file, parentModule) {
  if ({}.hasOwnProperty.call(require.cache, file)) {
    return require.cache[file];
  }
  var resolved = require.resolve(file);
  if (!resolved) {
    throw new Error("Failed to resolve module " + file);
  }
  var module$ = { id: file, require: require, filename: file, exports: {}, loaded: false, parent: parentModule, children: [] };
  if (parentModule) {
    parentModule.children.push(module$);
  }
  var dirname = file.slice(0, file.lastIndexOf("/") + 1);
  require.cache[file] = module$.exports;
  resolved.call(undefined, module$, module$.exports, dirname, file);
  module$.loaded = true;
  return require.cache[file] = module$.exports;
}
require.modules = {};
require.cache = {};
require.resolve = function (file) {
  return {}.hasOwnProperty.call(require.modules, file) ? require.modules[file] : undefined;
};
require.define = function (file, fn) {
  require.modules[file] = fn;
};
`

// Emit builds the final script. order is the graph's iteration order
// (ModuleIds, not locations); lowered maps each id to its lowered body;
// entryID is the id of the entry module.
func Emit(order []string, lowered map[string]*lower.Lowered, entryID string) *Script {
	var j helpers.Joiner
	j.AddString(`(function (global) { "use strict";` + "\n")
	j.AddString(requireScaffold)

	for _, id := range order {
		lw := lowered[id]
		j.AddString(fmt.Sprintf("require.define(%s, function (module, exports, __dirname, __filename) {\n", quote(id)))
		for _, d := range lw.Directives {
			j.AddString(d + ";\n")
		}
		for _, line := range lw.Body {
			j.AddString(line + "\n")
		}
		j.AddString("});\n")
	}

	j.AddString(fmt.Sprintf("return require(%s);\n", quote(entryID)))
	j.AddString("}).call(this, this);\n")

	return &Script{Text: string(j.Done())}
}

func quote(s string) string {
	return string(helpers.QuoteForJSON(s, true))
}
