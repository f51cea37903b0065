// Package nodefs provides the default Resolver and SourceLoader used by
// pkg/bundler.Bundle: Node-style relative resolution and plain file
// reads, both built on afero.Fs so tests can substitute an in-memory
// filesystem instead of touching disk.
package nodefs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// extensions tried, in order, when a specifier has no extension, before
// falling back to the directory's index.js.
var extensions = []string{".js", ".mjs"}

// Resolver resolves specifiers against the filesystem rooted at FS.
type Resolver struct {
	FS afero.Fs
}

// NewResolver returns a Resolver backed by the real filesystem.
func NewResolver() *Resolver {
	return &Resolver{FS: afero.NewOsFs()}
}

// Resolve implements bundler.Resolver.
func (r *Resolver) Resolve(specifier, referrerDir string) (string, error) {
	var base string
	switch {
	case strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../"):
		base = filepath.Join(referrerDir, specifier)
	case filepath.IsAbs(specifier):
		base = specifier
	default:
		return "", fmt.Errorf("cannot resolve bare specifier %q (package resolution is not part of the default resolver)", specifier)
	}
	base = filepath.Clean(base)

	for _, candidate := range candidates(base) {
		info, err := r.FS.Stat(candidate)
		if err == nil && !info.IsDir() {
			return filepath.ToSlash(candidate), nil
		}
	}
	return "", fmt.Errorf("could not resolve %q relative to %q", specifier, referrerDir)
}

// candidates lists the file paths to probe for a resolved specifier: the
// path itself (if it already names a file), the path with each known
// extension appended, and the path's index file.
func candidates(base string) []string {
	if filepath.Ext(base) != "" {
		return []string{base}
	}
	out := make([]string, 0, len(extensions)+1)
	for _, ext := range extensions {
		out = append(out, base+ext)
	}
	out = append(out, filepath.Join(base, "index.js"))
	return out
}

// Loader reads module source text from FS.
type Loader struct {
	FS afero.Fs
}

// NewLoader returns a Loader backed by the real filesystem.
func NewLoader() *Loader {
	return &Loader{FS: afero.NewOsFs()}
}

// Load implements bundler.SourceLoader.
func (l *Loader) Load(location string) (string, error) {
	b, err := afero.ReadFile(l.FS, location)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
