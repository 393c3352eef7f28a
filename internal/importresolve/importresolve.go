// Package importresolve turns the import directives collected by package
// importdir into a typeresolve.Bundle: it loads each foreign import root,
// resolves it in isolation, and assembles the loaded-fragments table the
// primary document's type resolver consults.
package importresolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/trunkery/typescript-codegen/internal/docloader"
	"github.com/trunkery/typescript-codegen/internal/hosttype"
	"github.com/trunkery/typescript-codegen/internal/importdir"
	"github.com/trunkery/typescript-codegen/internal/typeresolve"
)

// IncludeRule is one parsed `-I NAME=DIR=PREFIX` flag: Prefix is the
// "@NAME" token matched in import directives, Dir is the filesystem
// directory to load it from, and OutputPrefix is the string substituted
// for Prefix in emitted cross-file import paths.
type IncludeRule struct {
	Prefix       string
	Dir          string
	OutputPrefix string
}

// Config bundles the inputs to Resolve that come from the CLI/config layer
// rather than from scanning source files.
type Config struct {
	Rules        []IncludeRule
	EmbedImports bool
}

// ResolveDir applies the first matching include rule to from, substituting
// its "@name" prefix for a filesystem directory; a from string that matches
// no rule is returned unchanged, a plain relative or absolute filesystem
// path.
func ResolveDir(from string, rules []IncludeRule) string {
	for _, r := range rules {
		if from == r.Prefix {
			return r.Dir
		}
		if strings.HasPrefix(from, r.Prefix+"/") {
			return r.Dir + from[len(r.Prefix):]
		}
	}
	return from
}

// Resolve loads every foreign import root named by specs, resolves each
// in isolation, and assembles the primary Bundle. specs is the full set
// of import specs collected across every local file's import directives.
func Resolve(schema *ast.Schema, specs []importdir.Spec, cfg Config) (*typeresolve.Bundle, error) {
	byPath := map[string][]importdir.Spec{}
	var paths []string
	for _, s := range specs {
		if _, ok := byPath[s.From]; !ok {
			paths = append(paths, s.From)
		}
		byPath[s.From] = append(byPath[s.From], s)
	}
	sort.Strings(paths)

	bundle := &typeresolve.Bundle{
		FragmentTypes:  map[string]hosttype.Type{},
		FragmentOrigin: map[string]string{},
		RawImportData:  map[string]typeresolve.RawImportData{},
		EmbedImports:   cfg.EmbedImports,
	}

	prefixMap := make(map[string]string, len(cfg.Rules))
	for _, r := range cfg.Rules {
		prefixMap[r.Prefix] = r.OutputPrefix
	}
	bundle.PrefixMap = prefixMap

	nameOrigin := map[string]string{} // fragment name -> path it was first loaded from

	for _, path := range paths {
		dir := ResolveDir(path, cfg.Rules)

		doc, err := docloader.LoadImportDir(dir)
		if err != nil {
			return nil, fmt.Errorf("import %q (%s): %w", path, dir, err)
		}

		ctx, err := typeresolve.Resolve(schema, doc.Query, nil)
		if err != nil {
			return nil, fmt.Errorf("import %q (%s): %w", path, dir, err)
		}

		whitelist, err := requestedNames(byPath[path], ctx)
		if err != nil {
			return nil, fmt.Errorf("import %q: %w", path, err)
		}

		for _, name := range whitelist {
			fi, ok := ctx.Fragments[name]
			if !ok {
				return nil, fmt.Errorf("import %q: fragment %q is not defined there", path, name)
			}
			if existing, dup := nameOrigin[name]; dup && existing != path {
				return nil, fmt.Errorf("fragment %q is imported from both %q and %q", name, existing, path)
			}
			nameOrigin[name] = path
			bundle.FragmentTypes[name] = fi.HostType
			bundle.FragmentOrigin[name] = path
		}

		closure := transitiveClosure(whitelist, ctx.FragmentDeps)
		raw := ctx
		if cfg.EmbedImports {
			raw = prune(ctx, closure)
		}
		bundle.RawImportData[path] = typeresolve.RawImportData{
			UsedNamedTypes: raw.UsedNamedTypes,
			FragmentDeps:   raw.FragmentDeps,
			Fragments:      raw.Fragments,
		}
	}

	return bundle, nil
}

// requestedNames resolves a path's specs into the concrete fragment names
// it requests: "import * from ..." requests every fragment the path
// defines, "import { a, b } from ..." requests exactly those names.
func requestedNames(specs []importdir.Spec, ctx *typeresolve.Context) ([]string, error) {
	seen := map[string]struct{}{}
	for _, s := range specs {
		if s.What.All {
			for name := range ctx.Fragments {
				seen[name] = struct{}{}
			}
			continue
		}
		for _, name := range s.What.Names {
			seen[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// transitiveClosure walks fragment-deps from every name in roots.
func transitiveClosure(roots []string, deps map[string][]string) map[string]struct{} {
	closure := map[string]struct{}{}
	var worklist []string
	worklist = append(worklist, roots...)
	for len(worklist) > 0 {
		name := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if _, ok := closure[name]; ok {
			continue
		}
		closure[name] = struct{}{}
		worklist = append(worklist, deps[name]...)
	}
	return closure
}

// prune restricts ctx to the fragments in closure and their transitive
// fragment deps. UsedNamedTypes is intentionally left unpruned: the
// resolver has no cheap way to attribute a named type to the specific
// fragments that use it, and over-including an unused type declaration
// in embedded output is harmless where under-including one is not.
func prune(ctx *typeresolve.Context, closure map[string]struct{}) *typeresolve.Context {
	out := &typeresolve.Context{
		UsedNamedTypes: ctx.UsedNamedTypes,
		FragmentDeps:   map[string][]string{},
		Fragments:      map[string]typeresolve.FragmentInfo{},
		Operations:     map[string]typeresolve.OperationInfo{},
	}
	for name := range closure {
		if fi, ok := ctx.Fragments[name]; ok {
			out.Fragments[name] = fi
		}
		if deps, ok := ctx.FragmentDeps[name]; ok {
			out.FragmentDeps[name] = deps
		}
	}
	return out
}
