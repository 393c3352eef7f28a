// Package emitter renders a resolved typeresolve.Context into three
// kinds of output: the shared types module, one source file per local
// fragment, and one source file per local operation.
package emitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/trunkery/typescript-codegen/internal/hosttype"
	"github.com/trunkery/typescript-codegen/internal/typeresolve"
)

// File is one emitted unit: a path relative to the output directory and
// its full content.
type File struct {
	Path    string
	Content string
}

// Emit renders every output file for a resolved document.
func Emit(schema *ast.Schema, ctx *typeresolve.Context, bundle *typeresolve.Bundle, f *Formatter) ([]File, error) {
	var files []File

	typesModule, err := renderTypesModule(schema, ctx, bundle, f)
	if err != nil {
		return nil, err
	}
	files = append(files, File{Path: "types.ts", Content: typesModule})

	for name, fi := range ctx.Fragments {
		files = append(files, File{
			Path:    "fragments/" + name + ".ts",
			Content: f.FormatFragmentFile(Minify(printFragment(fi.Node))),
		})
	}

	for key, op := range ctx.Operations {
		content, err := renderOperationFile(key, op, ctx, bundle, f)
		if err != nil {
			return nil, fmt.Errorf("operation %s: %w", key, err)
		}
		files = append(files, File{Path: "operations/" + key + ".ts", Content: content})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func renderTypesModule(schema *ast.Schema, ctx *typeresolve.Context, bundle *typeresolve.Bundle, f *Formatter) (string, error) {
	var b strings.Builder

	for _, imp := range sortedImports(bundle) {
		b.WriteString(f.FragmentImportLine(imp.name, imp.path))
	}
	if bundle != nil && len(bundle.FragmentTypes) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("export type %s = any;\n\n", hosttype.ArbitraryObjectTypeName))

	namedTypes := sortedKeys(ctx.UsedNamedTypes)
	for _, name := range namedTypes {
		decl, err := renderNamedTypeDecl(schema, name, f)
		if err != nil {
			return "", err
		}
		b.WriteString(decl)
		b.WriteString("\n")
	}

	for _, name := range sortedFragmentKeys(ctx.Fragments) {
		b.WriteString(f.FormatDecl(name+"Fragment", ctx.Fragments[name].HostType, false))
		b.WriteString("\n")
	}

	for _, key := range sortedOperationKeys(ctx.Operations) {
		op := ctx.Operations[key]
		b.WriteString(f.FormatDecl(key, op.Result, false))
		b.WriteString("\n")
		b.WriteString(f.FormatDecl(key+"Variables", op.Variables, true))
		b.WriteString("\n")
		b.WriteString(renderMeta(key, f))
		b.WriteString("\n")
	}

	return b.String(), nil
}

// renderMeta emits the three-field opaque meta marker alongside every
// operation declaration, tagging the file as a compiled GraphQL
// operation for downstream tooling to recognize.
func renderMeta(opName string, f *Formatter) string {
	return fmt.Sprintf(`export interface %sMeta {
  __apiType: %s;
  __variablesType: %sVariables;
  __tag: "graphql-operation";
}
`, opName, opName, opName)
}

func renderNamedTypeDecl(schema *ast.Schema, name string, f *Formatter) (string, error) {
	def, ok := schema.Types[name]
	if !ok {
		return "", fmt.Errorf("used named type %q is not in the schema", name)
	}

	switch def.Kind {
	case ast.Enum:
		return renderEnumDecl(def, f), nil
	case ast.InputObject:
		obj, err := typeresolve.ExpandInputObjectDecl(schema, name)
		if err != nil {
			return "", err
		}
		return f.FormatDecl(name, obj, true), nil
	default:
		return "", fmt.Errorf("used named type %q has unsupported kind %s", name, def.Kind)
	}
}

func renderEnumDecl(def *ast.Definition, f *Formatter) string {
	values := make([]string, len(def.EnumValues))
	for i, v := range def.EnumValues {
		values[i] = v.Name
	}
	sort.Strings(values)

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%q", v)
	}
	return fmt.Sprintf("export type %s = %s;\n", def.Name, strings.Join(parts, " | "))
}

func renderOperationFile(key string, op typeresolve.OperationInfo, ctx *typeresolve.Context, bundle *typeresolve.Bundle, f *Formatter) (string, error) {
	deps, err := resolveOperationDeps(op.Node.SelectionSet, ctx, bundle)
	if err != nil {
		return "", err
	}

	formatterDeps := make([]OperationDep, len(deps))
	for i, d := range deps {
		formatterDeps[i] = OperationDep{OriginPath: d.OriginPath, Name: d.Name}
	}

	return f.FormatOperationFile(key+"Meta", formatterDeps, Minify(printOperation(op.Node))), nil
}

type dep struct {
	OriginPath string
	Name       string
}

// resolveOperationDeps computes the transitive set of fragment spreads an
// operation uses and tags each with its origin: local fragments get
// origin-path "..", imported ones the import's declared path.
func resolveOperationDeps(sel ast.SelectionSet, ctx *typeresolve.Context, bundle *typeresolve.Bundle) ([]dep, error) {
	direct := directFragmentSpreads(sel)
	closure := map[string]struct{}{}
	worklist := append([]string{}, direct...)

	for len(worklist) > 0 {
		name := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if _, ok := closure[name]; ok {
			continue
		}
		closure[name] = struct{}{}

		if deps, ok := ctx.FragmentDeps[name]; ok {
			worklist = append(worklist, deps...)
			continue
		}
		if bundle != nil {
			if path, ok := bundle.FragmentOrigin[name]; ok {
				if raw, ok := bundle.RawImportData[path]; ok {
					worklist = append(worklist, raw.FragmentDeps[name]...)
				}
				continue
			}
		}
		return nil, fmt.Errorf("fragment %q has no known origin", name)
	}

	out := make([]dep, 0, len(closure))
	for name := range closure {
		originPath := ".."
		if _, local := ctx.Fragments[name]; !local {
			if bundle == nil {
				return nil, fmt.Errorf("fragment %q is not local and no import bundle is available", name)
			}
			path, ok := bundle.FragmentOrigin[name]
			if !ok {
				return nil, fmt.Errorf("fragment %q has no known import origin", name)
			}
			originPath = path
		}
		out = append(out, dep{OriginPath: originPath, Name: name})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].OriginPath != out[j].OriginPath {
			return out[i].OriginPath < out[j].OriginPath
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func directFragmentSpreads(sel ast.SelectionSet) []string {
	var names []string
	for _, s := range sel {
		switch v := s.(type) {
		case *ast.FragmentSpread:
			names = append(names, v.Name)
		case *ast.Field:
			names = append(names, directFragmentSpreads(v.SelectionSet)...)
		case *ast.InlineFragment:
			names = append(names, directFragmentSpreads(v.SelectionSet)...)
		}
	}
	return names
}

type importKey struct{ name, path string }

func sortedImports(bundle *typeresolve.Bundle) []importKey {
	if bundle == nil {
		return nil
	}
	out := make([]importKey, 0, len(bundle.FragmentOrigin))
	for name, path := range bundle.FragmentOrigin {
		out = append(out, importKey{name: name, path: path})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].path != out[j].path {
			return out[i].path < out[j].path
		}
		return out[i].name < out[j].name
	})
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedFragmentKeys(m map[string]typeresolve.FragmentInfo) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedOperationKeys(m map[string]typeresolve.OperationInfo) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
