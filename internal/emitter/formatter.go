package emitter

import (
	"fmt"
	"strings"

	"github.com/trunkery/typescript-codegen/internal/hosttype"
)

// Formatter owns the literal output syntax of host-type declarations,
// the nullability suffix, and the import-line and per-file shapes, so the
// "object vs alias" and "optional-marker" toggles live in one place. The
// ArbitraryObjectType alias, enum declarations and meta marker types are
// written directly by emitter.go.
type Formatter struct {
	JSSuffix  bool
	PrefixMap map[string]string
}

func NewFormatter(jsSuffix bool) *Formatter { return &Formatter{JSSuffix: jsSuffix} }

// NewFormatterWithPrefixMap additionally carries the include rules'
// "@NAME" → output-prefix substitution used for cross-file import paths.
func NewFormatterWithPrefixMap(jsSuffix bool, prefixMap map[string]string) *Formatter {
	return &Formatter{JSSuffix: jsSuffix, PrefixMap: prefixMap}
}

func (f *Formatter) suffix() string {
	if f.JSSuffix {
		return ".js"
	}
	return ""
}

// mapPath substitutes an import's declared "@NAME" prefix for its
// configured output prefix. A path with no matching rule — including the
// local-fragment sentinel ".." — passes through unchanged.
func (f *Formatter) mapPath(origin string) string {
	for prefix, out := range f.PrefixMap {
		if origin == prefix {
			return out
		}
		if strings.HasPrefix(origin, prefix+"/") {
			return out + origin[len(prefix):]
		}
	}
	return origin
}

// FormatDecl implements the object-vs-alias emission rule: a declaration
// whose rendered body starts with "{" becomes an interface-like
// declaration, everything else a terminated type alias.
func (f *Formatter) FormatDecl(name string, t hosttype.Type, useOptionalMarker bool) string {
	body := f.renderBody(t, useOptionalMarker, true)
	if strings.HasPrefix(body, "{") {
		return fmt.Sprintf("export interface %s %s\n", name, body)
	}
	return fmt.Sprintf("export type %s = %s;\n", name, body)
}

// RenderTypeRef renders t as it appears inside another type's body: the
// inner form, with " | null" appended when t is nullable.
func (f *Formatter) RenderTypeRef(t hosttype.Type, useOptionalMarker bool) string {
	body := f.renderBody(t, useOptionalMarker, false)
	if t.Nullable() {
		return body + " | null"
	}
	return body
}

func (f *Formatter) renderBody(t hosttype.Type, useOptionalMarker, multiline bool) string {
	switch v := t.(type) {
	case *hosttype.Named:
		return v.Name
	case *hosttype.Array:
		return "Array<" + f.RenderTypeRef(v.Element, useOptionalMarker) + ">"
	case *hosttype.Object:
		return f.renderObjectBody(v, useOptionalMarker, multiline)
	case *hosttype.Intersection:
		parts := make([]string, len(v.Members))
		for i, m := range v.Members {
			parts[i] = f.RenderTypeRef(m, useOptionalMarker)
		}
		return strings.Join(parts, " & ")
	default:
		return hosttype.ArbitraryObjectTypeName
	}
}

func (f *Formatter) renderObjectBody(o *hosttype.Object, useOptionalMarker, multiline bool) string {
	fields := o.SortedFields()
	if !multiline {
		parts := make([]string, len(fields))
		for i, field := range fields {
			parts[i] = f.renderField(field, useOptionalMarker)
		}
		return "{ " + strings.Join(parts, " ") + " }"
	}

	var b strings.Builder
	b.WriteString("{\n")
	for _, field := range fields {
		b.WriteString("  ")
		b.WriteString(f.renderField(field, useOptionalMarker))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func (f *Formatter) renderField(field hosttype.Field, useOptionalMarker bool) string {
	marker := ""
	if useOptionalMarker && field.Type.Nullable() {
		marker = "?"
	}
	return fmt.Sprintf("%s%s: %s;", field.Name, marker, f.RenderTypeRef(field.Type, useOptionalMarker))
}

// FragmentImportLine renders the types-module cross-file import for an
// externally loaded fragment: `import type { <Name>Fragment } from
// "<mapped-prefix><path>/types[.js?]"`.
func (f *Formatter) FragmentImportLine(name, originPath string) string {
	return fmt.Sprintf("import type { %sFragment } from %q;\n", name, f.mapPath(originPath)+"/types"+f.suffix())
}

// FormatFragmentFile renders the default-exported, minified fragment
// source file.
func (f *Formatter) FormatFragmentFile(minified string) string {
	return fmt.Sprintf("export default %q;\n", minified+"\n")
}

// OperationDep is one resolved (origin-path, name) tuple an operation file
// imports.
type OperationDep struct {
	OriginPath string
	Name       string
}

// FormatOperationFile renders the per-operation source file: one runtime
// import per dependency, a type-only import of the operation's meta type,
// and a default export concatenating every dependency's minified string
// with the operation's own minified body, cast to the meta type.
func (f *Formatter) FormatOperationFile(metaTypeName string, deps []OperationDep, minifiedOperation string) string {
	var b strings.Builder

	for _, dep := range deps {
		path := dep.OriginPath
		if path == "" {
			path = ".."
		}
		b.WriteString(fmt.Sprintf("import %s from %q;\n", dep.Name, f.mapPath(path)+"/fragments/"+dep.Name+f.suffix()))
	}
	b.WriteString(fmt.Sprintf("import type { %s } from %q;\n\n", metaTypeName, "../types"+f.suffix()))

	expr := make([]string, 0, len(deps)+1)
	for _, dep := range deps {
		expr = append(expr, dep.Name)
	}
	expr = append(expr, fmt.Sprintf("%q", minifiedOperation+"\n"))

	b.WriteString(fmt.Sprintf("export default (%s) as %s;\n", strings.Join(expr, " + "), metaTypeName))
	return b.String()
}
