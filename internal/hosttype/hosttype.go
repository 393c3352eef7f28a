// Package hosttype is the algebraic type representing what the emitter will
// write out: named references, object shapes, arrays, and intersections,
// each carrying a nullability bit. It has no dependency on the GraphQL AST —
// the type resolver is the only producer, the emitter the only consumer.
package hosttype

import "sort"

// Type is the closed sum of host-language shapes a GraphQL selection can
// resolve to. Exhaustive switches over the concrete types below replace the
// switch-on-kind-string discipline of a dynamically typed rewrite.
type Type interface {
	// Nullable reports whether the value may be null in the host language.
	Nullable() bool
	// WithNullable returns a copy of the type with the nullable bit set.
	WithNullable(bool) Type
}

// Named is a reference to a previously declared name: a scalar mapping, an
// enum, an input object, an ArbitraryObjectType alias, or a fragment type
// (by convention suffixed "Fragment").
type Named struct {
	Name     string
	nullable bool
}

func NewNamed(name string, nullable bool) *Named { return &Named{Name: name, nullable: nullable} }

func (n *Named) Nullable() bool { return n.nullable }

func (n *Named) WithNullable(v bool) Type {
	c := *n
	c.nullable = v
	return &c
}

// Field is one entry of an Object, in insertion order.
type Field struct {
	Name string
	Type Type
}

// Object is a literal field set. Optional is the "as named" hoisting hint;
// nothing in this repository sets or reads it, and neither the GraphQL
// emitter nor the content-model emitter changes its output because of it.
type Object struct {
	Fields   []Field
	Optional bool
	nullable bool
}

func NewObject(fields []Field, nullable bool) *Object {
	return &Object{Fields: fields, nullable: nullable}
}

func (o *Object) Nullable() bool { return o.nullable }

func (o *Object) WithNullable(v bool) Type {
	c := *o
	c.nullable = v
	return &c
}

// SortedFields returns the object's fields ordered by name, matching the
// emitter's rule that field ordering inside object renders is sorted by
// field name.
func (o *Object) SortedFields() []Field {
	out := make([]Field, len(o.Fields))
	copy(out, o.Fields)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Array is a GraphQL list.
type Array struct {
	Element  Type
	nullable bool
}

func NewArray(element Type, nullable bool) *Array { return &Array{Element: element, nullable: nullable} }

func (a *Array) Nullable() bool { return a.nullable }

func (a *Array) WithNullable(v bool) Type {
	c := *a
	c.nullable = v
	return &c
}

// Intersection is a selection set that spreads one or more fragments
// alongside other selections. Members preserve insertion order: spreads
// first in spread order, the local object (if any) last. Members carry
// no nullable flag of their own — nullability lives only on the
// Intersection.
type Intersection struct {
	Members  []Type
	nullable bool
}

func NewIntersection(members []Type, nullable bool) *Intersection {
	return &Intersection{Members: members, nullable: nullable}
}

func (i *Intersection) Nullable() bool { return i.nullable }

func (i *Intersection) WithNullable(v bool) Type {
	c := *i
	c.nullable = v
	return &c
}

// ArbitraryObjectTypeName is the opaque alias emitted once for any scalar
// outside the built-in map.
const ArbitraryObjectTypeName = "ArbitraryObjectType"

// ScalarMap is the fixed built-in GraphQL scalar → host type name
// mapping. Any scalar absent from this map resolves to
// ArbitraryObjectTypeName.
var ScalarMap = map[string]string{
	"String":  "string",
	"Int":     "number",
	"Float":   "number",
	"Boolean": "boolean",
	"ID":      "string",
}

// MapScalar returns the host scalar name for a GraphQL scalar name, falling
// back to ArbitraryObjectTypeName for unknown scalars.
func MapScalar(gqlName string) string {
	if hostName, ok := ScalarMap[gqlName]; ok {
		return hostName
	}
	return ArbitraryObjectTypeName
}
