// Package typeresolve converts a GraphQL schema plus a parsed document into
// the host-type model, by fixpoint iteration over fragment and operation
// definitions.
package typeresolve

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/trunkery/typescript-codegen/internal/hosttype"
)

// FragmentInfo is a resolved fragment: its host type and the AST node it
// came from (kept for minification and dependency-closure computation at
// emission time).
type FragmentInfo struct {
	HostType hosttype.Type
	Node     *ast.FragmentDefinition
}

// OperationInfo is a resolved operation.
type OperationInfo struct {
	Result    hosttype.Type
	Variables hosttype.Type
	Node      *ast.OperationDefinition
}

// Context is the resolved result of a single Resolve call.
type Context struct {
	UsedNamedTypes map[string]struct{}
	Fragments      map[string]FragmentInfo
	FragmentDeps   map[string][]string
	Operations     map[string]OperationInfo
}

func newContext() *Context {
	return &Context{
		UsedNamedTypes: map[string]struct{}{},
		Fragments:      map[string]FragmentInfo{},
		FragmentDeps:   map[string][]string{},
		Operations:     map[string]OperationInfo{},
	}
}

// RawImportData is one import root's raw tables, used to seed an embedding
// primary context when embed-imports mode is on.
type RawImportData struct {
	UsedNamedTypes map[string]struct{}
	FragmentDeps   map[string][]string
	Fragments      map[string]FragmentInfo
}

// Bundle is the import resolution result the primary document's Resolve
// call consults for cross-package fragment spreads. It is produced by
// package importresolve; typeresolve only depends on its shape, never on
// that package, to keep the dependency edge one-directional
// (importresolve calls Resolve on each import root, then assembles a
// Bundle for the primary call).
type Bundle struct {
	// FragmentTypes maps an imported fragment's bare name to its resolved
	// host type, for "local map first, then import map" lookups.
	FragmentTypes map[string]hosttype.Type
	// FragmentOrigin maps an imported fragment's bare name to the declared
	// import path it was loaded from, for the emitter's cross-file import
	// lines and (origin-path, name) dependency tuples.
	FragmentOrigin map[string]string
	// RawImportData is keyed by the import's declared source path, used
	// only in embed mode to seed the primary context before the fixpoint.
	RawImportData map[string]RawImportData
	EmbedImports  bool
	// PrefixMap maps an include rule's "@NAME" token to its configured
	// output prefix, for the emitter's cross-file import paths.
	PrefixMap map[string]string
}

// pending tracks one definition still waiting for a dependency.
type pending struct {
	name string
	err  error
}

// Resolve runs a fixpoint loop over every fragment and operation in doc,
// against schema, optionally consulting bundle for fragments spread from
// an import. Every GraphQL enum or
// input-object type encountered — directly, or by chasing the
// used-named-types closure afterward — ends up in the returned Context's
// UsedNamedTypes.
func Resolve(schema *ast.Schema, doc *ast.QueryDocument, bundle *Bundle) (*Context, error) {
	ctx := newContext()

	if bundle != nil && bundle.EmbedImports {
		for _, raw := range bundle.RawImportData {
			for name := range raw.UsedNamedTypes {
				ctx.UsedNamedTypes[name] = struct{}{}
			}
			for name, deps := range raw.FragmentDeps {
				ctx.FragmentDeps[name] = deps
			}
			for name, fi := range raw.Fragments {
				ctx.Fragments[name] = fi
			}
		}
	}

	type namedDef struct {
		name       string
		isOperation bool
		fragment   *ast.FragmentDefinition
		operation  *ast.OperationDefinition
	}

	var all []namedDef
	for _, f := range doc.Fragments {
		if _, already := ctx.Fragments[f.Name]; already {
			continue // seeded by embed-imports merge; treat as already resolved
		}
		all = append(all, namedDef{name: f.Name, fragment: f})
	}
	for _, op := range doc.Operations {
		all = append(all, namedDef{name: operationKey(op), isOperation: true, operation: op})
	}

	if err := checkUniqueNames(doc); err != nil {
		return nil, err
	}

	r := &resolver{schema: schema, bundle: bundle, ctx: ctx}

	remaining := all
	for {
		var failed []namedDef
		var errs []pending
		progressed := false

		for _, def := range remaining {
			var err error
			if def.isOperation {
				err = r.resolveOperation(def.operation)
			} else {
				err = r.resolveFragment(def.fragment)
			}
			if err != nil {
				failed = append(failed, def)
				errs = append(errs, pending{name: def.name, err: err})
				continue
			}
			progressed = true
		}

		if len(failed) == 0 {
			break
		}
		if !progressed {
			return nil, unresolvedError(errs)
		}
		remaining = failed
	}

	closeUsedNamedTypes(schema, ctx)

	return ctx, nil
}

func operationKey(op *ast.OperationDefinition) string {
	return op.Name + operationSuffix(op.Operation)
}

func operationSuffix(op ast.Operation) string {
	switch op {
	case ast.Mutation:
		return "Mutation"
	case ast.Subscription:
		return "Subscription"
	default:
		return "Query"
	}
}

func checkUniqueNames(doc *ast.QueryDocument) error {
	seen := map[string]bool{}
	for _, f := range doc.Fragments {
		if seen[f.Name] {
			return fmt.Errorf("duplicate fragment definition: %s", f.Name)
		}
		seen[f.Name] = true
	}
	seenOps := map[string]bool{}
	for _, op := range doc.Operations {
		key := operationKey(op)
		if seenOps[key] {
			return fmt.Errorf("duplicate operation definition: %s", key)
		}
		seenOps[key] = true
	}
	return nil
}

func unresolvedError(errs []pending) error {
	msg := "failed to resolve the following definitions:"
	for _, p := range errs {
		msg += fmt.Sprintf("\n  %s: %v", p.name, p.err)
	}
	return errors.New(msg)
}

type resolver struct {
	schema *ast.Schema
	bundle *Bundle
	ctx    *Context
}

func (r *resolver) resolveFragment(f *ast.FragmentDefinition) error {
	def, ok := r.schema.Types[f.TypeCondition]
	if !ok {
		return fmt.Errorf("unknown type condition %q", f.TypeCondition)
	}

	host, deps, err := r.convertSelectionSet(def, f.SelectionSet, false)
	if err != nil {
		return err
	}

	sort.Strings(deps)
	r.ctx.Fragments[f.Name] = FragmentInfo{HostType: host, Node: f}
	r.ctx.FragmentDeps[f.Name] = deps
	return nil
}

func (r *resolver) resolveOperation(op *ast.OperationDefinition) error {
	root := r.rootType(op.Operation)
	if root == nil {
		return fmt.Errorf("schema has no root type for %s", op.Operation)
	}

	result, _, err := r.convertSelectionSet(root, op.SelectionSet, false)
	if err != nil {
		return err
	}

	variables, err := r.convertVariables(op.VariableDefinitions)
	if err != nil {
		return err
	}

	r.ctx.Operations[operationKey(op)] = OperationInfo{Result: result, Variables: variables, Node: op}
	return nil
}

func (r *resolver) rootType(op ast.Operation) *ast.Definition {
	switch op {
	case ast.Mutation:
		return r.schema.Mutation
	case ast.Subscription:
		return r.schema.Subscription
	default:
		return r.schema.Query
	}
}

func (r *resolver) convertVariables(defs []*ast.VariableDefinition) (hosttype.Type, error) {
	sorted := make([]*ast.VariableDefinition, len(defs))
	copy(sorted, defs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Variable < sorted[j].Variable })

	fields := make([]hosttype.Field, 0, len(sorted))
	for _, v := range sorted {
		t, err := r.convertVariableType(v.Type)
		if err != nil {
			return nil, fmt.Errorf("variable $%s: %w", v.Variable, err)
		}
		fields = append(fields, hosttype.Field{Name: v.Variable, Type: t})
	}
	return hosttype.NewObject(fields, false), nil
}

// convertVariableType converts a variable's TypeNode. Input-object and
// enum names are recorded in UsedNamedTypes along the way.
func (r *resolver) convertVariableType(t *ast.Type) (hosttype.Type, error) {
	return r.convertType(t)
}

// ExpandInputObject builds the field-expanded Object for a named input-
// object type's own declaration, only ever used for a used-named-type's
// declaration, never for a reference to it.
func (r *resolver) ExpandInputObject(def *ast.Definition) (*hosttype.Object, error) {
	fields := make([]hosttype.Field, 0, len(def.Fields))
	for _, f := range def.Fields {
		t, err := r.convertType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("input field %s.%s: %w", def.Name, f.Name, err)
		}
		fields = append(fields, hosttype.Field{Name: f.Name, Type: t})
	}
	return hosttype.NewObject(fields, false), nil
}

// ExpandInputObjectDecl expands a named input-object type's fields for its
// own declaration in the types module, independent of any in-flight
// fixpoint resolution.
func ExpandInputObjectDecl(schema *ast.Schema, name string) (*hosttype.Object, error) {
	def, ok := schema.Types[name]
	if !ok || def.Kind != ast.InputObject {
		return nil, fmt.Errorf("%q is not an input object type", name)
	}
	r := &resolver{schema: schema, ctx: newContext()}
	return r.ExpandInputObject(def)
}

func (r *resolver) convertType(t *ast.Type) (hosttype.Type, error) {
	nullable := !t.NonNull

	if t.Elem != nil {
		elem, err := r.convertType(t.Elem)
		if err != nil {
			return nil, err
		}
		return hosttype.NewArray(elem, nullable), nil
	}

	def, ok := r.schema.Types[t.NamedType]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", t.NamedType)
	}

	switch def.Kind {
	case ast.Scalar:
		return hosttype.NewNamed(hosttype.MapScalar(t.NamedType), nullable), nil
	case ast.Enum:
		r.ctx.UsedNamedTypes[t.NamedType] = struct{}{}
		return hosttype.NewNamed(t.NamedType, nullable), nil
	case ast.InputObject:
		r.ctx.UsedNamedTypes[t.NamedType] = struct{}{}
		return hosttype.NewNamed(t.NamedType, nullable), nil
	default:
		return nil, fmt.Errorf("type %q cannot appear outside a selection set", t.NamedType)
	}
}

// convertSelectionSet implements the selection-set conversion rule,
// including the single-spread short-circuit and
// intersection construction. It returns the fragment names spread anywhere
// within sel (including inside nested object fields), for fragment-deps.
func (r *resolver) convertSelectionSet(def *ast.Definition, sel ast.SelectionSet, nullable bool) (hosttype.Type, []string, error) {
	if len(sel) == 1 {
		if spread, ok := sel[0].(*ast.FragmentSpread); ok {
			if _, err := r.lookupFragmentType(spread.Name); err != nil {
				return nil, nil, err
			}
			return hosttype.NewNamed(spread.Name+"Fragment", nullable), []string{spread.Name}, nil
		}
	}

	var fields []hosttype.Field
	var spreadOrder []string
	var deps []string

	for _, selection := range sel {
		switch s := selection.(type) {
		case *ast.Field:
			ft, subDeps, err := r.convertFieldSelection(def, s)
			if err != nil {
				return nil, nil, err
			}
			fields = append(fields, hosttype.Field{Name: fieldOutputName(s), Type: ft})
			deps = append(deps, subDeps...)
		case *ast.FragmentSpread:
			if _, err := r.lookupFragmentType(s.Name); err != nil {
				return nil, nil, err
			}
			spreadOrder = append(spreadOrder, s.Name)
			deps = append(deps, s.Name)
		case *ast.InlineFragment:
			return nil, nil, fmt.Errorf("inline fragment spreads are not implemented yet")
		}
	}

	obj := hosttype.NewObject(fields, false)

	if len(spreadOrder) == 0 {
		return obj.WithNullable(nullable), dedupSorted(deps), nil
	}

	members := make([]hosttype.Type, 0, len(spreadOrder)+1)
	for _, name := range spreadOrder {
		members = append(members, hosttype.NewNamed(name+"Fragment", false))
	}
	members = append(members, obj)

	return hosttype.NewIntersection(members, nullable), dedupSorted(deps), nil
}

func fieldOutputName(f *ast.Field) string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

func (r *resolver) convertFieldSelection(parent *ast.Definition, f *ast.Field) (hosttype.Type, []string, error) {
	fieldDef := f.Definition
	if fieldDef == nil {
		fieldDef = parent.Fields.ForName(f.Name)
	}
	if fieldDef == nil {
		return nil, nil, fmt.Errorf("unknown field %s.%s", parent.Name, f.Name)
	}

	return r.convertFieldType(fieldDef.Type, f.SelectionSet)
}

func (r *resolver) convertFieldType(t *ast.Type, sel ast.SelectionSet) (hosttype.Type, []string, error) {
	nullable := !t.NonNull

	if t.Elem != nil {
		elem, deps, err := r.convertFieldType(t.Elem, sel)
		if err != nil {
			return nil, nil, err
		}
		return hosttype.NewArray(elem, nullable), deps, nil
	}

	def, ok := r.schema.Types[t.NamedType]
	if !ok {
		return nil, nil, fmt.Errorf("unknown type %q", t.NamedType)
	}

	switch def.Kind {
	case ast.Scalar:
		return hosttype.NewNamed(hosttype.MapScalar(t.NamedType), nullable), nil, nil
	case ast.Enum:
		r.ctx.UsedNamedTypes[t.NamedType] = struct{}{}
		return hosttype.NewNamed(t.NamedType, nullable), nil, nil
	case ast.Object, ast.Interface, ast.Union:
		return r.convertSelectionSet(def, sel, nullable)
	default:
		return nil, nil, fmt.Errorf("type %q cannot be a field output type", t.NamedType)
	}
}

// lookupFragmentType resolves a spread's fragment type, consulting the
// local context first and the import bundle second.
func (r *resolver) lookupFragmentType(name string) (hosttype.Type, error) {
	if fi, ok := r.ctx.Fragments[name]; ok {
		return fi.HostType, nil
	}
	if r.bundle != nil {
		if t, ok := r.bundle.FragmentTypes[name]; ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("fragment %q is not defined locally or in any import", name)
}

func dedupSorted(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// closeUsedNamedTypes chases input-object field chains and enum leaves from
// every already-recorded used-named-type.
func closeUsedNamedTypes(schema *ast.Schema, ctx *Context) {
	worklist := make([]string, 0, len(ctx.UsedNamedTypes))
	for name := range ctx.UsedNamedTypes {
		worklist = append(worklist, name)
	}

	for len(worklist) > 0 {
		name := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		def, ok := schema.Types[name]
		if !ok || def.Kind != ast.InputObject {
			continue // enums are terminal leaves
		}

		for _, f := range def.Fields {
			inner := innermostNamedType(f.Type)
			fieldDef, ok := schema.Types[inner]
			if !ok || (fieldDef.Kind != ast.InputObject && fieldDef.Kind != ast.Enum) {
				continue
			}
			if _, seen := ctx.UsedNamedTypes[inner]; seen {
				continue
			}
			ctx.UsedNamedTypes[inner] = struct{}{}
			worklist = append(worklist, inner)
		}
	}
}

func innermostNamedType(t *ast.Type) string {
	for t.Elem != nil {
		t = t.Elem
	}
	return t.NamedType
}
