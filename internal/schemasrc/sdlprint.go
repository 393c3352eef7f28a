package schemasrc

import (
	"fmt"
	"sort"
	"strings"
)

// PrintSDL renders an introspection response back into GraphQL SDL, so it
// can be parsed through the same gqlparser.LoadSchema path as a hand-
// written .graphql schema file.
func PrintSDL(resp *IntrospectionResponse) string {
	var b strings.Builder

	writeSchemaDecl(&b, resp)

	types := make(FullTypes, len(resp.Schema.Types))
	copy(types, resp.Schema.Types)
	sort.Slice(types, func(i, j int) bool { return name(types[i].Name) < name(types[j].Name) })

	for _, t := range types {
		if t.Name == nil || builtinScalars[*t.Name] || strings.HasPrefix(*t.Name, "__") {
			continue
		}
		writeType(&b, t)
	}

	for _, d := range resp.Schema.Directives {
		writeDirective(&b, d)
	}

	return b.String()
}

func name(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func writeSchemaDecl(b *strings.Builder, resp *IntrospectionResponse) {
	b.WriteString("schema {\n")
	if q := resp.Schema.QueryType.Name; q != nil {
		fmt.Fprintf(b, "  query: %s\n", *q)
	}
	if resp.Schema.MutationType != nil && resp.Schema.MutationType.Name != nil {
		fmt.Fprintf(b, "  mutation: %s\n", *resp.Schema.MutationType.Name)
	}
	if resp.Schema.SubscriptionType != nil && resp.Schema.SubscriptionType.Name != nil {
		fmt.Fprintf(b, "  subscription: %s\n", *resp.Schema.SubscriptionType.Name)
	}
	b.WriteString("}\n\n")
}

func writeType(b *strings.Builder, t *FullType) {
	switch t.Kind {
	case TypeKindScalar:
		fmt.Fprintf(b, "scalar %s\n\n", *t.Name)
	case TypeKindEnum:
		fmt.Fprintf(b, "enum %s {\n", *t.Name)
		for _, v := range t.EnumValues {
			fmt.Fprintf(b, "  %s\n", v.Name)
		}
		b.WriteString("}\n\n")
	case TypeKindInputObject:
		fmt.Fprintf(b, "input %s {\n", *t.Name)
		for _, f := range t.InputFields {
			fmt.Fprintf(b, "  %s: %s\n", f.Name, typeRefSDL(&f.Type))
		}
		b.WriteString("}\n\n")
	case TypeKindInterface:
		fmt.Fprintf(b, "interface %s {\n", *t.Name)
		writeFields(b, t.Fields)
		b.WriteString("}\n\n")
	case TypeKindUnion:
		names := make([]string, len(t.PossibleTypes))
		for i, p := range t.PossibleTypes {
			names[i] = name(p.Name)
		}
		fmt.Fprintf(b, "union %s = %s\n\n", *t.Name, strings.Join(names, " | "))
	case TypeKindObject:
		fmt.Fprintf(b, "type %s%s {\n", *t.Name, implementsClause(t.Interfaces))
		writeFields(b, t.Fields)
		b.WriteString("}\n\n")
	}
}

func implementsClause(interfaces []*TypeRef) string {
	if len(interfaces) == 0 {
		return ""
	}
	names := make([]string, len(interfaces))
	for i, it := range interfaces {
		names[i] = name(it.Name)
	}
	sort.Strings(names)
	return " implements " + strings.Join(names, " & ")
}

func writeFields(b *strings.Builder, fields []*FieldValue) {
	for _, f := range fields {
		args := ""
		if len(f.Args) > 0 {
			parts := make([]string, len(f.Args))
			for i, a := range f.Args {
				parts[i] = fmt.Sprintf("%s: %s", a.Name, typeRefSDL(&a.Type))
			}
			args = "(" + strings.Join(parts, ", ") + ")"
		}
		fmt.Fprintf(b, "  %s%s: %s\n", f.Name, args, typeRefSDL(&f.Type))
	}
}

func writeDirective(b *strings.Builder, d *DirectiveType) {
	args := ""
	if len(d.Args) > 0 {
		parts := make([]string, len(d.Args))
		for i, a := range d.Args {
			parts[i] = fmt.Sprintf("%s: %s", a.Name, typeRefSDL(&a.Type))
		}
		args = "(" + strings.Join(parts, ", ") + ")"
	}
	fmt.Fprintf(b, "directive @%s%s on %s\n\n", d.Name, args, strings.Join(d.Locations, " | "))
}

func typeRefSDL(ref *TypeRef) string {
	switch ref.Kind {
	case TypeKindNonNull:
		return typeRefSDL(ref.OfType) + "!"
	case TypeKindList:
		return "[" + typeRefSDL(ref.OfType) + "]"
	default:
		return name(ref.Name)
	}
}
