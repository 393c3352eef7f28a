package schemasrc

import (
	"testing"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

func strp(s string) *string { return &s }

func TestPrintSDLRoundTrips(t *testing.T) {
	t.Parallel()

	resp := &IntrospectionResponse{}
	resp.Schema.QueryType.Name = strp("Query")
	resp.Schema.Types = FullTypes{
		{
			Kind: TypeKindEnum,
			Name: strp("Role"),
			EnumValues: []*EnumValue{
				{Name: "ADMIN"},
				{Name: "MEMBER"},
			},
		},
		{
			Kind: TypeKindObject,
			Name: strp("Query"),
			Fields: []*FieldValue{
				{
					Name: "role",
					Type: TypeRef{Kind: TypeKindEnum, Name: strp("Role")},
				},
			},
		},
	}

	sdl := PrintSDL(resp)

	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "introspected.graphql", Input: sdl})
	if err != nil {
		t.Fatalf("LoadSchema(%q): %v", sdl, err)
	}
	if _, ok := schema.Types["Role"]; !ok {
		t.Errorf("Role not present in parsed schema")
	}
}
