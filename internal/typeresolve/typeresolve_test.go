package typeresolve

import (
	"testing"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/trunkery/typescript-codegen/internal/hosttype"
)

const testSchema = `
enum Role { ADMIN MEMBER }

input PageInput { limit: Int! offset: Int }

type Shop {
	id: ID!
	name: String!
	role: Role
}

type Query {
	shop(id: ID!, page: PageInput): Shop
}
`

func mustSchema(t *testing.T) *ast.Schema {
	t.Helper()
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: testSchema})
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	return schema
}

func mustParse(t *testing.T, src string) *ast.QueryDocument {
	t.Helper()
	doc, err := parser.ParseQuery(&ast.Source{Name: "doc.graphql", Input: src})
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	return doc
}

func TestResolveSimpleQuery(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t)
	doc := mustParse(t, `
query GetShop($id: ID!, $page: PageInput) {
	shop(id: $id, page: $page) {
		id
		name
		role
	}
}
`)

	ctx, err := Resolve(schema, doc, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	op, ok := ctx.Operations["GetShopQuery"]
	if !ok {
		t.Fatalf("missing operation, have: %v", ctx.Operations)
	}

	obj, ok := op.Result.(*hosttype.Object)
	if !ok {
		t.Fatalf("result is %T, want *hosttype.Object", op.Result)
	}
	if obj.Nullable() {
		t.Errorf("top-level result must not be nullable")
	}
	if len(obj.Fields) != 1 || obj.Fields[0].Name != "shop" {
		t.Fatalf("unexpected fields: %+v", obj.Fields)
	}

	if _, used := ctx.UsedNamedTypes["Role"]; !used {
		t.Errorf("Role enum should be recorded in UsedNamedTypes")
	}
	if _, used := ctx.UsedNamedTypes["PageInput"]; !used {
		t.Errorf("PageInput should be recorded in UsedNamedTypes")
	}
}

func TestResolveFragmentSpreadIntersection(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t)
	doc := mustParse(t, `
fragment ShopBasic on Shop {
	id
	name
}

query GetShop($id: ID!) {
	shop(id: $id) {
		...ShopBasic
		role
	}
}
`)

	ctx, err := Resolve(schema, doc, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if _, ok := ctx.Fragments["ShopBasic"]; !ok {
		t.Fatalf("fragment not resolved")
	}

	op := ctx.Operations["GetShopQuery"]
	root := op.Result.(*hosttype.Object)
	shopField := root.Fields[0].Type

	inter, ok := shopField.(*hosttype.Intersection)
	if !ok {
		t.Fatalf("shop field is %T, want *hosttype.Intersection", shopField)
	}
	if len(inter.Members) != 2 {
		t.Fatalf("want 2 members, got %d", len(inter.Members))
	}
	named, ok := inter.Members[0].(*hosttype.Named)
	if !ok || named.Name != "ShopBasicFragment" {
		t.Fatalf("first member = %+v, want ShopBasicFragment named ref", inter.Members[0])
	}
}

func TestResolveSingleSpreadShortCircuit(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t)
	doc := mustParse(t, `
fragment ShopBasic on Shop { id name }

query GetShop($id: ID!) {
	shop(id: $id) {
		...ShopBasic
	}
}
`)

	ctx, err := Resolve(schema, doc, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	op := ctx.Operations["GetShopQuery"]
	root := op.Result.(*hosttype.Object)
	shopField := root.Fields[0].Type

	named, ok := shopField.(*hosttype.Named)
	if !ok || named.Name != "ShopBasicFragment" {
		t.Fatalf("shop field = %+v, want direct ShopBasicFragment reference", shopField)
	}
}

func TestResolveUnknownFragmentFails(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t)
	doc := mustParse(t, `
query GetShop($id: ID!) {
	shop(id: $id) {
		...NotDefinedAnywhere
	}
}
`)

	if _, err := Resolve(schema, doc, nil); err == nil {
		t.Fatalf("want error for unresolvable fragment spread")
	}
}
