package emitter

import (
	"strings"
	"testing"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/trunkery/typescript-codegen/internal/typeresolve"
)

const emitterTestSchema = `
enum Role { ADMIN MEMBER }

type Shop {
	id: ID!
	name: String!
	role: Role
}

type Query {
	shop(id: ID!): Shop
}
`

func TestMinify(t *testing.T) {
	t.Parallel()

	raw := "query GetShop($id: ID!) {\n  # a comment\n  shop(id: $id) {\n    id\n    name\n  }\n}\n"
	got := Minify(raw)
	if strings.Contains(got, "#") {
		t.Errorf("Minify left a comment in: %q", got)
	}
	if strings.Contains(got, "\n") {
		t.Errorf("Minify left a newline in: %q", got)
	}
}

func TestEmitProducesTypesAndOperationFiles(t *testing.T) {
	t.Parallel()

	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: emitterTestSchema})
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}

	doc, err := parser.ParseQuery(&ast.Source{Name: "doc.graphql", Input: `
query GetShop($id: ID!) {
	shop(id: $id) {
		id
		name
		role
	}
}
`})
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}

	ctx, err := typeresolve.Resolve(schema, doc, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	files, err := Emit(schema, ctx, nil, NewFormatter(false))
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	var typesFile, opFile *File
	for i := range files {
		switch files[i].Path {
		case "types.ts":
			typesFile = &files[i]
		case "operations/GetShopQuery.ts":
			opFile = &files[i]
		}
	}

	if typesFile == nil {
		t.Fatalf("missing types.ts, have: %v", pathsOf(files))
	}
	if !strings.Contains(typesFile.Content, `export type Role = "ADMIN" | "MEMBER";`) {
		t.Errorf("types.ts missing Role enum decl:\n%s", typesFile.Content)
	}
	if !strings.Contains(typesFile.Content, "export interface GetShopQuery") {
		t.Errorf("types.ts missing operation result decl:\n%s", typesFile.Content)
	}
	if !strings.Contains(typesFile.Content, "export interface GetShopQueryMeta") {
		t.Errorf("types.ts missing meta decl:\n%s", typesFile.Content)
	}

	if opFile == nil {
		t.Fatalf("missing operations/GetShopQuery.ts, have: %v", pathsOf(files))
	}
	if !strings.Contains(opFile.Content, "GetShopQueryMeta") {
		t.Errorf("operation file missing meta type import:\n%s", opFile.Content)
	}
	if !strings.Contains(opFile.Content, "export default") {
		t.Errorf("operation file missing default export:\n%s", opFile.Content)
	}
}

func pathsOf(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}
