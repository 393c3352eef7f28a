package importresolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/trunkery/typescript-codegen/internal/importdir"
)

const importTestSchema = `
type Shop {
	id: ID!
	name: String!
}

type Query {
	shop(id: ID!): Shop
}
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestResolveNamedImport(t *testing.T) {
	t.Parallel()

	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: importTestSchema})
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}

	sharedDir := t.TempDir()
	writeFile(t, sharedDir, "shop.graphql", `
fragment ShopBasic on Shop { id name }
fragment ShopId on Shop { id }
`)

	specs := []importdir.Spec{
		{From: "@shared/fragments", What: importdir.What{Names: []string{"ShopBasic"}}},
	}
	cfg := Config{Rules: []IncludeRule{{Prefix: "@shared/fragments", Dir: sharedDir}}}

	bundle, err := Resolve(schema, specs, cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if _, ok := bundle.FragmentTypes["ShopBasic"]; !ok {
		t.Errorf("ShopBasic not loaded, have: %v", bundle.FragmentTypes)
	}
	if _, ok := bundle.FragmentTypes["ShopId"]; ok {
		t.Errorf("ShopId should not be loaded, only ShopBasic was requested")
	}
}

func TestResolveStarImport(t *testing.T) {
	t.Parallel()

	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: importTestSchema})
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}

	sharedDir := t.TempDir()
	writeFile(t, sharedDir, "shop.graphql", `
fragment ShopBasic on Shop { id name }
fragment ShopId on Shop { id }
`)

	specs := []importdir.Spec{
		{From: "@shared/fragments", What: importdir.What{All: true}},
	}
	cfg := Config{Rules: []IncludeRule{{Prefix: "@shared/fragments", Dir: sharedDir}}}

	bundle, err := Resolve(schema, specs, cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	for _, name := range []string{"ShopBasic", "ShopId"} {
		if _, ok := bundle.FragmentTypes[name]; !ok {
			t.Errorf("%s not loaded via star import", name)
		}
	}
}

func TestResolveDuplicateNameAcrossPathsFails(t *testing.T) {
	t.Parallel()

	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: importTestSchema})
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}

	dirA := t.TempDir()
	writeFile(t, dirA, "a.graphql", `fragment ShopBasic on Shop { id }`)
	dirB := t.TempDir()
	writeFile(t, dirB, "b.graphql", `fragment ShopBasic on Shop { id name }`)

	specs := []importdir.Spec{
		{From: "@a", What: importdir.What{Names: []string{"ShopBasic"}}},
		{From: "@b", What: importdir.What{Names: []string{"ShopBasic"}}},
	}
	cfg := Config{Rules: []IncludeRule{{Prefix: "@a", Dir: dirA}, {Prefix: "@b", Dir: dirB}}}

	if _, err := Resolve(schema, specs, cfg); err == nil {
		t.Fatalf("want error for duplicate fragment name across import paths")
	}
}

func TestResolveNestedImportRejected(t *testing.T) {
	t.Parallel()

	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: importTestSchema})
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}

	sharedDir := t.TempDir()
	writeFile(t, sharedDir, "shop.graphql", `
# import { Other } from "../other"
fragment ShopBasic on Shop { id name }
`)

	specs := []importdir.Spec{
		{From: "@shared", What: importdir.What{Names: []string{"ShopBasic"}}},
	}
	cfg := Config{Rules: []IncludeRule{{Prefix: "@shared", Dir: sharedDir}}}

	if _, err := Resolve(schema, specs, cfg); err == nil {
		t.Fatalf("want error: nested imports are forbidden")
	}
}
