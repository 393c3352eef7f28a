package emitter

import (
	"bytes"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// printFragment and printOperation round-trip a single definition back
// into GraphQL source text through the library's own formatter, so
// Minify always works from canonical syntax regardless of how the source
// file originally laid it out.
func printFragment(node *ast.FragmentDefinition) string {
	doc := &ast.QueryDocument{Fragments: ast.FragmentDefinitionList{node}}
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(doc)
	return buf.String()
}

func printOperation(node *ast.OperationDefinition) string {
	doc := &ast.QueryDocument{Operations: ast.OperationList{node}}
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(doc)
	return buf.String()
}
