package schemasrc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/trunkery/typescript-codegen/internal/gqlclient"
)

// Fetch resolves the `--schema` flag into a parsed schema: an HTTPS URL
// ending in ".graphql" is fetched as raw SDL, any other HTTPS URL is
// treated as an introspection endpoint, and anything else is read as a
// local file.
func Fetch(ctx context.Context, location, token string) (*ast.Schema, error) {
	var schema *ast.Schema
	var err error

	switch {
	case strings.HasPrefix(location, "https://") && strings.HasSuffix(location, ".graphql"):
		schema, err = fetchRawSDL(ctx, location, token)
	case strings.HasPrefix(location, "https://"):
		schema, err = fetchIntrospection(ctx, location, token)
	default:
		schema, err = fetchLocalFile(location)
	}
	if err != nil {
		return nil, err
	}

	normalize(schema)
	return schema, nil
}

// normalize applies the two fixups every loaded schema needs regardless
// of source: a schema with no root Query type (a legal introspection
// result for a schema with no queries) gets an empty one synthesized so
// later lookups don't have to special-case its absence, and every
// interface's Implements slice is sorted by type name so iteration order
// never depends on map order.
func normalize(schema *ast.Schema) {
	if schema.Query == nil {
		schema.Query = &ast.Definition{Kind: ast.Object, Name: "Query"}
		schema.Types["Query"] = schema.Query
	}

	for _, implements := range schema.Implements {
		sort.Slice(implements, func(i, j int) bool { return implements[i].Name < implements[j].Name })
	}
}

func fetchLocalFile(path string) (*ast.Schema, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file %s: %w", path, err)
	}
	return gqlparser.LoadSchema(&ast.Source{Name: path, Input: string(body)})
}

func fetchRawSDL(ctx context.Context, url, token string) (*ast.Schema, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build schema request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch schema: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch schema: upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read schema body: %w", err)
	}

	return gqlparser.LoadSchema(&ast.Source{Name: url, Input: string(body)})
}

func fetchIntrospection(ctx context.Context, endpoint, token string) (*ast.Schema, error) {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	c := gqlclient.NewClient(endpoint, gqlclient.WithHTTPHeader(header))

	var resp IntrospectionResponse
	if err := c.Post(ctx, IntrospectionQuery, nil, &resp); err != nil {
		return nil, fmt.Errorf("introspect schema: %w", err)
	}

	sdl := PrintSDL(&resp)
	return gqlparser.LoadSchema(&ast.Source{Name: endpoint, Input: sdl})
}
