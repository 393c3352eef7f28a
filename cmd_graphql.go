package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/trunkery/typescript-codegen/internal/docloader"
	"github.com/trunkery/typescript-codegen/internal/emitter"
	"github.com/trunkery/typescript-codegen/internal/genconfig"
	"github.com/trunkery/typescript-codegen/internal/importdir"
	"github.com/trunkery/typescript-codegen/internal/importresolve"
	"github.com/trunkery/typescript-codegen/internal/outputfs"
	"github.com/trunkery/typescript-codegen/internal/schemasrc"
	"github.com/trunkery/typescript-codegen/internal/typeresolve"
)

// defaultSchemaLocation is used when neither --schema nor the project
// config file names one. Operators deploying this for a real storefront
// project are expected to override it (see DESIGN.md).
const defaultSchemaLocation = "https://storefront.example.com/graphql"

func runGraphQL(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("graphql", flag.ExitOnError)

	var includes stringList
	fs.Var(&includes, "I", "include rule NAME=DIR=PREFIX (repeatable)")
	fs.Var(&includes, "include", "alias for -I")

	var token string
	fs.StringVar(&token, "t", "", "bearer token for schema introspection")
	fs.StringVar(&token, "token", "", "alias for -t")

	var quiet bool
	fs.BoolVar(&quiet, "q", false, "suppress interactive prompts")
	fs.BoolVar(&quiet, "quiet", false, "alias for -q")

	var allowUnusedFragments bool
	fs.BoolVar(&allowUnusedFragments, "allow-unused-fragments", false, "do not fail on unused fragments")

	var jsSuffix bool
	fs.BoolVar(&jsSuffix, "js-suffix", false, "append .js to emitted import paths")

	var schemaFlag string
	fs.StringVar(&schemaFlag, "schema", "", "schema source: https URL, or local SDL file path")

	if err := fs.Parse(args); err != nil {
		return err
	}

	dir := fs.Arg(0)
	if dir == "" {
		return fmt.Errorf("graphql: missing directory argument")
	}

	fileCfg, err := genconfig.Load(dir)
	if err != nil {
		return err
	}

	schemaLocation := genconfig.MergeString(schemaFlag, fileCfg.Schema)
	if schemaLocation == "" {
		schemaLocation = defaultSchemaLocation
	}

	rules := parseIncludeRules(genconfig.MergeIncludes(includes, fileCfg.Include))

	schema, err := schemasrc.Fetch(ctx, schemaLocation, genconfig.MergeString(token, fileCfg.Token))
	if err != nil {
		return err
	}

	doc, err := docloader.LoadDir(dir)
	if err != nil {
		return err
	}

	opts := docloader.Options{
		AllowUnusedFragments: genconfig.MergeBool(allowUnusedFragments, fileCfg.AllowUnusedFragments),
	}
	if err := docloader.Validate(schema, doc.Query, opts); err != nil {
		return err
	}

	var specs []importdir.Spec
	for _, f := range doc.Files {
		specs = append(specs, f.Imports...)
	}

	bundle, err := importresolve.Resolve(schema, specs, importresolve.Config{
		Rules:        rules,
		EmbedImports: fileCfg.EmbedImports,
	})
	if err != nil {
		return err
	}

	resolved, err := typeresolve.Resolve(schema, doc.Query, bundle)
	if err != nil {
		return err
	}

	f := emitter.NewFormatterWithPrefixMap(genconfig.MergeBool(jsSuffix, fileCfg.JSSuffix), bundle.PrefixMap)
	files, err := emitter.Emit(schema, resolved, bundle, f)
	if err != nil {
		return err
	}

	outFiles := make([]outputfs.File, len(files))
	for i, ef := range files {
		outFiles[i] = outputfs.File{Path: ef.Path, Content: ef.Content}
	}

	coordinator := outputfs.New(dir, quiet)
	before, err := coordinator.Snapshot()
	if err != nil {
		return err
	}
	written, err := coordinator.WriteAll(outFiles)
	if err != nil {
		return err
	}
	return coordinator.Reconcile(before, written, os.Stdin, os.Stdout)
}

// parseIncludeRules parses "NAME=DIR=PREFIX" flags into IncludeRules,
// matching the "@NAME" token used in import directives. Keys, values, and
// prefixes are all required; a rule that doesn't split into exactly three
// parts, or has any empty part, is malformed and silently skipped. A later
// rule with the same NAME replaces the earlier one in place.
func parseIncludeRules(raw []string) []importresolve.IncludeRule {
	rules := make([]importresolve.IncludeRule, 0, len(raw))
	for _, r := range raw {
		parts := strings.SplitN(r, "=", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			continue
		}
		rule := importresolve.IncludeRule{
			Prefix:       "@" + parts[0],
			Dir:          parts[1],
			OutputPrefix: parts[2],
		}
		replaced := false
		for i := range rules {
			if rules[i].Prefix == rule.Prefix {
				rules[i] = rule
				replaced = true
				break
			}
		}
		if !replaced {
			rules = append(rules, rule)
		}
	}
	return rules
}
