package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/trunkery/typescript-codegen/internal/contentmodel"
)

// defaultContentModelAPI is used when --api is not given. Operators
// deploying this for a real storefront project are expected to override
// it (see DESIGN.md).
const defaultContentModelAPI = "https://storefront.example.com/api/batch"

func runContentModel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("content-model", flag.ExitOnError)

	var inputs stringList
	fs.Var(&inputs, "i", "input JSON file (repeatable, required)")
	fs.Var(&inputs, "input", "alias for -i")

	var output string
	fs.StringVar(&output, "o", "", "output file path, - for stdout (required)")
	fs.StringVar(&output, "output", "", "alias for -o")

	var quiet bool
	fs.BoolVar(&quiet, "q", false, "suppress interactive prompts")
	fs.BoolVar(&quiet, "quiet", false, "alias for -q")

	var api string
	fs.StringVar(&api, "api", defaultContentModelAPI, "content-model batch API endpoint")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if len(inputs) == 0 {
		return fmt.Errorf("content-model: at least one --input file is required")
	}
	if output == "" {
		return fmt.Errorf("content-model: --output is required")
	}

	var entries []contentmodel.Entry
	entries = append(entries, contentmodel.FetchBuiltins(ctx, api)...)

	for _, path := range inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		parsed, err := contentmodel.Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		entries = append(entries, parsed...)
	}

	rendered := contentmodel.Emit(entries)

	if output == "-" {
		_, err := fmt.Fprint(os.Stdout, rendered)
		return err
	}
	return os.WriteFile(output, []byte(rendered), 0o644)
}
