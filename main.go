package main

import (
	"context"
	"fmt"
	"os"
)

const version = "1.0.0-alpha1"

const usage = "usage: gqlts graphql <dir> [flags] | gqlts content-model [flags] | gqlts --version"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "--version", "-version":
		fmt.Printf("gqlts v%s\n", version)
		return
	case "graphql":
		if err := runGraphQL(context.Background(), os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "content-model":
		if err := runContentModel(context.Background(), os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
}

// stringList collects a repeatable flag's values in the order given.
type stringList []string

func (s *stringList) String() string {
	if s == nil {
		return ""
	}
	return fmt.Sprint([]string(*s))
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
