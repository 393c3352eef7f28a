// Package genconfig loads the optional .gqltsrc.yml project config file
// and merges it with CLI flags, flags always winning. Uses the same
// "find the file in the given directory, fall back to defaults" shape
// as the rest of this tool's config handling.
package genconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// FileConfig is the optional project-level config file's shape. It is
// loaded only by the graphql subcommand. Schema, Token, Include,
// AllowUnusedFragments and JSSuffix mirror graphql flags and are merged
// with them; EmbedImports has no flag and is set only here. API is
// decoded but not read: the content-model subcommand does not load the
// config file.
type FileConfig struct {
	Schema               string   `yaml:"schema"`
	Token                string   `yaml:"token"`
	Include              []string `yaml:"include"`
	AllowUnusedFragments bool     `yaml:"allowUnusedFragments"`
	JSSuffix             bool     `yaml:"jsSuffix"`
	EmbedImports         bool     `yaml:"embedImports"`
	API                  string   `yaml:"api"`
}

var configFileNames = []string{".gqltsrc.yml", "gqltsrc.yml"}

// Load searches dir for a project config file and parses it. It returns a
// zero-value *FileConfig, not an error, when no config file is present.
func Load(dir string) (*FileConfig, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		body, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var cfg FileConfig
		dec := yaml.NewDecoder(bytes.NewReader(body), yaml.DisallowUnknownField())
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return &cfg, nil
	}
	return &FileConfig{}, nil
}

// MergeString returns flagValue if the caller explicitly set it (flags
// always win), otherwise fileValue.
func MergeString(flagValue, fileValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return fileValue
}

// MergeBool returns true if either the flag or the file config set it —
// boolean flags in this tool are all "turn a behavior on", so there is no
// ambiguity in OR-ing them.
func MergeBool(flagValue, fileValue bool) bool {
	return flagValue || fileValue
}

// MergeIncludes concatenates file-declared and flag-declared include
// rules, flags appended last so a duplicate NAME from a flag is free to
// shadow the file's during later parsing.
func MergeIncludes(flagValues, fileValues []string) []string {
	out := make([]string, 0, len(flagValues)+len(fileValues))
	out = append(out, fileValues...)
	out = append(out, flagValues...)
	return out
}
