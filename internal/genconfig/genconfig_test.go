package genconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	t.Parallel()

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Schema != "" {
		t.Errorf("expected zero-value config, got %+v", cfg)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "schema: https://example.com/schema.graphql\ninclude:\n  - shared=../shared=@shared\njsSuffix: true\n"
	if err := os.WriteFile(filepath.Join(dir, ".gqltsrc.yml"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Schema != "https://example.com/schema.graphql" {
		t.Errorf("Schema = %q", cfg.Schema)
	}
	if !cfg.JSSuffix {
		t.Errorf("JSSuffix should be true")
	}
	if len(cfg.Include) != 1 || cfg.Include[0] != "shared=../shared=@shared" {
		t.Errorf("Include = %v", cfg.Include)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "schema: https://example.com/schema.graphql\nbogusField: true\n"
	if err := os.WriteFile(filepath.Join(dir, ".gqltsrc.yml"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatalf("want error for unknown config field")
	}
}

func TestMergeString(t *testing.T) {
	t.Parallel()

	if got := MergeString("flag", "file"); got != "flag" {
		t.Errorf("MergeString flag-set = %q, want flag", got)
	}
	if got := MergeString("", "file"); got != "file" {
		t.Errorf("MergeString flag-unset = %q, want file", got)
	}
}
