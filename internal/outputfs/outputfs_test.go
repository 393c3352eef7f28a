package outputfs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteAllSkipsUnchangedContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := New(dir, true)

	files := []File{{Path: "types.ts", Content: "export type A = string;\n"}}

	if _, err := c.WriteAll(files); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	full := filepath.Join(dir, "types.ts")
	info1, err := os.Stat(full)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}

	if _, err := c.WriteAll(files); err != nil {
		t.Fatalf("WriteAll (second): %v", err)
	}
	info2, err := os.Stat(full)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !info1.ModTime().Equal(info2.ModTime()) {
		t.Errorf("file was rewritten despite unchanged content")
	}
}

func TestReconcileQuietModeRenames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stale.ts"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c := New(dir, true)
	before, err := c.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if _, ok := before["stale.ts"]; !ok {
		t.Fatalf("Snapshot missed stale.ts: %v", before)
	}

	written, err := c.WriteAll([]File{{Path: "fresh.ts", Content: "export type B = string;\n"}})
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	if err := c.Reconcile(before, written, strings.NewReader(""), &strings.Builder{}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "stale.ts")); !os.IsNotExist(err) {
		t.Errorf("stale.ts should have been renamed away")
	}
	if _, err := os.Stat(filepath.Join(dir, "stale.ts.unused")); err != nil {
		t.Errorf("stale.ts.unused should exist: %v", err)
	}
}

func TestReconcileInteractiveModeDeletesOnConfirm(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stale.ts"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c := New(dir, false)
	before := map[string]struct{}{"stale.ts": {}}
	written := map[string]struct{}{}

	if err := c.Reconcile(before, written, strings.NewReader("y\n"), &strings.Builder{}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "stale.ts")); !os.IsNotExist(err) {
		t.Errorf("stale.ts should have been deleted")
	}
}
