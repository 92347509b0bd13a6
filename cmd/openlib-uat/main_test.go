package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Chandrasekaran86/openlib-uat/internal/testhelpers"
)

// Lay out features/ and schemas/ as siblings under uat/, the way the
// repo ships them.
func layoutSuiteTree(t *testing.T) func() {
	restore := testhelpers.ChdirTemp(t)

	for _, dir := range []string{"uat/features", "uat/schemas"} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile("uat/schemas/author-schema.json", []byte(`{"type": "object"}`), 0644); err != nil {
		t.Fatal(err)
	}

	return restore
}

// The default config schema path only resolves from inside uat/; a
// repo-root run must find the schema next to the feature directory.
func TestResolveSchemaPathFromRepoRoot(t *testing.T) {
	restore := layoutSuiteTree(t)
	defer restore()

	got := resolveSchemaPath("schemas/author-schema.json", []string{"uat/features"})
	want := filepath.Join("uat", "schemas/author-schema.json")
	if got != want {
		t.Fatalf("wanted %s, got %s", want, got)
	}
	if _, err := os.Stat(got); err != nil {
		t.Fatalf("resolved path must be readable: %s", err)
	}
}

func TestResolveSchemaPathLocalWins(t *testing.T) {
	restore := layoutSuiteTree(t)
	defer restore()

	// A path that already resolves is left alone.
	if err := os.MkdirAll("schemas", 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("schemas/author-schema.json", []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	got := resolveSchemaPath("schemas/author-schema.json", []string{"uat/features"})
	if got != "schemas/author-schema.json" {
		t.Fatalf("locally-resolvable path must win, got %s", got)
	}
}

func TestResolveSchemaPathUnresolvable(t *testing.T) {
	restore := layoutSuiteTree(t)
	defer restore()

	// Nothing to find: hand the path back so the schema step reports
	// the original location in its error.
	got := resolveSchemaPath("no-such-schema.json", []string{"uat/features"})
	if got != "no-such-schema.json" {
		t.Fatalf("unresolvable path must pass through, got %s", got)
	}
}
