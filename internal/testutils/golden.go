package testutils

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// update rewrites golden files instead of comparing against them:
//
//	go test ./internal/history -run Golden -update
var update = flag.Bool("update", false, "rewrite golden files with actual output")

// RequireGolden compares actual against the golden file at path and fails
// the test with a character-level diff on mismatch. With -update the golden
// file is rewritten instead.
func RequireGolden(t *testing.T, path string, actual string) {
	t.Helper()

	if *update {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0644); err != nil {
			t.Fatalf("failed to write golden file %s: %v", path, err)
		}
		return
	}

	expectedBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s (run with -update to create it): %v", path, err)
	}

	expected := string(expectedBytes)
	if expected == actual {
		return
	}

	t.Errorf("output does not match golden file %s:\n%s", path, DiffStrings(expected, actual))
}

// DiffStrings renders a character-level diff between expected and actual,
// one quoted fragment per line with -/+ markers. Long unchanged stretches
// are truncated for brevity.
func DiffStrings(expected, actual string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(expected, actual, false)

	var b strings.Builder
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&b, "- %q\n", diff.Text)
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&b, "+ %q\n", diff.Text)
		case diffmatchpatch.DiffEqual:
			if len(diff.Text) > 50 {
				fmt.Fprintf(&b, "  %q...\n", diff.Text[:47])
			} else {
				fmt.Fprintf(&b, "  %q\n", diff.Text)
			}
		}
	}
	return b.String()
}
