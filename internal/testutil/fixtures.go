package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// GenerateCompound creates root/id laid out the way batch ingestion expects:
// a MODS.xml marker plus one directory per part, each holding MODS.xml and
// OBJ.jp2. It returns the compound directory.
func GenerateCompound(t testing.TB, root, id string, parts ...string) string {
	t.Helper()

	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create compound %s: %v", id, err)
	}
	touch(t, filepath.Join(dir, "MODS.xml"))

	for _, p := range parts {
		pd := filepath.Join(dir, p)
		if err := os.MkdirAll(pd, 0o755); err != nil {
			t.Fatalf("failed to create part %s/%s: %v", id, p, err)
		}
		touch(t, filepath.Join(pd, "MODS.xml"))
		touch(t, filepath.Join(pd, "OBJ.jp2"))
	}
	return dir
}

func touch(t testing.TB, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}
