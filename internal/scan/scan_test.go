package scan

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/structgen/internal/testutil"
)

func TestScan_Layout(t *testing.T) {
	root := t.TempDir()
	testutil.GenerateCompound(t, root, "book-b", "2", "10", "1")
	testutil.GenerateCompound(t, root, "book-a", "B", "A")
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.txt"), []byte("x"), 0o644))

	s := New(root, WithLogger(testutil.NewTestLogger(t)))
	compounds, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, compounds, 2)

	assert.Equal(t, "book-a", compounds[0].Name)
	assert.Equal(t, filepath.Join(root, "book-a"), compounds[0].Path)
	assert.Equal(t, []string{"A", "B"}, compounds[0].Parts)

	assert.Equal(t, "book-b", compounds[1].Name)
	assert.ElementsMatch(t, []string{"1", "2", "10"}, compounds[1].Parts)
}

func TestScan_ExcludesFiles(t *testing.T) {
	root := t.TempDir()
	dir := testutil.GenerateCompound(t, root, "c1", "first", "second")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "structure.xml"), []byte("<x/>"), 0o644))

	compounds, err := New(root).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, compounds, 1)
	assert.Equal(t, []string{"first", "second"}, compounds[0].Parts)
}

func TestScan_EmptyCompound(t *testing.T) {
	root := t.TempDir()
	testutil.GenerateCompound(t, root, "empty")

	compounds, err := New(root).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, compounds, 1)
	assert.Empty(t, compounds[0].Parts)
}

func TestScan_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")

	var got []error
	for c, err := range New(root).Compounds(context.Background()) {
		assert.Empty(t, c.Name)
		got = append(got, err)
	}
	require.Len(t, got, 1)

	var scanErr *ScanError
	require.ErrorAs(t, got[0], &scanErr)
	assert.Empty(t, scanErr.Compound)
	assert.True(t, errors.Is(got[0], fs.ErrNotExist))
	assert.Contains(t, got[0].Error(), "scan root")
}

func TestScan_RootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, nil, 0o644))

	_, err := New(root).Scan(context.Background())
	require.Error(t, err)
}

func TestScan_UnreadableCompound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permissions are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	root := t.TempDir()
	testutil.GenerateCompound(t, root, "a", "1")
	bad := testutil.GenerateCompound(t, root, "b", "1")
	testutil.GenerateCompound(t, root, "c", "1")
	require.NoError(t, os.Chmod(bad, 0o000))
	t.Cleanup(func() { _ = os.Chmod(bad, 0o755) })

	var names []string
	var errs []error
	for c, err := range New(root).Compounds(context.Background()) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		names = append(names, c.Name)
	}

	assert.Equal(t, []string{"a", "c"}, names)
	require.Len(t, errs, 1)
	var scanErr *ScanError
	require.ErrorAs(t, errs[0], &scanErr)
	assert.Equal(t, "b", scanErr.Compound)
}

func TestScan_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	root := t.TempDir()
	dir := testutil.GenerateCompound(t, root, "c", "1")
	target := t.TempDir()
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "2")))
	require.NoError(t, os.Symlink(filepath.Join(target, "gone"), filepath.Join(dir, "3")))

	compounds, err := New(root).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, compounds, 1)
	assert.Equal(t, []string{"1", "2"}, compounds[0].Parts)
}

func TestScan_Ignore(t *testing.T) {
	root := t.TempDir()
	testutil.GenerateCompound(t, root, "keep", "1", ".thumbs", "2")
	testutil.GenerateCompound(t, root, ".git")

	compounds, err := New(root, WithIgnore(".*")).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, compounds, 1)
	assert.Equal(t, "keep", compounds[0].Name)
	assert.Equal(t, []string{"1", "2"}, compounds[0].Parts)
}

func TestScan_ExcludeCompounds(t *testing.T) {
	root := t.TempDir()
	testutil.GenerateCompound(t, root, "book", "out", "1")
	testutil.GenerateCompound(t, root, "out", "book")

	compounds, err := New(root, WithExcludeCompounds("out", "")).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, compounds, 1)
	assert.Equal(t, "book", compounds[0].Name)
	assert.Equal(t, []string{"1", "out"}, compounds[0].Parts)
}

func TestValidateIgnore(t *testing.T) {
	assert.NoError(t, ValidateIgnore([]string{".*", "tmp?"}))
	assert.Error(t, ValidateIgnore([]string{"[unclosed"}))
}

func TestScan_StopsOnCancel(t *testing.T) {
	root := t.TempDir()
	testutil.GenerateCompound(t, root, "a", "1")
	testutil.GenerateCompound(t, root, "b", "1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(root).Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScan_EarlyBreak(t *testing.T) {
	root := t.TempDir()
	for _, n := range []string{"a", "b", "c"} {
		testutil.GenerateCompound(t, root, n, "1")
	}

	var seen []string
	for c, err := range New(root).Compounds(context.Background()) {
		require.NoError(t, err)
		seen = append(seen, c.Name)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestScan_DoesNotModifyTree(t *testing.T) {
	root := t.TempDir()
	testutil.GenerateCompound(t, root, "c", "1", "2")

	before := listTree(t, root)
	_, err := New(root).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, listTree(t, root))
}

func listTree(t *testing.T, root string) []string {
	t.Helper()
	var paths []string
	err := filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	})
	require.NoError(t, err)
	return paths
}
