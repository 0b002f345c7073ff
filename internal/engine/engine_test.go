package engine

import (
	"bytes"
	"context"
	"encoding/xml"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/structgen/internal/natsort"
	"github.com/leapstack-labs/structgen/internal/structure"
	"github.com/leapstack-labs/structgen/internal/testutil"
)

func parseStructure(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		Children []struct {
			Content string `xml:"content,attr"`
		} `xml:"child"`
	}
	require.NoError(t, xml.Unmarshal(data, &doc))
	var out []string
	for _, c := range doc.Children {
		out = append(out, c.Content)
	}
	return out
}

func withPrefix(prefix string, names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = prefix + "/" + n
	}
	return out
}

var (
	numeric  = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}
	letters  = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"}
	ordinals = []string{"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth", "eleventh"}
)

func setupRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testutil.GenerateCompound(t, root, "c-123", numeric...)
	testutil.GenerateCompound(t, root, "c-abc", letters...)
	testutil.GenerateCompound(t, root, "c-ord", ordinals...)
	return root
}

func TestRun_GeneratesStructures(t *testing.T) {
	root := setupRoot(t)

	report, err := New(Config{Root: root, Logger: testutil.NewTestLogger(t)}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	assert.Equal(t, 3, report.Count(StatusWritten))

	assert.Equal(t, withPrefix("c-123", numeric), parseStructure(t, filepath.Join(root, "c-123", "structure.xml")))
	assert.Equal(t, withPrefix("c-abc", letters), parseStructure(t, filepath.Join(root, "c-abc", "structure.xml")))
	assert.Equal(t, withPrefix("c-ord", ordinals), parseStructure(t, filepath.Join(root, "c-ord", "structure.xml")))

	for _, res := range report.Results {
		assert.Len(t, res.Structure.Records, 11, res.Compound)
	}
}

func TestRun_Idempotent(t *testing.T) {
	root := setupRoot(t)
	eng := New(Config{Root: root})

	_, err := eng.Run(context.Background())
	require.NoError(t, err)
	path := filepath.Join(root, "c-ord", "structure.xml")
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	// The written structure.xml files must not show up as parts.
	report, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Count(StatusUnchanged))
	assert.Equal(t, 0, report.Count(StatusWritten))

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	root := t.TempDir()
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		testutil.GenerateCompound(t, root, id, "3", "1", "2")
	}

	seq, err := New(Config{Root: root}).Plan(context.Background())
	require.NoError(t, err)
	par, err := New(Config{Root: root, Jobs: 4}).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, par.Results, len(seq.Results))
	for i := range seq.Results {
		assert.Equal(t, seq.Results[i].Compound, par.Results[i].Compound)
		assert.Equal(t, seq.Results[i].Structure, par.Results[i].Structure)
	}
}

func TestRun_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	report, err := New(Config{Root: root}).Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRun_WriteFailureIsolated(t *testing.T) {
	root := t.TempDir()
	testutil.GenerateCompound(t, root, "a", "2", "1")
	testutil.GenerateCompound(t, root, "b", "2", "1")
	testutil.GenerateCompound(t, root, "c", "2", "1")

	out := t.TempDir()
	// A regular file where b's output directory should be.
	require.NoError(t, os.WriteFile(filepath.Join(out, "b"), nil, 0o644))

	eng := New(Config{Root: root, Writer: &structure.Writer{OutputDir: out}, Jobs: 2})
	report, err := eng.Run(context.Background())
	require.Error(t, err)
	require.NotNil(t, report)

	assert.Equal(t, 2, report.Count(StatusWritten))
	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "b", failed[0].Compound)

	var werr *structure.WriteError
	assert.ErrorAs(t, err, &werr)

	assert.Equal(t, []string{"a/1", "a/2"}, parseStructure(t, filepath.Join(out, "a", "structure.xml")))
	assert.Equal(t, []string{"c/1", "c/2"}, parseStructure(t, filepath.Join(out, "c", "structure.xml")))
}

func TestRun_OutputDirInsideRoot(t *testing.T) {
	root := t.TempDir()
	testutil.GenerateCompound(t, root, "book", "2", "1")
	// A part sharing the output entry's name is still a part.
	testutil.GenerateCompound(t, root, "map", "out", "1")

	out := filepath.Join(root, "out", "structures")
	eng := New(Config{Root: root, Writer: &structure.Writer{OutputDir: out}, Logger: testutil.NewTestLogger(t)})

	first, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Count(StatusWritten))

	for range 2 {
		report, err := eng.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, report.Results, 2)
		assert.Equal(t, "book", report.Results[0].Compound)
		assert.Equal(t, "map", report.Results[1].Compound)
		assert.Equal(t, 2, report.Count(StatusUnchanged))
	}

	assert.Equal(t, []string{"map/1", "map/out"}, parseStructure(t, filepath.Join(out, "map", "structure.xml")))
	assert.NoFileExists(t, filepath.Join(out, "out", "structure.xml"))
}

func TestRun_DryRun(t *testing.T) {
	root := t.TempDir()
	testutil.GenerateCompound(t, root, "book", "third", "first", "second")

	var buf bytes.Buffer
	report, err := New(Config{Root: root, DryRun: true, DryRunOutput: &buf}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(StatusPlanned))

	assert.NoFileExists(t, filepath.Join(root, "book", "structure.xml"))
	assert.Contains(t, buf.String(), filepath.Join(root, "book", "structure.xml"))
	assert.Regexp(t, `(?s)book/first.*book/second.*book/third`, buf.String())
}

func TestPlan_UsesComparator(t *testing.T) {
	root := t.TempDir()
	testutil.GenerateCompound(t, root, "book", "first", "apple", "2")

	report, err := New(Config{
		Root:       root,
		Comparator: natsort.New(natsort.WithMixedOrder(natsort.MixedLexical)),
	}).Plan(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	assert.Equal(t, []string{"2", "apple", "first"}, report.Results[0].Structure.Parts())
	assert.NoFileExists(t, filepath.Join(root, "book", "structure.xml"))
}

func TestRun_Cancelled(t *testing.T) {
	root := setupRoot(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Root: root}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
