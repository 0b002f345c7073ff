package natsort

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shuffled(t *testing.T, in []string) []string {
	t.Helper()
	out := slices.Clone(in)
	r := rand.New(rand.NewSource(42))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func TestSort_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "numeric",
			input: []string{"5", "3", "1", "4", "2"},
			want:  []string{"1", "2", "3", "4", "5"},
		},
		{
			name:  "numeric past nine",
			input: []string{"1", "10", "11", "2", "3", "4", "5", "6", "7", "8", "9"},
			want:  []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"},
		},
		{
			name:  "letters",
			input: []string{"H", "A", "C"},
			want:  []string{"A", "C", "H"},
		},
		{
			name:  "letters ignore case",
			input: []string{"c", "B", "a"},
			want:  []string{"a", "B", "c"},
		},
		{
			name:  "ordinals",
			input: []string{"third", "first", "second"},
			want:  []string{"first", "second", "third"},
		},
		{
			name:  "eighth before ninth",
			input: []string{"ninth", "eighth"},
			want:  []string{"eighth", "ninth"},
		},
		{
			name: "ordinals in directory listing order",
			input: []string{
				"eighth", "eleventh", "fifth", "first", "fourth", "ninth",
				"second", "seventh", "sixth", "tenth", "third",
			},
			want: []string{
				"first", "second", "third", "fourth", "fifth", "sixth",
				"seventh", "eighth", "ninth", "tenth", "eleventh",
			},
		},
		{
			name:  "compound ordinals",
			input: []string{"twenty-first", "twentieth", "Twenty_Second", "nineteenth"},
			want:  []string{"nineteenth", "twentieth", "twenty-first", "Twenty_Second"},
		},
		{
			name:  "leading zeros",
			input: []string{"010", "9", "01", "1"},
			want:  []string{"01", "1", "9", "010"},
		},
		{
			name:  "huge integers",
			input: []string{"100000000000000000000000000000", "99999999999999999999999999999"},
			want:  []string{"99999999999999999999999999999", "100000000000000000000000000000"},
		},
		{
			name:  "case only difference",
			input: []string{"a", "A"},
			want:  []string{"A", "a"},
		},
		{
			name:  "mixed kinds by kind",
			input: []string{"cover", "2", "first", "10", "back"},
			want:  []string{"2", "10", "first", "back", "cover"},
		},
		{
			name:  "empty input",
			input: []string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Clone(tt.input)
			Sort(got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSort_AnyInputOrder(t *testing.T) {
	sets := [][]string{
		{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"},
		{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"},
		{"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth", "eleventh"},
	}
	for _, want := range sets {
		for i := 0; i < 20; i++ {
			in := shuffled(t, want)
			slices.Reverse(in[:i%len(in)])
			assert.Equal(t, want, Default.Sorted(in))
		}
	}
}

func TestSort_IsPermutation(t *testing.T) {
	in := []string{"7", "seventh", "Seventh", "g", "G", "07", "", "ünïcödé", "\xff\xfe", "x y", "first"}
	got := Default.Sorted(in)

	require.Len(t, got, len(in))
	assert.ElementsMatch(t, in, got)
}

func TestSort_Idempotent(t *testing.T) {
	in := []string{"b", "10", "third", "A", "2", "first", "c"}
	once := Default.Sorted(in)
	twice := Default.Sorted(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, once, Default.Sorted(shuffled(t, in)))
}

func TestCompare_TotalOrder(t *testing.T) {
	names := []string{
		"", "0", "00", "1", "01", "2", "9", "10", "1a", "a1",
		"first", "First", "second", "tenth", "third", "tf", "te",
		"A", "a", "b", "B", "Z", "eighth", "ninth", "fig", "-3", "\xff",
	}
	c := New()
	for _, a := range names {
		assert.Equal(t, 0, c.Compare(a, a), "reflexive %q", a)
		for _, b := range names {
			if a == b {
				continue
			}
			ab, ba := c.Compare(a, b), c.Compare(b, a)
			assert.NotZero(t, ab, "%q vs %q must not tie", a, b)
			assert.Equal(t, -ab, ba, "antisymmetric %q %q", a, b)
			for _, x := range names {
				if ab < 0 && c.Compare(b, x) < 0 {
					assert.Negative(t, c.Compare(a, x), "transitive %q < %q < %q", a, b, x)
				}
			}
		}
	}
}

func TestCompare_MixedLexical(t *testing.T) {
	c := New(WithMixedOrder(MixedLexical))

	// Same-kind pairs keep their domain order.
	assert.Negative(t, c.Compare("2", "10"))
	assert.Negative(t, c.Compare("eighth", "ninth"))
	// Mixed pairs fall back to raw bytes.
	assert.Negative(t, c.Compare("10", "first"))
	assert.Positive(t, c.Compare("second", "2"))
	assert.Negative(t, c.Compare("apple", "first"))

	// The cycle the default order avoids.
	assert.Negative(t, c.Compare("9", "10"))
	assert.Negative(t, c.Compare("10", "1a"))
	assert.Negative(t, c.Compare("1a", "9"))
	assert.Positive(t, Default.Compare("1a", "9"), "by kind, integers come first")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in     string
		kind   Kind
		rank   int
		digits string
	}{
		{in: "42", kind: KindInteger, digits: "42"},
		{in: "007", kind: KindInteger, digits: "7"},
		{in: "000", kind: KindInteger, digits: "0"},
		{in: "first", kind: KindOrdinal, rank: 1},
		{in: "ELEVENTH", kind: KindOrdinal, rank: 11},
		{in: "ninety-ninth", kind: KindOrdinal, rank: 99},
		{in: "hundredth", kind: KindOrdinal, rank: 100},
		{in: "A", kind: KindString},
		{in: "", kind: KindString},
		{in: "-3", kind: KindString},
		{in: "1.5", kind: KindString},
		{in: "firsts", kind: KindString},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k := Classify(tt.in)
			assert.Equal(t, tt.kind, k.Kind)
			assert.Equal(t, tt.in, k.Raw)
			assert.Equal(t, tt.rank, k.Rank)
			assert.Equal(t, tt.digits, k.Digits)
		})
	}
}

func TestWithOrdinals(t *testing.T) {
	c := New(WithOrdinals(map[string]int{
		"Prologue": 0, // ignored
		"last":     1000,
		"première": 1,
		"  ":       3, // ignored
	}))

	assert.Equal(t, KindOrdinal, c.Classify("Last").Kind)
	assert.Equal(t, KindString, c.Classify("prologue").Kind)
	assert.Equal(t, []string{"first", "première", "second", "last"},
		c.Sorted([]string{"last", "second", "première", "first"}))

	// The default vocabulary is untouched.
	assert.Equal(t, KindString, Classify("last").Kind)
}

func TestParseMixedOrder(t *testing.T) {
	m, err := ParseMixedOrder("")
	require.NoError(t, err)
	assert.Equal(t, MixedByKind, m)

	m, err = ParseMixedOrder("Lexical")
	require.NoError(t, err)
	assert.Equal(t, MixedLexical, m)
	assert.Equal(t, "lexical", m.String())

	_, err = ParseMixedOrder("random")
	assert.Error(t, err)
}

func TestEnglishOrdinals_Copy(t *testing.T) {
	m := EnglishOrdinals()
	assert.Equal(t, 8, m["eighth"])
	assert.Equal(t, 21, m["twenty-first"])
	assert.Len(t, m, 100)

	m["eighth"] = 99
	assert.Equal(t, 8, EnglishOrdinals()["eighth"])
}
