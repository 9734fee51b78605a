package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTranslate(t *testing.T, seq string, tbl Table) string {
	t.Helper()
	p, err := Sequence([]byte(seq), tbl)
	require.NoError(t, err)
	return p
}

func TestTableSizes(t *testing.T) {
	for _, tbl := range []Table{Standard, InvertebrateMitochondrial} {
		m, err := Lookup(tbl)
		require.NoError(t, err)
		assert.Len(t, m, 64)
	}
	_, err := Lookup(Table(99))
	assert.Error(t, err)
}

func TestTable5Differences(t *testing.T) {
	cases := map[string][2]string{
		"TGA": {"*", "W"},
		"ATA": {"I", "M"},
		"AGA": {"R", "S"},
		"AGG": {"R", "S"},
		"TAA": {"*", "*"},
		"TAG": {"*", "*"},
		"ATG": {"M", "M"},
	}
	for c, want := range cases {
		assert.Equal(t, want[0], mustTranslate(t, c, Standard), "standard %s", c)
		assert.Equal(t, want[1], mustTranslate(t, c, InvertebrateMitochondrial), "table5 %s", c)
	}
}

func TestSequence(t *testing.T) {
	assert.Equal(t, "MKL", mustTranslate(t, "ATGAAACTT", InvertebrateMitochondrial))
	assert.Equal(t, "M*K", mustTranslate(t, "ATGTAAAAA", InvertebrateMitochondrial))
	assert.Equal(t, "MK", mustTranslate(t, "atgaaaCT", InvertebrateMitochondrial), "partial codon dropped")
	assert.Equal(t, "M", mustTranslate(t, "AUG", InvertebrateMitochondrial))
}

func TestAmbiguousCodons(t *testing.T) {
	// GGN is glycine whatever N is; NNN is not resolvable.
	assert.Equal(t, "G", mustTranslate(t, "GGN", Standard))
	assert.Equal(t, "X", mustTranslate(t, "NNN", Standard))
	// TGR: TGA (W in table 5) / TGG (W) agree only under table 5.
	assert.Equal(t, "W", mustTranslate(t, "TGR", InvertebrateMitochondrial))
	assert.Equal(t, "X", mustTranslate(t, "TGR", Standard))
	assert.Equal(t, "X", mustTranslate(t, "A-G", Standard))
}

func TestHasStop(t *testing.T) {
	assert.True(t, HasStop("M*K"))
	assert.True(t, HasStop("MK*"))
	assert.False(t, HasStop("MKL"))
}
