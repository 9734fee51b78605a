package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"coiextract/internal/region"
)

func TestStopCodonWritesNothing(t *testing.T) {
	dir := t.TempDir()
	v := New(dir, zaptest.NewLogger(t))

	// ATG TAA AAA -> M*K under table 5
	res, err := v.ValidateAndPersist("S1", ">chrM:0-9(+)\nATGTAAAAA\n")
	require.NoError(t, err)
	assert.Equal(t, StatusStopCodon, res.Status)
	assert.Equal(t, "M*K", res.Protein)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSuccessWritesBoth(t *testing.T) {
	dir := t.TempDir()
	v := New(dir, nil)

	// ATG AAA CTT -> MKL
	res, err := v.ValidateAndPersist("S1", ">chrM:0-9(+)\nATGAAACTT\n")
	require.NoError(t, err)
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "MKL", res.Protein)
	assert.Equal(t, filepath.Join(dir, "S1_COI_nt.fasta"), res.Outputs.NucleotidePath)

	nt, err := os.ReadFile(res.Outputs.NucleotidePath)
	require.NoError(t, err)
	aa, err := os.ReadFile(res.Outputs.ProteinPath)
	require.NoError(t, err)
	assert.Equal(t, ">S1 chrM:0-9(+)\nATGAAACTT\n", string(nt))
	assert.Equal(t, ">S1 chrM:0-9(+)\nMKL\n", string(aa))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestTable5NotStandard(t *testing.T) {
	// TGA is a stop under the standard code but W under table 5.
	v := New(t.TempDir(), nil)
	res, err := v.ValidateAndPersist("S2", ">r\nATGTGAAAA\n")
	require.NoError(t, err)
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "MWK", res.Protein)
}

func TestRerunIsByteIdentical(t *testing.T) {
	dir := t.TempDir()
	v := New(dir, nil)
	in := ">chrM:10-73(-)\nATGAAACTTATGAAACTTATGAAACTTATGAAACTTATGAAACTTATGAAACTTATGAAACTT\n"

	first, err := v.ValidateAndPersist("S3", in)
	require.NoError(t, err)
	a1, _ := os.ReadFile(first.Outputs.NucleotidePath)
	p1, _ := os.ReadFile(first.Outputs.ProteinPath)

	second, err := v.ValidateAndPersist("S3", in)
	require.NoError(t, err)
	a2, _ := os.ReadFile(second.Outputs.NucleotidePath)
	p2, _ := os.ReadFile(second.Outputs.ProteinPath)

	assert.Equal(t, a1, a2)
	assert.Equal(t, p1, p2)
}

func TestBadExtractionText(t *testing.T) {
	v := New(t.TempDir(), nil)
	for name, in := range map[string]string{
		"empty":       "",
		"no sequence": ">r\n",
		"two records": ">a\nATG\n>b\nATG\n",
		"no header":   "ATGAAA\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.ValidateAndPersist("S", in)
			assert.ErrorIs(t, err, region.ErrExtractionFailed)
		})
	}
}
