package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultsValidate(t *testing.T) {
	c := Defaults()
	require.NoError(t, c.Validate())
	assert.Equal(t, "genomes.txt", c.GenomesList)
	assert.Equal(t, "transcriptomes.txt", c.TranscriptomesList)
	assert.Equal(t, ExtractorBedtools, c.Extractor)
}

func TestFromLookup(t *testing.T) {
	c, err := FromLookup(lookupMap(map[string]string{
		"COIEXTRACT_THREADS":   "4",
		"COIEXTRACT_TIMEOUT":   "30s",
		"COIEXTRACT_EXTRACTOR": "native",
		"COIEXTRACT_OUT_DIR":   "/tmp/out",
		"NO_COLOR":             "1",
	}))
	require.NoError(t, err)
	assert.Equal(t, 4, c.Threads)
	assert.Equal(t, 30*time.Second, c.Timeout)
	assert.Equal(t, ExtractorNative, c.Extractor)
	assert.Equal(t, "/tmp/out", c.OutDir)
	assert.True(t, c.NoColor)
}

func TestFromLookupBadValues(t *testing.T) {
	_, err := FromLookup(lookupMap(map[string]string{
		"COIEXTRACT_THREADS": "many",
		"COIEXTRACT_TIMEOUT": "soon",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COIEXTRACT_THREADS")
	assert.Contains(t, err.Error(), "COIEXTRACT_TIMEOUT")
}

func TestValidate(t *testing.T) {
	c := Defaults()
	c.Extractor = "samtools"
	assert.ErrorContains(t, c.Validate(), "--extractor")

	c = Defaults()
	c.Threads = -1
	assert.ErrorContains(t, c.Validate(), "--threads")

	c = Defaults()
	c.Timeout = 0
	assert.ErrorContains(t, c.Validate(), "--timeout")

	c = Defaults()
	c.LogLevel = "verbose"
	assert.ErrorContains(t, c.Validate(), "--log-level")

	c = Defaults()
	c.Bedtools = ""
	assert.ErrorContains(t, c.Validate(), "--bedtools")
	c.Extractor = ExtractorNative
	assert.NoError(t, c.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	fn := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(fn, []byte("COIEXTRACT_HITS_DIR=/blast\nCOIEXTRACT_OUT_DIR=/from-file\n"), 0o644))
	// t.Setenv restores the previous state after the test; unset so the
	// .env value can apply.
	t.Setenv("COIEXTRACT_HITS_DIR", "")
	require.NoError(t, os.Unsetenv("COIEXTRACT_HITS_DIR"))
	// An already-set variable wins over the file.
	t.Setenv("COIEXTRACT_OUT_DIR", "/from-env")

	c, err := Load(fn)
	require.NoError(t, err)
	assert.Equal(t, "/blast", c.HitsDir)
	assert.Equal(t, "/from-env", c.OutDir)
}

func TestLoadMissingDotEnv(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}
