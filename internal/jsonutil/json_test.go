package jsonutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePretty(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestWriteFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "s.json")
	require.NoError(t, WriteFile(fn, nil, []int{1}))
	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, "[\n  1\n]\n", string(b))

	var buf bytes.Buffer
	require.NoError(t, WriteFile("-", &buf, "x"))
	assert.Equal(t, "\"x\"\n", buf.String())
}
