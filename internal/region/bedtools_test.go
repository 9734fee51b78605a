package region

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBedtools writes a shell script standing in for bedtools. It records
// the BED path it was given in $dir/bedpath and then runs body.
func fakeBedtools(t *testing.T, body string) (exe, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	dir = t.TempDir()
	exe = filepath.Join(dir, "bedtools")
	script := "#!/bin/sh\n" +
		"# args: getfasta -fi ASM -bed BED -s\n" +
		"printf '%s' \"$5\" > \"" + filepath.Join(dir, "bedpath") + "\"\n" +
		body + "\n"
	require.NoError(t, os.WriteFile(exe, []byte(script), 0o755))
	return exe, dir
}

func bedPathSeen(t *testing.T, dir string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, "bedpath"))
	require.NoError(t, err)
	return string(b)
}

func TestBedtoolsSuccessRemovesBED(t *testing.T) {
	exe, dir := fakeBedtools(t, `read c s e n sc st < "$5"; printf '>%s:%s-%s(%s)\nACGT\n' "$c" "$s" "$e" "$st"`)
	tmp := t.TempDir()

	out, err := Bedtools{Path: exe, TempDir: tmp}.Extract(context.Background(), Build("chr1", 100, 50, -2), "asm.fa")
	require.NoError(t, err)
	assert.Equal(t, ">chr1:49-100(-)\nACGT\n", out)

	bed := bedPathSeen(t, dir)
	assert.Equal(t, tmp, filepath.Dir(bed))
	assert.NoFileExists(t, bed)
}

func TestBedtoolsFailureRemovesBED(t *testing.T) {
	exe, dir := fakeBedtools(t, `echo "Error: sequence file not found" >&2; exit 1`)
	_, err := Bedtools{Path: exe, TempDir: t.TempDir()}.Extract(context.Background(), Build("chr1", 1, 9, 1), "asm.fa")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtractionFailed)
	assert.Contains(t, err.Error(), "sequence file not found")
	assert.NoFileExists(t, bedPathSeen(t, dir))
}

func TestBedtoolsEmptyOutput(t *testing.T) {
	exe, _ := fakeBedtools(t, `exit 0`)
	_, err := Bedtools{Path: exe, TempDir: t.TempDir()}.Extract(context.Background(), Build("chr1", 1, 9, 1), "asm.fa")
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestBedtoolsTimeout(t *testing.T) {
	exe, dir := fakeBedtools(t, `exec sleep 10`)
	start := time.Now()
	_, err := Bedtools{Path: exe, TempDir: t.TempDir(), Timeout: 200 * time.Millisecond}.
		Extract(context.Background(), Build("chr1", 1, 9, 1), "asm.fa")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtractionFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.NoFileExists(t, bedPathSeen(t, dir))
}

func TestBedtoolsMissingExecutable(t *testing.T) {
	_, err := Bedtools{Path: filepath.Join(t.TempDir(), "no-bedtools")}.
		Extract(context.Background(), Build("chr1", 1, 9, 1), "asm.fa")
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestBedtoolsRejectsInvalidRegion(t *testing.T) {
	_, err := Bedtools{Path: "unused"}.Extract(context.Background(), Descriptor{}, "asm.fa")
	assert.ErrorIs(t, err, ErrExtractionFailed)
}
