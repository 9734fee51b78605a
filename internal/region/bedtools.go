package region

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Bedtools extracts regions with `bedtools getfasta -s`.
type Bedtools struct {
	// Path is the bedtools executable; "bedtools" when empty.
	Path string
	// Timeout bounds one invocation; DefaultTimeout when zero.
	Timeout time.Duration
	// TempDir holds the per-call BED file; os.TempDir() when empty.
	TempDir string
}

// Extract writes d to a temporary BED file, runs bedtools on it, and removes
// the file before returning on every path.
func (b Bedtools) Extract(ctx context.Context, d Descriptor, assemblyPath string) (string, error) {
	if !d.Valid() {
		return "", failed(d, errors.New("invalid region"))
	}
	bed, err := writeBED(b.TempDir, d)
	if err != nil {
		return "", failed(d, err)
	}
	defer os.Remove(bed)

	ctx, cancel := withTimeout(ctx, b.Timeout)
	defer cancel()

	exe := b.Path
	if exe == "" {
		exe = "bedtools"
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, exe, "getfasta", "-fi", assemblyPath, "-bed", bed, "-s")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	runErr := cmd.Run()
	if err := checkCtx(ctx, d, b.timeout()); err != nil {
		return "", err
	}
	if runErr != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", failed(d, fmt.Errorf("%s getfasta: %w: %s", exe, runErr, msg))
		}
		return "", failed(d, fmt.Errorf("%s getfasta: %w", exe, runErr))
	}
	out := stdout.String()
	if strings.TrimSpace(out) == "" {
		return "", failed(d, errors.New("bedtools returned no sequence"))
	}
	return out, nil
}

func (b Bedtools) timeout() time.Duration {
	if b.Timeout <= 0 {
		return DefaultTimeout
	}
	return b.Timeout
}

func writeBED(dir string, d Descriptor) (string, error) {
	fh, err := os.CreateTemp(dir, "coiextract-*.bed")
	if err != nil {
		return "", err
	}
	name := fh.Name()
	if _, err := fh.WriteString(d.BEDLine() + "\n"); err != nil {
		_ = fh.Close()
		_ = os.Remove(name)
		return "", err
	}
	if err := fh.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}
