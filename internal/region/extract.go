package region

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExtractionFailed covers every way of not getting a sequence back:
// tool errors, timeouts, and empty or unusable output.
var ErrExtractionFailed = errors.New("extraction failed")

// DefaultTimeout bounds a single extraction when none is configured.
const DefaultTimeout = 5 * time.Minute

// Extractor fetches the sequence of a region from an assembly and returns
// it as FASTA text, reverse-complemented when the strand is '-'.
type Extractor interface {
	Extract(ctx context.Context, d Descriptor, assemblyPath string) (string, error)
}

func failed(d Descriptor, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrExtractionFailed, d, err)
}

func withTimeout(ctx context.Context, t time.Duration) (context.Context, context.CancelFunc) {
	if t <= 0 {
		t = DefaultTimeout
	}
	return context.WithTimeout(ctx, t)
}

// checkCtx reports a timeout or cancellation as an extraction failure.
func checkCtx(ctx context.Context, d Descriptor, timeout time.Duration) error {
	switch err := ctx.Err(); {
	case errors.Is(err, context.DeadlineExceeded):
		return failed(d, fmt.Errorf("timed out after %s: %w", timeout, err))
	case err != nil:
		return failed(d, err)
	}
	return nil
}
