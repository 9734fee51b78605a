// Package headerindex records the assembly headers of genome-mode samples so
// a mitochondrial contig can be recognised before hit selection.
package headerindex

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"coiextract/internal/fasta"
	"coiextract/internal/sample"
)

// MitoMarker is the case-sensitive substring that flags a header as
// mitochondrial.
const MitoMarker = "mito"

// MitoContig returns the first token of the first header containing
// MitoMarker.
func MitoContig(headers []string) (string, bool) {
	for _, h := range headers {
		if !strings.Contains(h, MitoMarker) {
			continue
		}
		if f := strings.Fields(h); len(f) > 0 {
			return f[0], true
		}
	}
	return "", false
}

// HeaderFunc reads the headers of one assembly.
type HeaderFunc func(ctx context.Context, path string) ([]string, error)

// Index maps genome sample id to its raw headers. Read-only once built.
// A genome whose assembly could not be read keeps its error instead.
type Index struct {
	headers map[string][]string
	errs    map[string]error
}

// Build scans the assemblies of every genome-mode sample in reg using up to
// threads goroutines (0 = all CPUs). Transcriptome samples are never read.
// A failed read only affects its own sample (see Err); Build itself fails
// only when ctx is done.
func Build(ctx context.Context, reg *sample.Registry, threads int) (*Index, error) {
	return BuildWith(ctx, reg, threads, fasta.Headers)
}

// BuildWith is Build with a custom header reader.
func BuildWith(ctx context.Context, reg *sample.Registry, threads int, read HeaderFunc) (*Index, error) {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	var (
		mu  sync.Mutex
		idx = &Index{headers: map[string][]string{}, errs: map[string]error{}}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for _, s := range reg.ByMode(sample.ModeGenome) {
		s := s
		g.Go(func() error {
			hdrs, err := read(gctx, s.Path)
			if cerr := gctx.Err(); cerr != nil {
				return cerr
			}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				idx.errs[s.ID] = fmt.Errorf("headers of %s: %w", s.Path, err)
				return nil
			}
			idx.headers[s.ID] = hdrs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return idx, nil
}

// FromMap wraps precomputed headers.
func FromMap(m map[string][]string) *Index {
	cp := make(map[string][]string, len(m))
	for k, v := range m {
		cp[k] = append([]string(nil), v...)
	}
	return &Index{headers: cp, errs: map[string]error{}}
}

// Err is the read error recorded for a genome sample, if any.
func (x *Index) Err(id string) error { return x.errs[id] }

// Headers returns the indexed headers for a genome sample.
func (x *Index) Headers(id string) ([]string, bool) {
	h, ok := x.headers[id]
	return h, ok
}

// MitoContig looks up the mitochondrial contig of a genome sample.
func (x *Index) MitoContig(id string) (string, bool) {
	h, ok := x.headers[id]
	if !ok {
		return "", false
	}
	return MitoContig(h)
}

// Len is the number of indexed samples.
func (x *Index) Len() int { return len(x.headers) }
