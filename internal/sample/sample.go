// Package sample loads the genome / transcriptome list files into an
// immutable registry keyed by sample id.
package sample

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Mode says how a sample's assembly was produced; it decides the hit
// selection rule.
type Mode string

const (
	ModeGenome        Mode = "genome"
	ModeTranscriptome Mode = "transcriptome"
)

// Sample is one assembly to process.
type Sample struct {
	ID   string
	Path string
	Mode Mode
}

// ErrDuplicateID is returned when two different paths map to the same id.
var ErrDuplicateID = errors.New("duplicate sample id")

// knownExts are stripped (one of them) after an optional .gz.
var knownExts = []string{".fasta", ".fas", ".fna", ".fa"}

// DeriveID strips the directory and a known FASTA extension from path.
//
//	DeriveID("/data/asm/Apis_mellifera.fna.gz") == "Apis_mellifera"
func DeriveID(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	for _, ext := range knownExts {
		if strings.HasSuffix(base, ext) && len(base) > len(ext) {
			return strings.TrimSuffix(base, ext)
		}
	}
	return base
}

// Registry maps sample id to Sample. It is built once and only read after.
type Registry struct {
	byID map[string]Sample
	ids  []string
}

// Load reads both list files. A list file that does not exist contributes
// no samples; any other read error is returned.
func Load(genomesPath, transcriptomesPath string) (*Registry, error) {
	b := newBuilder()
	for _, src := range []struct {
		path string
		mode Mode
	}{
		{genomesPath, ModeGenome},
		{transcriptomesPath, ModeTranscriptome},
	} {
		if src.path == "" {
			continue
		}
		paths, err := readList(src.path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if err := b.add(p, src.mode); err != nil {
				return nil, fmt.Errorf("%s: %w", src.path, err)
			}
		}
	}
	return b.build(), nil
}

// New builds a registry directly from samples; ids must be unique.
func New(samples ...Sample) (*Registry, error) {
	b := newBuilder()
	for _, s := range samples {
		if _, ok := b.byID[s.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, s.ID)
		}
		b.byID[s.ID] = s
	}
	return b.build(), nil
}

// Get returns the sample with the given id.
func (r *Registry) Get(id string) (Sample, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// IDs returns all sample ids in sorted order.
func (r *Registry) IDs() []string { return append([]string(nil), r.ids...) }

// Samples returns all samples sorted by id.
func (r *Registry) Samples() []Sample {
	out := make([]Sample, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out
}

// ByMode returns the samples of one mode, sorted by id.
func (r *Registry) ByMode(m Mode) []Sample {
	var out []Sample
	for _, id := range r.ids {
		if s := r.byID[id]; s.Mode == m {
			out = append(out, s)
		}
	}
	return out
}

// Len is the number of registered samples.
func (r *Registry) Len() int { return len(r.ids) }

type builder struct {
	byID map[string]Sample
}

func newBuilder() *builder { return &builder{byID: map[string]Sample{}} }

func (b *builder) add(path string, mode Mode) error {
	s := Sample{ID: DeriveID(path), Path: path, Mode: mode}
	if prev, ok := b.byID[s.ID]; ok {
		if prev.Path == path && prev.Mode == mode {
			return nil
		}
		return fmt.Errorf("%w: %q from %s and %s", ErrDuplicateID, s.ID, prev.Path, path)
	}
	b.byID[s.ID] = s
	return nil
}

func (b *builder) build() *Registry {
	ids := make([]string, 0, len(b.byID))
	for id := range b.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return &Registry{byID: b.byID, ids: ids}
}

func readList(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return parseList(fh)
}

// parseList returns the non-blank, non-comment lines of r, trimmed.
func parseList(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
