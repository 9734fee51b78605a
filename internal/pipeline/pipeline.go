// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"

	"coiextract/internal/headerindex"
	"coiextract/internal/hits"
	"coiextract/internal/region"
	"coiextract/internal/sample"
	"coiextract/internal/validate"
)

// Config controls the run.
type Config struct {
	Threads int    // worker goroutines; <=0 means all CPUs
	HitsDir string // directory holding <id>_tblastn.tsv
	Rank    int    // 0 = best hit
}

// Persister validates extracted FASTA text and writes accepted outputs.
type Persister interface {
	ValidateAndPersist(sampleID, fastaText string) (validate.Result, error)
}

// Deps are the collaborators a run needs. LoadTable defaults to
// hits.LoadTable and Log to a no-op logger.
type Deps struct {
	Registry  *sample.Registry
	Headers   *headerindex.Index
	Extractor region.Extractor
	Persister Persister
	LoadTable func(path string) ([]hits.Record, error)
	Log       *zap.Logger
}

// Run processes every sample in deps.Registry and returns one Outcome per
// sample, sorted by sample id. Per-sample failures are reported in the
// outcomes; the returned error is non-nil only when ctx ends the run early,
// in which case the outcomes gathered so far are still returned.
func Run(ctx context.Context, cfg Config, deps Deps) ([]Outcome, error) {
	if cfg.Threads < 1 {
		cfg.Threads = runtime.NumCPU()
	}
	if deps.LoadTable == nil {
		deps.LoadTable = hits.LoadTable
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Headers == nil {
		deps.Headers = headerindex.FromMap(nil)
	}

	samples := deps.Registry.Samples()
	jobs := make(chan sample.Sample, cfg.Threads*2)
	results := make(chan Outcome, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case s, ok := <-jobs:
					if !ok {
						return
					}
					o := process(ctx, cfg, deps, s)
					select {
					case results <- o:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		out []Outcome
		cwg sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for o := range results {
			logOutcome(deps.Log, o)
			out = append(out, o)
		}
	}()

	// Feed work
feed:
	for _, s := range samples {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- s:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	sort.Slice(out, func(i, j int) bool { return out[i].SampleID < out[j].SampleID })
	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func process(ctx context.Context, cfg Config, deps Deps, s sample.Sample) Outcome {
	o := Outcome{SampleID: s.ID, Mode: s.Mode}
	fail := func(err error) Outcome {
		o.Status = StatusFailed
		o.Err = err
		return o
	}

	table, err := deps.LoadTable(hits.TablePath(cfg.HitsDir, s.ID))
	if err != nil {
		return fail(err)
	}

	// Only genome assemblies are looked up in the header index.
	if s.Mode == sample.ModeGenome {
		if herr := deps.Headers.Err(s.ID); herr != nil {
			return fail(fmt.Errorf("%w: %w", ErrHeaderIndex, herr))
		}
		if _, ok := deps.Headers.Headers(s.ID); !ok {
			return fail(fmt.Errorf("%w: %s not indexed", ErrHeaderIndex, s.ID))
		}
		o.MitoContig, _ = deps.Headers.MitoContig(s.ID)
	}

	hit, err := hits.SelectBest(table, s.Mode, o.MitoContig, cfg.Rank)
	if err != nil {
		return fail(err)
	}
	o.Hit = &hit

	d := region.Build(hit.SequenceID, hit.HitStart, hit.HitEnd, hit.Frame)
	o.Region = &d

	text, err := deps.Extractor.Extract(ctx, d, s.Path)
	if err != nil {
		return fail(err)
	}

	res, err := deps.Persister.ValidateAndPersist(s.ID, text)
	if err != nil {
		return fail(err)
	}
	if res.Status == validate.StatusStopCodon {
		o.Status = StatusStopCodon
		return o
	}
	o.Status = StatusOK
	o.Outputs = res.Outputs
	return o
}

func logOutcome(log *zap.Logger, o Outcome) {
	fields := []zap.Field{zap.String("sample", o.SampleID), zap.String("mode", string(o.Mode))}
	if o.MitoContig != "" {
		fields = append(fields, zap.String("mito_contig", o.MitoContig))
	}
	if o.Region != nil {
		fields = append(fields, zap.Stringer("region", o.Region))
	}
	if o.Hit != nil {
		fields = append(fields, zap.Float64("score", o.Hit.Score))
	}
	switch o.Status {
	case StatusOK:
		log.Info("sample extracted", append(fields, zap.String("nt", o.Outputs.NucleotidePath))...)
	case StatusStopCodon:
		log.Warn("extracted CDS has a stop codon, skipping", fields...)
	default:
		log.Error("sample failed", append(fields, zap.String("kind", o.Kind()), zap.Error(o.Err))...)
	}
}
