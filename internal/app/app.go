// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"coiextract/internal/cli"
	"coiextract/internal/config"
	"coiextract/internal/headerindex"
	"coiextract/internal/jsonutil"
	"coiextract/internal/ledger"
	"coiextract/internal/logging"
	"coiextract/internal/pipeline"
	"coiextract/internal/region"
	"coiextract/internal/report"
	"coiextract/internal/sample"
	"coiextract/internal/validate"
	"coiextract/internal/version"
	"coiextract/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitSamples   = 1 // at least one sample produced no outputs
	ExitUsage     = 2
	ExitIO        = 3
	ExitCancelled = 130
)

// EnvFileVar names the variable pointing at the dotenv file.
const EnvFileVar = config.EnvPrefix + "ENV_FILE"

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	envFile := ".env"
	if v, ok := os.LookupEnv(EnvFileVar); ok {
		envFile = v
	}
	base, err := config.Load(envFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	fs := cli.NewFlagSet("coiextract")
	fs.SetOutput(io.Discard)
	opts, err := cli.ParseArgs(fs, argv, base)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flush(outw, stderr, ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return ExitUsage
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "coiextract version %s\n", version.Version)
		return flush(outw, stderr, ExitOK)
	}

	log, closeLog, err := logging.New(logging.Options{
		Level:    opts.LogLevel,
		FilePath: opts.LogFile,
		Console:  stderr,
	})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	defer func() { _ = closeLog() }()

	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))
	started := time.Now()

	outs, code := execute(parent, opts.Config, log)
	if code != ExitOK {
		return code
	}

	sum := report.Summarize(runID, outs)
	log.Info("run finished",
		zap.Int("succeeded", len(sum.Succeeded)),
		zap.Int("stop_codon", len(sum.StopCodon)),
		zap.Int("failed", len(sum.Failed)),
		zap.Duration("elapsed", time.Since(started)),
	)

	if opts.Ledger != "" {
		if err := saveLedger(parent, opts.Ledger, runID, started, sum, outs); err != nil {
			log.Error("ledger write failed", zap.String("path", opts.Ledger), zap.Error(err))
			return ExitIO
		}
	}
	if opts.SummaryJSON != "" {
		if err := jsonutil.WriteFile(opts.SummaryJSON, outw, sum.API(version.Version)); err != nil {
			if writers.IsBrokenPipe(err) {
				return ExitOK
			}
			log.Error("summary write failed", zap.String("path", opts.SummaryJSON), zap.Error(err))
			return ExitIO
		}
	}
	// A JSON summary on stdout replaces the text one.
	if !opts.Quiet && opts.SummaryJSON != "-" {
		if err := report.WriteText(outw, sum, opts.NoColor); err != nil {
			if writers.IsBrokenPipe(err) {
				return ExitOK
			}
			_, _ = fmt.Fprintln(stderr, err)
			return ExitIO
		}
	}

	if !sum.Clean() {
		return flush(outw, stderr, ExitSamples)
	}
	return flush(outw, stderr, ExitOK)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// execute loads samples, indexes genome headers, and runs the pipeline.
func execute(ctx context.Context, cfg config.Config, log *zap.Logger) ([]pipeline.Outcome, int) {
	reg, err := sample.Load(cfg.GenomesList, cfg.TranscriptomesList)
	if err != nil {
		log.Error("loading sample lists failed", zap.Error(err))
		return nil, ExitIO
	}
	log.Info("samples registered",
		zap.Int("genomes", len(reg.ByMode(sample.ModeGenome))),
		zap.Int("transcriptomes", len(reg.ByMode(sample.ModeTranscriptome))),
	)

	log.Info("parsing genome headers")
	idx, err := headerindex.Build(ctx, reg, cfg.Threads)
	if err != nil {
		log.Error("header indexing stopped", zap.Error(err))
		return nil, ExitCancelled
	}
	for _, s := range reg.ByMode(sample.ModeGenome) {
		if c, ok := idx.MitoContig(s.ID); ok {
			log.Debug("mitochondrial contig", zap.String("sample", s.ID), zap.String("contig", c))
		}
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		log.Error("creating output directory failed", zap.String("path", cfg.OutDir), zap.Error(err))
		return nil, ExitIO
	}

	outs, err := pipeline.Run(ctx,
		pipeline.Config{Threads: cfg.Threads, HitsDir: cfg.HitsDir, Rank: cfg.Rank},
		pipeline.Deps{
			Registry:  reg,
			Headers:   idx,
			Extractor: NewExtractor(cfg),
			Persister: validate.New(cfg.OutDir, log),
			Log:       log,
		})
	if err != nil {
		log.Error("run cancelled", zap.Int("completed", len(outs)), zap.Error(err))
		return outs, ExitCancelled
	}
	return outs, ExitOK
}

// NewExtractor picks the extractor named in cfg.
func NewExtractor(cfg config.Config) region.Extractor {
	if cfg.Extractor == config.ExtractorNative {
		return region.Native{Timeout: cfg.Timeout}
	}
	return region.Bedtools{Path: cfg.Bedtools, Timeout: cfg.Timeout}
}

func saveLedger(ctx context.Context, path, runID string, started time.Time, sum report.Summary, outs []pipeline.Outcome) error {
	st := ledger.NewStore(path)
	if err := st.Init(ctx); err != nil {
		return err
	}
	defer st.Close()

	rows := make([]ledger.SampleResult, 0, len(outs))
	for _, o := range outs {
		v := report.ToAPISample(o)
		rows = append(rows, ledger.SampleResult{
			SampleID:   v.SampleID,
			Mode:       v.Mode,
			Status:     v.Status,
			Kind:       v.Kind,
			MitoContig: v.MitoContig,
			Contig:     v.Contig,
			Start0:     v.Start0,
			End:        v.End,
			Strand:     v.Strand,
			Score:      v.Score,
			Error:      v.Error,
		})
	}
	return st.SaveRun(ctx, ledger.Run{
		ID:         runID,
		StartedAt:  started,
		FinishedAt: time.Now(),
		OK:         len(sum.Succeeded),
		StopCodon:  len(sum.StopCodon),
		Failed:     len(sum.Failed),
	}, rows)
}

func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	gone, err := writers.Flush(outw)
	switch {
	case gone:
		return ExitOK
	case err != nil:
		_, _ = fmt.Fprintln(stderr, err)
		return ExitIO
	}
	return code
}
