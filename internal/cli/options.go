// internal/cli/options.go
package cli

import (
	"flag"
	"fmt"

	"coiextract/internal/config"
	"coiextract/internal/version"
)

// Options holds all CLI flags. Config carries the run settings; the rest
// only steer the CLI itself.
type Options struct {
	config.Config

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: extract and validate the best COI hit per sample

Version: %s

Reads genome and transcriptome list files, picks each sample's best tblastn
hit (restricted to the mitochondrial contig when a genome has one), extracts
it, and keeps it only if it translates without a stop codon under NCBI
genetic code 5. Defaults come from COIEXTRACT_* variables, which may be
set in a .env file (path: $COIEXTRACT_ENV_FILE, default .env).

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags on top of base (normally the
// environment-derived config) and returns validated Options.
func ParseArgs(fs *flag.FlagSet, argv []string, base config.Config) (Options, error) {
	opt := Options{Config: base}
	var help bool

	// Inputs
	fs.StringVar(&opt.GenomesList, "genomes", base.GenomesList, "genome assembly list (missing file = none)")
	fs.StringVar(&opt.TranscriptomesList, "transcriptomes", base.TranscriptomesList, "transcriptome assembly list (missing file = none)")
	fs.StringVar(&opt.HitsDir, "hits-dir", base.HitsDir, "directory holding <sample>_tblastn.tsv")

	// Selection & extraction
	fs.IntVar(&opt.Rank, "rank", base.Rank, "use the N-th best hit (0 = best)")
	fs.StringVar(&opt.Extractor, "extractor", base.Extractor, "region extractor: bedtools | native")
	fs.StringVar(&opt.Bedtools, "bedtools", base.Bedtools, "bedtools executable")
	fs.DurationVar(&opt.Timeout, "timeout", base.Timeout, "per-sample extraction timeout")
	fs.IntVar(&opt.Threads, "threads", base.Threads, "number of worker threads (0 = all CPUs)")

	// Outputs
	fs.StringVar(&opt.OutDir, "out-dir", base.OutDir, "directory for <sample>_COI_{nt,aa}.fasta")
	fs.StringVar(&opt.SummaryJSON, "summary-json", base.SummaryJSON, "write the run summary as JSON to this file ('-' = stdout)")
	fs.StringVar(&opt.Ledger, "ledger", base.Ledger, "SQLite file recording every run's per-sample outcomes")
	fs.StringVar(&opt.LogFile, "log-file", base.LogFile, "also log JSON lines to this rotating file")
	fs.StringVar(&opt.LogLevel, "log-level", base.LogLevel, "debug | info | warn | error")
	fs.BoolVar(&opt.NoColor, "no-color", base.NoColor, "disable colored summary")
	fs.BoolVar(&opt.Quiet, "quiet", base.Quiet, "suppress the text summary")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand)")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand)")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if fs.NArg() > 0 {
		return opt, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if err := opt.Config.Validate(); err != nil {
		return opt, err
	}
	return opt, nil
}
