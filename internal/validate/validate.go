// Package validate checks an extracted coding sequence by translating it
// under the invertebrate mitochondrial code and writes the accepted
// nucleotide and protein FASTA files.
package validate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"coiextract/internal/fasta"
	"coiextract/internal/region"
	"coiextract/internal/translate"
)

// Output file suffixes appended to the sample id.
const (
	NucleotideSuffix = "_COI_nt.fasta"
	ProteinSuffix    = "_COI_aa.fasta"
)

// Status is the validation verdict for one sample.
type Status string

const (
	StatusOK        Status = "ok"
	StatusStopCodon Status = "stop_codon"
)

// OutputPair names the files written for an accepted sample.
type OutputPair struct {
	NucleotidePath string
	ProteinPath    string
}

// Result is what ValidateAndPersist decided. Outputs is set only for
// StatusOK.
type Result struct {
	Status  Status
	Protein string
	Outputs OutputPair
}

// Validator translates and persists extracted sequences into OutDir.
type Validator struct {
	OutDir string
	Log    *zap.Logger
}

// New returns a Validator writing into outDir.
func New(outDir string, log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{OutDir: outDir, Log: log}
}

// Paths returns the output files for sampleID.
func (v *Validator) Paths(sampleID string) OutputPair {
	return OutputPair{
		NucleotidePath: filepath.Join(v.OutDir, sampleID+NucleotideSuffix),
		ProteinPath:    filepath.Join(v.OutDir, sampleID+ProteinSuffix),
	}
}

// ValidateAndPersist parses the single record in fastaText, renames it to
// sampleID, and translates it with table 5. A stop codon anywhere yields
// StatusStopCodon and nothing is written. Unparseable or empty input wraps
// region.ErrExtractionFailed.
func (v *Validator) ValidateAndPersist(sampleID, fastaText string) (Result, error) {
	rec, err := single(fastaText)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", region.ErrExtractionFailed, err)
	}
	rec.ID = sampleID

	protein, err := translate.Sequence(rec.Seq, translate.InvertebrateMitochondrial)
	if err != nil {
		return Result{}, err
	}
	if std, err := translate.Sequence(rec.Seq, translate.Standard); err == nil {
		v.Log.Debug("standard code translation",
			zap.String("sample", sampleID),
			zap.Int("stops", strings.Count(std, string(rune(translate.StopSymbol)))),
		)
	}
	if translate.HasStop(protein) {
		return Result{Status: StatusStopCodon, Protein: protein}, nil
	}

	out := v.Paths(sampleID)
	if err := writeRecord(out.NucleotidePath, rec); err != nil {
		return Result{}, err
	}
	prot := fasta.Record{ID: rec.ID, Description: rec.Description, Seq: []byte(protein)}
	if err := writeRecord(out.ProteinPath, prot); err != nil {
		return Result{}, err
	}
	return Result{Status: StatusOK, Protein: protein, Outputs: out}, nil
}

func single(text string) (fasta.Record, error) {
	recs, err := fasta.Parse(strings.NewReader(text))
	if err != nil {
		return fasta.Record{}, err
	}
	switch {
	case len(recs) == 0:
		return fasta.Record{}, fmt.Errorf("no FASTA record in extraction output")
	case len(recs) > 1:
		return fasta.Record{}, fmt.Errorf("want one FASTA record, got %d", len(recs))
	case len(recs[0].Seq) == 0:
		return fasta.Record{}, fmt.Errorf("record %q has no sequence", recs[0].ID)
	}
	return recs[0], nil
}

// writeRecord writes rec to path through a temp file in the same directory
// so a reader never sees a half-written FASTA.
func writeRecord(path string, rec fasta.Record) error {
	var buf bytes.Buffer
	if err := fasta.Write(&buf, rec); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}
