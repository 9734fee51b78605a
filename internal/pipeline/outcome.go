// internal/pipeline/outcome.go
package pipeline

import (
	"errors"

	"coiextract/internal/hits"
	"coiextract/internal/region"
	"coiextract/internal/sample"
	"coiextract/internal/validate"
)

// Status is the per-sample result class shown in the summary.
type Status string

const (
	StatusOK        Status = "ok"
	StatusStopCodon Status = "stop_codon"
	StatusFailed    Status = "failed"
)

// Failure kinds, derived from the error chain.
const (
	KindNoCandidateHit    = "no_candidate_hit"
	KindMalformedHitTable = "malformed_hit_table"
	KindExtractionFailed  = "extraction_failed"
	KindHeaderIndex       = "header_index"
	KindOther             = "error"
)

// ErrHeaderIndex marks a genome sample whose headers are unavailable.
var ErrHeaderIndex = errors.New("header index unavailable")

// Outcome is what happened to one sample. Hit and Region are set once the
// corresponding step succeeded.
type Outcome struct {
	SampleID   string
	Mode       sample.Mode
	Status     Status
	MitoContig string
	Hit        *hits.Record
	Region     *region.Descriptor
	Outputs    validate.OutputPair
	Err        error
}

// Kind classifies a failed outcome's error.
func (o Outcome) Kind() string {
	switch {
	case o.Err == nil:
		return ""
	case errors.Is(o.Err, hits.ErrNoCandidateHit):
		return KindNoCandidateHit
	case errors.Is(o.Err, hits.ErrMalformedHitTable):
		return KindMalformedHitTable
	case errors.Is(o.Err, region.ErrExtractionFailed):
		return KindExtractionFailed
	case errors.Is(o.Err, ErrHeaderIndex):
		return KindHeaderIndex
	default:
		return KindOther
	}
}
