// Package hits parses tblastn hit tables and picks the hit to extract.
package hits

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHitTable marks a hit table that is missing, unreadable, or
	// has a row without the required typed columns.
	ErrMalformedHitTable = errors.New("malformed hit table")

	// ErrNoCandidateHit marks an empty candidate set (or a rank past its end).
	ErrNoCandidateHit = errors.New("no candidate hit")
)

// Record is one typed row of a hit table. Coordinates are the aligner's
// 1-based subject positions; HitEnd < HitStart encodes orientation.
type Record struct {
	SequenceID string  `validate:"required"`
	HitStart   int     `validate:"min=1"`
	HitEnd     int     `validate:"min=1"`
	Frame      int     `validate:"required,min=-3,max=3"`
	Score      float64 `validate:"finite"`

	// Line is the 1-based line in the source table.
	Line int `validate:"-"`
}

// Strand is '+' for a positive frame, '-' otherwise.
func (r Record) Strand() byte {
	if r.Frame > 0 {
		return '+'
	}
	return '-'
}

func (r Record) String() string {
	return fmt.Sprintf("%s:%d-%d frame=%d score=%g", r.SequenceID, r.HitStart, r.HitEnd, r.Frame, r.Score)
}
