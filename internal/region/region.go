// Package region turns a selected hit into a BED-style region and fetches
// its sequence from an assembly.
package region

import (
	"fmt"
	"strconv"
	"strings"
)

// Descriptor is a strand-aware half-open interval (BED convention):
// Start0 is 0-based inclusive, End exclusive.
type Descriptor struct {
	Contig string
	Start0 int
	End    int
	Strand byte
}

// Build maps aligner coordinates (1-based, inclusive, swapped on the
// reverse strand) to a Descriptor. A positive frame means '+'.
func Build(sequenceID string, hitStart, hitEnd, frame int) Descriptor {
	strand := byte('-')
	if frame > 0 {
		strand = '+'
	}
	start, end := hitStart, hitEnd
	if strand == '-' {
		start, end = hitEnd, hitStart
	}
	return Descriptor{Contig: sequenceID, Start0: start - 1, End: end, Strand: strand}
}

// Len is the interval length in bases.
func (d Descriptor) Len() int { return d.End - d.Start0 }

// Valid reports whether the interval is non-empty and non-negative.
func (d Descriptor) Valid() bool {
	return d.Contig != "" && d.Start0 >= 0 && d.End > d.Start0 && (d.Strand == '+' || d.Strand == '-')
}

// String renders "contig:start0-end(strand)", the name bedtools getfasta -s
// gives the extracted record.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s:%d-%d(%c)", d.Contig, d.Start0, d.End, d.Strand)
}

// BEDLine renders the six-column BED line for d.
func (d Descriptor) BEDLine() string {
	return strings.Join([]string{
		d.Contig,
		strconv.Itoa(d.Start0),
		strconv.Itoa(d.End),
		".",
		"0",
		string(d.Strand),
	}, "\t")
}
