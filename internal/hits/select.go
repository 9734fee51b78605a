package hits

import (
	"fmt"
	"sort"

	"coiextract/internal/sample"
)

// Candidates returns the rows eligible for selection. Genome samples with a
// known mitochondrial contig only consider hits on that contig; everything
// else considers the whole table. Original order is kept.
func Candidates(table []Record, mode sample.Mode, mitoContig string) []Record {
	if mode != sample.ModeGenome || mitoContig == "" {
		return append([]Record(nil), table...)
	}
	var out []Record
	for _, r := range table {
		if r.SequenceID == mitoContig {
			out = append(out, r)
		}
	}
	return out
}

// Rank orders records by score, highest first. Ties keep table order.
func Rank(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
}

// SelectBest returns the rank-th best candidate (0 = top hit).
func SelectBest(table []Record, mode sample.Mode, mitoContig string, rank int) (Record, error) {
	if rank < 0 {
		return Record{}, fmt.Errorf("rank must be >= 0, got %d", rank)
	}
	cands := Candidates(table, mode, mitoContig)
	if len(cands) == 0 {
		if mode == sample.ModeGenome && mitoContig != "" {
			return Record{}, fmt.Errorf("%w: no hits on mitochondrial contig %q", ErrNoCandidateHit, mitoContig)
		}
		return Record{}, fmt.Errorf("%w: hit table is empty", ErrNoCandidateHit)
	}
	if rank >= len(cands) {
		return Record{}, fmt.Errorf("%w: rank %d requested but only %d candidates", ErrNoCandidateHit, rank, len(cands))
	}
	Rank(cands)
	return cands[rank], nil
}
