// Package translate turns nucleotide sequences into protein using the NCBI
// genetic code tables the validator needs.
package translate

import "fmt"

// Table identifies an NCBI genetic code.
type Table int

const (
	Standard                  Table = 1
	InvertebrateMitochondrial Table = 5
)

const (
	StopSymbol    = '*'
	UnknownSymbol = 'X'
)

const bases = "TCAG"

// NCBI order: first base varies slowest, third base fastest, each over TCAG.
const (
	standardAAs = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"
	table5AAs   = "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNKKSSSSVVVVAAAADDEEGGGG"
)

var tables = map[Table]map[string]byte{
	Standard:                  build(standardAAs),
	InvertebrateMitochondrial: build(table5AAs),
}

func build(aas string) map[string]byte {
	m := make(map[string]byte, 64)
	i := 0
	for _, a := range []byte(bases) {
		for _, b := range []byte(bases) {
			for _, c := range []byte(bases) {
				m[string([]byte{a, b, c})] = aas[i]
				i++
			}
		}
	}
	return m
}

// Lookup returns the codon map for t.
func Lookup(t Table) (map[string]byte, error) {
	m, ok := tables[t]
	if !ok {
		return nil, fmt.Errorf("unsupported genetic code table %d", t)
	}
	return m, nil
}
