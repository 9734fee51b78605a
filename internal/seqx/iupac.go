// internal/seqx/iupac.go
package seqx

var iupac = map[byte]string{
	'A': "A", 'C': "C", 'G': "G", 'T': "T", 'U': "T",
	'R': "AG", 'Y': "CT", 'S': "GC", 'W': "AT",
	'K': "GT", 'M': "AC", 'B': "CGT", 'D': "AGT",
	'H': "ACT", 'V': "ACG", 'N': "ACGT",
}

// Expand returns the concrete DNA bases an IUPAC code stands for
// (upper-case input). ok is false for symbols outside the alphabet.
//
// Example: Expand('R') == "AG"
func Expand(b byte) (string, bool) {
	s, ok := iupac[b]
	return s, ok
}

// IsAmbiguous reports whether b is a valid IUPAC code standing for more
// than one base.
func IsAmbiguous(b byte) bool {
	s, ok := iupac[b]
	return ok && len(s) > 1
}
