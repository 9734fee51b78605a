// internal/seqx/rc.go
package seqx

var complement = map[byte]byte{
	'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A', 'U': 'A',
	'R': 'Y', 'Y': 'R', // A/G  <->  C/T
	'S': 'S', 'W': 'W', // GC   <->  GC   ; AT <-> AT
	'K': 'M', 'M': 'K',
	'B': 'V', 'V': 'B',
	'D': 'H', 'H': 'D',
	'N': 'N',
}

// RevComp reverse-complements seq. Lower-case (soft-masked) bases keep their
// case; anything outside the IUPAC alphabet becomes N.
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := seq[n-1-i]
		lower := b >= 'a' && b <= 'z'
		if lower {
			b -= 'a' - 'A'
		}
		c, ok := complement[b]
		if !ok {
			c = 'N'
		}
		if lower {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}
