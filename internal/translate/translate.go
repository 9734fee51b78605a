package translate

import (
	"bytes"
	"strings"

	"coiextract/internal/seqx"
)

// Sequence translates seq codon by codon under table t. Case is ignored and
// U reads as T. A trailing partial codon is dropped. Ambiguous codons
// translate to the residue all their expansions agree on, else X.
func Sequence(seq []byte, t Table) (string, error) {
	code, err := Lookup(t)
	if err != nil {
		return "", err
	}
	up := bytes.ToUpper(seq)
	n := len(up) - len(up)%3

	var sb strings.Builder
	sb.Grow(n / 3)
	for i := 0; i < n; i += 3 {
		sb.WriteByte(codon(code, up[i], up[i+1], up[i+2]))
	}
	return sb.String(), nil
}

// HasStop reports whether protein contains a stop symbol.
func HasStop(protein string) bool {
	return strings.IndexByte(protein, StopSymbol) >= 0
}

func codon(code map[string]byte, a, b, c byte) byte {
	if aa, ok := code[string([]byte{norm(a), norm(b), norm(c)})]; ok {
		return aa
	}
	ea, okA := seqx.Expand(a)
	eb, okB := seqx.Expand(b)
	ec, okC := seqx.Expand(c)
	if !okA || !okB || !okC {
		return UnknownSymbol
	}
	var res byte
	for i := 0; i < len(ea); i++ {
		for j := 0; j < len(eb); j++ {
			for k := 0; k < len(ec); k++ {
				aa := code[string([]byte{ea[i], eb[j], ec[k]})]
				if res == 0 {
					res = aa
				} else if aa != res {
					return UnknownSymbol
				}
			}
		}
	}
	return res
}

func norm(b byte) byte {
	if b == 'U' {
		return 'T'
	}
	return b
}
