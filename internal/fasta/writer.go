package fasta

import (
	"bufio"
	"io"
)

// LineWidth is the sequence wrap used for every FASTA we write.
const LineWidth = 60

// Title renders the header line for rec: ID, then the description when it
// adds anything beyond the ID.
func Title(rec Record) string {
	switch {
	case rec.Description == "" || rec.Description == rec.ID:
		return rec.ID
	case rec.ID == "":
		return rec.Description
	default:
		return rec.ID + " " + rec.Description
	}
}

// Write writes rec to w with sequence lines wrapped at LineWidth.
func Write(w io.Writer, rec Record) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(">" + Title(rec) + "\n"); err != nil {
		return err
	}
	for i := 0; i < len(rec.Seq); i += LineWidth {
		end := i + LineWidth
		if end > len(rec.Seq) {
			end = len(rec.Seq)
		}
		if _, err := bw.Write(rec.Seq[i:end]); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
