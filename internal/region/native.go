package region

import (
	"context"
	"fmt"
	"time"

	"coiextract/internal/fasta"
	"coiextract/internal/seqx"
)

// Native extracts regions by streaming the assembly itself. Its output
// matches bedtools getfasta -s: one record named by Descriptor.String, the
// sequence on a single line.
type Native struct {
	Timeout time.Duration
}

func (n Native) Extract(ctx context.Context, d Descriptor, assemblyPath string) (string, error) {
	if !d.Valid() {
		return "", failed(d, fmt.Errorf("invalid region"))
	}
	ctx, cancel := withTimeout(ctx, n.Timeout)
	defer cancel()

	rec, ok, err := fasta.Find(ctx, assemblyPath, d.Contig)
	if cerr := checkCtx(ctx, d, n.timeout()); cerr != nil {
		return "", cerr
	}
	if err != nil {
		return "", failed(d, err)
	}
	if !ok {
		return "", failed(d, fmt.Errorf("contig %q not in %s", d.Contig, assemblyPath))
	}
	if d.End > len(rec.Seq) {
		return "", failed(d, fmt.Errorf("end %d beyond contig length %d", d.End, len(rec.Seq)))
	}
	seq := rec.Seq[d.Start0:d.End]
	if d.Strand == '-' {
		seq = seqx.RevComp(seq)
	}
	return ">" + d.String() + "\n" + string(seq) + "\n", nil
}

func (n Native) timeout() time.Duration {
	if n.Timeout <= 0 {
		return DefaultTimeout
	}
	return n.Timeout
}
