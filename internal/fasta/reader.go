// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Record is one FASTA entry. ID is the first token of the header and
// Description the whole header line without '>'.
type Record struct {
	ID          string
	Description string
	Seq         []byte
}

// scan walks r line by line and calls onHeader for each '>' line and
// onSeq for each sequence line (whitespace trimmed). The slices passed to
// the callbacks are only valid for the duration of the call.
func scan(ctx context.Context, r io.Reader, onHeader func(hdr []byte) error, onSeq func(line []byte) error) error {
	br := bufio.NewReaderSize(r, 64*1024)
	var n int
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			n++
			if n%4096 == 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
			}
			line = bytes.TrimRight(line, "\r\n")
			switch {
			case len(line) == 0:
			case line[0] == '>':
				if herr := onHeader(line[1:]); herr != nil {
					return herr
				}
			default:
				if serr := onSeq(bytes.TrimSpace(line)); serr != nil {
					return serr
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("fasta scan: %w", err)
		}
	}
}

// Parse reads every record from r.
func Parse(r io.Reader) ([]Record, error) {
	var (
		out []Record
		cur *Record
	)
	err := scan(context.Background(), r,
		func(hdr []byte) error {
			out = append(out, newRecord(hdr))
			cur = &out[len(out)-1]
			return nil
		},
		func(line []byte) error {
			if cur == nil {
				return errors.New("fasta: sequence data before first header")
			}
			cur.Seq = append(cur.Seq, line...)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Headers returns the header lines (without '>') of the FASTA at path, in
// file order. Sequence data is skipped, not buffered.
func Headers(ctx context.Context, path string) ([]string, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var hdrs []string
	err = scan(ctx, rc,
		func(hdr []byte) error {
			hdrs = append(hdrs, string(bytes.TrimSpace(hdr)))
			return nil
		},
		func([]byte) error { return nil })
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hdrs, nil
}

// errFound stops the scan once the requested record is complete.
var errFound = errors.New("found")

// Find returns the record whose ID is id. Only that record's sequence is
// held in memory.
func Find(ctx context.Context, path, id string) (Record, bool, error) {
	rc, err := Open(path)
	if err != nil {
		return Record{}, false, err
	}
	defer rc.Close()

	var (
		rec      Record
		found    bool
		inTarget bool
	)
	err = scan(ctx, rc,
		func(hdr []byte) error {
			if inTarget {
				return errFound
			}
			if r := newRecord(hdr); r.ID == id {
				rec, found, inTarget = r, true, true
			}
			return nil
		},
		func(line []byte) error {
			if inTarget {
				rec.Seq = append(rec.Seq, line...)
			}
			return nil
		})
	if err != nil && !errors.Is(err, errFound) {
		return Record{}, false, fmt.Errorf("%s: %w", path, err)
	}
	return rec, found, nil
}

func newRecord(hdr []byte) Record {
	desc := strings.TrimSpace(string(hdr))
	id := desc
	if f := strings.Fields(desc); len(f) > 0 {
		id = f[0]
	}
	return Record{ID: id, Description: desc}
}
