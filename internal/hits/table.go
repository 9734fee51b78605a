package hits

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Column layout of the tblastn table (0-based).
const (
	ColSequenceID = 0
	ColStart      = 2
	ColEnd        = 3
	ColFrame      = 4
	ColScore      = 8

	MinColumns = 9
)

// TableSuffix is appended to a sample id to name its hit table.
const TableSuffix = "_tblastn.tsv"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.Float64 {
			return false
		}
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// TablePath is where the hit table for sampleID lives under dir.
func TablePath(dir, sampleID string) string {
	return filepath.Join(dir, sampleID+TableSuffix)
}

// LoadTable reads and validates the hit table at path. Every failure,
// including a missing file, wraps ErrMalformedHitTable.
func LoadTable(path string) ([]Record, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHitTable, err)
	}
	defer fh.Close()
	return ParseTable(fh, path)
}

// ParseTable parses tab-separated rows from r. Lines starting with '#' and
// blank lines are skipped; there is no header row. name labels errors.
func ParseTable(r io.Reader, name string) ([]Record, error) {
	var out []Record
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || line[0] == '#' {
			continue
		}
		rec, err := parseRow(strings.Split(line, "\t"))
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %v", ErrMalformedHitTable, name, ln, err)
		}
		rec.Line = ln
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedHitTable, name, err)
	}
	return out, nil
}

func parseRow(f []string) (Record, error) {
	if len(f) < MinColumns {
		return Record{}, fmt.Errorf("want at least %d columns, got %d", MinColumns, len(f))
	}
	var (
		rec Record
		err error
	)
	rec.SequenceID = strings.TrimSpace(f[ColSequenceID])
	if rec.HitStart, err = atoi(f[ColStart], "start"); err != nil {
		return Record{}, err
	}
	if rec.HitEnd, err = atoi(f[ColEnd], "end"); err != nil {
		return Record{}, err
	}
	if rec.Frame, err = atoi(f[ColFrame], "frame"); err != nil {
		return Record{}, err
	}
	if rec.Score, err = strconv.ParseFloat(strings.TrimSpace(f[ColScore]), 64); err != nil {
		return Record{}, fmt.Errorf("score %q is not a number", f[ColScore])
	}
	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return Record{}, fmt.Errorf("field %s fails %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return Record{}, err
	}
	return rec, nil
}

func atoi(s, what string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer", what, s)
	}
	return n, nil
}
