package writers

import (
	"bufio"
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// Flush flushes bw. A reader that closed early is reported as gone with a
// nil error; any other failure is returned.
func Flush(bw *bufio.Writer) (gone bool, err error) {
	if err := bw.Flush(); err != nil {
		if IsBrokenPipe(err) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
