package cli

import "flag"

// NewQuietFlagSet returns a clean FlagSet with ContinueOnError and no usage
// output of its own.
func NewQuietFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}
