// Package config holds run settings. Defaults come from the environment
// (optionally seeded by a .env file); CLI flags override them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Extractor names.
const (
	ExtractorBedtools = "bedtools"
	ExtractorNative   = "native"
)

// EnvPrefix prefixes every environment variable read here.
const EnvPrefix = "COIEXTRACT_"

type Config struct {
	GenomesList        string
	TranscriptomesList string
	HitsDir            string `validate:"required"`
	OutDir             string `validate:"required"`

	Extractor string        `validate:"oneof=bedtools native"`
	Bedtools  string        `validate:"required_if=Extractor bedtools"`
	Timeout   time.Duration `validate:"gt=0"`
	Threads   int           `validate:"gte=0"`
	Rank      int           `validate:"gte=0"`

	LogFile  string
	LogLevel string `validate:"oneof=debug info warn error"`

	Ledger      string
	SummaryJSON string
	NoColor     bool
	Quiet       bool
}

// Defaults reproduces the historical behaviour: list files and hit tables
// in the working directory, outputs written next to them.
func Defaults() Config {
	return Config{
		GenomesList:        "genomes.txt",
		TranscriptomesList: "transcriptomes.txt",
		HitsDir:            ".",
		OutDir:             ".",
		Extractor:          ExtractorBedtools,
		Bedtools:           "bedtools",
		Timeout:            5 * time.Minute,
		LogLevel:           "info",
	}
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables already set, then applies COIEXTRACT_* variables on
// top of Defaults.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup applies variables found through lookup on top of Defaults.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	c := Defaults()
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		return strings.TrimSpace(v), ok
	}
	str := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		if v, ok := get(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %q is not an integer", EnvPrefix, key, v))
				return
			}
			*dst = n
		}
	}

	str("GENOMES", &c.GenomesList)
	str("TRANSCRIPTOMES", &c.TranscriptomesList)
	str("HITS_DIR", &c.HitsDir)
	str("OUT_DIR", &c.OutDir)
	str("EXTRACTOR", &c.Extractor)
	str("BEDTOOLS", &c.Bedtools)
	str("LOG_FILE", &c.LogFile)
	str("LOG_LEVEL", &c.LogLevel)
	str("LEDGER", &c.Ledger)
	num("THREADS", &c.Threads)
	if v, ok := get("TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err))
		} else {
			c.Timeout = d
		}
	}
	if v, ok := lookup("NO_COLOR"); ok && v != "" {
		c.NoColor = true
	}
	return c, errors.Join(errs...)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports the first violation in
// flag terms.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	name := flagNames[fe.Field()]
	if name == "" {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "oneof":
		return fmt.Errorf("invalid --%s %q (want one of: %s)", name, fe.Value(), fe.Param())
	case "gte":
		return fmt.Errorf("--%s must be ≥ %s", name, fe.Param())
	case "gt":
		return fmt.Errorf("--%s must be > %s", name, fe.Param())
	default:
		return fmt.Errorf("--%s is required", name)
	}
}

var flagNames = map[string]string{
	"HitsDir":   "hits-dir",
	"OutDir":    "out-dir",
	"Extractor": "extractor",
	"Bedtools":  "bedtools",
	"Timeout":   "timeout",
	"Threads":   "threads",
	"Rank":      "rank",
	"LogLevel":  "log-level",
}
