// Package report turns pipeline outcomes into the end-of-run summary:
// a human table on stdout and an optional JSON document.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"coiextract/internal/pipeline"
	"coiextract/pkg/api"
)

// Summary groups outcomes by status, each group in sample id order.
type Summary struct {
	RunID     string
	Succeeded []pipeline.Outcome
	StopCodon []pipeline.Outcome
	Failed    []pipeline.Outcome
}

func Summarize(runID string, outs []pipeline.Outcome) Summary {
	s := Summary{RunID: runID}
	for _, o := range outs {
		switch o.Status {
		case pipeline.StatusOK:
			s.Succeeded = append(s.Succeeded, o)
		case pipeline.StatusStopCodon:
			s.StopCodon = append(s.StopCodon, o)
		default:
			s.Failed = append(s.Failed, o)
		}
	}
	return s
}

// Total is the number of samples summarized.
func (s Summary) Total() int { return len(s.Succeeded) + len(s.StopCodon) + len(s.Failed) }

// Clean reports whether every sample produced outputs.
func (s Summary) Clean() bool { return len(s.StopCodon) == 0 && len(s.Failed) == 0 }

// WriteText prints the summary. Colors are used only when noColor is false
// and fatih/color considers the terminal capable.
func WriteText(w io.Writer, s Summary, noColor bool) error {
	paint := func(attr color.Attribute) *color.Color {
		c := color.New(attr)
		if noColor {
			c.DisableColor()
		}
		return c
	}
	ok, warn, bad := paint(color.FgGreen), paint(color.FgYellow), paint(color.FgRed)

	if _, err := fmt.Fprintf(w, "run %s: %d samples\n", s.RunID, s.Total()); err != nil {
		return err
	}
	if _, err := ok.Fprintf(w, "succeeded (%d)\n", len(s.Succeeded)); err != nil {
		return err
	}
	for _, o := range s.Succeeded {
		if _, err := fmt.Fprintf(w, "  %s\t%s\t%s\n", o.SampleID, o.Mode, regionText(o)); err != nil {
			return err
		}
	}
	if _, err := warn.Fprintf(w, "stop codon (%d)\n", len(s.StopCodon)); err != nil {
		return err
	}
	for _, o := range s.StopCodon {
		if _, err := fmt.Fprintf(w, "  %s\t%s\t%s\n", o.SampleID, o.Mode, regionText(o)); err != nil {
			return err
		}
	}
	if _, err := bad.Fprintf(w, "failed (%d)\n", len(s.Failed)); err != nil {
		return err
	}
	for _, o := range s.Failed {
		if _, err := fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", o.SampleID, o.Mode, o.Kind(), oneLine(o.Err)); err != nil {
			return err
		}
	}
	return nil
}

// API converts the summary to the stable JSON schema.
func (s Summary) API(version string) api.SummaryV1 {
	out := api.SummaryV1{
		RunID:     s.RunID,
		Version:   version,
		Succeeded: len(s.Succeeded),
		StopCodon: len(s.StopCodon),
		Failed:    len(s.Failed),
		Samples:   make([]api.SampleV1, 0, s.Total()),
	}
	for _, group := range [][]pipeline.Outcome{s.Succeeded, s.StopCodon, s.Failed} {
		for _, o := range group {
			out.Samples = append(out.Samples, ToAPISample(o))
		}
	}
	return out
}

// ToAPISample flattens one outcome.
func ToAPISample(o pipeline.Outcome) api.SampleV1 {
	v := api.SampleV1{
		SampleID:   o.SampleID,
		Mode:       string(o.Mode),
		Status:     string(o.Status),
		Kind:       o.Kind(),
		MitoContig: o.MitoContig,
		Nucleotide: o.Outputs.NucleotidePath,
		Protein:    o.Outputs.ProteinPath,
	}
	if o.Err != nil {
		v.Error = oneLine(o.Err)
	}
	if o.Hit != nil {
		v.Score = o.Hit.Score
	}
	if o.Region != nil {
		v.Contig = o.Region.Contig
		v.Start0 = o.Region.Start0
		v.End = o.Region.End
		v.Strand = string(o.Region.Strand)
	}
	return v
}

func regionText(o pipeline.Outcome) string {
	if o.Region == nil {
		return "-"
	}
	return o.Region.String()
}

func oneLine(err error) string {
	if err == nil {
		return ""
	}
	return strings.ReplaceAll(err.Error(), "\n", " ")
}
