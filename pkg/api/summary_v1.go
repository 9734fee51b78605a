// pkg/api/summary_v1.go
package api

// SummaryV1 is the stable JSON schema for --summary-json.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type SummaryV1 struct {
	RunID     string     `json:"run_id"`
	Version   string     `json:"version"`
	Succeeded int        `json:"succeeded"`
	StopCodon int        `json:"stop_codon"`
	Failed    int        `json:"failed"`
	Samples   []SampleV1 `json:"samples"`
}

// SampleV1 is one sample's outcome.
type SampleV1 struct {
	SampleID   string  `json:"sample_id"`
	Mode       string  `json:"mode"`   // "genome" | "transcriptome"
	Status     string  `json:"status"` // "ok" | "stop_codon" | "failed"
	Kind       string  `json:"kind,omitempty"`
	Error      string  `json:"error,omitempty"`
	MitoContig string  `json:"mito_contig,omitempty"`
	Contig     string  `json:"contig,omitempty"`
	Start0     int     `json:"start0,omitempty"`
	End        int     `json:"end,omitempty"`
	Strand     string  `json:"strand,omitempty"`
	Score      float64 `json:"score,omitempty"`
	Nucleotide string  `json:"nt_fasta,omitempty"`
	Protein    string  `json:"aa_fasta,omitempty"`
}
