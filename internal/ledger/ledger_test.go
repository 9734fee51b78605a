package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndReadRun(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	id := uuid.NewString()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	run := Run{ID: id, StartedAt: start, FinishedAt: start.Add(time.Minute), OK: 1, StopCodon: 1}

	require.NoError(t, s.SaveRun(ctx, run, []SampleResult{
		{SampleID: "B", Mode: "transcriptome", Status: "stop_codon", Contig: "c", Start0: 0, End: 9, Strand: "+", Score: 3},
		{SampleID: "A", Mode: "genome", Status: "ok", MitoContig: "mt", Contig: "mt", Start0: 10, End: 50, Strand: "-", Score: 99.5},
	}))

	got, ok, err := s.GetRun(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, got.OK)
	assert.True(t, got.StartedAt.Equal(start))

	rs, err := s.Results(ctx, id)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, "A", rs[0].SampleID)
	assert.Equal(t, id, rs[0].RunID)
	assert.Equal(t, "mt", rs[0].MitoContig)
	assert.Equal(t, 99.5, rs[0].Score)
}

func TestSaveRunReplaces(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	run := Run{ID: "r1", StartedAt: time.Now(), FinishedAt: time.Now(), Failed: 2}
	require.NoError(t, s.SaveRun(ctx, run, []SampleResult{{SampleID: "A"}, {SampleID: "B"}}))
	run.Failed, run.OK = 0, 1
	require.NoError(t, s.SaveRun(ctx, run, []SampleResult{{SampleID: "A", Status: "ok"}}))

	rs, err := s.Results(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "ok", rs[0].Status)

	got, _, err := s.GetRun(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.OK)
	assert.Equal(t, 0, got.Failed)
}

func TestGetRunMissing(t *testing.T) {
	_, ok, err := newStore(t).GetRun(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUninitialized(t *testing.T) {
	s := NewStore("")
	assert.Error(t, s.Init(context.Background()))
	assert.Error(t, s.SaveRun(context.Background(), Run{ID: "x"}, nil))
}
