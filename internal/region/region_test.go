package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildReverseStrand(t *testing.T) {
	d := Build("chr1", 100, 50, -2)
	assert.Equal(t, Descriptor{Contig: "chr1", Start0: 49, End: 100, Strand: '-'}, d)
	assert.Equal(t, 51, d.Len())
}

func TestBuildForwardStrand(t *testing.T) {
	d := Build("chr1", 50, 100, 3)
	assert.Equal(t, Descriptor{Contig: "chr1", Start0: 49, End: 100, Strand: '+'}, d)
}

func TestBuildSingleBase(t *testing.T) {
	d := Build("c", 7, 7, 1)
	assert.Equal(t, 6, d.Start0)
	assert.Equal(t, 7, d.End)
	assert.True(t, d.Valid())
}

func TestDescriptorRendering(t *testing.T) {
	d := Build("scaffold_9", 1200, 10, -1)
	assert.Equal(t, "scaffold_9:9-1200(-)", d.String())
	assert.Equal(t, "scaffold_9\t9\t1200\t.\t0\t-", d.BEDLine())
}

func TestValid(t *testing.T) {
	assert.False(t, Descriptor{Contig: "", Start0: 0, End: 3, Strand: '+'}.Valid())
	assert.False(t, Descriptor{Contig: "c", Start0: -1, End: 3, Strand: '+'}.Valid())
	assert.False(t, Descriptor{Contig: "c", Start0: 3, End: 3, Strand: '+'}.Valid())
	assert.False(t, Descriptor{Contig: "c", Start0: 0, End: 3, Strand: '.'}.Valid())
	// forward-frame hit reported with inverted coordinates
	assert.False(t, Build("c", 100, 50, 1).Valid())
}
