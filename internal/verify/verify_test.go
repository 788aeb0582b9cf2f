package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maauso/blockcut/internal/block"
	"github.com/maauso/blockcut/internal/climax"
)

func registered(ids ...string) []block.Block {
	blocks := make([]block.Block, 0, len(ids))
	for _, id := range ids {
		typ, seq, _ := block.ParseID(id)
		blocks = append(blocks, block.New(typ, seq, "/a.wav", ""))
	}
	return blocks
}

func TestRun_InSync(t *testing.T) {
	report := Run(
		[]string{"m1.wav", "m2.wav", "v1.wav"},
		registered("m1", "m2", "v1"),
	)

	assert.True(t, report.InSync())
	assert.Empty(t, report.Orphans)
	assert.Empty(t, report.Missing)
	assert.Equal(t, 3, report.FilesOnDisk)
	assert.Equal(t, 3, report.Registered)
}

func TestRun_OrphanFile(t *testing.T) {
	// m3 exists on disk but has no registry row.
	report := Run(
		[]string{"m1.wav", "m3.wav"},
		registered("m1"),
	)

	assert.False(t, report.InSync())
	assert.Equal(t, []string{"m3"}, report.Orphans)
	assert.Empty(t, report.Missing)
}

func TestRun_MissingFile(t *testing.T) {
	report := Run(
		[]string{"v1.wav"},
		registered("v1", "v2"),
	)

	assert.False(t, report.InSync())
	assert.Empty(t, report.Orphans)
	assert.Equal(t, []string{"v2"}, report.Missing)
}

func TestRun_IgnoresNonBlockFiles(t *testing.T) {
	report := Run(
		[]string{"m1.wav", "blocks_list.xlsx", "notes.txt", "mx.wav", "m.wav", "mix_out.wav"},
		registered("m1"),
	)

	assert.True(t, report.InSync())
	assert.Equal(t, 1, report.FilesOnDisk)
}

func TestRun_SortsNumerically(t *testing.T) {
	report := Run(
		[]string{"m10.wav", "m2.wav", "v1.wav"},
		nil,
	)

	assert.Equal(t, []string{"m2", "m10", "v1"}, report.Orphans)
}

func TestRun_Empty(t *testing.T) {
	report := Run(nil, nil)
	assert.True(t, report.InSync())
}

func TestRun_BothDirections(t *testing.T) {
	report := Run(
		[]string{"m1.wav", "v3.wav"},
		[]block.Block{
			block.New(climax.TypeMusic, 1, "/a.wav", ""),
			block.New(climax.TypeVoice, 1, "/a.wav", ""),
		},
	)

	assert.Equal(t, []string{"v3"}, report.Orphans)
	assert.Equal(t, []string{"v1"}, report.Missing)
}
