package block

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/maauso/blockcut/internal/climax"
)

func newTestExcelRegistry(t *testing.T) *ExcelRegistry {
	t.Helper()
	return NewExcelRegistry(filepath.Join(t.TempDir(), DefaultWorkbookName))
}

func TestExcelRegistry_RoundTrip(t *testing.T) {
	ctx := context.Background()
	reg := newTestExcelRegistry(t)

	in := New(climax.TypeMusic, 1, "/audio/show.wav", "chorus drop")
	require.NoError(t, reg.Append(ctx, in))

	blocks, err := reg.ReadAll(ctx, climax.TypeMusic)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	assert.Equal(t, "m1", blocks[0].ID())
	assert.Equal(t, in.Type, blocks[0].Type)
	assert.Equal(t, in.Seq, blocks[0].Seq)
	assert.Equal(t, in.Origin, blocks[0].Origin)
	assert.Equal(t, in.Description, blocks[0].Description)
}

func TestExcelRegistry_CreatesBothSheets(t *testing.T) {
	ctx := context.Background()
	reg := newTestExcelRegistry(t)

	require.NoError(t, reg.Append(ctx, New(climax.TypeVoice, 1, "/a.wav", "intro")))

	f, err := excelize.OpenFile(reg.Path())
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.ElementsMatch(t, []string{"m", "v"}, f.GetSheetList())

	// The untouched music sheet still carries its header row only.
	rows, err := f.GetRows("m")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"m", "origin", "description"}, rows[0])
}

func TestExcelRegistry_AppendPreservesOrder(t *testing.T) {
	ctx := context.Background()
	reg := newTestExcelRegistry(t)

	for i := 1; i <= 3; i++ {
		require.NoError(t, reg.Append(ctx, New(climax.TypeMusic, i, "/a.wav", "")))
	}
	require.NoError(t, reg.Append(ctx, New(climax.TypeVoice, 1, "/a.wav", "speech")))

	music, err := reg.ReadAll(ctx, climax.TypeMusic)
	require.NoError(t, err)
	require.Len(t, music, 3)
	for i, b := range music {
		assert.Equal(t, i+1, b.Seq)
	}

	voice, err := reg.ReadAll(ctx, climax.TypeVoice)
	require.NoError(t, err)
	require.Len(t, voice, 1)
}

func TestExcelRegistry_NextSeq(t *testing.T) {
	ctx := context.Background()
	reg := newTestExcelRegistry(t)

	// Fresh registry starts at 1 for both types.
	next, err := reg.NextSeq(ctx, climax.TypeMusic)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	require.NoError(t, reg.Append(ctx, New(climax.TypeMusic, 1, "/a.wav", "")))
	require.NoError(t, reg.Append(ctx, New(climax.TypeMusic, 2, "/a.wav", "")))

	next, err = reg.NextSeq(ctx, climax.TypeMusic)
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	// Voice numbering is independent of music.
	next, err = reg.NextSeq(ctx, climax.TypeVoice)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestExcelRegistry_ReadAllMissingWorkbook(t *testing.T) {
	reg := newTestExcelRegistry(t)

	blocks, err := reg.ReadAll(context.Background(), climax.TypeMusic)
	require.NoError(t, err)
	assert.Empty(t, blocks)

	_, statErr := os.Stat(reg.Path())
	assert.True(t, os.IsNotExist(statErr), "ReadAll must not create the workbook")
}

func TestExcelRegistry_UnknownType(t *testing.T) {
	reg := newTestExcelRegistry(t)

	err := reg.Append(context.Background(), Block{Type: "x", Seq: 1})
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = reg.ReadAll(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestParseID(t *testing.T) {
	t.Run("valid ids", func(t *testing.T) {
		typ, seq, err := ParseID("m3")
		require.NoError(t, err)
		assert.Equal(t, climax.TypeMusic, typ)
		assert.Equal(t, 3, seq)

		typ, seq, err = ParseID("v12")
		require.NoError(t, err)
		assert.Equal(t, climax.TypeVoice, typ)
		assert.Equal(t, 12, seq)
	})

	t.Run("malformed ids", func(t *testing.T) {
		for _, id := range []string{"", "m", "3", "x3", "m3b", "m-1"} {
			_, _, err := ParseID(id)
			assert.Error(t, err, "id %q", id)
		}
	})
}
