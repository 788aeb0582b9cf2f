package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maauso/blockcut/internal/block"
	"github.com/maauso/blockcut/internal/climax"
)

// execute runs the root command against a temporary blocks directory and
// returns its combined output.
func execute(t *testing.T, blocksDir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BLOCKCUT_BLOCKS_DIR", blocksDir)

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVerifyCommand(t *testing.T) {
	t.Run("empty directory is in sync", func(t *testing.T) {
		out, err := execute(t, filepath.Join(t.TempDir(), "blocks"), "verify")
		require.NoError(t, err)
		assert.Contains(t, out, "in sync")
	})

	t.Run("orphan file on disk", func(t *testing.T) {
		blocksDir := filepath.Join(t.TempDir(), "blocks")
		require.NoError(t, os.MkdirAll(blocksDir, 0750))
		require.NoError(t, os.WriteFile(filepath.Join(blocksDir, "m1.wav"), []byte("wav"), 0600))

		out, err := execute(t, blocksDir, "verify")
		require.Error(t, err)
		assert.Contains(t, out, "orphan:  m1")
	})

	t.Run("prune deletes orphan files", func(t *testing.T) {
		blocksDir := filepath.Join(t.TempDir(), "blocks")
		require.NoError(t, os.MkdirAll(blocksDir, 0750))
		orphan := filepath.Join(blocksDir, "m1.wav")
		require.NoError(t, os.WriteFile(orphan, []byte("wav"), 0600))

		out, err := execute(t, blocksDir, "verify", "--prune")
		require.NoError(t, err)
		assert.Contains(t, out, "Pruned 1 orphan file(s)")
		assert.NoFileExists(t, orphan)
	})

	t.Run("registered block missing on disk", func(t *testing.T) {
		blocksDir := filepath.Join(t.TempDir(), "blocks")
		require.NoError(t, os.MkdirAll(blocksDir, 0750))

		registry := block.NewExcelRegistry(filepath.Join(blocksDir, "blocks_list.xlsx"))
		blk := block.New(climax.TypeVoice, 1, "source.wav", "intro")
		require.NoError(t, registry.Append(context.Background(), blk))

		out, err := execute(t, blocksDir, "verify")
		require.Error(t, err)
		assert.Contains(t, out, "missing: v1")
	})
}
