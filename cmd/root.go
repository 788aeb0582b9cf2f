// Package cmd implements the blockcut command line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/maauso/blockcut/internal/bootstrap"
	"github.com/maauso/blockcut/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "blockcut",
	Short: "Slice audio into blocks and sequence them onto timelines",
	Long: `Blockcut cuts fixed-length, fade-treated blocks out of long audio
recordings around marked climax points, keeps a spreadsheet registry of
every block, and sequences the accumulated pool onto a two-channel
music/voice timeline.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(sliceCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sequenceCmd)
	rootCmd.AddCommand(verifyCmd)

	rootCmd.PersistentFlags().String("blocks-dir", "", "blocks directory (overrides BLOCKCUT_BLOCKS_DIR)")
	rootCmd.PersistentFlags().String("registry", "", "registry workbook path (overrides BLOCKCUT_REGISTRY_FILE)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "random seed, 0 means time-derived (overrides BLOCKCUT_SEED)")
}

// setup loads the environment configuration, applies any persistent flag
// overrides, and wires the dependencies for one command invocation.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, *bootstrap.Dependencies, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("blocks-dir") {
		cfg.BlocksDir, _ = flags.GetString("blocks-dir")
	}
	if flags.Changed("registry") {
		cfg.RegistryFile, _ = flags.GetString("registry")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}

	logger := cfg.NewLogger()
	logger.Debug("configuration loaded", slog.String("config", cfg.String()))

	deps, err := bootstrap.NewDependencies(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, deps, nil
}
