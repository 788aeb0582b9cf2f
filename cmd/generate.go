package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maauso/blockcut/internal/climax"
)

var generateCmd = &cobra.Command{
	Use:   "generate <audio-file>",
	Short: "Generate random non-overlapping climax points for a recording",
	Long: `Generate probes the source duration, samples random climax points whose
slice windows do not overlap until the requested total duration is
covered, and writes them as an Audacity-style label file ready for the
slice command.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Float64P("total", "t", 0, "total slice duration to cover in seconds (required)")
	generateCmd.Flags().StringP("out", "o", "", "label file to write (required)")
	generateCmd.Flags().Float64P("slice-duration", "d", 0, "block length in seconds (overrides BLOCKCUT_SLICE_DURATION_SEC)")
	generateCmd.Flags().Float64("music-ratio", 0, "probability a point is music (overrides BLOCKCUT_MUSIC_RATIO)")
	_ = generateCmd.MarkFlagRequired("total")
	_ = generateCmd.MarkFlagRequired("out")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, deps, err := setup(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	total, _ := flags.GetFloat64("total")
	out, _ := flags.GetString("out")

	sourceDuration, err := deps.Processor.Duration(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("probe source duration: %w", err)
	}

	opts := climax.Options{
		TargetTotal:    total,
		SourceDuration: sourceDuration,
		SliceDuration:  cfg.SliceDurationSec,
		MusicRatio:     cfg.MusicRatio,
		MaxTries:       cfg.MaxPlaceTries,
	}
	if flags.Changed("slice-duration") {
		opts.SliceDuration, _ = flags.GetFloat64("slice-duration")
	}
	if flags.Changed("music-ratio") {
		opts.MusicRatio, _ = flags.GetFloat64("music-ratio")
	}

	points, err := climax.Generate(deps.Rand, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(out) // #nosec G304 - path is provided by the operator
	if err != nil {
		return fmt.Errorf("create label file: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := climax.WriteLabels(f, points); err != nil {
		return fmt.Errorf("write label file: %w", err)
	}

	logger.Info("labels generated",
		"points", len(points),
		"source_duration_sec", sourceDuration,
		"path", out,
	)
	cmd.Printf("Wrote %d points covering %.1fs to %s\n", len(points), float64(len(points))*opts.SliceDuration, out)
	return nil
}
