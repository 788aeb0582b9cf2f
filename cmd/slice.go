package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maauso/blockcut/internal/slicer"
)

var sliceCmd = &cobra.Command{
	Use:   "slice <audio-file>",
	Short: "Cut blocks out of a source recording around its climax points",
	Long: `Slice reads an Audacity-style label file, cuts one fixed-length block
per climax point with symmetric fades, registers each block in the
spreadsheet registry, and reconciles the blocks directory afterwards.

Points whose window cannot be planned or cut are skipped; the run
continues and exits non-zero if any point failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runSlice,
}

func init() {
	sliceCmd.Flags().StringP("labels", "l", "", "label file with climax points (required)")
	sliceCmd.Flags().Float64P("slice-duration", "d", 0, "block length in seconds (overrides BLOCKCUT_SLICE_DURATION_SEC)")
	sliceCmd.Flags().Float64P("fade-duration", "f", 0, "fade in/out length in seconds (overrides BLOCKCUT_FADE_DURATION_SEC)")
	sliceCmd.Flags().Bool("no-normalize", false, "skip loudness normalization")
	sliceCmd.Flags().Bool("publish", false, "upload each block to the configured S3 bucket")
	_ = sliceCmd.MarkFlagRequired("labels")
}

func runSlice(cmd *cobra.Command, args []string) error {
	cfg, _, deps, err := setup(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	labels, _ := flags.GetString("labels")
	noNormalize, _ := flags.GetBool("no-normalize")
	publish, _ := flags.GetBool("publish")

	sliceDuration := cfg.SliceDurationSec
	if flags.Changed("slice-duration") {
		sliceDuration, _ = flags.GetFloat64("slice-duration")
	}
	fadeDuration := cfg.FadeDurationSec
	if flags.Changed("fade-duration") {
		fadeDuration, _ = flags.GetFloat64("fade-duration")
	}

	result, err := deps.Slicer.Run(cmd.Context(), slicer.Request{
		AudioPath:     args[0],
		LabelPath:     labels,
		SliceDuration: sliceDuration,
		FadeDuration:  fadeDuration,
		Normalize:     !noNormalize,
		Publish:       publish,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Source: %s (%.1fs)\n", args[0], result.SourceDuration)
	for _, blk := range result.Exported {
		cmd.Printf("  exported %s  %s\n", blk.ID(), blk.Description)
	}
	for _, f := range result.Failures {
		cmd.Printf("  skipped  %s: %v\n", f.Point, f.Err)
	}
	printReport(cmd, result.Report)

	if len(result.Failures) > 0 {
		return fmt.Errorf("%d of %d points failed", len(result.Failures), len(result.Exported)+len(result.Failures))
	}
	return nil
}
