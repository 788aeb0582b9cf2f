package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maauso/blockcut/internal/sequencer"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Build a two-channel timeline from the registered blocks",
	Long: `Sequence shuffles the music and voice block pools, chains each pool
back to back on its own channel with the voice channel delayed by the
configured offset, and writes the timeline as a CSV report. With
--render it also mixes the placements into one audio file.`,
	Args: cobra.NoArgs,
	RunE: runSequence,
}

func init() {
	sequenceCmd.Flags().StringP("timeline", "t", "timeline.csv", "CSV timeline report to write")
	sequenceCmd.Flags().StringP("render", "r", "", "render the mixed timeline to this audio file")
	sequenceCmd.Flags().Float64("offset", 0, "voice channel start delay in seconds (overrides BLOCKCUT_CHANNEL_OFFSET_SEC)")
	sequenceCmd.Flags().Bool("publish", false, "upload the rendered mix to the configured S3 bucket")
}

func runSequence(cmd *cobra.Command, _ []string) error {
	cfg, _, deps, err := setup(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	timelinePath, _ := flags.GetString("timeline")
	renderPath, _ := flags.GetString("render")
	publish, _ := flags.GetBool("publish")

	offset := cfg.ChannelOffsetSec
	if flags.Changed("offset") {
		offset, _ = flags.GetFloat64("offset")
	}

	result, err := deps.Sequencer.Run(cmd.Context(), sequencer.Request{
		ChannelOffset: offset,
		TimelinePath:  timelinePath,
		RenderPath:    renderPath,
		Publish:       publish,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Timeline: %d music + %d voice placements, %.1fs total\n",
		len(result.Timeline.Music), len(result.Timeline.Voice), result.Timeline.Duration())
	cmd.Printf("Report written to %s\n", result.TimelinePath)
	if result.RenderPath != "" {
		cmd.Printf("Mix rendered to %s\n", result.RenderPath)
	}
	if result.PublishedURL != "" {
		cmd.Printf("Mix published at %s\n", result.PublishedURL)
	}
	return nil
}
