package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maauso/blockcut/internal/block"
	"github.com/maauso/blockcut/internal/climax"
	"github.com/maauso/blockcut/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Reconcile the blocks directory against the registry",
	Long: `Verify diffs the block files on disk against the registry workbook and
reports orphans (files without a registry row) and missing blocks
(registry rows without a file). Exits non-zero when they diverge.

With --prune, orphan files are deleted before the result is judged;
missing blocks always require manual reconciliation.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().Bool("prune", false, "delete orphan block files from the blocks directory")
}

func runVerify(cmd *cobra.Command, _ []string) error {
	_, _, deps, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	files, err := deps.Store.ListFiles(ctx)
	if err != nil {
		return fmt.Errorf("list blocks directory: %w", err)
	}

	var registered []block.Block
	for _, typ := range []climax.Type{climax.TypeMusic, climax.TypeVoice} {
		blocks, err := deps.Registry.ReadAll(ctx, typ)
		if err != nil {
			return fmt.Errorf("read %s registry: %w", typ, err)
		}
		registered = append(registered, blocks...)
	}

	report := verify.Run(files, registered)
	printReport(cmd, report)

	if prune, _ := cmd.Flags().GetBool("prune"); prune && len(report.Orphans) > 0 {
		names := make([]string, 0, len(report.Orphans))
		for _, id := range report.Orphans {
			names = append(names, id+".wav")
		}
		if err := deps.Store.Remove(ctx, names); err != nil {
			return fmt.Errorf("prune orphans: %w", err)
		}
		cmd.Printf("Pruned %d orphan file(s)\n", len(names))
		report.Orphans = nil
	}

	if !report.InSync() {
		return fmt.Errorf("registry and blocks directory diverge: %d orphans, %d missing",
			len(report.Orphans), len(report.Missing))
	}
	return nil
}

// printReport renders a verification report for humans. Shared with the
// slice command, which reconciles after every run.
func printReport(cmd *cobra.Command, report verify.Report) {
	cmd.Printf("Blocks on disk: %d, registered: %d\n", report.FilesOnDisk, report.Registered)
	for _, id := range report.Orphans {
		cmd.Printf("  orphan:  %s (on disk, not registered)\n", id)
	}
	for _, id := range report.Missing {
		cmd.Printf("  missing: %s (registered, not on disk)\n", id)
	}
	if report.InSync() {
		cmd.Println("Registry and blocks directory are in sync")
	}
}
