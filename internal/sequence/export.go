package sequence

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// csvHeader is the column layout of the timeline report.
var csvHeader = []string{"block", "channel", "start_sec", "end_sec", "description"}

// WriteCSV writes the flat timeline report: one row per placement, ordered
// by start time across both channels.
func WriteCSV(w io.Writer, t Timeline) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write timeline header: %w", err)
	}
	for _, p := range t.Flatten() {
		row := []string{
			p.Block.ID(),
			channelOf(p.Block.Type),
			fmt.Sprintf("%.3f", p.Start),
			fmt.Sprintf("%.3f", p.End),
			p.Block.Description,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write timeline row for %s: %w", p.Block.ID(), err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush timeline report: %w", err)
	}
	return nil
}

// WriteCSVFile writes the timeline report to a file.
func WriteCSVFile(path string, t Timeline) error {
	f, err := os.Create(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return fmt.Errorf("create timeline report: %w", err)
	}

	if err := WriteCSV(f, t); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close timeline report: %w", err)
	}
	return nil
}
