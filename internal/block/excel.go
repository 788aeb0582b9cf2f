package block

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/maauso/blockcut/internal/climax"
)

// Compile-time check that ExcelRegistry implements Registry.
var _ Registry = (*ExcelRegistry)(nil)

// DefaultWorkbookName is the registry workbook file name inside the
// blocks directory.
const DefaultWorkbookName = "blocks_list.xlsx"

// ExcelRegistry stores blocks in an xlsx workbook with one sheet per type
// ("m" and "v"). Each sheet has a header row {<type>, origin, description}
// followed by one row per block. The workbook is created on first append.
//
// Every operation opens the workbook fresh; the tool is a single-process
// batch run, so there are no concurrent writers to coordinate with.
type ExcelRegistry struct {
	path string
}

// NewExcelRegistry creates a registry backed by the workbook at path.
func NewExcelRegistry(path string) *ExcelRegistry {
	return &ExcelRegistry{path: path}
}

// Path returns the workbook path.
func (r *ExcelRegistry) Path() string {
	return r.path
}

// Append adds a row for the block to its type's sheet, creating the
// workbook and both sheets if needed.
func (r *ExcelRegistry) Append(ctx context.Context, b Block) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}
	if !b.Type.IsValid() {
		return ErrUnknownType
	}

	f, err := r.open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	sheet := string(b.Type)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	rowNum := len(rows) + 1
	cells := []struct {
		col   string
		value string
	}{
		{"A", b.ID()},
		{"B", b.Origin},
		{"C", b.Description},
	}
	for _, c := range cells {
		cell := fmt.Sprintf("%s%d", c.col, rowNum)
		if err := f.SetCellValue(sheet, cell, c.value); err != nil {
			return fmt.Errorf("write cell %s!%s: %w", sheet, cell, err)
		}
	}

	if err := f.SaveAs(r.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// ReadAll returns every block registered on the type's sheet.
// A missing workbook yields an empty result, matching a fresh run.
func (r *ExcelRegistry) ReadAll(ctx context.Context, typ climax.Type) ([]Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}
	if !typ.IsValid() {
		return nil, ErrUnknownType
	}

	if _, err := os.Stat(r.path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(string(typ))
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", typ, err)
	}

	var blocks []Block
	for i, row := range rows {
		if i == 0 || len(row) == 0 || row[0] == "" {
			continue // header or padding row
		}

		idType, seq, err := ParseID(row[0])
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", typ, i+1, err)
		}
		if idType != typ {
			return nil, fmt.Errorf("sheet %s row %d: id %q belongs to sheet %s", typ, i+1, row[0], idType)
		}

		b := Block{Type: typ, Seq: seq}
		if len(row) > 1 {
			b.Origin = row[1]
		}
		if len(row) > 2 {
			b.Description = row[2]
		}
		blocks = append(blocks, b)
	}

	return blocks, nil
}

// NextSeq returns one past the number of registered blocks of the type.
func (r *ExcelRegistry) NextSeq(ctx context.Context, typ climax.Type) (int, error) {
	blocks, err := r.ReadAll(ctx, typ)
	if err != nil {
		return 0, err
	}
	return len(blocks) + 1, nil
}

// open loads the workbook, creating it with both type sheets and header
// rows when it does not exist yet.
func (r *ExcelRegistry) open() (*excelize.File, error) {
	if _, err := os.Stat(r.path); err == nil {
		f, err := excelize.OpenFile(r.path)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		return f, nil
	}

	f := excelize.NewFile()
	for _, typ := range []climax.Type{climax.TypeMusic, climax.TypeVoice} {
		sheet := string(typ)
		if _, err := f.NewSheet(sheet); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		headers := []string{sheet, "origin", "description"}
		for i, h := range headers {
			cell := fmt.Sprintf("%c1", 'A'+i)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("write header %s!%s: %w", sheet, cell, err)
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}

	return f, nil
}
