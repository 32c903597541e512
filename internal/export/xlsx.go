package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gpsnmea/internal/track"
)

// writeXLSX emits the same table as the CSV export as a spreadsheet,
// with numeric lat/lon cells.
func writeXLSX(w io.Writer, reports []track.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Positions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("export: xlsx sheet: %w", err)
	}

	header := []any{"ref", "latitude", "longitude", "timestamp"}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, r := range reports {
		row := []any{r.Ref, r.Lat, r.Lon, r.Stamp()}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: xlsx write: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("export: xlsx cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("export: xlsx cell %s: %w", cell, err)
		}
	}
	return nil
}
