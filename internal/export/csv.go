package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"gpsnmea/internal/track"
)

// writeSeparated emits the CSV/TSV table: a fixed header row, then one
// row per report with coordinates at a stable 6-decimal precision.
func writeSeparated(w io.Writer, reports []track.Report, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write([]string{"ref", "latitude", "longitude", "timestamp"}); err != nil {
		return err
	}
	for _, r := range reports {
		rec := []string{
			strconv.FormatInt(r.Ref, 10),
			strconv.FormatFloat(r.Lat, 'f', 6, 64),
			strconv.FormatFloat(r.Lon, 'f', 6, 64),
			r.Stamp(),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
