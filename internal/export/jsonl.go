package export

import (
	"encoding/json"
	"io"

	"gpsnmea/internal/track"
)

type lineRecord struct {
	Ref  int64   `json:"ref"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Time string  `json:"time"`
}

func writeJSONL(w io.Writer, reports []track.Report) error {
	enc := json.NewEncoder(w)
	for _, r := range reports {
		if err := enc.Encode(lineRecord{Ref: r.Ref, Lat: r.Lat, Lon: r.Lon, Time: r.Stamp()}); err != nil {
			return err
		}
	}
	return nil
}
