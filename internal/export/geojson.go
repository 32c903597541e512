package export

import (
	"encoding/json"
	"io"

	"gpsnmea/internal/track"
)

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string     `json:"type"`
	Geometry   geometry   `json:"geometry"`
	Properties lineRecord `json:"properties"`
}

type geometry struct {
	Type string `json:"type"`
	// Coordinates follow GeoJSON order: longitude first.
	Coordinates [2]float64 `json:"coordinates"`
}

func writeGeoJSON(w io.Writer, reports []track.Report) error {
	fc := featureCollection{
		Type:     "FeatureCollection",
		Features: make([]feature, 0, len(reports)),
	}
	for _, r := range reports {
		fc.Features = append(fc.Features, feature{
			Type:       "Feature",
			Geometry:   geometry{Type: "Point", Coordinates: [2]float64{r.Lon, r.Lat}},
			Properties: lineRecord{Ref: r.Ref, Lat: r.Lat, Lon: r.Lon, Time: r.Stamp()},
		})
	}
	return json.NewEncoder(w).Encode(fc)
}
