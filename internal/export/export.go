// Package export serializes position-report snapshots (or the raw
// sentence log) into the supported interchange formats.
//
// Every writer here is a pure function of the snapshot it is handed:
// exporting the same snapshot twice yields byte-identical output. The
// caller guarantees no ingest is running while a full export is taken.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gpsnmea/internal/track"
)

// Format selects an export serialization.
type Format string

const (
	CSV     Format = "csv"
	TSV     Format = "tsv"
	JSONL   Format = "jsonl"
	GeoJSON Format = "geojson"
	KML     Format = "kml"
	XLSX    Format = "xlsx"
	NMEA    Format = "nmea"
)

var (
	ErrUnknownFormat = errors.New("export: unknown format")

	// ErrIngestActive is returned when a full export is requested while
	// a live read loop is still feeding the session.
	ErrIngestActive = errors.New("export: ingest in progress")
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, TSV, JSONL, GeoJSON, KML, XLSX, NMEA:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type served for a format.
func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv; charset=utf-8"
	case TSV:
		return "text/tab-separated-values; charset=utf-8"
	case JSONL:
		return "application/x-ndjson"
	case GeoJSON:
		return "application/geo+json"
	case KML:
		return "application/vnd.google-earth.kml+xml"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Positions serializes a snapshot of position reports. The NMEA format
// is the raw-log passthrough and goes through Raw instead.
func Positions(w io.Writer, f Format, reports []track.Report) error {
	switch f {
	case CSV:
		return writeSeparated(w, reports, ',')
	case TSV:
		return writeSeparated(w, reports, '\t')
	case JSONL:
		return writeJSONL(w, reports)
	case GeoJSON:
		return writeGeoJSON(w, reports)
	case KML:
		return writeKML(w, reports)
	case XLSX:
		return writeXLSX(w, reports)
	case NMEA:
		return fmt.Errorf("%w: nmea export reads the raw sentence log", ErrUnknownFormat)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Raw dumps the raw sentence log verbatim, one sentence per line,
// including sentences that failed checksum validation.
func Raw(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("export: raw write: %w", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("export: raw write: %w", err)
		}
	}
	return nil
}
