package main

import (
	"fmt"

	"gpsnmea/internal/track"
)

// printSummary mirrors the stats view: totals, error counters, the
// start/end of the track and speed aggregates.
func printSummary(source string, s track.Summary) {
	fmt.Printf("source: %s\n", source)
	fmt.Printf("sentences: %d\n", s.Sentences)
	fmt.Printf("checksum_errors: %d\n", s.ChecksumErrors)
	fmt.Printf("decode_errors: %d\n", s.DecodeErrors)
	fmt.Printf("positions: %d\n", s.Positions)
	if s.Start != nil {
		fmt.Printf("start: %.6f,%.6f at %s\n", s.Start.Lat, s.Start.Lon, s.Start.Stamp())
	}
	if s.End != nil {
		fmt.Printf("end: %.6f,%.6f at %s\n", s.End.Lat, s.End.Lon, s.End.Stamp())
	}
	if s.Duration > 0 {
		fmt.Printf("duration: %s\n", s.Duration)
	}
	if s.HasSpeed {
		fmt.Printf("max_speed_kt: %.1f\n", s.MaxSpeedKt)
		fmt.Printf("avg_speed_kt: %.3f\n", s.AvgSpeedKt)
	}
}
