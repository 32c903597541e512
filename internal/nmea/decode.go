package nmea

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnsupported marks a sentence type outside the decoded set.
	// Such sentences are valid NMEA and are counted but ignored.
	ErrUnsupported = errors.New("nmea: unsupported sentence type")

	// ErrDecode marks a recognized sentence with an unusable payload.
	ErrDecode = errors.New("nmea: decode failed")
)

// Fragment is the partial position data contributed by one sentence.
type Fragment struct {
	Type string

	HasPosition bool
	Lat, Lon    float64

	HasClock bool
	Clock    Clock

	HasDate bool
	Date    time.Time

	FixQuality *int
	SpeedKt    *float64
	CourseDeg  *float64

	// NoFix marks a position sentence whose validity flag reports no
	// usable fix. The sentence parsed cleanly but must not be stored.
	NoFix bool
}

// Decode dispatches on the sentence type code. The supported set is
// closed: GGA, RMC, GLL and VTG; everything else is ErrUnsupported.
func Decode(s Sentence) (Fragment, error) {
	switch s.Type {
	case "GGA":
		return decodeGGA(s)
	case "RMC":
		return decodeRMC(s)
	case "GLL":
		return decodeGLL(s)
	case "VTG":
		return decodeVTG(s)
	default:
		return Fragment{}, fmt.Errorf("%w: %s", ErrUnsupported, s.Type)
	}
}

// GGA: Global Positioning System Fix Data
// Fields (after the address field):
//
//	0: time (hhmmss.sss)
//	1: latitude (ddmm.mmmm)
//	2: N/S
//	3: longitude (dddmm.mmmm)
//	4: E/W
//	5: fix quality (0 = no fix)
//	6: satellites tracked
//	7: HDOP
//	8: altitude (metres)
func decodeGGA(s Sentence) (Fragment, error) {
	if len(s.Fields) < 6 {
		return Fragment{}, fmt.Errorf("%w: GGA wants 6+ fields, got %d", ErrDecode, len(s.Fields))
	}
	f := Fragment{Type: s.Type}
	q := strings.TrimSpace(s.Fields[5])
	if q == "" || q == "0" {
		// No usable fix, but the time field still advances the session
		// clock when it parses.
		f.NoFix = true
		if clock, err := ParseClock(s.Fields[0]); err == nil {
			f.HasClock, f.Clock = true, clock
		}
		return f, nil
	}
	quality, err := strconv.Atoi(q)
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: GGA fix quality %q", ErrDecode, q)
	}
	f.FixQuality = &quality

	lat, err := ParseLat(s.Fields[1], s.Fields[2])
	if err != nil {
		return Fragment{}, fmt.Errorf("GGA: %w", err)
	}
	lon, err := ParseLon(s.Fields[3], s.Fields[4])
	if err != nil {
		return Fragment{}, fmt.Errorf("GGA: %w", err)
	}
	clock, err := ParseClock(s.Fields[0])
	if err != nil {
		return Fragment{}, fmt.Errorf("GGA: %w", err)
	}
	f.HasPosition, f.Lat, f.Lon = true, lat, lon
	f.HasClock, f.Clock = true, clock
	return f, nil
}

// RMC: Recommended Minimum Specific GNSS Data
// Fields (after the address field):
//
//	0: time (hhmmss.sss)
//	1: status (A=active, V=void)
//	2: latitude (ddmm.mmmm)
//	3: N/S
//	4: longitude (dddmm.mmmm)
//	5: E/W
//	6: speed over ground (knots)
//	7: course over ground (deg)
//	8: date (ddmmyy)
func decodeRMC(s Sentence) (Fragment, error) {
	if len(s.Fields) < 9 {
		return Fragment{}, fmt.Errorf("%w: RMC wants 9+ fields, got %d", ErrDecode, len(s.Fields))
	}
	f := Fragment{Type: s.Type}
	if strings.TrimSpace(s.Fields[1]) != "A" {
		// Void fix: keep whatever time/date still parses so later
		// sentences inherit them.
		f.NoFix = true
		if clock, err := ParseClock(s.Fields[0]); err == nil {
			f.HasClock, f.Clock = true, clock
		}
		if date, err := ParseDate(s.Fields[8]); err == nil {
			f.HasDate, f.Date = true, date
		}
		return f, nil
	}

	lat, err := ParseLat(s.Fields[2], s.Fields[3])
	if err != nil {
		return Fragment{}, fmt.Errorf("RMC: %w", err)
	}
	lon, err := ParseLon(s.Fields[4], s.Fields[5])
	if err != nil {
		return Fragment{}, fmt.Errorf("RMC: %w", err)
	}
	clock, err := ParseClock(s.Fields[0])
	if err != nil {
		return Fragment{}, fmt.Errorf("RMC: %w", err)
	}
	date, err := ParseDate(s.Fields[8])
	if err != nil {
		return Fragment{}, fmt.Errorf("RMC: %w", err)
	}

	f.HasPosition, f.Lat, f.Lon = true, lat, lon
	f.HasClock, f.Clock = true, clock
	f.HasDate, f.Date = true, date
	f.SpeedKt = optionalFloat(s.Fields[6])
	f.CourseDeg = optionalFloat(s.Fields[7])
	return f, nil
}

// GLL: Geographic Position, Latitude/Longitude
// Fields (after the address field):
//
//	0: latitude (ddmm.mmmm)
//	1: N/S
//	2: longitude (dddmm.mmmm)
//	3: E/W
//	4: time (hhmmss.sss)
//	5: status (A=valid, V=not valid)
func decodeGLL(s Sentence) (Fragment, error) {
	if len(s.Fields) < 6 {
		return Fragment{}, fmt.Errorf("%w: GLL wants 6+ fields, got %d", ErrDecode, len(s.Fields))
	}
	f := Fragment{Type: s.Type}
	if strings.TrimSpace(s.Fields[5]) != "A" {
		f.NoFix = true
		if clock, err := ParseClock(s.Fields[4]); err == nil {
			f.HasClock, f.Clock = true, clock
		}
		return f, nil
	}

	lat, err := ParseLat(s.Fields[0], s.Fields[1])
	if err != nil {
		return Fragment{}, fmt.Errorf("GLL: %w", err)
	}
	lon, err := ParseLon(s.Fields[2], s.Fields[3])
	if err != nil {
		return Fragment{}, fmt.Errorf("GLL: %w", err)
	}
	clock, err := ParseClock(s.Fields[4])
	if err != nil {
		return Fragment{}, fmt.Errorf("GLL: %w", err)
	}
	f.HasPosition, f.Lat, f.Lon = true, lat, lon
	f.HasClock, f.Clock = true, clock
	return f, nil
}

// VTG: Course Over Ground and Ground Speed
// Fields (after the address field):
//
//	0: course over ground, true (deg)
//	1: reference (T)
//	2: course over ground, magnetic (deg)
//	3: reference (M)
//	4: speed over ground (knots)
//	5: units (N)
//
// VTG carries no position and never creates a report on its own; it can
// only enrich the most recent one.
func decodeVTG(s Sentence) (Fragment, error) {
	if len(s.Fields) < 5 {
		return Fragment{}, fmt.Errorf("%w: VTG wants 5+ fields, got %d", ErrDecode, len(s.Fields))
	}
	f := Fragment{Type: s.Type}
	f.CourseDeg = optionalFloat(s.Fields[0])
	f.SpeedKt = optionalFloat(s.Fields[4])
	return f, nil
}

// optionalFloat parses a field that receivers routinely leave empty.
// An unparseable non-empty value is treated the same as absent.
func optionalFloat(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &x
}
