package nmea

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrCoordinate = errors.New("nmea: invalid coordinate")
	ErrTime       = errors.New("nmea: invalid time")
	ErrDate       = errors.New("nmea: invalid date")
)

// ParseLat decodes a ddmm.mmmm latitude field plus its N/S hemisphere
// letter into signed decimal degrees (south negative).
func ParseLat(v, hemi string) (float64, error) {
	return parseAngle(v, hemi, "NS", 90)
}

// ParseLon decodes a dddmm.mmmm longitude field plus its E/W hemisphere
// letter into signed decimal degrees (west negative).
func ParseLon(v, hemi string) (float64, error) {
	return parseAngle(v, hemi, "EW", 180)
}

func parseAngle(v, hemi, hemis string, maxDeg int) (float64, error) {
	v = strings.TrimSpace(v)
	hemi = strings.ToUpper(strings.TrimSpace(hemi))
	if len(hemi) != 1 || !strings.Contains(hemis, hemi) {
		return 0, fmt.Errorf("%w: hemisphere %q", ErrCoordinate, hemi)
	}
	// The field is strictly digits with at most one dot. Signs are not
	// part of the format; the hemisphere letter carries the direction.
	dot := strings.IndexByte(v, '.')
	for i := 0; i < len(v); i++ {
		if (v[i] < '0' || v[i] > '9') && i != dot {
			return 0, fmt.Errorf("%w: %q", ErrCoordinate, v)
		}
	}
	// The last two integer digits are whole minutes; everything before
	// them is whole degrees.
	intPart := v
	if dot != -1 {
		intPart = v[:dot]
	}
	if len(intPart) < 3 {
		return 0, fmt.Errorf("%w: %q", ErrCoordinate, v)
	}
	deg, err := strconv.Atoi(intPart[:len(intPart)-2])
	if err != nil {
		return 0, fmt.Errorf("%w: degrees in %q", ErrCoordinate, v)
	}
	mins, err := strconv.ParseFloat(v[len(intPart)-2:], 64)
	if err != nil || mins >= 60 {
		return 0, fmt.Errorf("%w: minutes in %q", ErrCoordinate, v)
	}
	if deg > maxDeg {
		return 0, fmt.Errorf("%w: %d degrees exceeds %d", ErrCoordinate, deg, maxDeg)
	}
	dec := float64(deg) + mins/60.0
	if dec > float64(maxDeg) {
		return 0, fmt.Errorf("%w: %q out of range", ErrCoordinate, v)
	}
	if hemi == "S" || hemi == "W" {
		dec = -dec
	}
	return dec, nil
}

// Clock is a UTC time of day with millisecond precision.
type Clock struct {
	Hour, Minute, Second, Milli int
}

// At anchors the clock on a calendar date. The zero date yields a
// time whose date component is not meaningful.
func (c Clock) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		c.Hour, c.Minute, c.Second, c.Milli*int(time.Millisecond), time.UTC)
}

func (c Clock) String() string {
	if c.Milli != 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", c.Hour, c.Minute, c.Second, c.Milli)
	}
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// ParseClock decodes an HHMMSS or HHMMSS.sss time field. Fractional
// seconds are kept to millisecond precision and truncated beyond that.
func ParseClock(v string) (Clock, error) {
	v = strings.TrimSpace(v)
	if len(v) < 6 {
		return Clock{}, fmt.Errorf("%w: %q", ErrTime, v)
	}
	for i := 0; i < 6; i++ {
		if v[i] < '0' || v[i] > '9' {
			return Clock{}, fmt.Errorf("%w: %q", ErrTime, v)
		}
	}
	hh, _ := strconv.Atoi(v[0:2])
	mm, _ := strconv.Atoi(v[2:4])
	ss, _ := strconv.Atoi(v[4:6])
	if hh > 23 || mm > 59 || ss > 59 {
		return Clock{}, fmt.Errorf("%w: %q", ErrTime, v)
	}
	c := Clock{Hour: hh, Minute: mm, Second: ss}
	if len(v) > 6 {
		if v[6] != '.' || len(v) == 7 {
			return Clock{}, fmt.Errorf("%w: %q", ErrTime, v)
		}
		frac := v[7:]
		if len(frac) > 3 {
			frac = frac[:3]
		}
		for i := 0; i < len(frac); i++ {
			if frac[i] < '0' || frac[i] > '9' {
				return Clock{}, fmt.Errorf("%w: %q", ErrTime, v)
			}
		}
		for len(frac) < 3 {
			frac += "0"
		}
		c.Milli, _ = strconv.Atoi(frac)
	}
	return c, nil
}

// ParseDate decodes a DDMMYY date field to a UTC calendar date at
// midnight. Two-digit years map to 2000+YY unconditionally; dates before
// 2000 cannot be represented.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if len(v) != 6 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDate, v)
	}
	for i := 0; i < 6; i++ {
		if v[i] < '0' || v[i] > '9' {
			return time.Time{}, fmt.Errorf("%w: %q", ErrDate, v)
		}
	}
	dd, _ := strconv.Atoi(v[0:2])
	mm, _ := strconv.Atoi(v[2:4])
	yy, _ := strconv.Atoi(v[4:6])
	if dd < 1 || dd > 31 || mm < 1 || mm > 12 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDate, v)
	}
	return time.Date(2000+yy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC), nil
}
