package nmea

import (
	"errors"
	"math"
	"testing"
)

func decodeBody(t *testing.T, body string) (Fragment, error) {
	t.Helper()
	s, err := Tokenize(body)
	if err != nil {
		t.Fatalf("tokenize %q: %v", body, err)
	}
	return Decode(s)
}

func TestDecodeGGA(t *testing.T) {
	f, err := decodeBody(t, "GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !f.HasPosition {
		t.Fatalf("expected position")
	}
	if math.Abs(f.Lat-48.1173) > 1e-4 {
		t.Fatalf("unexpected lat %f", f.Lat)
	}
	if math.Abs(f.Lon-11.5167) > 1e-4 {
		t.Fatalf("unexpected lon %f", f.Lon)
	}
	if f.FixQuality == nil || *f.FixQuality != 1 {
		t.Fatalf("expected fix quality 1, got %+v", f.FixQuality)
	}
	if !f.HasClock || f.Clock.Hour != 12 || f.Clock.Minute != 35 || f.Clock.Second != 19 {
		t.Fatalf("unexpected clock %+v", f.Clock)
	}
	if f.HasDate {
		t.Fatalf("GGA must not carry a date")
	}
}

func TestDecodeGGA_NoFix(t *testing.T) {
	f, err := decodeBody(t, "GPGGA,123519,4807.038,N,01131.000,E,0,00,,,M,,M,,")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !f.NoFix {
		t.Fatalf("expected NoFix for quality 0")
	}
	if f.HasPosition {
		t.Fatalf("no-fix fragment must not carry a position")
	}
}

func TestDecodeGGA_BadCoordinate(t *testing.T) {
	_, err := decodeBody(t, "GPGGA,123519,9907.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,")
	if !errors.Is(err, ErrCoordinate) {
		t.Fatalf("expected ErrCoordinate, got %v", err)
	}
}

func TestDecodeRMC(t *testing.T) {
	f, err := decodeBody(t, "GNRMC,135903.00,A,5152.386269,N,00210.303457,W,1.9,188.3,100221,4.2,W,A")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !f.HasPosition || !f.HasClock || !f.HasDate {
		t.Fatalf("expected position+clock+date, got %+v", f)
	}
	if f.Date.Year() != 2021 || f.Date.Month() != 2 || f.Date.Day() != 10 {
		t.Fatalf("unexpected date %v", f.Date)
	}
	if f.SpeedKt == nil || math.Abs(*f.SpeedKt-1.9) > 1e-9 {
		t.Fatalf("unexpected speed %+v", f.SpeedKt)
	}
	if f.CourseDeg == nil || math.Abs(*f.CourseDeg-188.3) > 1e-9 {
		t.Fatalf("unexpected course %+v", f.CourseDeg)
	}
}

func TestDecodeRMC_EmptyCourse(t *testing.T) {
	f, err := decodeBody(t, "GNRMC,135734.00,A,5152.423142,N,00210.276118,W,0.0,,100221,4.2,W,A")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.CourseDeg != nil {
		t.Fatalf("expected nil course for empty field, got %v", *f.CourseDeg)
	}
}

func TestDecodeRMC_Void(t *testing.T) {
	f, err := decodeBody(t, "GPRMC,123519,V,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W")
	if err != nil {
		t.Fatalf("void RMC must decode cleanly, got %v", err)
	}
	if !f.NoFix {
		t.Fatalf("expected NoFix for status V")
	}
}

func TestDecodeGLL(t *testing.T) {
	f, err := decodeBody(t, "GPGLL,4916.45,N,12311.12,W,225444,A")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !f.HasPosition {
		t.Fatalf("expected position")
	}
	if f.Lon >= 0 {
		t.Fatalf("expected west longitude negative, got %f", f.Lon)
	}
	if !f.HasClock || f.Clock.Hour != 22 {
		t.Fatalf("unexpected clock %+v", f.Clock)
	}
}

func TestDecodeGLL_Void(t *testing.T) {
	f, err := decodeBody(t, "GPGLL,4916.45,N,12311.12,W,225444,V")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !f.NoFix {
		t.Fatalf("expected NoFix for status V")
	}
}

func TestDecodeVTG(t *testing.T) {
	f, err := decodeBody(t, "GPVTG,054.7,T,034.4,M,005.5,N,010.2,K")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.HasPosition {
		t.Fatalf("VTG must not carry a position")
	}
	if f.SpeedKt == nil || math.Abs(*f.SpeedKt-5.5) > 1e-9 {
		t.Fatalf("unexpected speed %+v", f.SpeedKt)
	}
	if f.CourseDeg == nil || math.Abs(*f.CourseDeg-54.7) > 1e-9 {
		t.Fatalf("unexpected course %+v", f.CourseDeg)
	}
}

func TestDecode_Unsupported(t *testing.T) {
	_, err := decodeBody(t, "GPTXT,01,01,02,u-blox ag - www.u-blox.com")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestDecode_ShortPayload(t *testing.T) {
	_, err := decodeBody(t, "GPGGA,123519")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}
