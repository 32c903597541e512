package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gpsnmea/internal/config"
	"gpsnmea/internal/nmea"
	"gpsnmea/internal/reader"
	"gpsnmea/internal/track"
)

func nmeaLine(body string) string {
	return fmt.Sprintf("$%s*%02X", body, nmea.Checksum(body))
}

func TestCaptureReplayAndExport(t *testing.T) {
	dir := t.TempDir()
	capture := filepath.Join(dir, "walk.nmea")
	lines := []string{
		nmeaLine("GNRMC,135734.00,A,5152.423142,N,00210.276118,W,0.0,,100221,4.2,W,A"),
		nmeaLine("GNRMC,140721.00,A,5152.227082,N,00210.332037,W,2.8,4.8,100221,4.2,W,A"),
	}
	if err := os.WriteFile(capture, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write capture: %v", err)
	}

	session := track.NewSession(0)
	if err := reader.ReplayFile(capture, session.Process); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if got := session.Store().Count(); got != 2 {
		t.Fatalf("expected 2 positions, got %d", got)
	}

	outPath := filepath.Join(dir, "out.kml")
	err := exportToFile(session, config.ExportConfig{Format: "kml", Path: outPath, NetworkLink: true})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	kml, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read kml: %v", err)
	}
	if !strings.Contains(string(kml), "<Placemark>") {
		t.Fatalf("kml missing placemarks:\n%s", kml)
	}
	link, err := os.ReadFile(filepath.Join(dir, "open_this.kml"))
	if err != nil {
		t.Fatalf("network link not written: %v", err)
	}
	if !strings.Contains(string(link), "<href>out.kml</href>") {
		t.Fatalf("network link points elsewhere:\n%s", link)
	}
}

func TestExportRefusedWhileLive(t *testing.T) {
	session := track.NewSession(0)
	session.SetLive(true)
	err := exportToFile(session, config.ExportConfig{Format: "csv", Path: filepath.Join(t.TempDir(), "out.csv")})
	if err == nil {
		t.Fatalf("expected ErrIngestActive")
	}
}
