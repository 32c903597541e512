package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gpsnmea/internal/config"
	"gpsnmea/internal/export"
	"gpsnmea/internal/track"
)

// exportToFile writes the session snapshot to cfg.Path. For KML with
// network_link enabled it also drops an open_this.kml next to the
// export so a viewer keeps refreshing the primary file.
func exportToFile(session *track.Session, cfg config.ExportConfig) error {
	if session.Live() {
		return export.ErrIngestActive
	}
	f, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	out, err := os.Create(cfg.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", cfg.Path, err)
	}
	defer out.Close()

	if f == export.NMEA {
		err = export.Raw(out, session.RawLines())
	} else {
		err = export.Positions(out, f, session.Store().All())
	}
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", cfg.Path, err)
	}

	if f == export.KML && cfg.NetworkLink {
		linkPath := filepath.Join(filepath.Dir(cfg.Path), "open_this.kml")
		link, err := os.Create(linkPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", linkPath, err)
		}
		defer link.Close()
		if err := export.NetworkLink(link, filepath.Base(cfg.Path)); err != nil {
			return err
		}
		return link.Close()
	}
	return nil
}
