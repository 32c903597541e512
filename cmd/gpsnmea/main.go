package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gpsnmea/internal/config"
	"gpsnmea/internal/reader"
	"gpsnmea/internal/track"
	"gpsnmea/internal/web"
)

func main() {
	var configPath string
	var inputPath string
	var exportFormat string
	var exportPath string
	flag.StringVar(&configPath, "config", "", "Path to YAML config")
	flag.StringVar(&inputPath, "input", "", "NMEA capture file to replay (overrides config)")
	flag.StringVar(&exportFormat, "export", "", "Export format: csv, tsv, jsonl, geojson, kml, xlsx, nmea")
	flag.StringVar(&exportPath, "out", "", "Export destination path")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	}
	if inputPath != "" {
		cfg.Capture.Path = inputPath
		cfg.Serial.Enable = false
	}
	if exportFormat != "" {
		cfg.Export.Format = exportFormat
		cfg.Export.Path = exportPath
	}

	session := track.NewSession(cfg.RawLog.MaxLines)

	if cfg.Capture.Path != "" {
		runCapture(session, cfg)
		return
	}
	if !cfg.Serial.Enable {
		log.Fatalf("no input source: enable serial or set a capture path")
	}
	runLive(session, cfg)
}

func runCapture(session *track.Session, cfg config.Config) {
	if err := reader.ReplayFile(cfg.Capture.Path, session.Process); err != nil {
		log.Fatalf("capture replay failed: %v", err)
	}
	printSummary(cfg.Capture.Path, session.Summary())

	if cfg.Export.Format != "" {
		if err := exportToFile(session, cfg.Export); err != nil {
			log.Fatalf("export failed: %v", err)
		}
		log.Printf("exported format=%s path=%s", cfg.Export.Format, cfg.Export.Path)
	}
}

func runLive(session *track.Session, cfg config.Config) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc := reader.New(reader.Config{
		Device:     cfg.Serial.Device,
		Baud:       cfg.Serial.Baud,
		RawLogPath: cfg.RawLog.Path,
	}, session.Process)

	session.SetLive(true)
	if err := svc.Start(ctx); err != nil {
		log.Fatalf("serial reader init failed: %v", err)
	}
	defer svc.Close()

	var srv *http.Server
	if cfg.Web.Enable {
		srv = &http.Server{Addr: cfg.Web.Addr, Handler: web.Handler(session)}
		log.Printf("web api listening addr=%s", cfg.Web.Addr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("web server stopped: %v", err)
				cancel()
			}
		}()
	}

	<-ctx.Done()
	log.Printf("gpsnmea stopping")

	// Pause ingestion before any final snapshot work.
	svc.Close()
	session.SetLive(false)

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}

	printSummary(cfg.Serial.Device, session.Summary())
	if cfg.Export.Format != "" {
		if err := exportToFile(session, cfg.Export); err != nil {
			log.Printf("final export failed: %v", err)
			return
		}
		log.Printf("exported format=%s path=%s", cfg.Export.Format, cfg.Export.Path)
	}
}
