package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Capture CaptureConfig `yaml:"capture"`
	Web     WebConfig     `yaml:"web"`
	RawLog  RawLogConfig  `yaml:"rawlog"`
	Export  ExportConfig  `yaml:"export"`
}

type SerialConfig struct {
	Enable bool   `yaml:"enable"`
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

type CaptureConfig struct {
	Path string `yaml:"path"`
}

type WebConfig struct {
	Enable bool   `yaml:"enable"`
	Addr   string `yaml:"addr"`
}

type RawLogConfig struct {
	// Path optionally mirrors every received serial line to a file.
	Path string `yaml:"path"`
	// MaxLines caps the in-memory raw sentence buffer; 0 = unbounded.
	MaxLines int `yaml:"max_lines"`
}

type ExportConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
	// NetworkLink also writes a companion open_this.kml next to a KML
	// export for live-refresh viewing.
	NetworkLink bool `yaml:"network_link"`
}

var exportFormats = map[string]bool{
	"csv": true, "tsv": true, "jsonl": true, "geojson": true,
	"kml": true, "xlsx": true, "nmea": true,
}

// Default returns the configuration used when no file is given: live
// serial ingest with auto-detected device and the web API enabled.
func Default() Config {
	return Config{
		Serial: SerialConfig{Enable: true, Baud: 9600},
		Web:    WebConfig{Enable: true, Addr: ":8080"},
	}
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Serial.Enable && cfg.Capture.Path != "" {
		return Config{}, fmt.Errorf("serial and capture are mutually exclusive input sources")
	}
	if cfg.Serial.Baud < 0 {
		return Config{}, fmt.Errorf("serial.baud must be >= 0")
	}
	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = 9600
	}
	if cfg.RawLog.MaxLines < 0 {
		return Config{}, fmt.Errorf("rawlog.max_lines must be >= 0")
	}

	if cfg.Web.Enable && cfg.Web.Addr == "" {
		cfg.Web.Addr = ":8080"
	}

	if cfg.Export.Format != "" {
		if !exportFormats[cfg.Export.Format] {
			return Config{}, fmt.Errorf("export.format %q is not supported", cfg.Export.Format)
		}
		if cfg.Export.Path == "" {
			return Config{}, fmt.Errorf("export.path is required when export.format is set")
		}
	}
	if cfg.Export.NetworkLink && cfg.Export.Format != "kml" {
		return Config{}, fmt.Errorf("export.network_link requires export.format=kml")
	}

	return cfg, nil
}
