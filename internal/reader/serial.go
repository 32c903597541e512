package reader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"go.bug.st/serial"
)

// Config controls the serial NMEA reader.
//
// Device may be empty to auto-detect the first /dev/ttyACM* or
// /dev/ttyUSB* present. Baud defaults to 9600, the usual rate for
// consumer GPS receivers.
type Config struct {
	Device string
	Baud   int

	// RawLogPath optionally appends every received line to a file,
	// producing a capture that ReplayFile can play back later.
	RawLogPath string
}

// Service reads NMEA lines from a serial device and hands each one to a
// sink. Failures inside the read loop are logged, never fatal; the host
// process must survive a flaky receiver.
type Service struct {
	cfg  Config
	sink func(line string)

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
	port   io.Closer
}

func New(cfg Config, sink func(line string)) *Service {
	return &Service{cfg: cfg, sink: sink}
}

func (s *Service) Start(ctx context.Context) error {
	if s.sink == nil {
		return fmt.Errorf("reader: sink is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	device := strings.TrimSpace(s.cfg.Device)
	if device == "" {
		device = autoDetectDevice()
		if device == "" {
			return fmt.Errorf("reader: auto-detect failed: no /dev/ttyACM* or /dev/ttyUSB* found")
		}
	}
	baud := s.cfg.Baud
	if baud == 0 {
		baud = 9600
	}

	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return fmt.Errorf("reader: open %s baud=%d: %w", device, baud, err)
	}
	s.port = port

	var rawLog *os.File
	if p := strings.TrimSpace(s.cfg.RawLogPath); p != "" {
		rawLog, err = os.OpenFile(p, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			_ = port.Close()
			s.port = nil
			return fmt.Errorf("reader: open raw log: %w", err)
		}
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() { _ = port.Close() }()
		if rawLog != nil {
			defer func() { _ = rawLog.Close() }()
		}

		log.Printf("serial reader started device=%s baud=%d", device, baud)

		sc := bufio.NewScanner(port)
		sc.Buffer(make([]byte, 0, 256), 4096)
		for {
			select {
			case <-childCtx.Done():
				return
			default:
			}

			if !sc.Scan() {
				err := sc.Err()
				if err == nil {
					err = io.EOF
				}
				log.Printf("serial read stopped: %v", err)
				return
			}

			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			if rawLog != nil {
				if _, err := rawLog.WriteString(line + "\n"); err != nil {
					log.Printf("raw log write failed: %v", err)
				}
			}
			// Receivers emit non-NMEA chatter at boot; skip it cheaply.
			if !strings.HasPrefix(line, "$") {
				continue
			}
			s.sink(line)
		}
	}()

	return nil
}

// Close stops the read loop and waits for it to exit. Closing the port
// unblocks a pending Scan.
func (s *Service) Close() {
	s.mu.Lock()
	cancel := s.cancel
	port := s.port
	s.cancel = nil
	s.port = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if port != nil {
		_ = port.Close()
	}
	s.wg.Wait()
}

func autoDetectDevice() string {
	candidates := make([]string, 0, 20)
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyACM%d", i))
	}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyUSB%d", i))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
