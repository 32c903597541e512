// Package reader feeds raw NMEA lines into a sink, either by replaying a
// capture file or by tailing a serial device.
package reader

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReplayFile feeds every non-blank line of a capture file to sink, in
// file order. The sink is called synchronously; the file is fully
// processed before ReplayFile returns.
func ReplayFile(path string, sink func(line string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reader: open capture: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	// NMEA sentences are typically < 82 chars, but allow some headroom.
	sc.Buffer(make([]byte, 0, 256), 64*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		sink(line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reader: read capture: %w", err)
	}
	return nil
}
