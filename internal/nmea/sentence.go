package nmea

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentence-level errors. Framing defects (missing '$', missing or short
// "*HH") are deliberately folded into ErrChecksum: a line without a valid
// envelope cannot be told apart from a corrupted one, and both count
// against the same error counter.
var (
	ErrChecksum  = errors.New("nmea: checksum failed")
	ErrMalformed = errors.New("nmea: malformed sentence")
)

// Checksum XORs every byte of a sentence body (the text strictly between
// '$' and '*').
func Checksum(body string) byte {
	var ck byte
	for i := 0; i < len(body); i++ {
		ck ^= body[i]
	}
	return ck
}

// Validate checks the "$body*HH" envelope of one raw line and verifies
// the XOR checksum, case-insensitively. On success it returns the body
// between '$' and '*'. It never panics; every failure is ErrChecksum.
func Validate(line string) (string, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "$") {
		return "", fmt.Errorf("%w: missing '$'", ErrChecksum)
	}
	star := strings.LastIndexByte(line, '*')
	if star == -1 {
		return "", fmt.Errorf("%w: missing '*'", ErrChecksum)
	}
	ck := strings.TrimSpace(line[star+1:])
	if len(ck) < 2 {
		return "", fmt.Errorf("%w: short checksum", ErrChecksum)
	}
	ck = ck[:2]
	want, err := strconv.ParseUint(ck, 16, 8)
	if err != nil {
		return "", fmt.Errorf("%w: bad checksum digits %q", ErrChecksum, ck)
	}
	body := line[1:star]
	if got := Checksum(body); got != byte(want) {
		return "", fmt.Errorf("%w: want %02X got %02X", ErrChecksum, byte(want), got)
	}
	return body, nil
}

// Sentence is a tokenized NMEA sentence body.
type Sentence struct {
	Talker string // 2-letter talker ID, e.g. "GP", "GN"
	Type   string // sentence type code, e.g. "RMC"
	// Fields is the comma-split payload after the address field.
	// Empty fields are preserved, never collapsed.
	Fields []string
}

// Tokenize splits a checksum-validated body on commas and extracts the
// talker ID and sentence type from the address field.
func Tokenize(body string) (Sentence, error) {
	parts := strings.Split(body, ",")
	addr := parts[0]
	if len(addr) < 5 {
		return Sentence{}, fmt.Errorf("%w: address field %q", ErrMalformed, addr)
	}
	typ := strings.ToUpper(addr[2:])
	for i := 0; i < len(typ); i++ {
		if typ[i] < 'A' || typ[i] > 'Z' {
			return Sentence{}, fmt.Errorf("%w: address field %q", ErrMalformed, addr)
		}
	}
	return Sentence{
		Talker: strings.ToUpper(addr[:2]),
		Type:   typ,
		Fields: parts[1:],
	}, nil
}
