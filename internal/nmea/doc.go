// Package nmea validates, tokenizes and decodes NMEA 0183 sentences.
//
// The pipeline is Validate (checksum) -> Tokenize (fields) -> Decode
// (per-sentence-type rules). Each stage is a pure function over its
// input; nothing here keeps state between sentences.
package nmea
