// Package thumbnail renders a binary preview container as G-code comment
// lines and reads such blocks back.
//
// The Monoprice Mini Delta v2 firmware expects the block to start with W221,
// every data line to be prefixed with W220, and the block to end with W222.
// The payload is the container in lowercase base16, split into fixed-width
// chunks.
package thumbnail

import (
	"encoding/hex"
	"strings"
)

const (
	// BeginComment and EndComment are human-readable delimiters around the
	// sentinel block.
	BeginComment = "; thumbnail begin"
	EndComment   = "; thumbnail end"

	// StartSentinel opens the block.
	StartSentinel = "W221"
	// DataSentinel prefixes every data line, separated by a single space.
	DataSentinel = "W220"
	// EndSentinel closes the block.
	EndSentinel = "W222"

	// DefaultChunkSize is the number of hex characters per data line.
	DefaultChunkSize = 80
)

// EncodeHex returns the lowercase base16 encoding of data, two characters
// per input byte.
func EncodeHex(data []byte) string {
	return hex.EncodeToString(data)
}

// Build wraps an already hex-encoded container in the sentinel block. The
// result is an ordered line sequence: begin comment, start sentinel, one
// prefixed data line per chunk, end sentinel, end comment, and a blank line
// separating the block from surrounding content.
func Build(encoded string, chunkSize int) []string {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}

	lines := make([]string, 0, len(encoded)/chunkSize+6)
	lines = append(lines, BeginComment, StartSentinel)
	for i := 0; i < len(encoded); i += chunkSize {
		end := i + chunkSize
		if end > len(encoded) {
			end = len(encoded)
		}
		lines = append(lines, DataSentinel+" "+encoded[i:end])
	}
	lines = append(lines, EndSentinel, EndComment, "")
	return lines
}

// Reassemble scans G-code lines for the first sentinel block and
// reconstructs its hex payload by stripping the data prefixes and
// concatenating the chunks in order. ok is false when no complete block is
// present.
func Reassemble(lines []string) (payload string, ok bool) {
	var sb strings.Builder
	open := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == StartSentinel:
			open = true
			sb.Reset()
		case trimmed == EndSentinel:
			if open {
				return sb.String(), true
			}
		case open && strings.HasPrefix(trimmed, DataSentinel+" "):
			sb.WriteString(trimmed[len(DataSentinel)+1:])
		}
	}
	return "", false
}
