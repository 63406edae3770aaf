package settings

import (
	"fmt"
	"os"
	"strings"
)

// Kind classifies settings-recovery failures.
type Kind int

const (
	// CorruptSettings means the settings file could not be read, fewer
	// than 6 non-empty lines were recovered after descrambling, or one of
	// the two serial lines lacked "=".
	CorruptSettings Kind = iota
)

func (k Kind) String() string {
	return "CorruptSettings"
}

// Error wraps a settings-recovery failure.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

const minNonEmptyLines = 6

// ReadSerial reads the extracted settings file at settingsPath, descrambles
// it, and assembles the factory serial from lines 4 and 5 (0-indexed) of
// the key=value payload (spec §4.7, scenario S2).
func ReadSerial(settingsPath string) (string, error) {
	raw, err := os.ReadFile(settingsPath)
	if err != nil {
		return "", &Error{Kind: CorruptSettings, Message: "could not read settings file", Cause: err}
	}
	return ParseSerial(raw)
}

// ParseSerial descrambles raw settings bytes and extracts the serial.
// Exposed separately from ReadSerial so callers that already have the
// bytes in memory (e.g. read straight out of an extracted tree) need not
// round-trip through the filesystem.
func ParseSerial(raw []byte) (string, error) {
	decrypted := descramble(raw, false)
	lines := splitNonEmptyLines(decrypted)
	if len(lines) < minNonEmptyLines {
		return "", &Error{Kind: CorruptSettings, Message: fmt.Sprintf("only %d non-empty lines after descrambling, need %d", len(lines), minNonEmptyLines)}
	}

	part1, err := valueOf(lines[4])
	if err != nil {
		return "", &Error{Kind: CorruptSettings, Message: "line 4 missing '='", Cause: err}
	}
	part2, err := valueOf(lines[5])
	if err != nil {
		return "", &Error{Kind: CorruptSettings, Message: "line 5 missing '='", Cause: err}
	}
	return part1 + part2, nil
}

// splitNonEmptyLines keeps only ASCII bytes, splits on any run of CR/LF,
// and discards empty lines.
func splitNonEmptyLines(b []byte) []string {
	ascii := make([]byte, 0, len(b))
	for _, c := range b {
		if c < 0x80 {
			ascii = append(ascii, c)
		}
	}
	fields := strings.FieldsFunc(string(ascii), func(r rune) bool {
		return r == '\r' || r == '\n'
	})
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			lines = append(lines, f)
		}
	}
	return lines
}

func valueOf(line string) (string, error) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", fmt.Errorf("no '=' in line %q", line)
	}
	return line[idx+1:], nil
}
