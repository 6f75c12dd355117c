// Package textio reads dataset documents as text.
package textio

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	encunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadText returns the contents of path with line endings normalized to \n
// and surrounding whitespace removed.
// Bytes that are not valid UTF-8 are replaced with U+FFFD instead of failing.
// I/O errors are returned as-is, wrapped with the path.
func ReadText(path string) (string, error) {
	text, _, err := ReadTextLossy(path)
	return text, err
}

// ReadTextLossy is ReadText that also reports whether any bytes had to be
// replaced during decoding.
func ReadTextLossy(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}
	text, lossy := Decode(data)
	return TrimText(NormalizeNewlines(text)), lossy, nil
}

// NormalizeNewlines rewrites \r\n and lone \r line endings to \n.
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// TrimText removes leading and trailing whitespace. The ASCII file, group,
// record and unit separators (U+001C to U+001F) count as whitespace too.
func TrimText(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// IsBlank reports whether s holds nothing but whitespace as defined by TrimText.
func IsBlank(s string) bool {
	return TrimText(s) == ""
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Decode converts data to a string. Valid UTF-8 is returned unchanged;
// anything else goes through the replacing UTF-8 decoder and lossy is true.
// A leading byte order mark is kept.
func Decode(data []byte) (text string, lossy bool) {
	if utf8.Valid(data) {
		return string(data), false
	}

	out, _, err := transform.Bytes(encunicode.UTF8.NewDecoder(), data)
	if err != nil {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError)), true
	}
	return string(out), true
}
