package textio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadText_Trims(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "case one", "case one"},
		{"surrounding whitespace", "  \n\tcase one\r\n\n", "case one"},
		{"inner newlines kept", "line one\n\nline two\n", "line one\n\nline two"},
		{"whitespace only", " \t\n ", ""},
		{"empty", "", ""},
		{"unicode", "  Entscheidung über €  ", "Entscheidung über €"},
		{"crlf line endings", "line one\r\nline two\r\n", "line one\nline two"},
		{"lone cr line endings", "sum\rmary\r", "sum\nmary"},
		{"mixed line endings", "a\r\n\rb\nc", "a\n\nb\nc"},
		{"ascii separators", "\x1fcase\x1c", "case"},
		{"separators only", "\x1c\x1d\x1e\x1f", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "doc.txt", []byte(tt.in))

			got, err := ReadText(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadText_InvalidUTF8IsReplaced(t *testing.T) {
	path := writeFile(t, "bad.txt", []byte{'a', 0xff, 'b', '\n'})

	got, lossy, err := ReadTextLossy(path)
	require.NoError(t, err)
	assert.True(t, lossy)
	assert.Equal(t, "a\ufffdb", got)
}

func TestReadText_Latin1Bytes(t *testing.T) {
	// "café" encoded as ISO-8859-1.
	path := writeFile(t, "latin1.txt", []byte{'c', 'a', 'f', 0xe9})

	got, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "caf\ufffd", got)
}

func TestReadText_MissingFile(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode(t *testing.T) {
	text, lossy := Decode([]byte("valid text"))
	assert.False(t, lossy)
	assert.Equal(t, "valid text", text)

	text, lossy = Decode([]byte("\xef\xbb\xbfwith bom"))
	assert.False(t, lossy)
	assert.Equal(t, "\ufeffwith bom", text)

	text, lossy = Decode([]byte{0xc3})
	assert.True(t, lossy)
	assert.Equal(t, "\ufffd", text)
}

func TestNormalizeNewlines(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"no breaks", "no breaks"},
		{"a\nb", "a\nb"},
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\nb"},
		{"a\r\r\nb", "a\n\nb"},
		{"\r\n\r\n", "\n\n"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeNewlines(tt.in), "%q", tt.in)
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \t\r\n"))
	assert.True(t, IsBlank("\x1c\x1d\x1e\x1f"))
	assert.True(t, IsBlank("\u00a0\u2003"))
	assert.False(t, IsBlank(" x "))
	assert.False(t, IsBlank("\x00"))
}
