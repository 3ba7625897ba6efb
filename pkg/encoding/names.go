// Package encoding provides text handling for material names stored in
// compiled maps.
package encoding

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Windows1252ToUTF8 converts Windows-1252 encoded bytes to a UTF-8 string.
// Returns the original bytes as a string if conversion fails.
func Windows1252ToUTF8(data []byte) string {
	result, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// MaterialName decodes a material name. Valid UTF-8 (plain ASCII in
// practice) is kept as is; anything else was written by an older compiler
// in the Windows-1252 code page.
func MaterialName(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return Windows1252ToUTF8(data)
}

// CString returns the material name before the first NUL in data.
func CString(data []byte) string {
	if idx := bytes.IndexByte(data, 0); idx >= 0 {
		data = data[:idx]
	}
	return MaterialName(data)
}

// MaterialKey folds a material name the way the engine looks materials up:
// case-insensitive.
func MaterialKey(name string) string {
	return strings.ToLower(name)
}
