package util

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// EnsureUTF8Bytes normalizes raw capture bytes to a UTF-8 string before
// parsing. Captures saved by terminal emulators on Chinese-locale hosts
// frequently arrive as GB18030/GBK or Big5; valid UTF-8 passes through
// untouched, and undecodable bytes fall back to a direct byte-to-string.
func EnsureUTF8Bytes(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if utf8.Valid(b) {
		return string(b)
	}
	// Encodings seen in device CLI captures, most likely first
	encs := []encoding.Encoding{
		simplifiedchinese.GB18030,
		simplifiedchinese.GBK,
		simplifiedchinese.HZGB2312,
		traditionalchinese.Big5,
		charmap.Windows1252,
		charmap.ISO8859_1,
		charmap.Macintosh,
	}
	for _, enc := range encs {
		if s, ok := tryDecode(enc, b); ok {
			return s
		}
	}
	// Fallback: return raw bytes as string
	return string(b)
}

// EnsureUTF8 is the string form of EnsureUTF8Bytes, for capture content
// that already crossed a []byte-to-string boundary.
func EnsureUTF8(s string) string {
	return EnsureUTF8Bytes([]byte(s))
}

func tryDecode(enc encoding.Encoding, b []byte) (string, bool) {
	reader := transform.NewReader(bytes.NewReader(b), enc.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", false
	}
	if utf8.Valid(decoded) {
		return string(decoded), true
	}
	return "", false
}