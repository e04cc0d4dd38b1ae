package subtitles

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText returns data as UTF-8 with line endings normalized to "\n".
// UTF-16 and legacy single-byte encodings are sniffed and transcoded.
func decodeText(data []byte) string {
	text := string(bytes.TrimPrefix(data, bomUTF8))
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) || !utf8.ValidString(text) {
		enc, _, _ := charset.DetermineEncoding(data, "")
		if decoded, _, err := transform.Bytes(enc.NewDecoder(), data); err == nil {
			text = strings.TrimPrefix(string(decoded), "\uFEFF")
		}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
