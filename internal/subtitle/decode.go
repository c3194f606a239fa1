package subtitle

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// legacyEncodings is the ordered fallback chain tried after UTF-8. GBK covers
// GB2312 as a superset; ISO 8859-1 maps every byte so it terminates the chain.
var legacyEncodings = []encoding.Encoding{
	simplifiedchinese.GBK,
	simplifiedchinese.GB18030,
	charmap.ISO8859_1,
}

// decode converts raw file bytes to a string by trying candidate encodings in
// order: UTF-8 (with or without signature), then legacy CJK encodings, then a
// single-byte fallback that always succeeds. This is a best-effort heuristic,
// not content-based detection.
func decode(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	for _, enc := range legacyEncodings {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		// The x/text decoders substitute U+FFFD for unmappable bytes instead
		// of erroring; treat any substitution as a failed candidate.
		if strings.ContainsRune(string(out), utf8.RuneError) {
			continue
		}
		return string(out)
	}
	// ISO 8859-1 never substitutes, so this path is unreachable in practice.
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(out)
}
