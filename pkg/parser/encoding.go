package parser

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names reported by DetectAndDecode.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-bom"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
	EncodingBig5    = "big5"
	EncodingLatin1  = "latin-1"
)

// BOM constants
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectAndDecode detects the encoding of the input data, strips any BOM,
// and returns the decoded UTF-8 bytes along with the detected encoding name.
//
// POS exports from Taiwanese stores are frequently Big5 when they are not
// UTF-8, so Big5 is tried before the Latin-1 catch-all.
func DetectAndDecode(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return data, EncodingUTF8, nil
	}

	if bytes.HasPrefix(data, bomUTF8) {
		return data[len(bomUTF8):], EncodingUTF8BOM, nil
	}

	if bytes.HasPrefix(data, bomUTF16LE) {
		decoded, err := decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), data)
		if err != nil {
			return nil, "", fmt.Errorf("UTF-16 LE decode failed: %w", err)
		}
		return decoded, EncodingUTF16LE, nil
	}

	if bytes.HasPrefix(data, bomUTF16BE) {
		decoded, err := decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), data)
		if err != nil {
			return nil, "", fmt.Errorf("UTF-16 BE decode failed: %w", err)
		}
		return decoded, EncodingUTF16BE, nil
	}

	if utf8.Valid(data) {
		return data, EncodingUTF8, nil
	}

	// Big5 only wins when every sequence maps to a real character.
	if decoded, err := decodeWith(traditionalchinese.Big5, data); err == nil && !bytes.ContainsRune(decoded, utf8.RuneError) {
		return decoded, EncodingBig5, nil
	}

	decoded, err := decodeWith(charmap.ISO8859_1, data)
	if err != nil {
		return nil, "", fmt.Errorf("latin-1 decode failed: %w", err)
	}
	return decoded, EncodingLatin1, nil
}

func decodeWith(enc encoding.Encoding, data []byte) ([]byte, error) {
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
