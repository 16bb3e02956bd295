// Package textenc decodes text produced on Japanese Windows systems.
//
// Files and console output are tried as UTF-8 first and as Shift-JIS (code
// page 932) second. No other encodings are attempted.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

const (
	// EncodingUTF8 names the primary encoding.
	EncodingUTF8 = "utf-8"
	// EncodingShiftJIS names the legacy fallback encoding.
	EncodingShiftJIS = "shift_jis"
)

var utf8ByteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// ErrUndecodable reports bytes that are neither UTF-8 nor Shift-JIS.
var ErrUndecodable = errors.New("text is neither utf-8 nor shift_jis")

// Decode returns the text in data and the name of the encoding that decoded it.
func Decode(data []byte) (string, string, error) {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, utf8ByteOrderMark)), EncodingUTF8, nil
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	// The Shift-JIS decoder substitutes U+FFFD for invalid sequences instead of failing.
	if strings.ContainsRune(string(decoded), utf8.RuneError) {
		return "", "", ErrUndecodable
	}
	return string(decoded), EncodingShiftJIS, nil
}

// DecodeLenient decodes data like Decode but never fails: undecodable bytes
// are returned with invalid sequences replaced.
func DecodeLenient(data []byte) string {
	text, _, err := Decode(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}
	return text
}
