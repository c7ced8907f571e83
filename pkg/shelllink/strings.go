package shelllink

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Non-unicode strings in shell links use the system code page. Windows-1252
// is the common case for the hosts this tool targets.
var ansiCodec = charmap.Windows1252

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func decodeANSI(b []byte) string {
	s, err := ansiCodec.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

func encodeANSI(s string) []byte {
	b, err := encoding.ReplaceUnsupported(ansiCodec.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return b
}

func decodeUTF16(b []byte) string {
	s, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(s)
}

func encodeUTF16(s string) []byte {
	b, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return b
}

// cstringANSI reads a NUL-terminated code page string starting at off
func cstringANSI(b []byte, off int) string {
	if off < 0 || off >= len(b) {
		return ""
	}
	end := bytes.IndexByte(b[off:], 0)
	if end < 0 {
		return decodeANSI(b[off:])
	}
	return decodeANSI(b[off : off+end])
}

// cstringUTF16 reads a NUL-terminated UTF-16LE string starting at off
func cstringUTF16(b []byte, off int) string {
	if off < 0 || off >= len(b) {
		return ""
	}
	end := off
	for end+1 < len(b) {
		if b[end] == 0 && b[end+1] == 0 {
			break
		}
		end += 2
	}
	if end+1 >= len(b) {
		end = len(b) - (len(b)-off)%2
	}
	return decodeUTF16(b[off:end])
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
