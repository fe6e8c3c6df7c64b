package cdr

import (
	"golang.org/x/text/encoding/unicode"
)

// wstring on the CDR wire is a sequence of UTF-16 code units (count
// aligned(4), then 2-byte code units aligned(2) each, no terminator and no
// byte-order mark — the enclosing payload's Order applies). Go strings are
// UTF-8, so wstring fields are transcoded through golang.org/x/text at the
// codec boundary.

func utf16Codec(o Order) *unicode.Encoding {
	if o.IsLittleEndian() {
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	}
	return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
}

// AppendWString appends a CDR wstring: aligned(4) uint32 count of UTF-16
// code units, followed by that many 2-byte code units.
func (o Order) AppendWString(buf []byte, s string) ([]byte, error) {
	enc := utf16Codec(o)
	units, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	count := len(units) / 2
	buf = o.AppendU32(buf, uint32(count))
	buf = AppendPadding(buf, 2)
	return append(buf, units...), nil
}

// DecodeWString reads a CDR wstring.
func (o Order) DecodeWString(data []byte, pos int) (string, int, error) {
	count, n, err := o.DecodeU32(data, pos)
	if err != nil {
		return "", n, err
	}
	n = AlignTo(n, 2)
	byteLen := int(count) * 2
	end := n + byteLen
	if end < n || end > len(data) {
		return "", n, ErrTruncated
	}
	enc := utf16Codec(o)
	decoded, err := enc.NewDecoder().Bytes(data[n:end])
	if err != nil {
		return "", end, err
	}
	return string(decoded), end, nil
}
