package cdr

import (
	"bytes"
	"testing"
)

// scenario (a) from spec.md: {a: uint32, b: string} -> {a:1, b:"hi"}
// CDR bytes: 00 01 00 00 01 00 00 00 03 00 00 00 68 69 00
func TestScenarioACDR(t *testing.T) {
	buf := append([]byte{}, LittleEndianHeader[:]...)
	buf = LittleEndian.AppendU32(buf, 1)
	buf = LittleEndian.AppendString(buf, "hi")

	want := []byte{
		0x00, 0x01, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00,
		0x03, 0x00, 0x00, 0x00, 'h', 'i', 0x00,
	}
	if !bytes.Equal(buf, want) {
		t.Fatalf("scenario (a) CDR bytes = % x, want % x", buf, want)
	}
}

// scenario (c) from spec.md: empty uint8[] sequence field "xs".
// CDR = 00 01 00 00 00 00 00 00 (count 0, aligned(4) after header).
func TestScenarioCEmptySequence(t *testing.T) {
	buf := append([]byte{}, LittleEndianHeader[:]...)
	buf = LittleEndian.AppendU32(buf, 0)

	want := []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(buf, want) {
		t.Fatalf("scenario (c) CDR bytes = % x, want % x", buf, want)
	}
}

func TestDecodeHeader(t *testing.T) {
	o, n, err := DecodeHeader(LittleEndianHeader[:])
	if err != nil || n != 4 || !o.IsLittleEndian() {
		t.Fatalf("DecodeHeader(LE) = %+v,%d,%v", o, n, err)
	}
	o, n, err = DecodeHeader(BigEndianHeader[:])
	if err != nil || n != 4 || o.IsLittleEndian() {
		t.Fatalf("DecodeHeader(BE) = %+v,%d,%v", o, n, err)
	}
	_, _, err = DecodeHeader([]byte{0x01, 0x02, 0x03, 0x04})
	if err != ErrBadHeader {
		t.Fatalf("expected ErrBadHeader, got %v", err)
	}
}

func TestAlignmentAfterEachField(t *testing.T) {
	// bool (1 byte) then uint32 must land on a 4-aligned offset.
	var buf []byte
	buf = LittleEndian.AppendBool(buf, true)
	posBeforeU32 := len(buf)
	buf = LittleEndian.AppendU32(buf, 42)
	if AlignTo(posBeforeU32, 4) != 4 {
		t.Fatalf("expected padding to offset 4, pos was %d", posBeforeU32)
	}
	if len(buf) != 8 {
		t.Fatalf("expected total length 8 (1 byte + 3 pad + 4 byte), got %d", len(buf))
	}
}

func TestStringRoundTrip(t *testing.T) {
	buf := LittleEndian.AppendString(nil, "hello")
	got, n, err := LittleEndian.DecodeString(buf, 0)
	if err != nil || n != len(buf) || got != "hello" {
		t.Fatalf("DecodeString = %q,%d,%v", got, n, err)
	}
}

func TestEmptyString(t *testing.T) {
	buf := LittleEndian.AppendString(nil, "")
	want := []byte{0x01, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(buf, want) {
		t.Fatalf("empty string = % x, want % x", buf, want)
	}
}

func TestWStringRoundTrip(t *testing.T) {
	buf, err := LittleEndian.AppendWString(nil, "hi")
	if err != nil {
		t.Fatalf("AppendWString: %v", err)
	}
	got, n, err := LittleEndian.DecodeWString(buf, 0)
	if err != nil || n != len(buf) || got != "hi" {
		t.Fatalf("DecodeWString = %q,%d,%v", got, n, err)
	}
}
