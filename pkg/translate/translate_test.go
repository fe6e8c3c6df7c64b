package translate

import (
	"bytes"
	"testing"

	"github.com/blockberries/rosmsg/pkg/typedesc"
	"github.com/blockberries/rosmsg/pkg/typestore"
)

func mustRegister(t *testing.T, s *typestore.Store, text string, name typedesc.QName) {
	t.Helper()
	if _, err := s.RegisterText([]byte(text), typestore.FormatMSG, name); err != nil {
		t.Fatalf("RegisterText(%s): %v", name, err)
	}
}

// scenario (b) from spec.md: Header wire1 -> CDR.
// wire1 in:  07 00 00 00 01 00 00 00 02 00 00 00 01 00 00 00 6D
// CDR out:   00 01 00 00 01 00 00 00 02 00 00 00 02 00 00 00 6D 00
func TestScenarioBHeaderROS1ToCDR(t *testing.T) {
	s1 := typestore.New(typestore.PresetEmpty)
	mustRegister(t, s1, "uint32 seq\ntime stamp\nstring frame_id\n", "std_msgs/msg/Header")

	s2 := typestore.New(typestore.PresetEmpty)
	mustRegister(t, s2, "time stamp\nstring frame_id\n", "std_msgs/msg/Header")

	in := []byte{
		0x07, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 'm',
	}
	out, err := ROS1ToCDR(s1, s2, "std_msgs/msg/Header", in)
	if err != nil {
		t.Fatalf("ROS1ToCDR: %v", err)
	}
	want := []byte{
		0x00, 0x01, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00, 'm', 0x00,
	}
	if !bytes.Equal(out, want) {
		t.Fatalf("ROS1ToCDR = % x, want % x", out, want)
	}
}

func TestHeaderCDRToROS1SynthesizesSeq(t *testing.T) {
	s1 := typestore.New(typestore.PresetEmpty)
	mustRegister(t, s1, "uint32 seq\ntime stamp\nstring frame_id\n", "std_msgs/msg/Header")

	s2 := typestore.New(typestore.PresetEmpty)
	mustRegister(t, s2, "time stamp\nstring frame_id\n", "std_msgs/msg/Header")

	cdrIn := []byte{
		0x00, 0x01, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00, 'm', 0x00,
	}
	out, err := CDRToROS1(s1, s2, "std_msgs/msg/Header", cdrIn)
	if err != nil {
		t.Fatalf("CDRToROS1: %v", err)
	}
	want := []byte{
		0x00, 0x00, 0x00, 0x00, // synthesized seq = 0
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 'm',
	}
	if !bytes.Equal(out, want) {
		t.Fatalf("CDRToROS1 = % x, want % x", out, want)
	}
}

// Nested NameRef submessage: CDR alignment must be measured from the
// payload start, not from the nested submessage's own start. P{flag:
// uint8, n: Inner}, Inner{x: uint32} pads x to payload offset 4 once flag
// and its 3 bytes of padding are accounted for.
func TestNestedNameRefAlignment(t *testing.T) {
	s1 := typestore.New(typestore.PresetEmpty)
	mustRegister(t, s1, "uint32 x\n", "test_msgs/msg/Inner")
	mustRegister(t, s1, "uint8 flag\nInner n\n", "test_msgs/msg/P")

	s2 := typestore.New(typestore.PresetEmpty)
	mustRegister(t, s2, "uint32 x\n", "test_msgs/msg/Inner")
	mustRegister(t, s2, "uint8 flag\nInner n\n", "test_msgs/msg/P")

	wire1Bytes := []byte{
		0x05,                   // flag = 5
		0x07, 0x00, 0x00, 0x00, // n.x = 7
	}
	cdrBytes, err := ROS1ToCDR(s1, s2, "test_msgs/msg/P", wire1Bytes)
	if err != nil {
		t.Fatalf("ROS1ToCDR: %v", err)
	}
	want := []byte{
		0x00, 0x01, 0x00, 0x00, // header
		0x05, 0x00, 0x00, 0x00, // flag + 3 bytes padding to align n.x
		0x07, 0x00, 0x00, 0x00, // n.x = 7
	}
	if !bytes.Equal(cdrBytes, want) {
		t.Fatalf("ROS1ToCDR = % x, want % x", cdrBytes, want)
	}
	roundTripped, err := CDRToROS1(s1, s2, "test_msgs/msg/P", cdrBytes)
	if err != nil {
		t.Fatalf("CDRToROS1: %v", err)
	}
	if !bytes.Equal(roundTripped, wire1Bytes) {
		t.Fatalf("round trip = % x, want % x", roundTripped, wire1Bytes)
	}
}

// Byte-for-byte bijective on a type with no Header involvement.
func TestBijectiveNonHeaderType(t *testing.T) {
	s1 := typestore.New(typestore.PresetEmpty)
	mustRegister(t, s1, "uint32 a\nstring b\nuint8[] xs\n", "test_msgs/msg/Plain")

	s2 := typestore.New(typestore.PresetEmpty)
	mustRegister(t, s2, "uint32 a\nstring b\nuint8[] xs\n", "test_msgs/msg/Plain")

	wire1Bytes := []byte{
		0x2a, 0x00, 0x00, 0x00, // a = 42
		0x03, 0x00, 0x00, 0x00, 'f', 'o', 'o', // b = "foo"
		0x02, 0x00, 0x00, 0x00, 0x01, 0x02, // xs = [1, 2]
	}
	cdrBytes, err := ROS1ToCDR(s1, s2, "test_msgs/msg/Plain", wire1Bytes)
	if err != nil {
		t.Fatalf("ROS1ToCDR: %v", err)
	}
	roundTripped, err := CDRToROS1(s1, s2, "test_msgs/msg/Plain", cdrBytes)
	if err != nil {
		t.Fatalf("CDRToROS1: %v", err)
	}
	if !bytes.Equal(roundTripped, wire1Bytes) {
		t.Fatalf("round trip = % x, want % x", roundTripped, wire1Bytes)
	}
}
