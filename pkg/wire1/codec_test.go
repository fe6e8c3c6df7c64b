package wire1

import (
	"bytes"
	"testing"

	"github.com/blockberries/rosmsg/pkg/typedesc"
	"github.com/blockberries/rosmsg/pkg/typestore"
)

func mustStore(t *testing.T, text string, name typedesc.QName) *typestore.Store {
	t.Helper()
	s := typestore.New(typestore.PresetEmpty)
	if _, err := s.RegisterText([]byte(text), typestore.FormatMSG, name); err != nil {
		t.Fatalf("RegisterText: %v", err)
	}
	return s
}

// scenario (a) from spec.md: {a: uint32, b: string} -> {a:1, b:"hi"}
// wire1 bytes: 01 00 00 00 02 00 00 00 68 69
func TestScenarioAWire1Roundtrip(t *testing.T) {
	s := mustStore(t, "uint32 a\nstring b\n", "test_msgs/msg/Simple")
	v := typedesc.MessageVal(map[string]typedesc.Value{
		"a": typedesc.UintVal(1),
		"b": typedesc.StringVal("hi"),
	})
	b, err := Serialize(s, "test_msgs/msg/Simple", v)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	want := []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 'h', 'i'}
	if !bytes.Equal(b, want) {
		t.Fatalf("Serialize = % x, want % x", b, want)
	}

	got, err := Deserialize(s, "test_msgs/msg/Simple", b)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	af, _ := got.Field("a")
	bf, _ := got.Field("b")
	if af.Uint != 1 || bf.Str != "hi" {
		t.Fatalf("roundtrip = %+v", got)
	}
}

func TestEmptySequenceRoundtrip(t *testing.T) {
	s := mustStore(t, "uint8[] xs\n", "test_msgs/msg/Seq")
	v := typedesc.MessageVal(map[string]typedesc.Value{"xs": typedesc.BytesVal(nil)})
	b, err := Serialize(s, "test_msgs/msg/Seq", v)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	want := []byte{0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(b, want) {
		t.Fatalf("Serialize = % x, want % x", b, want)
	}
	got, err := Deserialize(s, "test_msgs/msg/Seq", b)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	xs, _ := got.Field("xs")
	if len(xs.Bytes) != 0 {
		t.Fatalf("expected empty bytes, got %v", xs.Bytes)
	}
}

func TestNestedMessageRoundtrip(t *testing.T) {
	text := "Header header\n" +
		"================================================================================\n" +
		"MSG: std_msgs/Header\n" +
		"uint32 seq\ntime stamp\nstring frame_id\n"
	s := mustStore(t, text, "test_msgs/msg/Stamped")

	v := typedesc.MessageVal(map[string]typedesc.Value{
		"header": typedesc.MessageVal(map[string]typedesc.Value{
			"seq": typedesc.UintVal(7),
			"stamp": typedesc.MessageVal(map[string]typedesc.Value{
				"sec":  typedesc.UintVal(100),
				"nsec": typedesc.UintVal(200),
			}),
			"frame_id": typedesc.StringVal("map"),
		}),
	})
	b, err := Serialize(s, "test_msgs/msg/Stamped", v)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := Deserialize(s, "test_msgs/msg/Stamped", b)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	header, _ := got.Field("header")
	seq, _ := header.Field("seq")
	frameID, _ := header.Field("frame_id")
	if seq.Uint != 7 || frameID.Str != "map" {
		t.Fatalf("roundtrip header = %+v", header)
	}
}

func TestFixedArrayRoundtrip(t *testing.T) {
	s := mustStore(t, "uint8[3] fixed3\n", "test_msgs/msg/Arr")
	v := typedesc.MessageVal(map[string]typedesc.Value{"fixed3": typedesc.BytesVal([]byte{1, 2, 3})})
	b, err := Serialize(s, "test_msgs/msg/Arr", v)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Fatalf("Serialize = % x", b)
	}
	got, err := Deserialize(s, "test_msgs/msg/Arr", b)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	f, _ := got.Field("fixed3")
	if !bytes.Equal(f.Bytes, []byte{1, 2, 3}) {
		t.Fatalf("decoded = %v", f.Bytes)
	}
}

func TestTruncatedInputReturnsError(t *testing.T) {
	s := mustStore(t, "uint32 a\n", "test_msgs/msg/U32")
	_, err := Deserialize(s, "test_msgs/msg/U32", []byte{0x01, 0x00})
	if err == nil {
		t.Fatal("expected a truncation error")
	}
}

func TestBoundViolation(t *testing.T) {
	s := mustStore(t, "uint8[<=2] bounded\n", "test_msgs/msg/Bnd")
	v := typedesc.MessageVal(map[string]typedesc.Value{"bounded": typedesc.BytesVal([]byte{1, 2, 3})})
	_, err := Serialize(s, "test_msgs/msg/Bnd", v)
	if err == nil {
		t.Fatal("expected a bound violation")
	}
}
