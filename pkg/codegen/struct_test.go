package codegen

import (
	"strings"
	"testing"

	"github.com/blockberries/rosmsg/pkg/typedesc"
	"github.com/blockberries/rosmsg/pkg/typestore"
)

func TestToPascalCase(t *testing.T) {
	cases := map[string]string{
		"frame_id": "FrameId",
		"seq":      "Seq",
		"a":        "A",
		"x_y_z":    "XYZ",
	}
	for in, want := range cases {
		if got := ToPascalCase(in); got != want {
			t.Errorf("ToPascalCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateSimpleStruct(t *testing.T) {
	s := typestore.New(typestore.PresetEmpty)
	if _, err := s.RegisterText([]byte("uint32 a\nstring b\nuint8[] xs\n"), typestore.FormatMSG, "test_msgs/msg/Plain"); err != nil {
		t.Fatalf("RegisterText: %v", err)
	}
	d, err := s.Lookup("test_msgs/msg/Plain")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	out, err := Generate(d, Options{Package: "plaintypes"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "package plaintypes") {
		t.Fatalf("missing package clause:\n%s", out)
	}
	if !strings.Contains(out, "type Plain struct {") {
		t.Fatalf("missing struct header:\n%s", out)
	}
	if !strings.Contains(out, "A uint32") {
		t.Fatalf("missing field A:\n%s", out)
	}
	if !strings.Contains(out, "B string") {
		t.Fatalf("missing field B:\n%s", out)
	}
	if !strings.Contains(out, "Xs []byte") {
		t.Fatalf("missing field Xs as []byte:\n%s", out)
	}
	if strings.Contains(out, "internal/wire1") {
		t.Fatalf("should not import wire1 when no time/duration field is present:\n%s", out)
	}
}

func TestGenerateTimeFieldImportsWire1(t *testing.T) {
	s := typestore.New(typestore.PresetEmpty)
	if _, err := s.RegisterText([]byte("uint32 seq\ntime stamp\nstring frame_id\n"), typestore.FormatMSG, "std_msgs/msg/Header"); err != nil {
		t.Fatalf("RegisterText: %v", err)
	}
	d, err := s.Lookup("std_msgs/msg/Header")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	out, err := Generate(d, DefaultOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, `"github.com/blockberries/rosmsg/internal/wire1"`) {
		t.Fatalf("expected wire1 import for a time field:\n%s", out)
	}
	if !strings.Contains(out, "Stamp wire1.Time") {
		t.Fatalf("missing Stamp field:\n%s", out)
	}
	if !strings.Contains(out, "FrameId string // frame_id") {
		t.Fatalf("expected original-name comment on FrameId:\n%s", out)
	}
}

func TestGenerateClosureEmitsNameRefStruct(t *testing.T) {
	s := typestore.New(typestore.PresetEmpty)
	if _, err := s.RegisterText([]byte("uint32 seq\ntime stamp\nstring frame_id\n"), typestore.FormatMSG, "std_msgs/msg/Header"); err != nil {
		t.Fatalf("RegisterText: %v", err)
	}
	if _, err := s.RegisterText([]byte("Header header\nstring data\n"), typestore.FormatMSG, "std_msgs/msg/Labeled"); err != nil {
		t.Fatalf("RegisterText: %v", err)
	}
	descs, err := s.Closure("std_msgs/msg/Labeled")
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}
	out, err := GenerateClosure(descs, Options{Package: "labeled"})
	if err != nil {
		t.Fatalf("GenerateClosure: %v", err)
	}
	if !strings.Contains(out, "type Header struct {") {
		t.Fatalf("missing Header struct:\n%s", out)
	}
	if !strings.Contains(out, "type Labeled struct {") {
		t.Fatalf("missing Labeled struct:\n%s", out)
	}
	if !strings.Contains(out, "Header Header") {
		t.Fatalf("expected NameRef field typed as Header:\n%s", out)
	}
}

func TestGenerateUnknownBaseTypeErrors(t *testing.T) {
	// Built directly (bypassing msgdef, which would reject this itself) to
	// exercise codegen's own base-type validation in isolation.
	d := &typedesc.Descriptor{
		Name: "test_msgs/msg/Bogus",
		Kind: typedesc.KindMessage,
		Fields: []typedesc.Field{
			{Name: "x", Type: typedesc.BaseType{Name: "not_a_real_type"}},
		},
	}
	if _, err := Generate(d, DefaultOptions()); err == nil {
		t.Fatal("expected an error for an unrecognized base type")
	}
}
