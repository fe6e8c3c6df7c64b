package typestore

import (
	"errors"
	"testing"
)

func TestRegisterTextAndLookup(t *testing.T) {
	s := New(PresetEmpty)
	_, err := s.RegisterText([]byte("uint32 a\nstring b\n"), FormatMSG, "test_msgs/msg/Simple")
	if err != nil {
		t.Fatalf("RegisterText: %v", err)
	}
	d, err := s.Lookup("test_msgs/msg/Simple")
	if err != nil || len(d.Fields) != 2 {
		t.Fatalf("Lookup = %+v, %v", d, err)
	}
}

func TestRegisterIdempotent(t *testing.T) {
	s := New(PresetEmpty)
	text := []byte("uint32 a\n")
	if _, err := s.RegisterText(text, FormatMSG, "test_msgs/msg/X"); err != nil {
		t.Fatalf("first RegisterText: %v", err)
	}
	if _, err := s.RegisterText(text, FormatMSG, "test_msgs/msg/X"); err != nil {
		t.Fatalf("second (idempotent) RegisterText: %v", err)
	}
}

func TestRegisterConflict(t *testing.T) {
	s := New(PresetEmpty)
	if _, err := s.RegisterText([]byte("uint32 a\n"), FormatMSG, "test_msgs/msg/X"); err != nil {
		t.Fatalf("RegisterText: %v", err)
	}
	_, err := s.RegisterText([]byte("string a\n"), FormatMSG, "test_msgs/msg/X")
	if err == nil {
		t.Fatal("expected a type conflict")
	}
	var ce *TypeConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *TypeConflictError, got %v (%T)", err, err)
	}
}

func TestLookupUnknown(t *testing.T) {
	s := New(PresetEmpty)
	_, err := s.Lookup("nope/msg/Nope")
	if err == nil {
		t.Fatal("expected an unknown-type error")
	}
}

func TestPresetROS1DefaultsHasHeader(t *testing.T) {
	s := New(PresetROS1Defaults)
	d, err := s.Lookup("std_msgs/msg/Header")
	if err != nil {
		t.Fatalf("Lookup(Header): %v", err)
	}
	if len(d.Fields) != 3 || d.Fields[0].Name != "seq" {
		t.Fatalf("ROS1 Header = %+v", d)
	}
}

func TestPresetROS2DefaultsHeaderHasNoSeq(t *testing.T) {
	s := New(PresetROS2Defaults)
	d, err := s.Lookup("std_msgs/msg/Header")
	if err != nil {
		t.Fatalf("Lookup(Header): %v", err)
	}
	for _, f := range d.Fields {
		if f.Name == "seq" {
			t.Fatalf("ROS2 Header should not have a seq field: %+v", d)
		}
	}
}

func TestClosureOrder(t *testing.T) {
	s := New(PresetEmpty)
	text := []byte("Header header\n" +
		"================================================================================\n" +
		"MSG: std_msgs/Header\n" +
		"uint32 seq\ntime stamp\nstring frame_id\n")
	if _, err := s.RegisterText(text, FormatMSG, "test_msgs/msg/Stamped"); err != nil {
		t.Fatalf("RegisterText: %v", err)
	}
	closure, err := s.Closure("test_msgs/msg/Stamped")
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}
	if len(closure) != 2 || closure[0].Name != "std_msgs/msg/Header" || closure[1].Name != "test_msgs/msg/Stamped" {
		t.Fatalf("closure = %+v", closure)
	}
}

func TestMD5AndRIHS01ViaStore(t *testing.T) {
	s := New(PresetEmpty)
	if _, err := s.RegisterText([]byte("uint32 a\nstring b\n"), FormatMSG, "test_msgs/msg/Simple"); err != nil {
		t.Fatalf("RegisterText: %v", err)
	}
	if _, err := s.MD5("test_msgs/msg/Simple"); err != nil {
		t.Fatalf("MD5: %v", err)
	}
	if _, err := s.RIHS01("test_msgs/msg/Simple"); err != nil {
		t.Fatalf("RIHS01: %v", err)
	}
	emitted, err := s.EmitMSG("test_msgs/msg/Simple")
	if err != nil {
		t.Fatalf("EmitMSG: %v", err)
	}
	if emitted == "" {
		t.Fatal("expected non-empty emitted text")
	}
}
