package typedesc

import (
	"testing"

	"github.com/blockberries/rosmsg/pkg/idldef"
	"github.com/blockberries/rosmsg/pkg/msgdef"
)

func TestNormalizeMsgFile(t *testing.T) {
	text := "uint32 a\nstring b\n"
	f, err := msgdef.Parse("test_msgs/msg/Simple", text)
	if err != nil {
		t.Fatalf("msgdef.Parse: %v", err)
	}
	descs, err := NormalizeMsgFile(f, "test_msgs/msg/Simple")
	if err != nil {
		t.Fatalf("NormalizeMsgFile: %v", err)
	}
	d := descs["test_msgs/msg/Simple"]
	if d == nil || len(d.Fields) != 2 {
		t.Fatalf("descriptor = %+v", d)
	}
	if _, ok := d.Fields[0].Type.(BaseType); !ok {
		t.Fatalf("field 0 type = %T", d.Fields[0].Type)
	}
}

func TestNormalizeMsgFileWithDeps(t *testing.T) {
	text := "Header header\n" +
		"================================================================================\n" +
		"MSG: std_msgs/Header\n" +
		"uint32 seq\ntime stamp\nstring frame_id\n"
	f, err := msgdef.Parse("test_msgs/msg/Stamped", text)
	if err != nil {
		t.Fatalf("msgdef.Parse: %v", err)
	}
	descs, err := NormalizeMsgFile(f, "test_msgs/msg/Stamped")
	if err != nil {
		t.Fatalf("NormalizeMsgFile: %v", err)
	}
	primary := descs["test_msgs/msg/Stamped"]
	ref, ok := primary.Fields[0].Type.(NameRef)
	if !ok || ref.Name != "std_msgs/msg/Header" {
		t.Fatalf("header field type = %+v", primary.Fields[0].Type)
	}
	if descs["std_msgs/msg/Header"] == nil {
		t.Fatalf("expected std_msgs/msg/Header dependency descriptor")
	}
}

func TestNormalizeIDLFile(t *testing.T) {
	src := `module geometry_msgs { module msg {
    struct Point { float64 x; float64 y; float64 z; };
  }; };`
	f, err := idldef.Parse(src)
	if err != nil {
		t.Fatalf("idldef.Parse: %v", err)
	}
	descs, err := NormalizeIDLFile(f)
	if err != nil {
		t.Fatalf("NormalizeIDLFile: %v", err)
	}
	d := descs["geometry_msgs/msg/Point"]
	if d == nil || len(d.Fields) != 3 {
		t.Fatalf("descriptor = %+v", d)
	}
}

func TestMD5HashDeterministic(t *testing.T) {
	text := "uint32 a\nstring b\n"
	f, _ := msgdef.Parse("test_msgs/msg/Simple", text)
	descs, _ := NormalizeMsgFile(f, "test_msgs/msg/Simple")
	d := descs["test_msgs/msg/Simple"]
	resolve := func(n QName) (*Descriptor, bool) { v, ok := descs[n]; return v, ok }

	h1, err := MD5Hex(d, resolve)
	if err != nil {
		t.Fatalf("MD5Hex: %v", err)
	}
	h2, err := MD5Hex(d, resolve)
	if err != nil || h1 != h2 {
		t.Fatalf("MD5Hex not deterministic: %q vs %q (err %v)", h1, h2, err)
	}
}

func TestMD5HashNestedUsesDependencyDigest(t *testing.T) {
	text := "Header header\n" +
		"================================================================================\n" +
		"MSG: std_msgs/Header\n" +
		"uint32 seq\ntime stamp\nstring frame_id\n"
	f, _ := msgdef.Parse("test_msgs/msg/Stamped", text)
	descs, _ := NormalizeMsgFile(f, "test_msgs/msg/Stamped")
	resolve := func(n QName) (*Descriptor, bool) { v, ok := descs[n]; return v, ok }

	headerHash, err := MD5Hex(descs["std_msgs/msg/Header"], resolve)
	if err != nil {
		t.Fatalf("MD5Hex(Header): %v", err)
	}
	text2, err := md5Text(descs["test_msgs/msg/Stamped"], resolve, nil, map[QName]string{})
	if err != nil {
		t.Fatalf("md5Text: %v", err)
	}
	if text2 != headerHash+" header" {
		t.Fatalf("expected canonical text %q, got %q", headerHash+" header", text2)
	}
}

func TestRIHS01Deterministic(t *testing.T) {
	text := "uint32 a\nstring b\n"
	f, _ := msgdef.Parse("test_msgs/msg/Simple", text)
	descs, _ := NormalizeMsgFile(f, "test_msgs/msg/Simple")
	d := descs["test_msgs/msg/Simple"]
	resolve := func(n QName) (*Descriptor, bool) { v, ok := descs[n]; return v, ok }

	h1, err := RIHS01(d, resolve)
	if err != nil {
		t.Fatalf("RIHS01: %v", err)
	}
	if h1[:7] != "RIHS01_" {
		t.Fatalf("expected RIHS01_ prefix, got %q", h1)
	}
	h2, _ := RIHS01(d, resolve)
	if h1 != h2 {
		t.Fatalf("RIHS01 not deterministic")
	}
}

func TestMD5HashCycleRejected(t *testing.T) {
	a := &Descriptor{Name: "p/msg/A", Fields: []Field{{Name: "b", Type: NameRef{Name: "p/msg/B"}}}}
	b := &Descriptor{Name: "p/msg/B", Fields: []Field{{Name: "a", Type: NameRef{Name: "p/msg/A"}}}}
	resolve := func(n QName) (*Descriptor, bool) {
		switch n {
		case "p/msg/A":
			return a, true
		case "p/msg/B":
			return b, true
		}
		return nil, false
	}
	_, err := MD5(a, resolve)
	if err == nil {
		t.Fatal("expected a cycle error")
	}
}
