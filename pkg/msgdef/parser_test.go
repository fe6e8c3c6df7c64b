package msgdef

import "testing"

func TestParseSimpleFields(t *testing.T) {
	text := "uint32 a\nstring b\n"
	f, err := Parse("test_msgs/msg/Simple", text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Primary.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(f.Primary.Fields))
	}
	if f.Primary.Fields[0].Type.Name != "uint32" || f.Primary.Fields[0].Name != "a" {
		t.Fatalf("field 0 = %+v", f.Primary.Fields[0])
	}
	if f.Primary.Fields[1].Type.Name != "string" || f.Primary.Fields[1].Name != "b" {
		t.Fatalf("field 1 = %+v", f.Primary.Fields[1])
	}
}

func TestParseComments(t *testing.T) {
	text := "# a leading comment\nuint32 a # trailing comment\n\nstring b\n"
	f, err := Parse("test_msgs/msg/C", text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Primary.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d: %+v", len(f.Primary.Fields), f.Primary.Fields)
	}
}

func TestParseConstant(t *testing.T) {
	text := "uint8 FOO=1\nstring NAME=hello # not a comment\n"
	f, err := Parse("test_msgs/msg/K", text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Primary.Consts) != 2 {
		t.Fatalf("expected 2 constants, got %d", len(f.Primary.Consts))
	}
	if f.Primary.Consts[0].Name != "FOO" || f.Primary.Consts[0].ValueText != "1" {
		t.Fatalf("const 0 = %+v", f.Primary.Consts[0])
	}
	if f.Primary.Consts[1].ValueText != "hello # not a comment" {
		t.Fatalf("string constant should retain trailing text verbatim, got %q", f.Primary.Consts[1].ValueText)
	}
}

func TestParseArraysAndSequences(t *testing.T) {
	text := "uint8[3] fixed3\nuint8[] unbounded\nuint8[<=5] bounded5\nstring<=10 shortstr\n"
	f, err := Parse("test_msgs/msg/Arrs", text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cases := []struct {
		idx        int
		arrayLen   int
		isSeq      bool
		seqBound   int
		strBound   int
	}{
		{0, 3, false, -1, -1},
		{1, -1, true, -1, -1},
		{2, -1, true, 5, -1},
		{3, -1, false, -1, 10},
	}
	for _, c := range cases {
		got := f.Primary.Fields[c.idx].Type
		if got.ArrayLen != c.arrayLen || got.IsSequence != c.isSeq || got.SeqBound != c.seqBound || got.StringBound != c.strBound {
			t.Errorf("field %d type = %+v, want {ArrayLen:%d IsSequence:%v SeqBound:%d StringBound:%d}",
				c.idx, got, c.arrayLen, c.isSeq, c.seqBound, c.strBound)
		}
	}
}

func TestParseNamedTypeRef(t *testing.T) {
	text := "geometry_msgs/Point position\nHeader header\n"
	f, err := Parse("test_msgs/msg/Pose", text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Primary.Fields[0].Type.Name != "geometry_msgs/Point" {
		t.Fatalf("expected qualified type name, got %q", f.Primary.Fields[0].Type.Name)
	}
	if f.Primary.Fields[1].Type.Name != "Header" {
		t.Fatalf("expected bare type name, got %q", f.Primary.Fields[1].Type.Name)
	}
}

func TestParseDependencyBlocks(t *testing.T) {
	text := "Header header\nPoint position\n" +
		separatorLine + "\n" +
		"MSG: std_msgs/Header\n" +
		"uint32 seq\ntime stamp\nstring frame_id\n" +
		separatorLine + "\n" +
		"MSG: geometry_msgs/Point\n" +
		"float64 x\nfloat64 y\nfloat64 z\n"
	f, err := Parse("test_msgs/msg/Stamped", text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Deps) != 2 {
		t.Fatalf("expected 2 dependency defs, got %d", len(f.Deps))
	}
	if f.Deps[0].Name != "std_msgs/Header" || len(f.Deps[0].Fields) != 3 {
		t.Fatalf("dep 0 = %+v", f.Deps[0])
	}
	if f.Deps[1].Name != "geometry_msgs/Point" || len(f.Deps[1].Fields) != 3 {
		t.Fatalf("dep 1 = %+v", f.Deps[1])
	}
}

func TestParseDuplicateField(t *testing.T) {
	text := "uint32 a\nuint32 a\n"
	_, err := Parse("test_msgs/msg/Dup", text)
	if err == nil {
		t.Fatal("expected a duplicate-field error")
	}
	pe, ok := err.(ParseErrors)
	if !ok || len(pe) != 1 || pe[0].Kind != DuplicateField {
		t.Fatalf("expected one DuplicateField error, got %v", err)
	}
}

func TestParseMalformedArray(t *testing.T) {
	text := "uint8[abc] bad\n"
	_, err := Parse("test_msgs/msg/Bad", text)
	if err == nil {
		t.Fatal("expected an error")
	}
	pe, ok := err.(ParseErrors)
	if !ok || pe[0].Kind != MalformedArray {
		t.Fatalf("expected MalformedArray, got %v", err)
	}
}

func TestParseCollectsMultipleErrors(t *testing.T) {
	text := "uint8[abc] bad1\nuint32 a\nuint32 a\n"
	_, err := Parse("test_msgs/msg/Multi", text)
	pe, ok := err.(ParseErrors)
	if !ok || len(pe) != 2 {
		t.Fatalf("expected 2 collected errors, got %v", err)
	}
}
