//go:build go1.18

package wire1

import (
	"testing"

	"github.com/blockberries/rosmsg/pkg/typestore"
)

// FuzzDeserialize checks that Deserialize never panics on arbitrary bytes,
// only ever returning an error, for a handful of representative shapes:
// a flat message, one with a bounded string, and one with a nested
// submessage and a sequence.
func FuzzDeserialize(f *testing.F) {
	store := typestore.New(typestore.PresetEmpty)
	if _, err := store.RegisterText([]byte(
		"uint32 a\nstring b\nuint8[] xs\nuint8[4] ys\nstring<=4 z\n"),
		typestore.FormatMSG, "test_msgs/msg/Fuzz"); err != nil {
		f.Fatalf("RegisterText: %v", err)
	}
	if _, err := store.RegisterText([]byte("uint32 seq\nFuzz inner\n"),
		typestore.FormatMSG, "test_msgs/msg/Outer"); err != nil {
		f.Fatalf("RegisterText: %v", err)
	}

	f.Add([]byte{})
	f.Add([]byte{0x00, 0x00, 0x00, 0x00})
	f.Add([]byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 'h', 'i'})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff})

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = Deserialize(store, "test_msgs/msg/Fuzz", data)
		_, _ = Deserialize(store, "test_msgs/msg/Outer", data)
	})
}
