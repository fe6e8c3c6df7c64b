//go:build go1.18

package cdr

import (
	"testing"

	"github.com/blockberries/rosmsg/pkg/typestore"
)

// FuzzDeserialize checks that Deserialize never panics on arbitrary bytes,
// including truncated or malformed representation-identifier headers.
func FuzzDeserialize(f *testing.F) {
	store := typestore.New(typestore.PresetEmpty)
	if _, err := store.RegisterText([]byte(
		"uint32 a\nstring b\nuint8[] xs\nuint8[4] ys\n"),
		typestore.FormatMSG, "test_msgs/msg/Fuzz"); err != nil {
		f.Fatalf("RegisterText: %v", err)
	}

	f.Add([]byte{})
	f.Add([]byte{0x00, 0x01, 0x00, 0x00})
	f.Add([]byte{0x00, 0x01, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 'h', 'i', 0x00})
	f.Add([]byte{0x01, 0x02, 0x03, 0x04})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0xff})

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = Deserialize(store, "test_msgs/msg/Fuzz", data)
	})
}
