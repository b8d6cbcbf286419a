package length

import (
	"testing"

	"github.com/vhdirk/dash7-go/bits"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	values := []Length{0, 1, 63, 64, 255, 16383, 16384, 1000000}
	for _, v := range values {
		w := bits.NewWriter()
		if err := Encode(w, v); err != nil {
			t.Fatalf("Encode(%d): unexpected error: %v", v, err)
		}
		buf := w.Finalize()

		r := bits.NewReader(buf)
		got, err := Decode(r)
		if err != nil {
			t.Fatalf("Decode: unexpected error: %v", err)
		}
		if got != v {
			t.Errorf("round trip %d -> %d", v, got)
		}
	}
}

// TestLengthMinimality pins the minimal-size-selector property down: no
// value ever encodes wider than necessary.
func TestLengthMinimality(t *testing.T) {
	cases := []struct {
		value    Length
		wantBits int // total encoded bits including the 2-bit selector
	}{
		{0, 8},
		{63, 8},
		{64, 16},
		{16383, 16},
		{16384, 24},
		{1 << 22, 32},
	}
	for _, c := range cases {
		w := bits.NewWriter()
		if err := Encode(w, c.value); err != nil {
			t.Fatalf("Encode(%d): unexpected error: %v", c.value, err)
		}
		got := int(w.PositionBits())
		if got != c.wantBits {
			t.Errorf("Encode(%d) used %d bits, want %d", c.value, got, c.wantBits)
		}
	}
}

func TestEncodeTooLarge(t *testing.T) {
	w := bits.NewWriter()
	if err := Encode(w, Max+1); err == nil {
		t.Errorf("expected error encoding value beyond Max")
	}
}
