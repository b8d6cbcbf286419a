package varint

import (
	"testing"

	"github.com/vhdirk/dash7-go/bits"
)

func TestIsValid(t *testing.T) {
	if !IsValid(507904) {
		t.Errorf("507904 should be valid")
	}
	if IsValid(0x40000000) {
		t.Errorf("0x40000000 should not be valid")
	}
}

func TestDecompress(t *testing.T) {
	cases := []struct {
		exponent, mantissa uint8
		want               uint32
	}{
		{0, 0, 0},
		{1, 1, 4},
		{2, 2, 32},
		{3, 3, 192},
		{7, 31, 507904},
	}
	for _, c := range cases {
		got, err := Decompress(c.exponent, c.mantissa)
		if err != nil {
			t.Fatalf("Decompress(%d,%d): unexpected error: %v", c.exponent, c.mantissa, err)
		}
		if got.Value != c.want {
			t.Errorf("Decompress(%d,%d) = %d, want %d", c.exponent, c.mantissa, got.Value, c.want)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		value uint32
		want  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{32, []byte{0b00101000}},
		{507904, []byte{0xff}},
	}
	for _, c := range cases {
		w := bits.NewWriter()
		if err := Encode(w, VarInt{Value: c.value}); err != nil {
			t.Fatalf("Encode(%d): unexpected error: %v", c.value, err)
		}
		got := w.Finalize()
		if len(got) != len(c.want) || got[0] != c.want[0] {
			t.Errorf("Encode(%d) = %x, want %x", c.value, got, c.want)
		}

		r := bits.NewReader(got)
		v, err := Decode(r)
		if err != nil {
			t.Fatalf("Decode: unexpected error: %v", err)
		}
		if v.Value != c.value {
			t.Errorf("Decode(Encode(%d)) = %d", c.value, v.Value)
		}
	}
}

func TestDecodeTotalOverAllOctets(t *testing.T) {
	for i := 0; i < 256; i++ {
		r := bits.NewReader([]byte{byte(i)})
		if _, err := Decode(r); err != nil {
			t.Errorf("Decode(0x%02x): unexpected error: %v", i, err)
		}
	}
}

func TestExceedsMax(t *testing.T) {
	if _, err := New(Max+1, false); err == nil {
		t.Errorf("expected error for value exceeding Max")
	}
}
