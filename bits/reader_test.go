package bits

import (
	"testing"
)

func TestReaderReadBits(t *testing.T) {
	// 1000 1111, 1110 0011
	r := NewReader([]byte{0x8f, 0xe3})

	cases := []struct {
		n    int
		want uint32
	}{
		{4, 0x8},
		{2, 0x3},
		{4, 0xf},
		{6, 0x23},
	}
	for i, c := range cases {
		got, err := r.ReadBits(c.n)
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		if got != c.want {
			t.Errorf("case %d: got 0x%x, want 0x%x", i, got, c.want)
		}
	}
	if !r.End() {
		t.Errorf("expected reader to be at end")
	}
}

func TestReaderReadBytes(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04})
	b, err := r.ReadBytes(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b[0] != 0x01 || b[1] != 0x02 {
		t.Errorf("got %x, want 0102", b)
	}
	if r.RemainingBytes() != 2 {
		t.Errorf("got remaining %d, want 2", r.RemainingBytes())
	}
}

func TestReaderReadBytesNotAligned(t *testing.T) {
	r := NewReader([]byte{0xff, 0xff})
	if _, err := r.ReadBits(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.ReadBytes(1); err == nil {
		t.Errorf("expected error reading unaligned bytes")
	}
}

func TestReaderUnexpectedEnd(t *testing.T) {
	r := NewReader([]byte{0xff})
	if _, err := r.ReadBits(16); err == nil {
		t.Errorf("expected unexpected-end error")
	}
}

func TestReaderPositionBits(t *testing.T) {
	r := NewReader([]byte{0xff, 0xff})
	if _, err := r.ReadBits(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.PositionBits() != 3 {
		t.Errorf("got position %d, want 3", r.PositionBits())
	}
}
