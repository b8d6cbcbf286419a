/*
NAME
  writer.go

DESCRIPTION
  writer.go provides a big-endian, MSB-first bit writer that accumulates
  into an in-memory byte buffer, the write-side counterpart of Reader.
*/

package bits

import "github.com/pkg/errors"

// Writer accumulates bits big-endian, MSB-first, into a growable byte
// buffer. The zero value is ready to use.
type Writer struct {
	buf    []byte
	bitPos uint64 // total bits written so far
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteBits appends the low n (<=32) bits of value, most-significant bit
// first.
func (w *Writer) WriteBits(value uint32, n int) error {
	if n < 0 || n > 32 {
		return errors.Errorf("bits: WriteBits: invalid width %d", n)
	}
	if n < 32 && value>>uint(n) != 0 {
		return errors.Errorf("bits: WriteBits: value %d does not fit in %d bits", value, n)
	}

	remaining := n
	for remaining > 0 {
		byteIdx := int(w.bitPos / 8)
		bitOff := int(w.bitPos % 8)
		for byteIdx >= len(w.buf) {
			w.buf = append(w.buf, 0)
		}
		avail := 8 - bitOff
		take := avail
		if take > remaining {
			take = remaining
		}

		// Extract the top 'take' bits of the remaining value.
		shift := remaining - take
		chunk := byte((value >> uint(shift)) & uint32(byteMask(take)))

		destShift := avail - take
		w.buf[byteIdx] |= chunk << uint(destShift)

		w.bitPos += uint64(take)
		remaining -= take
	}
	return nil
}

// WriteBytes appends n whole bytes. The cursor must be byte-aligned.
func (w *Writer) WriteBytes(b []byte) error {
	if !w.ByteAligned() {
		return errors.New("bits: WriteBytes: writer is not byte aligned")
	}
	w.buf = append(w.buf, b...)
	w.bitPos += uint64(len(b)) * 8
	return nil
}

// ByteAligned reports whether the cursor sits on a byte boundary.
func (w *Writer) ByteAligned() bool {
	return w.bitPos%8 == 0
}

// PositionBits returns the number of bits written so far.
func (w *Writer) PositionBits() uint64 {
	return w.bitPos
}

// Finalize returns the accumulated bytes, zero-padding any partially
// written trailing byte. The Writer remains usable after Finalize.
func (w *Writer) Finalize() []byte {
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}
