/*
NAME
  length.go

DESCRIPTION
  length.go implements the ALP Length prefix: a 2-bit size selector
  followed by a 6/14/22/30-bit value, chosen to the minimal size that can
  hold the value.
*/

// Package length implements the DASH7 ALP Length field: a self-describing,
// minimally-sized unsigned integer prefix used ahead of query masks, file
// data payloads and similar variable-length byte ranges.
package length

import (
	"math/bits"

	dbits "github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
)

const (
	sizeSelectorBits = 2
	baseValueBits    = 6

	// Max is the largest value representable with the 2-bit size selector
	// maxed out (size=3, 6+3*8=30 value bits).
	Max = 1<<30 - 1
)

// Length is a decoded ALP Length value.
type Length uint32

// requiredBits returns the number of bits needed to represent value,
// treating 0 as needing 1 bit.
func requiredBits(value uint32) int {
	if value == 0 {
		return 1
	}
	return bits.Len32(value)
}

// size returns the minimal size selector (0..3) able to hold value.
func size(value uint32) uint8 {
	extra := requiredBits(value) - baseValueBits
	if extra <= 0 {
		return 0
	}
	extraBytes := extra / 8
	if extra%8 > 0 {
		extraBytes++
	}
	if extraBytes > 3 {
		extraBytes = 3
	}
	return uint8(extraBytes)
}

// Decode reads a Length prefix from r.
func Decode(r *dbits.Reader) (Length, error) {
	sel, err := r.ReadBits(sizeSelectorBits)
	if err != nil {
		return 0, d7err.UnexpectedEndOf("Length.size", err)
	}
	valueBits := baseValueBits + int(sel)*8
	value, err := r.ReadBits(valueBits)
	if err != nil {
		return 0, d7err.UnexpectedEndOf("Length.value", err)
	}
	return Length(value), nil
}

// Encode writes l to w using the minimal size selector that can hold it.
func Encode(w *dbits.Writer, l Length) error {
	value := uint32(l)
	if value > Max {
		return d7err.TooLarge("Length", uint64(value), Max)
	}
	sel := size(value)
	if err := w.WriteBits(uint32(sel), sizeSelectorBits); err != nil {
		return err
	}
	valueBits := baseValueBits + int(sel)*8
	return w.WriteBits(value, valueBits)
}
