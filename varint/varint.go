/*
NAME
  varint.go

DESCRIPTION
  varint.go implements the ALP "Compressed Format" variable-length integer:
  one byte split into a 3-bit exponent and a 5-bit mantissa, representing
  4^exponent * mantissa.
*/

// Package varint implements the DASH7 ALP compressed-format integer: a
// single byte encoding value = 4^exponent * mantissa, trading precision for
// a fixed one-byte width.
package varint

import (
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
)

const (
	exponentBits = 3
	mantissaBits = 5

	// MaxExponent is the largest representable exponent (2^exponentBits - 1).
	MaxExponent = 7
	// MaxMantissa is the largest representable mantissa (2^mantissaBits - 1).
	MaxMantissa = 31

	// Max is the largest value a VarInt can represent: 4^7 * 31.
	Max = 507904
)

// VarInt is a decompressed compressed-format value, together with the
// rounding mode used when re-compressing it.
type VarInt struct {
	Value uint32
	// Ceil selects round-up (rather than round-down/truncate) compression
	// when Value is not exactly representable.
	Ceil bool
}

// IsValid reports whether value is encodable into a VarInt, with no
// guarantee about the precision of that encoding.
func IsValid(value uint32) bool {
	return value <= Max
}

// New returns a VarInt for value, or a ValueTooLarge error if value exceeds
// Max.
func New(value uint32, ceil bool) (VarInt, error) {
	if !IsValid(value) {
		return VarInt{}, d7err.TooLarge("Varint", uint64(value), Max)
	}
	return VarInt{Value: value, Ceil: ceil}, nil
}

// Decompress reconstructs the value represented by an exponent/mantissa
// pair. It is total over every value representable in 3+5 bits: exponent is
// always in [0,7] and mantissa always in [0,31] when read off the wire, so
// this never fails on a single valid octet.
func Decompress(exponent, mantissa uint8) (VarInt, error) {
	if exponent > MaxExponent {
		return VarInt{}, d7err.TooLarge("Varint exponent", uint64(exponent), MaxExponent)
	}
	if mantissa > MaxMantissa {
		return VarInt{}, d7err.TooLarge("Varint mantissa", uint64(mantissa), MaxMantissa)
	}
	value := pow4(exponent) * uint32(mantissa)
	return VarInt{Value: value}, nil
}

// Compress reduces v to an exponent/mantissa pair, rounding according to
// v.Ceil when the value is not exactly representable at a given exponent.
func Compress(v VarInt) (exponent, mantissa uint8) {
	for e := uint32(0); e <= MaxExponent; e++ {
		step := pow4(uint8(e))
		if v.Value <= step*MaxMantissa {
			m := v.Value / step
			rem := v.Value % step
			if v.Ceil && rem > 0 {
				m++
			}
			return uint8(e), uint8(m)
		}
	}
	// Unreachable: every value <= Max fits at exponent 7.
	return MaxExponent, MaxMantissa
}

func pow4(e uint8) uint32 {
	v := uint32(1)
	for i := uint8(0); i < e; i++ {
		v *= 4
	}
	return v
}

// Decode reads one compressed-format octet from r.
func Decode(r *bits.Reader) (VarInt, error) {
	exp, err := r.ReadBits(exponentBits)
	if err != nil {
		return VarInt{}, d7err.UnexpectedEndOf("Varint.exponent", err)
	}
	mant, err := r.ReadBits(mantissaBits)
	if err != nil {
		return VarInt{}, d7err.UnexpectedEndOf("Varint.mantissa", err)
	}
	return Decompress(uint8(exp), uint8(mant))
}

// Encode writes v to w as one compressed-format octet.
func Encode(w *bits.Writer, v VarInt) error {
	exponent, mantissa := Compress(v)
	if err := w.WriteBits(uint32(exponent), exponentBits); err != nil {
		return err
	}
	return w.WriteBits(uint32(mantissa), mantissaBits)
}
