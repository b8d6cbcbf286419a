// Package d7err provides the structured error taxonomy shared by every
// layer of the DASH7 ALP codec. The codec never recovers from a failure
// locally: every error aborts the current decode/encode and propagates to
// the caller, annotated with the field or syntax element being processed.
package d7err

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind discriminates the taxonomy of codec failures.
type Kind int

const (
	// UnexpectedEnd means the input was exhausted mid-field.
	UnexpectedEnd Kind = iota
	// InvalidDiscriminant means a tag byte had no assigned variant and no
	// fallthrough rule.
	InvalidDiscriminant
	// ValueTooLarge means a Varint/Length/exponent/mantissa value exceeded
	// its encodable range.
	ValueTooLarge
	// TrailingData means decode_command (or another "complete buffer"
	// operation) left unconsumed bytes.
	TrailingData
	// BadMagic means a serial frame did not start with the expected magic
	// byte.
	BadMagic
	// Unsupported means the caller requested an operation blocked by the
	// active build profile.
	Unsupported
	// NotByteAligned means a byte-aligned read or write was attempted while
	// the bit cursor sat mid-byte.
	NotByteAligned
)

func (k Kind) String() string {
	switch k {
	case UnexpectedEnd:
		return "unexpected end"
	case InvalidDiscriminant:
		return "invalid discriminant"
	case ValueTooLarge:
		return "value too large"
	case TrailingData:
		return "trailing data"
	case BadMagic:
		return "bad magic"
	case Unsupported:
		return "unsupported"
	case NotByteAligned:
		return "not byte aligned"
	default:
		return "unknown"
	}
}

// Error is the single discriminated error type produced by every package in
// this module.
type Error struct {
	Kind Kind

	// Field names the struct field or syntax element being decoded/encoded,
	// when applicable (UnexpectedEnd, InvalidDiscriminant, NotByteAligned).
	Field string

	// ValueKind names what kind of value was out of range (ValueTooLarge),
	// e.g. "Varint", "Length", "exponent", "mantissa".
	ValueKind string

	// Value and Max carry the offending value and its limit
	// (ValueTooLarge), or the unrecognized discriminant (InvalidDiscriminant).
	Value uint64
	Max   uint64

	// Consumed and Total carry byte counts for TrailingData.
	Consumed int
	Total    int

	// Feature names the capability requested but blocked by the active
	// build profile (Unsupported).
	Feature string

	// Cause is the lower-level error this one was raised in response to,
	// when one exists (e.g. the bits.Reader error behind an UnexpectedEnd).
	// It is captured via github.com/pkg/errors.WithStack so the first frame
	// of the chain carries a stack trace, mirroring how
	// ausocean-av/codec/h264/h264dec annotates a parse failure with
	// errors.Wrap at the point it is first observed.
	Cause error
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedEnd:
		msg := "unexpected end of input"
		if e.Field != "" {
			msg = fmt.Sprintf("unexpected end of input reading %s", e.Field)
		}
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", msg, e.Cause)
		}
		return msg
	case InvalidDiscriminant:
		return fmt.Sprintf("invalid discriminant for %s: %d", e.Field, e.Value)
	case ValueTooLarge:
		return fmt.Sprintf("%s value too large: %d (max %d)", e.ValueKind, e.Value, e.Max)
	case TrailingData:
		return fmt.Sprintf("trailing data: consumed %d of %d bytes", e.Consumed, e.Total)
	case BadMagic:
		return "bad magic byte"
	case Unsupported:
		return fmt.Sprintf("unsupported in active build profile: %s", e.Feature)
	case NotByteAligned:
		return fmt.Sprintf("%s: cursor is not byte aligned", e.Field)
	default:
		return "unknown codec error"
	}
}

// UnexpectedEndOf builds an UnexpectedEnd error naming the field being read.
// cause, when given, is the bits.Reader/Writer error this one was raised in
// response to; it is captured with errors.WithStack so the chain's first
// frame carries a trace.
func UnexpectedEndOf(field string, cause ...error) *Error {
	e := &Error{Kind: UnexpectedEnd, Field: field}
	if len(cause) > 0 && cause[0] != nil {
		e.Cause = errors.WithStack(cause[0])
	}
	return e
}

// InvalidDiscriminantOf builds an InvalidDiscriminant error.
func InvalidDiscriminantOf(field string, value uint64) *Error {
	return &Error{Kind: InvalidDiscriminant, Field: field, Value: value}
}

// TooLarge builds a ValueTooLarge error.
func TooLarge(kind string, value, max uint64) *Error {
	return &Error{Kind: ValueTooLarge, ValueKind: kind, Value: value, Max: max}
}

// Trailing builds a TrailingData error.
func Trailing(consumed, total int) *Error {
	return &Error{Kind: TrailingData, Consumed: consumed, Total: total}
}

// NotAligned builds a NotByteAligned error naming the operation attempted.
func NotAligned(field string) *Error {
	return &Error{Kind: NotByteAligned, Field: field}
}

// UnsupportedFeature builds an Unsupported error.
func UnsupportedFeature(feature string) *Error {
	return &Error{Kind: Unsupported, Feature: feature}
}

// BadMagicByte builds a BadMagic error.
func BadMagicByte() *Error {
	return &Error{Kind: BadMagic}
}
