/*
NAME
  testcodec.go

DESCRIPTION
  testcodec.go provides RoundTrip, a small test-support helper that checks
  both directions of a codec in one call: encode(value) must equal the
  expected bytes, and decode(those bytes) must equal value back.
*/

// Package testcodec provides shared round-trip test scaffolding for this
// module's codec packages, mirroring the original Rust suite's
// test_item(value, bytes) helper.
package testcodec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vhdirk/dash7-go/bits"
)

// RoundTrip encodes value with encode and asserts the result equals
// wantBytes, then decodes wantBytes with decode and asserts the result
// equals value. It fails t via Errorf/Fatalf but never returns an error
// itself, matching this module's other test helpers.
func RoundTrip[T any](t *testing.T, encode func(*bits.Writer, T) error, decode func(*bits.Reader) (T, error), value T, wantBytes []byte) {
	t.Helper()

	w := bits.NewWriter()
	if err := encode(w, value); err != nil {
		t.Fatalf("encode: unexpected error: %v", err)
	}
	got := w.Finalize()
	if diff := cmp.Diff(wantBytes, got); diff != "" {
		t.Errorf("encode mismatch (-want +got):\n%s", diff)
	}

	r := bits.NewReader(wantBytes)
	decoded, err := decode(r)
	if err != nil {
		t.Fatalf("decode: unexpected error: %v", err)
	}
	if diff := cmp.Diff(value, decoded); diff != "" {
		t.Errorf("decode mismatch (-want +got):\n%s", diff)
	}
}
