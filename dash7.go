/*
NAME
  dash7.go

DESCRIPTION
  dash7.go is the module's public façade: byte-slice-in, byte-slice-out
  wrappers around the internal packages' bit-level Decode/Encode pairs,
  the only surface external collaborators (the CLI, foreign-language
  bindings) are expected to call.
*/

// Package dash7 is the public façade over this module's DASH7 ALP codec
// packages: decode/encode operations taking and returning plain byte
// slices, fronting the bit-level codecs in alp, link, serial and file.
package dash7

import (
	"github.com/vhdirk/dash7-go/alp"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/file"
	"github.com/vhdirk/dash7-go/fileid"
	"github.com/vhdirk/dash7-go/link"
	"github.com/vhdirk/dash7-go/serial"
)

// requireConsumed returns a TrailingData error if r has unread bytes left.
func requireConsumed(r *bits.Reader, total int) error {
	if remaining := r.RemainingBytes(); remaining > 0 {
		return d7err.Trailing(total-remaining, total)
	}
	return nil
}

// DecodeCommand decodes an ALP command from b. A command ending in
// IndirectForward may leave trailing bytes of b unconsumed by design (the
// bytes following IndirectForward are interface-specific); every other
// command must consume b exactly.
func DecodeCommand(b []byte) (*alp.Command, error) {
	r := bits.NewReader(b)
	cmd, err := alp.DecodeCommand(r, len(b))
	if err != nil {
		return nil, err
	}
	if len(cmd.Actions) == 0 || cmd.Actions[len(cmd.Actions)-1].Op != alp.OpIndirectForward {
		if err := requireConsumed(r, len(b)); err != nil {
			return nil, err
		}
	}
	return &cmd, nil
}

// EncodeCommand encodes c to bytes.
func EncodeCommand(c *alp.Command) ([]byte, error) {
	w := bits.NewWriter()
	if err := alp.EncodeCommand(w, *c); err != nil {
		return nil, err
	}
	return w.Finalize(), nil
}

// DecodeForegroundFrame decodes a link-layer ForegroundFrame from b. b must
// contain exactly one frame.
func DecodeForegroundFrame(b []byte) (*link.ForegroundFrame, error) {
	r := bits.NewReader(b)
	f, err := link.DecodeForegroundFrame(r)
	if err != nil {
		return nil, err
	}
	if err := requireConsumed(r, len(b)); err != nil {
		return nil, err
	}
	return &f, nil
}

// EncodeForegroundFrame encodes f to bytes.
func EncodeForegroundFrame(f *link.ForegroundFrame) ([]byte, error) {
	w := bits.NewWriter()
	if err := link.EncodeForegroundFrame(w, *f); err != nil {
		return nil, err
	}
	return w.Finalize(), nil
}

// DecodeBackgroundFrame decodes a link-layer BackgroundFrame from b. b must
// contain exactly the frame's 6 bytes.
func DecodeBackgroundFrame(b []byte) (*link.BackgroundFrame, error) {
	r := bits.NewReader(b)
	f, err := link.DecodeBackgroundFrame(r)
	if err != nil {
		return nil, err
	}
	if err := requireConsumed(r, len(b)); err != nil {
		return nil, err
	}
	return &f, nil
}

// EncodeBackgroundFrame encodes f to bytes.
func EncodeBackgroundFrame(f *link.BackgroundFrame) ([]byte, error) {
	w := bits.NewWriter()
	if err := link.EncodeBackgroundFrame(w, *f); err != nil {
		return nil, err
	}
	return w.Finalize(), nil
}

// DecodeSerialFrame decodes a host-modem SerialFrame from b. b must contain
// exactly one frame.
func DecodeSerialFrame(b []byte) (*serial.SerialFrame, error) {
	r := bits.NewReader(b)
	f, err := serial.DecodeSerialFrame(r)
	if err != nil {
		return nil, err
	}
	if err := requireConsumed(r, len(b)); err != nil {
		return nil, err
	}
	return &f, nil
}

// EncodeSerialFrame encodes f to bytes.
func EncodeSerialFrame(f *serial.SerialFrame) ([]byte, error) {
	w := bits.NewWriter()
	if err := serial.EncodeSerialFrame(w, *f); err != nil {
		return nil, err
	}
	return w.Finalize(), nil
}

// DecodeFile decodes a filesystem file's body of the given id from b. b
// must contain exactly the file's declared length.
func DecodeFile(b []byte, id fileid.ID) (file.File, error) {
	r := bits.NewReader(b)
	f, err := file.DecodeFile(r, id, uint32(len(b)))
	if err != nil {
		return file.File{}, err
	}
	if err := requireConsumed(r, len(b)); err != nil {
		return file.File{}, err
	}
	return f, nil
}

// EncodeFile encodes f to bytes.
func EncodeFile(f file.File) ([]byte, error) {
	w := bits.NewWriter()
	if err := file.EncodeFile(w, f); err != nil {
		return nil, err
	}
	return w.Finalize(), nil
}
