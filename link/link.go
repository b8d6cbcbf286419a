/*
NAME
  link.go

DESCRIPTION
  link.go implements the Data Link layer's two frame shapes -- the fixed
  6-byte BackgroundFrame used for flood/burst transmissions and the
  variable-length ForegroundFrame that carries a full Network frame -- plus
  AccessProfile, the per-subnet radio configuration a device's AccessClass
  selects.
*/

// Package link implements the DASH7 Data Link layer: background and
// foreground frame shapes and the AccessProfile that parameterizes a
// subnet's channel, sub-profile and sub-band configuration.
package link

import (
	"github.com/vhdirk/dash7-go/address"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/length"
	"github.com/vhdirk/dash7-go/network"
	"github.com/vhdirk/dash7-go/physical"
)

// BackgroundFrameControl is BackgroundFrame's second byte: a 2-bit address
// type plus a 6-bit tag id.
type BackgroundFrameControl struct {
	AddressType address.Type
	TagID       uint8 // 6 bits
}

// DecodeBackgroundFrameControl reads a BackgroundFrameControl byte from r.
func DecodeBackgroundFrameControl(r *bits.Reader) (BackgroundFrameControl, error) {
	t, err := address.DecodeType(r)
	if err != nil {
		return BackgroundFrameControl{}, err
	}
	tag, err := r.ReadBits(6)
	if err != nil {
		return BackgroundFrameControl{}, d7err.UnexpectedEndOf("BackgroundFrameControl.tag_id", err)
	}
	return BackgroundFrameControl{AddressType: t, TagID: uint8(tag)}, nil
}

// EncodeBackgroundFrameControl writes c to w.
func EncodeBackgroundFrameControl(w *bits.Writer, c BackgroundFrameControl) error {
	if err := address.EncodeType(w, c.AddressType); err != nil {
		return err
	}
	return w.WriteBits(uint32(c.TagID), 6)
}

// BackgroundFrame is the fixed-size frame used for flood/burst
// transmissions: subnet, control, a 16-bit payload and a 16-bit CRC, 6
// bytes total.
type BackgroundFrame struct {
	Subnet  uint8
	Control BackgroundFrameControl
	Payload uint16
	CRC16   uint16
}

// DecodeBackgroundFrame reads a BackgroundFrame from r.
func DecodeBackgroundFrame(r *bits.Reader) (BackgroundFrame, error) {
	subnet, err := r.ReadBits(8)
	if err != nil {
		return BackgroundFrame{}, d7err.UnexpectedEndOf("BackgroundFrame.subnet", err)
	}
	ctrl, err := DecodeBackgroundFrameControl(r)
	if err != nil {
		return BackgroundFrame{}, err
	}
	payload, err := r.ReadBits(16)
	if err != nil {
		return BackgroundFrame{}, d7err.UnexpectedEndOf("BackgroundFrame.payload", err)
	}
	crc, err := r.ReadBits(16)
	if err != nil {
		return BackgroundFrame{}, d7err.UnexpectedEndOf("BackgroundFrame.crc16", err)
	}
	return BackgroundFrame{
		Subnet:  uint8(subnet),
		Control: ctrl,
		Payload: uint16(payload),
		CRC16:   uint16(crc),
	}, nil
}

// EncodeBackgroundFrame writes f to w.
func EncodeBackgroundFrame(w *bits.Writer, f BackgroundFrame) error {
	if err := w.WriteBits(uint32(f.Subnet), 8); err != nil {
		return err
	}
	if err := EncodeBackgroundFrameControl(w, f.Control); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(f.Payload), 16); err != nil {
		return err
	}
	return w.WriteBits(uint32(f.CRC16), 16)
}

// ForegroundFrameControl is ForegroundFrame's control byte: a 2-bit address
// type plus a 6-bit EIRP index.
type ForegroundFrameControl struct {
	AddressType address.Type
	EIRPIndex   uint8 // 6 bits
}

// DecodeForegroundFrameControl reads a ForegroundFrameControl byte from r.
func DecodeForegroundFrameControl(r *bits.Reader) (ForegroundFrameControl, error) {
	t, err := address.DecodeType(r)
	if err != nil {
		return ForegroundFrameControl{}, err
	}
	eirp, err := r.ReadBits(6)
	if err != nil {
		return ForegroundFrameControl{}, d7err.UnexpectedEndOf("ForegroundFrameControl.eirp_index", err)
	}
	return ForegroundFrameControl{AddressType: t, EIRPIndex: uint8(eirp)}, nil
}

// EncodeForegroundFrameControl writes c to w.
func EncodeForegroundFrameControl(w *bits.Writer, c ForegroundFrameControl) error {
	if err := address.EncodeType(w, c.AddressType); err != nil {
		return err
	}
	return w.WriteBits(uint32(c.EIRPIndex), 6)
}

// ForegroundFrame is the variable-length frame carrying a full Network
// frame: a length prefix, subnet, control, the target address (shaped by
// control's address type), the Network frame itself (sized by length), and
// a trailing CRC.
type ForegroundFrame struct {
	Length        length.Length
	Subnet        uint8
	Control       ForegroundFrameControl
	TargetAddress address.Address
	Frame         network.Frame
	CRC16         uint16
}

// DecodeForegroundFrame reads a ForegroundFrame from r.
func DecodeForegroundFrame(r *bits.Reader) (ForegroundFrame, error) {
	l, err := length.Decode(r)
	if err != nil {
		return ForegroundFrame{}, err
	}
	subnet, err := r.ReadBits(8)
	if err != nil {
		return ForegroundFrame{}, d7err.UnexpectedEndOf("ForegroundFrame.subnet", err)
	}
	ctrl, err := DecodeForegroundFrameControl(r)
	if err != nil {
		return ForegroundFrame{}, err
	}
	target, err := address.Decode(r, ctrl.AddressType)
	if err != nil {
		return ForegroundFrame{}, err
	}
	nfBytes, err := r.ReadBytes(int(l))
	if err != nil {
		return ForegroundFrame{}, d7err.UnexpectedEndOf("ForegroundFrame.frame", err)
	}
	nf, err := network.DecodeFrame(bits.NewReader(nfBytes), int(l))
	if err != nil {
		return ForegroundFrame{}, err
	}
	crc, err := r.ReadBits(16)
	if err != nil {
		return ForegroundFrame{}, d7err.UnexpectedEndOf("ForegroundFrame.crc16", err)
	}
	return ForegroundFrame{
		Length:        l,
		Subnet:        uint8(subnet),
		Control:       ctrl,
		TargetAddress: target,
		Frame:         nf,
		CRC16:         uint16(crc),
	}, nil
}

// EncodeForegroundFrame writes f to w.
func EncodeForegroundFrame(w *bits.Writer, f ForegroundFrame) error {
	if err := length.Encode(w, f.Length); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(f.Subnet), 8); err != nil {
		return err
	}
	if err := EncodeForegroundFrameControl(w, f.Control); err != nil {
		return err
	}
	if err := address.Encode(w, f.TargetAddress); err != nil {
		return err
	}
	if err := network.EncodeFrame(w, f.Frame); err != nil {
		return err
	}
	return w.WriteBits(uint32(f.CRC16), 16)
}

// AccessProfile is the per-subnet radio configuration an AccessClass
// selects: a channel header, a fixed table of 4 sub-profiles, and a fixed
// table of 8 sub-bands.
type AccessProfile struct {
	ChannelHeader physical.ChannelHeader
	SubProfiles   [4]physical.SubProfile
	SubBands      [8]physical.SubBand
}

// DecodeAccessProfile reads an AccessProfile from r.
func DecodeAccessProfile(r *bits.Reader) (AccessProfile, error) {
	ch, err := physical.Decode(r)
	if err != nil {
		return AccessProfile{}, err
	}
	var p AccessProfile
	p.ChannelHeader = ch
	for i := range p.SubProfiles {
		sp, err := physical.DecodeSubProfile(r)
		if err != nil {
			return AccessProfile{}, err
		}
		p.SubProfiles[i] = sp
	}
	for i := range p.SubBands {
		sb, err := physical.DecodeSubBand(r)
		if err != nil {
			return AccessProfile{}, err
		}
		p.SubBands[i] = sb
	}
	return p, nil
}

// EncodeAccessProfile writes p to w.
func EncodeAccessProfile(w *bits.Writer, p AccessProfile) error {
	if err := physical.Encode(w, p.ChannelHeader); err != nil {
		return err
	}
	for _, sp := range p.SubProfiles {
		if err := physical.EncodeSubProfile(w, sp); err != nil {
			return err
		}
	}
	for _, sb := range p.SubBands {
		if err := physical.EncodeSubBand(w, sb); err != nil {
			return err
		}
	}
	return nil
}
