/*
NAME
  physical.go

DESCRIPTION
  physical.go implements the Physical layer's channel identification types:
  ChannelBand/ChannelClass/ChannelCoding/Bandwidth enums, ChannelHeader,
  Channel, ChannelStatusIdentifier and SubBand.
*/

// Package physical implements the DASH7 Physical layer channel
// identification types shared by the link and session layers.
package physical

import (
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/varint"
)

// Bandwidth selects the modulation bandwidth.
type Bandwidth uint8

const (
	BandwidthKHz200 Bandwidth = 0x00
	BandwidthKHz25  Bandwidth = 0x01
)

// ChannelBand selects the ISM band a channel belongs to.
type ChannelBand uint8

const (
	ChannelBandNotImpl ChannelBand = 0x00
	ChannelBandBand433 ChannelBand = 0x02
	ChannelBandBand868 ChannelBand = 0x03
	ChannelBandBand915 ChannelBand = 0x04
)

// ChannelClass selects the symbol rate class.
type ChannelClass uint8

const (
	ChannelClassLoRate     ChannelClass = 0
	ChannelClassLora       ChannelClass = 1
	ChannelClassNormalRate ChannelClass = 2
	ChannelClassHiRate     ChannelClass = 3
)

// ChannelCoding selects the forward error correction / whitening scheme.
type ChannelCoding uint8

const (
	ChannelCodingPn9    ChannelCoding = 0
	ChannelCodingRfu    ChannelCoding = 1
	ChannelCodingFecPn9 ChannelCoding = 2
	ChannelCodingCw     ChannelCoding = 3
)

// ChannelHeader packs one reserved bit and the three channel enums into a
// single byte: pad(1) | channel_band(3) | channel_class(2) | channel_coding(2).
type ChannelHeader struct {
	ChannelBand   ChannelBand
	ChannelClass  ChannelClass
	ChannelCoding ChannelCoding
}

// Decode reads a ChannelHeader from r.
func Decode(r *bits.Reader) (ChannelHeader, error) {
	if _, err := r.ReadBits(1); err != nil {
		return ChannelHeader{}, d7err.UnexpectedEndOf("ChannelHeader.pad")
	}
	band, err := r.ReadBits(3)
	if err != nil {
		return ChannelHeader{}, d7err.UnexpectedEndOf("ChannelHeader.channel_band", err)
	}
	class, err := r.ReadBits(2)
	if err != nil {
		return ChannelHeader{}, d7err.UnexpectedEndOf("ChannelHeader.channel_class", err)
	}
	coding, err := r.ReadBits(2)
	if err != nil {
		return ChannelHeader{}, d7err.UnexpectedEndOf("ChannelHeader.channel_coding", err)
	}
	return ChannelHeader{
		ChannelBand:   ChannelBand(band),
		ChannelClass:  ChannelClass(class),
		ChannelCoding: ChannelCoding(coding),
	}, nil
}

// Encode writes h to w.
func Encode(w *bits.Writer, h ChannelHeader) error {
	if err := w.WriteBits(0, 1); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(h.ChannelBand), 3); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(h.ChannelClass), 2); err != nil {
		return err
	}
	return w.WriteBits(uint32(h.ChannelCoding), 2)
}

// Channel identifies a specific channel: a header plus a 16-bit big-endian
// index.
type Channel struct {
	Header ChannelHeader
	Index  uint16
}

// DecodeChannel reads a Channel from r.
func DecodeChannel(r *bits.Reader) (Channel, error) {
	h, err := Decode(r)
	if err != nil {
		return Channel{}, err
	}
	idx, err := r.ReadBits(16)
	if err != nil {
		return Channel{}, d7err.UnexpectedEndOf("Channel.index", err)
	}
	return Channel{Header: h, Index: uint16(idx)}, nil
}

// EncodeChannel writes c to w.
func EncodeChannel(w *bits.Writer, c Channel) error {
	if err := Encode(w, c.Header); err != nil {
		return err
	}
	return w.WriteBits(uint32(c.Index), 16)
}

// ChannelStatusIdentifier packs channel_band(3) | bandwidth(2) | index(11)
// into two bytes.
type ChannelStatusIdentifier struct {
	ChannelBand ChannelBand
	Bandwidth   Bandwidth
	Index       uint16 // 11 bits
}

// DecodeChannelStatusIdentifier reads a ChannelStatusIdentifier from r.
func DecodeChannelStatusIdentifier(r *bits.Reader) (ChannelStatusIdentifier, error) {
	band, err := r.ReadBits(3)
	if err != nil {
		return ChannelStatusIdentifier{}, d7err.UnexpectedEndOf("ChannelStatusIdentifier.channel_band", err)
	}
	bw, err := r.ReadBits(2)
	if err != nil {
		return ChannelStatusIdentifier{}, d7err.UnexpectedEndOf("ChannelStatusIdentifier.bandwidth", err)
	}
	idx, err := r.ReadBits(11)
	if err != nil {
		return ChannelStatusIdentifier{}, d7err.UnexpectedEndOf("ChannelStatusIdentifier.index", err)
	}
	return ChannelStatusIdentifier{
		ChannelBand: ChannelBand(band),
		Bandwidth:   Bandwidth(bw),
		Index:       uint16(idx),
	}, nil
}

// EncodeChannelStatusIdentifier writes c to w.
func EncodeChannelStatusIdentifier(w *bits.Writer, c ChannelStatusIdentifier) error {
	if err := w.WriteBits(uint32(c.ChannelBand), 3); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(c.Bandwidth), 2); err != nil {
		return err
	}
	return w.WriteBits(uint32(c.Index), 11)
}

// ChannelStatus pairs a ChannelStatusIdentifier with the noise floor
// measured on it, one entry of a PhyStatus file's channel status table.
type ChannelStatus struct {
	Identifier ChannelStatusIdentifier
	NoiseFloor uint8
}

// DecodeChannelStatus reads a ChannelStatus (3 bytes) from r.
func DecodeChannelStatus(r *bits.Reader) (ChannelStatus, error) {
	id, err := DecodeChannelStatusIdentifier(r)
	if err != nil {
		return ChannelStatus{}, err
	}
	nf, err := r.ReadBits(8)
	if err != nil {
		return ChannelStatus{}, d7err.UnexpectedEndOf("ChannelStatus.noise_floor", err)
	}
	return ChannelStatus{Identifier: id, NoiseFloor: uint8(nf)}, nil
}

// EncodeChannelStatus writes c to w.
func EncodeChannelStatus(w *bits.Writer, c ChannelStatus) error {
	if err := EncodeChannelStatusIdentifier(w, c.Identifier); err != nil {
		return err
	}
	return w.WriteBits(uint32(c.NoiseFloor), 8)
}

// SubBand describes one entry of an access profile's sub-band table.
type SubBand struct {
	ChannelIndexStart      uint16
	ChannelIndexEnd        uint16
	Eirp                   uint8
	ClearChannelAssessment uint8
	Duty                   uint8
}

// DecodeSubBand reads a SubBand (7 bytes) from r. The cursor must be
// byte-aligned.
func DecodeSubBand(r *bits.Reader) (SubBand, error) {
	b, err := r.ReadBytes(7)
	if err != nil {
		return SubBand{}, d7err.UnexpectedEndOf("SubBand", err)
	}
	return SubBand{
		ChannelIndexStart:      uint16(b[0])<<8 | uint16(b[1]),
		ChannelIndexEnd:        uint16(b[2])<<8 | uint16(b[3]),
		Eirp:                   b[4],
		ClearChannelAssessment: b[5],
		Duty:                   b[6],
	}, nil
}

// EncodeSubBand writes s to w. The cursor must be byte-aligned.
func EncodeSubBand(w *bits.Writer, s SubBand) error {
	buf := []byte{
		byte(s.ChannelIndexStart >> 8), byte(s.ChannelIndexStart),
		byte(s.ChannelIndexEnd >> 8), byte(s.ChannelIndexEnd),
		s.Eirp,
		s.ClearChannelAssessment,
		s.Duty,
	}
	return w.WriteBytes(buf)
}

// AccessClass packs a 4-bit access specifier (the index of the D7A file
// carrying an AccessProfile) and a 4-bit access mask into one byte.
//
// It lives in this package rather than the link layer so both the network
// and link packages can depend on it without an import cycle (the original
// network layer and link layer structures reference each other).
type AccessClass struct {
	Specifier uint8 // 4 bits
	Mask      uint8 // 4 bits
}

// UnavailableAccessClass returns the well-known "no access class selected" value.
func UnavailableAccessClass() AccessClass {
	return AccessClass{Specifier: 0x0f, Mask: 0x0f}
}

// DecodeAccessClass reads an AccessClass from r.
func DecodeAccessClass(r *bits.Reader) (AccessClass, error) {
	spec, err := r.ReadBits(4)
	if err != nil {
		return AccessClass{}, d7err.UnexpectedEndOf("AccessClass.specifier", err)
	}
	mask, err := r.ReadBits(4)
	if err != nil {
		return AccessClass{}, d7err.UnexpectedEndOf("AccessClass.mask", err)
	}
	return AccessClass{Specifier: uint8(spec), Mask: uint8(mask)}, nil
}

// EncodeAccessClass writes a to w.
func EncodeAccessClass(w *bits.Writer, a AccessClass) error {
	if err := w.WriteBits(uint32(a.Specifier), 4); err != nil {
		return err
	}
	return w.WriteBits(uint32(a.Mask), 4)
}

// SubProfile is one entry of an AccessProfile's sub-profile table.
type SubProfile struct {
	SubbandBitmap        uint8
	ScanAutomationPeriod varint.VarInt
}

// DecodeSubProfile reads a SubProfile from r.
func DecodeSubProfile(r *bits.Reader) (SubProfile, error) {
	bitmap, err := r.ReadBits(8)
	if err != nil {
		return SubProfile{}, d7err.UnexpectedEndOf("SubProfile.subband_bitmap", err)
	}
	period, err := varint.Decode(r)
	if err != nil {
		return SubProfile{}, err
	}
	return SubProfile{SubbandBitmap: uint8(bitmap), ScanAutomationPeriod: period}, nil
}

// EncodeSubProfile writes s to w.
func EncodeSubProfile(w *bits.Writer, s SubProfile) error {
	if err := w.WriteBits(uint32(s.SubbandBitmap), 8); err != nil {
		return err
	}
	return varint.Encode(w, s.ScanAutomationPeriod)
}
