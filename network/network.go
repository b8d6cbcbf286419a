/*
NAME
  network.go

DESCRIPTION
  network.go implements the Network layer frame: Control/HoppingControl
  header bytes, the origin Addressee and the embedded Transport frame.
*/

// Package network implements the DASH7 Network layer: a Control header, an
// optional hop count/destination addressing hint, the origin access class
// and address, and the Transport frame it wraps.
package network

import (
	"github.com/vhdirk/dash7-go/address"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/physical"
	"github.com/vhdirk/dash7-go/transport"
)

// Control is the Network frame's first byte: two flags, the origin address
// type, one reserved bit and the NLS method.
//
//	has_no_origin_access_id(1) | has_hopping(1) | origin_address_type(2) | reserved(1) | nls_method(3)
type Control struct {
	HasNoOriginAccessID bool
	HasHopping          bool
	OriginAddressType   address.Type
	NlsMethod           address.NlsMethod
}

// DecodeControl reads a Control byte from r.
func DecodeControl(r *bits.Reader) (Control, error) {
	noOrigin, err := r.ReadBits(1)
	if err != nil {
		return Control{}, d7err.UnexpectedEndOf("Control.has_no_origin_access_id", err)
	}
	hopping, err := r.ReadBits(1)
	if err != nil {
		return Control{}, d7err.UnexpectedEndOf("Control.has_hopping", err)
	}
	originType, err := address.DecodeType(r)
	if err != nil {
		return Control{}, err
	}
	if _, err := r.ReadBits(1); err != nil {
		return Control{}, d7err.UnexpectedEndOf("Control.reserved", err)
	}
	nlsMethod, err := address.DecodeNlsMethod(r, 3)
	if err != nil {
		return Control{}, err
	}
	return Control{
		HasNoOriginAccessID: noOrigin != 0,
		HasHopping:          hopping != 0,
		OriginAddressType:   originType,
		NlsMethod:           nlsMethod,
	}, nil
}

// EncodeControl writes c to w.
func EncodeControl(w *bits.Writer, c Control) error {
	if err := w.WriteBits(boolBit(c.HasNoOriginAccessID), 1); err != nil {
		return err
	}
	if err := w.WriteBits(boolBit(c.HasHopping), 1); err != nil {
		return err
	}
	if err := address.EncodeType(w, c.OriginAddressType); err != nil {
		return err
	}
	if err := w.WriteBits(0, 1); err != nil {
		return err
	}
	return address.EncodeNlsMethod(w, c.NlsMethod, 3)
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// HoppingControl names the hop counter and destination addressing hint
// present when Control.HasHopping is set:
//
//	reserved(1) | hop_counter(1) | destination_address_type(2) | reserved(4)
type HoppingControl struct {
	HopCounter              bool
	DestinationAddressType  address.Type
}

// DecodeHoppingControl reads a HoppingControl byte from r.
func DecodeHoppingControl(r *bits.Reader) (HoppingControl, error) {
	if _, err := r.ReadBits(1); err != nil {
		return HoppingControl{}, d7err.UnexpectedEndOf("HoppingControl.reserved", err)
	}
	hop, err := r.ReadBits(1)
	if err != nil {
		return HoppingControl{}, d7err.UnexpectedEndOf("HoppingControl.hop_counter", err)
	}
	destType, err := address.DecodeType(r)
	if err != nil {
		return HoppingControl{}, err
	}
	if _, err := r.ReadBits(4); err != nil {
		return HoppingControl{}, d7err.UnexpectedEndOf("HoppingControl.reserved", err)
	}
	return HoppingControl{HopCounter: hop != 0, DestinationAddressType: destType}, nil
}

// EncodeHoppingControl writes h to w.
func EncodeHoppingControl(w *bits.Writer, h HoppingControl) error {
	if err := w.WriteBits(0, 1); err != nil {
		return err
	}
	if err := w.WriteBits(boolBit(h.HopCounter), 1); err != nil {
		return err
	}
	if err := address.EncodeType(w, h.DestinationAddressType); err != nil {
		return err
	}
	return w.WriteBits(0, 4)
}

// Frame is the Network layer frame: Control, an optional HoppingControl,
// the origin's AccessClass and Address, and the Transport frame it carries.
type Frame struct {
	Control              Control
	HoppingControl       *HoppingControl // present iff Control.HasHopping
	OriginAccessClass    physical.AccessClass
	OriginAccessAddress  address.Address
	Transport            transport.Frame
}

// DecodeFrame reads a Network Frame from r. commandLength is passed on to
// alp.DecodeCommand, which stops reading actions once r's bit position
// (counted from the start of r) reaches commandLength*8; with r holding
// exactly this frame, that is the frame's byte length. 0 reads until r is
// exhausted.
func DecodeFrame(r *bits.Reader, commandLength int) (Frame, error) {
	ctrl, err := DecodeControl(r)
	if err != nil {
		return Frame{}, err
	}

	var hopping *HoppingControl
	if ctrl.HasHopping {
		h, err := DecodeHoppingControl(r)
		if err != nil {
			return Frame{}, err
		}
		hopping = &h
	}

	ac, err := physical.DecodeAccessClass(r)
	if err != nil {
		return Frame{}, err
	}

	originAddr, err := address.Decode(r, ctrl.OriginAddressType)
	if err != nil {
		return Frame{}, err
	}

	tf, err := transport.DecodeFrame(r, commandLength)
	if err != nil {
		return Frame{}, err
	}

	return Frame{
		Control:             ctrl,
		HoppingControl:      hopping,
		OriginAccessClass:   ac,
		OriginAccessAddress: originAddr,
		Transport:           tf,
	}, nil
}

// EncodeFrame writes f to w.
func EncodeFrame(w *bits.Writer, f Frame) error {
	if err := EncodeControl(w, f.Control); err != nil {
		return err
	}
	if f.Control.HasHopping {
		if f.HoppingControl == nil {
			return d7err.UnexpectedEndOf("Frame.hopping_control")
		}
		if err := EncodeHoppingControl(w, *f.HoppingControl); err != nil {
			return err
		}
	}
	if err := physical.EncodeAccessClass(w, f.OriginAccessClass); err != nil {
		return err
	}
	if err := address.Encode(w, f.OriginAccessAddress); err != nil {
		return err
	}
	return transport.EncodeFrame(w, f.Transport)
}
