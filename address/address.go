/*
NAME
  address.go

DESCRIPTION
  address.go implements the DASH7 addressing/security discriminated unions
  shared by the network, link, session and alp layers: AddressType/Address
  and NlsMethod/NlsState.
*/

// Package address implements the addressing and link-layer security types
// named by multiple higher layers (Network frame origin, Link frame
// target, ALP interface status/configuration). It is kept separate from
// the network package so those higher layers can depend on addressing
// without also pulling in the Network frame's dependency on Transport (and,
// transitively, on ALP) -- the Rust original's mutually-referencing
// network/transport/alp types have to be layered acyclically in Go.
package address

import (
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/varint"
)

// Type discriminates the shape of an Address.
type Type uint8

const (
	TypeNbId Type = 0x00
	TypeNoId Type = 0x01
	TypeUid  Type = 0x02
	TypeVid  Type = 0x03
)

// DecodeType reads a 2-bit AddressType from r.
func DecodeType(r *bits.Reader) (Type, error) {
	v, err := r.ReadBits(2)
	if err != nil {
		return 0, d7err.UnexpectedEndOf("AddressType", err)
	}
	return Type(v), nil
}

// EncodeType writes t to w as 2 bits.
func EncodeType(w *bits.Writer, t Type) error {
	return w.WriteBits(uint32(t), 2)
}

// Address is the discriminated union of origin/target addressing modes.
type Address struct {
	Type Type
	NbId varint.VarInt // TypeNbId: estimated receiver count
	Uid  uint64        // TypeUid
	Vid  uint16        // TypeVid
	// TypeNoId carries no payload.
}

// Decode reads an Address whose shape is selected by t.
func Decode(r *bits.Reader, t Type) (Address, error) {
	switch t {
	case TypeNbId:
		v, err := varint.Decode(r)
		if err != nil {
			return Address{}, err
		}
		return Address{Type: t, NbId: v}, nil
	case TypeNoId:
		return Address{Type: t}, nil
	case TypeUid:
		hi, err := r.ReadBits(32)
		if err != nil {
			return Address{}, d7err.UnexpectedEndOf("Address.uid", err)
		}
		lo, err := r.ReadBits(32)
		if err != nil {
			return Address{}, d7err.UnexpectedEndOf("Address.uid", err)
		}
		return Address{Type: t, Uid: uint64(hi)<<32 | uint64(lo)}, nil
	case TypeVid:
		v, err := r.ReadBits(16)
		if err != nil {
			return Address{}, d7err.UnexpectedEndOf("Address.vid", err)
		}
		return Address{Type: t, Vid: uint16(v)}, nil
	default:
		return Address{}, d7err.InvalidDiscriminantOf("AddressType", uint64(t))
	}
}

// Encode writes a to w per its Type.
func Encode(w *bits.Writer, a Address) error {
	switch a.Type {
	case TypeNbId:
		return varint.Encode(w, a.NbId)
	case TypeNoId:
		return nil
	case TypeUid:
		if err := w.WriteBits(uint32(a.Uid>>32), 32); err != nil {
			return err
		}
		return w.WriteBits(uint32(a.Uid), 32)
	case TypeVid:
		return w.WriteBits(uint32(a.Vid), 16)
	default:
		return d7err.InvalidDiscriminantOf("AddressType", uint64(a.Type))
	}
}

// NlsMethod selects the link-layer security (AES) mode.
type NlsMethod uint8

const (
	NlsMethodNone         NlsMethod = 0x00
	NlsMethodAesCtr       NlsMethod = 0x01
	NlsMethodAesCbcMac128 NlsMethod = 0x02
	NlsMethodAesCbcMac64  NlsMethod = 0x03
	NlsMethodAesCbcMac32  NlsMethod = 0x04
	NlsMethodAesCcm128    NlsMethod = 0x05
	NlsMethodAesCcm64     NlsMethod = 0x06
	NlsMethodAesCcm32     NlsMethod = 0x07
)

// DecodeNlsMethod reads an n-bit NlsMethod discriminant. Addressee encodes
// it in 4 bits (3 under profile.Wizzilab); the Network frame's Control byte
// only has room for 3 (every
// legal NlsMethod value fits in 3 bits regardless, since the highest
// assigned value is 7).
func DecodeNlsMethod(r *bits.Reader, n int) (NlsMethod, error) {
	v, err := r.ReadBits(n)
	if err != nil {
		return 0, d7err.UnexpectedEndOf("NlsMethod", err)
	}
	return NlsMethod(v), nil
}

// EncodeNlsMethod writes m to w in n bits.
func EncodeNlsMethod(w *bits.Writer, m NlsMethod, n int) error {
	return w.WriteBits(uint32(m), n)
}

// NlsState carries the per-method security tag/counter state. Every
// non-None method carries a fixed 5-byte payload.
type NlsState struct {
	Method  NlsMethod
	Payload [5]byte // zero for NlsMethodNone
}

// DecodeNlsState reads an NlsState whose shape is selected by method.
func DecodeNlsState(r *bits.Reader, method NlsMethod) (NlsState, error) {
	if method == NlsMethodNone {
		return NlsState{Method: method}, nil
	}
	b, err := r.ReadBytes(5)
	if err != nil {
		return NlsState{}, d7err.UnexpectedEndOf("NlsState.payload", err)
	}
	var payload [5]byte
	copy(payload[:], b)
	return NlsState{Method: method, Payload: payload}, nil
}

// EncodeNlsState writes s to w.
func EncodeNlsState(w *bits.Writer, s NlsState) error {
	if s.Method == NlsMethodNone {
		return nil
	}
	return w.WriteBytes(s.Payload[:])
}
