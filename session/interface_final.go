/*
NAME
  interface_final.go

DESCRIPTION
  interface_final.go implements the wizzilab-profile-only InterfaceFinalStatus
  and InterfaceTxStatus operations: the terminal status a Dash7 interface
  reports once a transmission has fully completed, and the status reported
  for a single queued transmission attempt.
*/

package session

import (
	"github.com/vhdirk/dash7-go/address"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/physical"
)

// InterfaceFinalStatusCode is the outcome of a completed interface
// transmission/reception.
type InterfaceFinalStatusCode uint8

const (
	InterfaceFinalStatusNo                      InterfaceFinalStatusCode = 0x00
	InterfaceFinalStatusBusy                    InterfaceFinalStatusCode = 0xFF
	InterfaceFinalStatusBadParam                InterfaceFinalStatusCode = 0xFE
	InterfaceFinalStatusDutyCycle                InterfaceFinalStatusCode = 0xFD
	InterfaceFinalStatusCcaTo                   InterfaceFinalStatusCode = 0xFC
	InterfaceFinalStatusNlsKey                  InterfaceFinalStatusCode = 0xFB
	InterfaceFinalStatusTxUdf                   InterfaceFinalStatusCode = 0xFA
	InterfaceFinalStatusRxOvf                   InterfaceFinalStatusCode = 0xF9
	InterfaceFinalStatusRxCrc                   InterfaceFinalStatusCode = 0xF8
	InterfaceFinalStatusAbort                   InterfaceFinalStatusCode = 0xF7
	InterfaceFinalStatusNoAck                   InterfaceFinalStatusCode = 0xF6
	InterfaceFinalStatusRxTo                    InterfaceFinalStatusCode = 0xF5
	InterfaceFinalStatusNotSupportedBand        InterfaceFinalStatusCode = 0xF4
	InterfaceFinalStatusNotSupportedChannel     InterfaceFinalStatusCode = 0xF3
	InterfaceFinalStatusNotSupportedModulation  InterfaceFinalStatusCode = 0xF2
	InterfaceFinalStatusVoidChannelList         InterfaceFinalStatusCode = 0xF1
	InterfaceFinalStatusNotSupportedLen         InterfaceFinalStatusCode = 0xF0
	InterfaceFinalStatusParamOvf                InterfaceFinalStatusCode = 0xEF
	InterfaceFinalStatusVidWoNls                InterfaceFinalStatusCode = 0xEE
	InterfaceFinalStatusTxSched                 InterfaceFinalStatusCode = 0xED
	InterfaceFinalStatusRxSched                 InterfaceFinalStatusCode = 0xEC
	InterfaceFinalStatusBufferOvf               InterfaceFinalStatusCode = 0xEB
	InterfaceFinalStatusNotSupportedMode        InterfaceFinalStatusCode = 0xEA
)

// decodeInterfaceFinalStatusCode reads one byte and maps it to its code,
// without validating it is one of the assigned values above (an
// unrecognized code is still a code, not a decode failure).
func decodeInterfaceFinalStatusCode(r *bits.Reader) (InterfaceFinalStatusCode, error) {
	v, err := r.ReadBits(8)
	if err != nil {
		return 0, d7err.UnexpectedEndOf("InterfaceFinalStatusCode", err)
	}
	return InterfaceFinalStatusCode(v), nil
}

func encodeInterfaceFinalStatusCode(w *bits.Writer, c InterfaceFinalStatusCode) error {
	return w.WriteBits(uint32(c), 8)
}

// InterfaceFinalStatus is the discriminated union of per-interface-type
// terminal status reports a wizzilab-profile InterfaceFinal status
// operation carries.
type InterfaceFinalStatus struct {
	Type  InterfaceType
	Dash7 InterfaceFinalStatusCode // InterfaceTypeDash7
	Other []byte                   // any other interface type
}

// DecodeInterfaceFinalStatus reads an InterfaceFinalStatus of the given
// type. length bounds the Other fallback body.
func DecodeInterfaceFinalStatus(r *bits.Reader, t InterfaceType, length int) (InterfaceFinalStatus, error) {
	switch t {
	case InterfaceTypeDash7:
		c, err := decodeInterfaceFinalStatusCode(r)
		if err != nil {
			return InterfaceFinalStatus{}, err
		}
		return InterfaceFinalStatus{Type: t, Dash7: c}, nil
	default:
		b, err := r.ReadBytes(length)
		if err != nil {
			return InterfaceFinalStatus{}, d7err.UnexpectedEndOf("InterfaceFinalStatus.other", err)
		}
		return InterfaceFinalStatus{Type: t, Other: b}, nil
	}
}

// EncodeInterfaceFinalStatus writes s to w.
func EncodeInterfaceFinalStatus(w *bits.Writer, s InterfaceFinalStatus) error {
	switch s.Type {
	case InterfaceTypeDash7:
		return encodeInterfaceFinalStatusCode(w, s.Dash7)
	default:
		return w.WriteBytes(s.Other)
	}
}

// Dash7InterfaceTxStatus reports the outcome of a single queued
// transmission attempt on a Dash7 interface.
//
// Lts decodes and encodes little-endian: original_source's
// test_interface_tx_status vector serializes lts = 0x0708_0000 as bytes
// 00 00 08 07, which only reconstructs that value read low-byte-first --
// the reverse of every other multi-byte field in this module, which is
// big-endian (the same little-endian exception already noted for
// serial.SerialFrame.CRC16).
type Dash7InterfaceTxStatus struct {
	Channel       physical.Channel
	TargetRxLevel int8
	Error         InterfaceFinalStatusCode
	Lts           uint32
	Addressee     address.Addressee
}

// DecodeDash7InterfaceTxStatus reads a Dash7InterfaceTxStatus from r.
func DecodeDash7InterfaceTxStatus(r *bits.Reader) (Dash7InterfaceTxStatus, error) {
	ch, err := physical.DecodeChannel(r)
	if err != nil {
		return Dash7InterfaceTxStatus{}, err
	}
	level, err := r.ReadBits(8)
	if err != nil {
		return Dash7InterfaceTxStatus{}, d7err.UnexpectedEndOf("Dash7InterfaceTxStatus.target_rx_level", err)
	}
	errCode, err := decodeInterfaceFinalStatusCode(r)
	if err != nil {
		return Dash7InterfaceTxStatus{}, err
	}
	if _, err := r.ReadBits(24); err != nil {
		return Dash7InterfaceTxStatus{}, d7err.UnexpectedEndOf("Dash7InterfaceTxStatus.reserved", err)
	}
	lts, err := decodeUint32LE(r)
	if err != nil {
		return Dash7InterfaceTxStatus{}, d7err.UnexpectedEndOf("Dash7InterfaceTxStatus.lts", err)
	}
	addressee, err := address.DecodeAddressee(r)
	if err != nil {
		return Dash7InterfaceTxStatus{}, err
	}
	return Dash7InterfaceTxStatus{
		Channel:       ch,
		TargetRxLevel: int8(level),
		Error:         errCode,
		Lts:           lts,
		Addressee:     addressee,
	}, nil
}

// EncodeDash7InterfaceTxStatus writes s to w.
func EncodeDash7InterfaceTxStatus(w *bits.Writer, s Dash7InterfaceTxStatus) error {
	if err := physical.EncodeChannel(w, s.Channel); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(uint8(s.TargetRxLevel)), 8); err != nil {
		return err
	}
	if err := encodeInterfaceFinalStatusCode(w, s.Error); err != nil {
		return err
	}
	if err := w.WriteBits(0, 24); err != nil {
		return err
	}
	if err := encodeUint32LE(w, s.Lts); err != nil {
		return err
	}
	return address.EncodeAddressee(w, s.Addressee)
}

// decodeUint32LE/encodeUint32LE read/write a 32-bit value low-byte-first.
func decodeUint32LE(r *bits.Reader) (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

func encodeUint32LE(w *bits.Writer, v uint32) error {
	return w.WriteBytes([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// InterfaceTxStatus is the discriminated union of per-interface-type queued
// transmission status reports.
type InterfaceTxStatus struct {
	Type  InterfaceType
	Dash7 Dash7InterfaceTxStatus // InterfaceTypeDash7
	Other []byte                 // any other interface type
}

// DecodeInterfaceTxStatus reads an InterfaceTxStatus of the given type.
// length bounds the Other fallback body.
func DecodeInterfaceTxStatus(r *bits.Reader, t InterfaceType, length int) (InterfaceTxStatus, error) {
	switch t {
	case InterfaceTypeDash7:
		d, err := DecodeDash7InterfaceTxStatus(r)
		if err != nil {
			return InterfaceTxStatus{}, err
		}
		return InterfaceTxStatus{Type: t, Dash7: d}, nil
	default:
		b, err := r.ReadBytes(length)
		if err != nil {
			return InterfaceTxStatus{}, d7err.UnexpectedEndOf("InterfaceTxStatus.other", err)
		}
		return InterfaceTxStatus{Type: t, Other: b}, nil
	}
}

// EncodeInterfaceTxStatus writes s to w.
func EncodeInterfaceTxStatus(w *bits.Writer, s InterfaceTxStatus) error {
	switch s.Type {
	case InterfaceTypeDash7:
		return EncodeDash7InterfaceTxStatus(w, s.Dash7)
	default:
		return w.WriteBytes(s.Other)
	}
}
