/*
NAME
  session.go

DESCRIPTION
  session.go implements the Session layer's quality-of-service controls and
  interface status reporting: QoS/ResponseMode/RetryMode, InterfaceType and
  the InterfaceStatus union (Host/Serial/Dash7/Other).
*/

// Package session implements the DASH7 Session layer: request
// quality-of-service parameters and the per-interface status a D7A stack
// reports back to upper layers.
package session

import (
	"github.com/vhdirk/dash7-go/address"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/physical"
	"github.com/vhdirk/dash7-go/varint"
)

// InterfaceType discriminates an InterfaceStatus/InterfaceConfiguration's
// shape.
type InterfaceType uint8

const (
	InterfaceTypeHost        InterfaceType = 0x00
	InterfaceTypeSerial      InterfaceType = 0x01
	InterfaceTypeLoRaWanABP  InterfaceType = 0x02
	InterfaceTypeLoRaWanOTAA InterfaceType = 0x03
	InterfaceTypeDash7       InterfaceType = 0xd7
	// InterfaceTypeUnknown is the fallback for any other byte value.
	InterfaceTypeUnknown InterfaceType = 0xff
)

// DecodeInterfaceType reads one byte and maps it to its InterfaceType,
// falling back to InterfaceTypeUnknown for any unassigned value.
func DecodeInterfaceType(r *bits.Reader) (InterfaceType, error) {
	v, err := r.ReadBits(8)
	if err != nil {
		return 0, d7err.UnexpectedEndOf("InterfaceType", err)
	}
	switch InterfaceType(v) {
	case InterfaceTypeHost, InterfaceTypeSerial, InterfaceTypeLoRaWanABP, InterfaceTypeLoRaWanOTAA, InterfaceTypeDash7:
		return InterfaceType(v), nil
	default:
		return InterfaceTypeUnknown, nil
	}
}

// EncodeInterfaceType writes t to w as one byte.
func EncodeInterfaceType(w *bits.Writer, t InterfaceType) error {
	return w.WriteBits(uint32(t), 8)
}

// ResponseMode selects the termination condition for a successful request.
type ResponseMode uint8

const (
	ResponseModeNo        ResponseMode = 0
	ResponseModeAll       ResponseMode = 1
	ResponseModeAny       ResponseMode = 2
	ResponseModeNoRepeat  ResponseMode = 4
	ResponseModeOnError   ResponseMode = 5
	ResponseModePreferred ResponseMode = 6
)

// RetryMode selects the FIFO re-flush policy on a failed request.
type RetryMode uint8

const (
	RetryModeNo            RetryMode = 0
	RetryModeOneshotRetry  RetryMode = 1
	RetryModeFifoFast      RetryMode = 2
	RetryModeFifoSlow      RetryMode = 3
	RetryModeSingleFast    RetryMode = 4
	RetryModeSingleSlow    RetryMode = 5
	RetryModeOneshotSticky RetryMode = 6
	RetryModeRfu           RetryMode = 7
)

// QoS packs the request's quality-of-service parameters into one byte:
// stop_on_error(1) | record(1) | retry_mode(3) | response_mode(3).
type QoS struct {
	StopOnError  bool
	Record       bool
	RetryMode    RetryMode
	ResponseMode ResponseMode
}

// DecodeQoS reads a QoS byte from r.
func DecodeQoS(r *bits.Reader) (QoS, error) {
	stop, err := r.ReadBits(1)
	if err != nil {
		return QoS{}, d7err.UnexpectedEndOf("QoS.stop_on_error", err)
	}
	record, err := r.ReadBits(1)
	if err != nil {
		return QoS{}, d7err.UnexpectedEndOf("QoS.record", err)
	}
	retry, err := r.ReadBits(3)
	if err != nil {
		return QoS{}, d7err.UnexpectedEndOf("QoS.retry_mode", err)
	}
	resp, err := r.ReadBits(3)
	if err != nil {
		return QoS{}, d7err.UnexpectedEndOf("QoS.response_mode", err)
	}
	return QoS{
		StopOnError:  stop != 0,
		Record:       record != 0,
		RetryMode:    RetryMode(retry),
		ResponseMode: ResponseMode(resp),
	}, nil
}

// EncodeQoS writes q to w.
func EncodeQoS(w *bits.Writer, q QoS) error {
	if err := w.WriteBits(boolBit(q.StopOnError), 1); err != nil {
		return err
	}
	if err := w.WriteBits(boolBit(q.Record), 1); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(q.RetryMode), 3); err != nil {
		return err
	}
	return w.WriteBits(uint32(q.ResponseMode), 3)
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// InterfaceStatus is the discriminated union of per-interface status
// reports, shaped by an InterfaceType and (for the Other fallback) a
// known byte length.
type InterfaceStatus struct {
	Type   InterfaceType
	Dash7  Dash7InterfaceStatus // InterfaceTypeDash7
	Other  []byte               // InterfaceTypeUnknown
}

// DecodeInterfaceStatus reads an InterfaceStatus of the given type. length
// is the declared byte count of the Other fallback payload; it is unused
// for every other interface type.
func DecodeInterfaceStatus(r *bits.Reader, t InterfaceType, length int) (InterfaceStatus, error) {
	switch t {
	case InterfaceTypeHost, InterfaceTypeSerial:
		return InterfaceStatus{Type: t}, nil
	case InterfaceTypeDash7:
		d, err := DecodeDash7InterfaceStatus(r)
		if err != nil {
			return InterfaceStatus{}, err
		}
		return InterfaceStatus{Type: t, Dash7: d}, nil
	default:
		b, err := r.ReadBytes(length)
		if err != nil {
			return InterfaceStatus{}, d7err.UnexpectedEndOf("InterfaceStatus.other", err)
		}
		return InterfaceStatus{Type: InterfaceTypeUnknown, Other: b}, nil
	}
}

// EncodeInterfaceStatus writes s to w per its Type.
func EncodeInterfaceStatus(w *bits.Writer, s InterfaceStatus) error {
	switch s.Type {
	case InterfaceTypeHost, InterfaceTypeSerial:
		return nil
	case InterfaceTypeDash7:
		return EncodeDash7InterfaceStatus(w, s.Dash7)
	default:
		return w.WriteBytes(s.Other)
	}
}

// Dash7InterfaceStatus reports the radio-level detail of a DASH7 interface
// exchange: channel, signal quality, dialog/transaction identifiers, the
// response timeout and the addressee that produced this status.
type Dash7InterfaceStatus struct {
	Channel         physical.Channel
	RxLevel         uint8
	LinkBudget      uint8
	TargetRxLevel   uint8
	Nls             bool
	Missed          bool
	Retry           bool
	Unicast         bool
	FifoToken       uint8
	SequenceNumber  uint8
	ResponseTimeout varint.VarInt
	Addressee       address.Addressee
}

// DecodeDash7InterfaceStatus reads a Dash7InterfaceStatus from r.
func DecodeDash7InterfaceStatus(r *bits.Reader) (Dash7InterfaceStatus, error) {
	ch, err := physical.DecodeChannel(r)
	if err != nil {
		return Dash7InterfaceStatus{}, err
	}
	rxLevel, err := r.ReadBits(8)
	if err != nil {
		return Dash7InterfaceStatus{}, d7err.UnexpectedEndOf("Dash7InterfaceStatus.rx_level", err)
	}
	linkBudget, err := r.ReadBits(8)
	if err != nil {
		return Dash7InterfaceStatus{}, d7err.UnexpectedEndOf("Dash7InterfaceStatus.link_budget", err)
	}
	targetRxLevel, err := r.ReadBits(8)
	if err != nil {
		return Dash7InterfaceStatus{}, d7err.UnexpectedEndOf("Dash7InterfaceStatus.target_rx_level", err)
	}
	nls, err := r.ReadBits(1)
	if err != nil {
		return Dash7InterfaceStatus{}, d7err.UnexpectedEndOf("Dash7InterfaceStatus.nls", err)
	}
	missed, err := r.ReadBits(1)
	if err != nil {
		return Dash7InterfaceStatus{}, d7err.UnexpectedEndOf("Dash7InterfaceStatus.missed", err)
	}
	retry, err := r.ReadBits(1)
	if err != nil {
		return Dash7InterfaceStatus{}, d7err.UnexpectedEndOf("Dash7InterfaceStatus.retry", err)
	}
	unicast, err := r.ReadBits(1)
	if err != nil {
		return Dash7InterfaceStatus{}, d7err.UnexpectedEndOf("Dash7InterfaceStatus.unicast", err)
	}
	if _, err := r.ReadBits(4); err != nil {
		return Dash7InterfaceStatus{}, d7err.UnexpectedEndOf("Dash7InterfaceStatus.reserved")
	}
	fifoToken, err := r.ReadBits(8)
	if err != nil {
		return Dash7InterfaceStatus{}, d7err.UnexpectedEndOf("Dash7InterfaceStatus.fifo_token", err)
	}
	seqNumber, err := r.ReadBits(8)
	if err != nil {
		return Dash7InterfaceStatus{}, d7err.UnexpectedEndOf("Dash7InterfaceStatus.sequence_number", err)
	}
	timeout, err := varint.Decode(r)
	if err != nil {
		return Dash7InterfaceStatus{}, err
	}
	addressee, err := address.DecodeAddressee(r)
	if err != nil {
		return Dash7InterfaceStatus{}, err
	}
	return Dash7InterfaceStatus{
		Channel:         ch,
		RxLevel:         uint8(rxLevel),
		LinkBudget:      uint8(linkBudget),
		TargetRxLevel:   uint8(targetRxLevel),
		Nls:             nls != 0,
		Missed:          missed != 0,
		Retry:           retry != 0,
		Unicast:         unicast != 0,
		FifoToken:       uint8(fifoToken),
		SequenceNumber:  uint8(seqNumber),
		ResponseTimeout: timeout,
		Addressee:       addressee,
	}, nil
}

// EncodeDash7InterfaceStatus writes s to w.
func EncodeDash7InterfaceStatus(w *bits.Writer, s Dash7InterfaceStatus) error {
	if err := physical.EncodeChannel(w, s.Channel); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(s.RxLevel), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(s.LinkBudget), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(s.TargetRxLevel), 8); err != nil {
		return err
	}
	if err := w.WriteBits(boolBit(s.Nls), 1); err != nil {
		return err
	}
	if err := w.WriteBits(boolBit(s.Missed), 1); err != nil {
		return err
	}
	if err := w.WriteBits(boolBit(s.Retry), 1); err != nil {
		return err
	}
	if err := w.WriteBits(boolBit(s.Unicast), 1); err != nil {
		return err
	}
	if err := w.WriteBits(0, 4); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(s.FifoToken), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(s.SequenceNumber), 8); err != nil {
		return err
	}
	if err := varint.Encode(w, s.ResponseTimeout); err != nil {
		return err
	}
	return address.EncodeAddressee(w, s.Addressee)
}
