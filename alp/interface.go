/*
NAME
  interface.go

DESCRIPTION
  interface.go implements InterfaceConfiguration, the per-interface-type
  parameter bundle Forward/IndirectForward attach to a request, and
  InterfaceStatus, the per-interface-type status Status reports back.
*/

package alp

import (
	"github.com/vhdirk/dash7-go/address"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/profile"
	"github.com/vhdirk/dash7-go/session"
	"github.com/vhdirk/dash7-go/varint"
)

// Dash7InterfaceConfiguration bundles a DASH7 request's quality-of-service
// controls, its compressed-format timeouts and the addressee it targets.
// ExecutionDelayTimeout is absent from the wire under the subiot profile
// (profile.SubIoT); it decodes and encodes as its zero value there.
type Dash7InterfaceConfiguration struct {
	QoS                   session.QoS
	DormantSessionTimeout varint.VarInt
	ExecutionDelayTimeout varint.VarInt
	Addressee             address.Addressee
}

func decodeDash7InterfaceConfiguration(r *bits.Reader) (Dash7InterfaceConfiguration, error) {
	qos, err := session.DecodeQoS(r)
	if err != nil {
		return Dash7InterfaceConfiguration{}, err
	}
	dormant, err := varint.Decode(r)
	if err != nil {
		return Dash7InterfaceConfiguration{}, err
	}
	var exec varint.VarInt
	if profile.Active != profile.SubIoT {
		exec, err = varint.Decode(r)
		if err != nil {
			return Dash7InterfaceConfiguration{}, err
		}
	}
	a, err := address.DecodeAddressee(r)
	if err != nil {
		return Dash7InterfaceConfiguration{}, err
	}
	return Dash7InterfaceConfiguration{
		QoS:                   qos,
		DormantSessionTimeout: dormant,
		ExecutionDelayTimeout: exec,
		Addressee:             a,
	}, nil
}

func encodeDash7InterfaceConfiguration(w *bits.Writer, c Dash7InterfaceConfiguration) error {
	if err := session.EncodeQoS(w, c.QoS); err != nil {
		return err
	}
	if err := varint.Encode(w, c.DormantSessionTimeout); err != nil {
		return err
	}
	if profile.Active != profile.SubIoT {
		if err := varint.Encode(w, c.ExecutionDelayTimeout); err != nil {
			return err
		}
	}
	return address.EncodeAddressee(w, c.Addressee)
}

// LoRaWANBase is the field set common to the OTAA and ABP LoRaWAN interface
// configurations.
type LoRaWANBase struct {
	AdrEnabled      bool
	RequestAck      bool
	ApplicationPort uint8
	DataRate        uint8
}

func decodeLoRaWANBase(r *bits.Reader) (LoRaWANBase, error) {
	if _, err := r.ReadBits(5); err != nil {
		return LoRaWANBase{}, d7err.UnexpectedEndOf("LoRaWANBase.reserved", err)
	}
	adr, err := r.ReadBits(1)
	if err != nil {
		return LoRaWANBase{}, d7err.UnexpectedEndOf("LoRaWANBase.adr_enabled", err)
	}
	ack, err := r.ReadBits(1)
	if err != nil {
		return LoRaWANBase{}, d7err.UnexpectedEndOf("LoRaWANBase.request_ack", err)
	}
	if _, err := r.ReadBits(1); err != nil {
		return LoRaWANBase{}, d7err.UnexpectedEndOf("LoRaWANBase.reserved")
	}
	port, err := r.ReadBits(8)
	if err != nil {
		return LoRaWANBase{}, d7err.UnexpectedEndOf("LoRaWANBase.application_port", err)
	}
	rate, err := r.ReadBits(8)
	if err != nil {
		return LoRaWANBase{}, d7err.UnexpectedEndOf("LoRaWANBase.data_rate", err)
	}
	return LoRaWANBase{AdrEnabled: adr != 0, RequestAck: ack != 0, ApplicationPort: uint8(port), DataRate: uint8(rate)}, nil
}

func encodeLoRaWANBase(w *bits.Writer, b LoRaWANBase) error {
	if err := w.WriteBits(0, 5); err != nil {
		return err
	}
	if err := w.WriteBits(boolBit(b.AdrEnabled), 1); err != nil {
		return err
	}
	if err := w.WriteBits(boolBit(b.RequestAck), 1); err != nil {
		return err
	}
	if err := w.WriteBits(0, 1); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(b.ApplicationPort), 8); err != nil {
		return err
	}
	return w.WriteBits(uint32(b.DataRate), 8)
}

// LoRaWANOTAAInterfaceConfiguration carries the join parameters needed for
// an over-the-air activation.
type LoRaWANOTAAInterfaceConfiguration struct {
	Base      LoRaWANBase
	DeviceEUI [8]byte
	AppEUI    [8]byte
	AppKey    [16]byte
}

// LoRaWANABPInterfaceConfiguration carries the pre-shared session keys for
// an activation-by-personalization device.
type LoRaWANABPInterfaceConfiguration struct {
	Base               LoRaWANBase
	NetworkSessionKey  [16]byte
	AppSessionKey      [16]byte
	DeviceAddress      uint32
	NetworkID          uint32
}

func decodeLoRaWANOTAA(r *bits.Reader) (LoRaWANOTAAInterfaceConfiguration, error) {
	base, err := decodeLoRaWANBase(r)
	if err != nil {
		return LoRaWANOTAAInterfaceConfiguration{}, err
	}
	var c LoRaWANOTAAInterfaceConfiguration
	c.Base = base
	devEUI, err := r.ReadBytes(8)
	if err != nil {
		return LoRaWANOTAAInterfaceConfiguration{}, d7err.UnexpectedEndOf("LoRaWANOTAAInterfaceConfiguration.device_eui", err)
	}
	appEUI, err := r.ReadBytes(8)
	if err != nil {
		return LoRaWANOTAAInterfaceConfiguration{}, d7err.UnexpectedEndOf("LoRaWANOTAAInterfaceConfiguration.app_eui", err)
	}
	appKey, err := r.ReadBytes(16)
	if err != nil {
		return LoRaWANOTAAInterfaceConfiguration{}, d7err.UnexpectedEndOf("LoRaWANOTAAInterfaceConfiguration.app_key", err)
	}
	copy(c.DeviceEUI[:], devEUI)
	copy(c.AppEUI[:], appEUI)
	copy(c.AppKey[:], appKey)
	return c, nil
}

func encodeLoRaWANOTAA(w *bits.Writer, c LoRaWANOTAAInterfaceConfiguration) error {
	if err := encodeLoRaWANBase(w, c.Base); err != nil {
		return err
	}
	if err := w.WriteBytes(c.DeviceEUI[:]); err != nil {
		return err
	}
	if err := w.WriteBytes(c.AppEUI[:]); err != nil {
		return err
	}
	return w.WriteBytes(c.AppKey[:])
}

func decodeLoRaWANABP(r *bits.Reader) (LoRaWANABPInterfaceConfiguration, error) {
	base, err := decodeLoRaWANBase(r)
	if err != nil {
		return LoRaWANABPInterfaceConfiguration{}, err
	}
	var c LoRaWANABPInterfaceConfiguration
	c.Base = base
	nwkSKey, err := r.ReadBytes(16)
	if err != nil {
		return LoRaWANABPInterfaceConfiguration{}, d7err.UnexpectedEndOf("LoRaWANABPInterfaceConfiguration.network_session_key", err)
	}
	appSKey, err := r.ReadBytes(16)
	if err != nil {
		return LoRaWANABPInterfaceConfiguration{}, d7err.UnexpectedEndOf("LoRaWANABPInterfaceConfiguration.app_session_key", err)
	}
	devAddr, err := r.ReadBits(32)
	if err != nil {
		return LoRaWANABPInterfaceConfiguration{}, d7err.UnexpectedEndOf("LoRaWANABPInterfaceConfiguration.device_address", err)
	}
	nwkID, err := r.ReadBits(32)
	if err != nil {
		return LoRaWANABPInterfaceConfiguration{}, d7err.UnexpectedEndOf("LoRaWANABPInterfaceConfiguration.network_id", err)
	}
	copy(c.NetworkSessionKey[:], nwkSKey)
	copy(c.AppSessionKey[:], appSKey)
	c.DeviceAddress = devAddr
	c.NetworkID = nwkID
	return c, nil
}

func encodeLoRaWANABP(w *bits.Writer, c LoRaWANABPInterfaceConfiguration) error {
	if err := encodeLoRaWANBase(w, c.Base); err != nil {
		return err
	}
	if err := w.WriteBytes(c.NetworkSessionKey[:]); err != nil {
		return err
	}
	if err := w.WriteBytes(c.AppSessionKey[:]); err != nil {
		return err
	}
	if err := w.WriteBits(c.DeviceAddress, 32); err != nil {
		return err
	}
	return w.WriteBits(c.NetworkID, 32)
}

// InterfaceConfiguration is the discriminated union of per-interface-type
// request parameters a Forward/IndirectForward action carries.
type InterfaceConfiguration struct {
	Type        session.InterfaceType
	LoRaWanABP  LoRaWANABPInterfaceConfiguration
	LoRaWanOTAA LoRaWANOTAAInterfaceConfiguration
	Dash7       Dash7InterfaceConfiguration
}

// DecodeInterfaceConfiguration reads an InterfaceConfiguration (one leading
// type byte, then its type-specific body).
func DecodeInterfaceConfiguration(r *bits.Reader) (InterfaceConfiguration, error) {
	t, err := session.DecodeInterfaceType(r)
	if err != nil {
		return InterfaceConfiguration{}, err
	}
	switch t {
	case session.InterfaceTypeHost, session.InterfaceTypeSerial:
		return InterfaceConfiguration{Type: t}, nil
	case session.InterfaceTypeLoRaWanABP:
		c, err := decodeLoRaWANABP(r)
		if err != nil {
			return InterfaceConfiguration{}, err
		}
		return InterfaceConfiguration{Type: t, LoRaWanABP: c}, nil
	case session.InterfaceTypeLoRaWanOTAA:
		c, err := decodeLoRaWANOTAA(r)
		if err != nil {
			return InterfaceConfiguration{}, err
		}
		return InterfaceConfiguration{Type: t, LoRaWanOTAA: c}, nil
	case session.InterfaceTypeDash7:
		c, err := decodeDash7InterfaceConfiguration(r)
		if err != nil {
			return InterfaceConfiguration{}, err
		}
		return InterfaceConfiguration{Type: t, Dash7: c}, nil
	default:
		return InterfaceConfiguration{Type: session.InterfaceTypeUnknown}, nil
	}
}

// EncodeInterfaceConfiguration writes c to w.
func EncodeInterfaceConfiguration(w *bits.Writer, c InterfaceConfiguration) error {
	if err := session.EncodeInterfaceType(w, c.Type); err != nil {
		return err
	}
	switch c.Type {
	case session.InterfaceTypeHost, session.InterfaceTypeSerial, session.InterfaceTypeUnknown:
		return nil
	case session.InterfaceTypeLoRaWanABP:
		return encodeLoRaWANABP(w, c.LoRaWanABP)
	case session.InterfaceTypeLoRaWanOTAA:
		return encodeLoRaWANOTAA(w, c.LoRaWanOTAA)
	case session.InterfaceTypeDash7:
		return encodeDash7InterfaceConfiguration(w, c.Dash7)
	default:
		return nil
	}
}
