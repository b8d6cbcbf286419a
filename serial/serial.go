/*
NAME
  serial.go

DESCRIPTION
  serial.go implements the serial interface framing a host uses to talk to a
  DASH7 modem: SerialMessageType, the SerialMessage union it dispatches, a
  magic-byte-prefixed SerialFrameHeader, and the SerialFrame that ties them
  together with a declared message length and a CRC.
*/

// Package serial implements the DASH7 modem's serial line framing: the
// SerialMessage union (ALP command, ping request/response, log line,
// reboot notice) and the SerialFrame that carries one over the wire.
package serial

import (
	"github.com/vhdirk/dash7-go/alp"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
)

// SerialMessageType discriminates SerialMessage's variants.
type SerialMessageType uint8

const (
	SerialMessageTypeAlpData      SerialMessageType = 1
	SerialMessageTypePingRequest  SerialMessageType = 2
	SerialMessageTypePingResponse SerialMessageType = 3
	SerialMessageTypeLogging      SerialMessageType = 4
	SerialMessageTypeRebooted     SerialMessageType = 5
)

func (t SerialMessageType) String() string {
	switch t {
	case SerialMessageTypeAlpData:
		return "AlpData"
	case SerialMessageTypePingRequest:
		return "PingRequest"
	case SerialMessageTypePingResponse:
		return "PingResponse"
	case SerialMessageTypeLogging:
		return "Logging"
	case SerialMessageTypeRebooted:
		return "Rebooted"
	default:
		return "Unknown"
	}
}

// DecodeSerialMessageType reads a SerialMessageType byte from r.
func DecodeSerialMessageType(r *bits.Reader) (SerialMessageType, error) {
	v, err := r.ReadBits(8)
	if err != nil {
		return 0, d7err.UnexpectedEndOf("SerialMessageType", err)
	}
	t := SerialMessageType(v)
	switch t {
	case SerialMessageTypeAlpData, SerialMessageTypePingRequest, SerialMessageTypePingResponse,
		SerialMessageTypeLogging, SerialMessageTypeRebooted:
		return t, nil
	default:
		return 0, d7err.InvalidDiscriminantOf("SerialMessageType", uint64(v))
	}
}

// EncodeSerialMessageType writes t to w.
func EncodeSerialMessageType(w *bits.Writer, t SerialMessageType) error {
	return w.WriteBits(uint32(t), 8)
}

// SerialMessage is the discriminated union of payloads a SerialFrame can
// carry, selected by its SerialMessageType. PingRequest, PingResponse and
// Rebooted carry no payload.
type SerialMessage struct {
	Type    SerialMessageType
	Command alp.Command // AlpData
	Log     []byte      // Logging
}

// DecodeSerialMessage reads a SerialMessage of the given type from r.
// length is the byte length declared by the enclosing SerialFrame: it
// bounds the embedded Command for AlpData and is the exact byte count read
// for Logging.
func DecodeSerialMessage(r *bits.Reader, t SerialMessageType, length int) (SerialMessage, error) {
	switch t {
	case SerialMessageTypeAlpData:
		b, err := r.ReadBytes(length)
		if err != nil {
			return SerialMessage{}, d7err.UnexpectedEndOf("SerialMessage.alp_data", err)
		}
		cmd, err := alp.DecodeCommand(bits.NewReader(b), length)
		if err != nil {
			return SerialMessage{}, err
		}
		return SerialMessage{Type: t, Command: cmd}, nil
	case SerialMessageTypePingRequest, SerialMessageTypePingResponse, SerialMessageTypeRebooted:
		return SerialMessage{Type: t}, nil
	case SerialMessageTypeLogging:
		b, err := r.ReadBytes(length)
		if err != nil {
			return SerialMessage{}, d7err.UnexpectedEndOf("SerialMessage.logging", err)
		}
		return SerialMessage{Type: t, Log: b}, nil
	default:
		return SerialMessage{}, d7err.InvalidDiscriminantOf("SerialMessage.type", uint64(t))
	}
}

// EncodeSerialMessage writes m to w.
func EncodeSerialMessage(w *bits.Writer, m SerialMessage) error {
	switch m.Type {
	case SerialMessageTypeAlpData:
		return alp.EncodeCommand(w, m.Command)
	case SerialMessageTypePingRequest, SerialMessageTypePingResponse, SerialMessageTypeRebooted:
		return nil
	case SerialMessageTypeLogging:
		return w.WriteBytes(m.Log)
	default:
		return d7err.InvalidDiscriminantOf("SerialMessage.type", uint64(m.Type))
	}
}

// decodeCRC16LE reads a little-endian 16-bit CRC, the one multi-byte field
// in this frame the wire format does not store big-endian.
func decodeCRC16LE(r *bits.Reader) (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, d7err.UnexpectedEndOf("SerialFrame.crc", err)
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// encodeCRC16LE writes v as a little-endian 16-bit CRC.
func encodeCRC16LE(w *bits.Writer, v uint16) error {
	return w.WriteBytes([]byte{byte(v), byte(v >> 8)})
}

// serialFrameMagic is the fixed leading byte every SerialFrame starts with.
const serialFrameMagic = 0xC0

// SerialFrameHeader is SerialFrame's magic-prefixed header: a protocol
// version and a rolling message counter.
type SerialFrameHeader struct {
	Version uint8
	Counter uint8
}

// DecodeSerialFrameHeader reads a SerialFrameHeader from r, verifying (and
// discarding) the leading magic byte.
func DecodeSerialFrameHeader(r *bits.Reader) (SerialFrameHeader, error) {
	magic, err := r.ReadBits(8)
	if err != nil {
		return SerialFrameHeader{}, d7err.UnexpectedEndOf("SerialFrameHeader.magic", err)
	}
	if uint8(magic) != serialFrameMagic {
		return SerialFrameHeader{}, d7err.BadMagicByte()
	}
	version, err := r.ReadBits(8)
	if err != nil {
		return SerialFrameHeader{}, d7err.UnexpectedEndOf("SerialFrameHeader.version", err)
	}
	counter, err := r.ReadBits(8)
	if err != nil {
		return SerialFrameHeader{}, d7err.UnexpectedEndOf("SerialFrameHeader.counter", err)
	}
	return SerialFrameHeader{Version: uint8(version), Counter: uint8(counter)}, nil
}

// EncodeSerialFrameHeader writes the magic byte followed by h to w.
func EncodeSerialFrameHeader(w *bits.Writer, h SerialFrameHeader) error {
	if err := w.WriteBits(serialFrameMagic, 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(h.Version), 8); err != nil {
		return err
	}
	return w.WriteBits(uint32(h.Counter), 8)
}

// SerialFrame is one frame of the host-modem serial protocol: a header, a
// message type, an 8-bit declared message length, a 16-bit CRC and the
// message itself.
type SerialFrame struct {
	Header      SerialFrameHeader
	MessageType SerialMessageType
	Length      uint8
	CRC16       uint16
	Message     SerialMessage
}

// DecodeSerialFrame reads a SerialFrame from r.
func DecodeSerialFrame(r *bits.Reader) (SerialFrame, error) {
	h, err := DecodeSerialFrameHeader(r)
	if err != nil {
		return SerialFrame{}, err
	}
	t, err := DecodeSerialMessageType(r)
	if err != nil {
		return SerialFrame{}, err
	}
	length, err := r.ReadBits(8)
	if err != nil {
		return SerialFrame{}, d7err.UnexpectedEndOf("SerialFrame.length", err)
	}
	crc, err := decodeCRC16LE(r)
	if err != nil {
		return SerialFrame{}, err
	}
	m, err := DecodeSerialMessage(r, t, int(length))
	if err != nil {
		return SerialFrame{}, err
	}
	return SerialFrame{
		Header:      h,
		MessageType: t,
		Length:      uint8(length),
		CRC16:       uint16(crc),
		Message:     m,
	}, nil
}

// EncodeSerialFrame writes f to w.
func EncodeSerialFrame(w *bits.Writer, f SerialFrame) error {
	if err := EncodeSerialFrameHeader(w, f.Header); err != nil {
		return err
	}
	if err := EncodeSerialMessageType(w, f.MessageType); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(f.Length), 8); err != nil {
		return err
	}
	if err := encodeCRC16LE(w, f.CRC16); err != nil {
		return err
	}
	return EncodeSerialMessage(w, f.Message)
}
