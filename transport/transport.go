/*
NAME
  transport.go

DESCRIPTION
  transport.go implements the Transport layer frame: a Control byte, the
  dialog/transaction ids, a chain of fields present only when their
  matching Control flag is set, and the embedded ALP Command.
*/

// Package transport implements the DASH7 Transport layer frame that wraps
// an ALP Command with dialog bookkeeping, timeouts, and acknowledgement
// parameters.
package transport

import (
	"github.com/vhdirk/dash7-go/address"
	"github.com/vhdirk/dash7-go/alp"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/varint"
)

// GroupCondition is an alias of address.GroupCondition, kept importable
// under its original package name: it is also carried by the wizzilab
// profile's Addressee, which lives in address to avoid an alp<->address
// import cycle.
type GroupCondition = address.GroupCondition

const (
	GroupConditionAny         = address.GroupConditionAny
	GroupConditionNotEqual    = address.GroupConditionNotEqual
	GroupConditionEqual       = address.GroupConditionEqual
	GroupConditionGreaterThan = address.GroupConditionGreaterThan
)

// DecodeGroupCondition reads a 2-bit GroupCondition from r.
func DecodeGroupCondition(r *bits.Reader) (GroupCondition, error) {
	return address.DecodeGroupCondition(r)
}

// EncodeGroupCondition writes g to w as 2 bits.
func EncodeGroupCondition(w *bits.Writer, g GroupCondition) error {
	return address.EncodeGroupCondition(w, g)
}

// Control is the Transport frame's first byte: seven named flags plus one
// reserved (unused) bit.
//
//	is_dialog_start(1) | has_listen_timeout(1) | has_execution_delay_timeout(1) |
//	is_ack_requested(1) | is_ack_not_void(1) | is_ack_record_requested(1) |
//	has_agc(1) | reserved(1)
type Control struct {
	IsDialogStart            bool
	HasListenTimeout         bool
	HasExecutionDelayTimeout bool
	IsAckRequested           bool
	IsAckNotVoid             bool
	IsAckRecordRequested     bool
	HasAGC                   bool
}

// DecodeControl reads a Control byte from r.
func DecodeControl(r *bits.Reader) (Control, error) {
	var c Control
	var err error
	if c.IsDialogStart, err = readFlag(r, "is_dialog_start"); err != nil {
		return Control{}, err
	}
	if c.HasListenTimeout, err = readFlag(r, "has_listen_timeout"); err != nil {
		return Control{}, err
	}
	if c.HasExecutionDelayTimeout, err = readFlag(r, "has_execution_delay_timeout"); err != nil {
		return Control{}, err
	}
	if c.IsAckRequested, err = readFlag(r, "is_ack_requested"); err != nil {
		return Control{}, err
	}
	if c.IsAckNotVoid, err = readFlag(r, "is_ack_not_void"); err != nil {
		return Control{}, err
	}
	if c.IsAckRecordRequested, err = readFlag(r, "is_ack_record_requested"); err != nil {
		return Control{}, err
	}
	if c.HasAGC, err = readFlag(r, "has_agc"); err != nil {
		return Control{}, err
	}
	if _, err := r.ReadBits(1); err != nil {
		return Control{}, d7err.UnexpectedEndOf("Control.reserved")
	}
	return c, nil
}

func readFlag(r *bits.Reader, field string) (bool, error) {
	v, err := r.ReadBits(1)
	if err != nil {
		return false, d7err.UnexpectedEndOf("Control." + field)
	}
	return v != 0, nil
}

// EncodeControl writes c to w.
func EncodeControl(w *bits.Writer, c Control) error {
	for _, b := range []bool{
		c.IsDialogStart,
		c.HasListenTimeout,
		c.HasExecutionDelayTimeout,
		c.IsAckRequested,
		c.IsAckNotVoid,
		c.IsAckRecordRequested,
		c.HasAGC,
	} {
		if err := w.WriteBits(boolBit(b), 1); err != nil {
			return err
		}
	}
	return w.WriteBits(0, 1)
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// AckTemplate names the transaction id range a requester accepts
// acknowledgements for.
type AckTemplate struct {
	TransactionIDStart uint8
	TransactionIDStop  uint8
}

// DecodeAckTemplate reads an AckTemplate from r.
func DecodeAckTemplate(r *bits.Reader) (AckTemplate, error) {
	start, err := r.ReadBits(8)
	if err != nil {
		return AckTemplate{}, d7err.UnexpectedEndOf("AckTemplate.transaction_id_start", err)
	}
	stop, err := r.ReadBits(8)
	if err != nil {
		return AckTemplate{}, d7err.UnexpectedEndOf("AckTemplate.transaction_id_stop", err)
	}
	return AckTemplate{TransactionIDStart: uint8(start), TransactionIDStop: uint8(stop)}, nil
}

// EncodeAckTemplate writes a to w.
func EncodeAckTemplate(w *bits.Writer, a AckTemplate) error {
	if err := w.WriteBits(uint32(a.TransactionIDStart), 8); err != nil {
		return err
	}
	return w.WriteBits(uint32(a.TransactionIDStop), 8)
}

// Frame is the Transport layer frame: a Control header, dialog/transaction
// ids, a chain of fields gated by Control's flags, and the ALP Command it
// carries.
type Frame struct {
	Control       Control
	DialogID      uint8
	TransactionID uint8

	// TargetRxLevel is present iff Control.HasAGC.
	TargetRxLevel *uint8
	// ListenTimeout is present iff Control.HasListenTimeout.
	ListenTimeout *varint.VarInt
	// ExecutionDelayTimeout is present iff Control.HasExecutionDelayTimeout.
	ExecutionDelayTimeout *varint.VarInt
	// CongestionTimeout is present iff Control.IsAckRequested && Control.IsDialogStart.
	//
	// This conflates "we are the requester starting a dialog" with "Tc is
	// present": a single frame carries no independent signal of which role
	// the reader plays, so is_dialog_start is reused as that signal. A
	// responder's frame that happens to start a dialog will be misread as
	// carrying a congestion timeout it does not have.
	CongestionTimeout *varint.VarInt
	// AckTemplateField is present iff Control.IsAckNotVoid.
	AckTemplateField *AckTemplate

	Command alp.Command
}

// DecodeFrame reads a Transport Frame from r. commandLength bounds the
// embedded Command's decode the same way alp.DecodeCommand's length
// parameter does (0 meaning "read until input is exhausted").
func DecodeFrame(r *bits.Reader, commandLength int) (Frame, error) {
	ctrl, err := DecodeControl(r)
	if err != nil {
		return Frame{}, err
	}

	dialogID, err := r.ReadBits(8)
	if err != nil {
		return Frame{}, d7err.UnexpectedEndOf("Frame.dialog_id", err)
	}
	transactionID, err := r.ReadBits(8)
	if err != nil {
		return Frame{}, d7err.UnexpectedEndOf("Frame.transaction_id", err)
	}

	f := Frame{Control: ctrl, DialogID: uint8(dialogID), TransactionID: uint8(transactionID)}

	if ctrl.HasAGC {
		v, err := r.ReadBits(8)
		if err != nil {
			return Frame{}, d7err.UnexpectedEndOf("Frame.target_rx_level", err)
		}
		level := uint8(v)
		f.TargetRxLevel = &level
	}

	if ctrl.HasListenTimeout {
		v, err := varint.Decode(r)
		if err != nil {
			return Frame{}, err
		}
		f.ListenTimeout = &v
	}

	if ctrl.HasExecutionDelayTimeout {
		v, err := varint.Decode(r)
		if err != nil {
			return Frame{}, err
		}
		f.ExecutionDelayTimeout = &v
	}

	if ctrl.IsAckRequested && ctrl.IsDialogStart {
		v, err := varint.Decode(r)
		if err != nil {
			return Frame{}, err
		}
		f.CongestionTimeout = &v
	}

	if ctrl.IsAckNotVoid {
		a, err := DecodeAckTemplate(r)
		if err != nil {
			return Frame{}, err
		}
		f.AckTemplateField = &a
	}

	cmd, err := alp.DecodeCommand(r, commandLength)
	if err != nil {
		return Frame{}, err
	}
	f.Command = cmd

	return f, nil
}

// EncodeFrame writes f to w.
func EncodeFrame(w *bits.Writer, f Frame) error {
	if err := EncodeControl(w, f.Control); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(f.DialogID), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(f.TransactionID), 8); err != nil {
		return err
	}

	if f.Control.HasAGC {
		if f.TargetRxLevel == nil {
			return d7err.UnexpectedEndOf("Frame.target_rx_level")
		}
		if err := w.WriteBits(uint32(*f.TargetRxLevel), 8); err != nil {
			return err
		}
	}

	if f.Control.HasListenTimeout {
		if f.ListenTimeout == nil {
			return d7err.UnexpectedEndOf("Frame.listen_timeout")
		}
		if err := varint.Encode(w, *f.ListenTimeout); err != nil {
			return err
		}
	}

	if f.Control.HasExecutionDelayTimeout {
		if f.ExecutionDelayTimeout == nil {
			return d7err.UnexpectedEndOf("Frame.execution_delay_timeout")
		}
		if err := varint.Encode(w, *f.ExecutionDelayTimeout); err != nil {
			return err
		}
	}

	if f.Control.IsAckRequested && f.Control.IsDialogStart {
		if f.CongestionTimeout == nil {
			return d7err.UnexpectedEndOf("Frame.congestion_timeout")
		}
		if err := varint.Encode(w, *f.CongestionTimeout); err != nil {
			return err
		}
	}

	if f.Control.IsAckNotVoid {
		if f.AckTemplateField == nil {
			return d7err.UnexpectedEndOf("Frame.ack_template")
		}
		if err := EncodeAckTemplate(w, *f.AckTemplateField); err != nil {
			return err
		}
	}

	return alp.EncodeCommand(w, f.Command)
}
