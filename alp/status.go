/*
NAME
  status.go

DESCRIPTION
  status.go implements the Status action's two shapes: a plain action
  status (outcome of a previously executed action) and an interface status
  (a per-interface-type report, keyed by InterfaceType and length-prefixed
  for unrecognized types).
*/

package alp

import (
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/length"
	"github.com/vhdirk/dash7-go/session"
)

// StatusKind discriminates StatusOperand's shapes. StatusKindInterfaceFinal
// and StatusKindInterfaceTx only appear under profile.Wizzilab.
type StatusKind uint8

const (
	StatusKindAction         StatusKind = 0
	StatusKindInterface      StatusKind = 1
	StatusKindInterfaceFinal StatusKind = 2
	StatusKindInterfaceTx    StatusKind = 3
)

// ActionStatusCode names the common StatusOperand.Action.Status values.
type ActionStatusCode uint8

const (
	ActionStatusOK              ActionStatusCode = 0x00
	ActionStatusFailed          ActionStatusCode = 0x01
	ActionStatusFileIdMissing   ActionStatusCode = 0xFF
	ActionStatusFileIsInterfaceFile ActionStatusCode = 0xFE
	ActionStatusUnknownOpCode   ActionStatusCode = 0xF6
)

// ActionStatus reports the outcome of the action at ActionIndex in the
// enclosing Command.
type ActionStatus struct {
	ActionIndex uint8
	Status      ActionStatusCode
}

// StatusOperand is the Status action's payload, selected by Kind: an
// ActionStatus, an InterfaceStatus, or (profile.Wizzilab only) an
// InterfaceFinalStatus/InterfaceTxStatus keyed by an interface id.
type StatusOperand struct {
	Kind          StatusKind
	Action        ActionStatus
	Interface     session.InterfaceStatus
	InterfaceID   session.InterfaceType
	InterfaceFinal session.InterfaceFinalStatus
	InterfaceTx    session.InterfaceTxStatus
}

// DecodeStatusOperand reads a StatusOperand from r.
func DecodeStatusOperand(r *bits.Reader) (StatusOperand, error) {
	kind, err := r.ReadBits(8)
	if err != nil {
		return StatusOperand{}, d7err.UnexpectedEndOf("StatusOperand.kind", err)
	}
	switch StatusKind(kind) {
	case StatusKindAction:
		idx, err := r.ReadBits(8)
		if err != nil {
			return StatusOperand{}, d7err.UnexpectedEndOf("ActionStatus.action_index", err)
		}
		code, err := r.ReadBits(8)
		if err != nil {
			return StatusOperand{}, d7err.UnexpectedEndOf("ActionStatus.status", err)
		}
		return StatusOperand{Kind: StatusKindAction, Action: ActionStatus{ActionIndex: uint8(idx), Status: ActionStatusCode(code)}}, nil
	case StatusKindInterface:
		t, err := session.DecodeInterfaceType(r)
		if err != nil {
			return StatusOperand{}, err
		}
		l, err := length.Decode(r)
		if err != nil {
			return StatusOperand{}, err
		}
		is, err := session.DecodeInterfaceStatus(r, t, int(l))
		if err != nil {
			return StatusOperand{}, err
		}
		return StatusOperand{Kind: StatusKindInterface, Interface: is}, nil
	case StatusKindInterfaceFinal:
		id, err := r.ReadBits(8)
		if err != nil {
			return StatusOperand{}, d7err.UnexpectedEndOf("InterfaceFinalStatusOperation.interface_id", err)
		}
		t := session.InterfaceType(id)
		l, err := length.Decode(r)
		if err != nil {
			return StatusOperand{}, err
		}
		fs, err := session.DecodeInterfaceFinalStatus(r, t, int(l))
		if err != nil {
			return StatusOperand{}, err
		}
		return StatusOperand{Kind: StatusKindInterfaceFinal, InterfaceID: t, InterfaceFinal: fs}, nil
	case StatusKindInterfaceTx:
		id, err := r.ReadBits(8)
		if err != nil {
			return StatusOperand{}, d7err.UnexpectedEndOf("InterfaceTxStatusOperation.interface_id", err)
		}
		t := session.InterfaceType(id)
		l, err := length.Decode(r)
		if err != nil {
			return StatusOperand{}, err
		}
		ts, err := session.DecodeInterfaceTxStatus(r, t, int(l))
		if err != nil {
			return StatusOperand{}, err
		}
		return StatusOperand{Kind: StatusKindInterfaceTx, InterfaceID: t, InterfaceTx: ts}, nil
	default:
		return StatusOperand{}, d7err.InvalidDiscriminantOf("StatusOperand.kind", uint64(kind))
	}
}

// EncodeStatusOperand writes s to w.
func EncodeStatusOperand(w *bits.Writer, s StatusOperand) error {
	if err := w.WriteBits(uint32(s.Kind), 8); err != nil {
		return err
	}
	switch s.Kind {
	case StatusKindAction:
		if err := w.WriteBits(uint32(s.Action.ActionIndex), 8); err != nil {
			return err
		}
		return w.WriteBits(uint32(s.Action.Status), 8)
	case StatusKindInterface:
		if err := session.EncodeInterfaceType(w, s.Interface.Type); err != nil {
			return err
		}
		// Measure the body by encoding it into a scratch writer first, so
		// the length prefix can be written before the body itself.
		scratch := bits.NewWriter()
		if err := session.EncodeInterfaceStatus(scratch, s.Interface); err != nil {
			return err
		}
		body := scratch.Finalize()
		if err := length.Encode(w, length.Length(len(body))); err != nil {
			return err
		}
		return w.WriteBytes(body)
	case StatusKindInterfaceFinal:
		if err := w.WriteBits(uint32(s.InterfaceID), 8); err != nil {
			return err
		}
		scratch := bits.NewWriter()
		if err := session.EncodeInterfaceFinalStatus(scratch, s.InterfaceFinal); err != nil {
			return err
		}
		body := scratch.Finalize()
		if err := length.Encode(w, length.Length(len(body))); err != nil {
			return err
		}
		return w.WriteBytes(body)
	case StatusKindInterfaceTx:
		if err := w.WriteBits(uint32(s.InterfaceID), 8); err != nil {
			return err
		}
		scratch := bits.NewWriter()
		if err := session.EncodeInterfaceTxStatus(scratch, s.InterfaceTx); err != nil {
			return err
		}
		body := scratch.Finalize()
		if err := length.Encode(w, length.Length(len(body))); err != nil {
			return err
		}
		return w.WriteBytes(body)
	default:
		return d7err.InvalidDiscriminantOf("StatusOperand.kind", uint64(s.Kind))
	}
}
