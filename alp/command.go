/*
NAME
  command.go

DESCRIPTION
  command.go implements Command: a sequence of actions decoded until a
  declared byte length is reached (or, with no declared length, until the
  input runs out), stopping early and without error the moment an
  IndirectForward action is read.
*/

package alp

import (
	"github.com/vhdirk/dash7-go/bits"
)

// Command is an ordered sequence of ALP actions.
type Command struct {
	Actions []Action
}

// DecodeCommand reads actions from r until length*8 bits have been
// consumed (length == 0 means "read until input is exhausted"), or until an
// IndirectForward action is read, whichever comes first. The bytes
// following an IndirectForward are interface-specific and are left
// unconsumed in r.
func DecodeCommand(r *bits.Reader, length int) (Command, error) {
	var cmd Command
	limitBits := uint64(length) * 8

	for {
		if length == 0 {
			if r.End() {
				break
			}
		} else if r.PositionBits() >= limitBits {
			break
		}

		a, err := DecodeAction(r)
		if err != nil {
			return Command{}, err
		}
		cmd.Actions = append(cmd.Actions, a)

		if a.Op == OpIndirectForward {
			break
		}
	}
	return cmd, nil
}

// EncodeCommand writes every action in c to w, back to back, with no
// terminator or length prefix of its own.
func EncodeCommand(w *bits.Writer, c Command) error {
	for _, a := range c.Actions {
		if err := EncodeAction(w, a); err != nil {
			return err
		}
	}
	return nil
}

// RequestID returns the id of the first RequestTag action, if any.
func (c Command) RequestID() (uint8, bool) {
	for _, a := range c.Actions {
		if a.Op == OpRequestTag {
			return a.ID, true
		}
	}
	return 0, false
}

// ResponseID returns the id of the first ResponseTag action, if any.
func (c Command) ResponseID() (uint8, bool) {
	for _, a := range c.Actions {
		if a.Op == OpResponseTag {
			return a.ID, true
		}
	}
	return 0, false
}

// TagID returns RequestID if present, else ResponseID.
func (c Command) TagID() (uint8, bool) {
	if id, ok := c.RequestID(); ok {
		return id, true
	}
	return c.ResponseID()
}

// IsLastResponse reports whether the first ResponseTag action's end-of-
// packet flag is set. It returns false if there is no ResponseTag action.
func (c Command) IsLastResponse() bool {
	for _, a := range c.Actions {
		if a.Op == OpResponseTag {
			return a.EOP
		}
	}
	return false
}

// InterfaceStatus returns the interface status carried by the first Status
// action whose payload is an interface status, if any.
func (c Command) InterfaceStatus() (StatusOperand, bool) {
	for _, a := range c.Actions {
		if a.Op == OpStatus && a.Status.Kind == StatusKindInterface {
			return a.Status, true
		}
	}
	return StatusOperand{}, false
}

// ActionsWithoutInterfaceStatus returns every action except Status actions
// carrying an interface status.
func (c Command) ActionsWithoutInterfaceStatus() []Action {
	out := make([]Action, 0, len(c.Actions))
	for _, a := range c.Actions {
		if a.Op == OpStatus && a.Status.Kind == StatusKindInterface {
			continue
		}
		out = append(out, a)
	}
	return out
}
