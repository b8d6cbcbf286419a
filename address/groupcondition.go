/*
NAME
  groupcondition.go

DESCRIPTION
  groupcondition.go implements GroupCondition, the 2-bit comparison a
  grouped request's responders use to decide whether they are still part of
  the group. It lives here (rather than in transport, which also names a
  GroupCondition) because the wizzilab profile's Addressee carries its own
  copy of this field and address must not depend on transport (transport
  depends on alp, which depends on address).
*/

package address

import (
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
)

// GroupCondition names the comparison a grouped request's responders use to
// decide whether they are still part of the group.
type GroupCondition uint8

const (
	GroupConditionAny         GroupCondition = 0
	GroupConditionNotEqual    GroupCondition = 1
	GroupConditionEqual       GroupCondition = 2
	GroupConditionGreaterThan GroupCondition = 3
)

func (g GroupCondition) String() string {
	switch g {
	case GroupConditionAny:
		return "Any"
	case GroupConditionNotEqual:
		return "NotEqual"
	case GroupConditionEqual:
		return "Equal"
	case GroupConditionGreaterThan:
		return "GreaterThan"
	default:
		return "Unknown"
	}
}

// DecodeGroupCondition reads a 2-bit GroupCondition from r.
func DecodeGroupCondition(r *bits.Reader) (GroupCondition, error) {
	v, err := r.ReadBits(2)
	if err != nil {
		return 0, d7err.UnexpectedEndOf("GroupCondition", err)
	}
	return GroupCondition(v), nil
}

// EncodeGroupCondition writes g to w as 2 bits.
func EncodeGroupCondition(w *bits.Writer, g GroupCondition) error {
	return w.WriteBits(uint32(g), 2)
}
