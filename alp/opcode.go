/*
NAME
  opcode.go

DESCRIPTION
  opcode.go defines the ALP action opcode space and the two leading flag
  bits every action header shares with it.
*/

// Package alp implements the DASH7 Application Layer Protocol: action
// headers and opcodes, queries, the ~25-member Action union, the Command
// sequence (with its early-stop-on-IndirectForward rule) and the
// InterfaceConfiguration family used by Forward/IndirectForward.
package alp

import (
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
)

// OpCode identifies an Action's shape. It occupies the low 6 bits of an
// action's first byte; the high 2 bits carry per-action flag semantics
// (group/response for most actions, eop/error for the tag actions, a 2-bit
// step for Chunk/Logic).
type OpCode uint8

const (
	OpNop                  OpCode = 0x00
	OpReadFileData         OpCode = 0x01
	OpReadFileProperties   OpCode = 0x02
	OpWriteFileData        OpCode = 0x04
	OpWriteFileDataFlush   OpCode = 0x05
	OpWriteFileProperties  OpCode = 0x06
	OpActionQuery          OpCode = 0x08
	OpBreakQuery           OpCode = 0x09
	OpPermissionRequest    OpCode = 0x0A
	OpVerifyChecksum       OpCode = 0x0B
	OpExistFile            OpCode = 0x10
	OpCreateNewFile        OpCode = 0x11
	OpDeleteFile           OpCode = 0x12
	OpRestoreFile          OpCode = 0x13
	OpFlushFile            OpCode = 0x14
	OpCopyFile             OpCode = 0x17
	OpExecuteFile          OpCode = 0x1F
	OpReturnFileData       OpCode = 0x20
	OpReturnFileProperties OpCode = 0x21
	OpStatus               OpCode = 0x22
	OpResponseTag          OpCode = 0x23
	OpChunk                OpCode = 0x30
	OpLogic                OpCode = 0x31
	OpForward              OpCode = 0x32
	OpIndirectForward      OpCode = 0x33
	OpRequestTag           OpCode = 0x34
	OpExtension            OpCode = 0x3F
)

func (o OpCode) String() string {
	switch o {
	case OpNop:
		return "Nop"
	case OpReadFileData:
		return "ReadFileData"
	case OpReadFileProperties:
		return "ReadFileProperties"
	case OpWriteFileData:
		return "WriteFileData"
	case OpWriteFileDataFlush:
		return "WriteFileDataFlush"
	case OpWriteFileProperties:
		return "WriteFileProperties"
	case OpActionQuery:
		return "ActionQuery"
	case OpBreakQuery:
		return "BreakQuery"
	case OpPermissionRequest:
		return "PermissionRequest"
	case OpVerifyChecksum:
		return "VerifyChecksum"
	case OpExistFile:
		return "ExistFile"
	case OpCreateNewFile:
		return "CreateNewFile"
	case OpDeleteFile:
		return "DeleteFile"
	case OpRestoreFile:
		return "RestoreFile"
	case OpFlushFile:
		return "FlushFile"
	case OpCopyFile:
		return "CopyFile"
	case OpExecuteFile:
		return "ExecuteFile"
	case OpReturnFileData:
		return "ReturnFileData"
	case OpReturnFileProperties:
		return "ReturnFileProperties"
	case OpStatus:
		return "Status"
	case OpResponseTag:
		return "ResponseTag"
	case OpChunk:
		return "Chunk"
	case OpLogic:
		return "Logic"
	case OpForward:
		return "Forward"
	case OpIndirectForward:
		return "IndirectForward"
	case OpRequestTag:
		return "RequestTag"
	case OpExtension:
		return "Extension"
	default:
		return "Unknown"
	}
}

// ActionHeader is the generic group(1)|response(1) flag pair most actions
// (the file/query/permission/status/forward family) carry alongside their
// opcode. RequestTag and ResponseTag reinterpret the same two bit positions
// as eop/error instead. DecodeAction/EncodeAction do not use this type: they
// read and write the two bits raw via decodeOpCode/encodeOpCode and store
// them directly on Action.
type ActionHeader struct {
	Group    bool
	Response bool
}

// decodeOpCode reads the full header byte and splits it into its two flag
// bits (raw, uninterpreted) and the opcode.
func decodeOpCode(r *bits.Reader) (bit7, bit6 bool, op OpCode, err error) {
	b7, err := r.ReadBits(1)
	if err != nil {
		return false, false, 0, d7err.UnexpectedEndOf("Action.flag0", err)
	}
	b6, err := r.ReadBits(1)
	if err != nil {
		return false, false, 0, d7err.UnexpectedEndOf("Action.flag1", err)
	}
	code, err := r.ReadBits(6)
	if err != nil {
		return false, false, 0, d7err.UnexpectedEndOf("Action.opcode", err)
	}
	return b7 != 0, b6 != 0, OpCode(code), nil
}

func encodeOpCode(w *bits.Writer, bit7, bit6 bool, op OpCode) error {
	if err := w.WriteBits(boolBit(bit7), 1); err != nil {
		return err
	}
	if err := w.WriteBits(boolBit(bit6), 1); err != nil {
		return err
	}
	return w.WriteBits(uint32(op), 6)
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
