/*
NAME
  action.go

DESCRIPTION
  action.go implements the Action union: one decode/encode pass per opcode,
  dispatched off the shared header byte.
*/

package alp

import (
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/fileid"
	"github.com/vhdirk/dash7-go/length"
)

// ChunkStep names Chunk's 2-bit position-in-sequence discriminant.
type ChunkStep uint8

const (
	ChunkStart    ChunkStep = 0
	ChunkContinue ChunkStep = 1
	ChunkEnd      ChunkStep = 2
)

// LogicOp names Logic's 2-bit boolean combinator.
type LogicOp uint8

const (
	LogicOr   LogicOp = 0
	LogicXor  LogicOp = 1
	LogicNand LogicOp = 2
	LogicNor  LogicOp = 3
)

// Action is the discriminated union of every ALP action. Op selects which
// of the field groups below is populated; the rest are left zero.
type Action struct {
	Op OpCode

	// Generic header, populated for the file/query/permission/status/
	// forward family.
	Group    bool
	Response bool

	// RequestTag / ResponseTag.
	EOP   bool
	Error bool
	ID    uint8

	// Chunk / Logic.
	Step ChunkStep
	Op2  LogicOp

	// ReadFileData / WriteFileData / WriteFileDataFlush / ReturnFileData.
	Offset FileOffset
	Length length.Length
	Data   []byte

	// ReadFileProperties / ExistFile / DeleteFile / RestoreFile / FlushFile
	// / ExecuteFile.
	FileID uint8

	// ReturnFileProperties / WriteFileProperties / CreateNewFile.
	Header fileid.FileHeader

	// CopyFile.
	SrcFileID uint8
	DstFileID uint8

	// ActionQuery / BreakQuery / VerifyChecksum.
	Query Query

	// PermissionRequest.
	Permission Permission

	// Status.
	Status StatusOperand

	// Forward.
	InterfaceConfig InterfaceConfiguration

	// IndirectForward. The addressee overload bytes that would follow are
	// interface-specific and are deliberately not consumed here: see
	// Command's decode loop.
	InterfaceID uint8
}

// DecodeAction reads one Action from r.
func DecodeAction(r *bits.Reader) (Action, error) {
	bit7, bit6, op, err := decodeOpCode(r)
	if err != nil {
		return Action{}, err
	}

	switch op {
	case OpRequestTag:
		id, err := r.ReadBits(8)
		if err != nil {
			return Action{}, d7err.UnexpectedEndOf("RequestTag.id", err)
		}
		return Action{Op: op, EOP: bit7, ID: uint8(id)}, nil

	case OpResponseTag:
		id, err := r.ReadBits(8)
		if err != nil {
			return Action{}, d7err.UnexpectedEndOf("ResponseTag.id", err)
		}
		return Action{Op: op, EOP: bit7, Error: bit6, ID: uint8(id)}, nil

	case OpChunk:
		step := uint8(0)
		if bit7 {
			step |= 2
		}
		if bit6 {
			step |= 1
		}
		return Action{Op: op, Step: ChunkStep(step)}, nil

	case OpLogic:
		v := uint8(0)
		if bit7 {
			v |= 2
		}
		if bit6 {
			v |= 1
		}
		return Action{Op: op, Op2: LogicOp(v)}, nil

	case OpNop:
		return Action{Op: op, Group: bit7, Response: bit6}, nil

	case OpReadFileData:
		off, err := decodeFileOffset(r)
		if err != nil {
			return Action{}, err
		}
		l, err := length.Decode(r)
		if err != nil {
			return Action{}, err
		}
		return Action{Op: op, Group: bit7, Response: bit6, Offset: off, Length: l}, nil

	case OpWriteFileData, OpWriteFileDataFlush, OpReturnFileData:
		off, err := decodeFileOffset(r)
		if err != nil {
			return Action{}, err
		}
		l, err := length.Decode(r)
		if err != nil {
			return Action{}, err
		}
		data, err := r.ReadBytes(int(l))
		if err != nil {
			return Action{}, d7err.UnexpectedEndOf(op.String() + ".data")
		}
		return Action{Op: op, Group: bit7, Response: bit6, Offset: off, Length: l, Data: data}, nil

	case OpReadFileProperties, OpExistFile, OpDeleteFile, OpRestoreFile, OpFlushFile, OpExecuteFile:
		id, err := r.ReadBits(8)
		if err != nil {
			return Action{}, d7err.UnexpectedEndOf(op.String() + ".file_id")
		}
		return Action{Op: op, Group: bit7, Response: bit6, FileID: uint8(id)}, nil

	case OpReturnFileProperties, OpWriteFileProperties, OpCreateNewFile:
		id, err := r.ReadBits(8)
		if err != nil {
			return Action{}, d7err.UnexpectedEndOf(op.String() + ".file_id")
		}
		h, err := fileid.DecodeFileHeader(r)
		if err != nil {
			return Action{}, err
		}
		return Action{Op: op, Group: bit7, Response: bit6, FileID: uint8(id), Header: h}, nil

	case OpCopyFile:
		src, err := r.ReadBits(8)
		if err != nil {
			return Action{}, d7err.UnexpectedEndOf("CopyFile.src_file_id", err)
		}
		dst, err := r.ReadBits(8)
		if err != nil {
			return Action{}, d7err.UnexpectedEndOf("CopyFile.dst_file_id", err)
		}
		return Action{Op: op, Group: bit7, Response: bit6, SrcFileID: uint8(src), DstFileID: uint8(dst)}, nil

	case OpActionQuery, OpBreakQuery, OpVerifyChecksum:
		q, err := DecodeQuery(r)
		if err != nil {
			return Action{}, err
		}
		return Action{Op: op, Group: bit7, Response: bit6, Query: q}, nil

	case OpPermissionRequest:
		p, err := decodePermission(r)
		if err != nil {
			return Action{}, err
		}
		return Action{Op: op, Group: bit7, Response: bit6, Permission: p}, nil

	case OpStatus:
		s, err := DecodeStatusOperand(r)
		if err != nil {
			return Action{}, err
		}
		return Action{Op: op, Group: bit7, Response: bit6, Status: s}, nil

	case OpForward:
		c, err := DecodeInterfaceConfiguration(r)
		if err != nil {
			return Action{}, err
		}
		return Action{Op: op, Group: bit7, Response: bit6, InterfaceConfig: c}, nil

	case OpIndirectForward:
		id, err := r.ReadBits(8)
		if err != nil {
			return Action{}, d7err.UnexpectedEndOf("IndirectForward.interface_id", err)
		}
		return Action{Op: op, Group: bit7, Response: bit6, InterfaceID: uint8(id)}, nil

	case OpExtension:
		return Action{Op: op, Group: bit7, Response: bit6}, nil

	default:
		return Action{}, d7err.InvalidDiscriminantOf("Action.opcode", uint64(op))
	}
}

// EncodeAction writes a to w.
func EncodeAction(w *bits.Writer, a Action) error {
	switch a.Op {
	case OpRequestTag:
		if err := encodeOpCode(w, a.EOP, false, a.Op); err != nil {
			return err
		}
		return w.WriteBits(uint32(a.ID), 8)

	case OpResponseTag:
		if err := encodeOpCode(w, a.EOP, a.Error, a.Op); err != nil {
			return err
		}
		return w.WriteBits(uint32(a.ID), 8)

	case OpChunk:
		return encodeOpCode(w, a.Step&2 != 0, a.Step&1 != 0, a.Op)

	case OpLogic:
		return encodeOpCode(w, a.Op2&2 != 0, a.Op2&1 != 0, a.Op)

	case OpNop, OpExtension:
		return encodeOpCode(w, a.Group, a.Response, a.Op)

	case OpReadFileData:
		if err := encodeOpCode(w, a.Group, a.Response, a.Op); err != nil {
			return err
		}
		if err := encodeFileOffset(w, a.Offset); err != nil {
			return err
		}
		return length.Encode(w, a.Length)

	case OpWriteFileData, OpWriteFileDataFlush, OpReturnFileData:
		if err := encodeOpCode(w, a.Group, a.Response, a.Op); err != nil {
			return err
		}
		if err := encodeFileOffset(w, a.Offset); err != nil {
			return err
		}
		if err := length.Encode(w, length.Length(len(a.Data))); err != nil {
			return err
		}
		return w.WriteBytes(a.Data)

	case OpReadFileProperties, OpExistFile, OpDeleteFile, OpRestoreFile, OpFlushFile, OpExecuteFile:
		if err := encodeOpCode(w, a.Group, a.Response, a.Op); err != nil {
			return err
		}
		return w.WriteBits(uint32(a.FileID), 8)

	case OpReturnFileProperties, OpWriteFileProperties, OpCreateNewFile:
		if err := encodeOpCode(w, a.Group, a.Response, a.Op); err != nil {
			return err
		}
		if err := w.WriteBits(uint32(a.FileID), 8); err != nil {
			return err
		}
		return fileid.EncodeFileHeader(w, a.Header)

	case OpCopyFile:
		if err := encodeOpCode(w, a.Group, a.Response, a.Op); err != nil {
			return err
		}
		if err := w.WriteBits(uint32(a.SrcFileID), 8); err != nil {
			return err
		}
		return w.WriteBits(uint32(a.DstFileID), 8)

	case OpActionQuery, OpBreakQuery, OpVerifyChecksum:
		if err := encodeOpCode(w, a.Group, a.Response, a.Op); err != nil {
			return err
		}
		return EncodeQuery(w, a.Query)

	case OpPermissionRequest:
		if err := encodeOpCode(w, a.Group, a.Response, a.Op); err != nil {
			return err
		}
		return encodePermission(w, a.Permission)

	case OpStatus:
		if err := encodeOpCode(w, a.Group, a.Response, a.Op); err != nil {
			return err
		}
		return EncodeStatusOperand(w, a.Status)

	case OpForward:
		if err := encodeOpCode(w, a.Group, a.Response, a.Op); err != nil {
			return err
		}
		return EncodeInterfaceConfiguration(w, a.InterfaceConfig)

	case OpIndirectForward:
		if err := encodeOpCode(w, a.Group, a.Response, a.Op); err != nil {
			return err
		}
		return w.WriteBits(uint32(a.InterfaceID), 8)

	default:
		return d7err.InvalidDiscriminantOf("Action.opcode", uint64(a.Op))
	}
}
