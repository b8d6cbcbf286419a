/*
NAME
  fileheader.go

DESCRIPTION
  fileheader.go implements the 12-byte system-file header every D7A file
  carries: its access permissions, trigger/storage properties, the ALP and
  interface-local IDs it is known by, and its current/allocated size. It
  lives alongside ID so both the alp package (CreateNewFile's operand) and
  the file package (each file's header) can depend on it without pulling in
  each other.
*/

package fileid

import (
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
)

// ActionCondition names the type of access that triggers a file's D7AActP
// (the ALP action to run upon that access).
type ActionCondition uint8

const (
	ActionConditionList       ActionCondition = 0
	ActionConditionRead       ActionCondition = 1
	ActionConditionWrite      ActionCondition = 2
	ActionConditionWriteFlush ActionCondition = 3
)

// StorageClass names where and how durably a file's content is kept.
type StorageClass uint8

const (
	StorageClassTransient  StorageClass = 0
	StorageClassVolatile   StorageClass = 1
	StorageClassRestorable StorageClass = 2
	StorageClassPermanent  StorageClass = 3
)

// UserPermissions is the 3-bit read/write/executable triple granted to one
// principal (user or guest).
type UserPermissions struct {
	Read       bool
	Write      bool
	Executable bool
}

func decodeUserPermissions(r *bits.Reader) (UserPermissions, error) {
	read, err := r.ReadBits(1)
	if err != nil {
		return UserPermissions{}, d7err.UnexpectedEndOf("UserPermissions.read", err)
	}
	write, err := r.ReadBits(1)
	if err != nil {
		return UserPermissions{}, d7err.UnexpectedEndOf("UserPermissions.write", err)
	}
	exec, err := r.ReadBits(1)
	if err != nil {
		return UserPermissions{}, d7err.UnexpectedEndOf("UserPermissions.executable", err)
	}
	return UserPermissions{Read: read != 0, Write: write != 0, Executable: exec != 0}, nil
}

func encodeUserPermissions(w *bits.Writer, p UserPermissions) error {
	if err := w.WriteBits(boolBit(p.Read), 1); err != nil {
		return err
	}
	if err := w.WriteBits(boolBit(p.Write), 1); err != nil {
		return err
	}
	return w.WriteBits(boolBit(p.Executable), 1)
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// FilePermissions is one byte: encrypted(1) | executable(1) | user(3) | guest(3).
type FilePermissions struct {
	Encrypted  bool
	Executable bool
	User       UserPermissions
	Guest      UserPermissions
}

func decodeFilePermissions(r *bits.Reader) (FilePermissions, error) {
	enc, err := r.ReadBits(1)
	if err != nil {
		return FilePermissions{}, d7err.UnexpectedEndOf("FilePermissions.encrypted", err)
	}
	exec, err := r.ReadBits(1)
	if err != nil {
		return FilePermissions{}, d7err.UnexpectedEndOf("FilePermissions.executable", err)
	}
	user, err := decodeUserPermissions(r)
	if err != nil {
		return FilePermissions{}, err
	}
	guest, err := decodeUserPermissions(r)
	if err != nil {
		return FilePermissions{}, err
	}
	return FilePermissions{Encrypted: enc != 0, Executable: exec != 0, User: user, Guest: guest}, nil
}

func encodeFilePermissions(w *bits.Writer, p FilePermissions) error {
	if err := w.WriteBits(boolBit(p.Encrypted), 1); err != nil {
		return err
	}
	if err := w.WriteBits(boolBit(p.Executable), 1); err != nil {
		return err
	}
	if err := encodeUserPermissions(w, p.User); err != nil {
		return err
	}
	return encodeUserPermissions(w, p.Guest)
}

// FileProperties is one byte: enabled(1) | condition(3) | reserved(2) | storage_class(2).
type FileProperties struct {
	Enabled      bool
	Condition    ActionCondition
	StorageClass StorageClass
}

func decodeFileProperties(r *bits.Reader) (FileProperties, error) {
	enabled, err := r.ReadBits(1)
	if err != nil {
		return FileProperties{}, d7err.UnexpectedEndOf("FileProperties.enabled", err)
	}
	cond, err := r.ReadBits(3)
	if err != nil {
		return FileProperties{}, d7err.UnexpectedEndOf("FileProperties.condition", err)
	}
	if _, err := r.ReadBits(2); err != nil {
		return FileProperties{}, d7err.UnexpectedEndOf("FileProperties.reserved")
	}
	sc, err := r.ReadBits(2)
	if err != nil {
		return FileProperties{}, d7err.UnexpectedEndOf("FileProperties.storage_class", err)
	}
	return FileProperties{Enabled: enabled != 0, Condition: ActionCondition(cond), StorageClass: StorageClass(sc)}, nil
}

func encodeFileProperties(w *bits.Writer, p FileProperties) error {
	if err := w.WriteBits(boolBit(p.Enabled), 1); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(p.Condition), 3); err != nil {
		return err
	}
	if err := w.WriteBits(0, 2); err != nil {
		return err
	}
	return w.WriteBits(uint32(p.StorageClass), 2)
}

// FileHeader is the 12-byte metadata record every system/user file carries:
// permissions, properties, the ALP-command and interface-local IDs it
// answers to, its current size and its allocated capacity.
type FileHeader struct {
	Permissions     FilePermissions
	Properties      FileProperties
	AlpCommandFileID uint8
	InterfaceFileID  uint8
	FileSize        uint32
	AllocatedSize   uint32
}

// DecodeFileHeader reads a FileHeader from r.
func DecodeFileHeader(r *bits.Reader) (FileHeader, error) {
	perms, err := decodeFilePermissions(r)
	if err != nil {
		return FileHeader{}, err
	}
	props, err := decodeFileProperties(r)
	if err != nil {
		return FileHeader{}, err
	}
	alpID, err := r.ReadBits(8)
	if err != nil {
		return FileHeader{}, d7err.UnexpectedEndOf("FileHeader.alp_command_file_id", err)
	}
	ifaceID, err := r.ReadBits(8)
	if err != nil {
		return FileHeader{}, d7err.UnexpectedEndOf("FileHeader.interface_file_id", err)
	}
	size, err := r.ReadBits(32)
	if err != nil {
		return FileHeader{}, d7err.UnexpectedEndOf("FileHeader.file_size", err)
	}
	allocated, err := r.ReadBits(32)
	if err != nil {
		return FileHeader{}, d7err.UnexpectedEndOf("FileHeader.allocated_size", err)
	}
	return FileHeader{
		Permissions:      perms,
		Properties:       props,
		AlpCommandFileID: uint8(alpID),
		InterfaceFileID:  uint8(ifaceID),
		FileSize:         size,
		AllocatedSize:    allocated,
	}, nil
}

// EncodeFileHeader writes h to w.
func EncodeFileHeader(w *bits.Writer, h FileHeader) error {
	if err := encodeFilePermissions(w, h.Permissions); err != nil {
		return err
	}
	if err := encodeFileProperties(w, h.Properties); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(h.AlpCommandFileID), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(h.InterfaceFileID), 8); err != nil {
		return err
	}
	if err := w.WriteBits(h.FileSize, 32); err != nil {
		return err
	}
	return w.WriteBits(h.AllocatedSize, 32)
}
