/*
NAME
  file.go

DESCRIPTION
  file.go implements the D7A filesystem's File union: the file-id-keyed
  dispatch between the typed system file bodies in systemfiles.go, the
  address-typed UId/VId files, the per-subnet AccessProfile files, and the
  untyped fallback body for every other file id.
*/

// Package file implements the DASH7 filesystem layer: the typed bodies of
// the D7A system files and the Other fallback for user and unassigned
// files, dispatched by file id.
package file

import (
	"fmt"

	"github.com/vhdirk/dash7-go/address"
	"github.com/vhdirk/dash7-go/alp"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/fileid"
	"github.com/vhdirk/dash7-go/link"
)

// AddressFile is the body shared by the UId (0x00) and VId (0x06) system
// files: a single address, shaped by the file's own id rather than a
// control byte.
type AddressFile struct {
	Address address.Address
}

// DecodeAddressFile reads an AddressFile from r, interpreting the address
// as type t (address.TypeUid for UId, address.TypeVid for VId).
func DecodeAddressFile(r *bits.Reader, t address.Type) (AddressFile, error) {
	a, err := address.Decode(r, t)
	if err != nil {
		return AddressFile{}, err
	}
	return AddressFile{Address: a}, nil
}

// EncodeAddressFile writes f to w.
func EncodeAddressFile(w *bits.Writer, f AddressFile) error {
	return address.Encode(w, f.Address)
}

// AccessProfileFile is one of the 15 per-subnet AccessProfile system files
// (ids 0x20-0x2e), identified by its slot index.
type AccessProfileFile struct {
	Index   int
	Profile link.AccessProfile
}

// DecodeAccessProfileFile reads an AccessProfileFile for the given slot
// index from r.
func DecodeAccessProfileFile(r *bits.Reader, index int) (AccessProfileFile, error) {
	p, err := link.DecodeAccessProfile(r)
	if err != nil {
		return AccessProfileFile{}, err
	}
	return AccessProfileFile{Index: index, Profile: p}, nil
}

// EncodeAccessProfileFile writes f to w.
func EncodeAccessProfileFile(w *bits.Writer, f AccessProfileFile) error {
	return link.EncodeAccessProfile(w, f.Profile)
}

// OtherFile is the fallback body for any file id without a typed body
// defined above: every assigned system file id whose payload this codec
// does not model (it decodes as raw bytes instead), every Rfu/D7aAlpRfu
// reserved id, and every user-defined file id.
type OtherFile struct {
	Data []byte
}

// DecodeOtherFile reads n raw bytes from r.
func DecodeOtherFile(r *bits.Reader, n int) (OtherFile, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return OtherFile{}, d7err.UnexpectedEndOf("OtherFile.data", err)
	}
	return OtherFile{Data: b}, nil
}

// EncodeOtherFile writes f to w.
func EncodeOtherFile(w *bits.Writer, f OtherFile) error {
	return w.WriteBytes(f.Data)
}

// File is the D7A filesystem's file body union. Exactly one of the typed
// fields is populated, selected by ID; every field left unpopulated for a
// given ID is the type's zero value.
//
// A handful of assigned system file ids (DeviceCapacity, DeviceStatus,
// NetworkRouting, NetworkSecurity, NetworkSsr, NetworkStatus, TrlStatus,
// SelConfig, FofStatus, LocationData, RootKey, UserKey, SensorDescription
// and Rtc) have no typed body defined anywhere in the reference
// implementation this codec was built from; those decode into Other along
// with every Rfu id and every user-defined file.
type File struct {
	ID ID

	Address            *AddressFile
	FactorySettings    *FactorySettings
	FirmwareVersion    *FirmwareVersion
	EngineeringMode    *EngineeringMode
	PhyConfig          *alp.InterfaceConfiguration
	PhyStatus          *PhyStatus
	DllConfig          *DllConfig
	DllStatus          *DllStatus
	NetworkSecurityKey *SecurityKey
	AccessProfile      *AccessProfileFile
	Other              *OtherFile
}

// ID is a thin alias kept for readability at call sites; it names the same
// type as fileid.ID.
type ID = fileid.ID

// DecodeFile reads a File of the given id from r. length is the file's
// declared byte length, used only to size the Other fallback body.
func DecodeFile(r *bits.Reader, id ID, length uint32) (File, error) {
	f := File{ID: id}

	if idx, ok := fileid.IsAccessProfile(id); ok {
		body, err := DecodeAccessProfileFile(r, idx)
		if err != nil {
			return File{}, err
		}
		f.AccessProfile = &body
		return f, nil
	}

	switch id {
	case fileid.UId:
		body, err := DecodeAddressFile(r, address.TypeUid)
		if err != nil {
			return File{}, err
		}
		f.Address = &body
	case fileid.VId:
		body, err := DecodeAddressFile(r, address.TypeVid)
		if err != nil {
			return File{}, err
		}
		f.Address = &body
	case fileid.FactorySettings:
		body, err := DecodeFactorySettings(r)
		if err != nil {
			return File{}, err
		}
		f.FactorySettings = &body
	case fileid.FirmwareVersion:
		body, err := DecodeFirmwareVersion(r)
		if err != nil {
			return File{}, err
		}
		f.FirmwareVersion = &body
	case fileid.EngineeringMode:
		body, err := DecodeEngineeringMode(r)
		if err != nil {
			return File{}, err
		}
		f.EngineeringMode = &body
	case fileid.PhyConfig:
		body, err := alp.DecodeInterfaceConfiguration(r)
		if err != nil {
			return File{}, err
		}
		f.PhyConfig = &body
	case fileid.PhyStatus:
		body, err := DecodePhyStatus(r)
		if err != nil {
			return File{}, err
		}
		f.PhyStatus = &body
	case fileid.DllConfig:
		body, err := DecodeDllConfig(r)
		if err != nil {
			return File{}, err
		}
		f.DllConfig = &body
	case fileid.DllStatus:
		body, err := DecodeDllStatus(r)
		if err != nil {
			return File{}, err
		}
		f.DllStatus = &body
	case fileid.NetworkSecurityKey:
		body, err := DecodeSecurityKey(r)
		if err != nil {
			return File{}, err
		}
		f.NetworkSecurityKey = &body
	default:
		body, err := DecodeOtherFile(r, int(length))
		if err != nil {
			return File{}, err
		}
		f.Other = &body
	}
	return f, nil
}

// EncodeFile writes f to w, dispatching on whichever body field f carries.
func EncodeFile(w *bits.Writer, f File) error {
	switch {
	case f.Address != nil:
		return EncodeAddressFile(w, *f.Address)
	case f.FactorySettings != nil:
		return EncodeFactorySettings(w, *f.FactorySettings)
	case f.FirmwareVersion != nil:
		return EncodeFirmwareVersion(w, *f.FirmwareVersion)
	case f.EngineeringMode != nil:
		return EncodeEngineeringMode(w, *f.EngineeringMode)
	case f.PhyConfig != nil:
		return alp.EncodeInterfaceConfiguration(w, *f.PhyConfig)
	case f.PhyStatus != nil:
		return EncodePhyStatus(w, *f.PhyStatus)
	case f.DllConfig != nil:
		return EncodeDllConfig(w, *f.DllConfig)
	case f.DllStatus != nil:
		return EncodeDllStatus(w, *f.DllStatus)
	case f.NetworkSecurityKey != nil:
		return EncodeSecurityKey(w, *f.NetworkSecurityKey)
	case f.AccessProfile != nil:
		return EncodeAccessProfileFile(w, *f.AccessProfile)
	case f.Other != nil:
		return EncodeOtherFile(w, *f.Other)
	default:
		return fmt.Errorf("file: EncodeFile: %s carries no body", f.ID)
	}
}

// FileRegistry parses a file's raw bytes into a typed File, given its id
// and byte offset into the file (ParseFile is only ever called with
// offset 0 by this codec; a nonzero offset means the caller read a partial
// file and cannot reconstruct a typed body from it).
type FileRegistry interface {
	ParseFile(id uint8, offset uint32, data []byte) (File, error)
}

// DefaultFileRegistry parses complete, offset-0 file reads using DecodeFile's
// system-file dispatch table.
type DefaultFileRegistry struct{}

// ParseFile implements FileRegistry.
func (DefaultFileRegistry) ParseFile(id uint8, offset uint32, data []byte) (File, error) {
	if offset != 0 {
		return File{}, fmt.Errorf("file: ParseFile: partial read at offset %d not supported", offset)
	}
	r := bits.NewReader(data)
	return DecodeFile(r, fileid.FromByte(id), uint32(len(data)))
}
