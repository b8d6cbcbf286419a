/*
NAME
  fileid.go

DESCRIPTION
  fileid.go enumerates the D7A filesystem's system file identifiers, kept in
  their own package so both the alp and file packages can name a file by ID
  without the file package's system-file bodies becoming a dependency of
  the ALP layer.
*/

// Package fileid enumerates the D7A filesystem's 1-byte system file
// identifiers, including the access-profile and reserved ranges, plus the
// Other(id) fallback for user/unassigned files.
package fileid

import "fmt"

// ID names one D7A system file. Other(n) is the fallback for any byte value
// with no assigned constant below (including the Rfu/D7AalpRfu ranges,
// which the protocol never defines a body for, but which are still valid
// on the wire as Other file references).
type ID struct {
	name  string
	value uint8
	other bool
}

func (id ID) String() string {
	if id.other {
		return fmt.Sprintf("Other(0x%02x)", id.value)
	}
	return id.name
}

// Byte returns the wire-format file ID byte.
func (id ID) Byte() uint8 {
	return id.value
}

// IsOther reports whether id fell through to the Other(n) fallback rather
// than naming an assigned system file.
func (id ID) IsOther() bool {
	return id.other
}

func named(name string, value uint8) ID {
	return ID{name: name, value: value}
}

var (
	UId                = named("UId", 0x00)
	FactorySettings    = named("FactorySettings", 0x01)
	FirmwareVersion    = named("FirmwareVersion", 0x02)
	DeviceCapacity     = named("DeviceCapacity", 0x03)
	DeviceStatus       = named("DeviceStatus", 0x04)
	EngineeringMode    = named("EngineeringMode", 0x05)
	VId                = named("VId", 0x06)
	PhyConfig          = named("PhyConfig", 0x08)
	PhyStatus          = named("PhyStatus", 0x09)
	DllConfig          = named("DllConfig", 0x0a)
	DllStatus          = named("DllStatus", 0x0b)
	NetworkRouting     = named("NetworkRouting", 0x0c)
	NetworkSecurity    = named("NetworkSecurity", 0x0d)
	NetworkSecurityKey = named("NetworkSecurityKey", 0x0e)
	NetworkSsr         = named("NetworkSsr", 0x0f)
	NetworkStatus      = named("NetworkStatus", 0x10)
	TrlStatus          = named("TrlStatus", 0x11)
	SelConfig          = named("SelConfig", 0x12)
	FofStatus          = named("FofStatus", 0x13)
	LocationData       = named("LocationData", 0x17)
	RootKey            = named("RootKey", 0x18)
	UserKey            = named("UserKey", 0x19)
	SensorDescription  = named("SensorDescription", 0x1b)
	Rtc                = named("Rtc", 0x1c)
)

// AccessProfile returns the system file ID for access profile slot i
// (0..14), at byte 0x20+i.
func AccessProfile(i int) ID {
	if i < 0 || i > 14 {
		panic(fmt.Sprintf("fileid: AccessProfile: index %d out of range [0,14]", i))
	}
	return named(fmt.Sprintf("AccessProfile%02d", i), uint8(0x20+i))
}

// IsAccessProfile reports whether id names one of the 15 access profile
// system files, returning its slot index.
func IsAccessProfile(id ID) (index int, ok bool) {
	if id.other || id.value < 0x20 || id.value > 0x2e {
		return 0, false
	}
	return int(id.value - 0x20), true
}

// IsRfu reports whether b falls in one of the reserved-for-future-use
// ranges (0x07, 0x14-0x16) or the D7A-ALP-reserved range (0x1d-0x1f).
func IsRfu(b uint8) bool {
	switch {
	case b == 0x07:
		return true
	case b >= 0x14 && b <= 0x16:
		return true
	case b >= 0x1d && b <= 0x1f:
		return true
	default:
		return false
	}
}

// FromByte maps a wire-format file ID byte to an ID, falling through to
// Other(b) for any byte with no assigned system file (including the Rfu
// ranges, which are valid references but carry no defined body).
func FromByte(b uint8) ID {
	for _, id := range assigned {
		if id.value == b {
			return id
		}
	}
	if idx, ok := accessProfileIndex(b); ok {
		return AccessProfile(idx)
	}
	return ID{name: "Other", value: b, other: true}
}

func accessProfileIndex(b uint8) (int, bool) {
	if b >= 0x20 && b <= 0x2e {
		return int(b - 0x20), true
	}
	return 0, false
}

var assigned = []ID{
	UId, FactorySettings, FirmwareVersion, DeviceCapacity, DeviceStatus,
	EngineeringMode, VId, PhyConfig, PhyStatus, DllConfig, DllStatus,
	NetworkRouting, NetworkSecurity, NetworkSecurityKey, NetworkSsr,
	NetworkStatus, TrlStatus, SelConfig, FofStatus, LocationData, RootKey,
	UserKey, SensorDescription, Rtc,
}
