/*
NAME
  profile.go

DESCRIPTION
  profile.go defines the DASH7 ALP build-time profile switch: which of the
  three wire-format variants (spec v1.2, subiot, wizzilab) the rest of this
  module encodes and decodes against. It lives in its own leaf package,
  independent of both alp and address, so both can read the active profile
  without an import cycle (alp depends on address for
  Dash7InterfaceConfiguration's Addressee field; address in turn depends on
  the active profile for its wizzilab-only Addressee fields).
*/

// Package profile holds the single build-time switch selecting which DASH7
// ALP profile this module's wire formats follow.
package profile

// Kind identifies a DASH7 ALP build profile.
type Kind uint8

const (
	// SpecV1_2 is the baseline DASH7 ALP specification profile.
	SpecV1_2 Kind = iota
	// SubIoT drops Dash7InterfaceConfiguration's execution_delay_timeout.
	SubIoT
	// Wizzilab adds Addressee.UseVid/GroupCondition and the
	// InterfaceFinal/Tx status operations.
	Wizzilab
)

func (k Kind) String() string {
	switch k {
	case SpecV1_2:
		return "SpecV1_2"
	case SubIoT:
		return "SubIoT"
	case Wizzilab:
		return "Wizzilab"
	default:
		return "Unknown"
	}
}

// Active is the build profile every Decode/Encode in this module consults.
// Set it once at program start; switching it mid-process is undefined,
// matching the "profiles MUST NOT be mixed in a single binary" rule a
// build-time switch exists to enforce in the first place.
var Active = SpecV1_2
