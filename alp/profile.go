/*
NAME
  profile.go

DESCRIPTION
  profile.go re-exports the build-time profile switch defined in package
  profile. The underlying variable lives outside alp specifically so
  package address can read it too without an alp<->address import cycle
  (alp already depends on address for Dash7InterfaceConfiguration's
  Addressee field); set it via profile.Active.
*/

package alp

import "github.com/vhdirk/dash7-go/profile"

// Profile identifies a DASH7 ALP build profile.
type Profile = profile.Kind

const (
	ProfileSpecV1_2 = profile.SpecV1_2
	ProfileSubIoT   = profile.SubIoT
	ProfileWizzilab = profile.Wizzilab
)
