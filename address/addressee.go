/*
NAME
  addressee.go

DESCRIPTION
  addressee.go implements Addressee, the combination of an AccessClass, an
  Address and an NlsState used to name the target or origin of a frame.
*/

package address

import (
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/physical"
	"github.com/vhdirk/dash7-go/profile"
)

// Addressee names a frame's origin or target: a header byte followed by an
// AccessClass, an Address (shaped by address_type) and an NlsState (shaped
// by nls_method).
//
// Under profile.SpecV1_2 and profile.SubIoT the header is
// pad(2)|address_type(2)|nls_method(4); UseVid and GroupCondition are
// always their zero value there. Under profile.Wizzilab the header instead
// packs group_condition(2)|address_type(2)|use_vid(1)|nls_method(3), the
// two added fields occupying what would otherwise be reserved/wider bits.
type Addressee struct {
	// UseVid and GroupCondition only exist on the wire under profile.Wizzilab.
	UseVid         bool
	GroupCondition GroupCondition

	AccessClass physical.AccessClass
	Address     Address
	NlsState    NlsState
}

// DecodeAddressee reads an Addressee from r, shaped by the active build
// profile (profile.Active).
func DecodeAddressee(r *bits.Reader) (Addressee, error) {
	if profile.Active == profile.Wizzilab {
		return decodeWizzilabAddressee(r)
	}

	if _, err := r.ReadBits(2); err != nil {
		return Addressee{}, d7err.UnexpectedEndOf("Addressee.pad")
	}
	addrType, err := DecodeType(r)
	if err != nil {
		return Addressee{}, err
	}
	nlsMethod, err := DecodeNlsMethod(r, 4)
	if err != nil {
		return Addressee{}, err
	}
	ac, err := physical.DecodeAccessClass(r)
	if err != nil {
		return Addressee{}, err
	}
	addr, err := Decode(r, addrType)
	if err != nil {
		return Addressee{}, err
	}
	nls, err := DecodeNlsState(r, nlsMethod)
	if err != nil {
		return Addressee{}, err
	}
	return Addressee{AccessClass: ac, Address: addr, NlsState: nls}, nil
}

// EncodeAddressee writes a to w, shaped by the active build profile
// (profile.Active).
func EncodeAddressee(w *bits.Writer, a Addressee) error {
	if profile.Active == profile.Wizzilab {
		return encodeWizzilabAddressee(w, a)
	}

	if err := w.WriteBits(0, 2); err != nil {
		return err
	}
	if err := EncodeType(w, a.Address.Type); err != nil {
		return err
	}
	if err := EncodeNlsMethod(w, a.NlsState.Method, 4); err != nil {
		return err
	}
	if err := physical.EncodeAccessClass(w, a.AccessClass); err != nil {
		return err
	}
	if err := Encode(w, a.Address); err != nil {
		return err
	}
	return EncodeNlsState(w, a.NlsState)
}

// decodeWizzilabAddressee reads the wizzilab-profile header:
// group_condition(2)|address_type(2)|use_vid(1)|nls_method(3).
func decodeWizzilabAddressee(r *bits.Reader) (Addressee, error) {
	gc, err := DecodeGroupCondition(r)
	if err != nil {
		return Addressee{}, err
	}
	addrType, err := DecodeType(r)
	if err != nil {
		return Addressee{}, err
	}
	useVidBit, err := r.ReadBits(1)
	if err != nil {
		return Addressee{}, d7err.UnexpectedEndOf("Addressee.use_vid", err)
	}
	nlsMethod, err := DecodeNlsMethod(r, 3)
	if err != nil {
		return Addressee{}, err
	}
	ac, err := physical.DecodeAccessClass(r)
	if err != nil {
		return Addressee{}, err
	}
	addr, err := Decode(r, addrType)
	if err != nil {
		return Addressee{}, err
	}
	nls, err := DecodeNlsState(r, nlsMethod)
	if err != nil {
		return Addressee{}, err
	}
	return Addressee{
		UseVid:         useVidBit != 0,
		GroupCondition: gc,
		AccessClass:    ac,
		Address:        addr,
		NlsState:       nls,
	}, nil
}

func encodeWizzilabAddressee(w *bits.Writer, a Addressee) error {
	if err := EncodeGroupCondition(w, a.GroupCondition); err != nil {
		return err
	}
	if err := EncodeType(w, a.Address.Type); err != nil {
		return err
	}
	useVidBit := uint32(0)
	if a.UseVid {
		useVidBit = 1
	}
	if err := w.WriteBits(useVidBit, 1); err != nil {
		return err
	}
	if err := EncodeNlsMethod(w, a.NlsState.Method, 3); err != nil {
		return err
	}
	if err := physical.EncodeAccessClass(w, a.AccessClass); err != nil {
		return err
	}
	if err := Encode(w, a.Address); err != nil {
		return err
	}
	return EncodeNlsState(w, a.NlsState)
}
