package address

import (
	"testing"

	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/physical"
	"github.com/vhdirk/dash7-go/profile"
	"github.com/vhdirk/dash7-go/varint"
)

func accessClassFromByte(b byte) physical.AccessClass {
	return physical.AccessClass{Specifier: uint8(b >> 4), Mask: uint8(b & 0x0f)}
}

func TestAddresseeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		a    Addressee
		want []byte
	}{
		{
			name: "vid_aesccm32",
			a: Addressee{
				AccessClass: accessClassFromByte(0xff),
				Address:     Address{Type: TypeVid, Vid: 0xabcd},
				NlsState:    NlsState{Method: NlsMethodAesCcm32, Payload: [5]byte{0x00, 0x11, 0x22, 0x33, 0x44}},
			},
			want: []byte{0x37, 0xff, 0xab, 0xcd, 0x00, 0x11, 0x22, 0x33, 0x44},
		},
		{
			name: "noid_none",
			a: Addressee{
				AccessClass: accessClassFromByte(0x00),
				Address:     Address{Type: TypeNoId},
				NlsState:    NlsState{Method: NlsMethodNone},
			},
			want: []byte{0x10, 0x00},
		},
		{
			name: "nbid_none",
			a: Addressee{
				AccessClass: accessClassFromByte(0x00),
				Address:     Address{Type: TypeNbId, NbId: varint.VarInt{Value: 0}},
				NlsState:    NlsState{Method: NlsMethodNone},
			},
			want: []byte{0x00, 0x00, 0x00},
		},
		{
			name: "uid_none",
			a: Addressee{
				AccessClass: accessClassFromByte(0x00),
				Address:     Address{Type: TypeUid, Uid: 0},
				NlsState:    NlsState{Method: NlsMethodNone},
			},
			want: []byte{0x20, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "vid_none",
			a: Addressee{
				AccessClass: accessClassFromByte(0x05),
				Address:     Address{Type: TypeVid, Vid: 0x1234},
				NlsState:    NlsState{Method: NlsMethodNone},
			},
			want: []byte{0x30, 0x05, 0x12, 0x34},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := bits.NewWriter()
			if err := EncodeAddressee(w, c.a); err != nil {
				t.Fatalf("EncodeAddressee: unexpected error: %v", err)
			}
			got := w.Finalize()
			if len(got) != len(c.want) {
				t.Fatalf("got %d bytes %x, want %d bytes %x", len(got), got, len(c.want), c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("byte %d: got %02x, want %02x (full: %x vs %x)", i, got[i], c.want[i], got, c.want)
				}
			}

			r := bits.NewReader(got)
			decoded, err := DecodeAddressee(r)
			if err != nil {
				t.Fatalf("DecodeAddressee: unexpected error: %v", err)
			}
			if decoded != c.a {
				t.Errorf("round trip mismatch: got %+v, want %+v", decoded, c.a)
			}
		})
	}
}

// TestAddresseeWizzilabRoundTrip reproduces the Addressee bytes embedded in
// original_source's test_interface_tx_status vector: group_condition=Any,
// address_type=Vid, use_vid=false, nls_method=AesCcm64 packed into one
// header byte (0x36), followed by AccessClass(0x0F,0x0F), Vid(0x0011) and a
// zeroed 5-byte NLS payload.
func TestAddresseeWizzilabRoundTrip(t *testing.T) {
	profile.Active = profile.Wizzilab
	defer func() { profile.Active = profile.SpecV1_2 }()

	a := Addressee{
		UseVid:         false,
		GroupCondition: GroupConditionAny,
		AccessClass:    physical.AccessClass{Specifier: 0x0f, Mask: 0x0f},
		Address:        Address{Type: TypeVid, Vid: 0x0011},
		NlsState:       NlsState{Method: NlsMethodAesCcm64},
	}
	want := []byte{0x36, 0xff, 0x00, 0x11, 0x00, 0x00, 0x00, 0x00, 0x00}

	w := bits.NewWriter()
	if err := EncodeAddressee(w, a); err != nil {
		t.Fatalf("EncodeAddressee: unexpected error: %v", err)
	}
	got := w.Finalize()
	if len(got) != len(want) {
		t.Fatalf("got %d bytes %x, want %d bytes %x", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %02x, want %02x (full: %x vs %x)", i, got[i], want[i], got, want)
		}
	}

	decoded, err := DecodeAddressee(bits.NewReader(got))
	if err != nil {
		t.Fatalf("DecodeAddressee: unexpected error: %v", err)
	}
	if decoded != a {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, a)
	}
}
