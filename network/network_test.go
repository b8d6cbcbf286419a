package network

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vhdirk/dash7-go/address"
	"github.com/vhdirk/dash7-go/alp"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/physical"
	"github.com/vhdirk/dash7-go/transport"
)

func TestControlRoundTrip(t *testing.T) {
	want := Control{
		HasNoOriginAccessID: true,
		HasHopping:          false,
		OriginAddressType:   address.TypeUid,
		NlsMethod:           address.NlsMethodAesCcm32,
	}
	w := bits.NewWriter()
	if err := EncodeControl(w, want); err != nil {
		t.Fatalf("EncodeControl: unexpected error: %v", err)
	}
	data := w.Finalize()
	if len(data) != 1 {
		t.Fatalf("got %d bytes, want 1", len(data))
	}
	r := bits.NewReader(data)
	got, err := DecodeControl(r)
	if err != nil {
		t.Fatalf("DecodeControl: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestHoppingControlRoundTrip(t *testing.T) {
	want := HoppingControl{HopCounter: true, DestinationAddressType: address.TypeVid}
	w := bits.NewWriter()
	if err := EncodeHoppingControl(w, want); err != nil {
		t.Fatalf("EncodeHoppingControl: unexpected error: %v", err)
	}
	data := w.Finalize()
	r := bits.NewReader(data)
	got, err := DecodeHoppingControl(r)
	if err != nil {
		t.Fatalf("DecodeHoppingControl: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameRoundTripNoHopping(t *testing.T) {
	want := Frame{
		Control: Control{
			HasNoOriginAccessID: false,
			HasHopping:          false,
			OriginAddressType:   address.TypeUid,
			NlsMethod:           address.NlsMethodNone,
		},
		OriginAccessClass:   physical.AccessClass{Specifier: 0x0F, Mask: 0x0F},
		OriginAccessAddress: address.Address{Type: address.TypeUid, Uid: 0x0102030405060708},
		Transport: transport.Frame{
			Control:       transport.Control{},
			DialogID:      0x01,
			TransactionID: 0x02,
			Command: alp.Command{
				Actions: []alp.Action{
					{Op: alp.OpNop, Group: true, Response: true},
				},
			},
		},
	}

	w := bits.NewWriter()
	if err := EncodeFrame(w, want); err != nil {
		t.Fatalf("EncodeFrame: unexpected error: %v", err)
	}
	data := w.Finalize()

	r := bits.NewReader(data)
	got, err := DecodeFrame(r, len(data))
	if err != nil {
		t.Fatalf("DecodeFrame: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameRoundTripWithHopping(t *testing.T) {
	hopping := HoppingControl{HopCounter: true, DestinationAddressType: address.TypeNoId}
	want := Frame{
		Control: Control{
			HasNoOriginAccessID: true,
			HasHopping:          true,
			OriginAddressType:   address.TypeNoId,
			NlsMethod:           address.NlsMethodNone,
		},
		HoppingControl:      &hopping,
		OriginAccessClass:   physical.AccessClass{Specifier: 0x01, Mask: 0x02},
		OriginAccessAddress: address.Address{Type: address.TypeNoId},
		Transport: transport.Frame{
			Control:       transport.Control{},
			DialogID:      0x03,
			TransactionID: 0x04,
			Command: alp.Command{
				Actions: []alp.Action{
					{Op: alp.OpRequestTag, EOP: true, ID: 9},
				},
			},
		},
	}

	w := bits.NewWriter()
	if err := EncodeFrame(w, want); err != nil {
		t.Fatalf("EncodeFrame: unexpected error: %v", err)
	}
	data := w.Finalize()

	r := bits.NewReader(data)
	got, err := DecodeFrame(r, 0)
	if err != nil {
		t.Fatalf("DecodeFrame: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
