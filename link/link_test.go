package link

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vhdirk/dash7-go/address"
	"github.com/vhdirk/dash7-go/alp"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/length"
	"github.com/vhdirk/dash7-go/network"
	"github.com/vhdirk/dash7-go/physical"
	"github.com/vhdirk/dash7-go/varint"
)

func mustVarInt(t *testing.T, value uint32) varint.VarInt {
	t.Helper()
	v, err := varint.New(value, false)
	if err != nil {
		t.Fatalf("varint.New(%d): unexpected error: %v", value, err)
	}
	return v
}

func TestBackgroundFrameRoundTrip(t *testing.T) {
	want := BackgroundFrame{
		Subnet:  0x42,
		Control: BackgroundFrameControl{AddressType: address.TypeVid, TagID: 0x3F},
		Payload: 0xABCD,
		CRC16:   0x1234,
	}
	w := bits.NewWriter()
	if err := EncodeBackgroundFrame(w, want); err != nil {
		t.Fatalf("EncodeBackgroundFrame: unexpected error: %v", err)
	}
	data := w.Finalize()
	if len(data) != 6 {
		t.Fatalf("got %d bytes, want 6", len(data))
	}

	r := bits.NewReader(data)
	got, err := DecodeBackgroundFrame(r)
	if err != nil {
		t.Fatalf("DecodeBackgroundFrame: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestForegroundFrameRoundTrip(t *testing.T) {
	nf := network.Frame{
		Control: network.Control{
			HasNoOriginAccessID: true,
			HasHopping:          false,
			OriginAddressType:   address.TypeUid,
			NlsMethod:           address.NlsMethodNone,
		},
		OriginAccessClass:   physical.AccessClass{Specifier: 0x0F, Mask: 0x0F},
		OriginAccessAddress: address.Address{Type: address.TypeUid, Uid: 0x0102030405060708},
	}
	nf.Transport.DialogID = 0x01
	nf.Transport.TransactionID = 0x02
	nf.Transport.Command.Actions = []alp.Action{
		{Op: alp.OpNop, Group: true, Response: true},
	}

	encodedNF := bits.NewWriter()
	if err := network.EncodeFrame(encodedNF, nf); err != nil {
		t.Fatalf("network.EncodeFrame: unexpected error: %v", err)
	}
	nfLen := len(encodedNF.Finalize())

	want := ForegroundFrame{
		Length:        length.Length(nfLen),
		Subnet:        0x10,
		Control:       ForegroundFrameControl{AddressType: address.TypeUid, EIRPIndex: 0x05},
		TargetAddress: address.Address{Type: address.TypeUid, Uid: 0x1122334455667788},
		Frame:         nf,
		CRC16:         0xBEEF,
	}

	w := bits.NewWriter()
	if err := EncodeForegroundFrame(w, want); err != nil {
		t.Fatalf("EncodeForegroundFrame: unexpected error: %v", err)
	}
	data := w.Finalize()

	r := bits.NewReader(data)
	got, err := DecodeForegroundFrame(r)
	if err != nil {
		t.Fatalf("DecodeForegroundFrame: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAccessProfileRoundTrip(t *testing.T) {
	want := AccessProfile{
		ChannelHeader: physical.ChannelHeader{
			ChannelBand:   physical.ChannelBand(0),
			ChannelClass:  physical.ChannelClass(1),
			ChannelCoding: physical.ChannelCoding(2),
		},
	}
	for i := range want.SubProfiles {
		want.SubProfiles[i] = physical.SubProfile{
			SubbandBitmap:        uint8(i),
			ScanAutomationPeriod: mustVarInt(t, uint32(i*4)),
		}
	}
	for i := range want.SubBands {
		want.SubBands[i] = physical.SubBand{
			ChannelIndexStart:      uint16(i),
			ChannelIndexEnd:        uint16(i + 10),
			Eirp:                   uint8(i),
			ClearChannelAssessment: uint8(i + 1),
			Duty:                  uint8(i + 2),
		}
	}

	w := bits.NewWriter()
	if err := EncodeAccessProfile(w, want); err != nil {
		t.Fatalf("EncodeAccessProfile: unexpected error: %v", err)
	}
	data := w.Finalize()

	r := bits.NewReader(data)
	got, err := DecodeAccessProfile(r)
	if err != nil {
		t.Fatalf("DecodeAccessProfile: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
