package session

import (
	"testing"

	"github.com/vhdirk/dash7-go/address"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/physical"
	"github.com/vhdirk/dash7-go/profile"
)

// TestDash7InterfaceTxStatusRoundTrip reproduces original_source's
// test_interface_tx_status vector: channel header 0x01 / index 0x0123,
// target_rx_level 2, error Busy, a 24-bit reserved pad, lts 0x0708_0000
// (little-endian on the wire) and a wizzilab Addressee.
func TestDash7InterfaceTxStatusRoundTrip(t *testing.T) {
	profile.Active = profile.Wizzilab
	defer func() { profile.Active = profile.SpecV1_2 }()

	raw := []byte{
		0x01, 0x01, 0x23, // channel
		0x02,                   // target_rx_level
		0xFF,                   // error = Busy
		0x00, 0x00, 0x00,       // reserved
		0x00, 0x00, 0x08, 0x07, // lts, little-endian
		0x36, 0xFF, 0x00, 0x11, 0x00, 0x00, 0x00, 0x00, 0x00, // addressee
	}

	got, err := DecodeDash7InterfaceTxStatus(bits.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeDash7InterfaceTxStatus: unexpected error: %v", err)
	}

	if got.TargetRxLevel != 2 {
		t.Errorf("TargetRxLevel: got %d, want 2", got.TargetRxLevel)
	}
	if got.Error != InterfaceFinalStatusBusy {
		t.Errorf("Error: got %#x, want Busy", uint8(got.Error))
	}
	if got.Lts != 0x07080000 {
		t.Errorf("Lts: got %#x, want 0x07080000", got.Lts)
	}
	wantAddressee := address.Addressee{
		GroupCondition: address.GroupConditionAny,
		AccessClass:    physical.AccessClass{Specifier: 0x0f, Mask: 0x0f},
		Address:        address.Address{Type: address.TypeVid, Vid: 0x0011},
		NlsState:       address.NlsState{Method: address.NlsMethodAesCcm64},
	}
	if got.Addressee != wantAddressee {
		t.Errorf("Addressee: got %+v, want %+v", got.Addressee, wantAddressee)
	}

	w := bits.NewWriter()
	if err := EncodeDash7InterfaceTxStatus(w, got); err != nil {
		t.Fatalf("EncodeDash7InterfaceTxStatus: unexpected error: %v", err)
	}
	encoded := w.Finalize()
	if len(encoded) != len(raw) {
		t.Fatalf("got %d bytes %x, want %d bytes %x", len(encoded), encoded, len(raw), raw)
	}
	for i := range encoded {
		if encoded[i] != raw[i] {
			t.Fatalf("byte %d: got %02x, want %02x (full: %x vs %x)", i, encoded[i], raw[i], encoded, raw)
		}
	}
}
