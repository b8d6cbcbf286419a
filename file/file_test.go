package file

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vhdirk/dash7-go/address"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/fileid"
	"github.com/vhdirk/dash7-go/link"
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

func TestFirmwareVersionRoundTrip(t *testing.T) {
	want := FirmwareVersion{Major: 1, Minor: 2, ApplicationName: "ausapp", GitSha1: "abcdef1"}
	w := bits.NewWriter()
	if err := EncodeFirmwareVersion(w, want); err != nil {
		t.Fatalf("EncodeFirmwareVersion: unexpected error: %v", err)
	}
	data := w.Finalize()
	if len(data) != 2+6+7 {
		t.Fatalf("got %d bytes, want %d", len(data), 2+6+7)
	}
	r := bits.NewReader(data)
	got, err := DecodeFirmwareVersion(r)
	if err != nil {
		t.Fatalf("DecodeFirmwareVersion: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFirmwareVersionShortStringsZeroPadded(t *testing.T) {
	want := FirmwareVersion{Major: 0, Minor: 1, ApplicationName: "ab", GitSha1: "xy"}
	w := bits.NewWriter()
	if err := EncodeFirmwareVersion(w, want); err != nil {
		t.Fatalf("EncodeFirmwareVersion: unexpected error: %v", err)
	}
	data := w.Finalize()
	wantBytes := []byte{0x00, 0x01, 'a', 'b', 0, 0, 0, 0, 'x', 'y', 0, 0, 0, 0, 0}
	if diff := cmp.Diff(wantBytes, data); diff != "" {
		t.Errorf("encode mismatch (-want +got):\n%s", diff)
	}
}

func TestDllConfigRoundTrip(t *testing.T) {
	want := DllConfig{AC: 0x01, LqFilter: 0x02, NfCtrl: 0x03, RxNfMethodParameter: 0x04, TxNfMethodParameter: 0x05}
	w := bits.NewWriter()
	if err := EncodeDllConfig(w, want); err != nil {
		t.Fatalf("EncodeDllConfig: unexpected error: %v", err)
	}
	data := w.Finalize()
	if len(data) != 7 {
		t.Fatalf("got %d bytes, want 7", len(data))
	}
	r := bits.NewReader(data)
	got, err := DecodeDllConfig(r)
	if err != nil {
		t.Fatalf("DecodeDllConfig: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDllStatusRoundTrip(t *testing.T) {
	want := DllStatus{
		LastRxPacketLevel:      0x10,
		LastRxPacketLinkBudget: 0x20,
		NoiseFloor:             0x30,
		ChannelHeader: physical.ChannelHeader{
			ChannelBand:   physical.ChannelBandBand868,
			ChannelClass:  physical.ChannelClassNormalRate,
			ChannelCoding: physical.ChannelCodingPn9,
		},
		ChannelIndex:     0x1234,
		ScanTimeoutRatio: 0x5678,
		ScanCount:        0x9ABCDEF0,
		ScanTimeoutCount: 0x01020304,
	}
	w := bits.NewWriter()
	if err := EncodeDllStatus(w, want); err != nil {
		t.Fatalf("EncodeDllStatus: unexpected error: %v", err)
	}
	data := w.Finalize()
	r := bits.NewReader(data)
	got, err := DecodeDllStatus(r)
	if err != nil {
		t.Fatalf("DecodeDllStatus: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineeringModeRoundTrip(t *testing.T) {
	want := EngineeringMode{
		Mode:    EngineeringModePerTx,
		Flags:   0x01,
		Timeout: 0x0A,
		Channel: physical.Channel{
			Header: physical.ChannelHeader{
				ChannelBand:   physical.ChannelBandBand433,
				ChannelClass:  physical.ChannelClassLoRate,
				ChannelCoding: physical.ChannelCodingFecPn9,
			},
			Index: 0x0064,
		},
		Eirp: -12,
	}
	w := bits.NewWriter()
	if err := EncodeEngineeringMode(w, want); err != nil {
		t.Fatalf("EncodeEngineeringMode: unexpected error: %v", err)
	}
	data := w.Finalize()
	r := bits.NewReader(data)
	got, err := DecodeEngineeringMode(r)
	if err != nil {
		t.Fatalf("DecodeEngineeringMode: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSecurityKeyRoundTrip(t *testing.T) {
	want := SecurityKey{Key: [4]uint32{0x01020304, 0x05060708, 0x090A0B0C, 0x0D0E0F10}}
	w := bits.NewWriter()
	if err := EncodeSecurityKey(w, want); err != nil {
		t.Fatalf("EncodeSecurityKey: unexpected error: %v", err)
	}
	data := w.Finalize()
	if len(data) != 16 {
		t.Fatalf("got %d bytes, want 16", len(data))
	}
	r := bits.NewReader(data)
	got, err := DecodeSecurityKey(r)
	if err != nil {
		t.Fatalf("DecodeSecurityKey: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPhyStatusRoundTrip(t *testing.T) {
	want := PhyStatus{
		UpTime:      0x11223344,
		RxTime:      0x55667788,
		TxTime:      0x99AABBCC,
		TxDutyCycle: 0x0102,
		ChannelStatus: []physical.ChannelStatus{
			{Identifier: physical.ChannelStatusIdentifier{ChannelBand: physical.ChannelBandBand868, Bandwidth: physical.BandwidthKHz200, Index: 0x0F}, NoiseFloor: 0x50},
			{Identifier: physical.ChannelStatusIdentifier{ChannelBand: physical.ChannelBandBand915, Bandwidth: physical.BandwidthKHz25, Index: 0x3FF}, NoiseFloor: 0x60},
		},
	}
	w := bits.NewWriter()
	if err := EncodePhyStatus(w, want); err != nil {
		t.Fatalf("EncodePhyStatus: unexpected error: %v", err)
	}
	data := w.Finalize()
	r := bits.NewReader(data)
	got, err := DecodePhyStatus(r)
	if err != nil {
		t.Fatalf("DecodePhyStatus: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFactorySettingsRoundTrip(t *testing.T) {
	want := FactorySettings{
		Gain:                           -3,
		RxBwLowRate:                    1,
		RxBwNormalRate:                 2,
		RxBwHighRate:                   3,
		BitrateLoRate:                  4,
		FdevLoRate:                     5,
		BitrateNormalRate:              6,
		FdevNormalRate:                 7,
		BitrateHiRate:                  8,
		FdevHiRate:                     9,
		PreambleSizeLoRate:             10,
		PreambleSizeNormalRate:         11,
		PreambleSizeHiRate:             12,
		PreambleDetectorSizeLoRate:     13,
		PreambleDetectorSizeNormalRate: 14,
		PreambleDetectorSizeHiRate:     15,
		PreambleTolLoRate:              16,
		PreambleTolNormalRate:          17,
		PreambleTolHiRate:              18,
		RssiSmoothing:                  19,
		RssiOffset:                     20,
		LoraBw:                         21,
		LoraSf:                         22,
		Gaussian:                       23,
		Paramp:                         24,
	}
	w := bits.NewWriter()
	if err := EncodeFactorySettings(w, want); err != nil {
		t.Fatalf("EncodeFactorySettings: unexpected error: %v", err)
	}
	data := w.Finalize()
	r := bits.NewReader(data)
	got, err := DecodeFactorySettings(r)
	if err != nil {
		t.Fatalf("DecodeFactorySettings: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFileUnionUId(t *testing.T) {
	want := File{
		ID:      fileid.UId,
		Address: &AddressFile{Address: address.Address{Type: address.TypeUid, Uid: 0x0102030405060708}},
	}
	w := bits.NewWriter()
	if err := EncodeFile(w, want); err != nil {
		t.Fatalf("EncodeFile: unexpected error: %v", err)
	}
	data := w.Finalize()
	if len(data) != 8 {
		t.Fatalf("got %d bytes, want 8", len(data))
	}
	r := bits.NewReader(data)
	got, err := DecodeFile(r, fileid.UId, uint32(len(data)))
	if err != nil {
		t.Fatalf("DecodeFile: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFileUnionVId(t *testing.T) {
	want := File{
		ID:      fileid.VId,
		Address: &AddressFile{Address: address.Address{Type: address.TypeVid, Vid: 0xABCD}},
	}
	w := bits.NewWriter()
	if err := EncodeFile(w, want); err != nil {
		t.Fatalf("EncodeFile: unexpected error: %v", err)
	}
	data := w.Finalize()
	r := bits.NewReader(data)
	got, err := DecodeFile(r, fileid.VId, uint32(len(data)))
	if err != nil {
		t.Fatalf("DecodeFile: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFileUnionAccessProfile(t *testing.T) {
	var profile link.AccessProfile
	profile.ChannelHeader = physical.ChannelHeader{
		ChannelBand:   physical.ChannelBandBand868,
		ChannelClass:  physical.ChannelClassNormalRate,
		ChannelCoding: physical.ChannelCodingPn9,
	}
	for i := range profile.SubProfiles {
		profile.SubProfiles[i] = physical.SubProfile{SubbandBitmap: uint8(i), ScanAutomationPeriod: mustVarInt(t, 0)}
	}

	id := fileid.AccessProfile(3)
	want := File{ID: id, AccessProfile: &AccessProfileFile{Index: 3, Profile: profile}}

	w := bits.NewWriter()
	if err := EncodeFile(w, want); err != nil {
		t.Fatalf("EncodeFile: unexpected error: %v", err)
	}
	data := w.Finalize()
	r := bits.NewReader(data)
	got, err := DecodeFile(r, id, uint32(len(data)))
	if err != nil {
		t.Fatalf("DecodeFile: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFileUnionOtherFallback(t *testing.T) {
	want := File{
		ID:    fileid.DeviceStatus,
		Other: &OtherFile{Data: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
	}
	w := bits.NewWriter()
	if err := EncodeFile(w, want); err != nil {
		t.Fatalf("EncodeFile: unexpected error: %v", err)
	}
	data := w.Finalize()
	r := bits.NewReader(data)
	got, err := DecodeFile(r, fileid.DeviceStatus, uint32(len(data)))
	if err != nil {
		t.Fatalf("DecodeFile: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultFileRegistryParseFile(t *testing.T) {
	want := FirmwareVersion{Major: 1, Minor: 0, ApplicationName: "app", GitSha1: "deadbee"}
	w := bits.NewWriter()
	if err := EncodeFirmwareVersion(w, want); err != nil {
		t.Fatalf("EncodeFirmwareVersion: unexpected error: %v", err)
	}
	data := w.Finalize()

	reg := DefaultFileRegistry{}
	f, err := reg.ParseFile(fileid.FirmwareVersion.Byte(), 0, data)
	if err != nil {
		t.Fatalf("ParseFile: unexpected error: %v", err)
	}
	if f.FirmwareVersion == nil {
		t.Fatalf("ParseFile: FirmwareVersion body not set")
	}
	if diff := cmp.Diff(want, *f.FirmwareVersion); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := reg.ParseFile(fileid.FirmwareVersion.Byte(), 1, data); err == nil {
		t.Errorf("ParseFile: expected error for nonzero offset")
	}
}
