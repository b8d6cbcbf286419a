package physical

import (
	"testing"

	"github.com/vhdirk/dash7-go/bits"
)

func TestChannelHeaderRoundTrip(t *testing.T) {
	h := ChannelHeader{
		ChannelBand:   ChannelBandBand868,
		ChannelClass:  ChannelClassLoRate,
		ChannelCoding: ChannelCodingPn9,
	}
	w := bits.NewWriter()
	if err := Encode(w, h); err != nil {
		t.Fatalf("Encode: unexpected error: %v", err)
	}
	buf := w.Finalize()
	if len(buf) != 1 {
		t.Fatalf("got %d bytes, want 1", len(buf))
	}

	r := bits.NewReader(buf)
	got, err := Decode(r)
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	if got != h {
		t.Errorf("got %+v, want %+v", got, h)
	}
}

func TestChannelRoundTrip(t *testing.T) {
	c := Channel{
		Header: ChannelHeader{ChannelBand: ChannelBandBand433, ChannelClass: ChannelClassHiRate, ChannelCoding: ChannelCodingCw},
		Index:  0x1234,
	}
	w := bits.NewWriter()
	if err := EncodeChannel(w, c); err != nil {
		t.Fatalf("EncodeChannel: unexpected error: %v", err)
	}
	r := bits.NewReader(w.Finalize())
	got, err := DecodeChannel(r)
	if err != nil {
		t.Fatalf("DecodeChannel: unexpected error: %v", err)
	}
	if got != c {
		t.Errorf("got %+v, want %+v", got, c)
	}
}

func TestChannelStatusIdentifierRoundTrip(t *testing.T) {
	c := ChannelStatusIdentifier{
		ChannelBand: ChannelBandBand915,
		Bandwidth:   BandwidthKHz25,
		Index:       0x3ff,
	}
	w := bits.NewWriter()
	if err := EncodeChannelStatusIdentifier(w, c); err != nil {
		t.Fatalf("Encode: unexpected error: %v", err)
	}
	buf := w.Finalize()
	if len(buf) != 2 {
		t.Fatalf("got %d bytes, want 2", len(buf))
	}
	r := bits.NewReader(buf)
	got, err := DecodeChannelStatusIdentifier(r)
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	if got != c {
		t.Errorf("got %+v, want %+v", got, c)
	}
}

func TestAccessClassRoundTrip(t *testing.T) {
	a := AccessClass{Specifier: 0x3, Mask: 0xc}
	w := bits.NewWriter()
	if err := EncodeAccessClass(w, a); err != nil {
		t.Fatalf("EncodeAccessClass: unexpected error: %v", err)
	}
	buf := w.Finalize()
	if len(buf) != 1 {
		t.Fatalf("got %d bytes, want 1", len(buf))
	}
	r := bits.NewReader(buf)
	got, err := DecodeAccessClass(r)
	if err != nil {
		t.Fatalf("DecodeAccessClass: unexpected error: %v", err)
	}
	if got != a {
		t.Errorf("got %+v, want %+v", got, a)
	}
}

func TestUnavailableAccessClass(t *testing.T) {
	a := UnavailableAccessClass()
	if a.Specifier != 0x0f || a.Mask != 0x0f {
		t.Errorf("got %+v, want {15 15}", a)
	}
}

func TestSubBandRoundTrip(t *testing.T) {
	s := SubBand{
		ChannelIndexStart:     1,
		ChannelIndexEnd:       10,
		Eirp:                  14,
		ClearChannelAssessment: 80,
		Duty:                  10,
	}
	w := bits.NewWriter()
	if err := EncodeSubBand(w, s); err != nil {
		t.Fatalf("EncodeSubBand: unexpected error: %v", err)
	}
	buf := w.Finalize()
	if len(buf) != 7 {
		t.Fatalf("got %d bytes, want 7", len(buf))
	}
	r := bits.NewReader(buf)
	got, err := DecodeSubBand(r)
	if err != nil {
		t.Fatalf("DecodeSubBand: unexpected error: %v", err)
	}
	if got != s {
		t.Errorf("got %+v, want %+v", got, s)
	}
}
