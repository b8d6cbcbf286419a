package transport

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vhdirk/dash7-go/alp"
	"github.com/vhdirk/dash7-go/bits"
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

func TestControlRoundTrip(t *testing.T) {
	want := Control{
		IsDialogStart:            true,
		HasListenTimeout:         false,
		HasExecutionDelayTimeout: true,
		IsAckRequested:           true,
		IsAckNotVoid:             false,
		IsAckRecordRequested:     true,
		HasAGC:                   false,
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

func TestFrameRoundTripMinimal(t *testing.T) {
	want := Frame{
		Control:       Control{},
		DialogID:      0x10,
		TransactionID: 0x20,
		Command: alp.Command{
			Actions: []alp.Action{
				{Op: alp.OpNop, Group: true, Response: true},
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

func TestFrameRoundTripFullControl(t *testing.T) {
	listen := mustVarInt(t, 0x10)
	exec := mustVarInt(t, 0x14)
	congestion := mustVarInt(t, 0x18)
	level := uint8(0x42)
	ack := AckTemplate{TransactionIDStart: 1, TransactionIDStop: 5}

	want := Frame{
		Control: Control{
			IsDialogStart:            true,
			HasListenTimeout:         true,
			HasExecutionDelayTimeout: true,
			IsAckRequested:           true,
			IsAckNotVoid:             true,
			IsAckRecordRequested:     false,
			HasAGC:                   true,
		},
		DialogID:              0x01,
		TransactionID:         0x02,
		TargetRxLevel:         &level,
		ListenTimeout:         &listen,
		ExecutionDelayTimeout: &exec,
		CongestionTimeout:     &congestion,
		AckTemplateField:      &ack,
		Command: alp.Command{
			Actions: []alp.Action{
				{Op: alp.OpRequestTag, EOP: true, ID: 66},
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

func TestGroupConditionRoundTrip(t *testing.T) {
	for _, g := range []GroupCondition{GroupConditionAny, GroupConditionNotEqual, GroupConditionEqual, GroupConditionGreaterThan} {
		w := bits.NewWriter()
		if err := EncodeGroupCondition(w, g); err != nil {
			t.Fatalf("EncodeGroupCondition(%v): unexpected error: %v", g, err)
		}
		r := bits.NewReader(w.Finalize())
		got, err := DecodeGroupCondition(r)
		if err != nil {
			t.Fatalf("DecodeGroupCondition: unexpected error: %v", err)
		}
		if got != g {
			t.Errorf("got %v, want %v", got, g)
		}
	}
}
