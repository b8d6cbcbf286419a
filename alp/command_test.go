package alp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/length"
)

func TestCommandRoundTrip(t *testing.T) {
	want := Command{
		Actions: []Action{
			{Op: OpRequestTag, EOP: true, ID: 66},
			{
				Op:       OpReadFileData,
				Group:    false,
				Response: true,
				Offset:   FileOffset{FileID: 0, Offset: length.Length(0)},
				Length:   length.Length(8),
			},
			{
				Op:       OpReadFileData,
				Group:    true,
				Response: false,
				Offset:   FileOffset{FileID: 4, Offset: length.Length(2)},
				Length:   length.Length(3),
			},
			{Op: OpNop, Group: true, Response: true},
		},
	}

	data := []byte{0xB4, 0x42, 0x41, 0x00, 0x00, 0x08, 0x81, 0x04, 0x02, 0x03, 0xC0}

	w := bits.NewWriter()
	if err := EncodeCommand(w, want); err != nil {
		t.Fatalf("EncodeCommand: unexpected error: %v", err)
	}
	got := w.Finalize()
	if diff := cmp.Diff(data, got); diff != "" {
		t.Errorf("encode mismatch (-want +got):\n%s", diff)
	}

	r := bits.NewReader(data)
	decoded, err := DecodeCommand(r, len(data))
	if err != nil {
		t.Fatalf("DecodeCommand: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Errorf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandRequestID(t *testing.T) {
	c := Command{Actions: []Action{
		{Op: OpRequestTag, EOP: true, ID: 66},
		{Op: OpNop, Group: true, Response: true},
	}}
	id, ok := c.RequestID()
	if !ok || id != 66 {
		t.Errorf("got (%d,%v), want (66,true)", id, ok)
	}

	c2 := Command{Actions: []Action{
		{Op: OpNop, Group: true, Response: false},
		{Op: OpNop, Group: true, Response: false},
	}}
	if _, ok := c2.RequestID(); ok {
		t.Errorf("expected no request id")
	}
}

func TestCommandResponseIDAndIsLastResponse(t *testing.T) {
	c := Command{Actions: []Action{
		{Op: OpResponseTag, EOP: true, Error: true, ID: 66},
		{Op: OpNop, Group: true, Response: true},
	}}
	id, ok := c.ResponseID()
	if !ok || id != 66 {
		t.Errorf("got (%d,%v), want (66,true)", id, ok)
	}
	if !c.IsLastResponse() {
		t.Errorf("expected IsLastResponse true")
	}

	c2 := Command{Actions: []Action{
		{Op: OpResponseTag, EOP: false, Error: false, ID: 66},
	}}
	if c2.IsLastResponse() {
		t.Errorf("expected IsLastResponse false")
	}
}

func TestCommandStopsOnIndirectForward(t *testing.T) {
	data := []byte{
		0xC0,       // Nop, group+response
		0x33, 0x02, // IndirectForward, interface_id 2
		0xFF, 0xFF, // trailing interface-specific bytes, must not be consumed
	}
	r := bits.NewReader(data)
	cmd, err := DecodeCommand(r, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmd.Actions) != 2 {
		t.Fatalf("got %d actions, want 2", len(cmd.Actions))
	}
	if cmd.Actions[1].Op != OpIndirectForward || cmd.Actions[1].InterfaceID != 2 {
		t.Errorf("got %+v, want IndirectForward{InterfaceID:2}", cmd.Actions[1])
	}
	if r.RemainingBytes() != 2 {
		t.Errorf("got %d remaining bytes, want 2 (unconsumed overload)", r.RemainingBytes())
	}
}
