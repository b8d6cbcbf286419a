package dash7

import (
	"encoding/hex"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vhdirk/dash7-go/alp"
)

// TestDecodeCommandScenario reproduces spec.md section 8 scenario #1.
func TestDecodeCommandScenario(t *testing.T) {
	b, err := hex.DecodeString("b44241000008810402")
	if err != nil {
		t.Fatalf("hex.DecodeString: unexpected error: %v", err)
	}
	b = append(b, 0x03, 0xc0)

	cmd, err := DecodeCommand(b)
	if err != nil {
		t.Fatalf("DecodeCommand: unexpected error: %v", err)
	}
	if len(cmd.Actions) != 4 {
		t.Fatalf("got %d actions, want 4", len(cmd.Actions))
	}

	tag := cmd.Actions[0]
	if tag.Op != alp.OpRequestTag || !tag.EOP || tag.ID != 66 {
		t.Errorf("action[0] = %+v, want RequestTag{eop=true, id=66}", tag)
	}

	read0 := cmd.Actions[1]
	if read0.Op != alp.OpReadFileData || !read0.Response || read0.Offset.FileID != 0 || read0.Offset.Offset != 0 || read0.Length != 8 {
		t.Errorf("action[1] = %+v, want ReadFileData{file_id=0, offset=0, length=8, response=true}", read0)
	}

	read1 := cmd.Actions[2]
	if read1.Op != alp.OpReadFileData || !read1.Group || read1.Offset.FileID != 4 || read1.Offset.Offset != 2 || read1.Length != 3 {
		t.Errorf("action[2] = %+v, want ReadFileData{file_id=4, offset=2, length=3, group=true}", read1)
	}

	nop := cmd.Actions[3]
	if nop.Op != alp.OpNop || !nop.Group || !nop.Response {
		t.Errorf("action[3] = %+v, want Nop{group=true, response=true}", nop)
	}

	encoded, err := EncodeCommand(cmd)
	if err != nil {
		t.Fatalf("EncodeCommand: unexpected error: %v", err)
	}
	if diff := cmp.Diff(b, encoded); diff != "" {
		t.Errorf("re-encode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeBackgroundFrameTrailingDataError(t *testing.T) {
	// A BackgroundFrame is exactly 6 bytes; two trailing bytes must fail.
	b := []byte{0x01, 0x80, 0x00, 0xAB, 0xCD, 0x12, 0x34, 0xFF}
	if _, err := DecodeBackgroundFrame(b); err == nil {
		t.Fatalf("expected trailing data error")
	}
}
