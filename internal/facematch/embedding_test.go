package facematch

import (
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	emb := []float32{0.25, -1.5, 0, 3.125}
	data := Encode(emb)
	if len(data) != 16 {
		t.Fatalf("encoded length = %d, want 16", len(data))
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range emb {
		if got[i] != emb[i] {
			t.Errorf("round trip index %d: got %v, want %v", i, got[i], emb[i])
		}
	}
}

func TestDecodeRejectsBadLength(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 7} {
		if _, err := Decode(make([]byte, n)); err == nil {
			t.Errorf("Decode(%d bytes) expected error", n)
		}
	}
	if _, err := Decode(nil); err == nil {
		t.Error("Decode(nil) expected error")
	}
}
