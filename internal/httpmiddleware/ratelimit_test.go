package httpmiddleware

import "testing"

func TestAllowExhaustsBucket(t *testing.T) {
	l := NewTokenBucket(3, 3)
	for i := 0; i < 3; i++ {
		if !l.allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.allow("1.2.3.4") {
		t.Fatal("request over capacity should be rejected")
	}
}

func TestAllowIsPerKey(t *testing.T) {
	l := NewTokenBucket(1, 1)
	if !l.allow("a") {
		t.Fatal("first request for key a should pass")
	}
	if !l.allow("b") {
		t.Fatal("key b has its own bucket")
	}
	if l.allow("a") {
		t.Fatal("key a is exhausted")
	}
}

func TestCapacityDefaultsToRate(t *testing.T) {
	l := NewTokenBucket(0, 5)
	if l.capacity != 5 {
		t.Errorf("capacity = %d, want 5", l.capacity)
	}
}
