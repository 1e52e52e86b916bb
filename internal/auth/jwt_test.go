package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("faceattend", "test-key", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if tok.ID == "" {
		t.Fatal("token must carry a session id")
	}

	claims, err := Parse(tok.Value, "test-key", "faceattend")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.ID != tok.ID {
		t.Errorf("jti = %q, want %q", claims.ID, tok.ID)
	}
	if claims.Role != "admin" || claims.Subject != "admin" {
		t.Errorf("claims = %+v, want admin role and subject", claims)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	tok, err := Issue("faceattend", "test-key", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(tok.Value, "other-key", "faceattend"); err == nil {
		t.Fatal("expected error for wrong signing key")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	tok, err := Issue("someone-else", "test-key", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(tok.Value, "test-key", "faceattend"); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	tok, err := Issue("faceattend", "test-key", -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(tok.Value, "test-key", "faceattend"); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("not.a.jwt", "test-key", "faceattend"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
