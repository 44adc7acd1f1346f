package auth_test

import (
	"testing"

	"clinic-booking-api/internal/auth"
)

func TestHashPasswordSalted(t *testing.T) {
	h1, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("same plaintext produced identical digests")
	}
}

func TestCheckPassword(t *testing.T) {
	h, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !auth.CheckPassword(h, "correct horse") {
		t.Error("expected match")
	}
	if auth.CheckPassword(h, "battery staple") {
		t.Error("expected mismatch")
	}
}

func TestCheckPasswordMalformedDigest(t *testing.T) {
	// garbage digests must fail verification, never panic or error out
	for _, digest := range []string{"", "not-a-bcrypt-hash", "$2a$broken"} {
		if auth.CheckPassword(digest, "anything") {
			t.Errorf("digest %q verified", digest)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := auth.MakeToken(42, true, "test-secret")
	if err != nil {
		t.Fatalf("make token: %v", err)
	}

	claims, err := auth.ParseToken(tok, "test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected uid 42, got %d", claims.UserID)
	}
	if !claims.IsAdmin {
		t.Error("expected admin claim")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := auth.MakeToken(1, false, "secret-a")
	if err != nil {
		t.Fatalf("make token: %v", err)
	}
	if _, err := auth.ParseToken(tok, "secret-b"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := auth.ParseToken("not.a.jwt", "secret"); err == nil {
		t.Fatal("expected error")
	}
}

func TestSessionTokenHash(t *testing.T) {
	raw, hash, err := auth.NewSessionToken()
	if err != nil {
		t.Fatalf("new session token: %v", err)
	}
	if raw == "" || hash == "" {
		t.Fatal("empty token or hash")
	}
	if raw == hash {
		t.Fatal("token stored in the clear")
	}
	if auth.HashSessionToken(raw) != hash {
		t.Fatal("hash does not match token")
	}

	raw2, _, err := auth.NewSessionToken()
	if err != nil {
		t.Fatalf("new session token: %v", err)
	}
	if raw == raw2 {
		t.Fatal("session tokens must be unique")
	}
}
