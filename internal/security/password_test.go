package security

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret123" {
		t.Fatalf("expected hash to differ from plaintext")
	}
	if !VerifyPassword(hash, "secret123") {
		t.Fatalf("expected matching password to verify")
	}
	if VerifyPassword(hash, "secret124") {
		t.Fatalf("expected mismatched password to fail")
	}
}

func TestGenerateRandomString(t *testing.T) {
	first, err := GenerateRandomString(16)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := GenerateRandomString(16)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first == "" || first == second {
		t.Fatalf("expected distinct non-empty strings, got %q and %q", first, second)
	}
}
