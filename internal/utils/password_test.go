package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret", 4)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if hash == "Sup3rSecret" {
		t.Fatal("HashPassword() returned the plain password")
	}
	if !VerifyPassword(hash, "Sup3rSecret") {
		t.Error("VerifyPassword() rejected the correct password")
	}
	if VerifyPassword(hash, "WrongPass1") {
		t.Error("VerifyPassword() accepted a wrong password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "anything") {
		t.Error("VerifyPassword() accepted a malformed hash")
	}
}
