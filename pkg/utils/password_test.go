package utils

import "testing"

func TestHashCheckPassword(t *testing.T) {
	h := HashPassword("secret1")
	if h == "" || h == "secret1" {
		t.Fatalf("hash looks wrong: %q", h)
	}
	if !CheckPassword("secret1", h) {
		t.Fatal("correct password must verify")
	}
	if CheckPassword("wrong", h) {
		t.Fatal("wrong password must not verify")
	}
}

func TestNewIDShape(t *testing.T) {
	a, b := NewID(), NewID()
	if len(a) != 32 || a == b {
		t.Fatalf("ids must be 32 chars and unique: %q %q", a, b)
	}
}
