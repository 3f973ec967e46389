package auth

import (
	"strings"
	"testing"
	"time"
)

func newJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "bookstore", TTL: time.Hour}
}

func TestIssueParseRoundtrip(t *testing.T) {
	j := newJWTer()
	tok, err := j.Issue("u-1", "a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := j.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UID != "u-1" || claims.Email != "a@example.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseTamperedToken(t *testing.T) {
	j := newJWTer()
	tok, err := j.Issue("u-1", "a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// 改掉签名段
	parts := strings.Split(tok, ".")
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]
	if _, err := j.Parse(tampered); err == nil {
		t.Fatal("tampered token must not verify")
	}
}

func TestParseWrongSecret(t *testing.T) {
	j := newJWTer()
	tok, _ := j.Issue("u-1", "a@example.com")
	other := &JWTer{Secret: []byte("other"), Issuer: "bookstore", TTL: time.Hour}
	if _, err := other.Parse(tok); err == nil {
		t.Fatal("wrong secret must not verify")
	}
}

func TestParseGarbage(t *testing.T) {
	j := newJWTer()
	if _, err := j.Parse("not-a-token"); err == nil {
		t.Fatal("garbage must not verify")
	}
}
