package utils

import (
	"errors"
	"testing"
	"time"
)

func TestManagerRoundTrip(t *testing.T) {
	m, err := NewManager("secret")
	if err != nil {
		t.Fatal(err)
	}
	sid := NewSessionID()
	token, err := m.NewJWT("42", "ADMIN", sid, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.AdminID != "42" || claims.SessionID != sid || claims.Role != "ADMIN" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestManagerRejectsBadTokens(t *testing.T) {
	m, _ := NewManager("secret")
	other, _ := NewManager("other")

	expired, _ := m.NewJWT("1", "ADMIN", "sid", -time.Minute)
	foreign, _ := other.NewJWT("1", "ADMIN", "sid", time.Hour)

	for name, token := range map[string]string{
		"expired": expired,
		"foreign": foreign,
		"garbage": "not.a.token",
	} {
		if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}

	if _, err := NewManager(""); err == nil {
		t.Fatal("empty key should be refused")
	}
}
