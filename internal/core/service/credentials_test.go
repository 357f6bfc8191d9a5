package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Str0ng!pass": true,
		"Aa1 aaaa":    true,
		"Aa1£aaaa":    true,
		"Aa1!aaa":     false, // 7 characters
		"aa1!aaaa":    false,
		"AA1!AAAA":    false,
		"Aaa!aaaa":    false,
		"Aa1aaaaa":    false,
		"":            false,
	}
	for pw, want := range cases {
		if got := isStrongPassword(pw); got != want {
			t.Errorf("isStrongPassword(%q) = %v, want %v", pw, got, want)
		}
	}
}

func TestPersonName(t *testing.T) {
	cases := map[string]bool{
		"Alice":        true,
		"Alice Smith":  true,
		"Mary Ann Lee": true,
		" Alice":       false,
		"Alice ":       false,
		"Alice  Smith": false,
		"O'Brien":      false,
		"Zoë":          false,
		"Agent 47":     false,
		"":             false,
	}
	for name, want := range cases {
		if got := isPersonName(name); got != want {
			t.Errorf("isPersonName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsEmail(t *testing.T) {
	if !isEmail("someone@example.com") {
		t.Fatalf("expected valid email")
	}
	for _, bad := range []string{"", "someone", "someone@", "@example.com"} {
		if isEmail(bad) {
			t.Errorf("isEmail(%q) = true", bad)
		}
	}
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash(goodPassword)
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, _ := h.Hash(goodPassword)
	if first == second {
		t.Fatalf("expected distinct salts per hash")
	}
	if !h.Verify(goodPassword, first) {
		t.Fatalf("expected password to verify")
	}
	if h.Verify("Wr0ng!pass", first) {
		t.Fatalf("expected wrong password to fail")
	}

	if got := NewBcryptHasher(99).cost; got != DefaultBcryptCost {
		t.Fatalf("expected out of range cost to fall back to %d, got %d", DefaultBcryptCost, got)
	}
}
