package security

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("parola123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(string(hash), "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	ok, err := VerifyPassword("parola123", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}
}

func TestVerifyPassword_Wrong(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("parola123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := VerifyPassword("altaparola", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if ok {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	cases := []string{
		"not-a-hash",
		"$argon2id$v=19$t=3,m=65536,p=2$saltonly",
		"$argon2i$v=19$t=3,m=65536,p=2$c2FsdA==$aGFzaA==",
		"$argon2id$v=19$bogus-params$c2FsdA==$aGFzaA==",
	}
	for _, encoded := range cases {
		if _, err := VerifyPassword("x", []byte(encoded)); err == nil {
			t.Fatalf("expected error for malformed hash %q", encoded)
		}
	}
}

func TestVerifyPassword_CustomParams(t *testing.T) {
	t.Parallel()

	params := Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 16, SaltLen: 8}
	hash, err := HashPasswordWithParams("parola123", params)
	if err != nil {
		t.Fatalf("HashPasswordWithParams error: %v", err)
	}

	ok, err := VerifyPassword("parola123", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify against non-default parameters")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if string(first) == string(second) {
		t.Fatalf("expected different salts to produce different hashes")
	}
}

func TestGenerateSessionToken(t *testing.T) {
	t.Parallel()

	first, err := GenerateSessionToken(32)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}
	second, err := GenerateSessionToken(32)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	if first == "" || first == second {
		t.Fatalf("expected distinct non-empty tokens, got %q and %q", first, second)
	}
}
