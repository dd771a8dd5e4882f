package security

import (
	"errors"
	"strings"
	"testing"
)

// low-cost params so the suite stays fast
func testHasher() *Argon2Hasher {
	return NewArgon2Hasher(Argon2Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}, 4)
}

func TestHashVerifyRoundtrip(t *testing.T) {
	h := testHasher()
	encoded, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected encoding: %s", encoded)
	}
	if !h.Verify("correct horse battery staple", encoded) {
		t.Error("correct password should verify")
	}
	if h.Verify("wrong password", encoded) {
		t.Error("wrong password should not verify")
	}
}

func TestHashSaltRandomization(t *testing.T) {
	h := testHasher()
	a, err := h.Hash("same input")
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.Hash("same input")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ (random salt)")
	}
	if !h.Verify("same input", a) || !h.Verify("same input", b) {
		t.Error("both encodings should verify against the original password")
	}
}

func TestVerifyUsesEmbeddedParams(t *testing.T) {
	old := NewArgon2Hasher(Argon2Params{
		Memory:      4 * 1024,
		Iterations:  2,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}, 1)
	encoded, err := old.Hash("legacy password")
	if err != nil {
		t.Fatal(err)
	}
	// a hasher configured with different cost settings must still verify
	// the historical hash using the parameters it carries
	if !testHasher().Verify("legacy password", encoded) {
		t.Error("hash with older cost factor should remain verifiable")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h := testHasher()
	for _, bad := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=8192,t=1,p=1$onlyfiveparts",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA",
	} {
		if h.Verify("anything", bad) {
			t.Errorf("malformed hash %q should not verify", bad)
		}
	}
}

func TestDecodeHashReportsInvalidFormat(t *testing.T) {
	_, _, _, err := decodeHash("$argon2id$v=1$m=1,t=1,p=1$c2FsdA$aGFzaA")
	if !errors.Is(err, ErrInvalidHashFormat) {
		t.Errorf("expected ErrInvalidHashFormat, got %v", err)
	}
}
