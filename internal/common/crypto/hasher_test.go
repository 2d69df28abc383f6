package crypto

import "testing"

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("Secret1pass")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hash == "Secret1pass" {
		t.Fatal("expected hash to differ from plaintext")
	}

	if err := hasher.Compare(hash, "Secret1pass"); err != nil {
		t.Errorf("expected matching password to verify, got %v", err)
	}
	if err := hasher.Compare(hash, "WrongPass1"); err == nil {
		t.Error("expected mismatched password to fail")
	}
}

func TestBcryptHasher_DistinctDigests(t *testing.T) {
	hasher := NewBcryptHasher(4)

	first, err := hasher.Hash("Secret1pass")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := hasher.Hash("Secret1pass")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first == second {
		t.Error("expected per-hash salts to yield distinct digests")
	}
	if err := hasher.Compare(first, "Secret1pass"); err != nil {
		t.Errorf("first digest should verify: %v", err)
	}
	if err := hasher.Compare(second, "Secret1pass"); err != nil {
		t.Errorf("second digest should verify: %v", err)
	}
}

func TestUUIDGenerator_NewID(t *testing.T) {
	gen := NewUUIDGenerator()

	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first == "" || first == second {
		t.Errorf("expected distinct non-empty ids, got %q and %q", first, second)
	}
}
