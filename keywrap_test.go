package aescrypt

import "testing"

func TestGenerateAndRecoverKeyMaterial(t *testing.T) {
	h, km, err := generateKeyMaterial("a correct passphrase")
	if err != nil {
		t.Fatalf("generateKeyMaterial: %v", err)
	}
	iv0, ik := km.iv0, km.innerKey
	km.zero()

	recovered, err := recoverKeyMaterial(h, "a correct passphrase", "test")
	if err != nil {
		t.Fatalf("recoverKeyMaterial: %v", err)
	}
	defer recovered.zero()

	if recovered.iv0 != iv0 {
		t.Fatal("recovered IV0 does not match the one generated")
	}
	if recovered.innerKey != ik {
		t.Fatal("recovered inner key does not match the one generated")
	}
}

func TestRecoverKeyMaterialWrongPassphrase(t *testing.T) {
	h, km, err := generateKeyMaterial("correct passphrase")
	if err != nil {
		t.Fatalf("generateKeyMaterial: %v", err)
	}
	km.zero()

	_, err = recoverKeyMaterial(h, "wrong passphrase", "test")
	if !IsAuthenticationError(err) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
}

func TestRecoverKeyMaterialTamperedWrappedBlob(t *testing.T) {
	h, km, err := generateKeyMaterial("correct passphrase")
	if err != nil {
		t.Fatalf("generateKeyMaterial: %v", err)
	}
	km.zero()

	h.wrapped[0] ^= 0xFF

	_, err = recoverKeyMaterial(h, "correct passphrase", "test")
	if !IsAuthenticationError(err) {
		t.Fatalf("expected AuthenticationError for tampered wrapped blob, got %v", err)
	}
}

func TestGenerateKeyMaterialUniqueIVs(t *testing.T) {
	h1, km1, err := generateKeyMaterial("p")
	if err != nil {
		t.Fatalf("generateKeyMaterial: %v", err)
	}
	h2, km2, err := generateKeyMaterial("p")
	if err != nil {
		t.Fatalf("generateKeyMaterial: %v", err)
	}
	defer km1.zero()
	defer km2.zero()

	if h1.iv1 == h2.iv1 {
		t.Fatal("two independent calls produced the same IV1")
	}
	if km1.iv0 == km2.iv0 {
		t.Fatal("two independent calls produced the same IV0")
	}
	if km1.innerKey == km2.innerKey {
		t.Fatal("two independent calls produced the same inner key")
	}
}
