package crypto

import "testing"

func TestDeriveSecretAndPublicKeyAgree(t *testing.T) {
	dev := Ed25519Device{}

	var r, a, b SecretKey
	r[0], a[0], b[0] = 11, 13, 17

	R, ok := dev.SecretKeyToPublicKey(r)
	if !ok {
		t.Fatalf("SecretKeyToPublicKey(r) failed")
	}
	A, ok := dev.SecretKeyToPublicKey(a)
	if !ok {
		t.Fatalf("SecretKeyToPublicKey(a) failed")
	}
	B, ok := dev.SecretKeyToPublicKey(b)
	if !ok {
		t.Fatalf("SecretKeyToPublicKey(b) failed")
	}

	derivation, ok := dev.GenerateKeyDerivation(R, a)
	if !ok {
		t.Fatalf("GenerateKeyDerivation failed")
	}

	sk, ok := dev.DeriveSecretKey(derivation, 0, b)
	if !ok {
		t.Fatalf("DeriveSecretKey failed")
	}
	pkFromSk, ok := dev.SecretKeyToPublicKey(sk)
	if !ok {
		t.Fatalf("SecretKeyToPublicKey(derived) failed")
	}

	pkFromDerive, ok := dev.DerivePublicKey(derivation, 0, B)
	if !ok {
		t.Fatalf("DerivePublicKey failed")
	}

	if pkFromSk != pkFromDerive {
		t.Fatalf("derive_secret_key and derive_public_key disagree on the same output")
	}
}

func TestDeriveSubaddressPublicKeyInverse(t *testing.T) {
	dev := Ed25519Device{}
	var derivation KeyDerivation
	derivation[0] = 9

	var hsInputIdx uint64 = 4
	scalar := derivationScalar(derivation, hsInputIdx)
	offset, _ := ScalarMultBase(scalar)

	var base SecretKey
	base[0] = 21
	baseKey, _ := dev.SecretKeyToPublicKey(base)

	p, ok := AddPublicKeys(offset, baseKey)
	if !ok {
		t.Fatalf("AddPublicKeys failed")
	}

	recovered, ok := dev.DeriveSubaddressPublicKey(p, derivation, hsInputIdx)
	if !ok {
		t.Fatalf("DeriveSubaddressPublicKey failed")
	}
	if recovered != baseKey {
		t.Fatalf("derive_subaddress_public_key did not invert the offset")
	}
}

func TestGenerateKeyImageDeterministic(t *testing.T) {
	dev := Ed25519Device{}
	var sk SecretKey
	sk[0] = 42
	pub, _ := dev.SecretKeyToPublicKey(sk)

	ki1, ok1 := dev.GenerateKeyImage(pub, sk)
	ki2, ok2 := dev.GenerateKeyImage(pub, sk)
	if !ok1 || !ok2 {
		t.Fatalf("GenerateKeyImage failed")
	}
	if ki1 != ki2 {
		t.Fatalf("GenerateKeyImage is not deterministic")
	}
}
