package crypto

// Ed25519Device is the default Device backed by filippo.io/edwards25519 and
// Keccak-256. It has no internal state and is safe for concurrent use.
type Ed25519Device struct{}

var _ Device = Ed25519Device{}

const subaddressDST = "SubAddr\x00"

func (Ed25519Device) GenerateKeyDerivation(pub PublicKey, viewSecret SecretKey) (KeyDerivation, bool) {
	p, ok := ScalarMultKey(viewSecret, pub)
	if !ok {
		return KeyDerivation{}, false
	}
	return KeyDerivation(p), true
}

func derivationScalar(derivation KeyDerivation, outIndex uint64) SecretKey {
	buf := make([]byte, 0, 32+10)
	buf = append(buf, derivation[:]...)
	buf = AppendVarint(buf, outIndex)
	return HashToScalar(buf)
}

func (Ed25519Device) DeriveSecretKey(derivation KeyDerivation, outIndex uint64, base SecretKey) (SecretKey, bool) {
	scalar := derivationScalar(derivation, outIndex)
	return ScalarAdd(scalar, base)
}

func (Ed25519Device) DerivePublicKey(derivation KeyDerivation, outIndex uint64, base PublicKey) (PublicKey, bool) {
	scalar := derivationScalar(derivation, outIndex)
	offset, ok := ScalarMultBase(scalar)
	if !ok {
		return PublicKey{}, false
	}
	return AddPublicKeys(offset, base)
}

func (Ed25519Device) DeriveSubaddressPublicKey(pub PublicKey, derivation KeyDerivation, outIndex uint64) (PublicKey, bool) {
	scalar := derivationScalar(derivation, outIndex)
	offset, ok := ScalarMultBase(scalar)
	if !ok {
		return PublicKey{}, false
	}
	return SubPublicKeys(pub, offset)
}

func (Ed25519Device) GetSubaddressSecretKey(viewSecret SecretKey, index SubaddressIndex) SecretKey {
	buf := make([]byte, 0, 32+len(subaddressDST)+8)
	buf = append(buf, viewSecret[:]...)
	buf = append(buf, subaddressDST...)
	buf = appendU32LE(buf, index.Major)
	buf = appendU32LE(buf, index.Minor)
	return HashToScalar(buf)
}

func appendU32LE(dst []byte, v uint32) []byte {
	return append(dst, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func (Ed25519Device) SecretKeyToPublicKey(sk SecretKey) (PublicKey, bool) {
	return ScalarMultBase(sk)
}

func (Ed25519Device) ScSecretAdd(a, b SecretKey) SecretKey {
	sum, ok := ScalarAdd(a, b)
	if !ok {
		return SecretKey{}
	}
	return sum
}

func (Ed25519Device) GenerateKeyImage(pub PublicKey, sk SecretKey) (KeyImage, bool) {
	hp := HashToPoint(pub[:])
	img, ok := ScalarMultKey(sk, hp)
	if !ok {
		return KeyImage{}, false
	}
	return KeyImage(img), true
}
