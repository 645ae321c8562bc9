// Package crypto is the device/primitive layer: Ed25519 scalar and point
// arithmetic, Keccak hashing, and the CryptoNote tree-hash, all behind a
// narrow Device interface so hardware wallets can intercept signing
// operations. The consensus core never stores a Device across calls.
package crypto

// Device is the capability interface consumed by stealth-address derivation
// and key-image generation. Every operation except GetSubaddressSecretKey and
// ScSecretAdd reports success via the trailing bool: recoverable failures (a
// malformed point, an out-of-range scalar) return false rather than panic.
// GetSubaddressSecretKey and ScSecretAdd return a bare SecretKey and report
// no failure; Ed25519Device's ScSecretAdd returns the zero scalar when an
// operand is not a canonical scalar.
type Device interface {
	// GenerateKeyDerivation computes D = viewSecret * pub.
	GenerateKeyDerivation(pub PublicKey, viewSecret SecretKey) (KeyDerivation, bool)

	// DeriveSecretKey computes Hs(derivation || varint(outIndex)) + base.
	DeriveSecretKey(derivation KeyDerivation, outIndex uint64, base SecretKey) (SecretKey, bool)

	// DerivePublicKey computes Hs(derivation || varint(outIndex))*G + base.
	DerivePublicKey(derivation KeyDerivation, outIndex uint64, base PublicKey) (PublicKey, bool)

	// DeriveSubaddressPublicKey computes pub - Hs(derivation||varint(outIndex))*G.
	DeriveSubaddressPublicKey(pub PublicKey, derivation KeyDerivation, outIndex uint64) (PublicKey, bool)

	// GetSubaddressSecretKey computes Hs(viewSecret || "SubAddr\x00" || major || minor).
	GetSubaddressSecretKey(viewSecret SecretKey, index SubaddressIndex) SecretKey

	// SecretKeyToPublicKey computes sk*G.
	SecretKeyToPublicKey(sk SecretKey) (PublicKey, bool)

	// ScSecretAdd computes a+b mod L.
	ScSecretAdd(a, b SecretKey) SecretKey

	// GenerateKeyImage computes sk * Hp(pub).
	GenerateKeyImage(pub PublicKey, sk SecretKey) (KeyImage, bool)
}
