package crypto

// SecretKey is an Ed25519 scalar modulo the curve order, little-endian.
type SecretKey [32]byte

// PublicKey is a compressed Ed25519 (twisted-Edwards) curve point.
type PublicKey [32]byte

// KeyDerivation is D = a*R, compressed.
type KeyDerivation [32]byte

// KeyImage is I = x*Hp(P), compressed.
type KeyImage [32]byte

// NullSecretKey, NullPublicKey are the all-zero sentinels.
var (
	NullSecretKey SecretKey
	NullPublicKey PublicKey
)

// SubaddressIndex is the (major, minor) pair identifying a subaddress.
// (0,0) is the main address and carries no subaddress offset.
type SubaddressIndex struct {
	Major uint32
	Minor uint32
}

// IsZero reports whether idx is the main-address index (0,0).
func (idx SubaddressIndex) IsZero() bool {
	return idx.Major == 0 && idx.Minor == 0
}

// Zeroize overwrites sk in place. Callers hold secret material (view/spend
// secrets, ephemeral one-time secrets) only as long as needed and wipe it
// with this method when done.
func (sk *SecretKey) Zeroize() {
	for i := range sk {
		sk[i] = 0
	}
}
