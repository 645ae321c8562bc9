package crypto

import "golang.org/x/crypto/sha3"

// CnFastHash is cn_fast_hash: the CryptoNote Keccak-256 variant (legacy
// padding, not NIST SHA3-256).
func CnFastHash(b []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(b)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// TreeHash is tree_hash: the CryptoNote Merkle root over a leaf-hash list,
// using the canonical power-of-two folding rule (Monero's tree-hash.c). An
// empty list returns the all-zero hash.
func TreeHash(hashes [][32]byte) [32]byte {
	switch len(hashes) {
	case 0:
		return [32]byte{}
	case 1:
		return hashes[0]
	case 2:
		return CnFastHash(append(append([]byte{}, hashes[0][:]...), hashes[1][:]...))
	}

	count := len(hashes)
	cnt := 1
	for cnt*2 <= count {
		cnt *= 2
	}

	ints := make([][32]byte, cnt)
	overhang := 2*cnt - count
	copy(ints, hashes[:overhang])
	for i, j := overhang, overhang; j < cnt; i, j = i+2, j+1 {
		ints[j] = CnFastHash(append(append([]byte{}, hashes[i][:]...), hashes[i+1][:]...))
	}

	for cnt > 2 {
		cnt >>= 1
		for i, j := 0, 0; j < cnt; i, j = i+2, j+1 {
			ints[j] = CnFastHash(append(append([]byte{}, ints[i][:]...), ints[i+1][:]...))
		}
	}

	return CnFastHash(append(append([]byte{}, ints[0][:]...), ints[1][:]...))
}
