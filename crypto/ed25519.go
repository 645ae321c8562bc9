package crypto

import (
	"filippo.io/edwards25519"
)

// decodePoint decodes a compressed Ed25519 point, vartime (the CryptoNote
// wire format never needs constant-time decoding of public data).
func decodePoint(b [32]byte) (*edwards25519.Point, bool) {
	p, err := edwards25519.NewIdentityPoint().SetBytes(b[:])
	if err != nil {
		return nil, false
	}
	return p, true
}

func encodePoint(p *edwards25519.Point) [32]byte {
	var out [32]byte
	copy(out[:], p.Bytes())
	return out
}

func decodeScalar(b [32]byte) (*edwards25519.Scalar, bool) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		return nil, false
	}
	return s, true
}

func encodeScalar(s *edwards25519.Scalar) [32]byte {
	var out [32]byte
	copy(out[:], s.Bytes())
	return out
}

// HashToScalar is Hs: Keccak-256 the input, then reduce mod the group order L.
func HashToScalar(b []byte) SecretKey {
	h := CnFastHash(b)
	wide := make([]byte, 64)
	copy(wide, h[:])
	s := edwards25519.NewScalar()
	if _, err := s.SetUniformBytes(wide); err != nil {
		// SetUniformBytes only fails on a wrong-length input; 64 bytes is
		// always accepted.
		panic("crypto: SetUniformBytes rejected a 64-byte input")
	}
	return SecretKey(encodeScalar(s))
}

// HashToPoint is Hp: a try-and-increment hash onto the curve followed by
// cofactor clearing. This stands in for the reference implementation's
// dedicated Elligator-style construction (ge_fromfe_frombytes_vartime).
func HashToPoint(b []byte) PublicKey {
	h := CnFastHash(b)
	for i := 0; ; i++ {
		candidate := h
		candidate[31] &= 0x7f // clear the sign bit; try the low-order twist coset
		if p, ok := decodePoint(candidate); ok {
			cleared := edwards25519.NewIdentityPoint().MultByCofactor(p)
			return PublicKey(encodePoint(cleared))
		}
		next := CnFastHash(append(h[:], byte(i)))
		h = next
	}
}

// ScalarAdd computes a+b mod L.
func ScalarAdd(a, b SecretKey) (SecretKey, bool) {
	sa, ok := decodeScalar(a)
	if !ok {
		return SecretKey{}, false
	}
	sb, ok := decodeScalar(b)
	if !ok {
		return SecretKey{}, false
	}
	return SecretKey(encodeScalar(edwards25519.NewScalar().Add(sa, sb))), true
}

// ScalarSub computes a-b mod L.
func ScalarSub(a, b SecretKey) (SecretKey, bool) {
	sa, ok := decodeScalar(a)
	if !ok {
		return SecretKey{}, false
	}
	sb, ok := decodeScalar(b)
	if !ok {
		return SecretKey{}, false
	}
	return SecretKey(encodeScalar(edwards25519.NewScalar().Subtract(sa, sb))), true
}

// ScalarMultBase computes s*G.
func ScalarMultBase(s SecretKey) (PublicKey, bool) {
	ss, ok := decodeScalar(s)
	if !ok {
		return PublicKey{}, false
	}
	return PublicKey(encodePoint(edwards25519.NewIdentityPoint().ScalarBaseMult(ss))), true
}

// ScalarMultKey computes s*P.
func ScalarMultKey(s SecretKey, p PublicKey) (PublicKey, bool) {
	ss, ok := decodeScalar(s)
	if !ok {
		return PublicKey{}, false
	}
	pp, ok := decodePoint(p)
	if !ok {
		return PublicKey{}, false
	}
	return PublicKey(encodePoint(edwards25519.NewIdentityPoint().ScalarMult(ss, pp))), true
}

// AddPublicKeys computes A+B (point addition). The caller maps a decode
// failure to its own point-decode error case.
func AddPublicKeys(a, b PublicKey) (PublicKey, bool) {
	pa, ok := decodePoint(a)
	if !ok {
		return PublicKey{}, false
	}
	pb, ok := decodePoint(b)
	if !ok {
		return PublicKey{}, false
	}
	return PublicKey(encodePoint(edwards25519.NewIdentityPoint().Add(pa, pb))), true
}

// SubPublicKeys computes A-B.
func SubPublicKeys(a, b PublicKey) (PublicKey, bool) {
	pa, ok := decodePoint(a)
	if !ok {
		return PublicKey{}, false
	}
	pb, ok := decodePoint(b)
	if !ok {
		return PublicKey{}, false
	}
	return PublicKey(encodePoint(edwards25519.NewIdentityPoint().Subtract(pa, pb))), true
}

// CheckPoint reports whether b decodes to a valid curve point.
func CheckPoint(b PublicKey) bool {
	_, ok := decodePoint(b)
	return ok
}

// ScalarMultiply computes a*b mod L.
func ScalarMultiply(a, b SecretKey) (SecretKey, bool) {
	sa, ok := decodeScalar(a)
	if !ok {
		return SecretKey{}, false
	}
	sb, ok := decodeScalar(b)
	if !ok {
		return SecretKey{}, false
	}
	return SecretKey(encodeScalar(edwards25519.NewScalar().Multiply(sa, sb))), true
}

// InvEight returns the canonical scalar equal to the modular inverse of 8,
// used to reconstruct Bulletproof commitment masks (the reference
// implementation's INV_EIGHT constant).
func InvEight() SecretKey {
	eight := edwards25519.NewScalar()
	var eightBytes [32]byte
	eightBytes[0] = 8
	if _, err := eight.SetCanonicalBytes(eightBytes[:]); err != nil {
		panic("crypto: failed to encode scalar 8")
	}
	inv := edwards25519.NewScalar().Invert(eight)
	return SecretKey(encodeScalar(inv))
}
