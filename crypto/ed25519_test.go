package crypto

import "testing"

func TestScalarMultBaseRoundTrip(t *testing.T) {
	var sk SecretKey
	sk[0] = 7
	pub, ok := ScalarMultBase(sk)
	if !ok {
		t.Fatalf("ScalarMultBase failed")
	}
	if !CheckPoint(pub) {
		t.Fatalf("derived point did not decode")
	}
}

func TestAddSubPublicKeysInverse(t *testing.T) {
	var a, b SecretKey
	a[0], b[0] = 3, 5
	pa, _ := ScalarMultBase(a)
	pb, _ := ScalarMultBase(b)

	sum, ok := AddPublicKeys(pa, pb)
	if !ok {
		t.Fatalf("AddPublicKeys failed")
	}
	back, ok := SubPublicKeys(sum, pb)
	if !ok {
		t.Fatalf("SubPublicKeys failed")
	}
	if back != pa {
		t.Fatalf("A+B-B != A")
	}
}

func TestAddPublicKeysDecodeError(t *testing.T) {
	var bad PublicKey
	for i := range bad {
		bad[i] = 0xff
	}
	good, _ := ScalarMultBase(SecretKey{1})
	if _, ok := AddPublicKeys(bad, good); ok {
		t.Fatalf("expected decode failure for malformed point")
	}
}

func TestHashToScalarDeterministic(t *testing.T) {
	a := HashToScalar([]byte("same input"))
	b := HashToScalar([]byte("same input"))
	if a != b {
		t.Fatalf("HashToScalar is not deterministic")
	}
}

func TestHashToPointOnCurve(t *testing.T) {
	p := HashToPoint([]byte("arbitrary bytes"))
	if !CheckPoint(p) {
		t.Fatalf("HashToPoint result did not decode to a valid point")
	}
}

func TestTreeHashSinglePowerOfTwoAndOdd(t *testing.T) {
	h := func(b byte) [32]byte {
		var out [32]byte
		out[0] = b
		return out
	}
	if got := TreeHash([][32]byte{h(1)}); got != h(1) {
		t.Fatalf("single-leaf tree hash must be the leaf itself")
	}
	// must not panic and must be deterministic for odd counts
	a := TreeHash([][32]byte{h(1), h(2), h(3)})
	b := TreeHash([][32]byte{h(1), h(2), h(3)})
	if a != b {
		t.Fatalf("TreeHash is not deterministic")
	}
	c := TreeHash([][32]byte{h(1), h(2), h(3), h(4)})
	if c == a {
		t.Fatalf("different leaf sets hashed to the same root")
	}
}

func TestInvEightTimesEightIsOne(t *testing.T) {
	inv := InvEight()
	var eight SecretKey
	eight[0] = 8
	product, ok := ScalarMultiply(inv, eight)
	if !ok {
		t.Fatalf("ScalarMultiply failed")
	}
	var one SecretKey
	one[0] = 1
	if product != one {
		t.Fatalf("inv_eight * 8 != 1 mod L")
	}
}
