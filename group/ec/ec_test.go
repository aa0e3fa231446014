package ec

import (
	"testing"

	"github.com/decred/dcrec/secp256k1/v4"
)

func randomGenerator(t *testing.T) Element {
	t.Helper()
	var r secp256k1.ModNScalar
	var buf [32]byte
	buf[31] = 7 // fixed nonzero scalar keeps the test deterministic
	r.SetBytes(&buf)
	var p secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&r, &p)
	return Element{p: p}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	g := New()
	e := randomGenerator(t)
	decoded, err := g.DecodeElement(e.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if !decoded.Equal(e) {
		t.Fatal("decode(encode(e)) != e")
	}
}

func TestEncodingIsCompressed33Bytes(t *testing.T) {
	e := randomGenerator(t)
	if len(e.Encode()) != compressedSize {
		t.Fatalf("got %d byte encoding, want %d", len(e.Encode()), compressedSize)
	}
}

func TestComposeMatchesPointAddition(t *testing.T) {
	g := New()
	a := randomGenerator(t)

	// a == [7]G, so a + a == [14]G.
	fourteen := new(secp256k1.ModNScalar).SetInt(14)
	var want secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(fourteen, &want)

	sum := g.Compose(a, a)
	if !sum.Equal(Element{p: want}) {
		t.Fatal("Compose(a, a) != [14]G for a == [7]G")
	}
}

func TestScalarFromBytesReducesModN(t *testing.T) {
	g := New()
	order := g.Order()
	big := order.Bytes()
	s, err := g.ScalarFromBytes(big)
	if err != nil {
		t.Fatal(err)
	}
	// n mod n == 0
	zero, _ := g.ScalarFromBytes([]byte{0})
	if !s.Equal(zero) {
		t.Fatal("encoding of the group order did not reduce to zero")
	}
}

func TestModSubNeverPanics(t *testing.T) {
	g := New()
	a, err := g.RandomScalar()
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.RandomScalar()
	if err != nil {
		t.Fatal(err)
	}
	_ = g.ModSub(a, b)
	_ = g.ModSub(b, a)
}

func TestIsIdentity(t *testing.T) {
	zero := new(secp256k1.ModNScalar).SetInt(0)
	var inf secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(zero, &inf)
	if !IsIdentity(Element{p: inf}) {
		t.Fatal("[0]G should be the point at infinity")
	}
	if IsIdentity(randomGenerator(t)) {
		t.Fatal("a nonzero multiple of G should not be the point at infinity")
	}
}
