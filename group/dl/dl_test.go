package dl

import (
	"math/big"
	"testing"
)

// small, fixed-for-tests safe prime: p = 23, q = 11 (p = 2q+1).
// 11 is too small for real use but lets the arithmetic tests run fast and
// deterministically; bit-length-sensitive behavior is covered separately
// by TestGenerateSafePrime.
func smallGroup(t *testing.T) (*Group, *big.Int) {
	t.Helper()
	p := big.NewInt(23)
	q := big.NewInt(11)
	return New(p, q), q
}

func TestGenerateSafePrime(t *testing.T) {
	p, q, err := GenerateSafePrime(64)
	if err != nil {
		t.Fatal(err)
	}
	if !q.ProbablyPrime(20) {
		t.Fatal("q is not prime")
	}
	if !p.ProbablyPrime(20) {
		t.Fatal("p is not prime")
	}
	want := new(big.Int).Lsh(q, 1)
	want.Add(want, one)
	if p.Cmp(want) != 0 {
		t.Fatalf("p != 2q+1: p=%v want=%v", p, want)
	}
	if q.BitLen() != 64 {
		t.Fatalf("q has %d bits, want 64", q.BitLen())
	}
}

func TestGenerateGenerator(t *testing.T) {
	p, q, err := GenerateSafePrime(64)
	if err != nil {
		t.Fatal(err)
	}
	g, err := GenerateGenerator(p, q)
	if err != nil {
		t.Fatal(err)
	}
	if !IsGenerator(g, q, p) {
		t.Fatal("generated value is not a generator of the order-q subgroup")
	}
}

func TestRandomScalarRange(t *testing.T) {
	g, q := smallGroup(t)
	for i := 0; i < 200; i++ {
		s, err := g.RandomScalar()
		if err != nil {
			t.Fatal(err)
		}
		v := s.(Scalar).v
		if v.Sign() < 0 || v.Cmp(q) >= 0 {
			t.Fatalf("scalar %v out of range [0, %v)", v, q)
		}
	}
}

func TestModSubAlwaysNonnegative(t *testing.T) {
	g, q := smallGroup(t)
	a := Scalar{v: big.NewInt(2)}
	b := Scalar{v: big.NewInt(9)}
	r := g.ModSub(a, b).(Scalar)
	if r.v.Sign() < 0 {
		t.Fatalf("ModSub produced negative result: %v", r.v)
	}
	want := new(big.Int).Sub(big.NewInt(2), big.NewInt(9))
	want.Mod(want, q)
	if want.Sign() < 0 {
		want.Add(want, q)
	}
	if r.v.Cmp(want) != 0 {
		t.Fatalf("ModSub(2,9) = %v, want %v", r.v, want)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p, q, err := GenerateSafePrime(64)
	if err != nil {
		t.Fatal(err)
	}
	g := New(p, q)
	genVal, err := GenerateGenerator(p, q)
	if err != nil {
		t.Fatal(err)
	}
	elem := Element{v: genVal}

	decoded, err := g.DecodeElement(elem.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if !decoded.Equal(elem) {
		t.Fatal("decode(encode(e)) != e")
	}
}

func TestDecodeRejectsNonSubgroupElement(t *testing.T) {
	p := big.NewInt(23)
	q := big.NewInt(11)
	g := New(p, q)
	// 7 is a primitive root mod 23 of the full group of order 22, not a
	// member of the order-11 subgroup (7^11 mod 23 != 1).
	_, err := g.DecodeElement(big.NewInt(7).Bytes())
	if err == nil {
		t.Fatal("expected decode of a non-subgroup element to fail")
	}
}

func TestIsGeneratorRejectsIdentity(t *testing.T) {
	if IsGenerator(big.NewInt(1), big.NewInt(11), big.NewInt(23)) {
		t.Fatal("identity must not be accepted as a generator")
	}
}
