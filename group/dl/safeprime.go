package dl

import (
	"crypto/rand"
	"math/big"
)

// millerRabinRounds matches the conservative round count big.Int's own
// ProbablyPrime documentation recommends for cryptographic use.
const millerRabinRounds = 20

// GenerateSafePrime draws a safe prime p of bitLength+1 bits such that
// q = (p-1)/2 is itself prime and has exactly bitLength bits, per spec
// step 4.2.1. It retries until both primality checks pass.
func GenerateSafePrime(bitLength int) (p, q *big.Int, err error) {
	for {
		q, err = rand.Prime(rand.Reader, bitLength)
		if err != nil {
			return nil, nil, err
		}
		p = new(big.Int).Lsh(q, 1)
		p.Add(p, one)
		if p.ProbablyPrime(millerRabinRounds) {
			return p, q, nil
		}
	}
}

// GenerateGenerator draws a nontrivial element of the order-q subgroup of
// Z_p^*, per spec step 4.2.2: sample x in [0, p), set y = x^2 mod p, and
// accept iff y^q == 1 (mod p) and y != 1.
func GenerateGenerator(p, q *big.Int) (*big.Int, error) {
	for {
		x, err := rand.Int(rand.Reader, p)
		if err != nil {
			return nil, err
		}
		y := new(big.Int).Mul(x, x)
		y.Mod(y, p)
		if IsGenerator(y, q, p) {
			return y, nil
		}
	}
}
