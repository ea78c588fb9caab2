// Package arith is the modular arithmetic used by every scheme: modular
// exponentiation, modular inverse, and uniform random integers drawn from a
// caller supplied io.Reader.
package arith

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/arvid220u/bigcrypt/cryptoerr"
)

var one = big.NewInt(1)

// PowMod returns base^exp mod m as a new integer. exp must be non-negative;
// callers taking exponents from outside check them with CheckExponent first.
func PowMod(base, exp, m *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, m)
}

// CheckExponent rejects a missing or negative exponent with
// cryptoerr.ErrInvalidArgument. name identifies the value in the error.
func CheckExponent(name string, exp *big.Int) error {
	if exp == nil {
		return fmt.Errorf("%w: %s is required", cryptoerr.ErrInvalidArgument, name)
	}
	if exp.Sign() < 0 {
		return fmt.Errorf("%w: %s %v is negative", cryptoerr.ErrInvalidArgument, name, exp)
	}
	return nil
}

// ExtendedGCD returns g = gcd(a, b) together with x, y such that ax + by = g.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)
	q := new(big.Int)
	tmp := new(big.Int)
	for r.Sign() != 0 {
		q.Quo(oldR, r)

		tmp.Mul(q, r)
		oldR, r = r, new(big.Int).Sub(oldR, tmp)

		tmp.Mul(q, s)
		oldS, s = s, new(big.Int).Sub(oldS, tmp)

		tmp.Mul(q, t)
		oldT, t = t, new(big.Int).Sub(oldT, tmp)
	}
	if oldR.Sign() < 0 {
		oldR.Neg(oldR)
		oldS.Neg(oldS)
		oldT.Neg(oldT)
	}
	return oldR, oldS, oldT
}

// Invert returns x in [0, m) such that a*x = 1 (mod m).
// It fails with cryptoerr.ErrDomain if gcd(a, m) != 1.
func Invert(a, m *big.Int) (*big.Int, error) {
	if m.Cmp(one) <= 0 {
		return nil, fmt.Errorf("%w: modulus %v must be greater than 1", cryptoerr.ErrDomain, m)
	}
	g, x, _ := ExtendedGCD(new(big.Int).Mod(a, m), m)
	if g.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: %v has no inverse mod %v (gcd %v)", cryptoerr.ErrDomain, a, m, g)
	}
	return x.Mod(x, m), nil
}

// GCD returns gcd(a, b).
func GCD(a, b *big.Int) *big.Int {
	g, _, _ := ExtendedGCD(a, b)
	return g
}

// RandBits returns a uniform integer in [0, 2^bits).
func RandBits(random io.Reader, bits int) (*big.Int, error) {
	if bits < 0 {
		return nil, fmt.Errorf("%w: negative bit length %d", cryptoerr.ErrInvalidArgument, bits)
	}
	if bits == 0 {
		return new(big.Int), nil
	}
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(random, buf); err != nil {
		return nil, fmt.Errorf("reading randomness: %w", err)
	}
	// clear the bits above the requested length in the most significant byte
	if excess := uint(len(buf)*8 - bits); excess > 0 {
		buf[0] &= byte(0xff >> excess)
	}
	return new(big.Int).SetBytes(buf), nil
}

// RandRange returns a uniform integer in [lo, hi], inclusive on both ends.
func RandRange(random io.Reader, lo, hi *big.Int) (*big.Int, error) {
	if lo.Cmp(hi) > 0 {
		return nil, fmt.Errorf("%w: empty range [%v, %v]", cryptoerr.ErrInvalidArgument, lo, hi)
	}
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, one) // number of values in range
	r, err := rand.Int(random, span)
	if err != nil {
		return nil, fmt.Errorf("reading randomness: %w", err)
	}
	return r.Add(r, lo), nil
}
