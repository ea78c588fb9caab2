// Package primes implements the Miller-Rabin probable prime test and the
// random prime search every key generator in bigcrypt is built on.
package primes

import (
	"io"
	"math/big"

	"github.com/arvid220u/bigcrypt/arith"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// IsProbablyPrime runs rounds independent Miller-Rabin witnesses against n,
// drawing each witness uniformly from [2, n-2] using random. A composite n is
// reported prime with probability at most 4^(-rounds). rounds < 1 is treated
// as 1. The only error is a failure to read from random.
func IsProbablyPrime(random io.Reader, n *big.Int, rounds int) (bool, error) {
	if n.Cmp(one) <= 0 {
		return false, nil
	}
	if n.Cmp(three) <= 0 {
		return true, nil
	}
	if n.Bit(0) == 0 {
		return false, nil
	}
	if rounds < 1 {
		rounds = 1
	}

	nm1 := new(big.Int).Sub(n, one)
	// n - 1 = 2^r * d with d odd
	r := nm1.TrailingZeroBits()
	d := new(big.Int).Rsh(nm1, r)
	hi := new(big.Int).Sub(n, two)

	for i := 0; i < rounds; i++ {
		a, err := arith.RandRange(random, two, hi)
		if err != nil {
			return false, err
		}
		if !witnessPasses(a, d, n, nm1, r) {
			return false, nil
		}
	}
	return true, nil
}

// witnessPasses reports whether a fails to prove n composite.
func witnessPasses(a, d, n, nm1 *big.Int, r uint) bool {
	x := arith.PowMod(a, d, n)
	if x.Cmp(one) == 0 || x.Cmp(nm1) == 0 {
		return true
	}
	for j := uint(1); j < r; j++ {
		x.Mul(x, x).Mod(x, n)
		if x.Cmp(nm1) == 0 {
			return true
		}
	}
	return false
}
