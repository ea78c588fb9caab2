package shamir

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/arvid220u/bigcrypt/arith"
	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/primes"
)

// GenSysKey generates the prime p to base the system off of.
// Note that the size of p is the limit on message size.
func GenSysKey(random io.Reader, bitsp int) (*SystemKey, error) {
	return GenSysKeyWith(context.Background(), random, bitsp, primes.Options{})
}

// GenSysKeyWith is GenSysKey with explicit prime search options.
func GenSysKeyWith(ctx context.Context, random io.Reader, bitsp int, opts primes.Options) (*SystemKey, error) {
	if bitsp < 3 {
		return nil, fmt.Errorf("%w: p needs at least 3 bits, got %d", cryptoerr.ErrInvalidArgument, bitsp)
	}
	for {
		p, err := primes.GenerateWith(ctx, random, bitsp, opts)
		if err != nil {
			return nil, err
		}
		// p = 3 leaves no exponent besides 1 to pick from
		if p.BitLen() > 2 {
			return &SystemKey{P: p}, nil
		}
	}
}

// GenUserKey generates a user's key pair for the given system:
// random 0 < e < p-1 with gcd(e, p-1) = 1, and d such that e*d = 1 (mod p-1).
func GenUserKey(random io.Reader, syskey *SystemKey) (*PrivateKey, error) {
	p1 := new(big.Int).Sub(syskey.P, one)
	hi := new(big.Int).Sub(p1, one)
	if hi.Cmp(one) < 0 {
		return nil, fmt.Errorf("%w: modulus %v too small", cryptoerr.ErrInvalidArgument, syskey.P)
	}
	for {
		e, err := arith.RandRange(random, one, hi)
		if err != nil {
			return nil, err
		}
		d, err := arith.Invert(e, p1)
		if err != nil {
			continue // gcd(e, p-1) != 1, draw again
		}
		return &PrivateKey{SystemKey: *syskey, E: e, D: d}, nil
	}
}
