package elgamal

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/arvid220u/bigcrypt/arith"
	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/primes"
)

// GenSysKey generates p and g to base the system off of.
// The number of bits in p limits the max size of a message.
func GenSysKey(random io.Reader, bitsp int) (*SystemKey, error) {
	return GenSysKeyWith(context.Background(), random, bitsp, primes.Options{})
}

// GenSysKeyWith is GenSysKey with explicit prime search options.
func GenSysKeyWith(ctx context.Context, random io.Reader, bitsp int, opts primes.Options) (*SystemKey, error) {
	if bitsp < 3 {
		return nil, fmt.Errorf("%w: p needs at least 3 bits, got %d", cryptoerr.ErrInvalidArgument, bitsp)
	}
	var p *big.Int
	for p == nil || p.BitLen() < 3 { // p in {2, 3} leaves no room for g
		var err error
		p, err = primes.GenerateWith(ctx, random, bitsp, opts)
		if err != nil {
			return nil, err
		}
	}
	g, err := arith.RandRange(random, two, new(big.Int).Sub(p, two)) // no primitive root check
	if err != nil {
		return nil, err
	}
	return &SystemKey{P: p, G: g}, nil
}

// GenUserKey generates a user's key pair for the given p, g.
func GenUserKey(random io.Reader, syskey *SystemKey) (*PrivateKey, error) {
	x, err := arith.RandRange(random, two, new(big.Int).Sub(syskey.P, two)) // random 2 <= x <= P - 2
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		PublicKey: PublicKey{
			P: syskey.P, G: syskey.G,
			Y: arith.PowMod(syskey.G, x, syskey.P), // y = g^x mod p
		},
		X: x,
	}, nil
}

// GenKey generates a fresh system and user key in one go.
func GenKey(random io.Reader, bitsp int) (*PrivateKey, error) {
	return GenKeyWith(context.Background(), random, bitsp, primes.Options{})
}

// GenKeyWith is GenKey with explicit prime search options.
func GenKeyWith(ctx context.Context, random io.Reader, bitsp int, opts primes.Options) (*PrivateKey, error) {
	syskey, err := GenSysKeyWith(ctx, random, bitsp, opts)
	if err != nil {
		return nil, err
	}
	return GenUserKey(random, syskey)
}
