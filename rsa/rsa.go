// Package rsa implements textbook RSA on top of the bigcrypt prime generator.
// There is no padding; messages are integers in [0, n).
package rsa

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/arvid220u/bigcrypt/arith"
	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/logging"
	"github.com/arvid220u/bigcrypt/primes"
)

type PublicKey struct {
	N, E *big.Int
}

type PrivateKey struct {
	PublicKey
	D    *big.Int // D*E = 1 (mod Phi)
	P, Q *big.Int
	Phi  *big.Int
}

// Mode names one of the three RSA operations.
type Mode string

const (
	KeyGenMode  Mode = "keygen"
	EncryptMode Mode = "encrypt"
	DecryptMode Mode = "decrypt"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case KeyGenMode, EncryptMode, DecryptMode:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown rsa mode %q, use 'keygen', 'encrypt' or 'decrypt'", cryptoerr.ErrInvalidArgument, s)
}

var one = big.NewInt(1)

// GenKey generates a key pair from two bits bit primes p and q.
//
// p and q are not checked for distinctness. e is a bits bit prime below
// phi = (p-1)(q-1). If e happens to divide phi no inverse exists and
// cryptoerr.ErrDomain is returned; callers may simply retry.
func GenKey(random io.Reader, bits int) (*PrivateKey, error) {
	return GenKeyWith(context.Background(), random, bits, primes.Options{})
}

// GenKeyWith is GenKey with explicit prime search options. opts.MaxAttempts
// also caps the number of public exponent candidates.
func GenKeyWith(ctx context.Context, random io.Reader, bits int, opts primes.Options) (*PrivateKey, error) {
	p, err := primes.GenerateWith(ctx, random, bits, opts)
	if err != nil {
		return nil, err
	}
	q, err := primes.GenerateWith(ctx, random, bits, opts)
	if err != nil {
		return nil, err
	}
	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
	if phi.Cmp(big.NewInt(2)) <= 0 {
		// both primes tiny, no e with 1 < e < phi exists
		return nil, fmt.Errorf("%w: phi(%v) = %v leaves no public exponent", cryptoerr.ErrInvalidArgument, n, phi)
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = primes.DefaultMaxAttempts(bits)
	}
	e := new(big.Int).Set(phi)
	for attempt := 1; e.Cmp(phi) >= 0; attempt++ {
		if attempt > maxAttempts {
			return nil, fmt.Errorf("%w: no public exponent below phi after %d primes", cryptoerr.ErrExhaustedAttempts, attempt-1)
		}
		e, err = primes.GenerateWith(ctx, random, bits, opts)
		if err != nil {
			return nil, err
		}
	}

	d, err := arith.Invert(e, phi)
	if err != nil {
		return nil, fmt.Errorf("public exponent %v not coprime with phi: %w", e, err)
	}
	logging.DPrintf("rsa: generated key n=%v e=%v", n, e)
	return &PrivateKey{
		PublicKey: PublicKey{N: n, E: e},
		D:         d,
		P:         p,
		Q:         q,
		Phi:       phi,
	}, nil
}

// Encrypt returns m^e mod n. m must be in [0, n).
func Encrypt(pubkey *PublicKey, m *big.Int) (*big.Int, error) {
	if err := checkRange(m, pubkey.N); err != nil {
		return nil, err
	}
	if err := arith.CheckExponent("public exponent", pubkey.E); err != nil {
		return nil, err
	}
	return arith.PowMod(m, pubkey.E, pubkey.N), nil
}

// Decrypt returns c^d mod n. c must be in [0, n).
func Decrypt(privkey *PrivateKey, c *big.Int) (*big.Int, error) {
	if err := checkRange(c, privkey.N); err != nil {
		return nil, err
	}
	if err := arith.CheckExponent("private exponent", privkey.D); err != nil {
		return nil, err
	}
	return arith.PowMod(c, privkey.D, privkey.N), nil
}

func checkRange(x, n *big.Int) error {
	if x == nil || n == nil || x.Sign() < 0 || x.Cmp(n) >= 0 {
		return fmt.Errorf("%w: value must be in [0, n)", cryptoerr.ErrInvalidArgument)
	}
	return nil
}
