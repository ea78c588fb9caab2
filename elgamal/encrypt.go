package elgamal

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/arvid220u/bigcrypt/arith"
	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/logging"
	"github.com/arvid220u/bigcrypt/padding"
	"github.com/arvid220u/bigcrypt/primes"
)

// PrepareMsg prepares a []byte message for encryption
// plen = PublicKey.P.BitLen()
func PrepareMsg(msg []byte, plen int) (*big.Int, error) {
	return padding.Pad(msg, plen)
}

// Encrypt encrypts m, which must be in [0, p), under pubkey with a fresh
// ephemeral k in [1, p-2]: C1 = g^k mod p, C2 = m * y^k mod p.
func Encrypt(random io.Reader, pubkey *PublicKey, m *big.Int) (*Ciphertext, error) {
	if m == nil || m.Sign() < 0 || m.Cmp(pubkey.P) >= 0 {
		return nil, fmt.Errorf("%w: message must be in [0, p)", cryptoerr.ErrInvalidArgument)
	}
	k, err := arith.RandRange(random, one, new(big.Int).Sub(pubkey.P, two))
	if err != nil {
		return nil, err
	}
	c2 := arith.PowMod(pubkey.Y, k, pubkey.P)
	c2.Mul(c2, m).Mod(c2, pubkey.P)
	return &Ciphertext{C1: arith.PowMod(pubkey.G, k, pubkey.P), C2: c2}, nil
}

// EncryptFresh is Encrypt for a caller without a key: it generates a new
// bitsp bit system and key pair, encrypts m under it, and returns the private
// key (which embeds the public key). The caller must keep the key to decrypt.
func EncryptFresh(random io.Reader, bitsp int, m *big.Int) (*Ciphertext, *PrivateKey, error) {
	return EncryptFreshWith(context.Background(), random, bitsp, m, primes.Options{})
}

// EncryptFreshWith is EncryptFresh with explicit prime search options.
func EncryptFreshWith(ctx context.Context, random io.Reader, bitsp int, m *big.Int, opts primes.Options) (*Ciphertext, *PrivateKey, error) {
	privkey, err := GenKeyWith(ctx, random, bitsp, opts)
	if err != nil {
		return nil, nil, err
	}
	logging.DPrintf("elgamal: fresh key p=%v g=%v y=%v", privkey.P, privkey.G, privkey.Y)
	ct, err := Encrypt(random, &privkey.PublicKey, m)
	if err != nil {
		return nil, nil, err
	}
	return ct, privkey, nil
}

// Decrypt recovers m = C2 / C1^x (mod p).
func Decrypt(privkey *PrivateKey, ct *Ciphertext) (*big.Int, error) {
	if ct == nil || ct.C1 == nil || ct.C2 == nil {
		return nil, fmt.Errorf("%w: ciphertext needs both C1 and C2", cryptoerr.ErrInvalidArgument)
	}
	if err := arith.CheckExponent("private key", privkey.X); err != nil {
		return nil, err
	}
	s := arith.PowMod(ct.C1, privkey.X, privkey.P)
	sinv, err := arith.Invert(s, privkey.P)
	if err != nil {
		return nil, fmt.Errorf("decrypt received invalid ciphertext or key: %w", err)
	}
	m := new(big.Int).Mul(ct.C2, sinv)
	return m.Mod(m, privkey.P), nil
}

// ExtractMsg extracts a message from fully decrypted
func ExtractMsg(D *big.Int) ([]byte, error) {
	return padding.Unpad(D)
}
