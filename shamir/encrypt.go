package shamir

import (
	"fmt"
	"math/big"

	"github.com/arvid220u/bigcrypt/arith"
	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/logging"
	"github.com/arvid220u/bigcrypt/padding"
)

// Transform runs the full three-pass protocol between two parties holding
// secretA and secretB and returns all four stages. Both secrets must be
// coprime to p-1, otherwise cryptoerr.ErrDomain is returned. When p is prime
// and 0 <= message < p, C4 equals message.
func Transform(p, message, secretA, secretB *big.Int) (*Stages, error) {
	if p == nil || message == nil || secretA == nil || secretB == nil {
		return nil, fmt.Errorf("%w: p, message and both secrets are required", cryptoerr.ErrInvalidArgument)
	}
	if p.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("%w: modulus %v too small", cryptoerr.ErrInvalidArgument, p)
	}
	if message.Sign() < 0 || message.Cmp(p) >= 0 {
		return nil, fmt.Errorf("%w: message must be in [0, p)", cryptoerr.ErrInvalidArgument)
	}
	if err := arith.CheckExponent("secret A", secretA); err != nil {
		return nil, err
	}
	if err := arith.CheckExponent("secret B", secretB); err != nil {
		return nil, err
	}
	p1 := new(big.Int).Sub(p, one)
	invA, err := arith.Invert(secretA, p1)
	if err != nil {
		return nil, fmt.Errorf("secret A: %w", err)
	}
	invB, err := arith.Invert(secretB, p1)
	if err != nil {
		return nil, fmt.Errorf("secret B: %w", err)
	}

	s := &Stages{}
	s.C1 = arith.PowMod(message, secretA, p)
	s.C2 = arith.PowMod(s.C1, secretB, p)
	s.C3 = arith.PowMod(s.C2, invA, p)
	s.C4 = arith.PowMod(s.C3, invB, p)
	logging.DPrintf("shamir: stages for p=%v:\n%s", p, logging.Dump(s))
	return s, nil
}

// PrepareMsg prepares a []byte message for encryption
// plen = SystemKey.P.BitLen()
func PrepareMsg(msg []byte, plen int) (*big.Int, error) {
	return padding.Pad(msg, plen)
}

// Encrypt locks using privkey.E: result = message ^ privkey.E (mod p).
// prevC must be in [0, p).
func Encrypt(privkey *PrivateKey, prevC *big.Int) (*big.Int, error) {
	return pass(privkey.P, prevC, privkey.E, "E")
}

// Decrypt unlocks using privkey.D: result = ciphertext ^ privkey.D (mod p).
func Decrypt(privkey *PrivateKey, prevD *big.Int) (*big.Int, error) {
	return pass(privkey.P, prevD, privkey.D, "D")
}

func pass(p, x, exp *big.Int, name string) (*big.Int, error) {
	if x == nil || x.Sign() < 0 || x.Cmp(p) >= 0 {
		return nil, fmt.Errorf("%w: value must be in [0, p)", cryptoerr.ErrInvalidArgument)
	}
	if err := arith.CheckExponent(name, exp); err != nil {
		return nil, err
	}
	return arith.PowMod(x, exp, p), nil
}

// ExtractMsg extracts a message from fully decrypted
func ExtractMsg(D *big.Int) ([]byte, error) {
	return padding.Unpad(D)
}
