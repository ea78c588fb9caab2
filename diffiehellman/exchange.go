package diffiehellman

import (
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/crypto/hkdf"

	"github.com/arvid220u/bigcrypt/arith"
	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/logging"
)

// ExchangeKeys runs the exchange for the given secrets over p = 2q + 1.
//
// Each participant i publishes V[i] = g^secrets[i] mod p and is paired with
// the public value at the mirrored index, so its session key is
// K[i] = V[N-1-i]^secrets[i] mod p. For two participants K[0] == K[1].
//
// Returns cryptoerr.ErrProtocolRejected if g^q = 1 (mod p).
func ExchangeKeys(g, q *big.Int, secrets []*big.Int) ([]*big.Int, error) {
	if g == nil || q == nil {
		return nil, fmt.Errorf("%w: generator and q are required", cryptoerr.ErrInvalidArgument)
	}
	if q.Sign() <= 0 {
		return nil, fmt.Errorf("%w: q %v must be positive", cryptoerr.ErrInvalidArgument, q)
	}
	for i, s := range secrets {
		if err := arith.CheckExponent(fmt.Sprintf("secret %d", i), s); err != nil {
			return nil, err
		}
	}
	p := modulus(q)
	if arith.PowMod(g, q, p).Cmp(one) == 0 {
		return nil, fmt.Errorf("%w: generator %v has order dividing q mod %v", cryptoerr.ErrProtocolRejected, g, p)
	}

	publics := lo.Map(secrets, func(s *big.Int, _ int) *big.Int {
		return arith.PowMod(g, s, p)
	})
	keys := lo.Map(secrets, func(s *big.Int, i int) *big.Int {
		return arith.PowMod(publics[len(publics)-1-i], s, p)
	})
	logging.DPrintf("diffiehellman: p=%v public values:\n%s", p, logging.Dump(publics))
	return keys, nil
}

// Exchange is ExchangeKeys for identified participants. Identifiers must be
// unique; the result is in participant order.
func Exchange(g, q *big.Int, participants []Participant) ([]SessionKey, error) {
	if dups := lo.FindDuplicatesBy(participants, func(p Participant) uuid.UUID { return p.Id }); len(dups) > 0 {
		return nil, fmt.Errorf("%w: participant %v appears more than once", cryptoerr.ErrInvalidArgument, dups[0].Id)
	}
	secrets := lo.Map(participants, func(p Participant, _ int) *big.Int { return p.Secret })
	keys, err := ExchangeKeys(g, q, secrets)
	if err != nil {
		return nil, err
	}
	return lo.Map(participants, func(p Participant, i int) SessionKey {
		return SessionKey{Id: p.Id, Key: keys[i]}
	}), nil
}

// DeriveKey stretches a session key into length bytes of symmetric key
// material with HKDF-SHA256. info binds the output to a context.
func DeriveKey(sessionKey *big.Int, info []byte, length int) ([]byte, error) {
	if sessionKey == nil || length <= 0 {
		return nil, fmt.Errorf("%w: need a session key and a positive length", cryptoerr.ErrInvalidArgument)
	}
	out := make([]byte, length)
	r := hkdf.New(sha256.New, sessionKey.Bytes(), nil, info)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	return out, nil
}
