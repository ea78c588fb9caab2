package diffiehellman

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/google/uuid"

	"github.com/arvid220u/bigcrypt/arith"
	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/logging"
	"github.com/arvid220u/bigcrypt/primes"
)

// GenSysKey generates q, p = 2q + 1 and g to base the exchange off of.
// q is a bitsq bit prime (top bit not forced) such that p is prime too, and g
// is drawn from [2, p-2] until g^q != 1 (mod p), so g generates the whole
// group of order 2q.
func GenSysKey(random io.Reader, bitsq int) (*SystemKey, error) {
	return GenSysKeyWith(context.Background(), random, bitsq, primes.Options{})
}

// GenSysKeyWith is GenSysKey with explicit prime search options.
// opts.MaxAttempts also caps the number of q candidates tried.
func GenSysKeyWith(ctx context.Context, random io.Reader, bitsq int, opts primes.Options) (*SystemKey, error) {
	if bitsq < 3 {
		return nil, fmt.Errorf("%w: q needs at least 3 bits, got %d", cryptoerr.ErrInvalidArgument, bitsq)
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = primes.DefaultMaxAttempts(bitsq)
	}
	rounds := opts.Rounds
	if rounds <= 0 {
		rounds = primes.DefaultRounds
	}

	var q, p *big.Int
	for attempt := 1; ; attempt++ {
		if attempt > maxAttempts {
			return nil, fmt.Errorf("%w: no %d bit safe prime after %d candidates",
				cryptoerr.ErrExhaustedAttempts, bitsq, maxAttempts)
		}
		var err error
		q, err = primes.GenerateWith(ctx, random, bitsq, opts)
		if err != nil {
			return nil, err
		}
		p = modulus(q)
		isprimep, err := primes.IsProbablyPrime(random, p, rounds)
		if err != nil {
			return nil, err
		}
		if isprimep {
			logging.DPrintf("diffiehellman: safe prime after %d q candidates", attempt)
			break
		}
	}

	pm2 := new(big.Int).Sub(p, two)
	for {
		g, err := arith.RandRange(random, two, pm2)
		if err != nil {
			return nil, err
		}
		// in a safe prime group g^q is 1 or p-1; only the latter generates
		if arith.PowMod(g, q, p).Cmp(one) != 0 {
			return &SystemKey{P: p, Q: q, G: g}, nil
		}
	}
}

// GenSecret draws a private exponent from [2, q-1].
func GenSecret(random io.Reader, syskey *SystemKey) (*big.Int, error) {
	return arith.RandRange(random, two, new(big.Int).Sub(syskey.Q, one))
}

// NewParticipant creates a participant with a fresh identifier and secret.
func NewParticipant(random io.Reader, syskey *SystemKey) (Participant, error) {
	id, err := uuid.NewRandomFromReader(random)
	if err != nil {
		return Participant{}, err
	}
	secret, err := GenSecret(random, syskey)
	if err != nil {
		return Participant{}, err
	}
	return Participant{Id: id, Secret: secret}, nil
}
