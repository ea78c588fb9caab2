package primes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/avast/retry-go"

	"github.com/arvid220u/bigcrypt/arith"
	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/logging"
)

// DefaultRounds is the number of Miller-Rabin witnesses used by Generate.
const DefaultRounds = 100

// Options tunes GenerateWith. Zero values select the defaults.
type Options struct {
	// Rounds is the number of Miller-Rabin witnesses per candidate.
	Rounds int
	// MaxAttempts caps the number of candidates drawn before giving up with
	// cryptoerr.ErrExhaustedAttempts.
	MaxAttempts int
}

// DefaultMaxAttempts is the candidate cap used for a given bit length when
// Options.MaxAttempts is zero. Roughly one in 0.35*bits odd candidates is
// prime, so the cap is only reached by a broken random source.
func DefaultMaxAttempts(bits int) int {
	return 100*bits + 1000
}

func (o Options) withDefaults(bits int) Options {
	if o.Rounds <= 0 {
		o.Rounds = DefaultRounds
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts(bits)
	}
	return o
}

var errComposite = errors.New("candidate is composite")

// Generate returns a random odd probable prime drawn from [0, 2^bits).
//
// The top bit is not forced, so the result may have fewer than bits
// significant bits.
func Generate(random io.Reader, bits int) (*big.Int, error) {
	return GenerateWith(context.Background(), random, bits, Options{})
}

// GenerateWith is Generate with an explicit round count and attempt cap.
// It stops early if ctx is done.
func GenerateWith(ctx context.Context, random io.Reader, bits int, opts Options) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: cannot generate a %d bit prime", cryptoerr.ErrInvalidArgument, bits)
	}
	opts = opts.withDefaults(bits)

	var prime *big.Int
	attempts := 0
	err := retry.Do(
		func() error {
			attempts++
			candidate, err := arith.RandBits(random, bits)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			candidate.SetBit(candidate, 0, 1)
			ok, err := IsProbablyPrime(random, candidate, opts.Rounds)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if !ok {
				return errComposite
			}
			prime = candidate
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(opts.MaxAttempts)),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if errors.Is(err, errComposite) {
			return nil, fmt.Errorf("%w: no %d bit prime after %d candidates",
				cryptoerr.ErrExhaustedAttempts, bits, attempts)
		}
		return nil, fmt.Errorf("generating %d bit prime: %w", bits, err)
	}
	logging.DPrintf("primes: %d bit prime after %d candidates: %v", bits, attempts, prime)
	return prime, nil
}
