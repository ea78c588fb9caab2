package rsa

import (
	"context"
	"errors"
	"io"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvid220u/bigcrypt/arith"
	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/primes"
)

// genKey retries the rare case where e divides phi.
func genKey(t *testing.T, random io.Reader, bits int) *PrivateKey {
	t.Helper()
	for i := 0; i < 10; i++ {
		k, err := GenKey(random, bits)
		if errors.Is(err, cryptoerr.ErrDomain) {
			continue
		}
		require.NoError(t, err)
		return k
	}
	t.Fatalf("no usable %d bit key after 10 tries", bits)
	return nil
}

func TestEncryptDecrypt42(t *testing.T) {
	random := mrand.New(mrand.NewSource(12))
	key := genKey(t, random, 64)

	c, err := Encrypt(&key.PublicKey, big.NewInt(42))
	require.NoError(t, err)
	m, err := Decrypt(key, c)
	require.NoError(t, err)
	assert.Equal(t, int64(42), m.Int64())
}

func TestKeyInvariants(t *testing.T) {
	random := mrand.New(mrand.NewSource(13))
	for i := 0; i < 5; i++ {
		key := genKey(t, random, 64)

		assert.Equal(t, 0, new(big.Int).Mul(key.P, key.Q).Cmp(key.N))
		phi := new(big.Int).Mul(new(big.Int).Sub(key.P, one), new(big.Int).Sub(key.Q, one))
		assert.Equal(t, 0, phi.Cmp(key.Phi))
		assert.Equal(t, -1, key.E.Cmp(phi), "e must be below phi")
		assert.Equal(t, int64(1), arith.GCD(key.E, phi).Int64())

		ed := new(big.Int).Mul(key.E, key.D)
		assert.Equal(t, int64(1), ed.Mod(ed, phi).Int64())

		ok, err := primes.IsProbablyPrime(random, key.E, 40)
		require.NoError(t, err)
		assert.True(t, ok, "e is drawn as a prime")
	}
}

func TestRoundTripRandomMessages(t *testing.T) {
	random := mrand.New(mrand.NewSource(14))
	for i := 0; i < 5; i++ {
		key := genKey(t, random, 128)
		if key.P.Cmp(key.Q) == 0 {
			continue
		}
		nm1 := new(big.Int).Sub(key.N, one)
		for _, m := range []*big.Int{big.NewInt(0), big.NewInt(1), nm1} {
			c, err := Encrypt(&key.PublicKey, m)
			require.NoError(t, err)
			out, err := Decrypt(key, c)
			require.NoError(t, err)
			assert.Equal(t, 0, m.Cmp(out))
		}
		for j := 0; j < 20; j++ {
			m, err := arith.RandRange(random, big.NewInt(0), nm1)
			require.NoError(t, err)
			c, err := Encrypt(&key.PublicKey, m)
			require.NoError(t, err)
			out, err := Decrypt(key, c)
			require.NoError(t, err)
			assert.Equal(t, 0, m.Cmp(out))
		}
	}
}

func TestRejectsOutOfRange(t *testing.T) {
	key := genKey(t, mrand.New(mrand.NewSource(15)), 64)
	_, err := Encrypt(&key.PublicKey, key.N)
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
	_, err = Decrypt(key, big.NewInt(-5))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"keygen": KeyGenMode, "ENCRYPT": EncryptMode, "decrypt": DecryptMode} {
		m, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, m)
	}
	_, err := ParseMode("sign")
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

func TestGenKeyWithHonorsAttemptCap(t *testing.T) {
	_, err := GenKeyWith(context.Background(), zeroReader{}, 64, primes.Options{MaxAttempts: 1})
	assert.ErrorIs(t, err, cryptoerr.ErrExhaustedAttempts)
}

func TestGenKeyWithCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := GenKeyWith(ctx, zeroReader{}, 64, primes.Options{MaxAttempts: 1000})
	assert.Error(t, err)
}

func TestGenKeyWithRounds(t *testing.T) {
	random := mrand.New(mrand.NewSource(13))
	var key *PrivateKey
	for i := 0; i < 10 && key == nil; i++ {
		k, err := GenKeyWith(context.Background(), random, 64, primes.Options{Rounds: 8})
		if errors.Is(err, cryptoerr.ErrDomain) {
			continue
		}
		require.NoError(t, err)
		key = k
	}
	require.NotNil(t, key)
	c, err := Encrypt(&key.PublicKey, big.NewInt(42))
	require.NoError(t, err)
	m, err := Decrypt(key, c)
	require.NoError(t, err)
	assert.Equal(t, int64(42), m.Int64())
}

func TestRejectsNegativeExponent(t *testing.T) {
	// 0 has no inverse mod 33, so 0^-3 is undefined
	_, err := Encrypt(&PublicKey{N: big.NewInt(33), E: big.NewInt(-3)}, big.NewInt(0))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)

	_, err = Decrypt(&PrivateKey{PublicKey: PublicKey{N: big.NewInt(33)}, D: big.NewInt(-7)}, big.NewInt(0))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)

	_, err = Decrypt(&PrivateKey{PublicKey: PublicKey{N: big.NewInt(33)}}, big.NewInt(4))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
}
