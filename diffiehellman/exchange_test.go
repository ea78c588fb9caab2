package diffiehellman

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvid220u/bigcrypt/arith"
	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/primes"
)

func ints(xs ...int64) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = big.NewInt(x)
	}
	return out
}

func TestTwoPartyKnownValues(t *testing.T) {
	// q = 11, p = 23, 5 is a primitive root mod 23
	keys, err := ExchangeKeys(big.NewInt(5), big.NewInt(11), ints(6, 15))
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, int64(2), keys[0].Int64())
	assert.Equal(t, int64(2), keys[1].Int64())
}

func TestRejectsDegenerateGenerator(t *testing.T) {
	// 2 is a quadratic residue mod 23, so 2^11 = 1
	_, err := ExchangeKeys(big.NewInt(2), big.NewInt(11), ints(6, 15))
	assert.ErrorIs(t, err, cryptoerr.ErrProtocolRejected)

	_, err = ExchangeKeys(big.NewInt(1), big.NewInt(11), ints(3, 4))
	assert.ErrorIs(t, err, cryptoerr.ErrProtocolRejected)
}

func TestInvalidArguments(t *testing.T) {
	_, err := ExchangeKeys(nil, big.NewInt(11), ints(1, 2))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)

	_, err = ExchangeKeys(big.NewInt(5), big.NewInt(11), []*big.Int{big.NewInt(1), nil})
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
}

func TestRejectsNegativeSecret(t *testing.T) {
	// g = 0 passes the order check, and 0^-1 has no value mod 23
	_, err := ExchangeKeys(big.NewInt(0), big.NewInt(11), ints(-1, 3))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)

	_, err = ExchangeKeys(big.NewInt(5), big.NewInt(-11), ints(6, 15))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
}

func TestEmptyExchange(t *testing.T) {
	keys, err := ExchangeKeys(big.NewInt(5), big.NewInt(11), nil)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMirroredPairing(t *testing.T) {
	g, q := big.NewInt(5), big.NewInt(11)
	p := big.NewInt(23)
	secrets := ints(3, 7, 9)
	keys, err := ExchangeKeys(g, q, secrets)
	require.NoError(t, err)
	require.Len(t, keys, 3)

	for i, s := range secrets {
		partner := arith.PowMod(g, secrets[len(secrets)-1-i], p)
		want := arith.PowMod(partner, s, p)
		assert.Equal(t, 0, want.Cmp(keys[i]), "participant %d", i)
	}
	// the outer pair agrees; the middle participant pairs with itself
	assert.Equal(t, 0, keys[0].Cmp(keys[2]))
	assert.Equal(t, 0, keys[1].Cmp(arith.PowMod(g, big.NewInt(49), p)))
}

func TestTwoPartyGenerated(t *testing.T) {
	random := mrand.New(mrand.NewSource(3))
	for i := 0; i < 5; i++ {
		sys, err := GenSysKey(random, 64)
		require.NoError(t, err)

		ok, err := primes.IsProbablyPrime(rand.Reader, sys.Q, 40)
		require.NoError(t, err)
		assert.True(t, ok, "q must be prime")
		ok, err = primes.IsProbablyPrime(rand.Reader, sys.P, 40)
		require.NoError(t, err)
		assert.True(t, ok, "p must be prime")
		assert.Equal(t, 0, sys.P.Cmp(modulus(sys.Q)))
		assert.NotEqual(t, 0, arith.PowMod(sys.G, sys.Q, sys.P).Cmp(big.NewInt(1)))

		a, err := GenSecret(random, sys)
		require.NoError(t, err)
		b, err := GenSecret(random, sys)
		require.NoError(t, err)

		keys, err := ExchangeKeys(sys.G, sys.Q, []*big.Int{a, b})
		require.NoError(t, err)
		assert.Equal(t, 0, keys[0].Cmp(keys[1]))
	}
}

func TestExchangeParticipants(t *testing.T) {
	random := mrand.New(mrand.NewSource(4))
	sys, err := GenSysKey(random, 48)
	require.NoError(t, err)

	alice, err := NewParticipant(random, sys)
	require.NoError(t, err)
	bob, err := NewParticipant(random, sys)
	require.NoError(t, err)
	assert.NotEqual(t, alice.Id, bob.Id)

	keys, err := Exchange(sys.G, sys.Q, []Participant{alice, bob})
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, alice.Id, keys[0].Id)
	assert.Equal(t, bob.Id, keys[1].Id)
	assert.Equal(t, 0, keys[0].Key.Cmp(keys[1].Key))

	_, err = Exchange(sys.G, sys.Q, []Participant{alice, alice})
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
}

func TestGenSysKeyRejectsTinyQ(t *testing.T) {
	_, err := GenSysKey(rand.Reader, 2)
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
}

func TestDeriveKey(t *testing.T) {
	k := big.NewInt(123456789)
	a, err := DeriveKey(k, []byte("session"), 32)
	require.NoError(t, err)
	assert.Len(t, a, 32)

	b, err := DeriveKey(new(big.Int).Set(k), []byte("session"), 32)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := DeriveKey(k, []byte("other"), 32)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = DeriveKey(k, nil, 0)
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
}

func TestParticipantIdsFromReader(t *testing.T) {
	sys := &SystemKey{P: big.NewInt(23), Q: big.NewInt(11), G: big.NewInt(5)}
	a, err := NewParticipant(mrand.New(mrand.NewSource(9)), sys)
	require.NoError(t, err)
	b, err := NewParticipant(mrand.New(mrand.NewSource(9)), sys)
	require.NoError(t, err)
	assert.Equal(t, a.Id, b.Id)
	assert.NotEqual(t, uuid.Nil, a.Id)
	assert.True(t, a.Secret.Cmp(big.NewInt(2)) >= 0 && a.Secret.Cmp(big.NewInt(10)) <= 0)
}
