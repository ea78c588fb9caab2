package elgamal

import (
	"context"
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvid220u/bigcrypt/arith"
	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/primes"
)

func TestBasic(t *testing.T) {
	syskey, err := GenSysKey(rand.Reader, 140)
	require.NoError(t, err)
	privkey, err := GenUserKey(rand.Reader, syskey)
	require.NoError(t, err)
	msg, err := PrepareMsg([]byte("i am a squid"), syskey.P.BitLen())
	require.NoError(t, err)

	ct, err := Encrypt(rand.Reader, &privkey.PublicKey, msg)
	require.NoError(t, err)
	D, err := Decrypt(privkey, ct)
	require.NoError(t, err)
	out, err := ExtractMsg(D)
	require.NoError(t, err)
	assert.Equal(t, "i am a squid", string(out))
}

func TestRoundTripAllMessages(t *testing.T) {
	random := mrand.New(mrand.NewSource(8))
	privkey, err := GenKey(random, 16)
	require.NoError(t, err)
	p := privkey.P.Int64()
	for m := int64(0); m < p; m++ {
		ct, err := Encrypt(random, &privkey.PublicKey, big.NewInt(m))
		require.NoError(t, err)
		out, err := Decrypt(privkey, ct)
		require.NoError(t, err)
		require.Equal(t, m, out.Int64(), "p=%d", p)
	}
}

func TestRoundTripGenerated(t *testing.T) {
	random := mrand.New(mrand.NewSource(9))
	for i := 0; i < 5; i++ {
		privkey, err := GenKey(random, 256)
		require.NoError(t, err)
		for j := 0; j < 10; j++ {
			m, err := arith.RandRange(random, big.NewInt(0), new(big.Int).Sub(privkey.P, big.NewInt(1)))
			require.NoError(t, err)
			ct, err := Encrypt(random, &privkey.PublicKey, m)
			require.NoError(t, err)
			out, err := Decrypt(privkey, ct)
			require.NoError(t, err)
			assert.Equal(t, 0, m.Cmp(out))
		}
	}
}

func TestEncryptFresh(t *testing.T) {
	m := big.NewInt(424242)
	ct, privkey, err := EncryptFresh(rand.Reader, 1024, m)
	require.NoError(t, err)
	require.NotNil(t, privkey)

	assert.True(t, privkey.X.Cmp(big.NewInt(2)) >= 0)
	assert.True(t, privkey.X.Cmp(new(big.Int).Sub(privkey.P, big.NewInt(2))) <= 0)
	assert.Equal(t, 0, privkey.Y.Cmp(arith.PowMod(privkey.G, privkey.X, privkey.P)))

	out, err := Decrypt(privkey, ct)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Cmp(out))
}

func TestEncryptRejectsOutOfRange(t *testing.T) {
	privkey, err := GenKey(rand.Reader, 64)
	require.NoError(t, err)
	_, err = Encrypt(rand.Reader, &privkey.PublicKey, privkey.P)
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
	_, err = Encrypt(rand.Reader, &privkey.PublicKey, big.NewInt(-1))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
}

func TestDecryptZeroC1(t *testing.T) {
	privkey, err := GenKey(rand.Reader, 64)
	require.NoError(t, err)
	_, err = Decrypt(privkey, &Ciphertext{C1: big.NewInt(0), C2: big.NewInt(5)})
	assert.ErrorIs(t, err, cryptoerr.ErrDomain)
}

func TestDecryptRejectsNegativeKey(t *testing.T) {
	privkey := &PrivateKey{PublicKey: PublicKey{P: big.NewInt(23), G: big.NewInt(5), Y: big.NewInt(1)}, X: big.NewInt(-1)}
	_, err := Decrypt(privkey, &Ciphertext{C1: big.NewInt(0), C2: big.NewInt(5)})
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)

	privkey.X = big.NewInt(3)
	_, err = Decrypt(privkey, &Ciphertext{C1: big.NewInt(4)})
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

func TestEncryptFreshWithHonorsOptions(t *testing.T) {
	_, _, err := EncryptFreshWith(context.Background(), zeroReader{}, 64, big.NewInt(7), primes.Options{MaxAttempts: 1})
	assert.ErrorIs(t, err, cryptoerr.ErrExhaustedAttempts)

	random := mrand.New(mrand.NewSource(21))
	m := big.NewInt(99)
	ct, privkey, err := EncryptFreshWith(context.Background(), random, 128, m, primes.Options{Rounds: 10})
	require.NoError(t, err)
	out, err := Decrypt(privkey, ct)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Cmp(out))
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("encrypt")
	require.NoError(t, err)
	assert.Equal(t, EncryptAction, a)

	a, err = ParseAction(" Decrypt ")
	require.NoError(t, err)
	assert.Equal(t, DecryptAction, a)

	_, err = ParseAction("sign")
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
}
