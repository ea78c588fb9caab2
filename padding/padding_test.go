package padding

import (
	"math/big"
	"testing"

	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, plen := range []int{33, 64, 140, 1027} {
		for _, msg := range []string{"", "a", "i am a squid", "\x00\x00zero\x00bytes"} {
			if len(msg) > MaxBytes(plen) {
				continue
			}
			m, err := Pad([]byte(msg), plen)
			require.NoError(t, err)
			assert.Less(t, m.BitLen(), plen, "padded value must stay below the modulus")
			out, err := Unpad(m)
			require.NoError(t, err)
			assert.Equal(t, msg, string(out))
		}
	}
}

func TestFullLengthMessage(t *testing.T) {
	plen := 140
	msg := make([]byte, MaxBytes(plen))
	for i := range msg {
		msg[i] = 0xff
	}
	m, err := Pad(msg, plen)
	require.NoError(t, err)
	out, err := Unpad(m)
	require.NoError(t, err)
	assert.Equal(t, msg, out)

	_, err = Pad(append(msg, 1), plen)
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidArgument)
}

func TestMinBits(t *testing.T) {
	for n := 0; n < 40; n++ {
		assert.GreaterOrEqual(t, MaxBytes(MinBits(n)), n)
		assert.Less(t, MaxBytes(MinBits(n)-1), n)
	}
}

func TestUnpadGarbage(t *testing.T) {
	_, err := Unpad(big.NewInt(0x010101))
	assert.Error(t, err)
}
