// Package padding turns byte messages into integers smaller than a modulus
// and back. A message is laid out as 0x01..0x01 0x00 msg, filling one byte
// less than the modulus so the integer is always below it.
package padding

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/arvid220u/bigcrypt/cryptoerr"
)

// MaxBytes is the longest message that fits under a plen bit modulus.
func MaxBytes(plen int) int {
	// at least one 0x01 and the 0x00 separator precede the message
	return (plen-1)/8 - 2
}

// MinBits reverses MaxBytes: the smallest modulus size that holds n bytes.
func MinBits(n int) int {
	return 8*(n+2) + 1
}

// Pad encodes msg as an integer with fewer than plen bits.
func Pad(msg []byte, plen int) (*big.Int, error) {
	maxsize := MaxBytes(plen)
	if len(msg) > maxsize {
		return nil, fmt.Errorf("%w: message size %d too long for %d bit key", cryptoerr.ErrInvalidArgument, len(msg), plen)
	}
	targetlen := (plen - 1) / 8
	padded := make([]byte, targetlen)
	sep := targetlen - 1 - len(msg)
	for i := 0; i < sep; i++ {
		padded[i] = 1
	}
	padded[sep] = 0
	copy(padded[sep+1:], msg)
	return new(big.Int).SetBytes(padded), nil
}

// Unpad undoes Pad.
func Unpad(m *big.Int) ([]byte, error) {
	b := m.Bytes()
	for i := 0; i < len(b); i++ {
		if b[i] == 0 {
			return b[i+1:], nil
		}
	}
	return nil, errors.New("padding: no separator in message")
}
