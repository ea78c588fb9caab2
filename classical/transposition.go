package classical

import (
	"fmt"

	"github.com/arvid220u/bigcrypt/cryptoerr"
)

// Transposition is a columnar transposition cipher. The text is written in
// rows of len(Key) runes and read out column by column, in the order given
// by Key.
type Transposition struct {
	Key []int
}

// NewTransposition checks that key is a permutation of 0..len(key)-1.
func NewTransposition(key []int) (*Transposition, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty transposition key", cryptoerr.ErrInvalidArgument)
	}
	seen := make([]bool, len(key))
	for _, k := range key {
		if k < 0 || k >= len(key) || seen[k] {
			return nil, fmt.Errorf("%w: key %v is not a permutation of 0..%d", cryptoerr.ErrInvalidArgument, key, len(key)-1)
		}
		seen[k] = true
	}
	return &Transposition{Key: key}, nil
}

func (t *Transposition) Encrypt(text string) string {
	in := []rune(text)
	cols := len(t.Key)
	out := make([]rune, 0, len(in))
	for _, col := range t.Key {
		// the last row is short unless len(in) is a multiple of cols
		for pos := col; pos < len(in); pos += cols {
			out = append(out, in[pos])
		}
	}
	return string(out)
}

func (t *Transposition) Decrypt(text string) string {
	in := []rune(text)
	cols := len(t.Key)
	out := make([]rune, len(in))
	i := 0
	for _, col := range t.Key {
		for pos := col; pos < len(in); pos += cols {
			out[pos] = in[i]
			i++
		}
	}
	return string(out)
}
