// Package classical holds the pre-computer ciphers used alongside the
// number theoretic schemes: a Caesar shift over an arbitrary alphabet and a
// columnar transposition, plus the entropy measures used to compare
// plaintext with ciphertext.
package classical

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/arvid220u/bigcrypt/cryptoerr"
)

// NewAlphabet returns the sorted set of runes in text, without newlines.
func NewAlphabet(text string) []rune {
	alphabet := lo.Uniq(lo.Filter([]rune(text), func(r rune, _ int) bool { return r != '\n' }))
	slices.Sort(alphabet)
	return alphabet
}

// Caesar shifts every rune of Alphabet by Shift positions, wrapping around.
// Runes outside the alphabet are left alone.
type Caesar struct {
	Alphabet []rune
	Shift    int
}

// NewCaesar validates the alphabet.
func NewCaesar(alphabet []rune, shift int) (*Caesar, error) {
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", cryptoerr.ErrInvalidArgument)
	}
	if dups := lo.FindDuplicates(alphabet); len(dups) > 0 {
		return nil, fmt.Errorf("%w: rune %q repeats in alphabet", cryptoerr.ErrInvalidArgument, dups[0])
	}
	return &Caesar{Alphabet: alphabet, Shift: shift}, nil
}

func (c *Caesar) Encrypt(text string) string {
	return c.shift(text, c.Shift)
}

func (c *Caesar) Decrypt(text string) string {
	return c.shift(text, -c.Shift)
}

func (c *Caesar) shift(text string, by int) string {
	n := len(c.Alphabet)
	index := make(map[rune]int, n)
	for i, r := range c.Alphabet {
		index[r] = i
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		i, ok := index[r]
		if !ok {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(c.Alphabet[((i+by)%n+n)%n])
	}
	return b.String()
}
