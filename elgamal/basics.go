// Package elgamal implements ElGamal encryption over Z_p*.
//
// The generator is drawn uniformly from [2, p-2] without checking that it is a
// primitive root, so the subgroup it generates may be small. That is a known
// limitation of this construction and is kept deliberately.
package elgamal

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/arvid220u/bigcrypt/cryptoerr"
)

type SystemKey struct { // systemwide values
	P, G *big.Int
}

type PublicKey struct { // user's public key
	P, G, Y *big.Int
}

type PrivateKey struct { // user's private key
	PublicKey
	X *big.Int // Y = G^X mod P. 2 <= X <= P - 2
}

// Ciphertext is the pair (C1, C2) = (g^k, m*y^k) for an ephemeral k.
type Ciphertext struct {
	C1, C2 *big.Int
}

// Action selects what the command line and other mode driven callers do.
type Action string

const (
	EncryptAction Action = "encrypt"
	DecryptAction Action = "decrypt"
)

// ParseAction validates an action name.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case EncryptAction, DecryptAction:
		return a, nil
	}
	return "", fmt.Errorf("%w: unknown elgamal action %q, use 'encrypt' or 'decrypt'", cryptoerr.ErrInvalidArgument, s)
}

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)
