// Package diffiehellman implements the multi-party Diffie-Hellman exchange
// over the safe prime group p = 2q + 1.
package diffiehellman

import (
	"math/big"

	"github.com/google/uuid"
)

type SystemKey struct { // systemwide values, P = 2Q + 1
	P, Q, G *big.Int
}

// Participant is one party of an exchange: an identifier and the private
// exponent it contributes.
type Participant struct {
	Id     uuid.UUID
	Secret *big.Int
}

// SessionKey is the key one participant ends up with.
type SessionKey struct {
	Id  uuid.UUID
	Key *big.Int
}

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// modulus returns 2q + 1
func modulus(q *big.Int) *big.Int {
	p := new(big.Int).Lsh(q, 1)
	return p.Add(p, one)
}
