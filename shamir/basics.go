// Package shamir implements Shamir's three-pass protocol (the Massey-Omura
// cipher): each party locks the message with its own exponent mod a shared
// prime p, and because exponentiation commutes the locks can be removed in
// any order.
package shamir

import (
	"math/big"
)

type SystemKey struct { // systemwide value
	P *big.Int
}

type PrivateKey struct { // user's private encryption/decryption keys
	SystemKey
	E, D *big.Int // E*D = 1 (mod P-1)
}

// Stages holds every intermediate value of a two party run:
//
//	C1 = m^a        A locks
//	C2 = C1^b       B locks
//	C3 = C2^(a^-1)  A unlocks
//	C4 = C3^(b^-1)  B unlocks, C4 = m
type Stages struct {
	C1, C2, C3, C4 *big.Int
}

// Slice returns the stages in protocol order.
func (s *Stages) Slice() []*big.Int {
	return []*big.Int{s.C1, s.C2, s.C3, s.C4}
}

var one = big.NewInt(1)
