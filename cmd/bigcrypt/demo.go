package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/urfave/cli/v3"

	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/diffiehellman"
	"github.com/arvid220u/bigcrypt/elgamal"
	"github.com/arvid220u/bigcrypt/primes"
	"github.com/arvid220u/bigcrypt/rsa"
	"github.com/arvid220u/bigcrypt/shamir"
)

func (a *app) demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "walk through every scheme with freshly generated parameters",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.demo(ctx, out(cmd))
		},
	}
}

func (a *app) demo(ctx context.Context, w io.Writer) error {
	for _, step := range []struct {
		title string
		run   func(context.Context, io.Writer) error
	}{
		{"Diffie-Hellman", a.demoDH},
		{"Shamir three-pass", a.demoShamir},
		{"ElGamal", a.demoElGamal},
		{"RSA", a.demoRSA},
	} {
		fmt.Fprintf(w, "== %s ==\n", step.title)
		if err := step.run(ctx, w); err != nil {
			return fmt.Errorf("%s: %w", step.title, err)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func (a *app) demoDH(ctx context.Context, w io.Writer) error {
	sys, err := diffiehellman.GenSysKeyWith(ctx, a.random, a.cfg.Bits, a.cfg.PrimeOptions())
	if err != nil {
		return err
	}
	alice, err := diffiehellman.GenSecret(a.random, sys)
	if err != nil {
		return err
	}
	bob, err := diffiehellman.GenSecret(a.random, sys)
	if err != nil {
		return err
	}
	keys, err := diffiehellman.ExchangeKeys(sys.G, sys.Q, []*big.Int{alice, bob})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "secret A: %v\nsecret B: %v\ng: %v\nq: %v\n", alice, bob, sys.G, sys.Q)
	fmt.Fprintln(w, "session keys:")
	for _, k := range keys {
		fmt.Fprintln(w, k)
	}
	return nil
}

func (a *app) demoShamir(ctx context.Context, w io.Writer) error {
	sys, err := shamir.GenSysKeyWith(ctx, a.random, a.cfg.Bits, a.cfg.PrimeOptions())
	if err != nil {
		return err
	}
	alice, err := shamir.GenUserKey(a.random, sys)
	if err != nil {
		return err
	}
	bob, err := shamir.GenUserKey(a.random, sys)
	if err != nil {
		return err
	}
	m, err := a.demoMessage(ctx, a.cfg.Bits/4)
	if err != nil {
		return err
	}
	stages, err := shamir.Transform(sys.P, m, alice.E, bob.E)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "secret A: %v\nsecret B: %v\np: %v\nmessage: %v\n", alice.E, bob.E, sys.P, m)
	for i, c := range stages.Slice() {
		fmt.Fprintf(w, "c%d: %v\n", i+1, c)
	}
	fmt.Fprintf(w, "recovered: %t\n", stages.C4.Cmp(m) == 0)
	return nil
}

func (a *app) demoElGamal(ctx context.Context, w io.Writer) error {
	m, err := a.demoMessage(ctx, a.cfg.ElGamalBits/4)
	if err != nil {
		return err
	}
	ct, priv, err := elgamal.EncryptFreshWith(ctx, a.random, a.cfg.ElGamalBits, m, a.cfg.PrimeOptions())
	if err != nil {
		return err
	}
	dec, err := elgamal.Decrypt(priv, ct)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "p: %v\ng: %v\ny: %v\nx: %v\n", priv.P, priv.G, priv.Y, priv.X)
	fmt.Fprintf(w, "message: %v\nc1: %v\nc2: %v\ndecrypted: %v\n", m, ct.C1, ct.C2, dec)
	return nil
}

func (a *app) demoRSA(ctx context.Context, w io.Writer) error {
	var key *rsa.PrivateKey
	var err error
	// retry keys whose e divides phi
	for i := 0; i < 3; i++ {
		key, err = rsa.GenKeyWith(ctx, a.random, a.cfg.RSABits, a.cfg.PrimeOptions())
		if !errors.Is(err, cryptoerr.ErrDomain) {
			break
		}
	}
	if err != nil {
		return err
	}
	m, err := a.demoMessage(ctx, a.cfg.RSABits/4)
	if err != nil {
		return err
	}
	c, err := rsa.Encrypt(&key.PublicKey, m)
	if err != nil {
		return err
	}
	dec, err := rsa.Decrypt(key, c)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "public key: (%v, %v)\nprivate key: (%v, %v)\n", key.N, key.E, key.N, key.D)
	fmt.Fprintf(w, "message: %v\nciphertext: %v\ndecrypted: %v\n", m, c, dec)
	return nil
}

// demoMessage draws a prime message, as the lab walkthrough does.
func (a *app) demoMessage(ctx context.Context, bits int) (*big.Int, error) {
	if bits < 2 {
		bits = 2
	}
	return primes.GenerateWith(ctx, a.random, bits, a.cfg.PrimeOptions())
}
