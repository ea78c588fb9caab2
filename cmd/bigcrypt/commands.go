package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/arvid220u/bigcrypt/classical"
	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/diffiehellman"
	"github.com/arvid220u/bigcrypt/elgamal"
	"github.com/arvid220u/bigcrypt/primes"
	"github.com/arvid220u/bigcrypt/rsa"
	"github.com/arvid220u/bigcrypt/shamir"
)

func out(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

// bits returns the --bits flag, falling back to def.
func bits(cmd *cli.Command, def int) int {
	if cmd.IsSet("bits") {
		return cmd.Int("bits")
	}
	return def
}

func bitsFlag(usage string) cli.Flag {
	return &cli.IntFlag{Name: "bits", Aliases: []string{"b"}, Usage: usage}
}

// bigFlag parses a decimal (or 0x prefixed) integer flag.
func bigFlag(cmd *cli.Command, name string) (*big.Int, error) {
	s := cmd.String(name)
	if s == "" {
		return nil, fmt.Errorf("%w: --%s is required", cryptoerr.ErrInvalidArgument, name)
	}
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("%w: --%s %q is not an integer", cryptoerr.ErrInvalidArgument, name, s)
	}
	return n, nil
}

func (a *app) primeCommand() *cli.Command {
	return &cli.Command{
		Name:  "prime",
		Usage: "generate a random probable prime",
		Flags: []cli.Flag{bitsFlag("bit length of the prime")},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := primes.GenerateWith(ctx, a.random, bits(cmd, a.cfg.Bits), a.cfg.PrimeOptions())
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), p)
			return nil
		},
	}
}

func (a *app) isPrimeCommand() *cli.Command {
	return &cli.Command{
		Name:      "isprime",
		Usage:     "run the Miller-Rabin test on an integer",
		ArgsUsage: "<n>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			n, ok := new(big.Int).SetString(cmd.Args().First(), 0)
			if !ok {
				return fmt.Errorf("%w: %q is not an integer", cryptoerr.ErrInvalidArgument, cmd.Args().First())
			}
			prime, err := primes.IsProbablyPrime(a.random, n, a.cfg.Rounds)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "%v probably prime: %t\n", n, prime)
			return nil
		},
	}
}

func (a *app) dhCommand() *cli.Command {
	return &cli.Command{
		Name:  "dh",
		Usage: "multi-party Diffie-Hellman exchange over a generated safe prime",
		Flags: []cli.Flag{
			bitsFlag("bit length of q"),
			&cli.IntFlag{Name: "parties", Aliases: []string{"n"}, Usage: "number of participants", Value: 2},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			n := cmd.Int("parties")
			if n < 0 {
				return fmt.Errorf("%w: --parties %d is negative", cryptoerr.ErrInvalidArgument, n)
			}
			sys, err := diffiehellman.GenSysKeyWith(ctx, a.random, bits(cmd, a.cfg.Bits), a.cfg.PrimeOptions())
			if err != nil {
				return err
			}
			parties := make([]diffiehellman.Participant, n)
			for i := range parties {
				if parties[i], err = diffiehellman.NewParticipant(a.random, sys); err != nil {
					return err
				}
			}
			keys, err := diffiehellman.Exchange(sys.G, sys.Q, parties)
			if err != nil {
				return err
			}
			w := out(cmd)
			fmt.Fprintf(w, "g: %v\nq: %v\np: %v\n", sys.G, sys.Q, sys.P)
			for i, k := range keys {
				derived, err := diffiehellman.DeriveKey(k.Key, []byte("bigcrypt dh"), 32)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "participant %s secret %v\n  session key: %v\n  derived: %s\n",
					k.Id, parties[i].Secret, k.Key, hex.EncodeToString(derived))
			}
			return nil
		},
	}
}

func (a *app) shamirCommand() *cli.Command {
	return &cli.Command{
		Name:  "shamir",
		Usage: "run Shamir's three-pass protocol and print every stage",
		Flags: []cli.Flag{
			bitsFlag("bit length of p"),
			&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "integer message below p"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sys, err := shamir.GenSysKeyWith(ctx, a.random, bits(cmd, a.cfg.Bits), a.cfg.PrimeOptions())
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
			m, err := bigFlag(cmd, "message")
			if err != nil {
				return err
			}
			stages, err := shamir.Transform(sys.P, m, alice.E, bob.E)
			if err != nil {
				return err
			}
			w := out(cmd)
			fmt.Fprintf(w, "p: %v\nsecret A: %v\nsecret B: %v\nmessage: %v\n", sys.P, alice.E, bob.E, m)
			for i, c := range stages.Slice() {
				fmt.Fprintf(w, "c%d: %v\n", i+1, c)
			}
			fmt.Fprintf(w, "recovered: %t\n", stages.C4.Cmp(m) == 0)
			return nil
		},
	}
}

func (a *app) elgamalCommand() *cli.Command {
	return &cli.Command{
		Name:  "elgamal",
		Usage: "ElGamal encryption (generating a key when none is given) or decryption",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "action", Aliases: []string{"a"}, Usage: "encrypt or decrypt", Value: "encrypt"},
			bitsFlag("bit length of p for a fresh key"),
			&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "integer message below p"},
			&cli.StringFlag{Name: "p"},
			&cli.StringFlag{Name: "g"},
			&cli.StringFlag{Name: "y", Usage: "public value"},
			&cli.StringFlag{Name: "x", Usage: "private key"},
			&cli.StringFlag{Name: "c1"},
			&cli.StringFlag{Name: "c2"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			action, err := elgamal.ParseAction(cmd.String("action"))
			if err != nil {
				return err
			}
			w := out(cmd)
			switch action {
			case elgamal.EncryptAction:
				m, err := bigFlag(cmd, "message")
				if err != nil {
					return err
				}
				if !cmd.IsSet("p") {
					ct, priv, err := elgamal.EncryptFreshWith(ctx, a.random, bits(cmd, a.cfg.ElGamalBits), m, a.cfg.PrimeOptions())
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "p: %v\ng: %v\ny: %v\nx: %v\n", priv.P, priv.G, priv.Y, priv.X)
					fmt.Fprintf(w, "c1: %v\nc2: %v\n", ct.C1, ct.C2)
					return nil
				}
				pub, err := publicKeyFlags(cmd, true)
				if err != nil {
					return err
				}
				ct, err := elgamal.Encrypt(a.random, pub, m)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "c1: %v\nc2: %v\n", ct.C1, ct.C2)
			case elgamal.DecryptAction:
				pub, err := publicKeyFlags(cmd, false)
				if err != nil {
					return err
				}
				x, err := bigFlag(cmd, "x")
				if err != nil {
					return err
				}
				c1, err := bigFlag(cmd, "c1")
				if err != nil {
					return err
				}
				c2, err := bigFlag(cmd, "c2")
				if err != nil {
					return err
				}
				m, err := elgamal.Decrypt(&elgamal.PrivateKey{PublicKey: *pub, X: x}, &elgamal.Ciphertext{C1: c1, C2: c2})
				if err != nil {
					return err
				}
				fmt.Fprintln(w, m)
			}
			return nil
		},
	}
}

// publicKeyFlags reads p, and g and y when full is set. Decryption only
// needs p.
func publicKeyFlags(cmd *cli.Command, full bool) (*elgamal.PublicKey, error) {
	var pub elgamal.PublicKey
	var err error
	if pub.P, err = bigFlag(cmd, "p"); err != nil {
		return nil, err
	}
	if !full {
		return &pub, nil
	}
	if pub.G, err = bigFlag(cmd, "g"); err != nil {
		return nil, err
	}
	if pub.Y, err = bigFlag(cmd, "y"); err != nil {
		return nil, err
	}
	return &pub, nil
}

func (a *app) rsaCommand() *cli.Command {
	return &cli.Command{
		Name:  "rsa",
		Usage: "RSA key generation, encryption or decryption",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Usage: "keygen, encrypt or decrypt", Value: "keygen"},
			bitsFlag("bit length of each prime"),
			&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "integer below n"},
			&cli.StringFlag{Name: "n"},
			&cli.StringFlag{Name: "e"},
			&cli.StringFlag{Name: "d"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			mode, err := rsa.ParseMode(cmd.String("mode"))
			if err != nil {
				return err
			}
			w := out(cmd)
			if mode == rsa.KeyGenMode {
				key, err := rsa.GenKeyWith(ctx, a.random, bits(cmd, a.cfg.RSABits), a.cfg.PrimeOptions())
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "n: %v\ne: %v\nd: %v\n", key.N, key.E, key.D)
				return nil
			}

			n, err := bigFlag(cmd, "n")
			if err != nil {
				return err
			}
			m, err := bigFlag(cmd, "message")
			if err != nil {
				return err
			}
			var result *big.Int
			if mode == rsa.EncryptMode {
				e, err := bigFlag(cmd, "e")
				if err != nil {
					return err
				}
				result, err = rsa.Encrypt(&rsa.PublicKey{N: n, E: e}, m)
				if err != nil {
					return err
				}
			} else {
				d, err := bigFlag(cmd, "d")
				if err != nil {
					return err
				}
				result, err = rsa.Decrypt(&rsa.PrivateKey{PublicKey: rsa.PublicKey{N: n}, D: d}, m)
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(w, result)
			return nil
		},
	}
}

func (a *app) caesarCommand() *cli.Command {
	return &cli.Command{
		Name:  "caesar",
		Usage: "Caesar shift over the alphabet of the text itself",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "shift", Aliases: []string{"k"}, Value: 25},
			&cli.StringFlag{Name: "alphabet", Usage: "alphabet to shift over (default: runes of the text)"},
			&cli.BoolFlag{Name: "decrypt", Aliases: []string{"d"}},
		},
		ArgsUsage: "<text>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			text := strings.Join(cmd.Args().Slice(), " ")
			alphabet := classical.NewAlphabet(text)
			if cmd.IsSet("alphabet") {
				alphabet = []rune(cmd.String("alphabet"))
			}
			c, err := classical.NewCaesar(alphabet, cmd.Int("shift"))
			if err != nil {
				return err
			}
			if cmd.Bool("decrypt") {
				fmt.Fprintln(out(cmd), c.Decrypt(text))
			} else {
				fmt.Fprintln(out(cmd), c.Encrypt(text))
			}
			return nil
		},
	}
}

func (a *app) transposeCommand() *cli.Command {
	return &cli.Command{
		Name:  "transpose",
		Usage: "columnar transposition with a comma separated permutation key",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Required: true},
			&cli.BoolFlag{Name: "decrypt", Aliases: []string{"d"}},
		},
		ArgsUsage: "<text>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var key []int
			for _, f := range strings.Split(cmd.String("key"), ",") {
				k, err := strconv.Atoi(strings.TrimSpace(f))
				if err != nil {
					return fmt.Errorf("%w: key entry %q: %v", cryptoerr.ErrInvalidArgument, f, err)
				}
				key = append(key, k)
			}
			tr, err := classical.NewTransposition(key)
			if err != nil {
				return err
			}
			text := strings.Join(cmd.Args().Slice(), " ")
			if cmd.Bool("decrypt") {
				fmt.Fprintln(out(cmd), tr.Decrypt(text))
			} else {
				fmt.Fprintln(out(cmd), tr.Encrypt(text))
			}
			fmt.Fprintf(out(cmd), "entropy: %.4f bits, bigram entropy: %.4f bits\n",
				classical.Entropy(text), classical.BigramEntropy(text))
			return nil
		},
	}
}
