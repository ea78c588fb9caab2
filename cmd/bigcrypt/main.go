// Command bigcrypt demonstrates the bigcrypt schemes from the command line.
package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/arvid220u/bigcrypt/config"
	"github.com/arvid220u/bigcrypt/logging"
)

const Version = "0.1.0"

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	cfg    *config.Config
	random io.Reader
}

func newCommand() *cli.Command {
	a := &app{}
	return &cli.Command{
		Name:    "bigcrypt",
		Usage:   "primality testing, key exchange and public key ciphers on big integers",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "seed for reproducible runs (0 uses crypto/rand)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			a.primeCommand(),
			a.isPrimeCommand(),
			a.dhCommand(),
			a.shamirCommand(),
			a.elgamalCommand(),
			a.rsaCommand(),
			a.caesarCommand(),
			a.transposeCommand(),
			a.demoCommand(),
		},
	}
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Int64("seed")
	}
	if cmd.Bool("debug") {
		cfg.Debug = true
	}
	if cfg.Debug {
		logging.SetLevel(zerolog.DebugLevel)
	}
	a.cfg = cfg
	a.random = cfg.Random()
	return ctx, nil
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		logging.Logger().Error().Err(err).Msg("bigcrypt failed")
		os.Exit(1)
	}
}
