// Package config loads the settings of the bigcrypt command line tool from
// an optional YAML file and BIGCRYPT_* environment variables.
package config

import (
	"crypto/rand"
	"fmt"
	"io"
	mrand "math/rand"

	"github.com/spf13/viper"

	"github.com/arvid220u/bigcrypt/cryptoerr"
	"github.com/arvid220u/bigcrypt/primes"
)

const EnvPrefix = "BIGCRYPT"

type Config struct {
	// Bits is the prime size for Diffie-Hellman and Shamir.
	Bits int `mapstructure:"bits"`
	// Rounds is the number of Miller-Rabin witnesses per prime candidate.
	Rounds int `mapstructure:"rounds"`
	// MaxAttempts caps the prime search; 0 picks a cap from the bit length.
	MaxAttempts int   `mapstructure:"max_attempts"`
	ElGamalBits int   `mapstructure:"elgamal_bits"`
	RSABits     int   `mapstructure:"rsa_bits"`
	Seed        int64 `mapstructure:"seed"` // 0 reads from crypto/rand
	Debug       bool  `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bits", 256)
	v.SetDefault("rounds", primes.DefaultRounds)
	v.SetDefault("max_attempts", 0)
	v.SetDefault("elgamal_bits", 1024)
	v.SetDefault("rsa_bits", 256)
	v.SetDefault("seed", 0)
	v.SetDefault("debug", false)
}

// Load reads the config file at path, if any, then applies the environment.
// An empty path only uses defaults and environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no scheme can work with.
func (c *Config) Validate() error {
	for name, bits := range map[string]int{"bits": c.Bits, "elgamal_bits": c.ElGamalBits, "rsa_bits": c.RSABits} {
		if bits < 3 {
			return fmt.Errorf("%w: %s must be at least 3, got %d", cryptoerr.ErrInvalidArgument, name, bits)
		}
	}
	if c.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be positive, got %d", cryptoerr.ErrInvalidArgument, c.Rounds)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("%w: max_attempts must not be negative", cryptoerr.ErrInvalidArgument)
	}
	return nil
}

// PrimeOptions returns the prime search settings.
func (c *Config) PrimeOptions() primes.Options {
	return primes.Options{Rounds: c.Rounds, MaxAttempts: c.MaxAttempts}
}

// Random returns the randomness source: crypto/rand, or a seeded
// math/rand generator when Seed is set, for reproducible runs.
func (c *Config) Random() io.Reader {
	if c.Seed == 0 {
		return rand.Reader
	}
	return mrand.New(mrand.NewSource(c.Seed))
}
