// Package config loads cryptutil settings from defaults, an optional YAML
// file and CRYPTUTIL_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/hasbyte1/go-crypto-utils/encryption"
	"github.com/hasbyte1/go-crypto-utils/hashing"
)

// EnvPrefix is prepended to every environment variable name. The key
// "pbkdf2.iterations" is read from CRYPTUTIL_PBKDF2_ITERATIONS.
const EnvPrefix = "CRYPTUTIL"

// ErrInvalidConfig is returned when a setting cannot be interpreted.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the raw settings. Numeric values are kept as text and
// interpreted by the hashing package, so "abc" or "-5" fail there with
// [hashing.ErrInvalidOption] instead of silently becoming zero.
type Config struct {
	Driver string       `mapstructure:"driver"`
	PBKDF2 PBKDF2Config `mapstructure:"pbkdf2"`
	Bcrypt BcryptConfig `mapstructure:"bcrypt"`
	Cipher string       `mapstructure:"cipher"`
	Log    LogConfig    `mapstructure:"log"`
}

// PBKDF2Config mirrors [hashing.PBKDF2Options] in textual form.
type PBKDF2Config struct {
	Algorithm  string `mapstructure:"algorithm"`
	Iterations string `mapstructure:"iterations"`
	SaltSize   string `mapstructure:"salt_size"`
	KeySize    string `mapstructure:"key_size"`
}

// BcryptConfig mirrors [hashing.BcryptOptions] in textual form.
type BcryptConfig struct {
	Cost string `mapstructure:"cost"`
}

// LogConfig selects the CLI logger.
type LogConfig struct {
	Verbose bool   `mapstructure:"verbose"`
	Format  string `mapstructure:"format"`
}

// Load reads configuration. An empty path skips the file layer; a non-empty
// path must name a readable YAML file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}

	cfg := &Config{
		Driver: v.GetString("driver"),
		PBKDF2: PBKDF2Config{
			Algorithm:  v.GetString("pbkdf2.algorithm"),
			Iterations: v.GetString("pbkdf2.iterations"),
			SaltSize:   v.GetString("pbkdf2.salt_size"),
			KeySize:    v.GetString("pbkdf2.key_size"),
		},
		Bcrypt: BcryptConfig{Cost: v.GetString("bcrypt.cost")},
		Cipher: v.GetString("cipher"),
		Log: LogConfig{
			Verbose: v.GetBool("log.verbose"),
			Format:  v.GetString("log.format"),
		},
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("driver", string(hashing.DriverPBKDF2))
	v.SetDefault("pbkdf2.algorithm", string(hashing.DefaultPBKDF2Algorithm))
	v.SetDefault("pbkdf2.iterations", strconv.Itoa(hashing.DefaultPBKDF2Iterations))
	v.SetDefault("pbkdf2.salt_size", strconv.Itoa(hashing.DefaultPBKDF2SaltSize))
	v.SetDefault("pbkdf2.key_size", strconv.Itoa(hashing.DefaultPBKDF2KeySize))
	v.SetDefault("bcrypt.cost", strconv.Itoa(hashing.DefaultBcryptCost))
	v.SetDefault("cipher", string(encryption.DefaultCipher))
	v.SetDefault("log.verbose", false)
	v.SetDefault("log.format", "text")
}

// PBKDF2Options interprets the pbkdf2 section.
func (c *Config) PBKDF2Options() (hashing.PBKDF2Options, error) {
	return hashing.ParsePBKDF2Options(c.PBKDF2.Algorithm, c.PBKDF2.Iterations, c.PBKDF2.SaltSize, c.PBKDF2.KeySize)
}

// BcryptOptions interprets the bcrypt section.
func (c *Config) BcryptOptions() (hashing.BcryptOptions, error) {
	opts := hashing.DefaultBcryptOptions()
	s := strings.TrimSpace(c.Bcrypt.Cost)
	if s == "" {
		return opts, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return hashing.BcryptOptions{}, fmt.Errorf("%w: bcrypt cost must be a positive integer, got %q",
			hashing.ErrInvalidOption, c.Bcrypt.Cost)
	}
	opts.Cost = n
	return opts, nil
}

// CipherName validates and returns the configured cipher.
func (c *Config) CipherName() (encryption.Cipher, error) {
	name := encryption.Cipher(strings.ToLower(strings.TrimSpace(c.Cipher)))
	if name == "" {
		return encryption.DefaultCipher, nil
	}
	if err := encryption.ValidateCipher(name); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return name, nil
}

// Manager builds a hashing manager with both drivers registered and the
// configured driver as the default.
func (c *Config) Manager() (*hashing.Manager, error) {
	popts, err := c.PBKDF2Options()
	if err != nil {
		return nil, err
	}
	p, err := hashing.NewPBKDF2Hasher(popts)
	if err != nil {
		return nil, err
	}
	bopts, err := c.BcryptOptions()
	if err != nil {
		return nil, err
	}
	b, err := hashing.NewBcryptHasher(bopts)
	if err != nil {
		return nil, err
	}

	m := hashing.NewManager(hashing.DriverPBKDF2)
	if err := m.RegisterDriver(hashing.DriverPBKDF2, p); err != nil {
		return nil, err
	}
	if err := m.RegisterDriver(hashing.DriverBcrypt, b); err != nil {
		return nil, err
	}

	driver := hashing.DriverName(strings.ToLower(strings.TrimSpace(c.Driver)))
	if driver == "" {
		driver = hashing.DriverPBKDF2
	}
	if err := m.SetDefaultDriver(driver); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return m, nil
}
