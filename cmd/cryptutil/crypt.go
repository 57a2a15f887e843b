package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hasbyte1/go-crypto-utils/encryption"
)

func newEncryptCmd(a *app) *cobra.Command {
	var cipherName string

	cmd := &cobra.Command{
		Use:   "encrypt [value...]",
		Short: "Encrypt a value under the passphrase in " + SecretEnvVar,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.passphraseCipher(cmd, cipherName)
			if err != nil {
				return err
			}
			value, err := a.readInput(args)
			if err != nil {
				return err
			}
			out, err := c.EncryptString(value)
			if err != nil {
				return err
			}
			cmd.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&cipherName, "cipher", "", "Cipher (default from config)")
	return cmd
}

func newDecryptCmd(a *app) *cobra.Command {
	var cipherName string

	cmd := &cobra.Command{
		Use:   "decrypt [payload]",
		Short: "Decrypt a payload produced by encrypt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.passphraseCipher(cmd, cipherName)
			if err != nil {
				return err
			}
			payload, err := a.readInput(args)
			if err != nil {
				return err
			}
			out, err := c.DecryptString(payload)
			if err != nil {
				return err
			}
			cmd.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&cipherName, "cipher", "", "Cipher (default from config)")
	return cmd
}

// passphraseCipher reads the secret from the environment, falling back to a
// prompt, and builds the configured cipher.
func (a *app) passphraseCipher(cmd *cobra.Command, name string) (*encryption.PassphraseCipher, error) {
	if name != "" {
		a.cfg.Cipher = name
	}
	c, err := a.cfg.CipherName()
	if err != nil {
		return nil, err
	}

	secret := os.Getenv(SecretEnvVar)
	if secret == "" {
		if secret, err = a.readSecret(cmd, "Passphrase: "); err != nil {
			return nil, err
		}
	}
	a.log.WithField("cipher", string(c)).Debug("Using passphrase cipher")
	return encryption.NewPassphraseCipher(secret, c)
}
