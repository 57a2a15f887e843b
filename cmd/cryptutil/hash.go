package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hasbyte1/go-crypto-utils/hashing"
)

func newHashCmd(a *app) *cobra.Command {
	var algorithm, iterations, saltSize, keySize, driver string

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Hash a password read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if algorithm != "" {
				a.cfg.PBKDF2.Algorithm = algorithm
			}
			if iterations != "" {
				a.cfg.PBKDF2.Iterations = iterations
			}
			if saltSize != "" {
				a.cfg.PBKDF2.SaltSize = saltSize
			}
			if keySize != "" {
				a.cfg.PBKDF2.KeySize = keySize
			}
			if driver != "" {
				a.cfg.Driver = driver
			}
			m, err := a.cfg.Manager()
			if err != nil {
				return err
			}

			password, err := a.readSecret(cmd, "Password: ")
			if err != nil {
				return err
			}
			hash, err := m.Make(password)
			if err != nil {
				return err
			}
			cmd.Println(hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", "", "PBKDF2 digest (default from config)")
	cmd.Flags().StringVar(&iterations, "iterations", "", "PBKDF2 iteration count")
	cmd.Flags().StringVar(&saltSize, "salt-size", "", "Random salt bytes")
	cmd.Flags().StringVar(&keySize, "key-size", "", "Derived key bytes")
	cmd.Flags().StringVar(&driver, "driver", "", "Hashing driver (pbkdf2|bcrypt)")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <hash>",
		Short: "Check a password read from stdin against a stored hash",
		Long: "Check a password read from stdin against a stored hash.\n" +
			"Exits 0 on match and 1 on mismatch.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.cfg.Manager()
			if err != nil {
				return err
			}
			password, err := a.readSecret(cmd, "Password: ")
			if err != nil {
				return err
			}
			ok, err := m.CheckWithDetect(password, args[0])
			if err != nil {
				return err
			}
			cmd.Println(ok)
			if !ok {
				return errMismatch
			}
			return nil
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "info <hash>",
		Short: "Show the parameters embedded in a stored hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.cfg.Manager()
			if err != nil {
				return err
			}
			info, err := m.Info(args[0])
			if err != nil {
				return err
			}
			stale, err := m.NeedsRehash(args[0])
			if err != nil {
				return err
			}

			out := map[string]any{
				"driver":       string(info.Driver),
				"params":       info.Params,
				"needs_rehash": stale,
			}
			switch output {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(out); err != nil {
					return err
				}
				return enc.Close()
			case "", "text":
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", output)
			}

			cmd.Printf("driver: %s\n", info.Driver)
			keys := make([]string, 0, len(info.Params))
			for k := range info.Params {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				cmd.Printf("%s: %v\n", k, info.Params[k])
			}
			cmd.Printf("needs_rehash: %t\n", stale)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text|json|yaml)")
	return cmd
}

func newTuneCmd(a *app) *cobra.Command {
	var (
		target    time.Duration
		algorithm string
		keySize   int
	)

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Suggest an iteration count for a target hashing time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if algorithm == "" {
				algorithm = a.cfg.PBKDF2.Algorithm
			}
			if keySize == 0 {
				opts, err := a.cfg.PBKDF2Options()
				if err != nil {
					return err
				}
				keySize = opts.KeySize
			}
			n, err := hashing.CalibrateIterations(cmd.Context(), algorithm, keySize, target)
			if err != nil {
				return fmt.Errorf("calibration failed: %w", err)
			}
			cmd.Println(n)
			return nil
		},
	}

	cmd.Flags().DurationVar(&target, "target", 250*time.Millisecond, "Target time per hash")
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "PBKDF2 digest (default from config)")
	cmd.Flags().IntVar(&keySize, "key-size", 0, "Derived key bytes (default from config)")
	return cmd
}
