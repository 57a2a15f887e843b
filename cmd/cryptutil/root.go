package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hasbyte1/go-crypto-utils/internal/config"
	"github.com/hasbyte1/go-crypto-utils/internal/logging"
)

// Exit codes.
const (
	exitSuccess  = 0
	exitMismatch = 1
	exitError    = 2
)

// SecretEnvVar holds the passphrase for encrypt and decrypt.
const SecretEnvVar = "CRYPTUTIL_SECRET"

// errMismatch is returned by verify when the password does not match. It is
// reported through the exit code only.
var errMismatch = errors.New("password does not match")

type globalFlags struct {
	configFile string
	verbose    bool
	logFormat  string
}

// app is the state shared by every subcommand for one invocation.
type app struct {
	flags globalFlags
	cfg   *config.Config
	log   *logrus.Logger
	in    *bufio.Reader
}

func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errMismatch):
		return exitMismatch
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return exitError
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "cryptutil",
		Short:         "Hash, verify and encrypt credentials",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configFile, "config", "", "Path to a YAML config file")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.flags.logFormat, "log-format", logging.FormatText, "Log format (text|json)")

	root.AddCommand(
		newHashCmd(a),
		newVerifyCmd(a),
		newInfoCmd(a),
		newTuneCmd(a),
		newEncryptCmd(a),
		newDecryptCmd(a),
	)
	return root
}

// setup loads configuration and installs the logger. Flags given on the
// command line override the config file and environment.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Log.Verbose = a.flags.verbose
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.flags.logFormat
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Verbose, cfg.Log.Format)
	if err != nil {
		return err
	}
	logging.Install(logger)

	a.cfg = cfg
	a.log = logger
	a.in = bufio.NewReader(cmd.InOrStdin())
	return nil
}

// readSecret prompts without echo when stdin is a terminal and otherwise
// reads a single line.
func (a *app) readSecret(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" && errors.Is(err, io.EOF) {
		return "", errors.New("no password on stdin")
	}
	return line, nil
}

// readInput returns args joined by spaces, or the rest of stdin without its
// final newline.
func (a *app) readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(a.in)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	s := strings.TrimSuffix(string(b), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}
