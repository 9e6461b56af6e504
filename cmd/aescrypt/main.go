// Command aescrypt is a CLI wrapper around the aescryptgo codec: an
// external collaborator, not part of the core container format, built
// to exercise it end to end.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/aescryptgo/aescrypt"
	"github.com/aescryptgo/aescrypt/internal/osfs"
)

// Exit codes. These are a CLI-only convention, not part of the
// container format.
const (
	exitSuccess        = 0
	exitParameterError = 2
	exitInputError     = 3
	exitOutputError    = 4
	exitFormatError    = 5
	exitKeyAuthError   = 6
	exitBodyAuthError  = 7
)

var (
	bufferSize   int
	verbose      bool
	passwordFlag string
	passwordFile string
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		return errorExitCode(err)
	}
	return exitSuccess
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "aescrypt",
		Short:         "Encrypt and decrypt files using the AES Crypt v2 container format",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
				With().Timestamp().Logger().Level(level)
		},
	}

	root.PersistentFlags().IntVarP(&bufferSize, "buffer-size", "p", aescrypt.DefaultBufferSize,
		"I/O buffer size in bytes; must be a positive multiple of 16")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&passwordFlag, "password", "", "passphrase (prefer --password-file or the AESCRYPT_PASSWORD environment variable)")
	root.PersistentFlags().StringVar(&passwordFile, "password-file", "", "path to a file containing the passphrase")

	root.AddCommand(newEncryptCmd())
	root.AddCommand(newDecryptCmd())
	return root
}

func newEncryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <input> <output>",
		Short: "Encrypt a file into an AES Crypt v2 container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(args[0], args[1], false)
		},
	}
}

func newDecryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <input> <output>",
		Short: "Decrypt an AES Crypt v2 container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(args[0], args[1], true)
		},
	}
}

func runOperation(inPath, outPath string, decrypt bool) error {
	passphrase, err := resolvePassword(passwordFlag, passwordFile)
	if err != nil {
		return &paramError{err}
	}

	info, statErr := os.Stat(inPath)
	var total int64
	if statErr == nil {
		total = info.Size()
	}

	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(operationLabel(decrypt)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)

	fsys := newProgressFS(osfs.New(), bar)

	log.Info().Str("operation", operationLabel(decrypt)).Str("input", inPath).Str("output", outPath).Msg("starting")

	var opErr error
	if decrypt {
		opErr = aescrypt.Decrypt(fsys, inPath, outPath, passphrase, bufferSize)
	} else {
		opErr = aescrypt.Encrypt(fsys, inPath, outPath, passphrase, bufferSize)
	}
	bar.Close()

	if opErr != nil {
		log.Error().Err(opErr).Msg("operation failed")
		return opErr
	}

	log.Info().Str("operation", operationLabel(decrypt)).Msg("completed")
	return nil
}

func operationLabel(decrypt bool) string {
	if decrypt {
		return "decrypt"
	}
	return "encrypt"
}

// paramError marks a CLI-local parameter problem (e.g. an unresolvable
// password source) distinctly from the codec's own *ValidationError, so
// errorExitCode can still map it to exitParameterError.
type paramError struct{ err error }

func (e *paramError) Error() string { return e.err.Error() }
func (e *paramError) Unwrap() error { return e.err }

func errorExitCode(err error) int {
	var pe *paramError
	if errors.As(err, &pe) {
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitParameterError
	}

	switch {
	case aescrypt.IsValidationError(err):
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitParameterError
	case aescrypt.IsIOError(err):
		fmt.Fprintln(os.Stderr, "error:", err)
		var ioErr *aescrypt.IOError
		if errors.As(err, &ioErr) && (ioErr.Operation == "open-output" || ioErr.Operation == "write" || ioErr.Operation == "rename") {
			return exitOutputError
		}
		return exitInputError
	case aescrypt.IsFormatError(err):
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitFormatError
	case aescrypt.IsAuthenticationError(err):
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, aescrypt.ErrBodyMacMismatch) {
			return exitBodyAuthError
		}
		return exitKeyAuthError
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitParameterError
	}
}
