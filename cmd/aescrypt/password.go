package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

const passwordEnvVar = "AESCRYPT_PASSWORD"

// resolvePassword determines the passphrase for one invocation, in
// priority order: --password flag, --password-file, the
// AESCRYPT_PASSWORD environment variable, and finally an interactive
// prompt — but only when stdin is a terminal. A non-TTY stdin with none
// of the other sources set is a parameter error: there is no silent
// fallback to a plaintext Scanln read, since that would echo the
// passphrase to whatever is piping into stdin.
func resolvePassword(flagValue, passwordFile string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if passwordFile != "" {
		b, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", fmt.Errorf("reading --password-file: %w", err)
		}
		return strings.TrimRight(string(b), "\r\n"), nil
	}

	if v := os.Getenv(passwordEnvVar); v != "" {
		return v, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no password source available: pass --password, --password-file, set %s, or run interactively", passwordEnvVar)
	}

	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password from terminal: %w", err)
	}
	return string(b), nil
}
