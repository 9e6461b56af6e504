package aescrypt

import "fmt"

// ValidateBufferSize checks that a buffer size is a positive multiple
// of the AES block size, as required by §4.4 of the container format.
func ValidateBufferSize(bufferSize int) error {
	if bufferSize <= 0 || bufferSize%aesBlockSize != 0 {
		return newValidationError("bufferSize", bufferSize,
			fmt.Sprintf("must be a positive multiple of %d, got %d", aesBlockSize, bufferSize),
			ErrInvalidBufferSize)
	}
	return nil
}

// ValidatePassphrase checks the passphrase length against the format's
// 1024 UTF-16 code unit limit. The passphrase is measured in UTF-16
// code units (not bytes or runes) because that is the unit the wire
// format's password stretcher encodes in.
func ValidatePassphrase(passphrase string) error {
	n := utf16Len(passphrase)
	if n > maxPassphraseLen {
		return newValidationError("passphrase", n,
			fmt.Sprintf("exceeds %d UTF-16 code units, got %d", maxPassphraseLen, n),
			ErrPasswordTooLong)
	}
	return nil
}

// ValidatePath checks that a path parameter is non-empty.
func ValidatePath(path, field string) error {
	if path == "" {
		return newValidationError(field, path, "path cannot be empty", ErrEmptyPath)
	}
	return nil
}
