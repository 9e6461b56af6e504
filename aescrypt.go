package aescrypt

import (
	"io"
	"os"

	"github.com/absfs/absfs"
	"github.com/google/uuid"
)

// Encrypt reads the plaintext at inPath on fsys, encrypts it under
// passphrase into a new AES Crypt v2 container, and atomically
// produces it at outPath. bufferSize must be a positive multiple of
// 16; passphrase must be at most 1024 UTF-16 code units.
//
// outPath is never created or modified unless the whole operation
// succeeds: the container is built in a temporary sibling file and
// renamed onto outPath only at the end, which means there's no need
// to remove a partially-written outPath on failure — it was never
// touched in the first place. This is a strictly stronger version of
// the "remove the partial output" rule the format requires.
func Encrypt(fsys absfs.FileSystem, inPath, outPath string, passphrase string, bufferSize int) error {
	if err := ValidatePath(inPath, "inPath"); err != nil {
		return err
	}
	if err := ValidatePath(outPath, "outPath"); err != nil {
		return err
	}
	if err := ValidateBufferSize(bufferSize); err != nil {
		return err
	}
	if err := ValidatePassphrase(passphrase); err != nil {
		return err
	}

	in, err := fsys.OpenFile(inPath, os.O_RDONLY, 0)
	if err != nil {
		return newIOError("open-input", inPath, ErrInputNotFound, err)
	}
	defer in.Close()

	tmpPath := outPath + "." + uuid.New().String() + ".tmp"
	out, err := fsys.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return newIOError("open-output", outPath, ErrOutputUnwritable, err)
	}

	if err := encryptTo(out, in, passphrase, bufferSize); err != nil {
		out.Close()
		fsys.Remove(tmpPath)
		return err
	}

	if err := out.Close(); err != nil {
		fsys.Remove(tmpPath)
		return newIOError("write", outPath, ErrOutputUnwritable, err)
	}

	if err := fsys.Rename(tmpPath, outPath); err != nil {
		fsys.Remove(tmpPath)
		return newIOError("rename", outPath, ErrOutputUnwritable, err)
	}

	return nil
}

func encryptTo(out io.Writer, in io.Reader, passphrase string, bufferSize int) error {
	h, km, err := generateKeyMaterial(passphrase)
	if err != nil {
		return err
	}
	defer km.zero()

	if err := writeHeader(out, h); err != nil {
		return err
	}

	return encryptBody(out, in, km.innerKey[:], km.iv0[:], bufferSize)
}

// Decrypt reads an AES Crypt v2 container at inPath on fsys, verifies
// it authenticates under passphrase, and atomically produces the
// recovered plaintext at outPath. bufferSize must be a positive
// multiple of 16.
//
// Nothing is ever written to outPath unless the key-MAC and the
// body-MAC both verify: the plaintext is assembled in a temporary
// sibling file, and that temporary file is removed — never exposed at
// outPath — if anything fails, including the final body-MAC check.
func Decrypt(fsys absfs.FileSystem, inPath, outPath string, passphrase string, bufferSize int) error {
	if err := ValidatePath(inPath, "inPath"); err != nil {
		return err
	}
	if err := ValidatePath(outPath, "outPath"); err != nil {
		return err
	}
	if err := ValidateBufferSize(bufferSize); err != nil {
		return err
	}
	if err := ValidatePassphrase(passphrase); err != nil {
		return err
	}

	info, err := fsys.Stat(inPath)
	if err != nil {
		return newIOError("open-input", inPath, ErrInputNotFound, err)
	}
	if info.Size() < minContainerSize {
		return newFormatError(inPath, "file is smaller than the minimum valid container size", ErrNotAesCryptFile)
	}

	in, err := fsys.OpenFile(inPath, os.O_RDONLY, 0)
	if err != nil {
		return newIOError("open-input", inPath, ErrInputNotFound, err)
	}
	defer in.Close()

	tmpPath := outPath + "." + uuid.New().String() + ".tmp"
	out, err := fsys.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return newIOError("open-output", outPath, ErrOutputUnwritable, err)
	}

	if err := decryptTo(out, in, passphrase, info.Size(), bufferSize, inPath); err != nil {
		out.Close()
		fsys.Remove(tmpPath)
		return err
	}

	if err := out.Close(); err != nil {
		fsys.Remove(tmpPath)
		return newIOError("write", outPath, ErrOutputUnwritable, err)
	}

	if err := fsys.Rename(tmpPath, outPath); err != nil {
		fsys.Remove(tmpPath)
		return newIOError("rename", outPath, ErrOutputUnwritable, err)
	}

	return nil
}

func decryptTo(out io.Writer, in io.Reader, passphrase string, inputSize int64, bufferSize int, path string) error {
	h, headerSize, err := readHeader(in, path)
	if err != nil {
		return err
	}

	km, err := recoverKeyMaterial(h, passphrase, path)
	if err != nil {
		return err
	}
	defer km.zero()

	// The header's on-wire size varies with its extension list, so the
	// body size is derived from the input size rather than assumed:
	// readHeader already consumed the header from `in`, and everything
	// remaining is body ciphertext + tail-length byte + body-MAC.
	bodySize := inputSize - headerSize - 1 - macSize
	if bodySize < 0 {
		return newFormatError(path, "container too small for its own header", ErrCorruptFile)
	}

	return decryptBody(out, in, km.innerKey[:], km.iv0[:], bodySize, bufferSize, path)
}
