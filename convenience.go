package aescrypt

import "github.com/aescryptgo/aescrypt/internal/osfs"

// EncryptFile is Encrypt against the real filesystem, for callers that
// have no need for the absfs.FileSystem abstraction (in-memory testing,
// chroot-style sandboxes, and so on) and just want to encrypt a file on
// disk.
func EncryptFile(inPath, outPath, passphrase string, bufferSize int) error {
	return Encrypt(osfs.New(), inPath, outPath, passphrase, bufferSize)
}

// DecryptFile is Decrypt against the real filesystem. See EncryptFile.
func DecryptFile(inPath, outPath, passphrase string, bufferSize int) error {
	return Decrypt(osfs.New(), inPath, outPath, passphrase, bufferSize)
}
