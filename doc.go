// Package aescrypt implements the AES Crypt version 2 streaming file
// container format: password-based key derivation, a two-level AES key
// hierarchy, CBC body encryption, and an HMAC-SHA-256 chain that
// authenticates both the wrapped key and the ciphertext body.
//
// # Overview
//
// An AES Crypt v2 container is produced from a plaintext stream and a
// passphrase. The encoder:
//
//  1. stretches the passphrase into an outer key K using the external
//     IV (IV1) and 8192 rounds of SHA-256 (see stretch.go);
//  2. generates a random inner IV (IV0) and inner key (IK), wraps
//     IV0‖IK under (K, IV1) with AES-256-CBC, and authenticates the
//     wrapped blob with HMAC-SHA-256 under K;
//  3. encrypts the body under (IK, IV0) with AES-256-CBC using a
//     non-PKCS#7 tail convention (see stream.go), and authenticates the
//     body ciphertext with HMAC-SHA-256 under IK.
//
// Decoding reverses this, refusing to reveal any plaintext until the
// key-MAC (and, for the body, the body-MAC) has verified.
//
// # Filesystem abstraction
//
// Encrypt and Decrypt operate against an absfs.FileSystem rather than
// the os package directly, so the identical codec runs against real
// files or against an in-memory github.com/absfs/memfs filesystem in
// tests. EncryptFile and DecryptFile are thin convenience wrappers over
// the real OS filesystem (internal/osfs) for callers who don't care.
//
// # Security considerations
//
// Protected against: tampering or truncation of the wrapped key or the
// body (HMAC verification gates plaintext release), wrong passphrases
// (the key-MAC will not verify).
//
// Not protected against: memory dumps while a passphrase or derived key
// is live (Go's garbage collector and escape analysis make reliable
// zeroisation unprovable — zeroize.go best-efforts it), side-channel
// attacks, compromised hosts, or metadata leakage (file size, the
// CREATED_BY extension content).
//
// # Compatibility
//
// The wire format is fixed by the AES Crypt v2 specification and is not
// configurable: version byte, extension framing, wrapped-blob size,
// MAC sizes, and the tail-length convention must match byte-for-byte
// for interoperability with the wider AES Crypt ecosystem.
package aescrypt
