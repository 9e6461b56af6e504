package aescrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"hash"
)

// cbcEncryptor and cbcDecryptor are not behind a swappable interface:
// the container format permanently fixes AES-256-CBC, so an
// algorithm-agnostic abstraction (as the teacher package's CipherEngine
// provides for its AEAD choices) would be speculative generality this
// format can never exercise.

// newCBCEncryptor builds an AES-256-CBC encrypting cipher.BlockMode for
// the given key and IV. Both must already be the correct AES-256/CBC
// sizes (32 and 16 bytes); this package only ever calls it with
// internally-generated or internally-parsed buffers of those sizes.
func newCBCEncryptor(key, iv []byte) (cipher.BlockMode, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes: %w", err)
	}
	return cipher.NewCBCEncrypter(block, iv), nil
}

// newCBCDecryptor builds an AES-256-CBC decrypting cipher.BlockMode.
func newCBCDecryptor(key, iv []byte) (cipher.BlockMode, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes: %w", err)
	}
	return cipher.NewCBCDecrypter(block, iv), nil
}

// newBodyMAC returns a streaming HMAC-SHA-256 hash.Hash keyed by key.
// Used identically for both the key-MAC (keyed by K) and the body-MAC
// (keyed by IK) — the two-level key hierarchy keeps these two MAC
// computations cryptographically independent even though they share
// this constructor.
func newBodyMAC(key []byte) hash.Hash {
	return hmac.New(sha256.New, key)
}
