package aescrypt

import (
	"crypto/sha256"
	"unicode/utf16"
)

// utf16Len returns the number of UTF-16 code units s encodes to,
// matching the unit the AES Crypt v2 format measures passphrase length
// in (surrogate pairs count as 2).
func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// utf16LE encodes s as UTF-16, little-endian, with no byte-order mark,
// passing code units through unchanged (no normalization). This is
// mandatory for interoperability with the wider AES Crypt v2 ecosystem.
func utf16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		out[2*i] = byte(u)
		out[2*i+1] = byte(u >> 8)
	}
	return out
}

// stretch derives the 32-byte outer key K from a passphrase and the
// 16-byte external IV (IV1), per the AES Crypt v2 password-stretching
// algorithm: initialize a 32-byte digest as iv1‖(16 zero bytes), then
// repeatedly rehash digest‖utf16le(passphrase) with SHA-256 for a fixed
// 8192 rounds. The iteration count and the zero-padded initial digest
// are wire-format constants, not tunable parameters.
func stretch(passphrase string, iv1 [16]byte) [32]byte {
	var digest [32]byte
	copy(digest[:16], iv1[:])
	// digest[16:32] is already zero.

	passBytes := utf16LE(passphrase)

	for i := 0; i < stretchIterations; i++ {
		h := sha256.New()
		h.Write(digest[:])
		h.Write(passBytes)
		h.Sum(digest[:0])
	}

	zero(passBytes)
	return digest
}
