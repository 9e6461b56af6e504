package aescrypt

// Version is the aescryptgo package version, embedded in the CREATED_BY
// header extension of every container this package writes.
const Version = "1.0"

const (
	// aesBlockSize is the AES block size in bytes; every CBC operation
	// in this package works in units of this size.
	aesBlockSize = 16

	// maxPassphraseLen is the maximum passphrase length in UTF-16 code
	// units, per the AES Crypt v2 format.
	maxPassphraseLen = 1024

	// stretchIterations is the fixed number of SHA-256 rounds the
	// password stretcher applies. Part of the wire format; not
	// configurable.
	stretchIterations = 8192

	// DefaultBufferSize is a sensible default I/O buffer size (64 KiB)
	// for Encrypt/Decrypt; any positive multiple of 16 is accepted.
	DefaultBufferSize = 64 * 1024

	// wrappedBlobSize is the fixed ciphertext length of IV0‖IK wrapped
	// under (K, IV1): 3 AES blocks.
	wrappedBlobSize = 3 * aesBlockSize

	// macSize is the HMAC-SHA-256 tag size used for both the key-MAC
	// and the body-MAC.
	macSize = 32

	// minContainerSize is the smallest possible valid container: magic
	// (3) + version (1) + reserved (1) + terminator (2) + IV1 (16) +
	// wrapped blob (48) + key-MAC (32) + tail-length (1) + body-MAC
	// (32), with zero extensions before the terminator.
	minContainerSize = 3 + 1 + 1 + 2 + 16 + wrappedBlobSize + macSize + 1 + macSize

	magicAES        = "AES"
	formatVersion   = byte(0x02)
	createdByTag    = "CREATED_BY"
	containerExtLen = 128
)
