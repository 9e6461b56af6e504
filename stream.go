package aescrypt

import (
	"crypto/hmac"
	"io"
)

// encryptBody reads plaintext from r in bufferSize chunks, encrypts it
// under (innerKey, iv0) with AES-256-CBC, writes ciphertext to w, and
// feeds the body-MAC as ciphertext is produced. On the final short
// read (including a zero-byte read for an empty file) it applies the
// AES Crypt tail convention: pad to a block boundary only if the last
// read wasn't already block-aligned, using a pad value equal to the
// pad length — identical to PKCS#7 except that an already-aligned
// final read gets NO extra padding block, unlike PKCS#7. The one-byte
// tail length (0–15) disambiguates this on decrypt. Finally it writes
// the tail-length byte and the 32-byte body-MAC.
func encryptBody(w io.Writer, r io.Reader, innerKey, iv0 []byte, bufferSize int) error {
	enc, err := newCBCEncryptor(innerKey, iv0)
	if err != nil {
		return err
	}
	mac := newBodyMAC(innerKey)

	buf := make([]byte, bufferSize)
	for {
		n, err := io.ReadFull(r, buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return err
		}

		if n == bufferSize && err == nil {
			ct := make([]byte, n)
			enc.CryptBlocks(ct, buf[:n])
			mac.Write(ct)
			if _, werr := w.Write(ct); werr != nil {
				return werr
			}
			continue
		}

		// short read (possibly zero bytes): apply the tail convention
		// and finish.
		r := n % aesBlockSize
		padLen := 0
		if r != 0 {
			padLen = aesBlockSize - r
		}
		padded := make([]byte, n+padLen)
		copy(padded, buf[:n])
		for i := n; i < len(padded); i++ {
			padded[i] = byte(padLen)
		}

		if len(padded) > 0 {
			ct := make([]byte, len(padded))
			enc.CryptBlocks(ct, padded)
			mac.Write(ct)
			if _, werr := w.Write(ct); werr != nil {
				return werr
			}
		}

		if _, werr := w.Write([]byte{byte(r)}); werr != nil {
			return werr
		}

		var tag [macSize]byte
		mac.Sum(tag[:0])
		_, werr := w.Write(tag[:])
		return werr
	}
}

// decryptBody reads ciphertext from r (which has exactly bodySize
// bytes of body ciphertext followed by the tail-length byte and the
// body-MAC available, as computed by the caller from the input file
// size) and writes the recovered plaintext to w, verifying the
// body-MAC only after all plaintext has been produced. A tail-length
// byte ≥ 16, any short read, or a final MAC mismatch is fatal.
func decryptBody(w io.Writer, r io.Reader, innerKey, iv0 []byte, bodySize int64, bufferSize int, path string) error {
	dec, err := newCBCDecryptor(innerKey, iv0)
	if err != nil {
		return err
	}
	mac := newBodyMAC(innerKey)

	remaining := bodySize
	buf := make([]byte, bufferSize)

	for remaining > int64(bufferSize) {
		if _, err := io.ReadFull(r, buf); err != nil {
			return newFormatError(path, "truncated body block", ErrCorruptFile)
		}
		mac.Write(buf)
		pt := make([]byte, bufferSize)
		dec.CryptBlocks(pt, buf)
		if _, err := w.Write(pt); err != nil {
			return err
		}
		remaining -= int64(bufferSize)
	}

	for remaining > aesBlockSize {
		block := buf[:aesBlockSize]
		if _, err := io.ReadFull(r, block); err != nil {
			return newFormatError(path, "truncated body block", ErrCorruptFile)
		}
		mac.Write(block)
		pt := make([]byte, aesBlockSize)
		dec.CryptBlocks(pt, block)
		if _, err := w.Write(pt); err != nil {
			return err
		}
		remaining -= aesBlockSize
	}

	// Exactly `remaining` bytes of body are left: either one full
	// block (16) or none (empty plaintext).
	var last []byte
	if remaining == aesBlockSize {
		last = make([]byte, aesBlockSize)
		if _, err := io.ReadFull(r, last); err != nil {
			return newFormatError(path, "truncated final body block", ErrCorruptFile)
		}
	} else if remaining != 0 {
		return newFormatError(path, "body size not aligned to the tail convention", ErrCorruptFile)
	}
	mac.Write(last)

	var tailBuf [1]byte
	if _, err := io.ReadFull(r, tailBuf[:]); err != nil {
		return newFormatError(path, "truncated tail-length byte", ErrCorruptFile)
	}
	tail := tailBuf[0]
	if tail >= aesBlockSize {
		return newFormatError(path, "tail-length byte out of range", ErrCorruptFile)
	}

	plain := make([]byte, len(last))
	if len(last) > 0 {
		dec.CryptBlocks(plain, last)
	}
	trim := (aesBlockSize - int(tail)) % aesBlockSize
	if trim > len(plain) {
		return newFormatError(path, "tail trim exceeds final block", ErrCorruptFile)
	}
	plain = plain[:len(plain)-trim]

	if _, err := w.Write(plain); err != nil {
		return err
	}

	var storedTag [macSize]byte
	if _, err := io.ReadFull(r, storedTag[:]); err != nil {
		return newFormatError(path, "truncated body-MAC", ErrCorruptFile)
	}
	var computedTag [macSize]byte
	mac.Sum(computedTag[:0])
	if !hmac.Equal(storedTag[:], computedTag[:]) {
		return newAuthenticationError(path, ErrBodyMacMismatch)
	}

	return nil
}
