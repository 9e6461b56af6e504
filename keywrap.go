package aescrypt

import (
	"crypto/hmac"
	"crypto/rand"
	"io"
)

// keyMaterial holds the freshly generated (encrypt) or recovered
// (decrypt) secrets for one operation: the outer key K derived from
// the passphrase, and the inner IV/key pair used to protect the body.
// All three fields are sensitive and are zeroed by the caller once the
// operation completes.
type keyMaterial struct {
	outerKey [32]byte
	iv0      [16]byte
	innerKey [32]byte
}

func (km *keyMaterial) zero() {
	zero(km.outerKey[:])
	zero(km.iv0[:])
	zero(km.innerKey[:])
}

// generateKeyMaterial creates IV1, IV0 and IK from the CSPRNG, derives
// K from passphrase and IV1, wraps IV0‖IK under (K, IV1), and computes
// the key-MAC over the wrapped blob under K. It returns the populated
// header (with no extensions set, so writeHeader emits the two default
// extensions) and the key material needed to encrypt the body.
func generateKeyMaterial(passphrase string) (*header, *keyMaterial, error) {
	h := &header{}
	if _, err := io.ReadFull(rand.Reader, h.iv1[:]); err != nil {
		return nil, nil, err
	}

	km := &keyMaterial{}
	km.outerKey = stretch(passphrase, h.iv1)

	if _, err := io.ReadFull(rand.Reader, km.iv0[:]); err != nil {
		return nil, nil, err
	}
	if _, err := io.ReadFull(rand.Reader, km.innerKey[:]); err != nil {
		return nil, nil, err
	}

	var plain [wrappedBlobSize]byte
	copy(plain[:16], km.iv0[:])
	copy(plain[16:], km.innerKey[:])

	enc, err := newCBCEncryptor(km.outerKey[:], h.iv1[:])
	if err != nil {
		return nil, nil, err
	}
	enc.CryptBlocks(h.wrapped[:], plain[:])
	zero(plain[:])

	mac := newBodyMAC(km.outerKey[:])
	mac.Write(h.wrapped[:])
	mac.Sum(h.keyMAC[:0])

	return h, km, nil
}

// recoverKeyMaterial re-derives K from the passphrase and the header's
// IV1, verifies the key-MAC over the wrapped blob in constant time, and
// — only on success — unwraps IV0‖IK. A mismatch is reported as
// ErrWrongPasswordOrTampered: the two causes (wrong passphrase, a
// tampered header) are indistinguishable by design.
func recoverKeyMaterial(h *header, passphrase, path string) (*keyMaterial, error) {
	km := &keyMaterial{}
	km.outerKey = stretch(passphrase, h.iv1)

	mac := newBodyMAC(km.outerKey[:])
	mac.Write(h.wrapped[:])
	var computed [macSize]byte
	mac.Sum(computed[:0])

	if !hmac.Equal(computed[:], h.keyMAC[:]) {
		km.zero()
		return nil, newAuthenticationError(path, ErrWrongPasswordOrTampered)
	}

	dec, err := newCBCDecryptor(km.outerKey[:], h.iv1[:])
	if err != nil {
		km.zero()
		return nil, err
	}
	var plain [wrappedBlobSize]byte
	dec.CryptBlocks(plain[:], h.wrapped[:])

	copy(km.iv0[:], plain[:16])
	copy(km.innerKey[:], plain[16:])
	zero(plain[:])

	return km, nil
}
