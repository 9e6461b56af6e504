package aescrypt

import (
	"encoding/binary"
	"fmt"
	"io"
)

// extension is a single AES Crypt v2 header extension record: a
// 2-byte big-endian length followed by that many opaque bytes. The
// codec never interprets extension content; extensions are NOT covered
// by any MAC and MUST NOT be trusted for security decisions.
type extension struct {
	content []byte
}

// createdByExtension builds the mandatory "CREATED_BY" extension
// identifying this implementation, matching the pyAesCrypt convention
// of "<name> <version>" as the identifier.
func createdByExtension() extension {
	identifier := "aescryptgo " + Version
	content := make([]byte, 0, len(createdByTag)+1+len(identifier))
	content = append(content, createdByTag...)
	content = append(content, 0x00)
	content = append(content, identifier...)
	return extension{content: content}
}

// containerExtension builds the mandatory 128-byte reserved "container"
// extension (all zero bytes), reserved for future in-place metadata.
func containerExtension() extension {
	return extension{content: make([]byte, containerExtLen)}
}

// header holds everything written before the body ciphertext: the
// extension list, the outer IV (IV1), the wrapped IV0‖IK blob, and its
// authenticating key-MAC.
type header struct {
	extensions []extension
	iv1        [16]byte
	wrapped    [wrappedBlobSize]byte
	keyMAC     [macSize]byte
}

// writeHeader writes the fixed prefix, the extension list (including
// the two mandatory extensions), the terminator, IV1, the wrapped blob
// and the key-MAC, in that order, per §4.2 of the format.
func writeHeader(w io.Writer, h *header) error {
	if _, err := io.WriteString(w, magicAES); err != nil {
		return err
	}
	if _, err := w.Write([]byte{formatVersion, 0x00}); err != nil {
		return err
	}

	exts := h.extensions
	if exts == nil {
		exts = []extension{createdByExtension(), containerExtension()}
	}
	for _, ext := range exts {
		var lenBuf [2]byte
		binary.BigEndian.PutUint16(lenBuf[:], uint16(len(ext.content)))
		if _, err := w.Write(lenBuf[:]); err != nil {
			return err
		}
		if _, err := w.Write(ext.content); err != nil {
			return err
		}
	}
	// extension terminator
	if _, err := w.Write([]byte{0x00, 0x00}); err != nil {
		return err
	}

	if _, err := w.Write(h.iv1[:]); err != nil {
		return err
	}
	if _, err := w.Write(h.wrapped[:]); err != nil {
		return err
	}
	if _, err := w.Write(h.keyMAC[:]); err != nil {
		return err
	}
	return nil
}

// readHeader parses magic, version, and the extension list (skipping
// unknown extension content without interpreting it), then reads IV1,
// the wrapped blob and the key-MAC. path is used only to annotate
// errors.
// readHeader returns the parsed header and the exact number of bytes
// consumed from r, since the extension list is variable-length and the
// caller needs that count to locate the body/tail/MAC that follow.
func readHeader(r io.Reader, path string) (*header, int64, error) {
	var consumed int64

	magic := make([]byte, 3)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, 0, newFormatError(path, "failed to read magic", ErrNotAesCryptFile)
	}
	consumed += 3
	if string(magic) != magicAES {
		return nil, 0, newFormatError(path, "bad magic bytes", ErrNotAesCryptFile)
	}

	var versionAndReserved [2]byte
	if _, err := io.ReadFull(r, versionAndReserved[:]); err != nil {
		return nil, 0, newFormatError(path, "truncated version/reserved", ErrCorruptFile)
	}
	consumed += 2
	if versionAndReserved[0] != formatVersion {
		return nil, 0, newFormatError(path,
			fmt.Sprintf("unsupported version byte 0x%02x", versionAndReserved[0]),
			ErrUnsupportedVersion)
	}

	for {
		var lenBuf [2]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, 0, newFormatError(path, "truncated extension length", ErrCorruptFile)
		}
		consumed += 2
		l := binary.BigEndian.Uint16(lenBuf[:])
		if l == 0 {
			break
		}
		if _, err := io.CopyN(io.Discard, r, int64(l)); err != nil {
			return nil, 0, newFormatError(path, "truncated extension content", ErrCorruptFile)
		}
		consumed += int64(l)
	}

	h := &header{}
	if _, err := io.ReadFull(r, h.iv1[:]); err != nil {
		return nil, 0, newFormatError(path, "truncated IV1", ErrCorruptFile)
	}
	consumed += int64(len(h.iv1))
	if _, err := io.ReadFull(r, h.wrapped[:]); err != nil {
		return nil, 0, newFormatError(path, "truncated wrapped key blob", ErrCorruptFile)
	}
	consumed += int64(len(h.wrapped))
	if _, err := io.ReadFull(r, h.keyMAC[:]); err != nil {
		return nil, 0, newFormatError(path, "truncated key-MAC", ErrCorruptFile)
	}
	consumed += int64(len(h.keyMAC))

	return h, consumed, nil
}
