package ifs

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/voidhound/codol-extract/pkg/hashing"
	"github.com/voidhound/codol-extract/pkg/xerrors"
)

// aesKey is the fixed 24-byte AES-192 key embedded in the shipped game;
// it gates content in a retail product and is not a secret in any
// meaningful sense (see design notes on fixed key/IV constants).
var aesKey = []byte{
	0x15, 0x9a, 0x03, 0x25, 0xe0, 0x75, 0x2e, 0x80, 0xc6, 0xc0, 0x94, 0x2a,
	0x50, 0x5c, 0x1c, 0x68, 0x8c, 0x17, 0xef, 0x53, 0x99, 0xf8, 0x68, 0x3c,
}

// payloadBlockSize is the AES-CTR chunking granularity used when
// decrypting an entry's compressed payload.
const payloadBlockSize = 0x8000

// ReadFile resolves name to its FileEntry, decrypts and inflates its
// payload, and returns the unpacked bytes.
func (l *Library) ReadFile(name string) ([]byte, error) {
	bare := filepath.Base(name)
	entryHash := hashing.HashXXHashString(bare)
	entry, ok := l.files[entryHash]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, xerrors.UnknownEntry)
	}
	if entry.PackageIndex < 0 || entry.PackageIndex >= len(l.packages) {
		return nil, fmt.Errorf("%s: %w", name, xerrors.UnknownEntry)
	}

	return readEntryPayload(l.packages[entry.PackageIndex].path, entry, bare)
}

// readEntryPayload performs the multi-stage read the source's
// ReadFileEntry does: read the raw (still-encrypted) bytes, split off
// the trailing unpacked-size field, derive the per-entry IV, AES-CTR
// decrypt in payloadBlockSize chunks, then zlib-inflate the result.
func readEntryPayload(packagePath string, entry FileEntry, bareName string) ([]byte, error) {
	f, err := os.Open(packagePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", packagePath, err)
	}
	defer f.Close()

	if _, err := f.Seek(entry.FilePosition, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek entry: %w", err)
	}

	raw := make([]byte, entry.CompressedSize)
	if _, err := io.ReadFull(f, raw); err != nil {
		return nil, fmt.Errorf("read entry payload: %w: %v", xerrors.ShortRead, err)
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("entry payload too small: %w", xerrors.DecryptFailed)
	}

	unpackedSize := binary.LittleEndian.Uint32(raw[len(raw)-4:])
	packed := raw[:len(raw)-4]
	nonce := hashing.HashCRC32StringInt(bareName)

	block, err := aes.NewCipher(aesKey[:24])
	if err != nil {
		return nil, fmt.Errorf("aes init: %w: %v", xerrors.DecryptFailed, err)
	}

	decrypted := make([]byte, len(packed))
	var offset uint32
	for offset < uint32(len(packed)) {
		remaining := uint32(len(packed)) - offset
		blockSize := remaining
		if blockSize > payloadBlockSize {
			blockSize = payloadBlockSize
		}

		iv := buildEntryIV(nonce, unpackedSize, offset, blockSize)
		stream := cipher.NewCTR(block, iv)
		stream.XORKeyStream(decrypted[offset:offset+blockSize], packed[offset:offset+blockSize])

		offset += blockSize
	}

	unpacked := make([]byte, unpackedSize)
	zr, err := zlib.NewReader(bytes.NewReader(decrypted))
	if err != nil {
		return nil, fmt.Errorf("zlib init: %w: %v", xerrors.InflateFailed, err)
	}
	defer zr.Close()

	if _, err := io.ReadFull(zr, unpacked); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("zlib inflate: %w: %v", xerrors.InflateFailed, err)
	}

	return unpacked, nil
}

// buildEntryIV lays out the 16-byte AES-CTR IV: bytes 0..3 the CRC32
// nonce, bytes 4..7 the unpacked size, bytes 8..11 the block's starting
// offset, bytes 12..15 the block's size — all little-endian, matching
// the source's IVPartLength layout exactly.
func buildEntryIV(nonce, unpackedSize, blockOffset, blockSize uint32) []byte {
	iv := make([]byte, 16)
	binary.LittleEndian.PutUint32(iv[0:4], nonce)
	binary.LittleEndian.PutUint32(iv[4:8], unpackedSize)
	binary.LittleEndian.PutUint32(iv[8:12], blockOffset)
	binary.LittleEndian.PutUint32(iv[12:16], blockSize)
	return iv
}
