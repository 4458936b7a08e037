// Package memio provides the byte-stream reader abstraction shared by the
// animation and model decoders: typed little-endian reads over either a
// live process-memory window or an owned in-memory buffer.
package memio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/voidhound/codol-extract/pkg/xerrors"
)

// Reader is the common interface the decoders read through. Reads past
// the end of the backing data return zeroed values and xerrors.ShortRead
// rather than panicking, matching the best-effort/advance-always policy:
// callers decide whether a short read aborts the current stage.
type Reader interface {
	// ReadU8 reads one byte at the given address/offset.
	ReadU8(at uint64) (uint8, error)
	// ReadU16 reads a little-endian uint16.
	ReadU16(at uint64) (uint16, error)
	// ReadU32 reads a little-endian uint32.
	ReadU32(at uint64) (uint32, error)
	// ReadU64 reads a little-endian uint64.
	ReadU64(at uint64) (uint64, error)
	// ReadFloat32 reads a little-endian IEEE-754 single-precision float.
	ReadFloat32(at uint64) (float32, error)
	// ReadBytes reads n raw bytes starting at the given address/offset.
	// The returned slice may be shorter than n on a short read.
	ReadBytes(at uint64, n int) ([]byte, error)
}

// shortReadErr wraps xerrors.ShortRead with the requested extent.
func shortReadErr(at uint64, want, got int) error {
	return fmt.Errorf("short read at %#x: wanted %d got %d: %w", at, want, got, xerrors.ShortRead)
}

func decodeU16(b []byte) uint16     { return binary.LittleEndian.Uint16(b) }
func decodeU32(b []byte) uint32     { return binary.LittleEndian.Uint32(b) }
func decodeU64(b []byte) uint64     { return binary.LittleEndian.Uint64(b) }
func decodeFloat32(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }
