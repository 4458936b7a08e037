package process

import (
	"bytes"
	"fmt"

	"github.com/voidhound/codol-extract/pkg/xerrors"
)

// FakeMemory is a Memory backed by a plain in-memory buffer, addressed
// starting at Base. It lets decoder tests exercise the same Memory
// interface a real attached process would satisfy, without needing one.
type FakeMemory struct {
	// Base is the address the first byte of Data is mapped to.
	Base uint64
	Data []byte

	// Attached records whether Attach has been called, for tests that
	// want to assert attach ordering.
	Attached   bool
	AttachErr  error
	ModuleAddr uint64
	ModuleErr  error
}

// NewFakeMemory creates a FakeMemory mapping data starting at base.
func NewFakeMemory(base uint64, data []byte) *FakeMemory {
	return &FakeMemory{Base: base, Data: data, ModuleAddr: base}
}

func (f *FakeMemory) Attach(processName string) error {
	f.Attached = true
	if f.AttachErr != nil {
		return attachError(processName, f.AttachErr)
	}
	return nil
}

func (f *FakeMemory) MainModuleAddress() (uint64, error) {
	if f.ModuleErr != nil {
		return 0, badModuleError(f.ModuleErr)
	}
	return f.ModuleAddr, nil
}

// Read copies from the backing buffer, zero-extending addr's relationship
// to Base the same way a real 32-bit-pointer target would: offset is
// simply addr-Base, computed in 64-bit arithmetic throughout.
func (f *FakeMemory) Read(addr uint64, buf []byte) (int, error) {
	if addr < f.Base {
		return 0, fmt.Errorf("read at %#x below base %#x: %w", addr, f.Base, xerrors.ShortRead)
	}

	offset := addr - f.Base
	if offset >= uint64(len(f.Data)) {
		return 0, fmt.Errorf("read at %#x past end of fake memory: %w", addr, xerrors.ShortRead)
	}

	n := copy(buf, f.Data[offset:])
	if n < len(buf) {
		return n, fmt.Errorf("short read at %#x: wanted %d got %d: %w", addr, len(buf), n, xerrors.ShortRead)
	}
	return n, nil
}

// ReadCString reads bytes from addr until a NUL or maxLen is reached.
func (f *FakeMemory) ReadCString(addr uint64, maxLen int) (string, error) {
	if addr < f.Base {
		return "", fmt.Errorf("read at %#x below base %#x: %w", addr, f.Base, xerrors.ShortRead)
	}

	offset := addr - f.Base
	if offset >= uint64(len(f.Data)) {
		return "", fmt.Errorf("read at %#x past end of fake memory: %w", addr, xerrors.ShortRead)
	}

	remaining := f.Data[offset:]
	if len(remaining) > maxLen {
		remaining = remaining[:maxLen]
	}

	if idx := bytes.IndexByte(remaining, 0); idx >= 0 {
		return string(remaining[:idx]), nil
	}
	return string(remaining), nil
}

var _ Memory = (*FakeMemory)(nil)
