package memio

import (
	"github.com/voidhound/codol-extract/pkg/process"
)

// ProcessReader reads typed values directly out of a live process's
// address space through a process.Memory backend. A short read is
// reported to the caller, never panics: the stream stays byte-aligned
// with what was actually consumed so downstream stages can decide
// whether to keep going.
type ProcessReader struct {
	mem process.Memory
}

// NewProcessReader wraps a process.Memory as a Reader.
func NewProcessReader(mem process.Memory) *ProcessReader {
	return &ProcessReader{mem: mem}
}

func (r *ProcessReader) read(at uint64, n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := r.mem.Read(at, buf)
	if err != nil {
		return buf[:got], err
	}
	return buf, nil
}

func (r *ProcessReader) ReadU8(at uint64) (uint8, error) {
	b, err := r.read(at, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *ProcessReader) ReadU16(at uint64) (uint16, error) {
	b, err := r.read(at, 2)
	if err != nil {
		return 0, err
	}
	return decodeU16(b), nil
}

func (r *ProcessReader) ReadU32(at uint64) (uint32, error) {
	b, err := r.read(at, 4)
	if err != nil {
		return 0, err
	}
	return decodeU32(b), nil
}

func (r *ProcessReader) ReadU64(at uint64) (uint64, error) {
	b, err := r.read(at, 8)
	if err != nil {
		return 0, err
	}
	return decodeU64(b), nil
}

func (r *ProcessReader) ReadFloat32(at uint64) (float32, error) {
	b, err := r.read(at, 4)
	if err != nil {
		return 0, err
	}
	return decodeFloat32(b), nil
}

func (r *ProcessReader) ReadBytes(at uint64, n int) ([]byte, error) {
	return r.read(at, n)
}

// ReadCString delegates to the process backend's own NUL-terminated
// string reader, since only it knows where its mapped region ends.
func (r *ProcessReader) ReadCString(at uint64, maxLen int) (string, error) {
	return r.mem.ReadCString(at, maxLen)
}

var _ Reader = (*ProcessReader)(nil)
