// Package strtable resolves a numeric string id to its canonical text
// via a fixed-stride table in the target process's address space.
package strtable

import "github.com/voidhound/codol-extract/pkg/process"

// stride is the fixed byte distance between consecutive string table
// entries, and headerSize skips the table's own 4-byte leading field
// before the first entry.
const (
	stride     = 20
	headerSize = 4
	maxLen     = 1024
)

// Table resolves string ids against a process-backed string table whose
// base address is fixed for the life of the Table.
type Table struct {
	mem  process.Memory
	base uint64
}

// New returns a Table reading entries relative to base, the address of
// the table's own leading 4-byte field (game pointer already widened).
func New(mem process.Memory, base uint64) *Table {
	return &Table{mem: mem, base: base}
}

// Resolve returns the C-string at stride*id bytes past the table's
// header. A short or failed read yields an empty string; callers treat
// blank results as permitted, per the source's own tolerance for
// invalid indices.
func (t *Table) Resolve(id uint32) string {
	addr := t.base + headerSize + uint64(id)*stride
	s, err := t.mem.ReadCString(addr, maxLen)
	if err != nil {
		return ""
	}
	return s
}

var _ interface{ Resolve(uint32) string } = (*Table)(nil)
