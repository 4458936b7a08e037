// Package process provides the external process-memory collaborator used
// by the decoders to read game data out of a running target process.
package process

import (
	"fmt"

	"github.com/voidhound/codol-extract/pkg/xerrors"
)

// Memory is the interface the decoders use to pull bytes out of the
// target process's address space. On-disk and in-process pointers are
// 32-bit; implementations zero-extend to a 64-bit address only at the
// read boundary, never earlier.
type Memory interface {
	// Attach connects to the named process. Returns xerrors.AttachFailed
	// wrapped with detail on failure.
	Attach(processName string) error

	// MainModuleAddress returns the base address of the target's main
	// module. Returns xerrors.BadModule if the module could not be
	// validated.
	MainModuleAddress() (uint64, error)

	// Read copies len(buf) bytes starting at addr into buf. A short read
	// (fewer bytes available than requested) returns the partial byte
	// count and xerrors.ShortRead rather than panicking; callers decide
	// whether to abort the current decode stage.
	Read(addr uint64, buf []byte) (int, error)

	// ReadCString reads a NUL-terminated string starting at addr, up to
	// maxLen bytes. The terminator is not included in the result.
	ReadCString(addr uint64, maxLen int) (string, error)
}

// WidenPointer zero-extends a 32-bit in-process pointer to a 64-bit
// address. Kept as a named helper so the widening boundary is explicit
// and never accidentally applied twice.
func WidenPointer(ptr32 uint32) uint64 {
	return uint64(ptr32)
}

// attachError wraps xerrors.AttachFailed with the process name that
// could not be attached to.
func attachError(processName string, cause error) error {
	return fmt.Errorf("attach to %q: %w: %v", processName, xerrors.AttachFailed, cause)
}

// badModuleError wraps xerrors.BadModule with detail about the
// validation failure.
func badModuleError(cause error) error {
	return fmt.Errorf("validate main module: %w: %v", xerrors.BadModule, cause)
}
