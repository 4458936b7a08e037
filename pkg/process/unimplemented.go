package process

import "fmt"

// Unimplemented is a Memory that always reports failure. It gives
// cmd/codolxtool something concrete to construct by default without
// pulling an OS-specific syscall dependency into this module: a real
// backend (e.g. a Windows ReadProcessMemory-based reader) is meant to be
// substituted by whoever deploys this against a live game process, by
// supplying their own Memory implementation in its place.
type Unimplemented struct{}

func (Unimplemented) Attach(processName string) error {
	return attachError(processName, fmt.Errorf("no live process backend compiled into this build"))
}

func (Unimplemented) MainModuleAddress() (uint64, error) {
	return 0, badModuleError(fmt.Errorf("not attached"))
}

func (Unimplemented) Read(addr uint64, buf []byte) (int, error) {
	return 0, fmt.Errorf("not attached")
}

func (Unimplemented) ReadCString(addr uint64, maxLen int) (string, error) {
	return "", fmt.Errorf("not attached")
}

var _ Memory = Unimplemented{}
