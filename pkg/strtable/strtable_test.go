package strtable

import (
	"testing"

	"github.com/voidhound/codol-extract/pkg/process"
)

func padTo(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	return b
}

func TestResolveFixedStride(t *testing.T) {
	base := uint64(0x1000)
	data := make([]byte, 0)
	data = append(data, []byte{0, 0, 0, 0}...) // header field, skipped
	data = append(data, padTo("tag_origin", stride)...)
	data = append(data, padTo("j_spine1", stride)...)

	mem := process.NewFakeMemory(base, data)
	table := New(mem, base)

	if got := table.Resolve(0); got != "tag_origin" {
		t.Errorf("Resolve(0) = %q, want tag_origin", got)
	}
	if got := table.Resolve(1); got != "j_spine1" {
		t.Errorf("Resolve(1) = %q, want j_spine1", got)
	}
}

func TestResolveOutOfRangeReturnsEmpty(t *testing.T) {
	base := uint64(0x1000)
	data := append([]byte{0, 0, 0, 0}, padTo("only", stride)...)

	mem := process.NewFakeMemory(base, data)
	table := New(mem, base)

	if got := table.Resolve(50); got != "" {
		t.Errorf("Resolve(50) = %q, want empty string", got)
	}
}
