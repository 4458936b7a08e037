package memio

import (
	"errors"
	"testing"

	"github.com/voidhound/codol-extract/pkg/process"
	"github.com/voidhound/codol-extract/pkg/xerrors"
)

func TestProcessReaderTypedReads(t *testing.T) {
	mem := process.NewFakeMemory(0x1000, []byte{
		0x01,
		0x02, 0x00,
		0x03, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x80, 0x3F,
	})
	r := NewProcessReader(mem)

	if v, err := r.ReadU8(0x1000); err != nil || v != 1 {
		t.Errorf("ReadU8: got (%v, %v)", v, err)
	}
	if v, err := r.ReadU16(0x1001); err != nil || v != 2 {
		t.Errorf("ReadU16: got (%v, %v)", v, err)
	}
	if v, err := r.ReadU32(0x1003); err != nil || v != 3 {
		t.Errorf("ReadU32: got (%v, %v)", v, err)
	}
	if v, err := r.ReadFloat32(0x1007); err != nil || v != 1.0 {
		t.Errorf("ReadFloat32: got (%v, %v)", v, err)
	}
}

func TestProcessReaderShortReadReported(t *testing.T) {
	mem := process.NewFakeMemory(0x2000, []byte{0xFF})
	r := NewProcessReader(mem)

	_, err := r.ReadU32(0x2000)
	if !errors.Is(err, xerrors.ShortRead) {
		t.Fatalf("expected ShortRead, got %v", err)
	}
}

func TestProcessReaderWidenedAddressBoundary(t *testing.T) {
	// A 32-bit game pointer, zero-extended, must land at the same
	// FakeMemory offset as the equivalent 64-bit address.
	var gamePtr32 uint32 = 0x3000
	widened := process.WidenPointer(gamePtr32)

	mem := process.NewFakeMemory(widened, []byte{0x42})
	r := NewProcessReader(mem)

	v, err := r.ReadU8(widened)
	if err != nil || v != 0x42 {
		t.Fatalf("got (%v, %v)", v, err)
	}
}
