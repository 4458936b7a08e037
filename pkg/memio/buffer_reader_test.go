package memio

import (
	"bytes"
	"errors"
	"testing"

	"github.com/voidhound/codol-extract/pkg/xerrors"
)

func TestBufferReaderTypedReads(t *testing.T) {
	data := []byte{
		0x2A,                   // u8 @0
		0x34, 0x12,             // u16 @1 -> 0x1234
		0x78, 0x56, 0x34, 0x12, // u32 @3 -> 0x12345678
		0x00, 0x00, 0x80, 0x3F, // float32 @7 -> 1.0
	}
	r := NewBufferReader(data)

	if v, err := r.ReadU8(0); err != nil || v != 0x2A {
		t.Errorf("ReadU8: got (%v, %v)", v, err)
	}
	if v, err := r.ReadU16(1); err != nil || v != 0x1234 {
		t.Errorf("ReadU16: got (%#x, %v)", v, err)
	}
	if v, err := r.ReadU32(3); err != nil || v != 0x12345678 {
		t.Errorf("ReadU32: got (%#x, %v)", v, err)
	}
	if v, err := r.ReadFloat32(7); err != nil || v != 1.0 {
		t.Errorf("ReadFloat32: got (%v, %v)", v, err)
	}
}

func TestBufferReaderShortReadDoesNotPanic(t *testing.T) {
	r := NewBufferReader([]byte{0x01, 0x02})

	v, err := r.ReadU32(0)
	if !errors.Is(err, xerrors.ShortRead) {
		t.Fatalf("expected ShortRead, got %v", err)
	}
	if v != 0x00000201 {
		t.Errorf("expected zero-padded tail, got %#x", v)
	}
}

func TestBufferReaderSequentialCursor(t *testing.T) {
	r := NewBufferReader([]byte{0xAA, 0xBB, 0xCC, 0xDD})

	first, err := r.NextU16()
	if err != nil || first != 0xBBAA {
		t.Fatalf("NextU16: got (%#x, %v)", first, err)
	}
	if r.Position() != 2 {
		t.Fatalf("expected position 2, got %d", r.Position())
	}

	second, err := r.NextU16()
	if err != nil || second != 0xDDCC {
		t.Fatalf("NextU16: got (%#x, %v)", second, err)
	}

	// Advancing past the end of the buffer must still move the cursor
	// (advance-always) even though the read itself is short.
	if _, err := r.NextU8(); !errors.Is(err, xerrors.ShortRead) {
		t.Fatalf("expected ShortRead past end, got %v", err)
	}
	if r.Position() != 5 {
		t.Fatalf("expected cursor to advance past end, got %d", r.Position())
	}
}

func TestBufferReaderSeekAndSkipClamp(t *testing.T) {
	r := NewBufferReader([]byte{1, 2, 3})

	r.Seek(-5)
	if r.Position() != 0 {
		t.Errorf("expected clamp to 0, got %d", r.Position())
	}

	r.Seek(100)
	if r.Position() != 3 {
		t.Errorf("expected clamp to length, got %d", r.Position())
	}

	r.Skip(-10)
	if r.Position() != 0 {
		t.Errorf("expected Skip to clamp to 0, got %d", r.Position())
	}

	r.Skip(100)
	if r.Position() != 3 {
		t.Errorf("expected Skip to clamp to length, got %d", r.Position())
	}
}

func TestCursorsIndependentStreams(t *testing.T) {
	c := NewCursors(map[StreamKind][]byte{
		StreamData:       {0x01, 0x02},
		StreamDataShorts: {0x03, 0x04},
	})

	dataStream := c.Stream(StreamData)
	shortsStream := c.Stream(StreamDataShorts)

	b1, _ := dataStream.NextU8()
	b2, _ := shortsStream.NextU8()
	if b1 != 0x01 || b2 != 0x03 {
		t.Fatalf("expected independent cursors, got %#x %#x", b1, b2)
	}

	// A StreamKind never registered reads as empty, not nil-panics.
	empty := c.Stream(StreamNotetracks)
	if _, err := empty.NextU8(); !errors.Is(err, xerrors.ShortRead) {
		t.Fatalf("expected ShortRead on unregistered stream, got %v", err)
	}
}

func TestBufferReaderReadBytes(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	r := NewBufferReader(data)

	got, err := r.ReadBytes(1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, []byte{2, 3, 4}) {
		t.Errorf("got %v", got)
	}

	_, err = r.ReadBytes(4, 10)
	if !errors.Is(err, xerrors.ShortRead) {
		t.Fatalf("expected ShortRead, got %v", err)
	}
}
