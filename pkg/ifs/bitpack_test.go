package ifs

import "testing"

func TestReadBitLenIntegerMidByteStart(t *testing.T) {
	// Byte 0 = 0b10110100, byte 1 = 0b00000011.
	// Starting at bit 4 (mid-byte), reading 6 bits should read bits
	// 4..9: top nibble of byte0 (1011 -> LSB-first: 1,1,0,1) followed by
	// the low two bits of byte1 (1,1).
	buf := []byte{0b10110100, 0b00000011}
	got := ReadBitLenInteger(buf, 4, 6)

	want := int64(0)
	weight := int64(1)
	for i, bit := range []int{1, 1, 0, 1, 1, 1} {
		if bit != 0 {
			want += weight
		}
		weight *= 2
		_ = i
	}

	if got != want {
		t.Fatalf("ReadBitLenInteger = %d, want %d", got, want)
	}
}

func TestReadBitLenIntegerZeroBitsIsZero(t *testing.T) {
	buf := []byte{0xFF, 0xFF}
	if got := ReadBitLenInteger(buf, 3, 0); got != 0 {
		t.Errorf("expected 0 for zero-width read, got %d", got)
	}
}

func TestReadBitLenUIntegerWideField(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	got := ReadBitLenUInteger(buf, 0, 40)
	want := uint64(0xFFFFFFFFFF)
	if got != want {
		t.Fatalf("ReadBitLenUInteger = %#x, want %#x", got, want)
	}
}

func TestReadBitLenIntegerOutOfRangeDoesNotPanic(t *testing.T) {
	buf := []byte{0x01}
	// Requesting far more bits than the buffer holds must not panic;
	// missing bits read as zero.
	got := ReadBitLenInteger(buf, 0, 64)
	if got != 1 {
		t.Errorf("expected low bit to survive, got %d", got)
	}
}

func TestIntegralBufferSize(t *testing.T) {
	tests := []struct {
		in, want uint32
	}{
		{0, 0},
		{4, 1},
		{5, 2},
		{8, 2},
		{9, 3},
	}
	for _, test := range tests {
		if got := integralBufferSize(test.in); got != test.want {
			t.Errorf("integralBufferSize(%d) = %d, want %d", test.in, got, test.want)
		}
	}
}
