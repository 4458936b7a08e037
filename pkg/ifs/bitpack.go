package ifs

// ReadBitLenInteger reads a NumBits-wide little-endian bitfield starting
// at bitIndex out of buffer, LSB-first, crossing byte boundaries freely.
// This mirrors the source's ReadBitLenInteger exactly: bit order and the
// mid-byte start are load-bearing and must not be "cleaned up" into a
// byte-aligned read.
func ReadBitLenInteger(buffer []byte, bitIndex, numBits uint32) int64 {
	var data, weight int64 = 0, 1

	for j := uint32(0); j < numBits; j++ {
		byteIdx := bitIndex / 8
		if int(byteIdx) < len(buffer) {
			bit := (buffer[byteIdx] >> (bitIndex % 8)) & 1
			if bit != 0 {
				data += weight
			}
		}
		bitIndex++
		weight *= 2
	}

	return data
}

// ReadBitLenUInteger is the unsigned counterpart of ReadBitLenInteger,
// used for the wider hash fields that can exceed 63 bits of magnitude.
func ReadBitLenUInteger(buffer []byte, bitIndex, numBits uint32) uint64 {
	var data, weight uint64 = 0, 1

	for j := uint32(0); j < numBits; j++ {
		byteIdx := bitIndex / 8
		if int(byteIdx) < len(buffer) {
			bit := (buffer[byteIdx] >> (bitIndex % 8)) & 1
			if bit != 0 {
				data += weight
			}
		}
		bitIndex++
		weight *= 2
	}

	return data
}

// integralBufferSize rounds a byte count up to whole uint32 words.
func integralBufferSize(buffer uint32) uint32 {
	if buffer%4 == 0 {
		return buffer / 4
	}
	return buffer/4 + 1
}
