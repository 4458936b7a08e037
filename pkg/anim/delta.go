package anim

import "github.com/voidhound/codol-extract/pkg/memio"

// deltaFrameIndex applies the frame-index rule used by the three delta
// subformats: identical to readFrameIndex but without the long-indices
// branch (the delta streams never fall back to a separate long-indices
// pointer). The index is read from the given delta stream itself: a byte
// when frameWidth is 1, else a short.
func deltaFrameIndex(cur *memio.Cursors, stream memio.StreamKind, frameWidth uint32) (uint32, error) {
	if frameWidth == 1 {
		v, err := cur.Stream(stream).NextU8()
		return uint32(v), err
	}
	v, err := cur.Stream(stream).NextU16()
	return uint32(v), err
}

// decodeDeltaTranslation implements stage 8: header (frame_count, a
// data_size of 1 or 2 bytes per component, 1 byte padding, a min and a
// size Vec3), then either a single key at frame 0 (frame_count == 0) or a
// keyed run of quantised samples read from a separate payload stream (the
// source's DeltaDataPtr, a pointer read out of the header and followed
// independently; here it is simply its own pre-positioned stream).
func decodeDeltaTranslation(anim *Animation, desc *Descriptor, cur *memio.Cursors) {
	header := cur.Stream(memio.StreamDeltaTranslation)

	frameCount, err := header.NextU16()
	if err != nil {
		return
	}
	dataSize, err := header.NextU8()
	if err != nil {
		return
	}
	if _, err := header.NextU8(); err != nil { // padding
		return
	}

	minX, e1 := header.NextFloat32()
	minY, e2 := header.NextFloat32()
	minZ, e3 := header.NextFloat32()
	if e1 != nil || e2 != nil || e3 != nil {
		return
	}
	sizeX, e4 := header.NextFloat32()
	sizeY, e5 := header.NextFloat32()
	sizeZ, e6 := header.NextFloat32()
	if e4 != nil || e5 != nil || e6 != nil {
		return
	}

	if frameCount == 0 {
		anim.addTranslationKey("tag_origin", 0, minX, minY, minZ)
		return
	}

	if _, err := header.NextU32(); err != nil { // payload pointer, not followed directly; see payload stream
		return
	}

	payload := cur.Stream(memio.StreamDeltaTranslationPayload)
	frameWidth := desc.frameWidth()
	fc := uint32(frameCount)

	for f := uint32(0); f <= fc; f++ {
		frameIndex, err := deltaFrameIndex(cur, memio.StreamDeltaTranslation, frameWidth)
		if err != nil {
			return
		}

		var x, y, z float32
		var ok bool
		if dataSize == 1 {
			x, y, z, ok = readDeltaComponentsU8(payload)
		} else {
			x, y, z, ok = readDeltaComponentsU16(payload)
		}
		if !ok {
			return
		}

		anim.addTranslationKey("tag_origin", frameIndex, sizeX*x+minX, sizeY*y+minY, sizeZ*z+minZ)
	}
}

func readDeltaComponentsU8(stream *memio.BufferReader) (x, y, z float32, ok bool) {
	vx, e1 := stream.NextU8()
	vy, e2 := stream.NextU8()
	vz, e3 := stream.NextU8()
	if e1 != nil || e2 != nil || e3 != nil {
		return 0, 0, 0, false
	}
	return float32(vx), float32(vy), float32(vz), true
}

func readDeltaComponentsU16(stream *memio.BufferReader) (x, y, z float32, ok bool) {
	vx, e1 := stream.NextU16()
	vy, e2 := stream.NextU16()
	vz, e3 := stream.NextU16()
	if e1 != nil || e2 != nil || e3 != nil {
		return 0, 0, 0, false
	}
	return float32(vx), float32(vy), float32(vz), true
}

// decodeDelta2DRotation implements stage 9: a 2-byte frame_count plus 2
// padding bytes, then either one inline quantised (z,w) pair at frame 0 or
// a keyed run read from a separate payload stream.
func decodeDelta2DRotation(anim *Animation, desc *Descriptor, cur *memio.Cursors) {
	header := cur.Stream(memio.StreamDelta2DRotation)

	frameCount, err := header.NextU16()
	if err != nil {
		return
	}
	if _, err := header.NextU16(); err != nil { // padding
		return
	}

	if frameCount == 0 {
		z, e1 := header.NextU16()
		w, e2 := header.NextU16()
		if e1 != nil || e2 != nil {
			return
		}
		anim.addRotationKey("tag_origin", 0, 0, 0, float32(int16(z))/32768.0, float32(int16(w))/32768.0)
		return
	}

	if _, err := header.NextU32(); err != nil { // payload pointer
		return
	}

	payload := cur.Stream(memio.StreamDelta2DRotationPayload)
	frameWidth := desc.frameWidth()
	fc := uint32(frameCount)

	for f := uint32(0); f <= fc; f++ {
		frameIndex, err := deltaFrameIndex(cur, memio.StreamDelta2DRotation, frameWidth)
		if err != nil {
			return
		}
		z, e1 := payload.NextU16()
		w, e2 := payload.NextU16()
		if e1 != nil || e2 != nil {
			return
		}
		anim.addRotationKey("tag_origin", frameIndex, 0, 0, float32(int16(z))/32768.0, float32(int16(w))/32768.0)
	}
}

// decodeDelta3DRotation implements stage 10: identical framing to stage 9
// but an 8-byte (x,y,z,w) quantised quaternion per entry.
func decodeDelta3DRotation(anim *Animation, desc *Descriptor, cur *memio.Cursors) {
	header := cur.Stream(memio.StreamDelta3DRotation)

	frameCount, err := header.NextU16()
	if err != nil {
		return
	}
	if _, err := header.NextU16(); err != nil { // padding
		return
	}

	if frameCount == 0 {
		x, e1 := header.NextU16()
		y, e2 := header.NextU16()
		z, e3 := header.NextU16()
		w, e4 := header.NextU16()
		if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
			return
		}
		anim.addRotationKey("tag_origin", 0,
			float32(int16(x))/32768.0, float32(int16(y))/32768.0,
			float32(int16(z))/32768.0, float32(int16(w))/32768.0)
		return
	}

	if _, err := header.NextU32(); err != nil { // payload pointer
		return
	}

	payload := cur.Stream(memio.StreamDelta3DRotationPayload)
	frameWidth := desc.frameWidth()
	fc := uint32(frameCount)

	for f := uint32(0); f <= fc; f++ {
		frameIndex, err := deltaFrameIndex(cur, memio.StreamDelta3DRotation, frameWidth)
		if err != nil {
			return
		}
		x, e1 := payload.NextU16()
		y, e2 := payload.NextU16()
		z, e3 := payload.NextU16()
		w, e4 := payload.NextU16()
		if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
			return
		}
		anim.addRotationKey("tag_origin", frameIndex,
			float32(int16(x))/32768.0, float32(int16(y))/32768.0,
			float32(int16(z))/32768.0, float32(int16(w))/32768.0)
	}
}
