package anim

import (
	"strings"

	"github.com/voidhound/codol-extract/pkg/halffloat"
	"github.com/voidhound/codol-extract/pkg/memio"
)

// Decode runs the eleven-stage pipeline over desc, consuming streams from
// cur, and returns the normalised Animation. A short read aborts only the
// stage in progress (matching the format's best-effort tolerance for
// partial remote reads); already-emitted keys are kept and later stages
// still run since stream cursors have already advanced past whatever was
// consumed before the failure.
func Decode(desc *Descriptor, cur *memio.Cursors, resolver StringResolver) (*Animation, error) {
	anim := newAnimation(desc.Name, desc.FrameRate, desc.LoopingAnimation)
	classify(anim, desc)

	names, err := readBoneNames(desc, cur, resolver)
	if err != nil {
		return nil, err
	}

	idx := uint32(0)
	idx = decodeNoneRotated(anim, names, idx, desc.NoneRotatedBoneCount)
	idx = decodeRotated(anim, desc, cur, names, idx, desc.TwoDRotatedBoneCount, false)
	idx = decodeRotated(anim, desc, cur, names, idx, desc.NormalRotatedBoneCount, true)
	idx = decodeStaticRotated(anim, desc, cur, names, idx, desc.TwoDStaticRotatedBoneCount, false)
	idx = decodeStaticRotated(anim, desc, cur, names, idx, desc.NormalStaticRotatedBoneCount, true)

	decodeTranslated(anim, desc, cur, names, desc.NormalTranslatedBoneCount, false)
	decodeTranslated(anim, desc, cur, names, desc.PreciseTranslatedBoneCount, true)
	decodeStaticTranslated(anim, desc, cur, names, desc.StaticTranslatedBoneCount)

	if desc.HasDeltaTranslation {
		decodeDeltaTranslation(anim, desc, cur)
	}
	if desc.HasDelta2DRotation {
		decodeDelta2DRotation(anim, desc, cur)
	}
	if desc.HasDelta3DRotation {
		decodeDelta3DRotation(anim, desc, cur)
	}

	decodeNotetracks(anim, desc, cur, resolver)

	return anim, nil
}

// classify sets the animation-type tag and any per-bone overrides, per the
// fixed precedence: viewmodel -> absolute (with j_gun/j_gun1 relative
// overrides); any delta pointer -> delta; additive flag overrides all.
func classify(anim *Animation, desc *Descriptor) {
	anim.Type = Relative

	if desc.ViewModelAnimation {
		anim.addBoneModifier("j_gun", Relative)
		anim.addBoneModifier("j_gun1", Relative)
		anim.Type = Absolute
	}
	if desc.HasDeltaTranslation || desc.HasDelta2DRotation || desc.HasDelta3DRotation {
		anim.Type = Delta
		anim.DeltaTagName = "tag_origin"
	}
	if desc.AdditiveAnimation {
		anim.Type = Additive
	}
}

// readBoneNames consumes BoneCount ids of BoneIDWidth from the bone-id
// stream and resolves each through resolver.
func readBoneNames(desc *Descriptor, cur *memio.Cursors, resolver StringResolver) ([]string, error) {
	names := make([]string, 0, desc.BoneCount)
	stream := cur.Stream(memio.StreamBoneIDs)
	for i := uint32(0); i < desc.BoneCount; i++ {
		var id uint32
		var err error
		if desc.BoneIDWidth == 4 {
			var v uint32
			v, err = stream.NextU32()
			id = v
		} else {
			var v uint16
			v, err = stream.NextU16()
			id = uint32(v)
		}
		if err != nil {
			return names, nil
		}
		names = append(names, resolver.Resolve(id))
	}
	return names, nil
}

// decodeNoneRotated emits identity rotation keys for the first
// none-rotated bone class and returns the index past them.
func decodeNoneRotated(anim *Animation, names []string, start, count uint32) uint32 {
	end := start + count
	for i := start; i < end && int(i) < len(names); i++ {
		anim.addRotationKey(names[i], 0, 0, 0, 0, 1.0)
	}
	return end
}

// decodeRotated handles stages 1 (2D) and 2 (3D): a per-bone keyed-frame
// rotation stream consumed in lockstep across data-shorts (frame count +
// frame indices) and random-data-shorts (the quantised rotation payload).
func decodeRotated(anim *Animation, desc *Descriptor, cur *memio.Cursors, names []string, start, count uint32, threeD bool) uint32 {
	end := start + count
	frameWidth := desc.frameWidth()

	for i := start; i < end; i++ {
		dataShorts := cur.Stream(memio.StreamDataShorts)
		frameCount, err := dataShorts.NextU16()
		if err != nil {
			return end
		}
		fc := uint32(frameCount)

		if frameWidth == 2 && desc.SupportsInlineIndices && fc >= 0x40 {
			skipInlineIndices(cur, fc)
		}

		comps := 2
		if threeD {
			comps = 4
		}
		payload := cur.Stream(memio.StreamRandomDataShorts)
		keyData := make([]int16, (fc+1)*uint32(comps))
		ok := true
		for k := range keyData {
			v, err := payload.NextU16()
			if err != nil {
				ok = false
				break
			}
			keyData[k] = int16(v)
		}
		if !ok {
			continue
		}

		name := ""
		if int(i) < len(names) {
			name = names[i]
		}
		for f := uint32(0); f <= fc; f++ {
			frameIndex, err := readFrameIndex(cur, frameWidth, fc, desc.HasLongIndices)
			if err != nil {
				break
			}
			if threeD {
				x := decodeRotationComponent(desc.RotationCoding, keyData[f*4])
				y := decodeRotationComponent(desc.RotationCoding, keyData[f*4+1])
				z := decodeRotationComponent(desc.RotationCoding, keyData[f*4+2])
				w := decodeRotationComponent(desc.RotationCoding, keyData[f*4+3])
				anim.addRotationKey(name, frameIndex, x, y, z, w)
			} else {
				z := decodeRotationComponent(desc.RotationCoding, keyData[f*2])
				w := decodeRotationComponent(desc.RotationCoding, keyData[f*2+1])
				anim.addRotationKey(name, frameIndex, 0, 0, z, w)
			}
		}
	}
	return end
}

// decodeStaticRotated handles stages 3 (2D) and 4 (3D): a single rotation
// key per bone, read directly from data-shorts with no frame-count header.
func decodeStaticRotated(anim *Animation, desc *Descriptor, cur *memio.Cursors, names []string, start, count uint32, threeD bool) uint32 {
	end := start + count
	stream := cur.Stream(memio.StreamDataShorts)

	for i := start; i < end; i++ {
		name := ""
		if int(i) < len(names) {
			name = names[i]
		}
		if !threeD {
			z, errZ := stream.NextU16()
			w, errW := stream.NextU16()
			if errZ != nil || errW != nil {
				continue
			}
			anim.addRotationKey(name, 0, 0, 0,
				decodeRotationComponent(desc.RotationCoding, int16(z)),
				decodeRotationComponent(desc.RotationCoding, int16(w)))
			continue
		}
		x, e1 := stream.NextU16()
		y, e2 := stream.NextU16()
		z, e3 := stream.NextU16()
		w, e4 := stream.NextU16()
		if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
			continue
		}
		anim.addRotationKey(name, 0,
			decodeRotationComponent(desc.RotationCoding, int16(x)),
			decodeRotationComponent(desc.RotationCoding, int16(y)),
			decodeRotationComponent(desc.RotationCoding, int16(z)),
			decodeRotationComponent(desc.RotationCoding, int16(w)))
	}
	return end
}

func decodeRotationComponent(coding RotationCoding, raw int16) float32 {
	if coding == HalfFloat {
		return halffloat.Decode(uint16(raw))
	}
	return float32(raw) / 32768.0
}

// decodeTranslated handles stages 5 (normal, byte payload) and 6 (precise,
// short payload): each entry carries its own bone id, a min/size table,
// and a keyed-frame quantised payload.
func decodeTranslated(anim *Animation, desc *Descriptor, cur *memio.Cursors, names []string, count uint32, precise bool) {
	frameWidth := desc.frameWidth()
	boneWidth := desc.boneTypeWidth()

	for i := uint32(0); i < count; i++ {
		boneID, err := readBoneID(cur, boneWidth)
		if err != nil {
			return
		}

		dataShorts := cur.Stream(memio.StreamDataShorts)
		frameCount, err := dataShorts.NextU16()
		if err != nil {
			return
		}
		fc := uint32(frameCount)

		if frameWidth == 2 && desc.SupportsInlineIndices && fc >= 0x40 {
			skipInlineIndices(cur, fc)
		}

		ints := cur.Stream(memio.StreamData)
		minX, _ := ints.NextFloat32()
		minY, _ := ints.NextFloat32()
		minZ, _ := ints.NextFloat32()
		sizeX, _ := ints.NextFloat32()
		sizeY, _ := ints.NextFloat32()
		sizeZ, _ := ints.NextFloat32()

		var payload *memio.BufferReader
		if precise {
			payload = cur.Stream(memio.StreamRandomDataShorts)
		} else {
			payload = cur.Stream(memio.StreamRandomDataBytes)
		}

		type component struct{ x, y, z float32 }
		samples := make([]component, fc+1)
		ok := true
		for f := range samples {
			var x, y, z float32
			var e1, e2, e3 error
			if precise {
				var vx, vy, vz uint16
				vx, e1 = payload.NextU16()
				vy, e2 = payload.NextU16()
				vz, e3 = payload.NextU16()
				x, y, z = float32(vx), float32(vy), float32(vz)
			} else {
				var vx, vy, vz uint8
				vx, e1 = payload.NextU8()
				vy, e2 = payload.NextU8()
				vz, e3 = payload.NextU8()
				x, y, z = float32(vx), float32(vy), float32(vz)
			}
			if e1 != nil || e2 != nil || e3 != nil {
				ok = false
				break
			}
			samples[f] = component{x, y, z}
		}
		if !ok {
			continue
		}

		name := ""
		if int(boneID) < len(names) {
			name = names[boneID]
		}
		for f := uint32(0); f <= fc; f++ {
			frameIndex, err := readFrameIndex(cur, frameWidth, fc, desc.HasLongIndices)
			if err != nil {
				break
			}
			s := samples[f]
			anim.addTranslationKey(name, frameIndex,
				sizeX*s.x+minX, sizeY*s.y+minY, sizeZ*s.z+minZ)
		}
	}
}

// decodeStaticTranslated handles stage 7: a single translation per bone,
// position first then bone id.
func decodeStaticTranslated(anim *Animation, desc *Descriptor, cur *memio.Cursors, names []string, count uint32) {
	boneWidth := desc.boneTypeWidth()
	ints := cur.Stream(memio.StreamData)

	for i := uint32(0); i < count; i++ {
		x, e1 := ints.NextFloat32()
		y, e2 := ints.NextFloat32()
		z, e3 := ints.NextFloat32()
		if e1 != nil || e2 != nil || e3 != nil {
			return
		}
		boneID, err := readBoneID(cur, boneWidth)
		if err != nil {
			return
		}
		name := ""
		if int(boneID) < len(names) {
			name = names[boneID]
		}
		anim.addTranslationKey(name, 0, x, y, z)
	}
}

func readBoneID(cur *memio.Cursors, width int) (uint32, error) {
	if width == 2 {
		v, err := cur.Stream(memio.StreamDataShorts).NextU16()
		return uint32(v), err
	}
	v, err := cur.Stream(memio.StreamDataBytes).NextU8()
	return uint32(v), err
}

// skipInlineIndices discards the terminator-delimited run of inline
// indices the stream carries ahead of the payload, when present.
func skipInlineIndices(cur *memio.Cursors, frameCount uint32) {
	stream := cur.Stream(memio.StreamDataShorts)
	for {
		v, err := stream.NextU16()
		if err != nil || uint32(v) == frameCount {
			return
		}
	}
}

// decodeNotetracks reads the trailing notification stream: a name id and a
// fractional frame per entry, skipping entries whose resolved name is
// blank.
func decodeNotetracks(anim *Animation, desc *Descriptor, cur *memio.Cursors, resolver StringResolver) {
	stream := cur.Stream(memio.StreamNotetracks)
	for i := uint32(0); i < desc.NotificationCount; i++ {
		id, err := stream.NextU32()
		if err != nil {
			return
		}
		fraction, err := stream.NextFloat32()
		if err != nil {
			return
		}
		name := resolver.Resolve(id)
		if strings.TrimSpace(name) == "" {
			continue
		}
		frame := uint32(float32(desc.FrameCount) * fraction)
		anim.addNoteTrack(name, frame)
	}
}
