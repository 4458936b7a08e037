package model

import (
	"fmt"
	"strings"

	"github.com/voidhound/codol-extract/pkg/halffloat"
	"github.com/voidhound/codol-extract/pkg/memio"
)

// decodeBones builds the flattened bone list for a model: BoneCount +
// CosmeticBoneCount entries, each with a resolved (or synthesised) name,
// a parent index, and its global/local pose. It also reports whether
// every local translation read back as zero (NeedsLocalPositions in the
// source), the signal the caller uses to decide whether local positions
// must be regenerated from the global poses.
func decodeBones(desc *Descriptor, streams *Streams, resolver StringResolver) ([]Bone, bool) {
	total := desc.BoneCount + desc.CosmeticBoneCount

	boneIDs := memio.NewBufferReader(streams.BoneIDs)
	boneParents := memio.NewBufferReader(streams.BoneParents)
	globals := memio.NewBufferReader(streams.GlobalMatrices)
	localTrans := memio.NewBufferReader(streams.LocalTranslations)
	localRot := memio.NewBufferReader(streams.LocalRotations)

	bones := make([]Bone, 0, total)
	needsLocalPositions := true

	for i := uint32(0); i < total; i++ {
		name := resolveBoneName(boneIDs, desc.BoneIDWidth, i, resolver)

		parent := int32(-1)
		if i >= desc.RootBoneCount {
			stored := readBoneParent(boneParents, desc.BoneParentWidth)
			if i < desc.BoneCount {
				parent = int32(i) - stored
			} else {
				parent = stored
			}
		} else {
			parent = int32(i) - 1
		}

		bone := Bone{Name: name, Parent: parent}

		rot, _ := readQuatFloats(globals)
		pos, _ := readVec3(globals)
		globals.NextFloat32() // TranslationWeight, unused downstream
		bone.GlobalRotation = rot
		bone.GlobalPosition = pos

		if i >= desc.RootBoneCount {
			lp, ok := readVec3(localTrans)
			if ok {
				bone.LocalPosition = lp
				if lp != (Vec3{}) {
					needsLocalPositions = false
				}
			}

			rawRot, ok := readRawQuat(localRot)
			if ok {
				bone.LocalRotation = decodeRotation(desc.RotationCoding, rawRot)
			}
		}

		bones = append(bones, bone)
	}

	return bones, needsLocalPositions && desc.BoneCount > 1
}

func resolveBoneName(stream *memio.BufferReader, width int, index uint32, resolver StringResolver) string {
	var id uint32
	if width == 4 {
		v, _ := stream.NextU32()
		id = v
	} else {
		v, _ := stream.NextU16()
		id = uint32(v)
	}

	name := resolver.Resolve(id)
	if strings.TrimSpace(name) != "" {
		return name
	}
	if index == 0 {
		return "tag_origin"
	}
	return fmt.Sprintf("no_tag_%d", index)
}

func readBoneParent(stream *memio.BufferReader, width int) int32 {
	switch width {
	case 1:
		v, _ := stream.NextU8()
		return int32(v)
	case 2:
		v, _ := stream.NextU16()
		return int32(v)
	default:
		v, _ := stream.NextU32()
		return int32(v)
	}
}

func readVec3(stream *memio.BufferReader) (Vec3, bool) {
	x, e1 := stream.NextFloat32()
	y, e2 := stream.NextFloat32()
	z, e3 := stream.NextFloat32()
	if e1 != nil || e2 != nil || e3 != nil {
		return Vec3{}, false
	}
	return Vec3{X: x, Y: y, Z: z}, true
}

type rawQuat struct{ x, y, z, w int16 }

func readRawQuat(stream *memio.BufferReader) (rawQuat, bool) {
	x, e1 := stream.NextU16()
	y, e2 := stream.NextU16()
	z, e3 := stream.NextU16()
	w, e4 := stream.NextU16()
	if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
		return rawQuat{}, false
	}
	return rawQuat{int16(x), int16(y), int16(z), int16(w)}, true
}

// readQuatFloats reads the global matrix's rotation, which is already
// stored as four floats (DObjAnimMat.Rotation is a plain Quaternion, not
// a quantised one).
func readQuatFloats(stream *memio.BufferReader) (Quat, bool) {
	x, e1 := stream.NextFloat32()
	y, e2 := stream.NextFloat32()
	z, e3 := stream.NextFloat32()
	w, e4 := stream.NextFloat32()
	if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
		return Quat{}, false
	}
	return Quat{X: x, Y: y, Z: z, W: w}, true
}

func decodeRotation(coding RotationCoding, raw rawQuat) Quat {
	if coding == HalfFloat {
		return Quat{
			X: halffloat.Decode(uint16(raw.x)),
			Y: halffloat.Decode(uint16(raw.y)),
			Z: halffloat.Decode(uint16(raw.z)),
			W: halffloat.Decode(uint16(raw.w)),
		}
	}
	return Quat{
		X: float32(raw.x) / 32768.0,
		Y: float32(raw.y) / 32768.0,
		Z: float32(raw.z) / 32768.0,
		W: float32(raw.w) / 32768.0,
	}
}
