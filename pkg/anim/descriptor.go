package anim

import "github.com/voidhound/codol-extract/pkg/memio"

// RotationCoding is how a quantised rotation component maps to a float.
type RotationCoding int

const (
	// DivideBySize treats the raw int16 component as a fixed-point value,
	// dividing by 32768.
	DivideBySize RotationCoding = iota
	// HalfFloat interprets the raw 16 bits as an IEEE-754 half-precision
	// float.
	HalfFloat
)

// Descriptor is the immutable shape of one XAnim: bone-class counts, frame
// framing, and which optional streams are present. It carries no cursor
// state itself; a Cursors set supplies the mutable, per-stream read
// position (see pkg/memio for why descriptors and cursors are separated).
type Descriptor struct {
	Name      string
	FrameRate float32

	FrameCount uint32
	BoneCount  uint32

	ViewModelAnimation    bool
	LoopingAnimation      bool
	AdditiveAnimation     bool
	SupportsInlineIndices bool

	// BoneIDWidth is the width, in bytes (2 or 4), of each entry in the
	// bone name id stream.
	BoneIDWidth int
	// BoneTypeSizeOverride, when nonzero, replaces the default
	// bone-index width derived from BoneCount for the translated-stage
	// bone-id fields.
	BoneTypeSizeOverride int

	RotationCoding RotationCoding

	NoneRotatedBoneCount         uint32
	TwoDRotatedBoneCount         uint32
	NormalRotatedBoneCount       uint32
	TwoDStaticRotatedBoneCount   uint32
	NormalStaticRotatedBoneCount uint32
	NormalTranslatedBoneCount    uint32
	PreciseTranslatedBoneCount   uint32
	StaticTranslatedBoneCount    uint32

	NotificationCount uint32

	HasLongIndices      bool
	HasDeltaTranslation bool
	HasDelta2DRotation  bool
	HasDelta3DRotation  bool
}

// frameWidth returns the byte width of a frame index on the wire: 2 once
// the animation has more than 255 frames, else 1.
func (d *Descriptor) frameWidth() uint32 {
	if d.FrameCount > 255 {
		return 2
	}
	return 1
}

// boneTypeWidth returns the byte width used to encode a bone index in the
// translated-bone streams: the override if set, else derived from
// BoneCount the same way frameWidth is derived from FrameCount.
func (d *Descriptor) boneTypeWidth() int {
	if d.BoneTypeSizeOverride > 0 {
		return d.BoneTypeSizeOverride
	}
	if d.BoneCount > 255 {
		return 2
	}
	return 1
}

// StringResolver maps a bone/notetrack name id to its resolved text, as
// read from the fixed-stride string table (pkg/strtable implements this).
type StringResolver interface {
	Resolve(id uint32) string
}

// readFrameIndex applies the frame-index sourcing rule: a byte from the
// data-bytes stream when frameWidth is 1; otherwise a short from
// data-shorts when the stream is short-running or long-indices is absent,
// else a short from the long-indices stream.
func readFrameIndex(c *memio.Cursors, frameWidth uint32, frameCount uint32, hasLongIndices bool) (uint32, error) {
	if frameWidth == 1 {
		v, err := c.Stream(memio.StreamDataBytes).NextU8()
		return uint32(v), err
	}
	if frameCount < 0x40 || !hasLongIndices {
		v, err := c.Stream(memio.StreamDataShorts).NextU16()
		return uint32(v), err
	}
	v, err := c.Stream(memio.StreamIndices).NextU16()
	return uint32(v), err
}
