package anim

import (
	"math"
	"testing"

	"github.com/voidhound/codol-extract/pkg/memio"
)

// TestDecodeDeltaTranslationZeroFrameCount covers the frame_count==0
// short-circuit: the min vector itself becomes the single frame-0 key.
func TestDecodeDeltaTranslationZeroFrameCount(t *testing.T) {
	header := concat(
		u16le(0), // frame_count
		[]byte{1, 0}, // data_size + padding
		f32le(10), f32le(20), f32le(30), // min
		f32le(1), f32le(1), f32le(1), // size
	)
	cur := memio.NewCursors(map[memio.StreamKind][]byte{
		memio.StreamDeltaTranslation: header,
	})
	anim := newAnimation("delta", 30, false)

	decodeDeltaTranslation(anim, &Descriptor{FrameCount: 4}, cur)

	bone := anim.Bones["tag_origin"]
	if bone == nil || len(bone.Translations) != 1 {
		t.Fatalf("expected one translation key, got %+v", bone)
	}
	k := bone.Translations[0]
	if k.Frame != 0 || k.X != 10 || k.Y != 20 || k.Z != 30 {
		t.Errorf("key = %+v, want (0,10,20,30)", k)
	}
}

// TestDecodeDeltaTranslationKeyedRun exercises the general path: a
// nonzero frame count, data_size=1 (byte components), two keyed samples
// (frame_count 1 means fc+1 = 2 keys).
func TestDecodeDeltaTranslationKeyedRun(t *testing.T) {
	header := concat(
		u16le(1), // frame_count: loop runs fc+1 = 2 times
		[]byte{1, 0}, // data_size=1 (bytes), padding
		f32le(0), f32le(0), f32le(0), // min
		f32le(2), f32le(2), f32le(2), // size
		u16le(0), u16le(0), // payload pointer (4 bytes, discarded)
	)
	cur := memio.NewCursors(map[memio.StreamKind][]byte{
		memio.StreamDeltaTranslation:        concat(header, []byte{0, 3}), // 2 frame indices (frameWidth=1)
		memio.StreamDeltaTranslationPayload: []byte{1, 1, 1, 2, 2, 2},     // two (x,y,z) samples
	})
	anim := newAnimation("delta", 30, false)

	decodeDeltaTranslation(anim, &Descriptor{FrameCount: 4}, cur)

	bone := anim.Bones["tag_origin"]
	if bone == nil || len(bone.Translations) != 2 {
		t.Fatalf("expected two translation keys, got %+v", bone)
	}
	if k := bone.Translations[0]; k.Frame != 0 || k.X != 2 || k.Y != 2 || k.Z != 2 {
		t.Errorf("key0 = %+v, want frame 0 (2,2,2)", k)
	}
	if k := bone.Translations[1]; k.Frame != 3 || k.X != 4 || k.Y != 4 || k.Z != 4 {
		t.Errorf("key1 = %+v, want frame 3 (4,4,4)", k)
	}
}

// TestDecodeDelta2DRotationZeroFrameCount covers the inline single-key
// path for the 2D delta rotation stream.
func TestDecodeDelta2DRotationZeroFrameCount(t *testing.T) {
	header := concat(
		u16le(0), u16le(0), // frame_count + padding
		u16le(0x0000), u16le(0x7FFF), // z, w
	)
	cur := memio.NewCursors(map[memio.StreamKind][]byte{
		memio.StreamDelta2DRotation: header,
	})
	anim := newAnimation("delta", 30, false)

	decodeDelta2DRotation(anim, &Descriptor{FrameCount: 4}, cur)

	bone := anim.Bones["tag_origin"]
	if bone == nil || len(bone.Rotations) != 1 {
		t.Fatalf("expected one rotation key, got %+v", bone)
	}
	k := bone.Rotations[0]
	wantW := float32(0x7FFF) / 32768.0
	if k.Frame != 0 || k.X != 0 || k.Y != 0 || k.Z != 0 {
		t.Errorf("key = %+v", k)
	}
	if math.Abs(float64(k.W-wantW)) > 1e-6 {
		t.Errorf("W = %v, want %v", k.W, wantW)
	}
}
