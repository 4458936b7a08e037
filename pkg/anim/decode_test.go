package anim

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/voidhound/codol-extract/pkg/memio"
)

type fakeResolver map[uint32]string

func (f fakeResolver) Resolve(id uint32) string { return f[id] }

func u16le(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func f32le(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return b
}

func concat(chunks ...[]byte) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

// TestDecode2DRotatedSingleKey covers spec scenario S1: a two-bone
// animation with one none-rotated bone and one 2D-rotated bone carrying a
// single key at frame 3 with payload [0x0000, 0x7FFF].
func TestDecode2DRotatedSingleKey(t *testing.T) {
	desc := &Descriptor{
		Name:                 "test_anim",
		FrameCount:           4,
		BoneCount:            2,
		NoneRotatedBoneCount: 1,
		TwoDRotatedBoneCount: 1,
		RotationCoding:       DivideBySize,
		BoneIDWidth:          2,
	}

	streams := map[memio.StreamKind][]byte{
		memio.StreamBoneIDs:          concat(u16le(10), u16le(11)),
		memio.StreamDataShorts:       u16le(0), // this bone's local frame_count header = 0
		memio.StreamDataBytes:        {3},      // frame index (frameWidth==1 since overall FrameCount<=255)
		memio.StreamRandomDataShorts: concat(u16le(0x0000), u16le(0x7FFF)),
	}
	cur := memio.NewCursors(streams)
	resolver := fakeResolver{10: "bone0", 11: "bone1"}

	anim, err := Decode(desc, cur, resolver)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	bone0 := anim.Bones["bone0"]
	if bone0 == nil || len(bone0.Rotations) != 1 {
		t.Fatalf("expected one identity key on bone0, got %+v", bone0)
	}
	if k := bone0.Rotations[0]; k.Frame != 0 || k.X != 0 || k.Y != 0 || k.Z != 0 || k.W != 1.0 {
		t.Errorf("none-rotated key = %+v, want identity at frame 0", k)
	}

	bone1 := anim.Bones["bone1"]
	if bone1 == nil || len(bone1.Rotations) != 1 {
		t.Fatalf("expected one key on bone1, got %+v", bone1)
	}
	k := bone1.Rotations[0]
	wantW := float32(0x7FFF) / 32768.0
	if k.Frame != 3 || k.X != 0 || k.Y != 0 || k.Z != 0 {
		t.Errorf("2D rotation key = %+v", k)
	}
	if math.Abs(float64(k.W-wantW)) > 1e-6 {
		t.Errorf("W = %v, want %v", k.W, wantW)
	}
}

// TestDecodePreciseTranslation covers spec scenario S2: a precise
// (short-sized) translated bone with fc=0, min=(1,2,3), size=(0.5,0.25,0.125),
// payload [2,4,8] should decode to translation (2.0, 3.0, 4.0).
func TestDecodePreciseTranslation(t *testing.T) {
	desc := &Descriptor{
		Name:                       "precise_anim",
		FrameCount:                 4,
		BoneCount:                  1,
		PreciseTranslatedBoneCount: 1,
		BoneIDWidth:                2,
	}

	ints := concat(f32le(1), f32le(2), f32le(3), f32le(0.5), f32le(0.25), f32le(0.125))
	streams := map[memio.StreamKind][]byte{
		memio.StreamBoneIDs:          u16le(42),
		memio.StreamDataBytes:        {0, 0}, // bone id byte, then frame index byte
		memio.StreamDataShorts:       u16le(0), // this bone's local frame_count header
		memio.StreamData:             ints,
		memio.StreamRandomDataShorts: concat(u16le(2), u16le(4), u16le(8)),
	}
	cur := memio.NewCursors(streams)
	resolver := fakeResolver{42: "tag_weapon"}

	anim, err := Decode(desc, cur, resolver)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	bone := anim.Bones["tag_weapon"]
	if bone == nil || len(bone.Translations) != 1 {
		t.Fatalf("expected one translation key, got %+v", bone)
	}
	k := bone.Translations[0]
	if k.Frame != 0 {
		t.Errorf("frame = %d, want 0", k.Frame)
	}
	if math.Abs(float64(k.X-2.0)) > 1e-5 || math.Abs(float64(k.Y-3.0)) > 1e-5 || math.Abs(float64(k.Z-4.0)) > 1e-5 {
		t.Errorf("translation = (%v,%v,%v), want (2,3,4)", k.X, k.Y, k.Z)
	}
}

// TestDecodeViewmodelClassification covers spec scenario S5.
func TestDecodeViewmodelClassification(t *testing.T) {
	desc := &Descriptor{
		Name:               "viewmodel_anim",
		ViewModelAnimation: true,
		BoneIDWidth:        2,
	}
	cur := memio.NewCursors(nil)

	anim, err := Decode(desc, cur, fakeResolver{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if anim.Type != Absolute {
		t.Errorf("Type = %v, want Absolute", anim.Type)
	}
	if anim.BoneModifiers["j_gun"] != Relative || anim.BoneModifiers["j_gun1"] != Relative {
		t.Errorf("BoneModifiers = %+v, want j_gun/j_gun1 = Relative", anim.BoneModifiers)
	}
}

// TestDecodeAdditiveOverridesDelta confirms the additive flag wins over
// both the viewmodel-absolute and delta classifications.
func TestDecodeAdditiveOverridesDelta(t *testing.T) {
	desc := &Descriptor{
		Name:                "additive_anim",
		ViewModelAnimation:  true,
		AdditiveAnimation:   true,
		HasDeltaTranslation: true,
		BoneIDWidth:         2,
	}
	streams := map[memio.StreamKind][]byte{
		memio.StreamDeltaTranslation: u16le(0), // frame_count=0, but the rest of the 28-byte header is missing; short read aborts gracefully
	}
	cur := memio.NewCursors(streams)

	anim, err := Decode(desc, cur, fakeResolver{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if anim.Type != Additive {
		t.Errorf("Type = %v, want Additive", anim.Type)
	}
}

// TestReadFrameIndexRule exercises the frame-index sourcing rule directly:
// frameWidth 1 always reads a byte; frameWidth 2 reads from data-shorts
// below the 0x40 threshold or without long indices, and from the
// long-indices stream otherwise.
func TestReadFrameIndexRule(t *testing.T) {
	cur := memio.NewCursors(map[memio.StreamKind][]byte{
		memio.StreamDataBytes:  {7},
		memio.StreamDataShorts: u16le(100),
		memio.StreamIndices:    u16le(200),
	})

	if v, err := readFrameIndex(cur, 1, 5, true); err != nil || v != 7 {
		t.Errorf("frameWidth=1: got (%d,%v), want 7", v, err)
	}
	if v, err := readFrameIndex(cur, 2, 0x30, true); err != nil || v != 100 {
		t.Errorf("fc<0x40: got (%d,%v), want 100", v, err)
	}
	if v, err := readFrameIndex(cur, 2, 0x40, true); err != nil || v != 200 {
		t.Errorf("fc>=0x40 with long indices: got (%d,%v), want 200", v, err)
	}
}
