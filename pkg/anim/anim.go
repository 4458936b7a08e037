// Package anim decodes a bone-animation bitstream (XAnim) into a normalised,
// engine-agnostic keyframe representation: sparse rotation and translation
// tracks per bone, an ordered notetrack list, and an animation-type tag.
package anim

// Type classifies how an animation's keyframes compose against a bone's
// rest pose.
type Type int

const (
	// Relative keys compose on top of the bone's parent-relative rest pose.
	Relative Type = iota
	// Absolute keys replace the rest pose outright (viewmodel animations).
	Absolute
	// Additive keys are summed on top of whatever pose is already applied.
	Additive
	// Delta marks an animation carrying a root-motion delta track in
	// addition to its per-bone tracks.
	Delta
)

func (t Type) String() string {
	switch t {
	case Absolute:
		return "absolute"
	case Additive:
		return "additive"
	case Delta:
		return "delta"
	default:
		return "relative"
	}
}

// RotationKey is a quaternion sample at a given frame. W is nonzero for an
// identity rotation (the zero-rotated stage emits (0,0,0,1)).
type RotationKey struct {
	Frame      uint32
	X, Y, Z, W float32
}

// TranslationKey is a translation sample at a given frame.
type TranslationKey struct {
	Frame   uint32
	X, Y, Z float32
}

// Notetrack is a named event fired at a specific frame.
type Notetrack struct {
	Name  string
	Frame uint32
}

// BoneTrack holds one bone's ordered rotation and translation keys, in the
// order the stream produced them (ascending frame order is not guaranteed
// by the format and is not assumed here).
type BoneTrack struct {
	Rotations    []RotationKey
	Translations []TranslationKey
}

// Animation is the normalised, fully-decoded result of one XAnim stream.
type Animation struct {
	Name      string
	FrameRate float32
	Looping   bool
	Type      Type

	// DeltaTagName names the synthetic bone carrying root-motion keys,
	// set only when Type == Delta.
	DeltaTagName string

	// BoneModifiers overrides Type on a per-bone basis (e.g. "j_gun" and
	// "j_gun1" stay Relative on an otherwise Absolute viewmodel anim).
	BoneModifiers map[string]Type

	// BoneOrder preserves the order bones were first named by the bone
	// name table, since Bones is a map and Go map iteration is unordered.
	BoneOrder []string
	Bones     map[string]*BoneTrack

	Notetracks []Notetrack
}

func newAnimation(name string, frameRate float32, looping bool) *Animation {
	return &Animation{
		Name:          name,
		FrameRate:     frameRate,
		Looping:       looping,
		Type:          Relative,
		BoneModifiers: make(map[string]Type),
		Bones:         make(map[string]*BoneTrack),
	}
}

func (a *Animation) track(bone string) *BoneTrack {
	t, ok := a.Bones[bone]
	if !ok {
		t = &BoneTrack{}
		a.Bones[bone] = t
		a.BoneOrder = append(a.BoneOrder, bone)
	}
	return t
}

func (a *Animation) addRotationKey(bone string, frame uint32, x, y, z, w float32) {
	t := a.track(bone)
	t.Rotations = append(t.Rotations, RotationKey{Frame: frame, X: x, Y: y, Z: z, W: w})
}

func (a *Animation) addTranslationKey(bone string, frame uint32, x, y, z float32) {
	t := a.track(bone)
	t.Translations = append(t.Translations, TranslationKey{Frame: frame, X: x, Y: y, Z: z})
}

func (a *Animation) addBoneModifier(bone string, t Type) {
	a.BoneModifiers[bone] = t
}

func (a *Animation) addNoteTrack(name string, frame uint32) {
	a.Notetracks = append(a.Notetracks, Notetrack{Name: name, Frame: frame})
}
