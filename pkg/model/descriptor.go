package model

// RotationCoding is how a packed local-rotation quaternion component maps
// to a float. Mirrors anim.RotationCoding; kept as its own type since the
// two formats are parsed by independent components even though they share
// the same two encodings in the source.
type RotationCoding int

const (
	DivideBySize RotationCoding = iota
	HalfFloat
)

// ImageUsage classifies a material's image slot.
type ImageUsage int

const (
	ImageUnknown ImageUsage = iota
	ImageDiffuse
	ImageNormal
	ImageSpecular
	ImageGloss
)

// ImageRef names one image slot on a material.
type ImageRef struct {
	Usage ImageUsage
	Name  string
}

// MaterialDescriptor is one submesh's source material: a name and its
// image slots, pre-resolved from process memory by the driver.
type MaterialDescriptor struct {
	Name   string
	Images []ImageRef
}

// SubmeshDescriptor is one surface's counts and raw buffers, already read
// from process memory by the driver (matching the source's
// GameInstance->Read(Submesh.VertexPtr, ...) / (Submesh.FacesPtr, ...)
// one-shot reads per submesh).
type SubmeshDescriptor struct {
	VertexCount uint32
	FaceCount   uint32

	// RigidVertListCount is the count of rigid (single, implicit-weight)
	// vertex runs preceding the weighted vertex runs.
	RigidVertListCount uint32
	// WeightCounts holds the per-class vertex counts for 1/2/3/4-bone
	// weighted vertices, in that order.
	WeightCounts [4]uint16

	RigidWeights []byte
	WeightData   []byte
	Vertices     []byte
	Faces        []byte
}

// LOD is one level-of-detail's submesh/material lists plus its display
// distance.
type LOD struct {
	Distance    float32
	MaxDistance float32

	Submeshes []SubmeshDescriptor
	// Materials is parallel to Submeshes: CoD assigns exactly one
	// material per submesh.
	Materials []MaterialDescriptor
}

// Streams holds the model-wide (not per-submesh) raw buffers the driver
// has already read once from process memory: the bone id/parent tables
// and the three bone-pose tables (global matrices, local translations,
// local rotations).
type Streams struct {
	BoneIDs           []byte
	BoneParents       []byte
	GlobalMatrices    []byte
	LocalTranslations []byte
	LocalRotations    []byte
}

// Descriptor is the immutable shape of one XModel: bone-count classes,
// id/parent encoding widths, rotation coding, and its LODs.
type Descriptor struct {
	Name string

	RotationCoding RotationCoding

	BoneCount         uint32
	RootBoneCount     uint32
	CosmeticBoneCount uint32

	// BoneIDWidth is 2 or 4 bytes.
	BoneIDWidth int
	// BoneParentWidth is 1, 2, or 4 bytes.
	BoneParentWidth int

	LODs []LOD
}

// StringResolver maps a bone name id to its resolved text.
type StringResolver interface {
	Resolve(id uint32) string
}
