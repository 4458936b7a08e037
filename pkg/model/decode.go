package model

import (
	"fmt"

	"github.com/voidhound/codol-extract/pkg/halffloat"
	"github.com/voidhound/codol-extract/pkg/memio"
	"github.com/voidhound/codol-extract/pkg/xerrors"
)

// CalculateBiggestLodIndex picks a LOD index, matching the source's
// CalculateBiggestLodIndex: starting from index 0, a later LOD replaces
// the current pick only when its distance is strictly smaller and its
// submesh count is at least as large. A LOD at an equal distance never
// replaces the pick, whatever its submesh count.
func CalculateBiggestLodIndex(lods []LOD) int {
	if len(lods) == 0 {
		return -1
	}
	if len(lods) == 1 {
		return 0
	}

	best := 0
	for i := 1; i < len(lods); i++ {
		if lods[i].Distance < lods[best].Distance && len(lods[i].Submeshes) >= len(lods[best].Submeshes) {
			best = i
		}
	}
	return best
}

// Decode builds a Model from one LOD of desc, given the model-wide bone
// streams. lodIndex selects which of desc.LODs to decode; callers
// typically pick it with CalculateBiggestLodIndex.
func Decode(desc *Descriptor, lodIndex int, streams *Streams, resolver StringResolver) (*Model, error) {
	if len(desc.LODs) == 0 {
		return nil, fmt.Errorf("%s: %w", desc.Name, xerrors.NoLODs)
	}
	if lodIndex < 0 || lodIndex >= len(desc.LODs) {
		return nil, fmt.Errorf("%s: lod index %d out of range (have %d)", desc.Name, lodIndex, len(desc.LODs))
	}
	lod := desc.LODs[lodIndex]

	bones, needsLocalPositions := decodeBones(desc, streams, resolver)
	if needsLocalPositions {
		regenerateLocalPositions(bones)
	}

	out := &Model{
		Name:           desc.Name,
		LodDistance:    lod.Distance,
		LodMaxDistance: lod.MaxDistance,
		Bones:          bones,
	}

	materialIndex := make(map[string]int)

	for i, sub := range lod.Submeshes {
		var matDesc MaterialDescriptor
		if i < len(lod.Materials) {
			matDesc = lod.Materials[i]
		}

		idx, ok := materialIndex[matDesc.Name]
		if !ok {
			idx = len(out.Materials)
			materialIndex[matDesc.Name] = idx
			out.Materials = append(out.Materials, newMaterial(matDesc))
		}

		submesh, err := decodeSubmesh(&sub, idx)
		if err != nil {
			return nil, fmt.Errorf("submesh %d: %w", i, err)
		}
		out.Submeshes = append(out.Submeshes, *submesh)
	}

	return out, nil
}

func newMaterial(desc MaterialDescriptor) Material {
	m := Material{Name: desc.Name}
	for _, img := range desc.Images {
		switch img.Usage {
		case ImageDiffuse:
			m.DiffuseMapName = img.Name
		case ImageNormal:
			m.NormalMapName = img.Name
		case ImageSpecular:
			m.SpecularMapName = img.Name
		}
	}
	return m
}

func decodeSubmesh(desc *SubmeshDescriptor, materialIndex int) (*Submesh, error) {
	weights := prepareVertexWeights(desc)

	vr := memio.NewBufferReader(desc.Vertices)
	vertices := make([]Vertex, 0, desc.VertexCount)
	for i := uint32(0); i < desc.VertexCount; i++ {
		v, err := decodeVertex(vr)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		if int(i) < len(weights) {
			v.Weights = weights[i]
		}
		vertices = append(vertices, v)
	}

	fr := memio.NewBufferReader(desc.Faces)
	faces := make([]Face, 0, desc.FaceCount)
	for i := uint32(0); i < desc.FaceCount; i++ {
		a, _ := fr.NextU16()
		b, _ := fr.NextU16()
		c, _ := fr.NextU16()
		faces = append(faces, Face{A: a, B: b, C: c})
	}

	return &Submesh{MaterialIndex: materialIndex, Vertices: vertices, Faces: faces}, nil
}

func decodeVertex(r *memio.BufferReader) (Vertex, error) {
	pos, ok := readVec3(r)
	if !ok {
		return Vertex{}, fmt.Errorf("vertex position: %w", xerrors.ShortRead)
	}
	r.NextU32() // BiNormal, unused
	r.NextU32() // ColorRGBA, unused

	// GfxVertexBuffer stores UVUPos then UVVPos, but the source's own
	// AddUVLayer call passes them as (UVVPos, UVUPos) — swapped from
	// their names. Keep that swap so U/V land the way every other CoD
	// model consumer expects them.
	rawUVUPos, _ := r.NextU16()
	rawUVVPos, _ := r.NextU16()

	normalBytes, err := r.NextBytes(4)
	if err != nil {
		return Vertex{}, fmt.Errorf("packed normal: %w", err)
	}
	normal := unpackNormal(normalBytes[0], normalBytes[1], normalBytes[2], normalBytes[3])

	r.NextU32() // Tangent, unused

	return Vertex{
		Position: pos,
		Normal:   normal,
		U:        halffloat.Decode(rawUVVPos),
		V:        halffloat.Decode(rawUVUPos),
	}, nil
}
