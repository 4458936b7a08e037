package model

import "github.com/voidhound/codol-extract/pkg/memio"

// prepareVertexWeights assigns a bone-weight list to each of the
// submesh's VertexCount vertices, in source order: first the rigid
// (single, implicit-weight) runs described by RigidWeights, then the
// four weighted classes in increasing influence count, sized by
// WeightCounts[0..3].
func prepareVertexWeights(desc *SubmeshDescriptor) [][]VertexWeight {
	weights := make([][]VertexWeight, desc.VertexCount)

	rigid := memio.NewBufferReader(desc.RigidWeights)
	vertex := uint32(0)
	for i := uint32(0); i < desc.RigidVertListCount && vertex < desc.VertexCount; i++ {
		boneIndex, _ := rigid.NextU16()
		vertexCount, _ := rigid.NextU16()
		rigid.NextU16() // FacesCount
		rigid.NextU16() // FacesIndex
		rigid.NextU32() // SurfaceCollisionPtr

		bone := boneIndex / 64
		for v := uint16(0); v < vertexCount && vertex < desc.VertexCount; v++ {
			weights[vertex] = []VertexWeight{{BoneIndex: bone, Weight: 1.0}}
			vertex++
		}
	}

	data := memio.NewBufferReader(desc.WeightData)

	for n := uint16(0); n < desc.WeightCounts[0] && vertex < desc.VertexCount; n++ {
		id, _ := data.NextU16()
		weights[vertex] = []VertexWeight{{BoneIndex: id / 64, Weight: 1.0}}
		vertex++
	}

	for n := uint16(0); n < desc.WeightCounts[1] && vertex < desc.VertexCount; n++ {
		id1, _ := data.NextU16()
		id2, _ := data.NextU16()
		rawW2, _ := data.NextU16()
		w2 := float32(rawW2) / 65536.0
		weights[vertex] = []VertexWeight{
			{BoneIndex: id1 / 64, Weight: 1 - w2},
			{BoneIndex: id2 / 64, Weight: w2},
		}
		vertex++
	}

	for n := uint16(0); n < desc.WeightCounts[2] && vertex < desc.VertexCount; n++ {
		id1, _ := data.NextU16()
		id2, _ := data.NextU16()
		rawW2, _ := data.NextU16()
		id3, _ := data.NextU16()
		rawW3, _ := data.NextU16()
		w2 := float32(rawW2) / 65536.0
		w3 := float32(rawW3) / 65536.0
		weights[vertex] = []VertexWeight{
			{BoneIndex: id1 / 64, Weight: 1 - (w2 + w3)},
			{BoneIndex: id2 / 64, Weight: w2},
			{BoneIndex: id3 / 64, Weight: w3},
		}
		vertex++
	}

	for n := uint16(0); n < desc.WeightCounts[3] && vertex < desc.VertexCount; n++ {
		id1, _ := data.NextU16()
		id2, _ := data.NextU16()
		rawW2, _ := data.NextU16()
		id3, _ := data.NextU16()
		rawW3, _ := data.NextU16()
		id4, _ := data.NextU16()
		rawW4, _ := data.NextU16()
		w2 := float32(rawW2) / 65536.0
		w3 := float32(rawW3) / 65536.0
		w4 := float32(rawW4) / 65536.0
		weights[vertex] = []VertexWeight{
			{BoneIndex: id1 / 64, Weight: 1 - (w2 + w3 + w4)},
			{BoneIndex: id2 / 64, Weight: w2},
			{BoneIndex: id3 / 64, Weight: w3},
			{BoneIndex: id4 / 64, Weight: w4},
		}
		vertex++
	}

	return weights
}
