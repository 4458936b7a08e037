package model

import mgl "github.com/go-gl/mathgl/mgl32"

// regenerateLocalPositions recomputes the local pose of every bone whose
// Parent is a valid index (root bones after the first included, since
// their synthetic parent is the preceding bone) from the global poses
// already decoded, for the case where the source
// only carried global matrices (the decoded local-translation table read
// back as all zeros). This mirrors WraithModel::GenerateLocalPositions:
// a child's local transform is its parent's global transform inverted
// and composed with the child's own global transform.
//
// The source body for GenerateLocalPositions was not available to
// ground this against line-by-line; this reconstructs the standard
// skeletal-animation relation (child_local = inverse(parent_global) *
// child_global) using mathgl/mgl32, the quaternion/matrix library the
// rest of the pack reaches for (see fizzle/gombz skeleton code).
func regenerateLocalPositions(bones []Bone) {
	for i := range bones {
		b := &bones[i]
		if b.Parent < 0 || int(b.Parent) >= len(bones) {
			continue
		}
		parent := bones[b.Parent]

		parentRot := mgl.Quat{W: parent.GlobalRotation.W, V: mgl.Vec3{parent.GlobalRotation.X, parent.GlobalRotation.Y, parent.GlobalRotation.Z}}
		childRot := mgl.Quat{W: b.GlobalRotation.W, V: mgl.Vec3{b.GlobalRotation.X, b.GlobalRotation.Y, b.GlobalRotation.Z}}

		parentInv := parentRot.Inverse()
		localRot := parentInv.Mul(childRot)

		parentPos := mgl.Vec3{parent.GlobalPosition.X, parent.GlobalPosition.Y, parent.GlobalPosition.Z}
		childPos := mgl.Vec3{b.GlobalPosition.X, b.GlobalPosition.Y, b.GlobalPosition.Z}

		delta := childPos.Sub(parentPos)
		localPos := parentInv.Rotate(delta)

		b.LocalRotation = Quat{X: localRot.V[0], Y: localRot.V[1], Z: localRot.V[2], W: localRot.W}
		b.LocalPosition = Vec3{X: localPos[0], Y: localPos[1], Z: localPos[2]}
	}
}
