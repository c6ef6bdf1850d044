package camera

import (
	"github.com/bloeys/gglm/gglm"
)

type Type int32

const (
	Type_Unknown Type = iota
	Type_Perspective
	Type_Orthographic
)

func (t Type) String() string {

	switch t {
	case Type_Perspective:
		return "Perspective"
	case Type_Orthographic:
		return "Orthographic"
	default:
		return "Unknown"
	}
}

type Camera struct {
	Type Type

	Pos     gglm.Vec3
	Forward gglm.Vec3
	WorldUp gglm.Vec3

	NearClip float32
	FarClip  float32

	// Perspective data
	FovRadians  float32
	AspectRatio float32

	// Ortho data. The view covers [-OrthoSize, OrthoSize] on both axes
	OrthoSize float32

	ViewMat gglm.Mat4
	ProjMat gglm.Mat4
}

// Update recalculates the view and projection matrices
func (c *Camera) Update() {

	target := c.Pos.Clone().Add(&c.Forward)
	c.ViewMat = gglm.LookAtRH(&c.Pos, target, &c.WorldUp).Mat4

	switch c.Type {
	case Type_Perspective:
		projMat := gglm.Perspective(c.FovRadians, c.AspectRatio, c.NearClip, c.FarClip)
		c.ProjMat = *projMat.Clone()
	case Type_Orthographic:
		// gglm.Ortho takes left, right, top, bottom
		c.ProjMat = gglm.Ortho(-c.OrthoSize, c.OrthoSize, c.OrthoSize, -c.OrthoSize, c.NearClip, c.FarClip).Mat4
	}
}

// UpdateRotation sets Forward from pitch and yaw (both in radians) then updates the matrices
func (c *Camera) UpdateRotation(pitch, yaw float32) {

	dir := gglm.NewVec3(
		gglm.Cos32(yaw)*gglm.Cos32(pitch),
		gglm.Sin32(pitch),
		gglm.Sin32(yaw)*gglm.Cos32(pitch),
	)
	c.Forward = *dir.Normalize()
	c.Update()
}

// Position is the camera position in world space
func (c *Camera) Position() *gglm.Vec3 {
	return &c.Pos
}

// ProjViewMat returns projection*view
func (c *Camera) ProjViewMat() gglm.Mat4 {
	return *c.ProjMat.Clone().Mul(&c.ViewMat)
}

func NewPerspective(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, fovRadians, aspectRatio float32) Camera {

	cam := Camera{
		Type:     Type_Perspective,
		Pos:      *pos,
		Forward:  *forward,
		WorldUp:  *worldUp,
		NearClip: nearClip,
		FarClip:  farClip,

		FovRadians:  fovRadians,
		AspectRatio: aspectRatio,
	}

	cam.Update()
	return cam
}

func NewOrthographic(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, orthoSize float32) Camera {

	cam := Camera{
		Type:      Type_Orthographic,
		Pos:       *pos,
		Forward:   *forward,
		WorldUp:   *worldUp,
		NearClip:  nearClip,
		FarClip:   farClip,
		OrthoSize: orthoSize,
	}

	cam.Update()
	return cam
}
