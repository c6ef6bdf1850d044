package lights

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/camera"
	"github.com/mandykoh/prism/srgb"
)

// BaseLight is shared by all light kinds. Color is linear RGB.
type BaseLight struct {
	Color     gglm.Vec3
	Intensity float32
}

// Attenuation scales light by 1/(Constant + Linear*d + Exp*d*d), where d is the distance to the light
type Attenuation struct {
	Constant float32
	Linear   float32
	Exp      float32
}

type Ambient struct {
	Base BaseLight
}

type Directional struct {
	Base      BaseLight
	Direction gglm.Vec3

	// Shadow is nil for lights that cast no shadows
	Shadow *ShadowCaster
}

// ShadowCamera returns the camera shadows are rendered from, if this light has a usable one
func (d *Directional) ShadowCamera() (*camera.Camera, bool) {

	if !d.Shadow.IsValid() {
		return nil, false
	}

	return &d.Shadow.Camera, true
}

type Point struct {
	Base        BaseLight
	Position    gglm.Vec3
	Attenuation Attenuation
}

type Spot struct {
	Base        BaseLight
	Position    gglm.Vec3
	Direction   gglm.Vec3
	Attenuation Attenuation

	// CutoffRad is the angle between Direction and the edge of the cone
	CutoffRad float32

	Shadow *ShadowCaster
}

func (s *Spot) ShadowCamera() (*camera.Camera, bool) {

	if !s.Shadow.IsValid() {
		return nil, false
	}

	return &s.Shadow.Camera, true
}

func NewAmbient(color gglm.Vec3, intensity float32) Ambient {
	return Ambient{Base: BaseLight{Color: color, Intensity: intensity}}
}

func NewDirectional(color gglm.Vec3, intensity float32, dir gglm.Vec3) Directional {
	return Directional{
		Base:      BaseLight{Color: color, Intensity: intensity},
		Direction: *dir.Normalize(),
	}
}

func NewPoint(color gglm.Vec3, intensity float32, pos gglm.Vec3, att Attenuation) Point {
	return Point{
		Base:        BaseLight{Color: color, Intensity: intensity},
		Position:    pos,
		Attenuation: att,
	}
}

func NewSpot(color gglm.Vec3, intensity float32, pos, dir gglm.Vec3, att Attenuation, cutoffRad float32) Spot {
	return Spot{
		Base:        BaseLight{Color: color, Intensity: intensity},
		Position:    pos,
		Direction:   *dir.Normalize(),
		Attenuation: att,
		CutoffRad:   cutoffRad,
	}
}

// ColorFromSRGB converts an 8-bit sRGB color (e.g. from a color picker) into the linear color lights use
func ColorFromSRGB(r, g, b uint8) gglm.Vec3 {
	return gglm.NewVec3(srgb.From8Bit(r), srgb.From8Bit(g), srgb.From8Bit(b))
}
