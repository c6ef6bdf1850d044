package lights

import (
	"errors"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/camera"
	"github.com/bloeys/ndefer/rendertarget"
)

var (
	DirShadowSize     float32 = 30
	DirShadowNearClip float32 = 0.1
	DirShadowFarClip  float32 = 30

	// Near clip values close to zero make spot shadows unstable
	SpotShadowNearClip float32 = 1
	SpotShadowFarClip  float32 = 30
)

var ErrInvalidSpotCutoff = errors.New("spot light cutoff must be in (0, 90) degrees to cast shadows")

// validCutoff is false for cones the shadow camera can not project. The fov is twice
// the cutoff and must stay inside (0, 180) degrees.
func validCutoff(cutoffRad float32) bool {
	return cutoffRad > 0 && cutoffRad < 90*gglm.Deg2Rad
}

// ShadowCaster is the camera a light renders its shadow map from, plus the depth only
// target holding that shadow map.
type ShadowCaster struct {
	Camera camera.Camera
	Target *rendertarget.Target
}

// IsValid reports whether the caster has a live depth map and a usable camera.
// It is safe to call on a nil caster.
func (sc *ShadowCaster) IsValid() bool {
	return sc != nil &&
		sc.Camera.Type != camera.Type_Unknown &&
		sc.Target != nil &&
		sc.Target.IsAlive() &&
		sc.Target.HasDepthAttachment()
}

func (sc *ShadowCaster) Delete(ctx *rendertarget.Context) {

	if sc == nil || sc.Target == nil {
		return
	}

	sc.Target.Delete(ctx)
	sc.Target = nil
}

func newShadowCaster(ctx *rendertarget.Context, mapSize uint32) (*ShadowCaster, error) {

	target, err := rendertarget.NewDepth(ctx, mapSize, mapSize, gglm.NewVec4(1, 1, 1, 1))
	if err != nil {
		return nil, err
	}

	return &ShadowCaster{Target: target}, nil
}

// shadowUp returns a world up that is not parallel to dir, as a look at matrix breaks otherwise
func shadowUp(dir *gglm.Vec3) gglm.Vec3 {

	up := gglm.NewVec3(0, 1, 0)
	if gglm.Abs32(gglm.DotVec3(dir, &up)) > 0.99 {
		up = gglm.NewVec3(1, 0, 0)
	}

	return up
}

// EnableShadows creates a square shadow map of mapSize and an orthographic shadow camera at origin
// looking along the light direction. Any previous shadow map is released.
func (d *Directional) EnableShadows(ctx *rendertarget.Context, mapSize uint32, origin gglm.Vec3) error {

	sc, err := newShadowCaster(ctx, mapSize)
	if err != nil {
		return err
	}

	d.DisableShadows(ctx)
	d.Shadow = sc
	d.UpdateShadowCamera(origin)
	return nil
}

// UpdateShadowCamera moves the shadow camera to origin and points it along the light direction
func (d *Directional) UpdateShadowCamera(origin gglm.Vec3) {

	if d.Shadow == nil {
		return
	}

	up := shadowUp(&d.Direction)
	d.Shadow.Camera = camera.NewOrthographic(&origin, &d.Direction, &up, DirShadowNearClip, DirShadowFarClip, DirShadowSize)
}

func (d *Directional) DisableShadows(ctx *rendertarget.Context) {
	d.Shadow.Delete(ctx)
	d.Shadow = nil
}

// EnableShadows creates a square shadow map of mapSize and a perspective shadow camera
// covering the spot light cone. Any previous shadow map is released.
func (s *Spot) EnableShadows(ctx *rendertarget.Context, mapSize uint32) error {

	if !validCutoff(s.CutoffRad) {
		return ErrInvalidSpotCutoff
	}

	sc, err := newShadowCaster(ctx, mapSize)
	if err != nil {
		return err
	}

	s.DisableShadows(ctx)
	s.Shadow = sc
	s.UpdateShadowCamera()
	return nil
}

// UpdateShadowCamera must be called after the spot light moves or changes its cone.
// A cone the camera can not project leaves the caster invalid until the cutoff is fixed.
func (s *Spot) UpdateShadowCamera() {

	if s.Shadow == nil {
		return
	}

	if !validCutoff(s.CutoffRad) {
		s.Shadow.Camera = camera.Camera{}
		return
	}

	up := shadowUp(&s.Direction)
	s.Shadow.Camera = camera.NewPerspective(&s.Position, &s.Direction, &up, SpotShadowNearClip, SpotShadowFarClip, s.CutoffRad*2, 1)
}

func (s *Spot) DisableShadows(ctx *rendertarget.Context) {
	s.Shadow.Delete(ctx)
	s.Shadow = nil
}
