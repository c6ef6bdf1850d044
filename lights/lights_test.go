package lights

import (
	"errors"
	"math"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/camera"
	"github.com/bloeys/ndefer/renderer"
	"github.com/bloeys/ndefer/renderer/renderertest"
	"github.com/bloeys/ndefer/rendertarget"
)

func TestNilShadowCasterIsInvalid(t *testing.T) {

	var sc *ShadowCaster
	if sc.IsValid() {
		t.Fatal("nil shadow caster must be invalid")
	}

	d := NewDirectional(gglm.NewVec3(1, 1, 1), 1, gglm.NewVec3(0, -1, 0))
	if _, ok := d.ShadowCamera(); ok {
		t.Fatal("light without shadows must not expose a shadow camera")
	}
}

func TestDirectionalShadows(t *testing.T) {

	dev := renderertest.NewDevice()
	ctx := rendertarget.NewContext(dev)

	// Straight down is parallel to the default up vector
	d := NewDirectional(gglm.NewVec3(1, 1, 1), 1, gglm.NewVec3(0, -1, 0))
	if err := d.EnableShadows(ctx, 512, gglm.NewVec3(0, 10, 0)); err != nil {
		t.Fatal(err)
	}

	cam, ok := d.ShadowCamera()
	if !ok {
		t.Fatal("expected a shadow camera")
	}

	if cam.Type != camera.Type_Orthographic || cam.OrthoSize != DirShadowSize {
		t.Fatalf("unexpected shadow camera %s size=%f", cam.Type, cam.OrthoSize)
	}

	if cam.WorldUp.Data[1] != 0 {
		t.Fatalf("up vector should have been replaced, got %v", cam.WorldUp.Data)
	}

	depth := d.Shadow.Target.DepthAttachment
	if depth.Width() != 512 || depth.Height() != 512 || depth.Format() != renderer.TextureFormat_DepthF32 {
		t.Fatalf("unexpected shadow map %dx%d %s", depth.Width(), depth.Height(), depth.Format())
	}

	// Re-enabling releases the old map
	if err := d.EnableShadows(ctx, 256, gglm.NewVec3(0, 10, 0)); err != nil {
		t.Fatal(err)
	}

	if dev.LiveTextures() != 1 {
		t.Fatalf("expected one live shadow map, got %d", dev.LiveTextures())
	}

	d.DisableShadows(ctx)
	if _, ok := d.ShadowCamera(); ok || dev.LiveTextures() != 0 {
		t.Fatal("disabling shadows must release the shadow map")
	}
}

func TestSpotShadowCameraFov(t *testing.T) {

	ctx := rendertarget.NewContext(renderertest.NewDevice())
	s := NewSpot(gglm.NewVec3(1, 1, 1), 1, gglm.NewVec3(0, 5, 0), gglm.NewVec3(1, -1, 0), Attenuation{Constant: 1}, 20*gglm.Deg2Rad)

	if err := s.EnableShadows(ctx, 256); err != nil {
		t.Fatal(err)
	}

	cam, ok := s.ShadowCamera()
	if !ok {
		t.Fatal("expected a shadow camera")
	}

	if cam.Type != camera.Type_Perspective || math.Abs(float64(cam.FovRadians-40*gglm.Deg2Rad)) > 1e-5 {
		t.Fatalf("spot shadow camera should cover the cone, got %s fov=%f", cam.Type, cam.FovRadians)
	}

	if cam.Pos != s.Position {
		t.Fatal("spot shadow camera should sit at the light")
	}
}

func TestSpotShadowsRejectDegenerateCone(t *testing.T) {

	dev := renderertest.NewDevice()
	ctx := rendertarget.NewContext(dev)

	for _, cutoffDeg := range []float32{0, -10, 90, 120} {

		s := NewSpot(gglm.NewVec3(1, 1, 1), 1, gglm.NewVec3(0, 5, 0), gglm.NewVec3(0, -1, 0), Attenuation{Constant: 1}, cutoffDeg*gglm.Deg2Rad)
		if err := s.EnableShadows(ctx, 64); !errors.Is(err, ErrInvalidSpotCutoff) {
			t.Fatalf("cutoff %f: expected ErrInvalidSpotCutoff, got %v", cutoffDeg, err)
		}

		if s.Shadow != nil {
			t.Fatalf("cutoff %f: no shadow caster may be created", cutoffDeg)
		}
	}

	if dev.LiveTextures() != 0 {
		t.Fatalf("%d shadow maps leaked", dev.LiveTextures())
	}

	// Shrinking the cone to nothing after enabling invalidates the caster
	s := NewSpot(gglm.NewVec3(1, 1, 1), 1, gglm.NewVec3(0, 5, 0), gglm.NewVec3(0, -1, 0), Attenuation{Constant: 1}, 20*gglm.Deg2Rad)
	if err := s.EnableShadows(ctx, 64); err != nil {
		t.Fatal(err)
	}

	s.CutoffRad = 0
	s.UpdateShadowCamera()
	if _, ok := s.ShadowCamera(); ok || s.Shadow.IsValid() {
		t.Fatal("a zero cutoff must leave the shadow caster invalid")
	}

	s.CutoffRad = 15 * gglm.Deg2Rad
	s.UpdateShadowCamera()
	if !s.Shadow.IsValid() {
		t.Fatal("fixing the cutoff must make the caster valid again")
	}
}

func TestShadowFailureKeepsOldCaster(t *testing.T) {

	dev := renderertest.NewDevice()
	ctx := rendertarget.NewContext(dev)
	d := NewDirectional(gglm.NewVec3(1, 1, 1), 1, gglm.NewVec3(1, -1, 0))

	if err := d.EnableShadows(ctx, 64, gglm.NewVec3(0, 10, 0)); err != nil {
		t.Fatal(err)
	}

	dev.FailGenFramebuffer = true
	if err := d.EnableShadows(ctx, 128, gglm.NewVec3(0, 10, 0)); err == nil {
		t.Fatal("expected failure")
	}

	if !d.Shadow.IsValid() || d.Shadow.Target.Width != 64 {
		t.Fatal("failed enable must keep the previous shadow map")
	}
}

func TestColorFromSRGB(t *testing.T) {

	c := ColorFromSRGB(255, 0, 128)
	if math.Abs(float64(c.Data[0]-1)) > 1e-4 || c.Data[1] != 0 {
		t.Fatalf("unexpected linear color %v", c.Data)
	}

	// Mid grey sRGB is darker in linear space
	if c.Data[2] <= 0.2 || c.Data[2] >= 0.25 {
		t.Fatalf("sRGB 128 should be about 0.216 linear, got %f", c.Data[2])
	}
}
