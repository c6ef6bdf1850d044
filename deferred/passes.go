package deferred

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/camera"
	"github.com/bloeys/ndefer/lights"
	"github.com/bloeys/ndefer/logging"
	"github.com/bloeys/ndefer/renderer"
	"github.com/bloeys/ndefer/rendertarget"
)

// Light type values of the lightType uniform
const (
	LightType_Ambient int32 = iota
	LightType_Directional
	LightType_Point
	LightType_Spot
)

// uniformSetter keeps the first upload error so a block of uniforms can be set without
// checking each call
type uniformSetter struct {
	prog renderer.Program
	err  error
}

func (u *uniformSetter) setInt(name string, val int32) {
	if u.err == nil {
		u.err = u.prog.SetUnifInt32(name, val)
	}
}

func (u *uniformSetter) setFloat(name string, val float32) {
	if u.err == nil {
		u.err = u.prog.SetUnifFloat32(name, val)
	}
}

func (u *uniformSetter) setVec3(name string, val *gglm.Vec3) {
	if u.err == nil {
		u.err = u.prog.SetUnifVec3(name, val)
	}
}

func (u *uniformSetter) setMat4(name string, val *gglm.Mat4) {
	if u.err == nil {
		u.err = u.prog.SetUnifMat4(name, val)
	}
}

// texture binds tex to unit and points the sampler uniform at it
func (u *uniformSetter) texture(name string, tex renderer.Texture, unit uint32) {
	tex.Bind(unit)
	u.setInt(name, int32(unit))
}

func (u *uniformSetter) baseLight(prefix string, base *lights.BaseLight) {
	u.setVec3(prefix+".base.color", &base.Color)
	u.setFloat(prefix+".base.intensity", base.Intensity)
}

func (u *uniformSetter) attenuation(prefix string, att *lights.Attenuation) {
	u.setFloat(prefix+".attenuation.constant", att.Constant)
	u.setFloat(prefix+".attenuation.linear", att.Linear)
	u.setFloat(prefix+".attenuation.exp", att.Exp)
}

// shadow uploads the shadow matrix and map of a valid caster. Lights without one
// only turn shadows off.
func (u *uniformSetter) shadow(sc *lights.ShadowCaster) {

	if !sc.IsValid() {
		u.setInt("shadowsEnabled", 0)
		return
	}

	shadowMVP := ShadowMVP(&sc.Camera)
	u.setMat4("shadowMVP", &shadowMVP)
	u.texture("shadowMap", sc.Target.DepthAttachment, TextureUnit_ShadowMap)
	u.setInt("shadowsEnabled", 1)
}

// lightTarget is what the light pass draws into
func (p *Pipeline) lightTarget() *rendertarget.Target {

	if p.buffered != nil {
		return p.buffered.target
	}

	return p.screen
}

// GeometryPassBegin binds and clears the geometry target. Draws issued after it fill the G-buffer
// until the next pass begins.
func (p *Pipeline) GeometryPassBegin() {

	p.geometry.Bind(p.ctx)
	p.geometry.Clear(p.ctx)

	dev := p.ctx.Dev
	dev.DepthWrite(true)
	dev.DepthTest(renderer.DepthTestType_LessOrEqual)
	dev.Cull(renderer.CullType_None)
	dev.Blend(renderer.BlendType_None)
}

// ShadowPassBegin binds and clears the shadow map of sc. Draws issued after it should use
// a projection of sc.Camera and only write depth.
func (p *Pipeline) ShadowPassBegin(sc *lights.ShadowCaster) error {

	if !sc.IsValid() {
		return &Error{Kind: ErrorKind_Rendertarget, Op: "begin shadow pass", Err: ErrInvalidShadowCaster}
	}

	sc.Target.Bind(p.ctx)
	sc.Target.Clear(p.ctx)

	dev := p.ctx.Dev
	dev.DepthWrite(true)
	dev.DepthTest(renderer.DepthTestType_LessOrEqual)
	dev.Cull(renderer.CullType_Front)
	dev.Blend(renderer.BlendType_None)

	return nil
}

// LightPassBegin binds and clears the light target and binds the G-buffer for the Shine* calls.
// It must be called once per frame after the geometry pass and before any Shine* call.
func (p *Pipeline) LightPassBegin(cam *camera.Camera) error {

	target := p.lightTarget()
	target.Bind(p.ctx)
	target.Clear(p.ctx)

	dev := p.ctx.Dev
	dev.DepthWrite(false)
	dev.DepthTest(renderer.DepthTestType_None)
	// @NOTE: Culling does nothing for a full screen quad. Kept as is until light volumes
	// replace the quad.
	dev.Cull(renderer.CullType_Back)
	dev.Blend(renderer.BlendType_One_One)

	u := uniformSetter{prog: p.lightPassProg}
	u.texture("colorMap", p.GeometryPassColorTexture(), TextureUnit_Color)
	u.texture("positionMap", p.GeometryPassPositionTexture(), TextureUnit_Position)
	u.texture("normalMap", p.GeometryPassNormalTexture(), TextureUnit_Normal)
	u.texture("surfaceParametersMap", p.GeometryPassSurfaceParametersTexture(), TextureUnit_SurfaceParameters)
	u.texture("depthMap", p.GeometryPassDepthTexture(), TextureUnit_Depth)
	u.setVec3("eyePosition", cam.Position())

	return wrapErr("begin light pass", u.err)
}

func (p *Pipeline) shine(op string, u *uniformSetter) error {

	if u.err != nil {
		return wrapErr(op, u.err)
	}

	p.quad.Render(p.lightPassProg)
	return nil
}

func (p *Pipeline) ShineAmbientLight(light *lights.Ambient) error {

	u := uniformSetter{prog: p.lightPassProg}
	u.setInt("lightType", LightType_Ambient)
	u.baseLight("ambientLight", &light.Base)

	return p.shine("shine ambient light", &u)
}

// ShineDirectionalLight adds a directional light. Shadows are applied only if the light has
// a valid shadow caster, otherwise the light is unshadowed.
func (p *Pipeline) ShineDirectionalLight(light *lights.Directional) error {

	u := uniformSetter{prog: p.lightPassProg}
	u.shadow(light.Shadow)
	u.setInt("lightType", LightType_Directional)
	u.setVec3("directionalLight.direction", &light.Direction)
	u.baseLight("directionalLight", &light.Base)

	return p.shine("shine directional light", &u)
}

func (p *Pipeline) ShinePointLight(light *lights.Point) error {

	u := uniformSetter{prog: p.lightPassProg}
	u.setInt("lightType", LightType_Point)
	u.setVec3("pointLight.position", &light.Position)
	u.baseLight("pointLight", &light.Base)
	u.attenuation("pointLight", &light.Attenuation)

	return p.shine("shine point light", &u)
}

func (p *Pipeline) ShineSpotLight(light *lights.Spot) error {

	u := uniformSetter{prog: p.lightPassProg}
	u.shadow(light.Shadow)
	u.setInt("lightType", LightType_Spot)
	u.setVec3("spotLight.position", &light.Position)
	u.setVec3("spotLight.direction", &light.Direction)
	u.baseLight("spotLight", &light.Base)
	u.attenuation("spotLight", &light.Attenuation)
	u.setFloat("spotLight.cutoff", gglm.Cos32(light.CutoffRad))

	return p.shine("shine spot light", &u)
}

// CopyToScreen draws the light pass result to the screen, writing the geometry depth so
// later forward draws are depth tested against the scene.
//
// In direct mode the light pass already drew to the screen and this does nothing.
func (p *Pipeline) CopyToScreen() error {

	if p.buffered == nil {
		logging.Logger().Debug("copy to screen skipped, the light pass draws to the screen directly")
		return nil
	}

	p.screen.Bind(p.ctx)
	p.screen.Clear(p.ctx)

	dev := p.ctx.Dev
	dev.DepthWrite(true)
	dev.DepthTest(renderer.DepthTestType_LessOrEqual)
	dev.Cull(renderer.CullType_Back)
	dev.Blend(renderer.BlendType_None)

	u := uniformSetter{prog: p.buffered.copyProg}
	u.texture("colorMap", p.buffered.target.ColorAttachment(0), 0)
	u.texture("depthMap", p.GeometryPassDepthTexture(), 1)
	if u.err != nil {
		return wrapErr("copy to screen", u.err)
	}

	p.quad.Render(p.buffered.copyProg)
	return nil
}
