package deferred

import (
	_ "embed"
	"os"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/logging"
	"github.com/bloeys/ndefer/renderer"
	"github.com/bloeys/ndefer/rendertarget"
)

var (
	//go:embed shaders/light_pass.glsl
	lightPassShaderSrc []byte

	//go:embed shaders/copy.glsl
	copyShaderSrc []byte
)

// Color attachment index of each geometry channel
const (
	GBufferIndex_Color = iota
	GBufferIndex_Position
	GBufferIndex_Normal
	GBufferIndex_SurfaceParameters
	GBufferIndex_Count
)

// Texture units used by the light pass
const (
	TextureUnit_Color uint32 = iota
	TextureUnit_Position
	TextureUnit_Normal
	TextureUnit_SurfaceParameters
	TextureUnit_Depth
	TextureUnit_ShadowMap
)

var (
	// GBufferFormats is the format of each geometry channel, in GBufferIndex order
	GBufferFormats = [GBufferIndex_Count]renderer.TextureFormat{
		GBufferIndex_Color:             renderer.TextureFormat_RGBA16F,
		GBufferIndex_Position:          renderer.TextureFormat_RGBA32F,
		GBufferIndex_Normal:            renderer.TextureFormat_RGBA16F,
		GBufferIndex_SurfaceParameters: renderer.TextureFormat_RGBA8,
	}

	LightPassFormat = renderer.TextureFormat_RGBA16F
)

// bufferedLightPass only exists for pipelines in LightPassMode_Buffered
type bufferedLightPass struct {
	target   *rendertarget.Target
	copyProg renderer.Program
}

// Pipeline renders a frame in three passes: a geometry pass filling the G-buffer,
// a light pass adding one full screen draw per light, and in buffered mode a copy pass
// moving the lit image to the screen.
//
// A pipeline owns its targets and programs and must be released with Delete.
type Pipeline struct {
	ctx *rendertarget.Context

	lightPassProg renderer.Program
	quad          renderer.FullScreenQuad

	screen   *rendertarget.Target
	geometry *rendertarget.Target

	// buffered is nil in direct mode
	buffered *bufferedLightPass
}

// New creates a pipeline drawing to a screen of cfg.Width by cfg.Height.
// Either everything is created or nothing is, in which case the error is an *Error.
func New(ctx *rendertarget.Context, cfg Config) (*Pipeline, error) {

	p := &Pipeline{ctx: ctx}
	if err := p.init(&cfg); err != nil {
		p.Delete()
		return nil, err
	}

	logging.Logger().Debug("created deferred pipeline", "width", cfg.Width, "height", cfg.Height, "mode", cfg.LightPassMode)
	return p, nil
}

func (p *Pipeline) init(cfg *Config) error {

	dev := p.ctx.Dev

	src, err := readShaderSrc(cfg.LightPassShaderPath, lightPassShaderSrc)
	if err != nil {
		return wrapErr("read light pass shader", err)
	}

	p.lightPassProg, err = dev.NewProgram(src)
	if err != nil {
		return wrapErr("create light pass program", err)
	}

	p.quad, err = dev.NewFullScreenQuad()
	if err != nil {
		return wrapErr("create full screen quad", err)
	}

	p.screen = rendertarget.NewScreen(cfg.Width, cfg.Height, gglm.NewVec4(0, 0, 0, 0))

	p.geometry, err = newGeometryTarget(p.ctx, cfg.Width, cfg.Height, cfg.BackgroundColor)
	if err != nil {
		return wrapErr("create geometry target", err)
	}

	if cfg.LightPassMode != LightPassMode_Buffered {
		return nil
	}

	b := &bufferedLightPass{}
	p.buffered = b

	b.target, err = newLightTarget(p.ctx, cfg.Width, cfg.Height, gglm.NewVec4(0, 0, 0, 0))
	if err != nil {
		return wrapErr("create light pass target", err)
	}

	src, err = readShaderSrc(cfg.CopyShaderPath, copyShaderSrc)
	if err != nil {
		return wrapErr("read copy shader", err)
	}

	b.copyProg, err = dev.NewProgram(src)
	if err != nil {
		return wrapErr("create copy program", err)
	}

	return nil
}

func readShaderSrc(path string, builtin []byte) ([]byte, error) {

	if path == "" {
		return builtin, nil
	}

	return os.ReadFile(path)
}

func newGeometryTarget(ctx *rendertarget.Context, width, height uint32, clearColor gglm.Vec4) (*rendertarget.Target, error) {
	return rendertarget.NewColor(ctx, width, height, GBufferFormats[:], clearColor)
}

func newLightTarget(ctx *rendertarget.Context, width, height uint32, clearColor gglm.Vec4) (*rendertarget.Target, error) {
	return rendertarget.NewColor(ctx, width, height, []renderer.TextureFormat{LightPassFormat}, clearColor)
}

// Resize recreates the geometry target, and the light pass target in buffered mode, at the new size
// keeping their clear colors. Textures taken from the pipeline before a resize are invalid after it.
//
// On failure the pipeline keeps its previous targets and size.
func (p *Pipeline) Resize(width, height uint32) error {

	geometry, err := newGeometryTarget(p.ctx, width, height, p.geometry.ClearColor)
	if err != nil {
		return wrapErr("resize geometry target", err)
	}

	var light *rendertarget.Target
	if p.buffered != nil {

		light, err = newLightTarget(p.ctx, width, height, p.buffered.target.ClearColor)
		if err != nil {
			geometry.Delete(p.ctx)
			return wrapErr("resize light pass target", err)
		}
	}

	p.geometry.Delete(p.ctx)
	p.geometry = geometry

	if p.buffered != nil {
		p.buffered.target.Delete(p.ctx)
		p.buffered.target = light
	}

	p.screen.Resize(width, height)

	logging.Logger().Debug("resized deferred pipeline", "width", width, "height", height)
	return nil
}

// Delete releases every GPU object owned by the pipeline. Calling it again, or on nil, does nothing.
func (p *Pipeline) Delete() {

	if p == nil {
		return
	}

	if p.buffered != nil {

		if p.buffered.target != nil {
			p.buffered.target.Delete(p.ctx)
		}

		if p.buffered.copyProg != nil {
			p.buffered.copyProg.Delete()
		}

		p.buffered = nil
	}

	if p.geometry != nil {
		p.geometry.Delete(p.ctx)
		p.geometry = nil
	}

	if p.quad != nil {
		p.quad.Delete()
		p.quad = nil
	}

	if p.lightPassProg != nil {
		p.lightPassProg.Delete()
		p.lightPassProg = nil
	}
}

func (p *Pipeline) Width() uint32 {
	return p.screen.Width
}

func (p *Pipeline) Height() uint32 {
	return p.screen.Height
}

func (p *Pipeline) Mode() LightPassMode {

	if p.buffered != nil {
		return LightPassMode_Buffered
	}

	return LightPassMode_Direct
}

// FullScreen is the quad the pipeline draws its passes with
func (p *Pipeline) FullScreen() renderer.FullScreenQuad {
	return p.quad
}

// Screen is the window surface target
func (p *Pipeline) Screen() *rendertarget.Target {
	return p.screen
}

func (p *Pipeline) GeometryPassColorTexture() renderer.Texture {
	return p.geometry.ColorAttachment(GBufferIndex_Color)
}

func (p *Pipeline) GeometryPassPositionTexture() renderer.Texture {
	return p.geometry.ColorAttachment(GBufferIndex_Position)
}

func (p *Pipeline) GeometryPassNormalTexture() renderer.Texture {
	return p.geometry.ColorAttachment(GBufferIndex_Normal)
}

func (p *Pipeline) GeometryPassSurfaceParametersTexture() renderer.Texture {
	return p.geometry.ColorAttachment(GBufferIndex_SurfaceParameters)
}

func (p *Pipeline) GeometryPassDepthTexture() renderer.Texture {
	return p.geometry.DepthAttachment
}

// LightPassColorTexture returns the accumulated light of the last light pass.
// It fails with ErrorKind_LightPassRendertargetNotAvailable in direct mode.
func (p *Pipeline) LightPassColorTexture() (renderer.Texture, error) {

	if p.buffered == nil {
		return nil, &Error{
			Kind: ErrorKind_LightPassRendertargetNotAvailable,
			Op:   "get light pass color texture",
			Err:  ErrLightPassRendertargetNotAvailable,
		}
	}

	return p.buffered.target.ColorAttachment(0), nil
}
