package renderer

import (
	"github.com/bloeys/gglm/gglm"
)

// Texture is a 2D GPU texture. It owns its GPU memory and is released with Delete,
// independent of any render target it is attached to.
type Texture interface {
	Id() uint32
	Width() uint32
	Height() uint32
	Format() TextureFormat

	// Bind binds the texture to the given texture unit (e.g. 0 for GL_TEXTURE0)
	Bind(unit uint32)
	Delete()
}

// Program is a linked shader program. Uniform setters fail with a *ProgramError when
// the uniform can not be uploaded (e.g. it does not exist in the program).
type Program interface {
	Id() uint32
	Use()

	SetUnifInt32(uniformName string, val int32) error
	SetUnifFloat32(uniformName string, val float32) error
	SetUnifVec3(uniformName string, val *gglm.Vec3) error
	SetUnifMat4(uniformName string, val *gglm.Mat4) error

	Delete()
}

// FullScreenQuad draws one quad covering the whole viewport using a program.
type FullScreenQuad interface {
	Render(p Program)
	Delete()
}

// Device is the set of primitive GPU operations the render targets and the deferred
// pipeline are built on. There is one implementation (rend3dgl) and a recording fake
// used in tests.
//
// A Device is bound to one GPU context and must only be used from the thread owning it.
type Device interface {

	// NewProgram compiles and links a combined shader source containing
	// '//shader:vertex' and '//shader:fragment' sections.
	NewProgram(combinedSrc []byte) (Program, error)
	NewTexture(width, height uint32, format TextureFormat) (Texture, error)
	NewFullScreenQuad() (FullScreenQuad, error)

	// Framebuffer setup calls may change the bound framebuffer
	GenFramebuffer() (uint32, error)
	DeleteFramebuffer(fboId uint32)
	AttachColorTexture(fboId uint32, index uint32, tex Texture)
	AttachDepthTexture(fboId uint32, tex Texture)
	SetDrawBuffers(fboId uint32, colorAttachmentCount uint32)
	IsFramebufferComplete(fboId uint32) bool

	BindFramebuffer(fboId uint32)
	Viewport(width, height uint32)
	ClearColor(color *gglm.Vec4)

	// Clear clears the color and depth buffers of the bound framebuffer
	Clear()

	DepthWrite(enabled bool)
	DepthTest(t DepthTestType)
	Cull(t CullType)
	Blend(t BlendType)

	// ReadPixelsRGB reads the first color attachment of fboId (or the back buffer for 0)
	// into out as tightly packed 8-bit RGB rows, bottom row first.
	ReadPixelsRGB(fboId uint32, width, height uint32, out []byte)
}
