package rend3dgl

import (
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/materials"
	"github.com/bloeys/ndefer/meshes"
	"github.com/bloeys/ndefer/renderer"
	"github.com/bloeys/ndefer/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ renderer.Device = &Rend3DGL{}

// Rend3DGL implements renderer.Device on an OpenGL 4.1 core context.
// It must only be used on the thread owning the context.
type Rend3DGL struct {
	BoundMatId     uint32
	BoundMeshVaoId uint32
}

// The constructors below never return a typed nil inside the interface

func (r *Rend3DGL) NewProgram(combinedSrc []byte) (renderer.Program, error) {

	prog, err := shaders.LoadAndCompileCombinedShaderSrc(combinedSrc)
	if err != nil {
		return nil, err
	}

	return prog, nil
}

func (r *Rend3DGL) NewTexture(width, height uint32, format renderer.TextureFormat) (renderer.Texture, error) {

	tex, err := newTexture(width, height, format)
	if err != nil {
		return nil, err
	}

	return tex, nil
}

func (r *Rend3DGL) NewFullScreenQuad() (renderer.FullScreenQuad, error) {

	quad, err := newFullScreenQuad(r)
	if err != nil {
		return nil, err
	}

	return quad, nil
}

func (r *Rend3DGL) GenFramebuffer() (uint32, error) {

	var id uint32
	gl.GenFramebuffers(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("failed to generate framebuffer. GlError=%d", gl.GetError())
	}

	return id, nil
}

func (r *Rend3DGL) DeleteFramebuffer(fboId uint32) {
	gl.DeleteFramebuffers(1, &fboId)
}

func (r *Rend3DGL) AttachColorTexture(fboId uint32, index uint32, tex renderer.Texture) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fboId)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+index, gl.TEXTURE_2D, tex.Id(), 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (r *Rend3DGL) AttachDepthTexture(fboId uint32, tex renderer.Texture) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fboId)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, tex.Id(), 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (r *Rend3DGL) SetDrawBuffers(fboId uint32, colorAttachmentCount uint32) {

	gl.BindFramebuffer(gl.FRAMEBUFFER, fboId)

	if colorAttachmentCount == 0 {
		gl.DrawBuffer(gl.NONE)
		gl.ReadBuffer(gl.NONE)
	} else {

		drawBufs := make([]uint32, colorAttachmentCount)
		for i := uint32(0); i < colorAttachmentCount; i++ {
			drawBufs[i] = gl.COLOR_ATTACHMENT0 + i
		}

		gl.DrawBuffers(int32(colorAttachmentCount), &drawBufs[0])
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// IsFramebufferComplete returns true if OpenGL reports that the fbo is complete/usable.
// Note that this function binds and then unbinds the fbo
func (r *Rend3DGL) IsFramebufferComplete(fboId uint32) bool {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fboId)
	isComplete := gl.CheckFramebufferStatus(gl.FRAMEBUFFER) == gl.FRAMEBUFFER_COMPLETE
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return isComplete
}

func (r *Rend3DGL) BindFramebuffer(fboId uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fboId)
}

func (r *Rend3DGL) Viewport(width, height uint32) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (r *Rend3DGL) ClearColor(color *gglm.Vec4) {
	gl.ClearColor(color.Data[0], color.Data[1], color.Data[2], color.Data[3])
}

func (r *Rend3DGL) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Rend3DGL) DepthWrite(enabled bool) {
	gl.DepthMask(enabled)
}

func (r *Rend3DGL) DepthTest(t renderer.DepthTestType) {

	switch t {
	case renderer.DepthTestType_None:
		gl.Disable(gl.DEPTH_TEST)
	case renderer.DepthTestType_Less:
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	case renderer.DepthTestType_LessOrEqual:
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LEQUAL)
	}
}

func (r *Rend3DGL) Cull(t renderer.CullType) {

	switch t {
	case renderer.CullType_None:
		gl.Disable(gl.CULL_FACE)
	case renderer.CullType_Back:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case renderer.CullType_Front:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	}
}

func (r *Rend3DGL) Blend(t renderer.BlendType) {

	switch t {
	case renderer.BlendType_None:
		gl.Disable(gl.BLEND)
	case renderer.BlendType_One_One:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE, gl.ONE)
	case renderer.BlendType_SrcAlpha_OneMinusSrcAlpha:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
}

// ReadPixelsRGB only touches the read framebuffer binding, so the bound draw target is unchanged
func (r *Rend3DGL) ReadPixelsRGB(fboId uint32, width, height uint32, out []byte) {

	if width == 0 || height == 0 || len(out) < int(width*height*3) {
		return
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fboId)
	if fboId == 0 {
		gl.ReadBuffer(gl.BACK)
	} else {
		gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	}

	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(&out[0]))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}

// DrawMesh draws all sub meshes of mesh with the material, which is expected to write
// the geometry pass outputs.
func (r *Rend3DGL) DrawMesh(mesh *meshes.Mesh, modelMat *gglm.TrMat, mat *materials.Material) error {

	if mesh.Vao.Id != r.BoundMeshVaoId {
		mesh.Vao.Bind()
		r.BoundMeshVaoId = mesh.Vao.Id
	}

	if mat.Id != r.BoundMatId {
		if err := mat.Bind(); err != nil {
			return err
		}
		r.BoundMatId = mat.Id
	}

	if err := mat.SetModelMat(modelMat); err != nil {
		return err
	}

	for i := 0; i < len(mesh.SubMeshes); i++ {
		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, mesh.SubMeshes[i].IndexCount, gl.UNSIGNED_INT, uintptr(mesh.SubMeshes[i].BaseIndex*4), mesh.SubMeshes[i].BaseVertex)
	}

	return nil
}

// FrameEnd forgets cached bindings, call it once at the end of every frame
func (r *Rend3DGL) FrameEnd() {
	r.BoundMatId = 0
	r.BoundMeshVaoId = 0
}

func NewRend3DGL() *Rend3DGL {
	return &Rend3DGL{}
}
