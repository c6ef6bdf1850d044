package rend3dgl

import (
	"fmt"

	"github.com/bloeys/ndefer/renderer"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ renderer.Texture = &Texture{}

type Texture struct {
	TexID  uint32
	width  uint32
	height uint32
	format renderer.TextureFormat
}

func (t *Texture) Id() uint32                     { return t.TexID }
func (t *Texture) Width() uint32                  { return t.width }
func (t *Texture) Height() uint32                 { return t.height }
func (t *Texture) Format() renderer.TextureFormat { return t.format }

func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.TexID)
}

func (t *Texture) Delete() {

	if t.TexID == 0 {
		return
	}

	gl.DeleteTextures(1, &t.TexID)
	t.TexID = 0
}

// glFormat returns internal format, pixel format and pixel type
func glFormat(f renderer.TextureFormat) (internalFormat int32, format uint32, xtype uint32, ok bool) {

	switch f {
	case renderer.TextureFormat_RGBA8:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, true
	case renderer.TextureFormat_RGBA16F:
		return gl.RGBA16F, gl.RGBA, gl.FLOAT, true
	case renderer.TextureFormat_RGBA32F:
		return gl.RGBA32F, gl.RGBA, gl.FLOAT, true
	case renderer.TextureFormat_DepthF32:
		return gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT, true
	default:
		return 0, 0, 0, false
	}
}

func newTexture(width, height uint32, format renderer.TextureFormat) (*Texture, error) {

	if width == 0 || height == 0 {
		return nil, &renderer.TextureError{Width: width, Height: height, Format: format, Reason: "size must be bigger than zero"}
	}

	internalFormat, pixelFormat, pixelType, ok := glFormat(format)
	if !ok {
		return nil, &renderer.TextureError{Width: width, Height: height, Format: format, Reason: "unsupported format"}
	}

	tex := &Texture{
		width:  width,
		height: height,
		format: format,
	}

	gl.GenTextures(1, &tex.TexID)
	if tex.TexID == 0 {
		return nil, &renderer.TextureError{Width: width, Height: height, Format: format, Reason: "failed to generate texture"}
	}

	gl.BindTexture(gl.TEXTURE_2D, tex.TexID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, int32(width), int32(height), 0, pixelFormat, pixelType, nil)

	// G-buffer and light pass textures are sampled one texel per pixel
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	if format.IsDepthFormat() {

		// Samples outside a shadow map read as max depth, so they are never in shadow
		borderColor := [4]float32{1, 1, 1, 1}
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
		gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)

	if glErr := gl.GetError(); glErr != gl.NO_ERROR {
		tex.Delete()
		return nil, &renderer.TextureError{Width: width, Height: height, Format: format, Reason: fmt.Sprintf("GlError=%d", glErr)}
	}

	return tex, nil
}
