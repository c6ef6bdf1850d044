// Package renderertest provides a recording renderer.Device that needs no GPU.
package renderertest

import (
	"errors"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/renderer"
)

var _ renderer.Device = &Device{}

type Framebuffer struct {
	Id          uint32
	Colors      map[uint32]*Texture
	Depth       *Texture
	DrawBuffers uint32
}

// DrawRecord is the GPU state at the time of a full screen quad draw
type DrawRecord struct {
	Program    *Program
	Fbo        uint32
	DepthWrite bool
	DepthTest  renderer.DepthTestType
	Cull       renderer.CullType
	Blend      renderer.BlendType
}

// ClearRecord is the GPU state at the time of a clear
type ClearRecord struct {
	Fbo        uint32
	Color      gglm.Vec4
	DepthWrite bool
}

type Device struct {
	BoundFbo       uint32
	ViewportWidth  uint32
	ViewportHeight uint32
	ClearColorVal  gglm.Vec4

	DepthWriteEnabled bool
	DepthTestVal      renderer.DepthTestType
	CullVal           renderer.CullType
	BlendVal          renderer.BlendType

	// BoundTextures maps texture unit to the texture bound to it
	BoundTextures map[uint32]*Texture

	Framebuffers        map[uint32]*Framebuffer
	DeletedFramebuffers []uint32
	Programs            []*Program
	Textures            []*Texture
	Quads               []*Quad

	BindFramebufferCalls int
	Clears               []ClearRecord
	Draws                []DrawRecord

	// Failure injection
	FailGenFramebuffer bool
	FailComplete       bool
	FailPrograms       bool
	FailQuad           bool
	// FailTextureAfter makes texture creation fail once this many textures were created. Negative disables it.
	FailTextureAfter int

	// PixelValue is written into every byte returned by ReadPixelsRGB, unless PixelData is set
	PixelValue byte
	// PixelData is copied into the output of ReadPixelsRGB when not nil
	PixelData []byte
	// ReadFbo is the framebuffer of the last ReadPixelsRGB call
	ReadFbo uint32

	nextFboId  uint32
	nextTexId  uint32
	nextProgId uint32
}

func NewDevice() *Device {
	return &Device{
		BoundTextures:    map[uint32]*Texture{},
		Framebuffers:     map[uint32]*Framebuffer{},
		FailTextureAfter: -1,
	}
}

func (d *Device) NewProgram(combinedSrc []byte) (renderer.Program, error) {

	if d.FailPrograms {
		return nil, &renderer.ProgramError{Op: "link", Log: "link failure requested by test"}
	}

	d.nextProgId++
	p := &Program{
		dev:          d,
		id:           d.nextProgId,
		Src:          combinedSrc,
		Ints:         map[string]int32{},
		Floats:       map[string]float32{},
		Vec3s:        map[string]gglm.Vec3{},
		Mat4s:        map[string]gglm.Mat4{},
		FailUniforms: map[string]bool{},
	}
	d.Programs = append(d.Programs, p)

	return p, nil
}

func (d *Device) NewTexture(width, height uint32, format renderer.TextureFormat) (renderer.Texture, error) {

	if d.FailTextureAfter >= 0 && len(d.Textures) >= d.FailTextureAfter {
		return nil, &renderer.TextureError{Width: width, Height: height, Format: format, Reason: "failure requested by test"}
	}

	if width == 0 || height == 0 || format == renderer.TextureFormat_Unknown {
		return nil, &renderer.TextureError{Width: width, Height: height, Format: format, Reason: "invalid texture description"}
	}

	d.nextTexId++
	tex := &Texture{
		dev:    d,
		id:     d.nextTexId,
		width:  width,
		height: height,
		format: format,
	}
	d.Textures = append(d.Textures, tex)

	return tex, nil
}

func (d *Device) NewFullScreenQuad() (renderer.FullScreenQuad, error) {

	if d.FailQuad {
		return nil, &renderer.ProgramError{Op: "create quad", Log: "failure requested by test"}
	}

	q := &Quad{dev: d}
	d.Quads = append(d.Quads, q)
	return q, nil
}

func (d *Device) GenFramebuffer() (uint32, error) {

	if d.FailGenFramebuffer {
		return 0, errors.New("framebuffer generation failure requested by test")
	}

	d.nextFboId++
	d.Framebuffers[d.nextFboId] = &Framebuffer{
		Id:     d.nextFboId,
		Colors: map[uint32]*Texture{},
	}

	return d.nextFboId, nil
}

func (d *Device) DeleteFramebuffer(fboId uint32) {
	delete(d.Framebuffers, fboId)
	d.DeletedFramebuffers = append(d.DeletedFramebuffers, fboId)

	// GL reverts to the default framebuffer when the bound one is deleted
	if d.BoundFbo == fboId {
		d.BoundFbo = 0
	}
}

func (d *Device) AttachColorTexture(fboId uint32, index uint32, tex renderer.Texture) {
	d.Framebuffers[fboId].Colors[index] = tex.(*Texture)
	d.BoundFbo = 0
}

func (d *Device) AttachDepthTexture(fboId uint32, tex renderer.Texture) {
	d.Framebuffers[fboId].Depth = tex.(*Texture)
	d.BoundFbo = 0
}

func (d *Device) SetDrawBuffers(fboId uint32, colorAttachmentCount uint32) {
	d.Framebuffers[fboId].DrawBuffers = colorAttachmentCount
	d.BoundFbo = 0
}

func (d *Device) IsFramebufferComplete(fboId uint32) bool {

	d.BoundFbo = 0
	if d.FailComplete {
		return false
	}

	fbo, ok := d.Framebuffers[fboId]
	if !ok {
		return false
	}

	return len(fbo.Colors) > 0 || fbo.Depth != nil
}

func (d *Device) BindFramebuffer(fboId uint32) {
	d.BoundFbo = fboId
	d.BindFramebufferCalls++
}

func (d *Device) Viewport(width, height uint32) {
	d.ViewportWidth = width
	d.ViewportHeight = height
}

func (d *Device) ClearColor(color *gglm.Vec4) {
	d.ClearColorVal = *color
}

func (d *Device) Clear() {
	d.Clears = append(d.Clears, ClearRecord{
		Fbo:        d.BoundFbo,
		Color:      d.ClearColorVal,
		DepthWrite: d.DepthWriteEnabled,
	})
}

func (d *Device) DepthWrite(enabled bool) {
	d.DepthWriteEnabled = enabled
}

func (d *Device) DepthTest(t renderer.DepthTestType) {
	d.DepthTestVal = t
}

func (d *Device) Cull(t renderer.CullType) {
	d.CullVal = t
}

func (d *Device) Blend(t renderer.BlendType) {
	d.BlendVal = t
}

func (d *Device) ReadPixelsRGB(fboId uint32, width, height uint32, out []byte) {

	d.ReadFbo = fboId

	n := int(width * height * 3)
	if n > len(out) {
		n = len(out)
	}

	if d.PixelData != nil {
		copy(out[:n], d.PixelData)
		return
	}

	for i := 0; i < n; i++ {
		out[i] = d.PixelValue
	}
}

// LiveTextures returns the number of created textures that were not deleted
func (d *Device) LiveTextures() int {

	count := 0
	for _, tex := range d.Textures {
		if !tex.Deleted {
			count++
		}
	}

	return count
}

type Texture struct {
	dev     *Device
	id      uint32
	width   uint32
	height  uint32
	format  renderer.TextureFormat
	Deleted bool
}

func (t *Texture) Id() uint32                     { return t.id }
func (t *Texture) Width() uint32                  { return t.width }
func (t *Texture) Height() uint32                 { return t.height }
func (t *Texture) Format() renderer.TextureFormat { return t.format }

func (t *Texture) Bind(unit uint32) {
	t.dev.BoundTextures[unit] = t
}

func (t *Texture) Delete() {
	t.Deleted = true
}

type Program struct {
	dev *Device
	id  uint32
	Src []byte

	Ints   map[string]int32
	Floats map[string]float32
	Vec3s  map[string]gglm.Vec3
	Mat4s  map[string]gglm.Mat4

	// FailUniforms makes setting the named uniforms fail
	FailUniforms map[string]bool
	Deleted      bool
	InUse        bool
}

func (p *Program) Id() uint32 { return p.id }

func (p *Program) Use() {

	for _, other := range p.dev.Programs {
		other.InUse = false
	}

	p.InUse = true
}

func (p *Program) check(uniformName string) error {

	if p.FailUniforms[uniformName] {
		return &renderer.ProgramError{Op: "set uniform", Name: uniformName, Log: "failure requested by test"}
	}

	return nil
}

func (p *Program) SetUnifInt32(uniformName string, val int32) error {

	if err := p.check(uniformName); err != nil {
		return err
	}

	p.Ints[uniformName] = val
	return nil
}

func (p *Program) SetUnifFloat32(uniformName string, val float32) error {

	if err := p.check(uniformName); err != nil {
		return err
	}

	p.Floats[uniformName] = val
	return nil
}

func (p *Program) SetUnifVec3(uniformName string, val *gglm.Vec3) error {

	if err := p.check(uniformName); err != nil {
		return err
	}

	p.Vec3s[uniformName] = *val
	return nil
}

func (p *Program) SetUnifMat4(uniformName string, val *gglm.Mat4) error {

	if err := p.check(uniformName); err != nil {
		return err
	}

	p.Mat4s[uniformName] = *val
	return nil
}

func (p *Program) Delete() {
	p.Deleted = true
}

type Quad struct {
	dev     *Device
	Deleted bool
}

func (q *Quad) Render(p renderer.Program) {

	p.Use()

	d := q.dev
	d.Draws = append(d.Draws, DrawRecord{
		Program:    p.(*Program),
		Fbo:        d.BoundFbo,
		DepthWrite: d.DepthWriteEnabled,
		DepthTest:  d.DepthTestVal,
		Cull:       d.CullVal,
		Blend:      d.BlendVal,
	})
}

func (q *Quad) Delete() {
	q.Deleted = true
}
