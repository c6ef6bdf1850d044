package rendertarget

import (
	"errors"
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/assert"
	"github.com/bloeys/ndefer/renderer"
)

const (
	// ScreenId is the framebuffer id of the window surface
	ScreenId uint32 = 0

	// MaxColorAttachments is the minimum number of color attachments GL guarantees
	MaxColorAttachments = 8
)

var (
	ErrInvalidSize       = errors.New("render target width and height must be bigger than zero")
	ErrTooManyAttachment = fmt.Errorf("render targets support at most %d color attachments", MaxColorAttachments)
	ErrIncomplete        = errors.New("framebuffer is not complete")
)

// Error is returned when a color target can not be created
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "rendertarget: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Kind uint8

const (
	// Kind_Screen is the window surface, always framebuffer 0 with no attachments
	Kind_Screen Kind = iota
	// Kind_Color is an offscreen framebuffer owning its color and depth attachments
	Kind_Color
)

func (k Kind) String() string {

	switch k {
	case Kind_Screen:
		return "Screen"
	case Kind_Color:
		return "Color"
	default:
		return "Unknown"
	}
}

// Target is either the screen or an offscreen color target.
//
// The attachments of a color target are fixed when it is created.
// Changing the size of a color target means creating a new one, which
// invalidates any texture previously taken from the old target.
type Target struct {
	Kind       Kind
	Id         uint32
	Width      uint32
	Height     uint32
	ClearColor gglm.Vec4

	// ColorAttachments index is the binding contract users of the target rely on.
	// Always empty for the screen.
	ColorAttachments []renderer.Texture
	DepthAttachment  renderer.Texture
}

func (t *Target) Bind(ctx *Context) {
	ctx.bind(t.Id, t.Width, t.Height)
}

// Clear clears color and depth of the currently bound target using the target clear color.
// Depth writes are enabled first, otherwise a previous pass that disabled them would keep
// the depth buffer from being cleared.
func (t *Target) Clear(ctx *Context) {
	ctx.Dev.DepthWrite(true)
	ctx.Dev.ClearColor(&t.ClearColor)
	ctx.Dev.Clear()
}

// Resize changes the logical size of a screen target. Color targets can not be resized
// in place and must be recreated.
func (t *Target) Resize(width, height uint32) {
	assert.T(t.Kind == Kind_Screen, "Resize called on a %s render target. Only screen targets can be resized in place", t.Kind)
	t.Width = width
	t.Height = height
}

func (t *Target) ColorAttachment(index int) renderer.Texture {
	assert.T(index >= 0 && index < len(t.ColorAttachments), "color attachment index %d out of range for target with %d color attachments", index, len(t.ColorAttachments))
	return t.ColorAttachments[index]
}

func (t *Target) HasDepthAttachment() bool {
	return t.DepthAttachment != nil
}

// IsAlive is false for color targets that were deleted
func (t *Target) IsAlive() bool {
	return t.Kind == Kind_Screen || t.Id != 0
}

// Delete releases the framebuffer handle, then lets each attachment release its own texture.
// Calling Delete more than once, or on the screen, does nothing.
func (t *Target) Delete(ctx *Context) {

	if t.Kind == Kind_Screen || t.Id == 0 {
		return
	}

	ctx.forget(t.Id)
	ctx.Dev.DeleteFramebuffer(t.Id)
	t.Id = 0

	for i := 0; i < len(t.ColorAttachments); i++ {
		t.ColorAttachments[i].Delete()
	}
	t.ColorAttachments = nil

	if t.DepthAttachment != nil {
		t.DepthAttachment.Delete()
		t.DepthAttachment = nil
	}
}

func NewScreen(width, height uint32, clearColor gglm.Vec4) *Target {
	return &Target{
		Kind:       Kind_Screen,
		Id:         ScreenId,
		Width:      width,
		Height:     height,
		ClearColor: clearColor,
	}
}

// NewColor creates an offscreen target with one color attachment per entry of colorFormats
// (in the same order) plus a 32-bit float depth attachment. All attachments share the target size.
//
// On failure nothing allocated by this call is left behind.
func NewColor(ctx *Context, width, height uint32, colorFormats []renderer.TextureFormat, clearColor gglm.Vec4) (*Target, error) {

	if width == 0 || height == 0 {
		return nil, &Error{Op: "create", Err: ErrInvalidSize}
	}

	if len(colorFormats) > MaxColorAttachments {
		return nil, &Error{Op: "create", Err: ErrTooManyAttachment}
	}

	for i := 0; i < len(colorFormats); i++ {
		if !colorFormats[i].IsColorFormat() {
			return nil, &Error{Op: "create", Err: fmt.Errorf("attachment %d has format %s which is not a color format", i, colorFormats[i])}
		}
	}

	id, err := ctx.Dev.GenFramebuffer()
	if err != nil {
		return nil, &Error{Op: "generate framebuffer", Err: err}
	}

	t := &Target{
		Kind:             Kind_Color,
		Id:               id,
		Width:            width,
		Height:           height,
		ClearColor:       clearColor,
		ColorAttachments: make([]renderer.Texture, 0, len(colorFormats)),
	}

	// Attaching binds the framebuffer behind the context's back
	defer ctx.Invalidate()

	if err := t.allocAttachments(ctx, colorFormats); err != nil {
		t.Delete(ctx)
		return nil, err
	}

	return t, nil
}

// NewDepth creates an offscreen target with only a depth attachment (e.g. shadow maps)
func NewDepth(ctx *Context, width, height uint32, clearColor gglm.Vec4) (*Target, error) {
	return NewColor(ctx, width, height, nil, clearColor)
}

func (t *Target) allocAttachments(ctx *Context, colorFormats []renderer.TextureFormat) error {

	for i := 0; i < len(colorFormats); i++ {

		tex, err := ctx.Dev.NewTexture(t.Width, t.Height, colorFormats[i])
		if err != nil {
			return &Error{Op: fmt.Sprintf("create color attachment %d", i), Err: err}
		}

		ctx.Dev.AttachColorTexture(t.Id, uint32(i), tex)
		t.ColorAttachments = append(t.ColorAttachments, tex)
	}

	depthTex, err := ctx.Dev.NewTexture(t.Width, t.Height, renderer.TextureFormat_DepthF32)
	if err != nil {
		return &Error{Op: "create depth attachment", Err: err}
	}

	ctx.Dev.AttachDepthTexture(t.Id, depthTex)
	t.DepthAttachment = depthTex

	ctx.Dev.SetDrawBuffers(t.Id, uint32(len(t.ColorAttachments)))
	if !ctx.Dev.IsFramebufferComplete(t.Id) {
		return &Error{Op: "complete framebuffer", Err: ErrIncomplete}
	}

	return nil
}
