package rendertarget

import (
	"errors"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/renderer"
	"github.com/bloeys/ndefer/renderer/renderertest"
)

var gBufferFormats = []renderer.TextureFormat{
	renderer.TextureFormat_RGBA16F,
	renderer.TextureFormat_RGBA32F,
	renderer.TextureFormat_RGBA16F,
	renderer.TextureFormat_RGBA8,
}

func newTestContext() (*Context, *renderertest.Device) {
	dev := renderertest.NewDevice()
	return NewContext(dev), dev
}

func TestScreenTarget(t *testing.T) {

	ctx, dev := newTestContext()
	screen := NewScreen(800, 600, gglm.NewVec4(0, 0, 0, 0))

	if screen.Kind != Kind_Screen || screen.Id != ScreenId {
		t.Fatalf("expected screen target with id 0, got kind=%s id=%d", screen.Kind, screen.Id)
	}

	if len(screen.ColorAttachments) != 0 || screen.HasDepthAttachment() {
		t.Fatal("screen target must not have attachments")
	}

	screen.Bind(ctx)
	if dev.BoundFbo != 0 || dev.ViewportWidth != 800 || dev.ViewportHeight != 600 {
		t.Fatalf("unexpected bind state fbo=%d viewport=%dx%d", dev.BoundFbo, dev.ViewportWidth, dev.ViewportHeight)
	}

	// Deleting the screen is a no-op
	screen.Delete(ctx)
	if len(dev.DeletedFramebuffers) != 0 {
		t.Fatal("deleting the screen must not delete framebuffer 0")
	}
}

func TestNewColorAllocatesAttachments(t *testing.T) {

	ctx, dev := newTestContext()
	clearColor := gglm.NewVec4(0.1, 0.2, 0.3, 1)

	target, err := NewColor(ctx, 640, 480, gBufferFormats, clearColor)
	if err != nil {
		t.Fatal(err)
	}

	if target.Kind != Kind_Color || target.Id == 0 {
		t.Fatalf("unexpected target kind=%s id=%d", target.Kind, target.Id)
	}

	if len(target.ColorAttachments) != 4 {
		t.Fatalf("expected 4 color attachments, got %d", len(target.ColorAttachments))
	}

	fbo := dev.Framebuffers[target.Id]
	for i := 0; i < len(gBufferFormats); i++ {

		tex := target.ColorAttachment(i)
		if tex.Format() != gBufferFormats[i] {
			t.Errorf("attachment %d has format %s, expected %s", i, tex.Format(), gBufferFormats[i])
		}

		if tex.Width() != 640 || tex.Height() != 480 {
			t.Errorf("attachment %d has size %dx%d", i, tex.Width(), tex.Height())
		}

		if fbo.Colors[uint32(i)] != tex {
			t.Errorf("attachment %d not attached at index %d", i, i)
		}
	}

	if !target.HasDepthAttachment() || fbo.Depth != target.DepthAttachment {
		t.Fatal("depth attachment missing")
	}

	if fbo.DrawBuffers != 4 {
		t.Fatalf("expected 4 draw buffers, got %d", fbo.DrawBuffers)
	}

	if target.ClearColor != clearColor {
		t.Fatal("clear color not stored")
	}
}

func TestNewDepth(t *testing.T) {

	ctx, dev := newTestContext()

	target, err := NewDepth(ctx, 1024, 1024, gglm.NewVec4(1, 1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}

	if len(target.ColorAttachments) != 0 || !target.HasDepthAttachment() {
		t.Fatal("depth target should have only a depth attachment")
	}

	if target.DepthAttachment.Format() != renderer.TextureFormat_DepthF32 {
		t.Fatalf("unexpected depth format %s", target.DepthAttachment.Format())
	}

	if dev.Framebuffers[target.Id].DrawBuffers != 0 {
		t.Fatal("depth target should have no draw buffers")
	}
}

func TestNewColorFailures(t *testing.T) {

	tests := []struct {
		name    string
		width   uint32
		setup   func(dev *renderertest.Device)
		formats []renderer.TextureFormat
		wantErr error
		wantTex bool
	}{
		{name: "zero size", width: 0, formats: gBufferFormats, wantErr: ErrInvalidSize},
		{name: "depth format as color", width: 8, formats: []renderer.TextureFormat{renderer.TextureFormat_DepthF32}},
		{name: "too many attachments", width: 8, formats: make([]renderer.TextureFormat, 9), wantErr: ErrTooManyAttachment},
		{
			name:    "gen framebuffer",
			width:   8,
			formats: gBufferFormats,
			setup:   func(dev *renderertest.Device) { dev.FailGenFramebuffer = true },
		},
		{
			name:    "incomplete",
			width:   8,
			formats: gBufferFormats,
			setup:   func(dev *renderertest.Device) { dev.FailComplete = true },
			wantErr: ErrIncomplete,
		},
		{
			name:    "texture",
			width:   8,
			formats: gBufferFormats,
			setup:   func(dev *renderertest.Device) { dev.FailTextureAfter = 2 },
			wantTex: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			ctx, dev := newTestContext()
			if tt.setup != nil {
				tt.setup(dev)
			}

			target, err := NewColor(ctx, tt.width, 8, tt.formats, gglm.NewVec4(0, 0, 0, 0))
			if err == nil || target != nil {
				t.Fatal("expected failure")
			}

			var rtErr *Error
			if !errors.As(err, &rtErr) {
				t.Fatalf("expected *rendertarget.Error, got %T: %v", err, err)
			}

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			var texErr *renderer.TextureError
			if tt.wantTex != errors.As(err, &texErr) {
				t.Fatalf("texture error expected=%v, got %v", tt.wantTex, err)
			}

			// Nothing may leak
			if len(dev.Framebuffers) != 0 {
				t.Fatalf("%d framebuffers leaked", len(dev.Framebuffers))
			}

			if dev.LiveTextures() != 0 {
				t.Fatalf("%d textures leaked", dev.LiveTextures())
			}
		})
	}
}

func TestBindSkipsRedundantBinds(t *testing.T) {

	ctx, dev := newTestContext()
	screen := NewScreen(800, 600, gglm.NewVec4(0, 0, 0, 0))
	target, err := NewColor(ctx, 800, 600, gBufferFormats, gglm.NewVec4(0, 0, 0, 0))
	if err != nil {
		t.Fatal(err)
	}

	dev.BindFramebufferCalls = 0

	target.Bind(ctx)
	target.Bind(ctx)
	if dev.BindFramebufferCalls != 1 {
		t.Fatalf("expected 1 bind call, got %d", dev.BindFramebufferCalls)
	}

	id, ok := ctx.Bound()
	if !ok || id != target.Id {
		t.Fatalf("context reports bound=%d ok=%v", id, ok)
	}

	screen.Bind(ctx)
	target.Bind(ctx)
	if dev.BindFramebufferCalls != 3 {
		t.Fatalf("expected 3 bind calls, got %d", dev.BindFramebufferCalls)
	}

	ctx.Invalidate()
	target.Bind(ctx)
	if dev.BindFramebufferCalls != 4 {
		t.Fatalf("expected invalidate to force a bind, got %d calls", dev.BindFramebufferCalls)
	}
}

func TestBindAfterScreenResizeUpdatesViewport(t *testing.T) {

	ctx, dev := newTestContext()
	screen := NewScreen(800, 600, gglm.NewVec4(0, 0, 0, 0))

	screen.Bind(ctx)
	screen.Resize(1024, 768)
	screen.Bind(ctx)

	if dev.ViewportWidth != 1024 || dev.ViewportHeight != 768 {
		t.Fatalf("viewport not updated after resize, got %dx%d", dev.ViewportWidth, dev.ViewportHeight)
	}
}

func TestContextsAreIndependent(t *testing.T) {

	ctxA, devA := newTestContext()
	ctxB, devB := newTestContext()
	screen := NewScreen(100, 100, gglm.NewVec4(0, 0, 0, 0))

	screen.Bind(ctxA)
	screen.Bind(ctxB)

	if devA.BindFramebufferCalls != 1 || devB.BindFramebufferCalls != 1 {
		t.Fatalf("binding on one context must not affect another, got %d and %d binds", devA.BindFramebufferCalls, devB.BindFramebufferCalls)
	}
}

func TestClearEnablesDepthWriteAndUsesClearColor(t *testing.T) {

	ctx, dev := newTestContext()
	clearColor := gglm.NewVec4(0.25, 0.5, 0.75, 1)
	target, err := NewColor(ctx, 16, 16, gBufferFormats[:1], clearColor)
	if err != nil {
		t.Fatal(err)
	}

	dev.DepthWrite(false)
	target.Bind(ctx)
	target.Clear(ctx)

	if len(dev.Clears) != 1 {
		t.Fatalf("expected one clear, got %d", len(dev.Clears))
	}

	c := dev.Clears[0]
	if !c.DepthWrite {
		t.Fatal("depth write must be enabled when clearing")
	}

	if c.Color != clearColor || c.Fbo != target.Id {
		t.Fatalf("unexpected clear record %+v", c)
	}
}

func TestDeleteReleasesOnce(t *testing.T) {

	ctx, dev := newTestContext()
	target, err := NewColor(ctx, 16, 16, gBufferFormats, gglm.NewVec4(0, 0, 0, 0))
	if err != nil {
		t.Fatal(err)
	}

	id := target.Id
	target.Bind(ctx)
	target.Delete(ctx)
	target.Delete(ctx)

	if len(dev.DeletedFramebuffers) != 1 || dev.DeletedFramebuffers[0] != id {
		t.Fatalf("expected framebuffer %d deleted exactly once, got %v", id, dev.DeletedFramebuffers)
	}

	if dev.LiveTextures() != 0 {
		t.Fatalf("%d attachments still alive", dev.LiveTextures())
	}

	if target.IsAlive() {
		t.Fatal("deleted target reports alive")
	}

	if _, ok := ctx.Bound(); ok {
		t.Fatal("deleting the bound target must clear the bound marker")
	}
}

func TestResizeColorTargetPanics(t *testing.T) {

	ctx, _ := newTestContext()
	target, err := NewColor(ctx, 16, 16, gBufferFormats, gglm.NewVec4(0, 0, 0, 0))
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected resize of a color target to panic")
		}
	}()

	target.Resize(32, 32)
}
