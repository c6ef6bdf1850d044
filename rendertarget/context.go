package rendertarget

import "github.com/bloeys/ndefer/renderer"

type boundTarget struct {
	id     uint32
	width  uint32
	height uint32
}

// Context tracks which target is bound on one GPU context so redundant binds are skipped.
// Every pipeline and render target sharing a GPU context must share the same Context.
type Context struct {
	Dev renderer.Device

	bound    boundTarget
	hasBound bool
}

func NewContext(dev renderer.Device) *Context {
	return &Context{Dev: dev}
}

// Bound returns the id of the last target bound through this context.
// ok is false if nothing is known to be bound.
func (ctx *Context) Bound() (id uint32, ok bool) {
	return ctx.bound.id, ctx.hasBound
}

// Invalidate forgets the bound target, so the next bind always reaches the device.
// Call it after binding framebuffers directly on the device.
func (ctx *Context) Invalidate() {
	ctx.hasBound = false
	ctx.bound = boundTarget{}
}

// bind is keyed on size as well as id because the screen keeps id 0 across resizes
// but still needs its viewport updated.
func (ctx *Context) bind(id, width, height uint32) {

	b := boundTarget{id: id, width: width, height: height}
	if ctx.hasBound && ctx.bound == b {
		return
	}

	ctx.Dev.BindFramebuffer(id)
	ctx.Dev.Viewport(width, height)

	ctx.bound = b
	ctx.hasBound = true
}

// forget is called before a framebuffer is deleted, as the GPU may hand out the same id again
func (ctx *Context) forget(id uint32) {
	if ctx.hasBound && ctx.bound.id == id {
		ctx.Invalidate()
	}
}
