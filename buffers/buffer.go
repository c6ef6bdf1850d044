package buffers

import (
	"fmt"
	"unsafe"

	"github.com/bloeys/ndefer/assert"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type BufUsage int

// Full docs for buffer usage can be found here: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
const (
	BufUsage_Unknown BufUsage = iota

	//Buffer is set only once and used many times
	BufUsage_Static_Draw
	//Buffer is changed a lot and used many times
	BufUsage_Dynamic_Draw
)

func (b BufUsage) ToGL() uint32 {

	switch b {
	case BufUsage_Static_Draw:
		return gl.STATIC_DRAW
	case BufUsage_Dynamic_Draw:
		return gl.DYNAMIC_DRAW
	}

	assert.T(false, "Unexpected BufUsage value '%v'", b)
	return 0
}

// glBuffer is a GL buffer object bound to a single target (e.g. ARRAY_BUFFER)
type glBuffer struct {
	Id     uint32
	target uint32
}

func (b *glBuffer) Bind() {
	gl.BindBuffer(b.target, b.Id)
}

func (b *glBuffer) UnBind() {
	gl.BindBuffer(b.target, 0)
}

// upload replaces the buffer contents. An empty upload frees the GPU storage but keeps the buffer.
func (b *glBuffer) upload(sizeInBytes int, data unsafe.Pointer, usage BufUsage) {

	b.Bind()
	if sizeInBytes == 0 {
		data = nil
	}

	gl.BufferData(b.target, sizeInBytes, data, usage.ToGL())
}

func (b *glBuffer) Delete() {

	if b.Id == 0 {
		return
	}

	gl.DeleteBuffers(1, &b.Id)
	b.Id = 0
}

func newGLBuffer(target uint32, kind string) (glBuffer, error) {

	b := glBuffer{target: target}
	gl.GenBuffers(1, &b.Id)
	if b.Id == 0 {
		return glBuffer{}, fmt.Errorf("failed to create OpenGL %s buffer. GlError=%d", kind, gl.GetError())
	}

	return b, nil
}
