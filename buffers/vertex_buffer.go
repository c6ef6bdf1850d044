package buffers

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexBuffer holds interleaved float32 vertices described by its layout
type VertexBuffer struct {
	glBuffer
	Stride int32
	layout []Element
}

func (vb *VertexBuffer) SetData(values []float32, usage BufUsage) {

	if len(values) == 0 {
		vb.upload(0, nil, usage)
		return
	}

	vb.upload(len(values)*4, gl.Ptr(&values[0]), usage)
}

func NewVertexBuffer(layout ...Element) (VertexBuffer, error) {

	b, err := newGLBuffer(gl.ARRAY_BUFFER, "vertex")
	if err != nil {
		return VertexBuffer{}, err
	}

	vb := VertexBuffer{glBuffer: b, layout: layout}
	vb.Stride = Stride(vb.layout)
	return vb, nil
}
