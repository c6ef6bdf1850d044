package buffers

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// IndexBuffer holds uint32 triangle indices
type IndexBuffer struct {
	glBuffer
	// IndexBufCount is the number of elements in the index buffer. Updated in IndexBuffer.SetData
	IndexBufCount int32
}

func (ib *IndexBuffer) SetData(values []uint32) {

	ib.IndexBufCount = int32(len(values))
	if len(values) == 0 {
		ib.upload(0, nil, BufUsage_Static_Draw)
		return
	}

	ib.upload(len(values)*4, gl.Ptr(&values[0]), BufUsage_Static_Draw)
}

func NewIndexBuffer() (IndexBuffer, error) {

	b, err := newGLBuffer(gl.ELEMENT_ARRAY_BUFFER, "index")
	if err != nil {
		return IndexBuffer{}, err
	}

	return IndexBuffer{glBuffer: b}, nil
}
