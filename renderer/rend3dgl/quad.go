package rend3dgl

import (
	"github.com/bloeys/ndefer/buffers"
	"github.com/bloeys/ndefer/renderer"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ renderer.FullScreenQuad = &FullScreenQuad{}

// FullScreenQuad is two triangles covering clip space with uvs going from 0 to 1.
// Vertex layout is Loc0: Pos (vec3), Loc1: UV0 (vec2).
type FullScreenQuad struct {
	rend *Rend3DGL
	Vao  buffers.VertexArray
}

func (q *FullScreenQuad) Render(p renderer.Program) {

	p.Use()
	q.Vao.Bind()
	gl.DrawElements(gl.TRIANGLES, q.Vao.IndexBuffer.IndexBufCount, gl.UNSIGNED_INT, nil)

	// Keep the mesh vao cache in sync with what is bound
	q.rend.BoundMeshVaoId = q.Vao.Id
}

func (q *FullScreenQuad) Delete() {
	q.Vao.Delete()
}

func newFullScreenQuad(rend *Rend3DGL) (*FullScreenQuad, error) {

	vao, err := buffers.NewVertexArray()
	if err != nil {
		return nil, err
	}

	vbo, err := buffers.NewVertexBuffer(
		buffers.Element{ElementType: buffers.DataTypeVec3},
		buffers.Element{ElementType: buffers.DataTypeVec2},
	)
	if err != nil {
		vao.Delete()
		return nil, err
	}

	ibo, err := buffers.NewIndexBuffer()
	if err != nil {
		vbo.Delete()
		vao.Delete()
		return nil, err
	}

	vbo.SetData([]float32{
		-1, -1, 0, 0, 0,
		1, -1, 0, 1, 0,
		1, 1, 0, 1, 1,
		-1, 1, 0, 0, 1,
	}, buffers.BufUsage_Static_Draw)
	ibo.SetData([]uint32{0, 1, 2, 2, 3, 0})

	vao.AddVertexBuffer(vbo)
	vao.SetIndexBuffer(ibo)
	vao.UnBind()

	return &FullScreenQuad{rend: rend, Vao: vao}, nil
}
