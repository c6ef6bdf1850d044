package meshes

import (
	"errors"
	"fmt"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/assert"
	"github.com/bloeys/ndefer/buffers"
)

type SubMesh struct {
	BaseVertex int32
	BaseIndex  uint32
	IndexCount int32
}

type Mesh struct {
	Name string
	/*
		Vao has the following shader attribute layout:
			- Loc0: Pos
			- Loc1: Normal
			- Loc2: UV0
	*/
	Vao       buffers.VertexArray
	SubMeshes []SubMesh
}

func (m *Mesh) Delete() {
	m.Vao.Delete()
	m.SubMeshes = nil
}

var (
	// DefaultMeshLoadFlags are the flags always applied when loading a new mesh regardless
	// of what post process flags are used when loading a mesh.
	DefaultMeshLoadFlags asig.PostProcess = asig.PostProcessTriangulate

	vertexLayout = []buffers.Element{
		{ElementType: buffers.DataTypeVec3}, // Position
		{ElementType: buffers.DataTypeVec3}, // Normal
		{ElementType: buffers.DataTypeVec2}, // UV0
	}

	ErrNoMeshes = errors.New("no meshes found in model file")
)

// MeshData is interleaved vertex data in the mesh vertex layout plus triangle indices
type MeshData struct {
	Vertices  []float32
	Indices   []uint32
	SubMeshes []SubMesh
}

func NewMesh(name, modelPath string, postProcessFlags asig.PostProcess) (*Mesh, error) {

	scene, release, err := asig.ImportFile(modelPath, DefaultMeshLoadFlags|postProcessFlags)
	if err != nil {
		return nil, fmt.Errorf("failed to load model '%s': %w", modelPath, err)
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMeshes, modelPath)
	}

	data := MeshData{
		SubMeshes: make([]SubMesh, 0, len(scene.Meshes)),
	}

	stride := buffers.Stride(vertexLayout)
	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]

		// We always want normals and UV0
		if len(sceneMesh.Normals) == 0 {
			sceneMesh.Normals = make([]gglm.Vec3, len(sceneMesh.Vertices))
		}

		if len(sceneMesh.TexCoords[0]) == 0 {
			sceneMesh.TexCoords[0] = make([]gglm.Vec3, len(sceneMesh.Vertices))
		}

		indices := flattenFaces(sceneMesh.Faces)
		data.SubMeshes = append(data.SubMeshes, SubMesh{

			// Index of the vertex to start from (e.g. if index buffer says use vertex 5, and BaseVertex=3, the vertex used will be vertex 8)
			BaseVertex: int32(len(data.Vertices)*4) / stride,
			// Which index (in the index buffer) to start from
			BaseIndex: uint32(len(data.Indices)),
			// How many indices in this submesh
			IndexCount: int32(len(indices)),
		})

		data.Vertices = append(data.Vertices, interleave(
			arrToInterleave{V3s: sceneMesh.Vertices},
			arrToInterleave{V3s: sceneMesh.Normals},
			arrToInterleave{V2s: v3sToV2s(sceneMesh.TexCoords[0])},
		)...)
		data.Indices = append(data.Indices, indices...)
	}

	return NewMeshFromData(name, &data)
}

// NewMeshFromData uploads data to a new vertex array
func NewMeshFromData(name string, data *MeshData) (*Mesh, error) {

	vao, err := buffers.NewVertexArray()
	if err != nil {
		return nil, err
	}

	vbo, err := buffers.NewVertexBuffer(vertexLayout...)
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

	vbo.SetData(data.Vertices, buffers.BufUsage_Static_Draw)
	ibo.SetData(data.Indices)

	vao.AddVertexBuffer(vbo)
	vao.SetIndexBuffer(ibo)

	// This is needed so that if you load meshes one after the other the
	// following mesh doesn't attach its vbo/ibo to this vao
	vao.UnBind()

	subMeshes := data.SubMeshes
	if len(subMeshes) == 0 {
		subMeshes = []SubMesh{{IndexCount: int32(len(data.Indices))}}
	}

	return &Mesh{
		Name:      name,
		Vao:       vao,
		SubMeshes: subMeshes,
	}, nil
}

func v3sToV2s(v3s []gglm.Vec3) []gglm.Vec2 {

	v2s := make([]gglm.Vec2, len(v3s))
	for i := 0; i < len(v3s); i++ {
		v2s[i] = gglm.Vec2{
			Data: [2]float32{v3s[i].X(), v3s[i].Y()},
		}
	}

	return v2s
}

type arrToInterleave struct {
	V2s []gglm.Vec2
	V3s []gglm.Vec3
}

func (a *arrToInterleave) len() int {

	if len(a.V2s) > 0 {
		return len(a.V2s)
	}

	return len(a.V3s)
}

func (a *arrToInterleave) get(i int) []float32 {

	assert.T(len(a.V2s) == 0 || len(a.V3s) == 0, "One array should be set in arrToInterleave, but multiple arrays are set")

	if len(a.V2s) > 0 {
		return a.V2s[i].Data[:]
	}

	return a.V3s[i].Data[:]
}

func interleave(arrs ...arrToInterleave) []float32 {

	assert.T(len(arrs) > 0, "No input sent to interleave")

	elementCount := arrs[0].len()
	totalSize := 0
	for i := 0; i < len(arrs); i++ {

		assert.T(arrs[i].len() == elementCount, "Mesh vertex data given to interleave is not the same length")

		if len(arrs[i].V2s) > 0 {
			totalSize += elementCount * 2
		} else {
			totalSize += elementCount * 3
		}
	}

	out := make([]float32, 0, totalSize)
	for i := 0; i < elementCount; i++ {
		for arrToUse := 0; arrToUse < len(arrs); arrToUse++ {
			out = append(out, arrs[arrToUse].get(i)...)
		}
	}

	return out
}

func flattenFaces(faces []asig.Face) []uint32 {

	uints := make([]uint32, len(faces)*3)
	for i := 0; i < len(faces); i++ {

		assert.T(len(faces[i].Indices) == 3, "Face doesn't have 3 indices. Index count: %v\n", len(faces[i].Indices))

		uints[i*3+0] = uint32(faces[i].Indices[0])
		uints[i*3+1] = uint32(faces[i].Indices[1])
		uints[i*3+2] = uint32(faces[i].Indices[2])
	}

	return uints
}
