package meshes

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/buffers"
)

func TestInterleave(t *testing.T) {

	out := interleave(
		arrToInterleave{V3s: []gglm.Vec3{gglm.NewVec3(1, 2, 3), gglm.NewVec3(4, 5, 6)}},
		arrToInterleave{V2s: []gglm.Vec2{{Data: [2]float32{7, 8}}, {Data: [2]float32{9, 10}}}},
	)

	want := []float32{1, 2, 3, 7, 8, 4, 5, 6, 9, 10}
	if len(out) != len(want) {
		t.Fatalf("expected %d floats, got %d", len(want), len(out))
	}

	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("element %d is %f, expected %f", i, out[i], want[i])
		}
	}
}

func TestCubeData(t *testing.T) {

	data := CubeData()

	floatsPerVertex := int(buffers.Stride(vertexLayout) / 4)
	if floatsPerVertex != 8 {
		t.Fatalf("unexpected vertex size %d", floatsPerVertex)
	}

	if len(data.Vertices) != 24*floatsPerVertex || len(data.Indices) != 36 {
		t.Fatalf("expected 24 vertices and 36 indices, got %d and %d", len(data.Vertices)/floatsPerVertex, len(data.Indices))
	}

	for i := 0; i < len(data.Indices); i += 3 {

		vert := func(index uint32) gglm.Vec3 {
			o := int(index) * floatsPerVertex
			return gglm.NewVec3(data.Vertices[o], data.Vertices[o+1], data.Vertices[o+2])
		}

		a, b, c := vert(data.Indices[i]), vert(data.Indices[i+1]), vert(data.Indices[i+2])
		o := int(data.Indices[i]) * floatsPerVertex
		n := gglm.NewVec3(data.Vertices[o+3], data.Vertices[o+4], data.Vertices[o+5])

		// Counter clockwise winding means the geometric normal agrees with the vertex normal
		ab := [3]float32{b.X() - a.X(), b.Y() - a.Y(), b.Z() - a.Z()}
		ac := [3]float32{c.X() - a.X(), c.Y() - a.Y(), c.Z() - a.Z()}
		cross := [3]float32{
			ab[1]*ac[2] - ab[2]*ac[1],
			ab[2]*ac[0] - ab[0]*ac[2],
			ab[0]*ac[1] - ab[1]*ac[0],
		}
		if cross[0]*n.X()+cross[1]*n.Y()+cross[2]*n.Z() <= 0 {
			t.Fatalf("triangle %d is wound clockwise", i/3)
		}

		for _, v := range []gglm.Vec3{a, b, c} {
			for _, comp := range v.Data {
				if comp != 0.5 && comp != -0.5 {
					t.Fatalf("vertex %v is not a corner of the unit cube", v.Data)
				}
			}
		}
	}
}
