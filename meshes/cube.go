package meshes

// cubeFaces is the outward normal of each face followed by the two axes spanning it,
// chosen so that u x v = normal and triangles wind counter clockwise from outside
var cubeFaces = [6][3][3]float32{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// CubeData returns a unit cube centered on the origin with per face normals
func CubeData() MeshData {

	data := MeshData{
		Vertices: make([]float32, 0, 6*4*8),
		Indices:  make([]uint32, 0, 6*6),
	}

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for f := 0; f < len(cubeFaces); f++ {

		n, u, v := cubeFaces[f][0], cubeFaces[f][1], cubeFaces[f][2]
		base := uint32(f * 4)

		for c := 0; c < len(corners); c++ {

			cu, cv := corners[c][0], corners[c][1]
			data.Vertices = append(data.Vertices,
				0.5*(n[0]+cu*u[0]+cv*v[0]),
				0.5*(n[1]+cu*u[1]+cv*v[1]),
				0.5*(n[2]+cu*u[2]+cv*v[2]),
				n[0], n[1], n[2],
				(cu+1)/2, (cv+1)/2,
			)
		}

		data.Indices = append(data.Indices, base, base+1, base+2, base+2, base+3, base)
	}

	return data
}

func NewCube(name string) (*Mesh, error) {
	data := CubeData()
	return NewMeshFromData(name, &data)
}
