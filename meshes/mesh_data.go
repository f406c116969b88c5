package meshes

import (
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/assert"
	"github.com/bloeys/nscene/buffers"
)

// MeshData is cpu side mesh data that can be turned into a Mesh with NewMeshFromData
type MeshData struct {
	Layout    []buffers.Element
	Vertices  []float32
	Indices   []uint32
	Primitive Primitive
}

// VertexCount is the number of vertices as described by the layout
func (md *MeshData) VertexCount() int {

	floatsPerVertex := 0
	for i := 0; i < len(md.Layout); i++ {
		floatsPerVertex += int(md.Layout[i].CompCount())
	}

	if floatsPerVertex == 0 {
		return 0
	}

	return len(md.Vertices) / floatsPerVertex
}

func NewMeshFromData(name string, md *MeshData) Mesh {

	assert.T(len(md.Indices) > 0, "Mesh data of mesh '%s' has no indices", name)

	layout := make([]buffers.Element, len(md.Layout))
	copy(layout, md.Layout)

	return Mesh{
		Name: name,
		Vao:  uploadVertexArray(layout, md.Vertices, md.Indices),
		SubMeshes: []SubMesh{
			{BaseVertex: 0, BaseIndex: 0, IndexCount: int32(len(md.Indices))},
		},
		Primitive: md.Primitive,
	}
}

// litLayout matches the layout of meshes loaded by NewMesh without vertex colors
func litLayout() []buffers.Element {
	return []buffers.Element{
		{ElementType: buffers.DataTypeVec3}, // Position
		{ElementType: buffers.DataTypeVec3}, // Normals
		{ElementType: buffers.DataTypeVec3}, // Tangents
		{ElementType: buffers.DataTypeVec2}, // UV0
	}
}

const (
	sphereRings    = 10
	sphereSegments = 10
)

// NewSphereData creates a unit sphere centered at the origin, used to mark light positions.
//
// Vertices are generated on an 11x11 grid of rings and segments where the first and last segment overlap.
// The normal of each vertex is its position.
func NewSphereData() MeshData {

	const rowLen = sphereSegments + 1

	vertices := make([]float32, 0, (sphereRings+1)*rowLen*11)
	for ring := 0; ring <= sphereRings; ring++ {

		v := float32(ring) / sphereRings
		phi := float64(v) * math.Pi

		for seg := 0; seg <= sphereSegments; seg++ {

			u := float32(seg) / sphereSegments
			theta := float64(u) * math.Pi * 2

			x := float32(math.Cos(theta) * math.Sin(phi))
			y := float32(math.Cos(phi))
			z := float32(math.Sin(theta) * math.Sin(phi))

			// Tangent points along increasing theta
			tx := float32(-math.Sin(theta))
			tz := float32(math.Cos(theta))

			vertices = append(vertices,
				x, y, z,
				x, y, z,
				tx, 0, tz,
				u, v,
			)
		}
	}

	const quadCount = sphereRings * rowLen
	indices := make([]uint32, 0, quadCount*6)
	for i := uint32(0); i < quadCount; i++ {
		indices = append(indices,
			i, i+rowLen, i+rowLen-1,
			i+rowLen, i, i+1,
		)
	}

	return MeshData{
		Layout:    litLayout(),
		Vertices:  vertices,
		Indices:   indices,
		Primitive: PrimitiveTriangles,
	}
}

// NewArrowData creates a line arrow starting at the origin and pointing along dir with the given length.
// The two tip lines are in the plane made by dir and the world up axis.
func NewArrowData(dir *gglm.Vec3, length float32) MeshData {

	d := dir.Clone().Normalize()

	end := d.Clone().Scale(length)
	tipOffset := d.Clone().Scale(-0.5)

	up := gglm.NewVec3(0, 0.5, 0)
	side := gglm.Cross(d, &up)

	tipLeft := end.Clone().Add(tipOffset)
	tipLeft.Add(side.Clone().Scale(-1))

	tipRight := end.Clone().Add(tipOffset)
	tipRight.Add(&side)

	start := gglm.NewVec3(0, 0, 0)
	points := [...]*gglm.Vec3{&start, end, tipLeft, tipRight}

	vertices := make([]float32, 0, len(points)*11)
	for _, p := range points {
		vertices = append(vertices,
			p.X(), p.Y(), p.Z(),
			0, 0, 0,
			0, 0, 0,
			0, 0,
		)
	}

	return MeshData{
		Layout:    litLayout(),
		Vertices:  vertices,
		Indices:   []uint32{0, 1, 2, 3, 1, 0},
		Primitive: PrimitiveLineStrip,
	}
}

// NewSkyboxCubeData creates a cube of size 2 centered at the origin, with positions only
func NewSkyboxCubeData() MeshData {

	vertices := []float32{
		-1, -1, -1,
		1, -1, -1,
		1, 1, -1,
		-1, 1, -1,
		-1, -1, 1,
		1, -1, 1,
		1, 1, 1,
		-1, 1, 1,
	}

	indices := []uint32{
		// -z
		0, 2, 1, 0, 3, 2,
		// +z
		4, 5, 6, 4, 6, 7,
		// -x
		0, 4, 7, 0, 7, 3,
		// +x
		1, 2, 6, 1, 6, 5,
		// -y
		0, 1, 5, 0, 5, 4,
		// +y
		3, 7, 6, 3, 6, 2,
	}

	return MeshData{
		Layout:    []buffers.Element{{ElementType: buffers.DataTypeVec3}},
		Vertices:  vertices,
		Indices:   indices,
		Primitive: PrimitiveTriangles,
	}
}
