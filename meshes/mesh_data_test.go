package meshes

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereData(t *testing.T) {

	md := NewSphereData()

	require.Equal(t, 121, md.VertexCount())
	require.Len(t, md.Indices, 660)
	assert.Equal(t, PrimitiveTriangles, md.Primitive)

	for _, idx := range md.Indices {
		require.Less(t, idx, uint32(121))
	}

	// Every position is on the unit sphere and its normal equals it
	for i := 0; i < md.VertexCount(); i++ {

		v := md.Vertices[i*11 : i*11+11]
		assert.InDelta(t, 1, v[0]*v[0]+v[1]*v[1]+v[2]*v[2], 0.0001)
		assert.Equal(t, v[0:3], v[3:6])
	}

	// First ring is the top pole
	assert.InDelta(t, 1, md.Vertices[1], 0.0001)
}

func TestArrowData(t *testing.T) {

	dir := gglm.NewVec3(0, 0, -2)
	md := NewArrowData(&dir, 3)

	require.Equal(t, 4, md.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 3, 1, 0}, md.Indices)
	assert.Equal(t, PrimitiveLineStrip, md.Primitive)

	start := md.Vertices[0:3]
	end := md.Vertices[11:14]
	assert.Equal(t, []float32{0, 0, 0}, start)
	assert.InDelta(t, 0, end[0], 0.0001)
	assert.InDelta(t, 0, end[1], 0.0001)
	assert.InDelta(t, -3, end[2], 0.0001)

	// Tips are behind the end and on opposite sides of it
	tipLeft := md.Vertices[22:25]
	tipRight := md.Vertices[33:36]
	assert.InDelta(t, -2.5, tipLeft[2], 0.0001)
	assert.InDelta(t, -2.5, tipRight[2], 0.0001)
	assert.InDelta(t, 0, tipLeft[0]+tipRight[0], 0.0001)
	assert.NotEqual(t, tipLeft[0], tipRight[0])
}

func TestSkyboxCubeData(t *testing.T) {

	md := NewSkyboxCubeData()

	require.Equal(t, 8, md.VertexCount())
	require.Len(t, md.Indices, 36)

	for _, idx := range md.Indices {
		require.Less(t, idx, uint32(8))
	}
}

func TestInterleave(t *testing.T) {

	out := interleave(
		arrToInterleave{V3s: []gglm.Vec3{gglm.NewVec3(1, 2, 3), gglm.NewVec3(4, 5, 6)}},
		arrToInterleave{V2s: []gglm.Vec2{{Data: [2]float32{7, 8}}, {Data: [2]float32{9, 10}}}},
	)

	assert.Equal(t, []float32{1, 2, 3, 7, 8, 4, 5, 6, 9, 10}, out)
}

func TestAppendGltfVertices(t *testing.T) {

	positions := [][3]float32{{1, 2, 3}, {4, 5, 6}}
	normals := [][3]float32{{0, 1, 0}}
	uvs := [][2]float32{{0.5, 0.25}, {1, 1}}

	out := appendGltfVertices(nil, positions, normals, uvs)

	require.Len(t, out, 22)
	assert.Equal(t, []float32{1, 2, 3, 0, 1, 0, 0, 0, 0, 0.5, 0.25}, out[:11])

	// Missing normal is zero
	assert.Equal(t, []float32{4, 5, 6, 0, 0, 0, 0, 0, 0, 1, 1}, out[11:])
}
