package buffers

import (
	"github.com/bloeys/nscene/assert"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// InstanceAttribLoc is where the per-instance model matrix starts in instanced shaders.
// A mat4 takes 4 locations, so 5 through 8 are used.
const InstanceAttribLoc = 5

// InstanceBuffer holds one model matrix per instance of a mesh.
//
// It owns a separate VAO that re-binds the vertex and index buffers of the mesh, so the mesh
// can still be drawn normally and several instance buffers can share it.
type InstanceBuffer struct {
	Vao VertexArray
	Vbo VertexBuffer

	InstanceCount int32
}

// SetInstanceData uploads instanceCount matrices of 16 floats each
func (ib *InstanceBuffer) SetInstanceData(data []float32, instanceCount int32) {

	assert.T(len(data) == int(instanceCount)*16, "Instance data has %d floats but %d instances need %d", len(data), instanceCount, instanceCount*16)

	ib.Vbo.SetData(data, BufUsage_Dynamic_Draw)
	ib.InstanceCount = instanceCount
}

func (ib *InstanceBuffer) Delete() {
	gl.DeleteBuffers(1, &ib.Vbo.Id)
	gl.DeleteVertexArrays(1, &ib.Vao.Id)
	ib.InstanceCount = 0
}

func NewInstanceBuffer(meshVao *VertexArray) InstanceBuffer {

	ib := InstanceBuffer{
		Vao: NewVertexArray(),
		Vbo: NewVertexBuffer(Element{ElementType: DataTypeMat4}),
	}

	for i := 0; i < len(meshVao.Vbos); i++ {
		ib.Vao.AddVertexBuffer(meshVao.Vbos[i])
	}

	assert.T(ib.Vao.NextAttribLoc <= InstanceAttribLoc, "Mesh vertex attributes use locations up to %d which overlaps the instance matrix at %d", ib.Vao.NextAttribLoc, InstanceAttribLoc)

	ib.Vao.AddInstancedVertexBuffer(ib.Vbo, InstanceAttribLoc)
	ib.Vao.SetIndexBuffer(meshVao.IndexBuffer)

	// So later buffer setup doesn't get recorded into this vao
	ib.Vao.UnBind()

	return ib
}
