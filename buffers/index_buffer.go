package buffers

import (
	"github.com/bloeys/nscene/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type IndexBuffer struct {
	Id uint32
	// IndexBufCount is the number of elements in the index buffer. Updated in IndexBuffer.SetData
	IndexBufCount int32
}

func (ib *IndexBuffer) Bind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.Id)
}

func (ib *IndexBuffer) UnBind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

// SetData uploads indices. Note that the element array binding is VAO state, so the owning VAO should be bound first
func (ib *IndexBuffer) SetData(values []uint32) {

	ib.Bind()

	ib.IndexBufCount = int32(len(values))
	if len(values) == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, gl.Ptr(nil), BufUsage_Static_Draw.ToGL())
		return
	}

	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(values)*4, gl.Ptr(&values[0]), BufUsage_Static_Draw.ToGL())
}

func NewIndexBuffer() IndexBuffer {

	ib := IndexBuffer{}

	gl.GenBuffers(1, &ib.Id)
	if ib.Id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL index buffer")
	}

	return ib
}
