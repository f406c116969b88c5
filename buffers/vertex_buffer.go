package buffers

import (
	"github.com/bloeys/nscene/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type VertexBuffer struct {
	Id     uint32
	Stride int32
	layout []Element

	// Size of the current GPU allocation in bytes. Used to update in place instead of reallocating
	sizeBytes int
}

func (vb *VertexBuffer) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.Id)
}

func (vb *VertexBuffer) UnBind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// SetData uploads values, reusing the existing GPU storage when the size didn't change
func (vb *VertexBuffer) SetData(values []float32, usage BufUsage) {

	vb.Bind()

	sizeInBytes := len(values) * 4
	if sizeInBytes == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, gl.Ptr(nil), usage.ToGL())
	} else if sizeInBytes == vb.sizeBytes {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, sizeInBytes, gl.Ptr(&values[0]))
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, sizeInBytes, gl.Ptr(&values[0]), usage.ToGL())
	}

	vb.sizeBytes = sizeInBytes
}

func (vb *VertexBuffer) GetLayout() []Element {
	e := make([]Element, len(vb.layout))
	copy(e, vb.layout)
	return e
}

// SetLayout sets the interleaved layout and calculates offsets and the stride
func (vb *VertexBuffer) SetLayout(layout ...Element) {
	vb.layout = layout
	vb.Stride = CalcLayout(vb.layout)
}

// CalcLayout fills the offsets of a tightly packed layout and returns its stride in bytes
func CalcLayout(layout []Element) (stride int32) {

	for i := 0; i < len(layout); i++ {
		layout[i].Offset = int(stride)
		stride += layout[i].Size()
	}

	return stride
}

func NewVertexBuffer(layout ...Element) VertexBuffer {

	vb := VertexBuffer{}

	gl.GenBuffers(1, &vb.Id)
	if vb.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL buffer")
	}

	vb.SetLayout(layout...)
	return vb
}
