package buffers

import (
	"github.com/bloeys/nscene/assert"
	"github.com/bloeys/nscene/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type VertexArray struct {
	Id          uint32
	Vbos        []VertexBuffer
	IndexBuffer IndexBuffer

	// NextAttribLoc is the first attribute location not used by an added buffer
	NextAttribLoc uint32
}

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.Id)
}

func (va *VertexArray) UnBind() {
	gl.BindVertexArray(0)
}

// AddVertexBuffer binds the per-vertex attributes of vbo starting at NextAttribLoc
func (va *VertexArray) AddVertexBuffer(vbo VertexBuffer) {
	va.addVertexBuffer(vbo, va.NextAttribLoc, 0)
}

// AddInstancedVertexBuffer binds the attributes of vbo starting at firstLoc so they advance once per instance instead of once per vertex
func (va *VertexArray) AddInstancedVertexBuffer(vbo VertexBuffer, firstLoc uint32) {
	assert.T(firstLoc >= va.NextAttribLoc, "Instanced attributes at location %d overlap existing attributes that end at %d", firstLoc, va.NextAttribLoc)
	va.addVertexBuffer(vbo, firstLoc, 1)
}

func (va *VertexArray) addVertexBuffer(vbo VertexBuffer, firstLoc, divisor uint32) {

	// NOTE: VBOs are only bound at 'VertexAttribPointer' (and related) calls

	va.Bind()
	vbo.Bind()

	loc := firstLoc
	for i := 0; i < len(vbo.layout); i++ {

		l := &vbo.layout[i]

		// Matrices are passed as one vector per column in consecutive locations
		slotCompCount := l.SlotCompCount()
		slotSize := int(slotCompCount * l.CompSize())
		for slot := 0; slot < int(l.AttribSlots()); slot++ {

			gl.EnableVertexAttribArray(loc)
			gl.VertexAttribPointerWithOffset(loc, slotCompCount, l.GLType(), false, vbo.Stride, uintptr(l.Offset+slot*slotSize))
			if divisor != 0 {
				gl.VertexAttribDivisor(loc, divisor)
			}

			loc++
		}
	}

	va.Vbos = append(va.Vbos, vbo)
	va.NextAttribLoc = loc
}

func (va *VertexArray) SetIndexBuffer(ib IndexBuffer) {
	va.Bind()
	ib.Bind()
	va.IndexBuffer = ib
}

func NewVertexArray() VertexArray {

	vao := VertexArray{}

	gl.GenVertexArrays(1, &vao.Id)
	if vao.Id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL vertex array object")
	}

	return vao
}
