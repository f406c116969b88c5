package buffers

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementTypeSizes(t *testing.T) {

	tests := []struct {
		dt            ElementType
		compCount     int32
		size          int32
		attribSlots   uint32
		slotCompCount int32
		glType        uint32
	}{
		{DataTypeUint32, 1, 4, 1, 1, gl.UNSIGNED_INT},
		{DataTypeInt32, 1, 4, 1, 1, gl.INT},
		{DataTypeFloat32, 1, 4, 1, 1, gl.FLOAT},
		{DataTypeVec2, 2, 8, 1, 2, gl.FLOAT},
		{DataTypeVec3, 3, 12, 1, 3, gl.FLOAT},
		{DataTypeVec4, 4, 16, 1, 4, gl.FLOAT},
		{DataTypeMat2, 4, 16, 2, 2, gl.FLOAT},
		{DataTypeMat3, 9, 36, 3, 3, gl.FLOAT},
		{DataTypeMat4, 16, 64, 4, 4, gl.FLOAT},
	}

	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			assert.Equal(t, tt.compCount, tt.dt.CompCount())
			assert.Equal(t, tt.size, tt.dt.Size())
			assert.Equal(t, int32(4), tt.dt.CompSize())
			assert.Equal(t, tt.attribSlots, tt.dt.AttribSlots())
			assert.Equal(t, tt.slotCompCount, tt.dt.SlotCompCount())
			assert.Equal(t, tt.glType, tt.dt.GLType())
		})
	}

	assert.Equal(t, "Unknown", DataTypeUnknown.String())
	assert.Equal(t, "Unknown", ElementType(200).String())
}

func TestCalcLayout(t *testing.T) {

	// Same layout meshes use: pos, normal, tangent, uv0, color
	layout := []Element{
		{ElementType: DataTypeVec3},
		{ElementType: DataTypeVec3},
		{ElementType: DataTypeVec3},
		{ElementType: DataTypeVec2},
		{ElementType: DataTypeVec4},
	}

	stride := CalcLayout(layout)
	require.Equal(t, int32(12+12+12+8+16), stride)

	offsets := []int{}
	for _, l := range layout {
		offsets = append(offsets, l.Offset)
	}
	assert.Equal(t, []int{0, 12, 24, 36, 44}, offsets)

	instLayout := []Element{{ElementType: DataTypeMat4}}
	assert.Equal(t, int32(64), CalcLayout(instLayout))
}

func TestBufUsageToGL(t *testing.T) {
	assert.Equal(t, uint32(gl.STATIC_DRAW), BufUsage_Static_Draw.ToGL())
	assert.Equal(t, uint32(gl.DYNAMIC_DRAW), BufUsage_Dynamic_Draw.ToGL())
	assert.Equal(t, uint32(gl.STREAM_COPY), BufUsage_Stream_Copy.ToGL())
}
