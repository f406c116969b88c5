package buffers

import (
	"github.com/bloeys/nscene/assert"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Element is one attribute of an interleaved vertex (e.g. a Vec3 normal at an offset of 12 bytes)
type Element struct {
	Offset int
	ElementType
}

// ElementType is the data type of an Element (e.g. Vec3)
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota

	DataTypeUint32
	DataTypeInt32
	DataTypeFloat32

	DataTypeVec2
	DataTypeVec3
	DataTypeVec4

	DataTypeMat2
	DataTypeMat3
	DataTypeMat4

	dataTypeCount
)

type elementTypeInfo struct {
	name   string
	glType uint32
	// Number of scalar components in the whole type
	compCount int32
	// Number of consecutive attribute locations the type occupies. Matrices take one per column
	attribSlots uint32
}

var elementTypeInfos = [dataTypeCount]elementTypeInfo{
	DataTypeUnknown: {name: "Unknown"},

	DataTypeUint32:  {name: "uint32", glType: gl.UNSIGNED_INT, compCount: 1, attribSlots: 1},
	DataTypeInt32:   {name: "int32", glType: gl.INT, compCount: 1, attribSlots: 1},
	DataTypeFloat32: {name: "float32", glType: gl.FLOAT, compCount: 1, attribSlots: 1},

	DataTypeVec2: {name: "Vec2", glType: gl.FLOAT, compCount: 2, attribSlots: 1},
	DataTypeVec3: {name: "Vec3", glType: gl.FLOAT, compCount: 3, attribSlots: 1},
	DataTypeVec4: {name: "Vec4", glType: gl.FLOAT, compCount: 4, attribSlots: 1},

	DataTypeMat2: {name: "Mat2", glType: gl.FLOAT, compCount: 2 * 2, attribSlots: 2},
	DataTypeMat3: {name: "Mat3", glType: gl.FLOAT, compCount: 3 * 3, attribSlots: 3},
	DataTypeMat4: {name: "Mat4", glType: gl.FLOAT, compCount: 4 * 4, attribSlots: 4},
}

func (dt ElementType) info() *elementTypeInfo {
	assert.T(dt > DataTypeUnknown && dt < dataTypeCount, "Unknown data type passed. DataType '%d'", dt)
	return &elementTypeInfos[dt]
}

func (dt ElementType) GLType() uint32 {
	return dt.info().glType
}

// CompSize returns the size in bytes of one component of the type (e.g. for Vec2 its 4)
func (dt ElementType) CompSize() int32 {
	assert.T(dt > DataTypeUnknown && dt < dataTypeCount, "Unknown data type passed. DataType '%d'", dt)
	// Every supported type is made of 32-bit components
	return 4
}

// CompCount returns the number of components in the element (e.g. for Vec2 its 2)
func (dt ElementType) CompCount() int32 {
	return dt.info().compCount
}

// Size returns the total size in bytes (e.g. for vec3 its 3*4=12 bytes)
func (dt ElementType) Size() int32 {
	return dt.CompCount() * dt.CompSize()
}

// AttribSlots is how many vertex attribute locations the type needs. A mat4 attribute at location 5 uses 5,6,7,8
func (dt ElementType) AttribSlots() uint32 {
	return dt.info().attribSlots
}

// SlotCompCount is the number of components passed per attribute location
func (dt ElementType) SlotCompCount() int32 {
	info := dt.info()
	return info.compCount / int32(info.attribSlots)
}

func (dt ElementType) String() string {

	if dt >= dataTypeCount {
		return "Unknown"
	}

	return elementTypeInfos[dt].name
}
