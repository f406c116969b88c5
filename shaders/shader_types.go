package shaders

import (
	"github.com/bloeys/nscene/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
)

func (s ShaderType) ToGl() uint32 {

	switch s {
	case ShaderType_Vertex:
		return gl.VERTEX_SHADER
	case ShaderType_Fragment:
		return gl.FRAGMENT_SHADER
	case ShaderType_Geometry:
		return gl.GEOMETRY_SHADER

	default:
		logging.ErrLog.Fatalf("Unknown shader type '%d'\n", s)
		return 0
	}
}

// String is also the name used after '//shader:' in combined shader files
func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	case ShaderType_Geometry:
		return "geometry"
	default:
		return "unknown"
	}
}
