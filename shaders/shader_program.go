package shaders

import (
	"strings"

	"github.com/bloeys/nscene/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

type ShaderProgram struct {
	Id           uint32
	VertShaderId uint32
	FragShaderId uint32
	GeomShaderId uint32
}

func (sp *ShaderProgram) AttachShader(shader Shader) {

	gl.AttachShader(sp.Id, shader.Id)
	switch shader.Type {
	case ShaderType_Vertex:
		sp.VertShaderId = shader.Id
	case ShaderType_Fragment:
		sp.FragShaderId = shader.Id
	case ShaderType_Geometry:
		sp.GeomShaderId = shader.Id
	default:
		logging.ErrLog.Fatalf("Unknown shader type '%d' for shader id '%d'\n", shader.Type, shader.Id)
	}
}

// Link links the attached shaders and deletes them, since the program keeps what it needs
func (sp *ShaderProgram) Link() error {

	gl.LinkProgram(sp.Id)

	for _, id := range [...]uint32{sp.VertShaderId, sp.FragShaderId, sp.GeomShaderId} {
		if id != 0 {
			gl.DeleteShader(id)
		}
	}

	var linked int32
	gl.GetProgramiv(sp.Id, gl.LINK_STATUS, &linked)
	if linked == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetProgramiv(sp.Id, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)+1))
	gl.GetProgramInfoLog(sp.Id, logLength, nil, log)

	return errors.Errorf("failed to link shader program with id %d. Err: %s", sp.Id, gl.GoStr(log))
}

func (s *ShaderProgram) Bind() {
	gl.UseProgram(s.Id)
}

func (s *ShaderProgram) UnBind() {
	gl.UseProgram(0)
}
