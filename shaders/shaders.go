package shaders

import (
	"bytes"
	"os"
	"strings"

	"github.com/bloeys/nscene/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

// Combined shader files hold all stages of a program, each stage starting with a marker line like '//shader:vertex'
const stageMarker = "//shader:"

type Shader struct {
	Id   uint32
	Type ShaderType
}

func (s *Shader) Delete() {
	gl.DeleteShader(s.Id)
	s.Id = 0
}

// ShaderSource is one stage cut out of a combined shader file
type ShaderSource struct {
	Type ShaderType
	Src  []byte
}

// SplitCombinedShader cuts a combined shader into its stages. A vertex and a fragment stage are required
func SplitCombinedShader(combinedSrc []byte) ([]ShaderSource, error) {

	parts := bytes.Split(combinedSrc, []byte(stageMarker))
	if len(parts) < 2 {
		return nil, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	sources := make([]ShaderSource, 0, len(parts)-1)
	hasVert, hasFrag := false, false
	for i := 0; i < len(parts); i++ {

		src := parts[i]

		// Text before the first marker
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		if i == 0 {
			return nil, errors.New("combined shader has code before the first '//shader:' marker")
		}

		shdrType, typeNameLen := shaderTypeFromMarker(src)
		if shdrType == ShaderType_Unknown {
			return nil, errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry'")
		}

		switch shdrType {
		case ShaderType_Vertex:
			hasVert = true
		case ShaderType_Fragment:
			hasFrag = true
		}

		sources = append(sources, ShaderSource{
			Type: shdrType,
			Src:  src[typeNameLen:],
		})
	}

	if !hasVert {
		return nil, errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	}

	if !hasFrag {
		return nil, errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	}

	return sources, nil
}

func shaderTypeFromMarker(src []byte) (ShaderType, int) {

	for _, st := range [...]ShaderType{ShaderType_Vertex, ShaderType_Fragment, ShaderType_Geometry} {

		name := st.String()
		if bytes.HasPrefix(src, []byte(name)) {
			return st, len(name)
		}
	}

	return ShaderType_Unknown, 0
}

func NewShaderProgram() (ShaderProgram, error) {

	id := gl.CreateProgram()
	if id == 0 {
		return ShaderProgram{}, errors.New("failed to create shader program")
	}

	return ShaderProgram{Id: id}, nil
}

func LoadAndCompileCombinedShader(shaderPath string) (ShaderProgram, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		return ShaderProgram{}, errors.Wrapf(err, "failed to read shader '%s'", shaderPath)
	}

	prog, err := LoadAndCompileCombinedShaderSrc(combinedSource)
	if err != nil {
		return ShaderProgram{}, errors.Wrapf(err, "failed to build shader '%s'", shaderPath)
	}

	return prog, nil
}

func LoadAndCompileCombinedShaderSrc(shaderSrc []byte) (ShaderProgram, error) {

	sources, err := SplitCombinedShader(shaderSrc)
	if err != nil {
		return ShaderProgram{}, err
	}

	shdrProg, err := NewShaderProgram()
	if err != nil {
		return ShaderProgram{}, err
	}

	for i := 0; i < len(sources); i++ {

		shdr, err := CompileShaderOfType(sources[i].Src, sources[i].Type)
		if err != nil {
			gl.DeleteProgram(shdrProg.Id)
			return ShaderProgram{}, errors.Wrapf(err, "failed to compile %s shader", sources[i].Type.String())
		}

		shdrProg.AttachShader(shdr)
	}

	if err := shdrProg.Link(); err != nil {
		gl.DeleteProgram(shdrProg.Id)
		return ShaderProgram{}, err
	}

	return shdrProg, nil
}

func CompileShaderOfType(shaderSource []byte, shaderType ShaderType) (Shader, error) {

	shaderId := gl.CreateShader(shaderType.ToGl())
	if shaderId == 0 {
		return Shader{}, errors.Errorf("failed to create OpenGl shader. OpenGl Error=%d", gl.GetError())
	}

	//Load shader source and compile
	shaderCStr, shaderFree := gl.Strs(string(shaderSource) + "\x00")
	defer shaderFree()
	gl.ShaderSource(shaderId, 1, shaderCStr, nil)

	gl.CompileShader(shaderId)
	if err := getShaderCompileErrors(shaderId); err != nil {
		gl.DeleteShader(shaderId)
		return Shader{}, err
	}

	return Shader{Id: shaderId, Type: shaderType}, nil
}

func getShaderCompileErrors(shaderId uint32) error {

	var compiledSuccessfully int32
	gl.GetShaderiv(shaderId, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetShaderiv(shaderId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetShaderInfoLog(shaderId, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Println("Compilation of shader with id ", shaderId, " failed. Err: ", errMsg)
	return errors.New(errMsg)
}
