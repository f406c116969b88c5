package shaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCombinedShader(t *testing.T) {

	src := []byte(`
//shader:vertex
#version 410
void main() {}

//shader:fragment
#version 410
out vec4 fragColor;
void main() { fragColor = vec4(1); }
`)

	sources, err := SplitCombinedShader(src)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, ShaderType_Vertex, sources[0].Type)
	assert.Contains(t, string(sources[0].Src), "#version 410")
	assert.NotContains(t, string(sources[0].Src), "vertex")
	assert.NotContains(t, string(sources[0].Src), "fragColor")

	assert.Equal(t, ShaderType_Fragment, sources[1].Type)
	assert.Contains(t, string(sources[1].Src), "fragColor")
}

func TestSplitCombinedShaderWithGeometry(t *testing.T) {

	src := []byte("//shader:vertex\nA\n//shader:geometry\nB\n//shader:fragment\nC\n")

	sources, err := SplitCombinedShader(src)
	require.NoError(t, err)
	require.Len(t, sources, 3)
	assert.Equal(t, ShaderType_Geometry, sources[1].Type)
	assert.Equal(t, "\nB\n", string(sources[1].Src))
}

func TestSplitCombinedShaderErrors(t *testing.T) {

	tests := []struct {
		name string
		src  string
	}{
		{"no markers", "void main() {}"},
		{"missing fragment", "//shader:vertex\nvoid main() {}"},
		{"missing vertex", "//shader:fragment\nvoid main() {}"},
		{"unknown stage", "//shader:vertex\nA\n//shader:compute\nB\n//shader:fragment\nC"},
		{"code before marker", "int x;\n//shader:vertex\nA\n//shader:fragment\nB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitCombinedShader([]byte(tt.src))
			require.Error(t, err)
		})
	}
}

func TestShaderTypeString(t *testing.T) {
	assert.Equal(t, "vertex", ShaderType_Vertex.String())
	assert.Equal(t, "fragment", ShaderType_Fragment.String())
	assert.Equal(t, "geometry", ShaderType_Geometry.String())
	assert.Equal(t, "unknown", ShaderType_Unknown.String())
}
