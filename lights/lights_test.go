package lights

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSetter struct {
	ints   map[string]int32
	floats map[string]float32
	vec3s  map[string]gglm.Vec3
}

func newRecordingSetter() *recordingSetter {
	return &recordingSetter{
		ints:   map[string]int32{},
		floats: map[string]float32{},
		vec3s:  map[string]gglm.Vec3{},
	}
}

func (r *recordingSetter) SetUnifInt32(uniformName string, val int32) {
	r.ints[uniformName] = val
}

func (r *recordingSetter) SetUnifFloat32(uniformName string, val float32) {
	r.floats[uniformName] = val
}

func (r *recordingSetter) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) {
	r.vec3s[uniformName] = *vec3
}

func TestDefaults(t *testing.T) {

	p := NewPointLight(gglm.NewVec3(0, 1, 0), gglm.NewVec3(0, 0, 0), gglm.NewVec3(1, 1, 1), gglm.NewVec3(1, 1, 1))
	assert.True(t, p.Enabled)
	assert.Equal(t, float32(1), p.Constant)
	assert.Equal(t, float32(0.09), p.Linear)
	assert.Equal(t, float32(0.032), p.Quadratic)
	assert.Equal(t, float32(1), p.Attenuation(0))
	assert.Less(t, p.Attenuation(50), float32(0.05))

	s := NewSpotLight(gglm.NewVec3(0, 5, 0), gglm.NewVec3(0, -2, 0), gglm.NewVec3(0, 0, 0), gglm.NewVec3(1, 1, 1), gglm.NewVec3(1, 1, 1))
	assert.InDelta(t, 0.97630, s.InnerCutoff, 1e-4)
	assert.InDelta(t, 0.96593, s.OuterCutoff, 1e-4)
	assert.Greater(t, s.InnerCutoff, s.OuterCutoff)
	assert.InDelta(t, -1, s.Dir.Y(), 1e-6)
}

func TestSetUniforms(t *testing.T) {

	ls := Set{
		Dir: NewDirLight(gglm.NewVec3(0, -3, 0), gglm.NewVec3(0.1, 0.1, 0.1), gglm.NewVec3(0.8, 0.8, 0.8), gglm.NewVec3(0, 0, 0)),
		Points: []PointLight{
			NewPointLight(gglm.NewVec3(1, 2, 3), gglm.NewVec3(0, 0, 0), gglm.NewVec3(1, 0, 0), gglm.NewVec3(1, 1, 1)),
			NewPointLight(gglm.NewVec3(4, 5, 6), gglm.NewVec3(0, 0, 0), gglm.NewVec3(0, 1, 0), gglm.NewVec3(1, 1, 1)),
		},
		Spots: []SpotLight{
			NewSpotLight(gglm.NewVec3(0, 10, 0), gglm.NewVec3(0, -1, 0), gglm.NewVec3(0, 0, 0), gglm.NewVec3(1, 1, 1), gglm.NewVec3(1, 1, 1)),
		},
	}
	ls.Dir.Enabled = false

	r := newRecordingSetter()
	ls.SetUniforms(r)

	require.Equal(t, int32(0), r.ints["dirLight.enabled"])
	dir := r.vec3s["dirLight.dir"]
	require.InDelta(t, -1, dir.Y(), 1e-6)

	require.Equal(t, int32(2), r.ints["pointLightCount"])
	require.Equal(t, gglm.NewVec3(4, 5, 6), r.vec3s["pointLights[1].pos"])
	require.Equal(t, gglm.NewVec3(1, 0, 0), r.vec3s["pointLights[0].diffuseColor"])
	require.Equal(t, float32(0.032), r.floats["pointLights[1].quadratic"])
	require.Equal(t, int32(1), r.ints["pointLights[0].enabled"])

	require.Equal(t, int32(1), r.ints["spotLightCount"])
	require.Equal(t, DefaultOuterCutoff, r.floats["spotLights[0].outerCutoff"])
	require.Contains(t, r.vec3s, "spotLights[0].dir")
	require.NotContains(t, r.vec3s, "spotLights[1].pos")
}
