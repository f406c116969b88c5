package lights

import (
	"math"
	"strconv"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/assert"
)

// Must match the array sizes in the lit shaders
const (
	MaxPointLights = 8
	MaxSpotLights  = 4
)

// Attenuation that covers a distance of ~50 units
const (
	DefaultConstant  float32 = 1.0
	DefaultLinear    float32 = 0.09
	DefaultQuadratic float32 = 0.032
)

var (
	DefaultInnerCutoff = float32(math.Cos(12.5 * math.Pi / 180))
	DefaultOuterCutoff = float32(math.Cos(15 * math.Pi / 180))
)

// UniformSetter is implemented by *materials.Material
type UniformSetter interface {
	SetUnifInt32(uniformName string, val int32)
	SetUnifFloat32(uniformName string, val float32)
	SetUnifVec3(uniformName string, vec3 *gglm.Vec3)
}

type DirLight struct {
	Enabled bool

	Dir           gglm.Vec3
	AmbientColor  gglm.Vec3
	DiffuseColor  gglm.Vec3
	SpecularColor gglm.Vec3
}

type PointLight struct {
	Enabled bool

	Pos           gglm.Vec3
	AmbientColor  gglm.Vec3
	DiffuseColor  gglm.Vec3
	SpecularColor gglm.Vec3

	Constant  float32
	Linear    float32
	Quadratic float32
}

type SpotLight struct {
	Enabled bool

	Pos           gglm.Vec3
	Dir           gglm.Vec3
	AmbientColor  gglm.Vec3
	DiffuseColor  gglm.Vec3
	SpecularColor gglm.Vec3

	Constant  float32
	Linear    float32
	Quadratic float32

	// These are cosines of the cone angles, not radians
	InnerCutoff float32
	OuterCutoff float32
}

func NewDirLight(dir, ambient, diffuse, specular gglm.Vec3) DirLight {
	return DirLight{
		Enabled:       true,
		Dir:           *dir.Normalize(),
		AmbientColor:  ambient,
		DiffuseColor:  diffuse,
		SpecularColor: specular,
	}
}

func NewPointLight(pos, ambient, diffuse, specular gglm.Vec3) PointLight {
	return PointLight{
		Enabled:       true,
		Pos:           pos,
		AmbientColor:  ambient,
		DiffuseColor:  diffuse,
		SpecularColor: specular,
		Constant:      DefaultConstant,
		Linear:        DefaultLinear,
		Quadratic:     DefaultQuadratic,
	}
}

func NewSpotLight(pos, dir, ambient, diffuse, specular gglm.Vec3) SpotLight {
	return SpotLight{
		Enabled:       true,
		Pos:           pos,
		Dir:           *dir.Normalize(),
		AmbientColor:  ambient,
		DiffuseColor:  diffuse,
		SpecularColor: specular,
		Constant:      DefaultConstant,
		Linear:        DefaultLinear,
		Quadratic:     DefaultQuadratic,
		InnerCutoff:   DefaultInnerCutoff,
		OuterCutoff:   DefaultOuterCutoff,
	}
}

// Attenuation returns the light multiplier at the given distance
func (p *PointLight) Attenuation(dist float32) float32 {
	return 1 / (p.Constant + p.Linear*dist + p.Quadratic*dist*dist)
}

// Set is everything the lit shaders need to know about lights
type Set struct {
	Dir    DirLight
	Points []PointLight
	Spots  []SpotLight
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (d *DirLight) SetUniforms(u UniformSetter) {
	u.SetUnifInt32("dirLight.enabled", boolToInt32(d.Enabled))
	u.SetUnifVec3("dirLight.dir", &d.Dir)
	u.SetUnifVec3("dirLight.ambientColor", &d.AmbientColor)
	u.SetUnifVec3("dirLight.diffuseColor", &d.DiffuseColor)
	u.SetUnifVec3("dirLight.specularColor", &d.SpecularColor)
}

func (p *PointLight) SetUniforms(u UniformSetter, index int) {

	indexString := "pointLights[" + strconv.Itoa(index) + "]"

	u.SetUnifInt32(indexString+".enabled", boolToInt32(p.Enabled))
	u.SetUnifVec3(indexString+".pos", &p.Pos)
	u.SetUnifVec3(indexString+".ambientColor", &p.AmbientColor)
	u.SetUnifVec3(indexString+".diffuseColor", &p.DiffuseColor)
	u.SetUnifVec3(indexString+".specularColor", &p.SpecularColor)
	u.SetUnifFloat32(indexString+".constant", p.Constant)
	u.SetUnifFloat32(indexString+".linear", p.Linear)
	u.SetUnifFloat32(indexString+".quadratic", p.Quadratic)
}

func (s *SpotLight) SetUniforms(u UniformSetter, index int) {

	indexString := "spotLights[" + strconv.Itoa(index) + "]"

	u.SetUnifInt32(indexString+".enabled", boolToInt32(s.Enabled))
	u.SetUnifVec3(indexString+".pos", &s.Pos)
	u.SetUnifVec3(indexString+".dir", &s.Dir)
	u.SetUnifVec3(indexString+".ambientColor", &s.AmbientColor)
	u.SetUnifVec3(indexString+".diffuseColor", &s.DiffuseColor)
	u.SetUnifVec3(indexString+".specularColor", &s.SpecularColor)
	u.SetUnifFloat32(indexString+".constant", s.Constant)
	u.SetUnifFloat32(indexString+".linear", s.Linear)
	u.SetUnifFloat32(indexString+".quadratic", s.Quadratic)
	u.SetUnifFloat32(indexString+".innerCutoff", s.InnerCutoff)
	u.SetUnifFloat32(indexString+".outerCutoff", s.OuterCutoff)
}

// SetUniforms writes all lights into the bound program, including the light counts
func (ls *Set) SetUniforms(u UniformSetter) {

	assert.T(len(ls.Points) <= MaxPointLights, "Too many point lights. Got %d but max is %d", len(ls.Points), MaxPointLights)
	assert.T(len(ls.Spots) <= MaxSpotLights, "Too many spot lights. Got %d but max is %d", len(ls.Spots), MaxSpotLights)

	ls.Dir.SetUniforms(u)

	u.SetUnifInt32("pointLightCount", int32(len(ls.Points)))
	for i := 0; i < len(ls.Points); i++ {
		ls.Points[i].SetUniforms(u, i)
	}

	u.SetUnifInt32("spotLightCount", int32(len(ls.Spots)))
	for i := 0; i < len(ls.Spots); i++ {
		ls.Spots[i].SetUniforms(u, i)
	}
}
