package renderer

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/assert"
	"github.com/bloeys/nscene/buffers"
	"github.com/bloeys/nscene/materials"
	"github.com/bloeys/nscene/meshes"
	"github.com/bloeys/nscene/scene"
)

// ModulateUniform is the vec4 color marker shaders multiply their output with
const ModulateUniform = "modulate"

var (
	_ scene.Drawable          = &MeshDrawable{}
	_ scene.Drawable          = &Model{}
	_ scene.ModulatedDrawable = &MarkerDrawable{}
	_ scene.InstanceUploader  = &InstancedMesh{}
)

func shaderAsMaterial(shader scene.Shader) *materials.Material {
	mat, ok := shader.(*materials.Material)
	assert.T(ok, "Mesh drawables can only draw with a *materials.Material, but got %T", shader)
	return mat
}

// MeshDrawable draws a mesh with the material the scene graph is drawing with.
// The scene graph has already set the model matrix by the time Draw is called.
type MeshDrawable struct {
	Mesh *meshes.Mesh
	Rend Render
}

func (d *MeshDrawable) Draw(shader scene.Shader) {
	d.Rend.DrawMesh(d.Mesh, nil, shaderAsMaterial(shader))
}

func NewMeshDrawable(mesh *meshes.Mesh, rend Render) *MeshDrawable {
	return &MeshDrawable{
		Mesh: mesh,
		Rend: rend,
	}
}

// Model is a group of meshes that always move together
type Model struct {
	Name   string
	Meshes []*meshes.Mesh
	Rend   Render
}

func (m *Model) Draw(shader scene.Shader) {

	mat := shaderAsMaterial(shader)
	for i := 0; i < len(m.Meshes); i++ {
		m.Rend.DrawMesh(m.Meshes[i], nil, mat)
	}
}

func NewModel(name string, rend Render, ms ...*meshes.Mesh) *Model {
	return &Model{
		Name:   name,
		Meshes: ms,
		Rend:   rend,
	}
}

// MarkerDrawable is a flat colored debug mesh, like the spheres and arrows showing where lights are.
// The node modulate color is uploaded as the 'modulate' uniform.
type MarkerDrawable struct {
	Mesh *meshes.Mesh
	Rend Render
}

func (d *MarkerDrawable) Draw(shader scene.Shader) {
	white := gglm.NewVec4(1, 1, 1, 1)
	d.DrawModulated(shader, &white)
}

func (d *MarkerDrawable) DrawModulated(shader scene.Shader, modulate *gglm.Vec4) {
	shader.SetUnifVec4(ModulateUniform, modulate)
	d.Rend.DrawMesh(d.Mesh, nil, shaderAsMaterial(shader))
}

func NewMarkerDrawable(mesh *meshes.Mesh, rend Render) *MarkerDrawable {
	return &MarkerDrawable{
		Mesh: mesh,
		Rend: rend,
	}
}

// InstancedMesh draws one mesh many times with a per-instance model matrix.
// Instance matrices are filled from scene nodes using scene.InstanceBatch.
type InstancedMesh struct {
	Mesh      *meshes.Mesh
	Mat       *materials.Material
	Instances buffers.InstanceBuffer
}

func (im *InstancedMesh) SetInstanceData(data []float32, instanceCount int32) {
	im.Instances.SetInstanceData(data, instanceCount)
}

func (im *InstancedMesh) InstanceCount() int32 {
	return im.Instances.InstanceCount
}

func (im *InstancedMesh) Draw(rend Render) {
	rend.DrawMeshInstanced(im.Mesh, &im.Instances, im.Mat)
}

func (im *InstancedMesh) Delete() {
	im.Instances.Delete()
}

func NewInstancedMesh(mesh *meshes.Mesh, mat *materials.Material) *InstancedMesh {
	return &InstancedMesh{
		Mesh:      mesh,
		Mat:       mat,
		Instances: buffers.NewInstanceBuffer(&mesh.Vao),
	}
}
