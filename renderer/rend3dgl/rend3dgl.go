package rend3dgl

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/buffers"
	"github.com/bloeys/nscene/materials"
	"github.com/bloeys/nscene/meshes"
	"github.com/bloeys/nscene/renderer"
	"github.com/bloeys/nscene/scene"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ renderer.Render = &Rend3DGL{}

type Rend3DGL struct {
	BoundVaoId uint32
	BoundMatId uint32

	// Stats of the current frame, moved to the Last* fields in FrameEnd
	DrawCalls      int32
	InstancesDrawn int32

	LastDrawCalls      int32
	LastInstancesDrawn int32
}

func (r *Rend3DGL) bindVao(vao *buffers.VertexArray) {
	if vao.Id != r.BoundVaoId {
		vao.Bind()
		r.BoundVaoId = vao.Id
	}
}

func (r *Rend3DGL) bindMat(mat *materials.Material) {
	if mat.Id != r.BoundMatId {
		mat.Bind()
		r.BoundMatId = mat.Id
	}
}

func (r *Rend3DGL) DrawMesh(mesh *meshes.Mesh, modelMat *gglm.Mat4, mat *materials.Material) {

	r.bindVao(&mesh.Vao)
	r.bindMat(mat)

	if modelMat != nil && mat.Settings.Has(materials.MaterialSettings_HasModelMtx) {
		mat.SetUnifMat4(scene.ModelUniform, modelMat)
	}

	mode := mesh.Primitive.ToGL()
	for i := 0; i < len(mesh.SubMeshes); i++ {
		sm := &mesh.SubMeshes[i]
		gl.DrawElementsBaseVertex(mode, sm.IndexCount, gl.UNSIGNED_INT, gl.PtrOffset(int(sm.BaseIndex)*4), sm.BaseVertex)
		r.DrawCalls++
	}
}

func (r *Rend3DGL) DrawMeshInstanced(mesh *meshes.Mesh, instances *buffers.InstanceBuffer, mat *materials.Material) {

	if instances.InstanceCount == 0 {
		return
	}

	// The instance vao shares the vbo and ibo of the mesh
	r.bindVao(&instances.Vao)
	r.bindMat(mat)

	mode := mesh.Primitive.ToGL()
	for i := 0; i < len(mesh.SubMeshes); i++ {
		sm := &mesh.SubMeshes[i]
		gl.DrawElementsInstancedBaseVertex(mode, sm.IndexCount, gl.UNSIGNED_INT, gl.PtrOffset(int(sm.BaseIndex)*4), instances.InstanceCount, sm.BaseVertex)
		r.DrawCalls++
	}

	r.InstancesDrawn += instances.InstanceCount
}

func (r *Rend3DGL) DrawVertexArray(mat *materials.Material, vao *buffers.VertexArray, firstElement int32, elementCount int32) {

	r.bindVao(vao)
	r.bindMat(mat)

	gl.DrawArrays(gl.TRIANGLES, firstElement, elementCount)
	r.DrawCalls++
}

// DrawCubemap draws a skybox behind everything already drawn
func (r *Rend3DGL) DrawCubemap(mesh *meshes.Mesh, mat *materials.Material) {

	r.bindVao(&mesh.Vao)
	r.bindMat(mat)

	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)

	for i := 0; i < len(mesh.SubMeshes); i++ {
		sm := &mesh.SubMeshes[i]
		gl.DrawElementsBaseVertex(gl.TRIANGLES, sm.IndexCount, gl.UNSIGNED_INT, gl.PtrOffset(int(sm.BaseIndex)*4), sm.BaseVertex)
		r.DrawCalls++
	}

	gl.Enable(gl.CULL_FACE)
	gl.DepthFunc(gl.LESS)
}

func (r3d *Rend3DGL) FrameEnd() {
	r3d.BoundVaoId = 0
	r3d.BoundMatId = 0
	r3d.LastDrawCalls = r3d.DrawCalls
	r3d.LastInstancesDrawn = r3d.InstancesDrawn
	r3d.DrawCalls = 0
	r3d.InstancesDrawn = 0
}

func NewRend3DGL() *Rend3DGL {
	return &Rend3DGL{}
}
