package renderer

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/buffers"
	"github.com/bloeys/nscene/materials"
	"github.com/bloeys/nscene/meshes"
)

type Render interface {
	// DrawMesh draws all submeshes of mesh. If modelMat is nil the material keeps its current model matrix
	DrawMesh(mesh *meshes.Mesh, modelMat *gglm.Mat4, mat *materials.Material)
	// DrawMeshInstanced draws every instance in the instance buffer with one draw call per submesh
	DrawMeshInstanced(mesh *meshes.Mesh, instances *buffers.InstanceBuffer, mat *materials.Material)
	DrawVertexArray(mat *materials.Material, vao *buffers.VertexArray, firstElement int32, count int32)
	DrawCubemap(mesh *meshes.Mesh, mat *materials.Material)
	FrameEnd()
}
