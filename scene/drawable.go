package scene

import (
	"github.com/bloeys/gglm/gglm"
)

// Shader is the part of a bound shader program the scene graph writes into.
// *materials.Material satisfies it.
type Shader interface {
	SetUnifMat4(uniformName string, mat4 *gglm.Mat4)
	SetUnifVec4(uniformName string, vec4 *gglm.Vec4)
}

// Drawable is anything that can render itself using the currently active shader state.
// The graph only holds a reference to a drawable and never destroys it.
type Drawable interface {
	Draw(shader Shader)
}

// ModulatedDrawable is a drawable that wants the per-node modulate color.
// When a node's drawable implements it, DrawModulated is called instead of Draw.
type ModulatedDrawable interface {
	Drawable
	DrawModulated(shader Shader, modulate *gglm.Vec4)
}

type DrawableFunc func(shader Shader)

func (f DrawableFunc) Draw(shader Shader) {
	f(shader)
}

// Drawables is a composite drawable that draws its elements in order (e.g. all the meshes of a model)
type Drawables []Drawable

func (ds Drawables) Draw(shader Shader) {
	for i := 0; i < len(ds); i++ {
		ds[i].Draw(shader)
	}
}

// NopDrawable draws nothing. Handy as a placeholder for nodes that are only attachment points.
type NopDrawable struct{}

func (NopDrawable) Draw(shader Shader) {}
