package scene

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/stretchr/testify/require"
)

type fakeShader struct {
	models    []gglm.Mat4
	modulates []gglm.Vec4
}

func (s *fakeShader) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	if uniformName == ModelUniform {
		s.models = append(s.models, *mat4)
	}
}

func (s *fakeShader) SetUnifVec4(uniformName string, vec4 *gglm.Vec4) {
	s.modulates = append(s.modulates, *vec4)
}

type tintedDrawable struct {
	drawn *[]string
	name  string
}

func (d *tintedDrawable) Draw(shader Shader) {
	*d.drawn = append(*d.drawn, d.name)
}

func (d *tintedDrawable) DrawModulated(shader Shader, modulate *gglm.Vec4) {
	shader.SetUnifVec4("modulate", modulate)
	*d.drawn = append(*d.drawn, d.name+"-tinted")
}

func namedDrawable(drawn *[]string, name string) Drawable {
	return DrawableFunc(func(shader Shader) {
		*drawn = append(*drawn, name)
	})
}

func TestDrawPreorderWithWorlds(t *testing.T) {

	drawn := []string{}

	g := NewGraph(5)
	root := g.NewNode("root", namedDrawable(&drawn, "root"))
	group := g.NewNode("group", nil)
	a := g.NewNode("a", namedDrawable(&drawn, "a"))
	b := g.NewNode("b", Drawables{namedDrawable(&drawn, "b0"), namedDrawable(&drawn, "b1")})
	c := g.NewNode("c", namedDrawable(&drawn, "c"))

	g.AddChild(root, group)
	g.AddChild(group, a)
	g.AddChild(group, b)
	g.AddChild(root, c)

	trGroup := NewTranslation(0, 2, 0)
	g.SetTransform(group, &trGroup)

	id := NewIdentity()
	g.Evaluate(root, &id, false)

	s := &fakeShader{}
	g.Draw(root, s)

	require.Equal(t, []string{"root", "a", "b0", "b1", "c"}, drawn)

	// Nodes without a drawable still get their model uniform uploaded
	require.Len(t, s.models, 5)
	require.Equal(t, g.World(group), s.models[1])
	require.Equal(t, g.World(a), s.models[2])
	require.Equal(t, float32(2), s.models[3].Data[3][1])
}

func TestDrawDoesNotUpdateTransforms(t *testing.T) {

	g := NewGraph(1)
	n := g.NewNode("n", NopDrawable{})

	id := NewIdentity()
	g.Evaluate(n, &id, false)

	tr := NewTranslation(9, 9, 9)
	g.SetTransform(n, &tr)

	s := &fakeShader{}
	g.Draw(n, s)

	require.True(t, g.IsDirty(n))
	require.Equal(t, NewIdentity(), s.models[0])
}

func TestDrawModulatedAndDrawNode(t *testing.T) {

	drawn := []string{}

	g := NewGraph(2)
	parent := g.NewNode("parent", &tintedDrawable{drawn: &drawn, name: "marker"})
	child := g.NewNode("child", namedDrawable(&drawn, "child"))
	g.AddChild(parent, child)

	tint := gglm.NewVec4(1, 0, 0, 1)
	g.SetModulate(parent, &tint)

	id := NewIdentity()
	g.Evaluate(parent, &id, false)

	s := &fakeShader{}
	g.DrawNode(parent, s)

	require.Equal(t, []string{"marker-tinted"}, drawn)
	require.Equal(t, []gglm.Vec4{tint}, s.modulates)
	require.Len(t, s.models, 1)
}

func TestSetDrawableReplacesDrawable(t *testing.T) {

	drawn := []string{}

	g := NewGraph(2)
	root := g.NewNode("root", nil)
	markers := g.NewNodes("marker", 2, nil)
	g.AddChild(root, markers[0])
	g.AddChild(root, markers[1])

	g.SetDrawable(markers[1], namedDrawable(&drawn, "arrow"))
	require.Nil(t, g.Drawable(markers[0]))
	require.NotNil(t, g.Drawable(markers[1]))

	id := NewIdentity()
	g.Evaluate(root, &id, false)

	s := &fakeShader{}
	g.Draw(root, s)
	require.Equal(t, []string{"arrow"}, drawn)
	require.Len(t, s.models, 3)

	g.SetDrawable(markers[1], nil)
	g.SetDrawable(markers[0], namedDrawable(&drawn, "sphere"))
	g.Draw(root, s)
	require.Equal(t, []string{"arrow", "sphere"}, drawn)
}
