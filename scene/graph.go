// Package scene holds the scene graph: a tree of nodes with local transforms whose world
// transforms are recomputed lazily, top-down, once per frame.
package scene

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/assert"
)

const (
	ModelUniform = "model"
)

type NodeId int32

const NilNode NodeId = -1

type node struct {
	name string

	local gglm.Mat4
	// world is only valid when dirty==false
	world gglm.Mat4
	dirty bool

	drawable Drawable
	modulate gglm.Vec4

	parent   NodeId
	children []NodeId
}

// Graph is an arena of nodes. Nodes are never removed, so a NodeId stays valid for the
// lifetime of the graph.
type Graph struct {
	nodes []node
}

func NewGraph(capacity int) *Graph {
	return &Graph{
		nodes: make([]node, 0, capacity),
	}
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) IsValid(id NodeId) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// NewNode creates a dirty root node with an identity local transform. The drawable may be nil.
func (g *Graph) NewNode(name string, d Drawable) NodeId {

	id := NodeId(len(g.nodes))
	g.nodes = append(g.nodes, node{
		name:     name,
		local:    gglm.NewMat4Diag(1),
		world:    gglm.NewMat4Diag(1),
		dirty:    true,
		drawable: d,
		modulate: gglm.NewVec4(1, 1, 1, 1),
		parent:   NilNode,
	})

	return id
}

// NewNodes creates count nodes that share the same drawable. Ids are contiguous.
func (g *Graph) NewNodes(name string, count int, d Drawable) []NodeId {

	if cap(g.nodes)-len(g.nodes) < count {
		newNodes := make([]node, len(g.nodes), len(g.nodes)+count)
		copy(newNodes, g.nodes)
		g.nodes = newNodes
	}

	ids := make([]NodeId, count)
	for i := 0; i < count; i++ {
		ids[i] = g.NewNode(name, d)
	}

	return ids
}

// AddChild appends child to the ordered children of parent.
//
// A node must have at most one parent and the result must stay a tree. This is only checked in debug builds.
func (g *Graph) AddChild(parent, child NodeId) {

	assert.T(g.IsValid(parent), "AddChild got invalid parent node id %d", parent)
	assert.T(g.IsValid(child), "AddChild got invalid child node id %d", child)

	if assert.Enabled {
		assert.T(parent != child, "Node %d can not be its own child", child)
		assert.T(g.nodes[child].parent == NilNode, "Node %d ('%s') already has parent %d", child, g.nodes[child].name, g.nodes[child].parent)

		for p := g.nodes[parent].parent; p != NilNode; p = g.nodes[p].parent {
			assert.T(p != child, "Adding node %d as a child of %d would create a cycle", child, parent)
		}
	}

	g.nodes[parent].children = append(g.nodes[parent].children, child)
	g.nodes[child].parent = parent
}

// SetTransform replaces the local transform of the node and marks it dirty
func (g *Graph) SetTransform(id NodeId, local *gglm.Mat4) {
	n := &g.nodes[id]
	n.local = *local
	n.dirty = true
}

func (g *Graph) SetTRS(id NodeId, t *Transform) {
	n := &g.nodes[id]
	n.local = t.Mat4()
	n.dirty = true
}

// MarkDirty forces the world transform of the node (and so its subtree) to be recomputed on the next Evaluate
func (g *Graph) MarkDirty(id NodeId) {
	g.nodes[id].dirty = true
}

func (g *Graph) Local(id NodeId) gglm.Mat4 {
	return g.nodes[id].local
}

// World returns the cached world transform, which is stale if the node or one of its ancestors changed since the last Evaluate
func (g *Graph) World(id NodeId) gglm.Mat4 {
	return g.nodes[id].world
}

func (g *Graph) IsDirty(id NodeId) bool {
	return g.nodes[id].dirty
}

func (g *Graph) Name(id NodeId) string {
	return g.nodes[id].name
}

func (g *Graph) Drawable(id NodeId) Drawable {
	return g.nodes[id].drawable
}

func (g *Graph) SetDrawable(id NodeId, d Drawable) {
	g.nodes[id].drawable = d
}

func (g *Graph) Modulate(id NodeId) gglm.Vec4 {
	return g.nodes[id].modulate
}

func (g *Graph) SetModulate(id NodeId, modulate *gglm.Vec4) {
	g.nodes[id].modulate = *modulate
}

func (g *Graph) Parent(id NodeId) NodeId {
	return g.nodes[id].parent
}

// Children returns the ordered children of a node. The returned slice must not be modified.
func (g *Graph) Children(id NodeId) []NodeId {
	return g.nodes[id].children
}

// Walk visits the subtree at root in preorder. Returning false from fn skips the children of that node.
func (g *Graph) Walk(root NodeId, fn func(id NodeId, depth int) bool) {
	g.walk(root, 0, fn)
}

func (g *Graph) walk(id NodeId, depth int, fn func(id NodeId, depth int) bool) {

	if !fn(id, depth) {
		return
	}

	children := g.nodes[id].children
	for i := 0; i < len(children); i++ {
		g.walk(children[i], depth+1, fn)
	}
}

// Evaluate brings the world transforms of the subtree at root up to date and returns how many were recomputed.
//
// A node is recomputed as parentWorld*local if it is dirty itself or if parentDirty is true,
// and in that case its children are told their parent changed.
// Passing parentDirty=true forces the whole subtree to be recomputed.
func (g *Graph) Evaluate(root NodeId, parentWorld *gglm.Mat4, parentDirty bool) int {
	assert.T(g.IsValid(root), "Evaluate got invalid node id %d", root)
	return g.evaluate(root, parentWorld, parentDirty)
}

func (g *Graph) evaluate(id NodeId, parentWorld *gglm.Mat4, parentDirty bool) (recomputed int) {

	n := &g.nodes[id]

	isDirty := n.dirty || parentDirty
	if isDirty {
		n.world = *parentWorld
		n.world.Mul(&n.local)
		n.dirty = false
		recomputed++
	}

	for i := 0; i < len(n.children); i++ {
		recomputed += g.evaluate(n.children[i], &n.world, isDirty)
	}

	return recomputed
}

// Draw renders the subtree at root in preorder using the cached world transforms.
// It never updates transforms, so Evaluate should be called first.
func (g *Graph) Draw(root NodeId, shader Shader) {

	g.DrawNode(root, shader)

	children := g.nodes[root].children
	for i := 0; i < len(children); i++ {
		g.Draw(children[i], shader)
	}
}

// DrawNode renders only this node, without its children
func (g *Graph) DrawNode(id NodeId, shader Shader) {

	n := &g.nodes[id]
	shader.SetUnifMat4(ModelUniform, &n.world)

	if n.drawable == nil {
		return
	}

	if md, ok := n.drawable.(ModulatedDrawable); ok {
		md.DrawModulated(shader, &n.modulate)
		return
	}

	n.drawable.Draw(shader)
}
