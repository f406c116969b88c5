package scene

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/assert"
)

const Mat4Floats = 16

// InstanceUploader receives per-instance world matrices, 16 floats each (4 column vectors), in instance order.
// *buffers.InstanceBuffer satisfies it.
type InstanceUploader interface {
	SetInstanceData(data []float32, instanceCount int32)
}

// InstanceBatch is a flat array of nodes drawn with one instanced draw call.
// Slot i of the collected buffer is always the world transform of Nodes[i].
type InstanceBatch struct {
	Nodes []NodeId

	data []float32
}

func NewInstanceBatch(nodes []NodeId) *InstanceBatch {
	return &InstanceBatch{
		Nodes: nodes,
		data:  make([]float32, 0, len(nodes)*Mat4Floats),
	}
}

func (b *InstanceBatch) Count() int32 {
	return int32(len(b.Nodes))
}

// Collect copies the world transforms of the batch nodes into a contiguous buffer and returns it.
// The buffer is reused between calls.
func (b *InstanceBatch) Collect(g *Graph) []float32 {

	b.data = b.data[:0]
	for i := 0; i < len(b.Nodes); i++ {

		n := &g.nodes[b.Nodes[i]]
		if assert.Enabled {
			assert.T(!n.dirty && !g.hasDirtyAncestor(b.Nodes[i]), "Collecting instance data from stale node %d ('%s'). Evaluate the graph first", b.Nodes[i], n.name)
		}

		b.data = append(b.data, n.world.Data[0][:]...)
		b.data = append(b.data, n.world.Data[1][:]...)
		b.data = append(b.data, n.world.Data[2][:]...)
		b.data = append(b.data, n.world.Data[3][:]...)
	}

	return b.data
}

func (g *Graph) hasDirtyAncestor(id NodeId) bool {

	for p := g.nodes[id].parent; p != NilNode; p = g.nodes[p].parent {
		if g.nodes[p].dirty {
			return true
		}
	}

	return false
}

// Upload collects the batch and hands it to the uploader in one call.
// Instance populations are static so this is normally done once at setup.
func (b *InstanceBatch) Upload(g *Graph, u InstanceUploader) {
	u.SetInstanceData(b.Collect(g), b.Count())
}

// InstanceAt decodes the matrix stored at slot i of collected instance data
func InstanceAt(data []float32, i int) gglm.Mat4 {

	m := gglm.Mat4{}
	base := i * Mat4Floats
	for col := 0; col < 4; col++ {
		copy(m.Data[col][:], data[base+col*4:base+col*4+4])
	}

	return m
}
