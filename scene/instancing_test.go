package scene

import (
	"testing"

	"github.com/bloeys/nscene/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	calls int
	data  []float32
	count int32
}

func (u *recordingUploader) SetInstanceData(data []float32, instanceCount int32) {
	u.calls++
	u.data = append(u.data[:0], data...)
	u.count = instanceCount
}

func TestInstanceBatchOrderRoundTrip(t *testing.T) {

	const rows, cols = 4, 5

	g := NewGraph(rows*cols + 1)
	root := g.NewNode("root", nil)
	rocks := g.NewNodes("rock", rows*cols, nil)

	for i, id := range rocks {
		g.AddChild(root, id)

		tr := NewTransformPos(float32(i%cols)*2, 0, float32(i/cols)*2)
		tr.SetRotEuler(0, float32(i)*0.1, 0)
		g.SetTRS(id, &tr)
	}

	rootTr := NewTranslation(0, -3, 0)
	g.SetTransform(root, &rootTr)

	id := NewIdentity()
	g.Evaluate(root, &id, false)

	batch := NewInstanceBatch(rocks)
	require.Equal(t, int32(rows*cols), batch.Count())

	data := batch.Collect(g)
	require.Len(t, data, rows*cols*Mat4Floats)
	for i, id := range rocks {
		requireMatNear(t, g.World(id), InstanceAt(data, i), "instance %d", i)
	}

	// Column major: the translation of slot i lives in floats 12..14
	world3 := g.World(rocks[3])
	require.Equal(t, world3.Data[3][0], data[3*Mat4Floats+12])
	require.Equal(t, world3.Data[3][1], data[3*Mat4Floats+13])
	require.Equal(t, world3.Data[3][2], data[3*Mat4Floats+14])
}

func TestInstanceBatchUploadsOnce(t *testing.T) {

	g := NewGraph(3)
	ids := g.NewNodes("inst", 3, nil)

	id := NewIdentity()
	for i, n := range ids {
		tr := NewTranslation(float32(i), 0, 0)
		g.SetTransform(n, &tr)
		g.Evaluate(n, &id, false)
	}

	u := &recordingUploader{}
	batch := NewInstanceBatch(ids)
	batch.Upload(g, u)

	require.Equal(t, 1, u.calls)
	require.Equal(t, int32(3), u.count)
	require.Len(t, u.data, 3*Mat4Floats)
	for i := range ids {
		m := InstanceAt(u.data, i)
		require.Equal(t, float32(i), m.Data[3][0])
	}
}

func TestInstanceBatchReorderedNodes(t *testing.T) {

	g := NewGraph(3)
	ids := g.NewNodes("inst", 3, nil)

	id := NewIdentity()
	for i, n := range ids {
		tr := NewTranslation(0, float32(i+1), 0)
		g.SetTransform(n, &tr)
		g.Evaluate(n, &id, false)
	}

	// Slot order follows the batch array, not node creation order
	batch := NewInstanceBatch([]NodeId{ids[2], ids[0], ids[1]})
	data := batch.Collect(g)

	require.Equal(t, float32(3), InstanceAt(data, 0).Data[3][1])
	require.Equal(t, float32(1), InstanceAt(data, 1).Data[3][1])
	require.Equal(t, float32(2), InstanceAt(data, 2).Data[3][1])

	// Buffer is reused, collecting again gives the same length
	require.Len(t, batch.Collect(g), 3*Mat4Floats)
}

func TestInstanceBatchRejectsStaleAncestorsInDebug(t *testing.T) {

	if !assert.Enabled {
		t.Skip("asserts disabled in release builds")
	}

	g := NewGraph(4)
	root := g.NewNode("root", nil)
	group := g.NewNode("group", nil)
	ids := g.NewNodes("inst", 2, nil)
	g.AddChild(root, group)
	g.AddChild(group, ids[0])
	g.AddChild(group, ids[1])

	id := NewIdentity()
	g.Evaluate(root, &id, false)

	batch := NewInstanceBatch(ids)
	require.NotPanics(t, func() { batch.Collect(g) })

	// The instances themselves are clean but their worlds are stale until the group is evaluated
	tr := NewTranslation(0, 4, 0)
	g.SetTransform(group, &tr)
	require.False(t, g.IsDirty(ids[0]))
	require.Panics(t, func() { batch.Collect(g) })

	g.Evaluate(root, &id, false)
	data := batch.Collect(g)
	require.Equal(t, float32(4), InstanceAt(data, 1).Data[3][1])
}
