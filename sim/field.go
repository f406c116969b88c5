package sim

import (
	"math"
	"math/rand"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/config"
	"github.com/bloeys/nscene/scene"
)

// NewField creates rows*cols nodes under parent sharing one drawable (nil for instanced fields), and lays them out
// on a grid centered on the parent with a deterministic random yaw and scale per node.
//
// The returned ids are in row major order and are meant to back a scene.InstanceBatch.
func NewField(g *scene.Graph, parent scene.NodeId, cfg *config.FieldConfig, d scene.Drawable) []scene.NodeId {

	count := cfg.Rows * cfg.Cols
	ids := g.NewNodes("field-instance", count, d)

	rng := rand.New(rand.NewSource(cfg.Seed))

	halfWidth := float32(cfg.Cols-1) * cfg.Spacing * 0.5
	halfDepth := float32(cfg.Rows-1) * cfg.Spacing * 0.5

	tr := scene.NewTransform()
	for i := 0; i < count; i++ {

		row := i / cfg.Cols
		col := i % cfg.Cols

		s := 0.5 + rng.Float32()
		tr.Pos = gglm.NewVec3(float32(col)*cfg.Spacing-halfWidth, 0, float32(row)*cfg.Spacing-halfDepth)
		tr.Scale = gglm.NewVec3(s, s, s)
		tr.SetRotEuler(0, rng.Float32()*2*math.Pi, 0)

		g.SetTRS(ids[i], &tr)
		if parent != scene.NilNode {
			g.AddChild(parent, ids[i])
		}
	}

	return ids
}
