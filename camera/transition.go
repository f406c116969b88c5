package camera

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Pose is the part of a camera that transitions animate
type Pose struct {
	Pos   gglm.Vec3
	Pitch float32
	Yaw   float32
}

func (c *Camera) Pose() Pose {
	return Pose{
		Pos:   c.Pos,
		Pitch: c.Pitch,
		Yaw:   c.Yaw,
	}
}

// SetPose moves and rotates the camera then updates its matrices
func (c *Camera) SetPose(p *Pose) {
	c.Pos = p.Pos
	c.UpdateRotation(p.Pitch, p.Yaw)
}

// Transition eases a camera from a starting pose towards a target pose.
// The target can move while the transition runs (e.g. a chase pose behind a moving vehicle),
// so the tween drives a blend factor rather than the pose values themselves.
type Transition struct {
	from  Pose
	tween *gween.Tween
	Done  bool
}

func NewTransition(from *Pose, durationSec float32, easeFn ease.TweenFunc) *Transition {

	if easeFn == nil {
		easeFn = ease.InOutQuad
	}

	return &Transition{
		from:  *from,
		tween: gween.New(0, 1, durationSec, easeFn),
	}
}

// Update advances the transition by dt seconds and returns the blended pose.
// Once Done is true the returned pose equals to.
func (t *Transition) Update(dt float32, to *Pose) Pose {

	if t.Done {
		return *to
	}

	blend, finished := t.tween.Update(dt)
	t.Done = finished
	if finished {
		return *to
	}

	return LerpPose(&t.from, to, blend)
}

func LerpPose(a, b *Pose, t float32) Pose {
	return Pose{
		Pos: gglm.NewVec3(
			a.Pos.X()+(b.Pos.X()-a.Pos.X())*t,
			a.Pos.Y()+(b.Pos.Y()-a.Pos.Y())*t,
			a.Pos.Z()+(b.Pos.Z()-a.Pos.Z())*t,
		),
		Pitch: a.Pitch + (b.Pitch-a.Pitch)*t,
		Yaw:   a.Yaw + (b.Yaw-a.Yaw)*t,
	}
}
