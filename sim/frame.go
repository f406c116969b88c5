package sim

import "github.com/bloeys/gglm/gglm"

// FrameCtx is everything the update step of a frame reads that isn't owned by the scene
type FrameCtx struct {
	DT     float32
	CamPos gglm.Vec3

	DriveMode bool

	DirLightOn    bool
	PointLightsOn bool
	SpotLightsOn  bool
}

// Controls are the driving inputs for one frame, independent of where they came from (keyboard, UI, tests)
type Controls struct {
	Forward  bool
	Backward bool

	TurnLeft  bool
	TurnRight bool

	CabinLeft  bool
	CabinRight bool

	ArmUp   bool
	ArmDown bool
}

func (c *Controls) Any() bool {
	return c.Forward || c.Backward ||
		c.TurnLeft || c.TurnRight ||
		c.CabinLeft || c.CabinRight ||
		c.ArmUp || c.ArmDown
}

func axis(positive, negative bool) float32 {

	var v float32
	if positive {
		v++
	}

	if negative {
		v--
	}

	return v
}
