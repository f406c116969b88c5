package sim

import (
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/camera"
	"github.com/bloeys/nscene/config"
	"github.com/bloeys/nscene/scene"
)

const (
	MinArmAngleRad = -30 * gglm.Deg2Rad
	MaxArmAngleRad = 60 * gglm.Deg2Rad
)

// Excavator drives three nodes: the tracked body, the cabin that swings on top of it and the arm attached to the cabin.
// It only writes local transforms. World transforms come from the next graph evaluation.
type Excavator struct {
	Body  scene.NodeId
	Cabin scene.NodeId
	Arm   scene.NodeId

	Pos gglm.Vec3
	// Rotation of the body around +Y in radians. Zero faces -Z
	Heading float32
	// Rotation of the cabin relative to the body
	CabinAngle float32
	ArmAngle   float32
	Scale      float32

	MoveSpeed     float32
	TurnSpeedRad  float32
	CabinSpeedRad float32
	ArmSpeedRad   float32

	CabinOffset gglm.Vec3
	ArmOffset   gglm.Vec3
}

// NewExcavator creates the excavator nodes under parent and sets their initial transforms
func NewExcavator(g *scene.Graph, parent scene.NodeId, cfg *config.ExcavatorConfig, body, cabin, arm scene.Drawable) *Excavator {

	e := &Excavator{
		Body:  g.NewNode("excavator-body", body),
		Cabin: g.NewNode("excavator-cabin", cabin),
		Arm:   g.NewNode("excavator-arm", arm),

		Pos:   cfg.StartPos.ToGglm(),
		Scale: cfg.Scale,

		MoveSpeed:     cfg.MoveSpeed,
		TurnSpeedRad:  cfg.TurnSpeedDeg * gglm.Deg2Rad,
		CabinSpeedRad: cfg.CabinSpeedDeg * gglm.Deg2Rad,
		ArmSpeedRad:   cfg.ArmSpeedDeg * gglm.Deg2Rad,

		CabinOffset: gglm.NewVec3(0, 2, 0),
		ArmOffset:   gglm.NewVec3(0, 1, -2),
	}

	if parent != scene.NilNode {
		g.AddChild(parent, e.Body)
	}
	g.AddChild(e.Body, e.Cabin)
	g.AddChild(e.Cabin, e.Arm)

	e.SetTransforms(g)
	return e
}

// Forward returns the direction the body faces on the XZ plane
func (e *Excavator) Forward() gglm.Vec3 {
	sin, cos := math.Sincos(float64(e.Heading))
	return gglm.NewVec3(-float32(sin), 0, -float32(cos))
}

// Update applies one frame of controls. Controls are ignored outside drive mode.
// Only the nodes that actually moved are invalidated. Returns true if anything moved.
func (e *Excavator) Update(g *scene.Graph, ctx *FrameCtx, ctl *Controls) bool {

	if !ctx.DriveMode || !ctl.Any() {
		return false
	}

	bodyMoved := false

	move := axis(ctl.Forward, ctl.Backward)
	if move != 0 {
		forward := e.Forward()
		e.Pos.Add(forward.Scale(move * e.MoveSpeed * ctx.DT))
		bodyMoved = true
	}

	turn := axis(ctl.TurnLeft, ctl.TurnRight)
	if turn != 0 {
		e.Heading = wrapAngle(e.Heading + turn*e.TurnSpeedRad*ctx.DT)
		bodyMoved = true
	}

	cabinMoved := false
	swing := axis(ctl.CabinLeft, ctl.CabinRight)
	if swing != 0 {
		e.CabinAngle = wrapAngle(e.CabinAngle + swing*e.CabinSpeedRad*ctx.DT)
		cabinMoved = true
	}

	armMoved := false
	lift := axis(ctl.ArmUp, ctl.ArmDown)
	if lift != 0 {
		newAngle := gglm.Clamp(e.ArmAngle+lift*e.ArmSpeedRad*ctx.DT, MinArmAngleRad, MaxArmAngleRad)
		armMoved = newAngle != e.ArmAngle
		e.ArmAngle = newAngle
	}

	if bodyMoved {
		e.setBodyTransform(g)
	}

	if cabinMoved {
		e.setCabinTransform(g)
	}

	if armMoved {
		e.setArmTransform(g)
	}

	return bodyMoved || cabinMoved || armMoved
}

// SetTransforms writes the local transforms of all the excavator nodes
func (e *Excavator) SetTransforms(g *scene.Graph) {
	e.setBodyTransform(g)
	e.setCabinTransform(g)
	e.setArmTransform(g)
}

func (e *Excavator) setBodyTransform(g *scene.Graph) {
	tr := scene.NewTransform()
	tr.Pos = e.Pos
	tr.SetRotEuler(0, e.Heading, 0)
	tr.Scale = gglm.NewVec3(e.Scale, e.Scale, e.Scale)
	g.SetTRS(e.Body, &tr)
}

func (e *Excavator) setCabinTransform(g *scene.Graph) {
	tr := scene.NewTransform()
	tr.Pos = e.CabinOffset
	tr.SetRotEuler(0, e.CabinAngle, 0)
	g.SetTRS(e.Cabin, &tr)
}

func (e *Excavator) setArmTransform(g *scene.Graph) {
	tr := scene.NewTransform()
	tr.Pos = e.ArmOffset
	tr.SetRotEuler(e.ArmAngle, 0, 0)
	g.SetTRS(e.Arm, &tr)
}

// ChasePose returns a camera pose that looks at the excavator from behind.
// offset.Y is the height above the excavator and offset.Z the distance behind it.
func (e *Excavator) ChasePose(offset *gglm.Vec3) camera.Pose {

	forward := e.Forward()
	camPos := gglm.NewVec3(
		e.Pos.X()-forward.X()*offset.Z(),
		e.Pos.Y()+offset.Y(),
		e.Pos.Z()-forward.Z()*offset.Z(),
	)

	lookDir := gglm.NewVec3(e.Pos.X()-camPos.X(), e.Pos.Y()-camPos.Y(), e.Pos.Z()-camPos.Z())
	pitch, yaw := AnglesFromDir(&lookDir)

	return camera.Pose{
		Pos:   camPos,
		Pitch: pitch,
		Yaw:   yaw,
	}
}

// AnglesFromDir is the inverse of camera.ForwardFromAngles
func AnglesFromDir(dir *gglm.Vec3) (pitch, yaw float32) {

	x, y, z := float64(dir.X()), float64(dir.Y()), float64(dir.Z())
	length := math.Sqrt(x*x + y*y + z*z)
	if length == 0 {
		return 0, -math.Pi / 2
	}

	pitch = float32(math.Asin(y / length))
	yaw = float32(math.Atan2(z, x))
	return pitch, yaw
}

func wrapAngle(rad float32) float32 {
	return float32(math.Remainder(float64(rad), 2*math.Pi))
}
