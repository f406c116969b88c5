package camera

import (
	"math"

	"github.com/bloeys/gglm/gglm"
)

type Type int32

const (
	Type_Unknown Type = iota
	Type_Perspective
	Type_Orthographic
)

const (
	MinFovRad = 1 * gglm.Deg2Rad
	MaxFovRad = 45 * gglm.Deg2Rad

	// Pitch is kept just short of straight up/down so the view matrix never flips
	MaxPitchRad = 89.9 * gglm.Deg2Rad
)

type Camera struct {
	Type Type

	Pos     gglm.Vec3
	Forward gglm.Vec3
	WorldUp gglm.Vec3

	// Yaw and Pitch are in radians and are only used by UpdateRotation
	Yaw   float32
	Pitch float32

	NearClip float32
	FarClip  float32

	// Perspective
	Fov         float32
	AspectRatio float32

	// Ortho
	Left   float32
	Right  float32
	Top    float32
	Bottom float32

	ViewMat gglm.Mat4
	ProjMat gglm.Mat4
}

// Update recalculates the view and projection matrices
func (c *Camera) Update() {

	c.ViewMat = gglm.LookAtRH(&c.Pos, c.Pos.Clone().Add(&c.Forward), &c.WorldUp).Mat4

	switch c.Type {
	case Type_Perspective:
		projMat := gglm.Perspective(c.Fov, c.AspectRatio, c.NearClip, c.FarClip)
		c.ProjMat = *projMat.Clone()
	case Type_Orthographic:
		c.ProjMat = gglm.Ortho(c.Left, c.Right, c.Bottom, c.Top, c.NearClip, c.FarClip).Mat4
	}
}

// UpdateRotation sets the forward vector from pitch and yaw (radians) then calls Update.
// A yaw of -90 degrees looks down -Z.
func (c *Camera) UpdateRotation(pitch, yaw float32) {

	if pitch > MaxPitchRad {
		pitch = MaxPitchRad
	} else if pitch < -MaxPitchRad {
		pitch = -MaxPitchRad
	}

	c.Pitch = pitch
	c.Yaw = yaw
	c.Forward = ForwardFromAngles(pitch, yaw)
	c.Update()
}

// Zoom changes the fov by deltaRad while keeping it within [MinFovRad, MaxFovRad]
func (c *Camera) Zoom(deltaRad float32) {
	c.Fov = gglm.Clamp(c.Fov-deltaRad, MinFovRad, MaxFovRad)
	c.Update()
}

type MoveDir int32

const (
	MoveDir_Forward MoveDir = iota
	MoveDir_Backward
	MoveDir_Left
	MoveDir_Right
	MoveDir_Up
	MoveDir_Down
)

// MoveFly moves the camera by dist in the given direction relative to where it looks. Does not call Update
func (c *Camera) MoveFly(dir MoveDir, dist float32) {

	switch dir {
	case MoveDir_Forward:
		c.Pos.Add(c.Forward.Clone().Scale(dist))
	case MoveDir_Backward:
		c.Pos.Add(c.Forward.Clone().Scale(-dist))
	case MoveDir_Right:
		cross := gglm.Cross(&c.Forward, &c.WorldUp)
		c.Pos.Add(cross.Normalize().Scale(dist))
	case MoveDir_Left:
		cross := gglm.Cross(&c.Forward, &c.WorldUp)
		c.Pos.Add(cross.Normalize().Scale(-dist))
	case MoveDir_Up:
		c.Pos.Add(c.WorldUp.Clone().Scale(dist))
	case MoveDir_Down:
		c.Pos.Add(c.WorldUp.Clone().Scale(-dist))
	}
}

// ProjViewMat returns ProjMat*ViewMat
func (c *Camera) ProjViewMat() gglm.Mat4 {
	return *c.ProjMat.Clone().Mul(&c.ViewMat)
}

func ForwardFromAngles(pitch, yaw float32) gglm.Vec3 {

	cosPitch := float32(math.Cos(float64(pitch)))
	forward := gglm.NewVec3(
		float32(math.Cos(float64(yaw)))*cosPitch,
		float32(math.Sin(float64(pitch))),
		float32(math.Sin(float64(yaw)))*cosPitch,
	)
	forward.Normalize()

	return forward
}

func NewPerspective(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, fovRadians, aspectRatio float32) Camera {

	cam := Camera{
		Type:        Type_Perspective,
		Pos:         *pos,
		Forward:     *forward,
		WorldUp:     *worldUp,
		Yaw:         -90 * gglm.Deg2Rad,
		NearClip:    nearClip,
		FarClip:     farClip,
		Fov:         fovRadians,
		AspectRatio: aspectRatio,
	}

	cam.Update()
	return cam
}

func NewOrthographic(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, left, right, top, bottom float32) Camera {

	cam := Camera{
		Type:     Type_Orthographic,
		Pos:      *pos,
		Forward:  *forward,
		WorldUp:  *worldUp,
		Yaw:      -90 * gglm.Deg2Rad,
		NearClip: nearClip,
		FarClip:  farClip,
		Left:     left,
		Right:    right,
		Top:      top,
		Bottom:   bottom,
	}

	cam.Update()
	return cam
}
