package camera

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

const eps = 1e-4

func newTestCam() Camera {
	pos := gglm.NewVec3(0, 0, 10)
	forward := gglm.NewVec3(0, 0, -1)
	up := gglm.NewVec3(0, 1, 0)
	return NewPerspective(&pos, &forward, &up, 0.1, 100, 45*gglm.Deg2Rad, 16.0/9.0)
}

func TestForwardFromAngles(t *testing.T) {

	f := ForwardFromAngles(0, -90*gglm.Deg2Rad)
	assert.InDelta(t, 0, f.X(), eps)
	assert.InDelta(t, 0, f.Y(), eps)
	assert.InDelta(t, -1, f.Z(), eps)

	f = ForwardFromAngles(0, 0)
	assert.InDelta(t, 1, f.X(), eps)
	assert.InDelta(t, 0, f.Z(), eps)
}

func TestUpdateRotationClampsPitch(t *testing.T) {

	cam := newTestCam()
	cam.UpdateRotation(5, cam.Yaw)
	require.InDelta(t, MaxPitchRad, cam.Pitch, eps)

	cam.UpdateRotation(-5, cam.Yaw)
	require.InDelta(t, -MaxPitchRad, cam.Pitch, eps)
	require.Less(t, cam.Forward.Y(), float32(0))
}

func TestZoomClampsFov(t *testing.T) {

	cam := newTestCam()

	cam.Zoom(-100)
	require.InDelta(t, MaxFovRad, cam.Fov, eps)

	cam.Zoom(100)
	require.InDelta(t, MinFovRad, cam.Fov, eps)

	cam.Zoom(-5 * gglm.Deg2Rad)
	require.InDelta(t, 6*gglm.Deg2Rad, cam.Fov, eps)
}

func TestMoveFly(t *testing.T) {

	cam := newTestCam()

	cam.MoveFly(MoveDir_Forward, 2)
	require.InDelta(t, 8, cam.Pos.Z(), eps)

	cam.MoveFly(MoveDir_Right, 3)
	require.InDelta(t, 3, cam.Pos.X(), eps)

	cam.MoveFly(MoveDir_Up, 1)
	require.InDelta(t, 1, cam.Pos.Y(), eps)
}

func TestViewMatMovesCamToOrigin(t *testing.T) {

	cam := newTestCam()

	// The camera position maps to the view space origin
	v := cam.ViewMat
	p := cam.Pos
	x := v.Data[0][0]*p.X() + v.Data[1][0]*p.Y() + v.Data[2][0]*p.Z() + v.Data[3][0]
	y := v.Data[0][1]*p.X() + v.Data[1][1]*p.Y() + v.Data[2][1]*p.Z() + v.Data[3][1]
	z := v.Data[0][2]*p.X() + v.Data[1][2]*p.Y() + v.Data[2][2]*p.Z() + v.Data[3][2]
	require.InDelta(t, 0, x, eps)
	require.InDelta(t, 0, y, eps)
	require.InDelta(t, 0, z, eps)
}

func TestTransitionReachesMovingTarget(t *testing.T) {

	from := Pose{Pos: gglm.NewVec3(0, 0, 0), Yaw: 0}
	to := Pose{Pos: gglm.NewVec3(10, 0, 0), Yaw: 1}

	tr := NewTransition(&from, 1, ease.Linear)

	mid := tr.Update(0.5, &to)
	require.False(t, tr.Done)
	require.InDelta(t, 5, mid.Pos.X(), eps)
	require.InDelta(t, 0.5, mid.Yaw, eps)

	// Target moved since the last update
	to.Pos = gglm.NewVec3(20, 0, 0)
	end := tr.Update(0.6, &to)
	require.True(t, tr.Done)
	require.Equal(t, to, end)

	require.Equal(t, to, tr.Update(1, &to))
}

func TestSetPose(t *testing.T) {

	cam := newTestCam()
	p := Pose{Pos: gglm.NewVec3(1, 2, 3), Pitch: 0.2, Yaw: 0.3}
	cam.SetPose(&p)

	got := cam.Pose()
	require.Equal(t, p.Pos, got.Pos)
	require.InDelta(t, 0.2, got.Pitch, eps)
	require.InDelta(t, 0.3, got.Yaw, eps)
}
