package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func keyEvent(key sdl.Keycode, state uint8) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{
		State:  state,
		Keysym: sdl.Keysym{Sym: key},
	}
}

func TestKeyPressedOnlyForOneFrame(t *testing.T) {

	ClearKeyboardState()
	EventLoopStart(false, false)

	HandleKeyboardEvent(keyEvent(sdl.K_w, sdl.PRESSED))
	assert.True(t, KeyClicked(sdl.K_w))
	assert.True(t, KeyDown(sdl.K_w))

	EventLoopStart(false, false)
	assert.False(t, KeyClicked(sdl.K_w))
	assert.True(t, KeyDown(sdl.K_w))

	HandleKeyboardEvent(keyEvent(sdl.K_w, sdl.RELEASED))
	assert.False(t, KeyDown(sdl.K_w))
}

func TestKeyboardCaptured(t *testing.T) {

	ClearKeyboardState()
	EventLoopStart(false, true)

	HandleKeyboardEvent(keyEvent(sdl.K_a, sdl.PRESSED))
	assert.False(t, KeyDown(sdl.K_a))
	assert.False(t, KeyClicked(sdl.K_a))
	assert.True(t, KeyDownCaptured(sdl.K_a))
	assert.True(t, KeyClickedCaptured(sdl.K_a))
}

func TestKeyAxis(t *testing.T) {

	ClearKeyboardState()
	EventLoopStart(false, false)
	assert.Equal(t, float32(0), KeyAxis(sdl.K_s, sdl.K_w))

	HandleKeyboardEvent(keyEvent(sdl.K_w, sdl.PRESSED))
	assert.Equal(t, float32(1), KeyAxis(sdl.K_s, sdl.K_w))

	HandleKeyboardEvent(keyEvent(sdl.K_s, sdl.PRESSED))
	assert.Equal(t, float32(0), KeyAxis(sdl.K_s, sdl.K_w))

	HandleKeyboardEvent(keyEvent(sdl.K_w, sdl.RELEASED))
	assert.Equal(t, float32(-1), KeyAxis(sdl.K_s, sdl.K_w))
}

func TestMouseMotionAccumulatesPerFrame(t *testing.T) {

	ClearMouseState()
	EventLoopStart(false, false)

	HandleMouseMotionEvent(&sdl.MouseMotionEvent{X: 10, Y: 20, XRel: 2, YRel: -1})
	HandleMouseMotionEvent(&sdl.MouseMotionEvent{X: 13, Y: 18, XRel: 3, YRel: -2})

	x, y := GetMouseMotion()
	assert.Equal(t, int32(5), x)
	assert.Equal(t, int32(-3), y)

	px, py := GetMousePos()
	assert.Equal(t, int32(13), px)
	assert.Equal(t, int32(18), py)

	EventLoopStart(true, false)
	x, y = GetMouseMotion()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestMouseButtonsAndWheel(t *testing.T) {

	ClearMouseState()
	EventLoopStart(false, false)

	HandleMouseBtnEvent(&sdl.MouseButtonEvent{Button: sdl.BUTTON_RIGHT, State: sdl.PRESSED})
	HandleMouseWheelEvent(&sdl.MouseWheelEvent{Y: -3})

	assert.True(t, MouseClicked(sdl.BUTTON_RIGHT))
	assert.True(t, MouseDown(sdl.BUTTON_RIGHT))
	assert.Equal(t, int32(-1), GetMouseWheelYNorm())

	EventLoopStart(true, false)
	assert.False(t, MouseDown(sdl.BUTTON_RIGHT))
	assert.True(t, MouseDownCaptured(sdl.BUTTON_RIGHT))
	assert.Equal(t, int32(0), GetMouseWheelYNorm())
}

func TestQuit(t *testing.T) {

	EventLoopStart(false, false)
	assert.False(t, IsQuitClicked())

	HandleQuitEvent(&sdl.QuitEvent{})
	assert.True(t, IsQuitClicked())

	EventLoopStart(false, false)
	assert.False(t, IsQuitClicked())
}
