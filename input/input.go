// The input package tracks keyboard and mouse state per frame, like keys pressed or released
// this frame and mouse motion.
//
// Most queries have a plain form and a 'Captured' form. The plain form returns zero/false while
// the UI is capturing the respective device, so the scene doesn't react to typing in a UI textbox.
// The captured form always reports the real state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

type keyState struct {
	Key                 sdl.Keycode
	State               int
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseBtnState struct {
	Btn   int
	State int

	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseMotionState struct {
	XDelta int32
	YDelta int32
	XPos   int32
	YPos   int32
}

type mouseWheelState struct {
	XDelta int32
	YDelta int32
}

var (
	mouseWheel  = mouseWheelState{}
	mouseMotion = mouseMotionState{}
	mouseBtnMap = make(map[int]mouseBtnState)
	keyMap      = make(map[sdl.Keycode]keyState)

	isQuitRequested    bool
	isMouseCaptured    bool
	isKeyboardCaptured bool
)

// EventLoopStart resets per-frame state. Must be called once per frame before handling events
func EventLoopStart(mouseGotCaptured, keyboardGotCaptured bool) {

	isMouseCaptured = mouseGotCaptured
	isKeyboardCaptured = keyboardGotCaptured

	for k, v := range keyMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		keyMap[k] = v
	}

	for k, v := range mouseBtnMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		mouseBtnMap[k] = v
	}

	mouseMotion.XDelta = 0
	mouseMotion.YDelta = 0

	mouseWheel.XDelta = 0
	mouseWheel.YDelta = 0

	isQuitRequested = false
}

// ClearKeyboardState forgets held keys. Used when the UI takes the keyboard so keys held before that don't get stuck
func ClearKeyboardState() {
	clear(keyMap)
}

func ClearMouseState() {
	clear(mouseBtnMap)
	mouseMotion = mouseMotionState{}
	mouseWheel = mouseWheelState{}
}

func HandleQuitEvent(e *sdl.QuitEvent) {
	isQuitRequested = true
}

func IsMouseCaptured() bool {
	return isMouseCaptured
}

func IsKeyboardCaptured() bool {
	return isKeyboardCaptured
}

func IsQuitClicked() bool {
	return isQuitRequested
}

func HandleKeyboardEvent(e *sdl.KeyboardEvent) {

	ks, ok := keyMap[e.Keysym.Sym]
	if !ok {
		ks = keyState{Key: e.Keysym.Sym}
	}

	ks.State = int(e.State)
	ks.IsPressedThisFrame = e.State == sdl.PRESSED && e.Repeat == 0
	ks.IsReleasedThisFrame = e.State == sdl.RELEASED && e.Repeat == 0

	keyMap[ks.Key] = ks
}

func HandleMouseBtnEvent(e *sdl.MouseButtonEvent) {

	mb, ok := mouseBtnMap[int(e.Button)]
	if !ok {
		mb = mouseBtnState{Btn: int(e.Button)}
	}

	mb.State = int(e.State)
	mb.IsPressedThisFrame = e.State == sdl.PRESSED
	mb.IsReleasedThisFrame = e.State == sdl.RELEASED

	mouseBtnMap[int(e.Button)] = mb
}

func HandleMouseMotionEvent(e *sdl.MouseMotionEvent) {

	mouseMotion.XPos = e.X
	mouseMotion.YPos = e.Y

	// Several motion events can arrive in one frame
	mouseMotion.XDelta += e.XRel
	mouseMotion.YDelta += e.YRel
}

func HandleMouseWheelEvent(e *sdl.MouseWheelEvent) {
	mouseWheel.XDelta = e.X
	mouseWheel.YDelta = e.Y
}

// GetMousePos returns the window coordinates of the mouse regardless of whether the mouse is captured or not
func GetMousePos() (x, y int32) {
	return mouseMotion.XPos, mouseMotion.YPos
}

// GetMouseMotion returns how many pixels were moved last frame
func GetMouseMotion() (xDelta, yDelta int32) {

	if isMouseCaptured {
		return 0, 0
	}

	return GetMouseMotionCaptured()
}

func GetMouseMotionCaptured() (xDelta, yDelta int32) {
	return mouseMotion.XDelta, mouseMotion.YDelta
}

// GetMouseWheelYNorm returns 1 if mouse wheel yDelta > 0, -1 if yDelta < 0, and 0 otherwise
func GetMouseWheelYNorm() int32 {

	if isMouseCaptured {
		return 0
	}

	if mouseWheel.YDelta > 0 {
		return 1
	} else if mouseWheel.YDelta < 0 {
		return -1
	}

	return 0
}

func KeyClicked(kc sdl.Keycode) bool {

	if isKeyboardCaptured {
		return false
	}

	return KeyClickedCaptured(kc)
}

func KeyClickedCaptured(kc sdl.Keycode) bool {

	ks, ok := keyMap[kc]
	if !ok {
		return false
	}

	return ks.IsPressedThisFrame
}

func KeyDown(kc sdl.Keycode) bool {

	if isKeyboardCaptured {
		return false
	}

	return KeyDownCaptured(kc)
}

func KeyDownCaptured(kc sdl.Keycode) bool {

	ks, ok := keyMap[kc]
	if !ok {
		return false
	}

	return ks.State == sdl.PRESSED
}

// KeyAxis returns -1 when only neg is down, 1 when only pos is down, and 0 otherwise
func KeyAxis(neg, pos sdl.Keycode) float32 {

	axis := float32(0)
	if KeyDown(neg) {
		axis--
	}

	if KeyDown(pos) {
		axis++
	}

	return axis
}

func MouseClicked(mb int) bool {

	if isMouseCaptured {
		return false
	}

	btn, ok := mouseBtnMap[mb]
	if !ok {
		return false
	}

	return btn.IsPressedThisFrame
}

func MouseDown(mb int) bool {

	if isMouseCaptured {
		return false
	}

	return MouseDownCaptured(mb)
}

func MouseDownCaptured(mb int) bool {

	btn, ok := mouseBtnMap[mb]
	if !ok {
		return false
	}

	return btn.State == sdl.PRESSED
}
