package engine

import (
	"github.com/bloeys/nscene/input"
	"github.com/bloeys/nscene/timing"
	nsceneimgui "github.com/bloeys/nscene/ui/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	isRunning = false
)

// Game is driven by Run. Each frame does: input, ui frame start, Update, Render, renderer frame end, ui render, swap, FrameEnd
type Game interface {
	Init()

	Update()
	Render()
	FrameEnd()

	DeInit()
}

// Run blocks running the frame loop until Quit is called or the window is closed
func Run(g Game, w *Window, ui *nsceneimgui.ImguiInfo) {

	isRunning = true

	// Simulate an imgui frame during init so imgui calls are allowed in Init
	width, height := w.SDLWin.GetSize()
	fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
	ui.FrameStart(float32(width), float32(height))
	g.Init()
	ui.Render(float32(width), float32(height), fbWidth, fbHeight)

	for isRunning {

		width, height = w.SDLWin.GetSize()
		fbWidth, fbHeight = w.SDLWin.GLGetDrawableSize()

		timing.FrameStarted()
		w.handleInputs()
		if input.IsQuitClicked() {
			Quit()
		}

		ui.FrameStart(float32(width), float32(height))

		g.Update()

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		g.Render()
		w.Rend.FrameEnd()

		ui.Render(float32(width), float32(height), fbWidth, fbHeight)
		w.SDLWin.GLSwap()

		g.FrameEnd()
		timing.FrameEnded()
	}

	g.DeInit()
}

func Quit() {
	isRunning = false
}
