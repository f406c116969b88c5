package engine

import "github.com/veandco/go-sdl2/sdl"

type WindowFlags int

const (
	WindowFlags_FULLSCREEN         WindowFlags = sdl.WINDOW_FULLSCREEN
	WindowFlags_OPENGL             WindowFlags = sdl.WINDOW_OPENGL
	WindowFlags_SHOWN              WindowFlags = sdl.WINDOW_SHOWN
	WindowFlags_HIDDEN             WindowFlags = sdl.WINDOW_HIDDEN
	WindowFlags_BORDERLESS         WindowFlags = sdl.WINDOW_BORDERLESS
	WindowFlags_RESIZABLE          WindowFlags = sdl.WINDOW_RESIZABLE
	WindowFlags_MINIMIZED          WindowFlags = sdl.WINDOW_MINIMIZED
	WindowFlags_MAXIMIZED          WindowFlags = sdl.WINDOW_MAXIMIZED
	WindowFlags_INPUT_GRABBED      WindowFlags = sdl.WINDOW_INPUT_GRABBED
	WindowFlags_FULLSCREEN_DESKTOP WindowFlags = sdl.WINDOW_FULLSCREEN_DESKTOP
	WindowFlags_ALLOW_HIGHDPI      WindowFlags = sdl.WINDOW_ALLOW_HIGHDPI
)
