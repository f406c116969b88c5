package nsceneimgui

import (
	"testing"

	imgui "github.com/AllenDang/cimgui-go"
	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestSdlScancodeToImGuiKey(t *testing.T) {
	assert.Equal(t, imgui.KeyA, SdlScancodeToImGuiKey(sdl.SCANCODE_A))
	assert.Equal(t, imgui.KeyEscape, SdlScancodeToImGuiKey(sdl.SCANCODE_ESCAPE))
	assert.Equal(t, imgui.Key9, SdlScancodeToImGuiKey(sdl.SCANCODE_9))
	assert.Equal(t, imgui.KeyNone, SdlScancodeToImGuiKey(sdl.SCANCODE_F24))
}
