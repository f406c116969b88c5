package assets

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImgToRGBA8PixelsFlipsRows(t *testing.T) {

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	pixels, w, h := ImgToRGBA8Pixels(img)

	require.Equal(t, int32(2), w)
	require.Equal(t, int32(2), h)
	require.Len(t, pixels, 16)

	// Bottom row of the image comes first
	assert.Equal(t, []byte{0, 0, 255, 255, 10, 20, 30, 40}, pixels[:8])
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 255, 0, 255}, pixels[8:])
}

func TestDecoderForPath(t *testing.T) {
	assert.NotNil(t, decoderForPath("sky/right.PNG"))
	assert.NotNil(t, decoderForPath("sky/right.jpg"))
}

func TestTextureCache(t *testing.T) {

	tex := Texture{Path: "./res/textures/rock.png", TexID: 77}
	AddTextureToCache(tex)

	got, ok := GetTextureFromCachePath("res/textures/rock.png")
	require.True(t, ok)
	assert.Equal(t, uint32(77), got.TexID)

	got, ok = GetTextureFromCacheID(77)
	require.True(t, ok)
	assert.Equal(t, tex.Path, got.Path)

	// Same path again is ignored
	AddTextureToCache(Texture{Path: "res/textures/rock.png", TexID: 78})
	_, ok = GetTextureFromCacheID(78)
	assert.False(t, ok)

	_, ok = GetTextureFromCachePath("missing.png")
	assert.False(t, ok)
}
