package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloeys/nscene/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/mandykoh/prism"
	"github.com/pkg/errors"
)

// Worker count used when converting decoded images to NRGBA
const imgConvertParallelism = 4

type Texture struct {
	// Path only exists for textures loaded from disk
	Path string

	TexID uint32

	Width  int32
	Height int32

	// Pixels in RGBA8 format, flipped so the first row is the bottom of the image. Only kept when KeepPixelsInMem is set
	Pixels []byte
}

type TextureLoadOptions struct {
	TryLoadFromCache bool
	WriteToCache     bool
	GenMipMaps       bool
	KeepPixelsInMem  bool
	// NoSrgba loads the texture as linear RGBA instead of sRGB. Normal maps and other data textures want this
	NoSrgba bool
}

type Cubemap struct {
	// These only exists for textures loaded from disk
	RightPath  string
	LeftPath   string
	TopPath    string
	BottomPath string
	FrontPath  string
	BackPath   string

	TexID uint32
}

// Default textures bound to material slots that have nothing set. Created by CreateDefaultTextures
var (
	DefaultDiffuseTexId  Texture
	DefaultSpecularTexId Texture
	DefaultNormalTexId   Texture
	DefaultEmissionTexId Texture
)

type decodeFunc func(r io.Reader) (image.Image, error)

func LoadTexturePNG(file string, loadOptions *TextureLoadOptions) (Texture, error) {
	return loadTexture(file, png.Decode, loadOptions)
}

func LoadTextureJPG(file string, loadOptions *TextureLoadOptions) (Texture, error) {
	return loadTexture(file, jpeg.Decode, loadOptions)
}

// LoadTexture picks the decoder from the file extension, png or jpeg
func LoadTexture(file string, loadOptions *TextureLoadOptions) (Texture, error) {
	return loadTexture(file, decoderForPath(file), loadOptions)
}

func loadTexture(file string, decode decodeFunc, loadOptions *TextureLoadOptions) (Texture, error) {

	if loadOptions == nil {
		loadOptions = &TextureLoadOptions{}
	}

	if loadOptions.TryLoadFromCache {
		if tex, ok := GetTextureFromCachePath(file); ok {
			return tex, nil
		}
	}

	img, err := decodeFile(file, decode)
	if err != nil {
		return Texture{}, err
	}

	tex := Texture{Path: file}
	tex.Pixels, tex.Width, tex.Height = ImgToRGBA8Pixels(img)

	uploadTexture2D(&tex, loadOptions)

	if !loadOptions.KeepPixelsInMem {
		tex.Pixels = nil
	}

	if loadOptions.WriteToCache {
		AddTextureToCache(tex)
	}

	return tex, nil
}

func decodeFile(file string, decode decodeFunc) (image.Image, error) {

	fileBytes, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read texture '%s'", file)
	}

	img, err := decode(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode texture '%s'", file)
	}

	return img, nil
}

// ImgToRGBA8Pixels converts any image to tightly packed RGBA8 pixels, flipped vertically as OpenGL expects
func ImgToRGBA8Pixels(img image.Image) (pixels []byte, width, height int32) {

	nrgbaImg := prism.ConvertImageToNRGBA(img, imgConvertParallelism)

	w := nrgbaImg.Bounds().Dx()
	h := nrgbaImg.Bounds().Dy()
	rowSize := w * 4

	pixels = make([]byte, rowSize*h)
	for y := 0; y < h; y++ {
		srcStart := y * nrgbaImg.Stride
		dstStart := (h - 1 - y) * rowSize
		copy(pixels[dstStart:dstStart+rowSize], nrgbaImg.Pix[srcStart:srcStart+rowSize])
	}

	return pixels, int32(w), int32(h)
}

func uploadTexture2D(tex *Texture, loadOptions *TextureLoadOptions) {

	gl.GenTextures(1, &tex.TexID)
	gl.BindTexture(gl.TEXTURE_2D, tex.TexID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	if loadOptions.GenMipMaps {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}

	internalFormat := int32(gl.SRGB_ALPHA)
	if loadOptions.NoSrgba {
		internalFormat = gl.RGBA8
	}

	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, tex.Width, tex.Height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&tex.Pixels[0]))

	if loadOptions.GenMipMaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// LoadCubemapTextures loads the six faces of a cubemap. Each face may be a png or a jpg
func LoadCubemapTextures(rightTex, leftTex, topTex, botTex, frontTex, backTex string, loadOptions *TextureLoadOptions) (Cubemap, error) {

	if loadOptions == nil {
		loadOptions = &TextureLoadOptions{}
	}

	cmap := Cubemap{
		RightPath:  rightTex,
		LeftPath:   leftTex,
		TopPath:    topTex,
		BottomPath: botTex,
		FrontPath:  frontTex,
		BackPath:   backTex,
	}

	internalFormat := int32(gl.SRGB_ALPHA)
	if loadOptions.NoSrgba {
		internalFormat = gl.RGBA8
	}

	gl.GenTextures(1, &cmap.TexID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, cmap.TexID)

	// Order matches the GL face enums starting at TEXTURE_CUBE_MAP_POSITIVE_X
	faces := [...]string{rightTex, leftTex, topTex, botTex, frontTex, backTex}
	for i, face := range faces {

		img, err := decodeFile(face, decoderForPath(face))
		if err != nil {
			gl.DeleteTextures(1, &cmap.TexID)
			return Cubemap{}, errors.Wrapf(err, "failed to load cubemap face %d", i)
		}

		// Cubemap faces are not flipped
		nrgbaImg := prism.ConvertImageToNRGBA(img, imgConvertParallelism)
		w := int32(nrgbaImg.Bounds().Dx())
		h := int32(nrgbaImg.Bounds().Dy())

		gl.TexImage2D(uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+i), 0, internalFormat, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&nrgbaImg.Pix[0]))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	return cmap, nil
}

func decoderForPath(file string) decodeFunc {

	if strings.EqualFold(filepath.Ext(file), ".png") {
		return png.Decode
	}

	return jpeg.Decode
}

// NewSolidColorTexture creates a 1x1 texture of the given color
func NewSolidColorTexture(c color.NRGBA, loadOptions *TextureLoadOptions) Texture {

	if loadOptions == nil {
		loadOptions = &TextureLoadOptions{}
	}

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c)

	tex := Texture{}
	tex.Pixels, tex.Width, tex.Height = ImgToRGBA8Pixels(img)
	uploadTexture2D(&tex, loadOptions)

	if !loadOptions.KeepPixelsInMem {
		tex.Pixels = nil
	}

	return tex
}

// CreateDefaultTextures creates the textures materials use for unset slots.
// Must be called after OpenGL is initialized and before any material is created.
func CreateDefaultTextures() {

	DefaultDiffuseTexId = NewSolidColorTexture(color.NRGBA{R: 255, G: 255, B: 255, A: 255}, nil)
	DefaultSpecularTexId = NewSolidColorTexture(color.NRGBA{R: 0, G: 0, B: 0, A: 255}, nil)

	// Flat normal pointing out of the surface in tangent space
	DefaultNormalTexId = NewSolidColorTexture(color.NRGBA{R: 128, G: 128, B: 255, A: 255}, &TextureLoadOptions{NoSrgba: true})
	DefaultEmissionTexId = NewSolidColorTexture(color.NRGBA{R: 0, G: 0, B: 0, A: 255}, nil)

	logging.InfoLog.Println("Created default textures")
}
