package nsceneimgui

import (
	imgui "github.com/AllenDang/cimgui-go"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/materials"
	"github.com/bloeys/nscene/timing"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

type ImguiInfo struct {
	ImCtx imgui.Context

	Mat        *materials.Material
	VaoID      uint32
	VboID      uint32
	IndexBufID uint32
	TexID      uint32
}

func (i *ImguiInfo) FrameStart(winWidth, winHeight float32) {

	imIO := imgui.CurrentIO()
	imIO.SetDisplaySize(imgui.Vec2{X: winWidth, Y: winHeight})
	imIO.SetDeltaTime(timing.DT())

	imgui.NewFrame()
}

func (i *ImguiInfo) Render(winWidth, winHeight float32, fbWidth, fbHeight int32) {

	imgui.Render()

	// Avoid rendering when minimized, scale coordinates for retina displays (screen coordinates != framebuffer coordinates)
	if fbWidth <= 0 || fbHeight <= 0 || winWidth <= 0 || winHeight <= 0 {
		return
	}

	drawData := imgui.CurrentDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / winWidth,
		Y: float32(fbHeight) / winHeight,
	})

	// Setup render state: alpha-blending enabled, no face culling, no depth testing, scissor enabled, polygon fill
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	i.Mat.Bind()
	i.Mat.SetUnifInt32("Texture", 0)

	// Imgui space has the origin at the top left with y going down
	orthoMat := gglm.Ortho(0, winWidth, winHeight, 0, -1, 1).Mat4
	i.Mat.SetUnifMat4("ProjMtx", &orthoMat)
	gl.BindSampler(0, 0)

	gl.BindVertexArray(i.VaoID)
	gl.BindBuffer(gl.ARRAY_BUFFER, i.VboID)

	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	i.Mat.EnableAttribute("Position")
	i.Mat.EnableAttribute("UV")
	i.Mat.EnableAttribute("Color")
	gl.VertexAttribPointerWithOffset(uint32(i.Mat.GetAttribLoc("Position")), 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetPos))
	gl.VertexAttribPointerWithOffset(uint32(i.Mat.GetAttribLoc("UV")), 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetUv))
	gl.VertexAttribPointerWithOffset(uint32(i.Mat.GetAttribLoc("Color")), 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), uintptr(vertexOffsetCol))

	indexSize := imgui.IndexBufferLayout()
	drawType := gl.UNSIGNED_SHORT
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	gl.ActiveTexture(gl.TEXTURE0)
	for _, list := range drawData.CommandLists() {

		vertexBuffer, vertexBufferSize := list.GetVertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, i.VboID)
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)

		indexBuffer, indexBufferSize := list.GetIndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, i.IndexBufID)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		for _, cmd := range list.Commands() {

			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}

			gl.BindTexture(gl.TEXTURE_2D, i.TexID)
			clipRect := cmd.ClipRect()
			gl.Scissor(int32(clipRect.X), fbHeight-int32(clipRect.W), int32(clipRect.Z-clipRect.X), int32(clipRect.W-clipRect.Y))

			gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElemCount()), uint32(drawType), uintptr(int(cmd.IdxOffset())*indexSize), int32(cmd.VtxOffset()))
		}
	}

	// Restore the state the scene renders with
	gl.Disable(gl.SCISSOR_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.BindVertexArray(0)
}

func (i *ImguiInfo) Destroy() {
	gl.DeleteBuffers(1, &i.VboID)
	gl.DeleteBuffers(1, &i.IndexBufID)
	gl.DeleteVertexArrays(1, &i.VaoID)
	gl.DeleteTextures(1, &i.TexID)
	i.Mat.Delete()
	imgui.DestroyContext()
}

// NewImGui creates the imgui context and uploads the font atlas. OpenGL must be initialized first
func NewImGui(shaderPath string) (ImguiInfo, error) {

	if shaderPath == "" {
		shaderPath = "./res/shaders/imgui.glsl"
	}

	mat, err := materials.NewMaterial("ImGUI Mat", shaderPath)
	if err != nil {
		return ImguiInfo{}, errors.Wrap(err, "failed to create imgui material")
	}

	imguiInfo := ImguiInfo{
		ImCtx: imgui.CreateContext(),
		Mat:   &mat,
	}

	imIO := imgui.CurrentIO()
	imIO.SetBackendFlags(imIO.BackendFlags() | imgui.BackendFlagsRendererHasVtxOffset)

	gl.GenVertexArrays(1, &imguiInfo.VaoID)
	gl.GenBuffers(1, &imguiInfo.VboID)
	gl.GenBuffers(1, &imguiInfo.IndexBufID)
	gl.GenTextures(1, &imguiInfo.TexID)

	// Upload font atlas
	gl.BindTexture(gl.TEXTURE_2D, imguiInfo.TexID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	pixels, width, height, _ := imIO.Fonts().GetTextureDataAsRGBA32()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, pixels)

	imIO.Fonts().SetTexID(imgui.TextureID(uintptr(imguiInfo.TexID)))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return imguiInfo, nil
}
