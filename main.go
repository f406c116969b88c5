package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"

	imgui "github.com/AllenDang/cimgui-go"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/assets"
	"github.com/bloeys/nscene/camera"
	"github.com/bloeys/nscene/config"
	"github.com/bloeys/nscene/engine"
	"github.com/bloeys/nscene/input"
	"github.com/bloeys/nscene/lights"
	"github.com/bloeys/nscene/logging"
	"github.com/bloeys/nscene/materials"
	"github.com/bloeys/nscene/meshes"
	"github.com/bloeys/nscene/renderer"
	"github.com/bloeys/nscene/renderer/rend3dgl"
	"github.com/bloeys/nscene/scene"
	"github.com/bloeys/nscene/sim"
	"github.com/bloeys/nscene/timing"
	nsceneimgui "github.com/bloeys/nscene/ui/imgui"
	"github.com/veandco/go-sdl2/sdl"
)

/*
@TODO:
	- Frustum culling of instanced batches
	- Re-upload instance data when a batch node moves instead of treating batches as static
	- Shadows for the excavator
*/

const (
	CONFIG_PATH = "./res/config.yaml"

	PROFILE_CPU = false
	PROFILE_MEM = false

	FRAME_TIME_MS_SAMPLES = 1000

	MARKER_ARROW_LENGTH = 2
	POINT_MARKER_SCALE  = 0.25

	ZOOM_STEP_RAD = 1 * gglm.Deg2Rad
)

var (
	frameTimesMsIndex int       = 0
	frameTimesMs      []float32 = make([]float32, 0, FRAME_TIME_MS_SAMPLES)

	identityMat = scene.NewIdentity()

	dirMarkerPos = gglm.NewVec3(0, 20, 0)

	litMat       materials.Material
	groundMat    materials.Material
	instancedMat materials.Material
	markerMat    materials.Material
	skyboxMat    materials.Material

	bodyMesh   meshes.Mesh
	cabinMesh  meshes.Mesh
	armMesh    meshes.Mesh
	groundMesh meshes.Mesh
	rockMesh   meshes.Mesh
	sphereMesh meshes.Mesh
	skyboxMesh meshes.Mesh

	// Arrows are rebuilt when their light direction changes
	dirArrowMesh    meshes.Mesh
	spotArrowMeshes []meshes.Mesh

	skyboxCmap   assets.Cubemap
	hasSkybox    = false
	renderSkybox = true
)

// shaderReload is a material that can be recompiled at runtime along with the uniforms it needs afterwards
type shaderReload struct {
	Mat        *materials.Material
	ShaderPath string
	Setup      func(mat *materials.Material)
}

type Game struct {
	WinWidth  int32
	WinHeight int32
	Win       *engine.Window
	Rend      *rend3dgl.Rend3DGL
	ImGUIInfo nsceneimgui.ImguiInfo

	Cfg        config.Config
	CfgWatcher *config.Watcher

	Cam    camera.Camera
	Lights lights.Set

	FrameCtx sim.FrameCtx

	Graph        *scene.Graph
	Root         scene.NodeId
	Ground       scene.NodeId
	MarkersRoot  scene.NodeId
	DirMarker    scene.NodeId
	PointMarkers []scene.NodeId
	SpotMarkers  []scene.NodeId
	Excavator    *sim.Excavator

	Rocks     *scene.InstanceBatch
	RocksMesh *renderer.InstancedMesh

	// World transforms recomputed by the last graph evaluation
	Recomputed int

	lightsDirty   bool
	shaderReloads []shaderReload

	cachedCamPose camera.Pose
	camTransition *camera.Transition
}

func main() {

	cfg, err := config.Load(CONFIG_PATH)
	if err != nil {
		logging.WarnLog.Printf("Using the default config. Err: %s\n", err.Error())
		cfg = config.Default()
	}

	//Init engine
	err = engine.Init()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init nScene. Err:", err)
	}

	//Create window
	dpiScaling := getDpiScaling(cfg.Window.Width, cfg.Window.Height)
	winWidth := int32(float32(cfg.Window.Width) * dpiScaling)
	winHeight := int32(float32(cfg.Window.Height) * dpiScaling)

	rend := rend3dgl.NewRend3DGL()
	window, err := engine.CreateOpenGLWindowCentered(cfg.Window.Title, winWidth, winHeight, engine.WindowFlags_RESIZABLE|engine.WindowFlags_ALLOW_HIGHDPI, rend)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err: ", err)
	}
	defer window.Destroy()

	engine.SetMSAA(cfg.Window.MSAA)
	engine.SetVSync(cfg.Window.VSync)
	engine.SetSrgbFramebuffer(true)

	imguiInfo, err := nsceneimgui.NewImGui(filepath.Join(cfg.Assets.ShadersDir, "imgui.glsl"))
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init imgui. Err: ", err)
	}

	game := &Game{
		Win:       window,
		WinWidth:  winWidth,
		WinHeight: winHeight,
		Rend:      rend,
		ImGUIInfo: imguiInfo,
		Cfg:       cfg,
		Lights:    cfg.Lights.LightSet(),
		FrameCtx: sim.FrameCtx{
			DirLightOn:    true,
			PointLightsOn: true,
			SpotLightsOn:  true,
		},
	}
	window.EventCallbacks = append(window.EventCallbacks, game.handleWindowEvents)

	game.CfgWatcher, err = config.NewWatcher(CONFIG_PATH)
	if err != nil {
		logging.WarnLog.Printf("Config hot reload is disabled. Err: %s\n", err.Error())
	}

	if PROFILE_CPU {

		pf, err := os.Create("cpu.pprof")
		if err == nil {
			defer pf.Close()
			pprof.StartCPUProfile(pf)
		} else {
			logging.ErrLog.Printf("Creating cpu.pprof file failed. CPU profiling will not run. Err=%v\n", err)
		}
	}

	engine.Run(game, window, &game.ImGUIInfo)

	if PROFILE_CPU {
		pprof.StopCPUProfile()
	}

	if PROFILE_MEM {

		heapProfile, err := os.Create("heap.pprof")
		if err == nil {

			err = pprof.WriteHeapProfile(heapProfile)
			if err != nil {
				logging.ErrLog.Printf("Writing heap profile to heap.pprof failed. Err=%v\n", err)
			}

			heapProfile.Close()

		} else {
			logging.ErrLog.Printf("Creating heap.pprof file failed. Err=%v\n", err)
		}
	}
}

func (g *Game) handleWindowEvents(e sdl.Event) {

	switch e := e.(type) {
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {

			g.WinWidth = e.Data1
			g.WinHeight = e.Data2

			g.Cam.AspectRatio = g.Win.AspectRatio()
			g.Cam.Update()
		}
	}
}

func getDpiScaling(unscaledWindowWidth, unscaledWindowHeight int32) float32 {

	// The no-scaling DPI on different platforms (e.g. when scale=100% on windows)
	var defaultDpi float32 = 96
	if runtime.GOOS == "darwin" {
		defaultDpi = 72
	}

	_, dpiHorizontal, _, err := sdl.GetDisplayDPI(0)
	if err != nil {
		dpiHorizontal = defaultDpi
		logging.ErrLog.Printf("Failed to get DPI with error '%s'. Using default DPI of '%f'\n", err.Error(), defaultDpi)
	}

	// Will be 1.25 for 125% scaling on windows
	dpiScaling := dpiHorizontal / defaultDpi

	logging.InfoLog.Printf(
		"DPI scaling=%f. Window size (width, height): unscaled=(%d, %d) scaled=(%d, %d)\n",
		dpiScaling,
		unscaledWindowWidth, unscaledWindowHeight,
		int32(float32(unscaledWindowWidth)*dpiScaling), int32(float32(unscaledWindowHeight)*dpiScaling),
	)

	return dpiScaling
}

func (g *Game) Init() {

	g.initCamera()
	g.loadMeshes()
	g.loadMaterials()
	g.buildScene()

	g.lightsDirty = true
	g.updateLights()

	// Markers were moved by the light update
	g.Recomputed = g.Graph.Evaluate(g.Root, &identityMat, false)
}

func (g *Game) initCamera() {

	var pitch float32 = -35 * gglm.Deg2Rad
	var yaw float32 = -90 * gglm.Deg2Rad

	camPos := g.Cfg.Camera.Pos.ToGglm()
	camForward := camera.ForwardFromAngles(pitch, yaw)
	camWorldUp := gglm.NewVec3(0, 1, 0)
	g.Cam = camera.NewPerspective(
		&camPos,
		&camForward,
		&camWorldUp,
		g.Cfg.Camera.Near, g.Cfg.Camera.Far,
		gglm.Clamp(g.Cfg.Camera.FovDeg*gglm.Deg2Rad, camera.MinFovRad, camera.MaxFovRad),
		g.Win.AspectRatio(),
	)
	g.Cam.UpdateRotation(pitch, yaw)
}

func loadMesh(name, path string) (meshes.Mesh, error) {

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return meshes.NewMeshGltf(name, path)
	default:
		return meshes.NewMesh(name, path, 0)
	}
}

func newArrowMesh(name string, dir *gglm.Vec3) meshes.Mesh {

	arrowDir := *dir
	if arrowDir.X() == 0 && arrowDir.Y() == 0 && arrowDir.Z() == 0 {
		arrowDir = gglm.NewVec3(0, -1, 0)
	}

	arrowData := meshes.NewArrowData(&arrowDir, MARKER_ARROW_LENGTH)
	return meshes.NewMeshFromData(name, &arrowData)
}

func rebuildArrowMesh(mesh *meshes.Mesh, dir *gglm.Vec3) {
	name := mesh.Name
	mesh.Delete()
	*mesh = newArrowMesh(name, dir)
}

func (g *Game) loadMeshes() {

	a := &g.Cfg.Assets
	toLoad := []struct {
		Mesh *meshes.Mesh
		Name string
		Path string
	}{
		{&bodyMesh, "Excavator Body", a.ExcavatorBodyModel},
		{&cabinMesh, "Excavator Cabin", a.ExcavatorCabinModel},
		{&armMesh, "Excavator Arm", a.ExcavatorArmModel},
		{&groundMesh, "Ground", a.GroundModel},
		{&rockMesh, "Rock", a.RockModel},
	}

	var err error
	for i := 0; i < len(toLoad); i++ {
		*toLoad[i].Mesh, err = loadMesh(toLoad[i].Name, toLoad[i].Path)
		if err != nil {
			logging.ErrLog.Fatalln("Failed to load mesh. Err: ", err)
		}
	}

	sphereData := meshes.NewSphereData()
	sphereMesh = meshes.NewMeshFromData("Light Sphere", &sphereData)

	skyboxData := meshes.NewSkyboxCubeData()
	skyboxMesh = meshes.NewMeshFromData("Skybox", &skyboxData)

	dirArrowMesh = newArrowMesh("Dir Light Arrow", &g.Lights.Dir.Dir)

	spotArrowMeshes = make([]meshes.Mesh, len(g.Lights.Spots))
	for i := 0; i < len(g.Lights.Spots); i++ {
		spotArrowMeshes[i] = newArrowMesh("Spot Light Arrow "+strconv.Itoa(i), &g.Lights.Spots[i].Dir)
	}
}

func setLitMatUniforms(mat *materials.Material) {
	mat.SetUnifInt32("material.diffuse", int32(materials.TextureSlot_Diffuse))
	mat.SetUnifInt32("material.specular", int32(materials.TextureSlot_Specular))
	mat.SetUnifInt32("material.emission", int32(materials.TextureSlot_Emission))
	mat.SetUnifFloat32("material.shininess", mat.Shininess)
}

func setSkyboxMatUniforms(mat *materials.Material) {
	mat.SetUnifInt32("skybox", int32(materials.TextureSlot_Cubemap))
}

func mustNewMaterial(name, shaderPath string) materials.Material {

	mat, err := materials.NewMaterial(name, shaderPath)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create material. Err: ", err)
	}

	return mat
}

func (g *Game) loadMaterials() {

	litShaderPath := filepath.Join(g.Cfg.Assets.ShadersDir, "lit.glsl")
	instancedShaderPath := filepath.Join(g.Cfg.Assets.ShadersDir, "instanced.glsl")
	markerShaderPath := filepath.Join(g.Cfg.Assets.ShadersDir, "marker.glsl")
	skyboxShaderPath := filepath.Join(g.Cfg.Assets.ShadersDir, "skybox.glsl")

	litMat = mustNewMaterial("Lit mat", litShaderPath)
	litMat.Settings.Set(materials.MaterialSettings_HasModelMtx)
	setLitMatUniforms(&litMat)

	groundMat = mustNewMaterial("Ground mat", litShaderPath)
	groundMat.Settings.Set(materials.MaterialSettings_HasModelMtx)
	groundMat.Shininess = 8
	setLitMatUniforms(&groundMat)

	if g.Cfg.Assets.GroundDiffuseTex != "" {

		groundTex, err := assets.LoadTexture(g.Cfg.Assets.GroundDiffuseTex, &assets.TextureLoadOptions{TryLoadFromCache: true, WriteToCache: true, GenMipMaps: true})
		if err != nil {
			logging.WarnLog.Printf("Ground will be untextured. Err: %s\n", err.Error())
		} else {
			groundMat.DiffuseTex = groundTex.TexID
		}
	}

	// Model matrices come from the instance buffer
	instancedMat = mustNewMaterial("Instanced mat", instancedShaderPath)
	setLitMatUniforms(&instancedMat)

	markerMat = mustNewMaterial("Marker mat", markerShaderPath)
	markerMat.Settings.Set(materials.MaterialSettings_HasModelMtx)

	skyboxMat = mustNewMaterial("Skybox mat", skyboxShaderPath)
	setSkyboxMatUniforms(&skyboxMat)

	if faces := g.Cfg.Assets.SkyboxFaces; len(faces) == 6 {

		var err error
		skyboxCmap, err = assets.LoadCubemapTextures(faces[0], faces[1], faces[2], faces[3], faces[4], faces[5], &assets.TextureLoadOptions{})
		if err != nil {
			logging.WarnLog.Printf("Skybox disabled. Err: %s\n", err.Error())
		} else {
			skyboxMat.CubemapTex = skyboxCmap.TexID
			hasSkybox = true
		}
	}

	g.shaderReloads = []shaderReload{
		{Mat: &litMat, ShaderPath: litShaderPath, Setup: setLitMatUniforms},
		{Mat: &groundMat, ShaderPath: litShaderPath, Setup: setLitMatUniforms},
		{Mat: &instancedMat, ShaderPath: instancedShaderPath, Setup: setLitMatUniforms},
		{Mat: &markerMat, ShaderPath: markerShaderPath},
		{Mat: &skyboxMat, ShaderPath: skyboxShaderPath, Setup: setSkyboxMatUniforms},
	}
}

// buildScene creates the graph:
//
//	root
//	├── ground
//	├── excavator body ── cabin ── arm
//	├── field ── rows*cols rocks (instanced, no drawables)
//	└── light markers ── dir arrow, point spheres, spot arrows
func (g *Game) buildScene() {

	cfg := &g.Cfg
	rockCount := cfg.Field.Rows * cfg.Field.Cols

	g.Graph = scene.NewGraph(rockCount + 16)
	g.Root = g.Graph.NewNode("root", nil)

	// Ground covers the rock field
	groundSize := float32(max(cfg.Field.Rows, cfg.Field.Cols))*cfg.Field.Spacing*0.5 + cfg.Field.Spacing
	groundScale := scene.NewScale(groundSize, 1, groundSize)
	g.Ground = g.Graph.NewNode("ground", renderer.NewMeshDrawable(&groundMesh, g.Rend))
	g.Graph.SetTransform(g.Ground, &groundScale)
	g.Graph.AddChild(g.Root, g.Ground)

	g.Excavator = sim.NewExcavator(
		g.Graph,
		g.Root,
		&cfg.Excavator,
		renderer.NewModel("excavator-body", g.Rend, &bodyMesh),
		renderer.NewMeshDrawable(&cabinMesh, g.Rend),
		renderer.NewMeshDrawable(&armMesh, g.Rend),
	)

	fieldRoot := g.Graph.NewNode("field", nil)
	g.Graph.AddChild(g.Root, fieldRoot)
	g.Rocks = scene.NewInstanceBatch(sim.NewField(g.Graph, fieldRoot, &cfg.Field, nil))
	g.RocksMesh = renderer.NewInstancedMesh(&rockMesh, &instancedMat)

	// Light markers
	g.MarkersRoot = g.Graph.NewNode("light-markers", nil)
	g.Graph.AddChild(g.Root, g.MarkersRoot)

	dirMarkerTr := scene.NewTranslation(dirMarkerPos.X(), dirMarkerPos.Y(), dirMarkerPos.Z())
	g.DirMarker = g.Graph.NewNode("dir-light-marker", renderer.NewMarkerDrawable(&dirArrowMesh, g.Rend))
	g.Graph.SetTransform(g.DirMarker, &dirMarkerTr)
	g.Graph.AddChild(g.MarkersRoot, g.DirMarker)

	g.PointMarkers = g.Graph.NewNodes("point-light-marker", len(g.Lights.Points), renderer.NewMarkerDrawable(&sphereMesh, g.Rend))
	for i := 0; i < len(g.PointMarkers); i++ {
		g.Graph.AddChild(g.MarkersRoot, g.PointMarkers[i])
	}

	// Each spot marker gets its own arrow since arrows follow the light direction
	g.SpotMarkers = g.Graph.NewNodes("spot-light-marker", len(g.Lights.Spots), nil)
	for i := 0; i < len(g.SpotMarkers); i++ {
		g.Graph.SetDrawable(g.SpotMarkers[i], renderer.NewMarkerDrawable(&spotArrowMeshes[i], g.Rend))
		g.Graph.AddChild(g.MarkersRoot, g.SpotMarkers[i])
	}

	// Rocks never move, so their instance data is uploaded once from the first evaluation
	g.Recomputed = g.Graph.Evaluate(g.Root, &identityMat, false)
	g.Rocks.Upload(g.Graph, g.RocksMesh)

	logging.InfoLog.Printf("Scene has %d nodes, %d of them are instanced rocks\n", g.Graph.Len(), g.Rocks.Count())
}

// effectiveLights applies the global light toggles on top of the per light enabled flags
func (g *Game) effectiveLights() lights.Set {

	ls := lights.Set{
		Dir:    g.Lights.Dir,
		Points: make([]lights.PointLight, len(g.Lights.Points)),
		Spots:  make([]lights.SpotLight, len(g.Lights.Spots)),
	}
	copy(ls.Points, g.Lights.Points)
	copy(ls.Spots, g.Lights.Spots)

	ls.Dir.Enabled = ls.Dir.Enabled && g.FrameCtx.DirLightOn

	for i := 0; i < len(ls.Points); i++ {
		ls.Points[i].Enabled = ls.Points[i].Enabled && g.FrameCtx.PointLightsOn
	}

	for i := 0; i < len(ls.Spots); i++ {
		ls.Spots[i].Enabled = ls.Spots[i].Enabled && g.FrameCtx.SpotLightsOn
	}

	return ls
}

func (g *Game) updateLights() {

	ls := g.effectiveLights()
	for _, mat := range [...]*materials.Material{&litMat, &groundMat, &instancedMat} {
		ls.SetUniforms(mat)
	}

	g.updateLightMarkers(&ls)
	g.lightsDirty = false
}

func markerColor(c *gglm.Vec3, enabled bool) gglm.Vec4 {

	if !enabled {
		return gglm.NewVec4(0.2, 0.2, 0.2, 1)
	}

	return gglm.NewVec4(c.X(), c.Y(), c.Z(), 1)
}

func (g *Game) updateLightMarkers(ls *lights.Set) {

	color := markerColor(&ls.Dir.DiffuseColor, ls.Dir.Enabled)
	g.Graph.SetModulate(g.DirMarker, &color)

	for i := 0; i < len(ls.Points); i++ {

		pl := &ls.Points[i]

		tr := scene.NewTransform()
		tr.Pos = pl.Pos
		tr.Scale = gglm.NewVec3(POINT_MARKER_SCALE, POINT_MARKER_SCALE, POINT_MARKER_SCALE)
		g.Graph.SetTRS(g.PointMarkers[i], &tr)

		color = markerColor(&pl.DiffuseColor, pl.Enabled)
		g.Graph.SetModulate(g.PointMarkers[i], &color)
	}

	for i := 0; i < len(ls.Spots); i++ {

		sl := &ls.Spots[i]

		tr := scene.NewTransformPos(sl.Pos.X(), sl.Pos.Y(), sl.Pos.Z())
		g.Graph.SetTRS(g.SpotMarkers[i], &tr)

		color = markerColor(&sl.DiffuseColor, sl.Enabled)
		g.Graph.SetModulate(g.SpotMarkers[i], &color)
	}
}

func (g *Game) Update() {

	if input.IsQuitClicked() || input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
	}

	g.applyConfigChanges()

	if input.KeyClicked(sdl.K_F5) {
		g.reloadShaders()
	}

	if input.KeyClicked(sdl.K_TAB) {
		g.setDriveMode(!g.FrameCtx.DriveMode)
	}

	g.FrameCtx.DT = timing.DT()

	ctl := sim.Controls{}
	if g.FrameCtx.DriveMode {
		ctl = sim.Controls{
			Forward:    input.KeyDown(sdl.K_w),
			Backward:   input.KeyDown(sdl.K_s),
			TurnLeft:   input.KeyDown(sdl.K_a),
			TurnRight:  input.KeyDown(sdl.K_d),
			CabinLeft:  input.KeyDown(sdl.K_q),
			CabinRight: input.KeyDown(sdl.K_e),
			ArmUp:      input.KeyDown(sdl.K_r),
			ArmDown:    input.KeyDown(sdl.K_f),
		}
	}
	g.Excavator.Update(g.Graph, &g.FrameCtx, &ctl)

	g.updateCamera()
	g.FrameCtx.CamPos = g.Cam.Pos

	g.showDebugWindow()

	if g.lightsDirty {
		g.updateLights()
	}

	g.Recomputed = g.Graph.Evaluate(g.Root, &identityMat, false)
}

func (g *Game) applyConfigChanges() {

	if g.CfgWatcher == nil {
		return
	}

	select {
	case cfg := <-g.CfgWatcher.Changes():
		g.applyConfig(&cfg)
	default:
	}
}

// applyConfig applies the parts of a reloaded config that don't need the scene to be rebuilt
func (g *Game) applyConfig(cfg *config.Config) {

	g.Cfg.Camera = cfg.Camera
	g.Cam.NearClip = cfg.Camera.Near
	g.Cam.FarClip = cfg.Camera.Far
	g.Cam.Fov = gglm.Clamp(cfg.Camera.FovDeg*gglm.Deg2Rad, camera.MinFovRad, camera.MaxFovRad)
	g.Cam.Update()

	g.Cfg.Excavator = cfg.Excavator
	g.Excavator.MoveSpeed = cfg.Excavator.MoveSpeed
	g.Excavator.TurnSpeedRad = cfg.Excavator.TurnSpeedDeg * gglm.Deg2Rad
	g.Excavator.CabinSpeedRad = cfg.Excavator.CabinSpeedDeg * gglm.Deg2Rad
	g.Excavator.ArmSpeedRad = cfg.Excavator.ArmSpeedDeg * gglm.Deg2Rad

	newLights := cfg.Lights.LightSet()
	if len(newLights.Points) != len(g.Lights.Points) || len(newLights.Spots) != len(g.Lights.Spots) {
		logging.WarnLog.Printf(
			"Changing the number of lights needs a restart. Ignoring light changes (points: %d->%d, spots: %d->%d)\n",
			len(g.Lights.Points), len(newLights.Points), len(g.Lights.Spots), len(newLights.Spots),
		)
	} else {

		g.Cfg.Lights = cfg.Lights
		g.Lights = newLights

		rebuildArrowMesh(&dirArrowMesh, &g.Lights.Dir.Dir)
		for i := 0; i < len(g.Lights.Spots); i++ {
			rebuildArrowMesh(&spotArrowMeshes[i], &g.Lights.Spots[i].Dir)
		}

		g.lightsDirty = true
	}

	logging.InfoLog.Println("Applied config changes")
}

// reloadShaders recompiles all materials from disk. New programs lose their uniforms, so they are set again
func (g *Game) reloadShaders() {

	reloaded := 0
	for i := 0; i < len(g.shaderReloads); i++ {

		sr := &g.shaderReloads[i]
		if err := sr.Mat.Reload(sr.ShaderPath); err != nil {
			continue
		}

		if sr.Setup != nil {
			sr.Setup(sr.Mat)
		}
		reloaded++
	}

	// Forces the renderer to re-bind the new programs
	g.Rend.BoundMatId = 0
	g.lightsDirty = true

	logging.InfoLog.Printf("Reloaded %d/%d shaders\n", reloaded, len(g.shaderReloads))
}

// setDriveMode starts a camera transition towards the excavator when enabled, or back to where the camera was before when disabled
func (g *Game) setDriveMode(enabled bool) {

	if enabled == g.FrameCtx.DriveMode {
		return
	}

	from := g.Cam.Pose()

	// If a transition back from drive mode is still running, the pose to return to is already cached
	if enabled && g.camTransition == nil {
		g.cachedCamPose = from
	}

	g.FrameCtx.DriveMode = enabled
	g.camTransition = camera.NewTransition(&from, g.Cfg.Camera.TransitionSec, nil)
}

func (g *Game) updateCamera() {

	if wheel := input.GetMouseWheelYNorm(); wheel != 0 {
		g.Cam.Zoom(float32(wheel) * ZOOM_STEP_RAD)
	}

	if g.FrameCtx.DriveMode {

		chaseOffset := g.Cfg.Camera.ChaseOffset.ToGglm()
		pose := g.Excavator.ChasePose(&chaseOffset)

		if g.camTransition != nil {
			pose = g.camTransition.Update(g.FrameCtx.DT, &pose)
			if g.camTransition.Done {
				g.camTransition = nil
			}
		}

		g.Cam.SetPose(&pose)
		return
	}

	if g.camTransition != nil {

		pose := g.camTransition.Update(g.FrameCtx.DT, &g.cachedCamPose)
		if g.camTransition.Done {
			g.camTransition = nil
		}

		g.Cam.SetPose(&pose)
		return
	}

	g.updateCameraLookAround()
	g.updateCameraPos()
}

func (g *Game) updateCameraLookAround() {

	mouseX, mouseY := input.GetMouseMotion()
	if (mouseX == 0 && mouseY == 0) || !input.MouseDown(sdl.BUTTON_RIGHT) {
		return
	}

	const MAX_MOUSE_MOVE = 300
	mouseX = gglm.Clamp(mouseX, -MAX_MOUSE_MOVE, MAX_MOUSE_MOVE)
	mouseY = gglm.Clamp(mouseY, -MAX_MOUSE_MOVE, MAX_MOUSE_MOVE)

	sensitivity := g.Cfg.Camera.Sensitivity
	g.Cam.UpdateRotation(
		g.Cam.Pitch-float32(mouseY)*sensitivity,
		g.Cam.Yaw+float32(mouseX)*sensitivity,
	)
}

func (g *Game) updateCameraPos() {

	forward := input.KeyAxis(sdl.K_s, sdl.K_w)
	right := input.KeyAxis(sdl.K_a, sdl.K_d)
	up := input.KeyAxis(sdl.K_q, sdl.K_e)
	if forward == 0 && right == 0 && up == 0 {
		return
	}

	dist := g.Cfg.Camera.MoveSpeed * timing.DT()
	if input.KeyDown(sdl.K_LSHIFT) {
		dist *= 2
	}

	g.Cam.MoveFly(camera.MoveDir_Forward, forward*dist)
	g.Cam.MoveFly(camera.MoveDir_Right, right*dist)
	g.Cam.MoveFly(camera.MoveDir_Up, up*dist)
	g.Cam.Update()
}

func (g *Game) showDebugWindow() {

	imgui.Begin("Debug controls")

	imgui.PushStyleColorVec4(imgui.ColText, imgui.NewColor(1, 1, 0, 1).Value)
	imgui.LabelText("FPS", fmt.Sprint(timing.GetAvgFPS()))
	imgui.PopStyleColor()

	if len(frameTimesMs) < FRAME_TIME_MS_SAMPLES {
		frameTimesMs = append(frameTimesMs, timing.DT()*1000)
	} else {
		frameTimesMs[frameTimesMsIndex] = timing.DT() * 1000

		frameTimesMsIndex++
		if frameTimesMsIndex >= len(frameTimesMs) {
			frameTimesMsIndex = 0
		}
	}

	imgui.PlotLinesFloatPtrV("Frame Times", frameTimesMs, int32(len(frameTimesMs)), 0, "", 0, 16, imgui.Vec2{Y: 50}, 4)

	imgui.Spacing()

	// Scene
	imgui.Text("Scene")
	imgui.Text("Nodes: " + strconv.Itoa(g.Graph.Len()))
	imgui.Text("Recomputed transforms: " + strconv.Itoa(g.Recomputed))
	imgui.Text("Draw calls: " + strconv.Itoa(int(g.Rend.LastDrawCalls)))
	imgui.Text("Instances drawn: " + strconv.Itoa(int(g.Rend.LastInstancesDrawn)))
	if hasSkybox {
		imgui.Checkbox("Render skybox", &renderSkybox)
	}

	imgui.Spacing()

	// Excavator
	imgui.Text("Excavator")

	driveMode := g.FrameCtx.DriveMode
	if imgui.Checkbox("Drive Mode (Tab)", &driveMode) {
		g.setDriveMode(driveMode)
	}
	imgui.Text("W/S: drive, A/D: turn, Q/E: swing cabin, R/F: move arm")

	if imgui.DragFloat3("Excavator Pos", &g.Excavator.Pos.Data) {
		g.Excavator.SetTransforms(g.Graph)
	}

	imgui.Spacing()

	// Camera
	imgui.Text("Camera")
	if imgui.DragFloat3("Cam Pos", &g.Cam.Pos.Data) {
		g.Cam.Update()
	}

	imgui.Spacing()

	g.showLightsUI()

	imgui.End()
}

func (g *Game) showLightsUI() {

	imgui.Text("Lights (F5 reloads shaders)")

	changed := imgui.Checkbox("Directional Light", &g.FrameCtx.DirLightOn)
	changed = imgui.Checkbox("Point Lights", &g.FrameCtx.PointLightsOn) || changed
	changed = imgui.Checkbox("Spot Lights", &g.FrameCtx.SpotLightsOn) || changed

	// Directional light
	if imgui.TreeNodeExStrV("Directional Light Settings", imgui.TreeNodeFlagsSpanAvailWidth) {

		dl := &g.Lights.Dir

		changed = imgui.Checkbox("Enabled", &dl.Enabled) || changed

		if imgui.DragFloat3("Direction", &dl.Dir.Data) {
			rebuildArrowMesh(&dirArrowMesh, &dl.Dir)
			changed = true
		}

		changed = imgui.ColorEdit3("Ambient Color", &dl.AmbientColor.Data) || changed
		changed = imgui.ColorEdit3("Diffuse Color", &dl.DiffuseColor.Data) || changed
		changed = imgui.ColorEdit3("Specular Color", &dl.SpecularColor.Data) || changed

		imgui.TreePop()
	}

	// Point lights
	if imgui.BeginListBoxV("Point Lights", imgui.Vec2{Y: 200}) {

		for i := 0; i < len(g.Lights.Points); i++ {

			pl := &g.Lights.Points[i]
			if !imgui.TreeNodeExStrV("Point Light "+strconv.Itoa(i), imgui.TreeNodeFlagsSpanAvailWidth) {
				continue
			}

			changed = imgui.Checkbox("Enabled", &pl.Enabled) || changed
			changed = imgui.DragFloat3("Pos", &pl.Pos.Data) || changed
			changed = imgui.ColorEdit3("Diffuse Color", &pl.DiffuseColor.Data) || changed
			changed = imgui.ColorEdit3("Specular Color", &pl.SpecularColor.Data) || changed

			imgui.TreePop()
		}

		imgui.EndListBox()
	}

	// Spot lights
	if imgui.BeginListBoxV("Spot Lights", imgui.Vec2{Y: 200}) {

		for i := 0; i < len(g.Lights.Spots); i++ {

			sl := &g.Lights.Spots[i]
			if !imgui.TreeNodeExStrV("Spot Light "+strconv.Itoa(i), imgui.TreeNodeFlagsSpanAvailWidth) {
				continue
			}

			changed = imgui.Checkbox("Enabled", &sl.Enabled) || changed
			changed = imgui.DragFloat3("Pos", &sl.Pos.Data) || changed

			if imgui.DragFloat3("Dir", &sl.Dir.Data) {
				rebuildArrowMesh(&spotArrowMeshes[i], &sl.Dir)
				changed = true
			}

			changed = imgui.ColorEdit3("Diffuse Color", &sl.DiffuseColor.Data) || changed
			changed = imgui.ColorEdit3("Specular Color", &sl.SpecularColor.Data) || changed

			imgui.TreePop()
		}

		imgui.EndListBox()
	}

	if changed {
		g.lightsDirty = true
	}
}

func (g *Game) Render() {

	g.updateAllProjViewMats()

	for _, mat := range [...]*materials.Material{&litMat, &groundMat, &instancedMat} {
		mat.SetUnifVec3("camPos", &g.Cam.Pos)
	}

	// Each subtree is drawn with its own material, all using the world transforms from Update
	g.Graph.Draw(g.Ground, &groundMat)
	g.Graph.Draw(g.Excavator.Body, &litMat)
	g.RocksMesh.Draw(g.Rend)
	g.Graph.Draw(g.MarkersRoot, &markerMat)

	if hasSkybox && renderSkybox {
		g.Rend.DrawCubemap(&skyboxMesh, &skyboxMat)
	}
}

func (g *Game) updateAllProjViewMats() {

	projViewMat := g.Cam.ProjViewMat()

	litMat.SetUnifMat4("projViewMat", &projViewMat)
	groundMat.SetUnifMat4("projViewMat", &projViewMat)
	instancedMat.SetUnifMat4("projViewMat", &projViewMat)
	markerMat.SetUnifMat4("projViewMat", &projViewMat)

	// Without the translation the skybox stays centered on the camera
	skyboxViewMat := g.Cam.ViewMat
	skyboxViewMat.Data[3][0] = 0
	skyboxViewMat.Data[3][1] = 0
	skyboxViewMat.Data[3][2] = 0
	skyboxMat.SetUnifMat4("projViewMat", g.Cam.ProjMat.Clone().Mul(&skyboxViewMat))
}

func (g *Game) FrameEnd() {
}

func (g *Game) DeInit() {

	if g.CfgWatcher != nil {
		if err := g.CfgWatcher.Close(); err != nil {
			logging.WarnLog.Printf("Failed to close config watcher. Err: %s\n", err.Error())
		}
	}

	g.RocksMesh.Delete()

	allMeshes := []*meshes.Mesh{&bodyMesh, &cabinMesh, &armMesh, &groundMesh, &rockMesh, &sphereMesh, &skyboxMesh, &dirArrowMesh}
	for i := 0; i < len(spotArrowMeshes); i++ {
		allMeshes = append(allMeshes, &spotArrowMeshes[i])
	}

	for _, m := range allMeshes {
		m.Delete()
	}

	for i := 0; i < len(g.shaderReloads); i++ {
		g.shaderReloads[i].Mat.Delete()
	}

	g.ImGUIInfo.Destroy()
}
