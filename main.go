package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/camera"
	"github.com/bloeys/ndefer/deferred"
	"github.com/bloeys/ndefer/engine"
	"github.com/bloeys/ndefer/input"
	"github.com/bloeys/ndefer/lights"
	"github.com/bloeys/ndefer/logging"
	"github.com/bloeys/ndefer/materials"
	"github.com/bloeys/ndefer/meshes"
	"github.com/bloeys/ndefer/renderer/rend3dgl"
	"github.com/bloeys/ndefer/rendertarget"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	flagWidth      = flag.Uint("width", 1280, "window width")
	flagHeight     = flag.Uint("height", 720, "window height")
	flagBuffered   = flag.Bool("buffered", true, "accumulate lights in an offscreen target and copy it to the screen")
	flagModel      = flag.String("model", "", "optional model file to place in the scene")
	flagScreenshot = flag.String("screenshot", "", "save a screenshot (.png, .bmp, .tif) after the first frames and exit")
	flagLogLevel   = flag.String("loglevel", "info", "debug, info, warn or error")
	flagLogDir     = flag.String("logdir", "", "log directory, defaults to the user config directory")
)

const (
	dirShadowMapSize  = 2048
	spotShadowMapSize = 1024

	// Frames rendered before -screenshot is taken
	screenshotFrame = 3

	camMoveSpeed float32 = 5
	camRotSpeed  float32 = 0.2
)

type sceneObject struct {
	Name     string
	Mesh     *meshes.Mesh
	ModelMat gglm.TrMat
	Mat      *materials.Material

	// RotSpeedDeg is applied around RotAxis every frame
	RotSpeedDeg float32
	RotAxis     gglm.Vec3
}

type Game struct {
	Win      *engine.Window
	Rend     *rend3dgl.Rend3DGL
	Ctx      *rendertarget.Context
	Pipeline *deferred.Pipeline

	Cam   camera.Camera
	pitch float32
	yaw   float32

	DepthMat  *materials.Material
	Materials []*materials.Material
	Meshes    []*meshes.Mesh
	Objects   []sceneObject

	Ambient lights.Ambient
	Sun     lights.Directional
	Points  []lights.Point
	Spot    lights.Spot

	ScreenshotPath string
	frameCount     int
	Failed         bool
}

func main() {

	flag.Parse()

	logger, logPath, err := logging.NewFileLogger(*flagLogLevel, *flagLogDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to create logger. Err:", err)
		os.Exit(1)
	}
	logging.SetLogger(logger)
	fmt.Fprintln(os.Stderr, "Logging to", logPath)

	//Init engine
	err = engine.Init()
	if err != nil {
		fatal("failed to init engine", err)
	}

	//Create window
	win, err := engine.CreateOpenGLWindowCentered("nDefer", int32(*flagWidth), int32(*flagHeight), engine.WindowFlags_RESIZABLE|engine.WindowFlags_ALLOW_HIGHDPI)
	if err != nil {
		fatal("failed to create window", err)
	}
	defer win.Destroy()

	engine.SetVSync(true)

	game, err := newGame(win, *flagBuffered, *flagModel)
	if err != nil {
		fatal("failed to create scene", err)
	}
	game.ScreenshotPath = *flagScreenshot

	win.ResizeCallbacks = append(win.ResizeCallbacks, game.handleResize)
	win.SDLWin.SetTitle(fmt.Sprintf("nDefer (%s)", game.Pipeline.Mode()))

	engine.Run(game, win)

	if game.Failed {
		win.Destroy()
		os.Exit(1)
	}
}

func fatal(msg string, err error) {
	logging.Logger().Error(msg, "err", err)
	fmt.Fprintf(os.Stderr, "%s. Err: %v\n", msg, err)
	os.Exit(1)
}

func newGame(win *engine.Window, buffered bool, modelPath string) (g *Game, err error) {

	width, height := win.DrawableSize()

	g = &Game{
		Win:  win,
		Rend: rend3dgl.NewRend3DGL(),
	}
	g.Ctx = rendertarget.NewContext(g.Rend)

	// Anything created so far is released if a later step fails
	defer func() {
		if err != nil {
			g.DeInit()
			g = nil
		}
	}()

	bg := lights.ColorFromSRGB(30, 36, 48)
	cfg := deferred.DefaultConfig(width, height)
	cfg.BackgroundColor = gglm.NewVec4(bg.X(), bg.Y(), bg.Z(), 1)
	if !buffered {
		cfg.LightPassMode = deferred.LightPassMode_Direct
	}

	g.Pipeline, err = deferred.New(g.Ctx, cfg)
	if err != nil {
		return g, err
	}

	if err = g.initCamera(width, height); err != nil {
		return g, err
	}

	if err = g.initScene(modelPath); err != nil {
		return g, err
	}

	if err = g.initLights(); err != nil {
		return g, err
	}

	return g, nil
}

func (g *Game) initCamera(width, height uint32) error {

	pos := gglm.NewVec3(0, 4, 12)
	forward := gglm.NewVec3(0, -0.3, -1)
	worldUp := gglm.NewVec3(0, 1, 0)
	forward.Normalize()

	g.Cam = camera.NewPerspective(&pos, &forward, &worldUp, 0.1, 200, 45*gglm.Deg2Rad, float32(width)/float32(height))
	return nil
}

func (g *Game) newGBufferMat(name string, r, gr, b uint8, spec, shininess float32) (*materials.Material, error) {

	mat, err := materials.NewGBufferMaterial(g.Rend, name, lights.ColorFromSRGB(r, gr, b))
	if err != nil {
		return nil, err
	}

	mat.SpecularIntensity = spec
	mat.Shininess = shininess
	g.Materials = append(g.Materials, mat)

	return mat, nil
}

func (g *Game) initScene(modelPath string) error {

	var err error
	g.DepthMat, err = materials.NewDepthMaterial(g.Rend, "depth")
	if err != nil {
		return err
	}
	g.Materials = append(g.Materials, g.DepthMat)

	groundMat, err := g.newGBufferMat("ground", 120, 120, 110, 0.1, 0.1)
	if err != nil {
		return err
	}

	cubeMat, err := g.newGBufferMat("cube", 200, 90, 50, 0.8, 0.5)
	if err != nil {
		return err
	}

	cubeMesh, err := meshes.NewCube("cube")
	if err != nil {
		return err
	}
	g.Meshes = append(g.Meshes, cubeMesh)

	ground := sceneObject{Name: "ground", Mesh: cubeMesh, ModelMat: gglm.NewTrMatWithPos(0, -1, 0), Mat: groundMat}
	ground.ModelMat.Scale(30, 1, 30)
	g.Objects = append(g.Objects,
		ground,
		sceneObject{Name: "cube1", Mesh: cubeMesh, ModelMat: gglm.NewTrMatWithPos(-4, 0.5, 0), Mat: cubeMat, RotSpeedDeg: 45, RotAxis: gglm.NewVec3(0, 1, 0)},
		sceneObject{Name: "cube2", Mesh: cubeMesh, ModelMat: gglm.NewTrMatWithPos(0, 1.5, -2), Mat: cubeMat, RotSpeedDeg: 120, RotAxis: gglm.NewVec3(1, 1, 0)},
		sceneObject{Name: "cube3", Mesh: cubeMesh, ModelMat: gglm.NewTrMatWithPos(4, 0.5, 1), Mat: cubeMat, RotSpeedDeg: 90, RotAxis: gglm.NewVec3(1, 1, 1)},
	)

	if modelPath == "" {
		return nil
	}

	modelMat, err := g.newGBufferMat("model", 220, 220, 220, 0.5, 0.25)
	if err != nil {
		return err
	}

	model, err := meshes.NewMesh("model", modelPath, 0)
	if err != nil {
		return err
	}
	g.Meshes = append(g.Meshes, model)
	g.Objects = append(g.Objects, sceneObject{Name: "model", Mesh: model, ModelMat: gglm.NewTrMatWithPos(0, 0, 3), Mat: modelMat})

	logging.Logger().Info("loaded model", "path", modelPath, "sub_meshes", len(model.SubMeshes))
	return nil
}

func (g *Game) initLights() error {

	g.Ambient = lights.NewAmbient(lights.ColorFromSRGB(255, 255, 255), 0.08)

	g.Sun = lights.NewDirectional(lights.ColorFromSRGB(255, 244, 214), 0.9, gglm.NewVec3(-0.4, -1, -0.6))
	// Back the shadow camera up along the light so the scene center is halfway into its depth range
	d := &g.Sun.Direction
	halfDepth := lights.DirShadowFarClip / 2
	sunOrigin := gglm.NewVec3(-d.X()*halfDepth, -d.Y()*halfDepth, -d.Z()*halfDepth)
	if err := g.Sun.EnableShadows(g.Ctx, dirShadowMapSize, sunOrigin); err != nil {
		return err
	}

	att := lights.Attenuation{Constant: 1, Linear: 0.22, Exp: 0.2}
	g.Points = []lights.Point{
		lights.NewPoint(lights.ColorFromSRGB(255, 40, 40), 2, gglm.NewVec3(-3, 2, 3), att),
		lights.NewPoint(lights.ColorFromSRGB(40, 120, 255), 2, gglm.NewVec3(3, 2, 3), att),
	}

	g.Spot = lights.NewSpot(
		lights.ColorFromSRGB(255, 255, 255), 3,
		gglm.NewVec3(0, 8, 4), gglm.NewVec3(0, -1, -0.5),
		lights.Attenuation{Constant: 1, Linear: 0.045, Exp: 0.0075},
		20*gglm.Deg2Rad,
	)

	return g.Spot.EnableShadows(g.Ctx, spotShadowMapSize)
}

func (g *Game) handleResize(width, height uint32) {

	if err := g.Pipeline.Resize(width, height); err != nil {
		logging.Logger().Error("failed to resize pipeline", "width", width, "height", height, "err", err)
		g.Failed = true
		engine.Quit()
		return
	}

	g.Cam.AspectRatio = float32(width) / float32(height)
	g.Cam.Update()
}

func (g *Game) Init() {
	logging.Logger().Info("starting", "width", g.Pipeline.Width(), "height", g.Pipeline.Height(), "mode", g.Pipeline.Mode())
}

func (g *Game) Update() {

	if input.IsQuitClicked() || input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
	}

	g.updateCameraLookAround()
	g.updateCameraPos()

	for i := 0; i < len(g.Objects); i++ {

		obj := &g.Objects[i]
		if obj.RotSpeedDeg == 0 {
			continue
		}

		obj.ModelMat.Rotate(obj.RotSpeedDeg*gglm.Deg2Rad*engine.DT(), obj.RotAxis.X(), obj.RotAxis.Y(), obj.RotAxis.Z())
	}

	if input.KeyClicked(sdl.K_F12) {
		g.saveScreenshot(fmt.Sprintf("ndefer-%d.png", time.Now().Unix()))
	}
}

func (g *Game) updateCameraLookAround() {

	mouseX, mouseY := input.GetMouseMotion()
	if (mouseX == 0 && mouseY == 0) || !input.MouseDown(sdl.BUTTON_RIGHT) {
		return
	}

	const MAX_MOUSE_MOVE = 300
	mouseX = gglm.Clamp(mouseX, -MAX_MOUSE_MOVE, MAX_MOUSE_MOVE)
	mouseY = gglm.Clamp(mouseY, -MAX_MOUSE_MOVE, MAX_MOUSE_MOVE)

	// Yaw
	g.yaw += float32(mouseX) * camRotSpeed * engine.DT()

	// Pitch
	g.pitch += float32(-mouseY) * camRotSpeed * engine.DT()
	if g.pitch > 1.5 {
		g.pitch = 1.5
	}

	if g.pitch < -1.5 {
		g.pitch = -1.5
	}

	g.Cam.UpdateRotation(g.pitch, g.yaw)
}

func (g *Game) updateCameraPos() {

	update := false
	cam := &g.Cam

	var camSpeedScale float32 = 1.0
	if input.KeyDown(sdl.K_LSHIFT) {
		camSpeedScale = 2
	}

	// Forward and backward
	if input.KeyDown(sdl.K_w) {
		cam.Pos.Add(cam.Forward.Clone().Scale(camMoveSpeed * camSpeedScale * engine.DT()))
		update = true
	} else if input.KeyDown(sdl.K_s) {
		cam.Pos.Add(cam.Forward.Clone().Scale(-camMoveSpeed * camSpeedScale * engine.DT()))
		update = true
	}

	// Left and right
	if input.KeyDown(sdl.K_d) {
		cross := gglm.Cross(&cam.Forward, &cam.WorldUp)
		cam.Pos.Add(cross.Normalize().Scale(camMoveSpeed * camSpeedScale * engine.DT()))
		update = true
	} else if input.KeyDown(sdl.K_a) {
		cross := gglm.Cross(&cam.Forward, &cam.WorldUp)
		cam.Pos.Add(cross.Normalize().Scale(-camMoveSpeed * camSpeedScale * engine.DT()))
		update = true
	}

	if update {
		cam.Update()
	}
}

func (g *Game) Render() {

	if err := g.renderFrame(); err != nil {
		logging.Logger().Error("failed to render frame", "err", err)
		g.Failed = true
		engine.Quit()
		return
	}

	// Must happen before the window is swapped
	g.frameCount++
	if g.ScreenshotPath != "" && g.frameCount == screenshotFrame {
		if !g.saveScreenshot(g.ScreenshotPath) {
			g.Failed = true
		}
		engine.Quit()
	}
}

func (g *Game) saveScreenshot(path string) bool {

	if err := g.Pipeline.SaveScreenshot(path); err != nil {
		logging.Logger().Error("failed to save screenshot", "path", path, "err", err)
		return false
	}

	logging.Logger().Info("saved screenshot", "path", path)
	return true
}

func (g *Game) renderFrame() error {

	if err := g.renderShadowMap(g.Sun.Shadow); err != nil {
		return err
	}

	if err := g.renderShadowMap(g.Spot.Shadow); err != nil {
		return err
	}

	// Geometry
	projViewMat := g.Cam.ProjViewMat()
	for i := 0; i < len(g.Materials); i++ {
		if g.Materials[i] == g.DepthMat {
			continue
		}

		if err := g.Materials[i].SetProjViewMat(&projViewMat); err != nil {
			return err
		}
	}

	g.Pipeline.GeometryPassBegin()
	if err := g.renderScene(nil); err != nil {
		return err
	}

	// Lights
	if err := g.Pipeline.LightPassBegin(&g.Cam); err != nil {
		return err
	}

	if err := g.Pipeline.ShineAmbientLight(&g.Ambient); err != nil {
		return err
	}

	if err := g.Pipeline.ShineDirectionalLight(&g.Sun); err != nil {
		return err
	}

	for i := 0; i < len(g.Points); i++ {
		if err := g.Pipeline.ShinePointLight(&g.Points[i]); err != nil {
			return err
		}
	}

	if err := g.Pipeline.ShineSpotLight(&g.Spot); err != nil {
		return err
	}

	return g.Pipeline.CopyToScreen()
}

func (g *Game) renderShadowMap(sc *lights.ShadowCaster) error {

	if !sc.IsValid() {
		return nil
	}

	if err := g.Pipeline.ShadowPassBegin(sc); err != nil {
		return err
	}

	projViewMat := sc.Camera.ProjViewMat()
	if err := g.DepthMat.SetProjViewMat(&projViewMat); err != nil {
		return err
	}

	return g.renderScene(g.DepthMat)
}

// renderScene draws every object with its own material, or with overrideMat if it is set
func (g *Game) renderScene(overrideMat *materials.Material) error {

	var errs []error
	for i := 0; i < len(g.Objects); i++ {

		obj := &g.Objects[i]

		mat := obj.Mat
		if overrideMat != nil {
			mat = overrideMat
		}

		if err := g.Rend.DrawMesh(obj.Mesh, &obj.ModelMat, mat); err != nil {
			errs = append(errs, fmt.Errorf("draw '%s': %w", obj.Name, err))
		}
	}

	return errors.Join(errs...)
}

func (g *Game) FrameEnd() {
	g.Rend.FrameEnd()
}

// DeInit releases GPU resources. The window is owned by main.
func (g *Game) DeInit() {

	g.Sun.DisableShadows(g.Ctx)
	g.Spot.DisableShadows(g.Ctx)

	for i := 0; i < len(g.Meshes); i++ {
		g.Meshes[i].Delete()
	}
	g.Meshes = nil

	for i := 0; i < len(g.Materials); i++ {
		g.Materials[i].Delete()
	}
	g.Materials = nil

	g.Pipeline.Delete()
	g.Pipeline = nil
}
