package config

import (
	"bytes"
	"os"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/lights"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Vec3 is a yaml friendly 3 component vector, written as [x, y, z]
type Vec3 [3]float32

func (v Vec3) ToGglm() gglm.Vec3 {
	return gglm.NewVec3(v[0], v[1], v[2])
}

type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Excavator ExcavatorConfig `yaml:"excavator"`
	Field     FieldConfig     `yaml:"field"`
	Lights    LightsConfig    `yaml:"lights"`
	Assets    AssetsConfig    `yaml:"assets"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
	MSAA   bool   `yaml:"msaa"`
}

type CameraConfig struct {
	Pos    Vec3    `yaml:"pos"`
	FovDeg float32 `yaml:"fovDeg"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`

	MoveSpeed float32 `yaml:"moveSpeed"`
	// Radians per pixel of mouse movement
	Sensitivity float32 `yaml:"sensitivity"`

	// Seconds it takes to move between free fly and drive mode
	TransitionSec float32 `yaml:"transitionSec"`
	ChaseOffset   Vec3    `yaml:"chaseOffset"`
}

type ExcavatorConfig struct {
	StartPos      Vec3    `yaml:"startPos"`
	Scale         float32 `yaml:"scale"`
	MoveSpeed     float32 `yaml:"moveSpeed"`
	TurnSpeedDeg  float32 `yaml:"turnSpeedDeg"`
	CabinSpeedDeg float32 `yaml:"cabinSpeedDeg"`
	ArmSpeedDeg   float32 `yaml:"armSpeedDeg"`
}

// FieldConfig describes the instanced rock field laid out as a grid
type FieldConfig struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Spacing float32 `yaml:"spacing"`
	Seed    int64   `yaml:"seed"`
}

type DirLightConfig struct {
	Enabled  bool `yaml:"enabled"`
	Dir      Vec3 `yaml:"dir"`
	Ambient  Vec3 `yaml:"ambient"`
	Diffuse  Vec3 `yaml:"diffuse"`
	Specular Vec3 `yaml:"specular"`
}

type PointLightConfig struct {
	Enabled  bool `yaml:"enabled"`
	Pos      Vec3 `yaml:"pos"`
	Ambient  Vec3 `yaml:"ambient"`
	Diffuse  Vec3 `yaml:"diffuse"`
	Specular Vec3 `yaml:"specular"`
}

type SpotLightConfig struct {
	Enabled  bool `yaml:"enabled"`
	Pos      Vec3 `yaml:"pos"`
	Dir      Vec3 `yaml:"dir"`
	Ambient  Vec3 `yaml:"ambient"`
	Diffuse  Vec3 `yaml:"diffuse"`
	Specular Vec3 `yaml:"specular"`
}

type LightsConfig struct {
	Dir    DirLightConfig     `yaml:"dir"`
	Points []PointLightConfig `yaml:"points"`
	Spots  []SpotLightConfig  `yaml:"spots"`
}

type AssetsConfig struct {
	ExcavatorBodyModel  string `yaml:"excavatorBodyModel"`
	ExcavatorCabinModel string `yaml:"excavatorCabinModel"`
	ExcavatorArmModel   string `yaml:"excavatorArmModel"`
	RockModel           string `yaml:"rockModel"`
	GroundModel         string `yaml:"groundModel"`
	// Optional, png or jpg
	GroundDiffuseTex    string `yaml:"groundDiffuseTex"`
	ShadersDir          string `yaml:"shadersDir"`

	// Order is right, left, top, bottom, front, back
	SkyboxFaces []string `yaml:"skyboxFaces"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "nScene",
			Width:  1600,
			Height: 900,
			VSync:  true,
			MSAA:   true,
		},
		Camera: CameraConfig{
			Pos:           Vec3{0, 30, 25},
			FovDeg:        45,
			Near:          0.1,
			Far:           500,
			MoveSpeed:     20,
			Sensitivity:   0.1 * gglm.Deg2Rad,
			TransitionSec: 0.75,
			ChaseOffset:   Vec3{0, 12, 25},
		},
		Excavator: ExcavatorConfig{
			StartPos:      Vec3{0, 0, 0},
			Scale:         0.5,
			MoveSpeed:     10,
			TurnSpeedDeg:  60,
			CabinSpeedDeg: 45,
			ArmSpeedDeg:   30,
		},
		Field: FieldConfig{
			Rows:    100,
			Cols:    100,
			Spacing: 4,
			Seed:    1,
		},
		Lights: LightsConfig{
			Dir: DirLightConfig{
				Enabled:  true,
				Dir:      Vec3{-0.2, -1, -0.3},
				Ambient:  Vec3{0.1, 0.1, 0.1},
				Diffuse:  Vec3{0.8, 0.8, 0.8},
				Specular: Vec3{0, 0, 0},
			},
			Points: []PointLightConfig{
				{Enabled: true, Pos: Vec3{10, 6, 10}, Ambient: Vec3{0.05, 0.05, 0.05}, Diffuse: Vec3{1, 0.4, 0.1}, Specular: Vec3{1, 1, 1}},
				{Enabled: true, Pos: Vec3{-10, 6, -10}, Ambient: Vec3{0.05, 0.05, 0.05}, Diffuse: Vec3{0.1, 0.4, 1}, Specular: Vec3{1, 1, 1}},
			},
			Spots: []SpotLightConfig{
				{Enabled: true, Pos: Vec3{0, 20, 0}, Dir: Vec3{0, -1, 0}, Ambient: Vec3{0, 0, 0}, Diffuse: Vec3{1, 1, 1}, Specular: Vec3{1, 1, 1}},
			},
		},
		Assets: AssetsConfig{
			ExcavatorBodyModel:  "./res/models/excavator-body.glb",
			ExcavatorCabinModel: "./res/models/excavator-cabin.glb",
			ExcavatorArmModel:   "./res/models/excavator-arm.glb",
			RockModel:           "./res/models/rock.obj",
			GroundModel:         "./res/models/ground.obj",
			GroundDiffuseTex:    "./res/textures/ground.png",
			ShadersDir:          "./res/shaders",
			SkyboxFaces: []string{
				"./res/textures/sb-right.jpg",
				"./res/textures/sb-left.jpg",
				"./res/textures/sb-top.jpg",
				"./res/textures/sb-bottom.jpg",
				"./res/textures/sb-front.jpg",
				"./res/textures/sb-back.jpg",
			},
		},
	}
}

// Load reads a yaml config on top of Default, so missing fields keep their default values
func Load(path string) (Config, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config file '%s'", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to load config file '%s'", path)
	}

	return cfg, nil
}

// Parse decodes yaml on top of Default. Empty input is an error, which also catches files that are mid-write
func Parse(data []byte) (Config, error) {

	if len(bytes.TrimSpace(data)) == 0 {
		return Config{}, errors.New("config is empty")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "invalid yaml")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Field.Rows < 0 || c.Field.Cols < 0 {
		return errors.Errorf("field rows and cols can not be negative, got rows=%d cols=%d", c.Field.Rows, c.Field.Cols)
	}

	if c.Field.Spacing <= 0 {
		return errors.Errorf("field spacing must be positive, got %f", c.Field.Spacing)
	}

	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return errors.Errorf("camera clip planes must satisfy 0 < near < far, got near=%f far=%f", c.Camera.Near, c.Camera.Far)
	}

	if len(c.Lights.Points) > lights.MaxPointLights {
		return errors.Errorf("at most %d point lights are supported, got %d", lights.MaxPointLights, len(c.Lights.Points))
	}

	if len(c.Lights.Spots) > lights.MaxSpotLights {
		return errors.Errorf("at most %d spot lights are supported, got %d", lights.MaxSpotLights, len(c.Lights.Spots))
	}

	if len(c.Assets.SkyboxFaces) != 0 && len(c.Assets.SkyboxFaces) != 6 {
		return errors.Errorf("skybox needs exactly 6 faces, got %d", len(c.Assets.SkyboxFaces))
	}

	return nil
}

// LightSet converts the light configs into the form the renderer uploads
func (lc *LightsConfig) LightSet() lights.Set {

	ls := lights.Set{
		Dir:    lights.NewDirLight(lc.Dir.Dir.ToGglm(), lc.Dir.Ambient.ToGglm(), lc.Dir.Diffuse.ToGglm(), lc.Dir.Specular.ToGglm()),
		Points: make([]lights.PointLight, len(lc.Points)),
		Spots:  make([]lights.SpotLight, len(lc.Spots)),
	}
	ls.Dir.Enabled = lc.Dir.Enabled

	for i := 0; i < len(lc.Points); i++ {
		p := &lc.Points[i]
		ls.Points[i] = lights.NewPointLight(p.Pos.ToGglm(), p.Ambient.ToGglm(), p.Diffuse.ToGglm(), p.Specular.ToGglm())
		ls.Points[i].Enabled = p.Enabled
	}

	for i := 0; i < len(lc.Spots); i++ {
		s := &lc.Spots[i]
		ls.Spots[i] = lights.NewSpotLight(s.Pos.ToGglm(), s.Dir.ToGglm(), s.Ambient.ToGglm(), s.Diffuse.ToGglm(), s.Specular.ToGglm())
		ls.Spots[i].Enabled = s.Enabled
	}

	return ls
}
