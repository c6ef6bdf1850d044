package materials

import (
	_ "embed"
	"os"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/renderer"
)

var (
	//go:embed shaders/gbuffer.glsl
	gBufferShaderSrc []byte

	//go:embed shaders/depth.glsl
	depthShaderSrc []byte
)

var (
	lastMatId uint32
)

type MaterialSettings uint64

const (
	MaterialSettings_None        MaterialSettings = iota
	MaterialSettings_HasModelMtx MaterialSettings = 1 << (iota - 1)
	MaterialSettings_HasNormalMtx
	// MaterialSettings_HasSurface means the shader takes albedo and surface parameters
	MaterialSettings_HasSurface
)

func (ms *MaterialSettings) Set(flags MaterialSettings) {
	*ms |= flags
}

func (ms *MaterialSettings) Remove(flags MaterialSettings) {
	*ms &= ^flags
}

func (ms *MaterialSettings) Has(flags MaterialSettings) bool {
	return *ms&flags == flags
}

// Material is what the geometry and shadow passes draw meshes with
type Material struct {
	Id       uint32
	Name     string
	Prog     renderer.Program
	Settings MaterialSettings

	// Albedo is the linear surface color written to the color channel of the G-buffer
	Albedo gglm.Vec3

	// SpecularIntensity and Shininess (in [0, 1]) are written to the surface parameters channel
	SpecularIntensity float32
	Shininess         float32
}

// Bind uses the material program and uploads the per material uniforms
func (m *Material) Bind() error {

	m.Prog.Use()

	if !m.Settings.Has(MaterialSettings_HasSurface) {
		return nil
	}

	if err := m.Prog.SetUnifVec3("albedo", &m.Albedo); err != nil {
		return err
	}

	if err := m.Prog.SetUnifFloat32("specularIntensity", m.SpecularIntensity); err != nil {
		return err
	}

	return m.Prog.SetUnifFloat32("shininess", m.Shininess)
}

// SetModelMat uploads the model matrix and, if the material wants it, the matching normal matrix
func (m *Material) SetModelMat(modelMat *gglm.TrMat) error {

	if m.Settings.Has(MaterialSettings_HasModelMtx) {
		if err := m.Prog.SetUnifMat4("modelMat", &modelMat.Mat4); err != nil {
			return err
		}
	}

	if m.Settings.Has(MaterialSettings_HasNormalMtx) {
		normalMat := modelMat.Clone()
		normalMat.InvertAndTranspose()
		if err := m.Prog.SetUnifMat4("normalMat", &normalMat.Mat4); err != nil {
			return err
		}
	}

	return nil
}

// SetProjViewMat uploads the camera matrix the material projects with
func (m *Material) SetProjViewMat(projViewMat *gglm.Mat4) error {
	return m.Prog.SetUnifMat4("projViewMat", projViewMat)
}

func (m *Material) Delete() {

	if m.Prog == nil {
		return
	}

	m.Prog.Delete()
	m.Prog = nil
}

func getNewMatId() uint32 {
	lastMatId++
	return lastMatId
}

func NewMaterialSrc(dev renderer.Device, matName string, shaderSrc []byte, settings MaterialSettings) (*Material, error) {

	prog, err := dev.NewProgram(shaderSrc)
	if err != nil {
		return nil, err
	}

	return &Material{
		Id:        getNewMatId(),
		Name:      matName,
		Prog:      prog,
		Settings:  settings,
		Albedo:    gglm.NewVec3(1, 1, 1),
		Shininess: 0.25,
	}, nil
}

func NewMaterial(dev renderer.Device, matName, shaderPath string, settings MaterialSettings) (*Material, error) {

	shaderSrc, err := os.ReadFile(shaderPath)
	if err != nil {
		return nil, err
	}

	return NewMaterialSrc(dev, matName, shaderSrc, settings)
}

// NewGBufferMaterial creates a material with the built in geometry pass shader, which writes
// color, world position, world normal and surface parameters.
func NewGBufferMaterial(dev renderer.Device, matName string, albedo gglm.Vec3) (*Material, error) {

	m, err := NewMaterialSrc(dev, matName, gBufferShaderSrc, MaterialSettings_HasModelMtx|MaterialSettings_HasNormalMtx|MaterialSettings_HasSurface)
	if err != nil {
		return nil, err
	}

	m.Albedo = albedo
	m.SpecularIntensity = 0.5
	return m, nil
}

// NewDepthMaterial creates a material that only writes depth, for shadow passes
func NewDepthMaterial(dev renderer.Device, matName string) (*Material, error) {
	return NewMaterialSrc(dev, matName, depthShaderSrc, MaterialSettings_HasModelMtx)
}
