package shaders

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/logging"
	"github.com/bloeys/ndefer/renderer"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ renderer.Program = &ShaderProgram{}

type ShaderProgram struct {
	id           uint32
	VertShaderId uint32
	FragShaderId uint32
	GeomShaderId uint32

	unifLocs map[string]int32
}

func (sp *ShaderProgram) Id() uint32 {
	return sp.id
}

func (sp *ShaderProgram) AttachShader(shader Shader) {

	gl.AttachShader(sp.id, shader.Id)
	switch shader.Type {
	case ShaderType_Vertex:
		sp.VertShaderId = shader.Id
	case ShaderType_Fragment:
		sp.FragShaderId = shader.Id
	case ShaderType_Geometry:
		sp.GeomShaderId = shader.Id
	}
}

// Link links the attached shaders then deletes them, as the program keeps what it needs
func (sp *ShaderProgram) Link() error {

	gl.LinkProgram(sp.id)

	if sp.VertShaderId != 0 {
		gl.DeleteShader(sp.VertShaderId)
		sp.VertShaderId = 0
	}

	if sp.FragShaderId != 0 {
		gl.DeleteShader(sp.FragShaderId)
		sp.FragShaderId = 0
	}

	if sp.GeomShaderId != 0 {
		gl.DeleteShader(sp.GeomShaderId)
		sp.GeomShaderId = 0
	}

	if errMsg, ok := getProgramLinkErrors(sp.id); !ok {
		logging.Logger().Error("shader program link failed", "programId", sp.id, "log", errMsg)
		return &renderer.ProgramError{Op: "link", Log: errMsg}
	}

	return nil
}

func (sp *ShaderProgram) Use() {
	gl.UseProgram(sp.id)
}

func (sp *ShaderProgram) UnUse() {
	gl.UseProgram(0)
}

// GetUnifLoc returns the cached uniform location. Uniforms the GLSL compiler
// optimized away are reported as missing too.
func (sp *ShaderProgram) GetUnifLoc(uniformName string) (int32, error) {

	loc, ok := sp.unifLocs[uniformName]
	if ok {
		return loc, nil
	}

	name := gl.Str(uniformName + "\x00")
	loc = gl.GetUniformLocation(sp.id, name)
	if loc == -1 {
		return -1, &renderer.ProgramError{Op: "set uniform", Name: uniformName, Log: "uniform does not exist or is unused"}
	}

	sp.unifLocs[uniformName] = loc
	return loc, nil
}

func (sp *ShaderProgram) SetUnifInt32(uniformName string, val int32) error {

	loc, err := sp.GetUnifLoc(uniformName)
	if err != nil {
		return err
	}

	gl.ProgramUniform1i(sp.id, loc, val)
	return nil
}

func (sp *ShaderProgram) SetUnifFloat32(uniformName string, val float32) error {

	loc, err := sp.GetUnifLoc(uniformName)
	if err != nil {
		return err
	}

	gl.ProgramUniform1f(sp.id, loc, val)
	return nil
}

func (sp *ShaderProgram) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) error {

	loc, err := sp.GetUnifLoc(uniformName)
	if err != nil {
		return err
	}

	gl.ProgramUniform3fv(sp.id, loc, 1, &vec3.Data[0])
	return nil
}

func (sp *ShaderProgram) SetUnifMat3(uniformName string, mat3 *gglm.Mat3) error {

	loc, err := sp.GetUnifLoc(uniformName)
	if err != nil {
		return err
	}

	gl.ProgramUniformMatrix3fv(sp.id, loc, 1, false, &mat3.Data[0][0])
	return nil
}

func (sp *ShaderProgram) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) error {

	loc, err := sp.GetUnifLoc(uniformName)
	if err != nil {
		return err
	}

	gl.ProgramUniformMatrix4fv(sp.id, loc, 1, false, &mat4.Data[0][0])
	return nil
}

func (sp *ShaderProgram) Delete() {

	if sp.id == 0 {
		return
	}

	gl.DeleteProgram(sp.id)
	sp.id = 0
	clear(sp.unifLocs)
}
