package shaders

import (
	"os"
	"strings"

	"github.com/bloeys/ndefer/logging"
	"github.com/bloeys/ndefer/renderer"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type Shader struct {
	Id   uint32
	Type ShaderType
}

func (s *Shader) Delete() {
	gl.DeleteShader(s.Id)
	s.Id = 0
}

func NewShaderProgram() (*ShaderProgram, error) {

	id := gl.CreateProgram()
	if id == 0 {
		return nil, &renderer.ProgramError{Op: "create", Log: "glCreateProgram returned 0"}
	}

	return &ShaderProgram{
		id:       id,
		unifLocs: make(map[string]int32),
	}, nil
}

// LoadAndCompileCombinedShader reads a combined shader file. Read failures are returned as is
// so callers can tell I/O failures from program failures.
func LoadAndCompileCombinedShader(shaderPath string) (*ShaderProgram, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		logging.Logger().Error("failed to read shader", "path", shaderPath, "err", err)
		return nil, err
	}

	return LoadAndCompileCombinedShaderSrc(combinedSource)
}

func LoadAndCompileCombinedShaderSrc(shaderSrc []byte) (*ShaderProgram, error) {

	sections, err := SplitCombinedSrc(shaderSrc)
	if err != nil {
		return nil, &renderer.ProgramError{Op: "parse", Log: err.Error()}
	}

	shdrProg, err := NewShaderProgram()
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(sections); i++ {

		shdr, err := CompileShaderOfType(sections[i].Src, sections[i].Type)
		if err != nil {
			shdrProg.Delete()
			return nil, err
		}

		shdrProg.AttachShader(shdr)
	}

	if err := shdrProg.Link(); err != nil {
		shdrProg.Delete()
		return nil, err
	}

	return shdrProg, nil
}

func CompileShaderOfType(shaderSource []byte, shaderType ShaderType) (Shader, error) {

	shaderId := gl.CreateShader(shaderType.ToGl())
	if shaderId == 0 {
		return Shader{}, &renderer.ProgramError{Op: "compile", Name: shaderType.String(), Log: "glCreateShader returned 0"}
	}

	//Load shader source and compile
	shaderCStr, shaderFree := gl.Strs(string(shaderSource) + "\x00")
	defer shaderFree()
	gl.ShaderSource(shaderId, 1, shaderCStr, nil)

	gl.CompileShader(shaderId)
	if errMsg, ok := getShaderCompileErrors(shaderId); !ok {
		gl.DeleteShader(shaderId)
		logging.Logger().Error("shader compilation failed", "type", shaderType.String(), "log", errMsg)
		return Shader{}, &renderer.ProgramError{Op: "compile", Name: shaderType.String(), Log: errMsg}
	}

	return Shader{Id: shaderId, Type: shaderType}, nil
}

func getShaderCompileErrors(shaderId uint32) (string, bool) {

	var compiledSuccessfully int32
	gl.GetShaderiv(shaderId, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return "", true
	}

	var logLength int32
	gl.GetShaderiv(shaderId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength+1)))
	gl.GetShaderInfoLog(shaderId, logLength, nil, log)

	return gl.GoStr(log), false
}

func getProgramLinkErrors(progId uint32) (string, bool) {

	var linkedSuccessfully int32
	gl.GetProgramiv(progId, gl.LINK_STATUS, &linkedSuccessfully)
	if linkedSuccessfully == gl.TRUE {
		return "", true
	}

	var logLength int32
	gl.GetProgramiv(progId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength+1)))
	gl.GetProgramInfoLog(progId, logLength, nil, log)

	return gl.GoStr(log), false
}
