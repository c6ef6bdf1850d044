package renderer

import "fmt"

// ProgramError is returned when a shader fails to compile or link, or a uniform upload fails.
type ProgramError struct {
	// Op is one of "compile", "link" or "set uniform"
	Op string
	// Name is the shader stage for compile errors and the uniform name for uniform errors
	Name string
	Log  string
}

func (e *ProgramError) Error() string {

	if e.Name == "" {
		return fmt.Sprintf("program %s failed: %s", e.Op, e.Log)
	}

	return fmt.Sprintf("program %s of '%s' failed: %s", e.Op, e.Name, e.Log)
}

// TextureError is returned when a texture can not be created.
type TextureError struct {
	Width  uint32
	Height uint32
	Format TextureFormat
	Reason string
}

func (e *TextureError) Error() string {
	return fmt.Sprintf("failed to create %dx%d %s texture: %s", e.Width, e.Height, e.Format, e.Reason)
}
