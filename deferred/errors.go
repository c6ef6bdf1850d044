package deferred

import (
	"errors"
	"io/fs"

	"github.com/bloeys/ndefer/renderer"
	"github.com/bloeys/ndefer/rendertarget"
)

type ErrorKind uint8

const (
	// ErrorKind_IO is a failure reading a shader file or writing a screenshot
	ErrorKind_IO ErrorKind = iota
	// ErrorKind_Program is a compile, link or uniform upload failure
	ErrorKind_Program
	// ErrorKind_Rendertarget is a framebuffer allocation or completeness failure. It is also
	// used for ShadowPassBegin with a caster that has no usable shadow map target, wrapping
	// ErrInvalidShadowCaster, so check with errors.Is to tell the two apart.
	ErrorKind_Rendertarget
	// ErrorKind_Texture is a texture creation failure
	ErrorKind_Texture
	// ErrorKind_LightPassRendertargetNotAvailable is returned when asking a direct mode pipeline
	// for its light pass color texture
	ErrorKind_LightPassRendertargetNotAvailable
)

func (k ErrorKind) String() string {

	switch k {
	case ErrorKind_IO:
		return "IO"
	case ErrorKind_Program:
		return "Program"
	case ErrorKind_Rendertarget:
		return "Rendertarget"
	case ErrorKind_Texture:
		return "Texture"
	case ErrorKind_LightPassRendertargetNotAvailable:
		return "LightPassRendertargetNotAvailable"
	default:
		return "Unknown"
	}
}

var (
	ErrLightPassRendertargetNotAvailable = errors.New("light pass render target is not available, create the pipeline with LightPassMode_Buffered")
	ErrInvalidShadowCaster               = errors.New("shadow caster has no usable camera or depth map")
)

// Error is the error type returned by all pipeline operations
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return "deferred: " + e.Op + " (" + e.Kind.String() + "): " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a pipeline *Error of the given kind
func IsKind(err error, kind ErrorKind) bool {

	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	return e.Kind == kind
}

// wrapErr returns nil for a nil err
func wrapErr(op string, err error) error {

	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return err
	}

	return &Error{Kind: classify(err), Op: op, Err: err}
}

// classify checks texture errors before render target errors, as render targets wrap
// the texture errors of their attachments
func classify(err error) ErrorKind {

	var texErr *renderer.TextureError
	if errors.As(err, &texErr) {
		return ErrorKind_Texture
	}

	var progErr *renderer.ProgramError
	if errors.As(err, &progErr) {
		return ErrorKind_Program
	}

	var rtErr *rendertarget.Error
	if errors.As(err, &rtErr) {
		return ErrorKind_Rendertarget
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ErrorKind_IO
	}

	// Anything else comes from allocating GPU objects
	return ErrorKind_Rendertarget
}
