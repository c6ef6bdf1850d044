package deferred

import (
	"github.com/bloeys/gglm/gglm"
)

// LightPassMode is chosen when a pipeline is created and never changes
type LightPassMode uint8

const (
	// LightPassMode_Direct accumulates lights straight into the screen
	LightPassMode_Direct LightPassMode = iota
	// LightPassMode_Buffered accumulates lights into an offscreen target that CopyToScreen then
	// copies to the screen together with the geometry depth
	LightPassMode_Buffered
)

func (m LightPassMode) String() string {

	switch m {
	case LightPassMode_Direct:
		return "Direct"
	case LightPassMode_Buffered:
		return "Buffered"
	default:
		return "Unknown"
	}
}

type Config struct {
	Width  uint32
	Height uint32

	LightPassMode LightPassMode

	// BackgroundColor is the clear color of the geometry target, and so what shows where nothing was drawn
	BackgroundColor gglm.Vec4

	// Optional shader overrides. Empty paths use the built in shaders.
	LightPassShaderPath string
	CopyShaderPath      string
}

func DefaultConfig(width, height uint32) Config {
	return Config{
		Width:           width,
		Height:          height,
		LightPassMode:   LightPassMode_Buffered,
		BackgroundColor: gglm.NewVec4(0, 0, 0, 1),
	}
}
