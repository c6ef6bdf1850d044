package engine

import (
	"github.com/veandco/go-sdl2/sdl"
)

var (
	isRunning = false

	frameStartCounter uint64
	dt                float32
)

type Game interface {
	Init()

	Update()
	Render()
	FrameEnd()

	DeInit()
}

// Run calls the game hooks once per frame until Quit is called.
// Render is called before the window is swapped, so the back buffer can still be read in it.
func Run(g Game, w *Window) {

	isRunning = true
	frameStartCounter = sdl.GetPerformanceCounter()

	g.Init()

	for isRunning {

		frameStart()

		w.handleInputs()
		g.Update()
		g.Render()

		w.SDLWin.GLSwap()
		g.FrameEnd()
	}

	g.DeInit()
}

func Quit() {
	isRunning = false
}

func frameStart() {
	now := sdl.GetPerformanceCounter()
	dt = float32(now-frameStartCounter) / float32(sdl.GetPerformanceFrequency())
	frameStartCounter = now
}

// DT returns the duration of the last frame in seconds
func DT() float32 {
	return dt
}
