// The window package owns SDL and the GL context: it creates the window,
// pumps events into the input package, and exposes the window surface as a
// render target.
package window

import (
	"runtime"

	"github.com/bloeys/nmage2d/assert"
	"github.com/bloeys/nmage2d/graphics"
	"github.com/bloeys/nmage2d/input"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/veandco/go-sdl2/sdl"
)

var isInited = false

type WindowFlags uint32

const (
	WindowFlags_OPENGL        WindowFlags = sdl.WINDOW_OPENGL
	WindowFlags_RESIZABLE     WindowFlags = sdl.WINDOW_RESIZABLE
	WindowFlags_FULLSCREEN    WindowFlags = sdl.WINDOW_FULLSCREEN
	WindowFlags_HIDDEN        WindowFlags = sdl.WINDOW_HIDDEN
	WindowFlags_BORDERLESS    WindowFlags = sdl.WINDOW_BORDERLESS
	WindowFlags_ALLOW_HIGHDPI WindowFlags = sdl.WINDOW_ALLOW_HIGHDPI
)

type Window struct {
	SDLWin         *sdl.Window
	GlCtx          sdl.GLContext
	EventCallbacks []func(sdl.Event)

	// Ctx is the render context shared by the window surface and any
	// offscreen targets created on it
	Ctx *graphics.Context
	// Target is the window surface as a render target
	Target *graphics.RenderTarget
}

// Init prepares SDL and requests a GL 2.1 compatibility context. Must be
// called from the main goroutine before any window is created
func Init() error {

	isInited = true

	runtime.LockOSThread()
	return initSDL()
}

func initSDL() error {

	err := sdl.Init(sdl.INIT_TIMER | sdl.INIT_VIDEO)
	if err != nil {
		return err
	}

	sdl.ShowCursor(1)

	// The rendering pipeline needs client vertex arrays and the
	// fixed-function matrix stacks, so a compatibility context is required
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 2)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_COMPATIBILITY)

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)

	return nil
}

func CreateOpenGLWindow(title string, x, y, width, height int32, flags WindowFlags) (*Window, error) {
	return createWindow(title, x, y, width, height, WindowFlags_OPENGL|flags)
}

func CreateOpenGLWindowCentered(title string, width, height int32, flags WindowFlags) (*Window, error) {
	return createWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, WindowFlags_OPENGL|flags)
}

func createWindow(title string, x, y, width, height int32, flags WindowFlags) (*Window, error) {

	assert.T(isInited, "window.Init() was not called!")

	sdlWin, err := sdl.CreateWindow(title, x, y, width, height, uint32(flags))
	if err != nil {
		return nil, err
	}

	win := &Window{
		SDLWin:         sdlWin,
		EventCallbacks: make([]func(sdl.Event), 0),
	}

	win.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		return nil, err
	}

	win.Ctx = graphics.NewContext()
	win.Ctx.DetectCaps()

	fbWidth, fbHeight := sdlWin.GLGetDrawableSize()
	win.Target = graphics.NewRenderTarget(win.Ctx, fbWidth, fbHeight)

	// Get rid of the blinding white startup screen (unfortunately there is
	// still one frame of white)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	sdlWin.GLSwap()

	return win, nil
}

// HandleInputs pumps the SDL event queue into the input package. Call once
// per frame before reading inputs
func (w *Window) HandleInputs() {

	input.EventLoopStart()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		// Fire callbacks
		for i := 0; i < len(w.EventCallbacks); i++ {
			w.EventCallbacks[i](event)
		}

		// Internal processing
		switch e := event.(type) {

		case *sdl.MouseWheelEvent:
			input.HandleMouseWheelEvent(e)

		case *sdl.KeyboardEvent:
			input.HandleKeyboardEvent(e)

		case *sdl.MouseButtonEvent:
			input.HandleMouseBtnEvent(e)

		case *sdl.MouseMotionEvent:
			input.HandleMouseMotionEvent(e)

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				w.handleWindowResize()
			}

		case *sdl.QuitEvent:
			input.HandleQuitEvent(e)
		}
	}
}

func (w *Window) handleWindowResize() {

	fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}

	w.Target.Initialize(fbWidth, fbHeight)
}

// Display swaps the back buffer to the screen
func (w *Window) Display() {
	w.SDLWin.GLSwap()
}

func SetVSync(enabled bool) {

	if enabled {
		sdl.GLSetSwapInterval(1)
	} else {
		sdl.GLSetSwapInterval(0)
	}
}

func (w *Window) Destroy() error {
	w.Target.Release()
	return w.SDLWin.Destroy()
}
