package main

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nmage2d/colors"
	"github.com/bloeys/nmage2d/config"
	"github.com/bloeys/nmage2d/graphics"
	"github.com/bloeys/nmage2d/input"
	"github.com/bloeys/nmage2d/logging"
	"github.com/bloeys/nmage2d/sprites"
	"github.com/bloeys/nmage2d/textures"
	"github.com/bloeys/nmage2d/window"
	"github.com/veandco/go-sdl2/sdl"
)

// Demo: a checkerboard sprite moved with the arrow keys over a vertex-array
// background, plus an offscreen target re-drawn as a second sprite.

func main() {

	cfg, err := config.Load("nmage2d.toml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.SetLogger(logging.New(cfg.Log.Level, cfg.Log.Dir))

	if err := window.Init(); err != nil {
		logging.Errorf("Failed to init window system. Err: %v", err)
		os.Exit(1)
	}

	flags := window.WindowFlags(0)
	if cfg.Window.Resizable {
		flags |= window.WindowFlags_RESIZABLE
	}

	win, err := window.CreateOpenGLWindowCentered(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, flags)
	if err != nil {
		logging.Errorf("Failed to create window. Err: %v", err)
		os.Exit(1)
	}
	defer win.Destroy()

	window.SetVSync(cfg.Window.VSync)

	checkerTex, err := textures.NewFromImage(checkerboard(128, 16), false, false)
	if err != nil {
		logging.Errorf("Failed to create texture. Err: %v", err)
		os.Exit(1)
	}
	defer checkerTex.Delete()

	player := sprites.NewSprite(checkerTex)
	player.SetOrigin(64, 64)
	player.SetPosition(float32(cfg.Window.Width)/2, float32(cfg.Window.Height)/2)

	// Offscreen target showing the same sprite tinted, to exercise render
	// textures and the fbo texture flip
	offscreen, err := graphics.NewRenderTexture(win.Ctx, 256, 256, true)
	if err != nil {
		logging.Warnf("Render textures unavailable: %v", err)
	}

	var offscreenSprite sprites.Sprite
	if offscreen != nil {
		offscreenSprite = sprites.NewSprite(offscreen.Texture())
		offscreenSprite.SetPosition(16, 16)
		defer offscreen.Release()
	}

	tinted := sprites.NewSprite(checkerTex)
	tinted.SetColor(colors.New(255, 128, 128, 255))
	tinted.SetScale(2, 2)

	background := backgroundVertices(float32(cfg.Window.Width), float32(cfg.Window.Height))

	for !input.IsQuitClicked() {

		win.HandleInputs()

		if input.KeyClicked(sdl.K_ESCAPE) {
			break
		}

		const speed = 4
		if input.KeyDown(sdl.K_LEFT) {
			player.Move(-speed, 0)
		}
		if input.KeyDown(sdl.K_RIGHT) {
			player.Move(speed, 0)
		}
		if input.KeyDown(sdl.K_UP) {
			player.Move(0, -speed)
		}
		if input.KeyDown(sdl.K_DOWN) {
			player.Move(0, speed)
		}
		player.Rotate(1)

		if _, wheelY := input.GetMouseWheelMotion(); wheelY != 0 {
			view := win.Target.View()
			view.Zoom(1 - 0.1*float32(wheelY))
			win.Target.SetView(view)
		}

		if offscreen != nil {

			offscreen.Bind()
			offscreen.Clear(colors.New(30, 30, 60, 255))

			offscreen.DrawObject(&tinted, graphics.DefaultRenderStates())

			offscreen.Display()

			w, h := win.Target.Size()
			offscreen.UnBind(w, h)
		}

		win.Target.Clear(colors.New(12, 12, 16, 255))

		states := graphics.DefaultRenderStates()
		win.Target.Draw(background, graphics.Triangles, states)
		win.Target.DrawObject(&player, states)
		if offscreen != nil {
			win.Target.DrawObject(&offscreenSprite, states)
		}

		win.Display()
	}
}

// checkerboard builds a size x size black/white checker image with the given
// cell size
func checkerboard(size, cell int) image.Image {

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {

			c := color.NRGBA{235, 235, 235, 255}
			if (x/cell+y/cell)%2 == 0 {
				c = color.NRGBA{30, 30, 30, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	return img
}

// backgroundVertices builds a full-window gradient out of two triangles
func backgroundVertices(width, height float32) []graphics.Vertex {

	topLeft := graphics.Vertex{Position: gglm.Vec2{Data: [2]float32{0, 0}}, Color: colors.New(20, 20, 40, 255)}
	topRight := graphics.Vertex{Position: gglm.Vec2{Data: [2]float32{width, 0}}, Color: colors.New(20, 40, 20, 255)}
	bottomLeft := graphics.Vertex{Position: gglm.Vec2{Data: [2]float32{0, height}}, Color: colors.New(40, 20, 20, 255)}
	bottomRight := graphics.Vertex{Position: gglm.Vec2{Data: [2]float32{width, height}}, Color: colors.New(40, 40, 40, 255)}

	return []graphics.Vertex{
		topLeft, topRight, bottomRight,
		topLeft, bottomRight, bottomLeft,
	}
}
