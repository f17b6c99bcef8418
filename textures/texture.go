// The textures package manages 2D OpenGL textures and their binding,
// including the texture-matrix handling needed to address textures in
// pixel coordinates.
package textures

import (
	"errors"
	"image"
	"runtime"
	"sync/atomic"

	"github.com/bloeys/nmage2d/transform"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/mandykoh/prism"
	xdraw "golang.org/x/image/draw"
)

// CoordinateType selects how texture coordinates address a bound texture
type CoordinateType int

const (
	// Coordinates in the range 0-1
	CoordinateType_Normalized CoordinateType = iota
	// Coordinates in the range 0-size
	CoordinateType_Pixels
)

// lastCacheId is the source of process-unique texture identities.
//
// Identity is deliberately NOT the GL handle or the object address: both can
// be recycled after a texture is destroyed, and a recycled value would make
// the render-state cache mistake a brand new texture for the previously
// bound one. The counter only ever goes up, so every texture that ever
// existed has a distinct id, and id 0 always means "no texture".
var lastCacheId atomic.Uint64

type Texture struct {
	Id      uint32
	cacheId uint64

	// Logical size in pixels
	Width, Height int32
	// Size of the backing store, which can exceed the logical size
	// (e.g. padding to power-of-two on old hardware)
	ActualWidth, ActualHeight int32

	// IsFlipped is set when the pixel rows are stored bottom-up, which is the
	// case for textures rendered to through an fbo
	IsFlipped bool
	// IsFBOAttachment marks textures that are the color attachment of an
	// offscreen target. The draw dispatcher force-unbinds these after use to
	// work around drivers that fail to clear a render target that is still
	// bound as a texture
	IsFBOAttachment bool

	Smooth bool
}

// CacheId returns the process-unique identity of this texture
func (t *Texture) CacheId() uint64 {
	return t.cacheId
}

func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.Id)
	t.Id = 0
}

func (t *Texture) SetSmooth(smooth bool) {

	if smooth == t.Smooth {
		return
	}

	t.Smooth = smooth

	gl.BindTexture(gl.TEXTURE_2D, t.Id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterFor(smooth))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterFor(smooth))
}

func filterFor(smooth bool) int32 {
	if smooth {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func newTexture(width, height int32, smooth bool) (*Texture, error) {

	t := &Texture{
		cacheId:      lastCacheId.Add(1),
		Width:        width,
		Height:       height,
		ActualWidth:  width,
		ActualHeight: height,
		Smooth:       smooth,
	}

	gl.GenTextures(1, &t.Id)
	if t.Id == 0 {
		return nil, errors.New("failed to create OpenGL texture")
	}

	gl.BindTexture(gl.TEXTURE_2D, t.Id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterFor(smooth))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterFor(smooth))

	return t, nil
}

// NewEmpty creates an uninitialized texture, e.g. as the color attachment of
// an offscreen target
func NewEmpty(width, height int32, smooth bool) (*Texture, error) {

	t, err := newTexture(width, height, smooth)
	if err != nil {
		return nil, err
	}

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(nil))

	return t, nil
}

// NewFromImage uploads img as a texture. With mipmaps enabled a full pyramid
// is generated on the host by repeated halving
func NewFromImage(img image.Image, smooth, mipmaps bool) (*Texture, error) {

	nrgba := prism.ConvertImageToNRGBA(img, runtime.NumCPU())
	nx, ny := int32(nrgba.Rect.Dx()), int32(nrgba.Rect.Dy())
	if nx == 0 || ny == 0 {
		return nil, errors.New("cannot create a texture from an empty image")
	}

	t, err := newTexture(nx, ny, smooth)
	if err != nil {
		return nil, err
	}

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, nx, ny, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&nrgba.Pix[0]))

	if mipmaps {

		gl.BindTexture(gl.TEXTURE_2D, t.Id)
		if smooth {
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		} else {
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_NEAREST)
		}

		level := int32(1)
		src := nrgba
		for nx > 1 || ny > 1 {

			nx = max(nx/2, 1)
			ny = max(ny/2, 1)

			dst := image.NewNRGBA(image.Rect(0, 0, int(nx), int(ny)))
			xdraw.ApproxBiLinear.Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)

			gl.TexImage2D(gl.TEXTURE_2D, level, gl.RGBA, nx, ny, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&dst.Pix[0]))

			src = dst
			level++
		}
	}

	return t, nil
}

// Bind makes t the current texture and sets up the texture matrix for the
// requested coordinate space. A nil texture unbinds and resets the matrix.
//
// When texTransform is given it overrides the coordinate-type matrix
// entirely; the caller is expected to have baked any size normalization and
// row flipping into it (the sprites package does this).
func Bind(t *Texture, coordType CoordinateType, texTransform *transform.Transform) {

	if t == nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.MatrixMode(gl.TEXTURE)
		gl.LoadIdentity()
		gl.MatrixMode(gl.MODELVIEW)
		return
	}

	gl.BindTexture(gl.TEXTURE_2D, t.Id)

	if texTransform != nil {
		gl.MatrixMode(gl.TEXTURE)
		gl.LoadMatrixf(texTransform.Matrix())
		gl.MatrixMode(gl.MODELVIEW)
		return
	}

	if coordType == CoordinateType_Pixels || t.IsFlipped {

		matrix := [16]float32{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}

		if coordType == CoordinateType_Pixels {
			matrix[0] = 1 / float32(t.ActualWidth)
			matrix[5] = 1 / float32(t.ActualHeight)
		}

		if t.IsFlipped {
			matrix[5] = -matrix[5]
			matrix[13] = float32(t.Height) / float32(t.ActualHeight)
		}

		gl.MatrixMode(gl.TEXTURE)
		gl.LoadMatrixf(&matrix[0])
		gl.MatrixMode(gl.MODELVIEW)
	}
}
