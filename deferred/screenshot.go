package deferred

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type imageEncoder func(w io.Writer, img image.Image) error

var screenshotEncoders = map[string]imageEncoder{
	".png":  png.Encode,
	".bmp":  bmp.Encode,
	".tif":  encodeTiff,
	".tiff": encodeTiff,
}

func encodeTiff(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// Pixels reads the final color of the last frame as an image: the light pass target in
// buffered mode, otherwise the screen.
func (p *Pipeline) Pixels() *image.RGBA {

	var fboId uint32
	if p.buffered != nil {
		fboId = p.buffered.target.Id
	}

	width, height := p.Width(), p.Height()
	rgb := make([]byte, int(width)*int(height)*3)
	p.ctx.Dev.ReadPixelsRGB(fboId, width, height, rgb)

	// GPU rows start at the bottom
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	for y := 0; y < int(height); y++ {

		srcRow := rgb[(int(height)-1-y)*int(width)*3:]
		dstRow := img.Pix[y*img.Stride:]
		for x := 0; x < int(width); x++ {
			dstRow[x*4+0] = srcRow[x*3+0]
			dstRow[x*4+1] = srcRow[x*3+1]
			dstRow[x*4+2] = srcRow[x*3+2]
			dstRow[x*4+3] = 255
		}
	}

	return img
}

// SaveScreenshot writes Pixels to path as an 8-bit RGB image.
// The format is picked from the extension: .png, .bmp, .tif or .tiff.
func (p *Pipeline) SaveScreenshot(path string) (err error) {

	ext := strings.ToLower(filepath.Ext(path))
	encode, ok := screenshotEncoders[ext]
	if !ok {
		return &Error{Kind: ErrorKind_IO, Op: "save screenshot", Err: fmt.Errorf("unsupported screenshot format '%s' of path '%s'", ext, path)}
	}

	img := p.Pixels()

	f, err := os.Create(path)
	if err != nil {
		return wrapErr("save screenshot", err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = wrapErr("save screenshot", closeErr)
		}
	}()

	if err := encode(f, img); err != nil {
		return &Error{Kind: ErrorKind_IO, Op: "save screenshot", Err: err}
	}

	return nil
}
