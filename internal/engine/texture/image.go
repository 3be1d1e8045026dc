// Package texture decodes images and uploads them as OpenGL textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // register PNG decoder

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Decode decodes image data into an RGBA image with rows ordered bottom to
// top, the layout OpenGL expects.
func Decode(data []byte) (*image.RGBA, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if format != "png" {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	return FlipVertical(ToRGBA(img)), nil
}

// ToRGBA converts any image to RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	return rgba
}

// FlipVertical returns a copy of img mirrored top to bottom.
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	// Maps source (x, y) to (x, height - y).
	mirror := f64.Aff3{
		1, 0, 0,
		0, -1, float64(b.Dy()),
	}
	xdraw.NearestNeighbor.Transform(dst, mirror, img, b, xdraw.Src, nil)
	return dst
}
