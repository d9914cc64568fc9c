// Implements a raster consumer for normalized fragments, by wrapping
// oksvg and rasterx. The fragment pipeline itself never renders; this
// package is the collaborator the cleaned string is handed to when the
// preview surface wants pixels.
package svgrender

import (
	"errors"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

var errEmptyIcon = errors.New("fragment has no drawable extent")

// ToImage rasterizes a normalized fragment. When width or height is not
// positive the fragment's own viewBox dimensions are used.
func ToImage(svg io.Reader, width, height int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(svg)
	if err != nil {
		return nil, err
	}
	if width <= 0 {
		width = int(icon.ViewBox.W)
	}
	if height <= 0 {
		height = int(icon.ViewBox.H)
	}
	if width <= 0 || height <= 0 {
		return nil, errEmptyIcon
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img, nil
}

// ToPNG rasterizes a normalized fragment and encodes it as PNG.
func ToPNG(w io.Writer, fragment string, width, height int) error {
	img, err := ToImage(strings.NewReader(fragment), width, height)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// EncodePNG writes an already-rasterized image as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// Thumbnail scales an image down so its longest edge is maxEdge,
// keeping aspect ratio. Images already small enough come back as-is.
func Thumbnail(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxEdge <= 0 || (w <= maxEdge && h <= maxEdge) {
		return img
	}
	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
