// Package imageio reads and writes rendered radiance images.
package imageio

import "github.com/go-gl/mathgl/mgl64"

// Image is a linear RGB raster with row 0 at the top
type Image interface {
	Size() (width, height int)
	RGB(x, y int) mgl64.Vec3
}

// Raster is an in-memory Image
type Raster struct {
	Width  int
	Height int
	Pixels []mgl64.Vec3
}

// NewRaster creates a black raster
func NewRaster(width, height int) *Raster {
	return &Raster{Width: width, Height: height, Pixels: make([]mgl64.Vec3, width*height)}
}

func (r *Raster) Size() (width, height int) {
	return r.Width, r.Height
}

func (r *Raster) RGB(x, y int) mgl64.Vec3 {
	return r.Pixels[y*r.Width+x]
}
