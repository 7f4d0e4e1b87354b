package renderer

import "github.com/go-gl/mathgl/mgl64"

// Image is a linear RGB raster stored top row first
type Image struct {
	Width  int
	Height int
	Pixels []mgl64.Vec3
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]mgl64.Vec3, width*height),
	}
}

// Size returns the image dimensions
func (img *Image) Size() (width, height int) {
	return img.Width, img.Height
}

// RGB returns the pixel at column x of row y, counting rows from the top
func (img *Image) RGB(x, y int) mgl64.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// Set stores a pixel. Distinct pixels may be written concurrently.
func (img *Image) Set(x, y int, c mgl64.Vec3) {
	img.Pixels[y*img.Width+x] = c
}
