package imageio

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl64"
)

// Display gamma of the PNG preview
const previewGamma = 2.2

// SavePNG writes an 8-bit preview of img. Each channel is scaled by exposure, clamped
// to [0, 1] and gamma encoded.
func SavePNG(path string, img Image, exposure float64) error {
	width, height := img.Size()
	dc := gg.NewContext(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := ToneMap(img.RGB(x, y), exposure)
			dc.SetRGB(c[0], c[1], c[2])
			dc.SetPixel(x, y)
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save PNG %s: %w", path, err)
	}
	return nil
}

// ToneMap converts a linear colour to a display value in [0, 1]
func ToneMap(c mgl64.Vec3, exposure float64) mgl64.Vec3 {
	var out mgl64.Vec3
	for i := range c {
		v := c[i] * exposure
		if !(v > 0) {
			continue
		}
		out[i] = math.Pow(math.Min(v, 1), 1/previewGamma)
	}
	return out
}
