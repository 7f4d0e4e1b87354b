package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-spectral-pathtracer/pkg/core"
	"github.com/df07/go-spectral-pathtracer/pkg/scene"
)

// Camera generates rays for rendering. Film coordinates are in pixels with the origin
// at the bottom-left corner and y pointing up.
type Camera struct {
	origin     mgl64.Vec3
	direction  mgl64.Vec3
	cx         mgl64.Vec3 // Film x axis scaled to the full image width
	cy         mgl64.Vec3 // Film y axis scaled to the full image height
	nearOffset float64
	width      float64
	height     float64
}

// NewCamera creates a pinhole camera for an image of the given size
func NewCamera(config scene.CameraConfig, width, height int) *Camera {
	direction := config.Direction.Normalize()
	cx := mgl64.Vec3{float64(width) * config.FieldScale / float64(height), 0, 0}
	cy := cx.Cross(direction).Normalize().Mul(config.FieldScale)

	return &Camera{
		origin:     config.Origin,
		direction:  direction,
		cx:         cx,
		cy:         cy,
		nearOffset: config.NearOffset,
		width:      float64(width),
		height:     float64(height),
	}
}

// GetRay generates the ray through film position (px, py). The ray starts nearOffset
// along the unnormalized film direction, so off-axis rays start slightly further out.
func (c *Camera) GetRay(px, py float64) core.Ray {
	d := c.cx.Mul(px/c.width - 0.5).
		Add(c.cy.Mul(py/c.height - 0.5)).
		Add(c.direction)

	return core.NewRay(c.origin.Add(d.Mul(c.nearOffset)), d.Normalize())
}

// TentOffset maps a uniform u in [0,1) to an offset in [-1,1) distributed with a
// triangular density peaking at 0
func TentOffset(u float64) float64 {
	r := 2 * u
	if r < 1 {
		return math.Sqrt(r) - 1
	}
	return 1 - math.Sqrt(2-r)
}
