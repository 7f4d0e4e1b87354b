package core

import "github.com/go-gl/mathgl/mgl64"

// Epsilon is the minimum hit distance accepted along a ray. It keeps secondary rays
// from re-hitting the surface they start on.
const Epsilon = 1e-4

// Ray represents a ray with an origin and a unit-length direction
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay creates a new ray. The direction is expected to be normalized by the caller.
func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// LengthSquared returns the squared magnitude of v
func LengthSquared(v mgl64.Vec3) float64 {
	return v.Dot(v)
}
