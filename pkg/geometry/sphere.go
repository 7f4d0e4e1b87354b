package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-spectral-pathtracer/pkg/core"
	"github.com/df07/go-spectral-pathtracer/pkg/material"
	"github.com/df07/go-spectral-pathtracer/pkg/spectrum"
)

// Sphere represents a sphere with spectral surface properties
type Sphere struct {
	Radius      float64
	Center      mgl64.Vec3
	Emission    spectrum.Spectrum
	Reflectance spectrum.Spectrum
	Material    material.Kind
}

// NewSphere creates a new sphere
func NewSphere(radius float64, center mgl64.Vec3, emission, reflectance spectrum.Spectrum, kind material.Kind) *Sphere {
	return &Sphere{
		Radius:      radius,
		Center:      center,
		Emission:    emission,
		Reflectance: reflectance,
		Material:    kind,
	}
}

// Intersect returns the distance to the nearest intersection further than
// core.Epsilon along the ray. The ray direction must be unit length.
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	// Vector from ray origin to sphere center
	op := s.Center.Sub(ray.Origin)

	// With |d| = 1 the quadratic reduces to t² - 2bt + |op|² - r² = 0
	b := op.Dot(ray.Direction)
	det := b*b - op.Dot(op) + s.Radius*s.Radius
	if det < 0 {
		return 0, false
	}

	sqrtDet := math.Sqrt(det)
	if t := b - sqrtDet; t > core.Epsilon {
		return t, true
	}
	if t := b + sqrtDet; t > core.Epsilon {
		return t, true
	}
	return 0, false
}

// Normal returns the outward unit normal at a point on the surface
func (s *Sphere) Normal(point mgl64.Vec3) mgl64.Vec3 {
	return point.Sub(s.Center).Normalize()
}

// SurfaceArea returns 4πr²
func (s *Sphere) SurfaceArea() float64 {
	return 4.0 * math.Pi * s.Radius * s.Radius
}
