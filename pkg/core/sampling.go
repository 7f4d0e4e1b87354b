package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrthonormalBasis builds (u, v) so that (u, v, w) is a right-handed orthonormal frame.
// w must be unit length. The helper axis is whichever of Y or X is less aligned with w.
func OrthonormalBasis(w mgl64.Vec3) (u, v mgl64.Vec3) {
	if math.Abs(w.X()) > 0.1 {
		u = mgl64.Vec3{0, 1, 0}.Cross(w).Normalize()
	} else {
		u = mgl64.Vec3{1, 0, 0}.Cross(w).Normalize()
	}
	v = w.Cross(u)
	return u, v
}

// SampleCosineHemisphere generates a cosine-weighted direction in the hemisphere around
// normal from two uniform numbers. The density of the returned direction is cosθ/π.
func SampleCosineHemisphere(normal mgl64.Vec3, u1, u2 float64) mgl64.Vec3 {
	r1 := 2.0 * math.Pi * u1
	r2s := math.Sqrt(u2)

	u, v := OrthonormalBasis(normal)

	return u.Mul(math.Cos(r1) * r2s).
		Add(v.Mul(math.Sin(r1) * r2s)).
		Add(normal.Mul(math.Sqrt(1.0 - u2))).
		Normalize()
}

// SampleOnUnitSphere generates a uniform direction on the unit sphere.
// u1 drives the azimuth and u2 the height.
func SampleOnUnitSphere(u1, u2 float64) mgl64.Vec3 {
	phi := 2.0 * math.Pi * u1
	z := 1.0 - 2.0*u2 // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	return mgl64.Vec3{r * math.Cos(phi), r * math.Sin(phi), z}
}
