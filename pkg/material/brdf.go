package material

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-spectral-pathtracer/pkg/spectrum"
)

// BRDF evaluates the reflectance of a surface at one wavelength (nm).
// in and out point away from the surface. The diffuse model ignores the directions;
// they are part of the signature for view-dependent models.
// Wavelengths outside the stored spectrum reflect nothing.
func BRDF(kind Kind, reflectance spectrum.Spectrum, in, out, normal mgl64.Vec3, wavelength float64) float64 {
	switch kind {
	case Diffuse:
		albedo, ok := reflectance.Sample(wavelength)
		if !ok {
			return 0
		}
		// Lambertian BRDF is constant: albedo / π
		return albedo / math.Pi
	default:
		return 0
	}
}
