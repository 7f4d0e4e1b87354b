package integrator

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-spectral-pathtracer/pkg/core"
	"github.com/df07/go-spectral-pathtracer/pkg/scene"
)

// Largest gap between the sampled light distance and the shadow ray hit that still
// counts as reaching the light
const visibilityTolerance = 1e-3

// DirectLighting estimates the radiance reflected from point (on sphere id) towards in
// by sampling one point uniformly on the light's surface. normal must face the incoming
// ray. Samples facing away from either surface or occluded by other geometry
// contribute exactly 0.
func DirectLighting(s *scene.Scene, sampler core.Sampler, point, in, normal mgl64.Vec3, id int, wavelength float64, visibility Visibility) float64 {
	light := s.Light()

	// Offset slightly off the surface so the shadow ray cannot stop short of it
	onSphere := core.SampleOnUnitSphere(sampler.Get1D(), sampler.Get1D())
	lightPos := light.Center.Add(onSphere.Mul(light.Radius + core.Epsilon))

	lightNormal := lightPos.Sub(light.Center).Normalize()
	toLight := lightPos.Sub(point)
	dist2 := core.LengthSquared(toLight)
	lightDir := toLight.Normalize()

	cosSurface := normal.Dot(lightDir)
	cosLight := lightNormal.Dot(lightDir.Mul(-1))
	if cosSurface < 0 || cosLight < 0 {
		return 0
	}

	hit, ok := s.Intersect(core.NewRay(point, lightDir))
	if !ok || !visible(visibility, hit, s.LightID(), dist2) {
		return 0
	}

	g := cosSurface * cosLight / dist2
	lightPDF := 1.0 / light.SurfaceArea()
	return s.Emission(wavelength) * s.BRDF(id, in, lightDir, normal, wavelength) * g / lightPDF
}

func visible(policy Visibility, hit scene.Hit, lightID int, dist2 float64) bool {
	switch policy {
	case VisibilityLightID:
		return hit.ID == lightID
	default:
		return math.Abs(math.Sqrt(dist2)-hit.Distance) < visibilityTolerance
	}
}
