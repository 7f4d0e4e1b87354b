package integrator

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-spectral-pathtracer/pkg/core"
	"github.com/df07/go-spectral-pathtracer/pkg/scene"
)

// PathTracer implements unidirectional spectral path tracing with one explicit light
// sample per diffuse bounce. The light is never seen directly or through a bounce; it
// contributes only through DirectLighting, so paths are not double counted.
type PathTracer struct {
	scene  *scene.Scene
	config Config
}

// NewPathTracer creates a new path tracer over an immutable scene
func NewPathTracer(s *scene.Scene, config Config) *PathTracer {
	if config.ShadowRays < 1 {
		config.ShadowRays = 1
	}
	return &PathTracer{scene: s, config: config}
}

// Radiance computes the radiance arriving along ray at one wavelength (nm). depth is the
// number of bounces already traced; camera rays start at 0.
func (pt *PathTracer) Radiance(sampler core.Sampler, ray core.Ray, depth int, wavelength float64) float64 {
	hit, ok := pt.scene.Intersect(ray)
	if !ok {
		return 0
	}

	sphere := pt.scene.Sphere(hit.ID)
	point := ray.At(hit.Distance)
	normal := sphere.Normal(point)
	if normal.Dot(ray.Direction) >= 0 {
		// Hit from inside: face the normal towards the ray
		normal = normal.Mul(-1)
	}

	continueProb, _ := sphere.Reflectance.At(0)
	survive, weight := RussianRoulette(sampler, depth, pt.config.RussianRouletteDepth, continueProb)
	if !survive {
		return 0
	}

	if hit.ID == pt.scene.LightID() {
		return 0
	}

	in := ray.Direction.Mul(-1)
	direct := pt.directLighting(sampler, point, in, normal, hit.ID, wavelength)

	next := core.SampleCosineHemisphere(normal, sampler.Get1D(), sampler.Get1D())
	if !pt.config.IndirectLight {
		return direct
	}

	// Cosine-weighted sampling cancels the cosine term, leaving π·brdf
	brdf := pt.scene.BRDF(hit.ID, in, next, normal, wavelength)
	indirect := pt.Radiance(sampler, core.NewRay(point, next), depth+1, wavelength)
	return (direct + math.Pi*brdf*indirect) * weight
}

func (pt *PathTracer) directLighting(sampler core.Sampler, point, in, normal mgl64.Vec3, id int, wavelength float64) float64 {
	var sum float64
	for i := 0; i < pt.config.ShadowRays; i++ {
		sum += DirectLighting(pt.scene, sampler, point, in, normal, id, wavelength, pt.config.Visibility)
	}
	return sum / float64(pt.config.ShadowRays)
}

// RussianRoulette decides whether a path at the given depth continues. Up to cutoff
// bounces every path continues with weight 1. Past it a path survives with probability
// continueProb and its contribution is scaled by 1/continueProb so the estimate stays
// unbiased.
func RussianRoulette(sampler core.Sampler, depth, cutoff int, continueProb float64) (survive bool, weight float64) {
	if depth <= cutoff {
		return true, 1
	}
	if sampler.Get1D() >= continueProb {
		return false, 0
	}
	return true, 1 / continueProb
}
