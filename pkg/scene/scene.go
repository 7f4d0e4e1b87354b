package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-spectral-pathtracer/pkg/core"
	"github.com/df07/go-spectral-pathtracer/pkg/geometry"
	"github.com/df07/go-spectral-pathtracer/pkg/material"
	"github.com/df07/go-spectral-pathtracer/pkg/spectrum"
)

var (
	ErrNoLight             = errors.New("scene has no light")
	ErrInvalidRadius       = errors.New("sphere radius must be positive")
	ErrUnsupportedMaterial = errors.New("unsupported material")
	ErrInvalidReflectance  = errors.New("reflectance must lie in [0, 1] with bucket 0 below 1")
	ErrInvalidEmission     = errors.New("emission must be finite and non-negative")
)

// Hit identifies the nearest sphere along a ray
type Hit struct {
	ID       int     // Index of the sphere in the scene
	Distance float64 // Ray parameter of the hit point
}

// CameraConfig describes a pinhole camera. Rays leave Origin + dir*NearOffset so that
// geometry between the eye and the near plane is skipped.
type CameraConfig struct {
	Origin     mgl64.Vec3
	Direction  mgl64.Vec3 // Viewing direction, normalized by the camera
	FieldScale float64    // Half-extent of the film plane per unit of aspect
	NearOffset float64
}

// DefaultCameraConfig returns the camera used by the built-in scenes
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Origin:     mgl64.Vec3{50, 52, 295.6},
		Direction:  mgl64.Vec3{0, -0.042612, -1}.Normalize(),
		FieldScale: 0.5135,
		NearOffset: 130,
	}
}

// Scene is an immutable list of spheres with exactly one emitter. It is safe for
// concurrent use once constructed.
type Scene struct {
	spheres []*geometry.Sphere
	lightID int
	camera  CameraConfig
}

// New validates the spheres and builds a scene. The slice is copied.
func New(spheres []*geometry.Sphere, lightID int, camera CameraConfig) (*Scene, error) {
	if lightID < 0 || lightID >= len(spheres) {
		return nil, fmt.Errorf("light id %d with %d spheres: %w", lightID, len(spheres), ErrNoLight)
	}
	for i, s := range spheres {
		if s == nil {
			return nil, fmt.Errorf("sphere %d is nil", i)
		}
		if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
			return nil, fmt.Errorf("sphere %d radius %g: %w", i, s.Radius, ErrInvalidRadius)
		}
		if !s.Material.Supported() {
			return nil, fmt.Errorf("sphere %d material %v: %w", i, s.Material, ErrUnsupportedMaterial)
		}
		if err := validateReflectance(s.Reflectance); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if err := validateEmission(s.Emission); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}
	if core.LengthSquared(camera.Direction) == 0 {
		return nil, errors.New("camera direction must be non-zero")
	}
	camera.Direction = camera.Direction.Normalize()
	if math.Abs(camera.Direction.X()) > 1-1e-9 {
		// The film's vertical axis is derived from the x axis and the view direction
		return nil, errors.New("camera direction must not be parallel to the x axis")
	}

	return &Scene{
		spheres: append([]*geometry.Sphere(nil), spheres...),
		lightID: lightID,
		camera:  camera,
	}, nil
}

// validateReflectance keeps the diffuse model energy conserving. Bucket 0 doubles as
// the Russian roulette continuation probability, so it must stay below 1 or paths in a
// closed scene never terminate.
func validateReflectance(r spectrum.Spectrum) error {
	for i, v := range r {
		if !(v >= 0 && v <= 1) {
			return fmt.Errorf("reflectance %g at %gnm: %w", v, spectrum.Wavelength(i), ErrInvalidReflectance)
		}
	}
	if r[0] >= 1 {
		return fmt.Errorf("reflectance %g at %gnm: %w", r[0], spectrum.Wavelength(0), ErrInvalidReflectance)
	}
	return nil
}

func validateEmission(e spectrum.Spectrum) error {
	for i, v := range e {
		if !(v >= 0) || math.IsInf(v, 1) {
			return fmt.Errorf("emission %g at %gnm: %w", v, spectrum.Wavelength(i), ErrInvalidEmission)
		}
	}
	return nil
}

// Intersect finds the nearest sphere hit further than core.Epsilon along the ray
func (s *Scene) Intersect(ray core.Ray) (Hit, bool) {
	hit := Hit{ID: -1, Distance: math.Inf(1)}
	for i, sphere := range s.spheres {
		if t, ok := sphere.Intersect(ray); ok && t < hit.Distance {
			hit = Hit{ID: i, Distance: t}
		}
	}
	if hit.ID < 0 {
		return Hit{}, false
	}
	return hit, true
}

// Sphere returns the sphere with the given id, or nil when id is out of range
func (s *Scene) Sphere(id int) *geometry.Sphere {
	if id < 0 || id >= len(s.spheres) {
		return nil
	}
	return s.spheres[id]
}

// Len returns the number of spheres
func (s *Scene) Len() int {
	return len(s.spheres)
}

// LightID returns the index of the emitter
func (s *Scene) LightID() int {
	return s.lightID
}

// Light returns the emitting sphere
func (s *Scene) Light() *geometry.Sphere {
	return s.spheres[s.lightID]
}

// Camera returns the scene's camera configuration
func (s *Scene) Camera() CameraConfig {
	return s.camera
}

// BRDF evaluates the surface reflectance of sphere id at one wavelength
func (s *Scene) BRDF(id int, in, out, normal mgl64.Vec3, wavelength float64) float64 {
	sphere := s.Sphere(id)
	if sphere == nil {
		return 0
	}
	return material.BRDF(sphere.Material, sphere.Reflectance, in, out, normal, wavelength)
}

// Emission returns the light's emitted radiance at one wavelength (0 outside the
// sampled range)
func (s *Scene) Emission(wavelength float64) float64 {
	le, _ := s.Light().Emission.Sample(wavelength)
	return le
}

// Diffuse is shorthand for a non-emitting diffuse sphere
func Diffuse(radius float64, center mgl64.Vec3, reflectance spectrum.Spectrum) *geometry.Sphere {
	return geometry.NewSphere(radius, center, spectrum.Spectrum{}, reflectance, material.Diffuse)
}

// Emitter is shorthand for a black emitting sphere
func Emitter(radius float64, center mgl64.Vec3, emission spectrum.Spectrum) *geometry.Sphere {
	return geometry.NewSphere(radius, center, emission, spectrum.Spectrum{}, material.Diffuse)
}
