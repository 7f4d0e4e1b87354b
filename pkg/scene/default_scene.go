package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-spectral-pathtracer/pkg/geometry"
	"github.com/df07/go-spectral-pathtracer/pkg/spectrum"
)

// Emission of the built-in light: a flat spectrum whose buckets sum to 32
var defaultEmission = spectrum.Constant(32.0 / spectrum.NumBuckets)

// NewDefaultScene creates a lit diffuse sphere resting on a floor. The floor is a very
// large sphere whose top surface lies in the y=0 plane.
func NewDefaultScene() *Scene {
	spheres := []*geometry.Sphere{
		Emitter(10, mgl64.Vec3{80, 80, 20}, defaultEmission),
		Diffuse(30, mgl64.Vec3{50, 20, 0}, spectrum.Constant(0.7)),
		Diffuse(1e5, mgl64.Vec3{50, 1e5, 81.6}, spectrum.Constant(0.7)), // floor
	}
	return mustNew(spheres, 0, DefaultCameraConfig())
}

// NewSingleSphereScene creates the default scene without the floor, so every camera
// ray that misses the diffuse sphere and the light escapes to black.
func NewSingleSphereScene() *Scene {
	spheres := []*geometry.Sphere{
		Emitter(10, mgl64.Vec3{80, 80, 20}, defaultEmission),
		Diffuse(30, mgl64.Vec3{50, 20, 0}, spectrum.Constant(0.7)),
	}
	return mustNew(spheres, 0, DefaultCameraConfig())
}

// NewFurnaceScene encloses the camera in a diffuse sphere with the light outside it.
// No light can reach the camera, so every estimate must converge to zero.
func NewFurnaceScene() *Scene {
	camera := DefaultCameraConfig()
	spheres := []*geometry.Sphere{
		Emitter(10, mgl64.Vec3{50, 52, 1000}, defaultEmission),
		Diffuse(200, mgl64.Vec3{50, 52, 200}, spectrum.Constant(0.5)),
	}
	return mustNew(spheres, 0, camera)
}

// mustNew is for compiled-in scenes, whose validity is fixed at build time
func mustNew(spheres []*geometry.Sphere, lightID int, camera CameraConfig) *Scene {
	s, err := New(spheres, lightID, camera)
	if err != nil {
		panic("scene: invalid built-in scene: " + err.Error())
	}
	return s
}
