package integrator

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-spectral-pathtracer/pkg/core"
	"github.com/df07/go-spectral-pathtracer/pkg/scene"
)

// countingSampler returns a fixed value and records how many values were drawn
type countingSampler struct {
	value float64
	calls int
}

func (c *countingSampler) Get1D() float64 {
	c.calls++
	return c.value
}

func cameraRay(cam scene.CameraConfig) core.Ray {
	return core.NewRay(cam.Origin.Add(cam.Direction.Mul(cam.NearOffset)), cam.Direction)
}

func TestRadiance_Miss(t *testing.T) {
	s := scene.NewSingleSphereScene()
	pt := NewPathTracer(s, DefaultConfig())
	sampler := &countingSampler{value: 0.5}

	ray := core.NewRay(mgl64.Vec3{50, 52, 295.6}, mgl64.Vec3{0, 0, 1})
	for _, wl := range []float64{400, 550, 700} {
		if l := pt.Radiance(sampler, ray, 0, wl); l != 0 {
			t.Errorf("Expected 0 for a miss at %vnm, got %v", wl, l)
		}
	}
	if sampler.calls != 0 {
		t.Errorf("A miss should not draw random numbers, drew %d", sampler.calls)
	}
}

func TestRadiance_LightNotDirectlyVisible(t *testing.T) {
	s := scene.NewSingleSphereScene()
	pt := NewPathTracer(s, DefaultConfig())
	rng := core.NewRand(1)

	light := s.Light()
	origin := mgl64.Vec3{80, 80, 100}
	ray := core.NewRay(origin, light.Center.Sub(origin).Normalize())

	for depth := 0; depth < 3; depth++ {
		if l := pt.Radiance(rng, ray, depth, 550); l != 0 {
			t.Errorf("Expected 0 looking at the light at depth %d, got %v", depth, l)
		}
	}
}

func TestRadiance_DirectOnlyMatchesDirectLighting(t *testing.T) {
	s := scene.NewSingleSphereScene()
	config := DefaultConfig()
	config.IndirectLight = false
	pt := NewPathTracer(s, config)

	ray := cameraRay(s.Camera())
	hit, ok := s.Intersect(ray)
	if !ok || hit.ID != 1 {
		t.Fatalf("Camera ray should hit the diffuse sphere, got %+v %v", hit, ok)
	}
	point := ray.At(hit.Distance)
	normal := s.Sphere(1).Normal(point)
	in := ray.Direction.Mul(-1)

	// At depth 0 the direct sample consumes the first two random numbers of both streams
	for seed := uint32(0); seed < 50; seed++ {
		got := pt.Radiance(core.NewRand(seed), ray, 0, 550)
		want := DirectLighting(s, core.NewRand(seed), point, in, normal, 1, 550, VisibilityDistance)
		if got != want {
			t.Errorf("Seed %d: Radiance %v != DirectLighting %v", seed, got, want)
		}
	}
}

func TestRadiance_NonNegativeAndFinite(t *testing.T) {
	s := scene.NewDefaultScene()
	pt := NewPathTracer(s, DefaultConfig())
	rng := core.NewRand(99)
	ray := cameraRay(s.Camera())

	var nonZero int
	for i := 0; i < 2000; i++ {
		l := pt.Radiance(rng, ray, 0, 550)
		if l < 0 || math.IsNaN(l) || math.IsInf(l, 0) {
			t.Fatalf("Invalid radiance %v", l)
		}
		if l > 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Error("Expected some light to reach the camera")
	}
}

func TestRadiance_Furnace(t *testing.T) {
	s := scene.NewFurnaceScene()
	rng := core.NewRand(7)

	for _, policy := range []Visibility{VisibilityDistance, VisibilityLightID} {
		config := DefaultConfig()
		config.Visibility = policy
		pt := NewPathTracer(s, config)

		ray := cameraRay(s.Camera())
		for i := 0; i < 500; i++ {
			if l := pt.Radiance(rng, ray, 0, 450+float64(i%50)); l != 0 {
				t.Fatalf("%v: enclosed scene returned %v", policy, l)
			}
		}
	}
}

func TestRussianRoulette_BelowCutoff(t *testing.T) {
	sampler := &countingSampler{value: 0.99}
	for depth := 0; depth <= 5; depth++ {
		survive, weight := RussianRoulette(sampler, depth, 5, 0.1)
		if !survive || weight != 1 {
			t.Errorf("Depth %d: expected (true, 1), got (%v, %v)", depth, survive, weight)
		}
	}
	if sampler.calls != 0 {
		t.Errorf("No random numbers should be drawn below the cutoff, drew %d", sampler.calls)
	}
}

func TestRussianRoulette_Unbiased(t *testing.T) {
	tests := []struct {
		name string
		prob float64
	}{
		{"low", 0.1},
		{"diffuse", 0.7},
		{"high", 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := core.NewRand(2024)
			const n = 200000
			var sum float64
			var survived int
			for i := 0; i < n; i++ {
				survive, weight := RussianRoulette(rng, 6, 5, tt.prob)
				if survive {
					survived++
				}
				sum += weight
			}

			if mean := sum / n; math.Abs(mean-1) > 0.03 {
				t.Errorf("Expected mean weight 1, got %v", mean)
			}
			if rate := float64(survived) / n; math.Abs(rate-tt.prob) > 0.01 {
				t.Errorf("Expected survival rate %v, got %v", tt.prob, rate)
			}
		})
	}
}

func TestRussianRoulette_Boundaries(t *testing.T) {
	tests := []struct {
		u, prob float64
		survive bool
	}{
		{0, 0, false},
		{0.5, 0.5, false},
		{0.4999, 0.5, true},
		{0.99, 1, true},
	}
	for _, tt := range tests {
		survive, weight := RussianRoulette(&countingSampler{value: tt.u}, 10, 5, tt.prob)
		if survive != tt.survive {
			t.Errorf("u=%v p=%v: expected survive=%v", tt.u, tt.prob, tt.survive)
		}
		if survive && weight != 1/tt.prob {
			t.Errorf("u=%v p=%v: expected weight %v, got %v", tt.u, tt.prob, 1/tt.prob, weight)
		}
		if !survive && weight != 0 {
			t.Errorf("u=%v p=%v: terminated path has weight %v", tt.u, tt.prob, weight)
		}
	}
}

func TestNewPathTracer_ShadowRays(t *testing.T) {
	config := DefaultConfig()
	config.ShadowRays = 0
	pt := NewPathTracer(scene.NewDefaultScene(), config)
	if pt.config.ShadowRays != 1 {
		t.Errorf("Expected ShadowRays clamped to 1, got %d", pt.config.ShadowRays)
	}
}
