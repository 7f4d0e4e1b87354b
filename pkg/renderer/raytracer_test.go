package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-spectral-pathtracer/pkg/scene"
)

// discardLogger swallows renderer output in tests
type discardLogger struct {
	lines int
}

func (l *discardLogger) Printf(format string, args ...interface{}) {
	l.lines++
}

func smallConfig() Config {
	config := DefaultConfig()
	config.Width = 32
	config.Height = 24
	config.SamplesPerPixel = 1
	config.NumWorkers = 2
	return config
}

func render(t *testing.T, s *scene.Scene, config Config) (*Image, RenderStats) {
	t.Helper()
	r, err := NewRenderer(s, config, &discardLogger{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	return r.Render()
}

func TestRender_SingleSphereDirectOnly(t *testing.T) {
	s := scene.NewSingleSphereScene()
	config := smallConfig()
	// Large enough for the sphere's unlit side to cover whole pixels
	config.Width = 96
	config.Height = 72
	config.Integrator.IndirectLight = false

	img, stats := render(t, s, config)
	camera := NewCamera(s.Camera(), config.Width, config.Height)
	light := s.Light()

	var lit, onSphere, unlit int
	for y := 0; y < config.Height; y++ {
		for x := 0; x < config.Width; x++ {
			c := img.RGB(x, config.Height-1-y)
			ray := camera.GetRay(float64(x), float64(y))
			hit, ok := s.Intersect(ray)

			switch {
			case !ok:
				if c != (mgl64.Vec3{}) {
					t.Errorf("Pixel (%d,%d) sees nothing but has color %v", x, y, c)
				}
			case hit.ID == s.LightID():
				if c != (mgl64.Vec3{}) {
					t.Errorf("Pixel (%d,%d) sees the light directly but has color %v", x, y, c)
				}
			default:
				onSphere++
				if c != (mgl64.Vec3{}) {
					lit++
				}

				// With the whole light below the horizon no light sample can pass
				p := ray.At(hit.Distance)
				n := s.Sphere(hit.ID).Normal(p)
				if n.Dot(light.Center.Sub(p)) < -(light.Radius + 1e-3) {
					unlit++
					if c != (mgl64.Vec3{}) {
						t.Errorf("Pixel (%d,%d) cannot see the light but has color %v", x, y, c)
					}
				}
			}

			for k := 0; k < 3; k++ {
				if math.IsNaN(c[k]) || math.IsInf(c[k], 0) {
					t.Fatalf("Pixel (%d,%d) is not finite: %v", x, y, c)
				}
			}
		}
	}

	if onSphere == 0 {
		t.Fatal("No pixel sees the diffuse sphere")
	}
	if lit == 0 {
		t.Error("Expected at least one lit pixel on the diffuse sphere")
	}
	if unlit == 0 {
		t.Error("Expected some pixels on the side of the sphere facing away from the light")
	}
	if stats.TotalPixels != config.Width*config.Height {
		t.Errorf("Expected %d pixels, got %d", config.Width*config.Height, stats.TotalPixels)
	}
	if stats.TotalSamples != config.Width*config.Height {
		t.Errorf("Expected one sample per pixel, got %d", stats.TotalSamples)
	}
}

func TestRender_DeterministicAcrossWorkers(t *testing.T) {
	s := scene.NewDefaultScene()
	config := smallConfig()
	config.SamplesPerPixel = 2

	config.NumWorkers = 1
	a, stats := render(t, s, config)
	config.NumWorkers = 4
	b, _ := render(t, s, config)

	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("Pixel %d differs between worker counts: %v vs %v", i, a.Pixels[i], b.Pixels[i])
		}
	}
	if !(stats.MeanVariance > 0) {
		t.Errorf("Expected positive pixel variance with 2 spp, got %v", stats.MeanVariance)
	}
}

func TestRender_Furnace(t *testing.T) {
	config := smallConfig()
	config.Supersample = true

	img, stats := render(t, scene.NewFurnaceScene(), config)
	for i, c := range img.Pixels {
		if c != (mgl64.Vec3{}) {
			t.Fatalf("Pixel %d of an unlit enclosure has color %v", i, c)
		}
	}
	if stats.TotalSamples != 4*config.Width*config.Height {
		t.Errorf("Expected 4 sub-pixel samples per pixel, got %d", stats.TotalSamples)
	}
	if stats.ZeroSamples != stats.TotalSamples {
		t.Errorf("Expected every sample to be zero, got %d of %d", stats.ZeroSamples, stats.TotalSamples)
	}
	if stats.MeanVariance != 0 {
		t.Errorf("Expected zero variance, got %v", stats.MeanVariance)
	}
}

func TestRenderRow_Seeding(t *testing.T) {
	s := scene.NewDefaultScene()
	config := smallConfig()
	config.SamplesPerPixel = 2
	rt := NewRaytracer(s, config)

	a := NewImage(config.Width, config.Height)
	b := NewImage(config.Width, config.Height)
	rt.RenderRow(7, a)
	rt.RenderRow(3, b) // unrelated row in between must not disturb row 7
	rt.RenderRow(7, b)

	row := config.Height - 1 - 7
	for x := 0; x < config.Width; x++ {
		if a.RGB(x, row) != b.RGB(x, row) {
			t.Fatalf("Row 7 pixel %d not reproducible: %v vs %v", x, a.RGB(x, row), b.RGB(x, row))
		}
	}

	if RowSeed(0) != 0 || RowSeed(3) != 12 || RowSeed(479) != 479*479+479 {
		t.Error("RowSeed does not follow y*y + y")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Height = -1 }, true},
		{"zero samples", func(c *Config) { c.SamplesPerPixel = 0 }, true},
		{"negative workers", func(c *Config) { c.NumWorkers = -2 }, true},
		{"negative rr depth", func(c *Config) { c.Integrator.RussianRouletteDepth = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			if err := config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := NewRenderer(scene.NewDefaultScene(), Config{}, &discardLogger{}); err == nil {
		t.Error("Expected NewRenderer to reject an empty config")
	}
}

func TestRender_LogsProgress(t *testing.T) {
	logger := &discardLogger{}
	r, err := NewRenderer(scene.NewSingleSphereScene(), smallConfig(), logger)
	if err != nil {
		t.Fatal(err)
	}
	r.Render()
	// Start line, a progress line every 2 of the 24 rows and a completion line
	if logger.lines != 14 {
		t.Errorf("Expected 14 log lines, got %d", logger.lines)
	}
}
