package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-spectral-pathtracer/pkg/core"
	"github.com/df07/go-spectral-pathtracer/pkg/integrator"
	"github.com/df07/go-spectral-pathtracer/pkg/scene"
	"github.com/df07/go-spectral-pathtracer/pkg/spectrum"
)

// Config contains rendering configuration
type Config struct {
	Width           int  // Image width
	Height          int  // Image height
	SamplesPerPixel int  // Radiance samples per pixel (per sub-pixel when supersampling)
	Supersample     bool // Split each pixel into 2x2 tent-filtered sub-pixels
	NumWorkers      int  // Number of parallel workers (0 = use CPU count)
	Integrator      integrator.Config
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           640,
		Height:          480,
		SamplesPerPixel: 32,
		Supersample:     false,
		NumWorkers:      0,
		Integrator:      integrator.DefaultConfig(),
	}
}

// Validate reports configuration values the renderer cannot work with
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("invalid samples per pixel %d", c.SamplesPerPixel)
	}
	if c.NumWorkers < 0 {
		return errors.New("worker count cannot be negative")
	}
	if c.Integrator.RussianRouletteDepth < 0 {
		return errors.New("russian roulette depth cannot be negative")
	}
	return nil
}

// EffectiveSamples returns the radiance samples taken per pixel
func (c Config) EffectiveSamples() int {
	if c.Supersample {
		return 4 * c.SamplesPerPixel
	}
	return c.SamplesPerPixel
}

// RowSeed returns the generator seed for image row y (counted from the bottom)
func RowSeed(y int) uint32 {
	return uint32(y*y + y)
}

// Raytracer turns camera rays into pixel colors. It holds no mutable state and may be
// shared between goroutines.
type Raytracer struct {
	camera      *Camera
	integrator  integrator.Integrator
	wavelengths *spectrum.WavelengthSampler
	config      Config
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, config Config) *Raytracer {
	return &Raytracer{
		camera:      NewCamera(s.Camera(), config.Width, config.Height),
		integrator:  integrator.NewPathTracer(s, config.Integrator),
		wavelengths: spectrum.NewLuminanceSampler(),
		config:      config,
	}
}

// RenderRow renders film row y (0 is the bottom row) into img, which stores rows top
// first. The row owns a generator seeded from y, so the result does not depend on
// which worker renders it.
func (rt *Raytracer) RenderRow(y int, img *Image) RenderStats {
	rng := core.NewRand(RowSeed(y))
	stats := RenderStats{}
	var luminance, variance float64

	for x := 0; x < rt.config.Width; x++ {
		var ps PixelStats
		if rt.config.Supersample {
			rt.sampleSubpixels(rng, x, y, &ps)
		} else {
			for s := 0; s < rt.config.SamplesPerPixel; s++ {
				ray := rt.camera.GetRay(float64(x), float64(y))
				ps.AddSample(rt.spectralSample(rng, ray))
			}
		}

		color := ps.GetColor()
		img.Set(x, rt.config.Height-1-y, color)

		luminance += color.Dot(luminanceWeights)
		variance += ps.Variance()
		stats.TotalSamples += ps.SampleCount
		stats.ZeroSamples += ps.ZeroCount
	}

	stats.TotalPixels = rt.config.Width
	stats.AverageSamples = float64(stats.TotalSamples) / float64(rt.config.Width)
	stats.MeanLuminance = luminance / float64(rt.config.Width)
	stats.MeanVariance = variance / float64(rt.config.Width)
	return stats
}

// sampleSubpixels splits the pixel into 2x2 cells and jitters each sample within its
// cell with a tent filter
func (rt *Raytracer) sampleSubpixels(rng *core.Rand, x, y int, ps *PixelStats) {
	for sy := 0; sy < 2; sy++ {
		for sx := 0; sx < 2; sx++ {
			for s := 0; s < rt.config.SamplesPerPixel; s++ {
				dx := TentOffset(rng.Float64())
				dy := TentOffset(rng.Float64())
				px := float64(x) + (float64(sx)+0.5+dx)/2
				py := float64(y) + (float64(sy)+0.5+dy)/2
				ps.AddSample(rt.spectralSample(rng, rt.camera.GetRay(px, py)))
			}
		}
	}
}

// spectralSample traces one importance-sampled wavelength and returns its
// contribution in linear sRGB
func (rt *Raytracer) spectralSample(rng *core.Rand, ray core.Ray) mgl64.Vec3 {
	index, pdf := rt.wavelengths.Sample(rng.Float64())
	value := rt.integrator.Radiance(rng, ray, 0, spectrum.Wavelength(index)) / pdf
	if value == 0 {
		return mgl64.Vec3{}
	}

	cmf, _ := spectrum.ColorMatching(index)
	return spectrum.XYZToRGB(cmf.Mul(value))
}
