package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-spectral-pathtracer/pkg/core"
	"github.com/df07/go-spectral-pathtracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Renderer drives a full-image render over a pool of row workers
type Renderer struct {
	raytracer *Raytracer
	config    Config
	logger    core.Logger
}

// NewRenderer creates a renderer for the scene
func NewRenderer(s *scene.Scene, config Config, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{
		raytracer: NewRaytracer(s, config),
		config:    config,
		logger:    logger,
	}, nil
}

// Render renders every row and blocks until the image is complete
func (r *Renderer) Render() (*Image, RenderStats) {
	start := time.Now()
	width, height := r.config.Width, r.config.Height
	img := NewImage(width, height)

	pool := NewWorkerPool(r.raytracer, height, r.config.NumWorkers)
	r.logger.Printf("Rendering %dx%d at %d spp using %d workers...\n",
		width, height, r.config.EffectiveSamples(), pool.GetNumWorkers())

	pool.Start()
	for y := 0; y < height; y++ {
		pool.SubmitTask(RowTask{Y: y, Image: img})
	}

	var stats RenderStats
	progressStep := max(1, height/10)
	for done := 1; done <= height; done++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Merge(result.Stats)
		if done%progressStep == 0 || done == height {
			r.logger.Printf("Rendering (%d spp) %.1f%%\n", r.config.EffectiveSamples(), 100.0*float64(done)/float64(height))
		}
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	r.logger.Printf("Render completed in %v (%d samples, %.1f%% zero)\n",
		stats.Duration, stats.TotalSamples, 100.0*float64(stats.ZeroSamples)/float64(max(1, stats.TotalSamples)))
	return img, stats
}
