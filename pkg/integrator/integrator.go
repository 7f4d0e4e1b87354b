package integrator

import (
	"fmt"
	"strings"

	"github.com/df07/go-spectral-pathtracer/pkg/core"
)

// Integrator estimates the radiance carried along a ray at a single wavelength
type Integrator interface {
	Radiance(sampler core.Sampler, ray core.Ray, depth int, wavelength float64) float64
}

// Visibility selects how a shadow ray decides that a light sample is unoccluded
type Visibility int

const (
	// VisibilityDistance accepts the sample when the first hit lies at the sampled
	// point's distance, within visibilityTolerance
	VisibilityDistance Visibility = iota
	// VisibilityLightID accepts the sample when the first hit is the light itself
	VisibilityLightID
)

func (v Visibility) String() string {
	switch v {
	case VisibilityDistance:
		return "distance"
	case VisibilityLightID:
		return "light-id"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

// ParseVisibility converts a flag value to a Visibility
func ParseVisibility(name string) (Visibility, error) {
	switch strings.ToLower(name) {
	case "distance", "":
		return VisibilityDistance, nil
	case "light-id", "lightid", "id":
		return VisibilityLightID, nil
	default:
		return 0, fmt.Errorf("unknown visibility policy %q (want distance or light-id)", name)
	}
}

// Config contains path tracing configuration
type Config struct {
	RussianRouletteDepth int        // Bounces traced before Russian roulette can terminate a path
	IndirectLight        bool       // Follow bounces after the first hit
	ShadowRays           int        // Light samples averaged per diffuse hit
	Visibility           Visibility // Shadow ray acceptance policy
}

// DefaultConfig returns the standard path tracing configuration
func DefaultConfig() Config {
	return Config{
		RussianRouletteDepth: 5,
		IndirectLight:        true,
		ShadowRays:           1,
		Visibility:           VisibilityDistance,
	}
}
