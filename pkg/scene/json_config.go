package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-spectral-pathtracer/pkg/geometry"
	"github.com/df07/go-spectral-pathtracer/pkg/material"
	"github.com/df07/go-spectral-pathtracer/pkg/spectrum"
)

// SpectrumCfg describes a spectrum in a scene file. Values takes precedence over RGB,
// which takes precedence over Constant.
type SpectrumCfg struct {
	Constant float64   `json:"constant,omitempty"`
	RGB      []float64 `json:"rgb,omitempty"`    // linear sRGB triple
	Values   []float64 `json:"values,omitempty"` // one value per 5nm bucket from 360nm
}

type SphereCfg struct {
	Radius      float64     `json:"radius"`
	Center      [3]float64  `json:"center"`
	Emission    SpectrumCfg `json:"emission"`
	Reflectance SpectrumCfg `json:"reflectance"`
	Material    string      `json:"material,omitempty"`
	Light       bool        `json:"light,omitempty"`
}

type CameraCfg struct {
	Origin     *[3]float64 `json:"origin,omitempty"`
	Direction  *[3]float64 `json:"direction,omitempty"`
	FieldScale float64     `json:"fieldScale,omitempty"`
	NearOffset *float64    `json:"nearOffset,omitempty"`
}

// Config is the top-level layout of a JSON scene file
type Config struct {
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Camera      CameraCfg   `json:"camera"`
	Spheres     []SphereCfg `json:"spheres"`
}

// Build converts the description to a spectrum. RGB input is clamped to [0, ∞) per
// bucket since the minimum-norm fit can dip below zero.
func (c SpectrumCfg) Build() (spectrum.Spectrum, error) {
	switch {
	case len(c.Values) > 0:
		if len(c.Values) != spectrum.NumBuckets {
			return spectrum.Spectrum{}, fmt.Errorf("spectrum needs %d values, got %d", spectrum.NumBuckets, len(c.Values))
		}
		var s spectrum.Spectrum
		copy(s[:], c.Values)
		return s, nil
	case len(c.RGB) > 0:
		if len(c.RGB) != 3 {
			return spectrum.Spectrum{}, fmt.Errorf("rgb needs 3 values, got %d", len(c.RGB))
		}
		s := spectrum.FromRGB(mgl64.Vec3{c.RGB[0], c.RGB[1], c.RGB[2]})
		return s.Clamp(0, math.Inf(1)), nil
	default:
		return spectrum.Constant(c.Constant), nil
	}
}

// Build validates and constructs the runtime sphere
func (sc SphereCfg) Build() (*geometry.Sphere, error) {
	kind, err := material.ParseKind(sc.Material)
	if err != nil {
		return nil, err
	}
	emission, err := sc.Emission.Build()
	if err != nil {
		return nil, fmt.Errorf("emission: %w", err)
	}
	reflectance, err := sc.Reflectance.Build()
	if err != nil {
		return nil, fmt.Errorf("reflectance: %w", err)
	}
	if len(sc.Reflectance.Values) == 0 && len(sc.Reflectance.RGB) > 0 {
		// The fit can overshoot 1 where the requested colour is saturated
		reflectance = reflectance.Clamp(0, 1)
	}
	return geometry.NewSphere(sc.Radius, mgl64.Vec3(sc.Center), emission, reflectance, kind), nil
}

// Build fills unset camera fields from DefaultCameraConfig
func (cc CameraCfg) Build() CameraConfig {
	camera := DefaultCameraConfig()
	if cc.Origin != nil {
		camera.Origin = mgl64.Vec3(*cc.Origin)
	}
	if cc.Direction != nil {
		camera.Direction = mgl64.Vec3(*cc.Direction)
	}
	if cc.FieldScale > 0 {
		camera.FieldScale = cc.FieldScale
	}
	if cc.NearOffset != nil {
		camera.NearOffset = *cc.NearOffset
	}
	return camera
}

// Build validates the configuration and constructs the scene. Exactly one sphere must
// be marked as the light.
func (c Config) Build() (*Scene, error) {
	if len(c.Spheres) == 0 {
		return nil, errors.New("scene has no spheres")
	}

	spheres := make([]*geometry.Sphere, 0, len(c.Spheres))
	lightID := -1
	for i, sc := range c.Spheres {
		sphere, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if sc.Light {
			if lightID >= 0 {
				return nil, fmt.Errorf("spheres %d and %d are both marked as the light", lightID, i)
			}
			lightID = i
		}
		spheres = append(spheres, sphere)
	}
	if lightID < 0 {
		return nil, ErrNoLight
	}

	return New(spheres, lightID, c.Camera.Build())
}

// ParseJSON builds a scene from the contents of a JSON scene file
func ParseJSON(data []byte) (*Scene, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return cfg.Build()
}

// LoadJSON reads and builds a JSON scene file
func LoadJSON(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}
	s, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
