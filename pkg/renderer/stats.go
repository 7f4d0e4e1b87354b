package renderer

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Rec. 709 luminance weights for linear sRGB
var luminanceWeights = mgl64.Vec3{0.2126, 0.7152, 0.0722}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of radiance samples taken
	AverageSamples float64       // Average samples per pixel
	ZeroSamples    int           // Samples that carried no radiance
	MeanLuminance  float64       // Mean pixel luminance
	MeanVariance   float64       // Mean per-pixel luminance variance, a noise estimate
	Duration       time.Duration // Wall-clock time of the render
}

// Merge folds the statistics of a disjoint set of pixels into s
func (s *RenderStats) Merge(other RenderStats) {
	pixels := s.TotalPixels + other.TotalPixels
	if pixels > 0 {
		s.MeanLuminance = (s.MeanLuminance*float64(s.TotalPixels) + other.MeanLuminance*float64(other.TotalPixels)) / float64(pixels)
		s.MeanVariance = (s.MeanVariance*float64(s.TotalPixels) + other.MeanVariance*float64(other.TotalPixels)) / float64(pixels)
		s.AverageSamples = float64(s.TotalSamples+other.TotalSamples) / float64(pixels)
	}
	s.TotalPixels = pixels
	s.TotalSamples += other.TotalSamples
	s.ZeroSamples += other.ZeroSamples
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       mgl64.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64    // Luminance accumulator
	LuminanceSqAccum float64    // Luminance squared for variance
	SampleCount      int        // Number of samples taken
	ZeroCount        int        // Samples that carried no radiance
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color mgl64.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Dot(luminanceWeights)
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
	if color == (mgl64.Vec3{}) {
		ps.ZeroCount++
	}
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() mgl64.Vec3 {
	if ps.SampleCount == 0 {
		return mgl64.Vec3{}
	}
	return ps.ColorAccum.Mul(1.0 / float64(ps.SampleCount))
}

// Variance returns the sample variance of the luminance estimates
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	return (ps.LuminanceSqAccum - n*mean*mean) / (n - 1)
}
