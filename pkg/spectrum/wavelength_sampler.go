package spectrum

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// WavelengthSampler draws wavelength buckets with probability proportional to a weight
// table. It is read-only after construction and safe for concurrent use.
type WavelengthSampler struct {
	pdf []float64
	cdf []float64
}

// NewWavelengthSampler builds a sampler from non-negative weights
func NewWavelengthSampler(weights []float64) (*WavelengthSampler, error) {
	if len(weights) == 0 {
		return nil, errors.New("wavelength sampler: empty weight table")
	}
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("wavelength sampler: negative weight %g at bucket %d", w, i)
		}
	}
	if floats.Sum(weights) <= 0 {
		return nil, errors.New("wavelength sampler: weights sum to zero")
	}
	return newWavelengthSampler(weights), nil
}

// NewLuminanceSampler returns a sampler over the Spectrum buckets weighted by the
// luminous efficiency ȳ, so that wavelengths which dominate perceived brightness are
// traced most often.
func NewLuminanceSampler() *WavelengthSampler {
	return newWavelengthSampler(LuminanceWeights())
}

func newWavelengthSampler(weights []float64) *WavelengthSampler {
	cdf := floats.CumSum(make([]float64, len(weights)), weights)
	total := cdf[len(cdf)-1]

	// Divide rather than scale by the reciprocal so the last entry is exactly 1
	pdf := make([]float64, len(weights))
	for i := range weights {
		pdf[i] = weights[i] / total
		cdf[i] /= total
	}

	return &WavelengthSampler{pdf: pdf, cdf: cdf}
}

// Len returns the number of buckets
func (ws *WavelengthSampler) Len() int {
	return len(ws.pdf)
}

// PDF returns the probability of drawing bucket i
func (ws *WavelengthSampler) PDF(i int) float64 {
	if i < 0 || i >= len(ws.pdf) {
		return 0
	}
	return ws.pdf[i]
}

// CDF returns the cumulative probability up to and including bucket i
func (ws *WavelengthSampler) CDF(i int) float64 {
	if i < 0 || i >= len(ws.cdf) {
		return 0
	}
	return ws.cdf[i]
}

// Sample maps a uniform u in [0,1) to a bucket and returns the bucket with its
// probability. The bucket is the first whose CDF is >= u that has a positive weight.
func (ws *WavelengthSampler) Sample(u float64) (index int, pdf float64) {
	n := len(ws.cdf)
	index = sort.SearchFloat64s(ws.cdf, u)

	if index >= n {
		// u above the last CDF entry through rounding
		index = n - 1
		for index > 0 && ws.pdf[index] == 0 {
			index--
		}
		return index, ws.pdf[index]
	}

	for index < n-1 && ws.pdf[index] == 0 {
		index++
	}
	return index, ws.pdf[index]
}
