// Package spectrum holds discretized spectral power distributions and the colour
// science needed to turn per-wavelength radiance into tristimulus and RGB values.
package spectrum

import "math"

const (
	// NumBuckets is the number of wavelengths stored in a Spectrum
	NumBuckets = 95
	// FirstWavelength is the wavelength of bucket 0, in nm
	FirstWavelength = 360.0
	// WavelengthStep is the spacing between neighbouring buckets, in nm
	WavelengthStep = 5.0
)

// Spectrum is a power value per wavelength bucket. Bucket i represents
// FirstWavelength + i*WavelengthStep.
type Spectrum [NumBuckets]float64

// Constant returns a spectrum with every bucket set to value
func Constant(value float64) Spectrum {
	var s Spectrum
	for i := range s {
		s[i] = value
	}
	return s
}

// Wavelength returns the wavelength in nm represented by bucket i
func Wavelength(i int) float64 {
	return FirstWavelength + float64(i)*WavelengthStep
}

// IndexOf returns the bucket nearest to wavelength. The result may lie outside
// [0, NumBuckets); use InRange or the ok result of At to check.
func IndexOf(wavelength float64) int {
	return int(math.Round((wavelength - FirstWavelength) / WavelengthStep))
}

// InRange reports whether i is a valid bucket index
func InRange(i int) bool {
	return i >= 0 && i < NumBuckets
}

// At returns the power stored in bucket i. ok is false, and the value 0, when i is
// out of range.
func (s Spectrum) At(i int) (value float64, ok bool) {
	if !InRange(i) {
		return 0, false
	}
	return s[i], true
}

// Set stores value in bucket i. Writes outside the range are ignored and reported
// by a false return.
func (s *Spectrum) Set(i int, value float64) bool {
	if !InRange(i) {
		return false
	}
	s[i] = value
	return true
}

// Sample returns the power at the bucket nearest to wavelength
func (s Spectrum) Sample(wavelength float64) (float64, bool) {
	return s.At(IndexOf(wavelength))
}

// Add returns the elementwise sum
func (s Spectrum) Add(other Spectrum) Spectrum {
	for i := range s {
		s[i] += other[i]
	}
	return s
}

// Sub returns the elementwise difference
func (s Spectrum) Sub(other Spectrum) Spectrum {
	for i := range s {
		s[i] -= other[i]
	}
	return s
}

// Mul returns the elementwise product
func (s Spectrum) Mul(other Spectrum) Spectrum {
	for i := range s {
		s[i] *= other[i]
	}
	return s
}

// Scale returns the spectrum multiplied by a scalar
func (s Spectrum) Scale(f float64) Spectrum {
	for i := range s {
		s[i] *= f
	}
	return s
}

// Div returns the spectrum divided by a scalar
func (s Spectrum) Div(f float64) Spectrum {
	return s.Scale(1.0 / f)
}

// Max returns the largest bucket value
func (s Spectrum) Max() float64 {
	m := s[0]
	for _, v := range s[1:] {
		m = math.Max(m, v)
	}
	return m
}

// Clamp limits every bucket to [lo, hi]
func (s Spectrum) Clamp(lo, hi float64) Spectrum {
	for i := range s {
		s[i] = max(lo, min(hi, s[i]))
	}
	return s
}
