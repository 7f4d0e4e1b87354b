package spectrum

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// xyzToRGB converts CIE XYZ to linear sRGB (D65 white)
var xyzToRGB = mgl64.Mat3FromRows(
	mgl64.Vec3{3.2404542, -1.5371385, -0.4985314},
	mgl64.Vec3{-0.9692660, 1.8760108, 0.0415560},
	mgl64.Vec3{0.0556434, -0.2040259, 1.0572252},
)

var rgbToXYZ = xyzToRGB.Inv()

// XYZToRGB converts a tristimulus value to linear sRGB
func XYZToRGB(xyz mgl64.Vec3) mgl64.Vec3 {
	return xyzToRGB.Mul3x1(xyz)
}

// RGBToXYZ converts linear sRGB to a tristimulus value
func RGBToXYZ(rgb mgl64.Vec3) mgl64.Vec3 {
	return rgbToXYZ.Mul3x1(rgb)
}

// luminanceNorm is Σȳ over all buckets. Dividing by it maps the constant spectrum 1
// to Y = 1.
var luminanceNorm = func() float64 {
	sum := 0.0
	for i := range cie1931 {
		sum += cie1931[i][1]
	}
	return sum
}()

// ToXYZ integrates the spectrum against the colour matching functions. The result is
// normalized so that Constant(1) has Y = 1.
func (s Spectrum) ToXYZ() mgl64.Vec3 {
	var xyz mgl64.Vec3
	for i, v := range s {
		xyz = xyz.Add(mgl64.Vec3(cie1931[i]).Mul(v))
	}
	return xyz.Mul(1.0 / luminanceNorm)
}

// ToRGB converts the spectrum to linear sRGB
func (s Spectrum) ToRGB() mgl64.Vec3 {
	return XYZToRGB(s.ToXYZ())
}

var (
	rgbBasisOnce sync.Once
	rgbBasis     *mat.Dense // NumBuckets x 3
)

// buildRGBBasis computes the minimum-norm right inverse of the spectrum→RGB projection:
// with M the 3×N projection, B = Mᵀ(MMᵀ)⁻¹ satisfies M·B = I.
func buildRGBBasis() {
	m := mat.NewDense(3, NumBuckets, nil)
	for i := 0; i < NumBuckets; i++ {
		rgb := XYZToRGB(mgl64.Vec3(cie1931[i])).Mul(1.0 / luminanceNorm)
		for c := 0; c < 3; c++ {
			m.Set(c, i, rgb[c])
		}
	}

	var gram mat.Dense
	gram.Mul(m, m.T())

	var gramInv mat.Dense
	if err := gramInv.Inverse(&gram); err != nil {
		// The colour matching functions are linearly independent
		panic("spectrum: singular RGB projection: " + err.Error())
	}

	rgbBasis = &mat.Dense{}
	rgbBasis.Mul(m.T(), &gramInv)
}

// FromRGB returns the minimum-norm spectrum whose ToRGB equals rgb. The result can
// contain negative lobes; clamp it before using it as a reflectance.
func FromRGB(rgb mgl64.Vec3) Spectrum {
	rgbBasisOnce.Do(buildRGBBasis)

	var s Spectrum
	for i := range s {
		s[i] = rgbBasis.At(i, 0)*rgb[0] + rgbBasis.At(i, 1)*rgb[1] + rgbBasis.At(i, 2)*rgb[2]
	}
	return s
}
