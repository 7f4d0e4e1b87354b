package spectrum

import "github.com/go-gl/mathgl/mgl64"

// cie1931 holds the CIE 1931 2° colour matching functions (x̄, ȳ, z̄) sampled every
// 5 nm from 360 nm to 830 nm, one row per Spectrum bucket.
var cie1931 = [NumBuckets][3]float64{
	{0.000130, 0.000004, 0.000606}, // 360
	{0.000232, 0.000007, 0.001086},
	{0.000415, 0.000012, 0.001946},
	{0.000742, 0.000022, 0.003486},
	{0.001368, 0.000039, 0.006450}, // 380
	{0.002236, 0.000064, 0.010550},
	{0.004243, 0.000120, 0.020050},
	{0.007650, 0.000217, 0.036210},
	{0.014310, 0.000396, 0.067850}, // 400
	{0.023190, 0.000640, 0.110200},
	{0.043510, 0.001210, 0.207400},
	{0.077630, 0.002180, 0.371300},
	{0.134380, 0.004000, 0.645600}, // 420
	{0.214770, 0.007300, 1.039050},
	{0.283900, 0.011600, 1.385600},
	{0.328500, 0.016840, 1.622960},
	{0.348280, 0.023000, 1.747060}, // 440
	{0.348060, 0.029800, 1.782600},
	{0.336200, 0.038000, 1.772110},
	{0.318700, 0.048000, 1.744100},
	{0.290800, 0.060000, 1.669200}, // 460
	{0.251100, 0.073900, 1.528100},
	{0.195360, 0.090980, 1.287640},
	{0.142100, 0.112600, 1.041900},
	{0.095640, 0.139020, 0.812950}, // 480
	{0.057950, 0.169300, 0.616200},
	{0.032010, 0.208020, 0.465180},
	{0.014700, 0.258600, 0.353300},
	{0.004900, 0.323000, 0.272000}, // 500
	{0.002400, 0.407300, 0.212300},
	{0.009300, 0.503000, 0.158200},
	{0.029100, 0.608200, 0.111700},
	{0.063270, 0.710000, 0.078250}, // 520
	{0.109600, 0.793200, 0.057250},
	{0.165500, 0.862000, 0.042160},
	{0.225750, 0.914850, 0.029840},
	{0.290400, 0.954000, 0.020300}, // 540
	{0.359700, 0.980300, 0.013400},
	{0.433450, 0.994950, 0.008750},
	{0.512050, 1.000000, 0.005750},
	{0.594500, 0.995000, 0.003900}, // 560
	{0.678400, 0.978600, 0.002750},
	{0.762100, 0.952000, 0.002100},
	{0.842500, 0.915400, 0.001800},
	{0.916300, 0.870000, 0.001650}, // 580
	{0.978600, 0.816300, 0.001400},
	{1.026300, 0.757000, 0.001100},
	{1.056700, 0.694900, 0.001000},
	{1.062200, 0.631000, 0.000800}, // 600
	{1.045600, 0.566800, 0.000600},
	{1.002600, 0.503000, 0.000340},
	{0.938400, 0.441200, 0.000240},
	{0.854450, 0.381000, 0.000190}, // 620
	{0.751400, 0.321000, 0.000100},
	{0.642400, 0.265000, 0.000050},
	{0.541900, 0.217000, 0.000030},
	{0.447900, 0.175000, 0.000020}, // 640
	{0.360800, 0.138200, 0.000010},
	{0.283500, 0.107000, 0.000000},
	{0.218700, 0.081600, 0.000000},
	{0.164900, 0.061000, 0.000000}, // 660
	{0.121200, 0.044580, 0.000000},
	{0.087400, 0.032000, 0.000000},
	{0.063600, 0.023200, 0.000000},
	{0.046770, 0.017000, 0.000000}, // 680
	{0.032900, 0.011920, 0.000000},
	{0.022700, 0.008210, 0.000000},
	{0.015840, 0.005723, 0.000000},
	{0.011359, 0.004102, 0.000000}, // 700
	{0.008111, 0.002929, 0.000000},
	{0.005790, 0.002091, 0.000000},
	{0.004109, 0.001484, 0.000000},
	{0.002899, 0.001047, 0.000000}, // 720
	{0.002049, 0.000740, 0.000000},
	{0.001440, 0.000520, 0.000000},
	{0.001000, 0.000361, 0.000000},
	{0.000690, 0.000249, 0.000000}, // 740
	{0.000476, 0.000172, 0.000000},
	{0.000332, 0.000120, 0.000000},
	{0.000235, 0.000085, 0.000000},
	{0.000166, 0.000060, 0.000000}, // 760
	{0.000117, 0.000042, 0.000000},
	{0.000083, 0.000030, 0.000000},
	{0.000059, 0.000021, 0.000000},
	{0.000042, 0.000015, 0.000000}, // 780
	{0.000029, 0.000011, 0.000000},
	{0.000021, 0.000007, 0.000000},
	{0.000015, 0.000005, 0.000000},
	{0.000010, 0.000004, 0.000000}, // 800
	{0.000007, 0.000003, 0.000000},
	{0.000005, 0.000002, 0.000000},
	{0.000004, 0.000001, 0.000000},
	{0.000003, 0.000001, 0.000000}, // 820
	{0.000002, 0.000001, 0.000000},
	{0.000001, 0.000001, 0.000000}, // 830
}

// ColorMatching returns the (X, Y, Z) response of bucket i
func ColorMatching(i int) (mgl64.Vec3, bool) {
	if !InRange(i) {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3(cie1931[i]), true
}

// LuminanceWeights returns the ȳ column, the relative luminous efficiency of each
// bucket
func LuminanceWeights() []float64 {
	w := make([]float64, NumBuckets)
	for i := range w {
		w[i] = cie1931[i][1]
	}
	return w
}
