package kernel

import "math"

// sRGB to CIE XYZ, D65 white point.
const (
	whiteX = 0.950456
	whiteZ = 1.088754

	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
)

var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		c := float64(i) / 255
		if c <= 0.04045 {
			srgbToLinear[i] = c / 12.92
		} else {
			srgbToLinear[i] = math.Pow((c+0.055)/1.055, 2.4)
		}
	}
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

// bgrToLab encodes L in [0, 255] (L * 255 / 100) and a, b offset by 128.
func bgrToLab(b, g, r byte) (l, a, bb byte) {
	lr, lg, lb := srgbToLinear[r], srgbToLinear[g], srgbToLinear[b]
	x := (0.412453*lr + 0.357580*lg + 0.180423*lb) / whiteX
	y := 0.212671*lr + 0.715160*lg + 0.072169*lb
	z := (0.019334*lr + 0.119193*lg + 0.950227*lb) / whiteZ

	fx, fy, fz := labF(x), labF(y), labF(z)
	L := 116*fy - 16
	A := 500 * (fx - fy)
	B := 200 * (fy - fz)

	l = clampByte(int(math.Round(L * 255 / 100)))
	a = clampByte(int(math.Round(A + 128)))
	bb = clampByte(int(math.Round(B + 128)))
	return
}

func (b *Base) BgrToLab(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	b.mapRows(src, srcStride, 3*width, dst, dstStride, 3*width, height, func(s, d []byte) {
		for i := 0; i < len(s); i += 3 {
			d[i], d[i+1], d[i+2] = bgrToLab(s[i], s[i+1], s[i+2])
		}
	})
}
