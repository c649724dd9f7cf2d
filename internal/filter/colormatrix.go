package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gglayer"
)

// ErrUnknownEffect is returned by ByName for unrecognized effect names.
var ErrUnknownEffect = errors.New("filter: unknown effect")

// ColorMatrix is a 4x5 color transformation in row-major order:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column is a bias in [0, 255] units.
type ColorMatrix [20]float32

// Identity returns the matrix that leaves colors unchanged.
func Identity() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0, // R
		0, 1, 0, 0, 0, // G
		0, 0, 1, 0, 0, // B
		0, 0, 0, 1, 0, // A
	}
}

// Brightness scales RGB by factor: 0 is black, 1 unchanged.
func Brightness(factor float32) ColorMatrix {
	return ColorMatrix{
		factor, 0, 0, 0, 0,
		0, factor, 0, 0, 0,
		0, 0, factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Contrast scales RGB around mid-gray: 0 is flat gray, 1 unchanged.
func Contrast(factor float32) ColorMatrix {
	offset := 128 * (1 - factor)
	return ColorMatrix{
		factor, 0, 0, 0, offset,
		0, factor, 0, 0, offset,
		0, 0, factor, 0, offset,
		0, 0, 0, 1, 0,
	}
}

// Saturation blends between luminance (0) and the original color (1).
func Saturation(factor float32) ColorMatrix {
	// Rec. 709
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)
	inv := 1 - factor

	return ColorMatrix{
		lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Grayscale converts to Rec. 709 luminance.
func Grayscale() ColorMatrix {
	return Saturation(0)
}

// Sepia applies a sepia tone.
func Sepia() ColorMatrix {
	return ColorMatrix{
		0.393, 0.769, 0.189, 0, 0,
		0.349, 0.686, 0.168, 0, 0,
		0.272, 0.534, 0.131, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Invert inverts RGB and keeps alpha.
func Invert() ColorMatrix {
	return ColorMatrix{
		-1, 0, 0, 0, 255,
		0, -1, 0, 0, 255,
		0, 0, -1, 0, 255,
		0, 0, 0, 1, 0,
	}
}

// HueRotate rotates hue by degrees.
func HueRotate(degrees float64) ColorMatrix {
	rad := degrees * math.Pi / 180
	cos := float32(math.Cos(rad))
	sin := float32(math.Sin(rad))

	const (
		lumR = 0.213
		lumG = 0.715
		lumB = 0.072
	)

	return ColorMatrix{
		lumR + cos*(1-lumR) + sin*(-lumR), lumG + cos*(-lumG) + sin*(-lumG), lumB + cos*(-lumB) + sin*(1-lumB), 0, 0,
		lumR + cos*(-lumR) + sin*(0.143), lumG + cos*(1-lumG) + sin*(0.140), lumB + cos*(-lumB) + sin*(-0.283), 0, 0,
		lumR + cos*(-lumR) + sin*(-(1 - lumR)), lumG + cos*(-lumG) + sin*(lumG), lumB + cos*(1-lumB) + sin*(lumB), 0, 0,
		0, 0, 0, 1, 0,
	}
}

// ByName returns the effect called name. amount is the factor for
// brightness, contrast and saturation and the angle in degrees for
// hueRotate; it is ignored by the other effects.
func ByName(name string, amount float64) (ColorMatrix, error) {
	switch name {
	case "identity":
		return Identity(), nil
	case "brightness":
		return Brightness(float32(amount)), nil
	case "contrast":
		return Contrast(float32(amount)), nil
	case "saturation":
		return Saturation(float32(amount)), nil
	case "grayscale":
		return Grayscale(), nil
	case "sepia":
		return Sepia(), nil
	case "invert":
		return Invert(), nil
	case "hueRotate":
		return HueRotate(amount), nil
	default:
		return ColorMatrix{}, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
}

// Then returns the matrix that applies m first and next second.
func (m ColorMatrix) Then(next ColorMatrix) ColorMatrix {
	var r ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += next[row*5+k] * m[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = next[row*5+0]*m[4] + next[row*5+1]*m[9] +
			next[row*5+2]*m[14] + next[row*5+3]*m[19] + next[row*5+4]
	}
	return r
}

// Apply transforms a single color.
func (m *ColorMatrix) Apply(c gglayer.Color) gglayer.Color {
	r := float32(c.R)
	g := float32(c.G)
	b := float32(c.B)
	a := float32(c.A)

	return gglayer.Color{
		R: clampUint8(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]),
		G: clampUint8(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]),
		B: clampUint8(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]),
		A: clampUint8(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]),
	}
}

// PixelFunc adapts m for Engine.Process and Layer.Process.
func (m ColorMatrix) PixelFunc() gglayer.PixelFunc {
	return func(_, _ int, p gglayer.Color) gglayer.Color {
		return m.Apply(p)
	}
}

func clampUint8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
