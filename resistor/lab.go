package resistor

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/resistor-color/api/models"
)

// Lab is a CIE L*a*b* color on the conventional 0-100 lightness scale (D65 white)
type Lab struct {
	L float64
	A float64
	B float64
}

// RGBToLab converts an 8-bit sRGB color to Lab.
// go-colorful works on the 0-1 scale, Lab here uses the usual 0-100 one.
func RGBToLab(c models.RGB) Lab {
	l, a, b := toColorful(c).Lab()
	return Lab{L: l * 100, A: a * 100, B: b * 100}
}

func toColorful(c models.RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Chroma is the saturation magnitude sqrt(a² + b²)
func (lab Lab) Chroma() float64 {
	return math.Hypot(lab.A, lab.B)
}

// Hue is atan2(b, a) in degrees, in (-180, 180]
func (lab Lab) Hue() float64 {
	return math.Atan2(lab.B, lab.A) * 180 / math.Pi
}

// LabDistance is the CIE76 ΔE between two Lab colors
func LabDistance(x, y Lab) float64 {
	dl := x.L - y.L
	da := x.A - y.A
	db := x.B - y.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// ColorDistance is the CIE76 ΔE between two RGB colors
func ColorDistance(x, y models.RGB) float64 {
	return LabDistance(RGBToLab(x), RGBToLab(y))
}

// averageRGB returns the channel-wise rounded mean; zero for an empty slice
func averageRGB(pixels []models.RGB) models.RGB {
	if len(pixels) == 0 {
		return models.RGB{}
	}
	var r, g, b int
	for _, p := range pixels {
		r += p.R
		g += p.G
		b += p.B
	}
	n := float64(len(pixels))
	return models.RGB{
		R: int(math.Round(float64(r) / n)),
		G: int(math.Round(float64(g) / n)),
		B: int(math.Round(float64(b) / n)),
	}
}
