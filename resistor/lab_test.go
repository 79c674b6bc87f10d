package resistor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/resistor-color/api/models"
)

func TestRGBToLab(t *testing.T) {
	tests := []struct {
		name    string
		in      models.RGB
		l, a, b float64
	}{
		{"black", models.RGB{R: 0, G: 0, B: 0}, 0, 0, 0},
		{"white", models.RGB{R: 255, G: 255, B: 255}, 100, 0, 0},
		{"red", models.RGB{R: 255, G: 0, B: 0}, 53.2, 80.1, 67.2},
		{"gold", models.RGB{R: 212, G: 175, B: 55}, 72.8, 1.4, 62.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lab := RGBToLab(tt.in)
			if math.Abs(lab.L-tt.l) > 0.5 || math.Abs(lab.A-tt.a) > 0.5 || math.Abs(lab.B-tt.b) > 0.5 {
				t.Errorf("RGBToLab(%v) = %+v, want about {%v %v %v}", tt.in, lab, tt.l, tt.a, tt.b)
			}
		})
	}
}

func TestChromaAndHue(t *testing.T) {
	gray := RGBToLab(models.RGB{R: 128, G: 128, B: 128})
	if gray.Chroma() > 0.01 {
		t.Errorf("gray chroma = %v, want ~0", gray.Chroma())
	}

	gold := RGBToLab(models.RGB{R: 212, G: 175, B: 55})
	if gold.Chroma() <= 30 {
		t.Errorf("gold chroma = %v, want > 30", gold.Chroma())
	}
	if h := gold.Hue(); h <= 60 || h >= 100 {
		t.Errorf("gold hue = %v, want within (60, 100)", h)
	}

	blue := RGBToLab(models.RGB{R: 0, G: 0, B: 255})
	if h := blue.Hue(); h >= 0 || h <= -180 {
		t.Errorf("blue hue = %v, want negative", h)
	}
}

func randomRGB(r *rand.Rand) models.RGB {
	return models.RGB{R: r.Intn(256), G: r.Intn(256), B: r.Intn(256)}
}

func TestColorDistanceSymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		x, y := randomRGB(r), randomRGB(r)
		if d1, d2 := ColorDistance(x, y), ColorDistance(y, x); d1 != d2 {
			t.Fatalf("ColorDistance(%v, %v) = %v, reverse = %v", x, y, d1, d2)
		}
	}
}

func TestColorDistanceSelfZero(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		c := randomRGB(r)
		if d := ColorDistance(c, c); d != 0 {
			t.Fatalf("ColorDistance(%v, %v) = %v, want 0", c, c, d)
		}
	}
}

func TestAverageRGB(t *testing.T) {
	got := averageRGB([]models.RGB{{R: 10, G: 0, B: 255}, {R: 11, G: 1, B: 254}})
	want := models.RGB{R: 11, G: 1, B: 255}
	if got != want {
		t.Errorf("averageRGB = %v, want %v", got, want)
	}
	if got := averageRGB(nil); got != (models.RGB{}) {
		t.Errorf("averageRGB(nil) = %v, want zero", got)
	}
}
