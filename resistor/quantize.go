package resistor

import (
	"fmt"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/resistor-color/api/models"
)

const edgePosition = 0.2

// pixelObservation places a pixel in Lab space for k-means
type pixelObservation struct {
	rgb models.RGB
	lab Lab
	x   float64
}

func (o pixelObservation) Coordinates() clusters.Coordinates {
	return clusters.Coordinates{o.lab.L, o.lab.A, o.lab.B}
}

func (o pixelObservation) Distance(point clusters.Coordinates) float64 {
	return o.Coordinates().Distance(point)
}

// QuantizeResult is the output of QuantizeColors
type QuantizeResult struct {
	Colors      []models.QuantizedColor
	TotalPixels int
}

// QuantizeColors clusters pixels into at most k colors and classifies each
// cluster, ordered by mean scan position. A pixel without X takes its index
// modulo width, or its index when width is unknown.
func (cl Classifier) QuantizeColors(pixels []models.PositionedRGB, k, width int, custom []models.CustomColor) (QuantizeResult, error) {
	if len(pixels) == 0 {
		return QuantizeResult{}, fmt.Errorf("no pixels to quantize")
	}
	if k <= 0 {
		return QuantizeResult{}, fmt.Errorf("color count must be positive, got %d", k)
	}

	dataset := make(clusters.Observations, 0, len(pixels))
	distinct := make(map[models.RGB]struct{})
	maxX := 0.0
	for i, p := range pixels {
		x := float64(i)
		if p.X != nil {
			x = *p.X
		} else if width > 0 {
			x = float64(i % width)
		}
		if x > maxX {
			maxX = x
		}
		distinct[p.RGB] = struct{}{}
		dataset = append(dataset, pixelObservation{rgb: p.RGB, lab: RGBToLab(p.RGB), x: x})
	}

	// more clusters than distinct colors leaves centers that never win a point
	if k > len(distinct) {
		k = len(distinct)
	}

	partitions, err := kmeans.New().Partition(dataset, k)
	if err != nil {
		return QuantizeResult{}, fmt.Errorf("error clustering pixels: %w", err)
	}

	span := maxX
	if width > 0 {
		span = float64(width - 1)
	}

	var out []models.QuantizedColor
	for _, c := range partitions {
		if len(c.Observations) == 0 {
			continue
		}
		members := make([]models.RGB, 0, len(c.Observations))
		sumX := 0.0
		for _, obs := range c.Observations {
			po := obs.(pixelObservation)
			members = append(members, po.rgb)
			sumX += po.x
		}
		avg := averageRGB(members)
		avgX := sumX / float64(len(members))
		position := 0.0
		if span > 0 {
			position = avgX / span
		}
		out = append(out, models.QuantizedColor{
			R:        avg.R,
			G:        avg.G,
			B:        avg.B,
			Hex:      toColorful(avg).Hex(),
			Name:     cl.Classify(avg, custom).Color.Name,
			Count:    len(members),
			AvgX:     round2(avgX),
			Position: round2(position),
			IsAtEdge: position < edgePosition || position > 1-edgePosition,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgX < out[j].AvgX
	})
	return QuantizeResult{Colors: out, TotalPixels: len(pixels)}, nil
}

// QuantizedNames returns the names of quantized colors in scan order
func QuantizedNames(colors []models.QuantizedColor) []string {
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = c.Name
	}
	return names
}
