package resistor

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/resistor-color/api/models"
)

const (
	// DefaultChangeThreshold is the ΔE that starts a new segment when the caller gives none
	DefaultChangeThreshold = 12.0
	// MinBandWidth is the narrowest segment, in pixels, treated as a real band
	MinBandWidth = 3

	minLightness = 5.0
	maxLightness = 99.0

	silverWidthRatio     = 1.3
	goldWidthRatio       = 1.2
	rescueWidthRatio     = 1.2
	bodyRejectWidthRatio = 2.5
)

var ErrPixelCount = errors.New("pixel count does not match width*height")

// Segment is a contiguous run of similar pixels along the scan axis, EndX exclusive
type Segment struct {
	StartX int
	EndX   int
	Pixels []models.RGB
}

func (s Segment) Width() int { return s.EndX - s.StartX }

// Horizontal reports whether an image of the given size is scanned along x
func Horizontal(width, height int) bool {
	return width >= height
}

// centralRange is the middle half [25%, 75%) of a cross-axis dimension, never empty
func centralRange(n int) (int, int) {
	start := n / 4
	end := (3*n + 3) / 4
	if end > n {
		end = n
	}
	if end <= start {
		end = start + 1
	}
	return start, end
}

// AverageLine collapses a row-major pixel buffer onto its scan axis, averaging
// the central half of the cross axis at each coordinate
func AverageLine(pixels []models.RGB, width, height int) ([]models.RGB, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrPixelCount, len(pixels), width*height)
	}

	if Horizontal(width, height) {
		y0, y1 := centralRange(height)
		line := make([]models.RGB, width)
		column := make([]models.RGB, 0, y1-y0)
		for x := 0; x < width; x++ {
			column = column[:0]
			for y := y0; y < y1; y++ {
				column = append(column, pixels[y*width+x])
			}
			line[x] = averageRGB(column)
		}
		return line, nil
	}

	x0, x1 := centralRange(width)
	line := make([]models.RGB, height)
	row := make([]models.RGB, 0, x1-x0)
	for y := 0; y < height; y++ {
		row = row[:0]
		for x := x0; x < x1; x++ {
			row = append(row, pixels[y*width+x])
		}
		line[y] = averageRGB(row)
	}
	return line, nil
}

// SegmentLine splits line wherever neighbouring pixels differ by more than threshold.
// The segments partition [0, len(line)) in order.
func SegmentLine(line []models.RGB, threshold float64) []Segment {
	if len(line) == 0 {
		return nil
	}

	var segments []Segment
	current := Segment{StartX: 0, EndX: 1, Pixels: []models.RGB{line[0]}}
	prev := RGBToLab(line[0])
	for x := 1; x < len(line); x++ {
		lab := RGBToLab(line[x])
		if LabDistance(prev, lab) > threshold {
			segments = append(segments, current)
			current = Segment{StartX: x, EndX: x + 1, Pixels: []models.RGB{line[x]}}
		} else {
			current.EndX = x + 1
			current.Pixels = append(current.Pixels, line[x])
		}
		prev = lab
	}
	return append(segments, current)
}

// candidate is an admitted segment with its measurements and classification
type candidate struct {
	seg   Segment
	avg   models.RGB
	lab   Lab
	match Match
}

func (c candidate) width() int { return c.seg.Width() }

func (c candidate) chroma() float64 { return c.lab.Chroma() }

// ExtractBands runs the full pipeline with the default classifier
func ExtractBands(pixels []models.RGB, width, height int, threshold float64, custom []models.CustomColor) ([]models.Band, error) {
	return DefaultClassifier.ExtractBands(pixels, width, height, threshold, custom)
}

// ExtractBands turns a cropped pixel buffer into classified bands ordered by x
func (cl Classifier) ExtractBands(pixels []models.RGB, width, height int, threshold float64, custom []models.CustomColor) ([]models.Band, error) {
	line, err := AverageLine(pixels, width, height)
	if err != nil {
		return nil, err
	}
	candidates := cl.admit(SegmentLine(line, threshold), custom)
	return cl.refine(candidates), nil
}

// admit drops narrow segments and, for non-metallic matches, extreme lightness.
// Classification comes first so a specular gold or a shadowed silver survives.
func (cl Classifier) admit(segments []Segment, custom []models.CustomColor) []candidate {
	var out []candidate
	for _, seg := range segments {
		if seg.Width() < MinBandWidth {
			continue
		}
		avg := averageRGB(seg.Pixels)
		lab := RGBToLab(avg)
		match := cl.classifyLab(lab, custom)
		if !match.Color.Role.Metallic() && (lab.L < minLightness || lab.L > maxLightness) {
			continue
		}
		out = append(out, candidate{seg: seg, avg: avg, lab: lab, match: match})
	}
	return out
}

func medianWidth(candidates []candidate) float64 {
	if len(candidates) == 0 {
		return 0
	}
	widths := make([]int, len(candidates))
	for i, c := range candidates {
		widths[i] = c.width()
	}
	sort.Ints(widths)
	mid := len(widths) / 2
	if len(widths)%2 == 1 {
		return float64(widths[mid])
	}
	return float64(widths[mid-1]+widths[mid]) / 2
}

// atEdge is true for the first candidate and the last two, where tolerance
// and multiplier bands are printed
func atEdge(i, n int) bool {
	return i == 0 || i >= n-2
}

// refine applies edge reclassification, then removes wide body segments away from the edges
func (cl Classifier) refine(candidates []candidate) []models.Band {
	median := medianWidth(candidates)
	bands := make([]models.Band, 0, len(candidates))
	for i, c := range candidates {
		if atEdge(i, len(candidates)) {
			c = cl.reclassifyEdge(c, median)
		} else if float64(c.width()) > bodyRejectWidthRatio*median && c.match.Color.IsBody() {
			continue
		}
		bands = append(bands, c.band())
	}
	return bands
}

// reclassifyEdge only relabels neutral, body and metallic matches. A segment
// already matched to a saturated digit color or a taught color keeps its label:
// Brown, Red and Orange pass the gold thresholds below (a > -5, b > 20,
// chroma > 30) and would otherwise all come back as Gold.
func (cl Classifier) reclassifyEdge(c candidate, median float64) candidate {
	ref := c.match.Color
	if ref.Role == RoleCustom || (ref.Role == RoleDigit && !ref.Neutral) {
		return c
	}
	w := float64(c.width())
	lab := c.lab

	switch {
	case math.Abs(lab.A) < 3 && math.Abs(lab.B) < 3 &&
		lab.L > 60 && lab.L < 95 && w < silverWidthRatio*median:
		return cl.relabel(c, SilverName)
	case lab.A > -5 && lab.B > 20 && c.chroma() > 30 &&
		lab.L > 25 && lab.L < 90 && w < goldWidthRatio*median:
		return cl.relabel(c, GoldName)
	case ref.IsBody() && c.chroma() > 30 && lab.B > 25 && w < rescueWidthRatio*median:
		return cl.relabel(c, GoldName)
	}
	return c
}

func (cl Classifier) relabel(c candidate, name string) candidate {
	ref, ok := cl.Catalog.Lookup(name)
	if !ok {
		return c
	}
	c.match.Color = ref
	c.match.Swatch = ref.Name
	c.match.Custom = false
	return c
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (c candidate) band() models.Band {
	return models.Band{
		X:         (c.seg.StartX + c.seg.EndX - 1) / 2,
		ColorName: c.match.Color.Name,
		RGB:       c.avg,
		L:         round2(c.lab.L),
		Width:     c.width(),
		Chroma:    round2(c.chroma()),
	}
}

// BandNames returns the color names of bands in order
func BandNames(bands []models.Band) []string {
	names := make([]string, len(bands))
	for i, b := range bands {
		names[i] = b.ColorName
	}
	return names
}
