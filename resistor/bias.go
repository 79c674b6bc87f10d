package resistor

// PixelStats are the perceptual measurements of the pixel being classified
type PixelStats struct {
	Lab    Lab
	Chroma float64
	Hue    float64
}

func statsFor(lab Lab) PixelStats {
	return PixelStats{Lab: lab, Chroma: lab.Chroma(), Hue: lab.Hue()}
}

// BiasFunc scales the raw ΔE between a pixel and a reference color.
// Values below 1 favor the reference color, values above 1 penalize it.
type BiasFunc func(px PixelStats) float64

// BiasPolicy collects every weight the classifier applies on top of raw distance
type BiasPolicy struct {
	// Custom scales distances to user-taught colors
	Custom float64
	// Neutral applies to Black, Gray, White, Silver and body colors, on top of the role bias
	Neutral BiasFunc
	// Roles holds the per-role multiplier; a missing role is unbiased
	Roles map[Role]BiasFunc
}

const (
	customBias = 0.7

	neutralChromaScale = 50.0

	goldChromaMin = 30.0
	goldHueMin    = 60.0
	goldHueMax    = 100.0
	goldStrong    = 0.55
	goldMild      = 0.75

	silverBias = 0.8

	bodyLowChroma  = 15.0
	bodyHighChroma = 35.0
	bodyLow        = 0.85
	bodyMid        = 0.95
	bodyHigh       = 1.5
)

// DefaultBiasPolicy is tuned against Gold/Yellow/Orange and Gold/body confusion
var DefaultBiasPolicy = BiasPolicy{
	Custom:  customBias,
	Neutral: neutralPenalty,
	Roles: map[Role]BiasFunc{
		RoleGold:   goldBias,
		RoleSilver: func(PixelStats) float64 { return silverBias },
		RoleBody:   bodyBias,
	},
}

// a saturated pixel is unlikely to be a neutral swatch
func neutralPenalty(px PixelStats) float64 {
	return 1 + px.Chroma/neutralChromaScale
}

// InGoldWindow reports whether the pixel looks gold regardless of RGB distance
func InGoldWindow(px PixelStats) bool {
	return px.Chroma > goldChromaMin && px.Hue > goldHueMin && px.Hue < goldHueMax
}

func goldBias(px PixelStats) float64 {
	if InGoldWindow(px) {
		return goldStrong
	}
	return goldMild
}

func bodyBias(px PixelStats) float64 {
	switch {
	case px.Chroma < bodyLowChroma:
		return bodyLow
	case px.Chroma > bodyHighChroma:
		return bodyHigh
	default:
		return bodyMid
	}
}

// Factor returns the combined multiplier for ref against px
func (p BiasPolicy) Factor(ref ReferenceColor, px PixelStats) float64 {
	factor := 1.0
	if ref.Neutral && p.Neutral != nil {
		factor *= p.Neutral(px)
	}
	if fn, ok := p.Roles[ref.Role]; ok && fn != nil {
		factor *= fn(px)
	}
	return factor
}
